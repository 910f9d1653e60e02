// Package sqlite implementa el almacenamiento de categorías en un archivo SQLite local
// (driver puro Go de modernc.org/sqlite).
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/catalogo/internal/domain"
	"github.com/jhoicas/catalogo/internal/domain/entity"
	"github.com/jhoicas/catalogo/internal/domain/repository"
	_ "modernc.org/sqlite"
)

var _ repository.CategoryStore = (*CategoryStore)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS categories (
	id         TEXT PRIMARY KEY,
	company_id TEXT NOT NULL,
	parent_id  TEXT NULL REFERENCES categories (id),
	name       TEXT NOT NULL,
	type       TEXT NOT NULL DEFAULT '',
	status     TEXT NOT NULL DEFAULT 'active',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_categories_company ON categories (company_id);
`

// CategoryStore implementación del puerto CategoryStore sobre SQLite.
type CategoryStore struct {
	db *sql.DB
}

// Open abre (o crea) el archivo y aplica el esquema.
func Open(ctx context.Context, path string) (*CategoryStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// Un solo escritor; SQLite serializa igual y así evitamos SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA foreign_keys=ON"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("crear esquema: %w", err)
	}
	return &CategoryStore{db: db}, nil
}

// Close cierra la base.
func (s *CategoryStore) Close() error {
	return s.db.Close()
}

// ListByCompany lista todas las categorías de la empresa en orden de inserción.
func (s *CategoryStore) ListByCompany(ctx context.Context, companyID string) ([]*entity.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, company_id, parent_id, name, type, status, created_at, updated_at
		FROM categories WHERE company_id = ? ORDER BY rowid`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		var parentID sql.NullString
		var createdAt, updatedAt string
		if err := rows.Scan(&c.ID, &c.CompanyID, &parentID, &c.Name, &c.Type, &c.Status, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.ParentID = parentID.String
		if c.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("created_at de %s: %w", c.ID, err)
		}
		if c.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
			return nil, fmt.Errorf("updated_at de %s: %w", c.ID, err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// NewID genera un UUID nuevo.
func (s *CategoryStore) NewID() string {
	return uuid.New().String()
}

// NewBatch abre un lote que se inserta en una única transacción.
func (s *CategoryStore) NewBatch() repository.CategoryBatch {
	return &categoryBatch{db: s.db}
}

type categoryBatch struct {
	db    *sql.DB
	items []entity.Category
}

func (b *categoryBatch) Set(c *entity.Category) {
	b.items = append(b.items, *c)
}

func (b *categoryBatch) Len() int {
	return len(b.items)
}

func (b *categoryBatch) Commit(ctx context.Context) error {
	if len(b.items) == 0 {
		return nil
	}
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO categories (id, company_id, parent_id, name, type, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range b.items {
		var parentID any
		if c.ParentID != "" {
			parentID = c.ParentID
		}
		_, err := stmt.ExecContext(ctx, c.ID, c.CompanyID, parentID, c.Name, c.Type, c.Status,
			c.CreatedAt.UTC().Format(time.RFC3339Nano), c.UpdatedAt.UTC().Format(time.RFC3339Nano))
		if err != nil {
			if strings.Contains(err.Error(), "UNIQUE constraint failed") {
				return fmt.Errorf("insert category %s: %w", c.ID, domain.ErrDuplicate)
			}
			return fmt.Errorf("insert category %s: %w", c.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
