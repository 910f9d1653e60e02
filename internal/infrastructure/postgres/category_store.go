package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/catalogo/internal/domain"
	"github.com/jhoicas/catalogo/internal/domain/entity"
	"github.com/jhoicas/catalogo/internal/domain/repository"
)

var _ repository.CategoryStore = (*CategoryStore)(nil)

// CategoryStore implementación del puerto CategoryStore sobre PostgreSQL.
type CategoryStore struct {
	q  Querier
	tx *TxRunner
}

// NewCategoryStore construye el adaptador de persistencia para categorías.
func NewCategoryStore(pool *pgxpool.Pool) *CategoryStore {
	return &CategoryStore{q: pool, tx: NewTxRunner(pool)}
}

// ListByCompany lista todas las categorías de la empresa en orden de creación.
func (s *CategoryStore) ListByCompany(ctx context.Context, companyID string) ([]*entity.Category, error) {
	query := `
		SELECT id, company_id, parent_id, name, type, status, created_at, updated_at
		FROM categories WHERE company_id = $1 ORDER BY created_at, id`
	rows, err := s.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		var parentID *string
		if err := rows.Scan(&c.ID, &c.CompanyID, &parentID, &c.Name, &c.Type, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		if parentID != nil {
			c.ParentID = *parentID
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// NewID genera un UUID nuevo sin tocar la base.
func (s *CategoryStore) NewID() string {
	return uuid.New().String()
}

// NewBatch abre un lote que se inserta en una única transacción.
func (s *CategoryStore) NewBatch() repository.CategoryBatch {
	return &categoryBatch{tx: s.tx}
}

type categoryBatch struct {
	tx    *TxRunner
	items []entity.Category
}

func (b *categoryBatch) Set(c *entity.Category) {
	b.items = append(b.items, *c)
}

func (b *categoryBatch) Len() int {
	return len(b.items)
}

// Commit envía todos los INSERT como un pgx.Batch dentro de una transacción.
func (b *categoryBatch) Commit(ctx context.Context) error {
	if len(b.items) == 0 {
		return nil
	}
	query := `
		INSERT INTO categories (id, company_id, parent_id, name, type, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	return b.tx.Run(ctx, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, c := range b.items {
			batch.Queue(query, c.ID, c.CompanyID, nullIfEmpty(c.ParentID), c.Name, c.Type, c.Status, c.CreatedAt, c.UpdatedAt)
		}
		br := tx.SendBatch(ctx, batch)
		for range b.items {
			if _, err := br.Exec(); err != nil {
				_ = br.Close()
				if isUniqueViolation(err) {
					return fmt.Errorf("insert category: %w", domain.ErrDuplicate)
				}
				return fmt.Errorf("insert category: %w", err)
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("close batch: %w", err)
		}
		return nil
	})
}
