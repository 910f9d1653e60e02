// Package memory implementa el almacenamiento de categorías en memoria, usado para
// dry runs y tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jhoicas/catalogo/internal/domain"
	"github.com/jhoicas/catalogo/internal/domain/entity"
	"github.com/jhoicas/catalogo/internal/domain/repository"
)

var _ repository.CategoryStore = (*CategoryStore)(nil)

// CategoryStore guarda las categorías por empresa en orden de escritura.
type CategoryStore struct {
	mu         sync.RWMutex
	byCompany  map[string][]entity.Category
	ids        map[string]struct{}
	commits    int
	failCommit error
}

// NewCategoryStore crea un almacenamiento vacío.
func NewCategoryStore() *CategoryStore {
	return &CategoryStore{
		byCompany: make(map[string][]entity.Category),
		ids:       make(map[string]struct{}),
	}
}

// Seed inserta categorías sin validar claves, como datos previos del almacenamiento.
func (s *CategoryStore) Seed(categories ...*entity.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range categories {
		s.byCompany[c.CompanyID] = append(s.byCompany[c.CompanyID], *c)
		s.ids[c.ID] = struct{}{}
	}
}

// FailNextCommit hace que el próximo Commit devuelva err sin escribir nada.
func (s *CategoryStore) FailNextCommit(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failCommit = err
}

// Commits devuelve cuántos lotes se confirmaron con éxito.
func (s *CategoryStore) Commits() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.commits
}

// ListByCompany devuelve copias de las categorías de la empresa.
func (s *CategoryStore) ListByCompany(_ context.Context, companyID string) ([]*entity.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.byCompany[companyID]
	out := make([]*entity.Category, 0, len(list))
	for i := range list {
		c := list[i]
		out = append(out, &c)
	}
	return out, nil
}

// NewID genera un UUID nuevo.
func (s *CategoryStore) NewID() string {
	return uuid.New().String()
}

// NewBatch abre un lote vacío.
func (s *CategoryStore) NewBatch() repository.CategoryBatch {
	return &batch{store: s}
}

type batch struct {
	store *CategoryStore
	items []entity.Category
}

func (b *batch) Set(c *entity.Category) {
	b.items = append(b.items, *c)
}

func (b *batch) Len() int {
	return len(b.items)
}

// Commit escribe todo el lote o nada.
func (b *batch) Commit(_ context.Context) error {
	s := b.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failCommit != nil {
		err := s.failCommit
		s.failCommit = nil
		return err
	}
	seen := make(map[string]struct{}, len(b.items))
	for _, c := range b.items {
		if _, ok := s.ids[c.ID]; ok {
			return fmt.Errorf("categoría %s: %w", c.ID, domain.ErrDuplicate)
		}
		if _, ok := seen[c.ID]; ok {
			return fmt.Errorf("categoría %s: %w", c.ID, domain.ErrDuplicate)
		}
		seen[c.ID] = struct{}{}
	}
	for _, c := range b.items {
		s.byCompany[c.CompanyID] = append(s.byCompany[c.CompanyID], c)
		s.ids[c.ID] = struct{}{}
	}
	s.commits++
	return nil
}
