package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo/internal/domain"
	"github.com/jhoicas/catalogo/internal/domain/entity"
	"github.com/jhoicas/catalogo/internal/infrastructure/memory"
)

func TestBatch_CommitEscribeEnOrden(t *testing.T) {
	ctx := context.Background()
	s := memory.NewCategoryStore()

	b := s.NewBatch()
	b.Set(&entity.Category{ID: s.NewID(), CompanyID: "c1", Name: "Food"})
	b.Set(&entity.Category{ID: s.NewID(), CompanyID: "c1", Name: "Drink"})
	b.Set(&entity.Category{ID: s.NewID(), CompanyID: "c2", Name: "Otro"})
	assert.Equal(t, 3, b.Len())

	list, err := s.ListByCompany(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, list, "nada debe verse antes del commit")

	require.NoError(t, b.Commit(ctx))
	list, err = s.ListByCompany(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Food", list[0].Name)
	assert.Equal(t, "Drink", list[1].Name)
	assert.Equal(t, 1, s.Commits())
}

func TestBatch_FalloNoEscribeNada(t *testing.T) {
	ctx := context.Background()
	s := memory.NewCategoryStore()
	s.FailNextCommit(errors.New("store caído"))

	b := s.NewBatch()
	b.Set(&entity.Category{ID: s.NewID(), CompanyID: "c1", Name: "Food"})
	require.Error(t, b.Commit(ctx))

	list, err := s.ListByCompany(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, 0, s.Commits())
}

func TestBatch_IDRepetidoEsAtomico(t *testing.T) {
	ctx := context.Background()
	s := memory.NewCategoryStore()
	s.Seed(&entity.Category{ID: "x", CompanyID: "c1", Name: "Food"})

	b := s.NewBatch()
	b.Set(&entity.Category{ID: "y", CompanyID: "c1", Name: "Drink"})
	b.Set(&entity.Category{ID: "x", CompanyID: "c1", Name: "Otro"})
	err := b.Commit(ctx)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	list, _ := s.ListByCompany(ctx, "c1")
	assert.Len(t, list, 1)
}
