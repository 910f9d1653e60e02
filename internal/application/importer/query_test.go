package importer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo/internal/application/importer"
	"github.com/jhoicas/catalogo/internal/domain"
	"github.com/jhoicas/catalogo/internal/domain/entity"
	"github.com/jhoicas/catalogo/internal/infrastructure/memory"
)

func seededImporter() *importer.CategoryImporter {
	store := memory.NewCategoryStore()
	store.Seed(
		&entity.Category{ID: "food", CompanyID: testCompanyID, Name: "Food"},
		&entity.Category{ID: "drink", CompanyID: testCompanyID, Name: "Drink"},
		&entity.Category{ID: "f1", CompanyID: testCompanyID, ParentID: "food", Name: "Fruit"},
		&entity.Category{ID: "d1", CompanyID: testCompanyID, ParentID: "drink", Name: "Fruit"},
	)
	return importer.NewCategoryImporter(store, nil, nil)
}

func TestFindByName_UseCase(t *testing.T) {
	uc := seededImporter()
	ctx := context.Background()

	c, err := uc.FindByName(ctx, testCompanyID, "food", "")
	require.NoError(t, err)
	assert.Equal(t, "food", c.ID)

	c, err = uc.FindByName(ctx, testCompanyID, "Drink", "FRUIT")
	require.NoError(t, err)
	assert.Equal(t, "d1", c.ID)
	assert.Equal(t, "drink", c.ParentID)

	_, err = uc.FindByName(ctx, testCompanyID, "Food", "Juice")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.FindByName(ctx, "otra", "Food", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTree_UseCase(t *testing.T) {
	tree, err := seededImporter().Tree(context.Background(), testCompanyID)
	require.NoError(t, err)

	require.Len(t, tree.Roots, 2)
	assert.Equal(t, "Food", tree.Roots[0].Name)
	require.Len(t, tree.Roots[0].Children, 1)
	assert.Equal(t, "f1", tree.Roots[0].Children[0].ID)
	assert.Equal(t, "Drink", tree.Roots[1].Name)
}
