package importer

import (
	"context"

	"github.com/jhoicas/catalogo/internal/application/dto"
	"github.com/jhoicas/catalogo/internal/domain"
	"github.com/jhoicas/catalogo/internal/domain/entity"
)

// FindByName carga el índice de la empresa y busca sin distinguir mayúsculas.
// childName vacío busca la raíz. Devuelve domain.ErrNotFound si no hay coincidencia.
func (uc *CategoryImporter) FindByName(ctx context.Context, companyID, parentName, childName string) (*dto.CategoryResponse, error) {
	idx, err := uc.LoadExisting(ctx, companyID)
	if err != nil {
		return nil, err
	}
	c := idx.FindByName(parentName, childName)
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return ToCategoryResponse(c), nil
}

// Tree devuelve las raíces de la empresa con sus hijas.
func (uc *CategoryImporter) Tree(ctx context.Context, companyID string) (*dto.CategoryTreeResponse, error) {
	idx, err := uc.LoadExisting(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := &dto.CategoryTreeResponse{CompanyID: companyID, Roots: []dto.CategoryTreeNode{}}
	for _, n := range idx.Tree() {
		node := dto.CategoryTreeNode{CategoryResponse: *ToCategoryResponse(n.Category), Children: []dto.CategoryResponse{}}
		for _, ch := range n.Children {
			node.Children = append(node.Children, *ToCategoryResponse(ch))
		}
		out.Roots = append(out.Roots, node)
	}
	return out, nil
}

// ToCategoryResponse convierte la entidad a la salida pública.
func ToCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	return &dto.CategoryResponse{
		ID:        c.ID,
		CompanyID: c.CompanyID,
		ParentID:  c.ParentID,
		Name:      c.Name,
		Type:      c.Type,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
