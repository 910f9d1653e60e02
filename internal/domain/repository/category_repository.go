package repository

import (
	"context"

	"github.com/jhoicas/catalogo/internal/domain/entity"
)

// CategoryStore define el puerto de persistencia para Category (DIP).
// Cada empresa es una colección independiente de categorías.
type CategoryStore interface {
	// ListByCompany devuelve todas las categorías persistidas de la empresa.
	ListByCompany(ctx context.Context, companyID string) ([]*entity.Category, error)
	// NewID reserva una identidad nueva sin escribir nada.
	NewID() string
	// NewBatch abre un lote de escrituras que se confirma de forma atómica.
	NewBatch() CategoryBatch
}

// CategoryBatch acumula altas de categorías y las persiste todas o ninguna.
type CategoryBatch interface {
	Set(category *entity.Category)
	Len() int
	Commit(ctx context.Context) error
}
