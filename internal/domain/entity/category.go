package entity

import "time"

// Estados posibles de una categoría.
const (
	CategoryStatusActive   = "active"
	CategoryStatusInactive = "inactive"
)

// Category representa una categoría de productos en una jerarquía de dos niveles.
type Category struct {
	ID        string
	CompanyID string
	ParentID  string // vacío si es raíz
	Name      string
	Type      string // etiqueta del archivo de origen (tipo), no interviene en la reconciliación
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsRoot indica si la categoría no tiene padre.
func (c *Category) IsRoot() bool {
	return c.ParentID == ""
}
