package dto

import "time"

// CategoryRecord registro de entrada del archivo de categorías.
// Sin categoria_pai el registro es una raíz.
type CategoryRecord struct {
	Name       string `json:"nome" yaml:"nome"`
	ParentName string `json:"categoria_pai,omitempty" yaml:"categoria_pai,omitempty"`
	Type       string `json:"tipo" yaml:"tipo"`
}

// IsRoot indica si el registro no declara categoría padre.
func (r CategoryRecord) IsRoot() bool {
	return r.ParentName == ""
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	ParentID  string    `json:"parent_id,omitempty"`
	Name      string    `json:"name"`
	Type      string    `json:"type,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryTreeNode raíz con sus hijas.
type CategoryTreeNode struct {
	CategoryResponse
	Children []CategoryResponse `json:"children"`
}

// CategoryTreeResponse árbol de categorías de una empresa.
type CategoryTreeResponse struct {
	CompanyID string             `json:"company_id"`
	Roots     []CategoryTreeNode `json:"roots"`
}

// PhaseSummary totales de una fase de importación.
type PhaseSummary struct {
	Created              int  `json:"created"`
	SkippedDuplicate     int  `json:"skipped_duplicate"`
	SkippedMissingParent int  `json:"skipped_missing_parent"`
	SkippedInvalid       int  `json:"skipped_invalid"`
	Committed            bool `json:"committed"`
}

// ImportResponse resultado de una importación.
type ImportResponse struct {
	CompanyID string       `json:"company_id"`
	DryRun    bool         `json:"dry_run"`
	Existing  int          `json:"existing"`
	Roots     PhaseSummary `json:"roots"`
	Children  PhaseSummary `json:"children"`
	Warnings  []string     `json:"warnings,omitempty"`
}
