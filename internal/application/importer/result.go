package importer

import (
	"fmt"

	"github.com/jhoicas/catalogo/internal/application/dto"
	"github.com/jhoicas/catalogo/internal/domain/catalog"
	"github.com/jhoicas/catalogo/internal/domain/entity"
)

// Phase identifica la fase de la reconciliación.
type Phase string

const (
	PhaseRoots    Phase = "roots"
	PhaseChildren Phase = "children"
)

// Outcome resultado de procesar un registro de entrada.
type Outcome string

const (
	OutcomeCreated              Outcome = "created"
	OutcomeSkippedDuplicate     Outcome = "skipped_duplicate"
	OutcomeSkippedMissingParent Outcome = "skipped_missing_parent"
	OutcomeSkippedInvalid       Outcome = "skipped_invalid"
)

// RecordResult resultado de un registro. Category es la categoría creada o la ya
// existente con la que coincidió; nil cuando se omitió por padre ausente o inválido.
type RecordResult struct {
	Record   dto.CategoryRecord
	Outcome  Outcome
	Key      catalog.Key
	Category *entity.Category
}

// PhaseResult agrega los resultados de una fase. Committed es true solo si el lote
// se confirmó en el almacenamiento.
type PhaseResult struct {
	Phase     Phase
	Records   []RecordResult
	Committed bool
}

// Count cuenta los registros con el resultado indicado.
func (p PhaseResult) Count(o Outcome) int {
	n := 0
	for _, r := range p.Records {
		if r.Outcome == o {
			n++
		}
	}
	return n
}

// Created devuelve las categorías nuevas de la fase.
func (p PhaseResult) Created() []*entity.Category {
	var out []*entity.Category
	for _, r := range p.Records {
		if r.Outcome == OutcomeCreated {
			out = append(out, r.Category)
		}
	}
	return out
}

func (p PhaseResult) toDTO() dto.PhaseSummary {
	return dto.PhaseSummary{
		Created:              p.Count(OutcomeCreated),
		SkippedDuplicate:     p.Count(OutcomeSkippedDuplicate),
		SkippedMissingParent: p.Count(OutcomeSkippedMissingParent),
		SkippedInvalid:       p.Count(OutcomeSkippedInvalid),
		Committed:            p.Committed,
	}
}

// Summary resumen de una importación completa.
type Summary struct {
	CompanyID string
	DryRun    bool
	Existing  int // categorías persistidas al comenzar
	Roots     PhaseResult
	Children  PhaseResult
	Index     *catalog.Index
}

// Created total de categorías creadas (o planificadas, en dry run).
func (s *Summary) Created() int {
	return s.Roots.Count(OutcomeCreated) + s.Children.Count(OutcomeCreated)
}

// Warnings describe los registros omitidos que requieren atención.
func (s *Summary) Warnings() []string {
	var out []string
	for _, p := range []PhaseResult{s.Roots, s.Children} {
		for _, r := range p.Records {
			switch r.Outcome {
			case OutcomeSkippedMissingParent:
				out = append(out, fmt.Sprintf("categoría padre no encontrada: %s (hija %s)", r.Record.ParentName, r.Record.Name))
			case OutcomeSkippedInvalid:
				out = append(out, fmt.Sprintf("registro inválido en %s: nombre vacío", p.Phase))
			}
		}
	}
	return out
}

// ToResponse convierte el resumen a la salida HTTP/CLI.
func (s *Summary) ToResponse() dto.ImportResponse {
	return dto.ImportResponse{
		CompanyID: s.CompanyID,
		DryRun:    s.DryRun,
		Existing:  s.Existing,
		Roots:     s.Roots.toDTO(),
		Children:  s.Children.toDTO(),
		Warnings:  s.Warnings(),
	}
}
