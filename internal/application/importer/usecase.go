package importer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/catalogo/internal/application/dto"
	"github.com/jhoicas/catalogo/internal/domain"
	"github.com/jhoicas/catalogo/internal/domain/catalog"
	"github.com/jhoicas/catalogo/internal/domain/entity"
	"github.com/jhoicas/catalogo/internal/domain/repository"
	"github.com/jhoicas/catalogo/pkg/logger"
)

// Options ajustes de una importación.
type Options struct {
	DryRun bool // reconcilia contra el índice real pero no confirma los lotes
}

// Run es el estado de una importación: el índice y la empresa destino. Lo crea y lo
// posee Import; cada fase lo recibe y lo extiende en el lugar.
type Run struct {
	CompanyID string
	Index     *catalog.Index
	DryRun    bool
}

// CategoryImporter importa una jerarquía de categorías de dos niveles sin duplicar
// las ya persistidas. Las ejecuciones concurrentes sobre la misma empresa no están
// soportadas.
type CategoryImporter struct {
	store    repository.CategoryStore
	recorder Recorder
	log      *logger.Logger
	now      func() time.Time
}

// NewCategoryImporter construye el caso de uso. recorder puede ser nil.
func NewCategoryImporter(store repository.CategoryStore, recorder Recorder, log *logger.Logger) *CategoryImporter {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &CategoryImporter{store: store, recorder: recorder, log: log, now: time.Now}
}

// Import carga el índice existente, procesa raíces y luego hijas. Un fallo al
// confirmar las raíces impide procesar las hijas.
func (uc *CategoryImporter) Import(ctx context.Context, companyID string, records []dto.CategoryRecord, opts Options) (*Summary, error) {
	if companyID == "" {
		return nil, fmt.Errorf("company_id requerido: %w", domain.ErrInvalidInput)
	}
	idx, err := uc.LoadExisting(ctx, companyID)
	if err != nil {
		return nil, err
	}
	run := &Run{CompanyID: companyID, Index: idx, DryRun: opts.DryRun}
	summary := &Summary{CompanyID: companyID, DryRun: opts.DryRun, Existing: idx.Len(), Index: idx}

	var roots, children []dto.CategoryRecord
	for _, r := range records {
		if r.IsRoot() {
			roots = append(roots, r)
		} else {
			children = append(children, r)
		}
	}

	summary.Roots, err = uc.ProcessRoots(ctx, run, roots)
	if err != nil {
		return summary, err
	}
	summary.Children, err = uc.ProcessChildren(ctx, run, children)
	if err != nil {
		return summary, err
	}

	uc.log.Info().
		Str("company_id", companyID).
		Bool("dry_run", opts.DryRun).
		Int("existing", summary.Existing).
		Int("created", summary.Created()).
		Int("missing_parent", summary.Children.Count(OutcomeSkippedMissingParent)).
		Msg("importación de categorías concluida")
	return summary, nil
}

// LoadExisting lee todas las categorías persistidas de la empresa y arma el índice.
// Si dos registros comparten clave gana el último leído.
func (uc *CategoryImporter) LoadExisting(ctx context.Context, companyID string) (*catalog.Index, error) {
	list, err := uc.store.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("cargar categorías existentes: %w", err)
	}
	idx := catalog.NewIndex()
	for _, c := range list {
		if idx.Put(c) {
			uc.log.Debug().Str("company_id", companyID).Str("key", catalog.KeyOf(c).String()).
				Msg("clave de categoría repetida en el almacenamiento, gana la última")
		}
	}
	return idx, nil
}

// ProcessRoots crea las raíces que faltan en el índice y las confirma en un único lote.
// Los registros con categoría padre se ignoran.
func (uc *CategoryImporter) ProcessRoots(ctx context.Context, run *Run, records []dto.CategoryRecord) (PhaseResult, error) {
	res := PhaseResult{Phase: PhaseRoots}
	batch := uc.store.NewBatch()
	var staged []catalog.Key

	for _, rec := range records {
		if !rec.IsRoot() {
			continue
		}
		if strings.TrimSpace(rec.Name) == "" {
			res.Records = append(res.Records, uc.invalid(run, PhaseRoots, rec))
			continue
		}
		key := catalog.RootKey(rec.Name)
		if existing, ok := run.Index.Get(key); ok {
			res.Records = append(res.Records, uc.observe(PhaseRoots, RecordResult{Record: rec, Outcome: OutcomeSkippedDuplicate, Key: key, Category: existing}))
			continue
		}

		c := uc.newCategory(run.CompanyID, "", rec)
		run.Index.Put(c)
		batch.Set(c)
		staged = append(staged, key)
		res.Records = append(res.Records, uc.observe(PhaseRoots, RecordResult{Record: rec, Outcome: OutcomeCreated, Key: key, Category: c}))
		uc.log.Info().Str("company_id", run.CompanyID).Str("key", key.String()).Msg("categoría raíz agregada")
	}

	if err := uc.commit(ctx, run, &res, batch, staged); err != nil {
		return res, err
	}
	return res, nil
}

// ProcessChildren resuelve el padre de cada hija contra las raíces del índice, crea las
// que faltan y las confirma en un único lote. Un padre inexistente solo omite el registro.
func (uc *CategoryImporter) ProcessChildren(ctx context.Context, run *Run, records []dto.CategoryRecord) (PhaseResult, error) {
	res := PhaseResult{Phase: PhaseChildren}
	batch := uc.store.NewBatch()
	var staged []catalog.Key

	for _, rec := range records {
		if rec.IsRoot() {
			continue
		}
		if strings.TrimSpace(rec.Name) == "" {
			res.Records = append(res.Records, uc.invalid(run, PhaseChildren, rec))
			continue
		}
		parentKey := catalog.RootKey(rec.ParentName)
		parent, ok := run.Index.Get(parentKey)
		if !ok {
			uc.log.Warn().Str("company_id", run.CompanyID).Str("categoria_pai", rec.ParentName).
				Str("nome", rec.Name).Msg("categoría padre no encontrada")
			res.Records = append(res.Records, uc.observe(PhaseChildren, RecordResult{Record: rec, Outcome: OutcomeSkippedMissingParent, Key: parentKey}))
			continue
		}

		key := catalog.ChildKey(parent.ID, rec.Name)
		if existing, ok := run.Index.Get(key); ok {
			res.Records = append(res.Records, uc.observe(PhaseChildren, RecordResult{Record: rec, Outcome: OutcomeSkippedDuplicate, Key: key, Category: existing}))
			continue
		}

		c := uc.newCategory(run.CompanyID, parent.ID, rec)
		run.Index.Put(c)
		batch.Set(c)
		staged = append(staged, key)
		res.Records = append(res.Records, uc.observe(PhaseChildren, RecordResult{Record: rec, Outcome: OutcomeCreated, Key: key, Category: c}))
		uc.log.Info().Str("company_id", run.CompanyID).Str("key", key.String()).Msg("categoría hija agregada")
	}

	if err := uc.commit(ctx, run, &res, batch, staged); err != nil {
		return res, err
	}
	return res, nil
}

// commit confirma el lote de la fase. Si falla, quita del índice las claves del lote:
// nada de esta fase se considera persistido.
func (uc *CategoryImporter) commit(ctx context.Context, run *Run, res *PhaseResult, batch repository.CategoryBatch, staged []catalog.Key) error {
	if batch.Len() == 0 {
		return nil
	}
	if run.DryRun {
		uc.log.Info().Str("company_id", run.CompanyID).Str("phase", string(res.Phase)).
			Int("staged", batch.Len()).Msg("dry run: lote no confirmado")
		return nil
	}
	err := batch.Commit(ctx)
	uc.recorder.ObserveCommit(res.Phase, batch.Len(), err)
	if err != nil {
		for _, k := range staged {
			run.Index.Delete(k)
		}
		return fmt.Errorf("confirmar lote de %s: %w", res.Phase, err)
	}
	res.Committed = true
	return nil
}

func (uc *CategoryImporter) newCategory(companyID, parentID string, rec dto.CategoryRecord) *entity.Category {
	now := uc.now()
	return &entity.Category{
		ID:        uc.store.NewID(),
		CompanyID: companyID,
		ParentID:  parentID,
		Name:      rec.Name,
		Type:      rec.Type,
		Status:    entity.CategoryStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (uc *CategoryImporter) invalid(run *Run, phase Phase, rec dto.CategoryRecord) RecordResult {
	uc.log.Warn().Str("company_id", run.CompanyID).Str("phase", string(phase)).
		Str("categoria_pai", rec.ParentName).Msg("registro sin nombre omitido")
	return uc.observe(phase, RecordResult{Record: rec, Outcome: OutcomeSkippedInvalid})
}

func (uc *CategoryImporter) observe(phase Phase, r RecordResult) RecordResult {
	uc.recorder.ObserveRecord(phase, r.Outcome)
	return r
}
