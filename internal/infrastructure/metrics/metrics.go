// Package metrics expone contadores Prometheus de las importaciones de categorías.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jhoicas/catalogo/internal/application/importer"
)

var _ importer.Recorder = (*Metrics)(nil)

// Metrics contadores por fase y resultado.
type Metrics struct {
	Records      *prometheus.CounterVec
	Commits      *prometheus.CounterVec
	StagedWrites *prometheus.CounterVec
}

// New registra las métricas en reg (usar prometheus.DefaultRegisterer en producción).
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Records: f.NewCounterVec(prometheus.CounterOpts{
			Name: "catalogo_import_records_total",
			Help: "Registros de entrada procesados por fase y resultado",
		}, []string{"phase", "outcome"}),
		Commits: f.NewCounterVec(prometheus.CounterOpts{
			Name: "catalogo_import_commits_total",
			Help: "Lotes confirmados por fase y estado (ok, error)",
		}, []string{"phase", "status"}),
		StagedWrites: f.NewCounterVec(prometheus.CounterOpts{
			Name: "catalogo_import_committed_writes_total",
			Help: "Categorías escritas en lotes confirmados",
		}, []string{"phase"}),
	}
}

// ObserveRecord cuenta un registro procesado.
func (m *Metrics) ObserveRecord(phase importer.Phase, outcome importer.Outcome) {
	m.Records.WithLabelValues(string(phase), string(outcome)).Inc()
}

// ObserveCommit cuenta un lote y, si se confirmó, sus escrituras.
func (m *Metrics) ObserveCommit(phase importer.Phase, staged int, err error) {
	if err != nil {
		m.Commits.WithLabelValues(string(phase), "error").Inc()
		return
	}
	m.Commits.WithLabelValues(string(phase), "ok").Inc()
	m.StagedWrites.WithLabelValues(string(phase)).Add(float64(staged))
}
