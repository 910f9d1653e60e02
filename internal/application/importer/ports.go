package importer

// Recorder recibe los eventos de una importación (métricas). Puede ser nil.
type Recorder interface {
	ObserveRecord(phase Phase, outcome Outcome)
	ObserveCommit(phase Phase, staged int, err error)
}

type nopRecorder struct{}

func (nopRecorder) ObserveRecord(Phase, Outcome)     {}
func (nopRecorder) ObserveCommit(Phase, int, error) {}
