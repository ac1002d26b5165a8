package pipeline

import "pomelo/pkg/logger"

// TraceEvent is one diagnostic line emitted by a pipeline stage. Events are
// ordered, stage-tagged, and append-only on the run state; they exist for
// diagnostics and stage-by-stage testing, not for the answer contract.
type TraceEvent struct {
	Stage   Stage  `json:"stage"`
	Message string `json:"message"`
}

func (e TraceEvent) String() string {
	return "[" + string(e.Stage) + "] " + e.Message
}

// Tracer is a sink for pipeline trace events.
//
// Implementers can forward events to logs, terminals, or custom
// post-processing. Events arrive in stage order within a run.
type Tracer interface {
	Record(event TraceEvent)
}

// MultiTracer fan-outs trace events to multiple tracers.
type MultiTracer []Tracer

func (m MultiTracer) Record(event TraceEvent) {
	for _, t := range m {
		if t == nil {
			continue
		}
		t.Record(event)
	}
}

// LoggerTracer forwards trace events to the process logger at DEBUG level.
type LoggerTracer struct{}

func (LoggerTracer) Record(event TraceEvent) {
	logger.Debug(event.Message, "stage", string(event.Stage))
}
