package pipeline

import (
	"pomelo/pkg/common"
	"pomelo/pkg/kg"
)

// Stage identifies one step of the retrieval pipeline. The machine is
// strictly linear: Detect → Retrieve → Traverse → BuildContext → Generate →
// Done, with no branching beyond the generate stage's content-based
// short-circuit.
type Stage string

const (
	StageDetect       Stage = "detect"
	StageRetrieve     Stage = "retrieve"
	StageTraverse     Stage = "traverse"
	StageBuildContext Stage = "build_context"
	StageGenerate     Stage = "generate"
	StageDone         Stage = "done"
)

// MatchedNode pairs a graph node with the canonical mention name that
// matched it.
type MatchedNode struct {
	Node    common.Node `json:"node"`
	Matched string      `json:"matched"`
}

// State is the accumulating record threaded through the pipeline stages.
// Every run starts from a fresh State owned exclusively by that invocation;
// only the graph behind the pipeline is shared, and it is read-only.
type State struct {
	ID       string `json:"id"`
	Question string `json:"question"`

	Mentions   []common.Mention `json:"mentions"`
	Matched    []MatchedNode    `json:"matched"`
	Traversals []kg.Traversal   `json:"traversals"`
	Facts      []common.Fact    `json:"facts"`
	Context    string           `json:"context"`
	Answer     string           `json:"answer"`

	stage  Stage
	events []TraceEvent
}

// Stage returns the stage the state is currently in, or StageDone for a
// completed run.
func (s *State) Stage() Stage {
	return s.stage
}

// Trace returns the ordered trace events appended so far.
func (s *State) Trace() []TraceEvent {
	out := make([]TraceEvent, len(s.events))
	copy(out, s.events)
	return out
}

// TraceLines returns the trace rendered as display strings, one per event.
func (s *State) TraceLines() []string {
	lines := make([]string, 0, len(s.events))
	for _, event := range s.events {
		lines = append(lines, event.String())
	}
	return lines
}
