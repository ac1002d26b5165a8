// Package pipeline coordinates the five-stage retrieval state machine that
// grounds a free-text question in the knowledge graph and produces an
// answer string.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pomelo/internal/util"
	"pomelo/pkg/ai"
	"pomelo/pkg/common"
	"pomelo/pkg/entity"
	"pomelo/pkg/kg"
	"pomelo/pkg/rag"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// NoGroundingAnswer is the fixed answer returned when no facts could be
// retrieved for a question. It is produced without calling the generation
// service, regardless of whether one is configured.
const NoGroundingAnswer = "I couldn't find any relevant information in the knowledge graph to answer your question."

const tracedFactLimit = 5

// Pipeline runs questions through the fixed stage sequence. It holds only
// read-only collaborators, so a single Pipeline may serve concurrent
// questions without locking; each Run owns its State exclusively.
//
// A Pipeline should be created using NewPipeline.
type Pipeline struct {
	graph   *kg.Graph
	catalog *entity.Catalog
	builder *rag.Builder

	aiClient            ai.AnswerClient
	generationAvailable bool

	maxDepth        int
	generateTimeout time.Duration
	maxRetries      int

	tracer Tracer
}

// NewPipelineParams defines the configuration for creating a Pipeline.
//
// Graph, Catalog, and Builder are required. AIClient may be nil, which
// records generation as unavailable: the pipeline still answers every
// question, surfacing the raw context instead of a generated reply.
// MaxDepth bounds the traversal (0 is legal and means direct relationships
// only). GenerateTimeout caps the external generation call; MaxRetries
// repeats it on transient failure (default 1 attempt). Tracer optionally
// receives every trace event as it is appended.
type NewPipelineParams struct {
	Graph   *kg.Graph
	Catalog *entity.Catalog
	Builder *rag.Builder

	AIClient ai.AnswerClient

	MaxDepth        int
	GenerateTimeout time.Duration
	MaxRetries      int

	Tracer Tracer
}

// NewPipeline creates a Pipeline configured with the provided parameters.
func NewPipeline(params NewPipelineParams) (*Pipeline, error) {
	if params.Graph == nil {
		return nil, errors.New("graph is required")
	}
	if params.Catalog == nil {
		return nil, errors.New("entity catalog is required")
	}
	if params.Builder == nil {
		return nil, errors.New("context builder is required")
	}
	if params.MaxDepth < 0 {
		return nil, fmt.Errorf("max depth must be >= 0, got %d", params.MaxDepth)
	}

	timeout := params.GenerateTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Pipeline{
		graph:   params.Graph,
		catalog: params.Catalog,
		builder: params.Builder,

		aiClient:            params.AIClient,
		generationAvailable: params.AIClient != nil,

		maxDepth:        params.MaxDepth,
		generateTimeout: timeout,
		maxRetries:      params.MaxRetries,

		tracer: params.Tracer,
	}, nil
}

// Run answers one question. It always completes with an Answer on the
// returned State; recoverable conditions (no entities, no matches, no
// facts, generation failure) degrade the answer instead of failing the run.
func (p *Pipeline) Run(ctx context.Context, question string) *State {
	state := &State{
		ID:       gonanoid.Must(12),
		Question: question,
	}

	steps := []struct {
		stage Stage
		fn    func(context.Context, *State)
	}{
		{StageDetect, p.detect},
		{StageRetrieve, p.retrieve},
		{StageTraverse, p.traverse},
		{StageBuildContext, p.buildContext},
		{StageGenerate, p.generate},
	}

	for _, step := range steps {
		state.stage = step.stage
		step.fn(ctx, state)
	}
	state.stage = StageDone

	return state
}

func (p *Pipeline) trace(s *State, format string, args ...any) {
	event := TraceEvent{Stage: s.stage, Message: fmt.Sprintf(format, args...)}
	s.events = append(s.events, event)
	if p.tracer != nil {
		p.tracer.Record(event)
	}
}

func (p *Pipeline) detect(_ context.Context, s *State) {
	s.Mentions = p.catalog.Detect(s.Question)

	p.trace(s, "question: %s", s.Question)
	p.trace(s, "detected %d entities", len(s.Mentions))
	for _, m := range s.Mentions {
		p.trace(s, "- %s (%s)", m.Name, m.Kind)
	}
	if len(s.Mentions) == 0 {
		p.trace(s, "no entities detected")
	}

	if hints := entity.RelationHints(s.Question); len(hints) > 0 {
		labels := make([]string, 0, len(hints))
		for _, hint := range hints {
			labels = append(labels, string(hint))
		}
		p.trace(s, "relation hints: %s", strings.Join(labels, ", "))
	}
}

func (p *Pipeline) retrieve(_ context.Context, s *State) {
	for _, mention := range s.Mentions {
		for _, node := range p.graph.FindNodesByName(mention.Name) {
			s.Matched = append(s.Matched, MatchedNode{Node: node, Matched: mention.Name})
			p.trace(s, "found: %s (id: %s)", node.Name, node.ID)
		}
	}

	if len(s.Matched) == 0 {
		p.trace(s, "no matching nodes found in graph")
		return
	}
	p.trace(s, "total nodes matched: %d", len(s.Matched))
}

func (p *Pipeline) traverse(_ context.Context, s *State) {
	for _, matched := range s.Matched {
		traversal := p.graph.Traverse(matched.Node.ID, p.maxDepth)
		s.Traversals = append(s.Traversals, traversal)

		p.trace(s, "traversing from: %s", matched.Node.Name)
		p.trace(s, "visited %d nodes, found %d relationships", len(traversal.Visited), len(traversal.Facts))
		for i, fact := range traversal.Facts {
			if i == tracedFactLimit {
				break
			}
			p.trace(s, "%s --[%s]--> %s", fact.SourceName, fact.Relation, fact.TargetName)
		}
	}
}

func (p *Pipeline) buildContext(_ context.Context, s *State) {
	var all []common.Fact
	for _, traversal := range s.Traversals {
		all = append(all, traversal.Facts...)
	}
	// Two starting nodes may rediscover the same edge, so dedupe globally
	// with the same key the traversal used.
	s.Facts = kg.DedupeFacts(all)
	s.Context = p.builder.Render(s.Facts, s.Mentions)

	p.trace(s, "unique facts collected: %d", len(s.Facts))
	for i, line := range strings.Split(s.Context, "\n") {
		if i == 8 {
			break
		}
		p.trace(s, "| %s", line)
	}
}

func (p *Pipeline) generate(ctx context.Context, s *State) {
	if s.Context == rag.NoContextSentinel {
		s.Answer = NoGroundingAnswer
		p.trace(s, "no context available, skipping generation")
		return
	}

	if !p.generationAvailable {
		s.Answer = fmt.Sprintf("[generation disabled - showing raw context]\n\n%s", s.Context)
		p.trace(s, "generation not available, surfacing raw context")
		return
	}

	ctx, cancel := context.WithTimeout(ctx, p.generateTimeout)
	defer cancel()

	systemPrompt := fmt.Sprintf(ai.QueryPrompt, s.Context)
	answer, err := util.RetryWithContext(ctx, p.maxRetries, func(ctx context.Context) (string, error) {
		return p.aiClient.GenerateChat(
			ctx,
			[]ai.ChatMessage{{Role: "user", Message: s.Question}},
			ai.WithSystemPrompts(systemPrompt),
		)
	})
	if err != nil {
		s.Answer = fmt.Sprintf("Error generating response: %v\n\nRaw context:\n%s", err, s.Context)
		p.trace(s, "generation failed: %v", err)
		return
	}

	s.Answer = answer
	p.trace(s, "answer generated")
}
