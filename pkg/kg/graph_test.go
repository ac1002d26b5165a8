package kg

import (
	"reflect"
	"testing"

	"pomelo/pkg/common"
)

func demoGraph(t *testing.T) *Graph {
	t.Helper()

	seed, err := DefaultSeed()
	if err != nil {
		t.Fatalf("unexpected error loading default seed: %v", err)
	}
	graph, err := BuildGraph(seed)
	if err != nil {
		t.Fatalf("unexpected error building graph: %v", err)
	}
	return graph
}

func TestBuildGraphRejectsDuplicateNodeID(t *testing.T) {
	seed := Seed{
		People: []PersonSeed{
			{ID: "p1", Name: "Ada Lovelace"},
			{ID: "p1", Name: "Alan Turing"},
		},
	}

	if _, err := BuildGraph(seed); err == nil {
		t.Fatal("expected error for duplicate node id, got nil")
	}
}

func TestBuildGraphRejectsDanglingEndpoints(t *testing.T) {
	tests := []struct {
		name string
		rel  RelationshipSeed
	}{
		{
			name: "unknown source",
			rel:  RelationshipSeed{Source: "ghost", Target: "c1", Relation: "founded"},
		},
		{
			name: "unknown target",
			rel:  RelationshipSeed{Source: "p1", Target: "ghost", Relation: "founded"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seed := Seed{
				People:        []PersonSeed{{ID: "p1", Name: "Ada Lovelace"}},
				Organizations: []OrganizationSeed{{ID: "c1", Name: "Analytical Engines"}},
				Relationships: []RelationshipSeed{tt.rel},
			}

			if _, err := BuildGraph(seed); err == nil {
				t.Fatal("expected error for dangling relationship endpoint, got nil")
			}
		})
	}
}

func TestFindNodesByName(t *testing.T) {
	graph := demoGraph(t)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "query contained in name",
			query: "Musk",
			want:  []string{"Elon Musk"},
		},
		{
			name:  "name contained in query",
			query: "the Tesla company",
			want:  []string{"Tesla"},
		},
		{
			name:  "case insensitive",
			query: "openai",
			want:  []string{"OpenAI"},
		},
		{
			name:  "exact name",
			query: "Microsoft",
			want:  []string{"Microsoft"},
		},
		{
			name:  "no match",
			query: "Yoyodyne",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, node := range graph.FindNodesByName(tt.query) {
				got = append(got, node.Name)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("unexpected matches: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRelationshipsOfCoversBothDirections(t *testing.T) {
	graph := demoGraph(t)

	facts := graph.RelationshipsOf("c3")

	var outgoing, incoming int
	for _, fact := range facts {
		switch fact.Direction {
		case common.DirectionOutgoing:
			outgoing++
			if fact.Source != "c3" {
				t.Fatalf("outgoing fact has source %q, want c3", fact.Source)
			}
		case common.DirectionIncoming:
			incoming++
			if fact.Target != "c3" {
				t.Fatalf("incoming fact has target %q, want c3", fact.Target)
			}
		default:
			t.Fatalf("unexpected direction %q", fact.Direction)
		}
	}

	// OpenAI has no outgoing edges in the demo dataset but five incoming
	// ones: leads, co_founded, invested_in, partners_with, supplies.
	if outgoing != 0 {
		t.Fatalf("unexpected outgoing fact count: got %d, want 0", outgoing)
	}
	if incoming != 5 {
		t.Fatalf("unexpected incoming fact count: got %d, want 5", incoming)
	}
}

func TestRelationshipsOfOrdersOutgoingFirst(t *testing.T) {
	graph := demoGraph(t)

	facts := graph.RelationshipsOf("c4")
	if len(facts) == 0 {
		t.Fatal("expected facts for Microsoft, got none")
	}

	seenIncoming := false
	for _, fact := range facts {
		if fact.Direction == common.DirectionIncoming {
			seenIncoming = true
			continue
		}
		if seenIncoming {
			t.Fatal("outgoing fact appeared after incoming facts")
		}
	}
}

func TestSuccessorsAndPredecessorsAreDistinct(t *testing.T) {
	graph := demoGraph(t)

	// Musk has two edges to Tesla and two to SpaceX; neighbors must not
	// repeat.
	got := graph.Successors("p1")
	want := []string{"c1", "c2", "c8"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected successors: got %v, want %v", got, want)
	}

	got = graph.Predecessors("c3")
	want = []string{"p2", "c4", "c5"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected predecessors: got %v, want %v", got, want)
	}
}

func TestStats(t *testing.T) {
	graph := demoGraph(t)

	got := graph.Stats()
	want := Stats{Nodes: 13, Edges: 17, People: 5, Organizations: 8}
	if got != want {
		t.Fatalf("unexpected stats: got %+v, want %+v", got, want)
	}
}

func TestParseSeedRejectsInvalidData(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "malformed json",
			data: `{"people": [`,
		},
		{
			name: "missing required field",
			data: `{"people": [{"id": "p1"}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseSeed([]byte(tt.data)); err == nil {
				t.Fatal("expected error for invalid seed data, got nil")
			}
		})
	}
}
