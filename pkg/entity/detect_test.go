package entity

import (
	"reflect"
	"testing"

	"pomelo/pkg/common"
	"pomelo/pkg/kg"
)

func demoCatalog(t *testing.T) *Catalog {
	t.Helper()

	seed, err := kg.DefaultSeed()
	if err != nil {
		t.Fatalf("unexpected error loading default seed: %v", err)
	}
	graph, err := kg.BuildGraph(seed)
	if err != nil {
		t.Fatalf("unexpected error building graph: %v", err)
	}
	return NewCatalog(graph, DefaultAliases)
}

func TestDetect(t *testing.T) {
	catalog := demoCatalog(t)

	tests := []struct {
		name string
		text string
		want []common.Mention
	}{
		{
			name: "full name preferred over aliases",
			text: "What companies did Elon Musk found?",
			want: []common.Mention{
				{Name: "Elon Musk", Kind: common.KindPerson, Matched: "elon musk"},
			},
		},
		{
			name: "short alias resolves to canonical name",
			text: "Tell me about musk",
			want: []common.Mention{
				{Name: "Elon Musk", Kind: common.KindPerson, Matched: "musk"},
			},
		},
		{
			name: "organization mention",
			text: "Who leads OpenAI?",
			want: []common.Mention{
				{Name: "OpenAI", Kind: common.KindOrganization, Matched: "openai"},
			},
		},
		{
			name: "multiple entities",
			text: "What is the relationship between Microsoft and OpenAI?",
			want: []common.Mention{
				{Name: "Microsoft", Kind: common.KindOrganization, Matched: "microsoft"},
				{Name: "OpenAI", Kind: common.KindOrganization, Matched: "openai"},
			},
		},
		{
			name: "no known entities",
			text: "hello",
			want: nil,
		},
		{
			name: "empty question",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := catalog.Detect(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("unexpected mentions: got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDetectEmitsEachEntityOnce(t *testing.T) {
	catalog := demoCatalog(t)

	got := catalog.Detect("Did Elon Musk, also called elon or just musk, found Tesla?")

	counts := make(map[string]int)
	for _, mention := range got {
		counts[mention.Name]++
	}
	if counts["Elon Musk"] != 1 {
		t.Fatalf("expected exactly one Elon Musk mention, got %d", counts["Elon Musk"])
	}
	if counts["Tesla"] != 1 {
		t.Fatalf("expected exactly one Tesla mention, got %d", counts["Tesla"])
	}
}

func TestClassifyUsesPersonSurnames(t *testing.T) {
	catalog := demoCatalog(t)

	tests := []struct {
		name string
		want common.Kind
	}{
		{name: "Sam Altman", want: common.KindPerson},
		{name: "DeepMind", want: common.KindOrganization},
		{name: "Jensen Huang", want: common.KindPerson},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := catalog.classify(tt.name); got != tt.want {
				t.Fatalf("unexpected kind: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRelationHints(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []common.Relation
	}{
		{
			name: "founding question",
			text: "What companies did Elon Musk found?",
			want: []common.Relation{common.RelationFounded},
		},
		{
			name: "leadership question",
			text: "Who is the CEO of NVIDIA?",
			want: []common.Relation{common.RelationLeads},
		},
		{
			name: "investment and partnership",
			text: "Did Microsoft invest in or partner with OpenAI?",
			want: []common.Relation{common.RelationInvestedIn, common.RelationPartnersWith},
		},
		{
			name: "no hint",
			text: "Tell me about NVIDIA",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RelationHints(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("unexpected hints: got %v, want %v", got, tt.want)
			}
		})
	}
}
