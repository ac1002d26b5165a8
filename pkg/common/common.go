package common

// Kind classifies a node in the knowledge graph.
type Kind string

const (
	KindPerson       Kind = "person"
	KindOrganization Kind = "organization"
)

// Relation labels a directed edge between two nodes.
//
// The constants below cover every relation the bundled dataset uses. The
// type stays an open string so seed files may introduce new labels;
// rendering falls back to "<source> <relation> <target>" for labels without
// a sentence template.
type Relation string

const (
	RelationFounded      Relation = "founded"
	RelationCoFounded    Relation = "co_founded"
	RelationLeads        Relation = "leads"
	RelationWorksAt      Relation = "works_at"
	RelationInvestedIn   Relation = "invested_in"
	RelationAcquired     Relation = "acquired"
	RelationPartnersWith Relation = "partners_with"
	RelationSupplies     Relation = "supplies"
)

// Direction tags whether a fact was discovered on an outgoing or incoming
// edge of the node it was collected from.
type Direction string

const (
	DirectionOutgoing Direction = "outgoing"
	DirectionIncoming Direction = "incoming"
)

// Node is an entity in the knowledge graph: a person or an organization.
// Nodes are immutable once the graph has been built.
//
// Kind-specific attributes live in fixed fields (Role for persons, Industry
// for organizations); anything else a seed file carries ends up in Extra.
type Node struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Kind     Kind              `json:"kind"`
	Role     string            `json:"role,omitempty"`
	Industry string            `json:"industry,omitempty"`
	Extra    map[string]string `json:"extra,omitempty"`
}

// EdgeAttrs holds the attributes of a relationship. The fixed fields are the
// ones the context builder knows how to render; Extra is a side mapping for
// forward compatibility with attributes the renderer ignores.
type EdgeAttrs struct {
	Year    int               `json:"year,omitempty"`
	Amount  string            `json:"amount,omitempty"`
	Role    string            `json:"role,omitempty"`
	Product string            `json:"product,omitempty"`
	Extra   map[string]string `json:"extra,omitempty"`
}

// Edge is a directed, labeled, attributed relationship between two nodes.
// Multiple parallel edges between the same ordered pair are allowed
// (multi-relational graph). Edges are immutable once added.
type Edge struct {
	Source   string    `json:"source"`
	Target   string    `json:"target"`
	Relation Relation  `json:"relation"`
	Attrs    EdgeAttrs `json:"attrs"`
}

// Fact is the display-ready reading of one edge, annotated with the resolved
// names of both endpoints and the direction relative to the node it was
// discovered from.
type Fact struct {
	Source     string    `json:"source"`
	SourceName string    `json:"source_name"`
	Target     string    `json:"target"`
	TargetName string    `json:"target_name"`
	Relation   Relation  `json:"relation"`
	Attrs      EdgeAttrs `json:"attrs"`
	Direction  Direction `json:"direction"`
}

// FactKey is the identity of a fact for deduplication. Two facts discovered
// via different traversal paths collapse when their keys are equal.
type FactKey struct {
	Source   string
	Target   string
	Relation Relation
}

// Key returns the deduplication key of the fact.
func (f Fact) Key() FactKey {
	return FactKey{Source: f.Source, Target: f.Target, Relation: f.Relation}
}

// Mention is a recognized reference to a known entity found in question
// text: the resolved canonical name, the inferred kind, and the literal
// surface form that matched.
type Mention struct {
	Name    string `json:"name"`
	Kind    Kind   `json:"kind"`
	Matched string `json:"matched"`
}
