package kg

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"pomelo/pkg/common"

	"github.com/go-playground/validator"
)

//go:embed seed.json
var defaultSeedData []byte

// PersonSeed is one person record of the bootstrap contract.
type PersonSeed struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
	Role string `json:"role"`
}

// OrganizationSeed is one organization record of the bootstrap contract.
type OrganizationSeed struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Industry string `json:"industry"`
}

// RelationshipSeed is one relationship record of the bootstrap contract.
// Source and target must reference seeded node ids; BuildGraph fails when
// they do not.
type RelationshipSeed struct {
	Source   string           `json:"source" validate:"required"`
	Target   string           `json:"target" validate:"required"`
	Relation string           `json:"relation" validate:"required"`
	Attrs    common.EdgeAttrs `json:"attrs"`
}

// Seed is the bootstrap data for BuildGraph: two node collections and a
// relationship collection.
type Seed struct {
	People        []PersonSeed       `json:"people" validate:"dive"`
	Organizations []OrganizationSeed `json:"organizations" validate:"dive"`
	Relationships []RelationshipSeed `json:"relationships" validate:"dive"`
}

// DefaultSeed returns the embedded demo dataset of tech-industry people,
// companies, and their relationships.
func DefaultSeed() (Seed, error) {
	return ParseSeed(defaultSeedData)
}

// LoadSeedFile reads and validates a JSON seed file.
func LoadSeedFile(path string) (Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("failed to read seed file: %w", err)
	}
	return ParseSeed(data)
}

// ParseSeed decodes and validates raw seed JSON.
func ParseSeed(data []byte) (Seed, error) {
	var seed Seed
	if err := json.Unmarshal(data, &seed); err != nil {
		return Seed{}, fmt.Errorf("failed to parse seed data: %w", err)
	}
	if err := validator.New().Struct(seed); err != nil {
		return Seed{}, fmt.Errorf("invalid seed data: %w", err)
	}
	return seed, nil
}

// BuildGraph constructs the read-only knowledge graph from seed data. It
// fails only on malformed seeds: duplicate node ids or relationships whose
// endpoints do not reference existing nodes. Such errors are fatal at
// startup; the graph is never partially usable.
func BuildGraph(seed Seed) (*Graph, error) {
	g := &Graph{
		nodes: make(map[string]common.Node),
		out:   make(map[string][]int),
		in:    make(map[string][]int),
	}

	for _, p := range seed.People {
		err := g.addNode(common.Node{
			ID:   p.ID,
			Name: p.Name,
			Kind: common.KindPerson,
			Role: p.Role,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to add person: %w", err)
		}
	}

	for _, o := range seed.Organizations {
		err := g.addNode(common.Node{
			ID:       o.ID,
			Name:     o.Name,
			Kind:     common.KindOrganization,
			Industry: o.Industry,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to add organization: %w", err)
		}
	}

	for _, r := range seed.Relationships {
		err := g.addEdge(common.Edge{
			Source:   r.Source,
			Target:   r.Target,
			Relation: common.Relation(r.Relation),
			Attrs:    r.Attrs,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to add relationship: %w", err)
		}
	}

	return g, nil
}
