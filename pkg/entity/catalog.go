// Package entity recognizes mentions of known graph entities in free text.
// It is a closed-vocabulary substring matcher over the node names of a
// built graph plus a short-alias table; there is no statistical model and
// no confidence scoring.
package entity

import (
	"sort"
	"strings"

	"pomelo/pkg/common"
	"pomelo/pkg/kg"
)

// DefaultAliases maps short surface forms to the full node names of the
// embedded demo dataset, so "elon" or "musk" resolve to "Elon Musk".
var DefaultAliases = map[string]string{
	"elon":     "Elon Musk",
	"musk":     "Elon Musk",
	"sam":      "Sam Altman",
	"altman":   "Sam Altman",
	"satya":    "Satya Nadella",
	"nadella":  "Satya Nadella",
	"jensen":   "Jensen Huang",
	"huang":    "Jensen Huang",
	"demis":    "Demis Hassabis",
	"hassabis": "Demis Hassabis",
}

// Catalog is the fixed vocabulary the recognizer scans with. Surface forms
// are kept sorted longest first so a full-name match is preferred over the
// short aliases that would otherwise fragment it.
type Catalog struct {
	surfaces  []string
	canonical map[string]string
	surnames  map[string]struct{}
}

// NewCatalog derives a catalog from a built graph: every node name becomes a
// surface form, the alias table adds short forms, and the last name token of
// each person node feeds the surname roster used for kind classification.
// Pass nil aliases for a catalog of plain node names only.
func NewCatalog(g *kg.Graph, aliases map[string]string) *Catalog {
	c := &Catalog{
		canonical: make(map[string]string),
		surnames:  make(map[string]struct{}),
	}

	for _, node := range g.Nodes() {
		c.addSurface(strings.ToLower(node.Name), node.Name)
		if node.Kind == common.KindPerson {
			tokens := strings.Fields(strings.ToLower(node.Name))
			if len(tokens) > 0 {
				c.surnames[tokens[len(tokens)-1]] = struct{}{}
			}
		}
	}

	for alias, name := range aliases {
		c.addSurface(strings.ToLower(alias), name)
	}

	// Longest first; ties break lexicographically to keep scans deterministic.
	sort.Slice(c.surfaces, func(i, j int) bool {
		if len(c.surfaces[i]) != len(c.surfaces[j]) {
			return len(c.surfaces[i]) > len(c.surfaces[j])
		}
		return c.surfaces[i] < c.surfaces[j]
	})

	return c
}

func (c *Catalog) addSurface(surface, name string) {
	if surface == "" {
		return
	}
	if _, exists := c.canonical[surface]; exists {
		return
	}
	c.canonical[surface] = name
	c.surfaces = append(c.surfaces, surface)
}
