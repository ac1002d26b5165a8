package kg

import (
	"fmt"
	"strings"

	"pomelo/pkg/common"
)

// Graph is the in-memory multi-relational knowledge graph. It is built once
// at process start via BuildGraph and is read-only afterward, so a single
// instance may be shared by concurrent pipeline runs without locking.
type Graph struct {
	nodes map[string]common.Node
	order []string
	edges []common.Edge
	out   map[string][]int
	in    map[string][]int
}

// Stats summarizes the size of the graph.
type Stats struct {
	Nodes         int `json:"nodes"`
	Edges         int `json:"edges"`
	People        int `json:"people"`
	Organizations int `json:"organizations"`
}

// Node returns the node with the given id.
func (g *Graph) Node(id string) (common.Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []common.Node {
	nodes := make([]common.Node, 0, len(g.order))
	for _, id := range g.order {
		nodes = append(nodes, g.nodes[id])
	}
	return nodes
}

// FindNodesByName finds nodes by case-insensitive mutual substring match:
// a node matches when the lowercased query is contained in the lowercased
// node name or the other way around. The rule intentionally lets "elon"
// match "Elon Musk" and an over-long query match a shorter name; very short
// queries can over-match, which callers accept. Results come back in
// insertion order, making lookups deterministic for a fixed graph.
func (g *Graph) FindNodesByName(query string) []common.Node {
	queryLower := strings.ToLower(query)

	var matches []common.Node
	for _, id := range g.order {
		node := g.nodes[id]
		nameLower := strings.ToLower(node.Name)
		if strings.Contains(nameLower, queryLower) || strings.Contains(queryLower, nameLower) {
			matches = append(matches, node)
		}
	}
	return matches
}

// RelationshipsOf returns one fact per edge touching the node, outgoing
// edges first, each tagged with its direction. Nothing is deduplicated at
// this layer; collapsing facts rediscovered via different paths is the
// traversal's job.
func (g *Graph) RelationshipsOf(id string) []common.Fact {
	var facts []common.Fact

	for _, idx := range g.out[id] {
		edge := g.edges[idx]
		facts = append(facts, g.edgeFact(edge, common.DirectionOutgoing))
	}
	for _, idx := range g.in[id] {
		edge := g.edges[idx]
		facts = append(facts, g.edgeFact(edge, common.DirectionIncoming))
	}

	return facts
}

func (g *Graph) edgeFact(edge common.Edge, direction common.Direction) common.Fact {
	return common.Fact{
		Source:     edge.Source,
		SourceName: g.nodes[edge.Source].Name,
		Target:     edge.Target,
		TargetName: g.nodes[edge.Target].Name,
		Relation:   edge.Relation,
		Attrs:      edge.Attrs,
		Direction:  direction,
	}
}

// Successors returns the distinct targets of the node's outgoing edges in
// edge insertion order.
func (g *Graph) Successors(id string) []string {
	return g.neighborIDs(g.out[id], func(e common.Edge) string { return e.Target })
}

// Predecessors returns the distinct sources of the node's incoming edges in
// edge insertion order.
func (g *Graph) Predecessors(id string) []string {
	return g.neighborIDs(g.in[id], func(e common.Edge) string { return e.Source })
}

func (g *Graph) neighborIDs(indexes []int, pick func(common.Edge) string) []string {
	seen := make(map[string]struct{}, len(indexes))
	var ids []string
	for _, idx := range indexes {
		id := pick(g.edges[idx])
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// Stats returns node and edge counts for the graph.
func (g *Graph) Stats() Stats {
	s := Stats{
		Nodes: len(g.nodes),
		Edges: len(g.edges),
	}
	for _, node := range g.nodes {
		switch node.Kind {
		case common.KindPerson:
			s.People++
		case common.KindOrganization:
			s.Organizations++
		}
	}
	return s
}

func (g *Graph) addNode(node common.Node) error {
	if _, exists := g.nodes[node.ID]; exists {
		return fmt.Errorf("duplicate node id %q", node.ID)
	}
	g.nodes[node.ID] = node
	g.order = append(g.order, node.ID)
	return nil
}

func (g *Graph) addEdge(edge common.Edge) error {
	if _, ok := g.nodes[edge.Source]; !ok {
		return fmt.Errorf("relationship %q references unknown source node %q", edge.Relation, edge.Source)
	}
	if _, ok := g.nodes[edge.Target]; !ok {
		return fmt.Errorf("relationship %q references unknown target node %q", edge.Relation, edge.Target)
	}

	idx := len(g.edges)
	g.edges = append(g.edges, edge)
	g.out[edge.Source] = append(g.out[edge.Source], idx)
	g.in[edge.Target] = append(g.in[edge.Target], idx)
	return nil
}
