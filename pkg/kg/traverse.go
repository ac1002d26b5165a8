package kg

import "pomelo/pkg/common"

// Traversal is the result of one bounded breadth-first walk: the nodes
// visited in discovery order and the deduplicated facts collected from them.
type Traversal struct {
	Start   string        `json:"start"`
	Visited []string      `json:"visited"`
	Facts   []common.Fact `json:"facts"`
}

// Traverse walks the graph breadth-first from start up to maxDepth hops,
// following edges in both directions. Every visited node contributes all of
// its incident relationships as facts; neighbors are only enqueued while the
// current depth is below the limit, so maxDepth 0 yields exactly the start
// node's direct relationships. Visited nodes are never re-expanded, which
// keeps cyclic graphs from looping. Facts are deduplicated by
// (source, target, relation) in first-seen order before returning.
//
// An unknown start id yields an empty traversal.
func (g *Graph) Traverse(start string, maxDepth int) Traversal {
	if _, ok := g.nodes[start]; !ok {
		return Traversal{Start: start}
	}

	type item struct {
		id    string
		depth int
	}

	visited := make(map[string]struct{})
	var order []string
	var facts []common.Fact

	queue := []item{{id: start, depth: 0}}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if _, ok := visited[current.id]; ok || current.depth > maxDepth {
			continue
		}
		visited[current.id] = struct{}{}
		order = append(order, current.id)

		facts = append(facts, g.RelationshipsOf(current.id)...)

		if current.depth < maxDepth {
			neighbors := append(g.Successors(current.id), g.Predecessors(current.id)...)
			for _, neighbor := range neighbors {
				if _, ok := visited[neighbor]; ok {
					continue
				}
				queue = append(queue, item{id: neighbor, depth: current.depth + 1})
			}
		}
	}

	return Traversal{
		Start:   start,
		Visited: order,
		Facts:   DedupeFacts(facts),
	}
}

// DedupeFacts collapses facts sharing the same (source, target, relation)
// key, keeping the first occurrence and preserving order. Running it on an
// already-deduplicated list returns an equal list.
func DedupeFacts(in []common.Fact) []common.Fact {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[common.FactKey]struct{}, len(in))
	out := make([]common.Fact, 0, len(in))
	for _, fact := range in {
		key := fact.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, fact)
	}
	return out
}
