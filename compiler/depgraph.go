package compiler

import "github.com/osksim/engine/model"

// graph is the dependency graph over block ids built from flattened
// connections, after state-breaking edges have been excluded from the
// adjacency used for ordering (§4.4 step 3).
type graph struct {
	order    []string            // block ids in the order they were first seen
	index    map[string]int      // block id -> position in order
	adj      map[string][]string // successors, state-broken
	indegree map[string]int
}

// buildGraph returns the state-broken dependency graph used for cycle
// detection and ordering (step 3); the full input/output adjacency is not
// kept.
func buildGraph(blocks []model.Block, conns []model.Connection) *graph {
	g := &graph{
		index:    make(map[string]int),
		adj:      make(map[string][]string),
		indegree: make(map[string]int),
	}
	variantOf := make(map[string]model.Variant, len(blocks))
	for _, b := range blocks {
		variantOf[b.ID] = b.Variant
		g.addNode(b.ID)
	}

	for _, c := range conns {
		g.addNode(c.SrcBlockID)
		g.addNode(c.DstBlockID)
		if model.StateHolding[variantOf[c.SrcBlockID]] {
			// State-holding source: this edge carries data but does not
			// constrain ordering — it cleanly breaks a cycle.
			continue
		}
		g.adj[c.SrcBlockID] = append(g.adj[c.SrcBlockID], c.DstBlockID)
		g.indegree[c.DstBlockID]++
	}
	return g
}

func (g *graph) addNode(id string) {
	if _, ok := g.index[id]; ok {
		return
	}
	g.index[id] = len(g.order)
	g.order = append(g.order, id)
	if _, ok := g.indegree[id]; !ok {
		g.indegree[id] = 0
	}
}
