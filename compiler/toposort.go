package compiler

import "github.com/osksim/engine/oskerr"

type color int

const (
	white color = iota
	gray
	black
)

// detectCycle runs DFS coloring over the state-broken graph; encountering a
// gray node is a cycle, reported with the path from that node as the
// witness (§4.4 step 4).
func detectCycle(g *graph) error {
	colors := make(map[string]color, len(g.order))
	var stack []string

	var visit func(id string) error
	visit = func(id string) error {
		colors[id] = gray
		stack = append(stack, id)
		for _, next := range g.adj[id] {
			switch colors[next] {
			case white:
				if err := visit(next); err != nil {
					return err
				}
			case gray:
				witness := loopWitness(stack, next)
				return oskerr.New(oskerr.AlgebraicLoop, witness, "algebraic loop through %v", witness)
			case black:
				// already fully explored, no cycle through here
			}
		}
		colors[id] = black
		stack = stack[:len(stack)-1]
		return nil
	}

	for _, id := range g.order {
		if colors[id] == white {
			if err := visit(id); err != nil {
				return err
			}
		}
	}
	return nil
}

// loopWitness returns the portion of the DFS stack from the revisited gray
// node to the top, i.e. the cycle itself.
func loopWitness(stack []string, revisited string) []string {
	for i, id := range stack {
		if id == revisited {
			out := make([]string, len(stack)-i)
			copy(out, stack[i:])
			return out
		}
	}
	return stack
}

// topoSort runs Kahn's algorithm on the state-broken graph, breaking ties
// by the order ids were first discovered (block list order, then
// connection order) so the result is deterministic (§4.4 step 5).
func topoSort(g *graph) ([]string, error) {
	indeg := make(map[string]int, len(g.indegree))
	for k, v := range g.indegree {
		indeg[k] = v
	}

	var queue []string
	for _, id := range g.order {
		if indeg[id] == 0 {
			queue = append(queue, id)
		}
	}

	var result []string
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		result = append(result, id)
		for _, next := range g.adj[id] {
			indeg[next]--
			if indeg[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if len(result) != len(g.order) {
		var stuck []string
		for _, id := range g.order {
			if indeg[id] > 0 {
				stuck = append(stuck, id)
			}
		}
		return nil, oskerr.New(oskerr.InternalCompile, stuck, "topological sort left %d node(s) with nonzero indegree", len(stuck))
	}
	return result, nil
}
