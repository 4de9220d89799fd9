package compiler

import "github.com/osksim/engine/model"

// Compile turns a raw model into an ordered execution plan, or fails with a
// taxonomy-tagged oskerr.Error (§4.4).
func Compile(m model.Model) (Plan, error) {
	flat, err := flatten(m)
	if err != nil {
		return Plan{}, err
	}
	if err := validateStructure(flat); err != nil {
		return Plan{}, err
	}

	g := buildGraph(flat.Blocks, flat.Connections)
	if err := detectCycle(g); err != nil {
		return Plan{}, err
	}
	order, err := topoSort(g)
	if err != nil {
		return Plan{}, err
	}

	byID := make(map[string]model.Block, len(flat.Blocks))
	for _, b := range flat.Blocks {
		byID[b.ID] = b
	}
	bindingsFor := make(map[string][]Binding)
	for _, c := range flat.Connections {
		bindingsFor[c.DstBlockID] = append(bindingsFor[c.DstBlockID], Binding{
			SrcBlockID: c.SrcBlockID,
			SrcPortID:  c.SrcPortID,
			DstPortID:  c.DstPortID,
		})
	}

	plan := Plan{Config: flat.Config}
	for i, id := range order {
		b, ok := byID[id]
		if !ok {
			// A connection endpoint that never appeared as a declared
			// block; validateStructure already rules this out, but guard
			// against it rather than panic on a map miss.
			continue
		}
		plan.Blocks = append(plan.Blocks, CompiledBlock{
			Variant:  b.Variant,
			Params:   b,
			Index:    i,
			Bindings: bindingsFor[id],
		})
	}
	return plan, nil
}
