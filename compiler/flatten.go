package compiler

import (
	"github.com/osksim/engine/model"
	"github.com/osksim/engine/oskerr"
)

// flatten depth-first replaces every Subsystem block with its children, id
// prefixed by the parent's id, and rewires external connections through the
// matching Inport/Outport child (§4.4 step 1).
func flatten(m model.Model) (model.Model, error) {
	blocks, conns, err := flattenBlocks(m.Blocks, m.Connections, "")
	if err != nil {
		return model.Model{}, err
	}
	m.Blocks = blocks
	m.Connections = conns
	return m, nil
}

func flattenBlocks(blocks []model.Block, conns []model.Connection, prefix string) ([]model.Block, []model.Connection, error) {
	var out []model.Block

	// Prefix this level's own connections up front, once, so every
	// subsequent step works in absolute-id space; nothing below this line
	// may prefix a connection a second time.
	atThisLevel := make([]model.Connection, len(conns))
	for i, c := range conns {
		atThisLevel[i] = prefixConnection(c, prefix)
	}

	for _, b := range blocks {
		if b.Variant != model.VariantSubsystem {
			out = append(out, prefixBlock(b, prefix))
			continue
		}

		childPrefix := prefixID(prefix, b.ID) + "."
		children, childConns, err := flattenBlocks(b.Children, b.ChildConns, childPrefix)
		if err != nil {
			return nil, nil, err
		}
		out = append(out, children...)

		subsystemID := prefixID(prefix, b.ID)
		atThisLevel = rewireSubsystem(atThisLevel, subsystemID, b, childPrefix)
		atThisLevel = append(atThisLevel, childConns...)
	}

	return out, atThisLevel, nil
}

func prefixID(prefix, id string) string {
	if prefix == "" {
		return id
	}
	return prefix + id
}

func prefixBlock(b model.Block, prefix string) model.Block {
	if prefix == "" {
		return b
	}
	b.ID = prefix + b.ID
	return b
}

func prefixConnection(c model.Connection, prefix string) model.Connection {
	if prefix == "" {
		return c
	}
	c.SrcBlockID = prefix + c.SrcBlockID
	c.DstBlockID = prefix + c.DstBlockID
	return c
}

// rewireSubsystem rewrites every connection touching the subsystem block
// itself: an edge ending at subsystem input port k becomes an edge ending
// at the child Inport whose portNumber = k+1; an edge originating from
// subsystem output port k is rerouted to originate from the child Outport
// whose portNumber = k+1. Edges still targeting the subsystem block
// directly afterward are dropped.
func rewireSubsystem(conns []model.Connection, subsystemID string, sub model.Block, childPrefix string) []model.Connection {
	inportFor := make(map[int]string)
	outportFor := make(map[int]string)
	for _, c := range sub.Children {
		switch c.Variant {
		case model.VariantInport:
			n := int(c.Param("portNumber", 1))
			inportFor[n] = childPrefix + c.ID
		case model.VariantOutport:
			n := int(c.Param("portNumber", 1))
			outportFor[n] = childPrefix + c.ID
		}
	}

	inputIndex := make(map[string]int, len(sub.Inputs))
	for i, p := range sub.Inputs {
		inputIndex[p.ID] = i
	}
	outputIndex := make(map[string]int, len(sub.Outputs))
	for i, p := range sub.Outputs {
		outputIndex[p.ID] = i
	}

	out := make([]model.Connection, 0, len(conns))
	for _, c := range conns {
		switch {
		case c.DstBlockID == subsystemID:
			if idx, ok := inputIndex[c.DstPortID]; ok {
				if target, ok := inportFor[idx+1]; ok {
					c.DstBlockID = target
					c.DstPortID = "in"
					out = append(out, c)
				}
			}
			// No matching Inport: edge dropped.
		case c.SrcBlockID == subsystemID:
			if idx, ok := outputIndex[c.SrcPortID]; ok {
				if source, ok := outportFor[idx+1]; ok {
					c.SrcBlockID = source
					c.SrcPortID = "out"
					out = append(out, c)
				}
			}
		default:
			out = append(out, c)
		}
	}
	return out
}

func validateStructure(m model.Model) error {
	if len(m.Blocks) == 0 {
		return oskerr.New(oskerr.EmptyModel, nil, "model has no blocks")
	}
	ids := make(map[string]bool, len(m.Blocks))
	for _, b := range m.Blocks {
		if b.ID == "" {
			return oskerr.New(oskerr.InternalCompile, nil, "block with empty id")
		}
		ids[b.ID] = true
	}
	for _, c := range m.Connections {
		if c.SrcBlockID == "" || c.DstBlockID == "" {
			return oskerr.New(oskerr.InternalCompile, nil, "connection with empty endpoint")
		}
		if !ids[c.SrcBlockID] || !ids[c.DstBlockID] {
			return oskerr.New(oskerr.InternalCompile, []string{c.SrcBlockID, c.DstBlockID}, "connection references unknown block")
		}
	}
	return nil
}
