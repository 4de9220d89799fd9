// Package compiler turns a raw model.Model into a linearly ordered
// execution plan: subsystem flattening, dependency-graph construction,
// algebraic-loop rejection, and a stable topological sort (§4.4).
package compiler

import "github.com/osksim/engine/model"

// Binding records one resolved input wire: block DstBlockID's port
// DstPortID pulls from block SrcBlockID's port SrcPortID.
type Binding struct {
	SrcBlockID string
	SrcPortID  string
	DstPortID  string
}

// CompiledBlock is one entry of a Plan: the block definition plus its
// position in execution order and its resolved input bindings.
type CompiledBlock struct {
	Variant  model.Variant
	Params   model.Block
	Index    int
	Bindings []Binding
}

// Plan is the compiler's output: blocks in the order the kernel must walk
// them every pass.
type Plan struct {
	Blocks []CompiledBlock
	Config model.SimConfig
}

// StateHolding is model.StateHolding re-exported from package compiler.
// The compiler's own dependency graph reads model.StateHolding directly,
// and the kernel does not consult it.
var StateHolding = model.StateHolding
