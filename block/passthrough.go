package block

import "github.com/osksim/engine/model"

// passThrough is the unity-gain substitute kernel.New installs in place
// of a block that failed to construct (§7: UnknownBlockVariant and
// BadParameters both recover this way). It has one input and one output
// port, named "in" and "out" like Gain, so it can be bound into any plan
// a failed block would have occupied.
type passThrough struct {
	base
}

// NewPassThrough builds a unity-gain pass-through for def, preserving def's
// id/ports so the rest of the plan's bindings still resolve.
func NewPassThrough(def model.Block) Block {
	return &passThrough{base: newBase(def.Variant, def)}
}

func (p *passThrough) Init(ctx *RunContext) { p.out("out", 0) }

func (p *passThrough) Update(ctx *RunContext) {
	p.out("out", p.in("in"))
}
