package block

import "github.com/osksim/engine/model"

func init() {
	register(model.VariantInport, newInport)
	register(model.VariantOutport, newOutport)
}

// inport and outport are pass-throughs that give a subsystem boundary
// stable port identities; the compiler's flattening step (§4.4 step 1)
// rewires every connection that crosses the boundary onto them, so they
// remain in the compiled plan and each passes its input through unchanged.
type inport struct{ base }

func newInport(def model.Block) (Block, error) {
	return &inport{base: newBase(model.VariantInport, def)}, nil
}
func (p *inport) Init(ctx *RunContext)   { p.out("out", 0) }
func (p *inport) Update(ctx *RunContext) { p.out("out", p.in("in")) }

type outport struct{ base }

func newOutport(def model.Block) (Block, error) {
	return &outport{base: newBase(model.VariantOutport, def)}, nil
}
func (p *outport) Init(ctx *RunContext)   { p.out("out", 0) }
func (p *outport) Update(ctx *RunContext) { p.out("out", p.in("in")) }

// Subsystem has no runtime block of its own: the compiler's flatten step
// expands every subsystem's children into the parent graph before the
// registry ever gets asked to build one (§4.4 step 1), so "subsystem" is
// deliberately absent from the registry.
