// Package block implements the uniform block contract (C3) and the
// concrete block variants (C4). Every variant embeds base, which supplies
// ID/Output/SetInput/Bind and no-op defaults for Report/Propagate so each
// variant file only overrides what its semantics actually need — the same
// embedding discipline the teacher uses for its ticking components.
package block

import (
	"math/rand"

	"github.com/osksim/engine/model"
	"github.com/osksim/engine/tick"
)

//go:generate mockgen -write_package_comment=false -package=$GOPACKAGE -destination=mock_block_test.go github.com/osksim/engine/block RandSource

// RandSource is the randomness a noise source pulls from. *rand.Rand
// satisfies it, and tests substitute a golang/mock-generated fake to make
// noise blocks deterministic without re-implementing PRNG internals.
type RandSource interface {
	Float64() float64
	NormFloat64() float64
}

// RunContext is what the kernel hands to every block operation. It is
// created once per Kernel and is never shared across runs.
type RunContext struct {
	Tick *tick.Tick
	RNG  RandSource
}

// NewRunContext builds a context with a seeded default RNG. Seed 0 is a
// valid, deterministic seed — noise blocks that want true nondeterminism
// must ask for it explicitly (Design Notes §9, "Noise determinism").
func NewRunContext(tk *tick.Tick, seed int64) *RunContext {
	return &RunContext{Tick: tk, RNG: rand.New(rand.NewSource(seed))}
}

// Block is the polymorphic unit the scheduler drives (§4.2).
type Block interface {
	ID() string
	Variant() model.Variant

	// Bind wires this block's input port to another block's output port.
	// The compiler resolves bindings; the kernel calls Bind once per
	// binding before the run starts.
	Bind(port string, source Block, srcPort string)

	Init(ctx *RunContext)
	Update(ctx *RunContext)
	Report(ctx *RunContext)
	Propagate(ctx *RunContext)

	Output(port string) float64
	SetInput(value float64, port string)
}

// base implements the plumbing every variant needs: pull-based inputs,
// named outputs, and no-op Report/Propagate for the many variants that are
// neither sinks nor state-holding.
type base struct {
	id      string
	variant model.Variant
	def     model.Block

	inputs  map[string]func() float64
	outputs map[string]float64
}

func newBase(variant model.Variant, def model.Block) base {
	return base{id: def.ID, variant: variant, def: def}
}

func (b *base) ID() string             { return b.id }
func (b *base) Variant() model.Variant { return b.variant }

func (b *base) Bind(port string, source Block, srcPort string) {
	if b.inputs == nil {
		b.inputs = make(map[string]func() float64)
	}
	b.inputs[port] = func() float64 { return source.Output(srcPort) }
}

func (b *base) SetInput(value float64, port string) {
	if b.inputs == nil {
		b.inputs = make(map[string]func() float64)
	}
	v := value
	b.inputs[port] = func() float64 { return v }
}

func (b *base) in(port string) float64 {
	if f, ok := b.inputs[port]; ok {
		return f()
	}
	return 0
}

// hasInput reports whether a binding exists for port, letting variants
// with optional inputs (e.g. Switch's 3rd operand) tell "unbound" from 0.
func (b *base) hasInput(port string) bool {
	_, ok := b.inputs[port]
	return ok
}

func (b *base) out(port string, v float64) {
	if b.outputs == nil {
		b.outputs = make(map[string]float64)
	}
	b.outputs[port] = v
}

func (b *base) Output(port string) float64 {
	return b.outputs[port]
}

func (b *base) Report(ctx *RunContext)    {}
func (b *base) Propagate(ctx *RunContext) {}
