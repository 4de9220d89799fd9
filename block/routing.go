package block

import (
	"github.com/osksim/engine/model"
)

func init() {
	register(model.VariantSwitch, newSwitch)
	register(model.VariantMux, newMux)
	register(model.VariantDemux, newDemux)
}

// switchBlock forwards "in0" when the control input ("in1") satisfies
// criterion against threshold, else forwards "in2" (§4.3: Switch).
type switchBlock struct {
	base
	criterion string
	threshold float64
}

func newSwitch(def model.Block) (Block, error) {
	return &switchBlock{
		base:      newBase(model.VariantSwitch, def),
		criterion: def.StrParam("criterion", ">="),
		threshold: def.Param("threshold", 0),
	}, nil
}

func (s *switchBlock) Init(ctx *RunContext) { s.out("out", 0) }
func (s *switchBlock) Update(ctx *RunContext) {
	control := s.in("in1")
	pick := false
	switch s.criterion {
	case ">=":
		pick = control >= s.threshold
	case ">":
		pick = control > s.threshold
	case "!=", "<>":
		pick = control != s.threshold
	default:
		pick = control >= s.threshold
	}
	if pick {
		s.out("out", s.in("in0"))
	} else {
		s.out("out", s.in("in2"))
	}
}

// mux packs its first input into the first element of a scalar-only
// output (§4.3 "declared; scalar-only implementation packs/unpacks first
// element"); a real vector bus is a non-goal.
type mux struct{ base }

func newMux(def model.Block) (Block, error) { return &mux{base: newBase(model.VariantMux, def)}, nil }
func (m *mux) Init(ctx *RunContext)         { m.out("out", 0) }
func (m *mux) Update(ctx *RunContext)       { m.out("out", m.in("in0")) }

// demux unpacks the single input into its first (and only modeled)
// output channel.
type demux struct{ base }

func newDemux(def model.Block) (Block, error) {
	return &demux{base: newBase(model.VariantDemux, def)}, nil
}
func (d *demux) Init(ctx *RunContext)   { d.out("out0", 0) }
func (d *demux) Update(ctx *RunContext) { d.out("out0", d.in("in")) }
