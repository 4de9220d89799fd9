// Package scenarios builds the six worked models from §8's "Concrete
// scenarios", shared by the standalone cmd/osksim/scenarios/* demos and
// cmd/oskverify.
package scenarios

import "github.com/osksim/engine/model"

func cfg(solver model.Method, start, stop, step float64) model.SimConfig {
	return model.SimConfig{Solver: solver, StartTime: start, StopTime: stop, StepSize: step}
}

// ConstantToScope: Constant(5) -> Scope. RK4, [0,1], step 0.1.
func ConstantToScope() model.Model {
	return model.Model{
		ID:   "constant-to-scope",
		Name: "Constant to scope",
		Blocks: []model.Block{
			{ID: "c", Variant: model.VariantConstant, Params: map[string]float64{"value": 5}},
			{ID: "scope", Variant: model.VariantScope},
		},
		Connections: []model.Connection{
			{SrcBlockID: "c", SrcPortID: "out", DstBlockID: "scope", DstPortID: "in0"},
		},
		Config: cfg(model.RK4, 0, 1, 0.1),
	}
}

// StepIntegration: Step(stepTime=1,before=0,after=1) -> Integrator(ic=0) -> Scope.
// Euler, step 0.01, stop 3.
func StepIntegration() model.Model {
	return model.Model{
		ID:   "step-integration",
		Name: "Step integration",
		Blocks: []model.Block{
			{ID: "step", Variant: model.VariantStep, Params: map[string]float64{"stepTime": 1, "initial": 0, "final": 1}},
			{ID: "integ", Variant: model.VariantIntegrator, Params: map[string]float64{"initial": 0}},
			{ID: "scope", Variant: model.VariantScope},
		},
		Connections: []model.Connection{
			{SrcBlockID: "step", SrcPortID: "out", DstBlockID: "integ", DstPortID: "in"},
			{SrcBlockID: "integ", SrcPortID: "out", DstBlockID: "scope", DstPortID: "in0"},
		},
		Config: cfg(model.Euler, 0, 3, 0.01),
	}
}

// FeedbackLoop: Sum(+-) <- Constant(1) on in0, <- Integrator on in1;
// Integrator reads Sum. Realizes xdot = 1 - x. RK4, step 0.01, stop 5.
func FeedbackLoop() model.Model {
	return model.Model{
		ID:   "feedback-loop",
		Name: "Feedback loop via integrator",
		Blocks: []model.Block{
			{ID: "one", Variant: model.VariantConstant, Params: map[string]float64{"value": 1}},
			{ID: "sum", Variant: model.VariantSum, StrParams: map[string]string{"signs": "+-"}},
			{ID: "integ", Variant: model.VariantIntegrator, Params: map[string]float64{"initial": 0}},
			{ID: "scope", Variant: model.VariantScope},
		},
		Connections: []model.Connection{
			{SrcBlockID: "one", SrcPortID: "out", DstBlockID: "sum", DstPortID: "in0"},
			{SrcBlockID: "integ", SrcPortID: "out", DstBlockID: "sum", DstPortID: "in1"},
			{SrcBlockID: "sum", SrcPortID: "out", DstBlockID: "integ", DstPortID: "in"},
			{SrcBlockID: "integ", SrcPortID: "out", DstBlockID: "scope", DstPortID: "in0"},
		},
		Config: cfg(model.RK4, 0, 5, 0.01),
	}
}

// AlgebraicLoopRejection: Gain(2) -> Gain(0.5) -> Gain(2) -> first gain,
// a pure algebraic cycle with no state-holding variant anywhere in it.
func AlgebraicLoopRejection() model.Model {
	return model.Model{
		ID:   "algebraic-loop-rejection",
		Name: "Algebraic loop rejection",
		Blocks: []model.Block{
			{ID: "g1", Variant: model.VariantGain, Params: map[string]float64{"gain": 2}},
			{ID: "g2", Variant: model.VariantGain, Params: map[string]float64{"gain": 0.5}},
			{ID: "g3", Variant: model.VariantGain, Params: map[string]float64{"gain": 2}},
		},
		Connections: []model.Connection{
			{SrcBlockID: "g1", SrcPortID: "out", DstBlockID: "g2", DstPortID: "in"},
			{SrcBlockID: "g2", SrcPortID: "out", DstBlockID: "g3", DstPortID: "in"},
			{SrcBlockID: "g3", SrcPortID: "out", DstBlockID: "g1", DstPortID: "in"},
		},
		Config: cfg(model.RK4, 0, 1, 0.1),
	}
}

// SubsystemEquivalenceFlat is model A: Const(3) -> Gain(2) -> Scope.
func SubsystemEquivalenceFlat() model.Model {
	return model.Model{
		ID:   "subsystem-equivalence-flat",
		Name: "Subsystem equivalence (flat)",
		Blocks: []model.Block{
			{ID: "c", Variant: model.VariantConstant, Params: map[string]float64{"value": 3}},
			{ID: "gain", Variant: model.VariantGain, Params: map[string]float64{"gain": 2}},
			{ID: "scope", Variant: model.VariantScope},
		},
		Connections: []model.Connection{
			{SrcBlockID: "c", SrcPortID: "out", DstBlockID: "gain", DstPortID: "in"},
			{SrcBlockID: "gain", SrcPortID: "out", DstBlockID: "scope", DstPortID: "in0"},
		},
		Config: cfg(model.RK4, 0, 1, 0.1),
	}
}

// SubsystemEquivalenceNested is model B: Const(3) -> Subsystem{Inport(1) ->
// Gain(2) -> Outport(1)} -> Scope, which flattening must make bit-identical
// to SubsystemEquivalenceFlat.
func SubsystemEquivalenceNested() model.Model {
	sub := model.Block{
		ID:      "sub",
		Variant: model.VariantSubsystem,
		Inputs:  []model.Port{{ID: "in0", BlockID: "sub", Name: "in"}},
		Outputs: []model.Port{{ID: "out0", BlockID: "sub", Name: "out"}},
		Children: []model.Block{
			{ID: "inport", Variant: model.VariantInport, Params: map[string]float64{"portNumber": 1}},
			{ID: "gain", Variant: model.VariantGain, Params: map[string]float64{"gain": 2}},
			{ID: "outport", Variant: model.VariantOutport, Params: map[string]float64{"portNumber": 1}},
		},
		ChildConns: []model.Connection{
			{SrcBlockID: "inport", SrcPortID: "out", DstBlockID: "gain", DstPortID: "in"},
			{SrcBlockID: "gain", SrcPortID: "out", DstBlockID: "outport", DstPortID: "in"},
		},
		Expanded: true,
	}
	return model.Model{
		ID:   "subsystem-equivalence-nested",
		Name: "Subsystem equivalence (nested)",
		Blocks: []model.Block{
			{ID: "c", Variant: model.VariantConstant, Params: map[string]float64{"value": 3}},
			sub,
			{ID: "scope", Variant: model.VariantScope},
		},
		Connections: []model.Connection{
			{SrcBlockID: "c", SrcPortID: "out", DstBlockID: "sub", DstPortID: "in0"},
			{SrcBlockID: "sub", SrcPortID: "out0", DstBlockID: "scope", DstPortID: "in0"},
		},
		Config: cfg(model.RK4, 0, 1, 0.1),
	}
}

// SineWave: SineWave(A=1,f=1,phase=0,bias=0) -> Scope. Stop 1.0, step
// 0.001, RK4.
func SineWave() model.Model {
	return model.Model{
		ID:   "sine-wave",
		Name: "Sine wave",
		Blocks: []model.Block{
			{ID: "sine", Variant: model.VariantSineWave, Params: map[string]float64{"amplitude": 1, "frequency": 1, "phase": 0, "bias": 0}},
			{ID: "scope", Variant: model.VariantScope},
		},
		Connections: []model.Connection{
			{SrcBlockID: "sine", SrcPortID: "out", DstBlockID: "scope", DstPortID: "in0"},
		},
		Config: cfg(model.RK4, 0, 1.0, 0.001),
	}
}
