// Package catalog represents the BlockRegistry catalogue collaborator
// (§6): a narrow interface a UI could query, backed by one in-repo
// implementation built from the same variant set block's constructors
// register. No concrete catalogue UI body belongs in this module.
package catalog

import (
	"github.com/osksim/engine/block"
	"github.com/osksim/engine/model"
)

// Descriptor is the catalogue-facing metadata for one block variant.
type Descriptor struct {
	Variant  model.Variant
	Category string
}

// Registry answers what block variants exist, for validation and UI
// collaborators; the simulation engine itself never consults it —
// blocks are dispatched purely by the variant tag on each instance.
type Registry interface {
	Variants() []model.Variant
	Describe(v model.Variant) (Descriptor, bool)
}

// Static is the one in-repo Registry implementation, built once from
// block.Variants().
type Static struct {
	descriptors map[model.Variant]Descriptor
	ordered     []model.Variant
}

// NewStatic builds a Registry from the block package's registered variants,
// assigning each the category from its name in §4.3's table.
func NewStatic() *Static {
	s := &Static{descriptors: make(map[model.Variant]Descriptor)}
	for _, v := range block.Variants() {
		d := Descriptor{Variant: v, Category: categoryOf(v)}
		s.descriptors[v] = d
		s.ordered = append(s.ordered, v)
	}
	return s
}

func (s *Static) Variants() []model.Variant { return s.ordered }

func (s *Static) Describe(v model.Variant) (Descriptor, bool) {
	d, ok := s.descriptors[v]
	return d, ok
}

func categoryOf(v model.Variant) string {
	switch v {
	case model.VariantConstant, model.VariantStep, model.VariantRamp, model.VariantSineWave,
		model.VariantClock, model.VariantPulse, model.VariantNoise:
		return "source"
	case model.VariantScope, model.VariantToWorkspace, model.VariantDisplay, model.VariantTerminator:
		return "sink"
	case model.VariantSum, model.VariantGain, model.VariantProduct, model.VariantAbs, model.VariantSign,
		model.VariantSaturation, model.VariantDeadZone, model.VariantMathFunction, model.VariantTrig:
		return "math"
	case model.VariantSwitch, model.VariantMux, model.VariantDemux:
		return "routing"
	case model.VariantIntegrator, model.VariantDerivative, model.VariantTransferFunc,
		model.VariantStateSpace, model.VariantPID:
		return "continuous"
	case model.VariantUnitDelay, model.VariantZeroOrderHold, model.VariantDiscreteIntegrator,
		model.VariantDiscreteDerivative, model.VariantDiscreteTransferFunc:
		return "discrete"
	case model.VariantRateLimiter, model.VariantMovingAverage, model.VariantLowPassFilter,
		model.VariantHighPassFilter, model.VariantBandPassFilter, model.VariantAnalogFilter,
		model.VariantNotchFilter, model.VariantBacklash:
		return "signal-processing"
	case model.VariantLookupTable1D, model.VariantLookupTable2D, model.VariantQuantizer,
		model.VariantRelay, model.VariantCoulombFriction, model.VariantVariableTransportDelay:
		return "nonlinear"
	case model.VariantLuenbergerObserver, model.VariantKalmanFilter, model.VariantExtendedKalman:
		return "observer"
	case model.VariantInport, model.VariantOutport, model.VariantSubsystem:
		return "hierarchy"
	default:
		return "unknown"
	}
}
