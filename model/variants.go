package model

// The full variant catalogue from the block library (§4.3). Names match
// the taxonomy's snake_case tags exactly, since the compiler's
// state-holding set and the kernel's UnknownBlockVariant fallback both key
// off these strings verbatim.
const (
	VariantConstant Variant = "constant"
	VariantStep     Variant = "step"
	VariantRamp     Variant = "ramp"
	VariantSineWave Variant = "sine_wave"
	VariantClock    Variant = "clock"
	VariantPulse    Variant = "pulse"
	VariantNoise    Variant = "noise"

	VariantScope       Variant = "scope"
	VariantToWorkspace Variant = "to_workspace"
	VariantDisplay     Variant = "display"
	VariantTerminator  Variant = "terminator"

	VariantSum          Variant = "sum"
	VariantGain         Variant = "gain"
	VariantProduct      Variant = "product"
	VariantAbs          Variant = "abs"
	VariantSign         Variant = "sign"
	VariantSaturation   Variant = "saturation"
	VariantDeadZone     Variant = "dead_zone"
	VariantMathFunction Variant = "math_function"
	VariantTrig         Variant = "trigonometry"

	VariantSwitch Variant = "switch"
	VariantMux    Variant = "mux"
	VariantDemux  Variant = "demux"

	VariantIntegrator     Variant = "integrator"
	VariantDerivative     Variant = "derivative"
	VariantTransferFunc   Variant = "transfer_function"
	VariantStateSpace     Variant = "state_space"
	VariantPID            Variant = "pid_controller"

	VariantUnitDelay              Variant = "unit_delay"
	VariantZeroOrderHold          Variant = "zero_order_hold"
	VariantDiscreteIntegrator     Variant = "discrete_integrator"
	VariantDiscreteDerivative     Variant = "discrete_derivative"
	VariantDiscreteTransferFunc   Variant = "discrete_transfer_function"

	VariantRateLimiter    Variant = "rate_limiter"
	VariantMovingAverage  Variant = "moving_average"
	VariantLowPassFilter  Variant = "low_pass_filter"
	VariantHighPassFilter Variant = "high_pass_filter"
	VariantBandPassFilter Variant = "band_pass_filter"
	VariantAnalogFilter   Variant = "analog_filter"
	VariantNotchFilter    Variant = "notch_filter"
	VariantBacklash       Variant = "backlash"

	VariantLookupTable1D       Variant = "lookup_table_1d"
	VariantLookupTable2D       Variant = "lookup_table_2d"
	VariantQuantizer           Variant = "quantizer"
	VariantRelay               Variant = "relay"
	VariantCoulombFriction     Variant = "coulomb_friction"
	VariantVariableTransportDelay Variant = "variable_transport_delay"

	VariantLuenbergerObserver Variant = "luenberger_observer"
	VariantKalmanFilter       Variant = "kalman_filter"
	VariantExtendedKalman     Variant = "extended_kalman_filter"

	VariantInport    Variant = "inport"
	VariantOutport   Variant = "outport"
	VariantSubsystem Variant = "subsystem"
)

// StateHolding is the fixed set of variants whose output during pass k is a
// function of prior state, not of the pass-k value of their input — the
// set the compiler's dependency graph uses to legally break cycles (§4.4
// step 3).
var StateHolding = map[Variant]bool{
	VariantIntegrator:             true,
	VariantDiscreteIntegrator:     true,
	VariantUnitDelay:              true,
	VariantTransferFunc:           true,
	VariantDiscreteTransferFunc:   true,
	VariantStateSpace:             true,
	VariantDerivative:             true,
	VariantDiscreteDerivative:     true,
	VariantPID:                    true,
	VariantZeroOrderHold:          true,
	VariantVariableTransportDelay: true,
	VariantLuenbergerObserver:     true,
	VariantKalmanFilter:           true,
	VariantExtendedKalman:         true,
	VariantMovingAverage:          true,
	VariantLowPassFilter:          true,
	VariantHighPassFilter:         true,
	VariantBandPassFilter:         true,
	VariantRateLimiter:            true,
	VariantBacklash:               true,
}
