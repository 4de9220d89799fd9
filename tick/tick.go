// Package tick implements the per-run global tick (C2) and the integrator
// cell (C1). Both are owned exclusively by one kernel.Kernel instance —
// never a package-level global — so two simulations can run concurrently
// without racing (§5, §9 "Process-wide tick").
package tick

import "github.com/osksim/engine/model"

// EPS is the fixed small positive constant used for time-comparison slack
// and domain-clamping throughout the engine.
const EPS = 1e-9

// Tick bundles the time-related state the kernel mutates once per pass and
// every block reads during Update/Propagate.
type Tick struct {
	T      float64 // current sim time
	Dt     float64 // current intra-step size (may be a fraction of Dtp)
	Dtp    float64 // primary step
	Kpass  int     // current pass index, 0..N-1
	Ready  bool    // true iff this pass finalizes an advancement of T
	Method Method
}

// New returns a tick initialized at the start of a run: t = start, the
// primary step set, pass 0, with Dt and Ready set for pass 0 (Ready is true
// only for a single-pass method such as Euler).
func New(method model.Method, start, step float64) *Tick {
	m := methodFor(method)
	tk := &Tick{
		T:      start,
		Dtp:    step,
		Kpass:  0,
		Method: m,
	}
	tk.applyPass()
	return tk
}

// Advance moves the tick to the next pass, wrapping Kpass to 0 and
// advancing T by Dtp when the method's last pass completes (§4.5).
func (tk *Tick) Advance() {
	tk.Kpass++
	if tk.Kpass >= tk.Method.Passes() {
		tk.Kpass = 0
		tk.T += tk.Dtp
	}
	tk.applyPass()
}

// applyPass sets Dt and Ready for the current Kpass per the method table
// in §4.1.
func (tk *Tick) applyPass() {
	tk.Dt = tk.Method.dtForPass(tk.Kpass, tk.Dtp)
	tk.Ready = tk.Kpass == tk.Method.Passes()-1
}

// Done reports whether the run has reached or passed stop, applying EPS
// slack the way sample-time comparisons do elsewhere in the engine.
func (tk *Tick) Done(stop float64) bool {
	return tk.T >= stop-EPS
}
