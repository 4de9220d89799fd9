package block

import (
	"math"
	"sort"

	"github.com/osksim/engine/model"
)

func init() {
	register(model.VariantLookupTable1D, newLookupTable1D)
	register(model.VariantLookupTable2D, newLookupTable2D)
	register(model.VariantQuantizer, newQuantizer)
	register(model.VariantRelay, newRelay)
	register(model.VariantCoulombFriction, newCoulombFriction)
	register(model.VariantVariableTransportDelay, newVariableTransportDelay)
}

// lookupTable1D interpolates linearly between breakpoints and extrapolates
// linearly using the slope of the nearest segment beyond the table's ends.
type lookupTable1D struct {
	base
	x, y []float64
}

func newLookupTable1D(def model.Block) (Block, error) {
	x := readCoeffs(def, "x")
	y := readCoeffs(def, "y")
	if len(x) == 0 {
		x, y = []float64{0, 1}, []float64{0, 1}
	}
	return &lookupTable1D{base: newBase(model.VariantLookupTable1D, def), x: x, y: y}, nil
}

func (l *lookupTable1D) Init(ctx *RunContext)   { l.out("out", l.eval(0)) }
func (l *lookupTable1D) Update(ctx *RunContext) { l.out("out", l.eval(l.in("in"))) }

func (l *lookupTable1D) eval(u float64) float64 {
	n := len(l.x)
	if n == 1 {
		return l.y[0]
	}
	i := sort.SearchFloat64s(l.x, u)
	switch {
	case i <= 0:
		i = 1
	case i >= n:
		i = n - 1
	}
	x0, x1 := l.x[i-1], l.x[i]
	y0, y1 := l.y[i-1], l.y[i]
	if x1 == x0 {
		return y0
	}
	t := (u - x0) / (x1 - x0)
	return y0 + t*(y1-y0)
}

// lookupTable2D bilinearly interpolates over a rectangular grid. Rows
// (x breakpoints) and columns (y breakpoints) are read from "x.i"/"y.j";
// the table values come from "z.i.j", row-major over x then y.
type lookupTable2D struct {
	base
	x, y []float64
	z    [][]float64
}

func newLookupTable2D(def model.Block) (Block, error) {
	x := readCoeffs(def, "x")
	y := readCoeffs(def, "y")
	if len(x) == 0 {
		x = []float64{0, 1}
	}
	if len(y) == 0 {
		y = []float64{0, 1}
	}
	z := make([][]float64, len(x))
	for i := range z {
		z[i] = make([]float64, len(y))
		for j := range z[i] {
			z[i][j] = def.Param("z."+itoa(i)+"."+itoa(j), 0)
		}
	}
	return &lookupTable2D{base: newBase(model.VariantLookupTable2D, def), x: x, y: y, z: z}, nil
}

func (l *lookupTable2D) Init(ctx *RunContext)   { l.out("out", l.eval(0, 0)) }
func (l *lookupTable2D) Update(ctx *RunContext) { l.out("out", l.eval(l.in("in0"), l.in("in1"))) }

func (l *lookupTable2D) eval(u, v float64) float64 {
	i := clampIndex(sort.SearchFloat64s(l.x, u), len(l.x))
	j := clampIndex(sort.SearchFloat64s(l.y, v), len(l.y))

	x0, x1 := l.x[i-1], l.x[i]
	y0, y1 := l.y[j-1], l.y[j]
	tx := ratio(u, x0, x1)
	ty := ratio(v, y0, y1)

	z00, z01 := l.z[i-1][j-1], l.z[i-1][j]
	z10, z11 := l.z[i][j-1], l.z[i][j]
	top := z00 + tx*(z10-z00)
	bot := z01 + tx*(z11-z01)
	return top + ty*(bot-top)
}

func clampIndex(i, n int) int {
	if n < 2 {
		return 1
	}
	if i <= 0 {
		return 1
	}
	if i >= n {
		return n - 1
	}
	return i
}

func ratio(v, a, b float64) float64 {
	if b == a {
		return 0
	}
	return (v - a) / (b - a)
}

// quantizer rounds its input to the nearest multiple of "interval".
type quantizer struct {
	base
	interval float64
}

func newQuantizer(def model.Block) (Block, error) {
	return &quantizer{base: newBase(model.VariantQuantizer, def), interval: def.Param("interval", 1)}, nil
}
func (q *quantizer) Init(ctx *RunContext)   { q.out("out", 0) }
func (q *quantizer) Update(ctx *RunContext) { q.out("out", q.eval(q.in("in"))) }
func (q *quantizer) eval(u float64) float64 {
	if q.interval == 0 {
		return u
	}
	return q.interval * math.Round(u/q.interval)
}

// relay switches between "onValue" and "offValue" with independent on/off
// thresholds, so the block can model hysteresis when they differ.
type relay struct {
	base
	onThreshold, offThreshold float64
	onValue, offValue         float64
	active                    bool
}

func newRelay(def model.Block) (Block, error) {
	return &relay{
		base:         newBase(model.VariantRelay, def),
		onThreshold:  def.Param("onThreshold", 0),
		offThreshold: def.Param("offThreshold", 0),
		onValue:      def.Param("onValue", 1),
		offValue:     def.Param("offValue", 0),
	}, nil
}

func (r *relay) Init(ctx *RunContext) { r.active = false; r.out("out", r.offValue) }
func (r *relay) Update(ctx *RunContext) {
	u := r.in("in")
	switch {
	case u >= r.onThreshold:
		r.active = true
	case u <= r.offThreshold:
		r.active = false
	}
	if r.active {
		r.out("out", r.onValue)
	} else {
		r.out("out", r.offValue)
	}
}

// coulombFriction applies a constant-magnitude opposing force wherever the
// velocity input is nonzero, plus an optional viscous term.
type coulombFriction struct {
	base
	level, viscousGain float64
}

func newCoulombFriction(def model.Block) (Block, error) {
	return &coulombFriction{
		base:        newBase(model.VariantCoulombFriction, def),
		level:       def.Param("frictionLevel", 1),
		viscousGain: def.Param("viscousGain", 0),
	}, nil
}

func (c *coulombFriction) Init(ctx *RunContext) { c.out("out", 0) }
func (c *coulombFriction) Update(ctx *RunContext) {
	v := c.in("in")
	switch {
	case v > 0:
		c.out("out", -c.level-c.viscousGain*v)
	case v < 0:
		c.out("out", c.level-c.viscousGain*v)
	default:
		c.out("out", 0)
	}
}

// variableTransportDelay keeps a history buffer of (time, value) samples
// and outputs the value at t-delay, interpolating linearly between the two
// bracketing samples; entries older than the current time minus the max
// delay are pruned (the newest entry is always kept) so the buffer does not
// grow without bound (Design Notes §9, "bounded history").
type variableTransportDelay struct {
	base
	maxDelay float64
	times    []float64
	values   []float64
}

func newVariableTransportDelay(def model.Block) (Block, error) {
	return &variableTransportDelay{
		base:     newBase(model.VariantVariableTransportDelay, def),
		maxDelay: def.Param("maxDelay", 1),
	}, nil
}

func (v *variableTransportDelay) Init(ctx *RunContext) {
	v.times, v.values = nil, nil
	v.record(ctx.Tick.T, v.in("in"))
	v.out("out", v.in("in"))
}

func (v *variableTransportDelay) Update(ctx *RunContext) {
	delay := v.in("delay")
	if delay < 0 {
		delay = 0
	}
	target := ctx.Tick.T - delay
	v.out("out", v.sample(target))
}

func (v *variableTransportDelay) Propagate(ctx *RunContext) {
	v.record(ctx.Tick.T, v.in("in"))
	v.prune(ctx.Tick.T)
}

func (v *variableTransportDelay) record(t, value float64) {
	v.times = append(v.times, t)
	v.values = append(v.values, value)
}

func (v *variableTransportDelay) prune(now float64) {
	cutoff := now - v.maxDelay
	i := 0
	for i < len(v.times)-1 && v.times[i] < cutoff {
		i++
	}
	v.times = v.times[i:]
	v.values = v.values[i:]
}

func (v *variableTransportDelay) sample(target float64) float64 {
	n := len(v.times)
	if n == 0 {
		return 0
	}
	if target <= v.times[0] {
		return v.values[0]
	}
	if target >= v.times[n-1] {
		return v.values[n-1]
	}
	i := sort.SearchFloat64s(v.times, target)
	if i <= 0 {
		return v.values[0]
	}
	t0, t1 := v.times[i-1], v.times[i]
	y0, y1 := v.values[i-1], v.values[i]
	return y0 + ratio(target, t0, t1)*(y1-y0)
}
