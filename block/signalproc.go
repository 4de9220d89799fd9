package block

import (
	"math"

	"github.com/osksim/engine/model"
)

func init() {
	register(model.VariantRateLimiter, newRateLimiter)
	register(model.VariantMovingAverage, newMovingAverage)
	register(model.VariantLowPassFilter, newLowPass)
	register(model.VariantHighPassFilter, newHighPass)
	register(model.VariantBandPassFilter, newBandPass)
	register(model.VariantAnalogFilter, newAnalogFilter)
	register(model.VariantNotchFilter, newNotchFilter)
	register(model.VariantBacklash, newBacklash)
}

// rateLimiter bounds the output's change per pass to ±rate*dt.
type rateLimiter struct {
	base
	rate float64
	prev float64
	init bool
}

func newRateLimiter(def model.Block) (Block, error) {
	return &rateLimiter{base: newBase(model.VariantRateLimiter, def), rate: def.Param("rate", 1)}, nil
}

func (r *rateLimiter) Init(ctx *RunContext) { r.prev = 0; r.init = false; r.out("out", 0) }
func (r *rateLimiter) Update(ctx *RunContext) {
	u := r.in("in")
	if !r.init {
		r.prev = u
		r.init = true
		r.out("out", r.prev)
		return
	}
	maxDelta := r.rate * ctx.Tick.Dt
	delta := u - r.prev
	if delta > maxDelta {
		delta = maxDelta
	} else if delta < -maxDelta {
		delta = -maxDelta
	}
	r.prev += delta
	r.out("out", r.prev)
}

// movingAverage keeps a ring buffer and outputs the mean of the last N
// samples, advancing once per primary step.
type movingAverage struct {
	base
	n      int
	buf    []float64
	idx    int
	filled int
	sum    float64
}

func newMovingAverage(def model.Block) (Block, error) {
	n := int(def.Param("windowSize", 4))
	if n < 1 {
		n = 1
	}
	return &movingAverage{base: newBase(model.VariantMovingAverage, def), n: n, buf: make([]float64, n)}, nil
}

func (m *movingAverage) Init(ctx *RunContext) {
	for i := range m.buf {
		m.buf[i] = 0
	}
	m.idx, m.filled, m.sum = 0, 0, 0
	m.out("out", 0)
}

func (m *movingAverage) Update(ctx *RunContext) {
	if ctx.Tick.Kpass != 0 {
		m.out("out", m.mean())
		return
	}
	u := m.in("in")
	old := m.buf[m.idx]
	m.buf[m.idx] = u
	m.sum += u - old
	m.idx = (m.idx + 1) % m.n
	if m.filled < m.n {
		m.filled++
	}
	m.out("out", m.mean())
}

func (m *movingAverage) mean() float64 {
	if m.filled == 0 {
		return 0
	}
	return m.sum / float64(m.filled)
}

// firstOrderIIR is the shared state for LowPass/HighPass: a single pole
// recomputed from dt and cutoff every primary step, held between the
// intermediate passes of a multi-pass method.
type firstOrderIIR struct {
	cutoff                   float64
	prevInput, prevOutput    float64
	init                     bool
}

func (f *firstOrderIIR) lowpass(u, dt float64) float64 {
	rc := 1 / (2 * math.Pi * f.cutoff)
	alpha := dt / (rc + dt)
	if !f.init {
		f.prevOutput = u
		f.init = true
	}
	y := f.prevOutput + alpha*(u-f.prevOutput)
	f.prevOutput = y
	f.prevInput = u
	return y
}

func (f *firstOrderIIR) highpass(u, dt float64) float64 {
	rc := 1 / (2 * math.Pi * f.cutoff)
	alpha := rc / (rc + dt)
	if !f.init {
		f.prevInput = u
		f.prevOutput = 0
		f.init = true
		return 0
	}
	y := alpha * (f.prevOutput + u - f.prevInput)
	f.prevOutput = y
	f.prevInput = u
	return y
}

type lowPass struct {
	base
	f firstOrderIIR
}

func newLowPass(def model.Block) (Block, error) {
	return &lowPass{base: newBase(model.VariantLowPassFilter, def), f: firstOrderIIR{cutoff: def.Param("cutoffFrequency", 10)}}, nil
}
func (l *lowPass) Init(ctx *RunContext) { l.f = firstOrderIIR{cutoff: l.f.cutoff}; l.out("out", 0) }
func (l *lowPass) Update(ctx *RunContext) {
	if ctx.Tick.Kpass != 0 {
		l.out("out", l.f.prevOutput)
		return
	}
	l.out("out", l.f.lowpass(l.in("in"), ctx.Tick.Dtp))
}

type highPass struct {
	base
	f firstOrderIIR
}

func newHighPass(def model.Block) (Block, error) {
	return &highPass{base: newBase(model.VariantHighPassFilter, def), f: firstOrderIIR{cutoff: def.Param("cutoffFrequency", 10)}}, nil
}
func (h *highPass) Init(ctx *RunContext) { h.f = firstOrderIIR{cutoff: h.f.cutoff}; h.out("out", 0) }
func (h *highPass) Update(ctx *RunContext) {
	if ctx.Tick.Kpass != 0 {
		h.out("out", h.f.prevOutput)
		return
	}
	h.out("out", h.f.highpass(h.in("in"), ctx.Tick.Dtp))
}

// bandPass cascades a highpass (removing frequencies below lowCutoff) into
// a lowpass (removing frequencies above highCutoff).
type bandPass struct {
	base
	hp, lp firstOrderIIR
}

func newBandPass(def model.Block) (Block, error) {
	return &bandPass{
		base: newBase(model.VariantBandPassFilter, def),
		hp:   firstOrderIIR{cutoff: def.Param("lowCutoff", 1)},
		lp:   firstOrderIIR{cutoff: def.Param("highCutoff", 100)},
	}, nil
}
func (b *bandPass) Init(ctx *RunContext) {
	b.hp = firstOrderIIR{cutoff: b.hp.cutoff}
	b.lp = firstOrderIIR{cutoff: b.lp.cutoff}
	b.out("out", 0)
}
func (b *bandPass) Update(ctx *RunContext) {
	if ctx.Tick.Kpass != 0 {
		b.out("out", b.lp.prevOutput)
		return
	}
	mid := b.hp.highpass(b.in("in"), ctx.Tick.Dtp)
	b.out("out", b.lp.lowpass(mid, ctx.Tick.Dtp))
}

// biquadSection is one Direct-Form-II-Transposed second-order section,
// the same state shape as the Direct-Form-II-Transposed biquad used
// elsewhere for digital filtering: y = B0*x + d0; d0 = B1*x - A1*y + d1;
// d1 = B2*x - A2*y.
type biquadSection struct {
	b0, b1, b2, a1, a2 float64
	d0, d1             float64
}

func (s *biquadSection) reset() { s.d0, s.d1 = 0, 0 }

func (s *biquadSection) process(x float64) float64 {
	y := s.b0*x + s.d0
	s.d0 = s.b1*x - s.a1*y + s.d1
	s.d1 = s.b2*x - s.a2*y
	return y
}

// butterworthSection bilinear-transforms one analog Butterworth pole pair
// (normalized cutoff scaled to wc rad/s, pole angle theta) into a digital
// biquad, prewarping the cutoff so the digital -3dB point lands at fc.
func butterworthSection(wcPrewarped, theta, sampleRate float64) biquadSection {
	k := 2 * sampleRate
	d2 := k*k + 2*wcPrewarped*math.Sin(theta)*k + wcPrewarped*wcPrewarped
	d1 := 2*wcPrewarped*wcPrewarped - 2*k*k
	d0 := k*k - 2*wcPrewarped*math.Sin(theta)*k + wcPrewarped*wcPrewarped
	n2 := wcPrewarped * wcPrewarped
	return biquadSection{
		b0: n2 / d2, b1: 2 * n2 / d2, b2: n2 / d2,
		a1: d1 / d2, a2: d0 / d2,
	}
}

func butterworthFirstOrder(wcPrewarped, sampleRate float64) biquadSection {
	k := 2 * sampleRate
	return biquadSection{
		b0: wcPrewarped / (k + wcPrewarped),
		b1: wcPrewarped / (k + wcPrewarped),
		a1: (wcPrewarped - k) / (k + wcPrewarped),
	}
}

// analogFilter designs a lowpass cascade of biquad sections from an analog
// Butterworth prototype via the bilinear transform with cutoff prewarping
// (Design Notes §9: the family parameter is accepted for Chebyshev/Bessel
// too, but both currently resolve to the same Butterworth pole placement —
// true ripple/maximally-flat-delay pole tables are a documented scope cut).
type analogFilter struct {
	base
	sections []biquadSection
}

func newAnalogFilter(def model.Block) (Block, error) {
	order := int(def.Param("order", 2))
	if order < 1 {
		order = 1
	}
	fc := def.Param("cutoffFrequency", 10)
	fs := def.Param("sampleRate", 1000)
	wc := 2 * math.Pi * fc
	wcPrewarped := 2 * fs * math.Tan(wc/(2*fs))

	sections := make([]biquadSection, 0, (order+1)/2)
	pairs := order / 2
	for k := 0; k < pairs; k++ {
		theta := math.Pi * float64(2*k+1) / (2 * float64(order))
		sections = append(sections, butterworthSection(wcPrewarped, theta, fs))
	}
	if order%2 == 1 {
		sections = append(sections, butterworthFirstOrder(wcPrewarped, fs))
	}
	return &analogFilter{base: newBase(model.VariantAnalogFilter, def), sections: sections}, nil
}

func (a *analogFilter) Init(ctx *RunContext) {
	for i := range a.sections {
		a.sections[i].reset()
	}
	a.out("out", 0)
}

func (a *analogFilter) Update(ctx *RunContext) {
	x := a.in("in")
	for i := range a.sections {
		x = a.sections[i].process(x)
	}
	a.out("out", x)
}

// notchFilter is the RBJ audio-EQ-cookbook notch biquad: a deep, narrow
// rejection at the notch frequency with unity gain elsewhere, parameterized
// by Q (sharpness).
type notchFilter struct {
	base
	section biquadSection
}

func newNotchFilter(def model.Block) (Block, error) {
	f0 := def.Param("notchFrequency", 50)
	q := def.Param("q", 10)
	fs := def.Param("sampleRate", 1000)
	w0 := 2 * math.Pi * f0 / fs
	alpha := math.Sin(w0) / (2 * q)
	a0 := 1 + alpha
	return &notchFilter{
		base: newBase(model.VariantNotchFilter, def),
		section: biquadSection{
			b0: 1 / a0, b1: -2 * math.Cos(w0) / a0, b2: 1 / a0,
			a1: -2 * math.Cos(w0) / a0, a2: (1 - alpha) / a0,
		},
	}, nil
}

func (n *notchFilter) Init(ctx *RunContext) { n.section.reset(); n.out("out", 0) }
func (n *notchFilter) Update(ctx *RunContext) {
	n.out("out", n.section.process(n.in("in")))
}

// backlash reproduces the hysteretic dead band: the output only moves when
// the input strays more than deadband/2 away from the current output.
type backlash struct {
	base
	deadband float64
	output   float64
	init     bool
}

func newBacklash(def model.Block) (Block, error) {
	return &backlash{base: newBase(model.VariantBacklash, def), deadband: def.Param("deadband", 1)}, nil
}
func (b *backlash) Init(ctx *RunContext) { b.init = false; b.out("out", 0) }
func (b *backlash) Update(ctx *RunContext) {
	u := b.in("in")
	half := b.deadband / 2
	switch {
	case !b.init:
		b.output = u
		b.init = true
	case u-b.output > half:
		b.output = u - half
	case b.output-u > half:
		b.output = u + half
	}
	b.out("out", b.output)
}
