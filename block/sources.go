package block

import (
	"math"

	"github.com/osksim/engine/model"
)

func init() {
	register(model.VariantConstant, newConstant)
	register(model.VariantStep, newStep)
	register(model.VariantRamp, newRamp)
	register(model.VariantSineWave, newSineWave)
	register(model.VariantClock, newClock)
	register(model.VariantPulse, newPulse)
	register(model.VariantNoise, newNoise)
}

// Constant emits the "value" parameter forever.
type constant struct {
	base
	value float64
}

func newConstant(def model.Block) (Block, error) {
	return &constant{base: newBase(model.VariantConstant, def), value: def.Param("value", 0)}, nil
}
func (c *constant) Init(ctx *RunContext)   { c.out("out", c.value) }
func (c *constant) Update(ctx *RunContext) { c.out("out", c.value) }

// Step emits "initial" before stepTime and "final" at or after it.
type step struct {
	base
	stepTime, initial, final float64
}

func newStep(def model.Block) (Block, error) {
	return &step{
		base:     newBase(model.VariantStep, def),
		stepTime: def.Param("stepTime", 1),
		initial:  def.Param("initial", 0),
		final:    def.Param("final", 1),
	}, nil
}
func (s *step) Init(ctx *RunContext) { s.out("out", s.initial) }
func (s *step) Update(ctx *RunContext) {
	if ctx.Tick.T >= s.stepTime-1e-9 {
		s.out("out", s.final)
	} else {
		s.out("out", s.initial)
	}
}

// Ramp emits max(0, t-startTime)*slope + initialOutput.
type ramp struct {
	base
	startTime, slope, initialOutput float64
}

func newRamp(def model.Block) (Block, error) {
	return &ramp{
		base:           newBase(model.VariantRamp, def),
		startTime:      def.Param("startTime", 0),
		slope:          def.Param("slope", 1),
		initialOutput:  def.Param("initialOutput", 0),
	}, nil
}
func (r *ramp) Init(ctx *RunContext) { r.Update(ctx) }
func (r *ramp) Update(ctx *RunContext) {
	elapsed := ctx.Tick.T - r.startTime
	if elapsed < 0 {
		elapsed = 0
	}
	r.out("out", elapsed*r.slope+r.initialOutput)
}

// SineWave emits A*sin(2*pi*f*t + phi) + bias.
type sineWave struct {
	base
	amplitude, freq, phase, bias float64
}

func newSineWave(def model.Block) (Block, error) {
	return &sineWave{
		base:      newBase(model.VariantSineWave, def),
		amplitude: def.Param("amplitude", 1),
		freq:      def.Param("frequency", 1),
		phase:     def.Param("phase", 0),
		bias:      def.Param("bias", 0),
	}, nil
}
func (s *sineWave) Init(ctx *RunContext) { s.Update(ctx) }
func (s *sineWave) Update(ctx *RunContext) {
	v := s.amplitude*math.Sin(2*math.Pi*s.freq*ctx.Tick.T+s.phase) + s.bias
	s.out("out", v)
}

// Clock emits the current sim time.
type clock struct{ base }

func newClock(def model.Block) (Block, error) {
	return &clock{base: newBase(model.VariantClock, def)}, nil
}
func (c *clock) Init(ctx *RunContext)   { c.out("out", ctx.Tick.T) }
func (c *clock) Update(ctx *RunContext) { c.out("out", ctx.Tick.T) }

// Pulse is a square wave of amplitude A, period T, duty fraction and an
// optional phase delay.
type pulse struct {
	base
	amplitude, period, duty, delay float64
}

func newPulse(def model.Block) (Block, error) {
	return &pulse{
		base:      newBase(model.VariantPulse, def),
		amplitude: def.Param("amplitude", 1),
		period:    def.Param("period", 1),
		duty:      def.Param("duty", 0.5),
		delay:     def.Param("delay", 0),
	}, nil
}
func (p *pulse) Init(ctx *RunContext) { p.Update(ctx) }
func (p *pulse) Update(ctx *RunContext) {
	t := ctx.Tick.T - p.delay
	if t < 0 || p.period <= 0 {
		p.out("out", 0)
		return
	}
	phase := math.Mod(t, p.period) / p.period
	if phase < p.duty {
		p.out("out", p.amplitude)
	} else {
		p.out("out", 0)
	}
}

// noise is a Gaussian or uniform random source, optionally sampled only
// every sampleTime instead of every step (Design Notes §9, "Noise
// determinism": the RNG lives inside the block and is seeded via
// RunContext, never shared).
type noise struct {
	base
	gaussian           bool
	mean, variance     float64
	lowerBound, upperBound float64
	sampleTime         float64
	lastSample         float64
	haveLast           bool
	current            float64
}

func newNoise(def model.Block) (Block, error) {
	return &noise{
		base:       newBase(model.VariantNoise, def),
		gaussian:   def.StrParam("kind", "gaussian") == "gaussian",
		mean:       def.Param("mean", 0),
		variance:   def.Param("variance", 1),
		lowerBound: def.Param("lowerBound", 0),
		upperBound: def.Param("upperBound", 1),
		sampleTime: def.Param("sampleTime", 0),
	}, nil
}

func (n *noise) Init(ctx *RunContext) {
	n.haveLast = false
	n.sample(ctx)
}

func (n *noise) Update(ctx *RunContext) {
	if ctx.Tick.Kpass != 0 {
		n.out("out", n.current)
		return
	}
	if n.sampleTime <= 0 {
		n.sample(ctx)
		return
	}
	if !n.haveLast || ctx.Tick.T-n.lastSample >= n.sampleTime-1e-9 {
		n.sample(ctx)
		n.lastSample = ctx.Tick.T
		n.haveLast = true
	}
	n.out("out", n.current)
}

func (n *noise) sample(ctx *RunContext) {
	if n.gaussian {
		n.current = n.mean + math.Sqrt(n.variance)*ctx.RNG.NormFloat64()
	} else {
		n.current = n.lowerBound + ctx.RNG.Float64()*(n.upperBound-n.lowerBound)
	}
	n.out("out", n.current)
}
