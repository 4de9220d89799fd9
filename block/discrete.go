package block

import "github.com/osksim/engine/model"

func init() {
	register(model.VariantUnitDelay, newUnitDelay)
	register(model.VariantZeroOrderHold, newZeroOrderHold)
	register(model.VariantDiscreteIntegrator, newDiscreteIntegrator)
	register(model.VariantDiscreteDerivative, newDiscreteDerivative)
	register(model.VariantDiscreteTransferFunc, newDiscreteTransferFunction)
}

// sampler is the shared "sample on t-last >= Ts-EPS; hold between
// samples" contract every discrete block in §4.3 follows. It only ever
// fires its check on the first pass of a primary step (Kpass==0), since T
// does not change across the intermediate passes of a multi-pass method
// and a discrete block's output must stay fixed across those passes.
type sampler struct {
	ts         float64
	lastSample float64
	have       bool
}

// due reports whether a new sample should be taken on this pass, and
// records that it was taken.
func (s *sampler) due(ctx *RunContext) bool {
	if ctx.Tick.Kpass != 0 {
		return false
	}
	if !s.have || ctx.Tick.T-s.lastSample >= s.ts-1e-9 {
		s.lastSample = ctx.Tick.T
		s.have = true
		return true
	}
	return false
}

// unitDelay outputs the value captured at the previous sample (z^-1).
type unitDelay struct {
	base
	smp   sampler
	held  float64
}

func newUnitDelay(def model.Block) (Block, error) {
	return &unitDelay{
		base: newBase(model.VariantUnitDelay, def),
		smp:  sampler{ts: def.Param("sampleTime", 1)},
		held: def.Param("initialCondition", 0),
	}, nil
}

func (u *unitDelay) Init(ctx *RunContext) { u.out("out", u.held) }
func (u *unitDelay) Update(ctx *RunContext) {
	if u.smp.due(ctx) {
		u.out("out", u.held)
		u.held = u.in("in")
		return
	}
	u.out("out", u.held)
}

// zeroOrderHold samples its input and holds it until the next sample.
type zeroOrderHold struct {
	base
	smp   sampler
	held  float64
}

func newZeroOrderHold(def model.Block) (Block, error) {
	return &zeroOrderHold{base: newBase(model.VariantZeroOrderHold, def), smp: sampler{ts: def.Param("sampleTime", 1)}}, nil
}

func (z *zeroOrderHold) Init(ctx *RunContext) { z.held = 0; z.out("out", 0) }
func (z *zeroOrderHold) Update(ctx *RunContext) {
	if z.smp.due(ctx) {
		z.held = z.in("in")
	}
	z.out("out", z.held)
}

// discreteIntegrator accumulates its input at each sample per the
// requested integration method.
type discreteIntegrator struct {
	base
	smp       sampler
	method    string
	acc       float64
	lastInput float64
	seen      bool
}

func newDiscreteIntegrator(def model.Block) (Block, error) {
	return &discreteIntegrator{
		base:   newBase(model.VariantDiscreteIntegrator, def),
		smp:    sampler{ts: def.Param("sampleTime", 1)},
		method: def.StrParam("method", "forward"),
		acc:    def.Param("initialCondition", 0),
	}, nil
}

func (d *discreteIntegrator) Init(ctx *RunContext) { d.out("out", d.acc) }
func (d *discreteIntegrator) Update(ctx *RunContext) {
	if d.smp.due(ctx) {
		u := d.in("in")
		if d.seen {
			switch d.method {
			case "backward":
				d.acc += d.smp.ts * u
			case "trapezoidal":
				d.acc += d.smp.ts / 2 * (d.lastInput + u)
			default:
				d.acc += d.smp.ts * d.lastInput
			}
		}
		d.lastInput = u
		d.seen = true
	}
	d.out("out", d.acc)
}

// discreteDerivative outputs (u[k]-u[k-1])/Ts at each sample.
type discreteDerivative struct {
	base
	smp       sampler
	lastInput float64
	value     float64
	seen      bool
}

func newDiscreteDerivative(def model.Block) (Block, error) {
	return &discreteDerivative{base: newBase(model.VariantDiscreteDerivative, def), smp: sampler{ts: def.Param("sampleTime", 1)}}, nil
}

func (d *discreteDerivative) Init(ctx *RunContext) { d.out("out", 0) }
func (d *discreteDerivative) Update(ctx *RunContext) {
	if d.smp.due(ctx) {
		u := d.in("in")
		if d.seen {
			d.value = (u - d.lastInput) / d.smp.ts
		} else {
			d.value = 0
		}
		d.lastInput = u
		d.seen = true
	}
	d.out("out", d.value)
}

// discreteTransferFunction evaluates a z-domain rational transfer
// function, normalized so den[0] = 1, via a Direct-Form-II-Transposed
// difference equation executed once per sample instead of being
// integrated.
type discreteTransferFunction struct {
	base
	smp      sampler
	num, den []float64
	w        []float64
	y        float64
}

func newDiscreteTransferFunction(def model.Block) (Block, error) {
	num := readCoeffs(def, "num")
	den := readCoeffs(def, "den")
	if len(num) == 0 {
		num = []float64{1}
	}
	if len(den) == 0 {
		den = []float64{1, 1}
	}
	n := len(den) - 1
	num = padLeft(num, n+1)
	den = normalizeDen(den)
	return &discreteTransferFunction{
		base: newBase(model.VariantDiscreteTransferFunc, def),
		smp:  sampler{ts: def.Param("sampleTime", 1)},
		num:  num, den: den,
		w: make([]float64, n),
	}, nil
}

func (d *discreteTransferFunction) Init(ctx *RunContext) {
	for i := range d.w {
		d.w[i] = 0
	}
	d.y = 0
	d.out("out", 0)
}

func (d *discreteTransferFunction) Update(ctx *RunContext) {
	if d.smp.due(ctx) {
		u := d.in("in")
		n := len(d.w)
		b0 := d.num[0]
		y := b0*u + valueOr(d.w, 0)
		for i := 0; i < n; i++ {
			next := d.num[i+1]*u - d.den[i+1]*y
			if i+1 < n {
				next += d.w[i+1]
			}
			d.w[i] = next
		}
		d.y = y
	}
	d.out("out", d.y)
}

func valueOr(s []float64, i int) float64 {
	if i < len(s) {
		return s[i]
	}
	return 0
}
