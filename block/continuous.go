package block

import (
	"github.com/osksim/engine/model"
	"github.com/osksim/engine/tick"
)

func init() {
	register(model.VariantIntegrator, newIntegrator)
	register(model.VariantDerivative, newDerivative)
	register(model.VariantTransferFunc, newTransferFunction)
	register(model.VariantStateSpace, newStateSpace)
	register(model.VariantPID, newPID)
}

// integrator holds one cell; xdot = input, with optional output clamping
// that zeros the derivative on limit contact so the state does not keep
// accumulating past the bound (§4.3).
type integrator struct {
	base
	cell         tick.Cell
	initial      float64
	clamp        bool
	lower, upper float64
}

func newIntegrator(def model.Block) (Block, error) {
	return &integrator{
		base:    newBase(model.VariantIntegrator, def),
		initial: def.Param("initial", 0),
		clamp:   def.Param("clampOutput", 0) != 0,
		lower:   def.Param("lowerLimit", 0),
		upper:   def.Param("upperLimit", 0),
	}, nil
}

func (i *integrator) Init(ctx *RunContext) {
	i.cell.Reset(i.initial)
	i.out("out", i.cell.X)
}

func (i *integrator) Update(ctx *RunContext) {
	xdot := i.in("in")
	if i.clamp {
		if i.cell.X >= i.upper && xdot > 0 {
			xdot = 0
		}
		if i.cell.X <= i.lower && xdot < 0 {
			xdot = 0
		}
	}
	i.cell.Xdot = xdot
	i.out("out", i.clampedOutput())
}

func (i *integrator) clampedOutput() float64 {
	x := i.cell.X
	if i.clamp {
		if x > i.upper {
			x = i.upper
		} else if x < i.lower {
			x = i.lower
		}
	}
	return x
}

func (i *integrator) Propagate(ctx *RunContext) {
	i.cell.Propagate(ctx.Tick)
	i.out("out", i.clampedOutput())
}

// derivative is a filtered differentiator: one cell s with
// ds/dt = N*(u - s); the output is N*(u - s), i.e. the cell's own Xdot.
type derivative struct {
	base
	cell tick.Cell
	n    float64
}

func newDerivative(def model.Block) (Block, error) {
	return &derivative{base: newBase(model.VariantDerivative, def), n: def.Param("filterCoefficient", 100)}, nil
}

func (d *derivative) Init(ctx *RunContext) {
	d.cell.Reset(0)
	d.out("out", 0)
}

func (d *derivative) Update(ctx *RunContext) {
	u := d.in("in")
	xdot := d.n * (u - d.cell.X)
	d.cell.Xdot = xdot
	d.out("out", xdot)
}

func (d *derivative) Propagate(ctx *RunContext) {
	d.cell.Propagate(ctx.Tick)
}

// transferFunction is a controllable-canonical-form realization of a
// normalized (num, den) rational transfer function; order = len(den)-1
// cells. Coefficients are read from the parameter bag as "num.0".."num.N"
// and "den.0".."den.N" (§4.3 parameter-bag encoding, see SPEC_FULL.md).
type transferFunction struct {
	base
	cells    []tick.Cell
	num, den []float64
}

func newTransferFunction(def model.Block) (Block, error) {
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

	return &transferFunction{
		base:  newBase(model.VariantTransferFunc, def),
		cells: make([]tick.Cell, n),
		num:   num,
		den:   den,
	}, nil
}

func readCoeffs(def model.Block, prefix string) []float64 {
	var out []float64
	for i := 0; ; i++ {
		key := prefix + "." + itoa(i)
		v, ok := def.Params[key]
		if !ok {
			break
		}
		out = append(out, v)
	}
	return out
}

func padLeft(c []float64, n int) []float64 {
	if len(c) >= n {
		return c[len(c)-n:]
	}
	out := make([]float64, n)
	copy(out[n-len(c):], c)
	return out
}

func normalizeDen(den []float64) []float64 {
	if den[0] == 0 {
		den[0] = tick.EPS
	}
	a0 := den[0]
	out := make([]float64, len(den))
	for i, v := range den {
		out[i] = v / a0
	}
	return out
}

func (tf *transferFunction) Init(ctx *RunContext) {
	for i := range tf.cells {
		tf.cells[i].Reset(0)
	}
	tf.out("out", 0)
}

func (tf *transferFunction) n() int { return len(tf.cells) }

func (tf *transferFunction) Update(ctx *RunContext) {
	u := tf.in("in")
	n := tf.n()
	if n == 0 {
		tf.out("out", tf.num[len(tf.num)-1]*u)
		return
	}

	// dx_i/dt = x_{i+1}, i = 1..n-1; dx_n/dt = u - sum(a_{n-i+1}*x_i).
	var feedback float64
	for i := 0; i < n; i++ {
		feedback += tf.den[n-i] * tf.cells[i].X
	}
	for i := 0; i < n-1; i++ {
		tf.cells[i].Xdot = tf.cells[i+1].X
	}
	tf.cells[n-1].Xdot = u - feedback

	// y = sum_i (b_{n-i+1} - a_{n-i+1}*b0)*x_i + b0*u
	b0 := tf.num[0]
	var y float64
	for i := 0; i < n; i++ {
		y += (tf.num[n-i] - tf.den[n-i]*b0) * tf.cells[i].X
	}
	y += b0 * u
	tf.out("out", y)
}

func (tf *transferFunction) Propagate(ctx *RunContext) {
	for i := range tf.cells {
		tf.cells[i].Propagate(ctx.Tick)
	}
}

// stateSpace implements a scalar-I/O xdot = Ax + Bu, y = Cx + Du with n
// cells; ports are single scalar channels (§3), so B is an n-vector and C
// a 1xn row. Matrices come from "A.i.j", "B.i", "C.j", "D" parameters.
type stateSpace struct {
	base
	cells []tick.Cell
	a     [][]float64
	b, c  []float64
	d     float64
}

func newStateSpace(def model.Block) (Block, error) {
	n := int(def.Param("order", 1))
	a := make([][]float64, n)
	for i := range a {
		a[i] = make([]float64, n)
		for j := range a[i] {
			a[i][j] = def.Param("A."+itoa(i)+"."+itoa(j), 0)
		}
	}
	b := make([]float64, n)
	c := make([]float64, n)
	for i := 0; i < n; i++ {
		b[i] = def.Param("B."+itoa(i), 0)
		c[i] = def.Param("C."+itoa(i), 0)
	}
	return &stateSpace{
		base:  newBase(model.VariantStateSpace, def),
		cells: make([]tick.Cell, n),
		a:     a, b: b, c: c,
		d: def.Param("D", 0),
	}, nil
}

func (s *stateSpace) Init(ctx *RunContext) {
	for i := range s.cells {
		s.cells[i].Reset(0)
	}
	s.out("out", 0)
}

func (s *stateSpace) Update(ctx *RunContext) {
	u := s.in("in")
	n := len(s.cells)
	var y float64
	for i := 0; i < n; i++ {
		var xdot float64
		for j := 0; j < n; j++ {
			xdot += s.a[i][j] * s.cells[j].X
		}
		xdot += s.b[i] * u
		s.cells[i].Xdot = xdot
		y += s.c[i] * s.cells[i].X
	}
	y += s.d * u
	s.out("out", y)
}

func (s *stateSpace) Propagate(ctx *RunContext) {
	for i := range s.cells {
		s.cells[i].Propagate(ctx.Tick)
	}
}

// pid implements u = Kp*e + Ki*integral(e) + Kd*N*(e - s) with two cells:
// the integral accumulator and the filtered-derivative state.
type pid struct {
	base
	integ, deriv tick.Cell
	kp, ki, kd, n float64
}

func newPID(def model.Block) (Block, error) {
	return &pid{
		base: newBase(model.VariantPID, def),
		kp:   def.Param("kp", 1),
		ki:   def.Param("ki", 0),
		kd:   def.Param("kd", 0),
		n:    def.Param("filterCoefficient", 100),
	}, nil
}

func (p *pid) Init(ctx *RunContext) {
	p.integ.Reset(0)
	p.deriv.Reset(0)
	p.out("out", 0)
}

func (p *pid) Update(ctx *RunContext) {
	e := p.in("in")
	p.integ.Xdot = e
	dterm := p.n * (e - p.deriv.X)
	p.deriv.Xdot = dterm
	p.out("out", p.kp*e+p.ki*p.integ.X+p.kd*dterm)
}

func (p *pid) Propagate(ctx *RunContext) {
	p.integ.Propagate(ctx.Tick)
	p.deriv.Propagate(ctx.Tick)
}
