package block

import (
	"fmt"
	"math"

	"github.com/osksim/engine/model"
	"github.com/osksim/engine/tick"
)

func init() {
	register(model.VariantSum, newSum)
	register(model.VariantGain, newGain)
	register(model.VariantProduct, newProduct)
	register(model.VariantAbs, newAbs)
	register(model.VariantSign, newSign)
	register(model.VariantSaturation, newSaturation)
	register(model.VariantDeadZone, newDeadZone)
	register(model.VariantMathFunction, newMathFunction)
	register(model.VariantTrig, newTrig)
}

// sum computes sum(sign_i * input_i) with signs in {'+','-'}*.
type sum struct {
	base
	signs string
	n     int
}

func newSum(def model.Block) (Block, error) {
	signs := def.StrParam("signs", "++")
	n := len(def.Inputs)
	if n == 0 {
		n = len(signs)
	}
	return &sum{base: newBase(model.VariantSum, def), signs: signs, n: n}, nil
}

func (s *sum) Init(ctx *RunContext) { s.out("out", 0) }
func (s *sum) Update(ctx *RunContext) {
	var acc float64
	for i := 0; i < s.n; i++ {
		v := s.in(fmt.Sprintf("in%d", i))
		sign := byte('+')
		if i < len(s.signs) {
			sign = s.signs[i]
		}
		if sign == '-' {
			acc -= v
		} else {
			acc += v
		}
	}
	s.out("out", acc)
}

// gain computes k*input.
type gain struct {
	base
	k float64
}

func newGain(def model.Block) (Block, error) {
	return &gain{base: newBase(model.VariantGain, def), k: def.Param("gain", 1)}, nil
}
func (g *gain) Init(ctx *RunContext)   { g.out("out", 0) }
func (g *gain) Update(ctx *RunContext) { g.out("out", g.k*g.in("in")) }

// product multiplies or divides inputs per operations in {'*','/'}*;
// division by a value with |x| < EPS substitutes EPS.
type product struct {
	base
	ops string
	n   int
}

func newProduct(def model.Block) (Block, error) {
	ops := def.StrParam("operations", "**")
	n := len(def.Inputs)
	if n == 0 {
		n = len(ops)
	}
	return &product{base: newBase(model.VariantProduct, def), ops: ops, n: n}, nil
}

func (p *product) Init(ctx *RunContext) { p.out("out", 1) }
func (p *product) Update(ctx *RunContext) {
	acc := 1.0
	for i := 0; i < p.n; i++ {
		v := p.in(fmt.Sprintf("in%d", i))
		op := byte('*')
		if i < len(p.ops) {
			op = p.ops[i]
		}
		if op == '/' {
			if math.Abs(v) < tick.EPS {
				v = tick.EPS
			}
			acc /= v
		} else {
			acc *= v
		}
	}
	p.out("out", acc)
}

// abs, sign, saturation, deadZone are element-wise single-input blocks.
type abs struct{ base }

func newAbs(def model.Block) (Block, error) { return &abs{base: newBase(model.VariantAbs, def)}, nil }
func (a *abs) Init(ctx *RunContext)          { a.out("out", 0) }
func (a *abs) Update(ctx *RunContext)        { a.out("out", math.Abs(a.in("in"))) }

type signBlock struct{ base }

func newSign(def model.Block) (Block, error) {
	return &signBlock{base: newBase(model.VariantSign, def)}, nil
}
func (s *signBlock) Init(ctx *RunContext) { s.out("out", 0) }
func (s *signBlock) Update(ctx *RunContext) {
	v := s.in("in")
	switch {
	case v > 0:
		s.out("out", 1)
	case v < 0:
		s.out("out", -1)
	default:
		s.out("out", 0)
	}
}

type saturation struct {
	base
	lower, upper float64
}

func newSaturation(def model.Block) (Block, error) {
	return &saturation{
		base:  newBase(model.VariantSaturation, def),
		lower: def.Param("lowerLimit", -1),
		upper: def.Param("upperLimit", 1),
	}, nil
}
func (s *saturation) Init(ctx *RunContext) { s.out("out", 0) }
func (s *saturation) Update(ctx *RunContext) {
	v := s.in("in")
	if v > s.upper {
		v = s.upper
	} else if v < s.lower {
		v = s.lower
	}
	s.out("out", v)
}

type deadZone struct {
	base
	start, end float64
}

func newDeadZone(def model.Block) (Block, error) {
	return &deadZone{
		base:  newBase(model.VariantDeadZone, def),
		start: def.Param("start", -0.5),
		end:   def.Param("end", 0.5),
	}, nil
}
func (d *deadZone) Init(ctx *RunContext) { d.out("out", 0) }
func (d *deadZone) Update(ctx *RunContext) {
	v := d.in("in")
	switch {
	case v > d.end:
		d.out("out", v-d.end)
	case v < d.start:
		d.out("out", v-d.start)
	default:
		d.out("out", 0)
	}
}

// mathFunction clamps domain inputs at EPS/0 to avoid a domain error
// (§7 DomainError recovery).
type mathFunction struct {
	base
	fn       string
	exponent float64
}

func newMathFunction(def model.Block) (Block, error) {
	return &mathFunction{
		base:     newBase(model.VariantMathFunction, def),
		fn:       def.StrParam("function", "exp"),
		exponent: def.Param("exponent", 2),
	}, nil
}
func (m *mathFunction) Init(ctx *RunContext) { m.out("out", 0) }
func (m *mathFunction) Update(ctx *RunContext) {
	x := m.in("in")
	var y float64
	switch m.fn {
	case "exp":
		y = math.Exp(x)
	case "log":
		y = math.Log(math.Max(x, tick.EPS))
	case "log10":
		y = math.Log10(math.Max(x, tick.EPS))
	case "sqrt":
		y = math.Sqrt(math.Max(x, 0))
	case "square":
		y = x * x
	case "pow":
		y = math.Pow(x, m.exponent)
	case "reciprocal":
		if math.Abs(x) < tick.EPS {
			x = tick.EPS
		}
		y = 1 / x
	default:
		y = x
	}
	m.out("out", y)
}

// trigonometry computes a standard trig/hyperbolic function; a non-finite
// result is coerced to 0 (§4.3).
type trig struct {
	base
	fn string
}

func newTrig(def model.Block) (Block, error) {
	return &trig{base: newBase(model.VariantTrig, def), fn: def.StrParam("function", "sin")}, nil
}
func (t *trig) Init(ctx *RunContext) { t.out("out", 0) }
func (t *trig) Update(ctx *RunContext) {
	x := t.in("in")
	var y float64
	switch t.fn {
	case "sin":
		y = math.Sin(x)
	case "cos":
		y = math.Cos(x)
	case "tan":
		y = math.Tan(x)
	case "asin":
		y = math.Asin(x)
	case "acos":
		y = math.Acos(x)
	case "atan":
		y = math.Atan(x)
	case "sinh":
		y = math.Sinh(x)
	case "cosh":
		y = math.Cosh(x)
	case "tanh":
		y = math.Tanh(x)
	default:
		y = x
	}
	if math.IsNaN(y) || math.IsInf(y, 0) {
		y = 0
	}
	t.out("out", y)
}
