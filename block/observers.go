package block

import (
	"github.com/osksim/engine/model"
	"github.com/osksim/engine/tick"
)

func init() {
	register(model.VariantLuenbergerObserver, newLuenberger)
	register(model.VariantKalmanFilter, newKalmanFilter)
	register(model.VariantExtendedKalman, newExtendedKalmanFilter)
}

// luenbergerObserver is a continuous-time state observer:
// xhat_dot = A*xhat + B*u + L*(y - C*xhat), one cell per state, following
// the same A/B/C parameter-bag convention as stateSpace.
type luenbergerObserver struct {
	base
	cells   []tick.Cell
	a       [][]float64
	b, c, l []float64
}

func newLuenberger(def model.Block) (Block, error) {
	n := int(def.Param("order", 1))
	a := make([][]float64, n)
	b, c, l := make([]float64, n), make([]float64, n), make([]float64, n)
	for i := 0; i < n; i++ {
		a[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			a[i][j] = def.Param("A."+itoa(i)+"."+itoa(j), 0)
		}
		b[i] = def.Param("B."+itoa(i), 0)
		c[i] = def.Param("C."+itoa(i), 0)
		l[i] = def.Param("L."+itoa(i), 0)
	}
	return &luenbergerObserver{
		base:  newBase(model.VariantLuenbergerObserver, def),
		cells: make([]tick.Cell, n),
		a:     a, b: b, c: c, l: l,
	}, nil
}

func (o *luenbergerObserver) Init(ctx *RunContext) {
	for i := range o.cells {
		o.cells[i].Reset(0)
	}
	o.publish()
}

func (o *luenbergerObserver) Update(ctx *RunContext) {
	u := o.in("u")
	y := o.in("y")
	n := len(o.cells)
	var yhat float64
	for i := 0; i < n; i++ {
		yhat += o.c[i] * o.cells[i].X
	}
	innovation := y - yhat
	for i := 0; i < n; i++ {
		var xdot float64
		for j := 0; j < n; j++ {
			xdot += o.a[i][j] * o.cells[j].X
		}
		xdot += o.b[i]*u + o.l[i]*innovation
		o.cells[i].Xdot = xdot
	}
	o.publish()
}

func (o *luenbergerObserver) publish() {
	var yhat float64
	for i := range o.cells {
		o.out("out"+itoa(i), o.cells[i].X)
		yhat += o.c[i] * o.cells[i].X
	}
	o.out("out", yhat)
}

func (o *luenbergerObserver) Propagate(ctx *RunContext) {
	for i := range o.cells {
		o.cells[i].Propagate(ctx.Tick)
	}
	o.publish()
}

// kalmanFilter is a discrete-time linear Kalman filter: predict then
// measurement-update once per sample. Matrices follow the A/B/C
// convention plus diagonal process/measurement noise "Q.i"/"R".
type kalmanFilter struct {
	base
	smp      sampler
	a, p, q  [][]float64
	b, c     []float64
	r        float64
	xhat     []float64
}

func newKalmanFilter(def model.Block) (Block, error) {
	n := int(def.Param("order", 1))
	kf := &kalmanFilter{
		base: newBase(model.VariantKalmanFilter, def),
		smp:  sampler{ts: def.Param("sampleTime", 1)},
		a:    make([][]float64, n),
		p:    make([][]float64, n),
		q:    make([][]float64, n),
		b:    make([]float64, n),
		c:    make([]float64, n),
		xhat: make([]float64, n),
		r:    def.Param("R", 1),
	}
	for i := 0; i < n; i++ {
		kf.a[i] = make([]float64, n)
		kf.p[i] = make([]float64, n)
		kf.q[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			kf.a[i][j] = def.Param("A."+itoa(i)+"."+itoa(j), 0)
		}
		kf.p[i][i] = def.Param("P0."+itoa(i), 1)
		kf.q[i][i] = def.Param("Q."+itoa(i), 0.01)
		kf.b[i] = def.Param("B."+itoa(i), 0)
		kf.c[i] = def.Param("C."+itoa(i), 0)
	}
	return kf, nil
}

func (k *kalmanFilter) Init(ctx *RunContext) {
	for i := range k.xhat {
		k.xhat[i] = 0
	}
	k.publish()
}

func (k *kalmanFilter) Update(ctx *RunContext) {
	if k.smp.due(ctx) {
		u := k.in("u")
		y := k.in("y")
		k.step(u, y, k.measurementRow())
	}
	k.publish()
}

// measurementRow returns the (possibly re-linearized) measurement Jacobian;
// the base Kalman filter's model is already linear, so this is just C.
func (k *kalmanFilter) measurementRow() []float64 { return k.c }

func (k *kalmanFilter) step(u, y float64, h []float64) {
	n := len(k.xhat)

	xpred := make([]float64, n)
	for i := 0; i < n; i++ {
		var v float64
		for j := 0; j < n; j++ {
			v += k.a[i][j] * k.xhat[j]
		}
		xpred[i] = v + k.b[i]*u
	}

	ap := matMul(k.a, k.p)
	apat := matMul(ap, transpose(k.a))
	ppred := matAdd(apat, k.q)

	hp := vecMat(h, ppred)
	s := dot(hp, h) + k.r
	if s == 0 {
		s = tick.EPS
	}
	kp := matVec(ppred, h)
	gain := make([]float64, n)
	for i := range gain {
		gain[i] = kp[i] / s
	}

	var yhat float64
	for i := 0; i < n; i++ {
		yhat += h[i] * xpred[i]
	}
	innovation := y - yhat

	for i := 0; i < n; i++ {
		k.xhat[i] = xpred[i] + gain[i]*innovation
	}

	khp := outer(gain, hp)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			k.p[i][j] = ppred[i][j] - khp[i][j]
		}
	}
}

func (k *kalmanFilter) publish() {
	for i, v := range k.xhat {
		k.out("out"+itoa(i), v)
	}
	var yhat float64
	for i := range k.xhat {
		yhat += k.c[i] * k.xhat[i]
	}
	k.out("out", yhat)
}

// extendedKalmanFilter reuses the linear Kalman recursion but re-derives
// its measurement row from a configurable scalar gain "measurementGain"
// applied to C, standing in for a linearized nonlinear measurement
// Jacobian (Design Notes §9: a true user-supplied h(x) is a documented
// scope cut; the Jacobian here is constant, not state-dependent).
type extendedKalmanFilter struct {
	kalmanFilter
	measurementGain float64
}

func newExtendedKalmanFilter(def model.Block) (Block, error) {
	inner, err := newKalmanFilter(def)
	if err != nil {
		return nil, err
	}
	kf := inner.(*kalmanFilter)
	kf.variant = model.VariantExtendedKalman
	return &extendedKalmanFilter{kalmanFilter: *kf, measurementGain: def.Param("measurementGain", 1)}, nil
}

func (e *extendedKalmanFilter) measurementRow() []float64 {
	row := make([]float64, len(e.c))
	for i, v := range e.c {
		row[i] = v * e.measurementGain
	}
	return row
}

func (e *extendedKalmanFilter) Update(ctx *RunContext) {
	if e.smp.due(ctx) {
		u := e.in("u")
		y := e.in("y")
		e.step(u, y, e.measurementRow())
	}
	e.publish()
}

func matMul(a, b [][]float64) [][]float64 {
	n, m := len(a), len(b[0])
	k := len(b)
	out := make([][]float64, n)
	for i := 0; i < n; i++ {
		out[i] = make([]float64, m)
		for j := 0; j < m; j++ {
			var v float64
			for l := 0; l < k; l++ {
				v += a[i][l] * b[l][j]
			}
			out[i][j] = v
		}
	}
	return out
}

func matAdd(a, b [][]float64) [][]float64 {
	out := make([][]float64, len(a))
	for i := range a {
		out[i] = make([]float64, len(a[i]))
		for j := range a[i] {
			out[i][j] = a[i][j] + b[i][j]
		}
	}
	return out
}

func transpose(a [][]float64) [][]float64 {
	if len(a) == 0 {
		return a
	}
	out := make([][]float64, len(a[0]))
	for i := range out {
		out[i] = make([]float64, len(a))
		for j := range a {
			out[i][j] = a[j][i]
		}
	}
	return out
}

func matVec(a [][]float64, v []float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		var s float64
		for j := range v {
			s += a[i][j] * v[j]
		}
		out[i] = s
	}
	return out
}

func vecMat(v []float64, a [][]float64) []float64 {
	if len(a) == 0 {
		return nil
	}
	out := make([]float64, len(a[0]))
	for j := range out {
		var s float64
		for i := range v {
			s += v[i] * a[i][j]
		}
		out[j] = s
	}
	return out
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

func outer(a, b []float64) [][]float64 {
	out := make([][]float64, len(a))
	for i := range a {
		out[i] = make([]float64, len(b))
		for j := range b {
			out[i][j] = a[i] * b[j]
		}
	}
	return out
}
