package block

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/osksim/engine/model"
)

var _ = Describe("RateLimiter", func() {
	It("clamps the per-step change to rate*dt", func() {
		r, err := New(model.Block{ID: "r", Variant: model.VariantRateLimiter, Params: map[string]float64{"rate": 2}})
		Expect(err).NotTo(HaveOccurred())

		ctx := newCtx(model.Euler, 0, 0.1)
		r.Init(ctx)
		r.SetInput(0, "in")
		r.Update(ctx)
		Expect(r.Output("out")).To(BeNumerically("~", 0))

		ctx.Tick.Advance()
		r.SetInput(10, "in")
		r.Update(ctx)
		Expect(r.Output("out")).To(BeNumerically("~", 0.2), "bounded to rate*dt = 2*0.1")
	})
})

var _ = Describe("MovingAverage", func() {
	It("averages over however many samples have been seen, then over the full window", func() {
		m, err := New(model.Block{ID: "m", Variant: model.VariantMovingAverage, Params: map[string]float64{"windowSize": 3}})
		Expect(err).NotTo(HaveOccurred())

		ctx := newCtx(model.Euler, 0, 0.1)
		m.Init(ctx)

		samples := []float64{3, 6, 9, 12}
		want := []float64{3, 4.5, 6, 9} // (3)/1, (3+6)/2, (3+6+9)/3, (6+9+12)/3
		for i, s := range samples {
			m.SetInput(s, "in")
			m.Update(ctx)
			Expect(m.Output("out")).To(BeNumerically("~", want[i], 1e-9), "sample %d", i)
			ctx.Tick.Advance()
		}
	})
})

var _ = Describe("LowPassFilter", func() {
	It("tracks a constant input exactly once settled", func() {
		l, err := New(model.Block{ID: "l", Variant: model.VariantLowPassFilter, Params: map[string]float64{"cutoffFrequency": 5}})
		Expect(err).NotTo(HaveOccurred())

		ctx := newCtx(model.Euler, 0, 0.01)
		l.Init(ctx)
		l.SetInput(2, "in")
		for i := 0; i < 200; i++ {
			l.Update(ctx)
			ctx.Tick.Advance()
		}
		Expect(l.Output("out")).To(BeNumerically("~", 2, 1e-3), "a DC input settles to itself at steady state")
	})
})

var _ = Describe("Backlash", func() {
	It("only moves the output once the input strays past half the deadband", func() {
		b, err := New(model.Block{ID: "b", Variant: model.VariantBacklash, Params: map[string]float64{"deadband": 2}})
		Expect(err).NotTo(HaveOccurred())

		ctx := newCtx(model.Euler, 0, 0.1)
		b.Init(ctx)

		b.SetInput(0, "in")
		b.Update(ctx)
		Expect(b.Output("out")).To(BeNumerically("~", 0))

		b.SetInput(0.5, "in")
		b.Update(ctx)
		Expect(b.Output("out")).To(BeNumerically("~", 0), "within the half-deadband of 1, output does not move")

		b.SetInput(3, "in")
		b.Update(ctx)
		Expect(b.Output("out")).To(BeNumerically("~", 2), "3 - half(1) = 2")
	})
})
