package block

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/osksim/engine/model"
)

var _ = Describe("ZeroOrderHold", func() {
	It("samples on the due pass and holds between samples", func() {
		z, err := New(model.Block{ID: "z", Variant: model.VariantZeroOrderHold, Params: map[string]float64{"sampleTime": 0.2}})
		Expect(err).NotTo(HaveOccurred())

		ctx := newCtx(model.Euler, 0, 0.1)
		z.Init(ctx)

		z.SetInput(1, "in")
		z.Update(ctx)
		Expect(z.Output("out")).To(BeNumerically("~", 1))
		ctx.Tick.Advance()

		z.SetInput(9, "in")
		z.Update(ctx)
		Expect(z.Output("out")).To(BeNumerically("~", 1), "should still hold the first sample, t=0.1 < Ts=0.2")
		ctx.Tick.Advance()

		z.SetInput(9, "in")
		z.Update(ctx)
		Expect(z.Output("out")).To(BeNumerically("~", 9), "t=0.2 is due for a new sample")
	})
})

var _ = Describe("DiscreteIntegrator", func() {
	DescribeTable("accumulates a constant input u at Ts per step",
		func(method string, want func(ts, u float64) float64) {
			d, err := New(model.Block{
				ID: "d", Variant: model.VariantDiscreteIntegrator,
				Params:    map[string]float64{"sampleTime": 0.5},
				StrParams: map[string]string{"method": method},
			})
			Expect(err).NotTo(HaveOccurred())
			d.SetInput(2, "in")

			ctx := newCtx(model.Euler, 0, 0.5)
			d.Init(ctx)
			d.Update(ctx)
			Expect(d.Output("out")).To(BeNumerically("~", 0), "no prior sample yet, accumulator untouched")
			ctx.Tick.Advance()
			d.Update(ctx)
			Expect(d.Output("out")).To(BeNumerically("~", want(0.5, 2), 1e-9))
		},
		Entry("forward", "forward", func(ts, u float64) float64 { return ts * u }),
		Entry("backward", "backward", func(ts, u float64) float64 { return ts * u }),
		Entry("trapezoidal", "trapezoidal", func(ts, u float64) float64 { return ts * u }),
	)
})

var _ = Describe("DiscreteDerivative", func() {
	It("outputs (u[k]-u[k-1])/Ts starting from the second sample", func() {
		d, err := New(model.Block{ID: "d", Variant: model.VariantDiscreteDerivative, Params: map[string]float64{"sampleTime": 0.5}})
		Expect(err).NotTo(HaveOccurred())

		ctx := newCtx(model.Euler, 0, 0.5)
		d.Init(ctx)

		d.SetInput(3, "in")
		d.Update(ctx)
		Expect(d.Output("out")).To(BeNumerically("~", 0))
		ctx.Tick.Advance()

		d.SetInput(5, "in")
		d.Update(ctx)
		Expect(d.Output("out")).To(BeNumerically("~", (5.0-3.0)/0.5, 1e-9))
	})
})

var _ = Describe("DiscreteTransferFunction", func() {
	It("passes the input through unchanged for num=[1,0], den=[1,0] (no internal dynamics)", func() {
		d, err := New(model.Block{
			ID: "d", Variant: model.VariantDiscreteTransferFunc,
			Params: map[string]float64{
				"sampleTime": 0.1,
				"num.0":      1, "num.1": 0,
				"den.0": 1, "den.1": 0,
			},
		})
		Expect(err).NotTo(HaveOccurred())

		ctx := newCtx(model.Euler, 0, 0.1)
		d.Init(ctx)
		d.SetInput(4, "in")
		d.Update(ctx)
		Expect(d.Output("out")).To(BeNumerically("~", 4, 1e-9))
		ctx.Tick.Advance()
		d.SetInput(7, "in")
		d.Update(ctx)
		Expect(d.Output("out")).To(BeNumerically("~", 7, 1e-9), "internal state stays at zero, so each sample is independent")
	})
})
