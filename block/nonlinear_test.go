package block

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/osksim/engine/model"
)

var _ = Describe("LookupTable1D", func() {
	It("interpolates between breakpoints and extrapolates beyond the ends", func() {
		l, err := New(model.Block{
			ID: "l", Variant: model.VariantLookupTable1D,
			Params: map[string]float64{
				"x.0": 0, "x.1": 10, "x.2": 20,
				"y.0": 0, "y.1": 100, "y.2": 100,
			},
		})
		Expect(err).NotTo(HaveOccurred())

		ctx := newCtx(model.Euler, 0, 0.1)
		l.Init(ctx)

		l.SetInput(5, "in")
		l.Update(ctx)
		Expect(l.Output("out")).To(BeNumerically("~", 50), "midway between (0,0) and (10,100)")

		l.SetInput(-5, "in")
		l.Update(ctx)
		Expect(l.Output("out")).To(BeNumerically("~", -50), "extrapolated using the first segment's slope")
	})
})

var _ = Describe("Quantizer", func() {
	It("rounds to the nearest multiple of interval", func() {
		q, err := New(model.Block{ID: "q", Variant: model.VariantQuantizer, Params: map[string]float64{"interval": 0.5}})
		Expect(err).NotTo(HaveOccurred())

		ctx := newCtx(model.Euler, 0, 0.1)
		q.Init(ctx)
		q.SetInput(0.73, "in")
		q.Update(ctx)
		Expect(q.Output("out")).To(BeNumerically("~", 0.5))
	})
})

var _ = Describe("Relay", func() {
	It("exhibits hysteresis between distinct on/off thresholds", func() {
		r, err := New(model.Block{
			ID: "r", Variant: model.VariantRelay,
			Params: map[string]float64{"onThreshold": 1, "offThreshold": -1, "onValue": 5, "offValue": -5},
		})
		Expect(err).NotTo(HaveOccurred())

		ctx := newCtx(model.Euler, 0, 0.1)
		r.Init(ctx)
		Expect(r.Output("out")).To(BeNumerically("~", -5))

		r.SetInput(0.5, "in")
		r.Update(ctx)
		Expect(r.Output("out")).To(BeNumerically("~", -5), "still below onThreshold, relay stays off")

		r.SetInput(1.5, "in")
		r.Update(ctx)
		Expect(r.Output("out")).To(BeNumerically("~", 5), "crossed onThreshold")

		r.SetInput(0, "in")
		r.Update(ctx)
		Expect(r.Output("out")).To(BeNumerically("~", 5), "between thresholds, relay holds its last state")

		r.SetInput(-1.5, "in")
		r.Update(ctx)
		Expect(r.Output("out")).To(BeNumerically("~", -5), "crossed offThreshold")
	})
})

var _ = Describe("CoulombFriction", func() {
	It("opposes the sign of velocity with a constant-magnitude force", func() {
		c, err := New(model.Block{ID: "c", Variant: model.VariantCoulombFriction, Params: map[string]float64{"frictionLevel": 2, "viscousGain": 0}})
		Expect(err).NotTo(HaveOccurred())

		ctx := newCtx(model.Euler, 0, 0.1)
		c.Init(ctx)

		c.SetInput(3, "in")
		c.Update(ctx)
		Expect(c.Output("out")).To(BeNumerically("~", -2))

		c.SetInput(-3, "in")
		c.Update(ctx)
		Expect(c.Output("out")).To(BeNumerically("~", 2))

		c.SetInput(0, "in")
		c.Update(ctx)
		Expect(c.Output("out")).To(BeNumerically("~", 0))
	})
})
