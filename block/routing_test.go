package block

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/osksim/engine/model"
)

var _ = Describe("Mux/Demux", func() {
	It("packs and unpacks their first (and only modeled) channel", func() {
		mx, err := New(model.Block{ID: "mx", Variant: model.VariantMux})
		Expect(err).NotTo(HaveOccurred())
		dx, err := New(model.Block{ID: "dx", Variant: model.VariantDemux})
		Expect(err).NotTo(HaveOccurred())
		dx.Bind("in", mx, "out")

		ctx := newCtx(model.Euler, 0, 0.1)
		mx.Init(ctx)
		dx.Init(ctx)

		mx.SetInput(4.5, "in0")
		mx.Update(ctx)
		dx.Update(ctx)
		Expect(dx.Output("out0")).To(BeNumerically("~", 4.5))
	})
})
