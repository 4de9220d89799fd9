package catalog

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/osksim/engine/model"
)

var _ = Describe("Static", func() {
	It("describes every registered block variant with a non-unknown category", func() {
		reg := NewStatic()
		Expect(reg.Variants()).NotTo(BeEmpty())
		for _, v := range reg.Variants() {
			d, ok := reg.Describe(v)
			Expect(ok).To(BeTrue())
			Expect(d.Category).NotTo(Equal("unknown"), "variant %q has no category", v)
		}
	})

	It("categorizes a known variant correctly", func() {
		reg := NewStatic()
		d, ok := reg.Describe(model.VariantIntegrator)
		Expect(ok).To(BeTrue())
		Expect(d.Category).To(Equal("continuous"))
	})

	It("reports not-ok for an unregistered variant", func() {
		reg := NewStatic()
		_, ok := reg.Describe(model.Variant("subsystem"))
		Expect(ok).To(BeFalse())
	})
})
