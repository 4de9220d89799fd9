package kernel_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/osksim/engine/internal/scenarios"
	"github.com/osksim/engine/kernel"
)

var _ = Describe("Kernel", func() {
	It("invokes update/propagate exactly Passes() times per primary step (RK4)", func() {
		plan, err := scenarios.Compile(scenarios.ConstantToScope())
		Expect(err).NotTo(HaveOccurred())

		k, err := kernel.New(plan, 0, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(k.Run(context.Background())).To(Succeed())

		// [0,1] step 0.1, RK4 (4 passes/step) -> 10 primary steps * 4 passes.
		Expect(k.StepCount()).To(Equal(40))
	})

	It("only reports on the ready (last) pass, producing one sample per primary step", func() {
		plan, err := scenarios.Compile(scenarios.ConstantToScope())
		Expect(err).NotTo(HaveOccurred())

		k, err := kernel.New(plan, 0, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(k.Run(context.Background())).To(Succeed())

		Expect(k.Sinks()).To(HaveLen(1))
		samples := k.Sinks()[0].Samples("in0")
		// start + k*dtp for k in 0..10 inclusive = 11 samples.
		Expect(samples).To(HaveLen(11))
		for _, s := range samples {
			Expect(s.V).To(BeNumerically("~", 5, 1e-9))
		}
	})

	It("stops cooperatively when Stop is requested", func() {
		plan, err := scenarios.Compile(scenarios.FeedbackLoop())
		Expect(err).NotTo(HaveOccurred())

		k, err := kernel.New(plan, 0, nil)
		Expect(err).NotTo(HaveOccurred())
		k.Stop()
		Expect(k.Run(context.Background())).To(Succeed())
		Expect(k.Tick().T).To(BeNumerically("~", 0, 1e-12))
	})

	It("substitutes a pass-through for an unknown block variant", func() {
		plan, err := scenarios.Compile(scenarios.ConstantToScope())
		Expect(err).NotTo(HaveOccurred())
		plan.Blocks[0].Params.Variant = "not_a_real_variant"

		k, err := kernel.New(plan, 0, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(k.Blocks()).To(HaveLen(2))
	})
})
