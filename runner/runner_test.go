package runner

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/osksim/engine/internal/scenarios"
	"github.com/osksim/engine/model"
	"github.com/osksim/engine/oskerr"
)

func runScope(m model.Model) (Signal, error) {
	plan, err := scenarios.Compile(m)
	if err != nil {
		return Signal{}, err
	}
	r, err := NewBuilder(plan).Build()
	if err != nil {
		return Signal{}, err
	}
	if err := r.Run(context.Background()); err != nil {
		return Signal{}, err
	}
	for _, sig := range r.Results().Signals {
		if sig.BlockID == "scope" {
			return sig, nil
		}
	}
	return Signal{}, errors.New("no scope signal")
}

func valueAt(sig Signal, t float64) float64 {
	best, bestDelta := -1, math.Inf(1)
	for i, ti := range sig.Times {
		if d := math.Abs(ti - t); d < bestDelta {
			bestDelta, best = d, i
		}
	}
	if best < 0 {
		return math.NaN()
	}
	return sig.Values[best]
}

var _ = Describe("Runner against the worked scenarios (§8)", func() {
	It("1. constant to scope: every sample reads exactly 5", func() {
		sig, err := runScope(scenarios.ConstantToScope())
		Expect(err).NotTo(HaveOccurred())
		Expect(sig.Times).To(HaveLen(11))
		for _, v := range sig.Values {
			Expect(v).To(BeNumerically("~", 5, 1e-9))
		}
	})

	It("2. step integration: x(1)=0, x(2)~1, x(3)~2", func() {
		sig, err := runScope(scenarios.StepIntegration())
		Expect(err).NotTo(HaveOccurred())
		Expect(valueAt(sig, 1)).To(BeNumerically("~", 0, 1e-9))
		Expect(valueAt(sig, 2)).To(BeNumerically("~", 1, 1e-3))
		Expect(valueAt(sig, 3)).To(BeNumerically("~", 2, 1e-3))
	})

	It("3. feedback loop via integrator: x(5) ~ 1-e^-5", func() {
		sig, err := runScope(scenarios.FeedbackLoop())
		Expect(err).NotTo(HaveOccurred())
		Expect(valueAt(sig, 5)).To(BeNumerically("~", 0.9932621, 1e-5))
	})

	It("4. algebraic loop rejection: compile fails with AlgebraicLoop naming both gains", func() {
		_, err := scenarios.Compile(scenarios.AlgebraicLoopRejection())
		var kerr *oskerr.Error
		Expect(errors.As(err, &kerr)).To(BeTrue())
		Expect(kerr.Kind).To(Equal(oskerr.AlgebraicLoop))
		Expect(kerr.BlockIDs).To(ContainElements("g1", "g2"))
	})

	It("5. subsystem equivalence: flat and nested scopes are bit-identical", func() {
		flat, err := runScope(scenarios.SubsystemEquivalenceFlat())
		Expect(err).NotTo(HaveOccurred())
		nested, err := runScope(scenarios.SubsystemEquivalenceNested())
		Expect(err).NotTo(HaveOccurred())

		Expect(nested.Values).To(HaveLen(len(flat.Values)))
		for i := range flat.Values {
			Expect(nested.Values[i]).To(Equal(flat.Values[i]))
		}
	})

	It("6. sine wave: sample at t=0.25 is +1, at t=0.5 is 0", func() {
		sig, err := runScope(scenarios.SineWave())
		Expect(err).NotTo(HaveOccurred())
		Expect(valueAt(sig, 0.25)).To(BeNumerically("~", 1, 1e-9))
		Expect(valueAt(sig, 0.5)).To(BeNumerically("~", 0, 1e-6))
	})

	It("reports progress reaching 1 and status completed", func() {
		plan, err := scenarios.Compile(scenarios.ConstantToScope())
		Expect(err).NotTo(HaveOccurred())
		r, err := NewBuilder(plan).Build()
		Expect(err).NotTo(HaveOccurred())
		Expect(r.Run(context.Background())).To(Succeed())
		Expect(r.Progress()).To(BeNumerically("~", 1, 1e-9))
		Expect(r.Status()).To(Equal(StatusCompleted))
	})
})
