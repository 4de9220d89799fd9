// Command oskverify runs the six worked models from §8 and checks each
// against its documented expected behavior, staged the way the teacher's
// verify-fir command reports lint and simulation results.
package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osksim/engine/internal/scenarios"
	"github.com/osksim/engine/model"
	"github.com/osksim/engine/oskerr"
	"github.com/osksim/engine/runner"
)

var titleCaser = cases.Title(language.English)

func main() {
	fmt.Println("==============================================================================")
	fmt.Println("OSKSIM MODEL VERIFICATION")
	fmt.Println("==============================================================================")

	failures := 0
	for i, stage := range stages {
		fmt.Println()
		fmt.Printf("STAGE %d: %s\n", i+1, titleCaser.String(stage.name))
		fmt.Println("------------------------------------------------------------------------------")
		if err := stage.check(); err != nil {
			fmt.Printf("❌ FAILED: %v\n", err)
			failures++
			continue
		}
		fmt.Println("✅ PASSED")
	}

	fmt.Println()
	fmt.Println("==============================================================================")
	fmt.Println("VERIFICATION SUMMARY")
	fmt.Println("==============================================================================")
	for _, stage := range stages {
		fmt.Printf("  %s\n", titleCaser.String(stage.name))
	}
	if failures > 0 {
		fmt.Printf("\n%d of %d stages failed\n", failures, len(stages))
		os.Exit(1)
	}
	fmt.Printf("\nall %d stages passed\n", len(stages))
}

type stage struct {
	name  string
	check func() error
}

var stages = []stage{
	{"constant to scope", checkConstantToScope},
	{"step integration", checkStepIntegration},
	{"feedback loop", checkFeedbackLoop},
	{"algebraic loop rejection", checkAlgebraicLoopRejection},
	{"subsystem equivalence", checkSubsystemEquivalence},
	{"sine wave", checkSineWave},
}

const tolerance = 1e-6

func checkConstantToScope() error {
	sig, err := scopeSignal(scenarios.ConstantToScope())
	if err != nil {
		return err
	}
	for i, v := range sig.Values {
		if math.Abs(v-5) > tolerance {
			return fmt.Errorf("sample %d at t=%g: got %g, want 5", i, sig.Times[i], v)
		}
	}
	return nil
}

func checkStepIntegration() error {
	sig, err := scopeSignal(scenarios.StepIntegration())
	if err != nil {
		return err
	}
	got1, err := valueAt(sig, 1)
	if err != nil {
		return err
	}
	if math.Abs(got1-0) > tolerance {
		return fmt.Errorf("x(1): got %g, want 0", got1)
	}
	got2, err := valueAt(sig, 2)
	if err != nil {
		return err
	}
	if math.Abs(got2-1) > 1e-3 {
		return fmt.Errorf("x(2): got %g, want ~1", got2)
	}
	got3, err := valueAt(sig, 3)
	if err != nil {
		return err
	}
	if math.Abs(got3-2) > 1e-3 {
		return fmt.Errorf("x(3): got %g, want ~2", got3)
	}
	return nil
}

func checkFeedbackLoop() error {
	sig, err := scopeSignal(scenarios.FeedbackLoop())
	if err != nil {
		return err
	}
	got, err := valueAt(sig, 5)
	if err != nil {
		return err
	}
	const want = 0.9932621
	if math.Abs(got-want) > 1e-3 {
		return fmt.Errorf("x(5): got %g, want ~%g", got, want)
	}
	return nil
}

func checkAlgebraicLoopRejection() error {
	_, err := scenarios.Compile(scenarios.AlgebraicLoopRejection())
	if err == nil {
		return errors.New("expected an algebraic loop error, compile succeeded")
	}
	var kerr *oskerr.Error
	if !errors.As(err, &kerr) || kerr.Kind != oskerr.AlgebraicLoop {
		return fmt.Errorf("expected AlgebraicLoop, got: %v", err)
	}
	return nil
}

func checkSubsystemEquivalence() error {
	flat, err := scopeSignal(scenarios.SubsystemEquivalenceFlat())
	if err != nil {
		return fmt.Errorf("flat model: %w", err)
	}
	nested, err := scopeSignal(scenarios.SubsystemEquivalenceNested())
	if err != nil {
		return fmt.Errorf("nested model: %w", err)
	}
	if len(flat.Values) != len(nested.Values) {
		return fmt.Errorf("sample count mismatch: flat=%d nested=%d", len(flat.Values), len(nested.Values))
	}
	for i := range flat.Values {
		if flat.Values[i] != nested.Values[i] {
			return fmt.Errorf("mismatch at sample %d: flat=%g nested=%g", i, flat.Values[i], nested.Values[i])
		}
	}
	return nil
}

func checkSineWave() error {
	sig, err := scopeSignal(scenarios.SineWave())
	if err != nil {
		return err
	}
	got25, err := valueAt(sig, 0.25)
	if err != nil {
		return err
	}
	if math.Abs(got25-1) > 1e-2 {
		return fmt.Errorf("sin(0.25): got %g, want ~1", got25)
	}
	got5, err := valueAt(sig, 0.5)
	if err != nil {
		return err
	}
	if math.Abs(got5-0) > 1e-2 {
		return fmt.Errorf("sin(0.5): got %g, want ~0", got5)
	}
	return nil
}

func scopeSignal(m model.Model) (runner.Signal, error) {
	plan, err := scenarios.Compile(m)
	if err != nil {
		return runner.Signal{}, err
	}
	run, err := runner.NewBuilder(plan).Build()
	if err != nil {
		return runner.Signal{}, err
	}
	if err := run.Run(context.Background()); err != nil {
		return runner.Signal{}, err
	}
	for _, sig := range run.Results().Signals {
		if sig.BlockID == "scope" {
			return sig, nil
		}
	}
	return runner.Signal{}, errors.New("no scope signal recorded")
}

func valueAt(sig runner.Signal, t float64) (float64, error) {
	best := -1
	bestDelta := math.Inf(1)
	for i, ti := range sig.Times {
		d := math.Abs(ti - t)
		if d < bestDelta {
			bestDelta = d
			best = i
		}
	}
	if best < 0 || bestDelta > 1e-6 {
		return 0, fmt.Errorf("no sample near t=%g", t)
	}
	return sig.Values[best], nil
}
