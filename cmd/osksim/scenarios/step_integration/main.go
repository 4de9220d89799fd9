// Command step_integration runs the "Step integration" worked example from
// §8: the integrator's output should ramp from 0 at t=1 to 2 at t=3.
package main

import (
	"fmt"
	"os"

	"github.com/osksim/engine/internal/scenarios"
)

func main() {
	if err := scenarios.RunAndPrint("Step integration", scenarios.StepIntegration()); err != nil {
		fmt.Fprintln(os.Stderr, "step_integration:", err)
		os.Exit(1)
	}
}
