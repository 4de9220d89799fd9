// Command feedback_loop runs the "Feedback loop via integrator" worked
// example from §8, realizing xdot = 1 - x; x(5) should land near 0.9933.
package main

import (
	"fmt"
	"os"

	"github.com/osksim/engine/internal/scenarios"
)

func main() {
	if err := scenarios.RunAndPrint("Feedback loop", scenarios.FeedbackLoop()); err != nil {
		fmt.Fprintln(os.Stderr, "feedback_loop:", err)
		os.Exit(1)
	}
}
