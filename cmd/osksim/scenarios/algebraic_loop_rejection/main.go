// Command algebraic_loop_rejection runs the "Algebraic loop rejection"
// worked example from §8. This model is expected to FAIL compilation — a
// pure Gain cycle has no state-holding variant to break it — so success
// here means Compile returned an AlgebraicLoop error, not that it ran.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/osksim/engine/internal/scenarios"
	"github.com/osksim/engine/oskerr"
)

func main() {
	_, err := scenarios.Compile(scenarios.AlgebraicLoopRejection())
	if err == nil {
		fmt.Fprintln(os.Stderr, "algebraic_loop_rejection: expected an algebraic loop error, compile succeeded")
		os.Exit(1)
	}

	var kerr *oskerr.Error
	if errors.As(err, &kerr) && kerr.Kind == oskerr.AlgebraicLoop {
		fmt.Println("rejected as expected:", err)
		return
	}
	fmt.Fprintln(os.Stderr, "algebraic_loop_rejection: unexpected error:", err)
	os.Exit(1)
}
