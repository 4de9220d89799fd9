// Command constant_to_scope runs the "Constant to scope" worked example
// from §8: every scope sample should read exactly 5.
package main

import (
	"fmt"
	"os"

	"github.com/osksim/engine/internal/scenarios"
)

func main() {
	if err := scenarios.RunAndPrint("Constant to scope", scenarios.ConstantToScope()); err != nil {
		fmt.Fprintln(os.Stderr, "constant_to_scope:", err)
		os.Exit(1)
	}
}
