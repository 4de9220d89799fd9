// Command sine_wave runs the "Sine wave" worked example from §8.
package main

import (
	"fmt"
	"os"

	"github.com/osksim/engine/internal/scenarios"
)

func main() {
	if err := scenarios.RunAndPrint("Sine wave", scenarios.SineWave()); err != nil {
		fmt.Fprintln(os.Stderr, "sine_wave:", err)
		os.Exit(1)
	}
}
