package scenarios

import (
	"context"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/osksim/engine/compiler"
	"github.com/osksim/engine/model"
	"github.com/osksim/engine/runner"
)

// Compile compiles m, handed straight through to the standalone demos so
// they don't each carry their own compiler wiring.
func Compile(m model.Model) (compiler.Plan, error) {
	return compiler.Compile(m)
}

// RunAndPrint compiles m, runs it to completion, and prints the resulting
// signal table under title. Compile failures (e.g. an algebraic loop) are
// returned rather than printed, so a caller can distinguish "ran fine" from
// "rejected as expected."
func RunAndPrint(title string, m model.Model) error {
	plan, err := Compile(m)
	if err != nil {
		return err
	}
	run, err := runner.NewBuilder(plan).Build()
	if err != nil {
		return err
	}
	if err := run.Run(context.Background()); err != nil {
		return err
	}
	PrintResults(title, run.Results())
	return nil
}

// PrintResults renders a Results set as a table, shared by every
// cmd/osksim/scenarios/* demo so each one stays a thin driver around its
// model builder.
func PrintResults(title string, r runner.Results) {
	t := table.NewWriter()
	t.SetTitle(title)
	t.AppendHeader(table.Row{"Block", "Port", "Samples", "First", "Last"})
	for _, sig := range r.Signals {
		var first, last float64
		if len(sig.Values) > 0 {
			first = sig.Values[0]
			last = sig.Values[len(sig.Values)-1]
		}
		t.AppendRow(table.Row{sig.BlockID, sig.PortID, len(sig.Values), first, last})
	}
	fmt.Println(t.Render())
	fmt.Printf("steps=%d duration=%.2fms finalTime=%.4f\n",
		r.Statistics.TotalSteps, r.Statistics.ExecutionTimeMs, r.Statistics.FinalTime)
}
