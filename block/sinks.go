package block

import (
	"fmt"

	"github.com/osksim/engine/model"
)

func init() {
	register(model.VariantScope, newScope)
	register(model.VariantToWorkspace, newToWorkspace)
	register(model.VariantDisplay, newDisplay)
	register(model.VariantTerminator, newTerminator)
}

// Sample is one recorded (time, value) pair.
type Sample struct {
	T, V float64
}

// Sink is the extra contract a recording block exposes so the runner can
// pull its history without knowing the concrete variant.
type Sink interface {
	Block
	Channels() []string
	Samples(channel string) []Sample
}

// scope records every input channel's samples while the tick is ready.
type scope struct {
	base
	numInputs int
	history   [][]Sample
}

func newScope(def model.Block) (Block, error) {
	n := len(def.Inputs)
	if n == 0 {
		n = 1
	}
	return &scope{base: newBase(model.VariantScope, def), numInputs: n, history: make([][]Sample, n)}, nil
}

func (s *scope) Init(ctx *RunContext) {
	for i := range s.history {
		s.history[i] = s.history[i][:0]
	}
}

func (s *scope) Update(ctx *RunContext) {}

func (s *scope) Report(ctx *RunContext) {
	if !ctx.Tick.Ready {
		return
	}
	for i := 0; i < s.numInputs; i++ {
		port := fmt.Sprintf("in%d", i)
		s.history[i] = append(s.history[i], Sample{T: ctx.Tick.T, V: s.in(port)})
	}
}

func (s *scope) Channels() []string {
	chans := make([]string, s.numInputs)
	for i := range chans {
		chans[i] = fmt.Sprintf("in%d", i)
	}
	return chans
}

func (s *scope) Samples(channel string) []Sample { return s.channelHistory(channel) }

func (s *scope) channelHistory(channel string) []Sample {
	for i := 0; i < s.numInputs; i++ {
		if fmt.Sprintf("in%d", i) == channel {
			return s.history[i]
		}
	}
	return nil
}

// toWorkspace records one signal under a named variable.
type toWorkspace struct {
	base
	varName string
	history []Sample
}

func newToWorkspace(def model.Block) (Block, error) {
	return &toWorkspace{
		base:    newBase(model.VariantToWorkspace, def),
		varName: def.StrParam("variableName", def.ID),
	}, nil
}

func (w *toWorkspace) Init(ctx *RunContext) { w.history = w.history[:0] }
func (w *toWorkspace) Update(ctx *RunContext) {}
func (w *toWorkspace) Report(ctx *RunContext) {
	if !ctx.Tick.Ready {
		return
	}
	w.history = append(w.history, Sample{T: ctx.Tick.T, V: w.in("in")})
}
func (w *toWorkspace) Channels() []string        { return []string{w.varName} }
func (w *toWorkspace) Samples(channel string) []Sample {
	if channel == w.varName {
		return w.history
	}
	return nil
}

// display latches the current input value; terminator discards it. Both
// are informational-only in this engine (no UI collaborator to render to).
type display struct {
	base
	latched float64
}

func newDisplay(def model.Block) (Block, error) {
	return &display{base: newBase(model.VariantDisplay, def)}, nil
}
func (d *display) Init(ctx *RunContext)   {}
func (d *display) Update(ctx *RunContext) { d.latched = d.in("in") }

type terminator struct{ base }

func newTerminator(def model.Block) (Block, error) {
	return &terminator{base: newBase(model.VariantTerminator, def)}, nil
}
func (t *terminator) Init(ctx *RunContext)   {}
func (t *terminator) Update(ctx *RunContext) { t.in("in") }
