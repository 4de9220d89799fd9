// Package kernel drives a compiled plan pass by pass: update every block,
// report sinks on ready passes, propagate integrator cells, advance the
// tick (§4.5). It is the repository's own minimal single-threaded serial
// scheduler — see DESIGN.md for why the teacher's distributed-event engine
// was not a fit for this exactly-ordered loop.
package kernel

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/osksim/engine/block"
	"github.com/osksim/engine/compiler"
	"github.com/osksim/engine/oskerr"
	"github.com/osksim/engine/tick"
)

// LevelTrace sits two notches below slog.LevelInfo, used for per-pass
// logging that would otherwise drown out ordinary run-level messages.
const LevelTrace = slog.Level(slog.LevelInfo - 2)

// Kernel owns one compiled plan's runtime blocks and its own *tick.Tick —
// scoped per instance (Design Notes §9; SPEC_FULL §5) so two Kernels never
// share mutable time state.
type Kernel struct {
	plan   compiler.Plan
	blocks []block.Block
	sinks  []block.Sink
	tick   *tick.Tick
	ctx    *block.RunContext

	pause bool
	stop  bool

	log *slog.Logger

	stepCount int
}

// New builds the runtime blocks for a compiled plan, substituting a
// pass-through for any block whose variant the registry does not know
// (§7, UnknownBlockVariant — non-fatal) and wiring every input binding.
func New(plan compiler.Plan, seed int64, log *slog.Logger) (*Kernel, error) {
	if log == nil {
		log = slog.Default()
	}
	tk := tick.New(plan.Config.Solver, plan.Config.StartTime, plan.Config.StepSize)

	k := &Kernel{
		plan: plan,
		tick: tk,
		ctx:  block.NewRunContext(tk, seed),
		log:  log,
	}

	byID := make(map[string]block.Block, len(plan.Blocks))
	for _, cb := range plan.Blocks {
		b, err := block.New(cb.Params)
		if err != nil {
			log.Warn("unknown block variant, substituting pass-through", "blockId", cb.Params.ID, "variant", cb.Variant, "err", err)
			b = block.NewPassThrough(cb.Params)
		}
		byID[cb.Params.ID] = b
		k.blocks = append(k.blocks, b)
		if sink, ok := b.(block.Sink); ok {
			k.sinks = append(k.sinks, sink)
		}
	}

	for _, cb := range plan.Blocks {
		dst := byID[cb.Params.ID]
		for _, bind := range cb.Bindings {
			src, ok := byID[bind.SrcBlockID]
			if !ok {
				return nil, oskerr.New(oskerr.InternalCompile, []string{bind.SrcBlockID}, "binding references unknown block")
			}
			dst.Bind(bind.DstPortID, src, bind.SrcPortID)
		}
	}

	return k, nil
}

// Blocks returns the runtime blocks in execution order, for callers (e.g.
// runner) that need to inspect results after a run.
func (k *Kernel) Blocks() []block.Block { return k.blocks }

// Sinks returns every runtime block that also implements block.Sink.
func (k *Kernel) Sinks() []block.Sink { return k.sinks }

// Tick exposes the kernel's tick for status reporting.
func (k *Kernel) Tick() *tick.Tick { return k.tick }

// Pause requests the kernel pause cooperatively at the next primary-step
// boundary.
func (k *Kernel) Pause() { k.pause = true }

// Resume clears a pending pause.
func (k *Kernel) Resume() { k.pause = false }

// Stop requests the kernel halt at the next primary-step boundary.
func (k *Kernel) Stop() { k.stop = true }

// Run drives the kernel to completion (or until Stop is requested),
// yielding cooperatively between primary steps (§5).
func (k *Kernel) Run(ctx context.Context) error {
	for _, b := range k.blocks {
		b.Init(k.ctx)
	}

	for !k.tick.Done(k.plan.Config.StopTime) {
		if k.tick.Kpass == 0 {
			if err := k.yieldAtBoundary(ctx); err != nil {
				return err
			}
			if k.stop {
				return nil
			}
		}

		if err := k.runPass(); err != nil {
			return err
		}

		k.tick.Advance()
	}
	if !k.stop {
		// Record the sample at t = stop: one update pass at the final
		// time, then a report, with no propagate and no further advance.
		for _, b := range k.blocks {
			b.Update(k.ctx)
		}
		k.tick.Ready = true
		for _, b := range k.blocks {
			b.Report(k.ctx)
		}
	}
	return nil
}

// runPass executes exactly one pass: all updates, then (if ready) all
// reports, then all propagates — the ordering §4.5 requires.
func (k *Kernel) runPass() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = oskerr.New(oskerr.RuntimeFailure, nil, "panic during pass: %v", r)
		}
	}()

	k.log.Log(context.Background(), LevelTrace, "pass start", "t", k.tick.T, "kpass", k.tick.Kpass)

	for _, b := range k.blocks {
		b.Update(k.ctx)
	}
	if k.tick.Ready {
		for _, b := range k.blocks {
			b.Report(k.ctx)
		}
	}
	for _, b := range k.blocks {
		b.Propagate(k.ctx)
	}
	k.stepCount++
	return nil
}

// yieldAtBoundary checks the cooperative pause/stop flags and yields to the
// caller's context between primary steps (§5 suspension points).
func (k *Kernel) yieldAtBoundary(ctx context.Context) error {
	for k.pause && !k.stop {
		select {
		case <-ctx.Done():
			k.stop = true
			return fmt.Errorf("kernel run cancelled: %w", ctx.Err())
		case <-time.After(10 * time.Millisecond):
		}
	}
	select {
	case <-ctx.Done():
		k.stop = true
		return fmt.Errorf("kernel run cancelled: %w", ctx.Err())
	default:
	}
	return nil
}

// StepCount is the number of passes executed so far, for statistics.
func (k *Kernel) StepCount() int { return k.stepCount }
