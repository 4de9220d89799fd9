// Package runner wraps a compiled plan and its kernel with status,
// progress, pause/stop and results (C7, §4.6) — modeled on the teacher's
// public-interface-plus-unexported-struct driver shape, with builder-style
// construction.
package runner

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/rs/xid"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/osksim/engine/block"
	"github.com/osksim/engine/compiler"
	"github.com/osksim/engine/kernel"
)

// Status is the run's coarse lifecycle state.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusCompiling Status = "compiling"
	StatusRunning   Status = "running"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
	StatusError     Status = "error"
)

// Signal is one recorded output series, as returned by Results.
type Signal struct {
	BlockID string
	PortID  string
	Name    string
	Times   []float64
	Values  []float64
}

// Statistics summarizes a completed (or partially completed) run.
type Statistics struct {
	TotalSteps      int
	ExecutionTimeMs float64
	FinalTime       float64
	PeakRSSBytes    uint64
}

// Results is everything a caller can retrieve after (or during) a run.
type Results struct {
	Signals    []Signal
	Statistics Statistics
}

// Runner is the public surface a caller drives: compile once, run, observe
// status, retrieve results.
type Runner interface {
	ID() string
	Status() Status
	Progress() float64
	CurrentTime() float64
	Err() error

	Run(ctx context.Context) error
	Pause()
	Resume()
	Stop()

	Results() Results
}

// runnerImpl is the concrete Runner, built only via Builder.
type runnerImpl struct {
	id     string
	plan   compiler.Plan
	seed   int64
	log    *slog.Logger
	sample bool // whether to sample RSS via gopsutil at run end

	mu       sync.Mutex
	status   Status
	err      error
	kernel   *kernel.Kernel
	started  time.Time
	duration time.Duration
}

// Builder constructs a Runner, mirroring the teacher's NewBuilder()...Build()
// chain: each With* method returns the builder by value.
type Builder struct {
	plan   compiler.Plan
	seed   int64
	log    *slog.Logger
	sample bool
}

// NewBuilder starts a Runner build from an already-compiled plan.
func NewBuilder(plan compiler.Plan) Builder {
	return Builder{plan: plan, sample: true}
}

// WithSeed sets the noise RNG seed (Design Notes §9, "Noise determinism").
func (b Builder) WithSeed(seed int64) Builder {
	b.seed = seed
	return b
}

// WithLogger overrides the default slog logger.
func (b Builder) WithLogger(log *slog.Logger) Builder {
	b.log = log
	return b
}

// WithRSSSampling toggles peak-RSS sampling via gopsutil at run completion.
func (b Builder) WithRSSSampling(enabled bool) Builder {
	b.sample = enabled
	return b
}

// Build constructs the runtime kernel and returns a ready-to-run Runner.
func (b Builder) Build() (Runner, error) {
	log := b.log
	if log == nil {
		log = slog.Default()
	}
	k, err := kernel.New(b.plan, b.seed, log)
	if err != nil {
		return nil, err
	}
	return &runnerImpl{
		id:     xid.New().String(),
		plan:   b.plan,
		seed:   b.seed,
		log:    log,
		sample: b.sample,
		status: StatusIdle,
		kernel: k,
	}, nil
}

func (r *runnerImpl) ID() string { return r.id }

func (r *runnerImpl) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

func (r *runnerImpl) Progress() float64 {
	start, stop := r.plan.Config.StartTime, r.plan.Config.StopTime
	if stop <= start {
		return 0
	}
	t := r.kernel.Tick().T
	p := (t - start) / (stop - start)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

func (r *runnerImpl) CurrentTime() float64 { return r.kernel.Tick().T }

func (r *runnerImpl) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *runnerImpl) Pause() {
	r.kernel.Pause()
	r.setStatus(StatusPaused)
}

func (r *runnerImpl) Resume() {
	r.kernel.Resume()
	r.setStatus(StatusRunning)
}

func (r *runnerImpl) Stop() { r.kernel.Stop() }

func (r *runnerImpl) setStatus(s Status) {
	r.mu.Lock()
	r.status = s
	r.mu.Unlock()
}

// Run drives the kernel to completion, recording wall-clock duration and
// (if enabled) peak RSS for the statistics surface (§4.6, §6).
func (r *runnerImpl) Run(ctx context.Context) error {
	r.setStatus(StatusRunning)
	r.started = time.Now()

	err := r.kernel.Run(ctx)

	r.mu.Lock()
	r.duration = time.Since(r.started)
	if err != nil {
		r.status = StatusError
		r.err = err
	} else {
		r.status = StatusCompleted
	}
	r.mu.Unlock()

	return err
}

// Results gathers every sink's recorded samples plus run statistics.
func (r *runnerImpl) Results() Results {
	var signals []Signal
	for _, s := range r.kernel.Sinks() {
		for _, ch := range s.Channels() {
			samples := s.Samples(ch)
			sig := Signal{
				BlockID: sinkBlockID(s),
				PortID:  ch,
				Name:    ch,
				Times:   make([]float64, len(samples)),
				Values:  make([]float64, len(samples)),
			}
			for i, smp := range samples {
				sig.Times[i] = smp.T
				sig.Values[i] = smp.V
			}
			signals = append(signals, sig)
		}
	}

	stats := Statistics{
		TotalSteps:      r.kernel.StepCount(),
		ExecutionTimeMs: float64(r.duration.Microseconds()) / 1000,
		FinalTime:       r.kernel.Tick().T,
	}
	if r.sample {
		if rss, err := peakRSS(); err == nil {
			stats.PeakRSSBytes = rss
		}
	}
	return Results{Signals: signals, Statistics: stats}
}

func sinkBlockID(s block.Sink) string { return s.ID() }

// peakRSS samples the current process's resident set size via gopsutil;
// "peak" is approximated by sampling once at run completion rather than
// tracking a running maximum, which would require a background sampler
// the kernel's synchronous loop has no natural place to drive from.
func peakRSS() (uint64, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0, err
	}
	info, err := p.MemoryInfo()
	if err != nil {
		return 0, err
	}
	return info.RSS, nil
}
