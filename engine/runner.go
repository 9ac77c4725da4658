package engine

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// Command is one message from the input side. Requests accumulate until the
// next tick; the toggles apply immediately
type Command struct {
	Requests
	TogglePause bool
	Stop        bool
}

// Observer is notified after every completed tick, on the runner goroutine
type Observer interface {
	Observe(Report)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(Report)

// Observe implements Observer
func (f ObserverFunc) Observe(r Report) { f(r) }

// Runner drives a Simulation from a wall-clock ticker. It is the only
// goroutine that touches the Simulation once Run starts
type Runner struct {
	sim       *Simulation
	commands  <-chan Command
	observers []Observer
	draw      func(*Simulation)
	log       *slog.Logger

	pending   Requests
	sinceAuto time.Duration

	isPaused   *atomic.Bool
	statFrames *atomic.Int64
}

// RunnerOption configures a Runner
type RunnerOption func(*Runner)

// WithObserver adds an observer called after every tick
func WithObserver(o Observer) RunnerOption {
	return func(r *Runner) { r.observers = append(r.observers, o) }
}

// WithDraw sets the per-frame draw callback. Frames are drawn every tick, paused or not
func WithDraw(fn func(*Simulation)) RunnerOption {
	return func(r *Runner) { r.draw = fn }
}

// WithLogger sets the runner logger
func WithLogger(l *slog.Logger) RunnerOption {
	return func(r *Runner) { r.log = l.With("component", "runner") }
}

// NewRunner wires sim to a command source. A nil channel means no input
func NewRunner(sim *Simulation, commands <-chan Command, opts ...RunnerOption) *Runner {
	reg := sim.Registry()
	r := &Runner{
		sim:        sim,
		commands:   commands,
		log:        slog.New(slog.DiscardHandler),
		isPaused:   reg.Bools.Get("runner.paused"),
		statFrames: reg.Ints.Get("runner.frames"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Paused reports whether ticks are currently skipped
func (r *Runner) Paused() bool {
	return r.isPaused.Load()
}

// Run ticks until ctx is cancelled, a Stop command arrives, or the command
// channel closes. A clean stop returns nil
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.sim.Config().Tick)
	defer ticker.Stop()

	r.log.Info("runner started", "tick", r.sim.Config().Tick)
	defer func() { r.log.Info("runner stopped", "ticks", r.sim.Ticks()) }()

	commands := r.commands
	for {
		select {
		case <-ctx.Done():
			return nil

		case cmd, ok := <-commands:
			if !ok {
				return nil
			}
			if cmd.Stop {
				return nil
			}
			if cmd.TogglePause {
				paused := !r.isPaused.Load()
				r.isPaused.Store(paused)
				r.log.Info("pause toggled", "paused", paused, "tick", r.sim.Ticks())
			}
			r.pending.Merge(cmd.Requests)

		case <-ticker.C:
			if !r.isPaused.Load() {
				r.tick()
			}
			r.frame()
		}
	}
}

// Advance runs n ticks back to back without the wall clock and returns the
// last report. Commands are not read; auto-spawn still applies
func (r *Runner) Advance(n int) Report {
	var last Report
	for range n {
		last = r.tick()
	}
	return last
}

func (r *Runner) tick() Report {
	if auto := r.sim.Config().Spawn.AutoInterval; auto > 0 {
		r.sinceAuto += r.sim.Config().Tick
		if r.sinceAuto >= auto {
			r.sinceAuto = 0
			r.pending.Random = true
		}
	}

	rep := r.sim.Step(r.pending)
	r.pending = Requests{}
	for _, o := range r.observers {
		o.Observe(rep)
	}
	return rep
}

func (r *Runner) frame() {
	if r.draw == nil {
		return
	}
	r.draw(r.sim)
	r.statFrames.Add(1)
}
