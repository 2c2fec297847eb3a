package engine

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/ballfall/input"
	"github.com/lixenwraith/ballfall/status"
)

// LoopConfig controls tick pacing and delta computation
type LoopConfig struct {
	// Interval is the minimum wall time between tick starts; zero runs ticks back to back
	Interval time.Duration

	// FixedDelta replaces the measured delta on every tick when non-zero
	FixedDelta time.Duration

	// MaxDelta clamps measured deltas; zero disables clamping
	MaxDelta time.Duration

	// MaxTicks stops the loop after this many ticks; zero runs until Quit
	MaxTicks int64
}

// Loop drives the scheduler: poll input, measure delta, tick, repeat
// Cancellation and quit requests are only observed between ticks
type Loop struct {
	world     *World
	scheduler *Scheduler
	events    input.Source
	clock     TimeProvider
	cfg       LoopConfig

	statTicks *atomic.Int64
}

// NewLoop wires a run loop; events may be nil when no input collaborator exists
func NewLoop(world *World, scheduler *Scheduler, events input.Source, clock TimeProvider, cfg LoopConfig) *Loop {
	if clock == nil {
		clock = NewMonotonicTimeProvider()
	}
	return &Loop{
		world:     world,
		scheduler: scheduler,
		events:    events,
		clock:     clock,
		cfg:       cfg,
		statTicks: world.Status.Ints.Get(status.KeyTicks),
	}
}

// Run ticks until a system requests Quit, a system fails, MaxTicks is reached or ctx is cancelled
// Returns the number of completed ticks; a system failure is returned as the error
func (l *Loop) Run(ctx context.Context) (int64, error) {
	var ticker *time.Ticker
	if l.cfg.Interval > 0 {
		ticker = time.NewTicker(l.cfg.Interval)
		defer ticker.Stop()
	}

	log.Printf("loop: start (interval=%s fixed=%s max_ticks=%d)", l.cfg.Interval, l.cfg.FixedDelta, l.cfg.MaxTicks)

	var (
		frame int64
		last  time.Time
	)
	for {
		if ctx.Err() != nil {
			log.Printf("loop: cancelled after %d ticks", frame)
			return frame, nil
		}

		now := l.clock.Now()
		tickCtx := &Context{
			World: l.world,
			Delta: l.delta(frame, now, last),
			Frame: frame,
		}
		last = now
		if l.events != nil {
			tickCtx.Events = l.events.Poll()
		}

		outcome, err := l.scheduler.Tick(tickCtx)
		if err != nil {
			log.Printf("loop: aborted: %v", err)
			return frame, err
		}
		frame++
		l.statTicks.Store(frame)

		if outcome == Quit {
			log.Printf("loop: quit after %d ticks", frame)
			return frame, nil
		}
		if l.cfg.MaxTicks > 0 && frame >= l.cfg.MaxTicks {
			log.Printf("loop: reached %d ticks", frame)
			return frame, nil
		}

		if ticker != nil {
			select {
			case <-ticker.C:
			case <-ctx.Done():
				log.Printf("loop: cancelled after %d ticks", frame)
				return frame, nil
			}
		}
	}
}

// delta computes the tick delta; the first measured tick is zero
// Negative deltas from a misbehaving clock pass through so the physics step rejects them
func (l *Loop) delta(frame int64, now, last time.Time) time.Duration {
	if l.cfg.FixedDelta > 0 {
		return l.cfg.FixedDelta
	}
	if frame == 0 {
		return 0
	}
	d := now.Sub(last)
	if l.cfg.MaxDelta > 0 && d > l.cfg.MaxDelta {
		d = l.cfg.MaxDelta
	}
	return d
}
