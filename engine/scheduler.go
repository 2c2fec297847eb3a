package engine

import (
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

type schedulerEntry struct {
	system   System
	priority int
}

// Scheduler runs registered systems once per tick in ascending priority order
// Equal priorities run in registration order
type Scheduler struct {
	mu       sync.RWMutex
	entries  []schedulerEntry
	parallel bool
}

// NewScheduler creates an empty scheduler
func NewScheduler() *Scheduler {
	return &Scheduler{
		entries: make([]schedulerEntry, 0, 8),
	}
}

// Register adds a system at the specified priority. Maintains sorted order via insertion sort
func (s *Scheduler) Register(system System, priority int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := schedulerEntry{
		system:   system,
		priority: priority,
	}

	// Insert after every entry of lower or equal priority
	pos := len(s.entries)
	for i, e := range s.entries {
		if priority < e.priority {
			pos = i
			break
		}
	}

	s.entries = append(s.entries, schedulerEntry{})
	copy(s.entries[pos+1:], s.entries[pos:])
	s.entries[pos] = entry
}

// SetParallel allows systems that share a priority and have pairwise disjoint access
// to run concurrently. Systems of different priorities never overlap
func (s *Scheduler) SetParallel(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parallel = enabled
}

// Systems returns the registered systems in execution order
func (s *Scheduler) Systems() []System {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]System, len(s.entries))
	for i, e := range s.entries {
		result[i] = e.system
	}
	return result
}

// Tick runs every system exactly once
// The first failure aborts the tick; a Quit outcome is reported after all systems ran
func (s *Scheduler) Tick(ctx *Context) (Outcome, error) {
	s.mu.RLock()
	entries := make([]schedulerEntry, len(s.entries))
	copy(entries, s.entries)
	parallel := s.parallel
	s.mu.RUnlock()

	outcome := Continue
	for i := 0; i < len(entries); {
		end := i + 1
		if parallel {
			end = stageEnd(entries, i)
		}

		var (
			out Outcome
			err error
		)
		if end-i == 1 {
			out, err = runEntry(entries[i], ctx)
		} else {
			out, err = runStage(entries[i:end], ctx)
		}
		if err != nil {
			return Continue, err
		}
		if out == Quit {
			outcome = Quit
		}
		i = end
	}
	return outcome, nil
}

// stageEnd returns the end of the run of equal-priority, mutually non-conflicting entries starting at i
func stageEnd(entries []schedulerEntry, i int) int {
	end := i + 1
	for end < len(entries) && entries[end].priority == entries[i].priority {
		access := entries[end].system.Access()
		for _, prev := range entries[i:end] {
			if prev.system.Access().Conflicts(access) {
				return end
			}
		}
		end++
	}
	return end
}

func runStage(stage []schedulerEntry, ctx *Context) (Outcome, error) {
	var (
		g    errgroup.Group
		quit atomic.Bool
	)
	for _, e := range stage {
		g.Go(func() error {
			out, err := runEntry(e, ctx)
			if out == Quit {
				quit.Store(true)
			}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return Continue, err
	}
	if quit.Load() {
		return Quit, nil
	}
	return Continue, nil
}

func runEntry(e schedulerEntry, ctx *Context) (Outcome, error) {
	out, err := e.system.Run(ctx)
	if err != nil {
		return Continue, fmt.Errorf("frame %d: system %s: %w", ctx.Frame, e.system.Name(), err)
	}
	return out, nil
}
