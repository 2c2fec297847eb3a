package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// PausableClock wraps a TimeProvider and freezes its reading while paused
// The loop measures a zero delta for every tick spent paused
type PausableClock struct {
	mu   sync.RWMutex
	base TimeProvider

	// Pause state
	isPaused        atomic.Bool
	pauseStartTime  time.Time     // Base reading when the current pause started
	totalPausedTime time.Duration // Cumulative pause duration
}

// NewPausableClock creates a running clock over base
func NewPausableClock(base TimeProvider) *PausableClock {
	return &PausableClock{base: base}
}

// Now returns base time minus every pause; frozen during a pause
func (pc *PausableClock) Now() time.Time {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	if pc.isPaused.Load() {
		return pc.pauseStartTime.Add(-pc.totalPausedTime)
	}
	return pc.base.Now().Add(-pc.totalPausedTime)
}

// Pause stops time advancement
func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if pc.isPaused.CompareAndSwap(false, true) {
		pc.pauseStartTime = pc.base.Now()
	}
}

// Resume continues time advancement from the frozen reading
func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if pc.isPaused.CompareAndSwap(true, false) {
		pc.totalPausedTime += pc.base.Now().Sub(pc.pauseStartTime)
		pc.pauseStartTime = time.Time{}
	}
}

// Toggle flips the pause state and reports whether the clock is now paused
func (pc *PausableClock) Toggle() bool {
	if pc.IsPaused() {
		pc.Resume()
		return false
	}
	pc.Pause()
	return true
}

// IsPaused returns current pause state
func (pc *PausableClock) IsPaused() bool {
	return pc.isPaused.Load()
}

// TotalPauseDuration returns cumulative pause time of completed pauses
func (pc *PausableClock) TotalPauseDuration() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.totalPausedTime
}
