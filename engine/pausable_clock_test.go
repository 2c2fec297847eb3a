package engine

import (
	"context"
	"testing"
	"time"
)

func TestPausableClock(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	base := NewMockTimeProvider(start)
	pc := NewPausableClock(base)

	base.Advance(time.Second)
	if got := pc.Now(); !got.Equal(start.Add(time.Second)) {
		t.Fatalf("Expected running clock to follow base, got %v", got)
	}

	if !pc.Toggle() {
		t.Fatal("Expected Toggle to pause")
	}
	base.Advance(5 * time.Second)
	if got := pc.Now(); !got.Equal(start.Add(time.Second)) {
		t.Errorf("Expected frozen reading during pause, got %v", got)
	}

	if pc.Toggle() {
		t.Fatal("Expected Toggle to resume")
	}
	if got := pc.TotalPauseDuration(); got != 5*time.Second {
		t.Errorf("Expected 5s paused, got %v", got)
	}

	base.Advance(time.Second)
	if got := pc.Now(); !got.Equal(start.Add(2 * time.Second)) {
		t.Errorf("Expected clock to resume from frozen reading, got %v", got)
	}

	// Repeated pause and resume calls are idempotent
	pc.Resume()
	pc.Pause()
	pc.Pause()
	if !pc.IsPaused() {
		t.Error("Expected paused clock")
	}
}

func TestLoopPausedClockYieldsZeroDelta(t *testing.T) {
	base := NewMockTimeProvider(time.Unix(0, 0))
	base.SetStep(10 * time.Millisecond)
	pc := NewPausableClock(base)
	pc.Pause()

	probe := &deltaProbe{}
	if _, err := newProbeLoop(probe, nil, pc, LoopConfig{MaxTicks: 4}).Run(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for i, d := range probe.deltas {
		if d != 0 {
			t.Errorf("Tick %d: expected zero delta while paused, got %v", i, d)
		}
	}
}
