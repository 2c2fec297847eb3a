package parameter

import "time"

// Run Loop Timing
const (
	// FrameUpdateInterval is the interactive tick interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// HeadlessDelta is the fixed tick delta used when running without a terminal
	HeadlessDelta = time.Second / 60

	// MaxFrameDelta clamps wall-clock deltas after stalls (suspend, debugger)
	MaxFrameDelta = 100 * time.Millisecond

	// HeadlessTicks is the default tick count of a headless run (10 simulated seconds)
	HeadlessTicks = 600
)
