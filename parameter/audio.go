package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines latency of the speaker
	AudioBufferDuration = 100 * time.Millisecond
)

// Impact Sound
const (
	// ImpactDuration is the length of one impact sound
	ImpactDuration = 60 * time.Millisecond

	// ImpactFrequency is the base pitch of an impact, raised slightly by strength
	ImpactFrequency = 180.0

	// ImpactDecay is the exponential decay rate per second
	ImpactDecay = 60.0

	// ImpactNoiseMix is the share of the noise transient at onset
	ImpactNoiseMix = 0.35

	// ImpactMinSpeed is the approach speed below which contacts are silent
	ImpactMinSpeed = 2.0

	// ImpactFullSpeed is the approach speed mapped to full volume
	ImpactFullSpeed = 20.0

	// ImpactMaxPerTick caps the sounds started in one tick
	ImpactMaxPerTick = 4

	// ImpactMinGap between sounds started by the same tick source
	ImpactMinGap = 30 * time.Millisecond
)
