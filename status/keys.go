package status

// Metric keys published by the pipeline
const (
	// Loop
	KeyTicks = "loop.ticks" // int, completed ticks

	// Physics, refreshed after every step
	KeySimTime  = "physics.time"     // float, simulated seconds
	KeyBodies   = "physics.bodies"   // int, live bodies
	KeyContacts = "physics.contacts" // int, contacts resolved by the last step

	// Audio
	KeyImpactsPlayed  = "audio.impacts_played"  // int, cumulative
	KeyImpactsDropped = "audio.impacts_dropped" // int, cumulative, above threshold but not played
	KeyMuted          = "audio.muted"           // bool

	// Clock
	KeyPaused = "clock.paused" // bool
)
