package parameter

// System Execution Priorities (lower runs first)
const (
	PriorityQuit    = 0
	PriorityPause   = 10  // Before physics, a toggle takes effect on the next measured delta
	PriorityMute    = 20  // Before audio, a toggle applies to this tick's impacts
	PriorityPhysics = 100 // Steps the physics world
	PrioritySync    = 200 // After physics, copies body positions into transforms
	PriorityAudio   = 300 // After physics, reads contacts of the last step
	PriorityRender  = 400 // After sync, reads transforms
)
