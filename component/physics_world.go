package component

import "github.com/lixenwraith/ballfall/physics"

// PhysicsWorldComponent carries the single physics world on its dedicated entity
type PhysicsWorldComponent struct {
	World *physics.World
}
