package component

import "github.com/lixenwraith/ballfall/physics"

// RigidBodyComponent links an entity to its body in the physics world
// The handle is a lookup key only; body state lives in the world
type RigidBodyComponent struct {
	Handle physics.BodyHandle
}
