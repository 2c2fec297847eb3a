package engine

import (
	"github.com/lixenwraith/ballfall/component"
)

// ComponentStore provides cached pointers to typed component stores
// Initialized once per world; pointers remain valid for the world lifetime
type ComponentStore struct {
	// Simulation
	PhysicsWorld *Store[component.PhysicsWorldComponent]
	RigidBody    *Store[component.RigidBodyComponent]

	// Scene
	LocalTransform *Store[component.LocalTransformComponent]
	Renderable     *Store[component.RenderableComponent]
}

// GetComponentStore populates ComponentStore from world
func GetComponentStore(w *World) ComponentStore {
	return ComponentStore{
		PhysicsWorld: GetStore[component.PhysicsWorldComponent](w),
		RigidBody:    GetStore[component.RigidBodyComponent](w),

		LocalTransform: GetStore[component.LocalTransformComponent](w),
		Renderable:     GetStore[component.RenderableComponent](w),
	}
}
