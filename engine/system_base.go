package engine

import "github.com/lixenwraith/ballfall/status"

// SystemBase provides common dependency for all systems
// Embed in system struct to eliminate boilerplate
type SystemBase struct {
	World     *World
	Component ComponentStore
	Status    *status.Registry
}

// NewSystemBase initializes base dependency from world
// Call once in system constructor
func NewSystemBase(w *World) SystemBase {
	return SystemBase{
		World:     w,
		Component: w.Components,
		Status:    w.Status,
	}
}
