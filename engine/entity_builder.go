package engine

import "github.com/lixenwraith/ballfall/core"

// EntityBuilder provides a fluent, type-safe interface for constructing entities with components.
// It reserves an entity ID upfront; components are attached through With before Build().
//
// Example usage:
//
//	entity := With(
//	    With(world.NewEntity(), world.Components.LocalTransform, transform),
//	    world.Components.RigidBody, body,
//	).Build()
type EntityBuilder struct {
	world  *World
	entity core.Entity
	built  bool
}

// NewEntity creates a new EntityBuilder with a reserved entity ID.
func (w *World) NewEntity() *EntityBuilder {
	return &EntityBuilder{
		world:  w,
		entity: w.CreateEntity(),
	}
}

// With attaches a component of type T to the entity being built.
// Panics if called after Build().
func With[T any](eb *EntityBuilder, store *Store[T], component T) *EntityBuilder {
	if eb.built {
		panic("entity already built - cannot add components after Build()")
	}
	store.Set(eb.entity, component)
	return eb
}

// Build finalizes entity construction and returns the entity ID.
func (eb *EntityBuilder) Build() core.Entity {
	eb.built = true
	return eb.entity
}
