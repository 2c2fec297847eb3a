package system

import (
	"sync/atomic"

	"github.com/lixenwraith/ballfall/component"
	"github.com/lixenwraith/ballfall/engine"
	"github.com/lixenwraith/ballfall/status"
)

// PhysicsStepSystem advances the singleton physics world by the tick delta
// It is the only system that mutates the world
type PhysicsStepSystem struct {
	engine.SystemBase

	statTime     *status.AtomicFloat
	statBodies   *atomic.Int64
	statContacts *atomic.Int64
}

// NewPhysicsStepSystem creates a new physics step system
func NewPhysicsStepSystem(world *engine.World) engine.System {
	base := engine.NewSystemBase(world)
	return &PhysicsStepSystem{
		SystemBase:   base,
		statTime:     base.Status.Floats.Get(status.KeySimTime),
		statBodies:   base.Status.Ints.Get(status.KeyBodies),
		statContacts: base.Status.Ints.Get(status.KeyContacts),
	}
}

func (s *PhysicsStepSystem) Name() string {
	return "physics-step"
}

func (s *PhysicsStepSystem) Access() engine.Access {
	return engine.Access{
		Writes: []engine.Kind{engine.KindOf[component.PhysicsWorldComponent]()},
	}
}

// Run steps the world and publishes its clock, body count and contact count
// A zero delta leaves every body untouched
func (s *PhysicsStepSystem) Run(ctx *engine.Context) (engine.Outcome, error) {
	_, res, err := engine.Singleton(s.Component.PhysicsWorld)
	if err != nil {
		return engine.Continue, err
	}
	if err := res.World.Step(ctx.DeltaSeconds()); err != nil {
		return engine.Continue, err
	}

	s.statTime.Set(res.World.Time())
	s.statBodies.Store(int64(res.World.BodyCount()))
	s.statContacts.Store(int64(len(res.World.Contacts())))
	return engine.Continue, nil
}
