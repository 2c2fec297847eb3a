package system

import (
	"fmt"

	"github.com/lixenwraith/ballfall/component"
	"github.com/lixenwraith/ballfall/engine"
)

// TransformSyncSystem copies body positions into local transforms
// The copy is a direct snapshot, without interpolation
type TransformSyncSystem struct {
	engine.SystemBase
}

// NewTransformSyncSystem creates a new transform sync system
func NewTransformSyncSystem(world *engine.World) engine.System {
	return &TransformSyncSystem{
		SystemBase: engine.NewSystemBase(world),
	}
}

func (s *TransformSyncSystem) Name() string {
	return "transform-sync"
}

func (s *TransformSyncSystem) Access() engine.Access {
	return engine.Access{
		Reads: []engine.Kind{
			engine.KindOf[component.PhysicsWorldComponent](),
			engine.KindOf[component.RigidBodyComponent](),
		},
		Writes: []engine.Kind{engine.KindOf[component.LocalTransformComponent]()},
	}
}

// Run overwrites the translation of every entity carrying a rigid body and a transform
func (s *TransformSyncSystem) Run(ctx *engine.Context) (engine.Outcome, error) {
	_, res, err := engine.Singleton(s.Component.PhysicsWorld)
	if err != nil {
		return engine.Continue, err
	}

	synced := 0
	for e, row := range engine.Join2(s.Component.RigidBody, s.Component.LocalTransform) {
		pos, err := res.World.Position(row.A.Handle)
		if err != nil {
			return engine.Continue, fmt.Errorf("entity %d: %w", e, err)
		}
		row.B.Translation = pos
		synced++
	}

	// Every rigid body entity must also carry a transform
	if bodies := s.Component.RigidBody.Count(); synced != bodies {
		return engine.Continue, fmt.Errorf("%w: %d rigid bodies, %d with transforms", engine.ErrInvariant, bodies, synced)
	}
	return engine.Continue, nil
}
