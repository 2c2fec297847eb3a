package system

import (
	"log"
	"sync/atomic"

	"github.com/lixenwraith/ballfall/engine"
	"github.com/lixenwraith/ballfall/input"
	"github.com/lixenwraith/ballfall/status"
)

// Pauser is a clock that can be frozen between ticks
type Pauser interface {
	Toggle() bool
}

// PauseSystem toggles the loop clock on the pause key and publishes the pause state
// A paused clock yields zero deltas, which leave the physics world untouched
type PauseSystem struct {
	clock      Pauser
	statPaused *atomic.Bool
}

// NewPauseSystem creates a new pause system driving clock
func NewPauseSystem(world *engine.World, clock Pauser) engine.System {
	return &PauseSystem{
		clock:      clock,
		statPaused: world.Status.Bools.Get(status.KeyPaused),
	}
}

func (s *PauseSystem) Name() string {
	return "pause"
}

func (s *PauseSystem) Access() engine.Access {
	return engine.Access{}
}

func (s *PauseSystem) Run(ctx *engine.Context) (engine.Outcome, error) {
	for range input.PauseToggles(ctx.Events) {
		paused := s.clock.Toggle()
		s.statPaused.Store(paused)
		log.Printf("pause: paused=%v at frame %d", paused, ctx.Frame)
	}
	return engine.Continue, nil
}
