package system

import (
	"github.com/lixenwraith/ballfall/engine"
	"github.com/lixenwraith/ballfall/input"
)

// QuitSystem ends the run loop on a close event or the quit key
type QuitSystem struct{}

// NewQuitSystem creates a new quit system
func NewQuitSystem() engine.System {
	return &QuitSystem{}
}

func (s *QuitSystem) Name() string {
	return "quit"
}

func (s *QuitSystem) Access() engine.Access {
	return engine.Access{}
}

func (s *QuitSystem) Run(ctx *engine.Context) (engine.Outcome, error) {
	if input.QuitRequested(ctx.Events) {
		return engine.Quit, nil
	}
	return engine.Continue, nil
}
