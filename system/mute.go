package system

import (
	"log"
	"sync/atomic"

	"github.com/lixenwraith/ballfall/engine"
	"github.com/lixenwraith/ballfall/input"
	"github.com/lixenwraith/ballfall/status"
)

// Muter silences impact sounds without closing the output
type Muter interface {
	IsMuted() bool
	ToggleMuted() bool
}

// MuteSystem toggles impact sounds on the mute key and publishes the mute state
type MuteSystem struct {
	audio     Muter
	statMuted *atomic.Bool
}

// NewMuteSystem creates a new mute system and publishes the initial state of audio
func NewMuteSystem(world *engine.World, audio Muter) engine.System {
	s := &MuteSystem{
		audio:     audio,
		statMuted: world.Status.Bools.Get(status.KeyMuted),
	}
	s.statMuted.Store(audio.IsMuted())
	return s
}

func (s *MuteSystem) Name() string {
	return "mute"
}

func (s *MuteSystem) Access() engine.Access {
	return engine.Access{}
}

func (s *MuteSystem) Run(ctx *engine.Context) (engine.Outcome, error) {
	for range input.MuteToggles(ctx.Events) {
		muted := s.audio.ToggleMuted()
		s.statMuted.Store(muted)
		log.Printf("mute: muted=%v at frame %d", muted, ctx.Frame)
	}
	return engine.Continue, nil
}
