package system

import (
	"cmp"
	"slices"
	"sync/atomic"

	"github.com/lixenwraith/ballfall/component"
	"github.com/lixenwraith/ballfall/engine"
	"github.com/lixenwraith/ballfall/parameter"
	"github.com/lixenwraith/ballfall/physics"
	"github.com/lixenwraith/ballfall/status"
)

// ImpactPlayer plays one impact sound; strength is in [0,1]
// Returns false when the sound was dropped
type ImpactPlayer interface {
	PlayImpact(strength float64) bool
}

// ImpactAudioSystem turns the hardest contacts of the last step into impact sounds
type ImpactAudioSystem struct {
	engine.SystemBase
	player ImpactPlayer

	// MinSpeed silences softer contacts, FullSpeed maps to full strength
	MinSpeed   float64
	FullSpeed  float64
	MaxPerTick int

	impacts []physics.Contact

	statPlayed  *atomic.Int64
	statDropped *atomic.Int64
}

// NewImpactAudioSystem creates a new impact audio system playing through player
func NewImpactAudioSystem(world *engine.World, player ImpactPlayer) *ImpactAudioSystem {
	base := engine.NewSystemBase(world)
	return &ImpactAudioSystem{
		SystemBase:  base,
		player:      player,
		MinSpeed:    parameter.ImpactMinSpeed,
		FullSpeed:   parameter.ImpactFullSpeed,
		MaxPerTick:  parameter.ImpactMaxPerTick,
		impacts:     make([]physics.Contact, 0, 16),
		statPlayed:  base.Status.Ints.Get(status.KeyImpactsPlayed),
		statDropped: base.Status.Ints.Get(status.KeyImpactsDropped),
	}
}

func (s *ImpactAudioSystem) Name() string {
	return "impact-audio"
}

func (s *ImpactAudioSystem) Access() engine.Access {
	return engine.Access{
		Reads: []engine.Kind{engine.KindOf[component.PhysicsWorldComponent]()},
	}
}

// Run plays the strongest impacts above MinSpeed, at most MaxPerTick
// Impacts above MinSpeed that were not played count as dropped
func (s *ImpactAudioSystem) Run(ctx *engine.Context) (engine.Outcome, error) {
	_, res, err := engine.Singleton(s.Component.PhysicsWorld)
	if err != nil {
		return engine.Continue, err
	}

	s.impacts = s.impacts[:0]
	for _, c := range res.World.Contacts() {
		if c.ImpactSpeed >= s.MinSpeed {
			s.impacts = append(s.impacts, c)
		}
	}
	if len(s.impacts) == 0 {
		return engine.Continue, nil
	}

	slices.SortStableFunc(s.impacts, func(a, b physics.Contact) int {
		return cmp.Compare(b.ImpactSpeed, a.ImpactSpeed)
	})

	played := 0
	for _, c := range s.impacts {
		if played >= s.MaxPerTick {
			break
		}
		if s.player.PlayImpact(s.Strength(c.ImpactSpeed)) {
			played++
		}
	}
	s.statPlayed.Add(int64(played))
	s.statDropped.Add(int64(len(s.impacts) - played))
	return engine.Continue, nil
}

// Strength maps an approach speed to [0,1]
func (s *ImpactAudioSystem) Strength(speed float64) float64 {
	if s.FullSpeed <= s.MinSpeed {
		return 1
	}
	v := (speed - s.MinSpeed) / (s.FullSpeed - s.MinSpeed)
	return min(max(v, 0), 1)
}
