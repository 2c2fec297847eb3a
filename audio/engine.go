package audio

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/ballfall/parameter"
)

// Engine plays impact sounds through a single mixer on the system speaker
type Engine struct {
	mu      sync.Mutex
	sr      beep.SampleRate
	mixer   *beep.Mixer
	started bool
	muted   bool

	minGap   time.Duration
	lastPlay time.Time
	played   int
}

// NewEngine creates a stopped engine
func NewEngine() *Engine {
	return &Engine{
		sr:     beep.SampleRate(parameter.AudioSampleRate),
		mixer:  &beep.Mixer{},
		minGap: parameter.ImpactMinGap,
	}
}

// Start opens the speaker and starts the mixer
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.started {
		return nil
	}
	if err := speaker.Init(e.sr, e.sr.N(parameter.AudioBufferDuration)); err != nil {
		return fmt.Errorf("audio: speaker init: %w", err)
	}
	speaker.Play(e.mixer)
	e.started = true
	log.Printf("audio: started at %d Hz", int(e.sr))
	return nil
}

// Stop silences the mixer and closes the speaker
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.started {
		return
	}
	speaker.Lock()
	e.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	e.started = false
	log.Printf("audio: stopped after %d impacts", e.played)
}

// SetMuted drops every later impact while muted; the speaker stays open
func (e *Engine) SetMuted(muted bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.muted = muted
}

// ToggleMuted flips the mute state and reports whether the engine is now muted
func (e *Engine) ToggleMuted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.muted = !e.muted
	return e.muted
}

// IsMuted returns the current mute state
func (e *Engine) IsMuted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.muted
}

// PlayImpact mixes in one impact sound of strength in [0,1]
// Returns false when stopped, muted or within the minimum gap of the previous sound
func (e *Engine) PlayImpact(strength float64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.started || e.muted {
		return false
	}
	now := time.Now()
	if !e.lastPlay.IsZero() && now.Sub(e.lastPlay) < e.minGap {
		return false
	}
	e.lastPlay = now
	e.played++

	sound := ImpactSound(e.sr, strength)
	speaker.Lock()
	e.mixer.Add(sound)
	speaker.Unlock()
	return true
}

// Played returns the number of impacts mixed in so far
func (e *Engine) Played() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.played
}
