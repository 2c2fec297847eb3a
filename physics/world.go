package physics

import (
	"fmt"
	"math"

	"github.com/lixenwraith/ballfall/vmath"
)

const (
	// DefaultIterations is the number of solver passes per step
	DefaultIterations = 4
	// DefaultRestingSpeed is the approach speed below which contacts do not bounce
	DefaultRestingSpeed = 0.5
)

// BodyHandle references a body inside a World by arena slot and generation
// Handles are plain values; the zero handle never resolves
type BodyHandle struct {
	Index      uint32
	Generation uint32
}

// IsZero reports whether h is the zero handle
func (h BodyHandle) IsZero() bool {
	return h.Generation == 0
}

func (h BodyHandle) String() string {
	return fmt.Sprintf("body(%d:%d)", h.Index, h.Generation)
}

type slot struct {
	body       Body
	generation uint32
	live       bool
}

// World owns every rigid body, the gravity vector and the simulation clock
// It is not safe for concurrent use; the scheduler hands it to one writer per tick
type World struct {
	// Iterations is the number of velocity and position solver passes per step
	Iterations int
	// RestingSpeed is the approach speed below which restitution is ignored
	RestingSpeed float64

	gravity vmath.Vec3F
	time    float64

	slots []slot
	free  []uint32
	live  int

	contacts []Contact
}

// NewWorld creates an empty world with the given gravity acceleration
func NewWorld(gravity vmath.Vec3F) *World {
	return &World{
		Iterations:   DefaultIterations,
		RestingSpeed: DefaultRestingSpeed,
		gravity:      gravity,
		slots:        make([]slot, 0, 128),
	}
}

// Gravity returns the global gravity acceleration
func (w *World) Gravity() vmath.Vec3F {
	return w.gravity
}

// SetGravity replaces the global gravity acceleration
func (w *World) SetGravity(g vmath.Vec3F) {
	w.gravity = g
}

// Time returns the accumulated simulation time in seconds
func (w *World) Time() float64 {
	return w.time
}

// BodyCount returns the number of live bodies
func (w *World) BodyCount() int {
	return w.live
}

// AddBody validates desc and registers a new body, returning its handle
func (w *World) AddBody(desc BodyDesc) (BodyHandle, error) {
	if err := desc.Validate(); err != nil {
		return BodyHandle{}, err
	}
	body := newBody(desc)
	w.live++

	// Reuse the most recently freed slot
	if n := len(w.free); n > 0 {
		idx := w.free[n-1]
		w.free = w.free[:n-1]
		s := &w.slots[idx]
		s.body = body
		s.live = true
		return BodyHandle{Index: idx, Generation: s.generation}, nil
	}

	w.slots = append(w.slots, slot{body: body, generation: 1, live: true})
	return BodyHandle{Index: uint32(len(w.slots) - 1), Generation: 1}, nil
}

// RemoveBody releases the body; h and every copy of it stop resolving
func (w *World) RemoveBody(h BodyHandle) error {
	s, err := w.lookup(h)
	if err != nil {
		return err
	}
	s.live = false
	s.generation++
	s.body = Body{}
	w.free = append(w.free, h.Index)
	w.live--
	return nil
}

// Position returns the translation of the referenced body
func (w *World) Position(h BodyHandle) (vmath.Vec3F, error) {
	s, err := w.lookup(h)
	if err != nil {
		return vmath.Vec3F{}, err
	}
	return s.body.Position, nil
}

// Velocity returns the linear velocity of the referenced body
func (w *World) Velocity(h BodyHandle) (vmath.Vec3F, error) {
	s, err := w.lookup(h)
	if err != nil {
		return vmath.Vec3F{}, err
	}
	return s.body.Velocity, nil
}

// Body returns a copy of the referenced body state
func (w *World) Body(h BodyHandle) (Body, error) {
	s, err := w.lookup(h)
	if err != nil {
		return Body{}, err
	}
	return s.body, nil
}

// Contacts returns the contacts resolved by the most recent Step call
func (w *World) Contacts() []Contact {
	out := make([]Contact, len(w.contacts))
	copy(out, w.contacts)
	return out
}

// Step advances the simulation by dt seconds
// Gravity is integrated semi-implicitly (velocity first, then position from the new velocity),
// contacts are detected and resolved, then the clock advances. A zero dt changes nothing.
func (w *World) Step(dt float64) error {
	if !(dt >= 0) || math.IsInf(dt, 1) {
		return fmt.Errorf("%w: %v", ErrNegativeDelta, dt)
	}
	w.contacts = w.contacts[:0]
	if dt == 0 {
		return nil
	}

	w.integrate(dt)
	w.detectContacts()
	w.resolveVelocities()
	w.correctPositions()

	for i := range w.slots {
		s := &w.slots[i]
		if !s.live || s.body.Kind != BodyDynamic {
			continue
		}
		if !vmath.V3FIsFinite(s.body.Position) || !vmath.V3FIsFinite(s.body.Velocity) {
			return fmt.Errorf("%w: %s", ErrNonFinite, w.handleAt(uint32(i)))
		}
	}

	w.time += dt
	return nil
}

func (w *World) integrate(dt float64) {
	dv := vmath.V3FScale(w.gravity, dt)
	for i := range w.slots {
		s := &w.slots[i]
		if !s.live || s.body.Kind != BodyDynamic {
			continue
		}
		s.body.Velocity = vmath.V3FAdd(s.body.Velocity, dv)
		s.body.Position = vmath.V3FAdd(s.body.Position, vmath.V3FScale(s.body.Velocity, dt))
	}
}

func (w *World) lookup(h BodyHandle) (*slot, error) {
	if int(h.Index) >= len(w.slots) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownHandle, h)
	}
	s := &w.slots[h.Index]
	if !s.live || s.generation != h.Generation {
		return nil, fmt.Errorf("%w: %s", ErrUnknownHandle, h)
	}
	return s, nil
}

func (w *World) handleAt(idx uint32) BodyHandle {
	return BodyHandle{Index: idx, Generation: w.slots[idx].generation}
}
