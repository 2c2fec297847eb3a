package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/lixenwraith/ballfall/vmath"
)

var earthGravity = vmath.Vec3F{Z: -9.81}

const frameDt = 1.0 / 60.0

// newBoxWorld builds the open box used by the demo scene, without dynamic bodies
func newBoxWorld(t *testing.T) *World {
	t.Helper()
	w := NewWorld(earthGravity)
	planes := []struct{ normal, offset vmath.Vec3F }{
		{vmath.Vec3F{X: 1}, vmath.Vec3F{X: -15}},
		{vmath.Vec3F{X: -1}, vmath.Vec3F{X: 15}},
		{vmath.Vec3F{Y: 1}, vmath.Vec3F{Y: -15}},
		{vmath.Vec3F{Y: -1}, vmath.Vec3F{Y: 15}},
		{vmath.Vec3F{Z: 1}, vmath.Vec3F{Z: -15}},
	}
	for _, p := range planes {
		if _, err := w.AddBody(NewStatic(Plane(p.normal), 0.3, 0.6).Translated(p.offset)); err != nil {
			t.Fatalf("AddBody plane: %v", err)
		}
	}
	return w
}

func mustAdd(t *testing.T, w *World, d BodyDesc) BodyHandle {
	t.Helper()
	h, err := w.AddBody(d)
	if err != nil {
		t.Fatalf("AddBody: %v", err)
	}
	return h
}

func mustStep(t *testing.T, w *World, dt float64) {
	t.Helper()
	if err := w.Step(dt); err != nil {
		t.Fatalf("Step(%v): %v", dt, err)
	}
}

func TestStepZeroIsNoOp(t *testing.T) {
	w := newBoxWorld(t)
	handles := []BodyHandle{
		mustAdd(t, w, NewDynamic(Ball(1), 1, 0.3, 0.6).Translated(vmath.Vec3F{Z: 3})),
		mustAdd(t, w, NewDynamic(Ball(1), 1, 0.3, 0.6).Translated(vmath.Vec3F{X: 0.5, Z: 4})),
		// Overlapping the floor: a zero step must not resolve it
		mustAdd(t, w, NewDynamic(Ball(1), 2, 0.3, 0.6).Translated(vmath.Vec3F{X: 5, Z: -14.5})),
	}
	for i := 0; i < 10; i++ {
		mustStep(t, w, frameDt)
	}

	before := make([]Body, len(handles))
	for i, h := range handles {
		b, err := w.Body(h)
		if err != nil {
			t.Fatal(err)
		}
		before[i] = b
	}
	clock := w.Time()

	mustStep(t, w, 0)

	for i, h := range handles {
		after, _ := w.Body(h)
		if after.Position != before[i].Position || after.Velocity != before[i].Velocity {
			t.Errorf("Body %d changed on zero step: %+v -> %+v", i, before[i], after)
		}
	}
	if w.Time() != clock {
		t.Errorf("Expected clock %v, got %v", clock, w.Time())
	}
	if len(w.Contacts()) != 0 {
		t.Errorf("Expected no contacts after zero step, got %d", len(w.Contacts()))
	}
}

func TestStepRejectsInvalidDelta(t *testing.T) {
	w := NewWorld(earthGravity)
	h := mustAdd(t, w, NewDynamic(Ball(1), 1, 0, 0))

	for _, dt := range []float64{-frameDt, math.NaN(), math.Inf(1)} {
		if err := w.Step(dt); !errors.Is(err, ErrNegativeDelta) {
			t.Errorf("Step(%v) error = %v, want ErrNegativeDelta", dt, err)
		}
	}
	if pos, _ := w.Position(h); pos != (vmath.Vec3F{}) {
		t.Errorf("Body moved after rejected steps: %+v", pos)
	}
	if w.Time() != 0 {
		t.Errorf("Clock advanced after rejected steps: %v", w.Time())
	}
}

func TestGravityIntegrationIsSemiImplicit(t *testing.T) {
	w := NewWorld(earthGravity)
	start := vmath.Vec3F{X: 1, Y: 2, Z: 10}
	vel := vmath.Vec3F{X: 1, Z: 2}
	d := NewDynamic(Ball(1), 1, 0.3, 0.6).Translated(start)
	d.Velocity = vel
	h := mustAdd(t, w, d)

	mustStep(t, w, frameDt)

	gotVel, _ := w.Velocity(h)
	wantVZ := vel.Z + earthGravity.Z*frameDt
	if gotVel.Z != wantVZ {
		t.Errorf("Vertical velocity = %v, want %v", gotVel.Z, wantVZ)
	}
	if gotVel.X != vel.X || gotVel.Y != vel.Y {
		t.Errorf("Horizontal velocity changed: %+v", gotVel)
	}

	gotPos, _ := w.Position(h)
	if want := start.Z + wantVZ*frameDt; gotPos.Z != want {
		t.Errorf("Z = %v, want %v (post-step velocity)", gotPos.Z, want)
	}
	if want := start.X + vel.X*frameDt; gotPos.X != want {
		t.Errorf("X = %v, want %v", gotPos.X, want)
	}
	if math.Abs(w.Time()-frameDt) > 1e-15 {
		t.Errorf("Clock = %v, want %v", w.Time(), frameDt)
	}
}

func TestSetGravityAppliesOnNextStep(t *testing.T) {
	w := NewWorld(earthGravity)
	h := mustAdd(t, w, NewDynamic(Ball(1), 1, 0.3, 0.6).Translated(vmath.Vec3F{Z: 10}))

	mustStep(t, w, frameDt)
	before, _ := w.Velocity(h)

	sideways := vmath.Vec3F{X: 2}
	w.SetGravity(sideways)
	if got := w.Gravity(); got != sideways {
		t.Fatalf("Gravity() = %+v, want %+v", got, sideways)
	}

	mustStep(t, w, frameDt)
	after, _ := w.Velocity(h)
	if after.Z != before.Z {
		t.Errorf("Vertical velocity changed after gravity swap: %v -> %v", before.Z, after.Z)
	}
	if want := sideways.X * frameDt; after.X != want {
		t.Errorf("Horizontal velocity = %v, want %v", after.X, want)
	}

	// Zero gravity leaves velocity unchanged
	w.SetGravity(vmath.Vec3F{})
	mustStep(t, w, frameDt)
	if v, _ := w.Velocity(h); v != after {
		t.Errorf("Velocity changed without gravity: %+v -> %+v", after, v)
	}
}

func TestStaticBodiesNeverMove(t *testing.T) {
	w := newBoxWorld(t)
	obstacle := mustAdd(t, w, NewStatic(Ball(1), 0.3, 0.6).Translated(vmath.Vec3F{X: 0.1, Z: -5}))
	for i := 0; i < 5; i++ {
		mustAdd(t, w, NewDynamic(Ball(1), 1, 0.3, 0.6).Translated(vmath.Vec3F{X: float64(i) * 0.2, Z: float64(i) * 2.5}))
	}

	statics := []BodyHandle{obstacle}
	for i := uint32(0); i < 5; i++ {
		statics = append(statics, BodyHandle{Index: i, Generation: 1})
	}
	before := make([]vmath.Vec3F, len(statics))
	for i, h := range statics {
		before[i], _ = w.Position(h)
	}

	sawContact := false
	for i := 0; i < 600; i++ {
		mustStep(t, w, frameDt)
		if len(w.Contacts()) > 0 {
			sawContact = true
		}
		for k, h := range statics {
			pos, err := w.Position(h)
			if err != nil {
				t.Fatal(err)
			}
			if pos != before[k] {
				t.Fatalf("Static body %s moved at step %d: %+v -> %+v", h, i, before[k], pos)
			}
		}
	}
	if !sawContact {
		t.Error("Expected balls to hit the obstacle or floor")
	}
}

func TestNoContactWithoutOverlap(t *testing.T) {
	w := NewWorld(vmath.Vec3F{})
	a := NewDynamic(Ball(1), 1, 0.3, 0.6)
	a.Velocity = vmath.Vec3F{X: 0.1}
	b := NewDynamic(Ball(1), 1, 0.3, 0.6).Translated(vmath.Vec3F{X: 2.5})
	b.Velocity = vmath.Vec3F{X: -0.1}
	ha := mustAdd(t, w, a)
	hb := mustAdd(t, w, b)

	mustStep(t, w, frameDt)

	if n := len(w.Contacts()); n != 0 {
		t.Fatalf("Expected no contact, got %d", n)
	}
	va, _ := w.Velocity(ha)
	vb, _ := w.Velocity(hb)
	if va.X != 0.1 || vb.X != -0.1 {
		t.Errorf("Velocities changed without contact: %+v %+v", va, vb)
	}
}

func TestBallCollisionConservesMomentum(t *testing.T) {
	w := NewWorld(vmath.Vec3F{})
	a := NewDynamic(Ball(1), 1, 1, 0)
	a.Velocity = vmath.Vec3F{X: 3}
	b := NewDynamic(Ball(1), 1, 1, 0).Translated(vmath.Vec3F{X: 2.02})
	b.Velocity = vmath.Vec3F{X: -3}
	ha := mustAdd(t, w, a)
	hb := mustAdd(t, w, b)

	mustStep(t, w, frameDt)

	contacts := w.Contacts()
	if len(contacts) != 1 {
		t.Fatalf("Expected 1 contact, got %d", len(contacts))
	}
	if contacts[0].A != ha || contacts[0].B != hb {
		t.Errorf("Unexpected contact pair %s/%s", contacts[0].A, contacts[0].B)
	}
	if math.Abs(contacts[0].ImpactSpeed-6) > 1e-9 {
		t.Errorf("ImpactSpeed = %v, want 6", contacts[0].ImpactSpeed)
	}

	va, _ := w.Velocity(ha)
	vb, _ := w.Velocity(hb)
	if math.Abs(va.X+vb.X) > 1e-12 {
		t.Errorf("Momentum not conserved: %v + %v", va.X, vb.X)
	}
	if va.X >= 0 || vb.X <= 0 {
		t.Errorf("Expected balls to separate, got %v and %v", va.X, vb.X)
	}

	pa, _ := w.Position(ha)
	pb, _ := w.Position(hb)
	if pb.X-pa.X < 2-1e-9 {
		t.Errorf("Balls still overlap: distance %v", pb.X-pa.X)
	}
}

func TestRestitutionBounce(t *testing.T) {
	tests := []struct {
		name        string
		restitution float64
		wantUp      bool
	}{
		{"elastic", 1, true},
		{"inelastic", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWorld(vmath.Vec3F{})
			mustAdd(t, w, NewStatic(Plane(vmath.Vec3F{Z: 1}), tt.restitution, 0))
			d := NewDynamic(Ball(1), 1, tt.restitution, 0).Translated(vmath.Vec3F{Z: 1.05})
			d.Velocity = vmath.Vec3F{Z: -5}
			h := mustAdd(t, w, d)

			mustStep(t, w, frameDt)

			vel, _ := w.Velocity(h)
			if tt.wantUp && math.Abs(vel.Z-5) > 1e-9 {
				t.Errorf("Expected rebound at 5, got %v", vel.Z)
			}
			if !tt.wantUp && vel.Z != 0 {
				t.Errorf("Expected no rebound, got %v", vel.Z)
			}
		})
	}
}

func TestFrictionSlowsSliding(t *testing.T) {
	slide := func(friction float64) float64 {
		w := NewWorld(earthGravity)
		mustAdd(t, w, NewStatic(Plane(vmath.Vec3F{Z: 1}), 0, friction))
		d := NewDynamic(Ball(1), 1, 0, friction).Translated(vmath.Vec3F{Z: 1})
		d.Velocity = vmath.Vec3F{X: 4}
		h := mustAdd(t, w, d)
		for i := 0; i < 30; i++ {
			mustStep(t, w, frameDt)
		}
		vel, _ := w.Velocity(h)
		return vel.X
	}

	frictionless := slide(0)
	rough := slide(0.6)
	if frictionless != 4 {
		t.Errorf("Frictionless slide changed speed: %v", frictionless)
	}
	if rough >= frictionless {
		t.Errorf("Expected friction to slow the ball: %v >= %v", rough, frictionless)
	}
	if rough < 0 {
		t.Errorf("Friction reversed the motion: %v", rough)
	}
}

func TestFallOntoFloor(t *testing.T) {
	w := NewWorld(earthGravity)
	mustAdd(t, w, NewStatic(Plane(vmath.Vec3F{Z: 1}), 0.3, 0.6).Translated(vmath.Vec3F{Z: -15}))
	h := mustAdd(t, w, NewDynamic(Ball(1), 1, 0.3, 0.6).Translated(vmath.Vec3F{Z: 50}))

	prev, _ := w.Position(h)
	contactAt := -1
	for i := 0; i < 1000 && contactAt < 0; i++ {
		mustStep(t, w, frameDt)
		pos, _ := w.Position(h)
		if len(w.Contacts()) > 0 {
			contactAt = i
		} else if pos.Z >= prev.Z {
			t.Fatalf("Z not decreasing before contact at step %d: %v -> %v", i, prev.Z, pos.Z)
		}
		prev = pos
	}
	if contactAt < 0 {
		t.Fatal("Ball never reached the floor")
	}

	for i := 0; i < 300; i++ {
		pos, _ := w.Position(h)
		if pos.Z-1 < -15-1e-9 {
			t.Fatalf("Ball penetrates floor at step %d: z=%v", contactAt+i, pos.Z)
		}
		mustStep(t, w, frameDt)
	}

	// Settled on the floor
	pos, _ := w.Position(h)
	if math.Abs(pos.Z-(-14)) > 0.05 {
		t.Errorf("Expected ball resting near z=-14, got %v", pos.Z)
	}
}

func TestStepIsDeterministic(t *testing.T) {
	build := func() (*World, []BodyHandle) {
		w := newBoxWorld(t)
		mustAdd(t, w, NewStatic(Ball(1), 0.3, 0.6).Translated(vmath.Vec3F{X: 0.1, Z: -5}))
		var hs []BodyHandle
		for i := 0; i < 20; i++ {
			jitter := float64(i%7) * 0.13
			hs = append(hs, mustAdd(t, w, NewDynamic(Ball(1), 1, 0.3, 0.6).
				Translated(vmath.Vec3F{X: jitter, Y: 0.5 - jitter, Z: float64(i) * 5})))
		}
		return w, hs
	}

	w1, h1 := build()
	w2, h2 := build()
	for i := 0; i < 400; i++ {
		mustStep(t, w1, frameDt)
		mustStep(t, w2, frameDt)
	}
	for i := range h1 {
		b1, _ := w1.Body(h1[i])
		b2, _ := w2.Body(h2[i])
		if b1.Position != b2.Position || b1.Velocity != b2.Velocity {
			t.Fatalf("Body %d diverged: %+v vs %+v", i, b1, b2)
		}
	}
}

func TestBodiesStayInsideBox(t *testing.T) {
	w := newBoxWorld(t)
	var hs []BodyHandle
	for i := 0; i < 30; i++ {
		hs = append(hs, mustAdd(t, w, NewDynamic(Ball(1), 1, 0.3, 0.6).
			Translated(vmath.Vec3F{X: float64(i%5) * 0.3, Y: float64(i%3) * 0.3, Z: float64(i) * 2.5})))
	}
	for i := 0; i < 900; i++ {
		mustStep(t, w, frameDt)
	}
	for _, h := range hs {
		pos, _ := w.Position(h)
		if pos.Z < -14-0.01 || math.Abs(pos.X) > 14+0.01 || math.Abs(pos.Y) > 14+0.01 {
			t.Errorf("Body %s escaped the box: %+v", h, pos)
		}
	}
}

func TestHandleLifecycle(t *testing.T) {
	w := NewWorld(earthGravity)

	if _, err := w.Position(BodyHandle{}); !errors.Is(err, ErrUnknownHandle) {
		t.Errorf("Zero handle error = %v, want ErrUnknownHandle", err)
	}
	if _, err := w.Position(BodyHandle{Index: 42, Generation: 1}); !errors.Is(err, ErrUnknownHandle) {
		t.Errorf("Out of range handle error = %v, want ErrUnknownHandle", err)
	}

	h1 := mustAdd(t, w, NewDynamic(Ball(1), 1, 0, 0).Translated(vmath.Vec3F{Z: 1}))
	h2 := mustAdd(t, w, NewDynamic(Ball(1), 1, 0, 0).Translated(vmath.Vec3F{Z: 9}))
	if h1 == h2 || h1.IsZero() || h2.IsZero() {
		t.Fatalf("Expected distinct non-zero handles, got %s and %s", h1, h2)
	}

	if err := w.RemoveBody(h1); err != nil {
		t.Fatalf("RemoveBody: %v", err)
	}
	if w.BodyCount() != 1 {
		t.Errorf("BodyCount = %d, want 1", w.BodyCount())
	}
	if _, err := w.Position(h1); !errors.Is(err, ErrUnknownHandle) {
		t.Errorf("Removed handle error = %v, want ErrUnknownHandle", err)
	}
	if err := w.RemoveBody(h1); !errors.Is(err, ErrUnknownHandle) {
		t.Errorf("Double remove error = %v, want ErrUnknownHandle", err)
	}

	h3 := mustAdd(t, w, NewDynamic(Ball(1), 1, 0, 0).Translated(vmath.Vec3F{Z: 20}))
	if h3.Index != h1.Index || h3.Generation == h1.Generation {
		t.Errorf("Expected slot reuse with new generation, got %s after %s", h3, h1)
	}
	if _, err := w.Position(h1); !errors.Is(err, ErrUnknownHandle) {
		t.Errorf("Stale handle resolved after slot reuse: %v", err)
	}
	if pos, _ := w.Position(h2); pos.Z != 9 {
		t.Errorf("Unrelated handle changed: %+v", pos)
	}
}

func TestAddBodyValidation(t *testing.T) {
	tests := []struct {
		name string
		desc BodyDesc
	}{
		{"zero radius", NewDynamic(Ball(0), 1, 0.3, 0.6)},
		{"negative radius", NewStatic(Ball(-1), 0.3, 0.6)},
		{"nan radius", NewDynamic(Ball(math.NaN()), 1, 0.3, 0.6)},
		{"zero normal", NewStatic(Plane(vmath.Vec3F{}), 0.3, 0.6)},
		{"dynamic plane", NewDynamic(Plane(vmath.Vec3F{Z: 1}), 1, 0.3, 0.6)},
		{"zero mass", NewDynamic(Ball(1), 0, 0.3, 0.6)},
		{"infinite mass", NewDynamic(Ball(1), math.Inf(1), 0.3, 0.6)},
		{"restitution above one", NewDynamic(Ball(1), 1, 1.5, 0.6)},
		{"negative friction", NewDynamic(Ball(1), 1, 0.3, -0.1)},
		{"nan translation", NewDynamic(Ball(1), 1, 0.3, 0.6).Translated(vmath.Vec3F{X: math.NaN()})},
		{"unknown shape", BodyDesc{Shape: Shape{Kind: 9, Radius: 1}, Kind: BodyStatic}},
	}

	w := NewWorld(earthGravity)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := w.AddBody(tt.desc); !errors.Is(err, ErrInvalidBody) {
				t.Errorf("AddBody error = %v, want ErrInvalidBody", err)
			}
		})
	}
	if w.BodyCount() != 0 {
		t.Errorf("Invalid bodies were registered: %d", w.BodyCount())
	}
}

func TestPlaneNormalIsNormalized(t *testing.T) {
	w := NewWorld(earthGravity)
	h := mustAdd(t, w, NewStatic(Plane(vmath.Vec3F{Z: 2}), 0.3, 0.6))
	b, err := w.Body(h)
	if err != nil {
		t.Fatal(err)
	}
	if b.Shape.Normal != (vmath.Vec3F{Z: 1}) {
		t.Errorf("Normal = %+v, want unit Z", b.Shape.Normal)
	}
	if !b.IsStatic() || b.InvMass() != 0 || !math.IsInf(b.Mass, 1) {
		t.Errorf("Static body mass not infinite: %+v", b)
	}
}

func TestStepReportsNonFiniteState(t *testing.T) {
	w := NewWorld(vmath.Vec3F{})
	d := NewDynamic(Ball(1), 1, 0, 0).Translated(vmath.Vec3F{X: math.MaxFloat64})
	d.Velocity = vmath.Vec3F{X: math.MaxFloat64}
	mustAdd(t, w, d)

	if err := w.Step(1); !errors.Is(err, ErrNonFinite) {
		t.Errorf("Step error = %v, want ErrNonFinite", err)
	}
}
