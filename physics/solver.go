package physics

import (
	"math"

	"github.com/lixenwraith/ballfall/vmath"
)

const frictionEpsilon = 1e-12

// resolveVelocities runs sequential impulse passes over the contact list
func (w *World) resolveVelocities() {
	for iter := 0; iter < w.Iterations; iter++ {
		for k := range w.contacts {
			w.applyImpulse(&w.contacts[k])
		}
	}
}

// applyImpulse removes the approach velocity of one contact
// Normal impulse uses the mean restitution, zeroed below RestingSpeed; friction impulse
// is clamped by the Coulomb cone using the geometric mean of friction coefficients
func (w *World) applyImpulse(c *Contact) {
	a := &w.slots[c.a].body
	b := &w.slots[c.b].body

	invSum := a.invMass + b.invMass
	if invSum == 0 {
		return
	}

	rel := vmath.V3FSub(b.Velocity, a.Velocity)
	vn := vmath.V3FDot(rel, c.Normal)
	if vn >= 0 {
		return
	}

	e := 0.5 * (a.Restitution + b.Restitution)
	if -vn < w.RestingSpeed {
		e = 0
	}
	j := -(1 + e) * vn / invSum
	applyPair(a, b, vmath.V3FScale(c.Normal, j))

	rel = vmath.V3FSub(b.Velocity, a.Velocity)
	tangent := vmath.V3FSub(rel, vmath.V3FScale(c.Normal, vmath.V3FDot(rel, c.Normal)))
	if vmath.V3FMagSq(tangent) < frictionEpsilon {
		return
	}
	tangent = vmath.V3FNormalize(tangent)

	jt := -vmath.V3FDot(rel, tangent) / invSum
	limit := math.Sqrt(a.Friction*b.Friction) * j
	jt = math.Max(-limit, math.Min(jt, limit))
	applyPair(a, b, vmath.V3FScale(tangent, jt))
}

// applyPair pushes a by -impulse and b by +impulse, scaled by inverse mass
func applyPair(a, b *Body, impulse vmath.Vec3F) {
	if a.invMass > 0 {
		a.Velocity = vmath.V3FSub(a.Velocity, vmath.V3FScale(impulse, a.invMass))
	}
	if b.invMass > 0 {
		b.Velocity = vmath.V3FAdd(b.Velocity, vmath.V3FScale(impulse, b.invMass))
	}
}

// correctPositions removes remaining penetration, recomputed from current positions
// Dynamic pairs split the correction by inverse mass; static sides never move
func (w *World) correctPositions() {
	for iter := 0; iter < w.Iterations; iter++ {
		moved := false
		for k := range w.contacts {
			c := &w.contacts[k]
			a := &w.slots[c.a].body
			b := &w.slots[c.b].body

			invSum := a.invMass + b.invMass
			if invSum == 0 {
				continue
			}
			n, depth, ok := collide(a, b)
			if !ok {
				continue
			}

			corr := vmath.V3FScale(n, depth/invSum)
			if a.invMass > 0 {
				a.Position = vmath.V3FSub(a.Position, vmath.V3FScale(corr, a.invMass))
			}
			if b.invMass > 0 {
				b.Position = vmath.V3FAdd(b.Position, vmath.V3FScale(corr, b.invMass))
			}
			moved = true
		}
		if !moved {
			return
		}
	}
}
