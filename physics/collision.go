package physics

import (
	"cmp"
	"math"
	"slices"

	"github.com/lixenwraith/ballfall/vmath"
)

// Contact is one overlapping body pair found during a step
type Contact struct {
	A, B BodyHandle
	// Normal is the unit contact normal pointing from A toward B
	Normal vmath.Vec3F
	// Depth is the penetration depth at detection time
	Depth float64
	// ImpactSpeed is the approach speed along Normal before resolution
	ImpactSpeed float64

	a, b uint32
}

// static reports whether one side of the contact is immovable
func (c *Contact) static(w *World) bool {
	return w.slots[c.a].body.invMass == 0 || w.slots[c.b].body.invMass == 0
}

// detectContacts tests every body pair in arena order
// Static/static pairs are skipped; static contacts sort after dynamic ones
func (w *World) detectContacts() {
	for i := range w.slots {
		sa := &w.slots[i]
		if !sa.live {
			continue
		}
		for j := i + 1; j < len(w.slots); j++ {
			sb := &w.slots[j]
			if !sb.live || (sa.body.Kind == BodyStatic && sb.body.Kind == BodyStatic) {
				continue
			}
			n, depth, ok := collide(&sa.body, &sb.body)
			if !ok {
				continue
			}
			rel := vmath.V3FSub(sb.body.Velocity, sa.body.Velocity)
			w.contacts = append(w.contacts, Contact{
				A:           w.handleAt(uint32(i)),
				B:           w.handleAt(uint32(j)),
				Normal:      n,
				Depth:       depth,
				ImpactSpeed: math.Max(0, -vmath.V3FDot(rel, n)),
				a:           uint32(i),
				b:           uint32(j),
			})
		}
	}

	slices.SortStableFunc(w.contacts, func(x, y Contact) int {
		return cmp.Compare(staticRank(w, &x), staticRank(w, &y))
	})
}

func staticRank(w *World, c *Contact) int {
	if c.static(w) {
		return 1
	}
	return 0
}

// collide returns the normal from a toward b and the penetration depth
// Touching shapes are not in contact
func collide(a, b *Body) (vmath.Vec3F, float64, bool) {
	switch {
	case a.Shape.Kind == ShapeBall && b.Shape.Kind == ShapeBall:
		return ballBall(a, b)
	case a.Shape.Kind == ShapePlane && b.Shape.Kind == ShapeBall:
		return planeBall(a, b)
	case a.Shape.Kind == ShapeBall && b.Shape.Kind == ShapePlane:
		n, depth, ok := planeBall(b, a)
		return vmath.V3FNeg(n), depth, ok
	}
	return vmath.Vec3F{}, 0, false
}

func ballBall(a, b *Body) (vmath.Vec3F, float64, bool) {
	delta := vmath.V3FSub(b.Position, a.Position)
	distSq := vmath.V3FMagSq(delta)
	minDist := a.Shape.Radius + b.Shape.Radius
	if distSq >= minDist*minDist {
		return vmath.Vec3F{}, 0, false
	}

	dist := math.Sqrt(distSq)
	if dist == 0 {
		// Coincident centers, separate along +Z
		return vmath.Vec3F{Z: 1}, minDist, true
	}
	return vmath.V3FScale(delta, 1.0/dist), minDist - dist, true
}

func planeBall(plane, ball *Body) (vmath.Vec3F, float64, bool) {
	n := plane.Shape.Normal
	sep := vmath.V3FDot(vmath.V3FSub(ball.Position, plane.Position), n)
	depth := ball.Shape.Radius - sep
	if depth <= 0 {
		return vmath.Vec3F{}, 0, false
	}
	return n, depth, true
}
