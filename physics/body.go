package physics

import (
	"fmt"
	"math"

	"github.com/lixenwraith/ballfall/vmath"
)

// ShapeKind identifies the collision geometry of a body
type ShapeKind uint8

const (
	ShapeBall ShapeKind = iota
	ShapePlane
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeBall:
		return "ball"
	case ShapePlane:
		return "plane"
	default:
		return fmt.Sprintf("shape(%d)", uint8(k))
	}
}

// Shape is a ball (Radius) or a half-space plane (Normal)
// For planes the solid side lies behind Normal; the plane passes through the body position
type Shape struct {
	Kind   ShapeKind
	Radius float64
	Normal vmath.Vec3F
}

// Ball returns a sphere shape
func Ball(radius float64) Shape {
	return Shape{Kind: ShapeBall, Radius: radius}
}

// Plane returns a half-space shape facing normal
func Plane(normal vmath.Vec3F) Shape {
	return Shape{Kind: ShapePlane, Normal: normal}
}

// BodyKind is the mass classification of a body
type BodyKind uint8

const (
	// BodyStatic has infinite mass and is never moved by the world
	BodyStatic BodyKind = iota
	// BodyDynamic has finite mass and integrates under gravity and contacts
	BodyDynamic
)

func (k BodyKind) String() string {
	switch k {
	case BodyStatic:
		return "static"
	case BodyDynamic:
		return "dynamic"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// BodyDesc describes a body before it is registered with a World
type BodyDesc struct {
	Shape       Shape
	Kind        BodyKind
	Mass        float64 // ignored for static bodies
	Restitution float64
	Friction    float64
	Translation vmath.Vec3F
	Velocity    vmath.Vec3F
}

// NewStatic describes an immovable body at the origin
func NewStatic(shape Shape, restitution, friction float64) BodyDesc {
	return BodyDesc{
		Shape:       shape,
		Kind:        BodyStatic,
		Restitution: restitution,
		Friction:    friction,
	}
}

// NewDynamic describes a movable body of the given mass at the origin
func NewDynamic(shape Shape, mass, restitution, friction float64) BodyDesc {
	return BodyDesc{
		Shape:       shape,
		Kind:        BodyDynamic,
		Mass:        mass,
		Restitution: restitution,
		Friction:    friction,
	}
}

// Translated returns a copy of the descriptor moved by offset
func (d BodyDesc) Translated(offset vmath.Vec3F) BodyDesc {
	d.Translation = vmath.V3FAdd(d.Translation, offset)
	return d
}

// Validate reports the first problem that would make the body unusable
func (d BodyDesc) Validate() error {
	switch d.Shape.Kind {
	case ShapeBall:
		if !(d.Shape.Radius > 0) || math.IsInf(d.Shape.Radius, 0) {
			return fmt.Errorf("%w: ball radius %v must be positive and finite", ErrInvalidBody, d.Shape.Radius)
		}
	case ShapePlane:
		if !vmath.V3FIsFinite(d.Shape.Normal) || vmath.V3FMagSq(d.Shape.Normal) == 0 {
			return fmt.Errorf("%w: plane normal %+v must be finite and non-zero", ErrInvalidBody, d.Shape.Normal)
		}
		if d.Kind == BodyDynamic {
			return fmt.Errorf("%w: plane bodies must be static", ErrInvalidBody)
		}
	default:
		return fmt.Errorf("%w: unknown %s", ErrInvalidBody, d.Shape.Kind)
	}

	switch d.Kind {
	case BodyStatic:
	case BodyDynamic:
		if !(d.Mass > 0) || math.IsInf(d.Mass, 0) {
			return fmt.Errorf("%w: dynamic mass %v must be positive and finite", ErrInvalidBody, d.Mass)
		}
	default:
		return fmt.Errorf("%w: unknown %s", ErrInvalidBody, d.Kind)
	}

	if !(d.Restitution >= 0 && d.Restitution <= 1) {
		return fmt.Errorf("%w: restitution %v outside [0,1]", ErrInvalidBody, d.Restitution)
	}
	if !(d.Friction >= 0) || math.IsInf(d.Friction, 0) {
		return fmt.Errorf("%w: friction %v must be non-negative and finite", ErrInvalidBody, d.Friction)
	}
	if !vmath.V3FIsFinite(d.Translation) || !vmath.V3FIsFinite(d.Velocity) {
		return fmt.Errorf("%w: non-finite translation or velocity", ErrInvalidBody)
	}
	return nil
}

// Body is the simulated state of one rigid body, owned by a World
type Body struct {
	Shape       Shape
	Kind        BodyKind
	Mass        float64 // +Inf for static bodies
	Restitution float64
	Friction    float64
	Position    vmath.Vec3F
	Velocity    vmath.Vec3F

	invMass float64
}

func newBody(d BodyDesc) Body {
	b := Body{
		Shape:       d.Shape,
		Kind:        d.Kind,
		Restitution: d.Restitution,
		Friction:    d.Friction,
		Position:    d.Translation,
	}
	if b.Shape.Kind == ShapePlane {
		b.Shape.Normal = vmath.V3FNormalize(b.Shape.Normal)
	}
	if d.Kind == BodyDynamic {
		b.Mass = d.Mass
		b.invMass = 1.0 / d.Mass
		b.Velocity = d.Velocity
	} else {
		b.Mass = math.Inf(1)
	}
	return b
}

// InvMass returns 1/mass, zero for static bodies
func (b *Body) InvMass() float64 {
	return b.invMass
}

// IsStatic reports whether the body is immovable
func (b *Body) IsStatic() bool {
	return b.Kind == BodyStatic
}
