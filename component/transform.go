package component

import "github.com/lixenwraith/ballfall/vmath"

// Quat is a rotation quaternion (W is the real part)
type Quat struct {
	X, Y, Z, W float64
}

// IdentityQuat is the no-rotation quaternion
var IdentityQuat = Quat{W: 1}

// LocalTransformComponent places a renderable entity in world space
// Translation is overwritten every tick by the transform sync system; rotation and scale are carried for the renderer
type LocalTransformComponent struct {
	Translation vmath.Vec3F
	Rotation    Quat
	Scale       vmath.Vec3F
}

// NewLocalTransform returns an identity transform at translation
func NewLocalTransform(translation vmath.Vec3F) LocalTransformComponent {
	return LocalTransformComponent{
		Translation: translation,
		Rotation:    IdentityQuat,
		Scale:       vmath.Vec3F{X: 1, Y: 1, Z: 1},
	}
}
