package scene

import "github.com/Faultbox/lightfall/pkg/math"

// Transform places an object in world space.
type Transform struct {
	Position math.Vec3
	Rotation math.Quat
	Scale    math.Vec3
}

// NewTransform returns a transform at the origin with unit scale.
func NewTransform() Transform {
	return Transform{
		Rotation: math.QuatIdentity(),
		Scale:    math.Vec3{X: 1, Y: 1, Z: 1},
	}
}

// Matrix returns translate(Position) * rotate(Rotation) * scale(Scale).
func (t Transform) Matrix() math.Mat4 {
	return math.TRS(t.Position, t.Rotation, t.Scale)
}

// Up returns the rotated world up axis.
func (t Transform) Up() math.Vec3 { return t.Rotation.Rotate(math.WorldUp) }

// Forward returns the rotated world forward axis.
func (t Transform) Forward() math.Vec3 { return t.Rotation.Rotate(math.WorldForward) }

// Right returns the rotated world right axis.
func (t Transform) Right() math.Vec3 { return t.Rotation.Rotate(math.WorldRight) }
