package actor

import "github.com/go-gl/mathgl/mgl64"

// Transform places a local-space shape in world space
type Transform struct {
	Position        mgl64.Vec3
	Rotation        mgl64.Quat
	InverseRotation mgl64.Quat
}

// NewTransform creates a transform with its inverse rotation precomputed
func NewTransform(position mgl64.Vec3, rotation mgl64.Quat) Transform {
	rotation = rotation.Normalize()
	return Transform{
		Position:        position,
		Rotation:        rotation,
		InverseRotation: rotation.Inverse(),
	}
}

// IdentityTransform creates an identity transform
func IdentityTransform() Transform {
	return NewTransform(mgl64.Vec3{0, 0, 0}, mgl64.QuatIdent())
}

// ToLocalDirection rotates a world-space direction into local space.
func (t Transform) ToLocalDirection(direction mgl64.Vec3) mgl64.Vec3 {
	return t.InverseRotation.Rotate(direction)
}

// ToWorldPoint rotates then translates a local-space point into world space.
func (t Transform) ToWorldPoint(point mgl64.Vec3) mgl64.Vec3 {
	return t.Position.Add(t.Rotation.Rotate(point))
}
