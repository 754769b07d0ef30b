package actor

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// BodyType represents the type of body
type BodyType int

const (
	// BodyTypeDynamic bodies have a finite mass and an inertia computed from their shape
	BodyTypeDynamic BodyType = iota

	// BodyTypeStatic bodies are immovable and have infinite mass
	BodyTypeStatic
)

// Body is a shape placed in world space
type Body struct {
	Transform Transform
	BodyType  BodyType
	Shape     ShapeInterface

	mass                float64
	InertiaLocal        mgl64.Mat3
	InverseInertiaLocal mgl64.Mat3

	aabb AABB
}

// NewBody places shape at transform. mass is ignored for static bodies.
func NewBody(transform Transform, shape ShapeInterface, bodyType BodyType, mass float64) (*Body, error) {
	if shape == nil {
		return nil, fmt.Errorf("body needs a shape: %w", ErrInvalidArgument)
	}

	b := &Body{
		Transform: transform,
		BodyType:  bodyType,
		Shape:     shape,
	}

	if bodyType == BodyTypeStatic {
		b.mass = math.Inf(1)
	} else {
		if !(mass > 0) {
			return nil, fmt.Errorf("dynamic body mass must be greater than zero, got %v: %w", mass, ErrInvalidArgument)
		}
		b.mass = mass

		inertia, err := shape.ComputeInertia(mass)
		if err != nil {
			return nil, err
		}
		b.InertiaLocal = inertia
		b.InverseInertiaLocal = inertia.Inv()
	}

	b.ComputeAABB()

	return b, nil
}

func (b *Body) GetMass() float64 {
	return b.mass
}

// ComputeAABB recomputes the world bounding box from the rotated local bounds corners.
func (b *Body) ComputeAABB() {
	corners := b.Shape.LocalBounds().Corners()

	world := b.Transform.ToWorldPoint(corners[0])
	aabb := AABB{Min: world, Max: world}
	for i := 1; i < len(corners); i++ {
		aabb = aabb.Extend(b.Transform.ToWorldPoint(corners[i]))
	}

	b.aabb = aabb
}

func (b *Body) GetAABB() AABB {
	return b.aabb
}

// SupportWorld returns the margin-inflated support point along a world-space direction.
func (b *Body) SupportWorld(direction mgl64.Vec3) (mgl64.Vec3, error) {
	localSupport, err := b.Shape.SupportWithMargin(b.Transform.ToLocalDirection(direction))
	if err != nil {
		return mgl64.Vec3{}, err
	}

	return b.Transform.ToWorldPoint(localSupport), nil
}

// GetInertiaWorld returns R * I_local * R^T
func (b *Body) GetInertiaWorld() mgl64.Mat3 {
	R := b.Transform.Rotation.Mat4().Mat3()
	return R.Mul3(b.InertiaLocal).Mul3(R.Transpose())
}

// GetInverseInertiaWorld returns R * I_local^-1 * R^T, zero for static bodies
func (b *Body) GetInverseInertiaWorld() mgl64.Mat3 {
	if b.BodyType == BodyTypeStatic {
		return mgl64.Mat3{}
	}

	R := b.Transform.Rotation.Mat4().Mat3()
	return R.Mul3(b.InverseInertiaLocal).Mul3(R.Transpose())
}
