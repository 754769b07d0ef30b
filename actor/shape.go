package actor

import "github.com/go-gl/mathgl/mgl64"

// ShapeInterface is what the narrow phase and mass computation need from a convex shape.
// All queries are in the shape's local space.
type ShapeInterface interface {
	// SupportWithMargin returns the farthest point along direction of the shape grown by its margin
	SupportWithMargin(direction mgl64.Vec3) (mgl64.Vec3, error)
	SupportWithoutMargin(direction mgl64.Vec3) (mgl64.Vec3, error)
	// LocalBounds returns the margin-inflated local bounding box
	LocalBounds() AABB
	ComputeInertia(mass float64) (mgl64.Mat3, error)
	Margin() float64
}
