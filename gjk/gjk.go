// Package gjk tests two convex bodies for overlap with the Gilbert-Johnson-Keerthi algorithm.
//
// GJK only asks each shape for support points, so every query here goes through the
// margin-inflated support oracle of the body shapes. Shapes closer than the sum of
// their margins are reported as overlapping.
//
// References:
//   - Gilbert, Johnson, Keerthi: "A Fast Procedure for Computing the Distance Between
//     Complex Objects in Three-Dimensional Space" (1988)
//   - Van den Bergen: "Collision Detection in Interactive 3D Environments" (2003)
package gjk

import (
	"fmt"
	"sync"

	"github.com/akmonengine/convexhull/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// MaxIterations bounds the simplex refinement loop.
const MaxIterations = 32

const degenerateEpsilon = 1e-10

// Simplex holds 1 to 4 points of the Minkowski difference, the most recent last.
type Simplex struct {
	Points [4]mgl64.Vec3
	Count  int
}

func (s *Simplex) Reset() {
	s.Count = 0
}

func (s *Simplex) set(points ...mgl64.Vec3) {
	s.Count = copy(s.Points[:], points)
}

func (s *Simplex) push(point mgl64.Vec3) {
	s.Points[s.Count] = point
	s.Count++
}

var SimplexPool = sync.Pool{
	New: func() interface{} {
		return &Simplex{}
	},
}

// MinkowskiSupport returns support(A, direction) - support(B, -direction).
func MinkowskiSupport(a, b *actor.Body, direction mgl64.Vec3) (mgl64.Vec3, error) {
	supportA, err := a.SupportWorld(direction)
	if err != nil {
		return mgl64.Vec3{}, fmt.Errorf("support of body A: %w", err)
	}
	supportB, err := b.SupportWorld(direction.Mul(-1))
	if err != nil {
		return mgl64.Vec3{}, fmt.Errorf("support of body B: %w", err)
	}
	return supportA.Sub(supportB), nil
}

// Intersect reports whether the margin-inflated shapes of a and b overlap.
// The simplex is reset and filled in place; on overlap it ends as a tetrahedron
// enclosing the origin, unless the shapes touch on a lower-dimensional feature.
// Errors come from the shapes' support oracles.
func Intersect(a, b *actor.Body, simplex *Simplex) (bool, error) {
	simplex.Reset()

	direction := b.Transform.Position.Sub(a.Transform.Position)
	if direction.LenSqr() < 1e-8 {
		direction = mgl64.Vec3{1, 0, 0}
	}

	first, err := MinkowskiSupport(a, b, direction)
	if err != nil {
		return false, err
	}
	simplex.push(first)

	direction = first.Mul(-1)
	if direction.LenSqr() < 1e-16 {
		return true, nil
	}

	for i := 0; i < MaxIterations; i++ {
		point, err := MinkowskiSupport(a, b, direction)
		if err != nil {
			return false, err
		}

		// the new point does not pass the origin: a separating axis exists
		if point.Dot(direction) <= 0 {
			return false, nil
		}

		simplex.push(point)
		if reduce(simplex, &direction) {
			return true, nil
		}
	}

	return false, nil
}

// reduce keeps the simplex feature closest to the origin and points direction at the origin.
// It returns true once the origin is enclosed.
func reduce(simplex *Simplex, direction *mgl64.Vec3) bool {
	switch simplex.Count {
	case 2:
		return reduceLine(simplex, direction)
	case 3:
		return reduceTriangle(simplex, direction)
	case 4:
		return reduceTetrahedron(simplex, direction)
	}
	return false
}

func reduceLine(simplex *Simplex, direction *mgl64.Vec3) bool {
	a := simplex.Points[1]
	b := simplex.Points[0]
	ab := b.Sub(a)
	ao := a.Mul(-1)

	if ab.LenSqr() < 1e-8 || ab.Dot(ao) <= 0 {
		if ao.LenSqr() < 1e-8 {
			return true
		}
		simplex.set(a)
		*direction = ao
		return false
	}

	perp := ab.Cross(ao).Cross(ab)
	if perp.LenSqr() < 1e-8 {
		// origin lies on the segment
		return true
	}

	*direction = perp
	return false
}

func reduceTriangle(simplex *Simplex, direction *mgl64.Vec3) bool {
	a := simplex.Points[2]
	b := simplex.Points[1]
	c := simplex.Points[0]

	ab := b.Sub(a)
	ac := c.Sub(a)
	ao := a.Mul(-1)
	normal := ab.Cross(ac)

	if normal.LenSqr() < degenerateEpsilon {
		simplex.set(b, a)
		return reduceLine(simplex, direction)
	}

	if ab.Cross(normal).Dot(ao) > 0 {
		simplex.set(b, a)
		*direction = ab.Cross(ao).Cross(ab)
		return false
	}
	if normal.Cross(ac).Dot(ao) > 0 {
		simplex.set(c, a)
		*direction = ac.Cross(ao).Cross(ac)
		return false
	}

	if normal.Dot(ao) > 0 {
		*direction = normal
	} else {
		// flip the winding so the normal faces the origin
		simplex.set(b, c, a)
		*direction = normal.Mul(-1)
	}
	return false
}

func reduceTetrahedron(simplex *Simplex, direction *mgl64.Vec3) bool {
	a := simplex.Points[3]
	b := simplex.Points[2]
	c := simplex.Points[1]
	d := simplex.Points[0]

	ab := b.Sub(a)
	ac := c.Sub(a)
	ad := d.Sub(a)
	ao := a.Mul(-1)

	// face normals, oriented away from the opposite vertex
	abc := outward(ab.Cross(ac), ad)
	acd := outward(ac.Cross(ad), ab)
	adb := outward(ad.Cross(ab), ac)

	if abc.LenSqr() < degenerateEpsilon || acd.LenSqr() < degenerateEpsilon || adb.LenSqr() < degenerateEpsilon {
		simplex.set(c, b, a)
		return reduceTriangle(simplex, direction)
	}

	switch {
	case abc.Dot(ao) > 0:
		simplex.set(c, b, a)
	case acd.Dot(ao) > 0:
		simplex.set(d, c, a)
	case adb.Dot(ao) > 0:
		simplex.set(b, d, a)
	default:
		return true
	}
	return reduceTriangle(simplex, direction)
}

func outward(normal, toOpposite mgl64.Vec3) mgl64.Vec3 {
	if normal.Dot(toOpposite) > 0 {
		return normal.Mul(-1)
	}
	return normal
}
