package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Plane represents a plane in 3D space using the equation: n·p + d = 0
// where n is the normal and d is the signed distance term.
// The positive half-space is the side the normal points into.
type Plane struct {
	Normal   mgl64.Vec3
	Distance float64
}

// NewPlaneFromPoint creates a plane with the given normal that passes through point.
// The normal is normalized.
//
// Parameters:
//   - normal: plane normal (need not be unit length)
//   - point: any point on the plane
//
// Returns:
//   - Plane: the plane through point
func NewPlaneFromPoint(normal, point mgl64.Vec3) Plane {
	n := normal.Normalize()
	return Plane{Normal: n, Distance: -n.Dot(point)}
}

// PlaneFromVec4 interprets (a, b, c, d) as the plane ax + by + cz + d = 0.
func PlaneFromVec4(v mgl64.Vec4) Plane {
	return Plane{Normal: v.Vec3(), Distance: v.W()}
}

// Vec4 returns the plane as (nx, ny, nz, d).
func (p Plane) Vec4() mgl64.Vec4 {
	return p.Normal.Vec4(p.Distance)
}

// SignedDistance returns n·point + d. For a unit normal this is the distance from the plane,
// positive on the side the normal points into.
func (p Plane) SignedDistance(point mgl64.Vec3) float64 {
	return p.Normal.Dot(point) + p.Distance
}

// GetSide reports whether point lies strictly on the positive side of the plane.
func (p Plane) GetSide(point mgl64.Vec3) bool {
	return p.SignedDistance(point) > 0
}

// Offset returns the plane with its distance term reduced by delta, which moves a unit-normal
// plane by delta along its normal.
func (p Plane) Offset(delta float64) Plane {
	return Plane{Normal: p.Normal, Distance: p.Distance - delta}
}

// Flipped returns the same plane with the opposite orientation.
func (p Plane) Flipped() Plane {
	return Plane{Normal: p.Normal.Mul(-1), Distance: -p.Distance}
}

// Normalized scales the plane so its normal has unit length. A zero normal is returned as is.
func (p Plane) Normalized() Plane {
	length := p.Normal.Len()
	if length == 0 {
		return p
	}
	inv := 1.0 / length
	return Plane{Normal: p.Normal.Mul(inv), Distance: p.Distance * inv}
}

// Transform maps the plane through the point transform m. Planes transform with the
// inverse-transpose, so a plane in world space and a world-to-camera m yield the camera-space plane.
//
// Parameters:
//   - m: the point transform applied to the space the plane lives in
//
// Returns:
//   - Plane: the transformed plane
func (p Plane) Transform(m mgl64.Mat4) Plane {
	inv := m.Inv()
	v := inv.Transpose().Mul4x1(p.Vec4())
	return PlaneFromVec4(v)
}

// IntersectPlanes returns the single point lying on all three planes, computed as
//
//	p = (-d1·(n2×n3) - d2·(n3×n1) - d3·(n1×n2)) / (n1·(n2×n3))
//
// When the normals are linearly dependent (parallel or coplanar planes) the result is
// not finite and ok is false. Callers must treat that as "no intersection".
//
// Parameters:
//   - p1, p2, p3: the planes to intersect
//
// Returns:
//   - mgl64.Vec3: the intersection point
//   - bool: false if the planes have no unique intersection
func IntersectPlanes(p1, p2, p3 Plane) (mgl64.Vec3, bool) {
	c23 := p2.Normal.Cross(p3.Normal)
	c31 := p3.Normal.Cross(p1.Normal)
	c12 := p1.Normal.Cross(p2.Normal)

	denom := p1.Normal.Dot(c23)
	scale := p1.Normal.Len() * p2.Normal.Len() * p3.Normal.Len()
	if scale == 0 || math.Abs(denom) <= parallelEpsilon*scale {
		return mgl64.Vec3{}, false
	}

	point := c23.Mul(-p1.Distance).
		Add(c31.Mul(-p2.Distance)).
		Add(c12.Mul(-p3.Distance)).
		Mul(1.0 / denom)
	if !IsFiniteVec3(point) {
		return mgl64.Vec3{}, false
	}
	return point, true
}

// parallelEpsilon bounds |n1·(n2×n3)| relative to the normal lengths below which three planes
// are treated as linearly dependent.
const parallelEpsilon = 1e-12
