package common

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Frustum represents the six planes of a view frustum.
// Planes are oriented so that positive half-space is inside the frustum.
type Frustum struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

// FrustumPlane indices for clarity
const (
	FrustumLeft   = 0
	FrustumRight  = 1
	FrustumBottom = 2
	FrustumTop    = 3
	FrustumNear   = 4
	FrustumFar    = 5
)

// ExtractFrustumFromMatrix extracts frustum planes from a view-projection matrix.
// The matrix should be the combined Projection * View matrix in OpenGL clip convention.
// Uses the Gribb/Hartmann method for plane extraction.
//
// Reference: https://www8.cs.umu.se/kurser/5DV051/HT12/lab/plane_extraction.pdf
//
// Parameters:
//   - viewProj: the view-projection matrix (column-major)
//
// Returns:
//   - Frustum: the extracted frustum with normalized planes
func ExtractFrustumFromMatrix(viewProj mgl64.Mat4) Frustum {
	var f Frustum

	r0, r1, r2, r3 := viewProj.Row(0), viewProj.Row(1), viewProj.Row(2), viewProj.Row(3)

	f.Planes[FrustumLeft] = PlaneFromVec4(r3.Add(r0))
	f.Planes[FrustumRight] = PlaneFromVec4(r3.Sub(r0))
	f.Planes[FrustumBottom] = PlaneFromVec4(r3.Add(r1))
	f.Planes[FrustumTop] = PlaneFromVec4(r3.Sub(r1))
	f.Planes[FrustumNear] = PlaneFromVec4(r3.Add(r2))
	f.Planes[FrustumFar] = PlaneFromVec4(r3.Sub(r2))

	for i := range f.Planes {
		f.Planes[i] = f.Planes[i].Normalized()
	}

	return f
}

// cornerOrder walks the side planes so that consecutive entries share a frustum edge.
var cornerOrder = [4]int{FrustumLeft, FrustumBottom, FrustumRight, FrustumTop}

// FrustumCorners computes the four near-plane corners followed by the four far-plane corners of f
// by intersecting each cap with adjacent side planes.
//
// Parameters:
//   - f: the frustum
//
// Returns:
//   - [8]mgl64.Vec3: near corners [0..3] and far corners [4..7]
//   - error: ErrDegenerateGeometry if any plane triple has no unique intersection
func FrustumCorners(f Frustum) ([8]mgl64.Vec3, error) {
	var corners [8]mgl64.Vec3
	for i := 0; i < 4; i++ {
		a := f.Planes[cornerOrder[i]]
		b := f.Planes[cornerOrder[(i+1)%4]]

		near, ok := IntersectPlanes(f.Planes[FrustumNear], a, b)
		if !ok {
			return corners, ErrDegenerateGeometry
		}
		far, ok := IntersectPlanes(f.Planes[FrustumFar], a, b)
		if !ok {
			return corners, ErrDegenerateGeometry
		}
		corners[i] = near
		corners[i+4] = far
	}
	return corners, nil
}
