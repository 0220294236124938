package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// sign returns -1 for negative values and +1 otherwise, so sign(0) is +1.
func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

// IsFiniteVec3 reports whether every component of v is neither NaN nor infinite.
func IsFiniteVec3(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// IsFiniteMat4 reports whether every element of m is neither NaN nor infinite.
func IsFiniteMat4(m mgl64.Mat4) bool {
	for _, c := range m {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// NearlyEqualVec3 reports whether every component of a and b differs by at most tol.
func NearlyEqualVec3(a, b mgl64.Vec3, tol float64) bool {
	return nearlyEqual(a[:], b[:], tol)
}

// NearlyEqualVec4 reports whether every component of a and b differs by at most tol.
func NearlyEqualVec4(a, b mgl64.Vec4, tol float64) bool {
	return nearlyEqual(a[:], b[:], tol)
}

// NearlyEqualMat4 reports whether every element of a and b differs by at most tol.
func NearlyEqualMat4(a, b mgl64.Mat4, tol float64) bool {
	return nearlyEqual(a[:], b[:], tol)
}

// nearlyEqual is an absolute comparison. NaN never compares equal.
func nearlyEqual(a, b []float64, tol float64) bool {
	for i := range a {
		if !(math.Abs(a[i]-b[i]) <= tol) {
			return false
		}
	}
	return true
}

// ToFloat32 narrows a double precision matrix to the float32 layout used for GPU uploads.
// Element order (column-major) is preserved.
//
// Parameters:
//   - m: the matrix to convert
//
// Returns:
//   - [16]float32: the narrowed matrix
func ToFloat32(m mgl64.Mat4) [16]float32 {
	var out [16]float32
	for i, v := range m {
		out[i] = float32(v)
	}
	return out
}

// MakeProjectionOblique replaces the near clip plane of a perspective projection with an
// arbitrary camera-space plane while keeping the far plane mapping intact.
// Reference: http://aras-p.info/texts/obliqueortho.html (Lengyel's method).
//
// The clip plane is (nx, ny, nz, d) in camera space with the camera looking down -Z, and the
// normal points into the visible half-space. The computation is:
//
//	q = inverse(projection) * (sign(cx), sign(cy), 1, 1)
//	c = clipPlane * (2 / dot(clipPlane, q))
//	row3 = c - row4
//
// No clamping is performed: a zero dot(clipPlane, q) produces NaN or Inf elements, which the
// caller must detect.
//
// Parameters:
//   - projection: a standard perspective projection matrix (OpenGL clip convention)
//   - clipPlane: the camera-space clip plane
//
// Returns:
//   - mgl64.Mat4: the oblique projection matrix
func MakeProjectionOblique(projection mgl64.Mat4, clipPlane mgl64.Vec4) mgl64.Mat4 {
	q := projection.Inv().Mul4x1(mgl64.Vec4{
		sign(clipPlane.X()),
		sign(clipPlane.Y()),
		1.0,
		1.0,
	})
	c := clipPlane.Mul(2.0 / clipPlane.Dot(q))

	out := projection
	out.SetRow(2, c.Sub(projection.Row(3)))
	return out
}

// OffAxis holds the result of an off-axis projection derivation.
type OffAxis struct {
	// Projection is the asymmetric frustum matrix built from the extents below.
	Projection mgl64.Mat4
	// View is the world-to-screen-space matrix (screen basis rotation times eye translation).
	View mgl64.Mat4
	// Matrix is Projection * View.
	Matrix mgl64.Mat4
	// ScreenRight, ScreenUp and ScreenNormal form the orthonormal screen basis after back-face correction.
	ScreenRight, ScreenUp, ScreenNormal mgl64.Vec3
	// Forward is the viewing direction, -ScreenNormal.
	Forward mgl64.Vec3
	// BackFacing is true when the eye was behind the screen and the up axis was mirrored.
	BackFacing bool
	// Left, Right, Bottom, Top and Near are the frustum extents at the near plane.
	Left, Right, Bottom, Top, Near float64
	// Distance is the perpendicular distance from the eye to the screen plane.
	Distance float64
}

// OffAxisProjection derives a perspective projection for an observer at pe looking through the
// quadrilateral whose lower-left, lower-right and upper-left corners are pa, pb and pc
// (Kooima's generalized perspective projection). The near plane is placed on the screen itself.
//
// If the eye sits behind the screen, the up axis is mirrored and the corners recomputed so the
// screen always faces the eye. The right axis stays fixed.
//
// Parameters:
//   - pa: lower-left corner in world space
//   - pb: lower-right corner in world space
//   - pc: upper-left corner in world space
//   - pe: eye position in world space
//   - far: far clip distance
//
// Returns:
//   - OffAxis: projection, view and combined matrices with the derived frame and extents
func OffAxisProjection(pa, pb, pc, pe mgl64.Vec3, far float64) OffAxis {
	vr := pb.Sub(pa)
	vu := pc.Sub(pa)
	va := pa.Sub(pe)
	vb := pb.Sub(pe)
	vc := pc.Sub(pe)

	backFacing := va.Dot(vb.Cross(vc)) > 0
	if backFacing {
		vu = vu.Mul(-1)
		pa = pc
		pb = pa.Add(vr)
		pc = pa.Add(vu)
		va = pa.Sub(pe)
		vb = pb.Sub(pe)
		vc = pc.Sub(pe)
	}

	vr = vr.Normalize()
	vu = vu.Normalize()
	vn := vr.Cross(vu).Normalize()

	d := -va.Dot(vn)
	n := d

	l := vr.Dot(va) * n / d
	r := vr.Dot(vb) * n / d
	b := vu.Dot(va) * n / d
	t := vu.Dot(vc) * n / d

	p := mgl64.Frustum(l, r, b, t, n, far)

	rm := mgl64.Mat4FromRows(
		vr.Vec4(0),
		vu.Vec4(0),
		vn.Vec4(0),
		mgl64.Vec4{0, 0, 0, 1},
	)
	tm := mgl64.Translate3D(-pe.X(), -pe.Y(), -pe.Z())
	view := rm.Mul4(tm)

	return OffAxis{
		Projection:   p,
		View:         view,
		Matrix:       p.Mul4(view),
		ScreenRight:  vr,
		ScreenUp:     vu,
		ScreenNormal: vn,
		Forward:      vn.Mul(-1),
		BackFacing:   backFacing,
		Left:         l,
		Right:        r,
		Bottom:       b,
		Top:          t,
		Near:         n,
		Distance:     d,
	}
}

// OffAxisFieldOfView returns the horizontal angle in radians subtended at pe by the bottom edge
// pa-pb, measured after dropping the world Y component of both eye-to-corner vectors.
// A result wider than the driving camera's own field of view means the off-axis frustum would
// over-cover the aperture.
//
// Parameters:
//   - pa: lower-left corner in world space
//   - pb: lower-right corner in world space
//   - pe: eye position in world space
//
// Returns:
//   - float64: the angle in radians, 0 when either flattened vector has no length
func OffAxisFieldOfView(pa, pb, pe mgl64.Vec3) float64 {
	toLeft := pa.Sub(pe)
	toLeft[1] = 0
	toRight := pb.Sub(pe)
	toRight[1] = 0

	ll, rl := toLeft.Len(), toRight.Len()
	if ll == 0 || rl == 0 {
		return 0
	}
	cos := mgl64.Clamp(toLeft.Dot(toRight)/(ll*rl), -1, 1)
	return math.Acos(cos)
}
