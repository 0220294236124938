package portal_camera

import (
	"github.com/Carmen-Shannon/oxy-portal/common"
	"github.com/Carmen-Shannon/oxy-portal/engine/portal"
	"github.com/go-gl/mathgl/mgl64"
)

// Variant names the algorithm that produced a matrix.
type Variant int

const (
	// VariantDefault is the camera's own projection or culling matrix.
	VariantDefault Variant = iota
	// VariantObliqueClip is a projection whose near plane is the exit portal plane.
	VariantObliqueClip
	// VariantOffAxis is a culling matrix fitted to the exit portal aperture.
	VariantOffAxis
)

func (v Variant) String() string {
	switch v {
	case VariantObliqueClip:
		return "oblique-clip"
	case VariantOffAxis:
		return "off-axis"
	default:
		return "default"
	}
}

// MatrixResult is one derived matrix with the algorithm that produced it. Err is non-nil when a
// requested algorithm could not be applied and the default was used instead; it is either
// ErrMissingLink or common.ErrDegenerateGeometry.
type MatrixResult struct {
	Variant Variant
	Matrix  mgl64.Mat4
	Err     error
}

// MatrixSet is the projection and culling matrix pair a portal camera renders with.
type MatrixSet struct {
	Projection MatrixResult
	Culling    MatrixResult
}

// MatrixInput is everything BuildMatrices needs. Pose is the teleported camera pose; Projection is
// the eye projection before any clipping. Exit is nil when the entry portal is unlinked.
type MatrixInput struct {
	Pose        common.Pose
	Projection  mgl64.Mat4
	FieldOfView float64
	Far         float64

	Entry portal.Portal
	Exit  portal.Portal

	ObliqueClip bool
	OffAxis     bool
}

// BuildMatrices derives the projection and culling matrices for a camera looking out of the exit
// portal.
//
// With ObliqueClip, the exit plane replaces the near plane so nothing between the camera and the
// exit is drawn. The clip is skipped while the camera is within the entry portal's clipping offset
// of the exit plane, since the camera has then effectively passed through. The plane itself is
// pushed half the offset past the portal to hide the seam.
//
// With OffAxis, culling uses a frustum fitted to the exit aperture, unless that frustum would be
// wider than the camera's field of view.
//
// A derived matrix that is not finite, or whose frustum corners cannot be computed, makes both
// results fall back to the defaults with common.ErrDegenerateGeometry.
//
// Parameters:
//   - in: the camera, portals and enabled algorithms
//
// Returns:
//   - MatrixSet: the projection and culling results
func BuildMatrices(in MatrixInput) MatrixSet {
	view := in.Pose.InverseMatrix()
	defaults := MatrixSet{
		Projection: MatrixResult{Variant: VariantDefault, Matrix: in.Projection},
		Culling:    MatrixResult{Variant: VariantDefault, Matrix: in.Projection.Mul4(view)},
	}

	if in.Exit == nil {
		if in.ObliqueClip {
			defaults.Projection.Err = ErrMissingLink
		}
		if in.OffAxis {
			defaults.Culling.Err = ErrMissingLink
		}
		return defaults
	}

	set := defaults
	if in.ObliqueClip {
		var offset float64
		if in.Entry != nil {
			offset = in.Entry.ClippingOffset()
		}
		if m, ok := obliqueProjection(in.Projection, view, in.Pose.Position, in.Exit.Plane(), offset); ok {
			set.Projection = MatrixResult{Variant: VariantObliqueClip, Matrix: m}
		}
	}
	if in.OffAxis {
		corners := in.Exit.BackCorners()
		if common.OffAxisFieldOfView(corners[0], corners[1], in.Pose.Position) <= in.FieldOfView {
			off := common.OffAxisProjection(corners[0], corners[1], corners[2], in.Pose.Position, in.Far)
			set.Culling = MatrixResult{Variant: VariantOffAxis, Matrix: off.Matrix}
		}
	}

	if set.Projection.Variant == VariantDefault && set.Culling.Variant == VariantDefault {
		return set
	}
	if !usable(set.Projection.Matrix.Mul4(view)) || !usable(set.Culling.Matrix) {
		defaults.Projection.Err = common.ErrDegenerateGeometry
		defaults.Culling.Err = common.ErrDegenerateGeometry
		return defaults
	}
	return set
}

// obliqueProjection returns the oblique projection for exitPlane, or false when the camera at
// position is not far enough behind the plane for clipping to apply.
func obliqueProjection(projection, view mgl64.Mat4, position mgl64.Vec3, exitPlane common.Plane, offset float64) (mgl64.Mat4, bool) {
	if !exitPlane.Offset(offset).GetSide(position) {
		return projection, false
	}
	// The scene is visible on the exit's negative side, so the clip plane faces that way.
	clip := exitPlane.Offset(offset / 2).Flipped().Transform(view)
	return common.MakeProjectionOblique(projection, clip.Vec4()), true
}

func usable(m mgl64.Mat4) bool {
	if !common.IsFiniteMat4(m) {
		return false
	}
	_, err := common.FrustumCorners(common.ExtractFrustumFromMatrix(m))
	return err == nil
}
