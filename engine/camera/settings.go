package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ClearFlags selects what a camera clears its target to before drawing.
type ClearFlags int

const (
	ClearSkybox ClearFlags = iota
	ClearSolidColor
	ClearDepthOnly
	ClearNothing
)

// RenderingPath selects the lighting pipeline a renderer uses for the camera.
type RenderingPath int

const (
	RenderingPathForward RenderingPath = iota
	RenderingPathForwardPlus
	RenderingPathDeferred
)

// TargetEye is the set of stereo eyes a camera renders.
type TargetEye uint8

const (
	TargetEyeNone  TargetEye = 0
	TargetEyeLeft  TargetEye = 1 << 0
	TargetEyeRight TargetEye = 1 << 1
	TargetEyeBoth            = TargetEyeLeft | TargetEyeRight
)

// Settings holds the per-camera render parameters a portal camera mirrors from its parent.
// FieldOfView is the vertical field of view in radians.
type Settings struct {
	ClearFlags       ClearFlags
	Background       mgl64.Vec4
	Near             float64
	Far              float64
	FieldOfView      float64
	Aspect           float64
	Orthographic     bool
	OrthographicSize float64
	RenderingPath    RenderingPath
	AllowHDR         bool
	AllowMSAA        bool
	CullingMask      uint32
	OcclusionCulling bool
	EventMask        uint32
}

// DefaultSettings returns a 60 degree perspective camera clearing to the skybox.
//
// Returns:
//   - Settings: the default camera settings
func DefaultSettings() Settings {
	return Settings{
		ClearFlags:       ClearSkybox,
		Background:       mgl64.Vec4{0.19, 0.3, 0.47, 1},
		Near:             0.1,
		Far:              1000,
		FieldOfView:      60 * math.Pi / 180,
		Aspect:           16.0 / 9.0,
		OrthographicSize: 5,
		AllowHDR:         true,
		AllowMSAA:        true,
		CullingMask:      math.MaxUint32,
		OcclusionCulling: true,
		EventMask:        math.MaxUint32,
	}
}

// Projection builds the default projection matrix described by s.
//
// Returns:
//   - mgl64.Mat4: a perspective or orthographic projection (OpenGL clip convention)
func (s Settings) Projection() mgl64.Mat4 {
	if s.Orthographic {
		h := s.OrthographicSize
		w := h * s.Aspect
		return mgl64.Ortho(-w, w, -h, h, s.Near, s.Far)
	}
	return mgl64.Perspective(s.FieldOfView, s.Aspect, s.Near, s.Far)
}

// CopySettings copies the render parameters of src onto dst. The field of view is only copied
// when dst is not a stereo camera, since a stereo camera's field of view comes from its eye
// projections. The event mask of dst is cleared so a portal camera never receives input events.
//
// Parameters:
//   - src: the camera to copy from
//   - dst: the camera to copy into
func CopySettings(src, dst Camera) {
	s := src.Settings()
	d := dst.Settings()

	d.ClearFlags = s.ClearFlags
	d.Background = s.Background
	d.Far = s.Far
	d.Near = s.Near
	d.Orthographic = s.Orthographic
	d.Aspect = s.Aspect
	d.OrthographicSize = s.OrthographicSize
	d.RenderingPath = s.RenderingPath
	d.AllowHDR = s.AllowHDR
	d.AllowMSAA = s.AllowMSAA
	d.CullingMask = s.CullingMask
	d.OcclusionCulling = s.OcclusionCulling
	d.EventMask = 0

	if !dst.Stereo() {
		d.FieldOfView = s.FieldOfView
	}
	dst.SetSettings(d)
}
