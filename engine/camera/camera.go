package camera

import (
	"github.com/Carmen-Shannon/oxy-portal/common"
	"github.com/Carmen-Shannon/oxy-portal/engine/render_target"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// StereoEye selects one of the two eye projections of a stereo camera.
type StereoEye int

const (
	StereoEyeLeft StereoEye = iota
	StereoEyeRight
)

type cameraImpl struct {
	id   uuid.UUID
	name string

	pose      common.Pose
	parent    common.Pose
	hasParent bool

	settings  Settings
	stereo    bool
	targetEye TargetEye

	pixelWidth  int
	pixelHeight int

	projectionOverride *mgl64.Mat4
	cullingOverride    *mgl64.Mat4
	stereoProjection   [2]*mgl64.Mat4

	target render_target.RenderTarget
}

// Camera is a viewpoint with render settings. The projection and culling matrices default to
// values derived from the settings and pose; either can be overridden and later reset, which is
// how a portal camera swaps in oblique and off-axis matrices for one render.
type Camera interface {
	// ID returns the camera's unique identity.
	//
	// Returns:
	//   - uuid.UUID: the camera id
	ID() uuid.UUID

	// Name returns the camera's display name.
	//
	// Returns:
	//   - string: the camera name
	Name() string

	// Pose returns the camera's world-space pose. The camera looks down its local -Z axis.
	//
	// Returns:
	//   - common.Pose: the camera pose
	Pose() common.Pose

	// SetPose moves the camera.
	//
	// Parameters:
	//   - pose: the new world-space pose
	SetPose(pose common.Pose)

	// Parent returns the world pose of the rig the camera is mounted on, if any.
	// Tracked stereo eye poses are relative to this pose.
	//
	// Returns:
	//   - common.Pose: the parent pose
	//   - bool: false if the camera has no parent
	Parent() (common.Pose, bool)

	// SetParent mounts the camera on a rig with the given world pose.
	//
	// Parameters:
	//   - pose: the parent's world-space pose
	SetParent(pose common.Pose)

	// ClearParent detaches the camera from its rig.
	ClearParent()

	// Settings returns a copy of the camera's render settings.
	//
	// Returns:
	//   - Settings: the render settings
	Settings() Settings

	// SetSettings replaces the camera's render settings.
	//
	// Parameters:
	//   - s: the new settings
	SetSettings(s Settings)

	// Stereo reports whether the camera renders to a stereo display.
	//
	// Returns:
	//   - bool: true for a stereo camera
	Stereo() bool

	// SetStereo enables or disables stereo rendering.
	//
	// Parameters:
	//   - stereo: true for a stereo camera
	SetStereo(stereo bool)

	// TargetEye returns the eye mask the camera renders for.
	//
	// Returns:
	//   - TargetEye: the eye mask
	TargetEye() TargetEye

	// SetTargetEye sets the eye mask the camera renders for.
	//
	// Parameters:
	//   - eye: the eye mask
	SetTargetEye(eye TargetEye)

	// PixelSize returns the size in pixels of the camera's output.
	//
	// Returns:
	//   - width, height: output dimensions in pixels
	PixelSize() (width, height int)

	// SetPixelSize sets the output size in pixels.
	//
	// Parameters:
	//   - width, height: output dimensions in pixels
	SetPixelSize(width, height int)

	// ViewMatrix returns the world-to-camera matrix.
	//
	// Returns:
	//   - mgl64.Mat4: the inverse of the camera pose
	ViewMatrix() mgl64.Mat4

	// DefaultProjectionMatrix returns the projection built from the current settings, ignoring
	// any override.
	//
	// Returns:
	//   - mgl64.Mat4: the settings projection
	DefaultProjectionMatrix() mgl64.Mat4

	// ProjectionMatrix returns the override projection if set, otherwise the default.
	//
	// Returns:
	//   - mgl64.Mat4: the active projection
	ProjectionMatrix() mgl64.Mat4

	// SetProjectionMatrix overrides the projection until ResetProjectionMatrix.
	//
	// Parameters:
	//   - m: the projection to use
	SetProjectionMatrix(m mgl64.Mat4)

	// ResetProjectionMatrix drops the projection override.
	ResetProjectionMatrix()

	// StereoProjectionMatrix returns the projection for one eye of a stereo camera. Eyes without
	// an explicit projection use DefaultProjectionMatrix.
	//
	// Parameters:
	//   - eye: the eye to query
	//
	// Returns:
	//   - mgl64.Mat4: the eye projection
	StereoProjectionMatrix(eye StereoEye) mgl64.Mat4

	// SetStereoProjectionMatrix sets the projection for one eye.
	//
	// Parameters:
	//   - eye: the eye to set
	//   - m: the eye projection
	SetStereoProjectionMatrix(eye StereoEye, m mgl64.Mat4)

	// DefaultCullingMatrix returns ProjectionMatrix times ViewMatrix.
	//
	// Returns:
	//   - mgl64.Mat4: the default culling matrix
	DefaultCullingMatrix() mgl64.Mat4

	// CullingMatrix returns the override culling matrix if set, otherwise the default.
	//
	// Returns:
	//   - mgl64.Mat4: the active culling matrix
	CullingMatrix() mgl64.Mat4

	// SetCullingMatrix overrides the culling matrix until ResetCullingMatrix.
	//
	// Parameters:
	//   - m: the culling matrix to use
	SetCullingMatrix(m mgl64.Mat4)

	// ResetCullingMatrix drops the culling override.
	ResetCullingMatrix()

	// ViewProjectionMatrix returns ProjectionMatrix times ViewMatrix.
	//
	// Returns:
	//   - mgl64.Mat4: the combined matrix
	ViewProjectionMatrix() mgl64.Mat4

	// Target returns the render target the camera draws into, or nil for the default output.
	//
	// Returns:
	//   - render_target.RenderTarget: the current target
	Target() render_target.RenderTarget

	// SetTarget sets the render target the camera draws into.
	//
	// Parameters:
	//   - target: the new target, or nil
	SetTarget(target render_target.RenderTarget)

	// RenderState snapshots everything a renderer needs to draw from this camera.
	//
	// Returns:
	//   - RenderState: the render snapshot
	RenderState() RenderState
}

var _ Camera = &cameraImpl{}

// NewCamera creates a monoscopic camera at the origin with the default settings.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		id:          uuid.New(),
		pose:        common.IdentityPose(),
		settings:    DefaultSettings(),
		targetEye:   TargetEyeBoth,
		pixelWidth:  1280,
		pixelHeight: 720,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *cameraImpl) ID() uuid.UUID {
	return c.id
}

func (c *cameraImpl) Name() string {
	return c.name
}

func (c *cameraImpl) Pose() common.Pose {
	return c.pose
}

func (c *cameraImpl) SetPose(pose common.Pose) {
	c.pose = common.NewPose(pose.Position, pose.Rotation)
}

func (c *cameraImpl) Parent() (common.Pose, bool) {
	return c.parent, c.hasParent
}

func (c *cameraImpl) SetParent(pose common.Pose) {
	c.parent = common.NewPose(pose.Position, pose.Rotation)
	c.hasParent = true
}

func (c *cameraImpl) ClearParent() {
	c.parent = common.Pose{}
	c.hasParent = false
}

func (c *cameraImpl) Settings() Settings {
	return c.settings
}

func (c *cameraImpl) SetSettings(s Settings) {
	c.settings = s
}

func (c *cameraImpl) Stereo() bool {
	return c.stereo
}

func (c *cameraImpl) SetStereo(stereo bool) {
	c.stereo = stereo
}

func (c *cameraImpl) TargetEye() TargetEye {
	return c.targetEye
}

func (c *cameraImpl) SetTargetEye(eye TargetEye) {
	c.targetEye = eye
}

func (c *cameraImpl) PixelSize() (width, height int) {
	return c.pixelWidth, c.pixelHeight
}

func (c *cameraImpl) SetPixelSize(width, height int) {
	c.pixelWidth = max(width, 0)
	c.pixelHeight = max(height, 0)
}

func (c *cameraImpl) ViewMatrix() mgl64.Mat4 {
	return c.pose.InverseMatrix()
}

func (c *cameraImpl) DefaultProjectionMatrix() mgl64.Mat4 {
	return c.settings.Projection()
}

func (c *cameraImpl) ProjectionMatrix() mgl64.Mat4 {
	if c.projectionOverride != nil {
		return *c.projectionOverride
	}
	return c.DefaultProjectionMatrix()
}

func (c *cameraImpl) SetProjectionMatrix(m mgl64.Mat4) {
	c.projectionOverride = &m
}

func (c *cameraImpl) ResetProjectionMatrix() {
	c.projectionOverride = nil
}

func (c *cameraImpl) StereoProjectionMatrix(eye StereoEye) mgl64.Mat4 {
	if i := stereoIndex(eye); c.stereoProjection[i] != nil {
		return *c.stereoProjection[i]
	}
	return c.DefaultProjectionMatrix()
}

func (c *cameraImpl) SetStereoProjectionMatrix(eye StereoEye, m mgl64.Mat4) {
	c.stereoProjection[stereoIndex(eye)] = &m
}

func (c *cameraImpl) DefaultCullingMatrix() mgl64.Mat4 {
	return c.ProjectionMatrix().Mul4(c.ViewMatrix())
}

func (c *cameraImpl) CullingMatrix() mgl64.Mat4 {
	if c.cullingOverride != nil {
		return *c.cullingOverride
	}
	return c.DefaultCullingMatrix()
}

func (c *cameraImpl) SetCullingMatrix(m mgl64.Mat4) {
	c.cullingOverride = &m
}

func (c *cameraImpl) ResetCullingMatrix() {
	c.cullingOverride = nil
}

func (c *cameraImpl) ViewProjectionMatrix() mgl64.Mat4 {
	return c.ProjectionMatrix().Mul4(c.ViewMatrix())
}

func (c *cameraImpl) Target() render_target.RenderTarget {
	return c.target
}

func (c *cameraImpl) SetTarget(target render_target.RenderTarget) {
	c.target = target
}

func (c *cameraImpl) RenderState() RenderState {
	return RenderState{
		CameraID:      c.id,
		Pose:          c.pose,
		WorldToCamera: c.ViewMatrix(),
		Projection:    c.ProjectionMatrix(),
		Culling:       c.CullingMatrix(),
		Settings:      c.settings,
		TargetEye:     c.targetEye,
		Width:         c.pixelWidth,
		Height:        c.pixelHeight,
		Target:        c.target,
	}
}

func stereoIndex(eye StereoEye) int {
	if eye == StereoEyeRight {
		return 1
	}
	return 0
}
