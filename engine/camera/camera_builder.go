package camera

import (
	"github.com/Carmen-Shannon/oxy-portal/common"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

type CameraBuilderOption func(*cameraImpl)

// WithID overrides the randomly generated camera identity.
//
// Parameters:
//   - id: the camera id
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera id
func WithID(id uuid.UUID) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.id = id
	}
}

// WithName sets the camera's display name.
//
// Parameters:
//   - name: the camera name
//
// Returns:
//   - CameraBuilderOption: a function that sets the name
func WithName(name string) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.name = name
	}
}

// WithPose sets the camera's world-space pose.
//
// Parameters:
//   - pose: the camera pose
//
// Returns:
//   - CameraBuilderOption: a function that sets the pose
func WithPose(pose common.Pose) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.SetPose(pose)
	}
}

// WithParent mounts the camera on a rig with the given world pose.
//
// Parameters:
//   - pose: the parent's world-space pose
//
// Returns:
//   - CameraBuilderOption: a function that sets the parent
func WithParent(pose common.Pose) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.SetParent(pose)
	}
}

// WithSettings replaces the default render settings.
//
// Parameters:
//   - s: the render settings
//
// Returns:
//   - CameraBuilderOption: a function that sets the settings
func WithSettings(s Settings) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.settings = s
	}
}

// WithFov sets the vertical field of view in radians.
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's field of view
func WithFov(fov float64) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.settings.FieldOfView = fov
	}
}

// WithClipPlanes sets the near and far clip distances.
//
// Parameters:
//   - near: near plane distance
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the clip planes
func WithClipPlanes(near, far float64) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.settings.Near = near
		c.settings.Far = far
	}
}

// WithPixelSize sets the output size and derives the aspect ratio from it.
//
// Parameters:
//   - width, height: output dimensions in pixels
//
// Returns:
//   - CameraBuilderOption: a function that sets the pixel size
func WithPixelSize(width, height int) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.SetPixelSize(width, height)
		if width > 0 && height > 0 {
			c.settings.Aspect = float64(width) / float64(height)
		}
	}
}

// WithStereo makes the camera a stereo camera with the given eye projections.
//
// Parameters:
//   - left: the left eye projection
//   - right: the right eye projection
//
// Returns:
//   - CameraBuilderOption: a function that enables stereo rendering
func WithStereo(left, right mgl64.Mat4) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.stereo = true
		c.SetStereoProjectionMatrix(StereoEyeLeft, left)
		c.SetStereoProjectionMatrix(StereoEyeRight, right)
	}
}

// WithTargetEye sets the eye mask the camera renders for.
//
// Parameters:
//   - eye: the eye mask
//
// Returns:
//   - CameraBuilderOption: a function that sets the target eye
func WithTargetEye(eye TargetEye) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.targetEye = eye
	}
}
