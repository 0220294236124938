package portal_camera

import (
	"github.com/Carmen-Shannon/oxy-portal/engine/camera"
	"github.com/Carmen-Shannon/oxy-portal/engine/config"
	"github.com/Carmen-Shannon/oxy-portal/engine/portal"
	"github.com/Carmen-Shannon/oxy-portal/engine/render_target"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer"
	"github.com/Carmen-Shannon/oxy-portal/engine/scene"
	"github.com/Carmen-Shannon/oxy-portal/engine/stereo"
	"github.com/cogentcore/webgpu/wgpu"
)

// PortalCameraBuilderOption is a functional option for configuring a PortalCamera.
type PortalCameraBuilderOption func(*portalCameraImpl)

// WithTable sets the portal table the entry portal and its link are read from.
//
// Parameters:
//   - table: the portal table
//
// Returns:
//   - PortalCameraBuilderOption: option function
func WithTable(table portal.Table) PortalCameraBuilderOption {
	return func(pc *portalCameraImpl) {
		pc.table = table
	}
}

// WithPortal sets the entry portal.
//
// Parameters:
//   - h: the entry portal handle
//
// Returns:
//   - PortalCameraBuilderOption: option function
func WithPortal(h portal.Handle) PortalCameraBuilderOption {
	return func(pc *portalCameraImpl) {
		pc.handle = h
	}
}

// WithParent sets the camera whose view is mirrored through the portal.
//
// Parameters:
//   - parent: the parent camera
//
// Returns:
//   - PortalCameraBuilderOption: option function
func WithParent(parent camera.Camera) PortalCameraBuilderOption {
	return func(pc *portalCameraImpl) {
		pc.parent = parent
	}
}

// WithCamera sets the driven camera. By default a fresh camera is created.
//
// Parameters:
//   - cam: the driven camera
//
// Returns:
//   - PortalCameraBuilderOption: option function
func WithCamera(cam camera.Camera) PortalCameraBuilderOption {
	return func(pc *portalCameraImpl) {
		pc.camera = cam
	}
}

// WithRegistry sets the registry the portal camera registers in.
//
// Parameters:
//   - r: the registry
//
// Returns:
//   - PortalCameraBuilderOption: option function
func WithRegistry(r Registry) PortalCameraBuilderOption {
	return func(pc *portalCameraImpl) {
		pc.registry = r
	}
}

// WithPool sets the render target pool.
//
// Parameters:
//   - pool: the pool targets are acquired from
//
// Returns:
//   - PortalCameraBuilderOption: option function
func WithPool(pool render_target.Pool) PortalCameraBuilderOption {
	return func(pc *portalCameraImpl) {
		if pool != nil {
			pc.pool = pool
		}
	}
}

// WithRenderer sets the scene renderer.
//
// Parameters:
//   - r: the scene renderer
//
// Returns:
//   - PortalCameraBuilderOption: option function
func WithRenderer(r renderer.SceneRenderer) PortalCameraBuilderOption {
	return func(pc *portalCameraImpl) {
		if r != nil {
			pc.renderer = r
		}
	}
}

// WithTrackedPoseSource sets the source of per-eye poses for stereo parents.
//
// Parameters:
//   - source: the tracked pose source
//
// Returns:
//   - PortalCameraBuilderOption: option function
func WithTrackedPoseSource(source stereo.TrackedPoseSource) PortalCameraBuilderOption {
	return func(pc *portalCameraImpl) {
		pc.source = source
	}
}

// WithAmbientCopier sets the hook that copies exit scene lighting.
//
// Parameters:
//   - copier: the ambient copier
//
// Returns:
//   - PortalCameraBuilderOption: option function
func WithAmbientCopier(copier scene.AmbientCopier) PortalCameraBuilderOption {
	return func(pc *portalCameraImpl) {
		if copier != nil {
			pc.copier = copier
		}
	}
}

// WithConfig sets the feature switches and target depth.
//
// Parameters:
//   - cfg: the configuration
//
// Returns:
//   - PortalCameraBuilderOption: option function
func WithConfig(cfg config.Config) PortalCameraBuilderOption {
	return func(pc *portalCameraImpl) {
		pc.cfg = cfg
	}
}

// WithColorFormat sets the color format of acquired targets.
//
// Parameters:
//   - format: the texture format
//
// Returns:
//   - PortalCameraBuilderOption: option function
func WithColorFormat(format wgpu.TextureFormat) PortalCameraBuilderOption {
	return func(pc *portalCameraImpl) {
		pc.colorFormat = format
	}
}

// WithEnterScene overrides the enter scene, which otherwise comes from the entry portal.
//
// Parameters:
//   - s: the enter scene
//
// Returns:
//   - PortalCameraBuilderOption: option function
func WithEnterScene(s scene.Scene) PortalCameraBuilderOption {
	return func(pc *portalCameraImpl) {
		pc.enterScene = s
	}
}
