package portal

import (
	"github.com/Carmen-Shannon/oxy-portal/common"
	"github.com/Carmen-Shannon/oxy-portal/engine/scene"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// PortalBuilderOption is a functional option for configuring a Portal.
type PortalBuilderOption func(*portalImpl)

// WithName sets the portal's display name.
//
// Parameters:
//   - name: the portal name
//
// Returns:
//   - PortalBuilderOption: a function that sets the name
func WithName(name string) PortalBuilderOption {
	return func(p *portalImpl) {
		p.name = name
	}
}

// WithPose sets the portal's world-space pose.
//
// Parameters:
//   - pose: the portal pose
//
// Returns:
//   - PortalBuilderOption: a function that sets the pose
func WithPose(pose common.Pose) PortalBuilderOption {
	return func(p *portalImpl) {
		p.SetPose(pose)
	}
}

// WithPosition sets the portal center, keeping the current rotation.
//
// Parameters:
//   - position: world-space position
//
// Returns:
//   - PortalBuilderOption: a function that sets the position
func WithPosition(position mgl64.Vec3) PortalBuilderOption {
	return func(p *portalImpl) {
		p.pose.Position = position
	}
}

// WithRotation sets the portal orientation, keeping the current position.
//
// Parameters:
//   - rotation: world-space orientation
//
// Returns:
//   - PortalBuilderOption: a function that sets the rotation
func WithRotation(rotation mgl64.Quat) PortalBuilderOption {
	return func(p *portalImpl) {
		p.pose.Rotation = rotation.Normalize()
	}
}

// WithSize sets the aperture width and height.
//
// Parameters:
//   - width, height: aperture dimensions in world units
//
// Returns:
//   - PortalBuilderOption: a function that sets the size
func WithSize(width, height float64) PortalBuilderOption {
	return func(p *portalImpl) {
		p.SetSize(width, height)
	}
}

// WithClippingOffset sets the oblique clip bias distance.
//
// Parameters:
//   - offset: the clipping offset, clamped to be non-negative
//
// Returns:
//   - PortalBuilderOption: a function that sets the clipping offset
func WithClippingOffset(offset float64) PortalBuilderOption {
	return func(p *portalImpl) {
		p.SetClippingOffset(offset)
	}
}

// WithScene places the portal in a scene.
//
// Parameters:
//   - s: the owning scene
//
// Returns:
//   - PortalBuilderOption: a function that sets the scene
func WithScene(s scene.Scene) PortalBuilderOption {
	return func(p *portalImpl) {
		p.scene = s
	}
}

// WithAttachedSurface records the surface the portal is mounted on.
//
// Parameters:
//   - id: the surface id
//
// Returns:
//   - PortalBuilderOption: a function that sets the attached surface
func WithAttachedSurface(id uuid.UUID) PortalBuilderOption {
	return func(p *portalImpl) {
		p.attachedSurface = id
	}
}
