package portal

import (
	"math"

	"github.com/Carmen-Shannon/oxy-portal/common"
	"github.com/Carmen-Shannon/oxy-portal/engine/scene"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Handle identifies a portal inside a Table. The zero Handle refers to no portal.
type Handle uint32

// NoHandle is the zero Handle.
const NoHandle Handle = 0

type portalImpl struct {
	handle Handle
	name   string

	pose   common.Pose
	width  float64
	height float64

	clippingOffset  float64
	attachedSurface uuid.UUID
	scene           scene.Scene

	exit       Handle
	generation uint64
}

// Portal is a planar rectangular aperture. Its local frame has +X to the right and +Y up as seen
// by a viewer looking at the portal; +Z is the plane normal and points away from that viewer, into
// the surface the portal is mounted on. A viewer in front of the portal is therefore on the
// negative side of Plane.
type Portal interface {
	// Handle returns the portal's handle, or NoHandle if it was not created by a Table.
	//
	// Returns:
	//   - Handle: the portal handle
	Handle() Handle

	// Name returns the portal's display name.
	//
	// Returns:
	//   - string: the portal name
	Name() string

	// Pose returns the portal's world-space pose.
	//
	// Returns:
	//   - common.Pose: position and rotation of the portal center
	Pose() common.Pose

	// SetPose moves the portal.
	//
	// Parameters:
	//   - pose: the new world-space pose
	SetPose(pose common.Pose)

	// Size returns the aperture extent along local X and Y.
	//
	// Returns:
	//   - width, height: aperture dimensions in world units
	Size() (width, height float64)

	// SetSize sets the aperture extent. Non-positive or non-finite values are ignored.
	//
	// Parameters:
	//   - width, height: aperture dimensions in world units
	SetSize(width, height float64)

	// Plane returns the world-space plane of the aperture, with the normal along local +Z.
	//
	// Returns:
	//   - common.Plane: the portal plane
	Plane() common.Plane

	// FrontCorners returns the lower-left, lower-right and upper-left aperture corners as seen
	// from the negative (viewer) side.
	//
	// Returns:
	//   - [3]mgl64.Vec3: world-space corners pa, pb, pc
	FrontCorners() [3]mgl64.Vec3

	// BackCorners returns the lower-left, lower-right and upper-left aperture corners as seen
	// from the positive side, which is where a teleported camera looking out of this portal sits.
	//
	// Returns:
	//   - [3]mgl64.Vec3: world-space corners pa, pb, pc
	BackCorners() [3]mgl64.Vec3

	// ClippingOffset returns the distance used to bias the oblique near plane past the portal.
	//
	// Returns:
	//   - float64: the clipping offset, never negative
	ClippingOffset() float64

	// SetClippingOffset sets the clipping offset. Negative or non-finite values clamp to 0.
	//
	// Parameters:
	//   - offset: the new clipping offset
	SetClippingOffset(offset float64)

	// AttachedSurface returns the id of the surface the portal was placed on, or uuid.Nil.
	//
	// Returns:
	//   - uuid.UUID: the surface id
	AttachedSurface() uuid.UUID

	// SetAttachedSurface records the surface the portal was placed on.
	//
	// Parameters:
	//   - id: the surface id
	SetAttachedSurface(id uuid.UUID)

	// Scene returns the scene the portal lives in, which may be nil.
	//
	// Returns:
	//   - scene.Scene: the owning scene
	Scene() scene.Scene

	// SetScene moves the portal into another scene.
	//
	// Parameters:
	//   - s: the new scene
	SetScene(s scene.Scene)

	// ExitHandle returns the handle of the linked exit portal, or NoHandle when unlinked.
	//
	// Returns:
	//   - Handle: the exit portal handle
	ExitHandle() Handle

	// Generation returns a counter that increases every time the portal is linked or unlinked.
	//
	// Returns:
	//   - uint64: the link generation
	Generation() uint64
}

var _ Portal = &portalImpl{}

// NewPortal creates a free-standing unit portal at the origin facing -Z.
//
// Parameters:
//   - options: functional options to configure the portal
//
// Returns:
//   - Portal: the newly created portal
func NewPortal(options ...PortalBuilderOption) Portal {
	p := &portalImpl{
		pose:   common.IdentityPose(),
		width:  1,
		height: 1,
	}
	for _, option := range options {
		option(p)
	}
	return p
}

func (p *portalImpl) Handle() Handle {
	return p.handle
}

func (p *portalImpl) Name() string {
	return p.name
}

func (p *portalImpl) Pose() common.Pose {
	return p.pose
}

func (p *portalImpl) SetPose(pose common.Pose) {
	p.pose = common.NewPose(pose.Position, pose.Rotation)
}

func (p *portalImpl) Size() (width, height float64) {
	return p.width, p.height
}

func (p *portalImpl) SetSize(width, height float64) {
	if validExtent(width) {
		p.width = width
	}
	if validExtent(height) {
		p.height = height
	}
}

func (p *portalImpl) Plane() common.Plane {
	return common.NewPlaneFromPoint(p.pose.Back(), p.pose.Position)
}

func (p *portalImpl) FrontCorners() [3]mgl64.Vec3 {
	hw, hh := p.width/2, p.height/2
	return [3]mgl64.Vec3{
		p.pose.TransformPoint(mgl64.Vec3{hw, -hh, 0}),
		p.pose.TransformPoint(mgl64.Vec3{-hw, -hh, 0}),
		p.pose.TransformPoint(mgl64.Vec3{hw, hh, 0}),
	}
}

func (p *portalImpl) BackCorners() [3]mgl64.Vec3 {
	hw, hh := p.width/2, p.height/2
	return [3]mgl64.Vec3{
		p.pose.TransformPoint(mgl64.Vec3{-hw, -hh, 0}),
		p.pose.TransformPoint(mgl64.Vec3{hw, -hh, 0}),
		p.pose.TransformPoint(mgl64.Vec3{-hw, hh, 0}),
	}
}

func (p *portalImpl) ClippingOffset() float64 {
	return p.clippingOffset
}

func (p *portalImpl) SetClippingOffset(offset float64) {
	p.clippingOffset = clampOffset(offset)
}

func (p *portalImpl) AttachedSurface() uuid.UUID {
	return p.attachedSurface
}

func (p *portalImpl) SetAttachedSurface(id uuid.UUID) {
	p.attachedSurface = id
}

func (p *portalImpl) Scene() scene.Scene {
	return p.scene
}

func (p *portalImpl) SetScene(s scene.Scene) {
	p.scene = s
}

func (p *portalImpl) ExitHandle() Handle {
	return p.exit
}

func (p *portalImpl) Generation() uint64 {
	return p.generation
}

func validExtent(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func clampOffset(v float64) float64 {
	if !common.IsNonNegativeFinite(v) {
		return 0
	}
	return v
}
