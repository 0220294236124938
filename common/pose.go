package common

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Pose is a rigid world-space placement: a position and a unit rotation quaternion.
// Poses are plain values and are passed by value between functions.
type Pose struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// IdentityPose returns the pose at the origin with no rotation.
//
// Returns:
//   - Pose: the identity pose
func IdentityPose() Pose {
	return Pose{Rotation: mgl64.QuatIdent()}
}

// NewPose creates a pose from a position and rotation. The rotation is normalized.
//
// Parameters:
//   - position: world-space position
//   - rotation: orientation quaternion (need not be unit length)
//
// Returns:
//   - Pose: the new pose
func NewPose(position mgl64.Vec3, rotation mgl64.Quat) Pose {
	return Pose{Position: position, Rotation: rotation.Normalize()}
}

// Matrix returns the local-to-world matrix of the pose (column-major).
//
// Returns:
//   - mgl64.Mat4: translation * rotation
func (p Pose) Matrix() mgl64.Mat4 {
	return mgl64.Translate3D(p.Position.X(), p.Position.Y(), p.Position.Z()).Mul4(p.Rotation.Mat4())
}

// InverseMatrix returns the world-to-local matrix of the pose. For a camera pose this is the
// world-to-camera (view) matrix.
//
// Returns:
//   - mgl64.Mat4: the inverse rigid transform
func (p Pose) InverseMatrix() mgl64.Mat4 {
	inv := p.Inverse()
	return inv.Matrix()
}

// Inverse returns the pose that undoes p, so that p.Mul(p.Inverse()) is the identity.
//
// Returns:
//   - Pose: the inverse pose
func (p Pose) Inverse() Pose {
	rot := p.Rotation.Conjugate()
	return Pose{Position: rot.Rotate(p.Position).Mul(-1), Rotation: rot}
}

// Mul composes p with a pose expressed in p's local frame, returning the child's world pose.
//
// Parameters:
//   - local: a pose relative to p
//
// Returns:
//   - Pose: the composed pose
func (p Pose) Mul(local Pose) Pose {
	return Pose{
		Position: p.TransformPoint(local.Position),
		Rotation: p.Rotation.Mul(local.Rotation).Normalize(),
	}
}

// TransformPoint maps a point from p's local frame into world space.
func (p Pose) TransformPoint(local mgl64.Vec3) mgl64.Vec3 {
	return p.Rotation.Rotate(local).Add(p.Position)
}

// InverseTransformPoint maps a world-space point into p's local frame.
func (p Pose) InverseTransformPoint(world mgl64.Vec3) mgl64.Vec3 {
	return p.Rotation.Conjugate().Rotate(world.Sub(p.Position))
}

// TransformDirection rotates a local direction into world space.
func (p Pose) TransformDirection(local mgl64.Vec3) mgl64.Vec3 {
	return p.Rotation.Rotate(local)
}

// InverseTransformDirection rotates a world direction into p's local frame.
func (p Pose) InverseTransformDirection(world mgl64.Vec3) mgl64.Vec3 {
	return p.Rotation.Conjugate().Rotate(world)
}

// Right returns the pose's local +X axis in world space.
func (p Pose) Right() mgl64.Vec3 { return p.Rotation.Rotate(mgl64.Vec3{1, 0, 0}) }

// Up returns the pose's local +Y axis in world space.
func (p Pose) Up() mgl64.Vec3 { return p.Rotation.Rotate(mgl64.Vec3{0, 1, 0}) }

// Back returns the pose's local +Z axis in world space.
func (p Pose) Back() mgl64.Vec3 { return p.Rotation.Rotate(mgl64.Vec3{0, 0, 1}) }

// Forward returns the pose's local -Z axis in world space, the viewing direction of a camera.
func (p Pose) Forward() mgl64.Vec3 { return p.Rotation.Rotate(mgl64.Vec3{0, 0, -1}) }

// ApproxEqual reports whether two poses match within tol. Rotations are compared as
// orientations, so q and -q are equal.
//
// Parameters:
//   - other: the pose to compare against
//   - tol: absolute tolerance per component of the position and of each rotated basis vector
//
// Returns:
//   - bool: true if the poses are equal within tolerance
func (p Pose) ApproxEqual(other Pose, tol float64) bool {
	if !NearlyEqualVec3(p.Position, other.Position, tol) {
		return false
	}
	return NearlyEqualVec3(p.Right(), other.Right(), tol) &&
		NearlyEqualVec3(p.Up(), other.Up(), tol) &&
		NearlyEqualVec3(p.Back(), other.Back(), tol)
}
