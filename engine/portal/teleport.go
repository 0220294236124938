package portal

import (
	"math"

	"github.com/Carmen-Shannon/oxy-portal/common"
	"github.com/go-gl/mathgl/mgl64"
)

// halfTurn rotates 180 degrees about the portal's local up axis, turning "entering the front of
// one portal" into "leaving the front of the other".
var halfTurn = common.Pose{Rotation: mgl64.QuatRotate(math.Pi, mgl64.Vec3{0, 1, 0})}

// TeleportPose maps a world-space pose through entry and out of exit: the pose is expressed in
// entry's local frame, turned half way around entry's up axis and re-expressed in exit's frame.
// A viewer standing in front of entry lands behind exit, looking out through it. The mapping is
// self-inverse with the portals swapped.
//
// Parameters:
//   - pose: the world-space pose to map
//   - entry: the portal the pose is looking into
//   - exit: the linked portal the pose emerges from
//
// Returns:
//   - common.Pose: the teleported world-space pose
func TeleportPose(pose common.Pose, entry, exit Portal) common.Pose {
	local := entry.Pose().Inverse().Mul(pose)
	return exit.Pose().Mul(halfTurn.Mul(local))
}

// TeleportPoint maps a single world-space point through entry and out of exit.
func TeleportPoint(point mgl64.Vec3, entry, exit Portal) mgl64.Vec3 {
	local := entry.Pose().InverseTransformPoint(point)
	return exit.Pose().TransformPoint(halfTurn.TransformPoint(local))
}

// TeleportDirection maps a world-space direction through entry and out of exit. Translation is
// ignored.
func TeleportDirection(dir mgl64.Vec3, entry, exit Portal) mgl64.Vec3 {
	local := entry.Pose().InverseTransformDirection(dir)
	return exit.Pose().TransformDirection(halfTurn.TransformDirection(local))
}

// TeleportRotation maps a world-space orientation through entry and out of exit.
func TeleportRotation(rot mgl64.Quat, entry, exit Portal) mgl64.Quat {
	local := entry.Pose().Rotation.Conjugate().Mul(rot)
	return exit.Pose().Rotation.Mul(halfTurn.Rotation).Mul(local).Normalize()
}
