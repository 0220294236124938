package stereo

import (
	"github.com/Carmen-Shannon/oxy-portal/common"
	"github.com/Carmen-Shannon/oxy-portal/engine/camera"
	"github.com/go-gl/mathgl/mgl64"
)

// Eye selects which view of a camera to resolve.
type Eye int

const (
	Mono Eye = iota
	Left
	Right
)

// Normalize maps any value other than Left or Right to Mono.
func (e Eye) Normalize() Eye {
	switch e {
	case Left, Right:
		return e
	default:
		return Mono
	}
}

func (e Eye) String() string {
	switch e.Normalize() {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "mono"
	}
}

// TrackedPoseSource reports head-tracked eye poses relative to the camera rig.
type TrackedPoseSource interface {
	// LocalPosition returns the eye position in the rig's local frame.
	//
	// Parameters:
	//   - eye: Left or Right
	//
	// Returns:
	//   - mgl64.Vec3: the local eye position
	LocalPosition(eye Eye) mgl64.Vec3

	// LocalRotation returns the eye orientation in the rig's local frame.
	//
	// Parameters:
	//   - eye: Left or Right
	//
	// Returns:
	//   - mgl64.Quat: the local eye orientation
	LocalRotation(eye Eye) mgl64.Quat
}

// EyeState is the resolved viewpoint of one eye.
type EyeState struct {
	Eye        Eye
	Pose       common.Pose
	Projection mgl64.Mat4
	TargetEye  camera.TargetEye
}

// Resolve computes the world pose, projection and target eye mask for one eye of cam. A stereo
// camera's Left and Right eyes use its per-eye projections and the poses reported by source,
// placed in the world by cam's parent rig when it has one. A monoscopic camera, or any eye other
// than Left and Right, resolves to the camera's own pose and projection. A nil source keeps the
// camera pose.
//
// Parameters:
//   - cam: the camera being mirrored
//   - eye: the eye to resolve
//   - source: tracked eye poses, may be nil
//
// Returns:
//   - EyeState: the resolved eye
func Resolve(cam camera.Camera, eye Eye, source TrackedPoseSource) EyeState {
	eye = eye.Normalize()
	if eye == Mono {
		return EyeState{
			Eye:        Mono,
			Pose:       cam.Pose(),
			Projection: cam.ProjectionMatrix(),
			TargetEye:  cam.TargetEye(),
		}
	}

	state := EyeState{
		Eye:        eye,
		Pose:       cam.Pose(),
		Projection: cam.ProjectionMatrix(),
		TargetEye:  targetEye(eye),
	}
	if !cam.Stereo() {
		return state
	}
	state.Projection = cam.StereoProjectionMatrix(stereoEye(eye))
	if source != nil {
		local := common.NewPose(source.LocalPosition(eye), source.LocalRotation(eye))
		if parent, ok := cam.Parent(); ok {
			state.Pose = common.NewPose(parent.TransformPoint(local.Position), parent.Rotation.Mul(local.Rotation))
		} else {
			state.Pose = local
		}
	}
	return state
}

func stereoEye(eye Eye) camera.StereoEye {
	if eye == Right {
		return camera.StereoEyeRight
	}
	return camera.StereoEyeLeft
}

func targetEye(eye Eye) camera.TargetEye {
	if eye == Right {
		return camera.TargetEyeRight
	}
	return camera.TargetEyeLeft
}

// FixedPoseSource is a TrackedPoseSource reporting constant eye poses, such as a fixed
// interpupillary offset with no head tracking.
type FixedPoseSource struct {
	LeftPosition, RightPosition mgl64.Vec3
	LeftRotation, RightRotation mgl64.Quat
}

var _ TrackedPoseSource = FixedPoseSource{}

// NewIPDSource returns a FixedPoseSource with the eyes ipd apart along the rig's X axis at the
// given height.
//
// Parameters:
//   - ipd: interpupillary distance
//   - height: eye height above the rig origin
//
// Returns:
//   - FixedPoseSource: the pose source
func NewIPDSource(ipd, height float64) FixedPoseSource {
	return FixedPoseSource{
		LeftPosition:  mgl64.Vec3{-ipd / 2, height, 0},
		RightPosition: mgl64.Vec3{ipd / 2, height, 0},
		LeftRotation:  mgl64.QuatIdent(),
		RightRotation: mgl64.QuatIdent(),
	}
}

func (s FixedPoseSource) LocalPosition(eye Eye) mgl64.Vec3 {
	if eye == Right {
		return s.RightPosition
	}
	return s.LeftPosition
}

func (s FixedPoseSource) LocalRotation(eye Eye) mgl64.Quat {
	if eye == Right {
		return s.RightRotation
	}
	return s.LeftRotation
}
