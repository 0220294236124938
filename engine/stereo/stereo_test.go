package stereo

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-portal/common"
	"github.com/Carmen-Shannon/oxy-portal/engine/camera"
	"github.com/go-gl/mathgl/mgl64"
)

var (
	leftProj  = mgl64.Frustum(-1.1, 0.9, -1, 1, 0.1, 100)
	rightProj = mgl64.Frustum(-0.9, 1.1, -1, 1, 0.1, 100)
)

func stereoCamera(options ...camera.CameraBuilderOption) camera.Camera {
	options = append([]camera.CameraBuilderOption{
		camera.WithStereo(leftProj, rightProj),
		camera.WithPose(common.NewPose(mgl64.Vec3{9, 9, 9}, mgl64.QuatIdent())),
	}, options...)
	return camera.NewCamera(options...)
}

func TestEye_NormalizeInvalid(t *testing.T) {
	for _, e := range []Eye{Mono, Eye(-1), Eye(3), Eye(42)} {
		if e.Normalize() != Mono {
			t.Errorf("Eye(%d).Normalize() = %v, want mono", int(e), e.Normalize())
		}
	}
	if Right.String() != "right" || Eye(9).String() != "mono" {
		t.Error("unexpected eye names")
	}
}

func TestResolve_StereoWithParent(t *testing.T) {
	rig := common.NewPose(mgl64.Vec3{0, 0, 5}, mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0}))
	cam := stereoCamera(camera.WithParent(rig))
	src := NewIPDSource(0.064, 1.7)

	got := Resolve(cam, Right, src)
	wantPos := rig.TransformPoint(mgl64.Vec3{0.032, 1.7, 0})
	if !common.NearlyEqualVec3(got.Pose.Position, wantPos, 1e-12) {
		t.Errorf("position = %v, want %v", got.Pose.Position, wantPos)
	}
	if !got.Pose.ApproxEqual(common.NewPose(wantPos, rig.Rotation), 1e-12) {
		t.Errorf("rotation = %v, want the rig rotation", got.Pose.Rotation)
	}
	if got.Projection != rightProj {
		t.Error("right eye did not use the right stereo projection")
	}
	if got.TargetEye != camera.TargetEyeRight || got.Eye != Right {
		t.Errorf("eye = %v mask = %v", got.Eye, got.TargetEye)
	}
}

func TestResolve_StereoWithoutParentUsesLocalPose(t *testing.T) {
	cam := stereoCamera()
	src := NewIPDSource(0.06, 0)
	got := Resolve(cam, Left, src)
	if !common.NearlyEqualVec3(got.Pose.Position, mgl64.Vec3{-0.03, 0, 0}, 1e-12) {
		t.Errorf("position = %v, want the local eye position", got.Pose.Position)
	}
	if got.Projection != leftProj || got.TargetEye != camera.TargetEyeLeft {
		t.Errorf("left eye resolved to %+v", got)
	}
}

func TestResolve_FallsBackToCameraPose(t *testing.T) {
	mono := camera.NewCamera(
		camera.WithPose(common.NewPose(mgl64.Vec3{1, 2, 3}, mgl64.QuatIdent())),
		camera.WithTargetEye(camera.TargetEyeBoth),
	)
	tests := []struct {
		name     string
		cam      camera.Camera
		eye      Eye
		source   TrackedPoseSource
		wantMask camera.TargetEye
	}{
		{"mono eye on stereo camera", stereoCamera(), Mono, NewIPDSource(0.06, 0), camera.TargetEyeBoth},
		{"invalid eye", stereoCamera(), Eye(7), NewIPDSource(0.06, 0), camera.TargetEyeBoth},
		{"monoscopic camera left", mono, Left, NewIPDSource(0.06, 0), camera.TargetEyeLeft},
		{"stereo camera without source", stereoCamera(), Right, nil, camera.TargetEyeRight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.cam, tt.eye, tt.source)
			if !got.Pose.ApproxEqual(tt.cam.Pose(), 1e-12) {
				t.Errorf("pose = %+v, want the camera pose %+v", got.Pose, tt.cam.Pose())
			}
			if got.TargetEye != tt.wantMask {
				t.Errorf("mask = %v, want %v", got.TargetEye, tt.wantMask)
			}
		})
	}

	if got := Resolve(mono, Left, nil); got.Projection != mono.ProjectionMatrix() {
		t.Error("monoscopic camera should use its own projection")
	}
}
