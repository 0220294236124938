package camera

import (
	"github.com/Carmen-Shannon/oxy-portal/common"
	"github.com/Carmen-Shannon/oxy-portal/engine/render_target"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// RenderState is an immutable snapshot of a camera taken just before it renders.
type RenderState struct {
	CameraID      uuid.UUID
	Pose          common.Pose
	WorldToCamera mgl64.Mat4
	Projection    mgl64.Mat4
	Culling       mgl64.Mat4
	Settings      Settings
	TargetEye     TargetEye
	Width         int
	Height        int
	Target        render_target.RenderTarget
}

// ViewProjection returns Projection times WorldToCamera.
func (s RenderState) ViewProjection() mgl64.Mat4 {
	return s.Projection.Mul4(s.WorldToCamera)
}

// Uniform packs the state into the GPU camera uniform layout.
//
// Returns:
//   - GPUCameraUniform: the uniform ready for Marshal
func (s RenderState) Uniform() GPUCameraUniform {
	pos := s.Pose.Position
	return GPUCameraUniform{
		View:           common.ToFloat32(s.WorldToCamera),
		Projection:     common.ToFloat32(s.Projection),
		CameraPosition: [3]float32{float32(pos.X()), float32(pos.Y()), float32(pos.Z())},
	}
}
