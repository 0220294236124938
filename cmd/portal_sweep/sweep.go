package main

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/Carmen-Shannon/oxy-portal/common"
	"github.com/Carmen-Shannon/oxy-portal/engine/config"
	"github.com/Carmen-Shannon/oxy-portal/engine/portal"
	"github.com/Carmen-Shannon/oxy-portal/engine/portal_camera"
	"github.com/go-gl/mathgl/mgl64"
)

// errCheckFailed marks a property violation found by a sweep case.
var errCheckFailed = errors.New("check failed")

// sweepCase is one randomly generated portal pair and viewer.
type sweepCase struct {
	id     int
	entry  portal.Portal
	exit   portal.Portal
	viewer common.Pose
}

func randomRotation(r *rand.Rand) mgl64.Quat {
	axis := mgl64.Vec3{r.Float64()*2 - 1, r.Float64()*2 - 1, r.Float64()*2 - 1}
	if axis.Len() < 1e-3 {
		axis = mgl64.Vec3{0, 1, 0}
	}
	return mgl64.QuatRotate(r.Float64()*2*math.Pi, axis.Normalize())
}

func randomPosition(r *rand.Rand, extent float64) mgl64.Vec3 {
	return mgl64.Vec3{
		(r.Float64()*2 - 1) * extent,
		(r.Float64()*2 - 1) * extent,
		(r.Float64()*2 - 1) * extent,
	}
}

// newSweepCase places two portals anywhere and the viewer in front of the entry.
func newSweepCase(id int, seed uint64, cfg config.Config) sweepCase {
	r := rand.New(rand.NewPCG(seed, uint64(id)))
	size := func() float64 { return 0.5 + r.Float64()*3 }

	entry := portal.NewPortal(
		portal.WithPose(common.NewPose(randomPosition(r, 50), randomRotation(r))),
		portal.WithSize(size(), size()),
		portal.WithClippingOffset(cfg.ClippingOffset),
	)
	exit := portal.NewPortal(
		portal.WithPose(common.NewPose(randomPosition(r, 50), randomRotation(r))),
		portal.WithSize(size(), size()),
		portal.WithClippingOffset(cfg.ClippingOffset),
	)

	local := mgl64.Vec3{
		(r.Float64()*2 - 1) * 2,
		(r.Float64()*2 - 1) * 2,
		-(0.5 + r.Float64()*10),
	}
	viewer := common.NewPose(entry.Pose().TransformPoint(local), randomRotation(r))
	return sweepCase{id: id, entry: entry, exit: exit, viewer: viewer}
}

// run checks every property on c and returns the violations.
func (c sweepCase) run(cfg config.Config, tol float64) error {
	return errors.Join(
		c.checkRoundTrip(tol),
		c.checkSide(),
		c.checkMatrices(cfg),
	)
}

// checkRoundTrip teleports the viewer through the pair and back.
func (c sweepCase) checkRoundTrip(tol float64) error {
	there := portal.TeleportPose(c.viewer, c.entry, c.exit)
	back := portal.TeleportPose(there, c.exit, c.entry)
	if !back.ApproxEqual(c.viewer, tol) {
		return fmt.Errorf("case %d: round trip %v -> %v: %w", c.id, c.viewer, back, errCheckFailed)
	}
	return nil
}

// checkSide verifies a viewer in front of the entry lands behind the exit plane.
func (c sweepCase) checkSide() error {
	if c.entry.Plane().GetSide(c.viewer.Position) {
		return fmt.Errorf("case %d: viewer generated behind the entry: %w", c.id, errCheckFailed)
	}
	there := portal.TeleportPose(c.viewer, c.entry, c.exit)
	if !c.exit.Plane().GetSide(there.Position) {
		return fmt.Errorf("case %d: teleported viewer %v not behind the exit: %w", c.id, there.Position, errCheckFailed)
	}
	return nil
}

// checkMatrices builds the portal matrices and checks the oblique plane when one was applied.
func (c sweepCase) checkMatrices(cfg config.Config) error {
	pose := portal.TeleportPose(c.viewer, c.entry, c.exit)
	fov := mgl64.DegToRad(60)
	proj := mgl64.Perspective(fov, 16.0/9.0, 0.1, 1000)
	set := portal_camera.BuildMatrices(portal_camera.MatrixInput{
		Pose:        pose,
		Projection:  proj,
		FieldOfView: fov,
		Far:         1000,
		Entry:       c.entry,
		Exit:        c.exit,
		ObliqueClip: cfg.EnableObliqueClip,
		OffAxis:     cfg.EnableOffAxisProjection,
	})
	if errors.Is(set.Projection.Err, common.ErrDegenerateGeometry) {
		return nil
	}
	for _, m := range []mgl64.Mat4{set.Projection.Matrix, set.Culling.Matrix} {
		if !common.IsFiniteMat4(m) {
			return fmt.Errorf("case %d: non-finite matrix: %w", c.id, errCheckFailed)
		}
	}
	if set.Projection.Variant != portal_camera.VariantObliqueClip {
		return nil
	}

	viewProj := set.Projection.Matrix.Mul4(pose.InverseMatrix())
	onPlane := c.exit.Pose().TransformPoint(mgl64.Vec3{0, 0, c.entry.ClippingOffset() / 2})
	// (row 2 + row 3) of the view-projection is the near plane scaled by the length of its normal.
	near := viewProj.Row(2).Add(viewProj.Row(3))
	scale := near.Vec3().Len()
	if scale == 0 {
		return fmt.Errorf("case %d: oblique near plane has no normal: %w", c.id, errCheckFailed)
	}
	if dist := near.Dot(onPlane.Vec4(1)) / scale; math.Abs(dist) > 1e-6 {
		return fmt.Errorf("case %d: exit centre %g from the near plane: %w", c.id, dist, errCheckFailed)
	}
	return nil
}
