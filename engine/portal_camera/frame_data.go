package portal_camera

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-portal/engine/camera"
	"github.com/Carmen-Shannon/oxy-portal/engine/render_target"
	"github.com/go-gl/mathgl/mgl64"
)

// EyeFrame is the cached result of the last render for one eye.
type EyeFrame struct {
	Target        render_target.RenderTarget
	Projection    mgl64.Mat4
	WorldToCamera mgl64.Mat4
}

// Valid reports whether the slot holds a target.
func (e EyeFrame) Valid() bool {
	return e.Target != nil
}

// FrameData caches the last render of each eye. The right eye slot serves cameras targeting the
// right eye; every other mask uses the left slot. Each slot holds at most one live target.
type FrameData struct {
	Left  EyeFrame
	Right EyeFrame
}

// Slot returns the cached frame for an eye mask.
//
// Parameters:
//   - mask: the camera's target eye
//
// Returns:
//   - EyeFrame: the cached frame, possibly empty
func (f FrameData) Slot(mask camera.TargetEye) EyeFrame {
	return *f.slot(mask)
}

func (f *FrameData) slot(mask camera.TargetEye) *EyeFrame {
	if mask == camera.TargetEyeRight {
		return &f.Right
	}
	return &f.Left
}

// store replaces the slot for mask, releasing the previous target unless it is the same one.
func (f *FrameData) store(mask camera.TargetEye, frame EyeFrame, pool render_target.Pool) error {
	s := f.slot(mask)
	prev := s.Target
	*s = frame
	if prev != nil && prev != frame.Target {
		if err := pool.Release(prev); err != nil {
			return fmt.Errorf("release replaced target: %w", err)
		}
	}
	return nil
}

// evict empties the slot for mask without releasing its target, returning the target.
func (f *FrameData) evict(mask camera.TargetEye) render_target.RenderTarget {
	s := f.slot(mask)
	rt := s.Target
	*s = EyeFrame{}
	return rt
}

// holds reports whether rt is cached in either slot.
func (f *FrameData) holds(rt render_target.RenderTarget) bool {
	return rt != nil && (f.Left.Target == rt || f.Right.Target == rt)
}

// clear releases both slot targets and empties the cache.
func (f *FrameData) clear(pool render_target.Pool) error {
	var errs []error
	left, right := f.Left.Target, f.Right.Target
	if left != nil {
		if err := pool.Release(left); err != nil {
			errs = append(errs, fmt.Errorf("release left eye target: %w", err))
		}
	}
	if right != nil && right != left {
		if err := pool.Release(right); err != nil {
			errs = append(errs, fmt.Errorf("release right eye target: %w", err))
		}
	}
	*f = FrameData{}
	return errors.Join(errs...)
}
