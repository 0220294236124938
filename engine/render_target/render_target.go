package render_target

import (
	"errors"

	"github.com/Carmen-Shannon/oxy-portal/common"
	"github.com/cogentcore/webgpu/wgpu"
)

var (
	// ErrResourceExhausted is returned when the pool cannot provide another target.
	ErrResourceExhausted = errors.New("render target resources exhausted")
	// ErrNotLive is returned when releasing a target the pool does not currently hold.
	ErrNotLive = errors.New("render target not live")
)

// DefaultColorFormat is the colour format used when a Descriptor leaves it undefined.
const DefaultColorFormat = wgpu.TextureFormatRGBA8Unorm

// Descriptor describes a temporary render target. Two targets with equal descriptors are
// interchangeable.
type Descriptor struct {
	Width       int
	Height      int
	DepthBits   int
	ColorFormat wgpu.TextureFormat
	SampleCount uint32
}

// Normalized fills unset fields with their defaults: the default colour format and one sample.
//
// Returns:
//   - Descriptor: the descriptor with defaults applied
func (d Descriptor) Normalized() Descriptor {
	d.ColorFormat = common.Coalesce(d.ColorFormat, DefaultColorFormat)
	d.SampleCount = common.Coalesce(d.SampleCount, 1)
	return d
}

// DepthFormat maps DepthBits onto a wgpu depth format. Zero bits means no depth attachment.
//
// Returns:
//   - wgpu.TextureFormat: the depth format, or wgpu.TextureFormatUndefined
func (d Descriptor) DepthFormat() wgpu.TextureFormat {
	switch {
	case d.DepthBits <= 0:
		return wgpu.TextureFormatUndefined
	case d.DepthBits <= 16:
		return wgpu.TextureFormatDepth16Unorm
	case d.DepthBits <= 24:
		return wgpu.TextureFormatDepth24Plus
	default:
		return wgpu.TextureFormatDepth32Float
	}
}

// Usage returns the texture usage a portal target needs: it is drawn into and later sampled when
// the portal surface is shaded.
//
// Returns:
//   - wgpu.TextureUsage: render attachment and texture binding
func (d Descriptor) Usage() wgpu.TextureUsage {
	return wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding
}

// RenderTarget is an opaque handle to a colour (and optional depth) texture owned by a Pool.
type RenderTarget interface {
	// ID returns an identifier unique among all targets a pool has handed out.
	//
	// Returns:
	//   - uint64: the target id
	ID() uint64

	// Descriptor returns the normalized descriptor the target was created with.
	//
	// Returns:
	//   - Descriptor: the target descriptor
	Descriptor() Descriptor

	// ColorView returns the GPU colour view, or nil for targets without GPU backing.
	//
	// Returns:
	//   - *wgpu.TextureView: the colour view
	ColorView() *wgpu.TextureView

	// DepthView returns the GPU depth view, or nil when there is none.
	//
	// Returns:
	//   - *wgpu.TextureView: the depth view
	DepthView() *wgpu.TextureView
}

type target struct {
	id         uint64
	descriptor Descriptor
	color      *wgpu.Texture
	colorView  *wgpu.TextureView
	depth      *wgpu.Texture
	depthView  *wgpu.TextureView
}

var _ RenderTarget = &target{}

func (t *target) ID() uint64                   { return t.id }
func (t *target) Descriptor() Descriptor       { return t.descriptor }
func (t *target) ColorView() *wgpu.TextureView { return t.colorView }
func (t *target) DepthView() *wgpu.TextureView { return t.depthView }

func (t *target) release() {
	if t.depthView != nil {
		t.depthView.Release()
		t.depthView = nil
	}
	if t.depth != nil {
		t.depth.Release()
		t.depth = nil
	}
	if t.colorView != nil {
		t.colorView.Release()
		t.colorView = nil
	}
	if t.color != nil {
		t.color.Release()
		t.color = nil
	}
}
