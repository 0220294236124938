package render_target

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// Allocator creates and destroys the backing storage of render targets for a Pool.
type Allocator interface {
	// Allocate creates backing storage for a target.
	//
	// Parameters:
	//   - id: the id the pool assigned to the target
	//   - desc: the normalized descriptor
	//
	// Returns:
	//   - RenderTarget: the new target
	//   - error: error if the storage could not be created
	Allocate(id uint64, desc Descriptor) (RenderTarget, error)

	// Free destroys a target previously returned by Allocate.
	//
	// Parameters:
	//   - rt: the target to destroy
	Free(rt RenderTarget)
}

type memoryAllocator struct{}

// NewMemoryAllocator returns an allocator producing targets with no GPU backing. It is used when
// the renderer manages its own textures and only needs stable handles.
//
// Returns:
//   - Allocator: the handle-only allocator
func NewMemoryAllocator() Allocator {
	return memoryAllocator{}
}

func (memoryAllocator) Allocate(id uint64, desc Descriptor) (RenderTarget, error) {
	return &target{id: id, descriptor: desc}, nil
}

func (memoryAllocator) Free(RenderTarget) {}

type wgpuAllocator struct {
	device *wgpu.Device
}

// NewWGPUAllocator returns an allocator that creates a colour texture and, when the descriptor
// asks for depth, a depth texture on device.
//
// Parameters:
//   - device: the wgpu device to create textures on
//
// Returns:
//   - Allocator: the GPU allocator
func NewWGPUAllocator(device *wgpu.Device) Allocator {
	return &wgpuAllocator{device: device}
}

func (a *wgpuAllocator) Allocate(id uint64, desc Descriptor) (RenderTarget, error) {
	t := &target{id: id, descriptor: desc}
	size := wgpu.Extent3D{
		Width:              uint32(desc.Width),
		Height:             uint32(desc.Height),
		DepthOrArrayLayers: 1,
	}

	color, err := a.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         fmt.Sprintf("Portal Target %d", id),
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   desc.SampleCount,
		Dimension:     wgpu.TextureDimension2D,
		Format:        desc.ColorFormat,
		Usage:         desc.Usage(),
	})
	if err != nil {
		return nil, fmt.Errorf("create colour texture: %w", err)
	}
	t.color = color
	if t.colorView, err = color.CreateView(nil); err != nil {
		t.release()
		return nil, fmt.Errorf("create colour view: %w", err)
	}

	if format := desc.DepthFormat(); format != wgpu.TextureFormatUndefined {
		depth, err := a.device.CreateTexture(&wgpu.TextureDescriptor{
			Label:         fmt.Sprintf("Portal Target %d Depth", id),
			Size:          size,
			MipLevelCount: 1,
			SampleCount:   desc.SampleCount,
			Dimension:     wgpu.TextureDimension2D,
			Format:        format,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			t.release()
			return nil, fmt.Errorf("create depth texture: %w", err)
		}
		t.depth = depth
		if t.depthView, err = depth.CreateView(nil); err != nil {
			t.release()
			return nil, fmt.Errorf("create depth view: %w", err)
		}
	}
	return t, nil
}

func (a *wgpuAllocator) Free(rt RenderTarget) {
	if t, ok := rt.(*target); ok {
		t.release()
	}
}
