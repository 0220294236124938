package camera

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUCameraUniformSource is the WGSL definition matching GPUCameraUniform.
const GPUCameraUniformSource = `struct CameraUniform {
    view: mat4x4<f32>,
    projection: mat4x4<f32>,
    position: vec3<f32>,
    depth: u32,
};
`

// GPUCameraUniform is the GPU-aligned representation of a portal camera's uniform buffer.
// Size: 144 bytes (WGSL aligned).
type GPUCameraUniform struct {
	View           [16]float32 // offset   0: world-to-camera matrix (mat4x4<f32>)
	Projection     [16]float32 // offset  64: projection matrix, oblique when clipping (mat4x4<f32>)
	CameraPosition [3]float32  // offset 128: world-space camera position (vec3<f32>)
	RenderDepth    uint32      // offset 140: portal recursion depth (u32)
}

// Size returns the size of the GPUCameraUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (144)
func (g *GPUCameraUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUCameraUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.View[i]))
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(g.Projection[i]))
	}
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[128+i*4:], math.Float32bits(g.CameraPosition[i]))
	}
	binary.LittleEndian.PutUint32(buf[140:], g.RenderDepth)
	return buf
}
