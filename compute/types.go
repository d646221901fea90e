package compute

// Opaque resource handles. Each Device implementation maintains its own
// mapping from these IDs to actual backend resources (GPU buffer handles,
// CPU-side byte slices, and so on).

// BufferID is an opaque handle to a device buffer.
type BufferID uint64

// TextureID is an opaque handle to a device texture/image.
type TextureID uint64

// ShaderModuleID is an opaque handle to a compiled shader module.
type ShaderModuleID uint64

// ComputePipelineID is an opaque handle to a compute pipeline.
type ComputePipelineID uint64

// InvalidID is the zero value: an invalid or null resource handle.
const InvalidID = 0

// BufferUsage is a bitmask describing how a buffer will be used.
type BufferUsage uint32

// Buffer usage flags.
const (
	BufferUsageMapRead  BufferUsage = 1 << 0
	BufferUsageMapWrite BufferUsage = 1 << 1
	BufferUsageCopySrc  BufferUsage = 1 << 2
	BufferUsageCopyDst  BufferUsage = 1 << 3
	BufferUsageUniform  BufferUsage = 1 << 4
	BufferUsageStorage  BufferUsage = 1 << 5
)

// TextureFormat specifies the format of texture data exchanged with a
// kernel. Lens-flare intermediates are float-heavy (ray state, accumulated
// radiance), unlike a typical 2D rasterizer's 8-bit-per-channel surfaces.
type TextureFormat uint32

// Texture formats.
const (
	TextureFormatR32Float TextureFormat = iota + 1
	TextureFormatRG32Float
	TextureFormatRGBA32Float
	TextureFormatRGBA8Unorm
)

// BufferDesc describes a buffer to allocate on a device.
type BufferDesc struct {
	Label string
	Size  uint64
	Usage BufferUsage
}

// TextureDesc describes a texture to allocate on a device.
type TextureDesc struct {
	Label  string
	Width  uint32
	Height uint32
	Format TextureFormat
}
