// Package gpu declares the device the renderer core talks to.
//
// Handles are opaque. Enumerations and plain data descriptors are borrowed
// from wgpu directly, so a pulse.Context can forward them unchanged while
// gputest.Device only records them.
package gpu

import "github.com/cogentcore/webgpu/wgpu"

type Releaser interface {
	Release()
}

type Buffer interface {
	Releaser

	// Size of the buffer in bytes
	Size() uint64
}

type Texture interface {
	Releaser

	Width() uint32
	Height() uint32
	Format() wgpu.TextureFormat
}

// Sampler is owned by the device, callers never release it.
type Sampler interface {
	Descriptor() wgpu.SamplerDescriptor
}

type ShaderModule interface {
	Releaser
	Label() string
}

type BindGroupLayout interface {
	Releaser
	Label() string
}

type BindGroup interface {
	Releaser
	Label() string
}

type RenderPipeline interface {
	Releaser
	Label() string
}

type SurfaceConfiguration struct {
	Format wgpu.TextureFormat
	Width  uint32
	Height uint32
}

type BufferDescriptor struct {
	Label string
	Usage wgpu.BufferUsage

	// Contents are uploaded at creation. If empty, a zeroed buffer
	// of Size bytes is allocated instead.
	Contents []byte
	Size     uint64
}

type TextureDescriptor struct {
	Label  string
	Width  uint32
	Height uint32
	Format wgpu.TextureFormat
	Usage  wgpu.TextureUsage
}

// Image holds decoded, tightly packed RGBA8 pixels.
type Image struct {
	Width  uint32
	Height uint32
	Pix    []byte
}

type BindGroupEntry struct {
	Binding uint32

	// exactly one of the following is set
	Buffer  Buffer
	Texture Texture
	Sampler Sampler
}

type BindGroupDescriptor struct {
	Label   string
	Layout  BindGroupLayout
	Entries []BindGroupEntry
}

type PipelineDescriptor struct {
	Label string

	Shader             ShaderModule
	VertexEntryPoint   string
	FragmentEntryPoint string

	Buffers          []wgpu.VertexBufferLayout
	BindGroupLayouts []BindGroupLayout

	Primitive    wgpu.PrimitiveState
	DepthStencil *wgpu.DepthStencilState
	Multisample  wgpu.MultisampleState
	Targets      []wgpu.ColorTargetState
}

type PassDescriptor struct {
	Label      string
	ClearColor wgpu.Color

	// optional depth attachment, cleared to DepthClearValue
	Depth           Texture
	DepthClearValue float32
}

// Frame is one acquired surface texture together with the command encoder
// recording into it. Submit and Present must be called in that order; Release
// drops whatever was not handed over to the surface.
type Frame interface {
	Releaser

	Width() uint32
	Height() uint32

	BeginPass(desc PassDescriptor) Pass
	Submit() error
	Present()
}

type Pass interface {
	SetPipeline(pipeline RenderPipeline)
	SetBindGroup(index uint32, group BindGroup)
	SetVertexBuffer(slot uint32, buffer Buffer)
	SetIndexBuffer(buffer Buffer, format wgpu.IndexFormat)
	DrawIndexed(indexCount, instanceCount uint32)
	End() error
}

// Device owns the surface, the queue and every resource created through it.
type Device interface {
	Releaser

	// SurfaceFormats lists the formats supported by the surface,
	// the preferred format first.
	SurfaceFormats() []wgpu.TextureFormat
	ConfigureSurface(conf SurfaceConfiguration) error

	CreateBuffer(desc BufferDescriptor) (Buffer, error)
	WriteBuffer(buffer Buffer, offset uint64, data []byte) error

	CreateTexture(desc TextureDescriptor) (Texture, error)
	WriteTexture(texture Texture, image Image) error

	// Sampler returns a possibly shared sampler matching desc.
	Sampler(desc wgpu.SamplerDescriptor) (Sampler, error)

	CreateShaderModule(label string, wgsl string) (ShaderModule, error)
	CreateBindGroupLayout(desc wgpu.BindGroupLayoutDescriptor) (BindGroupLayout, error)
	CreateBindGroup(desc BindGroupDescriptor) (BindGroup, error)
	CreateRenderPipeline(desc PipelineDescriptor) (RenderPipeline, error)

	// AcquireFrame blocks until the surface hands out its next texture.
	// Failures are reported as one of the surface errors of this package.
	AcquireFrame() (Frame, error)
}
