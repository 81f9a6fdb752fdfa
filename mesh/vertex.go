package mesh

import (
	"structs"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// TexturedVertex is bound at shader locations 0 (position) and 1 (tex_coords).
type TexturedVertex struct {
	_         structs.HostLayout
	Position  mgl32.Vec3
	TexCoords mgl32.Vec2
}

// ColoredVertex is bound at shader locations 0 (position) and 1 (color).
type ColoredVertex struct {
	_        structs.HostLayout
	Position mgl32.Vec3
	Color    mgl32.Vec3
}

// Vertex is the closed set of vertex types a Mesh can hold.
type Vertex interface {
	TexturedVertex | ColoredVertex
}

// Kind tags a vertex type together with its buffer layout.
type Kind uint8

const (
	KindTextured Kind = iota
	KindColored
)

func (k Kind) String() string {
	switch k {
	case KindTextured:
		return "textured"
	case KindColored:
		return "colored"
	default:
		return "unknown"
	}
}

// KindOf returns the Kind of vertex type V.
func KindOf[V Vertex]() Kind {
	var v V

	switch any(v).(type) {
	case ColoredVertex:
		return KindColored
	default:
		return KindTextured
	}
}

// Stride is the size of one vertex of this kind in bytes.
func (k Kind) Stride() uint64 {
	switch k {
	case KindColored:
		return uint64(unsafe.Sizeof(ColoredVertex{}))
	default:
		return uint64(unsafe.Sizeof(TexturedVertex{}))
	}
}

// Layout describes how a vertex buffer of this kind is read by a pipeline.
// A new value is returned on each call.
func (k Kind) Layout() wgpu.VertexBufferLayout {
	switch k {
	case KindColored:
		return wgpu.VertexBufferLayout{
			ArrayStride: k.Stride(),
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes: []wgpu.VertexAttribute{
				{
					Format:         wgpu.VertexFormatFloat32x3,
					Offset:         uint64(unsafe.Offsetof(ColoredVertex{}.Position)),
					ShaderLocation: 0,
				},
				{
					Format:         wgpu.VertexFormatFloat32x3,
					Offset:         uint64(unsafe.Offsetof(ColoredVertex{}.Color)),
					ShaderLocation: 1,
				},
			},
		}

	default:
		return wgpu.VertexBufferLayout{
			ArrayStride: k.Stride(),
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes: []wgpu.VertexAttribute{
				{
					Format:         wgpu.VertexFormatFloat32x3,
					Offset:         uint64(unsafe.Offsetof(TexturedVertex{}.Position)),
					ShaderLocation: 0,
				},
				{
					Format:         wgpu.VertexFormatFloat32x2,
					Offset:         uint64(unsafe.Offsetof(TexturedVertex{}.TexCoords)),
					ShaderLocation: 1,
				},
			},
		}
	}
}

// LayoutOf is a shorthand for KindOf[V]().Layout()
func LayoutOf[V Vertex]() wgpu.VertexBufferLayout {
	return KindOf[V]().Layout()
}
