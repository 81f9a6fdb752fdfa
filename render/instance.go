package render

import (
	"structs"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/furui/fastnoiselite-go"
	"github.com/go-gl/mathgl/mgl32"
)

// first shader location used by the per instance model matrix
const instanceShaderLocation = 5

// Instance places one copy of a model in the world.
type Instance struct {
	_     structs.HostLayout
	Model mgl32.Mat4
}

// InstanceLayout reads one Instance per drawn instance. The model matrix
// occupies four consecutive shader locations starting at 5, one per column.
func InstanceLayout() wgpu.VertexBufferLayout {
	column := uint64(unsafe.Sizeof(mgl32.Vec4{}))

	attributes := make([]wgpu.VertexAttribute, 4)
	for idx := range attributes {
		attributes[idx] = wgpu.VertexAttribute{
			Format:         wgpu.VertexFormatFloat32x4,
			Offset:         uint64(unsafe.Offsetof(Instance{}.Model)) + uint64(idx)*column,
			ShaderLocation: instanceShaderLocation + uint32(idx),
		}
	}

	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(unsafe.Sizeof(Instance{})),
		StepMode:    wgpu.VertexStepModeInstance,
		Attributes:  attributes,
	}
}

// InstanceGrid lays out instances on a regular grid in the xz plane,
// centered at the origin.
type InstanceGrid struct {
	Rows, Cols int

	// distance between neighbouring instances
	Spacing float32

	// instances are lifted by noise scaled by Amplitude. No noise is applied
	// if Amplitude is zero.
	Amplitude float32
	Frequency float32
}

// Build returns the instances of the grid in row major order. Each instance is
// tilted by 45 degrees around the axis pointing from the origin to the
// instance. An instance at the origin keeps its orientation.
func (g InstanceGrid) Build() []Instance {
	var noise *fastnoiselite.FastNoiseLite
	if g.Amplitude != 0 {
		noise = fastnoiselite.NewNoise()
		noise.SetNoiseType(fastnoiselite.NoiseTypeOpenSimplex2)
		noise.FractalType = fastnoiselite.FractalTypeFBm
		noise.Frequency = float64(g.Frequency)
		noise.SetFractalOctaves(3)
	}

	offsetX := g.Spacing * float32(g.Cols-1) / 2
	offsetZ := g.Spacing * float32(g.Rows-1) / 2

	instances := make([]Instance, 0, max(0, g.Rows*g.Cols))

	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			x := g.Spacing*float32(col) - offsetX
			z := g.Spacing*float32(row) - offsetZ

			var y float32
			if noise != nil {
				y = g.Amplitude * float32(noise.GetNoise2D(fastnoiselite.FNLfloat(x), fastnoiselite.FNLfloat(z)))
			}

			position := mgl32.Vec3{x, y, z}

			rotation := mgl32.QuatIdent()
			if position.Len() > 0 {
				rotation = mgl32.QuatRotate(mgl32.DegToRad(45), position.Normalize())
			}

			model := mgl32.Translate3D(x, y, z).Mul4(rotation.Mat4())
			instances = append(instances, Instance{Model: model})
		}
	}

	return instances
}
