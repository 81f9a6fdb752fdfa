package render

import (
	"image/color"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oliverbestmann/figure/camera"
	"github.com/oliverbestmann/figure/glimpse"
	"github.com/oliverbestmann/figure/gpu"
	"github.com/oliverbestmann/figure/mesh"
)

var DefaultClearColor = gpu.ColorLinearRGBA(0.5, 0.5, 1.0, 1.0)

// ToggleMode decides how the toggle key selects the pipeline variant.
type ToggleMode uint8

const (
	// ToggleHold uses the alternate variant while the key is held down.
	ToggleHold ToggleMode = iota

	// ToggleFlip switches to the other variant on every key press.
	ToggleFlip
)

type Options struct {
	// Shader used by the primary pipeline variant. This is the only
	// field that is required. The renderer releases the shaders.
	Shader gpu.ShaderModule

	// AlternateShader is used by the alternate variant. Defaults to Shader.
	AlternateShader gpu.ShaderModule

	// SingleAlternate draws one copy of the mesh without an instance
	// buffer in the alternate variant. Its shader must not read the
	// instance attributes.
	SingleAlternate bool

	// Mesh defaults to a textured unit cube
	Mesh *mesh.Mesh[mesh.TexturedVertex]

	// Texture defaults to a checkerboard
	Texture *gpu.Image
	Sampler *wgpu.SamplerDescriptor

	// Grid defaults to 10x10 instances, 3 units apart.
	Grid InstanceGrid

	// Camera defaults to looking at the origin from (0, 5, 10). The aspect
	// is always derived from the surface size.
	Camera *camera.Descriptor

	// CameraSpeed is the distance the eye moves per update. Defaults to 0.2
	CameraSpeed float32

	// ClearColor defaults to DefaultClearColor
	ClearColor *gpu.Color

	// ToggleKey switches between the pipeline variants. Defaults to space.
	ToggleKey  glimpse.Key
	ToggleMode ToggleMode
}

func (opts Options) withDefaults(width, height uint32) Options {
	if opts.AlternateShader == nil {
		opts.AlternateShader = opts.Shader
	}

	if opts.Mesh == nil {
		opts.Mesh = mesh.TexturedCube(0.5)
	}

	if opts.Texture == nil {
		img := Checkerboard(64, 64, 8,
			color.RGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff},
			color.RGBA{R: 0x30, G: 0x60, B: 0x90, A: 0xff},
		)

		opts.Texture = &img
	}

	if opts.Sampler == nil {
		opts.Sampler = &DefaultSampler
	}

	if opts.Grid.Rows == 0 && opts.Grid.Cols == 0 {
		opts.Grid.Rows = 10
		opts.Grid.Cols = 10
	}

	if opts.Grid.Spacing == 0 {
		opts.Grid.Spacing = 3
	}

	if opts.Grid.Frequency == 0 {
		opts.Grid.Frequency = 0.1
	}

	desc := camera.New(mgl32.Vec3{0, 5, 10}, mgl32.Vec3{0, 0, 0}, 1)
	if opts.Camera != nil {
		desc = *opts.Camera
	}

	desc.Aspect = aspectOf(width, height)
	opts.Camera = &desc

	if opts.CameraSpeed == 0 {
		opts.CameraSpeed = 0.2
	}

	if opts.ClearColor == nil {
		opts.ClearColor = &DefaultClearColor
	}

	if opts.ToggleKey == glimpse.KeyUnknown {
		opts.ToggleKey = glimpse.KeySpace
	}

	return opts
}

func aspectOf(width, height uint32) float32 {
	if width == 0 || height == 0 {
		return 1
	}

	return float32(width) / float32(height)
}
