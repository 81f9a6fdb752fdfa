package render

import (
	"fmt"
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/oliverbestmann/figure/gpu"
	"github.com/oliverbestmann/figure/mesh"
)

// DepthFormat is the format of the depth target.
const DepthFormat = wgpu.TextureFormatDepth32Float

// bind group indices as seen by the shaders
const (
	materialGroup = 0
	cameraGroup   = 1
)

// Variant selects one of the pipelines of a PipelineRegistry.
type Variant uint8

const (
	VariantPrimary Variant = iota
	VariantAlternate

	variantCount
)

// Other returns the variant a toggle switches to.
func (v Variant) Other() Variant {
	if v == VariantPrimary {
		return VariantAlternate
	}

	return VariantPrimary
}

func (v Variant) String() string {
	switch v {
	case VariantPrimary:
		return "primary"
	case VariantAlternate:
		return "alternate"
	default:
		return fmt.Sprintf("Variant(%d)", uint8(v))
	}
}

// VariantSpec is the part of a pipeline that differs between variants.
type VariantSpec struct {
	Label string

	// shader providing the vs_main and fs_main entry points
	Shader gpu.ShaderModule

	// vertex layout of the models drawn with this variant
	Vertex mesh.Kind

	// Instanced variants read an additional instance buffer from slot 1.
	Instanced bool

	// Blend defaults to replacing the target color if nil
	Blend *wgpu.BlendState
}

// pipelineConfig identifies a compiled pipeline.
type pipelineConfig struct {
	Variant     Variant
	Format      wgpu.TextureFormat
	DepthFormat wgpu.TextureFormat
}

// PipelineRegistry owns the bind group layouts shared by all pipelines and
// compiles one pipeline per registered Variant.
type PipelineRegistry struct {
	dev gpu.Device

	format      wgpu.TextureFormat
	depthFormat wgpu.TextureFormat

	textureLayout gpu.BindGroupLayout
	cameraLayout  gpu.BindGroupLayout

	specs [variantCount]*VariantSpec
	cache *lru.Cache[pipelineConfig, gpu.RenderPipeline]
}

// NewPipelineRegistry creates the bind group layouts for pipelines rendering
// into targets of the given format. Pass wgpu.TextureFormatUndefined as
// depthFormat to build pipelines without depth testing.
func NewPipelineRegistry(dev gpu.Device, format, depthFormat wgpu.TextureFormat) (*PipelineRegistry, error) {
	textureLayout, err := dev.CreateBindGroupLayout(TextureLayoutDescriptor())
	if err != nil {
		return nil, fmt.Errorf("create texture layout: %w", err)
	}

	cameraLayout, err := dev.CreateBindGroupLayout(CameraLayoutDescriptor())
	if err != nil {
		textureLayout.Release()
		return nil, fmt.Errorf("create camera layout: %w", err)
	}

	cache, _ := lru.NewWithEvict[pipelineConfig, gpu.RenderPipeline](int(variantCount), releasePipelineOnEviction)

	return &PipelineRegistry{
		dev:           dev,
		format:        format,
		depthFormat:   depthFormat,
		textureLayout: textureLayout,
		cameraLayout:  cameraLayout,
		cache:         cache,
	}, nil
}

func releasePipelineOnEviction(_ pipelineConfig, pipeline gpu.RenderPipeline) {
	pipeline.Release()
}

// TextureLayoutDescriptor declares a filterable 2d texture at binding 0 and
// its filtering sampler at binding 1.
func TextureLayoutDescriptor() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "TextureBindGroupLayout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
					Multisampled:  false,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		},
	}
}

// CameraLayoutDescriptor declares the camera uniform buffer at binding 0.
func CameraLayoutDescriptor() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "CameraBindGroupLayout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type: wgpu.BufferBindingTypeUniform,
				},
			},
		},
	}
}

func (r *PipelineRegistry) TextureLayout() gpu.BindGroupLayout {
	return r.textureLayout
}

func (r *PipelineRegistry) CameraLayout() gpu.BindGroupLayout {
	return r.cameraLayout
}

func (r *PipelineRegistry) Format() wgpu.TextureFormat {
	return r.format
}

// Register configures variant v. A pipeline compiled for a previous
// configuration of v is released.
func (r *PipelineRegistry) Register(v Variant, spec VariantSpec) error {
	if v >= variantCount {
		return fmt.Errorf("unknown pipeline variant %d", v)
	}

	if spec.Shader == nil {
		return fmt.Errorf("variant %s: no shader", v)
	}

	r.specs[v] = &spec
	r.cache.Remove(r.configOf(v))

	return nil
}

// Registered reports if a spec was registered for v.
func (r *PipelineRegistry) Registered(v Variant) bool {
	return v < variantCount && r.specs[v] != nil
}

// Spec returns the spec registered for v.
func (r *PipelineRegistry) Spec(v Variant) (VariantSpec, bool) {
	if !r.Registered(v) {
		return VariantSpec{}, false
	}

	return *r.specs[v], true
}

func (r *PipelineRegistry) configOf(v Variant) pipelineConfig {
	return pipelineConfig{
		Variant:     v,
		Format:      r.format,
		DepthFormat: r.depthFormat,
	}
}

// Descriptor returns the full pipeline state of variant v: a triangle list
// with counter-clockwise front faces and back face culling, single sampled,
// writing to one color target of the surface format.
func (r *PipelineRegistry) Descriptor(v Variant) (gpu.PipelineDescriptor, error) {
	spec, ok := r.Spec(v)
	if !ok {
		return gpu.PipelineDescriptor{}, fmt.Errorf("variant %s is not registered", v)
	}

	buffers := []wgpu.VertexBufferLayout{spec.Vertex.Layout()}
	if spec.Instanced {
		buffers = append(buffers, InstanceLayout())
	}

	blend := &wgpu.BlendStateReplace
	if spec.Blend != nil {
		blend = spec.Blend
	}

	label := spec.Label
	if label == "" {
		label = "Pipeline:" + v.String()
	}

	return gpu.PipelineDescriptor{
		Label:              label,
		Shader:             spec.Shader,
		VertexEntryPoint:   "vs_main",
		FragmentEntryPoint: "fs_main",
		Buffers:            buffers,
		BindGroupLayouts:   []gpu.BindGroupLayout{r.textureLayout, r.cameraLayout},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeBack,
		},
		DepthStencil: depthStencilState(r.depthFormat),
		Multisample: wgpu.MultisampleState{
			Count:                  1,
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: false,
		},
		Targets: []wgpu.ColorTargetState{
			{
				Format:    r.format,
				Blend:     blend,
				WriteMask: wgpu.ColorWriteMaskAll,
			},
		},
	}, nil
}

func depthStencilState(format wgpu.TextureFormat) *wgpu.DepthStencilState {
	if format == wgpu.TextureFormatUndefined {
		return nil
	}

	keep := wgpu.StencilFaceState{
		Compare:     wgpu.CompareFunctionAlways,
		FailOp:      wgpu.StencilOperationKeep,
		DepthFailOp: wgpu.StencilOperationKeep,
		PassOp:      wgpu.StencilOperationKeep,
	}

	return &wgpu.DepthStencilState{
		Format:            format,
		DepthWriteEnabled: true,
		DepthCompare:      wgpu.CompareFunctionLess,
		StencilFront:      keep,
		StencilBack:       keep,
	}
}

// Pipeline returns the compiled pipeline of variant v, compiling it on first use.
func (r *PipelineRegistry) Pipeline(v Variant) (gpu.RenderPipeline, error) {
	conf := r.configOf(v)

	cached, ok := r.cache.Get(conf)
	if ok {
		return cached, nil
	}

	desc, err := r.Descriptor(v)
	if err != nil {
		return nil, err
	}

	slog.Info("Build render pipeline",
		slog.String("variant", v.String()),
		slog.String("label", desc.Label),
		slog.Bool("instanced", len(desc.Buffers) > 1),
	)

	pipeline, err := r.dev.CreateRenderPipeline(desc)
	if err != nil {
		return nil, fmt.Errorf("build pipeline %s: %w", v, err)
	}

	r.cache.Add(conf, pipeline)

	return pipeline, nil
}

// Release releases all compiled pipelines and the layouts.
func (r *PipelineRegistry) Release() {
	r.cache.Purge()
	r.textureLayout.Release()
	r.cameraLayout.Release()
}
