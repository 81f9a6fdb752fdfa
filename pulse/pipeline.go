package pulse

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/figure/gpu"
)

type labeled struct {
	label string
}

func (l labeled) Label() string {
	return l.label
}

type ShaderModule struct {
	labeled
	module *wgpu.ShaderModule
}

func (s *ShaderModule) Release() {
	s.module.Release()
}

type BindGroupLayout struct {
	labeled
	layout *wgpu.BindGroupLayout
}

func (l *BindGroupLayout) Release() {
	l.layout.Release()
}

type BindGroup struct {
	labeled
	group *wgpu.BindGroup
}

func (g *BindGroup) Release() {
	g.group.Release()
}

type RenderPipeline struct {
	labeled
	layout   *wgpu.PipelineLayout
	pipeline *wgpu.RenderPipeline
}

func (p *RenderPipeline) Release() {
	p.pipeline.Release()
	p.layout.Release()
}

func (ctx *Context) CreateShaderModule(label string, wgsl string) (gpu.ShaderModule, error) {
	module, err := ctx.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: label,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: wgsl,
		},
	})

	if err != nil {
		return nil, fmt.Errorf("compile shader %q: %w", label, err)
	}

	return &ShaderModule{labeled: labeled{label}, module: module}, nil
}

func (ctx *Context) CreateBindGroupLayout(desc wgpu.BindGroupLayoutDescriptor) (gpu.BindGroupLayout, error) {
	layout, err := ctx.device.CreateBindGroupLayout(&desc)
	if err != nil {
		return nil, err
	}

	return &BindGroupLayout{labeled: labeled{desc.Label}, layout: layout}, nil
}

func (ctx *Context) CreateBindGroup(desc gpu.BindGroupDescriptor) (gpu.BindGroup, error) {
	entries := make([]wgpu.BindGroupEntry, 0, len(desc.Entries))

	for _, entry := range desc.Entries {
		wgpuEntry := wgpu.BindGroupEntry{Binding: entry.Binding}

		switch {
		case entry.Buffer != nil:
			wgpuEntry.Buffer = entry.Buffer.(*Buffer).buffer
			wgpuEntry.Size = wgpu.WholeSize

		case entry.Texture != nil:
			wgpuEntry.TextureView = entry.Texture.(*Texture).textureView

		case entry.Sampler != nil:
			wgpuEntry.Sampler = entry.Sampler.(*Sampler).sampler

		default:
			return nil, fmt.Errorf("bind group %q: binding %d has no resource", desc.Label, entry.Binding)
		}

		entries = append(entries, wgpuEntry)
	}

	group, err := ctx.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   desc.Label,
		Layout:  desc.Layout.(*BindGroupLayout).layout,
		Entries: entries,
	})

	if err != nil {
		return nil, err
	}

	return &BindGroup{labeled: labeled{desc.Label}, group: group}, nil
}

func (ctx *Context) CreateRenderPipeline(desc gpu.PipelineDescriptor) (gpu.RenderPipeline, error) {
	layouts := make([]*wgpu.BindGroupLayout, 0, len(desc.BindGroupLayouts))
	for _, layout := range desc.BindGroupLayouts {
		layouts = append(layouts, layout.(*BindGroupLayout).layout)
	}

	pipelineLayout, err := ctx.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            desc.Label,
		BindGroupLayouts: layouts,
	})

	if err != nil {
		return nil, fmt.Errorf("create pipeline layout: %w", err)
	}

	module := desc.Shader.(*ShaderModule).module

	pipeline, err := ctx.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  desc.Label,
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: desc.VertexEntryPoint,
			Buffers:    desc.Buffers,
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: desc.FragmentEntryPoint,
			Targets:    desc.Targets,
		},
		Primitive:    desc.Primitive,
		DepthStencil: desc.DepthStencil,
		Multisample:  desc.Multisample,
	})

	if err != nil {
		pipelineLayout.Release()
		return nil, err
	}

	return &RenderPipeline{
		labeled:  labeled{desc.Label},
		layout:   pipelineLayout,
		pipeline: pipeline,
	}, nil
}
