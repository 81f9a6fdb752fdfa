// Package gputest provides a gpu.Device that records every call instead of
// talking to real hardware.
package gputest

import (
	"fmt"
	"slices"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/figure/gpu"
)

type resource struct {
	label    string
	Released bool
}

func (r *resource) Label() string {
	return r.label
}

func (r *resource) Release() {
	r.Released = true
}

type Buffer struct {
	resource
	Usage    wgpu.BufferUsage
	Contents []byte
	Writes   int
}

func (b *Buffer) Size() uint64 {
	return uint64(len(b.Contents))
}

type Texture struct {
	resource
	Desc   gpu.TextureDescriptor
	Pixels []byte
}

func (t *Texture) Width() uint32 {
	return t.Desc.Width
}

func (t *Texture) Height() uint32 {
	return t.Desc.Height
}

func (t *Texture) Format() wgpu.TextureFormat {
	return t.Desc.Format
}

type Sampler struct {
	desc wgpu.SamplerDescriptor
}

func (s *Sampler) Descriptor() wgpu.SamplerDescriptor {
	return s.desc
}

type ShaderModule struct {
	resource
	Source string
}

type BindGroupLayout struct {
	resource
	Desc wgpu.BindGroupLayoutDescriptor
}

type BindGroup struct {
	resource
	Desc gpu.BindGroupDescriptor
}

type RenderPipeline struct {
	resource
	Desc gpu.PipelineDescriptor
}

type Draw struct {
	Pipeline      *RenderPipeline
	BindGroups    map[uint32]*BindGroup
	VertexBuffers map[uint32]*Buffer
	IndexBuffer   *Buffer
	IndexFormat   wgpu.IndexFormat
	IndexCount    uint32
	InstanceCount uint32

	// size of the depth attachment at the time of the draw call
	DepthWidth, DepthHeight uint32
}

type Pass struct {
	device *Device
	Desc   gpu.PassDescriptor
	Ended  bool
	Draws  []Draw

	current Draw
}

func (p *Pass) SetPipeline(pipeline gpu.RenderPipeline) {
	p.current.Pipeline = pipeline.(*RenderPipeline)
	p.device.logf("SetPipeline %s", pipeline.Label())
}

func (p *Pass) SetBindGroup(index uint32, group gpu.BindGroup) {
	if p.current.BindGroups == nil {
		p.current.BindGroups = map[uint32]*BindGroup{}
	}

	p.current.BindGroups[index] = group.(*BindGroup)
	p.device.logf("SetBindGroup %d %s", index, group.Label())
}

func (p *Pass) SetVertexBuffer(slot uint32, buffer gpu.Buffer) {
	if p.current.VertexBuffers == nil {
		p.current.VertexBuffers = map[uint32]*Buffer{}
	}

	p.current.VertexBuffers[slot] = buffer.(*Buffer)
	p.device.logf("SetVertexBuffer %d %s", slot, buffer.(*Buffer).label)
}

func (p *Pass) SetIndexBuffer(buffer gpu.Buffer, format wgpu.IndexFormat) {
	p.current.IndexBuffer = buffer.(*Buffer)
	p.current.IndexFormat = format
	p.device.logf("SetIndexBuffer %s", buffer.(*Buffer).label)
}

func (p *Pass) DrawIndexed(indexCount, instanceCount uint32) {
	draw := p.current
	draw.IndexCount = indexCount
	draw.InstanceCount = instanceCount

	if p.Desc.Depth != nil {
		draw.DepthWidth = p.Desc.Depth.Width()
		draw.DepthHeight = p.Desc.Depth.Height()
	}

	p.Draws = append(p.Draws, draw)
	p.device.logf("DrawIndexed %d %d", indexCount, instanceCount)
}

func (p *Pass) End() error {
	p.Ended = true
	p.device.logf("EndPass")
	return nil
}

type Frame struct {
	device *Device

	width, height uint32

	Passes    []*Pass
	Submitted bool
	Presented bool
	Released  bool
}

func (f *Frame) Width() uint32 {
	return f.width
}

func (f *Frame) Height() uint32 {
	return f.height
}

func (f *Frame) BeginPass(desc gpu.PassDescriptor) gpu.Pass {
	pass := &Pass{device: f.device, Desc: desc}
	f.Passes = append(f.Passes, pass)
	f.device.logf("BeginPass %s", desc.Label)
	return pass
}

func (f *Frame) Submit() error {
	f.Submitted = true
	f.device.logf("Submit")
	return f.device.SubmitError
}

func (f *Frame) Present() {
	f.Presented = true
	f.device.logf("Present")
}

func (f *Frame) Release() {
	f.Released = true
}

// Device is a gpu.Device keeping everything in memory. All created objects
// are recorded in the exported fields for inspection by tests.
type Device struct {
	Formats []wgpu.TextureFormat

	// errors returned by the next calls to AcquireFrame, one per call
	FrameErrors []error

	// error returned by every call to Frame.Submit
	SubmitError error

	// errors returned by CreateTexture, by texture label
	TextureErrors map[string]error

	// error returned by every call to WriteTexture
	WriteTextureError error

	Configurations []gpu.SurfaceConfiguration
	Buffers        []*Buffer
	Textures       []*Texture
	Samplers       []*Sampler
	Shaders        []*ShaderModule
	Layouts        []*BindGroupLayout
	BindGroups     []*BindGroup
	Pipelines      []*RenderPipeline
	Frames         []*Frame

	// Log has one line for each recorded call, in call order
	Log []string

	Released bool
}

// New creates a device whose surface supports an srgb and a linear format.
func New() *Device {
	return &Device{
		Formats: []wgpu.TextureFormat{
			wgpu.TextureFormatBGRA8Unorm,
			wgpu.TextureFormatBGRA8UnormSrgb,
		},
	}
}

func (d *Device) logf(format string, args ...any) {
	d.Log = append(d.Log, fmt.Sprintf(format, args...))
}

// LastFrame returns the most recently acquired frame or nil.
func (d *Device) LastFrame() *Frame {
	if len(d.Frames) == 0 {
		return nil
	}

	return d.Frames[len(d.Frames)-1]
}

// LastConfiguration returns the most recent surface configuration.
func (d *Device) LastConfiguration() (gpu.SurfaceConfiguration, bool) {
	if len(d.Configurations) == 0 {
		return gpu.SurfaceConfiguration{}, false
	}

	return d.Configurations[len(d.Configurations)-1], true
}

// Live returns the textures with the given label that are not yet released.
func (d *Device) Live(label string) []*Texture {
	var live []*Texture
	for _, tex := range d.Textures {
		if tex.label == label && !tex.Released {
			live = append(live, tex)
		}
	}

	return live
}

func (d *Device) Release() {
	d.Released = true
	d.logf("Release")
}

func (d *Device) SurfaceFormats() []wgpu.TextureFormat {
	return slices.Clone(d.Formats)
}

func (d *Device) ConfigureSurface(conf gpu.SurfaceConfiguration) error {
	d.Configurations = append(d.Configurations, conf)
	d.logf("ConfigureSurface %dx%d", conf.Width, conf.Height)
	return nil
}

func (d *Device) CreateBuffer(desc gpu.BufferDescriptor) (gpu.Buffer, error) {
	contents := slices.Clone(desc.Contents)
	if len(contents) == 0 {
		contents = make([]byte, desc.Size)
	}

	buf := &Buffer{
		resource: resource{label: desc.Label},
		Usage:    desc.Usage,
		Contents: contents,
	}

	d.Buffers = append(d.Buffers, buf)
	d.logf("CreateBuffer %s %d", desc.Label, len(contents))
	return buf, nil
}

func (d *Device) WriteBuffer(buffer gpu.Buffer, offset uint64, data []byte) error {
	buf := buffer.(*Buffer)
	if offset+uint64(len(data)) > uint64(len(buf.Contents)) {
		return fmt.Errorf("write of %d bytes at %d exceeds buffer %q", len(data), offset, buf.label)
	}

	copy(buf.Contents[offset:], data)
	buf.Writes++

	d.logf("WriteBuffer %s", buf.label)
	return nil
}

// Buffer returns the first buffer with the given label.
func (d *Device) Buffer(label string) *Buffer {
	for _, buf := range d.Buffers {
		if buf.label == label {
			return buf
		}
	}

	return nil
}

func (d *Device) CreateTexture(desc gpu.TextureDescriptor) (gpu.Texture, error) {
	if err := d.TextureErrors[desc.Label]; err != nil {
		d.logf("CreateTexture %s failed", desc.Label)
		return nil, err
	}

	tex := &Texture{resource: resource{label: desc.Label}, Desc: desc}
	d.Textures = append(d.Textures, tex)
	d.logf("CreateTexture %s %dx%d", desc.Label, desc.Width, desc.Height)
	return tex, nil
}

func (d *Device) WriteTexture(texture gpu.Texture, image gpu.Image) error {
	tex := texture.(*Texture)

	if d.WriteTextureError != nil {
		return d.WriteTextureError
	}

	tex.Pixels = slices.Clone(image.Pix)
	d.logf("WriteTexture %s", tex.label)
	return nil
}

func (d *Device) Sampler(desc wgpu.SamplerDescriptor) (gpu.Sampler, error) {
	for _, sampler := range d.Samplers {
		if sampler.desc == desc {
			return sampler, nil
		}
	}

	sampler := &Sampler{desc: desc}
	d.Samplers = append(d.Samplers, sampler)
	return sampler, nil
}

func (d *Device) CreateShaderModule(label string, wgsl string) (gpu.ShaderModule, error) {
	shader := &ShaderModule{resource: resource{label: label}, Source: wgsl}
	d.Shaders = append(d.Shaders, shader)
	return shader, nil
}

func (d *Device) CreateBindGroupLayout(desc wgpu.BindGroupLayoutDescriptor) (gpu.BindGroupLayout, error) {
	layout := &BindGroupLayout{resource: resource{label: desc.Label}, Desc: desc}
	d.Layouts = append(d.Layouts, layout)
	return layout, nil
}

func (d *Device) CreateBindGroup(desc gpu.BindGroupDescriptor) (gpu.BindGroup, error) {
	group := &BindGroup{resource: resource{label: desc.Label}, Desc: desc}
	d.BindGroups = append(d.BindGroups, group)
	return group, nil
}

func (d *Device) CreateRenderPipeline(desc gpu.PipelineDescriptor) (gpu.RenderPipeline, error) {
	pipeline := &RenderPipeline{resource: resource{label: desc.Label}, Desc: desc}
	d.Pipelines = append(d.Pipelines, pipeline)
	d.logf("CreateRenderPipeline %s", desc.Label)
	return pipeline, nil
}

func (d *Device) AcquireFrame() (gpu.Frame, error) {
	d.logf("AcquireFrame")

	if len(d.FrameErrors) > 0 {
		err := d.FrameErrors[0]
		d.FrameErrors = d.FrameErrors[1:]

		if err != nil {
			return nil, err
		}
	}

	conf, _ := d.LastConfiguration()

	frame := &Frame{device: d, width: conf.Width, height: conf.Height}
	d.Frames = append(d.Frames, frame)
	return frame, nil
}
