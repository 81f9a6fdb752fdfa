// Package render draws a grid of instanced, textured models through one of two
// interchangeable pipelines, viewed through an orbiting camera.
package render

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/figure/camera"
	"github.com/oliverbestmann/figure/glimpse"
	"github.com/oliverbestmann/figure/gpu"
	"github.com/oliverbestmann/figure/mesh"
)

// ErrClosed is returned by a Renderer after it was released or hit a fatal error.
var ErrClosed = errors.New("renderer is closed")

var ErrNoSurfaceFormat = errors.New("surface supports no format")

type State uint8

const (
	StateUninitialized State = iota
	StateReady
	StateRendering
	StateResizing
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateRendering:
		return "rendering"
	case StateResizing:
		return "resizing"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Window is the part of the platform window the renderer needs.
type Window interface {
	// GetSize returns the physical size of the drawable area in pixels
	GetSize() (uint32, uint32)
}

// Renderer owns the device and everything created on it. The window the
// device presents to must stay alive until Release was called.
//
// A Renderer is not safe for concurrent use.
type Renderer struct {
	win   Window
	dev   gpu.Device
	opts  Options
	state State

	// the device is in an unknown state after a fatal error
	failed bool

	format        wgpu.TextureFormat
	width, height uint32
	depth         gpu.Texture

	registry  *PipelineRegistry
	model     *Model[mesh.TexturedVertex]
	instances *GeometryBuffer[Instance]
	material  *Material

	camera          camera.Descriptor
	controller      *camera.Controller
	uniform         camera.Uniform
	cameraBuffer    *UniformBuffer[camera.Uniform]
	cameraBindGroup gpu.BindGroup

	variant Variant
}

// New takes ownership of dev and prepares everything needed to render the
// first frame at the current size of win. Errors returned by New are fatal.
func New(win Window, dev gpu.Device, opts Options) (r *Renderer, err error) {
	if opts.Shader == nil {
		return nil, errors.New("no shader specified")
	}

	width, height := win.GetSize()

	// a minimized window may report a zero size
	width = max(width, 1)
	height = max(height, 1)

	opts = opts.withDefaults(width, height)

	r = &Renderer{
		win:        win,
		dev:        dev,
		opts:       opts,
		camera:     *opts.Camera,
		controller: camera.NewController(opts.CameraSpeed),
		uniform:    camera.NewUniform(),
	}

	defer func() {
		if err != nil {
			r.Release()
			r = nil
		}
	}()

	formats := dev.SurfaceFormats()
	slog.Info("Available surface formats", slog.Any("formats", formats))

	format, ok := ChooseSurfaceFormat(formats)
	if !ok {
		return r, ErrNoSurfaceFormat
	}

	r.format = format

	if err := r.configure(width, height); err != nil {
		return r, err
	}

	r.registry, err = NewPipelineRegistry(dev, format, DepthFormat)
	if err != nil {
		return r, fmt.Errorf("create pipeline registry: %w", err)
	}

	err = r.registry.Register(VariantPrimary, VariantSpec{
		Label:     "PrimaryPipeline",
		Shader:    opts.Shader,
		Vertex:    mesh.KindTextured,
		Instanced: true,
	})
	if err != nil {
		return r, err
	}

	err = r.registry.Register(VariantAlternate, VariantSpec{
		Label:     "AlternatePipeline",
		Shader:    opts.AlternateShader,
		Vertex:    mesh.KindTextured,
		Instanced: !opts.SingleAlternate,
	})
	if err != nil {
		return r, err
	}

	// compile everything up front, a frame should never fail due to a pipeline
	for _, v := range []Variant{VariantPrimary, VariantAlternate} {
		if _, err := r.registry.Pipeline(v); err != nil {
			return r, err
		}
	}

	r.model, err = NewModel(dev, "Model", opts.Mesh)
	if err != nil {
		return r, fmt.Errorf("create model: %w", err)
	}

	instances := opts.Grid.Build()
	if len(instances) == 0 {
		return r, errors.New("instance grid is empty")
	}

	r.instances, err = NewGeometryBuffer(dev, "Instances", wgpu.BufferUsageVertex, instances)
	if err != nil {
		return r, err
	}

	r.material, err = NewMaterial(dev, r.registry.TextureLayout(), "Material", *opts.Texture, *opts.Sampler)
	if err != nil {
		return r, fmt.Errorf("create material: %w", err)
	}

	r.uniform.UpdateViewProj(r.camera)

	r.cameraBuffer, err = NewUniformBuffer(dev, "CameraUniform", r.uniform)
	if err != nil {
		return r, err
	}

	r.cameraBindGroup, err = dev.CreateBindGroup(gpu.BindGroupDescriptor{
		Label:   "CameraBindGroup",
		Layout:  r.registry.CameraLayout(),
		Entries: []gpu.BindGroupEntry{{Binding: 0, Buffer: r.cameraBuffer.Buffer()}},
	})
	if err != nil {
		return r, fmt.Errorf("create camera bind group: %w", err)
	}

	slog.Info("Renderer initialized",
		slog.Int("width", int(width)),
		slog.Int("height", int(height)),
		slog.Any("format", format),
		slog.Int("instances", r.instances.Len()),
		slog.Int("indices", int(r.model.NumIndices())),
	)

	r.state = StateReady

	return r, nil
}

// ChooseSurfaceFormat picks the first srgb format, or the first format if
// there is no srgb format at all.
func ChooseSurfaceFormat(formats []wgpu.TextureFormat) (wgpu.TextureFormat, bool) {
	if len(formats) == 0 {
		return wgpu.TextureFormatUndefined, false
	}

	for _, format := range formats {
		if isSRGB(format) {
			return format, true
		}
	}

	return formats[0], true
}

func isSRGB(format wgpu.TextureFormat) bool {
	switch format {
	case wgpu.TextureFormatRGBA8UnormSrgb, wgpu.TextureFormatBGRA8UnormSrgb:
		return true
	default:
		return false
	}
}

// configure applies the size to the surface and rebuilds the depth target.
// On error the previous surface size and depth target stay in place.
func (r *Renderer) configure(width, height uint32) error {
	slog.Debug("Configure surface",
		slog.Int("width", int(width)),
		slog.Int("height", int(height)),
	)

	depth, err := r.dev.CreateTexture(gpu.TextureDescriptor{
		Label:  "DepthTexture",
		Width:  width,
		Height: height,
		Format: DepthFormat,
		Usage:  wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding,
	})
	if err != nil {
		return fmt.Errorf("create depth texture: %w", err)
	}

	err = r.dev.ConfigureSurface(gpu.SurfaceConfiguration{
		Format: r.format,
		Width:  width,
		Height: height,
	})
	if err != nil {
		depth.Release()
		return fmt.Errorf("configure surface: %w", err)
	}

	if r.depth != nil {
		r.depth.Release()
	}

	r.depth = depth
	r.width = width
	r.height = height

	return nil
}

// Resize reconfigures the surface and depth target. A size with a zero
// dimension is ignored.
func (r *Renderer) Resize(width, height uint32) error {
	if r.state == StateClosed {
		return ErrClosed
	}

	if width == 0 || height == 0 {
		return nil
	}

	r.state = StateResizing
	defer r.ready()

	if err := r.configure(width, height); err != nil {
		return err
	}

	r.camera.Aspect = aspectOf(width, height)

	return nil
}

// Reconfigure applies the current size to the surface again, as needed
// after the surface was lost.
func (r *Renderer) Reconfigure() error {
	return r.Resize(r.width, r.height)
}

// followWindow resizes the surface if the window size changed without a
// resize event reaching the renderer yet.
func (r *Renderer) followWindow() error {
	width, height := r.win.GetSize()
	if width == r.width && height == r.height {
		return nil
	}

	// Resize ignores a minimized window
	return r.Resize(width, height)
}

func (r *Renderer) ready() {
	if r.state != StateClosed {
		r.state = StateReady
	}
}

// Input passes the event to the camera controller and handles the pipeline
// toggle key. Returns true if the event was consumed.
func (r *Renderer) Input(ev glimpse.Event) bool {
	if r.state == StateClosed {
		return false
	}

	if r.controller.ProcessInput(ev) {
		return true
	}

	keyEvent, ok := ev.(glimpse.KeyEvent)
	if !ok || keyEvent.Key != r.opts.ToggleKey {
		return false
	}

	previous := r.variant

	switch r.opts.ToggleMode {
	case ToggleHold:
		if keyEvent.Pressed {
			r.variant = VariantAlternate
		} else {
			r.variant = VariantPrimary
		}

	case ToggleFlip:
		if keyEvent.Pressed {
			r.variant = r.variant.Other()
		}
	}

	if previous != r.variant {
		slog.Info("Switch pipeline", slog.String("variant", r.variant.String()))
	}

	return true
}

// Update moves the camera by one step and queues the new camera uniform.
// The step does not depend on dt.
func (r *Renderer) Update(dt time.Duration) error {
	if r.state == StateClosed {
		return ErrClosed
	}

	r.controller.UpdateCamera(&r.camera)
	r.uniform.UpdateViewProj(r.camera)

	if err := r.cameraBuffer.Write(r.dev, r.uniform); err != nil {
		return fmt.Errorf("write camera uniform: %w", err)
	}

	return nil
}

// Render draws one frame and presents it. Errors acquiring the frame are
// reported as one of the surface errors of package gpu, see HandleFrameError.
func (r *Renderer) Render() error {
	switch r.state {
	case StateClosed:
		return ErrClosed
	case StateReady:
	default:
		return fmt.Errorf("render in state %s", r.state)
	}

	// wgpu does not report the status of the acquired surface texture, the
	// surface must match the window before the frame is acquired
	if err := r.followWindow(); err != nil {
		return fmt.Errorf("follow window size: %w", err)
	}

	if r.depth == nil {
		return fmt.Errorf("no depth target: %w", gpu.ErrSurfaceLost)
	}

	// the variant is fixed for the whole frame
	variant := r.variant

	spec, _ := r.registry.Spec(variant)

	pipeline, err := r.registry.Pipeline(variant)
	if err != nil {
		return err
	}

	frame, err := r.dev.AcquireFrame()
	if err != nil {
		return fmt.Errorf("acquire frame: %w", err)
	}

	if frame.Width() != r.depth.Width() || frame.Height() != r.depth.Height() {
		frame.Release()

		if err := r.Reconfigure(); err != nil {
			return fmt.Errorf("reconfigure outdated surface: %w", err)
		}

		return fmt.Errorf("frame of %dx%d does not match depth target of %dx%d: %w",
			frame.Width(), frame.Height(), r.depth.Width(), r.depth.Height(), gpu.ErrSurfaceOutdated)
	}

	defer frame.Release()

	r.state = StateRendering
	defer r.ready()

	pass := frame.BeginPass(gpu.PassDescriptor{
		Label:           "RenderPass",
		ClearColor:      r.opts.ClearColor.ToWGPU(),
		Depth:           r.depth,
		DepthClearValue: 1.0,
	})

	pass.SetPipeline(pipeline)
	pass.SetBindGroup(materialGroup, r.material.BindGroup())
	pass.SetBindGroup(cameraGroup, r.cameraBindGroup)
	pass.SetVertexBuffer(0, r.model.VertexBuffer())

	instanceCount := uint32(1)
	if spec.Instanced {
		pass.SetVertexBuffer(1, r.instances.Buffer())
		instanceCount = uint32(r.instances.Len())
	}

	pass.SetIndexBuffer(r.model.IndexBuffer(), wgpu.IndexFormatUint16)
	pass.DrawIndexed(r.model.NumIndices(), instanceCount)

	if err := pass.End(); err != nil {
		return fmt.Errorf("end render pass: %w", err)
	}

	if err := frame.Submit(); err != nil {
		return fmt.Errorf("submit frame: %w", err)
	}

	frame.Present()

	return nil
}

// HandleFrameError applies the recovery policy for an error returned by
// Render: a lost surface is reconfigured, transient errors are logged and
// dropped. A fatal error closes the renderer and is returned.
func (r *Renderer) HandleFrameError(err error) error {
	switch gpu.ClassifyFrameError(err) {
	case gpu.FrameOK:
		return nil

	case gpu.FrameRecoverable:
		slog.Warn("Surface lost, reconfiguring", slog.String("err", err.Error()))

		if err := r.Reconfigure(); err != nil {
			return fmt.Errorf("reconfigure lost surface: %w", err)
		}

		return nil

	case gpu.FrameFatal:
		slog.Error("Fatal frame error", slog.String("err", err.Error()))

		r.failed = true
		r.state = StateClosed

		return err

	default:
		slog.Warn("Dropped frame", slog.String("err", err.Error()))
		return nil
	}
}

func (r *Renderer) State() State {
	return r.state
}

func (r *Renderer) ActiveVariant() Variant {
	return r.variant
}

func (r *Renderer) SurfaceFormat() wgpu.TextureFormat {
	return r.format
}

func (r *Renderer) SurfaceSize() (uint32, uint32) {
	return r.width, r.height
}

// DepthSize returns the size of the current depth target.
func (r *Renderer) DepthSize() (uint32, uint32) {
	if r.depth == nil {
		return 0, 0
	}

	return r.depth.Width(), r.depth.Height()
}

// Camera returns a copy of the current camera.
func (r *Renderer) Camera() camera.Descriptor {
	return r.camera
}

// Release frees all gpu resources and the device. After a fatal frame error
// nothing but the device is touched.
func (r *Renderer) Release() {
	if r.dev == nil {
		return
	}

	if !r.failed {
		r.releaseResources()
	}

	r.dev.Release()
	r.dev = nil
	r.state = StateClosed
}

func (r *Renderer) releaseResources() {
	if r.cameraBindGroup != nil {
		r.cameraBindGroup.Release()
	}

	if r.cameraBuffer != nil {
		r.cameraBuffer.Release()
	}

	if r.material != nil {
		r.material.Release()
	}

	if r.instances != nil {
		r.instances.Release()
	}

	if r.model != nil {
		r.model.Release()
	}

	if r.registry != nil {
		r.registry.Release()
	}

	if r.depth != nil {
		r.depth.Release()
	}

	if r.opts.AlternateShader != nil && r.opts.AlternateShader != r.opts.Shader {
		r.opts.AlternateShader.Release()
	}

	if r.opts.Shader != nil {
		r.opts.Shader.Release()
	}
}
