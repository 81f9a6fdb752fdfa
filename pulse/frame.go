package pulse

import (
	"fmt"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/figure/gpu"
)

type Releaser interface {
	Release()
}

// ReleaseGuard releases its delegate unless Keep was called.
type ReleaseGuard struct {
	delegate Releaser
}

func NewReleaseGuard(delegate Releaser) ReleaseGuard {
	return ReleaseGuard{delegate: delegate}
}

func (r *ReleaseGuard) Keep() {
	r.delegate = nil
}

func (r *ReleaseGuard) Release() {
	if r.delegate != nil {
		r.delegate.Release()
		r.delegate = nil
	}
}

// surfaceError maps the error of Surface.GetCurrentTexture to one of the
// errors of package gpu. The binding reports these errors as text only.
// A lost device is never recovered by configuring the surface again.
func surfaceError(err error) error {
	if err == nil {
		return nil
	}

	message := strings.ToLower(err.Error())

	switch {
	case strings.Contains(message, "memory"):
		return fmt.Errorf("%w: %w", gpu.ErrOutOfMemory, err)
	case strings.Contains(message, "device") && strings.Contains(message, "lost"):
		return fmt.Errorf("%w: %w", gpu.ErrDeviceLost, err)
	case strings.Contains(message, "lost"):
		return fmt.Errorf("%w: %w", gpu.ErrSurfaceLost, err)
	case strings.Contains(message, "outdated"):
		return fmt.Errorf("%w: %w", gpu.ErrSurfaceOutdated, err)
	case strings.Contains(message, "timeout"), strings.Contains(message, "timed out"):
		return fmt.Errorf("%w: %w", gpu.ErrSurfaceTimeout, err)
	default:
		return err
	}
}

type Frame struct {
	ctx *Context

	texture *wgpu.Texture
	view    *wgpu.TextureView
	encoder *wgpu.CommandEncoder

	width, height uint32
}

func (ctx *Context) AcquireFrame() (gpu.Frame, error) {
	texture, err := ctx.surface.GetCurrentTexture()
	if err != nil {
		return nil, surfaceError(err)
	}

	textureGuard := NewReleaseGuard(texture)
	defer textureGuard.Release()

	view, err := texture.CreateView(nil)
	if err != nil {
		return nil, fmt.Errorf("create surface view: %w", err)
	}

	viewGuard := NewReleaseGuard(view)
	defer viewGuard.Release()

	encoder, err := ctx.device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{
		Label: "Frame",
	})

	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}

	textureGuard.Keep()
	viewGuard.Keep()

	return &Frame{
		ctx:     ctx,
		texture: texture,
		view:    view,
		encoder: encoder,
		width:   texture.GetWidth(),
		height:  texture.GetHeight(),
	}, nil
}

func (f *Frame) Width() uint32 {
	return f.width
}

func (f *Frame) Height() uint32 {
	return f.height
}

func (f *Frame) BeginPass(desc gpu.PassDescriptor) gpu.Pass {
	passDesc := &wgpu.RenderPassDescriptor{
		Label: desc.Label,
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       f.view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: desc.ClearColor,
			},
		},
	}

	if desc.Depth != nil {
		passDesc.DepthStencilAttachment = &wgpu.RenderPassDepthStencilAttachment{
			View:            desc.Depth.(*Texture).textureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: desc.DepthClearValue,
		}
	}

	return &Pass{pass: f.encoder.BeginRenderPass(passDesc)}
}

// Submit finishes the command encoder and submits the recorded commands.
func (f *Frame) Submit() error {
	buf, err := f.encoder.Finish(&wgpu.CommandBufferDescriptor{Label: "Frame"})
	if err != nil {
		return err
	}

	defer buf.Release()

	f.ctx.queue.Submit(buf)

	return nil
}

func (f *Frame) Present() {
	f.ctx.surface.Present()
}

func (f *Frame) Release() {
	f.encoder.Release()
	f.view.Release()
	f.texture.Release()
}

type Pass struct {
	pass *wgpu.RenderPassEncoder
}

func (p *Pass) SetPipeline(pipeline gpu.RenderPipeline) {
	p.pass.SetPipeline(pipeline.(*RenderPipeline).pipeline)
}

func (p *Pass) SetBindGroup(index uint32, group gpu.BindGroup) {
	p.pass.SetBindGroup(index, group.(*BindGroup).group, nil)
}

func (p *Pass) SetVertexBuffer(slot uint32, buffer gpu.Buffer) {
	p.pass.SetVertexBuffer(slot, buffer.(*Buffer).buffer, 0, wgpu.WholeSize)
}

func (p *Pass) SetIndexBuffer(buffer gpu.Buffer, format wgpu.IndexFormat) {
	p.pass.SetIndexBuffer(buffer.(*Buffer).buffer, format, 0, wgpu.WholeSize)
}

func (p *Pass) DrawIndexed(indexCount, instanceCount uint32) {
	p.pass.DrawIndexed(indexCount, instanceCount, 0, 0, 0)
}

// End ends and releases the pass.
func (p *Pass) End() error {
	passGuard := NewReleaseGuard(p.pass)
	defer passGuard.Release()

	return p.pass.End()
}
