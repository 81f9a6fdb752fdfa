package pulse

import (
	"errors"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/figure/gpu"
)

func (ctx *Context) SurfaceFormats() []wgpu.TextureFormat {
	caps := ctx.surface.GetCapabilities(ctx.adapter)
	return caps.Formats
}

// ConfigureSurface (re)configures the swap chain with vsync enabled.
func (ctx *Context) ConfigureSurface(conf gpu.SurfaceConfiguration) error {
	caps := ctx.surface.GetCapabilities(ctx.adapter)
	if len(caps.AlphaModes) == 0 {
		return errors.New("surface reports no alpha modes")
	}

	ctx.surface.Configure(ctx.adapter, ctx.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      conf.Format,
		Width:       conf.Width,
		Height:      conf.Height,
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
	})

	return nil
}
