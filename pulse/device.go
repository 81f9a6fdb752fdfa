// Package pulse implements gpu.Device on top of webgpu.
package pulse

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/oliverbestmann/figure/gpu"
)

func init() {
	runtime.LockOSThread()
}

// configureLogging applies WGPU_LOG_LEVEL. It runs when the first Context is
// created, so the variable may come from a .env file loaded in main.
func configureLogging() {
	switch strings.ToUpper(os.Getenv("WGPU_LOG_LEVEL")) {
	case "OFF":
		wgpu.SetLogLevel(wgpu.LogLevelOff)
	case "ERROR":
		wgpu.SetLogLevel(wgpu.LogLevelError)
	case "WARN":
		wgpu.SetLogLevel(wgpu.LogLevelWarn)
	case "INFO":
		wgpu.SetLogLevel(wgpu.LogLevelInfo)
	case "DEBUG":
		wgpu.SetLogLevel(wgpu.LogLevelDebug)
	case "TRACE":
		wgpu.SetLogLevel(wgpu.LogLevelTrace)
	}
}

var _ gpu.Device = (*Context)(nil)

// Context encapsulates the low level state of the webgpu context,
// this includes the device, the surface and the active adapter
type Context struct {
	device  *wgpu.Device
	queue   *wgpu.Queue
	surface *wgpu.Surface
	adapter *wgpu.Adapter

	samplers *lru.Cache[wgpu.SamplerDescriptor, *Sampler]
}

// New requests an adapter and a device able to present to the surface
// described by sd.
func New(sd *wgpu.SurfaceDescriptor) (ctx *Context, err error) {
	defer func() {
		if err != nil && ctx != nil {
			ctx.Release()
			ctx = nil
		}
	}()

	configureLogging()

	ctx = &Context{}

	ctx.samplers, _ = lru.NewWithEvict[wgpu.SamplerDescriptor, *Sampler](16, releaseSamplerOnEviction)

	// create the webgpu instance
	instance := wgpu.CreateInstance(nil)
	defer instance.Release()

	// create a surface based on the window
	ctx.surface = instance.CreateSurface(sd)

	// create an adapter that can render to the surface
	ctx.adapter, err = instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: os.Getenv("WGPU_FORCE_FALLBACK_ADAPTER") == "1",
		CompatibleSurface:    ctx.surface,
	})

	if err != nil {
		return ctx, fmt.Errorf("%w: %w", gpu.ErrNoAdapter, err)
	}

	if ctx.adapter == nil {
		return ctx, gpu.ErrNoAdapter
	}

	// get a device with the default settings
	ctx.device, err = ctx.adapter.RequestDevice(nil)
	if err != nil {
		return ctx, fmt.Errorf("request device: %w", err)
	}

	ctx.queue = ctx.device.GetQueue()

	slog.Info("Available surface formats", slog.Any("formats", ctx.SurfaceFormats()))

	return ctx, nil
}

func (ctx *Context) Release() {
	if ctx.samplers != nil {
		ctx.samplers.Purge()
	}

	if ctx.queue != nil {
		ctx.queue.Release()
		ctx.queue = nil
	}

	if ctx.device != nil {
		ctx.device.Release()
		ctx.device = nil
	}

	if ctx.adapter != nil {
		ctx.adapter.Release()
		ctx.adapter = nil
	}

	if ctx.surface != nil {
		ctx.surface.Release()
		ctx.surface = nil
	}
}
