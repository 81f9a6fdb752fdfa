package orion

import (
	"errors"
	"fmt"

	"github.com/oliverbestmann/figure/glimpse/desktop"
	"github.com/oliverbestmann/figure/pulse"
	"github.com/oliverbestmann/figure/render"
)

type RunOptions struct {
	// wgsl source of the primary pipeline. This is the only field that is required
	Shader string

	// wgsl source of the alternate pipeline, defaults to Shader
	AlternateShader string

	Config Config
}

// Run opens a window and renders the configured scene until the window is closed.
func Run(opts RunOptions) error {
	if opts.Shader == "" {
		return errors.New("Shader must not be empty")
	}

	width, height := opts.Config.windowSize()

	// create a new window
	win, err := desktop.NewWindow(width, height, opts.Config.windowTitle())
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}

	// the surface must be released before the window goes away
	defer win.Terminate()

	// initialize the webgpu device
	ctx, err := pulse.New(win.SurfaceDescriptor())
	if err != nil {
		return fmt.Errorf("initializing wgpu: %w", err)
	}

	renderOpts, err := renderOptions(ctx, opts)
	if err != nil {
		ctx.Release()
		return err
	}

	// the renderer takes ownership of the context
	renderer, err := render.New(win, ctx, renderOpts)
	if err != nil {
		return fmt.Errorf("initialize renderer: %w", err)
	}

	defer renderer.Release()

	loop := &Loop{
		Events:   win,
		Renderer: renderer,
	}

	return loop.Run()
}

func renderOptions(ctx *pulse.Context, opts RunOptions) (render.Options, error) {
	var renderOpts render.Options

	if err := opts.Config.Apply(&renderOpts); err != nil {
		return render.Options{}, fmt.Errorf("apply config: %w", err)
	}

	shader, err := ctx.CreateShaderModule("Shader", opts.Shader)
	if err != nil {
		return render.Options{}, err
	}

	renderOpts.Shader = shader

	if opts.AlternateShader != "" {
		alternate, err := ctx.CreateShaderModule("AlternateShader", opts.AlternateShader)
		if err != nil {
			shader.Release()
			return render.Options{}, err
		}

		renderOpts.AlternateShader = alternate
	}

	return renderOpts, nil
}
