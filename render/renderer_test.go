package render

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/figure/glimpse"
	"github.com/oliverbestmann/figure/gpu"
	"github.com/oliverbestmann/figure/gpu/gputest"
	"github.com/oliverbestmann/figure/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testWindow struct {
	width, height uint32
}

func (w *testWindow) GetSize() (uint32, uint32) {
	return w.width, w.height
}

// resizeWindow changes the size of the window the renderer presents to.
func resizeWindow(r *Renderer, width, height uint32) {
	win := r.win.(*testWindow)
	win.width = width
	win.height = height
}

func newRenderer(t *testing.T, opts Options) (*Renderer, *gputest.Device) {
	t.Helper()

	dev := gputest.New()

	shader, err := dev.CreateShaderModule("Shader", "")
	require.NoError(t, err)

	opts.Shader = shader

	r, err := New(&testWindow{640, 480}, dev, opts)
	require.NoError(t, err)

	return r, dev
}

func lastDraw(t *testing.T, dev *gputest.Device) gputest.Draw {
	t.Helper()

	frame := dev.LastFrame()
	require.NotNil(t, frame)
	require.Len(t, frame.Passes, 1)
	require.Len(t, frame.Passes[0].Draws, 1)

	return frame.Passes[0].Draws[0]
}

func TestChooseSurfaceFormat(t *testing.T) {
	_, ok := ChooseSurfaceFormat(nil)
	assert.False(t, ok)

	format, ok := ChooseSurfaceFormat([]wgpu.TextureFormat{wgpu.TextureFormatBGRA8Unorm, wgpu.TextureFormatRGBA8UnormSrgb})
	assert.True(t, ok)
	assert.Equal(t, wgpu.TextureFormatRGBA8UnormSrgb, format)

	format, ok = ChooseSurfaceFormat([]wgpu.TextureFormat{wgpu.TextureFormatRGBA16Float, wgpu.TextureFormatBGRA8Unorm})
	assert.True(t, ok)
	assert.Equal(t, wgpu.TextureFormatRGBA16Float, format)
}

func TestNewRenderer(t *testing.T) {
	r, dev := newRenderer(t, Options{})

	assert.Equal(t, StateReady, r.State())
	assert.Equal(t, VariantPrimary, r.ActiveVariant())
	assert.Equal(t, wgpu.TextureFormatBGRA8UnormSrgb, r.SurfaceFormat())

	conf, ok := dev.LastConfiguration()
	require.True(t, ok)
	assert.Equal(t, gpu.SurfaceConfiguration{Format: wgpu.TextureFormatBGRA8UnormSrgb, Width: 640, Height: 480}, conf)

	width, height := r.DepthSize()
	assert.EqualValues(t, 640, width)
	assert.EqualValues(t, 480, height)

	// both variants are compiled up front
	require.Len(t, dev.Pipelines, 2)
	assert.Equal(t, "PrimaryPipeline", dev.Pipelines[0].Label())
	assert.Equal(t, "AlternatePipeline", dev.Pipelines[1].Label())

	assert.InDelta(t, 640.0/480.0, r.Camera().Aspect, 1e-6)

	instances := dev.Buffer("Instances")
	require.NotNil(t, instances)
	assert.EqualValues(t, 100*64, instances.Size())
}

func TestNewRendererFailures(t *testing.T) {
	t.Run("no shader", func(t *testing.T) {
		_, err := New(&testWindow{640, 480}, gputest.New(), Options{})
		assert.Error(t, err)
	})

	t.Run("no surface format", func(t *testing.T) {
		dev := gputest.New()
		dev.Formats = nil

		shader, _ := dev.CreateShaderModule("Shader", "")

		r, err := New(&testWindow{640, 480}, dev, Options{Shader: shader})
		assert.ErrorIs(t, err, ErrNoSurfaceFormat)
		assert.Nil(t, r)
		assert.True(t, dev.Released)
	})

	t.Run("empty mesh", func(t *testing.T) {
		dev := gputest.New()
		shader, _ := dev.CreateShaderModule("Shader", "")

		_, err := New(&testWindow{640, 480}, dev, Options{
			Shader: shader,
			Mesh:   mesh.New[mesh.TexturedVertex](),
		})

		assert.ErrorIs(t, err, ErrEmptyMesh)
		assert.Empty(t, dev.Live("DepthTexture"))

		for _, pipeline := range dev.Pipelines {
			assert.True(t, pipeline.Released)
		}
	})
}

func TestNewRendererWithMinimizedWindow(t *testing.T) {
	dev := gputest.New()
	shader, _ := dev.CreateShaderModule("Shader", "")

	r, err := New(&testWindow{0, 0}, dev, Options{Shader: shader})
	require.NoError(t, err)

	width, height := r.SurfaceSize()
	assert.EqualValues(t, 1, width)
	assert.EqualValues(t, 1, height)
}

func TestRenderFrame(t *testing.T) {
	r, dev := newRenderer(t, Options{})

	require.NoError(t, r.Render())
	assert.Equal(t, StateReady, r.State())

	frame := dev.LastFrame()
	assert.True(t, frame.Submitted)
	assert.True(t, frame.Presented)
	assert.True(t, frame.Released)

	pass := frame.Passes[0]
	assert.True(t, pass.Ended)
	assert.Equal(t, DefaultClearColor.ToWGPU(), pass.Desc.ClearColor)
	assert.EqualValues(t, 1.0, pass.Desc.DepthClearValue)

	draw := lastDraw(t, dev)
	assert.Equal(t, "PrimaryPipeline", draw.Pipeline.Label())
	assert.Equal(t, "MaterialBindGroup", draw.BindGroups[materialGroup].Label())
	assert.Equal(t, "CameraBindGroup", draw.BindGroups[cameraGroup].Label())
	assert.Equal(t, "ModelVertices", draw.VertexBuffers[0].Label())
	assert.Equal(t, "Instances", draw.VertexBuffers[1].Label())
	assert.Equal(t, "ModelIndices", draw.IndexBuffer.Label())
	assert.Equal(t, wgpu.IndexFormatUint16, draw.IndexFormat)
	assert.EqualValues(t, 36, draw.IndexCount)
	assert.EqualValues(t, 100, draw.InstanceCount)
	assert.EqualValues(t, 640, draw.DepthWidth)
	assert.EqualValues(t, 480, draw.DepthHeight)
}

func TestResize(t *testing.T) {
	r, dev := newRenderer(t, Options{})

	resizeWindow(r, 800, 600)
	require.NoError(t, r.Resize(800, 600))
	assert.Equal(t, StateReady, r.State())

	width, height := r.SurfaceSize()
	assert.EqualValues(t, 800, width)
	assert.EqualValues(t, 600, height)
	assert.InDelta(t, 800.0/600.0, r.Camera().Aspect, 1e-6)

	// the previous depth texture is gone
	live := dev.Live("DepthTexture")
	require.Len(t, live, 1)
	assert.EqualValues(t, 800, live[0].Width())

	require.NoError(t, r.Render())

	draw := lastDraw(t, dev)
	assert.EqualValues(t, 800, draw.DepthWidth)
	assert.EqualValues(t, 600, draw.DepthHeight)
}

func TestRenderFollowsWindowSize(t *testing.T) {
	r, dev := newRenderer(t, Options{})

	// no resize event, only the window changed
	resizeWindow(r, 1024, 768)
	require.NoError(t, r.Render())

	conf, _ := dev.LastConfiguration()
	assert.EqualValues(t, 1024, conf.Width)
	assert.EqualValues(t, 768, conf.Height)

	draw := lastDraw(t, dev)
	assert.EqualValues(t, 1024, draw.DepthWidth)
	assert.EqualValues(t, 768, draw.DepthHeight)
	assert.True(t, dev.LastFrame().Presented)
}

func TestRenderWithMinimizedWindow(t *testing.T) {
	r, dev := newRenderer(t, Options{})
	configurations := len(dev.Configurations)

	resizeWindow(r, 0, 0)
	require.NoError(t, r.Render())

	assert.Len(t, dev.Configurations, configurations)

	draw := lastDraw(t, dev)
	assert.EqualValues(t, 640, draw.DepthWidth)
}

func TestResizeKeepsPreviousTargetsOnError(t *testing.T) {
	r, dev := newRenderer(t, Options{})
	configurations := len(dev.Configurations)

	depthErr := errors.New("out of texture memory")
	dev.TextureErrors = map[string]error{"DepthTexture": depthErr}

	resizeWindow(r, 800, 600)
	assert.ErrorIs(t, r.Resize(800, 600), depthErr)
	assert.Equal(t, StateReady, r.State())

	// the surface was not touched
	assert.Len(t, dev.Configurations, configurations)

	width, height := r.SurfaceSize()
	assert.EqualValues(t, 640, width)
	assert.EqualValues(t, 480, height)

	width, height = r.DepthSize()
	assert.EqualValues(t, 640, width)
	assert.EqualValues(t, 480, height)

	live := dev.Live("DepthTexture")
	require.Len(t, live, 1)
	assert.EqualValues(t, 640, live[0].Width())

	// rendering tries to follow the window again and reports the failure
	frames := len(dev.Frames)
	assert.ErrorIs(t, r.Render(), depthErr)
	assert.Len(t, dev.Frames, frames)

	dev.TextureErrors = nil

	require.NoError(t, r.Render())
	draw := lastDraw(t, dev)
	assert.EqualValues(t, 800, draw.DepthWidth)
	assert.EqualValues(t, 600, draw.DepthHeight)
}

func TestRenderWithoutDepthTarget(t *testing.T) {
	r, dev := newRenderer(t, Options{})

	r.depth.Release()
	r.depth = nil

	err := r.Render()
	require.ErrorIs(t, err, gpu.ErrSurfaceLost)
	assert.Empty(t, dev.Frames)

	require.NoError(t, r.HandleFrameError(err))

	width, height := r.DepthSize()
	assert.EqualValues(t, 640, width)
	assert.EqualValues(t, 480, height)

	require.NoError(t, r.Render())
	assert.True(t, dev.LastFrame().Presented)
}

func TestResizeToZeroIsIgnored(t *testing.T) {
	r, dev := newRenderer(t, Options{})
	configurations := len(dev.Configurations)

	require.NoError(t, r.Resize(0, 480))
	require.NoError(t, r.Resize(640, 0))

	assert.Len(t, dev.Configurations, configurations)

	width, height := r.SurfaceSize()
	assert.EqualValues(t, 640, width)
	assert.EqualValues(t, 480, height)
}

func TestToggleHold(t *testing.T) {
	r, dev := newRenderer(t, Options{})

	require.NoError(t, r.Render())
	primary := lastDraw(t, dev)

	assert.True(t, r.Input(glimpse.KeyEvent{Key: glimpse.KeySpace, Pressed: true}))
	assert.Equal(t, VariantAlternate, r.ActiveVariant())

	require.NoError(t, r.Render())
	alternate := lastDraw(t, dev)

	assert.Equal(t, "AlternatePipeline", alternate.Pipeline.Label())
	assert.NotSame(t, primary.Pipeline, alternate.Pipeline)

	// everything but the pipeline is kept
	assert.Equal(t, primary.BindGroups, alternate.BindGroups)
	assert.Equal(t, primary.VertexBuffers, alternate.VertexBuffers)
	assert.Same(t, primary.IndexBuffer, alternate.IndexBuffer)
	assert.Equal(t, primary.IndexCount, alternate.IndexCount)
	assert.Equal(t, primary.InstanceCount, alternate.InstanceCount)

	assert.True(t, r.Input(glimpse.KeyEvent{Key: glimpse.KeySpace, Pressed: false}))
	assert.Equal(t, VariantPrimary, r.ActiveVariant())
}

func TestToggleFlip(t *testing.T) {
	r, _ := newRenderer(t, Options{ToggleMode: ToggleFlip, ToggleKey: glimpse.KeyTab})

	assert.False(t, r.Input(glimpse.KeyEvent{Key: glimpse.KeySpace, Pressed: true}))
	assert.Equal(t, VariantPrimary, r.ActiveVariant())

	r.Input(glimpse.KeyEvent{Key: glimpse.KeyTab, Pressed: true})
	r.Input(glimpse.KeyEvent{Key: glimpse.KeyTab, Pressed: false})
	assert.Equal(t, VariantAlternate, r.ActiveVariant())

	r.Input(glimpse.KeyEvent{Key: glimpse.KeyTab, Pressed: true})
	assert.Equal(t, VariantPrimary, r.ActiveVariant())
}

func TestSingleAlternate(t *testing.T) {
	r, dev := newRenderer(t, Options{SingleAlternate: true})

	r.Input(glimpse.KeyEvent{Key: glimpse.KeySpace, Pressed: true})
	require.NoError(t, r.Render())

	draw := lastDraw(t, dev)
	assert.EqualValues(t, 1, draw.InstanceCount)
	assert.NotContains(t, draw.VertexBuffers, uint32(1))
	assert.Len(t, draw.Pipeline.Desc.Buffers, 1)
}

func TestUpdateWritesCameraBeforeSubmit(t *testing.T) {
	r, dev := newRenderer(t, Options{})

	uniform := dev.Buffer("CameraUniform")
	require.NotNil(t, uniform)
	before := slices.Clone(uniform.Contents)

	distance := r.Camera().Distance()

	r.Input(glimpse.KeyEvent{Key: glimpse.KeyW, Pressed: true})
	require.NoError(t, r.Update(16*time.Millisecond))
	require.NoError(t, r.Render())

	assert.Less(t, r.Camera().Distance(), distance)
	assert.NotEqual(t, before, uniform.Contents)

	write := slices.Index(dev.Log, "WriteBuffer CameraUniform")
	submit := slices.Index(dev.Log, "Submit")
	require.NotEqual(t, -1, write)
	require.NotEqual(t, -1, submit)
	assert.Less(t, write, submit)
}

func TestRenderRecoversLostSurface(t *testing.T) {
	r, dev := newRenderer(t, Options{})
	configurations := len(dev.Configurations)

	dev.FrameErrors = []error{gpu.ErrSurfaceLost}

	err := r.Render()
	require.ErrorIs(t, err, gpu.ErrSurfaceLost)
	require.NoError(t, r.HandleFrameError(err))

	require.Len(t, dev.Configurations, configurations+1)
	conf, _ := dev.LastConfiguration()
	assert.EqualValues(t, 640, conf.Width)
	assert.EqualValues(t, 480, conf.Height)

	require.NoError(t, r.Render())
	assert.True(t, dev.LastFrame().Presented)
}

func TestRenderSkipsTransientErrors(t *testing.T) {
	r, dev := newRenderer(t, Options{})
	configurations := len(dev.Configurations)

	for _, frameErr := range []error{gpu.ErrSurfaceTimeout, gpu.ErrSurfaceOutdated, errors.New("unknown")} {
		dev.FrameErrors = []error{frameErr}

		err := r.Render()
		require.ErrorIs(t, err, frameErr)
		assert.NoError(t, r.HandleFrameError(err))
	}

	assert.Len(t, dev.Configurations, configurations)
	assert.Empty(t, dev.Frames)
	assert.Equal(t, StateReady, r.State())
}

func TestRenderOutOfMemoryIsFatal(t *testing.T) {
	r, dev := newRenderer(t, Options{})

	dev.FrameErrors = []error{gpu.ErrOutOfMemory}

	err := r.Render()
	require.ErrorIs(t, err, gpu.ErrOutOfMemory)
	assert.ErrorIs(t, r.HandleFrameError(err), gpu.ErrOutOfMemory)

	assert.Equal(t, StateClosed, r.State())
	assert.ErrorIs(t, r.Render(), ErrClosed)
	assert.ErrorIs(t, r.Resize(10, 10), ErrClosed)
	assert.ErrorIs(t, r.Update(time.Millisecond), ErrClosed)

	r.Release()
	assert.True(t, dev.Released)

	// nothing but the device is released after a fatal error
	assert.False(t, dev.Buffer("Instances").Released)
}

func TestRenderDeviceLostIsFatal(t *testing.T) {
	r, dev := newRenderer(t, Options{})
	configurations := len(dev.Configurations)

	dev.FrameErrors = []error{gpu.ErrDeviceLost}

	err := r.Render()
	assert.ErrorIs(t, r.HandleFrameError(err), gpu.ErrDeviceLost)

	// no attempt to configure the surface of a lost device
	assert.Len(t, dev.Configurations, configurations)
	assert.Equal(t, StateClosed, r.State())
}

func TestRenderRejectsMismatchedDepth(t *testing.T) {
	r, dev := newRenderer(t, Options{})

	// frames of the fake take their size from the last configuration
	dev.Configurations = append(dev.Configurations, gpu.SurfaceConfiguration{Width: 10, Height: 10})

	configurations := len(dev.Configurations)

	err := r.Render()
	assert.ErrorIs(t, err, gpu.ErrSurfaceOutdated)
	assert.Equal(t, gpu.FrameTransient, gpu.ClassifyFrameError(err))

	frame := dev.LastFrame()
	assert.Empty(t, frame.Passes)
	assert.True(t, frame.Released)

	// the surface was configured again at the size of the depth target
	require.Len(t, dev.Configurations, configurations+1)
	conf, _ := dev.LastConfiguration()
	assert.EqualValues(t, 640, conf.Width)
	assert.EqualValues(t, 480, conf.Height)

	require.NoError(t, r.HandleFrameError(err))
	require.NoError(t, r.Render())
	assert.True(t, dev.LastFrame().Presented)
}

func TestRelease(t *testing.T) {
	r, dev := newRenderer(t, Options{})
	require.NoError(t, r.Render())

	r.Release()
	assert.Equal(t, StateClosed, r.State())
	assert.True(t, dev.Released)

	for _, buf := range dev.Buffers {
		assert.True(t, buf.Released, buf.Label())
	}

	for _, tex := range dev.Textures {
		assert.True(t, tex.Released, tex.Label())
	}

	for _, group := range dev.BindGroups {
		assert.True(t, group.Released, group.Label())
	}

	for _, pipeline := range dev.Pipelines {
		assert.True(t, pipeline.Released, pipeline.Label())
	}

	// a second release is a noop
	r.Release()
	assert.Equal(t, 1, countOf(dev.Log, "Release"))
}

func countOf(lines []string, line string) int {
	var count int
	for _, l := range lines {
		if l == line {
			count++
		}
	}

	return count
}
