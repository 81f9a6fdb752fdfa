// Package desktop implements glimpse.Window using glfw.
package desktop

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/oliverbestmann/figure/glimpse"
)

func init() {
	// glfw must only be used from the main thread
	runtime.LockOSThread()
}

type glfwWindow struct {
	win    *glfw.Window
	events []glimpse.Event
}

// NewWindow opens a resizable window without any client api attached.
// Call Terminate after the renderer using the window was released.
func NewWindow(width, height int, title string) (glimpse.Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("initialize glfw: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	window, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}

	w := &glfwWindow{win: window}
	w.configureCallbacks()

	return w, nil
}

func (g *glfwWindow) ShouldClose() bool {
	return g.win.ShouldClose()
}

func (g *glfwWindow) GetSize() (uint32, uint32) {
	width, height := g.win.GetFramebufferSize()
	return uint32(width), uint32(height)
}

func (g *glfwWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(g.win)
}

func (g *glfwWindow) PollEvents() []glimpse.Event {
	g.events = g.events[:0]
	glfw.PollEvents()
	return g.events
}

func (g *glfwWindow) Terminate() {
	g.win.Destroy()
	glfw.Terminate()
}

func (g *glfwWindow) push(ev glimpse.Event) {
	g.events = append(g.events, ev)
}

func (g *glfwWindow) configureCallbacks() {
	g.win.SetKeyCallback(func(_win *glfw.Window, glfwKey glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Repeat {
			return
		}

		key, ok := keyOf(glfwKey, scancode)
		if !ok {
			return
		}

		g.push(glimpse.KeyEvent{Key: key, Pressed: action == glfw.Press})
	})

	g.win.SetMouseButtonCallback(func(_win *glfw.Window, btn glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		g.push(glimpse.MouseButtonEvent{
			Button:  glimpse.MouseButton(btn),
			Pressed: action == glfw.Press,
		})
	})

	g.win.SetCursorPosCallback(func(_win *glfw.Window, xpos float64, ypos float64) {
		g.push(glimpse.CursorEvent{X: float32(xpos), Y: float32(ypos)})
	})

	g.win.SetFramebufferSizeCallback(func(_win *glfw.Window, width int, height int) {
		g.push(glimpse.ResizeEvent{Width: uint32(width), Height: uint32(height)})
	})

	g.win.SetCloseCallback(func(_win *glfw.Window) {
		g.push(glimpse.CloseEvent{})
	})
}

func keyOf(glfwKey glfw.Key, scancode int) (key glimpse.Key, ok bool) {
	key, ok = glfwToKey[glfwKey]
	if !ok {
		slog.Debug(
			"Unknown key code",
			slog.String("key", glfw.GetKeyName(glfwKey, scancode)),
			slog.Int("code", int(glfwKey)),
		)
	}

	return
}
