package glimpse

import "github.com/cogentcore/webgpu/wgpu"

// Window is the platform window the renderer presents to. The surface created
// from SurfaceDescriptor is only valid for as long as the window lives, so a
// window must be terminated only after everything rendering to it was released.
type Window interface {
	// GetSize returns the physical size of the drawable area in pixels.
	GetSize() (uint32, uint32)

	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// PollEvents pumps the os event queue and returns all events
	// that arrived since the previous call, oldest first.
	PollEvents() []Event

	ShouldClose() bool
	Terminate()
}
