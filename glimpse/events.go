package glimpse

// Event is one of KeyEvent, MouseButtonEvent, CursorEvent, ResizeEvent or CloseEvent.
type Event interface {
	event()
}

type KeyEvent struct {
	Key     Key
	Pressed bool
}

type MouseButton uint32

type MouseButtonEvent struct {
	Button  MouseButton
	Pressed bool
}

type CursorEvent struct {
	X, Y float32
}

// ResizeEvent carries the new physical size of the drawable area.
type ResizeEvent struct {
	Width, Height uint32
}

type CloseEvent struct{}

func (KeyEvent) event()         {}
func (MouseButtonEvent) event() {}
func (CursorEvent) event()      {}
func (ResizeEvent) event()      {}
func (CloseEvent) event()       {}
