package orion

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/oliverbestmann/figure/glimpse"
)

// EventSource is the part of a glimpse.Window the loop reads from.
type EventSource interface {
	PollEvents() []glimpse.Event
	ShouldClose() bool
}

// FrameRenderer is implemented by *render.Renderer.
type FrameRenderer interface {
	Resize(width, height uint32) error
	Input(ev glimpse.Event) bool
	Update(dt time.Duration) error
	Render() error
	HandleFrameError(err error) error
}

type Loop struct {
	Events   EventSource
	Renderer FrameRenderer

	Input glimpse.InputState
	Times FrameTimes
}

// Run executes frames until the window is closed, escape is pressed or
// a frame fails fatally.
func (l *Loop) Run() error {
	for {
		done, err := l.loopOnce()
		if err != nil {
			return err
		}

		if done {
			slog.Info("Exit main loop", slog.Uint64("frames", l.Times.FrameCount))
			return nil
		}
	}
}

func (l *Loop) loopOnce() (done bool, err error) {
	defer l.Input.NextTick()

	size := l.Input.Size

	for _, ev := range l.Events.PollEvents() {
		l.Input.Apply(ev)

		switch ev.(type) {
		case glimpse.ResizeEvent, glimpse.CloseEvent:
			// tracked by the input state
		default:
			l.Renderer.Input(ev)
		}
	}

	if l.Input.CloseRequested || l.Input.Keys.JustPressed[glimpse.KeyEscape] || l.Events.ShouldClose() {
		return true, nil
	}

	// only the latest size of a batch of resize events is applied
	if l.Input.Size != size {
		width, height := l.Input.Size[0], l.Input.Size[1]

		slog.Debug("Resize surface",
			slog.Int("width", int(width)),
			slog.Int("height", int(height)),
		)

		if err := l.Renderer.Resize(width, height); err != nil {
			return false, fmt.Errorf("resize surface: %w", err)
		}
	}

	if l.Times.Tick() {
		slog.Debug("Frame times",
			slog.Float64("fps", l.Times.FPS()),
			slog.Duration("max", l.Times.MaxDuration),
		)
	}

	if err := l.Renderer.Update(l.Times.Delta); err != nil {
		return false, fmt.Errorf("update: %w", err)
	}

	if err := l.Renderer.HandleFrameError(l.Renderer.Render()); err != nil {
		return false, fmt.Errorf("render: %w", err)
	}

	return false, nil
}
