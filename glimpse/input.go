package glimpse

type KeysState struct {
	// the keys that are currently marked as "pressed"
	Pressed map[Key]bool

	// keys that where just pressed after the last call to NextTick()
	JustPressed map[Key]bool

	// keys that were just released after the last call to NextTick()
	JustReleased map[Key]bool
}

func (k *KeysState) press(key Key) {
	setTrue(&k.Pressed, key)
	setTrue(&k.JustPressed, key)
}

func (k *KeysState) release(key Key) {
	setFalse(&k.Pressed, key)
	setTrue(&k.JustReleased, key)
}

func (k *KeysState) nextTick() {
	clear(k.JustPressed)
	clear(k.JustReleased)
}

// InputState accumulates events into the current key and window state.
type InputState struct {
	Keys KeysState

	// Size is the most recent size reported by a ResizeEvent
	Size [2]uint32

	CloseRequested bool
}

// Apply updates the state with the given event.
func (s *InputState) Apply(ev Event) {
	switch ev := ev.(type) {
	case KeyEvent:
		if ev.Pressed {
			s.Keys.press(ev.Key)
		} else {
			s.Keys.release(ev.Key)
		}

	case ResizeEvent:
		s.Size = [2]uint32{ev.Width, ev.Height}

	case CloseEvent:
		s.CloseRequested = true
	}
}

// NextTick forgets everything that was "just" pressed or released.
func (s *InputState) NextTick() {
	s.Keys.nextTick()
}

func setTrue[K comparable](m *map[K]bool, key K) {
	if *m == nil {
		*m = map[K]bool{}
	}

	(*m)[key] = true
}

func setFalse[K comparable](m *map[K]bool, key K) {
	if *m == nil {
		*m = map[K]bool{}
	}

	(*m)[key] = false
}
