package glimpse

import "strings"

//go:generate go tool stringer -type=Key -trimprefix=Key

// Key identifies a physical key, independent of the keyboard layout.
type Key uint32

const (
	KeyUnknown Key = iota
	KeySpace
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyArrowUp
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
	KeyShiftLeft
	KeyShiftRight
	KeyControlLeft
	KeyControlRight
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	KeyDigit0
	KeyDigit1
	KeyDigit2
	KeyDigit3
	KeyDigit4
	KeyDigit5
	KeyDigit6
	KeyDigit7
	KeyDigit8
	KeyDigit9
)

// ParseKey looks up a key by its name, ignoring case. Names are the
// constant names without the Key prefix, e.g. "Space" or "Digit1".
func ParseKey(name string) (Key, bool) {
	for key := KeyUnknown + 1; key <= KeyDigit9; key++ {
		if strings.EqualFold(key.String(), name) {
			return key, true
		}
	}

	return KeyUnknown, false
}
