package desktop

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/oliverbestmann/figure/glimpse"
)

var glfwToKey = map[glfw.Key]glimpse.Key{
	glfw.KeySpace:        glimpse.KeySpace,
	glfw.KeyEscape:       glimpse.KeyEscape,
	glfw.KeyEnter:        glimpse.KeyEnter,
	glfw.KeyTab:          glimpse.KeyTab,
	glfw.KeyBackspace:    glimpse.KeyBackspace,
	glfw.KeyUp:           glimpse.KeyArrowUp,
	glfw.KeyDown:         glimpse.KeyArrowDown,
	glfw.KeyLeft:         glimpse.KeyArrowLeft,
	glfw.KeyRight:        glimpse.KeyArrowRight,
	glfw.KeyLeftShift:    glimpse.KeyShiftLeft,
	glfw.KeyRightShift:   glimpse.KeyShiftRight,
	glfw.KeyLeftControl:  glimpse.KeyControlLeft,
	glfw.KeyRightControl: glimpse.KeyControlRight,
	glfw.KeyA:            glimpse.KeyA,
	glfw.KeyB:            glimpse.KeyB,
	glfw.KeyC:            glimpse.KeyC,
	glfw.KeyD:            glimpse.KeyD,
	glfw.KeyE:            glimpse.KeyE,
	glfw.KeyF:            glimpse.KeyF,
	glfw.KeyG:            glimpse.KeyG,
	glfw.KeyH:            glimpse.KeyH,
	glfw.KeyI:            glimpse.KeyI,
	glfw.KeyJ:            glimpse.KeyJ,
	glfw.KeyK:            glimpse.KeyK,
	glfw.KeyL:            glimpse.KeyL,
	glfw.KeyM:            glimpse.KeyM,
	glfw.KeyN:            glimpse.KeyN,
	glfw.KeyO:            glimpse.KeyO,
	glfw.KeyP:            glimpse.KeyP,
	glfw.KeyQ:            glimpse.KeyQ,
	glfw.KeyR:            glimpse.KeyR,
	glfw.KeyS:            glimpse.KeyS,
	glfw.KeyT:            glimpse.KeyT,
	glfw.KeyU:            glimpse.KeyU,
	glfw.KeyV:            glimpse.KeyV,
	glfw.KeyW:            glimpse.KeyW,
	glfw.KeyX:            glimpse.KeyX,
	glfw.KeyY:            glimpse.KeyY,
	glfw.KeyZ:            glimpse.KeyZ,
	glfw.Key0:            glimpse.KeyDigit0,
	glfw.Key1:            glimpse.KeyDigit1,
	glfw.Key2:            glimpse.KeyDigit2,
	glfw.Key3:            glimpse.KeyDigit3,
	glfw.Key4:            glimpse.KeyDigit4,
	glfw.Key5:            glimpse.KeyDigit5,
	glfw.Key6:            glimpse.KeyDigit6,
	glfw.Key7:            glimpse.KeyDigit7,
	glfw.Key8:            glimpse.KeyDigit8,
	glfw.Key9:            glimpse.KeyDigit9,
}
