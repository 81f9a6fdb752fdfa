package camera

import (
	"github.com/oliverbestmann/figure/glimpse"
)

// Controller orbits a camera around its target while keys are held.
//
// Every call to UpdateCamera moves the eye by a fixed Speed, independent of
// the time passed since the previous call. The camera therefore moves faster
// at higher frame rates.
type Controller struct {
	Speed float32

	forward  bool
	backward bool
	left     bool
	right    bool
}

func NewController(speed float32) *Controller {
	return &Controller{Speed: speed}
}

// ProcessInput records the state of the movement keys. W and arrow up move
// forward, S and arrow down move backward, A/D and arrow left/right strafe.
// Returns true if the event was consumed.
func (c *Controller) ProcessInput(ev glimpse.Event) bool {
	keyEvent, ok := ev.(glimpse.KeyEvent)
	if !ok {
		return false
	}

	switch keyEvent.Key {
	case glimpse.KeyW, glimpse.KeyArrowUp:
		c.forward = keyEvent.Pressed
	case glimpse.KeyA, glimpse.KeyArrowLeft:
		c.left = keyEvent.Pressed
	case glimpse.KeyS, glimpse.KeyArrowDown:
		c.backward = keyEvent.Pressed
	case glimpse.KeyD, glimpse.KeyArrowRight:
		c.right = keyEvent.Pressed
	default:
		return false
	}

	return true
}

// Moving reports if any movement key is held.
func (c *Controller) Moving() bool {
	return c.forward || c.backward || c.left || c.right
}

// UpdateCamera applies one tick of movement to the eye. Target, up vector and
// projection parameters are left untouched.
//
// Forward movement stops once the eye is within Speed of the target.
// Strafing keeps the distance between eye and target. If the eye sits on the
// target, there is no direction to move in and the camera is not changed.
func (c *Controller) UpdateCamera(camera *Descriptor) {
	forward := camera.Target.Sub(camera.Eye)
	forwardMag := forward.Len()
	if forwardMag == 0 {
		return
	}

	forwardNorm := forward.Mul(1 / forwardMag)

	if c.forward && forwardMag > c.Speed {
		camera.Eye = camera.Eye.Add(forwardNorm.Mul(c.Speed))
	}

	if c.backward {
		camera.Eye = camera.Eye.Sub(forwardNorm.Mul(c.Speed))
	}

	right := forwardNorm.Cross(camera.Up)
	if right.Len() == 0 {
		// looking along the up vector, no plane to strafe in
		return
	}

	// distance might have changed by moving forward or backward
	forward = camera.Target.Sub(camera.Eye)
	forwardMag = forward.Len()

	if c.right {
		camera.Eye = camera.Target.Sub(forward.Add(right.Mul(c.Speed)).Normalize().Mul(forwardMag))
	}

	if c.left {
		camera.Eye = camera.Target.Sub(forward.Sub(right.Mul(c.Speed)).Normalize().Mul(forwardMag))
	}
}
