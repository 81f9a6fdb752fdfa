package camera

import (
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oliverbestmann/figure/glimpse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func press(c *Controller, key glimpse.Key) bool {
	return c.ProcessInput(glimpse.KeyEvent{Key: key, Pressed: true})
}

func release(c *Controller, key glimpse.Key) bool {
	return c.ProcessInput(glimpse.KeyEvent{Key: key, Pressed: false})
}

func TestProcessInput(t *testing.T) {
	c := NewController(0.2)

	for _, key := range []glimpse.Key{
		glimpse.KeyW, glimpse.KeyA, glimpse.KeyS, glimpse.KeyD,
		glimpse.KeyArrowUp, glimpse.KeyArrowLeft, glimpse.KeyArrowDown, glimpse.KeyArrowRight,
	} {
		assert.True(t, press(c, key), "key %s", key)
		assert.True(t, c.Moving())
		assert.True(t, release(c, key), "key %s", key)
		assert.False(t, c.Moving())
	}

	assert.False(t, press(c, glimpse.KeySpace))
	assert.False(t, c.ProcessInput(glimpse.CursorEvent{X: 1, Y: 2}))
	assert.False(t, c.ProcessInput(glimpse.ResizeEvent{Width: 1, Height: 1}))
}

func TestForwardStopsBeforeTarget(t *testing.T) {
	c := NewController(0.5)
	press(c, glimpse.KeyW)

	desc := Default()
	for range 10 {
		c.UpdateCamera(&desc)
	}

	assert.InDelta(t, 0.5, desc.Distance(), 1e-6)
	assert.Equal(t, mgl32.Vec3{}, desc.Target)
}

func TestBackwardIsNotClamped(t *testing.T) {
	c := NewController(0.5)
	press(c, glimpse.KeyS)

	desc := Default()
	for range 4 {
		c.UpdateCamera(&desc)
	}

	assert.InDelta(t, 3.0, desc.Distance(), 1e-5)
}

func TestStrafeKeepsDistance(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	keys := []glimpse.Key{glimpse.KeyA, glimpse.KeyD}

	desc := New(mgl32.Vec3{0, 5, 10}, mgl32.Vec3{0, 0, 0}, 1)
	distance := desc.Distance()

	c := NewController(0.2)
	for range 1000 {
		key := keys[rng.IntN(len(keys))]

		press(c, key)
		c.UpdateCamera(&desc)
		release(c, key)

		require.InDelta(t, distance, desc.Distance(), 1e-4)
	}

	// strafing must have moved the eye
	assert.NotEqual(t, mgl32.Vec3{0, 5, 10}, desc.Eye)
	assert.Equal(t, float32(45), desc.FovY)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, desc.Up)
}

func TestStrafeRotatesAroundUp(t *testing.T) {
	c := NewController(0.2)
	press(c, glimpse.KeyD)

	desc := Default()
	c.UpdateCamera(&desc)

	// the eye stays on a circle in the xz plane
	assert.NotZero(t, desc.Eye.X())
	assert.InDelta(t, 0, desc.Eye.Y(), 1e-6)
	assert.InDelta(t, 1, desc.Distance(), 1e-6)
}

func TestDegenerateCameraIsLeftAlone(t *testing.T) {
	c := NewController(0.2)
	press(c, glimpse.KeyW)
	press(c, glimpse.KeyD)

	desc := Default()
	desc.Eye = desc.Target
	c.UpdateCamera(&desc)
	assert.Equal(t, desc.Target, desc.Eye)

	// looking straight down the up vector
	desc = Default()
	desc.Eye = mgl32.Vec3{0, 3, 0}
	c.UpdateCamera(&desc)
	assert.False(t, desc.Eye.ApproxEqual(mgl32.Vec3{0, 3, 0}))
	assert.Equal(t, float32(0), desc.Eye.X())
}
