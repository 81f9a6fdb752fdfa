package camera

import (
	"testing"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniformLayout(t *testing.T) {
	assert.EqualValues(t, 64, unsafe.Sizeof(Uniform{}))
	assert.Equal(t, mgl32.Ident4(), NewUniform().ViewProj)
}

func TestUpdateViewProjIsDeterministic(t *testing.T) {
	desc := New(mgl32.Vec3{3, 4, 5}, mgl32.Vec3{0, 1, 0}, 4.0/3.0)

	var first, second Uniform
	first.UpdateViewProj(desc)
	second.UpdateViewProj(desc)

	assert.Equal(t, first.ViewProj, second.ViewProj)
	assert.NotEqual(t, mgl32.Ident4(), first.ViewProj)
}

func TestOpenGLToWGPUDepthRange(t *testing.T) {
	near := OpenGLToWGPU.Mul4x1(mgl32.Vec4{0, 0, -1, 1})
	far := OpenGLToWGPU.Mul4x1(mgl32.Vec4{0, 0, 1, 1})

	assert.InDelta(t, 0, near.Z(), 1e-6)
	assert.InDelta(t, 1, far.Z(), 1e-6)
}

func TestViewProjectionMapsTargetToCenter(t *testing.T) {
	desc := Default()

	var u Uniform
	u.UpdateViewProj(desc)

	clip := u.ViewProj.Mul4x1(desc.Target.Vec4(1))
	ndc := clip.Mul(1 / clip.W())

	assert.InDelta(t, 0, ndc.X(), 1e-5)
	assert.InDelta(t, 0, ndc.Y(), 1e-5)

	// target lies between the near and far plane
	require.Greater(t, ndc.Z(), float32(0))
	require.Less(t, ndc.Z(), float32(1))

	// points above the target end up in the upper half of the screen
	above := u.ViewProj.Mul4x1(mgl32.Vec4{0, 0.1, 0, 1})
	assert.Greater(t, above.Y()/above.W(), float32(0))
}

func TestNewKeepsProjectionDefaults(t *testing.T) {
	desc := New(mgl32.Vec3{0, 5, 10}, mgl32.Vec3{}, 2)

	assert.Equal(t, float32(45), desc.FovY)
	assert.Equal(t, float32(0.1), desc.ZNear)
	assert.Equal(t, float32(100), desc.ZFar)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, desc.Up)
	assert.Equal(t, float32(2), desc.Aspect)
}
