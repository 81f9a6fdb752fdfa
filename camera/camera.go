// Package camera computes the view projection of a perspective camera and
// moves the camera around its target in response to key input.
package camera

import (
	"structs"

	"github.com/go-gl/mathgl/mgl32"
)

// OpenGLToWGPU maps the [-1, 1] clip space depth range produced by an
// opengl style projection to the [0, 1] range used by webgpu.
var OpenGLToWGPU = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// Descriptor describes a perspective camera looking from Eye at Target.
type Descriptor struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
	Up     mgl32.Vec3

	Aspect float32

	// vertical field of view in degrees
	FovY float32

	ZNear float32
	ZFar  float32
}

// Default looks from one unit in front of the origin at the origin.
func Default() Descriptor {
	return Descriptor{
		Eye:    mgl32.Vec3{0, 0, 1},
		Target: mgl32.Vec3{0, 0, 0},
		Up:     mgl32.Vec3{0, 1, 0},
		Aspect: 16.0 / 9.0,
		FovY:   45,
		ZNear:  0.1,
		ZFar:   100,
	}
}

// New creates a Descriptor with the default field of view and clipping planes.
func New(eye, target mgl32.Vec3, aspect float32) Descriptor {
	d := Default()
	d.Eye = eye
	d.Target = target
	d.Aspect = aspect
	return d
}

// Distance between eye and target.
func (d Descriptor) Distance() float32 {
	return d.Target.Sub(d.Eye).Len()
}

// ViewProjection returns the combined view and projection matrix in
// webgpu clip space.
func (d *Descriptor) ViewProjection() mgl32.Mat4 {
	view := mgl32.LookAtV(d.Eye, d.Target, d.Up)
	proj := mgl32.Perspective(mgl32.DegToRad(d.FovY), d.Aspect, d.ZNear, d.ZFar)
	return OpenGLToWGPU.Mul4(proj).Mul4(view)
}

// Uniform is the camera data as seen by the vertex shader.
type Uniform struct {
	_        structs.HostLayout
	ViewProj mgl32.Mat4
}

func NewUniform() Uniform {
	return Uniform{ViewProj: mgl32.Ident4()}
}

// UpdateViewProj recomputes ViewProj from the descriptor. Nothing is cached,
// call it once per frame in which the camera might have moved.
func (u *Uniform) UpdateViewProj(d Descriptor) {
	u.ViewProj = d.ViewProjection()
}
