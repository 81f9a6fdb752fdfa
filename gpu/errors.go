package gpu

import "errors"

var (
	ErrNoAdapter       = errors.New("no compatible adapter")
	ErrSurfaceLost     = errors.New("surface lost")
	ErrSurfaceOutdated = errors.New("surface outdated")
	ErrSurfaceTimeout  = errors.New("surface timeout")
	ErrOutOfMemory     = errors.New("out of memory")
	ErrDeviceLost      = errors.New("device lost")
)

type FrameErrorKind int

const (
	// FrameOK means there was no error at all
	FrameOK FrameErrorKind = iota

	// FrameRecoverable errors are fixed by reconfiguring the surface
	// at its current size and trying again.
	FrameRecoverable

	// FrameTransient errors go away on their own with the next frame.
	FrameTransient

	// FrameFatal errors end the process. No further gpu calls are allowed.
	FrameFatal
)

func (k FrameErrorKind) String() string {
	switch k {
	case FrameOK:
		return "ok"
	case FrameRecoverable:
		return "recoverable"
	case FrameTransient:
		return "transient"
	case FrameFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// ClassifyFrameError maps an error returned while producing a frame to the
// action the caller has to take. Errors not known to this package are
// treated as transient.
func ClassifyFrameError(err error) FrameErrorKind {
	switch {
	case err == nil:
		return FrameOK
	case errors.Is(err, ErrOutOfMemory), errors.Is(err, ErrDeviceLost):
		return FrameFatal
	case errors.Is(err, ErrSurfaceLost):
		return FrameRecoverable
	default:
		return FrameTransient
	}
}
