package render

import (
	"fmt"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/figure/gpu"
)

// GeometryBuffer is a gpu buffer filled once, at creation, with Len elements
// of type T. Uploading different data requires a new GeometryBuffer.
type GeometryBuffer[T any] struct {
	buffer gpu.Buffer
	length int
}

func NewGeometryBuffer[T any](dev gpu.Device, label string, usage wgpu.BufferUsage, data []T) (*GeometryBuffer[T], error) {
	buffer, err := dev.CreateBuffer(gpu.BufferDescriptor{
		Label:    label,
		Usage:    usage,
		Contents: wgpu.ToBytes(data),
	})

	if err != nil {
		return nil, fmt.Errorf("create buffer %q: %w", label, err)
	}

	return &GeometryBuffer[T]{buffer: buffer, length: len(data)}, nil
}

// Len is the number of elements uploaded at creation.
func (b *GeometryBuffer[T]) Len() int {
	return b.length
}

func (b *GeometryBuffer[T]) Buffer() gpu.Buffer {
	return b.buffer
}

func (b *GeometryBuffer[T]) Release() {
	if b.buffer != nil {
		b.buffer.Release()
		b.buffer = nil
	}
}

// UniformBuffer holds a single value of type T that is overwritten in place.
type UniformBuffer[T any] struct {
	buffer gpu.Buffer
}

func NewUniformBuffer[T any](dev gpu.Device, label string, value T) (*UniformBuffer[T], error) {
	buffer, err := dev.CreateBuffer(gpu.BufferDescriptor{
		Label:    label,
		Usage:    wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		Contents: AsByteSlice(&value),
		Size:     uint64(unsafe.Sizeof(value)),
	})

	if err != nil {
		return nil, fmt.Errorf("create uniform buffer %q: %w", label, err)
	}

	return &UniformBuffer[T]{buffer: buffer}, nil
}

// Write queues an update of the buffer. Because there is a single queue, the
// write is visible to every command buffer submitted afterwards.
func (u *UniformBuffer[T]) Write(dev gpu.Device, value T) error {
	return dev.WriteBuffer(u.buffer, 0, AsByteSlice(&value))
}

func (u *UniformBuffer[T]) Buffer() gpu.Buffer {
	return u.buffer
}

func (u *UniformBuffer[T]) Release() {
	if u.buffer != nil {
		u.buffer.Release()
		u.buffer = nil
	}
}
