package pulse

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/figure/gpu"
)

type Buffer struct {
	buffer *wgpu.Buffer
	size   uint64
}

func (b *Buffer) Size() uint64 {
	return b.size
}

func (b *Buffer) Release() {
	if b.buffer != nil {
		b.buffer.Release()
		b.buffer = nil
	}
}

func (ctx *Context) CreateBuffer(desc gpu.BufferDescriptor) (gpu.Buffer, error) {
	if len(desc.Contents) == 0 {
		buffer, err := ctx.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: desc.Label,
			Size:  desc.Size,
			Usage: desc.Usage,
		})

		if err != nil {
			return nil, err
		}

		return &Buffer{buffer: buffer, size: desc.Size}, nil
	}

	buffer, err := ctx.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    desc.Label,
		Contents: desc.Contents,
		Usage:    desc.Usage,
	})

	if err != nil {
		return nil, err
	}

	return &Buffer{buffer: buffer, size: uint64(len(desc.Contents))}, nil
}

func (ctx *Context) WriteBuffer(buffer gpu.Buffer, offset uint64, data []byte) error {
	buf := buffer.(*Buffer)

	if offset+uint64(len(data)) > buf.size {
		return fmt.Errorf("write of %d bytes at offset %d exceeds buffer of %d bytes", len(data), offset, buf.size)
	}

	return ctx.queue.WriteBuffer(buf.buffer, offset, data)
}
