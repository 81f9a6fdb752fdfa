package render

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/figure/gpu"
	"github.com/oliverbestmann/figure/mesh"
)

// ErrEmptyMesh is returned instead of a Model for a mesh without
// vertices or without indices.
var ErrEmptyMesh = errors.New("mesh has nothing to draw")

// Model is a mesh uploaded to the gpu, ready to be drawn.
type Model[V mesh.Vertex] struct {
	vertices *GeometryBuffer[V]
	indices  *GeometryBuffer[uint16]
}

// NewModel uploads the vertices and indices of m. For an empty mesh no gpu
// buffer is allocated and ErrEmptyMesh is returned.
func NewModel[V mesh.Vertex](dev gpu.Device, label string, m *mesh.Mesh[V]) (*Model[V], error) {
	if m.Empty() {
		return nil, ErrEmptyMesh
	}

	vertices, err := NewGeometryBuffer(dev, label+"Vertices", wgpu.BufferUsageVertex, m.Vertices())
	if err != nil {
		return nil, fmt.Errorf("upload vertices: %w", err)
	}

	indices, err := NewGeometryBuffer(dev, label+"Indices", wgpu.BufferUsageIndex, m.Indices())
	if err != nil {
		vertices.Release()
		return nil, fmt.Errorf("upload indices: %w", err)
	}

	return &Model[V]{vertices: vertices, indices: indices}, nil
}

func (m *Model[V]) Kind() mesh.Kind {
	return mesh.KindOf[V]()
}

func (m *Model[V]) NumIndices() uint32 {
	return uint32(m.indices.Len())
}

func (m *Model[V]) NumVertices() int {
	return m.vertices.Len()
}

func (m *Model[V]) VertexBuffer() gpu.Buffer {
	return m.vertices.Buffer()
}

func (m *Model[V]) IndexBuffer() gpu.Buffer {
	return m.indices.Buffer()
}

func (m *Model[V]) Release() {
	m.vertices.Release()
	m.indices.Release()
}
