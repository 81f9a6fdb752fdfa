package mesh

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tv(x, y, z float32) TexturedVertex {
	return TexturedVertex{Position: mgl32.Vec3{x, y, z}}
}

func requireValidIndices[V Vertex](t *testing.T, m *Mesh[V]) {
	t.Helper()

	require.Zero(t, len(m.Indices())%3, "index count must be a multiple of 3")
	for _, idx := range m.Indices() {
		require.Less(t, int(idx), len(m.Vertices()))
	}
}

func TestEmptyMesh(t *testing.T) {
	var m Mesh[TexturedVertex]
	assert.True(t, m.Empty())
	assert.Empty(t, m.Vertices())
	assert.Empty(t, m.Indices())

	m.Push(tv(0, 0, 0))
	assert.True(t, m.Empty(), "a mesh without indices is empty")
}

func TestPushTriangleAccountsForExistingVertices(t *testing.T) {
	m := New[TexturedVertex]()
	m.Push(tv(9, 9, 9))
	m.Push(tv(8, 8, 8))

	m.PushTriangle(tv(0, 0, 0), tv(1, 0, 0), tv(0, 1, 0))

	assert.Len(t, m.Vertices(), 5)
	assert.Equal(t, []uint16{2, 3, 4}, m.Indices())
	requireValidIndices(t, m)
}

func TestPushQuadWinding(t *testing.T) {
	m := New[TexturedVertex]()
	m.PushTriangle(tv(0, 0, 0), tv(1, 0, 0), tv(0, 1, 0))
	m.PushQuad(tv(0, 0, 0), tv(1, 0, 0), tv(1, 1, 0), tv(0, 1, 0))

	assert.Equal(t, []uint16{0, 1, 2, 3, 4, 5, 3, 5, 6}, m.Indices())
}

func TestPushQuadCounts(t *testing.T) {
	m := New[TexturedVertex]()

	for quads := 1; quads <= 50; quads++ {
		f := float32(quads)
		m.PushQuad(tv(f, 0, 0), tv(f+1, 0, 0), tv(f+1, 1, 0), tv(f, 1, 0))

		require.Len(t, m.Indices(), 6*quads)
		requireValidIndices(t, m)
	}
}

func TestPushCube(t *testing.T) {
	m := New[ColoredVertex]()
	m.PushTriangle(ColoredVertex{}, ColoredVertex{}, ColoredVertex{})

	m.PushCube(CornerCube(1))

	assert.Len(t, m.Vertices(), 3+8)
	assert.Len(t, m.Indices(), 3+36)
	requireValidIndices(t, m)

	covered := map[uint16]bool{}
	for _, idx := range m.Indices()[3:] {
		covered[idx] = true
	}

	for idx := uint16(3); idx < 11; idx++ {
		assert.True(t, covered[idx], "vertex %d is not referenced", idx)
	}
}

// every triangle of a convex shape centered at the origin must face away from the center.
func requireOutwardWinding[V Vertex](t *testing.T, m *Mesh[V], position func(V) mgl32.Vec3) {
	t.Helper()

	vertices := m.Vertices()
	indices := m.Indices()

	for tri := 0; tri < len(indices); tri += 3 {
		a := position(vertices[indices[tri]])
		b := position(vertices[indices[tri+1]])
		c := position(vertices[indices[tri+2]])

		normal := b.Sub(a).Cross(c.Sub(a))
		centroid := a.Add(b).Add(c).Mul(1.0 / 3.0)

		require.Greater(t, normal.Dot(centroid), float32(0), "triangle %d faces inwards", tri/3)
	}
}

func TestCubeWindingIsOutward(t *testing.T) {
	corners := New[ColoredVertex]()
	corners.PushCube(CornerCube(0.5))
	requireOutwardWinding(t, corners, func(v ColoredVertex) mgl32.Vec3 { return v.Position })

	textured := TexturedCube(0.5)
	assert.Len(t, textured.Vertices(), 24)
	assert.Len(t, textured.Indices(), 36)
	requireOutwardWinding(t, textured, func(v TexturedVertex) mgl32.Vec3 { return v.Position })
}

func TestPushPolygonFan(t *testing.T) {
	m := New[TexturedVertex]()
	m.PushPolygon(tv(0, 0, 0), tv(1, 0, 0), tv(1, 1, 0), tv(0, 1, 0), tv(-1, 1, 0))

	assert.Equal(t, []uint16{0, 1, 2, 0, 2, 3, 0, 3, 4}, m.Indices())

	// degenerate faces are dropped
	m.PushPolygon(tv(0, 0, 0), tv(1, 0, 0))
	assert.Len(t, m.Vertices(), 5)
}

func TestPushFaceList(t *testing.T) {
	m := New[TexturedVertex]()
	m.PushFaceList([][]TexturedVertex{
		{tv(0, 0, 0), tv(1, 0, 0), tv(0, 1, 0)},
		{tv(0, 0, 1), tv(1, 0, 1), tv(1, 1, 1), tv(0, 1, 1)},
	})

	assert.Len(t, m.Vertices(), 7)
	assert.Equal(t, []uint16{0, 1, 2, 3, 4, 5, 3, 5, 6}, m.Indices())
}

func TestPushIndices(t *testing.T) {
	m := New[TexturedVertex]()
	a := m.Push(tv(0, 0, 0))
	b := m.Push(tv(1, 0, 0))
	c := m.Push(tv(0, 1, 0))

	m.PushIndices(a, b, c)
	assert.Equal(t, []uint16{0, 1, 2}, m.Indices())

	assert.Panics(t, func() { m.PushIndices(3) })
}

func TestClear(t *testing.T) {
	m := Octagon()
	require.False(t, m.Empty())

	m.Clear()
	assert.True(t, m.Empty())
	assert.Empty(t, m.Vertices())
	assert.Empty(t, m.Indices())
}

func TestReferencePolygons(t *testing.T) {
	pentagon := Pentagon()
	assert.Len(t, pentagon.Vertices(), 5)
	assert.Len(t, pentagon.Indices(), 9)
	requireValidIndices(t, pentagon)

	octagon := Octagon()
	assert.Len(t, octagon.Vertices(), 8)
	assert.Len(t, octagon.Indices(), 18)
	requireValidIndices(t, octagon)
}

func TestVertexLimit(t *testing.T) {
	m := New[ColoredVertex]()
	for range MaxVertices {
		m.Push(ColoredVertex{})
	}

	assert.Panics(t, func() {
		m.Push(ColoredVertex{})
	})
}
