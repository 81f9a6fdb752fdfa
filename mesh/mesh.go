// Package mesh assembles primitives into a flat vertex list and a 16 bit
// triangle-list index buffer on the cpu.
package mesh

import "fmt"

// MaxVertices is a hard limit on the number of vertices in a single Mesh, as
// indices are 16 bit. Pushing past the limit panics.
const MaxVertices = 1 << 16

// Cube holds the corners of a hexahedron. The first four vertices form the
// bottom face and wind counter-clockwise when viewed from above, the last four
// lie directly above them in the same order.
type Cube[V Vertex] [8]V

// cube faces in the order bottom, top, front, right, back, left.
// Each face is wound counter-clockwise when seen from the outside.
var cubeIndices = [36]uint16{
	0, 2, 1, 0, 3, 2,
	4, 5, 6, 4, 6, 7,
	1, 5, 0, 5, 4, 0,
	2, 6, 1, 6, 5, 1,
	3, 7, 2, 7, 6, 2,
	0, 4, 3, 4, 7, 3,
}

// Mesh is a cpu-side builder for indexed triangle lists.
// The zero value is an empty mesh ready to use.
type Mesh[V Vertex] struct {
	vertices []V
	indices  []uint16
}

func New[V Vertex]() *Mesh[V] {
	return &Mesh[V]{}
}

// Kind returns the vertex kind of this mesh.
func (m *Mesh[V]) Kind() Kind {
	return KindOf[V]()
}

// Vertices returns the vertices of the mesh. The slice is owned by the mesh.
func (m *Mesh[V]) Vertices() []V {
	return m.vertices
}

// Indices returns the triangle list indices. The slice is owned by the mesh.
func (m *Mesh[V]) Indices() []uint16 {
	return m.indices
}

// Empty reports if the mesh has nothing to draw.
func (m *Mesh[V]) Empty() bool {
	return len(m.vertices) == 0 || len(m.indices) == 0
}

// Clear removes all vertices and indices but keeps the allocated memory.
func (m *Mesh[V]) Clear() {
	m.vertices = m.vertices[:0]
	m.indices = m.indices[:0]
}

// Push appends a single vertex without any indices and returns its index.
func (m *Mesh[V]) Push(vertex V) uint16 {
	start := m.reserve(1)
	m.vertices = append(m.vertices, vertex)
	return start
}

// PushIndices appends indices referring to vertices already in the mesh.
func (m *Mesh[V]) PushIndices(indices ...uint16) {
	for _, idx := range indices {
		if int(idx) >= len(m.vertices) {
			panic(fmt.Sprintf("mesh: index %d out of range, mesh has %d vertices", idx, len(m.vertices)))
		}
	}

	m.indices = append(m.indices, indices...)
}

// PushIndexed appends vertices together with indices relative to the first
// of the appended vertices.
func (m *Mesh[V]) PushIndexed(vertices []V, indices []uint16) {
	start := m.reserve(len(vertices))

	for _, idx := range indices {
		if int(idx) >= len(vertices) {
			panic(fmt.Sprintf("mesh: relative index %d out of range for %d vertices", idx, len(vertices)))
		}
	}

	m.vertices = append(m.vertices, vertices...)

	for _, idx := range indices {
		m.indices = append(m.indices, start+idx)
	}
}

func (m *Mesh[V]) PushTriangle(a, b, c V) {
	start := m.reserve(3)
	m.vertices = append(m.vertices, a, b, c)
	m.indices = append(m.indices, start, start+1, start+2)
}

// PushQuad appends the quad as the two triangles (a, b, c) and (a, c, d)
// sharing the diagonal a to c.
func (m *Mesh[V]) PushQuad(a, b, c, d V) {
	start := m.reserve(4)
	m.vertices = append(m.vertices, a, b, c, d)
	m.indices = append(m.indices,
		start, start+1, start+2,
		start, start+2, start+3,
	)
}

// PushCube appends the 8 corners of the cube and 12 triangles,
// two per face.
func (m *Mesh[V]) PushCube(cube Cube[V]) {
	start := m.reserve(len(cube))
	m.vertices = append(m.vertices, cube[:]...)

	for _, idx := range cubeIndices {
		m.indices = append(m.indices, start+idx)
	}
}

// PushPolygon appends a convex polygon as a triangle fan around its first
// vertex. Polygons with less than three vertices are ignored.
func (m *Mesh[V]) PushPolygon(vertices ...V) {
	if len(vertices) < 3 {
		return
	}

	start := m.reserve(len(vertices))
	m.vertices = append(m.vertices, vertices...)

	for idx := 1; idx < len(vertices)-1; idx++ {
		m.indices = append(m.indices, start, start+uint16(idx), start+uint16(idx+1))
	}
}

// PushFaceList appends every face as a polygon, see PushPolygon.
func (m *Mesh[V]) PushFaceList(faces [][]V) {
	for _, face := range faces {
		m.PushPolygon(face...)
	}
}

// reserve checks that count more vertices fit into the mesh and returns
// the index of the first one.
func (m *Mesh[V]) reserve(count int) uint16 {
	start := len(m.vertices)
	if start+count > MaxVertices {
		panic(fmt.Sprintf("mesh: %d vertices exceed the limit of %d", start+count, MaxVertices))
	}

	return uint16(start)
}
