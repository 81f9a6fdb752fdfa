package mesh

import "github.com/go-gl/mathgl/mgl32"

var pentagonVertices = []ColoredVertex{
	{Position: mgl32.Vec3{-0.0868241, 0.49240386, 0.0}, Color: mgl32.Vec3{0.0, 0.5, 0.5}},
	{Position: mgl32.Vec3{-0.49513406, 0.06958647, 0.0}, Color: mgl32.Vec3{0.5, 0.0, 0.5}},
	{Position: mgl32.Vec3{-0.21918549, -0.44939706, 0.0}, Color: mgl32.Vec3{0.5, 0.0, 0.0}},
	{Position: mgl32.Vec3{0.35966998, -0.3473291, 0.0}, Color: mgl32.Vec3{0.5, 0.5, 0.5}},
	{Position: mgl32.Vec3{0.44147372, 0.2347359, 0.0}, Color: mgl32.Vec3{0.0, 0.0, 0.5}},
}

var pentagonIndices = []uint16{
	0, 1, 4,
	1, 2, 4,
	2, 3, 4,
}

var octagonVertices = []ColoredVertex{
	{Position: mgl32.Vec3{0.0, 0.5, 0.0}, Color: mgl32.Vec3{0.0, 0.5, 0.5}},
	{Position: mgl32.Vec3{-0.3536, 0.3536, 0.0}, Color: mgl32.Vec3{0.5, 0.0, 0.5}},
	{Position: mgl32.Vec3{-0.5, 0.0, 0.0}, Color: mgl32.Vec3{0.5, 0.0, 0.0}},
	{Position: mgl32.Vec3{-0.3536, -0.3536, 0.0}, Color: mgl32.Vec3{0.5, 0.5, 0.5}},
	{Position: mgl32.Vec3{0.0, -0.5, 0.0}, Color: mgl32.Vec3{0.0, 0.0, 0.5}},
	{Position: mgl32.Vec3{0.3536, -0.3536, 0.0}, Color: mgl32.Vec3{0.0, 0.5, 0.0}},
	{Position: mgl32.Vec3{0.5, 0.0, 0.0}, Color: mgl32.Vec3{0.5, 0.0, 0.0}},
	{Position: mgl32.Vec3{0.3536, 0.3536, 0.0}, Color: mgl32.Vec3{0.0, 0.0, 0.5}},
}

var octagonIndices = []uint16{
	0, 1, 7,
	1, 2, 3,
	1, 3, 7,
	3, 4, 5,
	3, 5, 7,
	5, 6, 7,
}

// Pentagon is a flat, vertex colored pentagon in the xy plane.
func Pentagon() *Mesh[ColoredVertex] {
	m := New[ColoredVertex]()
	m.PushIndexed(pentagonVertices, pentagonIndices)
	return m
}

// Octagon is a flat, vertex colored octagon in the xy plane.
func Octagon() *Mesh[ColoredVertex] {
	m := New[ColoredVertex]()
	m.PushIndexed(octagonVertices, octagonIndices)
	return m
}

// CornerCube returns an axis aligned cube centered at the origin, each corner
// colored by its position.
func CornerCube(half float32) Cube[ColoredVertex] {
	corner := func(x, y, z float32) ColoredVertex {
		return ColoredVertex{
			Position: mgl32.Vec3{x * half, y * half, z * half},
			Color:    mgl32.Vec3{(x + 1) / 2, (y + 1) / 2, (z + 1) / 2},
		}
	}

	return Cube[ColoredVertex]{
		corner(-1, -1, -1),
		corner(-1, -1, 1),
		corner(1, -1, 1),
		corner(1, -1, -1),

		corner(-1, 1, -1),
		corner(-1, 1, 1),
		corner(1, 1, 1),
		corner(1, 1, -1),
	}
}

// TexturedCube returns a cube centered at the origin with separate vertices
// per face, so that every face maps the full texture.
func TexturedCube(half float32) *Mesh[TexturedVertex] {
	s := half

	// corners of each face: bottom left, bottom right, top right, top left
	// as seen from outside the cube.
	faces := [6][4]mgl32.Vec3{
		// bottom
		{{-s, -s, -s}, {s, -s, -s}, {s, -s, s}, {-s, -s, s}},
		// top
		{{-s, s, s}, {s, s, s}, {s, s, -s}, {-s, s, -s}},
		// front
		{{-s, -s, s}, {s, -s, s}, {s, s, s}, {-s, s, s}},
		// right
		{{s, -s, s}, {s, -s, -s}, {s, s, -s}, {s, s, s}},
		// back
		{{s, -s, -s}, {-s, -s, -s}, {-s, s, -s}, {s, s, -s}},
		// left
		{{-s, -s, -s}, {-s, -s, s}, {-s, s, s}, {-s, s, -s}},
	}

	uvs := [4]mgl32.Vec2{{0, 1}, {1, 1}, {1, 0}, {0, 0}}

	m := New[TexturedVertex]()
	for _, face := range faces {
		var quad [4]TexturedVertex
		for idx := range quad {
			quad[idx] = TexturedVertex{Position: face[idx], TexCoords: uvs[idx]}
		}

		m.PushQuad(quad[0], quad[1], quad[2], quad[3])
	}

	return m
}
