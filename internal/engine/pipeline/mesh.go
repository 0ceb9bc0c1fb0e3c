package pipeline

import "github.com/Faultbox/glint/pkg/math"

// Vertex is one mesh vertex in the geometry pass layout: position at
// location 0, color at 1, texture coordinates at 2.
type Vertex struct {
	Position math.Vec3
	Color    math.Vec3
	UV       math.Vec2
}

// VertexStride is the byte stride of one interleaved vertex (8 floats).
const VertexStride = int32(8 * 4)

// MeshData is CPU-side mesh geometry, uploaded once and drawn by handle.
type MeshData struct {
	Vertices []Vertex
	Indices  []uint32
}

// Interleave flattens the vertices into the position/color/uv float
// layout the mesh VAO expects.
func (m MeshData) Interleave() []float32 {
	out := make([]float32, 0, len(m.Vertices)*8)
	for _, v := range m.Vertices {
		out = append(out,
			v.Position.X, v.Position.Y, v.Position.Z,
			v.Color.X, v.Color.Y, v.Color.Z,
			v.UV.X, v.UV.Y,
		)
	}
	return out
}

// MeshHandle identifies a mesh registered with the renderer.
type MeshHandle uint32

// Material holds the texture handles a mesh samples in the geometry
// pass. A zero handle falls back to the neutral default for that slot:
// white for diffuse, flat +Z for normal, black for emission.
type Material struct {
	Diffuse  uint32
	Normal   uint32
	Emission uint32
}

// MeshDraw is one mesh submission for the current frame.
type MeshDraw struct {
	Mesh     MeshHandle
	Model    math.Mat4
	Material Material
}
