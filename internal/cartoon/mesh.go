package cartoon

import (
	"fmt"

	"github.com/Faultbox/ribbon/pkg/math"
)

// MeshBuffers holds an indexed triangle mesh with per-vertex normal and color.
type MeshBuffers struct {
	Vertices  []math.Vec3
	Normals   []math.Vec3
	Colors    []Color
	Triangles []uint32
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// ResidueVertexIndex maps a residue's position in the input slice to the
// vertices drawn for it.
type ResidueVertexIndex map[int][]uint32

// VertexCount returns the number of vertices.
func (m *MeshBuffers) VertexCount() int { return len(m.Vertices) }

// TriangleCount returns the number of triangles.
func (m *MeshBuffers) TriangleCount() int { return len(m.Triangles) / 3 }

// Validate checks that the parallel buffers agree and every index is in range.
func (m *MeshBuffers) Validate() error {
	n := len(m.Vertices)
	if len(m.Normals) != n {
		return fmt.Errorf("mesh has %d vertices but %d normals", n, len(m.Normals))
	}
	if len(m.Colors) != n {
		return fmt.Errorf("mesh has %d vertices but %d colors", n, len(m.Colors))
	}
	if len(m.Triangles)%3 != 0 {
		return fmt.Errorf("triangle index count %d is not a multiple of 3", len(m.Triangles))
	}
	for i, idx := range m.Triangles {
		if int(idx) >= n {
			return fmt.Errorf("triangle index %d at %d out of range (%d vertices)", idx, i, n)
		}
	}
	return nil
}

// Bounds returns the bounding box of the vertices. The zero Bounds is
// returned for an empty mesh.
func (m *MeshBuffers) Bounds() Bounds {
	if len(m.Vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: m.Vertices[0], Max: m.Vertices[0]}
	for _, v := range m.Vertices[1:] {
		b.Min = math.Vec3{X: min(b.Min.X, v.X), Y: min(b.Min.Y, v.Y), Z: min(b.Min.Z, v.Z)}
		b.Max = math.Vec3{X: max(b.Max.X, v.X), Y: max(b.Max.Y, v.Y), Z: max(b.Max.Z, v.Z)}
	}
	return b
}

// Append adds other to m, offsetting its indices, and returns the index of
// other's first vertex in m.
func (m *MeshBuffers) Append(other *MeshBuffers) uint32 {
	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, other.Vertices...)
	m.Normals = append(m.Normals, other.Normals...)
	m.Colors = append(m.Colors, other.Colors...)
	for _, idx := range other.Triangles {
		m.Triangles = append(m.Triangles, base+idx)
	}
	return base
}

// computeVertexNormals sets each vertex normal to the normalized sum of the
// face normals of the triangles using it. Face normals are area weighted.
func computeVertexNormals(m *MeshBuffers) {
	normals := make([]math.Vec3, len(m.Vertices))
	for t := 0; t+2 < len(m.Triangles); t += 3 {
		a, b, c := m.Triangles[t], m.Triangles[t+1], m.Triangles[t+2]
		pa, pb, pc := m.Vertices[a], m.Vertices[b], m.Vertices[c]
		n := pb.Sub(pa).Cross(pc.Sub(pa))
		normals[a] = normals[a].Add(n)
		normals[b] = normals[b].Add(n)
		normals[c] = normals[c].Add(n)
	}
	for i := range normals {
		normals[i] = normals[i].Normalize()
	}
	m.Normals = normals
}
