package cartoon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/ribbon/pkg/math"
)

func triangleMesh() MeshBuffers {
	return MeshBuffers{
		Vertices:  []math.Vec3{{}, {X: 1}, {Y: 1}},
		Normals:   make([]math.Vec3, 3),
		Colors:    make([]Color, 3),
		Triangles: []uint32{0, 1, 2},
	}
}

func TestMeshValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*MeshBuffers)
		wantErr bool
	}{
		{"valid", func(*MeshBuffers) {}, false},
		{"empty", func(m *MeshBuffers) { *m = MeshBuffers{} }, false},
		{"missing normal", func(m *MeshBuffers) { m.Normals = m.Normals[:2] }, true},
		{"missing color", func(m *MeshBuffers) { m.Colors = nil }, true},
		{"partial triangle", func(m *MeshBuffers) { m.Triangles = append(m.Triangles, 0) }, true},
		{"index out of range", func(m *MeshBuffers) { m.Triangles[2] = 3 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := triangleMesh()
			tt.mutate(&m)
			err := m.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMeshBounds(t *testing.T) {
	m := triangleMesh()
	m.Vertices[2] = math.Vec3{X: -2, Y: 3, Z: -1}
	b := m.Bounds()
	assert.Equal(t, math.Vec3{X: -2, Y: 0, Z: -1}, b.Min)
	assert.Equal(t, math.Vec3{X: 1, Y: 3, Z: 0}, b.Max)

	assert.Equal(t, Bounds{}, (&MeshBuffers{}).Bounds())
}

func TestMeshAppend(t *testing.T) {
	m := triangleMesh()
	other := triangleMesh()
	base := m.Append(&other)

	assert.Equal(t, uint32(3), base)
	assert.Equal(t, 6, m.VertexCount())
	assert.Equal(t, 2, m.TriangleCount())
	assert.Equal(t, []uint32{0, 1, 2, 3, 4, 5}, m.Triangles)
	require.NoError(t, m.Validate())
}

func TestComputeVertexNormals(t *testing.T) {
	m := triangleMesh()
	m.Normals = nil
	computeVertexNormals(&m)
	require.Len(t, m.Normals, 3)
	for _, n := range m.Normals {
		assert.Equal(t, math.Vec3{Z: 1}, n)
	}

	// Unreferenced vertices get a zero normal.
	m.Vertices = append(m.Vertices, math.Vec3{Z: 5})
	computeVertexNormals(&m)
	assert.Equal(t, math.Vec3{}, m.Normals[3])
}

func TestWeldQuantization(t *testing.T) {
	a := quantize(math.Vec3{X: 1.00001, Y: -2.5, Z: 0})
	b := quantize(math.Vec3{X: 1.00004, Y: -2.5, Z: 0})
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, quantize(math.Vec3{X: 1.0002, Y: -2.5, Z: 0}))

	p := a.position()
	assert.InDelta(t, 1.0, p.X, 2*WeldTolerance)
	assert.InDelta(t, -2.5, p.Y, 2*WeldTolerance)
}

func TestMeshWriterWelds(t *testing.T) {
	w := newMeshWriter(1, 4)
	red := RGB(255, 0, 0)
	blue := RGB(0, 0, 255)

	a := w.vertex(math.Vec3{X: 1, Y: 2, Z: 3}, red)
	b := w.vertex(math.Vec3{X: 1.00002, Y: 2, Z: 3}, blue)
	assert.Equal(t, a, b)
	assert.Equal(t, red, w.mesh.Colors[a], "first emitter keeps its color")

	// A quad whose corners collapse keeps only its non degenerate triangle.
	p := math.Vec3{}
	w.quad(p, math.Vec3{X: 1}, math.Vec3{X: 1, Y: 1}, p, red, red, red, red)
	assert.Len(t, w.mesh.Triangles, 3)

	w.register(7, 1)
	assert.Equal(t, []uint32{1, 2, 3}, w.index[7])
}
