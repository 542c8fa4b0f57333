package objexport

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/ribbon/internal/cartoon"
	"github.com/Faultbox/ribbon/pkg/math"
)

func quad() cartoon.MeshBuffers {
	red := cartoon.RGB(255, 0, 0)
	up := math.Vec3{Z: 1}
	return cartoon.MeshBuffers{
		Vertices:  []math.Vec3{{}, {X: 1}, {X: 1, Y: 1}, {Y: 0.5}},
		Normals:   []math.Vec3{up, up, up, up},
		Colors:    []cartoon.Color{red, red, red, red},
		Triangles: []uint32{0, 1, 2, 0, 2, 3},
	}
}

func TestWrite(t *testing.T) {
	m := quad()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, &m, "chain_A"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1+4+4+2)
	assert.Equal(t, "o chain_A", lines[0])
	assert.Equal(t, "v 0 0 0 1 0 0", lines[1])
	assert.Equal(t, "v 1 1 0 1 0 0", lines[3])
	assert.Equal(t, "v 0 0.5 0 1 0 0", lines[4])
	assert.Equal(t, "vn 0 0 1", lines[5])
	assert.Equal(t, "f 1//1 2//2 3//3", lines[9])
	assert.Equal(t, "f 1//1 3//3 4//4", lines[10])
}

func TestWriteUnnamedEmpty(t *testing.T) {
	var m cartoon.MeshBuffers
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, &m, ""))
	assert.Empty(t, buf.String())
}

func TestWriteRejectsInvalidMesh(t *testing.T) {
	m := quad()
	m.Triangles = append(m.Triangles, 0, 1, 9)
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, &m, ""))
	assert.Empty(t, buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWritePropagatesWriterError(t *testing.T) {
	m := quad()
	assert.Error(t, Write(failingWriter{}, &m, "x"))
}

func TestWriteFile(t *testing.T) {
	m := quad()
	path := filepath.Join(t.TempDir(), "quad.obj")
	require.NoError(t, WriteFile(path, &m, "quad"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "o quad\nv 0 0 0 1 0 0\n"))
	assert.Equal(t, 2, strings.Count(string(data), "\nf "))
}

func TestWriteFileBadPath(t *testing.T) {
	m := quad()
	err := WriteFile(filepath.Join(t.TempDir(), "missing", "quad.obj"), &m, "")
	assert.Error(t, err)
}
