// Package objexport writes cartoon meshes as Wavefront OBJ text.
//
// Vertex colors use the common "v x y z r g b" extension. Faces reference
// vertex and normal by the same 1-based index.
package objexport

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/Faultbox/ribbon/internal/cartoon"
)

// Write writes m to w. The mesh must be valid.
func Write(w io.Writer, m *cartoon.MeshBuffers, name string) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("invalid mesh: %w", err)
	}

	bw := bufio.NewWriter(w)
	if name != "" {
		fmt.Fprintf(bw, "o %s\n", name)
	}

	buf := make([]byte, 0, 96)
	for i, v := range m.Vertices {
		c := m.Colors[i]
		buf = append(buf[:0], 'v')
		buf = appendFloats(buf, v.X, v.Y, v.Z, c.R, c.G, c.B)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	for _, n := range m.Normals {
		buf = append(buf[:0], 'v', 'n')
		buf = appendFloats(buf, n.X, n.Y, n.Z)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	for t := 0; t+2 < len(m.Triangles); t += 3 {
		buf = append(buf[:0], 'f')
		for _, idx := range m.Triangles[t : t+3] {
			buf = append(buf, ' ')
			buf = strconv.AppendUint(buf, uint64(idx)+1, 10)
			buf = append(buf, '/', '/')
			buf = strconv.AppendUint(buf, uint64(idx)+1, 10)
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile writes m to path, replacing any existing file.
func WriteFile(path string, m *cartoon.MeshBuffers, name string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := Write(f, m, name); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

func appendFloats(buf []byte, vs ...float32) []byte {
	for _, v := range vs {
		buf = append(buf, ' ')
		buf = strconv.AppendFloat(buf, float64(v), 'f', -1, 32)
	}
	return buf
}
