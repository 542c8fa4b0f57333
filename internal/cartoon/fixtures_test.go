package cartoon

import (
	stdmath "math"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Faultbox/ribbon/pkg/math"
	"github.com/Faultbox/ribbon/pkg/molecule"
)

func vec(x, y, z float64) math.Vec3 {
	return math.Vec3{X: float32(x), Y: float32(y), Z: float32(z)}
}

// helixCA lies on an ideal alpha helix: 100 degrees and 1.5 A per residue.
func helixCA(i int) (ca, radial math.Vec3) {
	a := float64(i) * 100 * stdmath.Pi / 180
	return vec(2.3*stdmath.Cos(a), 2.3*stdmath.Sin(a), 1.5*float64(i)), vec(stdmath.Cos(a), stdmath.Sin(a), 0)
}

// proteinChain builds residues on a helical backbone with the given classes
// and consecutive ids starting at 1.
func proteinChain(ss ...molecule.SecondaryStructure) []Residue {
	out := make([]Residue, len(ss))
	for i, s := range ss {
		ca, radial := helixCA(i)
		out[i] = molecule.NewResidue(i+1, "ALA", s, map[string]molecule.Atom{
			molecule.AtomCA: {Position: ca, BFactor: float32(10 + i)},
			molecule.AtomO:  {Position: ca.Add(radial.Scale(1.2)), BFactor: float32(10 + i)},
		})
	}
	return out
}

// zigzagChain builds an extended backbone, as in a beta strand.
func zigzagChain(ss ...molecule.SecondaryStructure) []Residue {
	out := make([]Residue, len(ss))
	for i, s := range ss {
		sign := float64(1 - 2*(i%2))
		ca := vec(3.3*float64(i), 0.9*sign, 0)
		out[i] = molecule.NewResidue(i+1, "GLY", s, map[string]molecule.Atom{
			molecule.AtomCA: {Position: ca},
			molecule.AtomO:  {Position: ca.Add(vec(0.3, 0, 1.2*sign))},
		})
	}
	return out
}

func repeat(ss molecule.SecondaryStructure, n int) []molecule.SecondaryStructure {
	out := make([]molecule.SecondaryStructure, n)
	for i := range out {
		out[i] = ss
	}
	return out
}

func concat(parts ...[]molecule.SecondaryStructure) []molecule.SecondaryStructure {
	var out []molecule.SecondaryStructure
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// withID returns a copy of r with a different id.
func withID(r Residue, id int) Residue {
	atoms := map[string]molecule.Atom{}
	for _, name := range []string{molecule.AtomCA, molecule.AtomO, molecule.AtomC3, molecule.AtomO5, molecule.AtomN1, molecule.AtomN3} {
		if a, ok := r.Atom(name); ok {
			atoms[name] = a
		}
	}
	return molecule.NewResidue(id, r.Name(), r.SecondaryStructure(), atoms)
}

// withAtom returns a copy of r with one atom replaced, or removed when pos
// is nil.
func withAtom(r Residue, name string, pos *math.Vec3) Residue {
	atoms := map[string]molecule.Atom{}
	for _, n := range []string{molecule.AtomCA, molecule.AtomO, molecule.AtomC3, molecule.AtomO5, molecule.AtomN1, molecule.AtomN3} {
		if a, ok := r.Atom(n); ok {
			atoms[n] = a
		}
	}
	if pos == nil {
		delete(atoms, name)
	} else {
		atoms[name] = molecule.Atom{Position: *pos}
	}
	return molecule.NewResidue(r.ID(), r.Name(), r.SecondaryStructure(), atoms)
}

func newTestBuilder(t *testing.T, style Style) *Builder {
	t.Helper()
	b, err := NewBuilder(style, WithLogger(zap.NewNop()))
	require.NoError(t, err)
	return b
}

// components counts the connected components of the triangle graph.
func components(m *MeshBuffers) int {
	parent := map[uint32]uint32{}
	var find func(uint32) uint32
	find = func(x uint32) uint32 {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}
	for _, idx := range m.Triangles {
		if _, ok := parent[idx]; !ok {
			parent[idx] = idx
		}
	}
	for t := 0; t+2 < len(m.Triangles); t += 3 {
		a := find(m.Triangles[t])
		parent[find(m.Triangles[t+1])] = a
		parent[find(m.Triangles[t+2])] = a
	}
	roots := map[uint32]bool{}
	for idx := range parent {
		roots[find(idx)] = true
	}
	return len(roots)
}

func near(a, b math.Vec3, tol float32) bool {
	return a.Distance(b) <= tol
}
