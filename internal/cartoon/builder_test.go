package cartoon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/ribbon/pkg/math"
	"github.com/Faultbox/ribbon/pkg/molecule"
)

func TestNewBuilderRejectsInvalidStyle(t *testing.T) {
	s := DefaultStyle()
	s.ProfilePoints = 5
	_, err := NewBuilder(s)
	assert.ErrorIs(t, err, ErrInvalidStyle)

	b, err := NewBuilder(DefaultStyle(), WithLogger(nil))
	require.NoError(t, err)
	assert.NotNil(t, b.log)
}

func TestBuildMixedChain(t *testing.T) {
	ss := concat(
		repeat(molecule.Coil, 4),
		repeat(molecule.Helix, 10),
		repeat(molecule.Coil, 3),
		repeat(molecule.Strand, 6),
		repeat(molecule.Coil, 4),
	)
	rs := proteinChain(ss...)
	res := newTestBuilder(t, DefaultStyle()).Build(rs)

	require.NoError(t, res.Mesh.Validate())
	assert.Positive(t, res.Mesh.TriangleCount())
	assert.Equal(t, len(rs)+3, res.Stats.Frames)
	assert.Equal(t, len(rs), res.Stats.Windows)
	assert.Equal(t, len(rs), res.Stats.Meshed)
	assert.Equal(t, 1, res.Stats.Caps)

	// Every vertex is assigned to exactly one residue.
	seen := make(map[uint32]int)
	for r, ids := range res.Index {
		assert.GreaterOrEqual(t, r, 0)
		assert.Less(t, r, len(rs))
		for _, id := range ids {
			seen[id]++
		}
	}
	assert.Len(t, seen, res.Mesh.VertexCount())
	for id, n := range seen {
		assert.Equal(t, 1, n, "vertex %d registered %d times", id, n)
	}

	for _, n := range res.Mesh.Normals {
		if n != (math.Vec3{}) {
			assert.InDelta(t, 1, n.Length(), 1e-4)
		}
	}
}

func TestBuildContinuousChainIsOnePiece(t *testing.T) {
	ss := concat(repeat(molecule.Coil, 4), repeat(molecule.Helix, 8), repeat(molecule.Coil, 4), repeat(molecule.Helix310, 5))
	res := newTestBuilder(t, DefaultStyle()).Build(proteinChain(ss...))
	require.NoError(t, res.Mesh.Validate())
	assert.Equal(t, 1, components(&res.Mesh))
}

func TestBuildIsDeterministic(t *testing.T) {
	rs := proteinChain(concat(repeat(molecule.Helix, 8), repeat(molecule.Coil, 8))...)
	b := newTestBuilder(t, DefaultStyle())
	assert.Equal(t, b.Build(rs), b.Build(rs))
}

func TestBuildGapSplitsMesh(t *testing.T) {
	rs := proteinChain(repeat(molecule.Coil, 12)...)
	for i := 6; i < len(rs); i++ {
		rs[i] = withID(rs[i], rs[i].ID()+1)
	}
	res := newTestBuilder(t, DefaultStyle()).Build(rs)

	require.NoError(t, res.Mesh.Validate())
	assert.Equal(t, 2, components(&res.Mesh))
	assert.Equal(t, 5, res.Stats.SkippedGap)
	for r := 3; r <= 7; r++ {
		assert.NotContains(t, res.Index, r)
	}
}

func TestBuildDistanceFilter(t *testing.T) {
	rs := proteinChain(repeat(molecule.Coil, 20)...)
	b := newTestBuilder(t, DefaultStyle())
	base := b.Build(rs)

	ca, _ := rs[14].Atom(molecule.AtomCA)
	moved := ca.Position.Add(math.Vec3{X: 50})
	broken := append([]Residue(nil), rs...)
	broken[14] = withAtom(rs[14], molecule.AtomCA, &moved)
	res := b.Build(broken)

	require.NoError(t, res.Mesh.Validate())
	assert.Equal(t, 6, res.Stats.SkippedDistance)
	for r := 0; r <= 10; r++ {
		require.Contains(t, res.Index, r)
		assert.Equal(t, base.Index[r], res.Index[r], "residue %d", r)
		for _, id := range res.Index[r] {
			assert.Equal(t, base.Mesh.Vertices[id], res.Mesh.Vertices[id])
		}
	}
	for r := 11; r <= 16; r++ {
		assert.NotContains(t, res.Index, r)
	}
	for r := 17; r < 20; r++ {
		assert.Contains(t, res.Index, r)
	}

	// Without the check the stretched window is meshed.
	s := DefaultStyle()
	s.CheckDistance = false
	assert.Equal(t, 0, newTestBuilder(t, s).Build(broken).Stats.SkippedDistance)
}

func TestBuildTapersToChainEnds(t *testing.T) {
	rs := proteinChain(repeat(molecule.Helix, 10)...)
	res := newTestBuilder(t, DefaultStyle()).Build(rs)

	first, _ := position(rs[0], molecule.AtomCA, true)
	last, _ := position(rs[len(rs)-1], molecule.AtomCA, true)
	count := func(p math.Vec3) int {
		n := 0
		for _, v := range res.Mesh.Vertices {
			if near(v, p, 2e-4) {
				n++
			}
		}
		return n
	}
	assert.Equal(t, 1, count(first))
	assert.Equal(t, 1, count(last))
}

func TestBuildColorBlend(t *testing.T) {
	style := DefaultStyle()
	rs := proteinChain(concat(repeat(molecule.Coil, 5), repeat(molecule.Helix, 10))...)
	frames := chainFrames(rs, ProteinAtoms, true)
	NormalizeOrientation(frames)

	// The window whose second frame is centered on the first helix residue.
	const w = 5
	win := &window{index: w, frames: [4]*Frame{&frames[w], &frames[w+1], &frames[w+2], &frames[w+3]}}
	from, to := win.frames[1].Transition()
	require.Equal(t, molecule.Coil, from)
	require.Equal(t, molecule.Helix, to)

	steps, points := style.detail()
	policy := proteinSegments{style: style}
	mw := newMeshWriter(steps, points)
	mw.meshSegment(win, policy)
	assert.Equal(t, []int{w}, keys(mw.index))

	p1, p2 := policy.profiles(win, points)
	r1 := splineRings(win.frames, p1, steps)
	r2 := splineRings(win.frames, p2, steps)
	ease := policy.easing(win)
	coil, helix := style.Palette.Coil, style.Palette.Helix

	colorAt := func(t *testing.T, j, a int) (Color, float32) {
		t.Helper()
		e := ease.Apply(float32(a) / float32(steps))
		id, ok := mw.weld[quantize(r1[j][a].Lerp(r2[j][a], e))]
		require.True(t, ok, "ring %d point %d not emitted", a, j)
		return mw.mesh.Colors[id], e
	}

	for j := 0; j < points; j++ {
		c, _ := colorAt(t, j, 0)
		assert.Equal(t, coil, c, "start ring point %d", j)
		c, _ = colorAt(t, j, steps)
		assert.Equal(t, helix, c, "end ring point %d", j)
	}

	// An intermediate ring lies on the segment from the coil to the helix color
	// at its eased parameter.
	c, e := colorAt(t, 0, steps/2)
	require.True(t, e > 0 && e < 1, "eased parameter %f", e)
	assert.InDelta(t, coil.R+(helix.R-coil.R)*e, c.R, 1e-6)
	assert.InDelta(t, coil.G+(helix.G-coil.G)*e, c.G, 1e-6)
	assert.InDelta(t, coil.B+(helix.B-coil.B)*e, c.B, 1e-6)
	assert.True(t, between(c.R, coil.R, helix.R) && between(c.G, coil.G, helix.G) && between(c.B, coil.B, helix.B))
}

func between(v, a, b float32) bool {
	lo, hi := min(a, b), max(a, b)
	return v >= lo-1e-6 && v <= hi+1e-6
}

func keys(m ResidueVertexIndex) []int {
	var out []int
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestBuildArrowCaps(t *testing.T) {
	ss := concat(
		repeat(molecule.Coil, 3), repeat(molecule.Strand, 5),
		repeat(molecule.Coil, 3), repeat(molecule.Strand, 5),
		repeat(molecule.Coil, 3),
	)
	res := newTestBuilder(t, DefaultStyle()).Build(zigzagChain(ss...))
	require.NoError(t, res.Mesh.Validate())
	assert.Equal(t, 2, res.Stats.Caps)
	assert.Zero(t, res.Stats.SkippedDistance)
}

func TestBuildTubeGrowsOutOfArrowTip(t *testing.T) {
	ss := concat(repeat(molecule.Coil, 3), repeat(molecule.Strand, 5), repeat(molecule.Coil, 6))
	res := newTestBuilder(t, DefaultStyle()).Build(zigzagChain(ss...))
	require.NoError(t, res.Mesh.Validate())
	require.Equal(t, 1, res.Stats.Caps)

	// Window 8 starts on the arrow tip (its second frame is E, C, C).
	const after = 8
	owned := make(map[uint32]bool)
	for _, id := range res.Index[after] {
		owned[id] = true
	}
	require.NotEmpty(t, owned)

	var area float32
	for i := 0; i+2 < len(res.Mesh.Triangles); i += 3 {
		a, b, c := res.Mesh.Triangles[i], res.Mesh.Triangles[i+1], res.Mesh.Triangles[i+2]
		if !owned[a] && !owned[b] && !owned[c] {
			continue
		}
		pa, pb, pc := res.Mesh.Vertices[a], res.Mesh.Vertices[b], res.Mesh.Vertices[c]
		area += pb.Sub(pa).Cross(pc.Sub(pa)).Length() / 2
	}
	assert.Greater(t, area, float32(0.01))

	// The body ends in the arrow's back face; the head, the tip window and the
	// trailing coil form the second piece.
	assert.Equal(t, 2, components(&res.Mesh))
}

func TestBuildDegenerateInput(t *testing.T) {
	b := newTestBuilder(t, DefaultStyle())
	tests := []struct {
		name     string
		residues []Residue
	}{
		{"empty", nil},
		{"single residue", proteinChain(molecule.Coil)},
		{"no atoms", []Residue{molecule.NewResidue(1, "ALA", molecule.Coil, nil), molecule.NewResidue(2, "ALA", molecule.Coil, nil)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := b.Build(tt.residues)
			assert.NoError(t, res.Mesh.Validate())
			assert.Zero(t, res.Stats.Meshed)
			assert.Empty(t, res.Mesh.Triangles)
		})
	}
}

func TestBuildFastStyle(t *testing.T) {
	rs := proteinChain(repeat(molecule.Helix, 10)...)
	detailed := newTestBuilder(t, DefaultStyle()).Build(rs)
	fast := newTestBuilder(t, TrajectoryStyle()).Build(rs)
	require.NoError(t, fast.Mesh.Validate())
	assert.Less(t, fast.Mesh.VertexCount(), detailed.Mesh.VertexCount())
}

func TestResiduesConversion(t *testing.T) {
	rs := []molecule.Residue{molecule.NewResidue(1, "ALA", molecule.Coil, nil)}
	out := Residues(rs)
	require.Len(t, out, 1)
	assert.Equal(t, 1, out[0].ID())
}
