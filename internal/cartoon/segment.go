package cartoon

import (
	"github.com/Faultbox/ribbon/pkg/math"
	"github.com/Faultbox/ribbon/pkg/molecule"
)

// window is four consecutive frames meshed as one ribbon segment.
type window struct {
	index  int
	first  bool
	last   bool
	frames [4]*Frame
}

// anchor returns the input index of the residue the window's vertices are
// assigned to.
func (w *window) anchor() int {
	return w.frames[0].Anchor()
}

// segmentPolicy decides how a window is drawn.
type segmentPolicy interface {
	profiles(w *window, points int) (start, end Profile)
	colors(w *window) (start, end Color)
	easing(w *window) Easing
	arrowCap(w *window) bool
}

// proteinSegments draws helices as flat ribbons, strands as arrows and
// everything else as a tube, tapering at both chain ends.
type proteinSegments struct {
	style Style
}

func (p proteinSegments) profiles(w *window, points int) (Profile, Profile) {
	start, end := segmentProfiles(w.frames[1], w.frames[2], points, p.style)
	if w.first {
		start = EllipseProfile(points, 0, 0)
	} else if w.last {
		end = EllipseProfile(points, 0, 0)
	}
	return start, end
}

func (p proteinSegments) colors(w *window) (Color, Color) {
	from, to := w.frames[1].Transition()
	return p.style.Palette.transitionColors(from, to)
}

func (p proteinSegments) easing(w *window) Easing {
	from, to := w.frames[1].Transition()
	anchor := w.frames[1].Residues[0].SecondaryStructure()
	return EasingFor(anchor, from, to, w.first, w.last)
}

func (p proteinSegments) arrowCap(w *window) bool {
	from, to := w.frames[1].Transition()
	return from == molecule.Strand && to != molecule.Strand
}

// nucleotideSegments draws the nucleic acid backbone as a constant flat
// ribbon in a single color.
type nucleotideSegments struct {
	style Style
}

func (n nucleotideSegments) profiles(_ *window, points int) (Profile, Profile) {
	p := RectangleProfile(points, n.style.ArrowWidth, n.style.ArrowHeight)
	return p, p
}

func (n nucleotideSegments) colors(*window) (Color, Color) {
	c := n.style.Palette.NucleicBackbone
	return c, c
}

func (nucleotideSegments) easing(*window) Easing { return EaseLinear }

func (nucleotideSegments) arrowCap(*window) bool { return false }

// meshWriter accumulates the welded mesh of a sequential build.
type meshWriter struct {
	mesh   MeshBuffers
	weld   weldTable
	index  ResidueVertexIndex
	steps  int
	points int
	caps   int
}

func newMeshWriter(steps, points int) *meshWriter {
	return &meshWriter{
		weld:   make(weldTable),
		index:  make(ResidueVertexIndex),
		steps:  steps,
		points: points,
	}
}

// vertex returns the index of the vertex at p, emitting it with color c if
// no vertex exists within the weld tolerance.
func (w *meshWriter) vertex(p math.Vec3, c Color) uint32 {
	key := quantize(p)
	if id, ok := w.weld[key]; ok {
		return id
	}
	id := uint32(len(w.mesh.Vertices))
	w.mesh.Vertices = append(w.mesh.Vertices, key.position())
	w.mesh.Colors = append(w.mesh.Colors, c)
	w.weld[key] = id
	return id
}

// quad emits p1..p4 as the triangles (p2, p1, p3) and (p3, p1, p4). Triangles
// collapsed by welding are dropped.
func (w *meshWriter) quad(p1, p2, p3, p4 math.Vec3, c1, c2, c3, c4 Color) {
	id1 := w.vertex(p1, c1)
	id2 := w.vertex(p2, c2)
	id3 := w.vertex(p3, c3)
	id4 := w.vertex(p4, c4)
	w.triangle(id2, id1, id3)
	w.triangle(id3, id1, id4)
}

func (w *meshWriter) triangle(a, b, c uint32) {
	if a == b || b == c || a == c {
		return
	}
	w.mesh.Triangles = append(w.mesh.Triangles, a, b, c)
}

// register assigns the vertices emitted since start to a residue.
func (w *meshWriter) register(residue int, start uint32) {
	for id := start; id < uint32(len(w.mesh.Vertices)); id++ {
		w.index[residue] = append(w.index[residue], id)
	}
}

// meshSegment sweeps the window's start profile into its end profile along
// the spline through its frames.
func (w *meshWriter) meshSegment(win *window, policy segmentPolicy) {
	pd, ss := w.points, w.steps
	start := uint32(len(w.mesh.Vertices))

	p1, p2 := policy.profiles(win, pd)
	r1 := splineRings(win.frames, p1, ss)
	r2 := splineRings(win.frames, p2, ss)
	ease := policy.easing(win)
	c0, c1 := policy.colors(win)
	withCap := policy.arrowCap(win)

	for a := 0; a < ss; a++ {
		t0 := ease.Apply(float32(a) / float32(ss))
		t1 := ease.Apply(float32(a+1) / float32(ss))
		ct0, ct1 := c0.Lerp(c1, t0), c0.Lerp(c1, t1)

		for j := 0; j < pd; j++ {
			k := (j + 1) % pd
			p00 := r1[j][a].Lerp(r2[j][a], t0)
			p01 := r1[j][a+1].Lerp(r2[j][a+1], t1)
			p10 := r1[k][a].Lerp(r2[k][a], t0)
			p11 := r1[k][a+1].Lerp(r2[k][a+1], t1)
			w.quad(p10, p11, p01, p00, ct0, ct1, ct1, ct0)
		}

		if a == 0 && withCap {
			w.quad(r1[0][a], r1[3*pd/4][a], r1[pd/2][a], r1[pd/4][a], c1, c1, c1, c1)
			w.caps++
		}
	}

	w.register(win.anchor(), start)
}
