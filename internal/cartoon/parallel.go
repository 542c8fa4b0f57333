package cartoon

import (
	"context"
	stdmath "math"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/ribbon/pkg/math"
	"github.com/Faultbox/ribbon/pkg/molecule"
)

// parallelFor splits [0, n) into at most workers contiguous chunks and runs
// fn on each in its own goroutine. It returns once every chunk is done.
func parallelFor(ctx context.Context, n, workers int, fn func(lo, hi int)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if n <= 0 {
		return nil
	}
	workers = max(1, min(workers, n))
	chunk := (n + workers - 1) / workers

	g, gctx := errgroup.WithContext(ctx)
	for lo := 0; lo < n; lo += chunk {
		lo := lo
		hi := min(lo+chunk, n)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn(lo, hi)
			return nil
		})
	}
	return g.Wait()
}

// backbone is the flattened per-residue input of the parallel pipeline.
type backbone struct {
	ca, o   []math.Vec3
	ss      []molecule.SecondaryStructure
	bfactor []float32
	missing []bool
	present int
}

// flattenBackbone reads CA and O of every residue. A residue is missing when
// either atom is absent, when the next residue's id does not follow it or
// when, with the distance check on, its CA is at least MaxBackboneDistance
// away from the previous present CA.
func flattenBackbone(residues []Residue, style Style) backbone {
	n := len(residues)
	bb := backbone{
		ca:      make([]math.Vec3, n),
		o:       make([]math.Vec3, n),
		ss:      make([]molecule.SecondaryStructure, n),
		bfactor: make([]float32, n),
		missing: make([]bool, n),
	}
	minB, maxB := float32(stdmath.MaxFloat32), float32(-stdmath.MaxFloat32)
	for i, r := range residues {
		bb.missing[i] = true
		ca, okCA := r.Atom(molecule.AtomCA)
		o, okO := r.Atom(molecule.AtomO)
		if !okCA || !okO {
			continue
		}
		if i < n-1 {
			id1, id2 := r.ID(), residues[i+1].ID()
			if id2-id1 > idGapLimit(id1, id2) {
				continue
			}
		}
		pos := toScene(ca.Position, style.MirrorX)
		if style.CheckDistance && i > 0 && !bb.missing[i-1] && pos.Distance(bb.ca[i-1]) >= style.MaxBackboneDistance {
			continue
		}

		bb.missing[i] = false
		bb.present++
		bb.ca[i] = pos
		bb.o[i] = toScene(o.Position, style.MirrorX)
		bb.ss[i] = r.SecondaryStructure()
		bb.bfactor[i] = ca.BFactor
		minB, maxB = min(minB, ca.BFactor), max(maxB, ca.BFactor)
	}

	// B-factors scale the tube between 0.5 and 2 times its radius.
	spread := maxB - minB
	for i := range bb.bfactor {
		switch {
		case bb.missing[i]:
		case spread > 0.01:
			bb.bfactor[i] = 1.5*(bb.bfactor[i]-minB)/spread + 0.5
		default:
			bb.bfactor[i] = 1
		}
	}
	return bb
}

// previous returns CA and O of residue i-1, or of i itself when i-1 is
// missing.
func (bb *backbone) previous(i int) (ca, o math.Vec3) {
	m1 := max(0, i-1)
	if bb.missing[m1] {
		return bb.ca[i], bb.o[i]
	}
	return bb.ca[m1], bb.o[m1]
}

// BuildParallel meshes a protein chain in four data-parallel passes. The mesh
// is a four-sided tube per spline point and is not welded. A chain with
// fewer than three usable residues gives an empty result. The only error is
// the context's.
func (b *Builder) BuildParallel(ctx context.Context, residues []Residue) (Result, error) {
	empty := Result{Index: make(ResidueVertexIndex)}
	bb := flattenBackbone(residues, b.style)
	if bb.present < 3 {
		b.log.Debug("not enough residues for a parallel cartoon", zap.Int("present", bb.present))
		return empty, ctx.Err()
	}

	steps, _ := b.style.detail()
	np := steps + 2
	nbRes := len(residues)
	nbPoints := np * nbRes
	workers := b.style.workers()

	// Pass 0: reference normals, each depending on the previous one.
	ref := make([]math.Vec3, nbRes)
	for i := 1; i < nbRes; i++ {
		caM1, oM1 := bb.previous(i)
		a := bb.ca[i].Sub(caM1)
		c := a.Cross(oM1.Sub(caM1))
		d := c.Cross(a)
		if d.Dot(ref[i-1]) < 0 {
			d = d.Neg()
		}
		g := ref[i-1].Add(d).Normalize()
		if g.IsNaN() {
			g = math.Vec3{}
		}
		ref[i] = g
	}
	if err := ctx.Err(); err != nil {
		return empty, err
	}

	// Pass 1: control points, normals and half extents per residue.
	ctrl := make([]math.Vec3, nbRes)
	normals := make([]math.Vec3, nbRes)
	extents := make([]math.Vec2, nbRes)
	err := parallelFor(ctx, nbRes, workers, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			ctrl[i], extents[i] = b.controlPoint(&bb, i)
			normals[i] = ref[i]
			if bb.missing[i] || bb.missing[max(0, i-1)] {
				extents[i] = math.Vec2{}
				normals[i] = math.Vec3{}
			}
		}
	})
	if err != nil {
		return empty, err
	}
	normals[0] = normals[1]
	for i := 1; i < nbRes; i++ {
		if bb.missing[i] {
			ctrl[i] = ctrl[i-1]
		}
	}

	// Pass 2: spline samples per residue.
	sp := splineSamples{
		points:  make([]math.Vec3, nbPoints),
		normals: make([]math.Vec3, nbPoints),
		colors:  make([]Color, nbPoints),
		extents: make([]math.Vec2, nbPoints),
		coil:    make([]float32, nbPoints),
	}
	err = parallelFor(ctx, nbRes, workers, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			b.sampleResidue(&sp, &bb, ctrl, normals, extents, i, np)
		}
	})
	if err != nil {
		return empty, err
	}

	// Pass 3: four vertices per sample and the quads to the next sample.
	mesh := MeshBuffers{
		Vertices:  make([]math.Vec3, 4*nbPoints),
		Normals:   make([]math.Vec3, 4*nbPoints),
		Colors:    make([]Color, 4*nbPoints),
		Triangles: make([]uint32, 24*(nbPoints-1)),
	}
	err = parallelFor(ctx, nbPoints, workers, func(lo, hi int) {
		for p := lo; p < hi; p++ {
			extrudeSample(&mesh, &sp, p)
		}
	})
	if err != nil {
		return empty, err
	}

	index := make(ResidueVertexIndex, bb.present)
	per := 4 * np
	for i := range residues {
		if bb.missing[i] {
			continue
		}
		ids := make([]uint32, per)
		for j := range ids {
			ids[j] = uint32(per*i + j)
		}
		index[i] = ids
	}

	return Result{
		Mesh:  mesh,
		Index: index,
		Stats: Stats{Windows: nbRes, Meshed: bb.present, SkippedGap: nbRes - bb.present},
	}, nil
}

// controlPoint returns the spline control point and the half width and
// height of residue i.
func (b *Builder) controlPoint(bb *backbone, i int) (math.Vec3, math.Vec2) {
	s := b.style
	ca := bb.ca[i]
	if s.TubeOnly {
		r := s.TubeSize / 2
		if s.TubeByBFactor {
			r *= bb.bfactor[i]
		}
		return ca, math.Vec2{X: r, Y: r}
	}

	switch ss := bb.ss[i]; {
	case isProfileHelix(ss):
		return ca, math.Vec2{X: s.RibbonWidth / 2, Y: s.RibbonHeight / 2}
	case ss == molecule.Strand:
		ext := math.Vec2{X: s.ArrowWidth / 2, Y: s.ArrowHeight / 2}
		caM1, _ := bb.previous(i)
		caP1 := ca
		head := i+1 >= len(bb.ca)
		if !head {
			if !bb.missing[i+1] {
				caP1 = bb.ca[i+1]
			}
			head = bb.ss[i+1] != molecule.Strand
		}
		if head {
			ext.X = -s.ArrowHeadWidth / 2
		}
		return ca.Scale(2).Add(caP1).Add(caM1).Scale(0.25), ext
	default:
		r := s.TubeSize / 2
		return ca, math.Vec2{X: r, Y: r}
	}
}

// splineSamples holds the per-sample output of pass 2.
type splineSamples struct {
	points  []math.Vec3
	normals []math.Vec3
	colors  []Color
	extents []math.Vec2
	coil    []float32
}

// sampleResidue writes the np samples of residue i. A negative width marks
// an arrow head: the arrow widens over the second half of the head residue
// and narrows over the first half of the following one.
func (b *Builder) sampleResidue(sp *splineSamples, bb *backbone, ctrl, normals []math.Vec3, extents []math.Vec2, i, np int) {
	n := len(ctrl)
	im1, im2, ip1 := max(0, i-1), max(0, i-2), min(n-1, i+1)
	inv := 1 / float32(np)

	var q mat4x3
	q.blend(ctrl[im2], ctrl[im1], ctrl[i], ctrl[ip1])

	ss, ssM1, ssP1 := bb.ss[i], bb.ss[im1], bb.ss[ip1]
	cur, prev := b.style.Palette.For(ss), b.style.Palette.For(ssM1)
	base := i * np
	for j := 0; j < np; j++ {
		v := float32(j) * inv
		sp.points[base+j] = q.at(v)
		sp.normals[base+j] = normals[im1].Scale(1 - v).Add(normals[i].Scale(v)).Normalize()
		sp.colors[base+j] = prev.Lerp(cur, v)
		switch {
		case ss != molecule.Coil:
			sp.coil[base+j] = 0
		case ss != ssM1:
			sp.coil[base+j] = v
		case ss != ssP1:
			sp.coil[base+j] = 1 - v
		default:
			sp.coil[base+j] = 1
		}
	}

	wm1, w, wp1 := extents[im1].X, extents[i].X, extents[ip1].X
	hm1, h := extents[im1].Y, extents[i].Y
	height := func(v float32) float32 { return (1-v)*hm1 + v*h }
	half := np / 2

	switch {
	case w >= 0 && wm1 >= 0:
		for j := 0; j < np; j++ {
			v := float32(j) * inv
			sp.extents[base+j] = math.Vec2{X: (1-v)*wm1 + v*w, Y: height(v)}
		}
	case w < 0:
		w, wp1 = -w, float32(stdmath.Abs(float64(wp1)))
		for j := 0; j < half; j++ {
			v := float32(j) * inv
			sp.extents[base+j] = math.Vec2{X: wm1, Y: height(v)}
		}
		for j := half; j < np; j++ {
			v := float32(j) * inv
			nv := float32(j-half) * inv
			sp.extents[base+j] = math.Vec2{X: (1-nv)*w + nv*wp1, Y: height(v)}
		}
	default:
		wm1 = -wm1
		for j := 0; j < half; j++ {
			v := float32(j) * inv
			nv := float32(j+np-half) * inv
			sp.extents[base+j] = math.Vec2{X: (1-nv)*wm1 + nv*w, Y: height(v)}
		}
		for j := half; j < np; j++ {
			v := float32(j) * inv
			sp.extents[base+j] = math.Vec2{X: w, Y: height(v)}
		}
	}
}

// extrudeSample writes the four corner vertices of sample p and, unless p is
// the last sample, the eight triangles joining them to sample p+1.
func extrudeSample(m *MeshBuffers, sp *splineSamples, p int) {
	last := len(sp.points) - 1
	var front math.Vec3
	switch {
	case p < last:
		front = sp.points[p].Sub(sp.points[p+1])
	case p > 0:
		front = sp.points[p-1].Sub(sp.points[p])
	}
	normal := sp.normals[p]
	up := normal.Cross(front).Normalize()
	ext := sp.extents[p]
	center := sp.points[p]
	coil := normal.Scale(sp.coil[p])

	v := 4 * p
	m.Vertices[v] = center.Add(up.Scale(ext.Y)).Add(normal.Scale(ext.X))
	m.Vertices[v+1] = center.Add(up.Scale(ext.Y)).Sub(normal.Scale(ext.X))
	m.Vertices[v+2] = center.Sub(up.Scale(ext.Y)).Add(normal.Scale(ext.X))
	m.Vertices[v+3] = center.Sub(up.Scale(ext.Y)).Sub(normal.Scale(ext.X))
	m.Normals[v] = up.Add(coil)
	m.Normals[v+1] = up.Sub(coil)
	m.Normals[v+2] = up.Neg().Add(coil)
	m.Normals[v+3] = up.Neg().Sub(coil)
	for k := 0; k < 4; k++ {
		m.Colors[v+k] = sp.colors[p]
	}

	if p == last {
		return
	}
	a, n := uint32(v), uint32(v+4)
	copy(m.Triangles[24*p:], []uint32{
		a, a + 1, n, // top
		a + 1, n + 1, n,
		a + 2, n + 2, a + 3, // bottom
		a + 3, n + 2, n + 3,
		a + 2, a, n + 2, // left
		a, n, n + 2,
		a + 1, a + 3, n + 1, // right
		a + 3, n + 3, n + 1,
	})
}

// mat4x3 is the product of the B-spline basis and four control points.
type mat4x3 [4]math.Vec3

func (q *mat4x3) blend(p0, p1, p2, p3 math.Vec3) {
	for r := 0; r < 4; r++ {
		c := func(k int) float32 { return float32(bsplineBasis.At(r, k)) }
		q[r] = p0.Scale(c(0)).Add(p1.Scale(c(1))).Add(p2.Scale(c(2))).Add(p3.Scale(c(3)))
	}
}

// at evaluates the polynomial at v by Horner's rule.
func (q *mat4x3) at(v float32) math.Vec3 {
	return q[0].Scale(v).Add(q[1]).Scale(v).Add(q[2]).Scale(v).Add(q[3])
}
