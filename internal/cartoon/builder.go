package cartoon

import (
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/ribbon/internal/logger"
	"github.com/Faultbox/ribbon/pkg/molecule"
)

// Stats counts what a build did with its input. The parallel build has no
// windows; it reports residues as Windows, usable residues as Meshed and
// dropped residues as SkippedGap.
type Stats struct {
	Frames          int
	Windows         int
	Meshed          int
	SkippedGap      int
	SkippedDistance int
	Caps            int
	Capsules        int
}

// Result is the output of a build.
type Result struct {
	Mesh  MeshBuffers
	Index ResidueVertexIndex
	Stats Stats
}

// Builder turns residue sequences into cartoon meshes. A Builder holds no
// per-build state and may be shared between goroutines.
type Builder struct {
	style Style
	log   *zap.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger diagnostics are written to.
func WithLogger(l *zap.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.log = l
		}
	}
}

// NewBuilder validates style and returns a Builder using it.
func NewBuilder(style Style, opts ...Option) (*Builder, error) {
	if err := style.Validate(); err != nil {
		return nil, err
	}
	b := &Builder{style: style, log: logger.Named("cartoon")}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Style returns the builder's style.
func (b *Builder) Style() Style {
	return b.style
}

// Build meshes a protein chain. Windows spanning a residue id gap or a
// stretched backbone are left out; everything else is welded into a single
// mesh.
func (b *Builder) Build(residues []Residue) Result {
	return b.sweep(residues, ProteinAtoms, proteinSegments{style: b.style}, b.style.CheckDistance, nil)
}

// BuildNucleotide meshes a nucleic acid backbone and, when the style asks for
// it, one capsule per base.
func (b *Builder) BuildNucleotide(residues []Residue) Result {
	var bases *baseCapsules
	if b.style.DrawBases {
		bases = &baseCapsules{done: make(map[int]bool)}
	}
	res := b.sweep(residues, NucleotideAtoms, nucleotideSegments{style: b.style}, false, bases)
	if bases != nil {
		for _, c := range bases.meshes {
			base := res.Mesh.Append(&c.mesh)
			for i := range c.mesh.Vertices {
				res.Index[c.residue] = append(res.Index[c.residue], base+uint32(i))
			}
		}
		res.Stats.Capsules = len(bases.meshes)
	}
	return res
}

// sweep runs the shared sequential pipeline: frames, orientation, window
// filtering and meshing.
func (b *Builder) sweep(residues []Residue, atoms AtomContract, policy segmentPolicy, checkDistance bool, bases *baseCapsules) Result {
	steps, points := b.style.detail()
	frames := chainFrames(residues, atoms, b.style.MirrorX)
	NormalizeOrientation(frames)

	w := newMeshWriter(steps, points)
	stats := Stats{Frames: len(frames)}
	windows := len(frames) - 3
	for i := 0; i < windows; i++ {
		stats.Windows++
		win := &window{
			index:  i,
			first:  i == 0,
			last:   i == windows-1,
			frames: [4]*Frame{&frames[i], &frames[i+1], &frames[i+2], &frames[i+3]},
		}
		if discontinuous(win.frames) {
			stats.SkippedGap++
			b.log.Debug("skipping window across residue gap", zap.Int("window", i), zap.Int("residue", win.anchor()))
			continue
		}
		if checkDistance && !windowDistanceOK(win.frames, b.style.MaxBackboneDistance) {
			stats.SkippedDistance++
			b.log.Debug("skipping stretched window", zap.Int("window", i), zap.Int("residue", win.anchor()))
			continue
		}
		w.meshSegment(win, policy)
		stats.Meshed++
		if bases != nil {
			bases.add(b, residues, win.anchor())
		}
	}
	stats.Caps = w.caps
	computeVertexNormals(&w.mesh)

	return Result{Mesh: w.mesh, Index: w.index, Stats: stats}
}

type placedCapsule struct {
	residue int
	mesh    MeshBuffers
}

// baseCapsules collects one capsule per nucleotide.
type baseCapsules struct {
	done   map[int]bool
	meshes []placedCapsule
}

func (c *baseCapsules) add(b *Builder, residues []Residue, idx int) {
	if c.done[idx] {
		return
	}
	c.done[idx] = true

	r := residues[idx]
	m, ok := b.baseCapsule(r)
	if !ok {
		b.log.Warn("cannot draw nucleotide base", zap.String("residue", r.Name()), zap.Int("id", r.ID()))
		return
	}
	c.meshes = append(c.meshes, placedCapsule{residue: idx, mesh: m})
}

// baseNames maps three-letter nucleotide names to their base.
var baseNames = map[string]byte{
	"ADE": 'A',
	"CYT": 'C',
	"GUA": 'G',
	"THY": 'T',
	"URA": 'U',
}

// nucleobase returns the base letter of a residue name: "A", "DA", "RA" or a
// three-letter name like "GUA". It returns 0 for anything else.
func nucleobase(name string) byte {
	name = strings.ToUpper(strings.TrimSpace(name))
	switch len(name) {
	case 2:
		if name[0] != 'D' && name[0] != 'R' {
			return 0
		}
		name = name[1:]
		fallthrough
	case 1:
		switch name[0] {
		case 'A', 'C', 'G', 'T', 'U':
			return name[0]
		}
	case 3:
		return baseNames[name]
	}
	return 0
}

// baseCapsule builds the capsule of a nucleotide's base, from C3' to N3 for
// pyrimidines and to N1 for purines.
func (b *Builder) baseCapsule(r Residue) (MeshBuffers, bool) {
	p := b.style.Palette
	var target string
	var color Color
	switch nucleobase(r.Name()) {
	case 'C':
		target, color = molecule.AtomN3, p.BaseC
	case 'T', 'U':
		target, color = molecule.AtomN3, p.BaseT
	case 'A':
		target, color = molecule.AtomN1, p.BaseA
	case 'G':
		target, color = molecule.AtomN1, p.BaseG
	default:
		return MeshBuffers{}, false
	}

	ori, ok := position(r, molecule.AtomC3, b.style.MirrorX)
	if !ok {
		return MeshBuffers{}, false
	}
	end, ok := position(r, target, b.style.MirrorX)
	if !ok {
		return MeshBuffers{}, false
	}

	m := Capsule(ori.Distance(end), b.style.BaseRadius, capsuleSegments, capsuleRings)
	placeCapsule(&m, ori, end)
	m.Colors = make([]Color, len(m.Vertices))
	for i := range m.Colors {
		m.Colors[i] = color
	}
	return m, true
}
