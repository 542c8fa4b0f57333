// Package cartoon builds ribbon ("cartoon") meshes for biomolecular backbones.
//
// A build walks an ordered residue sequence, derives one local reference frame
// per three consecutive residues, sweeps a secondary-structure dependent
// cross-section along a cubic B-spline through the frames and emits a welded,
// colored triangle mesh together with the residue each vertex belongs to.
//
// Three entry points share the same contract: Builder.Build (protein, single
// threaded, welded), Builder.BuildParallel (protein, four data-parallel passes,
// unwelded) and Builder.BuildNucleotide (nucleic acid backbone plus base
// capsules). None of them fail on malformed biological input; gaps and missing
// atoms drop the affected part of the ribbon.
package cartoon

import (
	"github.com/Faultbox/ribbon/pkg/math"
	"github.com/Faultbox/ribbon/pkg/molecule"
)

// Residue is the read-only view the builders consume.
type Residue interface {
	ID() int
	Name() string
	SecondaryStructure() molecule.SecondaryStructure
	Atom(name string) (molecule.Atom, bool)
}

// Residues converts a slice of any Residue implementation.
func Residues[R Residue](rs []R) []Residue {
	out := make([]Residue, len(rs))
	for i, r := range rs {
		out[i] = r
	}
	return out
}

// AtomContract names the two backbone atoms a frame is anchored on.
type AtomContract struct {
	// Primary is read on all three residues of a frame (CA, C3').
	Primary string
	// Auxiliary is read on the first residue only and fixes the frame's plane.
	Auxiliary string
}

var (
	ProteinAtoms    = AtomContract{Primary: molecule.AtomCA, Auxiliary: molecule.AtomO}
	NucleotideAtoms = AtomContract{Primary: molecule.AtomC3, Auxiliary: molecule.AtomO5}
)

// toScene converts an input coordinate into mesh space. Structure files are
// right-handed while the mesh consumers expect a left-handed frame, so the X
// axis is mirrored. Every input position goes through here exactly once and
// emitted vertices are never converted back.
func toScene(p math.Vec3, mirror bool) math.Vec3 {
	if mirror {
		p.X = -p.X
	}
	return p
}

// position returns the scene-space position of a named atom.
func position(r Residue, atom string, mirror bool) (math.Vec3, bool) {
	a, ok := r.Atom(atom)
	if !ok {
		return math.Vec3{}, false
	}
	return toScene(a.Position, mirror), true
}
