package molecule

import "github.com/Faultbox/ribbon/pkg/math"

// Common backbone atom names.
const (
	AtomCA = "CA"
	AtomO  = "O"
	AtomC3 = "C3'"
	AtomO5 = "O5'"
	AtomN1 = "N1"
	AtomN3 = "N3"
)

// Atom is a single named atom position with its temperature factor.
type Atom struct {
	Position math.Vec3
	BFactor  float32
}

// Residue is an immutable residue view. The zero value has no atoms.
type Residue struct {
	id    int
	name  string
	ss    SecondaryStructure
	atoms map[string]Atom
}

// NewResidue copies atoms so later changes to the caller's map are not seen.
func NewResidue(id int, name string, ss SecondaryStructure, atoms map[string]Atom) Residue {
	own := make(map[string]Atom, len(atoms))
	for k, v := range atoms {
		own[k] = v
	}
	return Residue{id: id, name: name, ss: ss, atoms: own}
}

// ID returns the sequence number. Gaps in consecutive ids mark missing residues.
func (r Residue) ID() int { return r.id }

// Name returns the residue name, e.g. "ALA" or "DG".
func (r Residue) Name() string { return r.name }

// SecondaryStructure returns the assigned class.
func (r Residue) SecondaryStructure() SecondaryStructure { return r.ss }

// Atom looks up an atom by name.
func (r Residue) Atom(name string) (Atom, bool) {
	a, ok := r.atoms[name]
	return a, ok
}

// AtomCount returns the number of atoms in the residue.
func (r Residue) AtomCount() int { return len(r.atoms) }
