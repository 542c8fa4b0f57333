// Package chainfile reads backbone chains from YAML files.
//
// A file lists chains, each an ordered list of residues:
//
//	chains:
//	  - id: A
//	    kind: protein
//	    residues:
//	      - {id: 1, name: MET, ss: C, atoms: {CA: [0.0, 1.2, 3.4], O: [0.5, 1.9, 3.1, 12.0]}}
//
// Secondary structure is a DSSP code (H, G, I, E, ...) or a class name
// ("helix", "strand-a", ...). An atom is [x, y, z] with an optional fourth
// B-factor.
package chainfile

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/ribbon/pkg/math"
	"github.com/Faultbox/ribbon/pkg/molecule"
)

var (
	ErrNoChains         = errors.New("chain file has no chains")
	ErrInvalidAtom      = errors.New("invalid atom coordinates")
	ErrUnknownStructure = errors.New("unknown secondary structure")
	ErrUnknownChainKind = errors.New("unknown chain kind")
)

// Chain kinds.
const (
	KindProtein = "protein"
	KindNucleic = "nucleic"
)

// File is a parsed chain file.
type File struct {
	Chains []Chain
}

// Chain is one ordered backbone.
type Chain struct {
	ID       string
	Kind     string
	Residues []molecule.Residue
}

type fileDoc struct {
	Chains []chainDoc `yaml:"chains"`
}

type chainDoc struct {
	ID       string       `yaml:"id"`
	Kind     string       `yaml:"kind"`
	Residues []residueDoc `yaml:"residues"`
}

type residueDoc struct {
	ID    int                  `yaml:"id"`
	Name  string               `yaml:"name"`
	SS    string               `yaml:"ss"`
	Atoms map[string][]float32 `yaml:"atoms"`
}

// Parse parses a chain file from raw bytes.
func Parse(data []byte) (*File, error) {
	var doc fileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding chain file: %w", err)
	}
	if len(doc.Chains) == 0 {
		return nil, ErrNoChains
	}

	f := &File{Chains: make([]Chain, 0, len(doc.Chains))}
	for i, cd := range doc.Chains {
		c, err := parseChain(cd)
		if err != nil {
			return nil, fmt.Errorf("chain %d (%s): %w", i, cd.ID, err)
		}
		f.Chains = append(f.Chains, c)
	}
	return f, nil
}

// ParseFile parses a chain file from disk.
func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading chain file: %w", err)
	}
	return Parse(data)
}

func parseChain(cd chainDoc) (Chain, error) {
	kind := cd.Kind
	switch kind {
	case "":
		kind = KindProtein
	case KindProtein, KindNucleic:
	default:
		return Chain{}, fmt.Errorf("%w: %q", ErrUnknownChainKind, kind)
	}

	c := Chain{ID: cd.ID, Kind: kind, Residues: make([]molecule.Residue, 0, len(cd.Residues))}
	for i, rd := range cd.Residues {
		r, err := parseResidue(rd)
		if err != nil {
			return Chain{}, fmt.Errorf("residue %d (id %d): %w", i, rd.ID, err)
		}
		c.Residues = append(c.Residues, r)
	}
	return c, nil
}

func parseResidue(rd residueDoc) (molecule.Residue, error) {
	ss, err := parseStructure(rd.SS)
	if err != nil {
		return molecule.Residue{}, err
	}
	atoms := make(map[string]molecule.Atom, len(rd.Atoms))
	for name, v := range rd.Atoms {
		if len(v) != 3 && len(v) != 4 {
			return molecule.Residue{}, fmt.Errorf("%w: %s has %d values", ErrInvalidAtom, name, len(v))
		}
		a := molecule.Atom{Position: math.Vec3{X: v[0], Y: v[1], Z: v[2]}}
		if len(v) == 4 {
			a.BFactor = v[3]
		}
		atoms[name] = a
	}
	return molecule.NewResidue(rd.ID, rd.Name, ss, atoms), nil
}

// parseStructure accepts a single DSSP code or a class name. An empty value
// is coil.
func parseStructure(s string) (molecule.SecondaryStructure, error) {
	if len(s) <= 1 {
		code := byte(' ')
		if len(s) == 1 {
			code = s[0]
		}
		return molecule.ParseDSSP(code), nil
	}
	if ss, ok := molecule.ParseSecondaryStructure(s); ok {
		return ss, nil
	}
	return molecule.Coil, fmt.Errorf("%w: %q", ErrUnknownStructure, s)
}
