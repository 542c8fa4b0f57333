// Package molecule provides read-only residue and atom views consumed by the
// cartoon mesh builders.
package molecule

// SecondaryStructure classifies the local backbone geometry of a residue.
//
// The numeric values are significant: transition smoothing treats a larger
// value as a higher priority class.
type SecondaryStructure uint8

const (
	Coil            SecondaryStructure = 0
	Helix           SecondaryStructure = 1
	HelixRightOmega SecondaryStructure = 2
	HelixRightPi    SecondaryStructure = 3
	HelixRightGamma SecondaryStructure = 4
	Helix310        SecondaryStructure = 5
	HelixLeftAlpha  SecondaryStructure = 6
	HelixLeftOmega  SecondaryStructure = 7
	HelixLeftGamma  SecondaryStructure = 8
	Helix27         SecondaryStructure = 9
	PolyProline     SecondaryStructure = 10
	Strand          SecondaryStructure = 12
	Turn            SecondaryStructure = 16
	StrandA         SecondaryStructure = 17
	Bridge          SecondaryStructure = 18
	Bend            SecondaryStructure = 19
	CoilA           SecondaryStructure = 20
)

var structureNames = map[SecondaryStructure]string{
	Coil:            "coil",
	Helix:           "helix",
	HelixRightOmega: "helix-right-omega",
	HelixRightPi:    "helix-pi",
	HelixRightGamma: "helix-right-gamma",
	Helix310:        "helix-310",
	HelixLeftAlpha:  "helix-left-alpha",
	HelixLeftOmega:  "helix-left-omega",
	HelixLeftGamma:  "helix-left-gamma",
	Helix27:         "helix-27",
	PolyProline:     "polyproline",
	Strand:          "strand",
	Turn:            "turn",
	StrandA:         "strand-a",
	Bridge:          "bridge",
	Bend:            "bend",
	CoilA:           "coil-a",
}

// String returns the lower-case name of the class.
func (s SecondaryStructure) String() string {
	if name, ok := structureNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseSecondaryStructure resolves a name produced by String.
func ParseSecondaryStructure(name string) (SecondaryStructure, bool) {
	for ss, n := range structureNames {
		if n == name {
			return ss, true
		}
	}
	return Coil, false
}

// ParseDSSP maps a one-letter DSSP code to a class.
// Unknown codes, blanks and '-' map to Coil.
func ParseDSSP(code byte) SecondaryStructure {
	switch code {
	case 'H':
		return Helix
	case 'G':
		return Helix310
	case 'I':
		return HelixRightPi
	case 'P':
		return PolyProline
	case 'E':
		return Strand
	case 'B':
		return Bridge
	case 'T':
		return Turn
	case 'S':
		return Bend
	default:
		return Coil
	}
}
