package cartoon

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Faultbox/ribbon/pkg/molecule"
)

// Color is an RGBA color with float components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// RGB creates an opaque color from 8-bit components.
func RGB(r, g, b uint8) Color {
	return Color{
		R: float32(r) / 255.0,
		G: float32(g) / 255.0,
		B: float32(b) / 255.0,
		A: 1.0,
	}
}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa".
func ParseHexColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("color %q: want #rrggbb or #rrggbbaa", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return Color{
		R: float32(v>>24&0xff) / 255.0,
		G: float32(v>>16&0xff) / 255.0,
		B: float32(v>>8&0xff) / 255.0,
		A: float32(v&0xff) / 255.0,
	}, nil
}

// mustHex is for the built-in palette only.
func mustHex(s string) Color {
	c, err := ParseHexColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats the color as "#rrggbb", or "#rrggbbaa" when not opaque.
func (c Color) Hex() string {
	b := func(f float32) uint8 { return uint8(f*255 + 0.5) }
	if c.A >= 1 {
		return fmt.Sprintf("#%02x%02x%02x", b(c.R), b(c.G), b(c.B))
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", b(c.R), b(c.G), b(c.B), b(c.A))
}

// Lerp blends linearly from c (t=0) to other (t=1).
func (c Color) Lerp(other Color, t float32) Color {
	s := 1 - t
	return Color{
		R: c.R*s + other.R*t,
		G: c.G*s + other.G*t,
		B: c.B*s + other.B*t,
		A: c.A*s + other.A*t,
	}
}

// Palette holds one color per secondary-structure family, plus the colors of
// the nucleic acid variant.
type Palette struct {
	Helix      Color
	Helix310   Color
	HelixPi    Color
	HelixOther Color
	Strand     Color
	Coil       Color

	NucleicBackbone Color
	BaseA           Color
	BaseC           Color
	BaseG           Color
	BaseT           Color
}

// DefaultPalette returns the colorblind-safe defaults.
func DefaultPalette() Palette {
	return Palette{
		Helix:      mustHex("#e69f00"),
		Helix310:   mustHex("#d55e00"),
		HelixPi:    mustHex("#fae442"),
		HelixOther: mustHex("#cc79a7"),
		Strand:     mustHex("#0072b2"),
		Coil:       mustHex("#9b9b9b"),

		NucleicBackbone: mustHex("#1a237e"),
		BaseA:           mustHex("#d81b60"),
		BaseC:           mustHex("#1e88e5"),
		BaseG:           mustHex("#ffc107"),
		BaseT:           mustHex("#004d40"),
	}
}

// For returns the color of a secondary-structure class.
func (p Palette) For(ss molecule.SecondaryStructure) Color {
	switch ss {
	case molecule.HelixRightOmega, molecule.HelixRightGamma, molecule.HelixLeftAlpha,
		molecule.HelixLeftOmega, molecule.HelixLeftGamma, molecule.PolyProline, molecule.Helix27:
		return p.HelixOther
	case molecule.HelixRightPi:
		return p.HelixPi
	case molecule.Helix310:
		return p.Helix310
	case molecule.Helix:
		return p.Helix
	case molecule.Strand:
		return p.Strand
	default:
		return p.Coil
	}
}

// transitionColors returns the start and end colors of a window. A strand keeps
// its own color up to the arrow tip.
func (p Palette) transitionColors(from, to molecule.SecondaryStructure) (Color, Color) {
	c1 := p.For(from)
	if from == molecule.Strand {
		return c1, c1
	}
	return c1, p.For(to)
}
