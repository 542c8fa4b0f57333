package cartoon

import (
	stdmath "math"

	"github.com/Faultbox/ribbon/pkg/molecule"
)

// Easing shapes the interpolation between a window's two profiles.
type Easing uint8

const (
	EaseLinear Easing = iota
	EaseInOutQuad
	EaseOutCirc
	EaseInCirc
)

var easingNames = map[Easing]string{
	EaseLinear:    "linear",
	EaseInOutQuad: "in-out-quad",
	EaseOutCirc:   "out-circ",
	EaseInCirc:    "in-circ",
}

func (e Easing) String() string {
	if name, ok := easingNames[e]; ok {
		return name
	}
	return "unknown"
}

// Apply maps t in [0, 1] onto [0, 1].
func (e Easing) Apply(t float32) float32 {
	x := float64(t)
	switch e {
	case EaseInOutQuad:
		if x < 0.5 {
			return float32(2 * x * x)
		}
		x = 2*x - 1
		return float32(-0.5 * (x*(x-2) - 1))
	case EaseOutCirc:
		x--
		return float32(stdmath.Sqrt(max(0, 1-x*x)))
	case EaseInCirc:
		return float32(1 - stdmath.Sqrt(max(0, 1-x*x)))
	}
	return t
}

// easingRule selects an easing when match holds. Rules are tried in order.
type easingRule struct {
	match  func(anchor, from, to molecule.SecondaryStructure, first, last bool) bool
	easing Easing
}

var proteinEasing = []easingRule{
	{func(_, _, _ molecule.SecondaryStructure, first, _ bool) bool { return first }, EaseOutCirc},
	{func(_, _, _ molecule.SecondaryStructure, _, last bool) bool { return last }, EaseInCirc},
	{func(anchor, from, _ molecule.SecondaryStructure, _, _ bool) bool {
		return anchor == molecule.Strand && from != molecule.Strand
	}, EaseOutCirc},
	{func(_, from, to molecule.SecondaryStructure, _, _ bool) bool {
		return from == molecule.Strand && to != molecule.Strand
	}, EaseLinear},
}

// EasingFor returns the easing of a protein window. anchor is the class of
// the window's second frame's first residue; first and last mark the chain
// end windows, which taper to a point.
func EasingFor(anchor, from, to molecule.SecondaryStructure, first, last bool) Easing {
	for _, r := range proteinEasing {
		if r.match(anchor, from, to, first, last) {
			return r.easing
		}
	}
	return EaseInOutQuad
}
