package cartoon

import (
	stdmath "math"

	"github.com/Faultbox/ribbon/pkg/math"
	"github.com/Faultbox/ribbon/pkg/molecule"
)

// Profile is a closed 2D cross-section in a frame's (side, normal) plane.
type Profile []math.Vec2

// EllipseProfile samples an ellipse with semi axes w/2 and h/2, starting at
// 45 degrees so the four quadrants hold the same number of points.
func EllipseProfile(n int, w, h float32) Profile {
	p := make(Profile, n)
	hw, hh := w/2, h/2
	for i := range p {
		a := 2*stdmath.Pi*float64(i)/float64(n) + stdmath.Pi/4
		p[i] = math.Vec2{X: hw * float32(stdmath.Cos(a)), Y: hh * float32(stdmath.Sin(a))}
	}
	return p
}

// RectangleProfile samples the outline of a w x h rectangle, n/4 points per
// edge, counter-clockwise from the (w/2, h/2) corner.
func RectangleProfile(n int, w, h float32) Profile {
	hw, hh := w/2, h/2
	corners := [5]math.Vec2{{X: hw, Y: hh}, {X: -hw, Y: hh}, {X: -hw, Y: -hh}, {X: hw, Y: -hh}, {X: hw, Y: hh}}
	q := n / 4
	p := make(Profile, 0, n)
	for s := 0; s < 4; s++ {
		for i := 0; i < q; i++ {
			t := float32(i) / float32(q)
			p = append(p, corners[s].Lerp(corners[s+1], t))
		}
	}
	return p
}

// RoundedRectangleProfile is a w x h slab whose short sides are half circles
// of radius h/2.
func RoundedRectangleProfile(n int, w, h float32) Profile {
	r := h / 2
	hw := w/2 - r
	q := n / 4
	p := make(Profile, 0, n)
	for s := 0; s < 4; s++ {
		for i := 0; i < q; i++ {
			t := float64(i) / float64(q)
			switch s {
			case 0:
				p = append(p, math.Vec2{X: hw, Y: r}.Lerp(math.Vec2{X: -hw, Y: r}, float32(t)))
			case 1:
				a := stdmath.Pi/2 + stdmath.Pi*t
				p = append(p, math.Vec2{X: -hw + r*float32(stdmath.Cos(a)), Y: r * float32(stdmath.Sin(a))})
			case 2:
				p = append(p, math.Vec2{X: -hw, Y: -r}.Lerp(math.Vec2{X: hw, Y: -r}, float32(t)))
			case 3:
				a := 3*stdmath.Pi/2 + stdmath.Pi*t
				p = append(p, math.Vec2{X: hw + r*float32(stdmath.Cos(a)), Y: r * float32(stdmath.Sin(a))})
			}
		}
	}
	return p
}

// Translate returns the profile shifted by (dx, dy).
func (p Profile) Translate(dx, dy float32) Profile {
	out := make(Profile, len(p))
	d := math.Vec2{X: dx, Y: dy}
	for i, v := range p {
		out[i] = v.Add(d)
	}
	return out
}

// isProfileHelix reports the classes drawn as a flat ribbon.
func isProfileHelix(ss molecule.SecondaryStructure) bool {
	switch ss {
	case molecule.Helix, molecule.HelixRightOmega, molecule.Helix310,
		molecule.HelixRightGamma, molecule.HelixRightPi:
		return true
	}
	return false
}

// segmentProfiles picks the cross-sections at the start (f2) and end (f3) of
// a window. Only the start collapses right after a strand, so the following
// tube or ribbon grows out of the arrow tip.
func segmentProfiles(f2, f3 *Frame, n int, style Style) (start, end Profile) {
	from, to := f2.Transition()
	afterStrand := f2.Residues[0].SecondaryStructure() == molecule.Strand

	pick := func(ss molecule.SecondaryStructure, flipped, collapse bool) Profile {
		switch {
		case isProfileHelix(ss):
			w, h := style.RibbonWidth, style.RibbonHeight
			if collapse {
				w, h = 0, 0
			}
			off := style.RibbonOffset
			if flipped {
				off = -off
			}
			return RoundedRectangleProfile(n, w, h).Translate(0, off)
		case ss == molecule.Strand:
			if to == molecule.Strand {
				return RectangleProfile(n, style.ArrowWidth, style.ArrowHeight)
			}
			return RectangleProfile(n, style.ArrowHeadWidth, style.ArrowHeight)
		default:
			if collapse {
				return EllipseProfile(n, 0, 0)
			}
			return EllipseProfile(n, style.TubeSize, style.TubeSize)
		}
	}

	start = pick(from, f2.Flipped, afterStrand)
	end = pick(to, f3.Flipped, false)
	if from == molecule.Strand && to != molecule.Strand {
		end = RectangleProfile(n, 0, style.ArrowHeight)
	}
	return start, end
}
