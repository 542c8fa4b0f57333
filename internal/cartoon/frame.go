package cartoon

import (
	"github.com/Faultbox/ribbon/pkg/math"
	"github.com/Faultbox/ribbon/pkg/molecule"
)

// Frame is the local reference frame spanned by three consecutive residues.
// Side, Normal and Forward are orthonormal when built from distinct atoms.
type Frame struct {
	Position math.Vec3
	Forward  math.Vec3
	Side     math.Vec3
	Normal   math.Vec3
	Flipped  bool

	// Residues are the three residues the frame was built from, Index their
	// positions in the input sequence.
	Residues [3]Residue
	Index    [3]int

	// primary caches the scene positions of the three primary atoms.
	primary [3]math.Vec3
}

// BuildFrame derives the frame of (r1, r2, r3). The second result is false
// when a required atom is missing; such a frame marks a structural gap and
// takes no further part in the build.
func BuildFrame(r1, r2, r3 Residue, atoms AtomContract, mirror bool) (Frame, bool) {
	p1, ok := position(r1, atoms.Primary, mirror)
	if !ok {
		return Frame{}, false
	}
	aux, ok := position(r1, atoms.Auxiliary, mirror)
	if !ok {
		return Frame{}, false
	}
	p2, ok := position(r2, atoms.Primary, mirror)
	if !ok {
		return Frame{}, false
	}
	p3, ok := position(r3, atoms.Primary, mirror)
	if !ok {
		return Frame{}, false
	}

	forward := p2.Sub(p1).Normalize()
	b := aux.Sub(p1).Normalize()
	normal := forward.Cross(b).Normalize()
	side := normal.Cross(forward).Normalize()

	return Frame{
		Position: p1.Midpoint(p2),
		Forward:  forward,
		Side:     side,
		Normal:   normal,
		Residues: [3]Residue{r1, r2, r3},
		primary:  [3]math.Vec3{p1, p2, p3},
	}, true
}

// Flip reverses side and normal.
func (f *Frame) Flip() {
	f.Side = f.Side.Neg()
	f.Normal = f.Normal.Neg()
	f.Flipped = !f.Flipped
}

// ControlPoint offsets the frame position by u along Side and v along Normal.
func (f *Frame) ControlPoint(u, v float32) math.Vec3 {
	return f.Position.Add(f.Side.Scale(u)).Add(f.Normal.Scale(v))
}

// Anchor is the input index of the residue a window starting at this frame
// assigns its vertices to.
func (f *Frame) Anchor() int {
	return f.Index[2]
}

// Transition returns the classes the frame's middle residue blends from and
// to. A residue whose class outranks a neighbor while matching the other
// neighbor takes the lower class on the outranked side, so one-residue
// excursions do not produce visual glitches.
func (f *Frame) Transition() (from, to molecule.SecondaryStructure) {
	ss1 := f.Residues[0].SecondaryStructure()
	ss2 := f.Residues[1].SecondaryStructure()
	ss3 := f.Residues[2].SecondaryStructure()

	from, to = ss2, ss2
	if ss2 > ss1 && ss2 == ss3 {
		from = ss1
	}
	if ss2 > ss3 && ss1 == ss2 {
		to = ss3
	}
	return from, to
}

// NormalizeOrientation flips every frame whose side vector points away from
// its predecessor's, removing the twist caused by the sign ambiguity of the
// cross products. It must run once, in order.
func NormalizeOrientation(frames []Frame) {
	for i := 1; i < len(frames); i++ {
		if frames[i].Side.Dot(frames[i-1].Side) < 0 {
			frames[i].Flip()
		}
	}
}

// chainFrames builds the frames of a chain. The walk starts two residues
// before the chain and ends one past it with clamped indices, so the end
// frames sit on the terminal atoms and the ribbon reaches both chain ends.
// A lone residue has no direction and yields no frames.
func chainFrames(residues []Residue, atoms AtomContract, mirror bool) []Frame {
	n := len(residues)
	if n < 2 {
		return nil
	}
	clamp := func(i int) int { return max(0, min(i, n-1)) }

	frames := make([]Frame, 0, n+3)
	for i := -2; i <= n; i++ {
		i1, i2, i3 := clamp(i), clamp(i+1), clamp(i+2)
		f, ok := BuildFrame(residues[i1], residues[i2], residues[i3], atoms, mirror)
		if !ok {
			continue
		}
		f.Index = [3]int{i1, i2, i3}
		if i <= 0 {
			f.Position = f.primary[0]
		}
		if i >= n-2 {
			f.Position = f.primary[2]
		}
		frames = append(frames, f)
	}
	return frames
}
