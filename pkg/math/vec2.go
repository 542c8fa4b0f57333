package math

// Vec2 is a 2D vector. Cross-section profiles use X for the side axis and Y for
// the normal axis of a backbone frame.
type Vec2 struct {
	X, Y float32
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Scale returns v * scalar.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Lerp interpolates linearly between v (t=0) and other (t=1).
func (v Vec2) Lerp(other Vec2, t float32) Vec2 {
	s := 1 - t
	return Vec2{v.X*s + other.X*t, v.Y*s + other.Y*t}
}
