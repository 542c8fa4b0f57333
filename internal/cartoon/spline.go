package cartoon

import (
	stdmath "math"

	"gonum.org/v1/gonum/mat"

	"github.com/Faultbox/ribbon/pkg/math"
)

// SplineDecimals is the number of decimal places spline samples are rounded
// to, so that rings shared by adjacent windows weld exactly.
const SplineDecimals = 5

// bsplineBasis is the uniform cubic B-spline blending matrix.
var bsplineBasis = mat.NewDense(4, 4, []float64{
	-1.0 / 6, 3.0 / 6, -3.0 / 6, 1.0 / 6,
	3.0 / 6, -6.0 / 6, 3.0 / 6, 0,
	-3.0 / 6, 0, 3.0 / 6, 0,
	1.0 / 6, 4.0 / 6, 1.0 / 6, 0,
})

// controlPoints returns the 4x3 geometry matrix of the profile point (u, v)
// carried by four frames.
func controlPoints(frames *[4]*Frame, u, v float32) *mat.Dense {
	g := mat.NewDense(4, 3, nil)
	for i, f := range frames {
		p := f.ControlPoint(u, v)
		g.SetRow(i, []float64{float64(p.X), float64(p.Y), float64(p.Z)})
	}
	return g
}

func roundDecimals(x float64) float32 {
	scale := stdmath.Pow10(SplineDecimals)
	return float32(stdmath.Round(x*scale) / scale)
}

func roundedVec(x, y, z float64) math.Vec3 {
	return math.Vec3{X: roundDecimals(x), Y: roundDecimals(y), Z: roundDecimals(z)}
}

// SplineRing samples the B-spline through the profile point (u, v) of four
// frames at n+1 evenly spaced parameters in [0, 1], using forward
// differences.
func SplineRing(frames [4]*Frame, n int, u, v float32) []math.Vec3 {
	var q mat.Dense
	q.Mul(bsplineBasis, controlPoints(&frames, u, v))

	h := 1 / float64(n)
	h2, h3 := h*h, h*h*h
	var value, d1, d2, d3 [3]float64
	for c := 0; c < 3; c++ {
		q0, q1, q2, q3 := q.At(0, c), q.At(1, c), q.At(2, c), q.At(3, c)
		value[c] = q3
		d1[c] = q0*h3 + q1*h2 + q2*h
		d2[c] = 6*q0*h3 + 2*q1*h2
		d3[c] = 6 * q0 * h3
	}

	out := make([]math.Vec3, n+1)
	for i := 0; i <= n; i++ {
		out[i] = roundedVec(value[0], value[1], value[2])
		for c := 0; c < 3; c++ {
			value[c] += d1[c]
			d1[c] += d2[c]
			d2[c] += d3[c]
		}
	}
	return out
}

// SplineRingDirect evaluates the same samples as SplineRing as
// [t^3 t^2 t 1] * B * G for every t.
func SplineRingDirect(frames [4]*Frame, n int, u, v float32) []math.Vec3 {
	var q mat.Dense
	q.Mul(bsplineBasis, controlPoints(&frames, u, v))

	out := make([]math.Vec3, n+1)
	var p mat.Dense
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		tv := mat.NewDense(1, 4, []float64{t * t * t, t * t, t, 1})
		p.Reset()
		p.Mul(tv, &q)
		out[i] = roundedVec(p.At(0, 0), p.At(0, 1), p.At(0, 2))
	}
	return out
}

// splineRings samples every point of a profile.
func splineRings(frames [4]*Frame, profile Profile, n int) [][]math.Vec3 {
	rings := make([][]math.Vec3, len(profile))
	for j, p := range profile {
		rings[j] = SplineRing(frames, n, p.X, p.Y)
	}
	return rings
}
