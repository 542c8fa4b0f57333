package cartoon

import (
	stdmath "math"

	"github.com/Faultbox/ribbon/pkg/math"
)

// WeldTolerance is the grid size positions are quantized to before welding.
const WeldTolerance = 1e-4

type weldKey [3]int32

func quantize(p math.Vec3) weldKey {
	return weldKey{
		int32(stdmath.Floor(float64(p.X) / WeldTolerance)),
		int32(stdmath.Floor(float64(p.Y) / WeldTolerance)),
		int32(stdmath.Floor(float64(p.Z) / WeldTolerance)),
	}
}

// position returns the grid point a key stands for.
func (k weldKey) position() math.Vec3 {
	return math.Vec3{
		X: float32(float64(k[0]) * WeldTolerance),
		Y: float32(float64(k[1]) * WeldTolerance),
		Z: float32(float64(k[2]) * WeldTolerance),
	}
}

// weldTable maps quantized positions to vertex indices already emitted.
type weldTable map[weldKey]uint32
