package cartoon

import (
	stdmath "math"

	"github.com/Faultbox/ribbon/pkg/math"
)

const (
	capsuleSegments = 32
	capsuleRings    = 8
)

// pointOnSpheroid returns the point of a spheroid at the given longitude and
// latitude, both in degrees.
func pointOnSpheroid(radius, height, horizontal, vertical float64) math.Vec3 {
	h := horizontal * stdmath.Pi / 180
	v := vertical * stdmath.Pi / 180
	cv := stdmath.Cos(v)
	return math.Vec3{
		X: float32(radius * stdmath.Sin(h) * cv),
		Y: float32(height * stdmath.Sin(v)),
		Z: float32(radius * stdmath.Cos(h) * cv),
	}
}

// Capsule builds a capsule of total length height along +Y, centered on the
// origin. Vertex 0 and 1 are the top and bottom poles, followed by
// segments columns of rings top/bottom vertex pairs.
func Capsule(height, radius float32, segments, rings int) MeshBuffers {
	cylinder := float64(height - 2*radius)
	r := float64(radius)
	vertexCount := 2*rings*segments + 2
	hStep := 360 / float64(segments)
	vStep := 90 / float64(rings)

	m := MeshBuffers{
		Vertices:  make([]math.Vec3, vertexCount),
		Normals:   make([]math.Vec3, vertexCount),
		Triangles: make([]uint32, 0, 3*4*rings*segments),
	}
	const top, bottom = 0, 1
	m.Vertices[top] = math.Vec3{Y: float32(cylinder/2 + r)}
	m.Normals[top] = math.Vec3{Y: 1}
	m.Vertices[bottom] = math.Vec3{Y: float32(-cylinder/2 - r)}
	m.Normals[bottom] = math.Vec3{Y: -1}

	tri := func(a, b, c int) {
		m.Triangles = append(m.Triangles, uint32(a), uint32(b), uint32(c))
	}
	// wrap closes the last column onto the first.
	wrap := func(s, i int) int {
		if s == 0 {
			return i + vertexCount - 2
		}
		return i
	}

	vi := 2
	for s := 0; s < segments; s++ {
		for ring := 1; ring <= rings; ring++ {
			n := pointOnSpheroid(1, 1, float64(s)*hStep, 90-float64(ring)*vStep)
			v := math.Vec3{X: float32(r) * n.X, Y: float32(r)*n.Y + float32(cylinder/2), Z: float32(r) * n.Z}
			m.Vertices[vi], m.Normals[vi] = v, n
			vi++
			m.Vertices[vi] = math.Vec3{X: v.X, Y: -v.Y, Z: v.Z}
			m.Normals[vi] = math.Vec3{X: n.X, Y: -n.Y, Z: n.Z}
			vi++

			topS1R1, topS1R0 := vi-2, vi-4
			botS1R1, botS1R0 := vi-1, vi-3
			topS0R1, topS0R0 := wrap(s, topS1R1-2*rings), wrap(s, topS1R0-2*rings)
			botS0R1, botS0R0 := wrap(s, botS1R1-2*rings), wrap(s, botS1R0-2*rings)

			if ring == 1 {
				tri(top, topS0R1, topS1R1)
				tri(bottom, botS1R1, botS0R1)
				continue
			}
			tri(topS1R0, topS0R0, topS1R1)
			tri(topS0R0, topS0R1, topS1R1)
			tri(botS0R1, botS0R0, botS1R1)
			tri(botS0R0, botS1R0, botS1R1)
		}

		topS1, botS1 := vi-2, vi-1
		topS0, botS0 := wrap(s, topS1-2*rings), wrap(s, botS1-2*rings)
		tri(topS0, botS1, topS1)
		tri(botS0, botS1, topS0)
	}
	return m
}

// placeCapsule moves a capsule built along +Y so that it spans ori to end.
func placeCapsule(m *MeshBuffers, ori, end math.Vec3) {
	up := math.Vec3{Y: 1}
	dir := end.Sub(ori).Normalize()
	axis := up.Cross(dir)
	angle := up.SignedAngleTo(dir, axis)
	if axis.Length() < 1e-6 && dir.Y < 0 {
		axis, angle = math.Vec3{X: 1}, stdmath.Pi
	}
	rot := math.QuatFromAxisAngle(axis, angle)
	shift := end.Sub(ori).Scale(0.5)
	for i, v := range m.Vertices {
		m.Vertices[i] = rot.Rotate(v).Add(ori).Add(shift)
		m.Normals[i] = rot.Rotate(m.Normals[i])
	}
}
