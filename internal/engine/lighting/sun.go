// Package lighting provides light directions for the block renderer.
package lighting

import (
	gomath "math"

	"github.com/Faultbox/blockworld/pkg/math"
)

// Ambient is the light level of faces turned away from the sun.
const Ambient = 0.35

// Sun returns the unit direction a directional light shines in when
// rotated by heading and pitch in degrees. Heading 0 faces +Y and turns
// toward -X; negative pitch tilts the light down.
func Sun(heading, pitch float32) math.Vec3 {
	h := math.Radians(heading)
	p := math.Radians(pitch)
	cp := gomath.Cos(p)
	return math.Vec3{
		X: float32(-gomath.Sin(h) * cp),
		Y: float32(gomath.Cos(h) * cp),
		Z: float32(gomath.Sin(p)),
	}
}

// Diffuse returns the lit fraction of a face with the given normal, in the
// range [Ambient, 1].
func Diffuse(normal, sun math.Vec3) float32 {
	d := -normal.Dot(sun.Normalize())
	if d < 0 {
		d = 0
	}
	return Ambient + (1-Ambient)*d
}
