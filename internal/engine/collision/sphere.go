package collision

import (
	"github.com/Faultbox/blockworld/pkg/math"
)

// Slop is the penetration depth ignored by push-out, so a sphere resting
// exactly on a face is not nudged by rounding error.
const Slop float32 = 1e-4

// DefaultPasses is the number of push-out passes used by ResolveSphere
// when the caller passes zero.
const DefaultPasses = 4

// SpherePushOut returns the displacement that separates a sphere from box.
// ok is false when they do not overlap.
func SpherePushOut(center math.Vec3, radius float32, box AABB) (math.Vec3, bool) {
	closest := box.ClosestPoint(center)
	delta := center.Sub(closest)
	dist := delta.Length()

	if dist >= radius-Slop {
		return math.Vec3{}, false
	}

	penetration := radius - dist
	if dist == 0 {
		// Center is inside the box; leave through the nearest face.
		return insideAxis(center, box).Scale(penetration), true
	}
	return delta.Scale(penetration / dist), true
}

// insideAxis picks the outward unit normal of the face of box closest to p.
// Ties prefer Z up, then X, then Y.
func insideAxis(p math.Vec3, box AABB) math.Vec3 {
	order := [3]int{2, 0, 1}
	best := math.Up
	bestDist := float32(-1)
	for _, axis := range order {
		toMax := box.Max.Axis(axis) - p.Axis(axis)
		toMin := p.Axis(axis) - box.Min.Axis(axis)
		if bestDist < 0 || toMax < bestDist {
			bestDist = toMax
			best = math.Vec3{}.WithAxis(axis, 1)
		}
		if toMin < bestDist {
			bestDist = toMin
			best = math.Vec3{}.WithAxis(axis, -1)
		}
	}
	return best
}

// ResolveSphere pushes a sphere out of every overlapping box, one box at a
// time, recomputing the overlap after each correction. It stops after passes
// full sweeps or once a sweep applies no correction. It returns the corrected
// center and the number of corrections applied.
func ResolveSphere(center math.Vec3, radius float32, boxes []AABB, passes int) (math.Vec3, int) {
	if passes <= 0 {
		passes = DefaultPasses
	}

	corrections := 0
	for pass := 0; pass < passes; pass++ {
		moved := false
		for _, box := range boxes {
			push, ok := SpherePushOut(center, radius, box)
			if !ok {
				continue
			}
			center = center.Add(push)
			corrections++
			moved = true
		}
		if !moved {
			break
		}
	}
	return center, corrections
}
