// Package collision provides stateless ray, box and sphere tests used for
// ground detection, body push-out and block picking.
//
// Callers choose the candidate boxes; nothing here knows about the world grid.
package collision

import (
	gomath "math"

	"github.com/Faultbox/blockworld/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// NewRay creates a ray, normalizing dir.
func NewRay(origin, dir math.Vec3) Ray {
	return Ray{Origin: origin, Direction: dir.Normalize()}
}

// At returns the point at parametric distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// NewAABB creates an AABB from two corners, ordering each axis.
func NewAABB(a, b math.Vec3) AABB {
	box := AABB{Min: a, Max: b}
	for i := 0; i < 3; i++ {
		if box.Min.Axis(i) > box.Max.Axis(i) {
			lo, hi := box.Max.Axis(i), box.Min.Axis(i)
			box.Min = box.Min.WithAxis(i, lo)
			box.Max = box.Max.WithAxis(i, hi)
		}
	}
	return box
}

// CenteredBox returns the box centered on c with the given half extent.
func CenteredBox(c math.Vec3, half float32) AABB {
	h := math.Vec3{X: half, Y: half, Z: half}
	return AABB{Min: c.Sub(h), Max: c.Add(h)}
}

// Center returns the box center.
func (b AABB) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Contains reports whether p lies inside or on the box.
func (b AABB) Contains(p math.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// ClosestPoint returns the point of the box nearest to p.
func (b AABB) ClosestPoint(p math.Vec3) math.Vec3 {
	return p.Clamp(b.Min, b.Max)
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box
// using the slab method. It returns the entry distance and the unit normal of
// the face the ray enters through. A box entirely behind the origin is a miss.
// If the ray starts inside the box the hit is reported at t = 0.
func (r Ray) IntersectAABB(box AABB) (t float32, normal math.Vec3, hit bool) {
	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)
	entryAxis := -1
	var entrySign float32

	for axis := 0; axis < 3; axis++ {
		o := r.Origin.Axis(axis)
		d := r.Direction.Axis(axis)
		lo := box.Min.Axis(axis)
		hi := box.Max.Axis(axis)

		if d == 0 {
			// Parallel to this slab: must already be between its planes.
			if o < lo || o > hi {
				return 0, math.Vec3{}, false
			}
			continue
		}

		t1 := (lo - o) / d
		t2 := (hi - o) / d
		// Entering through the min plane means the face normal points to -axis.
		sign := float32(-1)
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1
		}
		if t1 > tmin {
			tmin = t1
			entryAxis = axis
			entrySign = sign
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmax < tmin {
			return 0, math.Vec3{}, false
		}
	}

	if tmax < 0 || entryAxis < 0 {
		return 0, math.Vec3{}, false
	}

	normal = math.Vec3{}.WithAxis(entryAxis, entrySign)
	if tmin < 0 {
		return 0, normal, true
	}
	return tmin, normal, true
}

// Hit is the result of a nearest-hit query.
type Hit struct {
	Index  int       // index of the struck box in the candidate slice
	T      float32   // parametric distance along the ray
	Point  math.Vec3 // surface point
	Normal math.Vec3 // unit axis normal of the struck face
}

// NearestHit returns the closest box struck by the ray.
// Equal distances resolve to the lowest index, so the result is stable for a
// fixed candidate order.
func NearestHit(r Ray, boxes []AABB) (Hit, bool) {
	best := Hit{Index: -1}
	for i, box := range boxes {
		t, n, ok := r.IntersectAABB(box)
		if !ok {
			continue
		}
		if best.Index < 0 || t < best.T {
			best = Hit{Index: i, T: t, Normal: n}
		}
	}
	if best.Index < 0 {
		return Hit{}, false
	}
	best.Point = r.At(best.T)
	return best, true
}
