// Package camera provides the first-person camera used by the client.
package camera

import (
	"github.com/Faultbox/blockworld/pkg/math"
)

// FirstPerson looks from an eye point along a view direction. The world is
// Z-up.
type FirstPerson struct {
	Eye       math.Vec3
	Direction math.Vec3

	FOV  float32 // vertical field of view, degrees
	Near float32
	Far  float32
}

// NewFirstPerson creates a camera facing +Y.
func NewFirstPerson(fov float32) *FirstPerson {
	if fov <= 0 {
		fov = 90
	}
	return &FirstPerson{
		Direction: math.AxisY,
		FOV:       fov,
		Near:      0.05,
		Far:       500,
	}
}

// Follow places the camera at eye looking along dir.
func (c *FirstPerson) Follow(eye, dir math.Vec3) {
	c.Eye = eye
	if dir.Length() > 0 {
		c.Direction = dir.Normalize()
	}
}

// ViewMatrix returns the world-to-camera transform.
func (c *FirstPerson) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Eye, c.Eye.Add(c.Direction), math.Up)
}

// ProjectionMatrix returns the perspective projection for the given
// width/height ratio.
func (c *FirstPerson) ProjectionMatrix(aspect float32) math.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return math.Perspective(float32(math.Radians(c.FOV)), aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *FirstPerson) ViewProjection(aspect float32) math.Mat4 {
	return c.ProjectionMatrix(aspect).Mul(c.ViewMatrix())
}
