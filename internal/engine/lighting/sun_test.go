package lighting

import (
	"testing"

	"github.com/Faultbox/blockworld/pkg/math"
)

func approx(a, b float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-4
}

func TestSunDirection(t *testing.T) {
	tests := []struct {
		name           string
		heading, pitch float32
		want           math.Vec3
	}{
		{"forward", 0, 0, math.Vec3{X: 0, Y: 1, Z: 0}},
		{"straight down", 0, -90, math.Vec3{X: 0, Y: 0, Z: -1}},
		{"default sun", 0, -60, math.Vec3{X: 0, Y: 0.5, Z: -0.8660254}},
		{"turned left", 90, 0, math.Vec3{X: -1, Y: 0, Z: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sun(tt.heading, tt.pitch)
			if !approx(got.X, tt.want.X) || !approx(got.Y, tt.want.Y) || !approx(got.Z, tt.want.Z) {
				t.Errorf("Sun(%v, %v) = %+v, want %+v", tt.heading, tt.pitch, got, tt.want)
			}
			if !approx(got.Length(), 1) {
				t.Errorf("expected unit length, got %f", got.Length())
			}
		})
	}
}

func TestDiffuse(t *testing.T) {
	down := Sun(0, -90)

	if got := Diffuse(math.Up, down); !approx(got, 1) {
		t.Errorf("top face under a vertical sun should be fully lit, got %f", got)
	}
	if got := Diffuse(math.Down, down); !approx(got, Ambient) {
		t.Errorf("bottom face should get ambient only, got %f", got)
	}
	if got := Diffuse(math.AxisX, down); !approx(got, Ambient) {
		t.Errorf("side face should get ambient only, got %f", got)
	}
}
