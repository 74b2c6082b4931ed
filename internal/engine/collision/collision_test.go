package collision

import (
	"testing"

	"github.com/Faultbox/blockworld/pkg/math"
)

func unitBox(x, y, z float32) AABB {
	return CenteredBox(math.Vec3{X: x, Y: y, Z: z}, 0.5)
}

func near(a, b float32) bool {
	d := a - b
	return d < 1e-4 && d > -1e-4
}

func TestIntersectAABB(t *testing.T) {
	box := unitBox(0, 0, 0)

	tests := []struct {
		name       string
		ray        Ray
		wantHit    bool
		wantT      float32
		wantNormal math.Vec3
	}{
		{
			name:       "straight down onto top face",
			ray:        NewRay(math.Vec3{Z: 3}, math.Down),
			wantHit:    true,
			wantT:      2.5,
			wantNormal: math.Up,
		},
		{
			name:       "along +X into -X face",
			ray:        NewRay(math.Vec3{X: -4}, math.AxisX),
			wantHit:    true,
			wantT:      3.5,
			wantNormal: math.Vec3{X: -1},
		},
		{
			name:       "along -Y into +Y face",
			ray:        NewRay(math.Vec3{Y: 2}, math.Vec3{Y: -1}),
			wantHit:    true,
			wantT:      1.5,
			wantNormal: math.AxisY,
		},
		{
			name:    "parallel and outside",
			ray:     NewRay(math.Vec3{X: 2, Z: 3}, math.Down),
			wantHit: false,
		},
		{
			name:    "box behind origin",
			ray:     NewRay(math.Vec3{Z: 3}, math.Up),
			wantHit: false,
		},
		{
			name:    "diagonal miss",
			ray:     NewRay(math.Vec3{X: -3, Z: 3}, math.Vec3{X: 1, Z: 0.1}),
			wantHit: false,
		},
		{
			name:       "origin inside reports t=0",
			ray:        NewRay(math.Vec3{Z: 0.2}, math.Down),
			wantHit:    true,
			wantT:      0,
			wantNormal: math.Up,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotT, gotN, ok := tt.ray.IntersectAABB(box)
			if ok != tt.wantHit {
				t.Fatalf("hit = %v, want %v", ok, tt.wantHit)
			}
			if !ok {
				return
			}
			if !near(gotT, tt.wantT) {
				t.Errorf("t = %v, want %v", gotT, tt.wantT)
			}
			if gotN != tt.wantNormal {
				t.Errorf("normal = %v, want %v", gotN, tt.wantNormal)
			}
		})
	}
}

func TestNearestHit(t *testing.T) {
	ray := NewRay(math.Vec3{X: -10}, math.AxisX)
	boxes := []AABB{unitBox(6, 0, 0), unitBox(2, 0, 0), unitBox(0, 5, 0), unitBox(4, 0, 0)}

	hit, ok := NearestHit(ray, boxes)
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.Index != 1 {
		t.Errorf("index = %d, want 1", hit.Index)
	}
	if !near(hit.T, 11.5) {
		t.Errorf("t = %v, want 11.5", hit.T)
	}
	if !near(hit.Point.X, 1.5) {
		t.Errorf("point = %v, want x=1.5", hit.Point)
	}
}

func TestNearestHitTieKeepsFirst(t *testing.T) {
	// Two boxes sharing the struck plane: both are entered at the same t.
	ray := NewRay(math.Vec3{X: 0.5, Z: 5}, math.Down)
	boxes := []AABB{unitBox(1, 0, 0), unitBox(0, 0, 0)}

	hit, ok := NearestHit(ray, boxes)
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.Index != 0 {
		t.Errorf("tie should resolve to the first candidate, got %d", hit.Index)
	}

	hit, _ = NearestHit(ray, []AABB{boxes[1], boxes[0]})
	if hit.Index != 0 {
		t.Errorf("tie should resolve to the first candidate after reordering, got %d", hit.Index)
	}
}

func TestNearestHitNone(t *testing.T) {
	if _, ok := NearestHit(NewRay(math.Vec3{}, math.Up), nil); ok {
		t.Error("empty candidate set should not hit")
	}
}

func TestSpherePushOut(t *testing.T) {
	box := unitBox(0, 0, 0)

	t.Run("separated", func(t *testing.T) {
		if _, ok := SpherePushOut(math.Vec3{Z: 1}, 0.3, box); ok {
			t.Error("sphere 0.5 above the face should not overlap")
		}
	})

	t.Run("resting contact", func(t *testing.T) {
		if _, ok := SpherePushOut(math.Vec3{Z: 0.8}, 0.3, box); ok {
			t.Error("touching sphere should not be pushed")
		}
	})

	t.Run("face overlap", func(t *testing.T) {
		push, ok := SpherePushOut(math.Vec3{X: 0.7}, 0.3, box)
		if !ok {
			t.Fatal("expected overlap")
		}
		if !near(push.X, 0.1) || push.Y != 0 || push.Z != 0 {
			t.Errorf("push = %v, want (0.1, 0, 0)", push)
		}
	})

	t.Run("edge overlap pushes diagonally", func(t *testing.T) {
		push, ok := SpherePushOut(math.Vec3{X: 0.6, Y: 0.6}, 0.3, box)
		if !ok {
			t.Fatal("expected overlap")
		}
		if !near(push.X, push.Y) || push.X <= 0 {
			t.Errorf("push = %v, want equal positive X/Y", push)
		}
	})

	t.Run("center inside uses nearest face", func(t *testing.T) {
		push, ok := SpherePushOut(math.Vec3{Z: 0.4}, 0.3, box)
		if !ok {
			t.Fatal("expected overlap")
		}
		if push.X != 0 || push.Y != 0 || !near(push.Z, 0.3) {
			t.Errorf("push = %v, want (0, 0, 0.3)", push)
		}
	})
}

func TestResolveSphereCorner(t *testing.T) {
	// A sphere wedged into the inside corner of a floor and a wall.
	boxes := []AABB{unitBox(0, 0, 0), unitBox(1, 0, 1)}
	start := math.Vec3{X: 0.3, Z: 0.7}

	got, n := ResolveSphere(start, 0.3, boxes, 0)
	if n == 0 {
		t.Fatal("expected corrections")
	}
	for i, b := range boxes {
		if _, ok := SpherePushOut(got, 0.3, b); ok {
			t.Errorf("still overlapping box %d at %v", i, got)
		}
	}
	if !near(got.Z, 0.8) || !near(got.X, 0.2) {
		t.Errorf("resolved center = %v, want (0.2, 0, 0.8)", got)
	}
}

func TestResolveSphereNoOverlap(t *testing.T) {
	start := math.Vec3{Z: 5}
	got, n := ResolveSphere(start, 0.3, []AABB{unitBox(0, 0, 0)}, 4)
	if n != 0 || got != start {
		t.Errorf("got %v after %d corrections, want untouched", got, n)
	}
}
