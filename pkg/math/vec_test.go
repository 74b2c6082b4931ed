package math

import (
	"testing"
)

func TestVec3Cross(t *testing.T) {
	got := AxisX.Cross(AxisY)
	if got != Up {
		t.Errorf("Vec3.Cross() = %v, want %v", got, Up)
	}
}

func TestVec3Length(t *testing.T) {
	v := Vec3{3, 4, 0}
	if got := v.Length(); got != 5 {
		t.Errorf("Vec3.Length() = %v, want 5", got)
	}
}

func TestVec3NormalizeZero(t *testing.T) {
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("Normalize of zero vector = %v, want zero", got)
	}
}

func TestVec3Axis(t *testing.T) {
	v := Vec3{1, 2, 3}
	for i, want := range []float32{1, 2, 3} {
		if got := v.Axis(i); got != want {
			t.Errorf("Axis(%d) = %v, want %v", i, got, want)
		}
	}

	w := v.WithAxis(1, 9)
	if w != (Vec3{1, 9, 3}) {
		t.Errorf("WithAxis = %v", w)
	}
	if v.Y != 2 {
		t.Error("WithAxis must not modify the receiver")
	}
}

func TestVec3Clamp(t *testing.T) {
	lo := Vec3{-0.5, -0.5, -0.5}
	hi := Vec3{0.5, 0.5, 0.5}

	tests := []struct {
		in, want Vec3
	}{
		{Vec3{0, 0, 0}, Vec3{0, 0, 0}},
		{Vec3{2, -3, 0.25}, Vec3{0.5, -0.5, 0.25}},
		{Vec3{0, 0, 10}, Vec3{0, 0, 0.5}},
	}
	for _, tt := range tests {
		if got := tt.in.Clamp(lo, hi); got != tt.want {
			t.Errorf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
