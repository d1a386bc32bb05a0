package math

import (
	"math"
	"testing"
)

func TestVec2Add(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{3, 4}
	got := a.Add(b)
	want := Vec2{4, 6}
	if got != want {
		t.Errorf("Vec2.Add() = %v, want %v", got, want)
	}
}

func TestVec2Length(t *testing.T) {
	v := Vec2{3, 4}
	got := v.Length()
	want := 5.0
	if got != want {
		t.Errorf("Vec2.Length() = %v, want %v", got, want)
	}
}

func TestVec2Normalize(t *testing.T) {
	v := Vec2{3, 4}
	n := v.Normalize()
	l := n.Length()
	if !Equals(l, 1) {
		t.Errorf("Vec2.Normalize().Length() = %v, want 1", l)
	}
}

func TestVec2Cross(t *testing.T) {
	if got := (Vec2{1, 0}).Cross(Vec2{0, 1}); got != 1 {
		t.Errorf("Vec2.Cross() = %v, want 1", got)
	}
	if got := (Vec2{1, 0}).Perp(); got != (Vec2{0, 1}) {
		t.Errorf("Vec2.Perp() = %v, want (0,1)", got)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3NormalizeZero(t *testing.T) {
	n := Vec3{}.Normalize()
	if n.IsFinite() {
		t.Errorf("normalizing the zero vector should not produce a finite vector, got %v", n)
	}
}

func TestVec3SetLength(t *testing.T) {
	v := Vec3{0, 3, 4}.SetLength(10)
	if !v.Equals(Vec3{0, 6, 8}) {
		t.Errorf("SetLength(10) = %v, want (0,6,8)", v)
	}
}

func TestVec3Component(t *testing.T) {
	v := Vec3{1, 2, 3}
	for i, axis := range []Axis{AxisX, AxisY, AxisZ} {
		if got := v.Component(axis); got != float64(i+1) {
			t.Errorf("Component(%v) = %v, want %v", axis, got, i+1)
		}
	}

	v.SetComponent(AxisY, 7)
	if v.Y != 7 {
		t.Errorf("SetComponent(y) left Y = %v", v.Y)
	}

	defer func() {
		if recover() == nil {
			t.Error("Component with an invalid axis should panic")
		}
	}()
	v.Component(Axis(5))
}

func TestVec3InPlace(t *testing.T) {
	v := Vec3{1, 1, 1}
	v.AddAssign(Vec3{1, 2, 3})
	v.ScaleAssign(2)
	v.SubAssign(Vec3{4, 6, 8})
	if v != (Vec3{0, 0, 0}) {
		t.Errorf("in-place ops = %v, want zero", v)
	}
}

func TestFuzzyEquality(t *testing.T) {
	tests := []struct {
		a, b float64
		want bool
	}{
		{1, 1, true},
		{1, 1 + 1e-11, true},
		{1, 1 + 1e-9, false},
		{0, -1e-12, true},
	}

	for _, tt := range tests {
		if got := Equals(tt.a, tt.b); got != tt.want {
			t.Errorf("Equals(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}

	if !IsZero(1e-11) || IsZero(1e-9) {
		t.Error("IsZero tolerance should be 1e-10")
	}
	if IsFinite(math.NaN()) || IsFinite(math.Inf(-1)) || !IsFinite(0) {
		t.Error("IsFinite misclassified a value")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, min, max, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-1, 0, 1, 0},
		{2, 0, 1, 1},
	}

	for _, tt := range tests {
		if got := Clamp(tt.v, tt.min, tt.max); got != tt.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.min, tt.max, got, tt.want)
		}
	}
}
