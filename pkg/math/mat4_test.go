package math

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
}

func TestTransformPoint(t *testing.T) {
	m := Translate(10, 20, 30)
	result := m.TransformPoint(Vec3{1, 2, 3})

	expected := Vec3{11, 22, 33}
	if result != expected {
		t.Errorf("TransformPoint: got %v, want %v", result, expected)
	}

	if d := m.TransformDirection(Vec3{1, 2, 3}); d != (Vec3{1, 2, 3}) {
		t.Errorf("TransformDirection should ignore translation, got %v", d)
	}
}

func TestTransformPointScale(t *testing.T) {
	m := Scale(2, 2, 2)
	result := m.TransformPoint(Vec3{1, 2, 3})

	expected := Vec3{2, 4, 6}
	if result != expected {
		t.Errorf("TransformPoint with scale: got %v, want %v", result, expected)
	}
}

func TestRotateY90(t *testing.T) {
	m := RotateY(math.Pi / 2)
	result := m.TransformPoint(Vec3{1, 0, 0})

	// (1,0,0) turns to (0,0,-1)
	if !result.Equals(Vec3{0, 0, -1}) {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", result)
	}
}

func TestRotateAxisMatchesQuat(t *testing.T) {
	axis := Vec3{1, 2, 2}.Normalize()
	m := RotateAxis(axis, 0.7)
	q := QuatFromAxisAngle(axis, 0.7)

	p := Vec3{3, -1, 2}
	if got, want := m.TransformPoint(p), q.Rotate(p); !got.Equals(want) {
		t.Errorf("RotateAxis = %v, quaternion = %v", got, want)
	}
	if !m.Mat3().Equals(q.ToMat3()) {
		t.Error("RotateAxis upper 3x3 should equal quaternion matrix")
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(math.Pi/4, 1.0, 0.1, 100.0)

	if m[0] == 0 || m[5] == 0 {
		t.Error("Perspective should have non-zero elements")
	}
	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}
}

func TestLookAt(t *testing.T) {
	eye := Vec3{0, 0, 5}
	m := LookAt(eye, Vec3{0, 0, 0}, Vec3{0, 1, 0})

	// The eye maps to the view-space origin.
	if got := m.TransformPoint(eye); !got.Equals(Vec3{}) {
		t.Errorf("LookAt(eye) = %v, want origin", got)
	}
}

func TestMat4Inverse(t *testing.T) {
	m := Translate(1, 2, 3).Mul(RotateX(0.3)).Mul(Scale(2, 3, 4))
	inv, err := m.Inverse()
	if err != nil {
		t.Fatalf("Inverse: %v", err)
	}

	var oracle mgl64.Mat4
	copy(oracle[:], m[:])
	want := oracle.Inv()
	for i := 0; i < 16; i++ {
		if math.Abs(inv[i]-want[i]) > 1e-9 {
			t.Errorf("element %d: got %v, mathgl says %v", i, inv[i], want[i])
		}
	}

	id := m.Mul(inv)
	for i := 0; i < 16; i++ {
		if math.Abs(id[i]-Identity()[i]) > 1e-9 {
			t.Errorf("M * M⁻¹ element %d = %v", i, id[i])
		}
	}
}

func TestMat4InverseSingular(t *testing.T) {
	_, err := Scale(1, 0, 1).Inverse()
	if !errors.Is(err, ErrSingularMatrix) {
		t.Errorf("expected ErrSingularMatrix, got %v", err)
	}
}

func TestFromMat3(t *testing.T) {
	m3 := Mat3{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	}
	m4 := FromMat3(m3)

	// Column 0 of the Mat4 is row-major column 0 of m3.
	if m4[0] != 1 || m4[1] != 4 || m4[2] != 7 {
		t.Error("FromMat3 column 0 incorrect")
	}
	if m4[15] != 1 {
		t.Errorf("FromMat3 [15] should be 1, got %f", m4[15])
	}
	if m4.Mat3() != m3 {
		t.Errorf("Mat3() round trip = %v, want %v", m4.Mat3(), m3)
	}
}
