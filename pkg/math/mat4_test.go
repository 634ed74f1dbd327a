package math

import (
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(Vec3{1, 2, 3})
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(Vec3{5, 10, 15})

	// Translation lives in column 4 (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
}

func TestTransformVec3(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		in   Vec3
		want Vec3
	}{
		{"translate", Translate(Vec3{10, 20, 30}), Vec3{1, 2, 3}, Vec3{11, 22, 33}},
		{"scale", Scale(Vec3{2, 2, 2}), Vec3{1, 2, 3}, Vec3{2, 4, 6}},
		{"identity", Identity(), Vec3{-1, 0, 4}, Vec3{-1, 0, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.TransformVec3(tt.in); got != tt.want {
				t.Errorf("TransformVec3() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTRSOrder(t *testing.T) {
	// Scale first, then rotate 90 degrees about Y, then translate.
	rot := QuatFromAxisAngle(WorldUp, Radians(90))
	m := TRS(Vec3{10, 0, 0}, rot, Vec3{2, 2, 2})

	got := m.TransformVec3(Vec3{1, 0, 0})
	want := Vec3{10, 0, -2}
	if !vecNear(got, want, 1e-4) {
		t.Errorf("TRS point = %v, want %v", got, want)
	}
}

func TestTransformDirectionIgnoresTranslation(t *testing.T) {
	m := Translate(Vec3{5, 5, 5})
	got := m.TransformDirection(Vec3{0, 0, 1})
	if got != (Vec3{0, 0, 1}) {
		t.Errorf("TransformDirection = %v, want (0,0,1)", got)
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(Radians(45), 1, 0.1, 100)

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
	m := LookAt(eye, Vec3{}, WorldUp)

	// The eye maps to the view-space origin.
	got := m.TransformVec3(eye)
	if !vecNear(got, Vec3{}, 1e-5) {
		t.Errorf("LookAt eye in view space = %v, want origin", got)
	}
	// The target is straight ahead on -Z.
	got = m.TransformVec3(Vec3{})
	if !vecNear(got, Vec3{0, 0, -5}, 1e-5) {
		t.Errorf("LookAt center in view space = %v, want (0,0,-5)", got)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func vecNear(a, b Vec3, eps float32) bool {
	return abs(a.X-b.X) <= eps && abs(a.Y-b.Y) <= eps && abs(a.Z-b.Z) <= eps
}
