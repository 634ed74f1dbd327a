package math

import (
	"testing"
)

func TestVec2Length(t *testing.T) {
	v := Vec2{3, 4}
	if got := v.Length(); got != 5 {
		t.Errorf("Vec2.Length() = %v, want 5", got)
	}
}

func TestVec2Normalize(t *testing.T) {
	l := Vec2{3, 4}.Normalize().Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec2.Normalize().Length() = %v, want ~1", l)
	}
	if got := (Vec2{}).Normalize(); got != (Vec2{}) {
		t.Errorf("zero Vec2.Normalize() = %v, want zero", got)
	}
}

func TestVec3Cross(t *testing.T) {
	got := Vec3{1, 0, 0}.Cross(Vec3{0, 1, 0})
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3XZDistance(t *testing.T) {
	a := Vec3{0, 100, 0}
	b := Vec3{3, -50, 4}
	if got := a.XZ().Distance(b.XZ()); got != 5 {
		t.Errorf("planar distance = %v, want 5", got)
	}
}

func TestVec3ProjectOnPlane(t *testing.T) {
	tests := []struct {
		name string
		in   Vec3
		want Vec3
	}{
		{"horizontal unchanged", Vec3{1, 0, 2}, Vec3{1, 0, 2}},
		{"vertical removed", Vec3{0, 5, 0}, Vec3{}},
		{"mixed", Vec3{1, 3, -1}, Vec3{1, 0, -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.ProjectOnPlane(WorldUp); got != tt.want {
				t.Errorf("ProjectOnPlane() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVec3Array(t *testing.T) {
	v := Vec3{1, 2, 3}
	if Vec3From(v.Array()) != v {
		t.Errorf("Vec3From(Array()) changed value")
	}
}
