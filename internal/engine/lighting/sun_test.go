package lighting

import (
	"testing"

	"github.com/Faultbox/lightfall/pkg/math"
)

func TestSunDirection(t *testing.T) {
	tests := []struct {
		name string
		sun  Sun
		want math.Vec3
	}{
		{"zenith", Sun{Latitude: 90}, math.Vec3{Y: 1}},
		{"horizon north", Sun{}, math.Vec3{Z: 1}},
		{"horizon east", Sun{Longitude: 90}, math.Vec3{X: 1}},
		{"horizon south", Sun{Longitude: 180}, math.Vec3{Z: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.sun.Direction()
			if got.Distance(tt.want) > 1e-5 {
				t.Errorf("Direction() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSunDirectionIsUnit(t *testing.T) {
	for _, lon := range []float32{0, 33, 145, 270} {
		for _, lat := range []float32{-30, 0, 45, 89} {
			l := Sun{Longitude: lon, Latitude: lat}.Direction().Length()
			if l < 0.9999 || l > 1.0001 {
				t.Errorf("lon=%v lat=%v: length %v", lon, lat, l)
			}
		}
	}
}

func TestDefaultSunIsAboveHorizon(t *testing.T) {
	d := DefaultSun().Direction()
	if d.Y < 0.9 {
		t.Errorf("default sun should be high, got %v", d)
	}
}
