// Package lighting describes the directional sun shared by the lit
// shader programs.
package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/lightfall/pkg/math"
)

// Sun is a directional light given as spherical angles in degrees.
type Sun struct {
	Longitude float32 `yaml:"longitude"` // rotation around Y, 0 points at +Z
	Latitude  float32 `yaml:"latitude"`  // elevation above the horizon
	Ambient   float32 `yaml:"ambient"`
	Strength  float32 `yaml:"strength"`
}

// DefaultSun is a dim, high sun that keeps unlit sides readable.
func DefaultSun() Sun {
	return Sun{Longitude: 56, Latitude: 70, Ambient: 0.12, Strength: 0.25}
}

// Direction returns the unit vector pointing towards the sun.
func (s Sun) Direction() math.Vec3 {
	lon, lat := math.Radians(s.Longitude), math.Radians(s.Latitude)
	sinLon, cosLon := math32.Sincos(lon)
	sinLat, cosLat := math32.Sincos(lat)
	return math.Vec3{
		X: cosLat * sinLon,
		Y: sinLat,
		Z: cosLat * cosLon,
	}
}
