package scene

import (
	"go.uber.org/zap"

	"github.com/Faultbox/lightfall/internal/logger"
	"github.com/Faultbox/lightfall/pkg/math"
)

// MaxLights is the fixed light capacity. Shaders size their arrays to match.
const MaxLights = 100

// LightIndex is a slot in the light arrays.
type LightIndex int

// Lights stores lights as parallel fixed-size arrays. Only the first
// Count slots are live.
type Lights struct {
	Positions   [MaxLights]math.Vec3
	Intensities [MaxLights]math.Vec3
	Velocities  [MaxLights]math.Vec3
	Grounded    [MaxLights]bool
	Objects     [MaxLights]ObjectIndex
	Count       int
}

// LightUniforms is the per-frame light data handed to the renderer.
type LightUniforms struct {
	Positions   []float32 // xyz per light
	Intensities []float32 // rgb per light
	Count       int32
}

// CreateLight adds a light together with the object that draws it.
// At capacity nothing is created and ok is false.
func (s *Store) CreateLight(pos, vel, intensity math.Vec3, marker Object) (LightIndex, bool) {
	l := &s.lights
	if l.Count >= MaxLights {
		logger.Warn("light capacity reached, ignoring new light", zap.Int("capacity", MaxLights))
		return 0, false
	}

	marker.Transform.Position = pos
	obj := s.AddObject(marker)

	i := l.Count
	l.Positions[i] = pos
	l.Velocities[i] = vel
	l.Intensities[i] = intensity
	l.Grounded[i] = false
	l.Objects[i] = obj
	l.Count++

	return LightIndex(i), true
}

// LightUniforms snapshots the live lights for upload.
func (s *Store) LightUniforms() LightUniforms {
	l := &s.lights
	u := LightUniforms{
		Positions:   make([]float32, 0, l.Count*3),
		Intensities: make([]float32, 0, l.Count*3),
		Count:       int32(l.Count),
	}
	for i := 0; i < l.Count; i++ {
		p, c := l.Positions[i], l.Intensities[i]
		u.Positions = append(u.Positions, p.X, p.Y, p.Z)
		u.Intensities = append(u.Intensities, c.X, c.Y, c.Z)
	}
	return u
}
