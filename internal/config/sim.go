package config

import (
	"github.com/Faultbox/lightfall/internal/game/sim"
	"github.com/Faultbox/lightfall/pkg/math"
)

// SimConfig converts the simulation section into engine tuning. Zero
// palettes fall back to the engine default.
func (s SimulationConfig) SimConfig() sim.Config {
	cfg := sim.DefaultConfig()
	cfg.MouseSensitivity = s.MouseSensitivity
	cfg.EnemyStopDistance = s.EnemyStopDistance
	cfg.Gravity = math.Vec3{Y: s.Gravity}
	cfg.GroundHeight = s.GroundHeight
	cfg.FrictionThreshold = s.FrictionThreshold
	cfg.LightLaunchSpeed = s.LightLaunchSpeed
	cfg.LightEnergy = s.LightEnergy
	cfg.CameraOffset = math.Vec3From(s.CameraOffset)
	if len(s.LightPalette) > 0 {
		cfg.LightPalette = make([]math.Vec3, len(s.LightPalette))
		for i, c := range s.LightPalette {
			cfg.LightPalette[i] = math.Vec3From(c)
		}
	}
	return cfg
}
