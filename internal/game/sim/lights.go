package sim

import (
	"github.com/Faultbox/lightfall/internal/scene"
	"github.com/Faultbox/lightfall/pkg/math"
)

// UpdateLights integrates light physics and moves each marker object to
// its light. It returns the lights that landed during this step.
//
// A falling light accelerates under gravity until it reaches the ground
// height. A grounded light never falls again: its vertical velocity is
// zeroed and its horizontal velocity decays with elapsed time.
func (e *Engine) UpdateLights(st *State) []scene.LightIndex {
	l := st.Scene.Lights()
	dt := st.Time.Delta
	var landed []scene.LightIndex

	for i := 0; i < l.Count; i++ {
		p, v := l.Positions[i], l.Velocities[i]

		if !l.Grounded[i] {
			v = v.Add(e.cfg.Gravity.Scale(dt))
			p = p.Add(v.Scale(dt))
			if p.Y <= e.cfg.GroundHeight {
				p.Y = e.cfg.GroundHeight
				l.Grounded[i] = true
				landed = append(landed, scene.LightIndex(i))
			}
		} else {
			v.Y = 0
			if v.Length() > e.cfg.FrictionThreshold {
				v = v.Scale(max(0, 1-dt))
			}
			p = p.Add(v.Scale(dt))
		}

		l.Positions[i], l.Velocities[i] = p, v
		st.Scene.Object(l.Objects[i]).Transform.Position = p
	}

	return landed
}

// SpawnLight launches a light from the player's position along its
// forward axis. It fails when the light arrays are full.
func (e *Engine) SpawnLight(st *State) (scene.LightIndex, bool) {
	tf := st.Scene.Object(st.Player.Object).Transform
	count := st.Scene.Lights().Count

	color := math.Vec3{X: 1, Y: 1, Z: 1}
	if n := len(e.cfg.LightPalette); n > 0 {
		color = e.cfg.LightPalette[count%n]
	}
	marker := st.LightMarker
	marker.Name = "light"
	marker.Unlit = true
	marker.Tint = color.Normalize()
	marker.Meshes = append([]scene.MeshIndex(nil), st.LightMarker.Meshes...)

	return st.Scene.CreateLight(
		tf.Position,
		tf.Forward().Scale(e.cfg.LightLaunchSpeed),
		color.Scale(e.cfg.LightEnergy),
		marker,
	)
}
