package sim

import (
	"github.com/Faultbox/lightfall/pkg/math"
)

// UpdateEnemies moves every enemy straight toward the player on the XZ
// plane until it is within the stop distance.
func (e *Engine) UpdateEnemies(st *State) {
	target := st.Scene.Object(st.Player.Object).Transform.Position
	stop := max(e.cfg.EnemyStopDistance, 0)

	for _, enemy := range st.Enemies {
		tf := &st.Scene.Object(enemy.Object).Transform

		dist := tf.Position.XZ().Distance(target.XZ())
		if dist <= stop {
			continue
		}

		dir := target.Sub(tf.Position).ProjectOnPlane(math.WorldUp).Normalize()
		step := min(enemy.Speed*st.Time.Delta, dist-stop)
		tf.Position = tf.Position.Add(dir.Scale(step))
		tf.Rotation = math.QuatLookRotation(dir, math.WorldUp)
	}
}
