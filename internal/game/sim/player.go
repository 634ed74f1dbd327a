package sim

import (
	"github.com/Faultbox/lightfall/internal/engine/input"
	"github.com/Faultbox/lightfall/pkg/math"
)

// UpdatePlayer moves the player on the ground plane and applies mouse look.
func (e *Engine) UpdatePlayer(st *State, in input.Intent) {
	obj := st.Scene.Object(st.Player.Object)
	tf := &obj.Transform

	move := tf.Forward().Scale(in.Forward).
		Add(tf.Right().Scale(-in.Strafe)).
		ProjectOnPlane(math.WorldUp)
	if move.Length() > e.cfg.MoveEpsilon {
		move = move.Normalize()
	} else {
		move = math.Vec3{}
	}
	tf.Position = tf.Position.Add(move.Scale(st.Player.Speed * st.Time.Delta))

	// Both increments compose in the local frame, so sustained input
	// drifts off a level horizon.
	yaw := math.QuatFromAxisAngle(math.WorldUp, -in.MouseDX*e.cfg.MouseSensitivity)
	pitch := math.QuatFromAxisAngle(math.WorldRight, in.MouseDY*e.cfg.MouseSensitivity)
	tf.Rotation = tf.Rotation.Mul(pitch).Mul(yaw).Normalize()
}

// UpdateCamera frames the player from the configured local offset.
func (e *Engine) UpdateCamera(st *State) {
	tf := st.Scene.Object(st.Player.Object).Transform
	st.Camera.Follow(tf.Position, tf.Right(), tf.Up(), tf.Forward(), e.cfg.CameraOffset)
}
