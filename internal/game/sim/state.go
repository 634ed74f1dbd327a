package sim

import (
	"github.com/Faultbox/lightfall/internal/engine/camera"
	"github.com/Faultbox/lightfall/internal/scene"
	"github.com/Faultbox/lightfall/pkg/math"
)

// NewState wires a populated scene into simulation state. The light
// marker template uses the populated marker mesh and scale.
func NewState(store *scene.Store, p scene.Populated, cam *camera.Camera) *State {
	st := &State{
		Scene:  store,
		Camera: cam,
		Player: Player{Speed: p.Player.Speed, Object: p.Player.Object},
	}
	for _, e := range p.Enemies {
		st.Enemies = append(st.Enemies, Enemy{Speed: e.Speed, Object: e.Object})
	}

	tf := scene.NewTransform()
	tf.Scale = math.Vec3{X: p.MarkerScale, Y: p.MarkerScale, Z: p.MarkerScale}
	st.LightMarker = scene.Object{
		Name:      "light",
		Transform: tf,
		Meshes:    []scene.MeshIndex{p.Marker},
		Unlit:     true,
	}
	return st
}
