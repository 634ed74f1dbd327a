// Package sim advances the player, enemies, lights and chase camera once
// per frame. It mutates the scene store and never touches the GPU.
package sim

import (
	"time"

	"github.com/Faultbox/lightfall/internal/engine/camera"
	"github.com/Faultbox/lightfall/internal/engine/input"
	"github.com/Faultbox/lightfall/internal/scene"
	"github.com/Faultbox/lightfall/pkg/math"
)

// Config holds the simulation tuning constants.
type Config struct {
	MouseSensitivity  float32   // radians per pixel of mouse travel
	MoveEpsilon       float32   // planar move vectors shorter than this are dropped
	EnemyStopDistance float32   // enemies idle inside this planar radius
	Gravity           math.Vec3 // applied to falling lights
	GroundHeight      float32   // y where falling lights land
	FrictionThreshold float32   // grounded lights slower than this stop decaying
	LightLaunchSpeed  float32   // spawn speed along the player's forward
	LightEnergy       float32   // scales the palette color into intensity
	LightPalette      []math.Vec3
	CameraOffset      math.Vec3 // right/up/forward offset from the player
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		MouseSensitivity:  0.002,
		MoveEpsilon:       0.01,
		EnemyStopDistance: 8,
		Gravity:           math.Vec3{Y: -9.81},
		GroundHeight:      -10,
		FrictionThreshold: 0.01,
		LightLaunchSpeed:  10,
		LightEnergy:       60,
		LightPalette: []math.Vec3{
			{X: 1, Y: 0.85, Z: 0.6},
			{X: 0.5, Y: 0.7, Z: 1},
			{X: 1, Y: 0.4, Z: 0.3},
			{X: 0.4, Y: 1, Z: 0.5},
		},
		CameraOffset: math.Vec3{Y: 5, Z: -20},
	}
}

// Player is the user-controlled object.
type Player struct {
	Speed  float32
	Object scene.ObjectIndex
}

// Enemy seeks the player.
type Enemy struct {
	Speed  float32
	Object scene.ObjectIndex
}

// Time is the frame clock in seconds.
type Time struct {
	Now   float32
	Delta float32
}

// State is everything the frame loop threads through simulation and
// rendering. The scene store must outlive the handles held here.
type State struct {
	Scene   *scene.Store
	Camera  *camera.Camera
	Player  Player
	Enemies []Enemy
	Time    Time

	// LightMarker is the template object created with each light.
	LightMarker scene.Object
}

// Events reports state transitions that happened during a step.
type Events struct {
	Spawned  []scene.LightIndex
	Grounded []scene.LightIndex
}

// Engine runs the per-frame simulation.
type Engine struct {
	cfg Config
}

// New creates an engine.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Config returns the engine tuning.
func (e *Engine) Config() Config {
	return e.cfg
}

// Step advances the simulation by st.Time.Delta: player, enemies,
// lights, then the camera. A spawn request in the intent is handled
// after the player moves so the light starts at the new position.
func (e *Engine) Step(st *State, in input.Intent) Events {
	var ev Events

	e.UpdatePlayer(st, in)
	e.UpdateEnemies(st)
	if in.Spawn {
		if idx, ok := e.SpawnLight(st); ok {
			ev.Spawned = append(ev.Spawned, idx)
		}
	}
	ev.Grounded = e.UpdateLights(st)
	e.UpdateCamera(st)

	return ev
}

// Clock measures wall time between frames.
type Clock struct {
	now   func() time.Time
	start time.Time
	last  time.Time
}

// NewClock creates a clock reading the system time.
func NewClock() *Clock {
	return newClock(time.Now)
}

func newClock(now func() time.Time) *Clock {
	t := now()
	return &Clock{now: now, start: t, last: t}
}

// Tick returns the time since start and since the previous tick.
func (c *Clock) Tick() Time {
	t := c.now()
	delta := t.Sub(c.last)
	c.last = t
	return Time{
		Now:   float32(t.Sub(c.start).Seconds()),
		Delta: float32(delta.Seconds()),
	}
}
