// Package camera provides the perspective camera used for rendering.
package camera

import (
	"github.com/Faultbox/lightfall/pkg/math"
)

// Camera is a perspective camera described by a look direction rather
// than a target point.
type Camera struct {
	Position math.Vec3
	Look     math.Vec3
	Up       math.Vec3

	FovYDegrees float32
	Near        float32
	Far         float32

	Width  int
	Height int
}

// New creates a camera at the origin looking down +Z.
func New(width, height int) *Camera {
	return &Camera{
		Look:        math.WorldForward,
		Up:          math.WorldUp,
		FovYDegrees: 45,
		Near:        0.1,
		Far:         10000,
		Width:       width,
		Height:      height,
	}
}

// SetViewport updates the viewport dimensions.
func (c *Camera) SetViewport(width, height int) {
	c.Width, c.Height = width, height
}

// Aspect returns width/height, or 1 for an empty viewport.
func (c *Camera) Aspect() float32 {
	if c.Height <= 0 || c.Width <= 0 {
		return 1
	}
	return float32(c.Width) / float32(c.Height)
}

// View returns the view matrix.
func (c *Camera) View() math.Mat4 {
	up := c.Up
	// Looking straight along up has no defined roll; borrow forward.
	if c.Look.Normalize().Cross(up.Normalize()).Length() < 1e-4 {
		up = math.WorldForward
	}
	return math.LookAt(c.Position, c.Position.Add(c.Look), up)
}

// Projection returns the perspective projection matrix.
func (c *Camera) Projection() math.Mat4 {
	return math.Perspective(math.Radians(c.FovYDegrees), c.Aspect(), c.Near, c.Far)
}

// Follow frames a target rigidly: the camera sits at offset in the
// target's local right/up/forward frame and looks along forward.
func (c *Camera) Follow(position, right, up, forward, offset math.Vec3) {
	c.Position = position.
		Add(right.Scale(offset.X)).
		Add(up.Scale(offset.Y)).
		Add(forward.Scale(offset.Z))
	c.Look = forward
}
