// Package input turns device events into per-frame intent.
package input

// EventType identifies an input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
)

// Key is a device-independent key code.
type Key int

const (
	KeyUnknown Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyK
	KeyM
	KeyF3
	KeyF12
	KeyEscape
)

// Mouse buttons.
const (
	ButtonLeft   uint8 = 1
	ButtonMiddle uint8 = 2
	ButtonRight  uint8 = 3
)

// Event is a processed input event.
type Event struct {
	Type   EventType
	Key    Key
	Repeat bool
	Width  int
	Height int
	MouseX int
	MouseY int
	RelX   int
	RelY   int
	Button uint8
}

// Intent is the per-frame input snapshot consumed by the simulation.
type Intent struct {
	Forward float32 // -1 back, +1 forward
	Strafe  float32 // -1 left, +1 right

	MouseX, MouseY   float32
	MouseDX, MouseDY float32

	// Spawn is set on the frame the left mouse button goes down.
	Spawn bool
}

// Input accumulates the events of one frame and tracks held keys.
type Input struct {
	events []Event
	down   map[Key]bool

	mouseX, mouseY float32
	dx, dy         float32
	primed         bool
	quit           bool
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
		down:   make(map[Key]bool),
	}
}

// Begin starts a new frame, dropping last frame's events and deltas.
func (i *Input) Begin() {
	i.events = i.events[:0]
	i.dx, i.dy = 0, 0
}

// Push records one event for the current frame.
func (i *Input) Push(e Event) {
	i.events = append(i.events, e)

	switch e.Type {
	case EventQuit:
		i.quit = true
	case EventKeyDown:
		i.down[e.Key] = true
	case EventKeyUp:
		delete(i.down, e.Key)
	case EventMouseMove:
		i.mouseX, i.mouseY = float32(e.MouseX), float32(e.MouseY)
		i.dx += float32(e.RelX)
		i.dy += float32(e.RelY)
	}
}

// Intent returns the movement axes and mouse state for this frame.
// The first call reports a zero mouse delta since there is no previous
// cursor position to measure against.
func (i *Input) Intent() Intent {
	in := Intent{
		Forward: axis(i.down[KeyW], i.down[KeyS]),
		Strafe:  axis(i.down[KeyD], i.down[KeyA]),
		MouseX:  i.mouseX,
		MouseY:  i.mouseY,
		MouseDX: i.dx,
		MouseDY: i.dy,
		Spawn:   i.IsButtonPressed(ButtonLeft),
	}
	if !i.primed {
		in.MouseDX, in.MouseDY = 0, 0
		i.primed = true
	}
	return in
}

func axis(pos, neg bool) float32 {
	var v float32
	if pos {
		v++
	}
	if neg {
		v--
	}
	return v
}

// Events returns the events of the current frame.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyDown reports whether a key is held.
func (i *Input) IsKeyDown(k Key) bool {
	return i.down[k]
}

// IsKeyPressed reports whether a key went down this frame. Auto-repeat
// events are ignored.
func (i *Input) IsKeyPressed(k Key) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == k && !e.Repeat {
			return true
		}
	}
	return false
}

// IsButtonPressed reports whether a mouse button went down this frame.
func (i *Input) IsButtonPressed(b uint8) bool {
	for _, e := range i.events {
		if e.Type == EventMouseDown && e.Button == b {
			return true
		}
	}
	return false
}

// Resized returns the latest window size reported this frame.
func (i *Input) Resized() (width, height int, ok bool) {
	for _, e := range i.events {
		if e.Type == EventWindowResize {
			width, height, ok = e.Width, e.Height, true
		}
	}
	return width, height, ok
}

// ShouldQuit reports whether a quit was requested.
func (i *Input) ShouldQuit() bool {
	return i.quit
}
