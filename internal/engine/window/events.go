package window

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/lightfall/internal/engine/input"
)

var keymap = map[sdl.Scancode]input.Key{
	sdl.SCANCODE_W:      input.KeyW,
	sdl.SCANCODE_A:      input.KeyA,
	sdl.SCANCODE_S:      input.KeyS,
	sdl.SCANCODE_D:      input.KeyD,
	sdl.SCANCODE_K:      input.KeyK,
	sdl.SCANCODE_M:      input.KeyM,
	sdl.SCANCODE_F3:     input.KeyF3,
	sdl.SCANCODE_F12:    input.KeyF12,
	sdl.SCANCODE_ESCAPE: input.KeyEscape,
}

// PollEvents drains the SDL queue into in for the current frame.
func (w *Window) PollEvents(in *input.Input) {
	in.Begin()
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if e, ok := translate(event); ok {
			in.Push(e)
		}
	}
}

func translate(event sdl.Event) (input.Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return input.Event{Type: input.EventQuit}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			return input.Event{Type: input.EventWindowResize, Width: int(e.Data1), Height: int(e.Data2)}, true
		}

	case *sdl.KeyboardEvent:
		key, ok := keymap[e.Keysym.Scancode]
		if !ok {
			key = input.KeyUnknown
		}
		ev := input.Event{Key: key, Repeat: e.Repeat != 0}
		switch e.Type {
		case sdl.KEYDOWN:
			ev.Type = input.EventKeyDown
		case sdl.KEYUP:
			ev.Type = input.EventKeyUp
		default:
			return input.Event{}, false
		}
		return ev, true

	case *sdl.MouseMotionEvent:
		return input.Event{
			Type:   input.EventMouseMove,
			MouseX: int(e.X),
			MouseY: int(e.Y),
			RelX:   int(e.XRel),
			RelY:   int(e.YRel),
		}, true

	case *sdl.MouseButtonEvent:
		ev := input.Event{Button: e.Button, MouseX: int(e.X), MouseY: int(e.Y)}
		switch e.Type {
		case sdl.MOUSEBUTTONDOWN:
			ev.Type = input.EventMouseDown
		case sdl.MOUSEBUTTONUP:
			ev.Type = input.EventMouseUp
		default:
			return input.Event{}, false
		}
		return ev, true
	}
	return input.Event{}, false
}
