package input

import "testing"

func TestIntentAxes(t *testing.T) {
	tests := []struct {
		name    string
		keys    []Key
		forward float32
		strafe  float32
	}{
		{"idle", nil, 0, 0},
		{"forward", []Key{KeyW}, 1, 0},
		{"back", []Key{KeyS}, -1, 0},
		{"both cancel", []Key{KeyW, KeyS}, 0, 0},
		{"strafe right", []Key{KeyD}, 0, 1},
		{"strafe left", []Key{KeyA}, 0, -1},
		{"diagonal", []Key{KeyW, KeyA}, 1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := New()
			in.Begin()
			for _, k := range tt.keys {
				in.Push(Event{Type: EventKeyDown, Key: k})
			}
			got := in.Intent()
			if got.Forward != tt.forward || got.Strafe != tt.strafe {
				t.Errorf("Intent() = (%v, %v), want (%v, %v)", got.Forward, got.Strafe, tt.forward, tt.strafe)
			}
		})
	}
}

func TestKeyHeldAcrossFrames(t *testing.T) {
	in := New()
	in.Begin()
	in.Push(Event{Type: EventKeyDown, Key: KeyW})
	if !in.IsKeyPressed(KeyW) {
		t.Error("W should be pressed on its first frame")
	}

	in.Begin()
	if in.IsKeyPressed(KeyW) {
		t.Error("W should not be pressed again on the next frame")
	}
	if !in.IsKeyDown(KeyW) || in.Intent().Forward != 1 {
		t.Error("W should still be held")
	}

	in.Begin()
	in.Push(Event{Type: EventKeyUp, Key: KeyW})
	if in.IsKeyDown(KeyW) || in.Intent().Forward != 0 {
		t.Error("W should be released")
	}
}

func TestKeyRepeatIgnored(t *testing.T) {
	in := New()
	in.Begin()
	in.Push(Event{Type: EventKeyDown, Key: KeyK, Repeat: true})
	if in.IsKeyPressed(KeyK) {
		t.Error("auto-repeat should not count as a press")
	}
}

func TestFirstFrameMouseDeltaSuppressed(t *testing.T) {
	in := New()

	in.Begin()
	in.Push(Event{Type: EventMouseMove, MouseX: 400, MouseY: 300, RelX: 400, RelY: 300})
	first := in.Intent()
	if first.MouseDX != 0 || first.MouseDY != 0 {
		t.Errorf("first frame delta = (%v, %v), want zero", first.MouseDX, first.MouseDY)
	}
	if first.MouseX != 400 || first.MouseY != 300 {
		t.Errorf("first frame position = (%v, %v), want (400, 300)", first.MouseX, first.MouseY)
	}

	in.Begin()
	in.Push(Event{Type: EventMouseMove, MouseX: 405, MouseY: 298, RelX: 3, RelY: -1})
	in.Push(Event{Type: EventMouseMove, MouseX: 405, MouseY: 298, RelX: 2, RelY: -1})
	second := in.Intent()
	if second.MouseDX != 5 || second.MouseDY != -2 {
		t.Errorf("second frame delta = (%v, %v), want (5, -2)", second.MouseDX, second.MouseDY)
	}

	in.Begin()
	if d := in.Intent(); d.MouseDX != 0 || d.MouseDY != 0 {
		t.Errorf("still mouse should give zero delta, got (%v, %v)", d.MouseDX, d.MouseDY)
	}
}

func TestButtonAndQuit(t *testing.T) {
	in := New()
	in.Begin()
	in.Push(Event{Type: EventMouseDown, Button: ButtonLeft})
	if !in.IsButtonPressed(ButtonLeft) || in.IsButtonPressed(ButtonRight) {
		t.Error("left button press not reported correctly")
	}
	if !in.Intent().Spawn {
		t.Error("left click should request a spawn")
	}
	in.Begin()
	if in.Intent().Spawn {
		t.Error("spawn should last one frame")
	}
	if in.ShouldQuit() {
		t.Error("unexpected quit")
	}

	in.Push(Event{Type: EventQuit})
	if !in.ShouldQuit() {
		t.Error("quit event should request shutdown")
	}
}

func TestResized(t *testing.T) {
	in := New()
	in.Begin()
	if _, _, ok := in.Resized(); ok {
		t.Error("no resize expected")
	}
	in.Push(Event{Type: EventWindowResize, Width: 800, Height: 600})
	in.Push(Event{Type: EventWindowResize, Width: 1024, Height: 768})
	w, h, ok := in.Resized()
	if !ok || w != 1024 || h != 768 {
		t.Errorf("Resized() = %d, %d, %v; want latest size", w, h, ok)
	}
}
