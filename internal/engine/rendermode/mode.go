// Package rendermode is the renderer's path state machine. Entering the
// deferred path allocates its offscreen target; leaving keeps it warm.
package rendermode

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/lightfall/internal/logger"
)

// Mode selects the render path.
type Mode int

const (
	Forward Mode = iota
	Deferred
)

// String returns the config name of the mode.
func (m Mode) String() string {
	switch m {
	case Forward:
		return "forward"
	case Deferred:
		return "deferred"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Parse converts a config name to a Mode.
func Parse(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "forward", "":
		return Forward, nil
	case "deferred":
		return Deferred, nil
	default:
		return Forward, fmt.Errorf("unknown render mode %q", s)
	}
}

// Target is the offscreen resource owned by the deferred path.
type Target interface {
	Resize(width, height int32)
	Destroy()
}

// Allocator creates a target at the given size.
type Allocator[T Target] func(width, height int32) (T, error)

// Machine tracks the active mode and the deferred target.
type Machine[T Target] struct {
	mode   Mode
	alloc  Allocator[T]
	target T
	ready  bool
	width  int32
	height int32
}

// New creates a machine in Forward mode. Nothing is allocated until the
// deferred path is entered.
func New[T Target](alloc func(width, height int32) (T, error), width, height int32) *Machine[T] {
	return &Machine[T]{alloc: alloc, width: width, height: height}
}

// Mode returns the active mode.
func (m *Machine[T]) Mode() Mode {
	return m.mode
}

// SetMode runs the exit action of the current mode and the enter action
// of the new one. Setting the active mode again does nothing.
func (m *Machine[T]) SetMode(next Mode) {
	if next == m.mode {
		return
	}
	prev := m.mode
	m.exit(prev)
	m.mode = next
	m.enter(next)
	logger.Info("render mode changed",
		zap.Stringer("from", prev),
		zap.Stringer("to", next),
		zap.Bool("usable", m.Usable()))
}

// Toggle switches between Forward and Deferred.
func (m *Machine[T]) Toggle() {
	if m.mode == Forward {
		m.SetMode(Deferred)
	} else {
		m.SetMode(Forward)
	}
}

func (m *Machine[T]) enter(mode Mode) {
	if mode == Deferred && !m.ready {
		m.allocate()
	}
}

// exit keeps the deferred target allocated for a cheap return.
func (m *Machine[T]) exit(Mode) {}

func (m *Machine[T]) allocate() {
	t, err := m.alloc(m.width, m.height)
	if err != nil {
		logger.Error("deferred path unusable", zap.Error(err))
		return
	}
	m.target, m.ready = t, true
}

// Usable reports whether the active path can draw. Forward always can;
// Deferred needs a complete target.
func (m *Machine[T]) Usable() bool {
	return m.mode == Forward || m.ready
}

// Target returns the deferred target if one is allocated.
func (m *Machine[T]) Target() (T, bool) {
	return m.target, m.ready
}

// Resize records the viewport size and resizes the target. A deferred
// path that failed to allocate retries at the new size.
func (m *Machine[T]) Resize(width, height int32) {
	m.width, m.height = width, height
	if m.ready {
		m.target.Resize(width, height)
		return
	}
	if m.mode == Deferred {
		m.allocate()
	}
}

// Close releases the target.
func (m *Machine[T]) Close() {
	if m.ready {
		m.target.Destroy()
		var zero T
		m.target, m.ready = zero, false
	}
}
