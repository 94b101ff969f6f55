package input

import (
	"gioui.org/f32"

	"github.com/dshills/framekit/internal/input/key"
	"github.com/dshills/framekit/internal/input/mouse"
)

// ButtonState is the per-key or per-button state record.
//
// Down is a level flag that stays set from a press until its release.
// Pressed and Released are edge flags, set only for the ingestion cycle in
// which the transition occurred.
type ButtonState struct {
	Down     bool
	Pressed  bool
	Released bool
}

// Transition is the kind of key or button state change reported by the host.
type Transition uint8

const (
	// Pressed reports that a key or button went down (or repeated).
	Pressed Transition = iota
	// Released reports that a key or button came up.
	Released
)

// String returns a string representation of the transition.
func (t Transition) String() string {
	switch t {
	case Pressed:
		return "pressed"
	case Released:
		return "released"
	default:
		return "unknown"
	}
}

// KeyboardEvent is a key transition reported by the host.
type KeyboardEvent struct {
	Key        key.Key
	ScanCode   uint32
	Transition Transition
}

// MouseButtonEvent is a mouse button transition reported by the host.
type MouseButtonEvent struct {
	Button     mouse.Button
	Transition Transition
}

// MouseMotionEvent carries relative pointer motion. It is never stored.
type MouseMotionEvent struct {
	Delta f32.Point
}

// CursorEvent carries the absolute pointer position in window coordinates.
type CursorEvent struct {
	Position f32.Point
}

// ResizeEvent carries the new window dimensions.
type ResizeEvent struct {
	Width  float32
	Height float32
}

// Size returns the dimensions as a vector.
func (e ResizeEvent) Size() f32.Point {
	return f32.Pt(e.Width, e.Height)
}

// Frame holds the events a host collected during one frame, grouped by
// category. Events within a category are in arrival order; no order is
// implied across categories.
type Frame struct {
	Keyboard       []KeyboardEvent
	MouseButtons   []MouseButtonEvent
	MouseMotion    []MouseMotionEvent
	CursorMoved    []CursorEvent
	Resized        []ResizeEvent
	CloseRequested bool
}

// Empty reports whether the frame carries no events.
func (f *Frame) Empty() bool {
	return len(f.Keyboard) == 0 &&
		len(f.MouseButtons) == 0 &&
		len(f.MouseMotion) == 0 &&
		len(f.CursorMoved) == 0 &&
		len(f.Resized) == 0 &&
		!f.CloseRequested
}

// Len returns the number of events in the frame, counting a close request
// as one event.
func (f *Frame) Len() int {
	n := len(f.Keyboard) + len(f.MouseButtons) + len(f.MouseMotion) +
		len(f.CursorMoved) + len(f.Resized)
	if f.CloseRequested {
		n++
	}
	return n
}

// Reset clears the frame while keeping slice capacity for reuse.
func (f *Frame) Reset() {
	f.Keyboard = f.Keyboard[:0]
	f.MouseButtons = f.MouseButtons[:0]
	f.MouseMotion = f.MouseMotion[:0]
	f.CursorMoved = f.CursorMoved[:0]
	f.Resized = f.Resized[:0]
	f.CloseRequested = false
}
