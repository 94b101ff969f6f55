package input

import (
	"maps"

	"gioui.org/f32"

	"github.com/dshills/framekit/internal/input/key"
	"github.com/dshills/framekit/internal/input/mouse"
)

// WindowSize returns the current window size.
func WindowSize() f32.Point {
	return withRead(func(c *Context) f32.Point { return c.windowSize })
}

// MousePosition returns the last absolute pointer position.
func MousePosition() f32.Point {
	return withRead(func(c *Context) f32.Point { return c.mousePosition })
}

// KeyState returns a copy of the state record for k.
func KeyState(k key.Key) ButtonState {
	return withRead(func(c *Context) ButtonState { return c.key(k) })
}

// IsKeyDown reports whether k is held.
func IsKeyDown(k key.Key) bool {
	return KeyState(k).Down
}

// IsKeyPressed reports whether the latest event for k was a press.
func IsKeyPressed(k key.Key) bool {
	return KeyState(k).Pressed
}

// IsKeyReleased reports whether the latest event for k was a release.
func IsKeyReleased(k key.Key) bool {
	return KeyState(k).Released
}

// MouseButtonState returns a copy of the state record for b.
func MouseButtonState(b mouse.Button) ButtonState {
	return withRead(func(c *Context) ButtonState { return c.mouseButton(b) })
}

// IsMouseButtonDown reports whether b is held.
func IsMouseButtonDown(b mouse.Button) bool {
	return MouseButtonState(b).Down
}

// IsMouseButtonPressed reports whether the latest event for b was a press.
func IsMouseButtonPressed(b mouse.Button) bool {
	return MouseButtonState(b).Pressed
}

// IsMouseButtonReleased reports whether the latest event for b was a release.
func IsMouseButtonReleased(b mouse.Button) bool {
	return MouseButtonState(b).Released
}

// Snapshot is a consistent copy of the whole input context.
type Snapshot struct {
	WindowSize    f32.Point
	MousePosition f32.Point
	Keys          map[key.Key]ButtonState
	MouseButtons  map[mouse.Button]ButtonState
}

// Key returns the state of k in the snapshot.
func (s Snapshot) Key(k key.Key) ButtonState {
	return s.Keys[k]
}

// MouseButton returns the state of b in the snapshot.
func (s Snapshot) MouseButton(b mouse.Button) ButtonState {
	return s.MouseButtons[b]
}

// TakeSnapshot copies the context under a single read lock, so all fields
// reflect the same point between ingestion steps.
func TakeSnapshot() Snapshot {
	return withRead(func(c *Context) Snapshot {
		return Snapshot{
			WindowSize:    c.windowSize,
			MousePosition: c.mousePosition,
			Keys:          maps.Clone(c.keys),
			MouseButtons:  maps.Clone(c.mouseButtons),
		}
	})
}
