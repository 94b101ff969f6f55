package input

import (
	"gioui.org/f32"

	"github.com/dshills/framekit/internal/input/key"
	"github.com/dshills/framekit/internal/input/mouse"
)

// KeyboardHandler receives every keyboard event after the context has been
// updated. repeat is true when the key was already down before a press.
type KeyboardHandler interface {
	Keyboard(k key.Key, scanCode uint32, t Transition, repeat bool)
}

// MouseButtonHandler receives every mouse button event after the context
// has been updated.
type MouseButtonHandler interface {
	MouseButton(b mouse.Button, t Transition)
}

// MouseRelativeHandler receives relative pointer motion.
type MouseRelativeHandler interface {
	MouseRelative(delta f32.Point)
}

// MouseAbsoluteHandler receives absolute pointer positions.
type MouseAbsoluteHandler interface {
	MouseAbsolute(pos f32.Point)
}

// ResizeHandler receives the new window size.
type ResizeHandler interface {
	WindowResized(size f32.Point)
}

// CloseHandler decides whether a close request should be honored.
type CloseHandler interface {
	CloseRequested() bool
}

// Hooks is the resolved set of callbacks used by Ingest. Nil fields are
// treated as no-ops, except CloseRequested which defaults to accepting.
type Hooks struct {
	Keyboard       func(k key.Key, scanCode uint32, t Transition, repeat bool)
	MouseButton    func(b mouse.Button, t Transition)
	MouseRelative  func(delta f32.Point)
	MouseAbsolute  func(pos f32.Point)
	WindowResized  func(size f32.Point)
	CloseRequested func() bool
}

// HooksFor collects the hook methods h implements. h may be nil.
func HooksFor(h any) Hooks {
	var hooks Hooks
	if v, ok := h.(KeyboardHandler); ok {
		hooks.Keyboard = v.Keyboard
	}
	if v, ok := h.(MouseButtonHandler); ok {
		hooks.MouseButton = v.MouseButton
	}
	if v, ok := h.(MouseRelativeHandler); ok {
		hooks.MouseRelative = v.MouseRelative
	}
	if v, ok := h.(MouseAbsoluteHandler); ok {
		hooks.MouseAbsolute = v.MouseAbsolute
	}
	if v, ok := h.(ResizeHandler); ok {
		hooks.WindowResized = v.WindowResized
	}
	if v, ok := h.(CloseHandler); ok {
		hooks.CloseRequested = v.CloseRequested
	}
	return hooks
}

func (h *Hooks) keyboard(k key.Key, scanCode uint32, t Transition, repeat bool) {
	if h.Keyboard != nil {
		h.Keyboard(k, scanCode, t, repeat)
	}
}

func (h *Hooks) mouseButton(b mouse.Button, t Transition) {
	if h.MouseButton != nil {
		h.MouseButton(b, t)
	}
}

func (h *Hooks) mouseRelative(delta f32.Point) {
	if h.MouseRelative != nil {
		h.MouseRelative(delta)
	}
}

func (h *Hooks) mouseAbsolute(pos f32.Point) {
	if h.MouseAbsolute != nil {
		h.MouseAbsolute(pos)
	}
}

func (h *Hooks) windowResized(size f32.Point) {
	if h.WindowResized != nil {
		h.WindowResized(size)
	}
}

func (h *Hooks) closeRequested() bool {
	if h.CloseRequested == nil {
		return true
	}
	return h.CloseRequested()
}
