package input

import "time"

// Ingest folds one frame of host events into the input context and
// dispatches the matching hooks. It returns true when the frame carried a
// close request and the close hook accepted it; Ingest itself never shuts
// anything down.
//
// Edge flags set by the previous call are cleared first, so Pressed and
// Released hold for exactly one cycle while Down persists.
//
// Categories are processed keyboard, mouse buttons, mouse motion, cursor,
// resize, close. Each state update holds the write lock only for that one
// event and hooks run after it is released, so hooks may use the query
// functions.
//
// Ingest must only be called from the frame-driving goroutine and panics
// with ErrNotInitialized outside the Start/Stop window.
func Ingest(f *Frame, hooks Hooks) bool {
	start := time.Now()
	defer func() { stats.recordIngest(f, time.Since(start)) }()

	withWrite(func(c *Context) struct{} {
		c.clearEdges()
		return struct{}{}
	})

	for _, ev := range f.Keyboard {
		repeat := withWrite(func(c *Context) bool {
			c.edgedKeys = append(c.edgedKeys, ev.Key)
			return applyTransition(c.keys, ev.Key, ev.Transition)
		})
		hooks.keyboard(ev.Key, ev.ScanCode, ev.Transition, repeat)
	}

	for _, ev := range f.MouseButtons {
		withWrite(func(c *Context) bool {
			c.edgedButtons = append(c.edgedButtons, ev.Button)
			return applyTransition(c.mouseButtons, ev.Button, ev.Transition)
		})
		hooks.mouseButton(ev.Button, ev.Transition)
	}

	// Relative motion is frame-transient and never stored.
	for _, ev := range f.MouseMotion {
		hooks.mouseRelative(ev.Delta)
	}

	for _, ev := range f.CursorMoved {
		withWrite(func(c *Context) struct{} {
			c.mousePosition = ev.Position
			return struct{}{}
		})
		hooks.mouseAbsolute(ev.Position)
	}

	for _, ev := range f.Resized {
		size := ev.Size()
		withWrite(func(c *Context) struct{} {
			c.windowSize = size
			return struct{}{}
		})
		hooks.windowResized(size)
	}

	if f.CloseRequested {
		return hooks.closeRequested()
	}
	return false
}

// applyTransition updates the record for id in states, materializing it if
// absent. Edge flags are cleared before the transition is applied. The
// returned value is the previous Down flag on a press (the repeat signal)
// and false on a release.
func applyTransition[K comparable](states map[K]ButtonState, id K, t Transition) bool {
	st := states[id]
	st.Pressed = false
	st.Released = false

	var repeat bool
	switch t {
	case Pressed:
		repeat = st.Down
		st.Down = true
		st.Pressed = true
	case Released:
		st.Down = false
		st.Released = true
	}
	states[id] = st
	return repeat
}
