// Package input bridges push-based host input events to a pollable,
// point-in-time input state.
//
// The package owns a single process-wide Context holding the window size,
// the pointer position and one ButtonState per key and mouse button seen so
// far. The context exists only between Start and Stop. All access goes
// through scoped read or write acquisition of one RWMutex; callers never
// receive a reference into the context.
//
// # Ingestion
//
// The frame-driving goroutine calls Ingest once per frame with the events the
// host collected since the previous frame. Edge flags from the previous
// frame are cleared first, then every key or button event updates its record,
// so "pressed this frame" stays readable for exactly one frame:
//
//	frame := host.Poll()
//	if input.Ingest(&frame, input.HooksFor(handler)) {
//	    // the handler accepted a close request
//	}
//
// # Queries
//
// Any goroutine may query the state at any time while the system runs:
//
//	if input.IsKeyPressed(key.KeySpace) {
//	    jump()
//	}
//	pos := input.MousePosition()
//
// Keys and buttons that were never reported read as released with no edges.
// Querying before Start or after Stop is a programming error and panics with
// ErrNotInitialized.
package input
