// Package host adapts a window or terminal system to the per-frame event
// batches consumed by input.Ingest.
//
// A Source buffers host events between frames and hands them out in one
// input.Frame per Poll call. The frame loop owns the Source; Poll is never
// called concurrently with itself.
package host

import "github.com/dshills/framekit/internal/input"

// Source is the contract between the frame loop and a host.
type Source interface {
	// Init prepares the host. Must be called before any other method.
	Init() error

	// Shutdown releases host resources. Safe to call more than once.
	Shutdown()

	// Size returns the current drawable size.
	Size() (width, height int)

	// Poll returns the events collected since the previous call without
	// blocking.
	Poll() input.Frame

	// RequestClose makes the next Poll report a close request.
	RequestClose()
}

// Surface is the minimal drawing interface the demo uses. Rendering proper
// belongs to whatever consumes the deferred queue.
type Surface interface {
	// Clear blanks the surface.
	Clear()

	// SetText writes s starting at cell (x, y). Text past the edge is
	// clipped.
	SetText(x, y int, s string)

	// Show presents pending changes.
	Show()
}
