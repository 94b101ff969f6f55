package app

import "github.com/dshills/framekit/internal/config"

// Handler receives the per-frame update callback. A Handler may also
// implement Drawer, Configurer and any of the input hook interfaces
// (input.KeyboardHandler, input.CloseHandler, ...); hooks it does not
// implement are no-ops and an unhandled close request is accepted.
type Handler interface {
	// Update runs once per frame after input is ingested. dt is the time
	// since the previous frame in seconds.
	Update(dt float32)
}

// Drawer draws after Update each frame.
type Drawer interface {
	Draw()
}

// Configurer adjusts the configuration before the loop starts.
type Configurer interface {
	Configure(cfg *config.Config)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(dt float32)

// Update calls f(dt).
func (f HandlerFunc) Update(dt float32) {
	f(dt)
}
