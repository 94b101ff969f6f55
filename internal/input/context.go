package input

import (
	"errors"
	"sync"
	"sync/atomic"

	"gioui.org/f32"

	"github.com/dshills/framekit/internal/input/key"
	"github.com/dshills/framekit/internal/input/mouse"
)

// ErrNotInitialized is the panic value raised when the input context is
// accessed outside the Start/Stop window.
var ErrNotInitialized = errors.New("input: context not initialized (access outside Start/Stop)")

// Context is the aggregate input state. Exactly one exists between Start and
// Stop; it is only reachable through withRead and withWrite.
type Context struct {
	windowSize    f32.Point
	mousePosition f32.Point
	keys          map[key.Key]ButtonState
	mouseButtons  map[mouse.Button]ButtonState

	// Entries whose edge flags were set during the current cycle.
	edgedKeys    []key.Key
	edgedButtons []mouse.Button
}

func newContext(windowSize f32.Point) *Context {
	return &Context{
		windowSize:   windowSize,
		keys:         make(map[key.Key]ButtonState),
		mouseButtons: make(map[mouse.Button]ButtonState),
	}
}

// clearEdges drops the edge flags set during the previous cycle.
func (c *Context) clearEdges() {
	for _, k := range c.edgedKeys {
		st := c.keys[k]
		st.Pressed, st.Released = false, false
		c.keys[k] = st
	}
	for _, b := range c.edgedButtons {
		st := c.mouseButtons[b]
		st.Pressed, st.Released = false, false
		c.mouseButtons[b] = st
	}
	c.edgedKeys = c.edgedKeys[:0]
	c.edgedButtons = c.edgedButtons[:0]
}

// key returns the state of k, zero if never seen.
func (c *Context) key(k key.Key) ButtonState {
	return c.keys[k]
}

// mouseButton returns the state of b, zero if never seen.
func (c *Context) mouseButton(b mouse.Button) ButtonState {
	return c.mouseButtons[b]
}

var (
	// running mirrors current != nil so the precondition check needs no lock.
	running atomic.Bool

	mu      sync.RWMutex
	current *Context
)

// Start installs a fresh input context with the given window size and a
// zero pointer position. Calling Start while running discards the previous
// state.
func Start(windowSize f32.Point) {
	mu.Lock()
	defer mu.Unlock()

	current = newContext(windowSize)
	running.Store(true)
}

// Stop tears down the input context. Subsequent queries panic until the
// next Start. Stop is a no-op when not running.
func Stop() {
	mu.Lock()
	defer mu.Unlock()

	running.Store(false)
	current = nil
}

// Running reports whether the input context is installed.
func Running() bool {
	return running.Load()
}

// withRead applies f to the context under the shared lock.
// Panics with ErrNotInitialized outside the Start/Stop window.
func withRead[T any](f func(c *Context) T) T {
	if !running.Load() {
		panic(ErrNotInitialized)
	}

	mu.RLock()
	defer mu.RUnlock()

	// Stop may have won the race since the check above.
	if current == nil {
		panic(ErrNotInitialized)
	}
	return f(current)
}

// withWrite applies f to the context under the exclusive lock.
// Panics with ErrNotInitialized outside the Start/Stop window.
func withWrite[T any](f func(c *Context) T) T {
	if !running.Load() {
		panic(ErrNotInitialized)
	}

	mu.Lock()
	defer mu.Unlock()

	if current == nil {
		panic(ErrNotInitialized)
	}
	return f(current)
}
