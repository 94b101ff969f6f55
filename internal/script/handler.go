package script

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"gioui.org/f32"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/framekit/internal/app"
	"github.com/dshills/framekit/internal/config"
	"github.com/dshills/framekit/internal/host"
	"github.com/dshills/framekit/internal/input"
	"github.com/dshills/framekit/internal/input/key"
	"github.com/dshills/framekit/internal/input/mouse"
)

// Handler forwards frame loop callbacks to a Lua script. It implements
// app.Handler, app.Drawer, app.Configurer and every input hook interface.
type Handler struct {
	state   *State
	name    string
	logger  *app.Logger
	surface host.Surface

	calls  atomic.Uint64
	errors atomic.Uint64

	mu      sync.Mutex
	lastErr error
	failed  map[string]bool
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the logger used for script errors and print output.
func WithLogger(l *app.Logger) Option {
	return func(h *Handler) {
		h.logger = l
	}
}

// WithSurface makes the screen module available to the script.
func WithSurface(s host.Surface) Option {
	return func(h *Handler) {
		h.surface = s
	}
}

// New loads the script at path.
func New(path string, opts ...Option) (*Handler, error) {
	h := newHandler(path, opts)
	if err := h.state.DoFile(path); err != nil {
		h.state.Close()
		return nil, fmt.Errorf("loading script %s: %w", path, err)
	}
	return h, nil
}

// Load runs code as a script. name identifies it in log output.
func Load(name, code string, opts ...Option) (*Handler, error) {
	h := newHandler(name, opts)
	if err := h.state.DoString(code); err != nil {
		h.state.Close()
		return nil, fmt.Errorf("loading script %s: %w", name, err)
	}
	return h, nil
}

func newHandler(name string, opts []Option) *Handler {
	h := &Handler{
		state:  NewState(),
		name:   name,
		logger: app.GetLogger(),
		failed: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = h.logger.WithComponent("script").WithField("script", name)

	h.state.RegisterFunc("print", h.print)
	h.state.RegisterModule("input", inputModule())
	if h.surface != nil {
		h.state.RegisterModule("screen", h.screenModule())
	}
	return h
}

// Name returns the script path or name.
func (h *Handler) Name() string {
	return h.name
}

// Close releases the Lua state.
func (h *Handler) Close() error {
	return h.state.Close()
}

// Calls returns the number of callbacks that ran, successful or not.
func (h *Handler) Calls() uint64 {
	return h.calls.Load()
}

// Errors returns the number of callbacks that failed.
func (h *Handler) Errors() uint64 {
	return h.errors.Load()
}

// LastError returns the most recent callback failure, or nil.
func (h *Handler) LastError() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastErr
}

// call invokes fn if the script defines it. ok is false when fn is
// undefined or failed.
func (h *Handler) call(fn string, args ...lua.LValue) (results []lua.LValue, ok bool) {
	results, err := h.state.Call(fn, args...)
	if errors.Is(err, ErrUndefined) {
		return nil, false
	}
	h.calls.Add(1)
	if err != nil {
		h.fail(&CallError{Func: fn, Err: err})
		return nil, false
	}
	return results, true
}

// fail records err. The first failure of each function is logged as a
// warning; repeats are logged at debug level.
func (h *Handler) fail(err *CallError) {
	h.errors.Add(1)

	h.mu.Lock()
	h.lastErr = err
	first := !h.failed[err.Func]
	h.failed[err.Func] = true
	h.mu.Unlock()

	if first {
		h.logger.Warn("%v", err)
	} else {
		h.logger.Debug("%v", err)
	}
}

// Configure passes the configurable settings to the script's configure
// function as a table and reads back any fields it changed.
func (h *Handler) Configure(cfg *config.Config) {
	if !h.state.Defined("configure") {
		return
	}

	t := h.state.NewTable()
	t.RawSetString("width", lua.LNumber(cfg.Window.Width))
	t.RawSetString("height", lua.LNumber(cfg.Window.Height))
	t.RawSetString("title", lua.LString(cfg.Window.Title))
	t.RawSetString("fps", lua.LNumber(cfg.Frame.TargetFPS))

	if _, ok := h.call("configure", t); !ok {
		return
	}

	if v, ok := t.RawGetString("width").(lua.LNumber); ok {
		cfg.Window.Width = int(v)
	}
	if v, ok := t.RawGetString("height").(lua.LNumber); ok {
		cfg.Window.Height = int(v)
	}
	if v, ok := t.RawGetString("title").(lua.LString); ok {
		cfg.Window.Title = string(v)
	}
	if v, ok := t.RawGetString("fps").(lua.LNumber); ok {
		cfg.Frame.TargetFPS = int(v)
	}
}

// Update calls update(dt).
func (h *Handler) Update(dt float32) {
	h.call("update", lua.LNumber(dt))
}

// Draw calls draw().
func (h *Handler) Draw() {
	h.call("draw")
}

// Keyboard calls keyboard(key, scancode, transition, repeat).
func (h *Handler) Keyboard(k key.Key, scanCode uint32, t input.Transition, repeat bool) {
	h.call("keyboard", lua.LString(keyName(k)), lua.LNumber(scanCode), lua.LString(t.String()), lua.LBool(repeat))
}

// MouseButton calls mouse_button(button, transition).
func (h *Handler) MouseButton(b mouse.Button, t input.Transition) {
	h.call("mouse_button", lua.LString(b.String()), lua.LString(t.String()))
}

// MouseRelative calls mouse_relative(dx, dy).
func (h *Handler) MouseRelative(delta f32.Point) {
	h.call("mouse_relative", lua.LNumber(delta.X), lua.LNumber(delta.Y))
}

// MouseAbsolute calls mouse_absolute(x, y).
func (h *Handler) MouseAbsolute(pos f32.Point) {
	h.call("mouse_absolute", lua.LNumber(pos.X), lua.LNumber(pos.Y))
}

// WindowResized calls window_resized(w, h).
func (h *Handler) WindowResized(size f32.Point) {
	h.call("window_resized", lua.LNumber(size.X), lua.LNumber(size.Y))
}

// CloseRequested calls close_requested() and reports its result as a
// boolean. The close is accepted when the function is undefined, fails, or
// returns no value.
func (h *Handler) CloseRequested() bool {
	results, ok := h.call("close_requested")
	if !ok || len(results) == 0 {
		return true
	}
	return lua.LVAsBool(results[0])
}
