// Package app drives the frame loop. It owns the input lifecycle: each run
// starts the input context, pumps host events through ingestion, calls the
// handler's Update and Draw callbacks, and stops the context on every exit
// path.
package app

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/framekit/internal/config"
	"github.com/dshills/framekit/internal/host"
)

// Application runs a Handler against a host.
type Application struct {
	mu sync.Mutex

	config  *config.Config
	source  host.Source
	surface host.Surface
	logger  *Logger
	metrics *Metrics

	session uuid.UUID
	running atomic.Bool
	done    chan struct{}
	stop    sync.Once
}

// Option configures an Application.
type Option func(*Application)

// WithHost sets the event source. A source that also implements
// host.Surface is cleared before and shown after each Draw.
func WithHost(src host.Source) Option {
	return func(app *Application) {
		app.source = src
	}
}

// WithLogger sets the logger. Defaults to GetLogger().
func WithLogger(l *Logger) Option {
	return func(app *Application) {
		app.logger = l
	}
}

// WithMetrics sets the metrics tracker.
func WithMetrics(m *Metrics) Option {
	return func(app *Application) {
		app.metrics = m
	}
}

// New creates an Application. A nil cfg uses config.Default. Without
// WithHost the application runs headless on a host.Null sized from the
// window configuration.
func New(cfg *config.Config, opts ...Option) (*Application, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}

	app := &Application{config: cfg}
	for _, opt := range opts {
		opt(app)
	}

	if app.source == nil {
		app.source = host.NewNull(cfg.Window.Width, cfg.Window.Height)
	}
	app.surface, _ = app.source.(host.Surface)
	if app.logger == nil {
		app.logger = GetLogger()
	}
	if app.metrics == nil {
		app.metrics = NewMetrics()
	}

	return app, nil
}

// Shutdown asks a running loop to return. It is safe to call more than
// once and from any goroutine.
func (app *Application) Shutdown() error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if !app.running.Load() {
		return ErrNotRunning
	}
	app.stop.Do(func() { close(app.done) })
	return nil
}

// IsRunning returns true while Run is executing.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Config returns the configuration in use.
func (app *Application) Config() *config.Config {
	return app.config
}

// Host returns the event source.
func (app *Application) Host() host.Source {
	return app.source
}

// Surface returns the drawing surface, or nil if the host has none.
func (app *Application) Surface() host.Surface {
	return app.surface
}

// Logger returns the application's logger.
func (app *Application) Logger() *Logger {
	return app.logger
}

// Metrics returns the application's metrics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// Session returns the identifier of the current or most recent run.
func (app *Application) Session() uuid.UUID {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.session
}

// begin marks the application running and prepares a fresh stop channel.
func (app *Application) begin() bool {
	app.mu.Lock()
	defer app.mu.Unlock()

	if !app.running.CompareAndSwap(false, true) {
		return false
	}
	app.done = make(chan struct{})
	app.stop = sync.Once{}
	app.session = uuid.New()
	return true
}
