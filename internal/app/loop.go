package app

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"gioui.org/f32"

	"github.com/dshills/framekit/internal/input"
	"github.com/dshills/framekit/internal/render"
)

// Run initializes the host, starts the input context and runs the frame
// loop until one of:
//   - the handler accepts a close request (returns ErrQuit)
//   - Shutdown is called (returns nil)
//   - ctx is done (returns ctx.Err())
//   - a callback panics (returns a *RecoveredPanicError)
//
// The input context is stopped and the host shut down on every path.
func (app *Application) Run(ctx context.Context, h Handler) error {
	log, cleanup, err := app.start(h)
	if err != nil {
		return err
	}
	defer cleanup()

	interval := app.config.Frame.Interval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	hooks := input.HooksFor(h)
	drawer, _ := h.(Drawer)
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-app.done:
			return nil

		case now := <-ticker.C:
			dt := float32(now.Sub(last).Seconds())
			last = now

			closed, err := app.frame(h, drawer, hooks, dt, log)
			if err != nil {
				log.Error("frame failed: %v", err)
				return err
			}
			if closed {
				return ErrQuit
			}
			if time.Since(now) > interval {
				app.metrics.RecordOverrun()
			}
		}
	}
}

// RunFrames runs at most n frames back to back without waiting on the
// ticker, with dt fixed at the frame interval. It is meant for tests and
// tools that step the loop deterministically. It stops early with ErrQuit
// when a close request is accepted.
func (app *Application) RunFrames(h Handler, n int) (frames int, err error) {
	log, cleanup, err := app.start(h)
	if err != nil {
		return 0, err
	}
	defer cleanup()

	hooks := input.HooksFor(h)
	drawer, _ := h.(Drawer)
	dt := float32(app.config.Frame.Interval().Seconds())

	for frames < n {
		closed, err := app.frame(h, drawer, hooks, dt, log)
		if err != nil {
			return frames, err
		}
		frames++
		if closed {
			return frames, fmt.Errorf("after %d frames: %w", frames, ErrQuit)
		}
	}
	return frames, nil
}

// start applies handler configuration, initializes the host and starts
// the input context. cleanup undoes all of it.
func (app *Application) start(h Handler) (log *Logger, cleanup func(), err error) {
	if !app.begin() {
		return nil, nil, ErrAlreadyRunning
	}
	defer func() {
		if err != nil {
			app.running.Store(false)
		}
	}()

	log = app.logger.WithField("session", app.Session().String())

	if c, ok := h.(Configurer); ok {
		c.Configure(app.config)
		if err := app.config.Validate(); err != nil {
			return nil, nil, &InitError{Component: "handler config", Err: err}
		}
	}

	if err := app.source.Init(); err != nil {
		return nil, nil, &InitError{Component: "host", Err: err}
	}

	size := app.config.Window.Size()
	if w, hgt := app.source.Size(); w > 0 && hgt > 0 {
		size = f32.Pt(float32(w), float32(hgt))
	}
	input.Start(size)

	log.Info("frame loop started: %vx%v at %d fps", size.X, size.Y, app.config.Frame.TargetFPS)

	return log, func() {
		input.Stop()
		app.source.Shutdown()
		app.running.Store(false)
		log.Info("frame loop stopped")
	}, nil
}

// frame runs one cycle: poll, ingest, update, draw. It reports whether a
// close request was accepted, in which case update and draw are skipped.
func (app *Application) frame(h Handler, drawer Drawer, hooks input.Hooks, dt float32, log *Logger) (closed bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = NewRecoveredPanicError(r, string(debug.Stack()))
		}
	}()

	var sample FrameSample
	t := StartTimer()

	f := app.source.Poll()
	sample.Events = f.Len()
	accepted := input.Ingest(&f, hooks)
	sample.Ingest = t.Stop()

	if f.CloseRequested {
		app.metrics.RecordCloseRequest(accepted)
		if accepted {
			log.Info("close request accepted")
			return true, nil
		}
		log.Debug("close request rejected by handler")
	}

	h.Update(dt)
	sample.Update = t.Stop()

	if drawer != nil {
		if app.surface != nil {
			app.surface.Clear()
		}
		drawer.Draw()
		if app.surface != nil {
			app.surface.Show()
		}
	}
	sample.Draw = t.Stop()

	app.metrics.RecordFrame(sample)
	app.metrics.SetPendingObjects(render.Pending())
	return false, nil
}
