// Package main is the entry point for the framekit input demo.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/framekit/internal/app"
	"github.com/dshills/framekit/internal/config"
	"github.com/dshills/framekit/internal/host"
	"github.com/dshills/framekit/internal/script"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath string
	logLevel   string
	scriptPath string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", app.NewComponentError("config", "load", err))
		return 1
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if opts.scriptPath != "" {
		cfg.Script.Path = opts.scriptPath
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	var out io.Writer = os.Stderr
	if cfg.Logging.File != "" {
		f, err := app.OpenLogFile(cfg.Logging.File)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer f.Close()
		out = f
	}
	logger := app.NewLogger(app.LoggerConfig{
		Level:  app.ParseLogLevel(cfg.Logging.Level),
		Output: out,
		Prefix: "framekit",
	})
	app.SetLogger(logger)

	// The flag wins over the file for the whole run.
	if opts.logLevel == "" {
		stop, err := config.Watch(opts.configPath, func(c *config.Config, err error) {
			if err != nil {
				logger.Warn("config reload failed: %v", err)
				return
			}
			logger.SetLevel(app.ParseLogLevel(c.Logging.Level))
			logger.Info("config reloaded: log level %s", c.Logging.Level)
		})
		if err != nil {
			logger.Warn("config watch disabled: %v", err)
		} else {
			defer stop()
		}
	}

	term, err := host.NewTerminal(host.WithReleaseDelay(cfg.Input.KeyReleaseDelay.D()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", app.NewComponentError("host", "create terminal", err))
		return 1
	}

	application, err := app.New(cfg, app.WithHost(term), app.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	handler, closeHandler, err := newHandler(cfg, application, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeHandler()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	err = application.Run(ctx, handler)
	switch {
	case err == nil, errors.Is(err, app.ErrQuit), errors.Is(err, context.Canceled):
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
}

// newHandler returns the Lua handler when a script is configured and the
// built-in demo otherwise. The returned func releases the handler.
func newHandler(cfg *config.Config, a *app.Application, logger *app.Logger) (app.Handler, func(), error) {
	if cfg.Script.Path == "" {
		return newDemo(a), func() {}, nil
	}

	h, err := script.New(cfg.Script.Path, script.WithLogger(logger), script.WithSurface(a.Surface()))
	if err != nil {
		return nil, nil, app.NewComponentError("script", "load", err)
	}
	return h, func() {
		if h.Errors() > 0 {
			fmt.Fprintf(os.Stderr, "%s: %d callback errors, last: %v\n", h.Name(), h.Errors(), h.LastError())
		}
		h.Close()
	}, nil
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", config.DefaultPath, "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", config.DefaultPath, "Path to configuration file (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the config file")
	flag.StringVar(&opts.scriptPath, "script", "", "Lua script providing the frame callbacks")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "framekit - frame loop and input state demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: framekit [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  framekit                       Run the built-in input viewer\n")
		fmt.Fprintf(os.Stderr, "  framekit -script game.lua      Run Lua callbacks\n")
		fmt.Fprintf(os.Stderr, "  framekit -log-level debug 2>log.txt\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("framekit %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if opts.logLevel != "" {
		switch opts.logLevel {
		case "debug", "info", "warn", "error":
		default:
			fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
			os.Exit(1)
		}
	}

	return opts
}
