package config

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/framekit/internal/config/loader"
)

// DefaultPath is the config file read when none is given.
const DefaultPath = "framekit.toml"

// LogLevels lists the accepted logging.level values.
var LogLevels = []string{"debug", "info", "warn", "error"}

// Config is the complete framekit configuration.
type Config struct {
	Window  WindowConfig  `toml:"window"`
	Frame   FrameConfig   `toml:"frame"`
	Input   InputConfig   `toml:"input"`
	Logging LoggingConfig `toml:"logging"`
	Script  ScriptConfig  `toml:"script"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  800,
			Height: 600,
			Title:  "framekit",
		},
		Frame: FrameConfig{
			TargetFPS: 60,
		},
		Input: InputConfig{
			KeyReleaseDelay: Duration(150 * time.Millisecond),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads the file at path (TOML, or YAML for .yaml and .yml), applies
// FRAMEKIT_ environment overrides and validates the result. A missing file
// is not an error.
func Load(path string) (*Config, error) {
	return LoadFrom(
		loader.ForPath(path),
		loader.NewEnvLoader(loader.EnvPrefix),
	)
}

// LoadFrom starts from Default and applies each source in order, later
// sources overriding earlier ones. The result is validated.
func LoadFrom(sources ...loader.Loader) (*Config, error) {
	var merged map[string]any
	for _, src := range sources {
		m, err := src.Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, m)
	}

	cfg := Default()
	if err := cfg.apply(merged); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// apply decodes a settings map over c. Keys absent from m keep their
// current values.
func (c *Config) apply(m map[string]any) error {
	if len(m) == 0 {
		return nil
	}

	data, err := toml.Marshal(m)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if err := toml.NewDecoder(bytes.NewReader(data)).Decode(c); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}

// Validate checks every setting and reports all failures together.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, path, msg string, value any) {
		if !ok {
			errs = append(errs, &ValidationError{Path: path, Message: msg, Value: value})
		}
	}

	check(c.Window.Width > 0, "window.width", "must be positive", c.Window.Width)
	check(c.Window.Height > 0, "window.height", "must be positive", c.Window.Height)
	check(c.Frame.TargetFPS >= 1 && c.Frame.TargetFPS <= 1000,
		"frame.targetFps", "must be between 1 and 1000", c.Frame.TargetFPS)
	check(c.Input.KeyReleaseDelay > 0, "input.keyReleaseDelay", "must be positive", c.Input.KeyReleaseDelay)
	check(slices.Contains(LogLevels, c.Logging.Level),
		"logging.level", "must be one of debug, info, warn, error", c.Logging.Level)

	return errors.Join(errs...)
}

// Marshal renders the configuration as TOML.
func (c *Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}
