package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"gioui.org/f32"

	"github.com/dshills/framekit/internal/config/loader"
)

// mapLoader is a fixed settings source.
type mapLoader map[string]any

func (m mapLoader) Load() (map[string]any, error) { return m, nil }

type failingLoader struct{ err error }

func (f failingLoader) Load() (map[string]any, error) { return nil, f.err }

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if got := cfg.Window.Size(); got != f32.Pt(800, 600) {
		t.Errorf("Window.Size() = %v, want (800,600)", got)
	}
	if got := cfg.Frame.Interval(); got != time.Second/60 {
		t.Errorf("Frame.Interval() = %v", got)
	}
	if got := cfg.Input.KeyReleaseDelay.D(); got != 150*time.Millisecond {
		t.Errorf("KeyReleaseDelay = %v, want 150ms", got)
	}
}

func TestLoadFromFile(t *testing.T) {
	memfs := fstest.MapFS{
		"framekit.toml": {Data: []byte(`
[window]
width = 1024
title = "demo"

[frame]
targetFps = 30

[input]
keyReleaseDelay = "80ms"

[logging]
level = "debug"
`)},
	}

	cfg, err := LoadFrom(loader.NewTOMLLoaderWithFS(loader.FSFS{FS: memfs}, "framekit.toml"))
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if cfg.Window.Width != 1024 {
		t.Errorf("Window.Width = %d, want 1024", cfg.Window.Width)
	}
	if cfg.Window.Height != 600 {
		t.Errorf("Window.Height = %d, want default 600", cfg.Window.Height)
	}
	if cfg.Window.Title != "demo" {
		t.Errorf("Window.Title = %q, want demo", cfg.Window.Title)
	}
	if cfg.Frame.TargetFPS != 30 {
		t.Errorf("Frame.TargetFPS = %d, want 30", cfg.Frame.TargetFPS)
	}
	if cfg.Input.KeyReleaseDelay.D() != 80*time.Millisecond {
		t.Errorf("KeyReleaseDelay = %v, want 80ms", cfg.Input.KeyReleaseDelay)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadFromLaterSourcesWin(t *testing.T) {
	cfg, err := LoadFrom(
		mapLoader{"frame": map[string]any{"targetFps": int64(30)}, "logging": map[string]any{"level": "warn"}},
		mapLoader{"frame": map[string]any{"targetFps": int64(120)}},
	)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Frame.TargetFPS != 120 {
		t.Errorf("TargetFPS = %d, want 120", cfg.Frame.TargetFPS)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "framekit.toml")
	if err := os.WriteFile(path, []byte("[logging]\nlevel = \"warn\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("FRAMEKIT_LOG_LEVEL", "error")
	t.Setenv("FRAMEKIT_WINDOW_TITLE", "env title")
	t.Setenv("FRAMEKIT_INPUT_KEY_RELEASE_DELAY", "250")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("Logging.Level = %q, want error", cfg.Logging.Level)
	}
	if cfg.Window.Title != "env title" {
		t.Errorf("Window.Title = %q, want 'env title'", cfg.Window.Title)
	}
	if cfg.Input.KeyReleaseDelay.D() != 250*time.Millisecond {
		t.Errorf("KeyReleaseDelay = %v, want 250ms", cfg.Input.KeyReleaseDelay)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Frame.TargetFPS != Default().Frame.TargetFPS {
		t.Errorf("TargetFPS = %d, want default", cfg.Frame.TargetFPS)
	}
}

func TestLoadFromSourceError(t *testing.T) {
	boom := errors.New("boom")
	if _, err := LoadFrom(failingLoader{boom}); !errors.Is(err, boom) {
		t.Errorf("LoadFrom error = %v, want boom", err)
	}
}

func TestLoadFromBadType(t *testing.T) {
	_, err := LoadFrom(mapLoader{"window": map[string]any{"width": "wide"}})
	if !errors.Is(err, ErrDecode) {
		t.Errorf("LoadFrom error = %v, want ErrDecode", err)
	}
}

func TestLoadFromBadDuration(t *testing.T) {
	_, err := LoadFrom(mapLoader{"input": map[string]any{"keyReleaseDelay": "soon"}})
	if !errors.Is(err, ErrDecode) {
		t.Errorf("LoadFrom error = %v, want ErrDecode", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		path   string
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }, "window.width"},
		{"negative height", func(c *Config) { c.Window.Height = -1 }, "window.height"},
		{"fps zero", func(c *Config) { c.Frame.TargetFPS = 0 }, "frame.targetFps"},
		{"fps too high", func(c *Config) { c.Frame.TargetFPS = 5000 }, "frame.targetFps"},
		{"release delay", func(c *Config) { c.Input.KeyReleaseDelay = 0 }, "input.keyReleaseDelay"},
		{"log level", func(c *Config) { c.Logging.Level = "verbose" }, "logging.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if !errors.Is(err, ErrValidationFailed) {
				t.Fatalf("Validate() = %v, want ErrValidationFailed", err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) || verr.Path != tt.path {
				t.Errorf("validation error path = %v, want %s", verr, tt.path)
			}
		})
	}
}

func TestValidateReportsAll(t *testing.T) {
	cfg := Default()
	cfg.Window.Width = 0
	cfg.Logging.Level = "loud"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, path := range []string{"window.width", "logging.level"} {
		if !strings.Contains(err.Error(), path) {
			t.Errorf("error %q should mention %s", err, path)
		}
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Input.KeyReleaseDelay = Duration(75 * time.Millisecond)
	cfg.Script.Path = "game.lua"

	data, err := cfg.Marshal()
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `keyReleaseDelay = '75ms'`) &&
		!strings.Contains(string(data), `keyReleaseDelay = "75ms"`) {
		t.Errorf("marshaled config missing duration text:\n%s", data)
	}

	got, err := LoadFrom(loader.NewTOMLLoaderWithFS(loader.FSFS{FS: fstest.MapFS{
		"out.toml": {Data: data},
	}}, "out.toml"))
	if err != nil {
		t.Fatalf("reloading marshaled config: %v", err)
	}
	if *got != *cfg {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
}

func TestDurationUnmarshalText(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"150ms", 150 * time.Millisecond, false},
		{"2s", 2 * time.Second, false},
		{"40", 40 * time.Millisecond, false},
		{"later", 0, true},
	}

	for _, tt := range tests {
		var d Duration
		err := d.UnmarshalText([]byte(tt.in))
		if (err != nil) != tt.wantErr {
			t.Errorf("UnmarshalText(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && d.D() != tt.want {
			t.Errorf("UnmarshalText(%q) = %v, want %v", tt.in, d.D(), tt.want)
		}
	}
}

func TestWatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "framekit.toml")
	if err := os.WriteFile(path, []byte("[logging]\nlevel = \"info\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	results := make(chan *Config, 4)
	stop, err := Watch(path, func(cfg *Config, err error) {
		if err == nil {
			results <- cfg
		}
	})
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	defer stop()

	if err := os.WriteFile(path, []byte("[logging]\nlevel = \"debug\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(3 * time.Second)
	for {
		select {
		case cfg := <-results:
			if cfg.Logging.Level == "debug" {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for reload")
		}
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "framekit.yaml")
	data := "window:\n  width: 320\n  height: 200\nframe:\n  targetFps: 25\ninput:\n  keyReleaseDelay: 90ms\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Window.Width != 320 || cfg.Window.Height != 200 {
		t.Errorf("window = %dx%d, want 320x200", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Frame.TargetFPS != 25 {
		t.Errorf("TargetFPS = %d, want 25", cfg.Frame.TargetFPS)
	}
	if got := cfg.Input.KeyReleaseDelay.D(); got != 90*time.Millisecond {
		t.Errorf("KeyReleaseDelay = %v, want 90ms", got)
	}
	if cfg.Window.Title != "framekit" {
		t.Errorf("Title = %q, want default", cfg.Window.Title)
	}
}
