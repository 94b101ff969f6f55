package config

import (
	"fmt"
	"strconv"
	"time"

	"gioui.org/f32"
)

// WindowConfig describes the initial window.
type WindowConfig struct {
	// Width and Height are the initial window size. Terminal hosts use
	// their own size and ignore these.
	Width  int `toml:"width"`
	Height int `toml:"height"`

	// Title is the window title.
	Title string `toml:"title"`
}

// Size returns the window size as a vector.
func (w WindowConfig) Size() f32.Point {
	return f32.Pt(float32(w.Width), float32(w.Height))
}

// FrameConfig controls the frame loop.
type FrameConfig struct {
	// TargetFPS is the number of frames per second the loop aims for.
	TargetFPS int `toml:"targetFps"`
}

// Interval returns the duration of one frame at TargetFPS.
func (f FrameConfig) Interval() time.Duration {
	if f.TargetFPS <= 0 {
		return 0
	}
	return time.Second / time.Duration(f.TargetFPS)
}

// InputConfig controls host input translation.
type InputConfig struct {
	// KeyReleaseDelay is how long a key stays down on hosts that report no
	// key releases.
	KeyReleaseDelay Duration `toml:"keyReleaseDelay"`
}

// LoggingConfig controls the logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`

	// File receives log output. Empty means stderr.
	File string `toml:"file"`
}

// ScriptConfig selects a Lua script providing the frame callbacks.
type ScriptConfig struct {
	// Path is the script file. Empty runs the built-in handler.
	Path string `toml:"path"`
}

// Duration is a time.Duration that reads and writes as "150ms" style text.
// A bare integer is taken as milliseconds.
type Duration time.Duration

// D returns the value as a time.Duration.
func (d Duration) D() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}
