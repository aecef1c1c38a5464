// Package config loads application settings from a TOML file with an
// environment variable overlay. A missing config file is not an error;
// defaults apply. STAGEHAND_* variables override file values so a run
// can be reconfigured without editing the file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "STAGEHAND_"

// Config holds the application settings.
type Config struct {
	// Title is shown in diagnostics and, where the backend supports
	// it, the window or terminal title.
	Title string `toml:"title"`

	// FPS is the target frame rate for the main loop.
	FPS int `toml:"fps"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// Scripts is a directory of Lua files loaded before the loop
	// starts. Empty disables scripting.
	Scripts string `toml:"scripts"`

	// StartScene names the scene activated at startup, in addition to
	// the root scene. Empty leaves only the root active.
	StartScene string `toml:"start_scene"`

	// Replay controls event recording and playback.
	Replay ReplayConfig `toml:"replay"`
}

// ReplayConfig configures the event recorder and playback source.
type ReplayConfig struct {
	// Record is a path to write a session trace to. Empty disables
	// recording.
	Record string `toml:"record"`

	// Play is a path to read a trace from; when set, events come from
	// the trace instead of the live backend.
	Play string `toml:"play"`
}

// Default returns the configuration used when no file and no
// environment overrides are present.
func Default() Config {
	return Config{
		Title:    "stagehand",
		FPS:      30,
		LogLevel: "info",
	}
}

// Load reads configuration from path, applies environment overrides,
// and validates the result. A missing file is not an error; defaults
// are used. An empty path skips the file entirely.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// File doesn't exist, not an error.
		case err != nil:
			return cfg, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, &ParseError{Path: path, Message: err.Error(), Err: err}
			}
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv overlays STAGEHAND_* environment variables onto cfg.
// Empty values are treated as unset.
func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvPrefix + "TITLE"); v != "" {
		cfg.Title = v
	}
	if v := os.Getenv(EnvPrefix + "FPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.FPS = n
		}
	}
	if v := os.Getenv(EnvPrefix + "LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvPrefix + "SCRIPTS"); v != "" {
		cfg.Scripts = v
	}
	if v := os.Getenv(EnvPrefix + "START_SCENE"); v != "" {
		cfg.StartScene = v
	}
	if v := os.Getenv(EnvPrefix + "RECORD"); v != "" {
		cfg.Replay.Record = v
	}
	if v := os.Getenv(EnvPrefix + "PLAY"); v != "" {
		cfg.Replay.Play = v
	}
}

// Validate checks field values and returns the first violation.
func (c Config) Validate() error {
	if c.FPS <= 0 || c.FPS > 1000 {
		return &ValidationError{
			Field:   "fps",
			Message: "must be between 1 and 1000",
			Value:   c.FPS,
		}
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{
			Field:   "log_level",
			Message: "must be one of debug, info, warn, error",
			Value:   c.LogLevel,
		}
	}
	if c.Replay.Record != "" && c.Replay.Play != "" {
		return &ValidationError{
			Field:   "replay",
			Message: "record and play are mutually exclusive",
			Value:   c.Replay,
		}
	}
	return nil
}
