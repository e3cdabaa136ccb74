// Package config handles configuration loading from TOML files and environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
)

// Config is the root configuration structure.
type Config struct {
	UI    UIConfig    `toml:"ui"`
	State StateConfig `toml:"state"`
	Log   LogConfig   `toml:"log"`
}

// UIConfig holds user-interface settings.
type UIConfig struct {
	// SyntaxTheme is the Chroma theme the UI palette is derived from via
	// highlight.ThemePalette. Defaults to "vulcan" if unset.
	SyntaxTheme string `toml:"syntax_theme"`

	// StatusTimeoutSeconds is how long a status message stays on screen.
	StatusTimeoutSeconds int `toml:"status_timeout_seconds"`
}

// SyntaxThemeOrDefault returns the configured syntax theme or "vulcan" if unset.
func (u UIConfig) SyntaxThemeOrDefault() string {
	if u.SyntaxTheme == "" {
		return "vulcan"
	}
	return u.SyntaxTheme
}

// StatusTimeout returns the status message lifetime, 5s if unset.
func (u UIConfig) StatusTimeout() time.Duration {
	if u.StatusTimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(u.StatusTimeoutSeconds) * time.Second
}

// StateConfig controls the recent-files database.
type StateConfig struct {
	Enabled *bool `toml:"enabled"`
}

// EnabledOrDefault reports whether state is kept, true if unset.
func (s StateConfig) EnabledOrDefault() bool {
	return s.Enabled == nil || *s.Enabled
}

// LogConfig holds log file settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// LevelOrDefault parses the configured level, info if unset.
func (l LogConfig) LevelOrDefault() zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(l.Level))
	if err != nil || l.Level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// DefaultPath is ~/.config/sheet/config.toml.
func DefaultPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads configuration from a TOML file and applies environment variable
// overrides. An empty path means DefaultPath, which may be absent; an
// explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	if _, err := os.Stat(path); err != nil {
		switch {
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("stat config %s: %w", path, err)
		case explicit:
			return nil, fmt.Errorf("config file not found: %s", path)
		}
	} else if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate returns an error if the configuration is invalid.
func (c *Config) Validate() error {
	var errs []error

	if c.UI.StatusTimeoutSeconds < 0 {
		errs = append(errs, fmt.Errorf("ui.status_timeout_seconds=%d must not be negative", c.UI.StatusTimeoutSeconds))
	}

	if c.Log.Level != "" {
		if _, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level)); err != nil {
			errs = append(errs, fmt.Errorf("log.level=%q is invalid: %v", c.Log.Level, err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	for _, setter := range []struct {
		env   string
		apply func(string)
	}{
		{"SHEET_THEME", func(v string) {
			if v != "" {
				cfg.UI.SyntaxTheme = v
			}
		}},
		{"SHEET_LOG_LEVEL", func(v string) {
			if v != "" {
				cfg.Log.Level = v
			}
		}},
	} {
		setter.apply(os.Getenv(setter.env))
	}
}

// DataDir returns the path to the sheet data directory (~/.config/sheet).
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "sheet"), nil
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", err
	}
	return dir, nil
}
