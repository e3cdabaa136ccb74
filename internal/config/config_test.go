package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
[ui]
syntax_theme = "monokai"
status_timeout_seconds = 9

[state]
enabled = false

[log]
level = "debug"
`)
	t.Setenv("SHEET_THEME", "")
	t.Setenv("SHEET_LOG_LEVEL", "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.UI.SyntaxThemeOrDefault(); got != "monokai" {
		t.Errorf("theme = %q", got)
	}
	if got := cfg.UI.StatusTimeout(); got != 9*time.Second {
		t.Errorf("timeout = %v", got)
	}
	if cfg.State.EnabledOrDefault() {
		t.Error("state should be disabled")
	}
	if got := cfg.Log.LevelOrDefault(); got != zerolog.DebugLevel {
		t.Errorf("level = %v", got)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SHEET_THEME", "")
	t.Setenv("SHEET_LOG_LEVEL", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("missing default config should load defaults: %v", err)
	}
	if got := cfg.UI.SyntaxThemeOrDefault(); got != "vulcan" {
		t.Errorf("theme = %q", got)
	}
	if got := cfg.UI.StatusTimeout(); got != 5*time.Second {
		t.Errorf("timeout = %v", got)
	}
	if !cfg.State.EnabledOrDefault() {
		t.Error("state should default to enabled")
	}
	if got := cfg.Log.LevelOrDefault(); got != zerolog.InfoLevel {
		t.Errorf("level = %v", got)
	}
}

func TestLoad_ExplicitMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestLoad_StatError(t *testing.T) {
	// A regular file where the config directory should be: stat fails with
	// something other than not-exist.
	home := filepath.Join(t.TempDir(), "home")
	if err := os.WriteFile(home, nil, 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HOME", home)

	_, err := Load("")
	if err == nil {
		t.Fatal("expected stat error")
	}
	if strings.Contains(err.Error(), "not found") || errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("stat failure reported as missing file: %v", err)
	}
	var pathErr *fs.PathError
	if !errors.As(err, &pathErr) {
		t.Fatalf("err = %v, want the wrapped *fs.PathError", err)
	}
}

func TestLoad_ParseError(t *testing.T) {
	path := writeConfig(t, "[ui\nsyntax_theme=")
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "failed to parse config") {
		t.Fatalf("err = %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `[ui]
syntax_theme = "monokai"
`)
	t.Setenv("SHEET_THEME", "dracula")
	t.Setenv("SHEET_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.UI.SyntaxTheme != "dracula" {
		t.Errorf("theme = %q", cfg.UI.SyntaxTheme)
	}
	if got := cfg.Log.LevelOrDefault(); got != zerolog.WarnLevel {
		t.Errorf("level = %v", got)
	}
}

func TestValidate_JoinsErrors(t *testing.T) {
	cfg := &Config{
		UI:  UIConfig{StatusTimeoutSeconds: -1},
		Log: LogConfig{Level: "loud"},
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{"status_timeout_seconds", "log.level"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q missing %q", msg, want)
		}
	}
}
