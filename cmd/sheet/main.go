package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/xonecas/sheet/internal/config"
	"github.com/xonecas/sheet/internal/store"
	"github.com/xonecas/sheet/internal/tui"
)

var version = "dev"

func main() {
	var (
		configPath  = flag.String("config", "", "Config file (default: ~/.config/sheet/config.toml)")
		debug       = flag.Bool("debug", false, "Log at debug level")
		showVersion = flag.Bool("version", false, "Print version and exit")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: sheet [flags] [file]\n\nEdit a CSV, ODS, XLSX or XLS file in the terminal.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Println("sheet", version)
		return
	}
	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*configPath, flag.Arg(0), *debug); err != nil {
		fmt.Fprintf(os.Stderr, "sheet: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, path string, debug bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	dataDir, err := config.EnsureDataDir()
	if err != nil {
		return err
	}
	closeLog := setupLogging(dataDir, cfg, debug)
	defer closeLog()

	var st *store.Store
	if cfg.State.EnabledOrDefault() {
		st, err = store.Open(filepath.Join(dataDir, "state.db"))
		if err != nil {
			log.Warn().Err(err).Msg("state db unavailable, recent files disabled")
			st = nil
		}
	}
	defer st.Close()

	log.Info().Str("path", path).Str("version", version).Msg("starting")
	p := tea.NewProgram(
		tui.New(tui.Options{Config: cfg, Store: st, Path: path, Version: version}),
		tea.WithFilter(tui.MouseEventFilter),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running sheet: %w", err)
	}
	return nil
}

// setupLogging points the global logger at <dataDir>/sheet.log. The terminal
// belongs to the UI, so nothing is logged to stderr.
func setupLogging(dataDir string, cfg *config.Config, debug bool) func() {
	level := cfg.Log.LevelOrDefault()
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	f, err := os.OpenFile(filepath.Join(dataDir, "sheet.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		log.Logger = zerolog.Nop()
		return func() {}
	}
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return func() { f.Close() }
}
