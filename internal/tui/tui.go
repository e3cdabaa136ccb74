// Package tui is the Bubble Tea front end: it draws the sheet, routes keys
// to the document and viewport, and hosts the prompts and modals.
package tui

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"
	"github.com/rs/zerolog/log"
	"github.com/xonecas/sheet/internal/config"
	"github.com/xonecas/sheet/internal/document"
	"github.com/xonecas/sheet/internal/grid"
	"github.com/xonecas/sheet/internal/highlight"
	"github.com/xonecas/sheet/internal/ingest"
	"github.com/xonecas/sheet/internal/store"
	"github.com/xonecas/sheet/internal/tui/modal"
	"github.com/xonecas/sheet/internal/viewport"
)

const (
	helpHint       = "HELP: Ctrl-q to Quit, Ctrl-s to Save, Return to Edit, Ctrl-h for Keys"
	encodingHint   = "Warning: This editor currently only supports utf-8 encoded csv files."
	openFailed     = "Err: Couldn't open file"
	recentListLen  = 20
	maxFindResults = 50
)

// Options configures a new Model.
type Options struct {
	Config  *config.Config
	Store   *store.Store // nil disables recent files
	Path    string       // file to open; empty starts an unnamed sheet
	Version string
}

// Model is the editor's Bubble Tea model.
type Model struct {
	width, height int

	doc  *document.Document
	vp   *viewport.Viewport
	clip document.Clipboard

	status    status
	prompt    *prompt
	quitArmed bool
	quitting  bool
	undone    bool // last mutation was undone

	keybindsModal *modal.Model
	recentModal   *modal.Model
	fileModal     *modal.Model
	diffView      *modal.TextView

	store         *store.Store
	theme         string
	statusTimeout time.Duration
	palette       highlight.Palette
	styles        Styles
	keys          keyMap
	version       string

	now            func() time.Time
	writeClipboard func(string) error
}

// New creates the editor model and opens opts.Path.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = &config.Config{}
	}
	theme := cfg.UI.SyntaxThemeOrDefault()
	palette := highlight.ThemePalette(theme)
	version := opts.Version
	if version == "" {
		version = "dev"
	}

	m := Model{
		store:          opts.Store,
		theme:          theme,
		statusTimeout:  cfg.UI.StatusTimeout(),
		palette:        palette,
		styles:         newStyles(palette),
		keys:           defaultKeyMap(),
		version:        version,
		now:            time.Now,
		writeClipboard: clipboard.WriteAll,
	}
	m.setStatus(helpHint)
	m.load(opts.Path)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return m.expireStatus() }

// load replaces the open document with path. Failures leave an empty
// unnamed sheet and a status message.
func (m *Model) load(path string) {
	m.doc = document.New()
	if path != "" {
		doc, err := document.Open(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			m.doc = document.NewFile(path)
			m.setStatus("New file")
		case err != nil:
			log.Warn().Err(err).Str("path", path).Msg("open failed")
			m.setError(openFailed)
		default:
			m.doc = doc
			switch {
			case doc.Format() != ingest.Delimited:
				m.setStatus(fmt.Sprintf("Imported %s sheet; saving writes %s", doc.Format(), filepath.Base(doc.SavePath())))
			case !strings.EqualFold(filepath.Ext(path), ".csv"):
				m.setStatus(encodingHint)
			}
		}
	}

	m.vp = viewport.New(m.doc)
	m.vp.Resize(m.width, m.height)
	m.clip = document.Clipboard{}
	m.undone = false
	m.quitArmed = false

	focus := grid.Coord{Col: 1, Row: 1}
	if col, row, ok := m.store.LastFocus(m.doc.Path()); ok {
		focus = grid.Coord{Col: col, Row: row}
	}
	m.vp.SetFocus(focus)
	m.recordFile()
}

// recordFile remembers the open file and its focus in the state store.
func (m *Model) recordFile() {
	if m.doc.Path() == "" {
		return
	}
	f := m.vp.Focus()
	m.store.RecordFile(m.doc.Path(), f.Col, f.Row)
}

