package tui

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/xonecas/sheet/internal/filesearch"
	"github.com/xonecas/sheet/internal/grid"
	"github.com/xonecas/sheet/internal/highlight"
	"github.com/xonecas/sheet/internal/tui/modal"
)

// updateModals gives the open modal first claim on msg.
func (m *Model) updateModals(msg tea.Msg) (Model, tea.Cmd, bool) {
	if mdl, cmd, handled := m.updateKeybindsModal(msg); handled {
		return mdl, cmd, true
	}
	if mdl, cmd, handled := m.updateRecentModal(msg); handled {
		return mdl, cmd, true
	}
	if mdl, cmd, handled := m.updateFileModal(msg); handled {
		return mdl, cmd, true
	}
	return m.updateDiffView(msg)
}

// filterItems is a case-insensitive substring search over name and desc.
func filterItems(items []modal.Item) modal.SearchFunc {
	return func(query string) []modal.Item {
		if query == "" {
			return items
		}
		q := strings.ToLower(query)
		var filtered []modal.Item
		for _, item := range items {
			if strings.Contains(strings.ToLower(item.Name), q) ||
				strings.Contains(strings.ToLower(item.Desc), q) {
				filtered = append(filtered, item)
			}
		}
		return filtered
	}
}

func (m *Model) handleHelp() (Model, tea.Cmd, bool) {
	var items []modal.Item
	for _, b := range m.keys.help() {
		h := b.Help()
		items = append(items, modal.Item{Name: h.Key, Desc: h.Desc})
	}
	md := modal.New(filterItems(items), "Keys: ", modalColors(m.palette))
	md.WidthPct = 60
	m.keybindsModal = &md
	return *m, nil, true
}

func (m *Model) updateKeybindsModal(msg tea.Msg) (Model, tea.Cmd, bool) {
	if m.keybindsModal == nil {
		return *m, nil, false
	}
	action, cmd := m.keybindsModal.HandleMsg(msg)
	switch action.(type) {
	case modal.ActionClose, modal.ActionSelect:
		m.keybindsModal = nil
		return *m, nil, true
	}
	return *m, cmd, claims(msg, cmd)
}

func (m *Model) handleRecent() (Model, tea.Cmd, bool) {
	if m.store == nil {
		m.setStatus("Recent files are disabled")
		return *m, nil, true
	}
	if m.refuseSwitch() {
		return *m, nil, true
	}
	files, err := m.store.RecentFiles(recentListLen)
	if err != nil {
		log.Warn().Err(err).Msg("recent files")
	}

	current := m.doc.Path()
	if abs, err := filepath.Abs(current); err == nil && current != "" {
		current = abs
	}
	var items []modal.Item
	for _, f := range files {
		if f.Path == current {
			continue
		}
		items = append(items, modal.Item{
			Name: f.Path,
			Desc: fmt.Sprintf("%s  %s", grid.CellName(grid.Coord{Col: f.Col, Row: f.Row}), f.Opened.Format("2006-01-02 15:04")),
		})
	}
	if len(items) == 0 {
		m.setStatus("No recent files")
		return *m, nil, true
	}

	md := modal.New(filterItems(items), "Open: ", modalColors(m.palette))
	md.WidthPct = 70
	m.recentModal = &md
	return *m, nil, true
}

func (m *Model) updateRecentModal(msg tea.Msg) (Model, tea.Cmd, bool) {
	if m.recentModal == nil {
		return *m, nil, false
	}
	action, cmd := m.recentModal.HandleMsg(msg)
	switch a := action.(type) {
	case modal.ActionClose:
		m.recentModal = nil
		return *m, nil, true
	case modal.ActionSelect:
		m.recentModal = nil
		if _, err := os.Stat(a.Item.Value); errors.Is(err, fs.ErrNotExist) {
			if err := m.store.ForgetFile(a.Item.Value); err != nil {
				log.Warn().Err(err).Str("path", a.Item.Value).Msg("failed to forget file")
			}
			m.setError("No longer exists: " + filepath.Base(a.Item.Value))
			return *m, nil, true
		}
		m.recordFile()
		m.load(a.Item.Value)
		return *m, nil, true
	}
	return *m, cmd, claims(msg, cmd)
}

// refuseSwitch reports, with a status message, whether unsaved changes
// block opening another file.
func (m *Model) refuseSwitch() bool {
	if !m.doc.Dirty() {
		return false
	}
	m.setError("Save or undo your changes before opening another file")
	return true
}

func (m *Model) handleFind() (Model, tea.Cmd, bool) {
	if m.refuseSwitch() {
		return *m, nil, true
	}
	root := ""
	if p := m.doc.Path(); p != "" {
		root = filepath.Dir(p)
	}
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}

	searchFn := func(query string) []modal.Item {
		results, err := filesearch.Search(context.Background(), filesearch.Options{
			Pattern:    query,
			MaxResults: maxFindResults,
			RootDir:    root,
		})
		if err != nil {
			log.Debug().Err(err).Str("root", root).Msg("file search")
			return nil
		}
		items := make([]modal.Item, len(results))
		for i, r := range results {
			items[i] = modal.Item{
				Name:  r.Path,
				Desc:  r.Format.String(),
				Value: filepath.Join(root, r.Path),
			}
		}
		return items
	}
	md := modal.New(searchFn, "Find: ", modalColors(m.palette))
	md.WidthPct = 70
	m.fileModal = &md
	return *m, nil, true
}

func (m *Model) updateFileModal(msg tea.Msg) (Model, tea.Cmd, bool) {
	if m.fileModal == nil {
		return *m, nil, false
	}
	action, cmd := m.fileModal.HandleMsg(msg)
	switch a := action.(type) {
	case modal.ActionClose:
		m.fileModal = nil
		return *m, nil, true
	case modal.ActionSelect:
		m.fileModal = nil
		m.recordFile()
		m.load(a.Item.Value)
		return *m, nil, true
	}
	return *m, cmd, claims(msg, cmd)
}

func (m *Model) handleDiff() (Model, tea.Cmd, bool) {
	text, err := m.doc.Diff()
	if err != nil {
		m.setError("Error: " + err.Error())
		return *m, nil, true
	}
	if text == "" {
		m.setStatus("No unsaved changes")
		return *m, nil, true
	}

	name := "[No Name]"
	if p := m.doc.SavePath(); p != "" {
		name = filepath.Base(p)
	}
	lines := highlight.SplitLines(highlight.Diff(strings.TrimRight(text, "\n"), m.theme, m.palette.Bg))
	v := modal.NewTextView("Unsaved changes: "+name, lines, modalColors(m.palette))
	m.diffView = &v
	return *m, nil, true
}

func (m *Model) updateDiffView(msg tea.Msg) (Model, tea.Cmd, bool) {
	if m.diffView == nil {
		return *m, nil, false
	}
	action, cmd := m.diffView.HandleMsg(msg)
	if _, ok := action.(modal.ActionClose); ok {
		m.diffView = nil
		return *m, nil, true
	}
	return *m, cmd, claims(msg, cmd)
}

// claims reports whether an open modal swallows msg: all input does, and so
// does anything that produced a command.
func claims(msg tea.Msg, cmd tea.Cmd) bool {
	if cmd != nil {
		return true
	}
	switch msg.(type) {
	case tea.KeyPressMsg, tea.MouseMsg, tea.PasteMsg:
		return true
	}
	return false
}
