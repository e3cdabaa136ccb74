package tui

import (
	"fmt"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
)

type keyHandler func(*Model) (Model, tea.Cmd, bool)

// handleKeyPress processes grid-mode keys. Returns (model, cmd, true) if
// handled. Any key other than a ray key ends a ray selection first.
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (Model, tea.Cmd, bool) {
	ks := msg.Keystroke()
	if !m.keys.isRay(ks) {
		m.endRay()
	}
	if !key.Matches(msg, m.keys.Quit) {
		m.quitArmed = false
	}

	handler := m.keyPressHandlers()[ks]
	if handler == nil {
		return *m, nil, false
	}
	return handler(m)
}

// endRay stops a ray selection in progress and says so.
func (m *Model) endRay() {
	if m.vp.EndRay() {
		m.setStatus("Stopped selection.")
	}
}

func (m *Model) keyPressHandlers() map[string]keyHandler {
	handlers := map[string]keyHandler{}
	bind := func(b key.Binding, fn keyHandler) {
		for _, k := range b.Keys() {
			handlers[k] = fn
		}
	}

	bind(m.keys.Quit, (*Model).handleQuit)
	bind(m.keys.Save, (*Model).handleSave)
	bind(m.keys.Insert, (*Model).handleInsert)
	bind(m.keys.Stats, (*Model).handleStats)
	bind(m.keys.Copy, (*Model).handleCopy)
	bind(m.keys.Cut, (*Model).handleCut)
	bind(m.keys.Paste, (*Model).handlePaste)
	bind(m.keys.Delete, (*Model).handleDelete)
	bind(m.keys.Undo, (*Model).handleUndo)
	bind(m.keys.Help, (*Model).handleHelp)
	bind(m.keys.Recent, (*Model).handleRecent)
	bind(m.keys.Find, (*Model).handleFind)
	bind(m.keys.Diff, (*Model).handleDiff)

	for dir, b := range m.keys.Move {
		bind(b, func(m *Model) (Model, tea.Cmd, bool) {
			m.vp.Move(dir)
			return *m, nil, true
		})
	}
	for dir, b := range m.keys.Ray {
		bind(b, func(m *Model) (Model, tea.Cmd, bool) {
			if m.vp.Ray(dir) {
				m.setStatus("Selection mode.")
			}
			return *m, nil, true
		})
	}
	for dir, b := range m.keys.Complement {
		bind(b, func(m *Model) (Model, tea.Cmd, bool) {
			m.vp.Complement(dir)
			return *m, nil, true
		})
	}
	return handlers
}

func (m *Model) handleQuit() (Model, tea.Cmd, bool) {
	if m.doc.Dirty() && !m.quitArmed {
		m.quitArmed = true
		m.setError("WARNING! File has unsaved changes. Press Ctrl-Q to quit")
		return *m, nil, true
	}
	m.recordFile()
	m.quitting = true
	return *m, tea.Quit, true
}

func (m *Model) handleSave() (Model, tea.Cmd, bool) {
	if m.doc.Path() == "" {
		return *m, m.openPrompt(promptSaveAs, "Save as: ", ""), true
	}
	m.save()
	return *m, nil, true
}

func (m *Model) handleInsert() (Model, tea.Cmd, bool) {
	focus := m.vp.Focus()
	return *m, m.openPrompt(promptInsert, "INSERT: ", m.doc.ContentAt(focus)), true
}

func (m *Model) handleStats() (Model, tea.Cmd, bool) {
	st, err := m.doc.Summary()
	if err != nil {
		m.setError("Error: " + err.Error())
		return *m, nil, true
	}
	m.setStatus(fmt.Sprintf("Statistics for selected cells: n = %d, sum = %.6g, mean = %.6g, std = %.6g",
		st.N, st.Sum, st.Mean, st.Std))
	return *m, nil, true
}

func (m *Model) handleCopy() (Model, tea.Cmd, bool) {
	m.clip = m.doc.Copy()
	m.setStatus("Copied")
	return *m, m.mirrorClipboard(), true
}

func (m *Model) handleCut() (Model, tea.Cmd, bool) {
	m.clip = m.doc.Cut()
	m.undone = false
	m.setStatus("Cut")
	return *m, m.mirrorClipboard(), true
}

func (m *Model) handlePaste() (Model, tea.Cmd, bool) {
	if err := m.doc.Paste(m.vp.Focus(), m.clip); err != nil {
		m.setError("Error: Nothing to paste")
		return *m, nil, true
	}
	m.undone = false
	m.setStatus("Pasted")
	return *m, nil, true
}

func (m *Model) handleDelete() (Model, tea.Cmd, bool) {
	if m.doc.Delete() > 0 {
		m.undone = false
	}
	m.setStatus("Deleted.")
	return *m, nil, true
}

func (m *Model) handleUndo() (Model, tea.Cmd, bool) {
	trigger, ok := m.doc.Undo()
	switch {
	case ok:
		m.undone = true
		log.Debug().Stringer("trigger", trigger).Msg("undo")
		m.setStatus("Undone.")
	case m.undone:
		m.setError("Cannot undo more than one event.")
	default:
		m.setStatus("Nothing to undo.")
	}
	return *m, nil, true
}

// mirrorClipboard copies the internal clipboard to the system clipboard,
// falling back to OSC 52 when no clipboard utility is available.
func (m *Model) mirrorClipboard() tea.Cmd {
	if m.clip.Empty() {
		return nil
	}
	text := m.clip.Text()
	write := m.writeClipboard
	return func() tea.Msg {
		if err := write(text); err != nil {
			log.Debug().Err(err).Msg("system clipboard unavailable")
			return clipboardFallbackMsg{text: text}
		}
		return nil
	}
}

