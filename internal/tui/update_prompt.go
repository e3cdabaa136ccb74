package tui

import (
	"errors"
	"path/filepath"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/xonecas/sheet/internal/grid"
)

type promptKind int

const (
	promptInsert promptKind = iota
	promptSaveAs
)

// errCancelled is returned by a prompt dismissed with esc or an empty answer.
var errCancelled = errors.New("cancelled")

// prompt is the single-line input shown on the message line.
type prompt struct {
	kind  promptKind
	at    grid.Coord // cell being edited, for promptInsert
	input textinput.Model
}

// answer returns the submitted text, or errCancelled for an empty one.
func (p *prompt) answer() (string, error) {
	v := p.input.Value()
	if v == "" {
		return "", errCancelled
	}
	return v, nil
}

func (m *Model) openPrompt(kind promptKind, label, value string) tea.Cmd {
	in := textinput.New()
	in.Prompt = label
	in.SetWidth(max(m.width-len(label)-1, 1))
	in.SetValue(value)
	in.CursorEnd()
	m.prompt = &prompt{kind: kind, at: m.vp.Focus(), input: in}
	return m.prompt.input.Focus()
}

// updatePrompt routes input to the open prompt. Enter submits, esc cancels.
func (m Model) updatePrompt(msg tea.Msg) (Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok {
		switch k.Keystroke() {
		case "esc":
			m.finishPrompt("", errCancelled)
			return m, nil
		case "enter":
			m.finishPrompt(m.prompt.answer())
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.prompt.input, cmd = m.prompt.input.Update(msg)
	return m, cmd
}

func (m *Model) finishPrompt(value string, err error) {
	p := m.prompt
	m.prompt = nil

	switch p.kind {
	case promptInsert:
		if errors.Is(err, errCancelled) {
			m.setStatus("Not Saved")
			return
		}
		m.doc.Insert(p.at, value)
		if len(m.doc.Selected()) == 0 {
			m.doc.Highlight(p.at)
		}
		m.undone = false
	case promptSaveAs:
		if errors.Is(err, errCancelled) {
			m.setStatus("Not Saving")
			return
		}
		m.saveAs(value)
	}
}

// save writes the document to its own path.
func (m *Model) save() {
	prev := m.doc.Path()
	if err := m.doc.Save(); err != nil {
		log.Error().Err(err).Str("path", m.doc.SavePath()).Msg("save failed")
		m.setError("Error: Unable to save changes")
		return
	}
	if m.doc.Path() != prev {
		m.setStatus("Saved as " + filepath.Base(m.doc.Path()))
	} else {
		m.setStatus("Saved!")
	}
	m.recordFile()
}

// saveAs names an unnamed document and writes it.
func (m *Model) saveAs(path string) {
	if err := m.doc.SaveAs(path); err != nil {
		log.Error().Err(err).Str("path", path).Msg("save failed")
		m.setError("Error: Unable to save changes")
		return
	}
	m.setStatus("Saved!")
	m.recordFile()
}
