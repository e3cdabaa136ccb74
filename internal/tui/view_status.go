package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// maxNameWidth caps the file name shown in the status bar.
const maxNameWidth = 20

// renderStatusBar draws the file name and extent on the left and the focus
// position on the right.
func (m Model) renderStatusBar() string {
	name := "[No Name]"
	if p := m.doc.Path(); p != "" {
		name = runewidth.Truncate(filepath.Base(p), maxNameWidth, "…")
	}
	rows, cols := m.doc.NumRows(), m.doc.NumCols()
	left := fmt.Sprintf(" %s - rows:%d cols:%d", name, rows, cols)
	if m.doc.Dirty() {
		left += " (modified)"
	}

	focus := m.vp.Focus()
	right := fmt.Sprintf("y: %d/%d x: %d/%d ", focus.Row, rows, focus.Col, cols)

	gap := max(m.width-ansi.StringWidth(left)-ansi.StringWidth(right), 1)
	return m.fit(m.styles.StatusBar.Render(left+strings.Repeat(" ", gap)+right), m.styles.StatusBar)
}

// renderMessage draws the open prompt or the current status message.
func (m Model) renderMessage() string {
	if m.prompt != nil {
		return m.fit(m.prompt.input.View(), m.styles.Message)
	}
	text, isErr := m.statusText()
	style := m.styles.Message
	if isErr {
		style = m.styles.Error
	}
	return m.fit(style.Render(text), m.styles.Message)
}
