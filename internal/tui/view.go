package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// View implements tea.Model.
func (m Model) View() tea.View {
	content := m.renderContent()
	switch {
	case m.keybindsModal != nil:
		content = m.keybindsModal.View(m.width, m.height)
	case m.recentModal != nil:
		content = m.recentModal.View(m.width, m.height)
	case m.fileModal != nil:
		content = m.fileModal.View(m.width, m.height)
	case m.diffView != nil:
		content = m.diffView.View(m.width, m.height)
	}
	v := tea.NewView(content)
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

// renderContent draws the header, the visible rows, the status bar and the
// message line.
func (m Model) renderContent() string {
	if m.width == 0 {
		return ""
	}

	lines := []string{
		m.renderHeader(),
		m.styles.Rule.Render(strings.Repeat("─", m.width)),
	}
	lines = append(lines, m.renderRows()...)
	lines = append(lines, m.renderStatusBar(), m.renderMessage())
	return strings.Join(lines, "\n")
}

// fit truncates or pads a rendered line to exactly the terminal width.
func (m Model) fit(line string, fill lipgloss.Style) string {
	line = ansi.Truncate(line, m.width, "")
	if gap := m.width - ansi.StringWidth(line); gap > 0 {
		line += fill.Render(strings.Repeat(" ", gap))
	}
	return line
}
