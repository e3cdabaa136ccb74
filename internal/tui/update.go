package tui

import (
	tea "charm.land/bubbletea/v2"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	before := m.status.seq
	mdl, cmd := m.update(msg)
	if mdl.status.seq != before && mdl.status.text != "" {
		cmd = tea.Batch(cmd, mdl.expireStatus())
	}
	return mdl, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleResize(msg)
		return m, nil

	case statusExpiredMsg:
		return m, nil

	case clipboardFallbackMsg:
		return m, tea.SetClipboard(msg.text)
	}

	if mdl, cmd, handled := m.updateModals(msg); handled {
		return mdl, cmd
	}
	if m.prompt != nil {
		return m.updatePrompt(msg)
	}

	switch msg := msg.(type) {
	case tea.MouseMsg:
		return m.handleMouse(msg), nil
	case tea.KeyPressMsg:
		if mdl, cmd, handled := m.handleKeyPress(msg); handled {
			return mdl, cmd
		}
	}
	return m, nil
}

// handleResize applies a window size change and re-contains focus.
func (m *Model) handleResize(msg tea.WindowSizeMsg) {
	m.width, m.height = msg.Width, msg.Height
	m.vp.Resize(m.width, m.height)
}
