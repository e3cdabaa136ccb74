package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/xonecas/sheet/internal/viewport"
)

var lastMouseEvent time.Time

// MouseEventFilter rate-limits wheel events (15 ms). Pass to tea.WithFilter.
// Never drops clicks.
func MouseEventFilter(_ tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.MouseWheelMsg); ok {
		now := time.Now()
		if now.Sub(lastMouseEvent) < 15*time.Millisecond {
			return nil
		}
		lastMouseEvent = now
	}
	return msg
}

// handleMouse focuses the clicked cell and scrolls with the wheel. Any mouse
// event ends a ray selection.
func (m Model) handleMouse(msg tea.MouseMsg) Model {
	m.endRay()
	switch ev := msg.(type) {
	case tea.MouseClickMsg:
		if ev.Button != tea.MouseLeft {
			return m
		}
		mouse := ev.Mouse()
		if at, ok := m.cellAt(mouse.X, mouse.Y); ok {
			m.vp.SetFocus(at)
		}
	case tea.MouseWheelMsg:
		focus := m.vp.Focus()
		switch {
		case ev.Button == tea.MouseWheelUp && focus.Row > 1:
			m.vp.Move(viewport.Up)
		case ev.Button == tea.MouseWheelDown && focus.Row < m.doc.NumRows():
			m.vp.Move(viewport.Down)
		}
	}
	return m
}
