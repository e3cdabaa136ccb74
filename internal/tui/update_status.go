package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// status is the transient message under the status bar.
type status struct {
	text string
	at   time.Time
	err  bool
	seq  int
}

func (m *Model) setStatus(text string) {
	m.status = status{text: text, at: m.now(), seq: m.status.seq + 1}
}

func (m *Model) setError(text string) {
	m.setStatus(text)
	m.status.err = true
}

// statusText returns the current message, or "" once it is older than the
// configured timeout.
func (m Model) statusText() (string, bool) {
	if m.status.text == "" || m.now().Sub(m.status.at) >= m.statusTimeout {
		return "", false
	}
	return m.status.text, m.status.err
}

// expireStatus schedules a redraw for when the current message ages out.
func (m Model) expireStatus() tea.Cmd {
	return tea.Tick(m.statusTimeout, func(time.Time) tea.Msg {
		return statusExpiredMsg{}
	})
}
