package modal

import (
	"strings"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
)

// Action is the result of handling a message. nil means no action.
type Action any

// ActionClose signals the modal should be dismissed.
type ActionClose struct{}

// ActionSelect signals an item was chosen.
type ActionSelect struct{ Item Item }

// Item is a single entry in the list. Value is handed back on selection and
// defaults to Name when empty.
type Item struct {
	Name  string
	Desc  string
	Value string
}

// SearchFunc is called with the current query to produce results.
type SearchFunc func(query string) []Item

// Colors holds the theme colors for the modal.
type Colors struct {
	Fg     string
	Bg     string
	Dim    string
	SelFg  string
	SelBg  string
	Border string
}

const (
	debounceDelay = 150 * time.Millisecond

	keyUp   = "up"
	keyDown = "down"
)

// debounceMsg is sent after the debounce timer fires.
type debounceMsg struct{ seq int }

// Model is a query input above a filtered list.
type Model struct {
	input    textinput.Model
	items    []Item
	selected int
	inList   bool // true = list focused, false = input focused

	searchFn SearchFunc
	query    string
	seq      int // debounce sequence counter

	colors Colors

	// WidthPct is the modal width as a percentage of the app width.
	WidthPct int
}

// New creates a modal with the given search function.
func New(searchFn SearchFunc, prompt string, colors Colors) Model {
	in := textinput.New()
	in.Prompt = prompt
	in.Placeholder = "type to filter"
	in.CharLimit = 120
	in.Focus()

	return Model{
		input:    in,
		items:    searchFn(""),
		searchFn: searchFn,
		colors:   colors,
		WidthPct: 80,
	}
}

// Items returns the current results.
func (m *Model) Items() []Item { return m.items }

// DebounceCmd returns a tea.Cmd that fires after the debounce delay.
func (m *Model) DebounceCmd() tea.Cmd {
	seq := m.seq
	return tea.Tick(debounceDelay, func(time.Time) tea.Msg {
		return debounceMsg{seq: seq}
	})
}

// HandleMsg processes a tea.Msg and returns an optional Action.
// The second return is a tea.Cmd the parent must dispatch (for debounce).
func (m *Model) HandleMsg(msg tea.Msg) (Action, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	case debounceMsg:
		if msg.seq == m.seq {
			m.refresh()
		}
		return nil, nil
	}
	return nil, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (Action, tea.Cmd) {
	switch msg.Keystroke() {
	case "esc":
		return ActionClose{}, nil
	case "enter":
		return m.handleEnter(), nil
	case keyUp, keyDown:
		m.handleNav(msg.Keystroke())
		return nil, nil
	}
	if m.inList {
		return nil, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == m.query {
		return nil, cmd
	}
	m.query = m.input.Value()
	m.seq++
	return nil, tea.Batch(cmd, m.DebounceCmd())
}

// refresh reruns the search for the current query.
func (m *Model) refresh() {
	m.items = m.searchFn(m.query)
	m.selected = 0
	m.inList = false
	m.input.Focus()
}

func (m *Model) handleEnter() Action {
	if len(m.items) == 0 {
		return nil
	}
	idx := m.selected
	if idx >= len(m.items) {
		idx = 0
	}
	item := m.items[idx]
	if item.Value == "" {
		item.Value = item.Name
	}
	return ActionSelect{Item: item}
}

func (m *Model) handleNav(key string) {
	switch key {
	case keyUp:
		if !m.inList {
			return
		}
		if m.selected > 0 {
			m.selected--
			return
		}
		m.inList = false
		m.input.Focus()
	case keyDown:
		if !m.inList {
			if len(m.items) > 0 {
				m.inList = true
				m.selected = 0
				m.input.Blur()
			}
		} else if m.selected < len(m.items)-1 {
			m.selected++
		}
	}
}

// View renders the modal at the given app width and height.
func (m *Model) View(appWidth, appHeight int) string {
	w := max(appWidth*m.WidthPct/100, 30)
	h := max(appHeight*80/100, 8)
	innerW := max(w-6, 10) // border + padding

	m.input.SetWidth(innerW - runewidth.StringWidth(m.input.Prompt) - 1)
	listHeight := max(h-4, 1) // border top/bottom + input + divider

	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.colors.Dim))
	divider := dimStyle.Render(strings.Repeat("─", innerW))

	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteByte('\n')
	b.WriteString(divider)
	for _, l := range m.renderList(innerW, listHeight) {
		b.WriteByte('\n')
		b.WriteString(l)
	}

	return frame(b.String(), w, appWidth, appHeight, m.colors)
}

func (m *Model) renderList(innerW, listHeight int) []string {
	scrollOff := 0
	if m.selected >= listHeight {
		scrollOff = m.selected - listHeight + 1
	}

	bg := lipgloss.Color(m.colors.Bg)
	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.colors.Dim)).
		Background(bg)
	selStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.colors.SelFg)).
		Background(lipgloss.Color(m.colors.SelBg))

	var lines []string
	for i := scrollOff; i < len(m.items) && len(lines) < listHeight; i++ {
		item := m.items[i]
		if i == m.selected && m.inList {
			lines = append(lines, selStyle.Render(padRight(item.Name, innerW)))
			continue
		}
		name := runewidth.Truncate(item.Name, innerW, "…")
		line := name
		if room := innerW - runewidth.StringWidth(name) - 2; item.Desc != "" && room > 0 {
			line += dimStyle.Render("  " + runewidth.Truncate(item.Desc, room, "…"))
		}
		lines = append(lines, line+strings.Repeat(" ", max(innerW-lipgloss.Width(line), 0)))
	}

	for len(lines) < listHeight {
		lines = append(lines, strings.Repeat(" ", innerW))
	}
	return lines
}

// frame draws content in a rounded box of width w centered in the app.
func frame(content string, w, appWidth, appHeight int, colors Colors) string {
	bg := lipgloss.Color(colors.Bg)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colors.Border)).
		BorderBackground(bg).
		Foreground(lipgloss.Color(colors.Fg)).
		Background(bg).
		Padding(0, 1).
		Width(w - 2).
		Render(content)

	return lipgloss.Place(appWidth, appHeight, lipgloss.Center, lipgloss.Center, box,
		lipgloss.WithWhitespaceStyle(lipgloss.NewStyle().Background(bg)))
}

// padRight pads or truncates s to exactly w terminal columns.
func padRight(s string, w int) string {
	return runewidth.FillRight(runewidth.Truncate(s, w, "…"), w)
}
