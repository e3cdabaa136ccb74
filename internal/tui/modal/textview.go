package modal

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// pageStep is how many lines pgup/pgdown scroll.
const pageStep = 10

// TextView is a read-only scrolling modal. Lines may carry ANSI styling.
type TextView struct {
	title  string
	lines  []string
	scroll int
	colors Colors
}

// NewTextView creates a viewer for the given lines.
func NewTextView(title string, lines []string, colors Colors) TextView {
	return TextView{title: title, lines: lines, colors: colors}
}

// Scroll returns the index of the first visible line.
func (t *TextView) Scroll() int { return t.scroll }

// HandleMsg processes key and wheel events. Returns ActionClose when the
// viewer should close.
func (t *TextView) HandleMsg(msg tea.Msg) (Action, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.Keystroke() {
		case "esc", "q", "enter":
			return ActionClose{}, nil
		case "up", "k":
			t.scrollBy(-1)
		case "down", "j":
			t.scrollBy(1)
		case "pgup":
			t.scrollBy(-pageStep)
		case "pgdown":
			t.scrollBy(pageStep)
		case "home", "g":
			t.scroll = 0
		case "end", "G":
			t.scroll = len(t.lines)
		}
	case tea.MouseWheelMsg:
		switch msg.Button {
		case tea.MouseWheelUp:
			t.scrollBy(-1)
		case tea.MouseWheelDown:
			t.scrollBy(1)
		}
	}
	return nil, nil
}

func (t *TextView) scrollBy(n int) {
	t.scroll = max(0, min(t.scroll+n, len(t.lines)))
}

// View renders the viewer centered in the terminal at appWidth x appHeight.
// The scroll offset is clamped to the visible height.
func (t *TextView) View(appWidth, appHeight int) string {
	w := max(appWidth*80/100, 30)
	h := max(appHeight*80/100, 8)
	innerW := max(w-6, 10)
	bodyH := max(h-4, 1) // border top/bottom + title + divider

	t.scroll = min(t.scroll, max(len(t.lines)-bodyH, 0))

	bg := lipgloss.Color(t.colors.Bg)
	fgStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.colors.Fg)).Background(bg)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.colors.Dim)).Background(bg)

	var sb strings.Builder
	sb.WriteString(fgStyle.Bold(true).Render(padRight(t.title, innerW)))
	sb.WriteByte('\n')
	sb.WriteString(dimStyle.Render(strings.Repeat("─", innerW)))

	end := min(t.scroll+bodyH, len(t.lines))
	for _, l := range t.lines[t.scroll:end] {
		l = ansi.Truncate(l, innerW, "")
		sb.WriteByte('\n')
		sb.WriteString(l + fgStyle.Render(strings.Repeat(" ", max(innerW-ansi.StringWidth(l), 0))))
	}
	for i := end - t.scroll; i < bodyH; i++ {
		sb.WriteByte('\n')
		sb.WriteString(fgStyle.Render(strings.Repeat(" ", innerW)))
	}

	return frame(sb.String(), w, appWidth, appHeight, t.colors)
}
