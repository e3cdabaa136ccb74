package tui

import (
	"charm.land/lipgloss/v2"
	"github.com/xonecas/sheet/internal/highlight"
	"github.com/xonecas/sheet/internal/tui/modal"
)

// Styles holds the lipgloss styles the grid is drawn with.
type Styles struct {
	Base      lipgloss.Style
	Header    lipgloss.Style
	Gutter    lipgloss.Style
	Rule      lipgloss.Style
	Selected  lipgloss.Style
	Focus     lipgloss.Style
	Welcome   lipgloss.Style
	StatusBar lipgloss.Style
	Message   lipgloss.Style
	Error     lipgloss.Style
}

// newStyles derives the grid styles from a palette.
func newStyles(p highlight.Palette) Styles {
	bg := lipgloss.Color(p.Bg)
	base := lipgloss.NewStyle().Background(bg).Foreground(lipgloss.Color(p.Fg))
	return Styles{
		Base:      base,
		Header:    base.Foreground(lipgloss.Color(p.Gutter)).Bold(true),
		Gutter:    base.Foreground(lipgloss.Color(p.Gutter)),
		Rule:      base.Foreground(lipgloss.Color(p.Rule)),
		Selected:  base.Background(lipgloss.Color(p.Selected)),
		Focus:     base.Foreground(lipgloss.Color(p.Bg)).Background(lipgloss.Color(p.Accent)),
		Welcome:   base.Foreground(lipgloss.Color(p.Accent)),
		StatusBar: base.Background(lipgloss.Color(p.Status)),
		Message:   base,
		Error:     base.Foreground(lipgloss.Color(p.Error)),
	}
}

func modalColors(p highlight.Palette) modal.Colors {
	return modal.Colors{
		Fg:     p.Fg,
		Bg:     p.Bg,
		Dim:    p.Gutter,
		SelFg:  p.Fg,
		SelBg:  p.Selected,
		Border: p.Rule,
	}
}
