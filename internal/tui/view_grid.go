package tui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/xonecas/sheet/internal/grid"
	"github.com/xonecas/sheet/internal/viewport"
)

// headerRows is the number of screen rows above the first grid row.
const headerRows = 2

// cellWidth is the text width of column x on screen, without padding.
func (m Model) cellWidth(x int) int {
	return viewport.RenderedWidth(m.doc, x) - viewport.ColumnPadding
}

// renderHeader draws the column letters above the gutter.
func (m Model) renderHeader() string {
	var b strings.Builder
	b.WriteString(m.styles.Gutter.Render(strings.Repeat(" ", viewport.GutterWidth(m.doc.NumRows()))))
	first, last := m.vp.Columns()
	for x := first; x <= last; x++ {
		name := grid.ColumnName(x)
		b.WriteString(m.styles.Header.Render(" " + runewidth.FillRight(name, m.cellWidth(x)) + " "))
		b.WriteString(m.styles.Rule.Render("│"))
	}
	return m.fit(b.String(), m.styles.Base)
}

// renderRows draws one line per window row. Rows past the sheet are blank;
// an empty sheet shows the welcome line a third of the way down.
func (m Model) renderRows() []string {
	window := m.vp.WindowRows()
	first, last := m.vp.Rows()
	lines := make([]string, window)
	for i := range lines {
		y := first + i
		if y > last {
			lines[i] = m.fit("", m.styles.Base)
			continue
		}
		lines[i] = m.renderRow(y)
	}
	if m.doc.Empty() {
		lines[window/3] = m.renderWelcome()
	}
	return lines
}

func (m Model) renderRow(y int) string {
	var b strings.Builder
	digits := viewport.GutterWidth(m.doc.NumRows()) - 2
	b.WriteString(m.styles.Gutter.Render(fmt.Sprintf("%*d ", digits, y)))
	b.WriteString(m.styles.Rule.Render("│"))

	row := m.doc.Row(y)
	focus := m.vp.Focus()
	first, last := m.vp.Columns()
	for x := first; x <= last && x <= len(row); x++ {
		c := row[x-1]
		style := m.styles.Base
		switch {
		case c.Coord() == focus:
			style = m.styles.Focus
		case c.Selected:
			style = m.styles.Selected
		}
		b.WriteString(style.Render(" " + runewidth.FillRight(grid.Printable(c.Contents), m.cellWidth(x)) + " "))
		b.WriteString(m.styles.Rule.Render("│"))
	}
	return m.fit(b.String(), m.styles.Base)
}

func (m Model) renderWelcome() string {
	msg := "sheet -- version: " + m.version
	pad := max((m.width-runewidth.StringWidth(msg))/2, 0)
	return m.fit(m.styles.Base.Render(strings.Repeat(" ", pad))+m.styles.Welcome.Render(msg), m.styles.Base)
}

// cellAt maps a screen position to the grid cell drawn there.
func (m Model) cellAt(x, y int) (grid.Coord, bool) {
	firstRow, lastRow := m.vp.Rows()
	row := firstRow + y - headerRows
	if y < headerRows || row > lastRow {
		return grid.Coord{}, false
	}
	cx := x - viewport.GutterWidth(m.doc.NumRows())
	if cx < 0 {
		return grid.Coord{}, false
	}
	firstCol, lastCol := m.vp.Columns()
	for col := firstCol; col <= lastCol; col++ {
		w := viewport.RenderedWidth(m.doc, col)
		if cx < w {
			return grid.Coord{Col: col, Row: row}, true
		}
		cx -= w
	}
	return grid.Coord{}, false
}
