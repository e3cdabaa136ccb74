package grid

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// Coord addresses a cell. Both axes are 1-based.
type Coord struct {
	Col int
	Row int
}

// Cell is one addressable unit of text.
type Cell struct {
	Contents string
	Width    int // terminal columns occupied by Contents
	Col      int
	Row      int
	Selected bool
}

// NewCell returns a cell at (col,row) with its display width computed.
func NewCell(col, row int, text string) Cell {
	return Cell{
		Contents: text,
		Width:    DisplayWidth(text),
		Col:      col,
		Row:      row,
	}
}

// Coord returns the cell's coordinate.
func (c Cell) Coord() Coord { return Coord{Col: c.Col, Row: c.Row} }

// Blank reports whether the cell holds no text.
func (c Cell) Blank() bool { return c.Contents == "" }

// SetContents replaces the text and recomputes the display width.
func (c *Cell) SetContents(text string) {
	c.Contents = text
	c.Width = DisplayWidth(text)
}

// DisplayWidth is the terminal footprint of s as Printable draws it. Wide
// glyphs count double.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(Printable(s))
}

// Printable replaces control characters such as tabs with a space, so a cell
// occupies exactly its measured width on screen.
func Printable(s string) string {
	if strings.IndexFunc(s, unicode.IsControl) < 0 {
		return s
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
}

// ColumnName returns the spreadsheet letter name of column x (1 = A,
// 26 = Z, 27 = AA). Non-positive columns have no name.
func ColumnName(x int) string {
	if x < 1 {
		return ""
	}
	var b []byte
	for x > 0 {
		x--
		b = append(b, byte('A'+x%26))
		x /= 26
	}
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

// CellName formats a coordinate as e.g. "B3".
func CellName(c Coord) string {
	return ColumnName(c.Col) + strconv.Itoa(c.Row)
}
