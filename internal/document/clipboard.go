package document

import (
	"strings"

	"github.com/xonecas/sheet/internal/grid"
	"github.com/xonecas/sheet/internal/ingest"
)

// Clipboard is an immutable snapshot of copied cells with the coordinates
// they were copied from, in row-major order.
type Clipboard struct {
	cells []grid.Cell
}

// Len is the number of copied cells.
func (c Clipboard) Len() int { return len(c.cells) }

// Empty reports a clipboard with nothing in it.
func (c Clipboard) Empty() bool { return len(c.cells) == 0 }

// Cells returns a copy of the snapshot.
func (c Clipboard) Cells() []grid.Cell {
	return append([]grid.Cell(nil), c.cells...)
}

// Text renders the snapshot as delimited text, one line per source row.
// Gaps inside a row are kept as empty fields.
func (c Clipboard) Text() string {
	if c.Empty() {
		return ""
	}
	origin := c.origin()
	var (
		lines []string
		row   []string
		cur   = c.cells[0].Row
	)
	for _, cell := range c.cells {
		if cell.Row != cur {
			lines = append(lines, strings.Join(row, ingest.Delimiter))
			row = row[:0]
			cur = cell.Row
		}
		for len(row) < cell.Col-origin.Col {
			row = append(row, "")
		}
		row = append(row, cell.Contents)
	}
	lines = append(lines, strings.Join(row, ingest.Delimiter))
	return strings.Join(lines, "\n")
}

// origin is the top-left corner of the bounding box of the copied cells.
func (c Clipboard) origin() grid.Coord {
	o := c.cells[0].Coord()
	for _, cell := range c.cells[1:] {
		o.Col = min(o.Col, cell.Col)
		o.Row = min(o.Row, cell.Row)
	}
	return o
}
