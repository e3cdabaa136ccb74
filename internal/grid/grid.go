// Package grid is the rectangular cell store behind a document.
//
// Cells are keyed by coordinate. The extent (NumRows x NumCols) is the
// largest row and column index ever stored; any coordinate inside the extent
// that has no stored cell reads as an implicit blank.
package grid

// Grid holds the cells of one document.
type Grid struct {
	cells map[Coord]*Cell
	rows  int
	cols  int

	// colWidth caches the widest cell per column. A column missing from the
	// map is recomputed on the next ColumnWidth call.
	colWidth map[int]int

	widest     int
	totalWidth int
}

// New returns an empty grid.
func New() *Grid {
	return &Grid{
		cells:    make(map[Coord]*Cell),
		colWidth: make(map[int]int),
	}
}

// FromRecords builds a grid from ordered records of field text, column by
// column within each row. A record with no fields still occupies its row as
// a single blank cell so the record count survives.
func FromRecords(records [][]string) *Grid {
	g := New()
	for y, rec := range records {
		if len(rec) == 0 {
			g.Add(NewCell(1, y+1, ""))
			continue
		}
		for x, field := range rec {
			g.Add(NewCell(x+1, y+1, field))
		}
	}
	return g
}

// NumRows is the largest row index present, 0 when empty.
func (g *Grid) NumRows() int { return g.rows }

// NumCols is the largest column index present, 0 when empty.
func (g *Grid) NumCols() int { return g.cols }

// Len is the number of stored cells.
func (g *Grid) Len() int { return len(g.cells) }

// WidestCell is the largest display width seen across all cells.
func (g *Grid) WidestCell() int { return g.widest }

// TotalWidth is the sum of display widths of all stored cells.
func (g *Grid) TotalWidth() int { return g.totalWidth }

// Add stores c at its coordinate, replacing any cell already there.
func (g *Grid) Add(c Cell) {
	if c.Col < 1 || c.Row < 1 {
		return
	}
	at := c.Coord()
	if old, ok := g.cells[at]; ok {
		g.totalWidth -= old.Width
		g.shrinkCheck(old.Col, old.Width, c.Width)
	}
	cell := c
	g.cells[at] = &cell
	g.totalWidth += c.Width
	g.rows = max(g.rows, c.Row)
	g.cols = max(g.cols, c.Col)
	g.grow(c.Col, c.Width)
}

// Set writes text at (col,row), creating the cell if absent.
func (g *Grid) Set(col, row int, text string) {
	at := Coord{Col: col, Row: row}
	c, ok := g.cells[at]
	if !ok {
		g.Add(NewCell(col, row, text))
		return
	}
	oldWidth := c.Width
	c.SetContents(text)
	g.totalWidth += c.Width - oldWidth
	g.shrinkCheck(col, oldWidth, c.Width)
	g.grow(col, c.Width)
}

// ContentAt returns the text at (col,row), or "" when nothing is stored.
func (g *Grid) ContentAt(col, row int) string {
	if c, ok := g.cells[Coord{Col: col, Row: row}]; ok {
		return c.Contents
	}
	return ""
}

// Cell returns a copy of the stored cell at (col,row).
func (g *Grid) Cell(col, row int) (Cell, bool) {
	c, ok := g.cells[Coord{Col: col, Row: row}]
	if !ok {
		return Cell{}, false
	}
	return *c, true
}

// Contains reports whether (col,row) lies inside the current extent.
func (g *Grid) Contains(col, row int) bool {
	return col >= 1 && row >= 1 && col <= g.cols && row <= g.rows
}

// ColumnWidth is the widest display width among cells in column x.
func (g *Grid) ColumnWidth(x int) int {
	if x < 1 || x > g.cols {
		return 0
	}
	if w, ok := g.colWidth[x]; ok {
		return w
	}
	w := 0
	for y := 1; y <= g.rows; y++ {
		if c, ok := g.cells[Coord{Col: x, Row: y}]; ok && c.Width > w {
			w = c.Width
		}
	}
	g.colWidth[x] = w
	return w
}

// Row returns exactly NumCols cells for row y in ascending column order.
// Unset coordinates come back as blank cells.
func (g *Grid) Row(y int) []Cell {
	row := make([]Cell, g.cols)
	for x := 1; x <= g.cols; x++ {
		if c, ok := g.cells[Coord{Col: x, Row: y}]; ok {
			row[x-1] = *c
			continue
		}
		row[x-1] = Cell{Col: x, Row: y}
	}
	return row
}

// Each visits stored cells in row-major order. fn may mutate the cell's
// Selected flag but must use Set to change contents.
func (g *Grid) Each(fn func(c *Cell)) {
	for y := 1; y <= g.rows; y++ {
		for x := 1; x <= g.cols; x++ {
			if c, ok := g.cells[Coord{Col: x, Row: y}]; ok {
				fn(c)
			}
		}
	}
}

// Select marks the cell at (col,row). Coordinates inside the extent with no
// stored cell are materialized as blanks; anything outside is ignored.
func (g *Grid) Select(col, row int) bool {
	if !g.Contains(col, row) {
		return false
	}
	at := Coord{Col: col, Row: row}
	c, ok := g.cells[at]
	if !ok {
		g.Add(NewCell(col, row, ""))
		c = g.cells[at]
	}
	c.Selected = true
	return true
}

// ClearSelection unmarks every cell.
func (g *Grid) ClearSelection() {
	for _, c := range g.cells {
		c.Selected = false
	}
}

// Selected returns copies of the marked cells in row-major order.
func (g *Grid) Selected() []Cell {
	var out []Cell
	g.Each(func(c *Cell) {
		if c.Selected {
			out = append(out, *c)
		}
	})
	return out
}

func (g *Grid) grow(col, width int) {
	if width > g.widest {
		g.widest = width
	}
	if w, ok := g.colWidth[col]; ok && width > w {
		g.colWidth[col] = width
	}
}

// shrinkCheck drops the cached width for col when its widest cell got
// narrower, so the next read rescans.
func (g *Grid) shrinkCheck(col, oldWidth, newWidth int) {
	if newWidth >= oldWidth {
		return
	}
	if w, ok := g.colWidth[col]; ok && w == oldWidth {
		delete(g.colWidth, col)
	}
}
