// Package viewport tracks the focused cell, the selection shape grown from
// it, and the scroll offset that keeps focus on screen.
package viewport

import (
	"strconv"

	"github.com/xonecas/sheet/internal/grid"
)

const (
	// ColumnPadding is the rendered width added to every column: one space
	// either side of the text and a separator.
	ColumnPadding = 3

	// ChromeRows is the number of terminal rows not used for cells: the
	// column header, the rule under it, the status bar and the message line.
	ChromeRows = 4
)

// Sheet is what the viewport needs from a document.
type Sheet interface {
	NumRows() int
	NumCols() int
	ColumnWidth(x int) int
	Highlight(at grid.Coord)
	ExtendHighlight(at grid.Coord)
	InsertNewRow(at int) bool
	InsertNewCol(at int) bool
}

// Move is a focus command. Up, Down, Left and Right double as directions for
// ray and complement selections.
type Move int

const (
	Up Move = iota
	Down
	Left
	Right
	PageUp
	PageDown
	Home
	End
)

func (m Move) String() string {
	switch m {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	case PageUp:
		return "pgup"
	case PageDown:
		return "pgdown"
	case Home:
		return "home"
	case End:
		return "end"
	}
	return "move(" + strconv.Itoa(int(m)) + ")"
}

// delta is the unit step of an arrow direction.
func (m Move) delta() (dx, dy int) {
	switch m {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	}
	return 0, 0
}

func (m Move) arrow() bool { return m <= Right }

// ray is the Extending state of a ray selection. The zero value is Idle.
type ray struct {
	active bool
	dir    Move
	count  int
}

// Viewport projects a sheet onto a width x height terminal.
type Viewport struct {
	sheet  Sheet
	focus  grid.Coord
	offset grid.Coord
	width  int
	height int
	ray    ray
}

// New returns a viewport focused on the first cell.
func New(s Sheet) *Viewport {
	return &Viewport{
		sheet:  s,
		focus:  grid.Coord{Col: 1, Row: 1},
		offset: grid.Coord{Col: 1, Row: 1},
	}
}

// Focus is the focused coordinate.
func (v *Viewport) Focus() grid.Coord { return v.focus }

// Offset is the top-left coordinate on screen.
func (v *Viewport) Offset() grid.Coord { return v.offset }

// Size returns the terminal size last given to Resize.
func (v *Viewport) Size() (width, height int) { return v.width, v.height }

// Resize records the terminal size and re-contains focus.
func (v *Viewport) Resize(width, height int) {
	v.width, v.height = width, height
	v.scroll(true)
}

// WindowRows is the number of grid rows that fit on screen.
func (v *Viewport) WindowRows() int {
	return max(v.height-ChromeRows, 1)
}

// GutterWidth is the width of the row-number gutter for a sheet with rows
// rows: the widest number plus a space and the gutter rule.
func GutterWidth(rows int) int {
	return len(strconv.Itoa(max(rows, 1))) + 2
}

// RenderedWidth is how many terminal columns column x takes on screen.
func RenderedWidth(s Sheet, x int) int {
	return max(s.ColumnWidth(x), len(grid.ColumnName(x))) + ColumnPadding
}

// Rows returns the first and last grid row on screen. last < first when the
// sheet is empty.
func (v *Viewport) Rows() (first, last int) {
	first = v.offset.Row
	last = min(first+v.WindowRows()-1, v.sheet.NumRows())
	return first, last
}

// Columns returns the first and last grid column on screen. The last one
// may be only partly visible.
func (v *Viewport) Columns() (first, last int) {
	first = v.offset.Col
	last = first - 1
	usable := v.width - GutterWidth(v.sheet.NumRows())
	for x, used := first, 0; x <= v.sheet.NumCols() && used < usable; x++ {
		used += RenderedWidth(v.sheet, x)
		last = x
	}
	return first, last
}

// SetFocus jumps to at, clamped to the sheet, and selects it.
func (v *Viewport) SetFocus(at grid.Coord) {
	v.ray = ray{}
	v.focus = grid.Coord{
		Col: clamp(at.Col, 1, max(v.sheet.NumCols(), 1)),
		Row: clamp(at.Row, 1, max(v.sheet.NumRows(), 1)),
	}
	v.sheet.Highlight(v.focus)
	v.scroll(true)
}

// Move applies a focus command in point mode. Stepping off the top or left
// edge keeps focus on the first row or column and selects the whole column
// or row instead. Stepping one past the last row or column grows the sheet.
func (v *Viewport) Move(m Move) {
	v.ray = ray{}
	col, row := v.focus.Col, v.focus.Row
	rows, cols := v.sheet.NumRows(), v.sheet.NumCols()

	switch m {
	case Up, Down, Left, Right:
		dx, dy := m.delta()
		col, row = col+dx, row+dy
	case PageUp:
		row = max(row-v.WindowRows(), 1)
	case PageDown:
		row = max(min(row+v.WindowRows(), rows), 1)
	case Home:
		col = 1
	case End:
		col = max(cols, 1)
	}

	edgeRow, edgeCol := row < 1, col < 1
	v.focus = grid.Coord{
		Col: clamp(col, 1, cols+1),
		Row: clamp(row, 1, rows+1),
	}
	v.grow()

	v.sheet.Highlight(v.focus)
	switch {
	case edgeRow:
		v.extend(Down, v.sheet.NumRows())
		v.offset.Row = 1
	case edgeCol:
		v.extend(Right, v.sheet.NumCols())
		v.offset.Col = 1
	}
	v.scroll(m == Home || m == End)
}

// Ray extends a linear selection from focus in direction dir. Repeating the
// same direction lengthens it by one cell, recomputing the selection from
// scratch; a new direction restarts it. It reports whether this call started
// a ray.
func (v *Viewport) Ray(dir Move) bool {
	if !dir.arrow() {
		return false
	}
	started := !v.ray.active || v.ray.dir != dir
	if started {
		v.ray = ray{active: true, dir: dir}
	}
	if v.ray.count < v.edgeDistance(dir) {
		v.ray.count++
	}
	v.sheet.Highlight(v.focus)
	v.extendFrom(v.focus, dir, v.ray.count)
	return started
}

// Extending reports whether a ray selection is in progress.
func (v *Viewport) Extending() bool { return v.ray.active }

// EndRay returns to point mode, keeping the current selection. It reports
// whether a ray was in progress.
func (v *Viewport) EndRay() bool {
	was := v.ray.active
	v.ray = ray{}
	return was
}

// Complement selects every cell from focus to the sheet edge in direction
// dir.
func (v *Viewport) Complement(dir Move) {
	if !dir.arrow() {
		return
	}
	v.ray = ray{}
	v.sheet.Highlight(v.focus)
	v.extendFrom(v.focus, dir, v.edgeDistance(dir))
}

// grow appends a row or column when focus sits one past the extent.
func (v *Viewport) grow() {
	if v.focus.Row > v.sheet.NumRows() {
		v.sheet.InsertNewRow(v.focus.Row)
	}
	if v.focus.Col > v.sheet.NumCols() {
		v.sheet.InsertNewCol(v.focus.Col)
	}
}

// extend selects the whole line through focus: column when dir is vertical,
// row when horizontal, counting n cells from the first one.
func (v *Viewport) extend(dir Move, n int) {
	start := v.focus
	if dir == Down {
		start.Row = 1
	} else {
		start.Col = 1
	}
	v.sheet.ExtendHighlight(start)
	v.extendFrom(start, dir, n-1)
}

func (v *Viewport) extendFrom(from grid.Coord, dir Move, n int) {
	dx, dy := dir.delta()
	for i := 1; i <= n; i++ {
		v.sheet.ExtendHighlight(grid.Coord{Col: from.Col + dx*i, Row: from.Row + dy*i})
	}
}

// edgeDistance is how many cells lie between focus and the sheet edge.
func (v *Viewport) edgeDistance(dir Move) int {
	switch dir {
	case Up:
		return v.focus.Row - 1
	case Down:
		return max(v.sheet.NumRows()-v.focus.Row, 0)
	case Left:
		return v.focus.Col - 1
	case Right:
		return max(v.sheet.NumCols()-v.focus.Col, 0)
	}
	return 0
}

// scroll re-contains focus. Vertically it moves the minimal amount.
// Horizontally it steps one column per call unless full is set, in which
// case it steps until focus fits.
func (v *Viewport) scroll(full bool) {
	h := v.WindowRows()
	switch {
	case v.focus.Row < v.offset.Row:
		v.offset.Row = v.focus.Row
	case v.focus.Row >= v.offset.Row+h:
		v.offset.Row = v.focus.Row - h + 1
	}

	if v.focus.Col < v.offset.Col {
		v.offset.Col = v.focus.Col
		return
	}
	if v.width <= 0 {
		return
	}
	usable := v.width - GutterWidth(v.sheet.NumRows())
	for v.offset.Col < v.focus.Col && v.span(v.offset.Col, v.focus.Col) > usable {
		v.offset.Col++
		if !full {
			break
		}
	}
}

// span is the rendered width of columns from..to inclusive.
func (v *Viewport) span(from, to int) int {
	w := 0
	for x := from; x <= to; x++ {
		w += RenderedWidth(v.sheet, x)
	}
	return w
}

func clamp(n, lo, hi int) int {
	return max(lo, min(n, hi))
}
