package document

import "github.com/xonecas/sheet/internal/grid"

// Trigger names the command that produced a PendingUndo.
type Trigger int

const (
	TriggerNone Trigger = iota
	TriggerInsert
	TriggerDelete
	TriggerCut
	TriggerPaste
)

func (t Trigger) String() string {
	switch t {
	case TriggerInsert:
		return "insert"
	case TriggerDelete:
		return "delete"
	case TriggerCut:
		return "cut"
	case TriggerPaste:
		return "paste"
	default:
		return "none"
	}
}

// PendingUndo holds the prior content of every cell the last mutating
// command touched. Cells keep the coordinates they were recorded at.
type PendingUndo struct {
	Trigger Trigger
	Cells   []grid.Cell
}

// Insert writes text at at, creating the cell if needed. Selection is left
// alone.
func (d *Document) Insert(at grid.Coord, text string) {
	if at.Col < 1 || at.Row < 1 {
		return
	}
	d.pending = &PendingUndo{
		Trigger: TriggerInsert,
		Cells:   []grid.Cell{d.prior(at)},
	}
	d.grid.Set(at.Col, at.Row, text)
	d.dirty = true
}

// InsertNewRow appends a blank row. It only succeeds when at is exactly one
// past the last row.
func (d *Document) InsertNewRow(at int) bool {
	if at != d.grid.NumRows()+1 {
		return false
	}
	for x := 1; x <= max(d.grid.NumCols(), 1); x++ {
		d.grid.Add(grid.NewCell(x, at, ""))
	}
	d.dirty = true
	return true
}

// InsertNewCol appends a blank column. It only succeeds when at is exactly
// one past the last column.
func (d *Document) InsertNewCol(at int) bool {
	if at != d.grid.NumCols()+1 {
		return false
	}
	for y := 1; y <= max(d.grid.NumRows(), 1); y++ {
		d.grid.Add(grid.NewCell(at, y, ""))
	}
	d.dirty = true
	return true
}

// Highlight makes at the only selected cell.
func (d *Document) Highlight(at grid.Coord) {
	d.grid.ClearSelection()
	d.grid.Select(at.Col, at.Row)
}

// ExtendHighlight adds at to the current selection.
func (d *Document) ExtendHighlight(at grid.Coord) {
	d.grid.Select(at.Col, at.Row)
}

// ClearHighlight unselects everything.
func (d *Document) ClearHighlight() {
	d.grid.ClearSelection()
}

// Copy snapshots the selection.
func (d *Document) Copy() Clipboard {
	return Clipboard{cells: d.grid.Selected()}
}

// Delete blanks every selected cell. It returns the number of cells cleared;
// with nothing selected it is a no-op and the pending undo survives.
func (d *Document) Delete() int {
	return d.clearSelected(TriggerDelete)
}

// Cut copies the selection then blanks it, undoable as one step.
func (d *Document) Cut() Clipboard {
	clip := d.Copy()
	d.clearSelected(TriggerCut)
	return clip
}

func (d *Document) clearSelected(trigger Trigger) int {
	sel := d.grid.Selected()
	if len(sel) == 0 {
		return 0
	}
	undo := &PendingUndo{Trigger: trigger, Cells: make([]grid.Cell, 0, len(sel))}
	for _, c := range sel {
		undo.Cells = append(undo.Cells, grid.NewCell(c.Col, c.Row, c.Contents))
		d.grid.Set(c.Col, c.Row, "")
	}
	d.pending = undo
	d.dirty = true
	return len(sel)
}

// Paste writes clip with its top-left source cell landing on anchor. Every
// other cell keeps its offset from that corner, so single rows, single
// columns and rectangles all land in their original shape. Destinations past
// the extent extend it.
func (d *Document) Paste(anchor grid.Coord, clip Clipboard) error {
	if clip.Empty() {
		return ErrNothingToPaste
	}
	anchor.Col = max(anchor.Col, 1)
	anchor.Row = max(anchor.Row, 1)

	origin := clip.origin()
	undo := &PendingUndo{Trigger: TriggerPaste, Cells: make([]grid.Cell, 0, clip.Len())}
	for _, c := range clip.cells {
		dest := grid.Coord{
			Col: anchor.Col + c.Col - origin.Col,
			Row: anchor.Row + c.Row - origin.Row,
		}
		undo.Cells = append(undo.Cells, d.prior(dest))
		d.grid.Set(dest.Col, dest.Row, c.Contents)
	}
	d.pending = undo
	d.dirty = true
	return nil
}

// Undo restores the cells recorded by the last mutating command. It reports
// which command was undone, or false when there was nothing to undo. Undo
// itself is not undoable.
func (d *Document) Undo() (Trigger, bool) {
	if d.pending == nil {
		return TriggerNone, false
	}
	p := d.pending
	d.pending = nil
	for _, c := range p.Cells {
		d.grid.Set(c.Col, c.Row, c.Contents)
	}
	d.dirty = true
	return p.Trigger, true
}

func (d *Document) prior(at grid.Coord) grid.Cell {
	return grid.NewCell(at.Col, at.Row, d.grid.ContentAt(at.Col, at.Row))
}
