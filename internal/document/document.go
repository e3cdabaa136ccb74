// Package document is the editing engine for one grid: content edits,
// growth, selection flags, clipboard, single-level undo, save and summary
// statistics.
package document

import (
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/xonecas/sheet/internal/grid"
	"github.com/xonecas/sheet/internal/ingest"
)

var (
	// ErrNoPath is returned by Save when the document was never named.
	ErrNoPath = errors.New("document has no file name")
	// ErrNothingToPaste is returned by Paste for an empty clipboard.
	ErrNothingToPaste = errors.New("nothing to paste")
)

// Document owns one grid and the state needed to edit and persist it.
type Document struct {
	grid    *grid.Grid
	path    string
	format  ingest.Format
	dirty   bool
	pending *PendingUndo
}

// New returns an empty, unnamed document.
func New() *Document {
	return &Document{grid: grid.New()}
}

// NewFile returns an empty document that will be saved to path.
func NewFile(path string) *Document {
	return &Document{grid: grid.New(), path: path, format: ingest.FormatOf(path)}
}

// FromRecords returns an unnamed, clean document holding recs.
func FromRecords(recs ingest.Records) *Document {
	return &Document{grid: grid.FromRecords(recs)}
}

// Open reads path with the adapter its extension selects.
func Open(path string) (*Document, error) {
	recs, format, err := ingest.Read(path)
	if err != nil {
		return nil, err
	}
	d := &Document{
		grid:   grid.FromRecords(recs),
		path:   path,
		format: format,
	}
	log.Debug().
		Str("path", path).
		Str("format", format.String()).
		Int("rows", d.NumRows()).
		Int("cols", d.NumCols()).
		Msg("document opened")
	return d, nil
}

// Path is the file the document saves to, "" when unnamed.
func (d *Document) Path() string { return d.path }

// Format is the encoding the document was read from.
func (d *Document) Format() ingest.Format { return d.format }

// Dirty reports unsaved changes.
func (d *Document) Dirty() bool { return d.dirty }

// Empty reports a document with no cells at all.
func (d *Document) Empty() bool { return d.grid.Len() == 0 }

func (d *Document) NumRows() int { return d.grid.NumRows() }

func (d *Document) NumCols() int { return d.grid.NumCols() }

func (d *Document) ColumnWidth(x int) int { return d.grid.ColumnWidth(x) }

// Row returns exactly NumCols cells for row y.
func (d *Document) Row(y int) []grid.Cell { return d.grid.Row(y) }

// ContentAt returns the text at, "" for unset coordinates.
func (d *Document) ContentAt(at grid.Coord) string {
	return d.grid.ContentAt(at.Col, at.Row)
}

// Selected returns copies of the selected cells in row-major order.
func (d *Document) Selected() []grid.Cell { return d.grid.Selected() }

// Pending returns the undo record that Undo would apply, if any.
func (d *Document) Pending() (PendingUndo, bool) {
	if d.pending == nil {
		return PendingUndo{}, false
	}
	return *d.pending, true
}
