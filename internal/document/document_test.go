package document

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/xonecas/sheet/internal/grid"
	"github.com/xonecas/sheet/internal/ingest"
)

func at(col, row int) grid.Coord { return grid.Coord{Col: col, Row: row} }

func openCSV(t *testing.T, body string) *Document {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.csv")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	d, err := Open(path)
	require.NoError(t, err)
	return d
}

func selectRange(d *Document, from, to grid.Coord) {
	d.Highlight(from)
	for y := from.Row; y <= to.Row; y++ {
		for x := from.Col; x <= to.Col; x++ {
			d.ExtendHighlight(at(x, y))
		}
	}
}

func TestOpenIsClean(t *testing.T) {
	d := openCSV(t, "a,b\nc,d\n")
	assert.False(t, d.Dirty())
	assert.Equal(t, 2, d.NumRows())
	assert.Equal(t, 2, d.NumCols())
	assert.Equal(t, ingest.Delimited, d.Format())
	_, pending := d.Pending()
	assert.False(t, pending)
}

func TestInsert(t *testing.T) {
	d := openCSV(t, "a,b\n")
	d.Highlight(at(1, 1))

	d.Insert(at(2, 1), "bee")
	assert.Equal(t, "bee", d.ContentAt(at(2, 1)))
	assert.True(t, d.Dirty())

	sel := d.Selected()
	require.Len(t, sel, 1, "insert does not touch selection")
	assert.Equal(t, at(1, 1), sel[0].Coord())

	d.Insert(at(4, 3), "far")
	assert.Equal(t, 4, d.NumCols())
	assert.Equal(t, 3, d.NumRows())
	assert.Len(t, d.Row(2), 4)
}

func TestGrowth(t *testing.T) {
	d := openCSV(t, "a,b\nc,d\n")

	assert.False(t, d.InsertNewRow(2))
	assert.False(t, d.InsertNewRow(4))
	assert.False(t, d.Dirty())

	require.True(t, d.InsertNewRow(3))
	assert.Equal(t, 3, d.NumRows())
	for _, c := range d.Row(3) {
		assert.True(t, c.Blank())
	}

	assert.False(t, d.InsertNewCol(1))
	require.True(t, d.InsertNewCol(3))
	assert.Equal(t, 3, d.NumCols())
	for y := 1; y <= d.NumRows(); y++ {
		assert.Equal(t, "", d.ContentAt(at(3, y)))
	}
	assert.True(t, d.Dirty())
}

func TestGrowthFromEmpty(t *testing.T) {
	d := New()
	require.True(t, d.InsertNewRow(1))
	assert.Equal(t, 1, d.NumRows())
	assert.Equal(t, 1, d.NumCols())
	require.True(t, d.InsertNewCol(2))
	assert.Equal(t, 2, d.NumCols())
}

func TestHighlight(t *testing.T) {
	d := openCSV(t, "a,b,c\n")
	d.Highlight(at(1, 1))
	d.ExtendHighlight(at(2, 1))
	assert.Len(t, d.Selected(), 2)

	d.Highlight(at(3, 1))
	sel := d.Selected()
	require.Len(t, sel, 1)
	assert.Equal(t, "c", sel[0].Contents)
}

func TestDeleteAndUndo(t *testing.T) {
	d := openCSV(t, "a,b,c\n")
	selectRange(d, at(1, 1), at(2, 1))

	assert.Equal(t, 2, d.Delete())
	assert.Equal(t, "", d.ContentAt(at(1, 1)))
	assert.Equal(t, "", d.ContentAt(at(2, 1)))
	assert.Equal(t, "c", d.ContentAt(at(3, 1)))

	trigger, ok := d.Undo()
	require.True(t, ok)
	assert.Equal(t, TriggerDelete, trigger)
	assert.Equal(t, "a", d.ContentAt(at(1, 1)))
	assert.Equal(t, "b", d.ContentAt(at(2, 1)))

	_, ok = d.Undo()
	assert.False(t, ok, "undo of undo")
}

func TestDeleteNothingSelectedKeepsPending(t *testing.T) {
	d := openCSV(t, "a\n")
	d.Insert(at(1, 1), "x")
	d.ClearHighlight()
	assert.Zero(t, d.Delete())

	trigger, ok := d.Undo()
	require.True(t, ok)
	assert.Equal(t, TriggerInsert, trigger)
	assert.Equal(t, "a", d.ContentAt(at(1, 1)))
}

func TestUndoRevertsOnlyLastMutation(t *testing.T) {
	d := openCSV(t, "a,b\n")
	d.Insert(at(1, 1), "first")
	d.Insert(at(2, 1), "second")

	_, ok := d.Undo()
	require.True(t, ok)
	assert.Equal(t, "first", d.ContentAt(at(1, 1)))
	assert.Equal(t, "b", d.ContentAt(at(2, 1)))
}

func TestUndoInsertOnUnsetCell(t *testing.T) {
	d := openCSV(t, "a,b\nc\n")
	d.Insert(at(2, 2), "new")
	_, ok := d.Undo()
	require.True(t, ok)
	assert.Equal(t, "", d.ContentAt(at(2, 2)))
}

func TestPasteSingleRow(t *testing.T) {
	d := openCSV(t, "x,y,z\n")
	selectRange(d, at(1, 1), at(3, 1))
	clip := d.Copy()
	require.Equal(t, 3, clip.Len())

	require.NoError(t, d.Paste(at(5, 2), clip))
	assert.Equal(t, "x", d.ContentAt(at(5, 2)))
	assert.Equal(t, "y", d.ContentAt(at(6, 2)))
	assert.Equal(t, "z", d.ContentAt(at(7, 2)))
	assert.Equal(t, 7, d.NumCols())
	assert.Equal(t, 2, d.NumRows())
}

func TestPasteSingleColumn(t *testing.T) {
	d := openCSV(t, "1\n2\n3\n")
	selectRange(d, at(1, 1), at(1, 3))
	clip := d.Copy()

	require.NoError(t, d.Paste(at(2, 2), clip))
	assert.Equal(t, "1", d.ContentAt(at(2, 2)))
	assert.Equal(t, "2", d.ContentAt(at(2, 3)))
	assert.Equal(t, "3", d.ContentAt(at(2, 4)))
}

func TestPasteRectangle(t *testing.T) {
	d := openCSV(t, "a,b\nc,d\n")
	selectRange(d, at(1, 1), at(2, 2))
	clip := d.Copy()

	require.NoError(t, d.Paste(at(2, 3), clip))
	assert.Equal(t, "a", d.ContentAt(at(2, 3)))
	assert.Equal(t, "b", d.ContentAt(at(3, 3)))
	assert.Equal(t, "c", d.ContentAt(at(2, 4)))
	assert.Equal(t, "d", d.ContentAt(at(3, 4)))
}

func TestPasteUndo(t *testing.T) {
	d := openCSV(t, "a,b\nc,d\n")
	selectRange(d, at(1, 1), at(2, 1))
	clip := d.Copy()

	require.NoError(t, d.Paste(at(1, 2), clip))
	assert.Equal(t, "a", d.ContentAt(at(1, 2)))

	trigger, ok := d.Undo()
	require.True(t, ok)
	assert.Equal(t, TriggerPaste, trigger)
	assert.Equal(t, "c", d.ContentAt(at(1, 2)))
	assert.Equal(t, "d", d.ContentAt(at(2, 2)))
}

func TestPasteEmptyClipboard(t *testing.T) {
	d := openCSV(t, "a\n")
	assert.ErrorIs(t, d.Paste(at(1, 1), Clipboard{}), ErrNothingToPaste)
	assert.False(t, d.Dirty())
}

func TestCopyIsSnapshot(t *testing.T) {
	d := openCSV(t, "a,b\n")
	selectRange(d, at(1, 1), at(2, 1))
	clip := d.Copy()

	d.Insert(at(1, 1), "changed")
	d.Delete()

	cells := clip.Cells()
	require.Len(t, cells, 2)
	assert.Equal(t, "a", cells[0].Contents)
	assert.Equal(t, "b", cells[1].Contents)

	cells[0].Contents = "tampered"
	assert.Equal(t, "a", clip.Cells()[0].Contents)
}

func TestCutUndoesAsOneStep(t *testing.T) {
	d := openCSV(t, "a,b\n")
	selectRange(d, at(1, 1), at(2, 1))
	clip := d.Cut()
	assert.Equal(t, "a,b", clip.Text())
	assert.Equal(t, "", d.ContentAt(at(1, 1)))

	trigger, ok := d.Undo()
	require.True(t, ok)
	assert.Equal(t, TriggerCut, trigger)
	assert.Equal(t, "a", d.ContentAt(at(1, 1)))
	assert.Equal(t, "b", d.ContentAt(at(2, 1)))
}

func TestClipboardText(t *testing.T) {
	d := openCSV(t, "a,b,c\nd,e,f\n")
	d.Highlight(at(2, 1))
	d.ExtendHighlight(at(3, 1))
	d.ExtendHighlight(at(3, 2))
	assert.Equal(t, "b,c\n,f", d.Copy().Text())
	assert.Equal(t, "", Clipboard{}.Text())
}

func TestSummary(t *testing.T) {
	d := openCSV(t, "1\n2\n3\n4\n5\n")
	selectRange(d, at(1, 1), at(1, 5))

	s, err := d.Summary()
	require.NoError(t, err)
	assert.Equal(t, 5, s.N)
	assert.InDelta(t, 15, s.Sum, 1e-9)
	assert.InDelta(t, 3, s.Mean, 1e-9)
	assert.InDelta(t, math.Sqrt2, s.Std, 1e-9)
}

func TestSummaryStripsSpaceAndSkipsBlanks(t *testing.T) {
	d := openCSV(t, " 1 0 ,,2\t\n")
	selectRange(d, at(1, 1), at(3, 1))

	s, err := d.Summary()
	require.NoError(t, err)
	assert.Equal(t, 2, s.N)
	assert.InDelta(t, 12, s.Sum, 1e-9)
}

func TestSummaryValidationError(t *testing.T) {
	d := openCSV(t, "1,two,3\n")
	selectRange(d, at(1, 1), at(3, 1))

	_, err := d.Summary()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, at(2, 1), grid.Coord{Col: ve.Col, Row: ve.Row})
	assert.Contains(t, err.Error(), "B1")
	assert.Len(t, d.Selected(), 3, "selection unchanged")
}

func TestSummaryNoNumbers(t *testing.T) {
	d := openCSV(t, ",\n")
	selectRange(d, at(1, 1), at(2, 1))
	s, err := d.Summary()
	require.NoError(t, err)
	assert.Equal(t, Stats{}, s)
}

func TestSerializeRectangular(t *testing.T) {
	d := openCSV(t, "a,b,c\nd\n")
	assert.Equal(t, "a,b,c\nd,,\n", string(d.Serialize()))
}

func TestSaveClearsDirty(t *testing.T) {
	d := openCSV(t, "a,b\n")
	d.Insert(at(1, 1), "z")
	require.NoError(t, d.Save())
	assert.False(t, d.Dirty())

	data, err := os.ReadFile(d.Path())
	require.NoError(t, err)
	assert.Equal(t, "z,b\n", string(data))
}

func TestSaveUnnamed(t *testing.T) {
	d := New()
	d.Insert(at(1, 1), "x")
	assert.ErrorIs(t, d.Save(), ErrNoPath)
	assert.True(t, d.Dirty())

	path := filepath.Join(t.TempDir(), "new.csv")
	require.NoError(t, d.SaveAs(path))
	assert.Equal(t, path, d.Path())
	assert.False(t, d.Dirty())
}

func TestSaveFailureKeepsState(t *testing.T) {
	d := New()
	d.Insert(at(1, 1), "x")
	bad := filepath.Join(t.TempDir(), "missing", "dir", "out.csv")

	require.Error(t, d.SaveAs(bad))
	assert.True(t, d.Dirty())
	assert.Equal(t, "", d.Path())
	assert.Equal(t, "x", d.ContentAt(at(1, 1)))
}

func TestSaveForeignRemapsPath(t *testing.T) {
	dir := t.TempDir()
	d := New()
	d.path = filepath.Join(dir, "book.xlsx")
	d.format = ingest.XLSX
	d.Insert(at(1, 1), "v")

	require.NoError(t, d.Save())
	want := filepath.Join(dir, "book.csv")
	assert.Equal(t, want, d.Path())
	assert.Equal(t, ingest.Delimited, d.Format())
	_, err := os.Stat(want)
	require.NoError(t, err)

	d.Insert(at(1, 1), "w")
	require.NoError(t, d.Save())
	assert.Equal(t, want, d.Path(), "later saves keep the remapped path")
}

func TestDiff(t *testing.T) {
	d := openCSV(t, "a,b\n")
	out, err := d.Diff()
	require.NoError(t, err)
	assert.Empty(t, out)

	d.Insert(at(2, 1), "c")
	out, err = d.Diff()
	require.NoError(t, err)
	assert.Contains(t, out, "-a,b")
	assert.Contains(t, out, "+a,c")
}

func TestDiffUnnamed(t *testing.T) {
	d := New()
	d.Insert(at(1, 1), "x")
	out, err := d.Diff()
	require.NoError(t, err)
	assert.Contains(t, out, "+x")
}

func TestSaveOpenRoundTrip(t *testing.T) {
	dir := t.TempDir()
	rapid.Check(t, func(t *rapid.T) {
		rows := rapid.IntRange(1, 6).Draw(t, "rows")
		cols := rapid.IntRange(1, 6).Draw(t, "cols")
		records := make([][]string, rows)
		for y := range records {
			records[y] = rapid.SliceOfN(rapid.StringMatching(`[a-zA-Z0-9 .]{0,8}`), cols, cols).Draw(t, "row")
		}
		// Guarantee the last column is present so the extent is rows x cols.
		records[0][cols-1] = "end"

		d := New()
		for y, rec := range records {
			for x, field := range rec {
				d.Insert(at(x+1, y+1), field)
			}
		}
		path := filepath.Join(dir, "prop.csv")
		if err := d.SaveAs(path); err != nil {
			t.Fatalf("save: %v", err)
		}

		back, err := Open(path)
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		if back.NumRows() != rows || back.NumCols() != cols {
			t.Fatalf("extent %dx%d, want %dx%d", back.NumRows(), back.NumCols(), rows, cols)
		}
		for y, rec := range records {
			for x, field := range rec {
				if got := back.ContentAt(at(x+1, y+1)); got != field {
					t.Fatalf("(%d,%d) = %q, want %q", x+1, y+1, got, field)
				}
			}
		}
		if strings.Count(string(back.Serialize()), "\n") != rows {
			t.Fatalf("serialized record count")
		}
	})
}
