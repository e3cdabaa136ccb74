package ingest

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"
)

// Sheet bounds. Spreadsheet apps pad sheets with huge repeated blank runs;
// those are only expanded once a non-blank cell or row follows them, and a
// sheet that still exceeds these limits is refused rather than clipped.
const (
	maxCols  = 1 << 14
	maxRows  = 1 << 20
	maxCells = 1 << 24
)

func readODS(path string) (Records, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = zr.Close() }()

	f, err := zr.Open("content.xml")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrMissingContent
		}
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return parseODSContent(f)
}

type odsCell struct {
	text   string
	repeat int
}

// parseODSContent walks the first table of an OpenDocument content.xml.
// Trailing blank cells and rows are dropped; they are only counted until a
// non-blank one follows.
func parseODSContent(r io.Reader) (Records, error) {
	dec := xml.NewDecoder(r)

	var (
		recs      Records
		row       []odsCell
		rowRepeat int
		cell      strings.Builder
		cellRep   int
		blankRows int
		cells     int

		inTable bool
		inCell  bool
		pDepth  int
		skip    int // depth inside an annotation
	)

	flushRow := func() error {
		for len(row) > 0 && row[len(row)-1].text == "" {
			row = row[:len(row)-1]
		}
		if len(row) == 0 {
			blankRows += rowRepeat
			return nil
		}
		if len(recs)+blankRows+rowRepeat > maxRows {
			return fmt.Errorf("%w: more than %d rows", ErrTooLarge, maxRows)
		}
		for range blankRows {
			recs = append(recs, []string{""})
		}
		blankRows = 0

		var fields []string
		for _, c := range row {
			if len(fields)+c.repeat > maxCols {
				return fmt.Errorf("%w: more than %d columns", ErrTooLarge, maxCols)
			}
			for range c.repeat {
				fields = append(fields, c.text)
			}
		}
		cells += len(fields) * rowRepeat
		if cells > maxCells {
			return fmt.Errorf("%w: more than %d cells", ErrTooLarge, maxCells)
		}
		for range rowRepeat {
			recs = append(recs, append([]string(nil), fields...))
		}
		return nil
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse content.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if skip > 0 {
				skip++
				continue
			}
			switch t.Name.Local {
			case "table":
				inTable = true
			case "table-row":
				if !inTable {
					continue
				}
				row = row[:0]
				rowRepeat = repeatAttr(t, "number-rows-repeated")
			case "table-cell", "covered-table-cell":
				if !inTable {
					continue
				}
				inCell = true
				cell.Reset()
				cellRep = repeatAttr(t, "number-columns-repeated")
			case "annotation":
				skip = 1
			case "p":
				if inCell {
					pDepth++
				}
			case "s":
				if pDepth > 0 {
					cell.WriteString(strings.Repeat(" ", repeatAttr(t, "c")))
				}
			case "tab":
				if pDepth > 0 {
					cell.WriteByte('\t')
				}
			}
		case xml.EndElement:
			if skip > 0 {
				skip--
				continue
			}
			switch t.Name.Local {
			case "table":
				if inTable {
					return recs, nil
				}
			case "table-row":
				if inTable {
					if err := flushRow(); err != nil {
						return nil, err
					}
				}
			case "table-cell", "covered-table-cell":
				if inCell {
					row = append(row, odsCell{text: cell.String(), repeat: cellRep})
					inCell = false
				}
			case "p":
				if pDepth > 0 {
					pDepth--
				}
			}
		case xml.CharData:
			if skip == 0 && pDepth > 0 {
				cell.Write(t)
			}
		}
	}
	return recs, nil
}

func repeatAttr(el xml.StartElement, local string) int {
	for _, a := range el.Attr {
		if a.Name.Local != local {
			continue
		}
		n, err := strconv.Atoi(a.Value)
		if err != nil || n < 1 {
			return 1
		}
		return n
	}
	return 1
}
