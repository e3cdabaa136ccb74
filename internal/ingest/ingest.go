// Package ingest turns files on disk into ordered records of field text.
//
// Every adapter produces the same shape: one []string per record, empty text
// for empty cells. Grid construction consumes nothing else, so formats can be
// added without touching the editing core.
package ingest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Records is the normalized output of every adapter.
type Records [][]string

// Format identifies the on-disk encoding of a document.
type Format int

const (
	Delimited Format = iota
	ODS
	XLSX
	XLS
)

func (f Format) String() string {
	switch f {
	case ODS:
		return "ods"
	case XLSX:
		return "xlsx"
	case XLS:
		return "xls"
	default:
		return "csv"
	}
}

var (
	// ErrNoSheets is returned for a workbook without any worksheet.
	ErrNoSheets = errors.New("workbook contains no sheets")
	// ErrMissingContent is returned for an .ods archive without content.xml.
	ErrMissingContent = errors.New("no content.xml in archive")
	// ErrTooLarge is returned for a sheet beyond the supported extent.
	ErrTooLarge = errors.New("sheet too large")
)

// Error reports a failed ingestion.
type Error struct {
	Path   string
	Format Format
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("read %s (%s): %v", e.Path, e.Format, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// FormatOf picks a format from the path's extension. Anything unknown is
// treated as delimited text.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ods":
		return ODS
	case ".xlsx":
		return XLSX
	case ".xls":
		return XLS
	default:
		return Delimited
	}
}

// IsForeign reports whether path is one of the spreadsheet formats that are
// never written back.
func IsForeign(path string) bool {
	return FormatOf(path) != Delimited
}

// Read decodes the file at path with the adapter its extension selects.
func Read(path string) (Records, Format, error) {
	format := FormatOf(path)

	var (
		recs Records
		err  error
	)
	switch format {
	case ODS:
		recs, err = readODS(path)
	case XLSX:
		recs, err = readXLSX(path)
	case XLS:
		recs, err = readXLS(path)
	default:
		var data []byte
		data, err = os.ReadFile(path)
		if err == nil {
			recs = ParseDelimited(data)
		}
	}
	if err != nil {
		return nil, format, &Error{Path: path, Format: format, Err: err}
	}
	return recs, format, nil
}
