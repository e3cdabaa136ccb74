package ingest

import (
	"fmt"
	"strconv"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// readXLSX returns the stored values of the first worksheet. Number formats
// are not applied: they round, and thousands separators would split fields
// on save.
func readXLSX(path string) (Records, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}
	sheet := sheets[0]
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheet, err)
	}

	// Raw booleans are stored as 0 and 1.
	for y, row := range rows {
		for x, v := range row {
			if v != "0" && v != "1" {
				continue
			}
			name, err := excelize.CoordinatesToCellName(x+1, y+1)
			if err != nil {
				continue
			}
			if typ, err := f.GetCellType(sheet, name); err == nil && typ == excelize.CellTypeBool {
				row[x] = strconv.FormatBool(v == "1")
			}
		}
	}
	return Records(rows), nil
}

// xlsMaxCols is the BIFF8 column limit.
const xlsMaxCols = 256

// readXLS reads the first worksheet of a BIFF workbook. The decoder panics on
// some malformed files, so that is reported as an ordinary error.
func readXLS(path string) (recs Records, err error) {
	defer func() {
		if r := recover(); r != nil {
			recs, err = nil, fmt.Errorf("decode workbook: %v", r)
		}
	}()

	wb, err := xls.Open(path, "utf-8")
	if err != nil {
		return nil, err
	}
	if wb == nil || wb.NumSheets() == 0 {
		return nil, ErrNoSheets
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, ErrNoSheets
	}

	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := xlsRow(sheet, i)
		if row == nil {
			recs = append(recs, []string{""})
			continue
		}
		// Rows without a ROW record report no extent; read them to the
		// format's column limit and drop the blank tail.
		n, probed := row.LastCol(), false
		if n == 0 {
			n, probed = xlsMaxCols, true
		}
		fields := make([]string, 0, n)
		for c := 0; c < n; c++ {
			fields = append(fields, row.Col(c))
		}
		for probed && len(fields) > 1 && fields[len(fields)-1] == "" {
			fields = fields[:len(fields)-1]
		}
		recs = append(recs, fields)
	}
	for len(recs) > 0 && blankRecord(recs[len(recs)-1]) {
		recs = recs[:len(recs)-1]
	}
	return recs, nil
}

// xlsRow returns row i, or nil when the sheet has no cells in it. The
// decoder dereferences missing rows, so that panic is the miss signal.
func xlsRow(sheet *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return sheet.Row(i)
}

func blankRecord(rec []string) bool {
	for _, f := range rec {
		if f != "" {
			return false
		}
	}
	return true
}
