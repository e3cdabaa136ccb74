package document

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/xonecas/sheet/internal/grid"
)

// Stats summarizes the numeric cells of a selection. Std is the population
// standard deviation. With N == 0 every field is zero.
type Stats struct {
	N    int
	Sum  float64
	Mean float64
	Std  float64
}

// ValidationError reports a selected cell that is not a number.
type ValidationError struct {
	Col  int
	Row  int
	Text string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("cell %s is not a number: %q",
		grid.CellName(grid.Coord{Col: e.Col, Row: e.Row}), e.Text)
}

// Summary computes Stats over the selected cells. All whitespace is removed
// before parsing, blank cells are skipped, and the first unparseable cell
// aborts with a *ValidationError.
func (d *Document) Summary() (Stats, error) {
	var values []float64
	for _, c := range d.grid.Selected() {
		text := stripSpace(c.Contents)
		if text == "" {
			continue
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Stats{}, &ValidationError{Col: c.Col, Row: c.Row, Text: c.Contents}
		}
		values = append(values, v)
	}
	return summarize(values), nil
}

func summarize(values []float64) Stats {
	if len(values) == 0 {
		return Stats{}
	}
	s := Stats{N: len(values)}
	for _, v := range values {
		s.Sum += v
	}
	s.Mean = s.Sum / float64(s.N)
	var sq float64
	for _, v := range values {
		sq += (v - s.Mean) * (v - s.Mean)
	}
	s.Std = math.Sqrt(sq / float64(s.N))
	return s
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
