package document

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/xonecas/sheet/internal/ingest"
)

// Serialize renders rows 1..NumRows with fields 1..NumCols joined by the
// delimiter, one record per line.
func (d *Document) Serialize() []byte {
	recs := make(ingest.Records, 0, d.NumRows())
	for y := 1; y <= d.NumRows(); y++ {
		row := d.grid.Row(y)
		fields := make([]string, len(row))
		for i, c := range row {
			fields[i] = c.Contents
		}
		recs = append(recs, fields)
	}
	return ingest.FormatDelimited(recs)
}

// SavePath is where Save writes: the document path, with a foreign
// spreadsheet extension swapped for .csv.
func (d *Document) SavePath() string {
	if d.path == "" || !ingest.IsForeign(d.path) {
		return d.path
	}
	return strings.TrimSuffix(d.path, filepath.Ext(d.path)) + ".csv"
}

// Save rewrites the file in full. A document read from a foreign format is
// saved next to it as .csv and keeps that path from then on. On failure the
// grid, path and dirty flag are unchanged.
func (d *Document) Save() error {
	if d.path == "" {
		return ErrNoPath
	}
	target := d.SavePath()
	if err := writeFileAtomic(target, d.Serialize()); err != nil {
		log.Warn().Err(err).Str("path", target).Msg("save failed")
		return err
	}
	if target != d.path {
		log.Info().Str("from", d.path).Str("to", target).Msg("saving foreign document as delimited text")
	}
	d.path = target
	d.format = ingest.Delimited
	d.dirty = false
	log.Debug().Str("path", target).Int("rows", d.NumRows()).Msg("document saved")
	return nil
}

// SaveAs names the document and saves it.
func (d *Document) SaveAs(path string) error {
	prev := d.path
	d.path = path
	if err := d.Save(); err != nil {
		d.path = prev
		return err
	}
	return nil
}

// writeFileAtomic stages data in a sibling temp file and renames it over
// path, so a failed write never truncates the existing file.
func writeFileAtomic(path string, data []byte) error {
	mode := fs.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	cleanup := func() { _ = os.Remove(tmp.Name()) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("sync %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), mode); err != nil {
		cleanup()
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		cleanup()
		return fmt.Errorf("rename into %s: %w", path, err)
	}
	return nil
}
