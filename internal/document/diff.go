package document

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// Diff returns a unified diff from the file Save would overwrite to what
// Save would write. It is empty when nothing would change. A target that does
// not exist yet diffs against empty text.
func (d *Document) Diff() (string, error) {
	target := d.SavePath()
	name := target
	if name == "" {
		name = "[No Name]"
	}

	var before string
	if target != "" {
		data, err := os.ReadFile(target)
		switch {
		case err == nil:
			before = string(data)
		case errors.Is(err, fs.ErrNotExist):
		default:
			return "", fmt.Errorf("read %s: %w", target, err)
		}
	}

	after := string(d.Serialize())
	if before == after {
		return "", nil
	}
	edits := myers.ComputeEdits(span.URIFromPath(name), before, after)
	return fmt.Sprint(gotextdiff.ToUnified(name, name+" (unsaved)", before, edits)), nil
}
