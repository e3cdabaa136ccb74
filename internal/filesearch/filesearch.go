// Package filesearch finds spreadsheet files under a directory.
package filesearch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/xonecas/sheet/internal/ingest"
)

// Result is one file the editor can open.
type Result struct {
	Path   string // relative to the search root
	Format ingest.Format
}

// Options configures a search.
type Options struct {
	Pattern    string // case-insensitive regexp, or literal text if it does not compile
	MaxResults int    // 0 = unlimited
	RootDir    string // defaults to the working directory
}

// extensions are the file types Search reports.
var extensions = map[string]bool{
	".csv":  true,
	".ods":  true,
	".xlsx": true,
	".xls":  true,
}

// Search walks opts.RootDir for sheet files whose relative path matches
// opts.Pattern. Hidden directories are skipped.
func Search(ctx context.Context, opts Options) ([]Result, error) {
	if opts.RootDir == "" {
		var err error
		opts.RootDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	regex, err := regexp.Compile("(?i)" + opts.Pattern)
	if err != nil {
		regex = regexp.MustCompile("(?i)" + regexp.QuoteMeta(opts.Pattern))
	}

	var results []Result
	err = filepath.WalkDir(opts.RootDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if path != opts.RootDir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !extensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		rel, err := filepath.Rel(opts.RootDir, path)
		if err != nil || !regex.MatchString(filepath.ToSlash(rel)) {
			return nil
		}
		results = append(results, Result{Path: rel, Format: ingest.FormatOf(path)})
		if opts.MaxResults > 0 && len(results) >= opts.MaxResults {
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil && !errors.Is(err, filepath.SkipAll) {
		return nil, err
	}
	return results, nil
}
