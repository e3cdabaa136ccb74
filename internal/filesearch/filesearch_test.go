package filesearch

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/xonecas/sheet/internal/ingest"
)

func makeTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range []string{
		"budget.csv",
		"reports/q1.xlsx",
		"reports/old/q0.XLS",
		"survey.ods",
		"notes.txt",
		".git/config.csv",
		".cache/tmp.csv",
	} {
		path := filepath.Join(root, f)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func paths(results []Result) []string {
	var out []string
	for _, r := range results {
		out = append(out, filepath.ToSlash(r.Path))
	}
	sort.Strings(out)
	return out
}

func TestSearchAllSheets(t *testing.T) {
	root := makeTree(t)
	results, err := Search(context.Background(), Options{RootDir: root})
	if err != nil {
		t.Fatal(err)
	}
	got := paths(results)
	want := []string{"budget.csv", "reports/old/q0.XLS", "reports/q1.xlsx", "survey.ods"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("result %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSearchPattern(t *testing.T) {
	root := makeTree(t)
	results, err := Search(context.Background(), Options{RootDir: root, Pattern: "REPORTS/q1"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || filepath.Base(results[0].Path) != "q1.xlsx" {
		t.Fatalf("got %v", paths(results))
	}
	if results[0].Format != ingest.XLSX {
		t.Errorf("format = %v, want xlsx", results[0].Format)
	}
}

func TestSearchInvalidRegexIsLiteral(t *testing.T) {
	root := makeTree(t)
	if err := os.WriteFile(filepath.Join(root, "a(b.csv"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	results, err := Search(context.Background(), Options{RootDir: root, Pattern: "a(b"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Path != "a(b.csv" {
		t.Fatalf("got %v", paths(results))
	}
}

func TestSearchMaxResults(t *testing.T) {
	root := makeTree(t)
	results, err := Search(context.Background(), Options{RootDir: root, MaxResults: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
}

func TestSearchCancelled(t *testing.T) {
	root := makeTree(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Search(ctx, Options{RootDir: root}); err == nil {
		t.Fatal("expected an error from a cancelled context")
	}
}
