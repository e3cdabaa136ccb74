package modal

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

var testColors = Colors{Fg: "#cccccc", Bg: "#000000", Dim: "#666666", SelFg: "#ffffff", SelBg: "#444444", Border: "#555555"}

func files(query string) []Item {
	all := []Item{
		{Name: "/data/budget.csv", Desc: "row 4, col 2"},
		{Name: "/data/inventory.xlsx"},
		{Name: "/data/survey.ods", Value: "survey"},
	}
	var out []Item
	for _, it := range all {
		if strings.Contains(it.Name, query) {
			out = append(out, it)
		}
	}
	return out
}

func key(ch rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: ch, Text: string(ch)}
}

func special(name string) tea.KeyPressMsg {
	switch name {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "backspace":
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	default:
		return tea.KeyPressMsg{}
	}
}

func TestEscapeCloses(t *testing.T) {
	m := New(files, "> ", testColors)
	a, _ := m.HandleMsg(special("esc"))
	if _, ok := a.(ActionClose); !ok {
		t.Fatalf("expected ActionClose, got %T", a)
	}
}

func TestEnterSelectsFirst(t *testing.T) {
	m := New(files, "> ", testColors)
	a, _ := m.HandleMsg(special("enter"))
	sel, ok := a.(ActionSelect)
	if !ok {
		t.Fatalf("expected ActionSelect, got %T", a)
	}
	if sel.Item.Name != "/data/budget.csv" {
		t.Fatalf("expected budget.csv, got %s", sel.Item.Name)
	}
}

func TestDownThenEnterSelectsHighlighted(t *testing.T) {
	m := New(files, "> ", testColors)
	m.HandleMsg(special("down")) // enter list, selected=0
	m.HandleMsg(special("down")) // selected=1
	a, _ := m.HandleMsg(special("enter"))
	sel, ok := a.(ActionSelect)
	if !ok {
		t.Fatalf("expected ActionSelect, got %T", a)
	}
	if sel.Item.Name != "/data/inventory.xlsx" {
		t.Fatalf("expected inventory.xlsx, got %s", sel.Item.Name)
	}
}

func TestUpFromTopReturnsFocusToInput(t *testing.T) {
	m := New(files, "> ", testColors)
	m.HandleMsg(special("down")) // enter list
	if !m.inList {
		t.Fatal("expected inList=true")
	}
	m.HandleMsg(special("up")) // back to input
	if m.inList {
		t.Fatal("expected inList=false")
	}
}

func TestTypingProducesDebounceCmd(t *testing.T) {
	m := New(files, "> ", testColors)
	_, cmd := m.HandleMsg(key('a'))
	if cmd == nil {
		t.Fatal("expected debounce cmd")
	}
	if m.input.Value() != "a" {
		t.Fatalf("expected input 'a', got %q", m.input.Value())
	}
}

func TestDebounceFiresSearch(t *testing.T) {
	called := false
	searchFn := func(q string) []Item {
		if q == "x" {
			called = true
		}
		return nil
	}
	m := New(searchFn, "> ", testColors)
	// Type 'x'.
	m.HandleMsg(key('x'))
	seq := m.seq
	// Fire matching debounce.
	m.HandleMsg(debounceMsg{seq: seq})
	if !called {
		t.Fatal("expected search to be called")
	}
}

func TestStaleDebounceIgnored(t *testing.T) {
	callCount := 0
	searchFn := func(q string) []Item {
		if q != "" {
			callCount++
		}
		return nil
	}
	m := New(searchFn, "> ", testColors)
	m.HandleMsg(key('a'))
	staleSeq := m.seq
	m.HandleMsg(key('b')) // bumps seq
	// A stale debounce is ignored.
	m.HandleMsg(debounceMsg{seq: staleSeq})
	if callCount != 0 {
		t.Fatalf("expected 0 search calls for stale debounce, got %d", callCount)
	}
}

func TestBackspaceRemovesChar(t *testing.T) {
	m := New(files, "> ", testColors)
	m.HandleMsg(key('a'))
	m.HandleMsg(key('b'))
	m.HandleMsg(special("backspace"))
	if m.input.Value() != "a" {
		t.Fatalf("expected 'a', got %q", m.input.Value())
	}
}

func TestViewRenders(t *testing.T) {
	m := New(files, "> ", testColors)
	v := m.View(100, 40)
	if v == "" {
		t.Fatal("expected non-empty view")
	}
}

func TestEmptyResultsEnterNoAction(t *testing.T) {
	m := New(func(string) []Item { return nil }, "> ", testColors)
	a, _ := m.HandleMsg(special("enter"))
	if a != nil {
		t.Fatalf("expected nil action, got %T", a)
	}
}

func TestSelectValueDefaultsToName(t *testing.T) {
	m := New(files, "> ", testColors)
	a, _ := m.HandleMsg(special("enter"))
	if got := a.(ActionSelect).Item.Value; got != "/data/budget.csv" {
		t.Fatalf("expected value to default to name, got %q", got)
	}

	m.HandleMsg(special("down"))
	m.HandleMsg(special("down"))
	m.HandleMsg(special("down"))
	a, _ = m.HandleMsg(special("enter"))
	if got := a.(ActionSelect).Item.Value; got != "survey" {
		t.Fatalf("expected explicit value, got %q", got)
	}
}

func TestDebounceFiltersItems(t *testing.T) {
	m := New(files, "> ", testColors)
	for _, r := range "ods" {
		m.HandleMsg(key(r))
	}
	m.HandleMsg(debounceMsg{seq: m.seq})
	if len(m.Items()) != 1 || m.Items()[0].Name != "/data/survey.ods" {
		t.Fatalf("expected only survey.ods, got %v", m.Items())
	}
}

func TestTextViewScrollClamps(t *testing.T) {
	lines := make([]string, 50)
	for i := range lines {
		lines[i] = strings.Repeat("x", i)
	}
	v := NewTextView("diff", lines, testColors)

	v.HandleMsg(special("up"))
	if v.Scroll() != 0 {
		t.Fatalf("scroll went negative: %d", v.Scroll())
	}
	v.HandleMsg(tea.KeyPressMsg{Code: tea.KeyPgDown})
	if v.Scroll() != pageStep {
		t.Fatalf("pgdown: got %d, want %d", v.Scroll(), pageStep)
	}
	v.HandleMsg(tea.KeyPressMsg{Code: tea.KeyEnd})
	// A 20 row app gives a 16 row box: 12 body rows.
	if out := v.View(60, 20); out == "" {
		t.Fatal("expected non-empty view")
	}
	if v.Scroll() != 50-12 {
		t.Fatalf("end: got %d, want %d", v.Scroll(), 50-12)
	}
}

func TestTextViewCloses(t *testing.T) {
	v := NewTextView("diff", nil, testColors)
	for _, k := range []tea.KeyPressMsg{special("esc"), key('q'), special("enter")} {
		if a, _ := v.HandleMsg(k); a == nil {
			t.Fatalf("%s should close", k.Keystroke())
		}
	}
}
