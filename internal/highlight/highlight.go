// Package highlight derives the editor's colors from a Chroma theme and
// colorizes diff previews.
package highlight

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Diff returns an ANSI-colored unified diff using the given Chroma theme.
// bgHex ("#rrggbb") is re-applied after every reset so the modal background
// survives. Unknown themes fall back to Chroma's default style.
func Diff(text, theme, bgHex string) string {
	lex := lexers.Get("diff")
	if lex == nil {
		return text
	}
	lex = chroma.Coalesce(lex)
	fmtr := formatters.Get("terminal16m")
	if fmtr == nil {
		fmtr = formatters.Fallback
	}
	it, err := lex.Tokenise(nil, text)
	if err != nil {
		return text
	}
	var buf strings.Builder
	if err := fmtr.Format(&buf, styles.Get(theme), it); err != nil {
		return text
	}
	raw := strings.TrimRight(buf.String(), "\n")

	bgSeq := bgEscape(bgHex)
	return bgSeq + strings.ReplaceAll(raw, "\x1b[0m", "\x1b[0m"+bgSeq)
}

// SplitLines splits a colored block into lines that each carry the SGR
// state active at their start, so any one of them renders on its own.
func SplitLines(block string) []string {
	lines := strings.Split(block, "\n")
	var active []string
	for i, line := range lines {
		if i > 0 && len(active) > 0 {
			lines[i] = strings.Join(active, "") + line
		}
		active = trackSGR(line, active)
	}
	return lines
}

// trackSGR folds the SGR sequences of line into active. A reset empties it.
func trackSGR(line string, active []string) []string {
	for j := 0; j < len(line); j++ {
		if line[j] != '\x1b' || j+1 >= len(line) || line[j+1] != '[' {
			continue
		}
		k := j + 2
		for k < len(line) && line[k] != 'm' && line[k] != '\x1b' {
			k++
		}
		if k >= len(line) || line[k] != 'm' {
			continue
		}
		if p := line[j+2 : k]; p == "" || p == "0" {
			active = active[:0]
		} else {
			active = append(active, line[j:k+1])
		}
		j = k
	}
	return active
}

// Palette holds the grid colors derived from a Chroma theme. Grays are
// interpolated from bg to fg; Accent is the most saturated token color.
type Palette struct {
	Bg       string // sheet background
	Fg       string // cell text
	Rule     string // 15% bg→fg: separators and the header rule
	Gutter   string // 40% bg→fg: row numbers and column letters
	Status   string // 10% bg→fg: status bar background
	Selected string // 30% bg→accent: selected cells
	Accent   string // focus marker and prompts
	Error    string // from the Error token, 45% toward it from bg
}

// ThemePalette derives a Palette from a Chroma theme name. Same theme, same
// result; unknown themes get a neutral dark palette.
func ThemePalette(theme string) Palette {
	sty := styles.Get(theme)
	if sty == nil || theme == "" {
		return defaultPalette()
	}
	entry := sty.Get(chroma.Background)
	bg, fg := "#000000", "#c8c8c8"
	if entry.Background.IsSet() {
		bg = entry.Background.String()
	}
	if entry.Colour.IsSet() {
		fg = entry.Colour.String()
	}

	accent := mostSaturated(sty, fg)
	errColor := lerpHex(bg, fg, 0.45)
	if e := sty.Get(chroma.Error); e.Colour.IsSet() {
		errColor = lerpHex(bg, e.Colour.String(), 0.45)
	}
	return Palette{
		Bg:       bg,
		Fg:       fg,
		Rule:     lerpHex(bg, fg, 0.15),
		Gutter:   lerpHex(bg, fg, 0.40),
		Status:   lerpHex(bg, fg, 0.10),
		Selected: lerpHex(bg, accent, 0.30),
		Accent:   accent,
		Error:    errColor,
	}
}

func defaultPalette() Palette {
	return Palette{
		Bg: "#000000", Fg: "#c8c8c8",
		Rule: "#1e1e1e", Gutter: "#505050", Status: "#141414",
		Selected: "#00434d", Accent: "#00dfff", Error: "#932e2e",
	}
}

// mostSaturated returns the most saturated foreground across all tokens.
func mostSaturated(sty *chroma.Style, fallback string) string {
	best, bestSat := fallback, 0.0
	for tt := chroma.TokenType(0); tt < 2000; tt++ {
		e := sty.Get(tt)
		if !e.Colour.IsSet() {
			continue
		}
		hex := e.Colour.String()
		r, g, b := rgb(hex)
		hi, lo := max(r, g, b), min(r, g, b)
		if hi == 0 {
			continue
		}
		if sat := (hi - lo) / hi; sat > bestSat {
			best, bestSat = hex, sat
		}
	}
	return best
}

// lerpHex linearly interpolates between two hex colors at fraction t.
func lerpHex(a, b string, t float64) string {
	ar, ag, ab := rgb(a)
	br, bg, bb := rgb(b)
	return fmt.Sprintf("#%02x%02x%02x",
		toByte(ar+(br-ar)*t),
		toByte(ag+(bg-ag)*t),
		toByte(ab+(bb-ab)*t),
	)
}

// bgEscape converts "#rrggbb" to a 24-bit background SGR sequence.
func bgEscape(hex string) string {
	if len(hex) != 7 || hex[0] != '#' {
		return ""
	}
	r, g, b := rgb(hex)
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm", int(r), int(g), int(b))
}

func rgb(hex string) (r, g, b float64) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0
	}
	return float64(hexByte(hex[1:3])), float64(hexByte(hex[3:5])), float64(hexByte(hex[5:7]))
}

func hexByte(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n <<= 4
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			n |= int(c - '0')
		case c >= 'a' && c <= 'f':
			n |= int(c-'a') + 10
		case c >= 'A' && c <= 'F':
			n |= int(c-'A') + 10
		}
	}
	return n
}

func toByte(v float64) int {
	return int(max(0, min(255, v)) + 0.5)
}
