// Package layout measures and shapes text in terminal display columns.
// Widths are counted in cells: most runes occupy one column, CJK and other
// wide glyphs occupy two, control and zero-width runes occupy none. Styling
// escape sequences are stripped before measurement and never survive shaping.
package layout

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// Marker is appended when a string is cut to fit a column budget.
const Marker = ".."

const markerWidth = 2

// RuneWidth returns the column width of a single rune: 0, 1 or 2.
func RuneWidth(ch rune) int {
	return runewidth.RuneWidth(ch)
}

// DisplayWidth returns the total column width of s. Escape sequences
// contribute nothing.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(stripEscapes(s))
}

// Truncate returns a prefix of s whose display width is at most maxCols.
// When s does not fit, two columns are reserved for the marker and a wide
// rune is never split across the budget.
func Truncate(s string, maxCols int) string {
	if maxCols <= 0 {
		return ""
	}
	s = stripEscapes(s)
	if runewidth.StringWidth(s) <= maxCols {
		return s
	}
	if maxCols <= markerWidth {
		return Marker[:maxCols]
	}

	budget := maxCols - markerWidth
	prefix := make([]rune, 0, len(s))
	curWidth := 0
	for _, ch := range s {
		chWidth := runewidth.RuneWidth(ch)
		if curWidth+chWidth > budget {
			break
		}
		prefix = append(prefix, ch)
		curWidth += chWidth
	}
	// Grapheme clusters can measure wider than the sum of their runes.
	for len(prefix) > 0 && runewidth.StringWidth(string(prefix)) > budget {
		prefix = prefix[:len(prefix)-1]
	}
	return string(prefix) + Marker
}

// Pad right-pads s with spaces so the result is exactly
// max(targetCols, DisplayWidth(s)) columns wide.
func Pad(s string, targetCols int) string {
	width := DisplayWidth(s)
	if width >= targetCols {
		return s
	}
	return s + strings.Repeat(" ", targetCols-width)
}

// Span is a run of text rendered with a single style.
type Span struct {
	Text        string
	Highlighted bool
}

// Highlight shapes s to maxCols like Truncate and splits the result into
// spans: runes whose index appears in positions are highlighted, everything
// else (the truncation marker included) is not. Positions index runes of s.
func Highlight(s string, maxCols int, positions []int) []Span {
	shaped := Truncate(s, maxCols)
	if len(positions) == 0 {
		return []Span{{Text: shaped}}
	}

	body, markerText := shaped, ""
	if shaped != stripEscapes(s) {
		if maxCols <= markerWidth {
			body, markerText = "", shaped
		} else {
			body, markerText = strings.TrimSuffix(shaped, Marker), Marker
		}
	}

	pos := make(map[int]bool, len(positions))
	for _, p := range positions {
		pos[p] = true
	}

	var spans []Span
	var buf strings.Builder
	cur := false
	flush := func() {
		if buf.Len() > 0 {
			spans = append(spans, Span{Text: buf.String(), Highlighted: cur})
			buf.Reset()
		}
	}
	for i, ch := range []rune(body) {
		if pos[i] != cur {
			flush()
			cur = pos[i]
		}
		buf.WriteRune(ch)
	}
	flush()

	if markerText != "" {
		if n := len(spans); n > 0 && !spans[n-1].Highlighted {
			spans[n-1].Text += markerText
		} else {
			spans = append(spans, Span{Text: markerText})
		}
	}
	if len(spans) == 0 {
		spans = []Span{{Text: ""}}
	}
	return spans
}

func stripEscapes(s string) string {
	if strings.IndexByte(s, 0x1b) < 0 {
		return s
	}
	return ansi.Strip(s)
}
