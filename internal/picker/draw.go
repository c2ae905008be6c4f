package picker

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/sokojh/claude-code-tmux-hud/internal/layout"
)

var (
	styleDefault   = tcell.StyleDefault
	stylePrompt    = tcell.StyleDefault.Bold(true)
	styleDim       = tcell.StyleDefault.Dim(true)
	styleSelected  = tcell.StyleDefault.Reverse(true)
	styleMatch     = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleMatchCur  = tcell.StyleDefault.Reverse(true).Foreground(tcell.ColorYellow).Bold(true)
	styleCursorBar = tcell.StyleDefault.Bold(true).Foreground(tcell.ColorAqua)
)

func draw(screen tcell.Screen, st *state) {
	screen.Clear()
	w := st.width
	if w <= 0 {
		screen.Show()
		return
	}

	writeText(screen, 0, 0, layout.Pad(layout.Truncate("> "+string(st.query), w), w), stylePrompt)

	count := fmt.Sprintf("  %d/%d", len(st.filtered), len(st.entries))
	writeText(screen, 0, 1, layout.Truncate(count, w), styleDim)

	if len(st.filtered) == 0 {
		hint := "  No sessions found."
		if len(st.entries) > 0 {
			hint = "  No matches."
		}
		if st.height > chromeRows {
			writeText(screen, 0, chromeRows, layout.Truncate(hint, w), styleDim)
		}
		screen.Show()
		return
	}

	viewH := st.listHeight()
	for i := 0; i < viewH; i++ {
		idx := st.scroll + i
		if idx >= len(st.filtered) {
			break
		}
		drawRow(screen, st, idx, chromeRows+i)
	}
	screen.Show()
}

func drawRow(screen tcell.Screen, st *state, idx, y int) {
	m := st.filtered[idx]
	e := st.entries[m.entry]
	selected := idx == st.cursor
	w := st.width

	base := styleDefault
	matchStyle := styleMatch
	pointer := "  "
	pointerStyle := styleDefault
	if selected {
		base = styleSelected
		matchStyle = styleMatchCur
		pointer = "> "
		pointerStyle = styleCursorBar
	}
	writeText(screen, 0, y, pointer, pointerStyle)

	meta := rowMeta(e)
	metaCols := 0
	if meta != "" {
		metaCols = min(layout.DisplayWidth(meta), max(0, w/3))
		meta = layout.Truncate(meta, metaCols)
	}

	descCols := max(0, w-2-metaCols-1)
	x := 2
	for _, span := range layout.Highlight(e.description, descCols, m.positions) {
		style := base
		if span.Highlighted {
			style = matchStyle
		}
		writeText(screen, x, y, span.Text, style)
		x += layout.DisplayWidth(span.Text)
	}
	if selected {
		// Extend the selection bar across the description column.
		writeText(screen, x, y, layout.Pad("", descCols-(x-2)), base)
	}

	if meta != "" {
		writeText(screen, w-metaCols, y, meta, styleDim)
	}
}

// rowMeta builds the right-aligned annotation for a session row.
func rowMeta(e entry) string {
	out := ""
	if e.projectName != "" {
		out = e.projectName
	}
	if e.session.GitBranch != "" {
		if out != "" {
			out += " "
		}
		out += "(" + e.session.GitBranch + ")"
	}
	if !e.session.Modified.IsZero() {
		if out != "" {
			out += " "
		}
		out += e.session.Modified.Format("2006-01-02 15:04")
	}
	return out
}

func writeText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	offset := 0
	for _, ch := range text {
		width := layout.RuneWidth(ch)
		if width == 0 {
			continue
		}
		screen.SetContent(x+offset, y, ch, nil, style)
		offset += width
	}
}
