package picker

import (
	"sort"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/sokojh/claude-code-tmux-hud/internal/claudehistory"
	"github.com/sokojh/claude-code-tmux-hud/internal/fuzzy"
)

// entry is a session plus the derived fields the matcher runs against,
// computed once at load.
type entry struct {
	session      claudehistory.Session
	description  string
	projectName  string
	worktreeName string
}

// match is one filtered row: an entry index, its score, and (when the
// description is what matched) the rune positions to highlight.
type match struct {
	entry     int
	score     int
	positions []int
}

type outcome int

const (
	outcomeNone outcome = iota
	outcomeConfirm
	outcomeCancel
)

// Rows above the list: query line plus count line.
const chromeRows = 2

type state struct {
	entries  []entry
	query    []rune
	filtered []match
	cursor   int
	scroll   int
	width    int
	height   int
}

func newState(sessions []claudehistory.Session, seed string) *state {
	entries := make([]entry, 0, len(sessions))
	for _, sess := range sessions {
		entries = append(entries, entry{
			session:      sess,
			description:  sess.Description(),
			projectName:  sess.ProjectName(),
			worktreeName: sess.WorktreeName(),
		})
	}
	st := &state{entries: entries, query: []rune(seed)}
	st.applyFilter()
	return st
}

// applyFilter recomputes the filtered list for the current query: every
// matching session sorted by score descending, ties keeping recency order.
// Cursor and scroll are re-clamped so the selection stays valid and visible.
func (st *state) applyFilter() {
	query := string(st.query)
	st.filtered = st.filtered[:0]

	if query == "" {
		for i := range st.entries {
			st.filtered = append(st.filtered, match{entry: i})
		}
	} else {
		for i := range st.entries {
			res, field := matchEntry(query, st.entries[i])
			if field < 0 {
				continue
			}
			m := match{entry: i, score: res.Score}
			if field == 0 {
				m.positions = res.Positions
			}
			st.filtered = append(st.filtered, m)
		}
		sort.SliceStable(st.filtered, func(i, j int) bool {
			return st.filtered[i].score > st.filtered[j].score
		})
	}

	st.clampCursor()
	st.ensureVisible()
}

// matchEntry runs the matcher over the entry's candidate fields in order:
// description, project name, git branch, worktree name. Returns the best
// result and the winning field index, or -1 when no field matches.
func matchEntry(query string, e entry) (fuzzy.Result, int) {
	return fuzzy.MatchFields(query,
		e.description,
		e.projectName,
		e.session.GitBranch,
		e.worktreeName,
	)
}

func (st *state) handleKey(ev *tcell.EventKey) outcome {
	switch ev.Key() {
	case tcell.KeyESC, tcell.KeyCtrlC:
		return outcomeCancel
	case tcell.KeyEnter:
		if len(st.filtered) > 0 {
			return outcomeConfirm
		}
	case tcell.KeyUp:
		st.moveCursor(-1)
	case tcell.KeyDown:
		st.moveCursor(1)
	case tcell.KeyPgUp:
		st.moveCursor(-max(1, st.listHeight()))
	case tcell.KeyPgDn:
		st.moveCursor(max(1, st.listHeight()))
	case tcell.KeyHome:
		st.cursor = 0
		st.ensureVisible()
	case tcell.KeyEnd:
		st.cursor = len(st.filtered) - 1
		st.clampCursor()
		st.ensureVisible()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(st.query) > 0 {
			st.query = st.query[:len(st.query)-1]
			st.applyFilter()
		}
	case tcell.KeyCtrlU:
		if len(st.query) > 0 {
			st.query = nil
			st.applyFilter()
		}
	case tcell.KeyRune:
		if ch := ev.Rune(); unicode.IsPrint(ch) {
			st.query = append(st.query, ch)
			st.applyFilter()
		}
	}
	return outcomeNone
}

func (st *state) current() (entry, bool) {
	if st.cursor < 0 || st.cursor >= len(st.filtered) {
		return entry{}, false
	}
	return st.entries[st.filtered[st.cursor].entry], true
}

func (st *state) resize(w, h int) {
	st.width = w
	st.height = h
	st.ensureVisible()
}

func (st *state) listHeight() int {
	return max(0, st.height-chromeRows)
}

func (st *state) moveCursor(delta int) {
	st.cursor += delta
	st.clampCursor()
	st.ensureVisible()
}

func (st *state) clampCursor() {
	if len(st.filtered) == 0 {
		st.cursor = 0
		st.scroll = 0
		return
	}
	st.cursor = clamp(st.cursor, 0, len(st.filtered)-1)
}

// ensureVisible adjusts scroll minimally so the cursor row stays inside the
// visible window.
func (st *state) ensureVisible() {
	viewH := st.listHeight()
	if len(st.filtered) == 0 || viewH <= 0 {
		st.scroll = 0
		return
	}
	if st.cursor < st.scroll {
		st.scroll = st.cursor
	} else if st.cursor >= st.scroll+viewH {
		st.scroll = st.cursor - viewH + 1
	}
	st.scroll = clamp(st.scroll, 0, max(0, len(st.filtered)-viewH))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
