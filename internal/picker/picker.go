// Package picker implements the interactive session browser: a
// single-threaded, key-driven loop that filters indexed sessions with fuzzy
// search and hands the chosen session back to the caller.
package picker

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/sokojh/claude-code-tmux-hud/internal/claudehistory"
)

var newScreen = newTtyScreen

type Options struct {
	Sessions     []claudehistory.Session
	InitialQuery string
}

// Selection identifies the session the user confirmed.
type Selection struct {
	SessionID   string
	ProjectPath string
}

// Run drives the picker until the user confirms or cancels. A nil Selection
// with a nil error means cancellation. The terminal is switched to raw,
// alternate-screen mode on entry and restored on every exit path.
func Run(ctx context.Context, opts Options) (*Selection, error) {
	screen, err := newScreen()
	if err != nil {
		return nil, fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	st := newState(opts.Sessions, opts.InitialQuery)
	st.resize(screen.Size())

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-done:
		}
	}()

	for {
		draw(screen, st)

		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			st.resize(ev.Size())
			screen.Sync()
		case *tcell.EventInterrupt:
			return nil, nil
		case *tcell.EventKey:
			switch st.handleKey(ev) {
			case outcomeConfirm:
				if e, ok := st.current(); ok {
					return &Selection{
						SessionID:   e.session.SessionID,
						ProjectPath: e.session.ProjectPath,
					}, nil
				}
			case outcomeCancel:
				return nil, nil
			}
		}
	}
}
