package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/sokojh/claude-code-tmux-hud/internal/claudehistory"
	"github.com/sokojh/claude-code-tmux-hud/internal/picker"
)

var selectSession = picker.Run

func runPicker(cmd *cobra.Command, opts *rootOptions, seed string) error {
	if !hasTerminal() {
		return errors.New("no controlling terminal")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	sessions, err := indexSessions(opts)
	if err != nil {
		return err
	}

	selection, err := selectSession(ctx, picker.Options{
		Sessions:     sessions,
		InitialQuery: seed,
	})
	if err != nil {
		return err
	}
	if selection == nil {
		return errCancelled
	}
	return writeResult(cmd.OutOrStdout(), selection)
}

func indexSessions(opts *rootOptions) ([]claudehistory.Session, error) {
	claudeDir, err := claudehistory.ResolveClaudeDir(opts.claudeDir)
	if err != nil {
		return nil, fmt.Errorf("resolve claude dir: %w", err)
	}
	var cache claudehistory.Cache
	if !opts.noCache {
		cache = claudehistory.NewFileCache(filepath.Join(claudeDir, "cache", "hud-picker-sessions.json"))
	}
	return claudehistory.NewIndexer(claudeDir, cache).Index(), nil
}

// writeResult emits the machine-readable result: session id and project
// path, tab separated, no trailing newline. An empty project path falls
// back to the home directory.
func writeResult(w io.Writer, selection *picker.Selection) error {
	path := selection.ProjectPath
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		path = home
	}
	_, err := fmt.Fprintf(w, "%s\t%s", selection.SessionID, path)
	return err
}

var hasTerminal = func() bool {
	for _, f := range []*os.File{os.Stdin, os.Stderr} {
		if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
			return true
		}
	}
	return false
}
