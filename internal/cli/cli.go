package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "v0.3.1"
	commit  = ""
	date    = ""
)

// errCancelled marks the quiet exit-1 path: the user dismissed the picker
// or there was nothing to pick.
var errCancelled = errors.New("cancelled")

type rootOptions struct {
	claudeDir string
	noCache   bool
}

func Execute() int {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errCancelled) {
			fmt.Fprintln(os.Stderr, "hud-picker:", err)
		}
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "hud-picker [query]",
		Short: "Pick a prior Claude Code session in a terminal UI",
		Long: "hud-picker browses sessions recorded in the Claude Code history log.\n" +
			"On confirmation it writes \"<sessionId>\\t<projectPath>\" to stdout and\n" +
			"exits 0; cancellation exits 1. All interactive output goes to the\n" +
			"terminal, never to stdout.",
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		Version:       buildVersion(),
		RunE: func(cmd *cobra.Command, args []string) error {
			seed := ""
			if len(args) == 1 {
				seed = args[0]
			}
			return runPicker(cmd, opts, seed)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.claudeDir, "claude-dir", "", "Override Claude data dir (default: ~/.claude)")
	cmd.PersistentFlags().BoolVar(&opts.noCache, "no-cache", false, "Skip the session snapshot cache and rescan")

	cmd.AddCommand(
		newSessionsCmd(opts),
	)

	return cmd
}

func buildVersion() string {
	v := version
	if commit != "" {
		v += " (" + commit + ")"
	}
	if date != "" {
		v += " " + date
	}
	return v
}
