package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newSessionsCmd(opts *rootOptions) *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List indexed sessions as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sessions, err := indexSessions(opts)
			if err != nil {
				return err
			}
			payload := map[string]any{"sessions": sessions}
			var out []byte
			if pretty {
				out, err = json.MarshalIndent(payload, "", "  ")
			} else {
				out, err = json.Marshal(payload)
			}
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON")
	return cmd
}
