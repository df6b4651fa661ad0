package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/marshallshelly/pebble-quora/cmd/quora/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse questions and reply threads interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, s *session) error {
			return tui.RunBrowser(tui.StoreSource{Store: s.store})
		})
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
