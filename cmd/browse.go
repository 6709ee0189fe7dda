package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ryclarke/stash-mcp/tui"
)

// browseCmd opens the interactive pull request browser for a repository.
func browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse <project> <repository>",
		Short: "Browse the open pull requests of a repository interactively",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fetcher, _, logger, err := newFetcher(cmd)
			if err != nil {
				return err
			}

			defer logger.Sync()

			return tui.Run(cmd.Context(), fetcher, args[0], args[1])
		},
	}
}
