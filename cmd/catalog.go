package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ryclarke/stash-mcp/catalog"
	"github.com/ryclarke/stash-mcp/config"
)

const (
	refreshFlag = "refresh"
	flushFlag   = "flush"
)

// catalogCmd manages the local repository metadata cache.
func catalogCmd() *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print information on the cached repository catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fetcher, _, logger, err := newFetcher(cmd)
			if err != nil {
				return err
			}

			defer logger.Sync()

			cat := catalog.New(fetcher, config.Viper(cmd.Context()), logger)

			if flush, _ := cmd.Flags().GetBool(flushFlag); flush {
				return cat.Flush()
			}

			if refresh, _ := cmd.Flags().GetBool(refreshFlag); refresh {
				if err := cat.Refresh(cmd.Context()); err != nil {
					return err
				}
			} else if err := cat.Init(cmd.Context()); err != nil {
				return err
			}

			summary := make(map[string]any, 2)
			summary["repositories"] = cat.Len()

			projects := make(map[string][]string)
			for _, key := range cat.Projects() {
				for _, repo := range cat.Repositories(key) {
					projects[key] = append(projects[key], repo.Slug)
				}
			}

			summary["projects"] = projects

			return printJSON(cmd, summary)
		},
	}

	catalogCmd.Flags().Bool(refreshFlag, false, "refresh the catalog from the remote")
	catalogCmd.Flags().Bool(flushFlag, false, "remove the local catalog cache")

	return catalogCmd
}
