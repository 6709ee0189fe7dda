package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/ryclarke/stash-mcp/paging"
)

const (
	limitFlag = "limit"
	allFlag   = "all"
	stateFlag = "state"
)

// listCmd groups the read-only listing commands. Results print as JSON
// so they compose with other tooling.
func listCmd() *cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List Bitbucket resources as JSON",
	}

	listCmd.AddCommand(
		listProjectsCmd(),
		listRepositoriesCmd(),
		listPullRequestsCmd(),
	)

	listCmd.PersistentFlags().Int(limitFlag, paging.DefaultPageSize, "maximum number of results")
	listCmd.PersistentFlags().Bool(allFlag, false, "return all results, ignoring the limit")

	return listCmd
}

// listOptions builds collection options from the shared listing flags.
func listOptions(cmd *cobra.Command) paging.Options {
	limit, _ := cmd.Flags().GetInt(limitFlag)
	all, _ := cmd.Flags().GetBool(allFlag)

	return paging.Options{Limit: limit, All: all}
}

// printJSON writes the value to stdout as indented JSON.
func printJSON(cmd *cobra.Command, value any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")

	return enc.Encode(value)
}

func listProjectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List accessible projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fetcher, _, logger, err := newFetcher(cmd)
			if err != nil {
				return err
			}

			defer logger.Sync()

			projects, err := fetcher.Projects(cmd.Context(), listOptions(cmd))
			if err != nil {
				return err
			}

			simplified := make([]map[string]any, len(projects))
			for i, project := range projects {
				simplified[i] = project.Simplified()
			}

			return printJSON(cmd, simplified)
		},
	}
}

func listRepositoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repos <project>",
		Short: "List the repositories in a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fetcher, _, logger, err := newFetcher(cmd)
			if err != nil {
				return err
			}

			defer logger.Sync()

			repos, err := fetcher.Repositories(cmd.Context(), args[0], listOptions(cmd))
			if err != nil {
				return err
			}

			simplified := make([]map[string]any, len(repos))
			for i, repo := range repos {
				simplified[i] = repo.Simplified()
			}

			return printJSON(cmd, simplified)
		},
	}
}

func listPullRequestsCmd() *cobra.Command {
	prsCmd := &cobra.Command{
		Use:   "prs <project> <repository>",
		Short: "List the pull requests in a repository",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fetcher, _, logger, err := newFetcher(cmd)
			if err != nil {
				return err
			}

			defer logger.Sync()

			state, _ := cmd.Flags().GetString(stateFlag)

			prs, err := fetcher.PullRequests(cmd.Context(), args[0], args[1], state, "", listOptions(cmd))
			if err != nil {
				return err
			}

			simplified := make([]map[string]any, len(prs))
			for i, pr := range prs {
				simplified[i] = pr.Simplified()
			}

			return printJSON(cmd, simplified)
		},
	}

	prsCmd.Flags().String(stateFlag, "OPEN", "pull request state: OPEN, MERGED, DECLINED or ALL")

	return prsCmd
}
