package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ryclarke/stash-mcp/server"
)

// serveCmd runs the MCP server over stdio until the client disconnects.
func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve Bitbucket resources as MCP tools over stdio",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fetcher, cfg, logger, err := newFetcher(cmd)
			if err != nil {
				return err
			}

			defer logger.Sync()

			logger.Info("starting MCP server",
				zap.String("url", cfg.URL),
				zap.String("auth", cfg.AuthType),
				zap.Bool("read-only", cfg.ReadOnly),
			)

			return server.New(fetcher, cfg, logger).ServeStdio()
		},
	}
}
