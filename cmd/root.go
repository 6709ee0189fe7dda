// Package cmd configures the command-line interface. The root command
// wires configuration into the command context, and subcommands build the
// transport and accessor stack on demand.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ryclarke/stash-mcp/bitbucket"
	"github.com/ryclarke/stash-mcp/config"
	"github.com/ryclarke/stash-mcp/fetch"
)

const (
	configFlag   = "config"
	debugFlag    = "debug"
	readOnlyFlag = "read-only"
	projectsFlag = "projects"
)

// RootCmd configures the top-level root command along with all subcommands and flags
func RootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "stash-mcp",
		Short: "Bitbucket Server integration over the Model Context Protocol",
		Long: `Bitbucket Server integration over the Model Context Protocol

This tool exposes the projects, repositories and pull requests of a
Bitbucket Server/Data Center instance as MCP tools over stdio, along
with direct CLI access to the same resources.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			viper := config.Viper(cmd.Context())

			viper.BindPFlag(config.BitbucketReadOnly, cmd.Flags().Lookup(readOnlyFlag))
			viper.BindPFlag(config.BitbucketProjectsFilter, cmd.Flags().Lookup(projectsFlag))

			return nil
		},
		Version: config.Version,
	}

	// Add all subcommands to the root
	rootCmd.AddCommand(
		serveCmd(),
		browseCmd(),
		listCmd(),
		catalogCmd(),
	)

	rootCmd.PersistentFlags().StringVar(&config.CfgFile, configFlag, "", "config file (default is stash-mcp.yaml)")
	rootCmd.PersistentFlags().Bool(debugFlag, false, "enable debug logging")
	rootCmd.PersistentFlags().Bool(readOnlyFlag, false, "disable tools that modify remote state")
	rootCmd.PersistentFlags().String(projectsFlag, "", "comma-separated project keys to expose (default: all)")

	return rootCmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	ctx := config.SetViper(context.Background(), config.Init())

	if err := RootCmd().ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// newLogger builds the process logger. Logs always go to stderr so they
// never interleave with the stdio transport or JSON output.
func newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	if debug, _ := cmd.Flags().GetBool(debugFlag); debug {
		return zap.NewDevelopment()
	}

	return zap.NewProduction()
}

// newFetcher resolves the configuration from the command context and
// builds the transport and accessor stack.
func newFetcher(cmd *cobra.Command) (*fetch.Fetcher, *config.Config, *zap.Logger, error) {
	cfg, err := config.Load(config.Viper(cmd.Context()))
	if err != nil {
		return nil, nil, nil, err
	}

	logger, err := newLogger(cmd)
	if err != nil {
		return nil, nil, nil, err
	}

	return fetch.New(bitbucket.New(cfg), cfg, logger), cfg, logger, nil
}
