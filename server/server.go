// Package server exposes the Bitbucket resource accessors as MCP tools
// over stdio. Each tool returns a JSON envelope with a success flag, and
// write tools are only registered when the configuration allows writes.
package server

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/ryclarke/stash-mcp/config"
	"github.com/ryclarke/stash-mcp/fetch"
	"github.com/ryclarke/stash-mcp/models"
	"github.com/ryclarke/stash-mcp/paging"
)

// Accessor is the resource capability set backing the MCP tools. It is
// implemented by fetch.Fetcher.
type Accessor interface {
	Projects(ctx context.Context, opts paging.Options) ([]models.Project, error)
	Project(ctx context.Context, key string) (*models.Project, error)

	Repositories(ctx context.Context, project string, opts paging.Options) ([]models.Repository, error)
	Repository(ctx context.Context, project, slug string) (*models.Repository, error)
	CreateRepository(ctx context.Context, project, slug, description string, forkable, public bool) (*models.Repository, error)
	FileContent(ctx context.Context, project, slug, filePath, at string) (string, error)
	Files(ctx context.Context, project, slug, subpath, at string, opts paging.Options) ([]string, error)
	Branches(ctx context.Context, project, slug, filterText, orderBy string, opts paging.Options) ([]models.Branch, error)
	DefaultBranch(ctx context.Context, project, slug string) (*models.Branch, error)

	PullRequests(ctx context.Context, project, slug, state, order string, opts paging.Options) ([]models.PullRequest, error)
	PullRequest(ctx context.Context, project, slug string, id int) (*models.PullRequest, error)
	Changes(ctx context.Context, project, slug string, id int, opts paging.Options) ([]fetch.Change, error)
	Comments(ctx context.Context, project, slug string, id int, opts paging.Options) ([]models.Comment, error)
	Commits(ctx context.Context, project, slug string, id int, opts paging.Options) ([]models.Commit, error)
	AddComment(ctx context.Context, project, slug string, id int, text string, parentID *int) (*models.Comment, error)
	Diff(ctx context.Context, project, slug string, id int) (string, error)
}

// Server wires the accessors into an MCP server instance.
type Server struct {
	accessor Accessor
	logger   *zap.Logger
	readOnly bool

	mcp *server.MCPServer
}

// New creates a Server and registers its tool set. Write tools are left
// unregistered in read-only mode.
func New(accessor Accessor, cfg *config.Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		accessor: accessor,
		logger:   logger,
		readOnly: cfg != nil && cfg.ReadOnly,
		mcp: server.NewMCPServer(
			"stash-mcp",
			config.Version,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
		),
	}

	s.registerTools()

	return s
}

// ServeStdio runs the MCP server over stdin and stdout until the client
// disconnects.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// envelope marshals a success payload into a tool result.
func envelope(fields map[string]any) *mcp.CallToolResult {
	payload := map[string]any{"success": true}
	for key, val := range fields {
		payload[key] = val
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error())
	}

	return mcp.NewToolResultText(string(data))
}

// errorResult converts an accessor error into a failed tool result. The
// protocol-level error stays nil so the failure reaches the client as
// tool output.
func (s *Server) errorResult(tool string, err error) (*mcp.CallToolResult, error) {
	if fetch.IsNotFound(err) {
		s.logger.Debug("tool target not found", zap.String("tool", tool), zap.Error(err))
	} else {
		s.logger.Error("tool call failed", zap.String("tool", tool), zap.Error(err))
	}

	return mcp.NewToolResultError(err.Error()), nil
}
