package server

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) listProjects(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	projects, err := s.accessor.Projects(ctx, pagingArg(args))
	if err != nil {
		return s.errorResult("list_projects", err)
	}

	simplified := make([]map[string]any, len(projects))
	for i, project := range projects {
		simplified[i] = project.Simplified()
	}

	return envelope(map[string]any{
		"count":    len(simplified),
		"projects": simplified,
	}), nil
}

func (s *Server) getProject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	key, err := requireString(args, "project")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	project, err := s.accessor.Project(ctx, key)
	if err != nil {
		return s.errorResult("get_project", err)
	}

	return envelope(map[string]any{"project": project.Simplified()}), nil
}
