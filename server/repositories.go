package server

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// repoArgs extracts the project key and repository slug shared by every
// repository-scoped tool.
func repoArgs(args map[string]any) (project, slug string, err error) {
	if project, err = requireString(args, "project"); err != nil {
		return "", "", err
	}

	if slug, err = requireString(args, "repository"); err != nil {
		return "", "", err
	}

	return project, slug, nil
}

func (s *Server) listRepositories(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	project, err := requireString(args, "project")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	repos, err := s.accessor.Repositories(ctx, project, pagingArg(args))
	if err != nil {
		return s.errorResult("list_repositories", err)
	}

	simplified := make([]map[string]any, len(repos))
	for i, repo := range repos {
		simplified[i] = repo.Simplified()
	}

	return envelope(map[string]any{
		"count":        len(simplified),
		"repositories": simplified,
	}), nil
}

func (s *Server) getRepository(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	project, slug, err := repoArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	repo, err := s.accessor.Repository(ctx, project, slug)
	if err != nil {
		return s.errorResult("get_repository", err)
	}

	return envelope(map[string]any{"repository": repo.Simplified()}), nil
}

func (s *Server) getFileContent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	project, slug, err := repoArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	filePath, err := requireString(args, "path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	content, err := s.accessor.FileContent(ctx, project, slug, filePath, stringArg(args, "at", ""))
	if err != nil {
		return s.errorResult("get_file_content", err)
	}

	return envelope(map[string]any{
		"path":    filePath,
		"content": content,
	}), nil
}

func (s *Server) listFiles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	project, slug, err := repoArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	files, err := s.accessor.Files(ctx, project, slug, stringArg(args, "path", ""), stringArg(args, "at", ""), pagingArg(args))
	if err != nil {
		return s.errorResult("list_files", err)
	}

	return envelope(map[string]any{
		"count": len(files),
		"files": files,
	}), nil
}

func (s *Server) listBranches(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	project, slug, err := repoArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	branches, err := s.accessor.Branches(ctx, project, slug,
		stringArg(args, "filter", ""), stringArg(args, "order", ""), pagingArg(args))
	if err != nil {
		return s.errorResult("list_branches", err)
	}

	simplified := make([]map[string]any, len(branches))
	for i, branch := range branches {
		simplified[i] = branch.Simplified()
	}

	return envelope(map[string]any{
		"count":    len(simplified),
		"branches": simplified,
	}), nil
}

func (s *Server) getDefaultBranch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	project, slug, err := repoArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	branch, err := s.accessor.DefaultBranch(ctx, project, slug)
	if err != nil {
		return s.errorResult("get_default_branch", err)
	}

	return envelope(map[string]any{"branch": branch.Simplified()}), nil
}

func (s *Server) createRepository(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	project, slug, err := repoArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	repo, err := s.accessor.CreateRepository(ctx, project, slug,
		stringArg(args, "description", ""),
		boolArg(args, "forkable", true),
		boolArg(args, "public", false))
	if err != nil {
		return s.errorResult("create_repository", err)
	}

	return envelope(map[string]any{"repository": repo.Simplified()}), nil
}
