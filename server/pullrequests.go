package server

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// pullRequestArgs extracts the repository coordinates and pull request ID
// shared by every pull-request-scoped tool.
func pullRequestArgs(args map[string]any) (project, slug string, id int, err error) {
	if project, slug, err = repoArgs(args); err != nil {
		return "", "", 0, err
	}

	if id, err = requireInt(args, "id"); err != nil {
		return "", "", 0, err
	}

	return project, slug, id, nil
}

func (s *Server) listPullRequests(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	project, slug, err := repoArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	prs, err := s.accessor.PullRequests(ctx, project, slug,
		stringArg(args, "state", "OPEN"), stringArg(args, "order", ""), pagingArg(args))
	if err != nil {
		return s.errorResult("list_pull_requests", err)
	}

	simplified := make([]map[string]any, len(prs))
	for i, pr := range prs {
		simplified[i] = pr.Simplified()
	}

	return envelope(map[string]any{
		"count":         len(simplified),
		"pull_requests": simplified,
	}), nil
}

func (s *Server) getPullRequest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	project, slug, id, err := pullRequestArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	pr, err := s.accessor.PullRequest(ctx, project, slug, id)
	if err != nil {
		return s.errorResult("get_pull_request", err)
	}

	return envelope(map[string]any{"pull_request": pr.Simplified()}), nil
}

func (s *Server) getPullRequestDiff(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	project, slug, id, err := pullRequestArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	diff, err := s.accessor.Diff(ctx, project, slug, id)
	if err != nil {
		return s.errorResult("get_pull_request_diff", err)
	}

	return envelope(map[string]any{"diff": diff}), nil
}

func (s *Server) listPullRequestChanges(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	project, slug, id, err := pullRequestArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	changes, err := s.accessor.Changes(ctx, project, slug, id, pagingArg(args))
	if err != nil {
		return s.errorResult("list_pull_request_changes", err)
	}

	simplified := make([]map[string]any, len(changes))
	for i, change := range changes {
		simplified[i] = change.Simplified()
	}

	return envelope(map[string]any{
		"count":   len(simplified),
		"changes": simplified,
	}), nil
}

func (s *Server) getPullRequestComments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	project, slug, id, err := pullRequestArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	comments, err := s.accessor.Comments(ctx, project, slug, id, pagingArg(args))
	if err != nil {
		return s.errorResult("get_pull_request_comments", err)
	}

	simplified := make([]map[string]any, len(comments))
	for i, comment := range comments {
		simplified[i] = comment.Simplified()
	}

	return envelope(map[string]any{
		"count":    len(simplified),
		"comments": simplified,
	}), nil
}

func (s *Server) listPullRequestCommits(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	project, slug, id, err := pullRequestArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	commits, err := s.accessor.Commits(ctx, project, slug, id, pagingArg(args))
	if err != nil {
		return s.errorResult("list_pull_request_commits", err)
	}

	simplified := make([]map[string]any, len(commits))
	for i, commit := range commits {
		simplified[i] = commit.Simplified()
	}

	return envelope(map[string]any{
		"count":   len(simplified),
		"commits": simplified,
	}), nil
}

func (s *Server) addPullRequestComment(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	project, slug, id, err := pullRequestArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	text, err := requireString(args, "text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var parentID *int
	if parent := intArg(args, "parent", 0); parent > 0 {
		parentID = &parent
	}

	comment, err := s.accessor.AddComment(ctx, project, slug, id, text, parentID)
	if err != nil {
		return s.errorResult("add_pull_request_comment", err)
	}

	return envelope(map[string]any{"comment": comment.Simplified()}), nil
}
