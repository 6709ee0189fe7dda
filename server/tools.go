package server

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// pagingOpts are the shared listing arguments.
func pagingOpts() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithNumber("start", mcp.Description("Index of the first result to return")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of results to return (default 25)")),
		mcp.WithBoolean("all", mcp.Description("Return all results, ignoring the limit")),
	}
}

func repoOpts() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("project", mcp.Required(), mcp.Description("Project key")),
		mcp.WithString("repository", mcp.Required(), mcp.Description("Repository slug")),
	}
}

func pullRequestOpts() []mcp.ToolOption {
	return append(repoOpts(),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Pull request ID")),
	)
}

func (s *Server) registerTools() {
	s.mcp.AddTool(mcp.NewTool("list_projects",
		append([]mcp.ToolOption{
			mcp.WithDescription("List accessible Bitbucket projects"),
		}, pagingOpts()...)...,
	), s.listProjects)

	s.mcp.AddTool(mcp.NewTool("get_project",
		mcp.WithDescription("Get a Bitbucket project by key"),
		mcp.WithString("project", mcp.Required(), mcp.Description("Project key")),
	), s.getProject)

	s.mcp.AddTool(mcp.NewTool("list_repositories",
		append([]mcp.ToolOption{
			mcp.WithDescription("List the repositories in a project"),
			mcp.WithString("project", mcp.Required(), mcp.Description("Project key")),
		}, pagingOpts()...)...,
	), s.listRepositories)

	s.mcp.AddTool(mcp.NewTool("get_repository",
		append([]mcp.ToolOption{
			mcp.WithDescription("Get a repository by project key and slug"),
		}, repoOpts()...)...,
	), s.getRepository)

	s.mcp.AddTool(mcp.NewTool("get_file_content",
		append([]mcp.ToolOption{
			mcp.WithDescription("Get the content of a file in a repository"),
			mcp.WithString("path", mcp.Required(), mcp.Description("File path within the repository")),
			mcp.WithString("at", mcp.Description("Branch, tag or commit to read from")),
		}, repoOpts()...)...,
	), s.getFileContent)

	s.mcp.AddTool(mcp.NewTool("list_files",
		append([]mcp.ToolOption{
			mcp.WithDescription("List the file paths in a repository"),
			mcp.WithString("path", mcp.Description("Subdirectory to list")),
			mcp.WithString("at", mcp.Description("Branch, tag or commit to list from")),
		}, append(repoOpts(), pagingOpts()...)...)...,
	), s.listFiles)

	s.mcp.AddTool(mcp.NewTool("list_branches",
		append([]mcp.ToolOption{
			mcp.WithDescription("List the branches in a repository"),
			mcp.WithString("filter", mcp.Description("Substring to match against branch names")),
			mcp.WithString("order", mcp.Description("Ordering: MODIFICATION or ALPHABETICAL")),
		}, append(repoOpts(), pagingOpts()...)...)...,
	), s.listBranches)

	s.mcp.AddTool(mcp.NewTool("get_default_branch",
		append([]mcp.ToolOption{
			mcp.WithDescription("Get the default branch of a repository"),
		}, repoOpts()...)...,
	), s.getDefaultBranch)

	s.mcp.AddTool(mcp.NewTool("list_pull_requests",
		append([]mcp.ToolOption{
			mcp.WithDescription("List the pull requests in a repository"),
			mcp.WithString("state", mcp.Description("Filter by state: OPEN, MERGED, DECLINED or ALL (default OPEN)")),
			mcp.WithString("order", mcp.Description("Ordering: NEWEST or OLDEST")),
		}, append(repoOpts(), pagingOpts()...)...)...,
	), s.listPullRequests)

	s.mcp.AddTool(mcp.NewTool("get_pull_request",
		append([]mcp.ToolOption{
			mcp.WithDescription("Get a pull request by ID"),
		}, pullRequestOpts()...)...,
	), s.getPullRequest)

	s.mcp.AddTool(mcp.NewTool("get_pull_request_diff",
		append([]mcp.ToolOption{
			mcp.WithDescription("Get a textual diff summary for a pull request"),
		}, pullRequestOpts()...)...,
	), s.getPullRequestDiff)

	s.mcp.AddTool(mcp.NewTool("list_pull_request_changes",
		append([]mcp.ToolOption{
			mcp.WithDescription("List the file changes in a pull request"),
		}, append(pullRequestOpts(), pagingOpts()...)...)...,
	), s.listPullRequestChanges)

	s.mcp.AddTool(mcp.NewTool("get_pull_request_comments",
		append([]mcp.ToolOption{
			mcp.WithDescription("List the comments on a pull request"),
		}, append(pullRequestOpts(), pagingOpts()...)...)...,
	), s.getPullRequestComments)

	s.mcp.AddTool(mcp.NewTool("list_pull_request_commits",
		append([]mcp.ToolOption{
			mcp.WithDescription("List the commits in a pull request"),
		}, append(pullRequestOpts(), pagingOpts()...)...)...,
	), s.listPullRequestCommits)

	if s.readOnly {
		return
	}

	s.mcp.AddTool(mcp.NewTool("create_repository",
		append([]mcp.ToolOption{
			mcp.WithDescription("Create a new repository in a project"),
			mcp.WithString("description", mcp.Description("Repository description")),
			mcp.WithBoolean("forkable", mcp.Description("Allow forking (default true)")),
			mcp.WithBoolean("public", mcp.Description("Make the repository public (default false)")),
		}, repoOpts()...)...,
	), s.createRepository)

	s.mcp.AddTool(mcp.NewTool("add_pull_request_comment",
		append([]mcp.ToolOption{
			mcp.WithDescription("Add a comment to a pull request"),
			mcp.WithString("text", mcp.Required(), mcp.Description("Comment text")),
			mcp.WithNumber("parent", mcp.Description("Parent comment ID when replying")),
		}, pullRequestOpts()...)...,
	), s.addPullRequestComment)
}
