package bitbucket

import (
	"context"
	"net/url"
	"strings"

	"github.com/ryclarke/stash-mcp/paging"
)

// ListRepositories fetches one page of the repositories in a project.
func (c *Client) ListRepositories(ctx context.Context, project string, start, limit int) (*paging.Page[map[string]any], error) {
	return getPage[map[string]any](ctx, c, c.url(project, "", pageQuery(start, limit), "repos"))
}

// GetRepository fetches a single repository by project key and slug.
// An absent repository yields (nil, nil).
func (c *Client) GetRepository(ctx context.Context, project, slug string) (map[string]any, error) {
	repo, err := get[map[string]any](ctx, c, c.url(project, slug, nil))
	if err != nil || repo == nil {
		return nil, err
	}

	return *repo, nil
}

// RepositoryExists probes whether a repository exists.
func (c *Client) RepositoryExists(ctx context.Context, project, slug string) (bool, error) {
	return c.exists(ctx, c.url(project, slug, nil))
}

// GetFileContent fetches the raw content of a file, optionally at a
// specific ref. An absent file yields (nil, nil).
func (c *Client) GetFileContent(ctx context.Context, project, slug, filePath, at string) ([]byte, error) {
	query := url.Values{}
	if at != "" {
		query.Set("at", at)
	}

	return c.raw(ctx, c.url(project, slug, query, append([]string{"raw"}, escapePath(filePath)...)...))
}

// ListBranches fetches one page of the branches in a repository, with
// optional substring filtering and ordering.
func (c *Client) ListBranches(ctx context.Context, project, slug, filterText, orderBy string, start, limit int) (*paging.Page[map[string]any], error) {
	query := pageQuery(start, limit)
	if filterText != "" {
		query.Set("filterText", filterText)
	}

	if orderBy != "" {
		query.Set("orderBy", orderBy)
	}

	return getPage[map[string]any](ctx, c, c.url(project, slug, query, "branches"))
}

// GetDefaultBranch fetches the default branch of a repository. An absent
// default branch yields (nil, nil).
func (c *Client) GetDefaultBranch(ctx context.Context, project, slug string) (map[string]any, error) {
	branch, err := get[map[string]any](ctx, c, c.url(project, slug, nil, "branches", "default"))
	if err != nil || branch == nil {
		return nil, err
	}

	return *branch, nil
}

// ListFiles fetches one page of file paths under an optional subdirectory,
// optionally at a specific ref.
func (c *Client) ListFiles(ctx context.Context, project, slug, subpath, at string, start, limit int) (*paging.Page[string], error) {
	query := pageQuery(start, limit)
	if at != "" {
		query.Set("at", at)
	}

	segments := []string{"files"}
	if subpath != "" {
		segments = append(segments, escapePath(subpath)...)
	}

	return getPage[string](ctx, c, c.url(project, slug, query, segments...))
}

// CreateRepository creates a new repository in a project.
func (c *Client) CreateRepository(ctx context.Context, project, slug string, forkable, private bool) (map[string]any, error) {
	payload := map[string]any{
		"name":     slug,
		"scmId":    "git",
		"forkable": forkable,
		"public":   !private,
	}

	repo, err := post[map[string]any](ctx, c, c.url(project, "", nil, "repos"), payload)
	if err != nil || repo == nil {
		return nil, err
	}

	return *repo, nil
}

// UpdateRepository updates mutable fields of an existing repository.
func (c *Client) UpdateRepository(ctx context.Context, project, slug string, fields map[string]any) (map[string]any, error) {
	repo, err := put[map[string]any](ctx, c, c.url(project, slug, nil), fields)
	if err != nil || repo == nil {
		return nil, err
	}

	return *repo, nil
}

// escapePath splits a repository-relative path and escapes each segment
// for use in a URL.
func escapePath(filePath string) []string {
	parts := strings.Split(strings.Trim(filePath, "/"), "/")

	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			segments = append(segments, url.PathEscape(part))
		}
	}

	return segments
}
