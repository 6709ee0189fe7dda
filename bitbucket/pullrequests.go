package bitbucket

import (
	"context"
	"strconv"

	"github.com/ryclarke/stash-mcp/paging"
)

// ListPullRequests fetches one page of the pull requests in a repository,
// filtered by state (OPEN, MERGED, DECLINED, ALL) and ordered newest or
// oldest first.
func (c *Client) ListPullRequests(ctx context.Context, project, slug, state, order string, start, limit int) (*paging.Page[map[string]any], error) {
	query := pageQuery(start, limit)
	if state != "" {
		query.Set("state", state)
	}

	if order != "" {
		query.Set("order", order)
	}

	return getPage[map[string]any](ctx, c, c.url(project, slug, query, "pull-requests"))
}

// GetPullRequest fetches a single pull request by ID. An absent pull
// request yields (nil, nil).
func (c *Client) GetPullRequest(ctx context.Context, project, slug string, id int) (map[string]any, error) {
	pr, err := get[map[string]any](ctx, c, c.url(project, slug, nil, "pull-requests", strconv.Itoa(id)))
	if err != nil || pr == nil {
		return nil, err
	}

	return *pr, nil
}

// ListPullRequestChanges fetches one page of the file changes in a pull
// request.
func (c *Client) ListPullRequestChanges(ctx context.Context, project, slug string, id, start, limit int) (*paging.Page[map[string]any], error) {
	return getPage[map[string]any](ctx, c, c.url(project, slug, pageQuery(start, limit), "pull-requests", strconv.Itoa(id), "changes"))
}

// ListPullRequestActivities fetches one page of the activity feed of a
// pull request. Comments are the subset of activities tagged COMMENTED.
func (c *Client) ListPullRequestActivities(ctx context.Context, project, slug string, id, start, limit int) (*paging.Page[map[string]any], error) {
	return getPage[map[string]any](ctx, c, c.url(project, slug, pageQuery(start, limit), "pull-requests", strconv.Itoa(id), "activities"))
}

// ListPullRequestCommits fetches one page of the commits in a pull request.
func (c *Client) ListPullRequestCommits(ctx context.Context, project, slug string, id, start, limit int) (*paging.Page[map[string]any], error) {
	return getPage[map[string]any](ctx, c, c.url(project, slug, pageQuery(start, limit), "pull-requests", strconv.Itoa(id), "commits"))
}

// AddPullRequestComment adds a comment to a pull request, optionally as a
// reply to an existing comment.
func (c *Client) AddPullRequestComment(ctx context.Context, project, slug string, id int, text string, parentID *int) (map[string]any, error) {
	payload := map[string]any{"text": text}
	if parentID != nil {
		payload["parent"] = map[string]any{"id": *parentID}
	}

	comment, err := post[map[string]any](ctx, c, c.url(project, slug, nil, "pull-requests", strconv.Itoa(id), "comments"), payload)
	if err != nil || comment == nil {
		return nil, err
	}

	return *comment, nil
}
