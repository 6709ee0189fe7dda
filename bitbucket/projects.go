package bitbucket

import (
	"context"

	"github.com/ryclarke/stash-mcp/paging"
)

// ListProjects fetches one page of the accessible projects.
func (c *Client) ListProjects(ctx context.Context, start, limit int) (*paging.Page[map[string]any], error) {
	return getPage[map[string]any](ctx, c, c.url("", "", pageQuery(start, limit)))
}

// GetProject fetches a single project by key. An absent project yields
// (nil, nil).
func (c *Client) GetProject(ctx context.Context, key string) (map[string]any, error) {
	project, err := get[map[string]any](ctx, c, c.url(key, "", nil))
	if err != nil || project == nil {
		return nil, err
	}

	return *project, nil
}

// ProjectExists probes whether a project exists.
func (c *Client) ProjectExists(ctx context.Context, key string) (bool, error) {
	return c.exists(ctx, c.url(key, "", nil))
}
