package fetch

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ryclarke/stash-mcp/models"
	"github.com/ryclarke/stash-mcp/paging"
)

// Projects lists the accessible projects. When a project allow-list is
// configured, projects outside the list are dropped before they count
// toward the limit.
func (f *Fetcher) Projects(ctx context.Context, opts paging.Options) ([]models.Project, error) {
	var keep func(models.Project) bool
	if f.filter != nil {
		keep = func(project models.Project) bool {
			return f.filter.Contains(strings.ToUpper(project.Key))
		}
	}

	projects, err := paging.Collect(func(start, limit int) (*paging.Page[map[string]any], error) {
		return f.api.ListProjects(ctx, start, limit)
	}, opts, models.NormalizeProject, keep)
	if err != nil {
		f.logger.Error("failed to list projects", zap.Error(err))
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	return projects, nil
}

// Project retrieves a single project by key.
func (f *Fetcher) Project(ctx context.Context, key string) (*models.Project, error) {
	data, err := f.api.GetProject(ctx, key)
	if err != nil {
		f.logger.Error("failed to get project", zap.String("project", key), zap.Error(err))
		return nil, fmt.Errorf("failed to get project %s: %w", key, err)
	}

	if data == nil {
		return nil, &NotFoundError{Resource: "project", Key: key}
	}

	project := models.NormalizeProject(data)

	return &project, nil
}

// ProjectExists probes whether a project exists. A missing project is a
// normal false outcome, not an error.
func (f *Fetcher) ProjectExists(ctx context.Context, key string) (bool, error) {
	exists, err := f.api.ProjectExists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to check project %s: %w", key, err)
	}

	return exists, nil
}
