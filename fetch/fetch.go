// Package fetch composes the transport, collector and normalizers into
// typed resource accessors for projects, repositories and pull requests.
// Accessors are the only code that knows the transport's method names;
// they return domain records and plain error values, never formatted
// output.
package fetch

import (
	"context"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"go.uber.org/zap"

	"github.com/ryclarke/stash-mcp/config"
	"github.com/ryclarke/stash-mcp/paging"
)

// ProjectAPI is the transport capability set for project resources.
type ProjectAPI interface {
	ListProjects(ctx context.Context, start, limit int) (*paging.Page[map[string]any], error)
	GetProject(ctx context.Context, key string) (map[string]any, error)
	ProjectExists(ctx context.Context, key string) (bool, error)
}

// RepositoryAPI is the transport capability set for repository resources.
type RepositoryAPI interface {
	ListRepositories(ctx context.Context, project string, start, limit int) (*paging.Page[map[string]any], error)
	GetRepository(ctx context.Context, project, slug string) (map[string]any, error)
	RepositoryExists(ctx context.Context, project, slug string) (bool, error)
	GetFileContent(ctx context.Context, project, slug, filePath, at string) ([]byte, error)
	ListBranches(ctx context.Context, project, slug, filterText, orderBy string, start, limit int) (*paging.Page[map[string]any], error)
	GetDefaultBranch(ctx context.Context, project, slug string) (map[string]any, error)
	ListFiles(ctx context.Context, project, slug, subpath, at string, start, limit int) (*paging.Page[string], error)
	CreateRepository(ctx context.Context, project, slug string, forkable, private bool) (map[string]any, error)
	UpdateRepository(ctx context.Context, project, slug string, fields map[string]any) (map[string]any, error)
}

// PullRequestAPI is the transport capability set for pull request
// resources.
type PullRequestAPI interface {
	ListPullRequests(ctx context.Context, project, slug, state, order string, start, limit int) (*paging.Page[map[string]any], error)
	GetPullRequest(ctx context.Context, project, slug string, id int) (map[string]any, error)
	ListPullRequestChanges(ctx context.Context, project, slug string, id, start, limit int) (*paging.Page[map[string]any], error)
	ListPullRequestActivities(ctx context.Context, project, slug string, id, start, limit int) (*paging.Page[map[string]any], error)
	ListPullRequestCommits(ctx context.Context, project, slug string, id, start, limit int) (*paging.Page[map[string]any], error)
	AddPullRequestComment(ctx context.Context, project, slug string, id int, text string, parentID *int) (map[string]any, error)
}

// API is the full transport capability set consumed by the Fetcher.
type API interface {
	ProjectAPI
	RepositoryAPI
	PullRequestAPI
}

// Fetcher implements the resource accessors on top of a transport. It is
// stateless apart from its configuration and safe for concurrent use as
// long as the transport is.
type Fetcher struct {
	api    API
	logger *zap.Logger
	filter mapset.Set[string]
}

// New creates a Fetcher. The project allow-list from the configuration is
// applied case-insensitively when listing projects; a nil logger disables
// diagnostics.
func New(api API, cfg *config.Config, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}

	f := &Fetcher{
		api:    api,
		logger: logger,
	}

	if cfg != nil && len(cfg.ProjectsFilter) > 0 {
		f.filter = mapset.NewSet[string]()
		for _, key := range cfg.ProjectsFilter {
			f.filter.Add(strings.ToUpper(key))
		}
	}

	return f
}
