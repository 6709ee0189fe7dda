// Package catalog maintains a local cache of repository metadata across
// the configured Bitbucket projects. The catalog is warmed concurrently
// through the resource accessors and persisted as JSON with a TTL, so
// repeated tool invocations avoid refetching every project.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/ryclarke/stash-mcp/config"
	"github.com/ryclarke/stash-mcp/models"
	"github.com/ryclarke/stash-mcp/paging"
)

// Source is the accessor capability set the catalog needs to warm itself.
type Source interface {
	Projects(ctx context.Context, opts paging.Options) ([]models.Project, error)
	Repositories(ctx context.Context, project string, opts paging.Options) ([]models.Repository, error)
}

// Catalog is a cached view of repositories keyed by "PROJECT/slug". It is
// safe for concurrent use.
type Catalog struct {
	source Source
	logger *zap.Logger

	path        string
	ttl         time.Duration
	concurrency int64

	mu        sync.RWMutex
	repos     map[string]models.Repository
	updatedAt time.Time
}

// New creates a Catalog backed by the given accessor source, reading the
// cache location, TTL and warm concurrency from configuration.
func New(source Source, v *viper.Viper, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}

	concurrency := int64(v.GetInt(config.CatalogConcurrency))
	if concurrency <= 0 {
		concurrency = 1
	}

	return &Catalog{
		source:      source,
		logger:      logger,
		path:        v.GetString(config.CatalogCacheFile),
		ttl:         v.GetDuration(config.CatalogCacheTTL),
		concurrency: concurrency,
		repos:       make(map[string]models.Repository),
	}
}

// Init loads the catalog from the local cache when it is present and
// fresh, and refreshes from the remote otherwise.
func (c *Catalog) Init(ctx context.Context) error {
	if err := c.loadCache(); err != nil {
		c.logger.Info("repository cache unavailable, refreshing", zap.Error(err))
		return c.Refresh(ctx)
	}

	return nil
}

// Refresh rebuilds the catalog from the remote, warming all configured
// projects concurrently, and persists the result to the cache file.
func (c *Catalog) Refresh(ctx context.Context) error {
	projects, err := c.source.Projects(ctx, paging.Options{All: true})
	if err != nil {
		return fmt.Errorf("failed to refresh repository catalog: %w", err)
	}

	var (
		sem = semaphore.NewWeighted(c.concurrency)
		wg  sync.WaitGroup

		mu    sync.Mutex
		repos = make(map[string]models.Repository)
		errs  []error
	)

	for _, project := range projects {
		if err := sem.Acquire(ctx, 1); err != nil {
			return fmt.Errorf("failed to refresh repository catalog: %w", err)
		}

		wg.Add(1)

		go func(key string) {
			defer wg.Done()
			defer sem.Release(1)

			list, err := c.source.Repositories(ctx, key, paging.Options{All: true})

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				errs = append(errs, err)
				return
			}

			for _, repo := range list {
				repos[repoKey(key, repo.Slug)] = repo
			}
		}(project.Key)
	}

	wg.Wait()

	if len(errs) > 0 {
		return fmt.Errorf("failed to refresh repository catalog: %w", errs[0])
	}

	c.mu.Lock()
	c.repos = repos
	c.updatedAt = time.Now().UTC()
	c.mu.Unlock()

	if err := c.saveCache(); err != nil {
		c.logger.Warn("failed to persist repository cache", zap.String("path", c.path), zap.Error(err))
	}

	return nil
}

// Repository looks up a cached repository by project key and slug.
func (c *Catalog) Repository(project, slug string) (models.Repository, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	repo, ok := c.repos[repoKey(project, slug)]

	return repo, ok
}

// Repositories returns the cached repositories of a project, sorted by
// slug. An unknown project yields an empty list.
func (c *Catalog) Repositories(project string) []models.Repository {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var list []models.Repository
	for key, repo := range c.repos {
		if prefix, _, ok := strings.Cut(key, "/"); ok && prefix == project {
			list = append(list, repo)
		}
	}

	sort.Slice(list, func(i, j int) bool { return list[i].Slug < list[j].Slug })

	return list
}

// Projects returns the sorted project keys present in the catalog.
func (c *Catalog) Projects() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := mapset.NewSet[string]()
	for key := range c.repos {
		if prefix, _, ok := strings.Cut(key, "/"); ok {
			keys.Add(prefix)
		}
	}

	list := keys.ToSlice()
	sort.Strings(list)

	return list
}

// Len returns the number of cached repositories.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.repos)
}

// Flush removes the local cache file. A missing file is not an error.
func (c *Catalog) Flush() error {
	if err := os.Remove(c.path); err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}

type catalogCache struct {
	UpdatedAt    time.Time                    `json:"updated_at"`
	Repositories map[string]models.Repository `json:"repositories"`
}

func (c *Catalog) loadCache() error {
	file, err := os.Open(c.path)
	if err != nil {
		return err
	}

	defer file.Close()

	var cached catalogCache
	if err := json.NewDecoder(file).Decode(&cached); err != nil {
		return err
	}

	if time.Since(cached.UpdatedAt) > c.ttl {
		return fmt.Errorf("repository cache at %s is older than %s", c.path, c.ttl)
	}

	c.mu.Lock()
	c.repos = cached.Repositories
	c.updatedAt = cached.UpdatedAt
	c.mu.Unlock()

	return nil
}

func (c *Catalog) saveCache() error {
	c.mu.RLock()
	cache := catalogCache{
		UpdatedAt:    c.updatedAt,
		Repositories: c.repos,
	}
	c.mu.RUnlock()

	data, err := json.Marshal(&cache)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(c.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	return os.WriteFile(c.path, data, 0644)
}

func repoKey(project, slug string) string {
	return project + "/" + slug
}
