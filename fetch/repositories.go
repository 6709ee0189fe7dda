package fetch

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ryclarke/stash-mcp/models"
	"github.com/ryclarke/stash-mcp/paging"
)

// Repositories lists the repositories in a project.
func (f *Fetcher) Repositories(ctx context.Context, project string, opts paging.Options) ([]models.Repository, error) {
	repos, err := paging.Collect(func(start, limit int) (*paging.Page[map[string]any], error) {
		return f.api.ListRepositories(ctx, project, start, limit)
	}, opts, models.NormalizeRepository, nil)
	if err != nil {
		f.logger.Error("failed to list repositories", zap.String("project", project), zap.Error(err))
		return nil, fmt.Errorf("failed to list repositories for %s: %w", project, err)
	}

	return repos, nil
}

// Repository retrieves a single repository by project key and slug.
func (f *Fetcher) Repository(ctx context.Context, project, slug string) (*models.Repository, error) {
	data, err := f.api.GetRepository(ctx, project, slug)
	if err != nil {
		f.logger.Error("failed to get repository", zap.String("project", project), zap.String("repository", slug), zap.Error(err))
		return nil, fmt.Errorf("failed to get repository %s/%s: %w", project, slug, err)
	}

	if data == nil {
		return nil, &NotFoundError{Resource: "repository", Key: project + "/" + slug}
	}

	repo := models.NormalizeRepository(data)

	return &repo, nil
}

// RepositoryExists probes whether a repository exists. A missing
// repository is a normal false outcome, not an error.
func (f *Fetcher) RepositoryExists(ctx context.Context, project, slug string) (bool, error) {
	exists, err := f.api.RepositoryExists(ctx, project, slug)
	if err != nil {
		return false, fmt.Errorf("failed to check repository %s/%s: %w", project, slug, err)
	}

	return exists, nil
}

// FileContent retrieves the content of a file, optionally at a specific
// ref (branch, tag or commit).
func (f *Fetcher) FileContent(ctx context.Context, project, slug, filePath, at string) (string, error) {
	content, err := f.api.GetFileContent(ctx, project, slug, filePath, at)
	if err != nil {
		f.logger.Error("failed to get file content", zap.String("repository", project+"/"+slug), zap.String("path", filePath), zap.Error(err))
		return "", fmt.Errorf("failed to get file %s from %s/%s: %w", filePath, project, slug, err)
	}

	if content == nil {
		return "", &NotFoundError{Resource: "file", Key: project + "/" + slug + ":" + filePath}
	}

	return string(content), nil
}

// Branches lists the branches in a repository, with optional substring
// filtering and ordering (MODIFICATION or ALPHABETICAL).
func (f *Fetcher) Branches(ctx context.Context, project, slug, filterText, orderBy string, opts paging.Options) ([]models.Branch, error) {
	branches, err := paging.Collect(func(start, limit int) (*paging.Page[map[string]any], error) {
		return f.api.ListBranches(ctx, project, slug, filterText, orderBy, start, limit)
	}, opts, models.NormalizeBranch, nil)
	if err != nil {
		f.logger.Error("failed to list branches", zap.String("repository", project+"/"+slug), zap.Error(err))
		return nil, fmt.Errorf("failed to list branches for %s/%s: %w", project, slug, err)
	}

	return branches, nil
}

// DefaultBranch retrieves the default branch of a repository.
func (f *Fetcher) DefaultBranch(ctx context.Context, project, slug string) (*models.Branch, error) {
	data, err := f.api.GetDefaultBranch(ctx, project, slug)
	if err != nil {
		f.logger.Error("failed to get default branch", zap.String("repository", project+"/"+slug), zap.Error(err))
		return nil, fmt.Errorf("failed to get default branch for %s/%s: %w", project, slug, err)
	}

	if data == nil {
		return nil, &NotFoundError{Resource: "default branch", Key: project + "/" + slug}
	}

	branch := models.NormalizeBranch(data)

	return &branch, nil
}

// Files lists the file paths in a repository, optionally under a
// subdirectory and at a specific ref.
func (f *Fetcher) Files(ctx context.Context, project, slug, subpath, at string, opts paging.Options) ([]string, error) {
	files, err := paging.Collect(func(start, limit int) (*paging.Page[string], error) {
		return f.api.ListFiles(ctx, project, slug, subpath, at, start, limit)
	}, opts, func(path string) string { return path }, nil)
	if err != nil {
		f.logger.Error("failed to list files", zap.String("repository", project+"/"+slug), zap.Error(err))
		return nil, fmt.Errorf("failed to list files for %s/%s: %w", project, slug, err)
	}

	return files, nil
}

// CreateRepository creates a new repository in a project, applying the
// description with a follow-up update when one is provided.
func (f *Fetcher) CreateRepository(ctx context.Context, project, slug, description string, forkable, public bool) (*models.Repository, error) {
	data, err := f.api.CreateRepository(ctx, project, slug, forkable, !public)
	if err != nil {
		f.logger.Error("failed to create repository", zap.String("project", project), zap.String("repository", slug), zap.Error(err))
		return nil, fmt.Errorf("failed to create repository %s/%s: %w", project, slug, err)
	}

	if data == nil {
		return nil, fmt.Errorf("failed to create repository %s/%s", project, slug)
	}

	if description != "" {
		data, err = f.api.UpdateRepository(ctx, project, slug, map[string]any{"description": description})
		if err != nil {
			f.logger.Error("failed to update repository description", zap.String("project", project), zap.String("repository", slug), zap.Error(err))
			return nil, fmt.Errorf("failed to update repository %s/%s: %w", project, slug, err)
		}
	}

	repo := models.NormalizeRepository(data)

	return &repo, nil
}
