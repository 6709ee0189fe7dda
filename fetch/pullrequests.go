package fetch

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/ryclarke/stash-mcp/models"
	"github.com/ryclarke/stash-mcp/paging"
)

// PullRequests lists the pull requests in a repository, filtered by state
// (OPEN, MERGED, DECLINED, ALL) and ordered newest or oldest first.
func (f *Fetcher) PullRequests(ctx context.Context, project, slug, state, order string, opts paging.Options) ([]models.PullRequest, error) {
	prs, err := paging.Collect(func(start, limit int) (*paging.Page[map[string]any], error) {
		return f.api.ListPullRequests(ctx, project, slug, state, order, start, limit)
	}, opts, models.NormalizePullRequest, nil)
	if err != nil {
		f.logger.Error("failed to list pull requests", zap.String("repository", project+"/"+slug), zap.Error(err))
		return nil, fmt.Errorf("failed to list pull requests for %s/%s: %w", project, slug, err)
	}

	return prs, nil
}

// PullRequest retrieves a single pull request by ID.
func (f *Fetcher) PullRequest(ctx context.Context, project, slug string, id int) (*models.PullRequest, error) {
	data, err := f.api.GetPullRequest(ctx, project, slug, id)
	if err != nil {
		f.logger.Error("failed to get pull request", zap.String("repository", project+"/"+slug), zap.Int("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get pull request %d from %s/%s: %w", id, project, slug, err)
	}

	if data == nil {
		return nil, &NotFoundError{Resource: "pull request", Key: project + "/" + slug + "#" + strconv.Itoa(id)}
	}

	pr := models.NormalizePullRequest(data)

	return &pr, nil
}

// Changes lists the file changes in a pull request as simplified records.
func (f *Fetcher) Changes(ctx context.Context, project, slug string, id int, opts paging.Options) ([]Change, error) {
	changes, err := paging.Collect(func(start, limit int) (*paging.Page[map[string]any], error) {
		return f.api.ListPullRequestChanges(ctx, project, slug, id, start, limit)
	}, opts, normalizeChange, nil)
	if err != nil {
		f.logger.Error("failed to list pull request changes", zap.String("repository", project+"/"+slug), zap.Int("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to list changes for pull request %d in %s/%s: %w", id, project, slug, err)
	}

	return changes, nil
}

// Comments lists the comments on a pull request. Comments are derived
// from the activity feed: entries tagged COMMENTED are normalized and
// everything else is silently skipped without counting toward the limit.
func (f *Fetcher) Comments(ctx context.Context, project, slug string, id int, opts paging.Options) ([]models.Comment, error) {
	collected, err := paging.Collect(func(start, limit int) (*paging.Page[map[string]any], error) {
		return f.api.ListPullRequestActivities(ctx, project, slug, id, start, limit)
	}, opts, commentFromActivity, func(comment *models.Comment) bool {
		return comment != nil
	})
	if err != nil {
		f.logger.Error("failed to list pull request comments", zap.String("repository", project+"/"+slug), zap.Int("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to list comments for pull request %d in %s/%s: %w", id, project, slug, err)
	}

	comments := make([]models.Comment, len(collected))
	for i, comment := range collected {
		comments[i] = *comment
	}

	return comments, nil
}

// commentFromActivity extracts and normalizes the embedded comment from a
// COMMENTED activity entry, or nil for any other kind of activity.
func commentFromActivity(data map[string]any) *models.Comment {
	if action, _ := data["action"].(string); action != "COMMENTED" {
		return nil
	}

	commentData, ok := data["comment"].(map[string]any)
	if !ok {
		return nil
	}

	comment := models.NormalizeComment(commentData)

	return &comment
}

// Commits lists the commits in a pull request.
func (f *Fetcher) Commits(ctx context.Context, project, slug string, id int, opts paging.Options) ([]models.Commit, error) {
	commits, err := paging.Collect(func(start, limit int) (*paging.Page[map[string]any], error) {
		return f.api.ListPullRequestCommits(ctx, project, slug, id, start, limit)
	}, opts, models.NormalizeCommit, nil)
	if err != nil {
		f.logger.Error("failed to list pull request commits", zap.String("repository", project+"/"+slug), zap.Int("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to list commits for pull request %d in %s/%s: %w", id, project, slug, err)
	}

	return commits, nil
}

// AddComment adds a comment to a pull request, optionally as a reply to
// an existing comment.
func (f *Fetcher) AddComment(ctx context.Context, project, slug string, id int, text string, parentID *int) (*models.Comment, error) {
	data, err := f.api.AddPullRequestComment(ctx, project, slug, id, text, parentID)
	if err != nil {
		f.logger.Error("failed to add pull request comment", zap.String("repository", project+"/"+slug), zap.Int("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to add comment to pull request %d in %s/%s: %w", id, project, slug, err)
	}

	if data == nil {
		return nil, fmt.Errorf("failed to add comment to pull request %d in %s/%s", id, project, slug)
	}

	comment := models.NormalizeComment(data)

	return &comment, nil
}

// Diff produces the best-effort diff summary for a pull request from its
// refs and change list.
func (f *Fetcher) Diff(ctx context.Context, project, slug string, id int) (string, error) {
	pr, err := f.PullRequest(ctx, project, slug, id)
	if err != nil {
		return "", err
	}

	changes, err := f.Changes(ctx, project, slug, id, paging.Options{All: true})
	if err != nil {
		return "", err
	}

	diff, err := SynthesizeDiff(pr, changes)
	if err != nil {
		f.logger.Error("failed to synthesize diff", zap.String("repository", project+"/"+slug), zap.Int("id", id), zap.Error(err))
		return "", fmt.Errorf("failed to synthesize diff for pull request %d in %s/%s: %w", id, project, slug, err)
	}

	return diff, nil
}
