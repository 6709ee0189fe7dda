package fetch

import (
	"context"
	"errors"
	"testing"

	"github.com/ryclarke/stash-mcp/paging"
)

func TestRepositories(t *testing.T) {
	api := newFakeAPI()
	api.repos["PROJ"] = []map[string]any{
		{"slug": "alpha", "name": "alpha"},
		{"slug": "bravo", "name": "bravo"},
		{"slug": "charlie", "name": "charlie"},
	}

	fetcher := newTestFetcher(api, "")

	repos, err := fetcher.Repositories(context.Background(), "PROJ", paging.Options{All: true})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(repos) != 3 {
		t.Fatalf("Expected 3 repositories, got %d", len(repos))
	}

	if repos[2].Slug != "charlie" {
		t.Errorf("Expected slug charlie, got %s", repos[2].Slug)
	}

	// The fake serves two items per page, so draining takes two fetches.
	if api.pageCalls != 2 {
		t.Errorf("Expected 2 page fetches, got %d", api.pageCalls)
	}
}

func TestRepositoryNotFound(t *testing.T) {
	api := newFakeAPI()

	fetcher := newTestFetcher(api, "")

	_, err := fetcher.Repository(context.Background(), "PROJ", "missing")
	if !IsNotFound(err) {
		t.Fatalf("Expected NotFoundError, got %v", err)
	}

	var notFound *NotFoundError
	if errors.As(err, &notFound) && notFound.Key != "PROJ/missing" {
		t.Errorf("Expected key PROJ/missing, got %s", notFound.Key)
	}
}

func TestFileContent(t *testing.T) {
	api := newFakeAPI()
	api.content["PROJ/repo:docs/README.md"] = []byte("# hello\n")

	fetcher := newTestFetcher(api, "")

	content, err := fetcher.FileContent(context.Background(), "PROJ", "repo", "docs/README.md", "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if content != "# hello\n" {
		t.Errorf("Expected file content, got %q", content)
	}
}

func TestFileContentNotFound(t *testing.T) {
	api := newFakeAPI()

	fetcher := newTestFetcher(api, "")

	_, err := fetcher.FileContent(context.Background(), "PROJ", "repo", "missing.txt", "")
	if !IsNotFound(err) {
		t.Errorf("Expected NotFoundError, got %v", err)
	}
}

func TestBranches(t *testing.T) {
	api := newFakeAPI()
	api.branches["PROJ/repo"] = []map[string]any{
		{"id": "refs/heads/main", "displayId": "main", "isDefault": true},
		{"id": "refs/heads/develop", "displayId": "develop"},
	}

	fetcher := newTestFetcher(api, "")

	branches, err := fetcher.Branches(context.Background(), "PROJ", "repo", "", "", paging.Options{All: true})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(branches) != 2 {
		t.Fatalf("Expected 2 branches, got %d", len(branches))
	}

	if !branches[0].IsDefault || branches[1].IsDefault {
		t.Errorf("Expected only the first branch to be default")
	}
}

func TestDefaultBranch(t *testing.T) {
	api := newFakeAPI()
	api.single["default:PROJ/repo"] = map[string]any{"id": "refs/heads/main", "displayId": "main", "isDefault": true}

	fetcher := newTestFetcher(api, "")

	branch, err := fetcher.DefaultBranch(context.Background(), "PROJ", "repo")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if branch.DisplayID != "main" {
		t.Errorf("Expected branch main, got %s", branch.DisplayID)
	}
}

func TestDefaultBranchNotFound(t *testing.T) {
	api := newFakeAPI()

	fetcher := newTestFetcher(api, "")

	if _, err := fetcher.DefaultBranch(context.Background(), "PROJ", "repo"); !IsNotFound(err) {
		t.Errorf("Expected NotFoundError, got %v", err)
	}
}

func TestFiles(t *testing.T) {
	api := newFakeAPI()
	api.files["PROJ/repo"] = []string{"go.mod", "main.go", "docs/usage.md"}

	fetcher := newTestFetcher(api, "")

	files, err := fetcher.Files(context.Background(), "PROJ", "repo", "", "", paging.Options{Limit: 2})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(files) != 2 {
		t.Fatalf("Expected 2 files, got %d", len(files))
	}

	if files[0] != "go.mod" || files[1] != "main.go" {
		t.Errorf("Expected go.mod and main.go, got %v", files)
	}
}

func TestCreateRepository(t *testing.T) {
	api := newFakeAPI()

	fetcher := newTestFetcher(api, "")

	repo, err := fetcher.CreateRepository(context.Background(), "PROJ", "newrepo", "", true, false)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if repo.Slug != "newrepo" {
		t.Errorf("Expected slug newrepo, got %s", repo.Slug)
	}

	if api.updatedFields != nil {
		t.Errorf("Expected no description update, got %v", api.updatedFields)
	}
}

func TestCreateRepositoryWithDescription(t *testing.T) {
	api := newFakeAPI()

	fetcher := newTestFetcher(api, "")

	repo, err := fetcher.CreateRepository(context.Background(), "PROJ", "newrepo", "the new repo", true, false)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if api.updatedFields == nil || api.updatedFields["description"] != "the new repo" {
		t.Fatalf("Expected description update, got %v", api.updatedFields)
	}

	if repo.Description != "the new repo" {
		t.Errorf("Expected description on returned repository, got %q", repo.Description)
	}
}
