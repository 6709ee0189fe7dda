package fetch

import (
	"context"
	"strings"
	"testing"

	"github.com/ryclarke/stash-mcp/paging"
)

func TestPullRequests(t *testing.T) {
	api := newFakeAPI()
	api.prs["PROJ/repo"] = []map[string]any{
		{"id": 1, "title": "First", "state": "OPEN"},
		{"id": 2, "title": "Second", "state": "MERGED"},
	}

	fetcher := newTestFetcher(api, "")

	prs, err := fetcher.PullRequests(context.Background(), "PROJ", "repo", "ALL", "", paging.Options{All: true})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(prs) != 2 {
		t.Fatalf("Expected 2 pull requests, got %d", len(prs))
	}

	if prs[1].Title != "Second" || prs[1].State != "MERGED" {
		t.Errorf("Expected Second/MERGED, got %s/%s", prs[1].Title, prs[1].State)
	}
}

func TestPullRequest(t *testing.T) {
	api := newFakeAPI()
	api.prs["PROJ/repo"] = []map[string]any{
		{"id": 42, "title": "Fix the thing", "version": float64(3)},
	}

	fetcher := newTestFetcher(api, "")

	pr, err := fetcher.PullRequest(context.Background(), "PROJ", "repo", 42)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if pr.ID == nil || *pr.ID != 42 {
		t.Errorf("Expected ID 42, got %v", pr.ID)
	}

	if pr.Version != 3 {
		t.Errorf("Expected version 3, got %d", pr.Version)
	}
}

func TestPullRequestNotFound(t *testing.T) {
	api := newFakeAPI()

	fetcher := newTestFetcher(api, "")

	_, err := fetcher.PullRequest(context.Background(), "PROJ", "repo", 404)
	if !IsNotFound(err) {
		t.Fatalf("Expected NotFoundError, got %v", err)
	}

	if !strings.Contains(err.Error(), "PROJ/repo#404") {
		t.Errorf("Expected key in error, got %v", err)
	}
}

func TestChanges(t *testing.T) {
	api := newFakeAPI()
	api.changes["PROJ/repo"] = []map[string]any{
		{"path": map[string]any{"toString": "a.txt"}, "type": "MODIFY"},
		{"path": map[string]any{"toString": "b.txt"}, "type": "MOVE", "srcPath": map[string]any{"toString": "old/b.txt"}},
		{"path": map[string]any{"toString": "c.txt"}},
	}

	fetcher := newTestFetcher(api, "")

	changes, err := fetcher.Changes(context.Background(), "PROJ", "repo", 1, paging.Options{All: true})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(changes) != 3 {
		t.Fatalf("Expected 3 changes, got %d", len(changes))
	}

	if changes[1].SrcPath != "old/b.txt" {
		t.Errorf("Expected src path old/b.txt, got %s", changes[1].SrcPath)
	}

	if changes[2].Type != "UNKNOWN" {
		t.Errorf("Expected UNKNOWN type for untyped change, got %s", changes[2].Type)
	}
}

func TestComments(t *testing.T) {
	api := newFakeAPI()
	api.activities["PROJ/repo"] = []map[string]any{
		{"action": "COMMENTED", "comment": map[string]any{"id": float64(1), "text": "first"}},
		{"action": "APPROVED"},
		{"action": "OPENED"},
		{"action": "COMMENTED", "comment": map[string]any{
			"id":   float64(2),
			"text": "second",
			"comments": []any{
				map[string]any{"id": float64(3), "text": "a reply"},
			},
		}},
	}

	fetcher := newTestFetcher(api, "")

	comments, err := fetcher.Comments(context.Background(), "PROJ", "repo", 1, paging.Options{All: true})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(comments) != 2 {
		t.Fatalf("Expected 2 comments, got %d", len(comments))
	}

	if comments[0].Text != "first" || comments[1].Text != "second" {
		t.Errorf("Expected first and second, got %s and %s", comments[0].Text, comments[1].Text)
	}

	if len(comments[1].Comments) != 1 || comments[1].Comments[0].Text != "a reply" {
		t.Errorf("Expected nested reply, got %v", comments[1].Comments)
	}
}

func TestCommentsLimitSkipsOtherActivities(t *testing.T) {
	api := newFakeAPI()
	api.activities["PROJ/repo"] = []map[string]any{
		{"action": "APPROVED"},
		{"action": "COMMENTED", "comment": map[string]any{"id": float64(1), "text": "first"}},
		{"action": "MERGED"},
		{"action": "COMMENTED", "comment": map[string]any{"id": float64(2), "text": "second"}},
	}

	fetcher := newTestFetcher(api, "")

	// Non-comment activities must not count toward the limit.
	comments, err := fetcher.Comments(context.Background(), "PROJ", "repo", 1, paging.Options{Limit: 2})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(comments) != 2 {
		t.Fatalf("Expected 2 comments, got %d", len(comments))
	}

	if comments[1].Text != "second" {
		t.Errorf("Expected second, got %s", comments[1].Text)
	}
}

func TestCommits(t *testing.T) {
	api := newFakeAPI()
	api.commits["PROJ/repo"] = []map[string]any{
		{"id": "abcdef1234567890", "displayId": "abcdef1", "message": "initial"},
	}

	fetcher := newTestFetcher(api, "")

	commits, err := fetcher.Commits(context.Background(), "PROJ", "repo", 1, paging.Options{All: true})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(commits) != 1 {
		t.Fatalf("Expected 1 commit, got %d", len(commits))
	}

	if commits[0].Message != "initial" {
		t.Errorf("Expected message initial, got %s", commits[0].Message)
	}
}

func TestAddComment(t *testing.T) {
	api := newFakeAPI()

	fetcher := newTestFetcher(api, "")

	comment, err := fetcher.AddComment(context.Background(), "PROJ", "repo", 1, "looks good", nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if comment.Text != "looks good" {
		t.Errorf("Expected comment text, got %q", comment.Text)
	}

	if api.commentParent != nil {
		t.Errorf("Expected no parent, got %v", api.commentParent)
	}

	parent := 7
	if _, err := fetcher.AddComment(context.Background(), "PROJ", "repo", 1, "a reply", &parent); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if api.commentParent == nil || *api.commentParent != 7 {
		t.Errorf("Expected parent 7, got %v", api.commentParent)
	}
}
