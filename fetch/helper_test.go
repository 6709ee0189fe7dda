package fetch

import (
	"context"
	"strings"

	"github.com/ryclarke/stash-mcp/config"
	"github.com/ryclarke/stash-mcp/paging"
)

// fakeAPI implements the transport capability set in memory for testing.
// Errors can be injected per method name, and every paged method serves
// fixed-size pages so pagination behavior is exercised.
type fakeAPI struct {
	pageSize int

	projects   []map[string]any
	repos      map[string][]map[string]any
	branches   map[string][]map[string]any
	prs        map[string][]map[string]any
	changes    map[string][]map[string]any
	activities map[string][]map[string]any
	commits    map[string][]map[string]any
	files      map[string][]string
	content    map[string][]byte
	single     map[string]map[string]any

	errors    map[string]error
	pageCalls int

	createdPayload map[string]any
	updatedFields  map[string]any
	commentText    string
	commentParent  *int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		pageSize:   2,
		repos:      make(map[string][]map[string]any),
		branches:   make(map[string][]map[string]any),
		prs:        make(map[string][]map[string]any),
		changes:    make(map[string][]map[string]any),
		activities: make(map[string][]map[string]any),
		commits:    make(map[string][]map[string]any),
		files:      make(map[string][]string),
		content:    make(map[string][]byte),
		single:     make(map[string]map[string]any),
		errors:     make(map[string]error),
	}
}

func pageOf[T any](values []T, start, pageSize int) *paging.Page[T] {
	if start >= len(values) {
		return &paging.Page[T]{Start: start, IsLastPage: true}
	}

	end := start + pageSize
	if end > len(values) {
		end = len(values)
	}

	page := &paging.Page[T]{
		Start:      start,
		Size:       end - start,
		Values:     values[start:end],
		IsLastPage: end >= len(values),
	}

	if !page.IsLastPage {
		next := end
		page.NextPageStart = &next
	}

	return page
}

func (f *fakeAPI) page(name string, values []map[string]any, start int) (*paging.Page[map[string]any], error) {
	f.pageCalls++

	if err := f.errors[name]; err != nil {
		return nil, err
	}

	return pageOf(values, start, f.pageSize), nil
}

func (f *fakeAPI) ListProjects(_ context.Context, start, _ int) (*paging.Page[map[string]any], error) {
	return f.page("ListProjects", f.projects, start)
}

func (f *fakeAPI) GetProject(_ context.Context, key string) (map[string]any, error) {
	if err := f.errors["GetProject"]; err != nil {
		return nil, err
	}

	return f.single["project:"+key], nil
}

func (f *fakeAPI) ProjectExists(_ context.Context, key string) (bool, error) {
	if err := f.errors["ProjectExists"]; err != nil {
		return false, err
	}

	return f.single["project:"+key] != nil, nil
}

func (f *fakeAPI) ListRepositories(_ context.Context, project string, start, _ int) (*paging.Page[map[string]any], error) {
	return f.page("ListRepositories", f.repos[project], start)
}

func (f *fakeAPI) GetRepository(_ context.Context, project, slug string) (map[string]any, error) {
	if err := f.errors["GetRepository"]; err != nil {
		return nil, err
	}

	return f.single["repo:"+project+"/"+slug], nil
}

func (f *fakeAPI) RepositoryExists(_ context.Context, project, slug string) (bool, error) {
	if err := f.errors["RepositoryExists"]; err != nil {
		return false, err
	}

	return f.single["repo:"+project+"/"+slug] != nil, nil
}

func (f *fakeAPI) GetFileContent(_ context.Context, project, slug, filePath, _ string) ([]byte, error) {
	if err := f.errors["GetFileContent"]; err != nil {
		return nil, err
	}

	return f.content[project+"/"+slug+":"+filePath], nil
}

func (f *fakeAPI) ListBranches(_ context.Context, project, slug, _, _ string, start, _ int) (*paging.Page[map[string]any], error) {
	return f.page("ListBranches", f.branches[project+"/"+slug], start)
}

func (f *fakeAPI) GetDefaultBranch(_ context.Context, project, slug string) (map[string]any, error) {
	if err := f.errors["GetDefaultBranch"]; err != nil {
		return nil, err
	}

	return f.single["default:"+project+"/"+slug], nil
}

func (f *fakeAPI) ListFiles(_ context.Context, project, slug, _, _ string, start, _ int) (*paging.Page[string], error) {
	f.pageCalls++

	if err := f.errors["ListFiles"]; err != nil {
		return nil, err
	}

	return pageOf(f.files[project+"/"+slug], start, f.pageSize), nil
}

func (f *fakeAPI) CreateRepository(_ context.Context, project, slug string, forkable, private bool) (map[string]any, error) {
	if err := f.errors["CreateRepository"]; err != nil {
		return nil, err
	}

	f.createdPayload = map[string]any{
		"name":     slug,
		"forkable": forkable,
		"public":   !private,
	}

	return map[string]any{"slug": slug, "name": slug, "forkable": forkable, "public": !private}, nil
}

func (f *fakeAPI) UpdateRepository(_ context.Context, _, slug string, fields map[string]any) (map[string]any, error) {
	if err := f.errors["UpdateRepository"]; err != nil {
		return nil, err
	}

	f.updatedFields = fields

	repo := map[string]any{"slug": slug, "name": slug}
	for key, val := range fields {
		repo[key] = val
	}

	return repo, nil
}

func (f *fakeAPI) ListPullRequests(_ context.Context, project, slug, _, _ string, start, _ int) (*paging.Page[map[string]any], error) {
	return f.page("ListPullRequests", f.prs[project+"/"+slug], start)
}

func (f *fakeAPI) GetPullRequest(_ context.Context, project, slug string, id int) (map[string]any, error) {
	if err := f.errors["GetPullRequest"]; err != nil {
		return nil, err
	}

	for _, pr := range f.prs[project+"/"+slug] {
		if prID, ok := pr["id"].(int); ok && prID == id {
			return pr, nil
		}
	}

	return nil, nil
}

func (f *fakeAPI) ListPullRequestChanges(_ context.Context, project, slug string, _, start, _ int) (*paging.Page[map[string]any], error) {
	return f.page("ListPullRequestChanges", f.changes[project+"/"+slug], start)
}

func (f *fakeAPI) ListPullRequestActivities(_ context.Context, project, slug string, _, start, _ int) (*paging.Page[map[string]any], error) {
	return f.page("ListPullRequestActivities", f.activities[project+"/"+slug], start)
}

func (f *fakeAPI) ListPullRequestCommits(_ context.Context, project, slug string, _, start, _ int) (*paging.Page[map[string]any], error) {
	return f.page("ListPullRequestCommits", f.commits[project+"/"+slug], start)
}

func (f *fakeAPI) AddPullRequestComment(_ context.Context, _, _ string, _ int, text string, parentID *int) (map[string]any, error) {
	if err := f.errors["AddPullRequestComment"]; err != nil {
		return nil, err
	}

	f.commentText = text
	f.commentParent = parentID

	return map[string]any{"id": 99, "text": text}, nil
}

// newTestFetcher wires a fake transport into a Fetcher with an optional
// comma-separated project allow-list.
func newTestFetcher(api *fakeAPI, filter string) *Fetcher {
	cfg := &config.Config{URL: "https://bitbucket.example.com"}
	if filter != "" {
		cfg.ProjectsFilter = strings.Split(filter, ",")
	}

	return New(api, cfg, nil)
}
