package models

import "testing"

func TestNormalizeRepositoryDefaults(t *testing.T) {
	repo := NormalizeRepository(map[string]any{})

	if repo.ScmID != "git" {
		t.Errorf("Expected scm 'git', got %q", repo.ScmID)
	}

	if repo.State != "AVAILABLE" {
		t.Errorf("Expected state 'AVAILABLE', got %q", repo.State)
	}

	if !repo.Forkable {
		t.Error("Expected forkable to default to true")
	}

	if repo.Project != nil {
		t.Error("Expected no project to be synthesized for an absent payload")
	}
}

func TestNormalizeRepositoryNestedProject(t *testing.T) {
	repo := NormalizeRepository(map[string]any{
		"slug": "my-repo",
		"name": "My Repo",
		"project": map[string]any{
			"key":  "PROJ",
			"name": "Project One",
		},
	})

	if repo.Project == nil {
		t.Fatal("Expected nested project to be normalized")
	}

	if repo.Project.Key != "PROJ" {
		t.Errorf("Expected project key 'PROJ', got %q", repo.Project.Key)
	}

	simplified := repo.Simplified()
	project, ok := simplified["project"].(map[string]any)
	if !ok {
		t.Fatalf("Expected project in simplified view, got %v", simplified["project"])
	}

	if project["key"] != "PROJ" {
		t.Errorf("Expected simplified project key 'PROJ', got %v", project["key"])
	}
}

func TestNormalizeRepositoryEmptyNestedProject(t *testing.T) {
	// An empty project object is still a project - it normalizes to
	// defaults rather than being treated as absent.
	repo := NormalizeRepository(map[string]any{
		"project": map[string]any{},
	})

	if repo.Project == nil {
		t.Fatal("Expected empty nested project to normalize to defaults")
	}

	if repo.Project.Name != Unknown {
		t.Errorf("Expected default project name %q, got %q", Unknown, repo.Project.Name)
	}
}

func TestRepositorySimplifiedCloneURLs(t *testing.T) {
	repo := NormalizeRepository(map[string]any{
		"slug": "my-repo",
		"links": map[string]any{
			"clone": []any{
				map[string]any{"href": "ssh://git@bb/proj/my-repo.git", "name": "ssh"},
				map[string]any{"href": "https://bb/scm/proj/my-repo.git", "name": "http"},
			},
			"self": []any{map[string]any{"href": "https://bb/projects/PROJ/repos/my-repo"}},
		},
	})

	simplified := repo.Simplified()

	urls, ok := simplified["clone_urls"].(map[string]any)
	if !ok {
		t.Fatalf("Expected clone_urls in simplified view, got %v", simplified["clone_urls"])
	}

	if urls["ssh"] != "ssh://git@bb/proj/my-repo.git" {
		t.Errorf("Expected ssh clone URL, got %v", urls["ssh"])
	}

	if simplified["url"] != "https://bb/projects/PROJ/repos/my-repo" {
		t.Errorf("Expected self URL, got %v", simplified["url"])
	}
}

func TestNormalizeBranch(t *testing.T) {
	tests := []struct {
		name       string
		data       map[string]any
		wantID     string
		wantCommit string
	}{
		{
			name:   "Defaults",
			data:   map[string]any{},
			wantID: "",
		},
		{
			name: "WithCommit",
			data: map[string]any{
				"id":           "refs/heads/main",
				"displayId":    "main",
				"latestCommit": "abcdef1234567890",
				"isDefault":    true,
			},
			wantID:     "refs/heads/main",
			wantCommit: "abcdef1234567890",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			branch := NormalizeBranch(tc.data)

			if branch.ID != tc.wantID {
				t.Errorf("Expected id %q, got %q", tc.wantID, branch.ID)
			}

			if branch.LatestCommit != tc.wantCommit {
				t.Errorf("Expected latest commit %q, got %q", tc.wantCommit, branch.LatestCommit)
			}

			if branch.Type != "BRANCH" {
				t.Errorf("Expected type 'BRANCH', got %q", branch.Type)
			}
		})
	}
}

func TestBranchSimplifiedOmitsMissingCommit(t *testing.T) {
	simplified := NormalizeBranch(map[string]any{"displayId": "develop"}).Simplified()

	if _, ok := simplified["latest_commit"]; ok {
		t.Errorf("Expected latest_commit to be omitted, got %v", simplified["latest_commit"])
	}

	if simplified["name"] != "develop" {
		t.Errorf("Expected name 'develop', got %v", simplified["name"])
	}
}
