package bitbucket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ryclarke/stash-mcp/config"
)

// newTestClient creates a Client pointed at the given test server using
// personal access token auth.
func newTestClient(server *httptest.Server) *Client {
	return New(&config.Config{
		URL:           server.URL,
		AuthType:      config.AuthTypePAT,
		PersonalToken: "test-token",
		SSLVerify:     true,
	})
}

func TestAuthorizationHeaderPAT(t *testing.T) {
	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{"key": "PROJ"})
	}))
	defer server.Close()

	if _, err := newTestClient(server).GetProject(context.Background(), "PROJ"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if gotAuth != "Bearer test-token" {
		t.Errorf("Expected bearer token header, got %q", gotAuth)
	}
}

func TestAuthorizationHeaderBasic(t *testing.T) {
	var gotUser, gotPass string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, _ = r.BasicAuth()
		json.NewEncoder(w).Encode(map[string]any{"key": "PROJ"})
	}))
	defer server.Close()

	client := New(&config.Config{
		URL:      server.URL,
		AuthType: config.AuthTypeBasic,
		Username: "jdoe",
		APIToken: "secret",
	})

	if _, err := client.GetProject(context.Background(), "PROJ"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if gotUser != "jdoe" || gotPass != "secret" {
		t.Errorf("Expected basic auth jdoe/secret, got %s/%s", gotUser, gotPass)
	}
}

func TestListProjectsPagination(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/api/1.0/projects" {
			t.Errorf("Unexpected path %q", r.URL.Path)
		}

		if r.URL.Query().Get("start") != "5" || r.URL.Query().Get("limit") != "10" {
			t.Errorf("Unexpected pagination query %q", r.URL.RawQuery)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"values":     []any{map[string]any{"key": "PROJ"}},
			"isLastPage": true,
		})
	}))
	defer server.Close()

	page, err := newTestClient(server).ListProjects(context.Background(), 5, 10)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(page.Values) != 1 || page.Values[0]["key"] != "PROJ" {
		t.Errorf("Expected one raw project value, got %v", page.Values)
	}

	if !page.IsLastPage {
		t.Error("Expected last page marker")
	}
}

func TestGetProjectAbsent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	project, err := newTestClient(server).GetProject(context.Background(), "NOPE")
	if err != nil {
		t.Fatalf("Expected no error for absent project, got %v", err)
	}

	if project != nil {
		t.Errorf("Expected nil payload for absent project, got %v", project)
	}
}

func TestProjectExists(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   bool
	}{
		{name: "Found", status: http.StatusOK, want: true},
		{name: "NotFound", status: http.StatusNotFound, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte("{}"))
			}))
			defer server.Close()

			exists, err := newTestClient(server).ProjectExists(context.Background(), "PROJ")
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}

			if exists != tc.want {
				t.Errorf("Expected exists=%v, got %v", tc.want, exists)
			}
		})
	}
}

func TestExistsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	if _, err := newTestClient(server).ProjectExists(context.Background(), "PROJ"); err == nil {
		t.Fatal("Expected an error for a 500 response")
	}
}

func TestServerErrorIncludesContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream broke"))
	}))
	defer server.Close()

	_, err := newTestClient(server).GetProject(context.Background(), "PROJ")
	if err == nil {
		t.Fatal("Expected an error for a 502 response")
	}
}
