package github

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio/portfolio/internal/infrastructure/config"
	"github.com/folio/portfolio/internal/infrastructure/logger"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(config.GitHubConfig{
		APIURL:        srv.URL,
		RawURL:        srv.URL + "/raw",
		Token:         "secret-token",
		DefaultBranch: "main",
		Timeout:       5 * time.Second,
		ProbeTimeout:  time.Second,
	}, logger.NewNop())
}

func TestClient_ListUserRepos(t *testing.T) {
	var gotQuery, gotAuth, gotAccept string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/octocat/repos", r.URL.Path)
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": 1296269, "name": "Hello-World", "full_name": "octocat/Hello-World",
			 "html_url": "https://github.com/octocat/Hello-World", "language": "Go",
			 "stargazers_count": 80, "forks_count": 9, "updated_at": "2024-01-26T19:14:43Z",
			 "topics": ["octocat"], "description": null}
		]`))
	}))

	repos, err := client.ListUserRepos(context.Background(), "octocat")
	require.NoError(t, err)
	require.Len(t, repos, 1)

	assert.Equal(t, "sort=updated&per_page=100", gotQuery)
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, "application/vnd.github+json", gotAccept)

	repo := repos[0]
	assert.Equal(t, int64(1296269), repo.ID)
	assert.Equal(t, "Hello-World", repo.Name)
	assert.Equal(t, 80, repo.StargazersCount)
	assert.Equal(t, 9, repo.ForksCount)
	assert.Equal(t, "Go", *repo.Language)
	assert.Nil(t, repo.Description)
	assert.Equal(t, []string{"octocat"}, repo.Topics)
}

func TestClient_ListUserReposAPIError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message": "Not Found"}`))
	}))

	_, err := client.ListUserRepos(context.Background(), "ghost")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Not Found", apiErr.Message)
}

func TestClient_ListUserReposRejectsBadUsername(t *testing.T) {
	called := false
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	for _, name := range []string{"", "-leading", "has space", "a/b", "x123456789012345678901234567890123456789"} {
		_, err := client.ListUserRepos(context.Background(), name)
		assert.ErrorIs(t, err, ErrInvalidUsername, name)
	}
	assert.False(t, called)
}

func TestClient_FindShowcaseImage(t *testing.T) {
	var mu sync.Mutex
	var probed []string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		mu.Lock()
		probed = append(probed, r.URL.Path)
		mu.Unlock()
		if r.URL.Path == "/raw/octocat/site/main/showcaseimage.png" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))

	img, err := client.FindShowcaseImage(context.Background(), "octocat", "site")
	require.NoError(t, err)
	require.True(t, img.Found())
	assert.True(t, len(*img.URL) > 0)
	assert.Contains(t, *img.URL, "/raw/octocat/site/main/showcaseimage.png")
	assert.Equal(t, "png", *img.Format)
	assert.Equal(t, []string{
		"/raw/octocat/site/main/showcaseimage.jpg",
		"/raw/octocat/site/main/showcaseimage.png",
	}, probed)
}

func TestClient_FindShowcaseImageNone(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	img, err := client.FindShowcaseImage(context.Background(), "octocat", "empty")
	require.NoError(t, err)
	assert.False(t, img.Found())
	assert.Nil(t, img.Format)
}

func TestParseRepoURL(t *testing.T) {
	tests := []struct {
		raw   string
		owner string
		repo  string
		ok    bool
	}{
		{"https://github.com/octocat/Hello-World", "octocat", "Hello-World", true},
		{"https://github.com/octocat/Hello-World/", "octocat", "Hello-World", true},
		{"https://github.com/octocat/tools.git", "octocat", "tools", true},
		{"https://github.com/octocat", "", "", false},
		{"", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			owner, repo, err := ParseRepoURL(tt.raw)
			if !tt.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.owner, owner)
			assert.Equal(t, tt.repo, repo)
		})
	}
}
