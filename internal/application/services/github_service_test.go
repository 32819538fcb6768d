package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio/portfolio/internal/adapters/repository"
	"github.com/folio/portfolio/internal/domain/entities"
	"github.com/folio/portfolio/internal/infrastructure/logger"
)

func TestGitHubService_CachesRepos(t *testing.T) {
	gh := &fakeGitHub{repos: []entities.GitHubRepo{{ID: 1, Name: "site"}}}
	svc := NewGitHubService(gh, repository.NewMemoryCache(), time.Minute, logger.NewNop())

	first, err := svc.ListRepos(bg, "Octocat")
	require.NoError(t, err)
	second, err := svc.ListRepos(bg, "octocat")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, gh.calls)
}

func TestGitHubService_NoCache(t *testing.T) {
	gh := &fakeGitHub{repos: []entities.GitHubRepo{{ID: 1, Name: "site"}}}
	svc := NewGitHubService(gh, repository.NewMemoryCache(), 0, logger.NewNop())

	_, err := svc.ListRepos(bg, "octocat")
	require.NoError(t, err)
	_, err = svc.ListRepos(bg, "octocat")
	require.NoError(t, err)
	assert.Equal(t, 2, gh.calls)
}

func TestGitHubService_ErrorsAreNotCached(t *testing.T) {
	boom := errors.New("rate limited")
	gh := &fakeGitHub{err: boom}
	svc := NewGitHubService(gh, repository.NewMemoryCache(), time.Minute, logger.NewNop())

	_, err := svc.ListRepos(bg, "octocat")
	assert.ErrorIs(t, err, boom)

	gh.err = nil
	gh.repos = []entities.GitHubRepo{{ID: 2}}
	repos, err := svc.ListRepos(bg, "octocat")
	require.NoError(t, err)
	assert.Len(t, repos, 1)
}
