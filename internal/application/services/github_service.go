package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/folio/portfolio/internal/domain/entities"
	"github.com/folio/portfolio/internal/infrastructure/logger"
	"github.com/folio/portfolio/internal/ports"
)

// GitHubService proxies repository listings through a cache
type GitHubService struct {
	client ports.GitHubClient
	cache  ports.CacheRepository
	ttl    time.Duration
	logger *logger.Logger
}

// NewGitHubService creates a new GitHub service. A zero ttl disables caching.
func NewGitHubService(client ports.GitHubClient, cache ports.CacheRepository, ttl time.Duration, logger *logger.Logger) *GitHubService {
	return &GitHubService{
		client: client,
		cache:  cache,
		ttl:    ttl,
		logger: logger.WithComponent("github_service"),
	}
}

// ListRepos returns the public repositories of username
func (s *GitHubService) ListRepos(ctx context.Context, username string) ([]entities.GitHubRepo, error) {
	key := "github:repos:" + strings.ToLower(username)

	if s.cache != nil && s.ttl > 0 {
		var cached []entities.GitHubRepo
		err := s.cache.Get(ctx, key, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, ports.ErrCacheMiss) {
			s.logger.Warnw("Cache read failed", "key", key, "error", err)
		}
	}

	repos, err := s.client.ListUserRepos(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch repositories for %s: %w", username, err)
	}

	if s.cache != nil && s.ttl > 0 {
		if err := s.cache.Set(ctx, key, repos, s.ttl); err != nil {
			s.logger.Warnw("Cache write failed", "key", key, "error", err)
		}
	}

	return repos, nil
}
