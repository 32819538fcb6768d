package services

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/folio/portfolio/internal/adapters/github"
	"github.com/folio/portfolio/internal/domain/entities"
	"github.com/folio/portfolio/internal/infrastructure/logger"
	"github.com/folio/portfolio/internal/ports"
)

// SelectedProjectService is the content service for selected projects plus
// showcase image discovery.
type SelectedProjectService struct {
	*ContentService[*entities.SelectedProject]

	github        ports.GitHubClient
	probeOnCreate bool
	workers       int
}

// NewSelectedProjectService creates a new selected project service
func NewSelectedProjectService(
	repo ports.ContentRepository[*entities.SelectedProject],
	client ports.GitHubClient,
	probeOnCreate bool,
	workers int,
	logger *logger.Logger,
) *SelectedProjectService {
	if workers <= 0 {
		workers = 1
	}
	return &SelectedProjectService{
		ContentService: NewContentService("selected_project", repo, logger),
		github:         client,
		probeOnCreate:  probeOnCreate,
		workers:        workers,
	}
}

// Create stores a selected project. Without an image URL the repository is
// probed for a showcase image first.
func (s *SelectedProjectService) Create(ctx context.Context, req ports.Creator[*entities.SelectedProject]) (*entities.SelectedProject, error) {
	project := req.Entity()

	if s.probeOnCreate && s.github != nil && project.ImageURL == nil {
		if img, err := s.findImage(ctx, project); err != nil {
			s.logger.Warnw("Showcase probe failed", "name", project.Name, "error", err)
		} else if img.Found() {
			project.ImageURL = img.URL
		}
	}

	return s.create(ctx, project)
}

// RefreshShowcaseImages probes GitHub for every selected project that has no
// image yet and stores the ones found.
func (s *SelectedProjectService) RefreshShowcaseImages(ctx context.Context) (*ports.ShowcaseRefreshResult, error) {
	if s.github == nil {
		return nil, fmt.Errorf("showcase images: github client not configured")
	}

	projects, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list selected projects: %w", err)
	}

	var candidates []*entities.SelectedProject
	for _, p := range projects {
		if p.ImageURL == nil {
			candidates = append(candidates, p)
		}
	}

	var (
		mu    sync.Mutex
		found = make(map[int]string)
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for _, p := range candidates {
		p := p
		g.Go(func() error {
			img, err := s.findImage(gctx, p)
			if err != nil {
				s.logger.Warnw("Showcase probe failed", "project_id", p.ID, "error", err)
				return nil
			}
			if img.Found() {
				mu.Lock()
				found[p.ID] = *img.URL
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &ports.ShowcaseRefreshResult{
		Checked: len(candidates),
		Updated: []*entities.SelectedProject{},
	}
	for _, p := range candidates {
		url, ok := found[p.ID]
		if !ok {
			continue
		}
		updated, err := s.repo.Update(ctx, p.ID, func(stored *entities.SelectedProject) error {
			if stored.ImageURL == nil {
				stored.ImageURL = &url
			}
			return nil
		})
		if err != nil {
			s.logger.Warnw("Failed to store showcase image", "project_id", p.ID, "error", err)
			continue
		}
		result.Updated = append(result.Updated, updated)
	}

	s.logger.Infow("Showcase images refreshed", "checked", result.Checked, "updated", len(result.Updated))
	return result, nil
}

func (s *SelectedProjectService) findImage(ctx context.Context, p *entities.SelectedProject) (entities.ShowcaseImage, error) {
	owner, repo, err := github.ParseRepoURL(p.HTMLURL)
	if err != nil {
		return entities.ShowcaseImage{}, err
	}
	return s.github.FindShowcaseImage(ctx, owner, repo)
}
