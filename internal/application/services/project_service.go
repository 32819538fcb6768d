package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/folio/portfolio/internal/domain/entities"
	"github.com/folio/portfolio/internal/infrastructure/logger"
	"github.com/folio/portfolio/internal/ports"
)

// ProjectService handles GitHub-linked projects and their media
type ProjectService struct {
	repo   ports.ContentRepository[*entities.Project]
	media  ports.MediaStore
	logger *logger.Logger
}

// NewProjectService creates a new project service
func NewProjectService(repo ports.ContentRepository[*entities.Project], media ports.MediaStore, logger *logger.Logger) *ProjectService {
	return &ProjectService{
		repo:   repo,
		media:  media,
		logger: logger.WithComponent("project_service"),
	}
}

// List returns every project
func (s *ProjectService) List(ctx context.Context) ([]*entities.Project, error) {
	projects, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// Upsert updates the project with the request's GitHub id, or creates it
func (s *ProjectService) Upsert(ctx context.Context, req ports.UpsertProjectRequest) (*entities.Project, error) {
	projects, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	for _, p := range projects {
		if p.GithubID != req.GithubID {
			continue
		}
		updated, err := s.repo.Update(ctx, p.ID, func(existing *entities.Project) error {
			req.Apply(existing)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to update project %d: %w", p.ID, err)
		}
		s.logger.Infow("Project updated", "project_id", updated.ID, "github_id", updated.GithubID)
		return updated, nil
	}

	created, err := s.repo.Create(ctx, req.Entity())
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.logger.Infow("Project created", "project_id", created.ID, "github_id", created.GithubID)
	return created, nil
}

// AttachMedia stores an uploaded image or video and links it to the project
func (s *ProjectService) AttachMedia(ctx context.Context, id int, upload ports.MediaUpload) (*entities.Project, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return nil, fmt.Errorf("project %d: %w", id, err)
	}

	url, err := s.media.Save(ctx, upload.Filename, upload.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	isImage := strings.HasPrefix(upload.ContentType, "image/")
	updated, err := s.repo.Update(ctx, id, func(p *entities.Project) error {
		if isImage {
			p.ImageURL = &url
		} else {
			p.VideoURL = &url
		}
		return nil
	})
	if err != nil {
		if rmErr := s.media.Remove(ctx, url); rmErr != nil {
			s.logger.Warnw("Failed to remove orphaned upload", "url", url, "error", rmErr)
		}
		return nil, fmt.Errorf("failed to update project %d: %w", id, err)
	}

	s.logger.Infow("Project media uploaded", "project_id", id, "url", url, "image", isImage)
	return updated, nil
}
