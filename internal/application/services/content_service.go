package services

import (
	"context"
	"fmt"

	"github.com/folio/portfolio/internal/domain/entities"
	"github.com/folio/portfolio/internal/infrastructure/logger"
	"github.com/folio/portfolio/internal/ports"
)

// ContentService handles the admin-managed content collections. One instance
// serves one collection.
type ContentService[T entities.Record] struct {
	repo   ports.ContentRepository[T]
	kind   string
	logger *logger.Logger
}

// NewContentService creates a content service for repo. kind names the
// record type in logs and errors.
func NewContentService[T entities.Record](kind string, repo ports.ContentRepository[T], logger *logger.Logger) *ContentService[T] {
	return &ContentService[T]{
		repo:   repo,
		kind:   kind,
		logger: logger.WithComponent(kind + "_service"),
	}
}

// List returns every record in display order
func (s *ContentService[T]) List(ctx context.Context) ([]T, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.kind, err)
	}
	return records, nil
}

// Featured returns the featured records in display order
func (s *ContentService[T]) Featured(ctx context.Context) ([]T, error) {
	records, err := s.repo.Featured(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list featured %s: %w", s.kind, err)
	}
	return records, nil
}

// Get retrieves a record by ID
func (s *ContentService[T]) Get(ctx context.Context, id int) (T, error) {
	record, err := s.repo.Get(ctx, id)
	if err != nil {
		return record, fmt.Errorf("%s %d: %w", s.kind, id, err)
	}
	return record, nil
}

// Create stores a new record built from req
func (s *ContentService[T]) Create(ctx context.Context, req ports.Creator[T]) (T, error) {
	return s.create(ctx, req.Entity())
}

func (s *ContentService[T]) create(ctx context.Context, record T) (T, error) {
	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return created, fmt.Errorf("failed to create %s: %w", s.kind, err)
	}

	s.logger.Infow("Record created", "id", created.GetID())
	return created, nil
}

// Update applies the fields present in req to the record
func (s *ContentService[T]) Update(ctx context.Context, id int, req ports.Patcher[T]) (T, error) {
	updated, err := s.repo.Update(ctx, id, func(record T) error {
		req.Apply(record)
		return nil
	})
	if err != nil {
		return updated, fmt.Errorf("failed to update %s %d: %w", s.kind, id, err)
	}

	s.logger.Infow("Record updated", "id", id)
	return updated, nil
}

// Delete removes a record
func (s *ContentService[T]) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete %s %d: %w", s.kind, id, err)
	}

	s.logger.Infow("Record deleted", "id", id)
	return nil
}

// Reorder makes ids the new display order. Records missing from ids keep
// their relative order after the listed ones.
func (s *ContentService[T]) Reorder(ctx context.Context, ids []int) ([]T, error) {
	records, err := s.repo.Reorder(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to reorder %s: %w", s.kind, err)
	}

	s.logger.Infow("Records reordered", "count", len(ids))
	return records, nil
}

// Move puts the record with the given id at position in the current display
// order, shifting the others.
func (s *ContentService[T]) Move(ctx context.Context, id, position int) ([]T, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.kind, err)
	}

	ids := make([]int, 0, len(records))
	found := false
	for _, r := range records {
		if r.GetID() == id {
			found = true
			continue
		}
		ids = append(ids, r.GetID())
	}
	if !found {
		return nil, fmt.Errorf("%s %d: %w", s.kind, id, ports.ErrNotFound)
	}

	if position > len(ids) {
		position = len(ids)
	}
	if position < 0 {
		position = 0
	}
	ids = append(ids[:position], append([]int{id}, ids[position:]...)...)

	return s.Reorder(ctx, ids)
}
