package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/folio/portfolio/internal/domain/entities"
	"github.com/folio/portfolio/internal/infrastructure/logger"
	"github.com/folio/portfolio/internal/ports"
)

const contactInfoID = 1

// ContactInfoService handles the public contact details
type ContactInfoService struct {
	repo   ports.ContactInfoRepository
	logger *logger.Logger
	now    func() time.Time
}

// NewContactInfoService creates a new contact info service
func NewContactInfoService(repo ports.ContactInfoRepository, logger *logger.Logger) *ContactInfoService {
	return &ContactInfoService{
		repo:   repo,
		logger: logger.WithComponent("contact_info_service"),
		now:    time.Now,
	}
}

// Get returns the contact details
func (s *ContactInfoService) Get(ctx context.Context) (*entities.ContactInfo, error) {
	info, err := s.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("contact info: %w", err)
	}
	return info, nil
}

// Create replaces the contact details
func (s *ContactInfoService) Create(ctx context.Context, req ports.CreateContactInfoRequest) (*entities.ContactInfo, error) {
	info := &entities.ContactInfo{
		ID:          contactInfoID,
		Email:       strings.TrimSpace(req.Email),
		LinkedinURL: normalize(req.LinkedinURL),
		GithubURL:   normalize(req.GithubURL),
		PhoneNumber: normalize(req.PhoneNumber),
		Location:    normalize(req.Location),
		CreatedAt:   s.now().UTC(),
	}

	if err := s.repo.Save(ctx, info); err != nil {
		return nil, fmt.Errorf("failed to save contact info: %w", err)
	}

	s.logger.Infow("Contact info replaced")
	return info, nil
}

// Update applies the fields present in req. id must be the stored record's id.
func (s *ContactInfoService) Update(ctx context.Context, id int, req ports.UpdateContactInfoRequest) (*entities.ContactInfo, error) {
	info, err := s.repo.Update(ctx, func(info *entities.ContactInfo) error {
		if info.ID != id {
			return ports.ErrNotFound
		}
		req.Apply(info)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update contact info %d: %w", id, err)
	}

	s.logger.Infow("Contact info updated")
	return info, nil
}

func normalize(p *string) *string {
	if p == nil {
		return nil
	}
	return entities.StringPtr(strings.TrimSpace(*p))
}
