package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/folio/portfolio/internal/domain/entities"
	"github.com/folio/portfolio/internal/infrastructure/logger"
	"github.com/folio/portfolio/internal/ports"
)

// ContactService handles messages sent through the contact form
type ContactService struct {
	repo   ports.ContentRepository[*entities.ContactMessage]
	logger *logger.Logger
}

// NewContactService creates a new contact service
func NewContactService(repo ports.ContentRepository[*entities.ContactMessage], logger *logger.Logger) *ContactService {
	return &ContactService{
		repo:   repo,
		logger: logger.WithComponent("contact_service"),
	}
}

// Submit stores a contact message
func (s *ContactService) Submit(ctx context.Context, req ports.CreateContactMessageRequest) (*entities.ContactMessage, error) {
	msg, err := s.repo.Create(ctx, &entities.ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Subject: strings.TrimSpace(req.Subject),
		Message: req.Message,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save contact message: %w", err)
	}

	s.logger.Infow("Contact message received",
		"message_id", msg.ID,
		"name", msg.Name,
		"email", msg.Email,
		"subject", msg.Subject,
	)

	return msg, nil
}

// List returns every stored message
func (s *ContactService) List(ctx context.Context) ([]*entities.ContactMessage, error) {
	msgs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	return msgs, nil
}

// Delete removes a message
func (s *ContactService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete contact message %d: %w", id, err)
	}
	return nil
}
