package contacts

import (
	"context"

	"github.com/google/uuid"
	"github.com/guardtag/guardtag-backend/pkg/db/models"
	"github.com/guardtag/guardtag-backend/pkg/errors"
	"github.com/guardtag/guardtag-backend/pkg/logger"
)

// CreateContactInput is a validated contact-form submission.
type CreateContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// Service stores support messages sent from the storefront.
type Service interface {
	Create(ctx context.Context, input CreateContactInput) (*models.Contact, error)
	List(ctx context.Context) ([]models.Contact, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
}

func NewService(repo Repository, logg *logger.Logger) Service {
	return &service{repo: repo, logg: logg}
}

func (s *service) Create(ctx context.Context, input CreateContactInput) (*models.Contact, error) {
	contact := &models.Contact{
		ID:      uuid.New(),
		Name:    input.Name,
		Email:   input.Email,
		Subject: input.Subject,
		Message: input.Message,
	}
	if err := s.repo.Create(ctx, contact); err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "failed to store contact message")
	}
	s.logg.Info(s.logg.WithField(ctx, "contact_id", contact.ID.String()), "contact message received")
	return contact, nil
}

func (s *service) List(ctx context.Context) ([]models.Contact, error) {
	contacts, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "failed to list contact messages")
	}
	return contacts, nil
}
