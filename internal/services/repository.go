package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/devaistudio/portfolio/internal/catalog"
	"github.com/devaistudio/portfolio/internal/models"
)

// QuoteRepository is the slice of the quote store the services need.
type QuoteRepository interface {
	Create(ctx context.Context, quote *models.Quote) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Quote, error)
	MarkPaid(ctx context.Context, id uuid.UUID) error
}

// ServiceRepository provides the pro-service packages and their options.
type ServiceRepository interface {
	List(ctx context.Context) ([]*models.ProService, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.ProService, error)
	ListOptions(ctx context.Context, serviceID uuid.UUID) ([]catalog.ServiceOption, error)
}

// ContactRepository persists contact messages and newsletter signups.
type ContactRepository interface {
	CreateMessage(ctx context.Context, message *models.ContactMessage) error
	SubscribeNewsletter(ctx context.Context, email string) error
}

// UserError carries a message safe to show to the client.
type UserError struct {
	Message string
}

func (e UserError) Error() string {
	return e.Message
}
