package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/devaistudio/portfolio/internal/db"
	"github.com/devaistudio/portfolio/internal/email"
	"github.com/devaistudio/portfolio/internal/logging"
	"github.com/devaistudio/portfolio/internal/models"
)

// ContactService handles the contact form and newsletter signups.
type ContactService struct {
	contacts   ContactRepository
	emailer    email.Provider
	siteName   string
	adminEmail string
	logger     *slog.Logger
}

func NewContactService(contacts ContactRepository, emailer email.Provider, siteName, adminEmail string, logger *slog.Logger) *ContactService {
	return &ContactService{
		contacts:   contacts,
		emailer:    emailer,
		siteName:   siteName,
		adminEmail: adminEmail,
		logger:     logger,
	}
}

// Submit stores a contact message and forwards it to the site owner. The
// forward is best effort.
func (s *ContactService) Submit(ctx context.Context, message *models.ContactMessage) error {
	if strings.TrimSpace(message.Name) == "" {
		return UserError{Message: "votre nom est requis"}
	}
	if strings.TrimSpace(message.Email) == "" {
		return UserError{Message: "votre adresse email est requise"}
	}
	if strings.TrimSpace(message.Message) == "" {
		return UserError{Message: "votre message est vide"}
	}

	if err := s.contacts.CreateMessage(ctx, message); err != nil {
		return fmt.Errorf("failed to store contact message: %w", err)
	}

	info := &email.ContactInfo{
		Name:       message.Name,
		Email:      message.Email,
		AdminEmail: s.adminEmail,
		SiteName:   s.siteName,
		Subject:    message.Subject,
		Message:    message.Message,
	}
	if err := email.SendContactNotification(ctx, s.emailer, info); err != nil {
		logging.FromContext(ctx, s.logger).Warn("failed to forward contact message",
			"message_id", message.ID,
			"error", err)
	}
	return nil
}

// Subscribe records a newsletter signup. A duplicate address is a user
// error, not a server one.
func (s *ContactService) Subscribe(ctx context.Context, address string) error {
	address = strings.TrimSpace(strings.ToLower(address))
	if address == "" {
		return UserError{Message: "votre adresse email est requise"}
	}

	if err := s.contacts.SubscribeNewsletter(ctx, address); err != nil {
		if errors.Is(err, db.ErrAlreadySubscribed) {
			return UserError{Message: "cette adresse est déjà inscrite à la newsletter"}
		}
		return fmt.Errorf("failed to subscribe: %w", err)
	}
	return nil
}
