package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/devaistudio/portfolio/internal/catalog"
	"github.com/devaistudio/portfolio/internal/email"
	"github.com/devaistudio/portfolio/internal/logging"
	"github.com/devaistudio/portfolio/internal/models"
	"github.com/devaistudio/portfolio/internal/payment"
	"github.com/devaistudio/portfolio/internal/wizard"
)

var ErrServiceNotFound = errors.New("service not found")

// SubmissionService turns wizard selections, customize orders and free-form
// requests into durable quote records. Persistence is the only fatal step:
// confirmation emails are best effort and their failures never reach the
// caller's result.
type SubmissionService struct {
	quotes     QuoteRepository
	proStore   ServiceRepository
	catalog    *catalog.Catalog
	pricer     *catalog.Pricer
	emailer    email.Provider
	siteName   string
	siteURL    string
	adminEmail string
	logger     *slog.Logger
}

func NewSubmissionService(
	quotes QuoteRepository,
	proStore ServiceRepository,
	cat *catalog.Catalog,
	pricer *catalog.Pricer,
	emailer email.Provider,
	siteName string,
	siteURL string,
	adminEmail string,
	logger *slog.Logger,
) *SubmissionService {
	if pricer == nil {
		pricer = catalog.NewPricer()
	}
	return &SubmissionService{
		quotes:     quotes,
		proStore:   proStore,
		catalog:    cat,
		pricer:     pricer,
		emailer:    emailer,
		siteName:   siteName,
		siteURL:    siteURL,
		adminEmail: adminEmail,
		logger:     logger,
	}
}

// SubmitQuote persists a wizard selection as a quote awaiting payment.
// The idempotency key comes from the wizard session: a retried submission
// returns the record created by the first attempt.
func (s *SubmissionService) SubmitQuote(ctx context.Context, selection wizard.Selection, idempotencyKey string) (*models.Quote, error) {
	pricing := s.pricer.QuoteTotal(s.catalog, selection.ProjectTypeID, selection.FeatureIDs, selection.Currency)

	projectLabel := selection.ProjectTypeID
	if projectType := s.catalog.ProjectType(selection.ProjectTypeID); projectType != nil {
		projectLabel = projectType.Label
	}

	quote := &models.Quote{
		ClientName:     selection.Contact.Name,
		Email:          selection.Contact.Email,
		ProjectType:    projectLabel,
		Features:       s.catalog.FeatureLabels(selection.FeatureIDs),
		Amount:         pricing.Total,
		Currency:       selection.Currency,
		Status:         models.StatusPendingPayment,
		IdempotencyKey: idempotencyKey,
	}
	if err := s.quotes.Create(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to create quote: %w", err)
	}

	s.notifyBestEffort(ctx, email.SendQuoteConfirmation, "quote_confirmation", quote)
	return quote, nil
}

// OrderInput is a customize-order submission: a pre-selected service
// package plus the option ids the client picked.
type OrderInput struct {
	ServiceID      uuid.UUID
	OptionIDs      []string
	Currency       catalog.Currency
	ClientName     string
	Email          string
	Details        string
	IdempotencyKey string
}

// SubmitOrder persists a customized order as a quote awaiting approval.
func (s *SubmissionService) SubmitOrder(ctx context.Context, input OrderInput) (*models.Quote, error) {
	service, err := s.proStore.GetByID(ctx, input.ServiceID)
	if err != nil {
		return nil, ErrServiceNotFound
	}

	options, err := s.proStore.ListOptions(ctx, input.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load service options: %w", err)
	}

	pricing := s.pricer.OrderTotal(service.BasePrice, service.DeliveryDays, options, input.OptionIDs)
	amount := pricing.TotalXAF
	if input.Currency == catalog.CurrencyEUR {
		amount = pricing.TotalEUR
	}

	quote := &models.Quote{
		ClientName:     input.ClientName,
		Email:          input.Email,
		ProjectType:    service.Title,
		Features:       catalog.SelectedOptionLabels(options, input.OptionIDs),
		Amount:         amount,
		Currency:       input.Currency,
		TotalDays:      pricing.TotalDays,
		Details:        input.Details,
		Status:         models.StatusPendingApproval,
		IdempotencyKey: input.IdempotencyKey,
	}
	if err := s.quotes.Create(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.notifyBestEffort(ctx, email.SendOrderConfirmation, "order_confirmation", quote)
	return quote, nil
}

// CustomQuoteInput is a free-form quote request outside the catalog.
type CustomQuoteInput struct {
	ClientName string
	Email      string
	Budget     string
	Deadline   string
	Details    string
}

// SubmitCustomQuote persists a free-form request for a manual quote.
func (s *SubmissionService) SubmitCustomQuote(ctx context.Context, input CustomQuoteInput) (*models.Quote, error) {
	if strings.TrimSpace(input.ClientName) == "" {
		return nil, UserError{Message: "votre nom est requis"}
	}
	if strings.TrimSpace(input.Email) == "" {
		return nil, UserError{Message: "votre adresse email est requise"}
	}
	if strings.TrimSpace(input.Details) == "" {
		return nil, UserError{Message: "décrivez votre projet pour que nous puissions établir un devis"}
	}

	quote := &models.Quote{
		ClientName:     input.ClientName,
		Email:          input.Email,
		ProjectType:    "Projet sur mesure",
		Currency:       catalog.CurrencyEUR,
		Details:        input.Details,
		Deadline:       input.Deadline,
		Budget:         input.Budget,
		Status:         models.StatusPendingQuote,
		IdempotencyKey: uuid.NewString(),
	}
	if err := s.quotes.Create(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to create quote request: %w", err)
	}

	s.notifyBestEffort(ctx, email.SendCustomQuoteAck, "custom_quote_ack", quote)
	return quote, nil
}

type sendFunc func(ctx context.Context, p email.Provider, info *email.QuoteInfo) error

// notifyBestEffort sends the client confirmation and the admin
// notification. Failures are logged and swallowed: a stored record with a
// lost email is still a successful submission.
func (s *SubmissionService) notifyBestEffort(ctx context.Context, send sendFunc, name string, quote *models.Quote) {
	logger := logging.FromContext(ctx, s.logger)

	info := &email.QuoteInfo{
		OrderID:     quote.ID.String(),
		ClientName:  quote.ClientName,
		ClientEmail: quote.Email,
		AdminEmail:  s.adminEmail,
		SiteName:    s.siteName,
		SiteURL:     s.siteURL,
		ProjectType: quote.ProjectType,
		Features:    quote.Features,
		Amount:      payment.FormatAmount(quote.Amount, quote.Currency),
		TotalDays:   quote.TotalDays,
		Deadline:    quote.Deadline,
		Budget:      quote.Budget,
		Details:     quote.Details,
	}

	if err := send(ctx, s.emailer, info); err != nil {
		logger.Warn("failed to send confirmation email",
			"template", name,
			"order_id", quote.ID,
			"error", err)
	}
	if err := email.SendAdminNewQuote(ctx, s.emailer, info); err != nil {
		logger.Warn("failed to send admin notification",
			"order_id", quote.ID,
			"error", err)
	}
}
