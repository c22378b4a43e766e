package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/devaistudio/portfolio/internal/cache"
	"github.com/devaistudio/portfolio/internal/email"
	"github.com/devaistudio/portfolio/internal/models"
	"github.com/devaistudio/portfolio/internal/payment"
)

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrOrderNotPayable  = errors.New("order is not awaiting payment")
	ErrOrderAlreadyPaid = errors.New("order already paid")
)

// CheckoutGateway is the slice of the Lygos client the service needs.
type CheckoutGateway interface {
	CreateCheckout(ctx context.Context, req *payment.CheckoutRequest) (string, error)
}

// PaymentService initiates gateway checkouts and processes the success
// callback.
type PaymentService struct {
	quotes    QuoteRepository
	gateway   CheckoutGateway
	converter *payment.AmountConverter
	cache     cache.Provider
	emailer   email.Provider
	baseURL   string
	siteName  string
	logger    *slog.Logger
}

func NewPaymentService(
	quotes QuoteRepository,
	gateway CheckoutGateway,
	converter *payment.AmountConverter,
	cacheProvider cache.Provider,
	emailer email.Provider,
	baseURL string,
	siteName string,
	logger *slog.Logger,
) *PaymentService {
	if converter == nil {
		converter = payment.NewAmountConverter()
	}
	return &PaymentService{
		quotes:    quotes,
		gateway:   gateway,
		converter: converter,
		cache:     cacheProvider,
		emailer:   emailer,
		baseURL:   baseURL,
		siteName:  siteName,
		logger:    logger,
	}
}

// Initiate creates a gateway checkout session for a quote awaiting payment
// and returns the redirect URL. The order record is not modified: it stays
// pending_payment until the success callback arrives, so a failed or
// abandoned checkout can simply be retried.
func (s *PaymentService) Initiate(ctx context.Context, orderID uuid.UUID) (string, error) {
	quote, err := s.quotes.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrOrderNotFound
		}
		return "", fmt.Errorf("failed to load order: %w", err)
	}

	switch quote.Status {
	case models.StatusPendingPayment:
	case models.StatusPaid:
		return "", ErrOrderAlreadyPaid
	default:
		return "", ErrOrderNotPayable
	}

	amount, err := s.converter.GatewayAmount(quote.Amount, quote.Currency)
	if err != nil {
		return "", fmt.Errorf("failed to convert amount: %w", err)
	}

	id := quote.ID.String()
	link, err := s.gateway.CreateCheckout(ctx, &payment.CheckoutRequest{
		Amount:     amount,
		Message:    fmt.Sprintf("Commande %s - %s", id, quote.Email),
		SuccessURL: fmt.Sprintf("%s/payments/success?order_id=%s", s.baseURL, id),
		FailureURL: fmt.Sprintf("%s/payments/failure?order_id=%s", s.baseURL, id),
		OrderID:    id,
	})
	if err != nil {
		return "", err
	}
	return link, nil
}
