package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/devaistudio/portfolio/internal/cache"
	"github.com/devaistudio/portfolio/internal/db"
	"github.com/devaistudio/portfolio/internal/email"
	"github.com/devaistudio/portfolio/internal/logging"
	"github.com/devaistudio/portfolio/internal/payment"
)

const callbackMarkerTTL = 24 * time.Hour

// CallbackResult tells the success page what to show.
type CallbackResult struct {
	OrderID    uuid.UUID
	ClientName string
	Amount     string
}

// HandleSuccess processes the gateway's success redirect. The operation is
// idempotent: the status update tolerates an already-paid order, and the
// cache marker keeps the payment-received email from being sent twice when
// the client reloads the success page.
func (s *PaymentService) HandleSuccess(ctx context.Context, orderIDParam string) (*CallbackResult, error) {
	logger := logging.FromContext(ctx, s.logger)

	orderID, err := uuid.Parse(orderIDParam)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	if err := s.quotes.MarkPaid(ctx, orderID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		if errors.Is(err, db.ErrInvalidStatusTransition) {
			return nil, ErrOrderNotPayable
		}
		return nil, fmt.Errorf("failed to mark order paid: %w", err)
	}

	quote, err := s.quotes.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load paid order: %w", err)
	}

	result := &CallbackResult{
		OrderID:    quote.ID,
		ClientName: quote.ClientName,
		Amount:     payment.FormatAmount(quote.Amount, quote.Currency),
	}

	if s.firstCallback(ctx, orderID) {
		info := &email.QuoteInfo{
			OrderID:     quote.ID.String(),
			ClientName:  quote.ClientName,
			ClientEmail: quote.Email,
			SiteName:    s.siteName,
			SiteURL:     s.baseURL,
			ProjectType: quote.ProjectType,
			Features:    quote.Features,
			Amount:      result.Amount,
		}
		if err := email.SendPaymentReceived(ctx, s.emailer, info); err != nil {
			logger.Warn("failed to send payment-received email",
				"order_id", orderID,
				"error", err)
		}
	}

	return result, nil
}

// firstCallback reports whether this is the first success callback seen
// for the order, recording a marker as a side effect. Cache failures count
// as first: a duplicate email beats a missing one.
func (s *PaymentService) firstCallback(ctx context.Context, orderID uuid.UUID) bool {
	if s.cache == nil {
		return true
	}

	key := cache.PaymentCallbackKey(orderID.String())
	if _, err := s.cache.Get(ctx, key); err == nil {
		return false
	}

	if err := s.cache.Set(ctx, key, "1", callbackMarkerTTL); err != nil {
		logging.FromContext(ctx, s.logger).Warn("failed to record callback marker",
			"order_id", orderID,
			"error", err)
	}
	return true
}
