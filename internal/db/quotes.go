package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devaistudio/portfolio/internal/catalog"
	"github.com/devaistudio/portfolio/internal/models"
)

var ErrInvalidStatusTransition = errors.New("invalid quote status transition")

type QuoteStore struct {
	pool *pgxpool.Pool
}

func NewQuoteStore(pool *pgxpool.Pool) *QuoteStore {
	return &QuoteStore{pool: pool}
}

const quoteColumns = `id, client_name, email, project_type, features, amount, currency, total_days, details, deadline, budget, status, idempotency_key, created_at, paid_at`

// Create inserts the quote record. The idempotency key makes retried
// submissions safe: a duplicate insert returns the already-created record
// instead of a second row.
func (s *QuoteStore) Create(ctx context.Context, quote *models.Quote) error {
	if quote.ID == uuid.Nil {
		quote.ID = uuid.New()
	}

	query := `
		INSERT INTO quotes (id, client_name, email, project_type, features, amount, currency, total_days, details, deadline, budget, status, idempotency_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (idempotency_key) DO NOTHING
		RETURNING id, created_at
	`
	err := s.pool.QueryRow(ctx, query,
		quote.ID,
		quote.ClientName,
		quote.Email,
		quote.ProjectType,
		quote.Features,
		quote.Amount,
		string(quote.Currency),
		quote.TotalDays,
		quote.Details,
		quote.Deadline,
		quote.Budget,
		string(quote.Status),
		quote.IdempotencyKey,
	).Scan(&quote.ID, &quote.CreatedAt)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("failed to insert quote: %w", err)
	}

	// Conflict on the idempotency key: a previous attempt already created
	// this record. Return it unchanged.
	existing, err := s.getBy(ctx, "idempotency_key = $1", quote.IdempotencyKey)
	if err != nil {
		return fmt.Errorf("failed to load quote for idempotency key: %w", err)
	}
	*quote = *existing
	return nil
}

func (s *QuoteStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	return s.getBy(ctx, "id = $1", id)
}

// MarkPaid transitions the quote to paid. The operation is idempotent:
// marking an already-paid quote keeps its original paid_at and reports
// success. Any other status is an invalid transition.
func (s *QuoteStore) MarkPaid(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE quotes
		SET status = $1, paid_at = COALESCE(paid_at, NOW())
		WHERE id = $2 AND status IN ('pending_payment', 'paid')
	`
	cmdTag, err := s.pool.Exec(ctx, query, models.StatusPaid, id)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		// Distinguish an unknown id from a bad transition.
		var status string
		if scanErr := s.pool.QueryRow(ctx, `SELECT status FROM quotes WHERE id = $1`, id).Scan(&status); scanErr != nil {
			return scanErr
		}
		return fmt.Errorf("%w: expected pending_payment/paid, got %s", ErrInvalidStatusTransition, status)
	}
	return nil
}

func (s *QuoteStore) getBy(ctx context.Context, where string, arg any) (*models.Quote, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE `+where, arg)

	var quote models.Quote
	var currency string
	var status string
	var paidAt pgtype.Timestamptz
	err := row.Scan(
		&quote.ID,
		&quote.ClientName,
		&quote.Email,
		&quote.ProjectType,
		&quote.Features,
		&quote.Amount,
		&currency,
		&quote.TotalDays,
		&quote.Details,
		&quote.Deadline,
		&quote.Budget,
		&status,
		&quote.IdempotencyKey,
		&quote.CreatedAt,
		&paidAt,
	)
	if err != nil {
		return nil, err
	}

	quote.Currency = catalog.Currency(currency)
	quote.Status = models.QuoteStatus(status)
	if paidAt.Valid {
		quote.PaidAt = paidAt.Time
	}
	return &quote, nil
}
