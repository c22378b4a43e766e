package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devaistudio/portfolio/internal/models"
)

var ErrAlreadySubscribed = errors.New("email already subscribed")

const uniqueViolationCode = "23505"

type ContactStore struct {
	pool *pgxpool.Pool
}

func NewContactStore(pool *pgxpool.Pool) *ContactStore {
	return &ContactStore{pool: pool}
}

func (s *ContactStore) CreateMessage(ctx context.Context, message *models.ContactMessage) error {
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}

	query := `
		INSERT INTO contacts (id, name, email, subject, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err := s.pool.QueryRow(ctx, query,
		message.ID,
		message.Name,
		message.Email,
		message.Subject,
		message.Message,
	).Scan(&message.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert contact message: %w", err)
	}
	return nil
}

// SubscribeNewsletter records a newsletter signup. Subscribing an address
// twice returns ErrAlreadySubscribed.
func (s *ContactStore) SubscribeNewsletter(ctx context.Context, email string) error {
	query := `INSERT INTO newsletter_subscribers (email) VALUES ($1)`
	if _, err := s.pool.Exec(ctx, query, email); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return ErrAlreadySubscribed
		}
		return fmt.Errorf("failed to subscribe email: %w", err)
	}
	return nil
}
