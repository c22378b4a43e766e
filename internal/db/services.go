package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devaistudio/portfolio/internal/catalog"
	"github.com/devaistudio/portfolio/internal/models"
)

// ProServiceStore reads the productized services and their per-service
// options backing the customize-order flow.
type ProServiceStore struct {
	pool *pgxpool.Pool
}

func NewProServiceStore(pool *pgxpool.Pool) *ProServiceStore {
	return &ProServiceStore{pool: pool}
}

func (s *ProServiceStore) List(ctx context.Context) ([]*models.ProService, error) {
	query := `
		SELECT id, title, description, image_url, base_price_eur, base_price_xaf, delivery_days
		FROM pro_services
		ORDER BY base_price_eur ASC
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pro services: %w", err)
	}
	defer rows.Close()

	var services []*models.ProService
	for rows.Next() {
		service, err := scanProService(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, service)
	}
	return services, rows.Err()
}

func (s *ProServiceStore) GetByID(ctx context.Context, id uuid.UUID) (*models.ProService, error) {
	query := `
		SELECT id, title, description, image_url, base_price_eur, base_price_xaf, delivery_days
		FROM pro_services
		WHERE id = $1
	`
	row := s.pool.QueryRow(ctx, query, id)
	return scanProService(row)
}

// ListOptions returns the active options for a service.
func (s *ProServiceStore) ListOptions(ctx context.Context, serviceID uuid.UUID) ([]catalog.ServiceOption, error) {
	query := `
		SELECT id, label, description, price_eur, price_xaf, extra_days
		FROM pro_service_options
		WHERE service_id = $1 AND is_active = TRUE
		ORDER BY price_eur ASC
	`
	rows, err := s.pool.Query(ctx, query, serviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list service options: %w", err)
	}
	defer rows.Close()

	var options []catalog.ServiceOption
	for rows.Next() {
		var option catalog.ServiceOption
		var id uuid.UUID
		if err := rows.Scan(&id, &option.Label, &option.Description, &option.Price.EUR, &option.Price.XAF, &option.ExtraDays); err != nil {
			return nil, err
		}
		option.ID = id.String()
		options = append(options, option)
	}
	return options, rows.Err()
}

func scanProService(row pgx.Row) (*models.ProService, error) {
	var service models.ProService
	err := row.Scan(
		&service.ID,
		&service.Title,
		&service.Description,
		&service.ImageURL,
		&service.BasePrice.EUR,
		&service.BasePrice.XAF,
		&service.DeliveryDays,
	)
	if err != nil {
		return nil, err
	}
	return &service, nil
}
