package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/devaistudio/portfolio/internal/catalog"
	"github.com/devaistudio/portfolio/internal/db"
	"github.com/devaistudio/portfolio/internal/email"
	"github.com/devaistudio/portfolio/internal/models"
	"github.com/devaistudio/portfolio/internal/payment"
)

// fakeQuoteRepo mirrors the store's idempotency and transition semantics
// in memory.
type fakeQuoteRepo struct {
	mu        sync.Mutex
	quotes    map[uuid.UUID]*models.Quote
	createErr error
	markCalls int
}

func newFakeQuoteRepo() *fakeQuoteRepo {
	return &fakeQuoteRepo{quotes: map[uuid.UUID]*models.Quote{}}
}

func (f *fakeQuoteRepo) Create(ctx context.Context, quote *models.Quote) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.quotes {
		if existing.IdempotencyKey == quote.IdempotencyKey {
			*quote = *existing
			return nil
		}
	}
	if quote.ID == uuid.Nil {
		quote.ID = uuid.New()
	}
	quote.CreatedAt = time.Now()
	stored := *quote
	f.quotes[quote.ID] = &stored
	return nil
}

func (f *fakeQuoteRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	quote, ok := f.quotes[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *quote
	return &copied, nil
}

func (f *fakeQuoteRepo) MarkPaid(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.markCalls++
	quote, ok := f.quotes[id]
	if !ok {
		return pgx.ErrNoRows
	}
	switch quote.Status {
	case models.StatusPendingPayment:
		quote.Status = models.StatusPaid
		quote.PaidAt = time.Now()
		return nil
	case models.StatusPaid:
		return nil
	default:
		return db.ErrInvalidStatusTransition
	}
}

type fakeServiceRepo struct {
	services map[uuid.UUID]*models.ProService
	options  map[uuid.UUID][]catalog.ServiceOption
}

func newFakeServiceRepo() *fakeServiceRepo {
	return &fakeServiceRepo{
		services: map[uuid.UUID]*models.ProService{},
		options:  map[uuid.UUID][]catalog.ServiceOption{},
	}
}

func (f *fakeServiceRepo) List(ctx context.Context) ([]*models.ProService, error) {
	list := make([]*models.ProService, 0, len(f.services))
	for _, service := range f.services {
		list = append(list, service)
	}
	return list, nil
}

func (f *fakeServiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ProService, error) {
	service, ok := f.services[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return service, nil
}

func (f *fakeServiceRepo) ListOptions(ctx context.Context, serviceID uuid.UUID) ([]catalog.ServiceOption, error) {
	return f.options[serviceID], nil
}

type fakeContactRepo struct {
	messages   []*models.ContactMessage
	subscribed map[string]bool
}

func newFakeContactRepo() *fakeContactRepo {
	return &fakeContactRepo{subscribed: map[string]bool{}}
}

func (f *fakeContactRepo) CreateMessage(ctx context.Context, message *models.ContactMessage) error {
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	f.messages = append(f.messages, message)
	return nil
}

func (f *fakeContactRepo) SubscribeNewsletter(ctx context.Context, address string) error {
	if f.subscribed[address] {
		return db.ErrAlreadySubscribed
	}
	f.subscribed[address] = true
	return nil
}

// fakeEmailer records every send; fail makes all sends error.
type fakeEmailer struct {
	mu   sync.Mutex
	sent []*email.Email
	fail bool
}

func (f *fakeEmailer) SendEmail(ctx context.Context, mail *email.Email) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fail {
		return errors.New("smtp down")
	}
	f.sent = append(f.sent, mail)
	return nil
}

func (f *fakeEmailer) ValidateAPIKey(ctx context.Context) error { return nil }

func (f *fakeEmailer) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

type fakeGateway struct {
	link    string
	err     error
	lastReq *payment.CheckoutRequest
}

func (f *fakeGateway) CreateCheckout(ctx context.Context, req *payment.CheckoutRequest) (string, error) {
	f.lastReq = req
	if f.err != nil {
		return "", f.err
	}
	return f.link, nil
}

func defaultTestCatalog() *catalog.Catalog {
	cat, err := catalog.NewParser().Load("")
	if err != nil {
		panic(err)
	}
	return cat
}
