package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/devaistudio/portfolio/internal/catalog"
)

type QuoteStatus string

const (
	StatusPendingPayment  QuoteStatus = "pending_payment"
	StatusPendingQuote    QuoteStatus = "pending_quote"
	StatusPendingApproval QuoteStatus = "pending_approval"
	StatusPaid            QuoteStatus = "paid"
)

// Quote is the durable record behind every flow: wizard quotes awaiting
// payment, customize orders awaiting approval and free-text quote requests.
// Amount is stored in the currency the client selected; Currency records
// which one. Conversion happens only at the payment-gateway boundary.
type Quote struct {
	ID             uuid.UUID        `json:"id"`
	ClientName     string           `json:"client_name"`
	Email          string           `json:"email"`
	ProjectType    string           `json:"project_type"`
	Features       []string         `json:"features"`
	Amount         int              `json:"amount"`
	Currency       catalog.Currency `json:"currency"`
	TotalDays      int              `json:"total_days"`
	Details        string           `json:"details"`
	Deadline       string           `json:"deadline"`
	Budget         string           `json:"budget"`
	Status         QuoteStatus      `json:"status"`
	IdempotencyKey string           `json:"idempotency_key"`
	CreatedAt      time.Time        `json:"created_at"`
	PaidAt         time.Time        `json:"paid_at"`
}

// ProService is a productized service package in the customize-order flow.
type ProService struct {
	ID           uuid.UUID     `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	ImageURL     string        `json:"image_url"`
	BasePrice    catalog.Price `json:"base_price"`
	DeliveryDays int           `json:"delivery_days"`
}

// ContactMessage is a persisted contact-form submission.
type ContactMessage struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
