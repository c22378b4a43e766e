package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/devaistudio/portfolio/internal/catalog"
	"github.com/devaistudio/portfolio/internal/models"
	"github.com/devaistudio/portfolio/internal/payment"
)

func seedPendingQuote(t *testing.T, env *testEnv, amount int, currency catalog.Currency) *models.Quote {
	t.Helper()

	quote := &models.Quote{
		ClientName:     "Awa Diallo",
		Email:          "awa@example.com",
		ProjectType:    "Site vitrine",
		Amount:         amount,
		Currency:       currency,
		Status:         models.StatusPendingPayment,
		IdempotencyKey: uuid.NewString(),
	}
	if err := env.quotes.Create(context.Background(), quote); err != nil {
		t.Fatalf("failed to seed quote: %v", err)
	}
	return quote
}

func TestInitiatePaymentEndpoint(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	quote := seedPendingQuote(t, env, 180000, catalog.CurrencyXAF)

	body := `{"order_id":"` + quote.ID.String() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/payments", strings.NewReader(body))
	rec := httptest.NewRecorder()
	env.handlers.InitiatePayment(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (body: %s)", rec.Code, rec.Body.String())
	}

	var result struct {
		PaymentURL string `json:"payment_url"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if result.PaymentURL != "https://pay.lygosapp.com/session/test" {
		t.Errorf("payment_url = %q", result.PaymentURL)
	}
	if env.gateway.lastReq.Amount != 180000 {
		t.Errorf("gateway amount = %d", env.gateway.lastReq.Amount)
	}
}

func TestInitiatePaymentGatewayNoLink(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.gateway.err = &payment.Error{Reason: payment.ReasonGatewayNoLink}
	quote := seedPendingQuote(t, env, 300, catalog.CurrencyEUR)

	body := `{"order_id":"` + quote.ID.String() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/payments", strings.NewReader(body))
	rec := httptest.NewRecorder()
	env.handlers.InitiatePayment(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}

	var result struct {
		Error errorBody `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if !result.Error.Retryable {
		t.Error("gateway failure should be marked retryable")
	}

	// The order is untouched.
	stored, _ := env.quotes.GetByID(context.Background(), quote.ID)
	if stored.Status != models.StatusPendingPayment {
		t.Errorf("status = %s, want pending_payment", stored.Status)
	}
}

func TestInitiatePaymentAlreadyPaid(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	quote := seedPendingQuote(t, env, 180000, catalog.CurrencyXAF)
	if err := env.quotes.MarkPaid(context.Background(), quote.ID); err != nil {
		t.Fatalf("failed to mark paid: %v", err)
	}

	body := `{"order_id":"` + quote.ID.String() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/payments", strings.NewReader(body))
	rec := httptest.NewRecorder()
	env.handlers.InitiatePayment(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

func TestPaymentSuccessEndpoint(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	quote := seedPendingQuote(t, env, 180000, catalog.CurrencyXAF)

	req := httptest.NewRequest(http.MethodGet, "/payments/success?order_id="+quote.ID.String(), nil)
	rec := httptest.NewRecorder()
	env.handlers.PaymentSuccess(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (body: %s)", rec.Code, rec.Body.String())
	}

	stored, _ := env.quotes.GetByID(context.Background(), quote.ID)
	if stored.Status != models.StatusPaid {
		t.Errorf("status = %s, want paid", stored.Status)
	}
}

func TestPaymentSuccessReplay(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	quote := seedPendingQuote(t, env, 180000, catalog.CurrencyXAF)

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/payments/success?order_id="+quote.ID.String(), nil)
		rec := httptest.NewRecorder()
		env.handlers.PaymentSuccess(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("replay %d status = %d", i+1, rec.Code)
		}
	}

	// One payment-received email despite three callbacks.
	var received int
	for _, mail := range env.emailer.sent {
		if strings.Contains(mail.Subject, "Paiement reçu") {
			received++
		}
	}
	if received != 1 {
		t.Errorf("payment-received emails = %d, want 1", received)
	}
}

func TestPaymentSuccessUnknownOrder(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/payments/success?order_id="+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	env.handlers.PaymentSuccess(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestPaymentFailureEndpoint(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	quote := seedPendingQuote(t, env, 180000, catalog.CurrencyXAF)

	req := httptest.NewRequest(http.MethodGet, "/payments/failure?order_id="+quote.ID.String(), nil)
	rec := httptest.NewRecorder()
	env.handlers.PaymentFailure(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	// A failed payment leaves the order retryable.
	stored, _ := env.quotes.GetByID(context.Background(), quote.ID)
	if stored.Status != models.StatusPendingPayment {
		t.Errorf("status = %s, want pending_payment", stored.Status)
	}
}

func TestContactEndpoints(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	body := `{"name":"Awa Diallo","email":"awa@example.com","message":"Bonjour"}`
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	rec := httptest.NewRecorder()
	env.handlers.SubmitContact(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("contact status = %d (body: %s)", rec.Code, rec.Body.String())
	}
	if len(env.contacts.messages) != 1 {
		t.Errorf("stored %d messages, want 1", len(env.contacts.messages))
	}

	subscribe := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/newsletter", strings.NewReader(`{"email":"awa@example.com"}`))
		rec := httptest.NewRecorder()
		env.handlers.SubscribeNewsletter(rec, req)
		return rec
	}
	if rec := subscribe(); rec.Code != http.StatusCreated {
		t.Fatalf("newsletter status = %d", rec.Code)
	}
	if rec := subscribe(); rec.Code != http.StatusConflict {
		t.Errorf("duplicate newsletter status = %d, want 409", rec.Code)
	}
}
