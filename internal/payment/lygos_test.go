package payment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/devaistudio/portfolio/internal/catalog"
)

func TestGatewayAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		amount   int
		currency catalog.Currency
		want     int
		wantErr  bool
	}{
		{name: "xaf passes through", amount: 180000, currency: catalog.CurrencyXAF, want: 180000},
		{name: "eur converted at fixed rate", amount: 300, currency: catalog.CurrencyEUR, want: 196500},
		{name: "zero amount", amount: 0, currency: catalog.CurrencyEUR, want: 0},
		{name: "negative amount", amount: -1, currency: catalog.CurrencyXAF, wantErr: true},
		{name: "unknown currency", amount: 100, currency: catalog.Currency("USD"), wantErr: true},
	}

	converter := NewAmountConverter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := converter.GatewayAmount(tt.amount, tt.currency)
			if (err != nil) != tt.wantErr {
				t.Fatalf("GatewayAmount() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("GatewayAmount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFormatAmount(t *testing.T) {
	t.Parallel()

	if got := FormatAmount(300, catalog.CurrencyEUR); got != "300 €" {
		t.Errorf("FormatAmount(EUR) = %q", got)
	}
	if got := FormatAmount(180000, catalog.CurrencyXAF); got != "180000 FCFA" {
		t.Errorf("FormatAmount(XAF) = %q", got)
	}
}

func TestCreateCheckout(t *testing.T) {
	t.Parallel()

	var gotPath, gotAPIKey string
	var gotReq CheckoutRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAPIKey = r.Header.Get("api-key")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"link":"https://pay.lygosapp.com/session/abc123"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "DevAI Portfolio")
	link, err := client.CreateCheckout(context.Background(), &CheckoutRequest{
		Amount:     180000,
		Message:    "Commande 42 - awa@example.com",
		SuccessURL: "https://example.com/payments/success?order_id=42",
		FailureURL: "https://example.com/payments/failure?order_id=42",
		OrderID:    "42",
	})
	if err != nil {
		t.Fatalf("CreateCheckout() error = %v", err)
	}

	if link != "https://pay.lygosapp.com/session/abc123" {
		t.Errorf("link = %q", link)
	}
	if gotPath != "/v1/gateway" {
		t.Errorf("path = %q, want /v1/gateway", gotPath)
	}
	if gotAPIKey != "test-key" {
		t.Errorf("api-key header = %q", gotAPIKey)
	}
	if gotReq.ShopName != "DevAI Portfolio" {
		t.Errorf("shop_name = %q, want client's shop name", gotReq.ShopName)
	}
	if gotReq.Amount != 180000 {
		t.Errorf("amount = %d", gotReq.Amount)
	}
}

func TestCreateCheckoutNoLink(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "DevAI Portfolio")
	_, err := client.CreateCheckout(context.Background(), &CheckoutRequest{Amount: 1000, OrderID: "42"})

	var gwErr *Error
	if !errors.As(err, &gwErr) {
		t.Fatalf("error = %v, want *Error", err)
	}
	if gwErr.Reason != ReasonGatewayNoLink {
		t.Errorf("reason = %q, want %q", gwErr.Reason, ReasonGatewayNoLink)
	}
}

func TestCreateCheckoutRejected(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"invalid amount"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "DevAI Portfolio")
	_, err := client.CreateCheckout(context.Background(), &CheckoutRequest{Amount: 0, OrderID: "42"})

	var gwErr *Error
	if !errors.As(err, &gwErr) {
		t.Fatalf("error = %v, want *Error", err)
	}
	if gwErr.Reason != ReasonGatewayRejected {
		t.Errorf("reason = %q, want %q", gwErr.Reason, ReasonGatewayRejected)
	}
	if gwErr.Detail != "invalid amount" {
		t.Errorf("detail = %q, want gateway message", gwErr.Detail)
	}
}

func TestCreateCheckoutUnreachable(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, "test-key", "DevAI Portfolio")
	_, err := client.CreateCheckout(context.Background(), &CheckoutRequest{Amount: 1000, OrderID: "42"})

	var gwErr *Error
	if !errors.As(err, &gwErr) {
		t.Fatalf("error = %v, want *Error", err)
	}
	if gwErr.Reason != ReasonUnreachable {
		t.Errorf("reason = %q, want %q", gwErr.Reason, ReasonUnreachable)
	}
}

func TestCreateCheckoutUnparseableBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "DevAI Portfolio")
	_, err := client.CreateCheckout(context.Background(), &CheckoutRequest{Amount: 1000, OrderID: "42"})

	var gwErr *Error
	if !errors.As(err, &gwErr) {
		t.Fatalf("error = %v, want *Error", err)
	}
	if gwErr.Reason != ReasonGatewayNoLink {
		t.Errorf("reason = %q, want %q", gwErr.Reason, ReasonGatewayNoLink)
	}
}
