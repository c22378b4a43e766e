package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/devaistudio/portfolio/internal/catalog"
	"github.com/devaistudio/portfolio/internal/models"
)

func TestGetCatalog(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/catalog", nil)
	rec := httptest.NewRecorder()
	env.handlers.GetCatalog(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body struct {
		ProjectTypes []catalog.ProjectType `json:"project_types"`
		Features     []catalog.Feature     `json:"features"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode catalog: %v", err)
	}
	if len(body.ProjectTypes) == 0 || len(body.Features) == 0 {
		t.Error("catalog response is empty")
	}
	// Both price columns must be present for client-side currency switching.
	if body.ProjectTypes[0].Price.EUR == 0 || body.ProjectTypes[0].Price.XAF == 0 {
		t.Error("catalog prices must carry both currencies")
	}
}

func seedService(env *testEnv) uuid.UUID {
	serviceID := uuid.New()
	env.services.services[serviceID] = &models.ProService{
		ID:           serviceID,
		Title:        "Refonte de site",
		BasePrice:    catalog.Price{EUR: 500, XAF: 320000},
		DeliveryDays: 7,
	}
	env.services.options[serviceID] = []catalog.ServiceOption{
		{ID: "opt-express", Label: "Livraison express", Price: catalog.Price{EUR: 100, XAF: 60000}, ExtraDays: -3},
		{ID: "opt-training", Label: "Formation", Price: catalog.Price{EUR: 50, XAF: 30000}, ExtraDays: 1},
	}
	return serviceID
}

func TestGetServiceOptionsUsesCache(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	serviceID := seedService(env)

	get := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/services/"+serviceID.String()+"/options", nil)
		req = mux.SetURLVars(req, map[string]string{"id": serviceID.String()})
		rec := httptest.NewRecorder()
		env.handlers.GetServiceOptions(rec, req)
		return rec
	}

	first := get()
	if first.Code != http.StatusOK {
		t.Fatalf("status = %d", first.Code)
	}
	second := get()
	if second.Code != http.StatusOK {
		t.Fatalf("status = %d", second.Code)
	}

	if env.services.optionCalls != 1 {
		t.Errorf("store queried %d times, want 1 (second hit served from cache)", env.services.optionCalls)
	}
	if first.Body.String() != second.Body.String() {
		t.Error("cached response differs from the stored one")
	}
}

func TestGetServiceNotFound(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/services/"+uuid.NewString(), nil)
	req = mux.SetURLVars(req, map[string]string{"id": uuid.NewString()})
	rec := httptest.NewRecorder()
	env.handlers.GetService(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestSubmitOrderEndpoint(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	serviceID := seedService(env)

	body := `{
		"service_id": "` + serviceID.String() + `",
		"option_ids": ["opt-express", "opt-training"],
		"currency": "XAF",
		"name": "Awa Diallo",
		"email": "awa@example.com",
		"idempotency_key": "` + uuid.NewString() + `"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	rec := httptest.NewRecorder()
	env.handlers.SubmitOrder(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d (body: %s)", rec.Code, rec.Body.String())
	}

	var result struct {
		Amount    int `json:"amount"`
		TotalDays int `json:"total_days"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if result.Amount != 410000 {
		t.Errorf("amount = %d, want 410000", result.Amount)
	}
	if result.TotalDays != 5 {
		t.Errorf("total_days = %d, want 5", result.TotalDays)
	}
}

func TestSubmitOrderDoubleSubmit(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	serviceID := seedService(env)

	key := uuid.NewString()
	body := `{"service_id":"` + serviceID.String() + `","currency":"EUR","name":"Awa","email":"awa@example.com","idempotency_key":"` + key + `"}`

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
		rec := httptest.NewRecorder()
		env.handlers.SubmitOrder(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("attempt %d status = %d", i+1, rec.Code)
		}
	}

	if len(env.quotes.quotes) != 1 {
		t.Errorf("store holds %d orders, want 1 after a double submit", len(env.quotes.quotes))
	}
}

func TestSubmitOrderUnknownService(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	body := `{"service_id":"` + uuid.NewString() + `","name":"Awa","email":"awa@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	rec := httptest.NewRecorder()
	env.handlers.SubmitOrder(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestSubmitCustomQuoteEndpoint(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	body := `{"name":"Awa Diallo","email":"awa@example.com","budget":"3000 €","details":"Une marketplace"}`
	req := httptest.NewRequest(http.MethodPost, "/api/quotes/custom", strings.NewReader(body))
	rec := httptest.NewRecorder()
	env.handlers.SubmitCustomQuote(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d (body: %s)", rec.Code, rec.Body.String())
	}

	var result struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if result.Status != string(models.StatusPendingQuote) {
		t.Errorf("status = %q, want pending_quote", result.Status)
	}
}

func TestSubmitCustomQuoteMissingDetails(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	body := `{"name":"Awa Diallo","email":"awa@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/api/quotes/custom", strings.NewReader(body))
	rec := httptest.NewRecorder()
	env.handlers.SubmitCustomQuote(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
}
