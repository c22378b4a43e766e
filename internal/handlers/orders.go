package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/devaistudio/portfolio/internal/catalog"
	"github.com/devaistudio/portfolio/internal/services"
)

// SubmitOrder handles the customize-order flow: a service package plus
// selected options. The client supplies its own idempotency key so a
// double-clicked submit creates one order.
func (h *Handlers) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.loggerFromContext(ctx)

	var body struct {
		ServiceID      string   `json:"service_id"`
		OptionIDs      []string `json:"option_ids"`
		Currency       string   `json:"currency"`
		Name           string   `json:"name"`
		Email          string   `json:"email"`
		Details        string   `json:"details"`
		IdempotencyKey string   `json:"idempotency_key"`
	}
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, logger, http.StatusBadRequest, "requête invalide", false)
		return
	}

	serviceID, err := uuid.Parse(body.ServiceID)
	if err != nil {
		writeError(w, logger, http.StatusUnprocessableEntity, "service introuvable", false)
		return
	}
	if strings.TrimSpace(body.Name) == "" {
		writeError(w, logger, http.StatusUnprocessableEntity, "votre nom est requis", false)
		return
	}
	if strings.TrimSpace(body.Email) == "" {
		writeError(w, logger, http.StatusUnprocessableEntity, "votre adresse email est requise", false)
		return
	}

	currency := catalog.CurrencyEUR
	if body.Currency != "" {
		if currency, err = catalog.ParseCurrency(body.Currency); err != nil {
			writeError(w, logger, http.StatusUnprocessableEntity, "devise inconnue, choisissez EUR ou FCFA", false)
			return
		}
	}

	idempotencyKey := strings.TrimSpace(body.IdempotencyKey)
	if idempotencyKey == "" {
		idempotencyKey = uuid.NewString()
	}

	quote, err := h.submissionService.SubmitOrder(ctx, services.OrderInput{
		ServiceID:      serviceID,
		OptionIDs:      body.OptionIDs,
		Currency:       currency,
		ClientName:     body.Name,
		Email:          body.Email,
		Details:        body.Details,
		IdempotencyKey: idempotencyKey,
	})
	if err != nil {
		if errors.Is(err, services.ErrServiceNotFound) {
			writeError(w, logger, http.StatusNotFound, "service introuvable", false)
			return
		}
		logger.Error("order submission failed", "error", err)
		writeError(w, logger, http.StatusBadGateway, "l'envoi a échoué, réessayez", true)
		return
	}

	writeJSON(w, logger, http.StatusCreated, map[string]any{
		"success":    true,
		"order_id":   quote.ID,
		"status":     quote.Status,
		"amount":     quote.Amount,
		"currency":   quote.Currency,
		"total_days": quote.TotalDays,
	})
}
