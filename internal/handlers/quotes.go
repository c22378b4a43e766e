package handlers

import (
	"errors"
	"net/http"

	"github.com/devaistudio/portfolio/internal/services"
)

// SubmitCustomQuote handles free-form quote requests outside the catalog.
func (h *Handlers) SubmitCustomQuote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.loggerFromContext(ctx)

	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Budget   string `json:"budget"`
		Deadline string `json:"deadline"`
		Details  string `json:"details"`
	}
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, logger, http.StatusBadRequest, "requête invalide", false)
		return
	}

	quote, err := h.submissionService.SubmitCustomQuote(ctx, services.CustomQuoteInput{
		ClientName: body.Name,
		Email:      body.Email,
		Budget:     body.Budget,
		Deadline:   body.Deadline,
		Details:    body.Details,
	})
	if err != nil {
		var userErr services.UserError
		if errors.As(err, &userErr) {
			writeError(w, logger, http.StatusUnprocessableEntity, userErr.Message, false)
			return
		}
		logger.Error("custom quote submission failed", "error", err)
		writeError(w, logger, http.StatusBadGateway, "l'envoi a échoué, réessayez", true)
		return
	}

	writeJSON(w, logger, http.StatusCreated, map[string]any{
		"success":  true,
		"order_id": quote.ID,
		"status":   quote.Status,
	})
}
