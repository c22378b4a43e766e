package handlers

import (
	"errors"
	"net/http"

	"github.com/devaistudio/portfolio/internal/models"
	"github.com/devaistudio/portfolio/internal/services"
)

// SubmitContact stores a contact-form message and forwards it to the
// site owner.
func (h *Handlers) SubmitContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.loggerFromContext(ctx)

	var body struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Subject string `json:"subject"`
		Message string `json:"message"`
	}
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, logger, http.StatusBadRequest, "requête invalide", false)
		return
	}

	message := &models.ContactMessage{
		Name:    body.Name,
		Email:   body.Email,
		Subject: body.Subject,
		Message: body.Message,
	}
	if err := h.contactService.Submit(ctx, message); err != nil {
		var userErr services.UserError
		if errors.As(err, &userErr) {
			writeError(w, logger, http.StatusUnprocessableEntity, userErr.Message, false)
			return
		}
		logger.Error("contact submission failed", "error", err)
		writeError(w, logger, http.StatusInternalServerError, "l'envoi a échoué, réessayez", true)
		return
	}

	writeJSON(w, logger, http.StatusCreated, map[string]any{"success": true})
}

// SubscribeNewsletter records a newsletter signup.
func (h *Handlers) SubscribeNewsletter(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.loggerFromContext(ctx)

	var body struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, logger, http.StatusBadRequest, "requête invalide", false)
		return
	}

	if err := h.contactService.Subscribe(ctx, body.Email); err != nil {
		var userErr services.UserError
		if errors.As(err, &userErr) {
			writeError(w, logger, http.StatusConflict, userErr.Message, false)
			return
		}
		logger.Error("newsletter subscription failed", "error", err)
		writeError(w, logger, http.StatusInternalServerError, "l'inscription a échoué, réessayez", true)
		return
	}

	writeJSON(w, logger, http.StatusCreated, map[string]any{"success": true})
}
