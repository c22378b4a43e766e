package handlers

import (
	"errors"
	"net/http"

	"github.com/devaistudio/portfolio/internal/catalog"
	"github.com/devaistudio/portfolio/internal/session"
	"github.com/devaistudio/portfolio/internal/wizard"
)

// wizardStateResponse is returned by every wizard endpoint so the client
// always renders from the server's view of the machine.
type wizardStateResponse struct {
	Step      int                  `json:"step"`
	StepName  string               `json:"step_name"`
	Selection wizard.Selection     `json:"selection"`
	Pricing   catalog.QuotePricing `json:"pricing"`
	Submitted bool                 `json:"submitted"`
}

func (h *Handlers) wizardState(data *session.Data) wizardStateResponse {
	state := data.Wizard
	return wizardStateResponse{
		Step:      int(state.Step),
		StepName:  state.Step.String(),
		Selection: state.Selection,
		Pricing: h.pricer.QuoteTotal(
			h.catalog,
			state.Selection.ProjectTypeID,
			state.Selection.FeatureIDs,
			state.Selection.Currency,
		),
		Submitted: state.Submitted,
	}
}

// StartWizard creates a fresh wizard session.
func (h *Handlers) StartWizard(w http.ResponseWriter, r *http.Request) {
	logger := h.loggerFromContext(r.Context())

	data, err := h.sessionManager.Start(r.Context(), w)
	if err != nil {
		logger.Error("failed to start wizard session", "error", err)
		writeError(w, logger, http.StatusInternalServerError, "impossible de démarrer le devis, réessayez", true)
		return
	}

	writeJSON(w, logger, http.StatusCreated, h.wizardState(data))
}

// GetWizard returns the current wizard state with recomputed pricing.
func (h *Handlers) GetWizard(w http.ResponseWriter, r *http.Request) {
	logger := h.loggerFromContext(r.Context())

	data, ok := h.wizardSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, logger, http.StatusOK, h.wizardState(data))
}

// SelectProjectType records the step-1 choice.
func (h *Handlers) SelectProjectType(w http.ResponseWriter, r *http.Request) {
	logger := h.loggerFromContext(r.Context())

	var body struct {
		ProjectTypeID string `json:"project_type_id"`
	}
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, logger, http.StatusBadRequest, "requête invalide", false)
		return
	}

	h.mutateWizard(w, r, func(state *wizard.State) error {
		state.SelectProjectType(body.ProjectTypeID)
		return nil
	})
}

// ToggleFeature adds or removes a feature from the selection.
func (h *Handlers) ToggleFeature(w http.ResponseWriter, r *http.Request) {
	logger := h.loggerFromContext(r.Context())

	var body struct {
		FeatureID string `json:"feature_id"`
	}
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, logger, http.StatusBadRequest, "requête invalide", false)
		return
	}

	h.mutateWizard(w, r, func(state *wizard.State) error {
		state.ToggleFeature(body.FeatureID)
		return nil
	})
}

// SetCurrency switches the displayed currency. Totals are recomputed from
// the authored prices of the other currency column.
func (h *Handlers) SetCurrency(w http.ResponseWriter, r *http.Request) {
	logger := h.loggerFromContext(r.Context())

	var body struct {
		Currency string `json:"currency"`
	}
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, logger, http.StatusBadRequest, "requête invalide", false)
		return
	}

	currency, err := catalog.ParseCurrency(body.Currency)
	if err != nil {
		writeError(w, logger, http.StatusBadRequest, "devise inconnue, choisissez EUR ou FCFA", false)
		return
	}

	h.mutateWizard(w, r, func(state *wizard.State) error {
		state.SetCurrency(currency)
		return nil
	})
}

// WizardNext advances to the following step if its gate passes.
func (h *Handlers) WizardNext(w http.ResponseWriter, r *http.Request) {
	h.mutateWizard(w, r, func(state *wizard.State) error {
		return state.Next()
	})
}

// WizardBack returns to the previous step, keeping all selections.
func (h *Handlers) WizardBack(w http.ResponseWriter, r *http.Request) {
	h.mutateWizard(w, r, func(state *wizard.State) error {
		state.Back()
		return nil
	})
}

// SubmitWizard validates the contact gate and hands the selection to the
// submission service. The session's idempotency key makes a retried submit
// return the already-created order.
func (h *Handlers) SubmitWizard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.loggerFromContext(ctx)

	var body struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	}
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, logger, http.StatusBadRequest, "requête invalide", false)
		return
	}

	data, ok := h.wizardSession(w, r)
	if !ok {
		return
	}

	state := data.Wizard
	state.SetContact(wizard.Contact{Name: body.Name, Email: body.Email, Phone: body.Phone})

	if err := state.Finalize(); err != nil {
		var validationErr *wizard.ValidationError
		if errors.As(err, &validationErr) {
			// Keep the updated contact fields for the next attempt.
			if updateErr := h.sessionManager.Update(ctx, r, data); updateErr != nil {
				logger.Warn("failed to persist wizard state", "error", updateErr)
			}
			writeError(w, logger, http.StatusUnprocessableEntity, validationErr.Message, false)
			return
		}
		writeError(w, logger, http.StatusInternalServerError, "une erreur est survenue, réessayez", true)
		return
	}

	quote, err := h.submissionService.SubmitQuote(ctx, state.Selection, data.IdempotencyKey)
	if err != nil {
		// The machine stays on the contact step with its data intact.
		if updateErr := h.sessionManager.Update(ctx, r, data); updateErr != nil {
			logger.Warn("failed to persist wizard state", "error", updateErr)
		}
		logger.Error("quote submission failed", "error", err)
		writeError(w, logger, http.StatusBadGateway, "l'envoi a échoué, vos choix sont conservés, réessayez", true)
		return
	}

	state.MarkSubmitted()
	h.sessionManager.Destroy(ctx, w, r)

	writeJSON(w, logger, http.StatusCreated, map[string]any{
		"success":  true,
		"order_id": quote.ID,
		"status":   quote.Status,
		"amount":   quote.Amount,
		"currency": quote.Currency,
	})
}

// wizardSession loads the session or writes the expired-session error.
func (h *Handlers) wizardSession(w http.ResponseWriter, r *http.Request) (*session.Data, bool) {
	logger := h.loggerFromContext(r.Context())

	data, err := h.sessionManager.Get(r.Context(), r)
	if err != nil || data.Wizard == nil {
		writeError(w, logger, http.StatusConflict, "votre session de devis a expiré, recommencez", false)
		return nil, false
	}
	return data, true
}

// mutateWizard applies fn to the wizard state and persists the result.
// A ValidationError from fn is a user error; the state is not advanced.
func (h *Handlers) mutateWizard(w http.ResponseWriter, r *http.Request, fn func(state *wizard.State) error) {
	ctx := r.Context()
	logger := h.loggerFromContext(ctx)

	data, ok := h.wizardSession(w, r)
	if !ok {
		return
	}

	if err := fn(data.Wizard); err != nil {
		var validationErr *wizard.ValidationError
		if errors.As(err, &validationErr) {
			writeError(w, logger, http.StatusUnprocessableEntity, validationErr.Message, false)
			return
		}
		logger.Error("wizard mutation failed", "error", err)
		writeError(w, logger, http.StatusInternalServerError, "une erreur est survenue, réessayez", true)
		return
	}

	if err := h.sessionManager.Update(ctx, r, data); err != nil {
		logger.Error("failed to persist wizard state", "error", err)
		writeError(w, logger, http.StatusInternalServerError, "une erreur est survenue, réessayez", true)
		return
	}

	writeJSON(w, logger, http.StatusOK, h.wizardState(data))
}
