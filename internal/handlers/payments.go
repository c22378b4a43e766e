package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/devaistudio/portfolio/internal/payment"
	"github.com/devaistudio/portfolio/internal/services"
)

// InitiatePayment asks the gateway for a checkout session and returns the
// redirect URL. The order stays pending_payment until the success callback
// arrives, so every failure here is retryable by the client.
func (h *Handlers) InitiatePayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.loggerFromContext(ctx)

	var body struct {
		OrderID string `json:"order_id"`
	}
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, logger, http.StatusBadRequest, "requête invalide", false)
		return
	}

	orderID, err := uuid.Parse(body.OrderID)
	if err != nil {
		writeError(w, logger, http.StatusNotFound, "commande introuvable", false)
		return
	}

	link, err := h.paymentService.Initiate(ctx, orderID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			writeError(w, logger, http.StatusNotFound, "commande introuvable", false)
		case errors.Is(err, services.ErrOrderAlreadyPaid):
			writeError(w, logger, http.StatusConflict, "cette commande est déjà payée", false)
		case errors.Is(err, services.ErrOrderNotPayable):
			writeError(w, logger, http.StatusConflict, "cette commande n'attend pas de paiement", false)
		default:
			var gwErr *payment.Error
			if errors.As(err, &gwErr) {
				logger.Error("gateway checkout failed", "order_id", orderID, "reason", gwErr.Reason, "detail", gwErr.Detail)
				writeError(w, logger, http.StatusBadGateway, "le paiement est indisponible pour le moment, réessayez", true)
				return
			}
			logger.Error("payment initiation failed", "order_id", orderID, "error", err)
			writeError(w, logger, http.StatusInternalServerError, "une erreur est survenue, réessayez", true)
		}
		return
	}

	writeJSON(w, logger, http.StatusOK, map[string]any{"payment_url": link})
}

// PaymentSuccess is the gateway's success redirect target. Replays are
// tolerated: the order ends up paid exactly once.
func (h *Handlers) PaymentSuccess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.loggerFromContext(ctx)

	result, err := h.paymentService.HandleSuccess(ctx, r.URL.Query().Get("order_id"))
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			writeError(w, logger, http.StatusNotFound, "commande introuvable, contactez-nous si vous avez été débité", false)
			return
		}
		if errors.Is(err, services.ErrOrderNotPayable) {
			writeError(w, logger, http.StatusConflict, "cette commande n'attend pas de paiement, contactez-nous", false)
			return
		}
		logger.Error("payment callback failed", "error", err)
		writeError(w, logger, http.StatusInternalServerError, "une erreur est survenue, contactez-nous si vous avez été débité", false)
		return
	}

	writeJSON(w, logger, http.StatusOK, map[string]any{
		"status":   "paid",
		"order_id": result.OrderID,
		"amount":   result.Amount,
		"message":  fmt.Sprintf("Merci %s, votre paiement est confirmé.", result.ClientName),
	})
}

// PaymentFailure is the gateway's failure redirect target. The order is
// untouched and can be retried.
func (h *Handlers) PaymentFailure(w http.ResponseWriter, r *http.Request) {
	logger := h.loggerFromContext(r.Context())

	writeJSON(w, logger, http.StatusOK, map[string]any{
		"status":   "failed",
		"order_id": r.URL.Query().Get("order_id"),
		"message":  "Le paiement n'a pas abouti. Votre commande est conservée, vous pouvez réessayer.",
	})
}
