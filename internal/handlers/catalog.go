package handlers

import (
	"net/http"
)

// GetCatalog returns the project types and features with both authored
// price columns, so the client can switch currency without a round trip.
func (h *Handlers) GetCatalog(w http.ResponseWriter, r *http.Request) {
	logger := h.loggerFromContext(r.Context())

	writeJSON(w, logger, http.StatusOK, map[string]any{
		"project_types": h.catalog.ProjectTypes,
		"features":      h.catalog.Features,
	})
}
