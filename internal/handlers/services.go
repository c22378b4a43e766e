package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"

	"github.com/devaistudio/portfolio/internal/cache"
	"github.com/devaistudio/portfolio/internal/catalog"
)

const serviceOptionsCacheTTL = 5 * time.Minute

// ListServices returns the pro-service packages for the customize flow.
func (h *Handlers) ListServices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.loggerFromContext(ctx)

	services, err := h.serviceStore.List(ctx)
	if err != nil {
		logger.Error("failed to list services", "error", err)
		writeError(w, logger, http.StatusInternalServerError, "impossible de charger les services, réessayez", true)
		return
	}

	writeJSON(w, logger, http.StatusOK, map[string]any{"services": services})
}

// GetService returns one pro-service package.
func (h *Handlers) GetService(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.loggerFromContext(ctx)

	serviceID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, logger, http.StatusNotFound, "service introuvable", false)
		return
	}

	service, err := h.serviceStore.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, logger, http.StatusNotFound, "service introuvable", false)
			return
		}
		logger.Error("failed to load service", "service_id", serviceID, "error", err)
		writeError(w, logger, http.StatusInternalServerError, "impossible de charger le service, réessayez", true)
		return
	}

	writeJSON(w, logger, http.StatusOK, service)
}

// GetServiceOptions returns the active options of a service. The option
// list changes rarely and is read on every customize page view, so it is
// served from the cache when possible.
func (h *Handlers) GetServiceOptions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.loggerFromContext(ctx)

	serviceID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, logger, http.StatusNotFound, "service introuvable", false)
		return
	}

	cacheKey := cache.ServiceOptionsKey(serviceID.String())
	if cached, err := h.cacheProvider.Get(ctx, cacheKey); err == nil {
		var options []catalog.ServiceOption
		if json.Unmarshal([]byte(cached), &options) == nil {
			writeJSON(w, logger, http.StatusOK, map[string]any{"options": options})
			return
		}
	}

	options, err := h.serviceStore.ListOptions(ctx, serviceID)
	if err != nil {
		logger.Error("failed to list service options", "service_id", serviceID, "error", err)
		writeError(w, logger, http.StatusInternalServerError, "impossible de charger les options, réessayez", true)
		return
	}

	if encoded, err := json.Marshal(options); err == nil {
		if err := h.cacheProvider.Set(ctx, cacheKey, string(encoded), serviceOptionsCacheTTL); err != nil {
			logger.Warn("failed to cache service options", "service_id", serviceID, "error", err)
		}
	}

	writeJSON(w, logger, http.StatusOK, map[string]any{"options": options})
}
