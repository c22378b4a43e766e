package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devaistudio/portfolio/internal/cache"
	"github.com/devaistudio/portfolio/internal/catalog"
	"github.com/devaistudio/portfolio/internal/config"
	"github.com/devaistudio/portfolio/internal/logging"
	"github.com/devaistudio/portfolio/internal/services"
	"github.com/devaistudio/portfolio/internal/session"
)

const maxRequestBodyBytes = 1 << 20 // 1 MB

// Handlers provides the HTTP handlers for the portfolio API.
type Handlers struct {
	config            *config.Config
	db                *pgxpool.Pool
	catalog           *catalog.Catalog
	pricer            *catalog.Pricer
	cacheProvider     cache.Provider
	sessionManager    *session.Manager
	serviceStore      services.ServiceRepository
	submissionService *services.SubmissionService
	paymentService    *services.PaymentService
	contactService    *services.ContactService
	logger            *slog.Logger
}

type Dependencies struct {
	Config            *config.Config
	DB                *pgxpool.Pool
	Catalog           *catalog.Catalog
	Pricer            *catalog.Pricer
	CacheProvider     cache.Provider
	SessionManager    *session.Manager
	ServiceStore      services.ServiceRepository
	SubmissionService *services.SubmissionService
	PaymentService    *services.PaymentService
	ContactService    *services.ContactService
	Logger            *slog.Logger
}

func New(deps Dependencies) (*Handlers, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if deps.Config == nil {
		return nil, fmt.Errorf("handlers dependencies: config is required")
	}
	if deps.Catalog == nil {
		return nil, fmt.Errorf("handlers dependencies: catalog is required")
	}
	if deps.Pricer == nil {
		return nil, fmt.Errorf("handlers dependencies: pricer is required")
	}
	if deps.CacheProvider == nil {
		return nil, fmt.Errorf("handlers dependencies: cacheProvider is required")
	}
	if deps.SessionManager == nil {
		return nil, fmt.Errorf("handlers dependencies: sessionManager is required")
	}
	if deps.ServiceStore == nil {
		return nil, fmt.Errorf("handlers dependencies: serviceStore is required")
	}
	if deps.SubmissionService == nil {
		return nil, fmt.Errorf("handlers dependencies: submissionService is required")
	}
	if deps.PaymentService == nil {
		return nil, fmt.Errorf("handlers dependencies: paymentService is required")
	}
	if deps.ContactService == nil {
		return nil, fmt.Errorf("handlers dependencies: contactService is required")
	}

	return &Handlers{
		config:            deps.Config,
		db:                deps.DB,
		catalog:           deps.Catalog,
		pricer:            deps.Pricer,
		cacheProvider:     deps.CacheProvider,
		sessionManager:    deps.SessionManager,
		serviceStore:      deps.ServiceStore,
		submissionService: deps.SubmissionService,
		paymentService:    deps.PaymentService,
		contactService:    deps.ContactService,
		logger:            logger.With("component", "handlers"),
	}, nil
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.loggerFromContext(ctx)

	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			logger.Error("database health check failed", "error", err)
			http.Error(w, "Database unhealthy", http.StatusServiceUnavailable)
			return
		}
	}

	writeJSON(w, logger, http.StatusOK, map[string]string{"status": "healthy"})
}

func (h *Handlers) loggerFromContext(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx, h.logger)
}

// errorBody is the error shape every endpoint returns: a plain-language
// message plus whether retrying the same request can help.
type errorBody struct {
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, logger *slog.Logger, status int, message string, retryable bool) {
	writeJSON(w, logger, status, map[string]errorBody{
		"error": {Message: message, Retryable: retryable},
	})
}

// decodeJSON reads a bounded JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func SecureCookiesFromConfig(cfg *config.Config) bool {
	if cfg == nil {
		return false
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL != "" {
		if parsed, err := url.Parse(baseURL); err == nil {
			return strings.EqualFold(parsed.Scheme, "https")
		}
	}

	return cfg.Port == "443" || cfg.Port == "8443"
}
