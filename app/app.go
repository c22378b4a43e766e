// Package app wires configuration, storage, services and handlers into a
// runnable application.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lmittmann/tint"

	"github.com/devaistudio/portfolio/internal/cache"
	"github.com/devaistudio/portfolio/internal/catalog"
	"github.com/devaistudio/portfolio/internal/config"
	"github.com/devaistudio/portfolio/internal/db"
	"github.com/devaistudio/portfolio/internal/email"
	"github.com/devaistudio/portfolio/internal/handlers"
	"github.com/devaistudio/portfolio/internal/payment"
	"github.com/devaistudio/portfolio/internal/services"
	"github.com/devaistudio/portfolio/internal/session"
)

type App struct {
	Config         *config.Config
	Logger         *slog.Logger
	DB             *pgxpool.Pool
	CacheProvider  cache.Provider
	SessionManager *session.Manager
	Handlers       *handlers.Handlers
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := newLogger(cfg)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	database, err := db.Connect(startupCtx, cfg.DatabaseURL, logger)
	if err != nil {
		return nil, err
	}

	cacheProvider, err := cache.NewProvider(cache.Config{
		Provider:              cfg.CacheProvider,
		RedisConnectionString: cfg.RedisConnectionString,
	})
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to initialize cache provider: %w", err)
	}

	sessionStore, err := session.NewStore(startupCtx, session.Config{
		Provider:              cfg.SessionStoreProvider,
		RedisConnectionString: cfg.RedisConnectionString,
	})
	if err != nil {
		closeCacheProvider(logger, cacheProvider)
		database.Close()
		return nil, fmt.Errorf("failed to initialize session store: %w", err)
	}
	sessionManager := session.NewManager(sessionStore, handlers.SecureCookiesFromConfig(cfg))

	cat, err := catalog.NewParser().Load(cfg.CatalogPath)
	if err != nil {
		closeSessionManager(logger, sessionManager)
		closeCacheProvider(logger, cacheProvider)
		database.Close()
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	if err := catalog.NewValidator().Validate(cat); err != nil {
		closeSessionManager(logger, sessionManager)
		closeCacheProvider(logger, cacheProvider)
		database.Close()
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	pricer := catalog.NewPricer()

	emailProvider, err := email.NewProvider(emailConfig(cfg))
	if err != nil {
		closeSessionManager(logger, sessionManager)
		closeCacheProvider(logger, cacheProvider)
		database.Close()
		return nil, fmt.Errorf("failed to initialize email provider: %w", err)
	}

	quoteStore := db.NewQuoteStore(database)
	serviceStore := db.NewProServiceStore(database)
	contactStore := db.NewContactStore(database)

	lygosClient := payment.NewClient(cfg.LygosBaseURL, cfg.LygosAPIKey, cfg.SiteName)

	submissionService := services.NewSubmissionService(
		quoteStore,
		serviceStore,
		cat,
		pricer,
		emailProvider,
		cfg.SiteName,
		cfg.BaseURL,
		cfg.AdminEmail,
		logger.With("component", "submission_service"),
	)
	paymentService := services.NewPaymentService(
		quoteStore,
		lygosClient,
		payment.NewAmountConverter(),
		cacheProvider,
		emailProvider,
		cfg.BaseURL,
		cfg.SiteName,
		logger.With("component", "payment_service"),
	)
	contactService := services.NewContactService(
		contactStore,
		emailProvider,
		cfg.SiteName,
		cfg.AdminEmail,
		logger.With("component", "contact_service"),
	)

	h, err := handlers.New(handlers.Dependencies{
		Config:            cfg,
		DB:                database,
		Catalog:           cat,
		Pricer:            pricer,
		CacheProvider:     cacheProvider,
		SessionManager:    sessionManager,
		ServiceStore:      serviceStore,
		SubmissionService: submissionService,
		PaymentService:    paymentService,
		ContactService:    contactService,
		Logger:            logger,
	})
	if err != nil {
		closeSessionManager(logger, sessionManager)
		closeCacheProvider(logger, cacheProvider)
		database.Close()
		return nil, fmt.Errorf("failed to initialize handlers: %w", err)
	}

	return &App{
		Config:         cfg,
		Logger:         logger,
		DB:             database,
		CacheProvider:  cacheProvider,
		SessionManager: sessionManager,
		Handlers:       h,
	}, nil
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.SessionManager != nil {
		closeSessionManager(a.Logger, a.SessionManager)
	}
	if a.CacheProvider != nil {
		closeCacheProvider(a.Logger, a.CacheProvider)
	}
	if a.DB != nil {
		a.DB.Close()
	}
}

func emailConfig(cfg *config.Config) email.Config {
	emailCfg := email.Config{
		Provider: cfg.EmailProvider,
		From:     cfg.EmailFrom,
	}
	switch cfg.EmailProvider {
	case "mailgun":
		emailCfg.APIKey = cfg.MailgunAPIKey
		emailCfg.Domain = cfg.MailgunDomain
		emailCfg.BaseURL = cfg.MailgunBaseURL
	default:
		emailCfg.APIKey = cfg.ResendAPIKey
	}
	return emailCfg
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	format := strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	switch format {
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	default:
		return slog.New(tint.NewHandler(os.Stdout, &tint.Options{
			Level: cfg.LogLevel,
		}))
	}
}

func closeSessionManager(logger *slog.Logger, manager *session.Manager) {
	if manager == nil {
		return
	}
	if err := manager.Close(); err != nil && logger != nil {
		logger.Warn("failed to close session manager", "error", err)
	}
}

func closeCacheProvider(logger *slog.Logger, provider cache.Provider) {
	if provider == nil {
		return
	}
	if err := provider.Close(); err != nil && logger != nil {
		logger.Warn("failed to close cache provider", "error", err)
	}
}
