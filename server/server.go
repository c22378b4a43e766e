package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/devaistudio/portfolio/internal/config"
	"github.com/devaistudio/portfolio/internal/handlers"
)

type Server struct {
	cfg        *config.Config
	logger     *slog.Logger
	handlers   *handlers.Handlers
	httpServer *http.Server
}

func New(cfg *config.Config, logger *slog.Logger, h *handlers.Handlers) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if h == nil {
		return nil, fmt.Errorf("handlers are required")
	}

	s := &Server{
		cfg:      cfg,
		logger:   logger,
		handlers: h,
	}

	router := s.buildRouter()
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	return s, nil
}

func (s *Server) Run() error {
	s.logger.Info("server starting", "port", s.cfg.Port)

	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Close(ctx context.Context) error {
	if s == nil || s.httpServer == nil {
		return nil
	}

	s.logger.Info("server shutting down")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) buildRouter() *mux.Router {
	h := s.handlers

	r := mux.NewRouter()
	r.Use(h.RequestLogger)
	r.Use(h.SecurityHeaders)

	r.HandleFunc("/health", h.Health).Methods("GET").Name("health")

	// Gateway redirect targets. The gateway sends the visitor here, so
	// these stay outside the same-origin check.
	r.HandleFunc("/payments/success", h.PaymentSuccess).Methods("GET").Name("payments.success")
	r.HandleFunc("/payments/failure", h.PaymentFailure).Methods("GET").Name("payments.failure")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(h.RequireSameOrigin)

	api.HandleFunc("/catalog", h.GetCatalog).Methods("GET").Name("catalog")

	api.HandleFunc("/wizard", h.StartWizard).Methods("POST").Name("wizard.start")
	api.HandleFunc("/wizard", h.GetWizard).Methods("GET").Name("wizard.get")
	api.HandleFunc("/wizard/project-type", h.SelectProjectType).Methods("POST").Name("wizard.project_type")
	api.HandleFunc("/wizard/features/toggle", h.ToggleFeature).Methods("POST").Name("wizard.features.toggle")
	api.HandleFunc("/wizard/currency", h.SetCurrency).Methods("POST").Name("wizard.currency")
	api.HandleFunc("/wizard/next", h.WizardNext).Methods("POST").Name("wizard.next")
	api.HandleFunc("/wizard/back", h.WizardBack).Methods("POST").Name("wizard.back")
	api.HandleFunc("/wizard/submit", h.SubmitWizard).Methods("POST").Name("wizard.submit")

	api.HandleFunc("/services", h.ListServices).Methods("GET").Name("services.list")
	api.HandleFunc("/services/{id}", h.GetService).Methods("GET").Name("services.get")
	api.HandleFunc("/services/{id}/options", h.GetServiceOptions).Methods("GET").Name("services.options")

	api.HandleFunc("/orders", h.SubmitOrder).Methods("POST").Name("orders.submit")
	api.HandleFunc("/quotes/custom", h.SubmitCustomQuote).Methods("POST").Name("quotes.custom")
	api.HandleFunc("/payments", h.InitiatePayment).Methods("POST").Name("payments.initiate")

	api.HandleFunc("/contact", h.SubmitContact).Methods("POST").Name("contact")
	api.HandleFunc("/newsletter", h.SubscribeNewsletter).Methods("POST").Name("newsletter")

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not Found", http.StatusNotFound)
	})

	return r
}
