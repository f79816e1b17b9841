// Package server provides the HTTP server and routing for the brokerage service.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	advisorhandlers "github.com/marshals/brokerage/internal/modules/advisor/handlers"
	cataloghandlers "github.com/marshals/brokerage/internal/modules/catalog/handlers"
	portfoliohandlers "github.com/marshals/brokerage/internal/modules/portfolio/handlers"
	preferenceshandlers "github.com/marshals/brokerage/internal/modules/preferences/handlers"
	tradinghandlers "github.com/marshals/brokerage/internal/modules/trading/handlers"
)

// Config holds server configuration
type Config struct {
	Port                int
	DevMode             bool
	Log                 zerolog.Logger
	TradingHandlers     *tradinghandlers.TradingHandlers
	AdvisorHandlers     *advisorhandlers.AdvisorHandlers
	CatalogHandlers     *cataloghandlers.CatalogHandlers
	PortfolioHandlers   *portfoliohandlers.PortfolioHandlers
	PreferencesHandlers *preferenceshandlers.PreferencesHandlers
}

// Server represents the HTTP server
type Server struct {
	router *chi.Mux
	server *http.Server
	log    zerolog.Logger
}

// New creates a new HTTP server and wires all module routes
func New(cfg Config) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(30 * time.Second))

	if cfg.DevMode {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
		}))
	}

	router.Get("/health", handleHealth)

	router.Route("/api", func(r chi.Router) {
		cfg.CatalogHandlers.RegisterRoutes(r)
		cfg.TradingHandlers.RegisterRoutes(r)
		cfg.AdvisorHandlers.RegisterRoutes(r)
		cfg.PortfolioHandlers.RegisterRoutes(r)
		cfg.PreferencesHandlers.RegisterRoutes(r)
	})

	return &Server{
		router: router,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		log: cfg.Log.With().Str("component", "server").Logger(),
	}
}

// Start begins serving requests and blocks until the server stops
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("HTTP server listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Router exposes the router for tests
func (s *Server) Router() http.Handler {
	return s.router
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
