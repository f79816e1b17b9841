// Package handlers provides HTTP handlers for client portfolios.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/marshals/brokerage/internal/modules/portfolio"
)

// PortfolioHandlers contains HTTP handlers for the portfolio API
type PortfolioHandlers struct {
	repo *portfolio.PortfolioRepository
	log  zerolog.Logger
}

// NewPortfolioHandlers creates a new portfolio handlers instance
func NewPortfolioHandlers(repo *portfolio.PortfolioRepository, log zerolog.Logger) *PortfolioHandlers {
	return &PortfolioHandlers{
		repo: repo,
		log:  log.With().Str("handler", "portfolio").Logger(),
	}
}

// HandleGetPortfolio returns a client's balance and holdings
// GET /api/portfolio/{clientId}
func (h *PortfolioHandlers) HandleGetPortfolio(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientId")
	if clientID == "" {
		http.Error(w, "client id is required", http.StatusNotAcceptable)
		return
	}

	p, err := h.repo.GetClientPortfolio(clientID)
	if err != nil {
		if errors.Is(err, portfolio.ErrClientNotFound) {
			http.Error(w, "client not found", http.StatusNotFound)
			return
		}
		h.log.Error().Err(err).Str("client_id", clientID).Msg("Failed to get portfolio")
		http.Error(w, "failed to get portfolio", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(p); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode portfolio")
	}
}
