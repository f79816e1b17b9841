// Package handlers provides HTTP handlers for robo-advisor recommendations.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/marshals/brokerage/internal/domain"
	"github.com/marshals/brokerage/internal/modules/advisor"
	"github.com/marshals/brokerage/internal/modules/preferences"
	"github.com/marshals/brokerage/internal/server/httperr"
)

// AdvisorHandlers contains HTTP handlers for the advisor API
type AdvisorHandlers struct {
	service *advisor.Service
	prefs   *preferences.Repository
	log     zerolog.Logger
}

// NewAdvisorHandlers creates a new advisor handlers instance
func NewAdvisorHandlers(service *advisor.Service, prefs *preferences.Repository, log zerolog.Logger) *AdvisorHandlers {
	return &AdvisorHandlers{
		service: service,
		prefs:   prefs,
		log:     log.With().Str("handler", "advisor").Logger(),
	}
}

// HandleSuggestBuy returns buy recommendations for a client
// GET /api/advisor/{clientId}/buy
func (h *AdvisorHandlers) HandleSuggestBuy(w http.ResponseWriter, r *http.Request) {
	h.recommend(w, r, h.service.RecommendTopBuy)
}

// HandleSuggestSell returns sell recommendations for a client
// GET /api/advisor/{clientId}/sell
func (h *AdvisorHandlers) HandleSuggestSell(w http.ResponseWriter, r *http.Request) {
	h.recommend(w, r, h.service.RecommendTopSell)
}

func (h *AdvisorHandlers) recommend(
	w http.ResponseWriter,
	r *http.Request,
	suggest func(domain.ClientPreferences) ([]domain.Price, error),
) {
	clientID := chi.URLParam(r, "clientId")
	if clientID == "" {
		http.Error(w, "client id is required", http.StatusNotAcceptable)
		return
	}

	prefs, err := h.prefs.Get(clientID)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	prices, err := suggest(*prefs)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(prices); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode recommendations")
	}
}
