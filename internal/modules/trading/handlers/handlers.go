// Package handlers provides HTTP handlers for trade execution and history.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/marshals/brokerage/internal/domain"
	"github.com/marshals/brokerage/internal/modules/trading"
	"github.com/marshals/brokerage/internal/server/httperr"
)

// TradingHandlers contains HTTP handlers for the trading API
type TradingHandlers struct {
	service *trading.Service
	log     zerolog.Logger
}

// NewTradingHandlers creates a new trading handlers instance
func NewTradingHandlers(service *trading.Service, log zerolog.Logger) *TradingHandlers {
	return &TradingHandlers{
		service: service,
		log:     log.With().Str("handler", "trading").Logger(),
	}
}

// HandleExecuteTrade validates and executes an order
// POST /api/trades/execute
func (h *TradingHandlers) HandleExecuteTrade(w http.ResponseWriter, r *http.Request) {
	var order domain.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		http.Error(w, "invalid order payload", http.StatusNotAcceptable)
		return
	}

	if order.ClientID == "" || order.InstrumentID == "" || order.Quantity <= 0 {
		http.Error(w, "client id, instrument id and a positive quantity are required", http.StatusNotAcceptable)
		return
	}

	trade, err := h.service.ExecuteTrade(&order)
	if err != nil {
		// Already logged at the point of detection
		httperr.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(trade); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode trade")
	}
}

// HandleGetTradeHistory returns a client's trade history, most recent first
// GET /api/trades/{clientId}
func (h *TradingHandlers) HandleGetTradeHistory(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientId")

	history, err := h.service.GetClientTradeHistory(clientID)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(history); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode trade history")
	}
}
