package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all trading routes
func (h *TradingHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/trades", func(r chi.Router) {
		r.Post("/execute", h.HandleExecuteTrade)
		r.Get("/{clientId}", h.HandleGetTradeHistory)
	})
}
