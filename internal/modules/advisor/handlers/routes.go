package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all advisor routes
func (h *AdvisorHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/advisor", func(r chi.Router) {
		r.Get("/{clientId}/buy", h.HandleSuggestBuy)
		r.Get("/{clientId}/sell", h.HandleSuggestSell)
	})
}
