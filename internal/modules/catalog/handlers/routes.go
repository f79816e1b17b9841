package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all catalog routes
func (h *CatalogHandlers) RegisterRoutes(r chi.Router) {
	r.Get("/prices", h.HandleListPrices)
}
