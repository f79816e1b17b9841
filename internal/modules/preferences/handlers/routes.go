package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all preferences routes
func (h *PreferencesHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/preferences", func(r chi.Router) {
		r.Get("/{clientId}", h.HandleGetPreferences)
		r.Put("/{clientId}", h.HandlePutPreferences)
	})
}
