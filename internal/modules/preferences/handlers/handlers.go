// Package handlers provides HTTP handlers for client preferences.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/marshals/brokerage/internal/domain"
	"github.com/marshals/brokerage/internal/modules/preferences"
)

// PreferencesHandlers contains HTTP handlers for the preferences API
type PreferencesHandlers struct {
	repo *preferences.Repository
	log  zerolog.Logger
}

// NewPreferencesHandlers creates a new preferences handlers instance
func NewPreferencesHandlers(repo *preferences.Repository, log zerolog.Logger) *PreferencesHandlers {
	return &PreferencesHandlers{
		repo: repo,
		log:  log.With().Str("handler", "preferences").Logger(),
	}
}

// HandleGetPreferences returns a client's advisor preferences
// GET /api/preferences/{clientId}
func (h *PreferencesHandlers) HandleGetPreferences(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientId")

	prefs, err := h.repo.Get(clientID)
	if err != nil {
		if errors.Is(err, preferences.ErrPreferencesNotFound) {
			http.Error(w, "preferences not found", http.StatusNotFound)
			return
		}
		h.log.Error().Err(err).Str("client_id", clientID).Msg("Failed to get preferences")
		http.Error(w, "failed to get preferences", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(prefs); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode preferences")
	}
}

// HandlePutPreferences stores a client's advisor preferences
// PUT /api/preferences/{clientId}
func (h *PreferencesHandlers) HandlePutPreferences(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientId")

	var prefs domain.ClientPreferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		http.Error(w, "invalid request body", http.StatusNotAcceptable)
		return
	}
	prefs.ClientID = clientID

	if prefs.RiskTolerance < 1 || prefs.RiskTolerance > 5 {
		http.Error(w, "risk tolerance must be between 1 and 5", http.StatusNotAcceptable)
		return
	}

	if err := h.repo.Upsert(prefs); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			http.Error(w, err.Error(), http.StatusNotAcceptable)
			return
		}
		h.log.Error().Err(err).Str("client_id", clientID).Msg("Failed to save preferences")
		http.Error(w, "failed to save preferences", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
