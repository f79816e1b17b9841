// Package handlers provides HTTP handlers for the price catalog.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/marshals/brokerage/internal/modules/catalog"
)

// CatalogHandlers contains HTTP handlers for the price catalog API
type CatalogHandlers struct {
	catalog *catalog.Catalog
	log     zerolog.Logger
}

// NewCatalogHandlers creates a new catalog handlers instance
func NewCatalogHandlers(c *catalog.Catalog, log zerolog.Logger) *CatalogHandlers {
	return &CatalogHandlers{
		catalog: c,
		log:     log.With().Str("handler", "catalog").Logger(),
	}
}

// HandleListPrices returns the current price snapshot
// GET /api/prices
func (h *CatalogHandlers) HandleListPrices(w http.ResponseWriter, r *http.Request) {
	prices := h.catalog.List()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(prices); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode price list")
	}
}
