// Package catalog holds the current tradable price snapshot.
//
// The snapshot is the only state owned by the core. It is installed once at
// bootstrap and only ever replaced wholesale via an atomic pointer swap, so
// concurrent readers never observe a partially updated catalog.
package catalog

import (
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/marshals/brokerage/internal/domain"
)

// Catalog holds the current set of tradable price entries
type Catalog struct {
	snapshot atomic.Pointer[[]domain.Price]
	log      zerolog.Logger
}

// New creates an empty catalog. Bootstrap must be called before use.
func New(log zerolog.Logger) *Catalog {
	c := &Catalog{
		log: log.With().Str("component", "catalog").Logger(),
	}
	empty := []domain.Price{}
	c.snapshot.Store(&empty)
	return c
}

// Bootstrap attempts to fetch the live price list from the upstream feed.
// On upstream failure it substitutes the fixed seed dataset so the system
// stays operable offline. Returns true when the seed dataset was installed.
//
// This is the only fallback behavior in the core; Refresh does not substitute.
func (c *Catalog) Bootstrap(feed domain.LivePriceFeed) bool {
	prices, err := feed.GetLivePrices()
	if err != nil || len(prices) == 0 {
		seed := SeedPrices()
		c.snapshot.Store(&seed)
		c.log.Warn().Err(err).Int("entries", len(seed)).Msg("Live price feed unavailable, seed dataset installed")
		return true
	}

	c.snapshot.Store(&prices)
	c.log.Info().Int("entries", len(prices)).Msg("Catalog bootstrapped from live feed")
	return false
}

// Refresh replaces the snapshot with a fresh live price list. Unlike
// Bootstrap it fails instead of substituting the seed dataset.
func (c *Catalog) Refresh(feed domain.LivePriceFeed) (int, error) {
	prices, err := feed.GetLivePrices()
	if err != nil {
		return 0, fmt.Errorf("refresh catalog: %w", err)
	}

	c.snapshot.Store(&prices)
	c.log.Info().Int("entries", len(prices)).Msg("Catalog refreshed")
	return len(prices), nil
}

// List returns the current snapshot in its natural iteration order.
// Callers must treat the returned slice as read-only.
func (c *Catalog) List() []domain.Price {
	return *c.snapshot.Load()
}
