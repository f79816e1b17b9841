package catalog

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/marshals/brokerage/internal/domain"
	"github.com/marshals/brokerage/internal/events"
)

// Refresher periodically replaces the catalog snapshot from the live feed.
// The snapshot swap inside Catalog.Refresh is atomic, so in-flight executions
// and recommendations keep reading the snapshot they started with.
type Refresher struct {
	cron         *cron.Cron
	catalog      *Catalog
	feed         domain.LivePriceFeed
	eventManager *events.Manager
	log          zerolog.Logger
}

// NewRefresher creates a cron-driven catalog refresher
func NewRefresher(catalog *Catalog, feed domain.LivePriceFeed, eventManager *events.Manager, log zerolog.Logger) *Refresher {
	return &Refresher{
		cron:         cron.New(),
		catalog:      catalog,
		feed:         feed,
		eventManager: eventManager,
		log:          log.With().Str("component", "catalog_refresher").Logger(),
	}
}

// Start schedules the refresh at the given cron expression and starts the scheduler
func (r *Refresher) Start(schedule string) error {
	_, err := r.cron.AddFunc(schedule, r.refresh)
	if err != nil {
		return fmt.Errorf("invalid catalog refresh schedule %q: %w", schedule, err)
	}
	r.cron.Start()
	r.log.Info().Str("schedule", schedule).Msg("Catalog refresher started")
	return nil
}

// Stop stops the scheduler; a refresh already running completes first
func (r *Refresher) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	r.log.Info().Msg("Catalog refresher stopped")
}

func (r *Refresher) refresh() {
	entries, err := r.catalog.Refresh(r.feed)
	if err != nil {
		r.log.Error().Err(err).Msg("Catalog refresh failed, keeping current snapshot")
		return
	}

	r.eventManager.Emit(&events.CatalogRefreshedData{Entries: entries})
}
