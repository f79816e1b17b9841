// Package main is the entry point for the brokerage trade execution and
// recommendation service. It matches client orders against the price catalog,
// settles them against client portfolios, keeps the trade ledger, and serves
// robo-advisor buy/sell suggestions.
package main

import (
	"context"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/marshals/brokerage/internal/clients/fmts"
	"github.com/marshals/brokerage/internal/config"
	"github.com/marshals/brokerage/internal/database"
	"github.com/marshals/brokerage/internal/events"
	"github.com/marshals/brokerage/internal/modules/advisor"
	advisorhandlers "github.com/marshals/brokerage/internal/modules/advisor/handlers"
	"github.com/marshals/brokerage/internal/modules/catalog"
	cataloghandlers "github.com/marshals/brokerage/internal/modules/catalog/handlers"
	"github.com/marshals/brokerage/internal/modules/portfolio"
	portfoliohandlers "github.com/marshals/brokerage/internal/modules/portfolio/handlers"
	"github.com/marshals/brokerage/internal/modules/preferences"
	preferenceshandlers "github.com/marshals/brokerage/internal/modules/preferences/handlers"
	"github.com/marshals/brokerage/internal/modules/trading"
	tradinghandlers "github.com/marshals/brokerage/internal/modules/trading/handlers"
	"github.com/marshals/brokerage/internal/server"
	"github.com/marshals/brokerage/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New(logger.Config{Level: "info", Pretty: true})
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	log.Info().Msg("Starting brokerage service")

	// Two-database layout: the trade ledger is append-only and runs with
	// maximum durability; client state (portfolios, preferences) is mutable.
	ledgerDB, err := database.New(database.Config{
		Path:    cfg.LedgerDBPath(),
		Profile: database.ProfileLedger,
		Name:    "ledger",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open ledger database")
	}
	defer ledgerDB.Close()

	clientsDB, err := database.New(database.Config{
		Path:    cfg.ClientsDBPath(),
		Profile: database.ProfileStandard,
		Name:    "clients",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open clients database")
	}
	defer clientsDB.Close()

	for _, db := range []*database.DB{ledgerDB, clientsDB} {
		if err := db.Migrate(); err != nil {
			log.Fatal().Err(err).Str("db", db.Name()).Msg("Failed to apply schema")
		}
	}

	eventManager := events.NewManager(log)

	// Upstream pricing/execution service. The catalog falls back to its seed
	// dataset when the feed is unreachable at startup.
	fmtsClient := fmts.NewClient(cfg.FMTSBaseURL, log)

	priceCatalog := catalog.New(log)
	seeded := priceCatalog.Bootstrap(fmtsClient)
	eventManager.Emit(&events.CatalogRefreshedData{
		Entries: len(priceCatalog.List()),
		Seeded:  seeded,
	})

	var refresher *catalog.Refresher
	if cfg.CatalogRefreshCron != "" {
		refresher = catalog.NewRefresher(priceCatalog, fmtsClient, eventManager, log)
		if err := refresher.Start(cfg.CatalogRefreshCron); err != nil {
			log.Fatal().Err(err).Msg("Failed to start catalog refresher")
		}
	}

	portfolioRepo := portfolio.NewPortfolioRepository(clientsDB.Conn(), log)
	tradeRepo := trading.NewTradeRepository(ledgerDB.Conn(), log)
	preferencesRepo := preferences.NewRepository(clientsDB.Conn(), log)

	tradingService := trading.NewService(priceCatalog, portfolioRepo, tradeRepo, fmtsClient, eventManager, log)
	advisorService := advisor.NewService(
		priceCatalog,
		portfolioRepo,
		eventManager,
		rand.New(rand.NewSource(time.Now().UnixNano())),
		log,
	)

	srv := server.New(server.Config{
		Port:                cfg.Port,
		DevMode:             cfg.DevMode,
		Log:                 log,
		TradingHandlers:     tradinghandlers.NewTradingHandlers(tradingService, log),
		AdvisorHandlers:     advisorhandlers.NewAdvisorHandlers(advisorService, preferencesRepo, log),
		CatalogHandlers:     cataloghandlers.NewCatalogHandlers(priceCatalog, log),
		PortfolioHandlers:   portfoliohandlers.NewPortfolioHandlers(portfolioRepo, log),
		PreferencesHandlers: preferenceshandlers.NewPreferencesHandlers(preferencesRepo, log),
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Shutting down")
	}

	if refresher != nil {
		refresher.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}

	log.Info().Msg("Brokerage service stopped")
}
