package advisor

import (
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/marshals/brokerage/internal/domain"
	"github.com/marshals/brokerage/internal/events"
)

// maxRecommendations caps every suggestion list
const maxRecommendations = 5

// PriceLister is the slice of the catalog the advisor needs
type PriceLister interface {
	// List returns the current price snapshot in its natural iteration order
	List() []domain.Price
}

// Service is the recommendation engine. It reads the price catalog and the
// portfolio gateway only; it performs no writes.
//
// The random source is injected so tests can fix the sampling sequence.
// Sell sampling is uniform with replacement, so duplicates are possible;
// this mirrors the established product behavior rather than a ranking.
type Service struct {
	catalog      PriceLister
	portfolios   domain.PortfolioGateway
	eventManager *events.Manager
	rng          *rand.Rand
	log          zerolog.Logger
}

// NewService creates a new recommendation service
func NewService(
	catalog PriceLister,
	portfolios domain.PortfolioGateway,
	eventManager *events.Manager,
	rng *rand.Rand,
	log zerolog.Logger,
) *Service {
	return &Service{
		catalog:      catalog,
		portfolios:   portfolios,
		eventManager: eventManager,
		rng:          rng,
		log:          log.With().Str("service", "advisor").Logger(),
	}
}

// RecommendTopBuy returns up to 5 catalog prices the client could buy.
//
// Selection is a threshold filter in catalog iteration order, not a sort by
// score: a price qualifies when its score is below the client's preference
// threshold and the balance covers its bid. The first 5 qualifiers win.
func (s *Service) RecommendTopBuy(prefs domain.ClientPreferences) ([]domain.Price, error) {
	if !prefs.AcceptAdvisor {
		err := fmt.Errorf("%w: client %s", domain.ErrAdvisorNotAccepted, prefs.ClientID)
		s.log.Error().Err(err).Msg("Buy recommendation rejected")
		return nil, err
	}

	portfolio, err := s.portfolios.GetClientPortfolio(prefs.ClientID)
	if err != nil {
		s.log.Error().Err(err).Str("client_id", prefs.ClientID).Msg("Failed to load portfolio")
		return nil, err
	}

	threshold := BuyThreshold(prefs)
	recommended := []domain.Price{}

	for _, price := range s.catalog.List() {
		if len(recommended) == maxRecommendations {
			break
		}
		if Score(price, prefs).GreaterThanOrEqual(threshold) {
			continue
		}
		if portfolio.Balance.Sub(price.Bid).IsNegative() {
			// Not enough balance to buy at the bid
			continue
		}
		recommended = append(recommended, price)
	}

	s.eventManager.Emit(&events.RecommendationsReadyData{
		ClientID: prefs.ClientID,
		Side:     "buy",
		Count:    len(recommended),
	})

	return recommended, nil
}

// RecommendTopSell returns up to 5 prices for holdings the client could sell.
//
// With 5 or fewer holdings every holding is selected. Otherwise 5 holdings
// are drawn by independent uniform sampling with replacement, so the result
// is non-deterministic and may contain duplicates. Each selected holding maps
// to the first catalog price matching its instrument; holdings without a
// catalog entry are silently skipped.
func (s *Service) RecommendTopSell(prefs domain.ClientPreferences) ([]domain.Price, error) {
	if !prefs.AcceptAdvisor {
		err := fmt.Errorf("%w: client %s", domain.ErrAdvisorNotAccepted, prefs.ClientID)
		s.log.Error().Err(err).Msg("Sell recommendation rejected")
		return nil, err
	}

	portfolio, err := s.portfolios.GetClientPortfolio(prefs.ClientID)
	if err != nil {
		s.log.Error().Err(err).Str("client_id", prefs.ClientID).Msg("Failed to load portfolio")
		return nil, err
	}

	var selected []domain.Holding
	if len(portfolio.Holdings) <= maxRecommendations {
		selected = portfolio.Holdings
	} else {
		for i := 0; i < maxRecommendations; i++ {
			selected = append(selected, portfolio.Holdings[s.rng.Intn(len(portfolio.Holdings))])
		}
	}

	catalog := s.catalog.List()
	recommended := []domain.Price{}
	for _, holding := range selected {
		for _, price := range catalog {
			if price.Instrument.InstrumentID == holding.InstrumentID {
				recommended = append(recommended, price)
				break
			}
		}
	}

	s.eventManager.Emit(&events.RecommendationsReadyData{
		ClientID: prefs.ClientID,
		Side:     "sell",
		Count:    len(recommended),
	})

	return recommended, nil
}
