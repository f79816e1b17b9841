package trading

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/marshals/brokerage/internal/domain"
	"github.com/marshals/brokerage/internal/events"
)

// PriceLister is the slice of the catalog the execution engine needs
type PriceLister interface {
	// List returns the current price snapshot in its natural iteration order
	List() []domain.Price
}

// Service is the trade execution engine. It orchestrates order validation,
// instrument matching, settlement checks, persistence and the portfolio
// update. It performs no retries and no recovery: every failure is logged
// once where it is detected and returned to the caller unchanged.
//
// The engine holds no client state of its own; all reads go through the
// catalog snapshot and the portfolio gateway, all writes through the
// gateways. Concurrency control over racing orders on the same client is the
// portfolio gateway's responsibility.
type Service struct {
	catalog      PriceLister
	portfolios   domain.PortfolioGateway
	trades       domain.TradeStore
	tradeCreator domain.TradeCreator
	eventManager *events.Manager
	log          zerolog.Logger
}

// NewService creates a new trade execution service
func NewService(
	catalog PriceLister,
	portfolios domain.PortfolioGateway,
	trades domain.TradeStore,
	tradeCreator domain.TradeCreator,
	eventManager *events.Manager,
	log zerolog.Logger,
) *Service {
	return &Service{
		catalog:      catalog,
		portfolios:   portfolios,
		trades:       trades,
		tradeCreator: tradeCreator,
		eventManager: eventManager,
		log:          log.With().Str("service", "trading").Logger(),
	}
}

// ExecuteTrade validates the order, matches it against the catalog (buy) or
// the client's holdings (sell), prices it through the upstream service and
// settles it. Exactly one persistence write and one portfolio update happen
// on success; none happen on any failure path.
//
// Matching is a first-match scan in natural order. The engine intentionally
// does not search for a best price across duplicate catalog entries.
func (s *Service) ExecuteTrade(order *domain.Order) (*domain.Trade, error) {
	if order == nil {
		err := fmt.Errorf("%w: order must not be nil", domain.ErrValidation)
		s.log.Error().Err(err).Msg("Trade execution rejected")
		return nil, err
	}

	portfolio, err := s.portfolios.GetClientPortfolio(order.ClientID)
	if err != nil {
		// Surfaced as the gateway raised it, not masked here
		s.log.Error().Err(err).Str("client_id", order.ClientID).Msg("Failed to load portfolio")
		return nil, err
	}

	switch order.Direction {
	case domain.DirectionBuy:
		return s.executeBuy(order, portfolio)
	case domain.DirectionSell:
		return s.executeSell(order, portfolio)
	default:
		err := fmt.Errorf("%w: %q", domain.ErrInvalidDirection, order.Direction)
		s.log.Error().Err(err).Str("order_id", order.OrderID).Msg("Trade execution rejected")
		return nil, err
	}
}

func (s *Service) executeBuy(order *domain.Order, portfolio *domain.ClientPortfolio) (*domain.Trade, error) {
	for _, price := range s.catalog.List() {
		if price.Instrument.InstrumentID != order.InstrumentID {
			continue
		}

		trade, err := s.createTrade(order)
		if err != nil {
			return nil, err
		}

		if portfolio.Balance.LessThan(trade.CashValue) {
			err := fmt.Errorf("%w: balance %s, cost %s",
				domain.ErrInsufficientFunds, portfolio.Balance, trade.CashValue)
			s.log.Error().Err(err).Str("order_id", order.OrderID).Msg("Buy rejected")
			return nil, err
		}

		if err := s.settle(trade); err != nil {
			return nil, err
		}
		return trade, nil
	}

	err := fmt.Errorf("%w: %s", domain.ErrUnknownInstrument, order.InstrumentID)
	s.log.Error().Err(err).Str("order_id", order.OrderID).Msg("Buy rejected")
	return nil, err
}

func (s *Service) executeSell(order *domain.Order, portfolio *domain.ClientPortfolio) (*domain.Trade, error) {
	for _, holding := range portfolio.Holdings {
		if holding.InstrumentID != order.InstrumentID {
			continue
		}

		if holding.Quantity < order.Quantity {
			err := fmt.Errorf("%w: held %d, selling %d",
				domain.ErrInsufficientHoldings, holding.Quantity, order.Quantity)
			s.log.Error().Err(err).Str("order_id", order.OrderID).Msg("Sell rejected")
			return nil, err
		}

		trade, err := s.createTrade(order)
		if err != nil {
			return nil, err
		}

		if err := s.settle(trade); err != nil {
			return nil, err
		}
		return trade, nil
	}

	err := fmt.Errorf("%w: %s", domain.ErrInstrumentNotHeld, order.InstrumentID)
	s.log.Error().Err(err).Str("order_id", order.OrderID).Msg("Sell rejected")
	return nil, err
}

// createTrade delegates pricing to the upstream service and stamps the
// original order identifier onto the returned trade.
func (s *Service) createTrade(order *domain.Order) (*domain.Trade, error) {
	trade, err := s.tradeCreator.CreateTrade(*order)
	if err != nil {
		s.log.Error().Err(err).Str("order_id", order.OrderID).Msg("Upstream trade creation failed")
		return nil, err
	}

	trade.Order.OrderID = order.OrderID
	if trade.TradeID == "" {
		trade.TradeID = uuid.NewString()
	}
	return trade, nil
}

// settle persists the trade and requests the portfolio update
func (s *Service) settle(trade *domain.Trade) error {
	if err := s.AddTrade(trade); err != nil {
		return err
	}

	if err := s.portfolios.UpdateClientPortfolio(*trade); err != nil {
		s.log.Error().Err(err).Str("trade_id", trade.TradeID).Msg("Portfolio update failed")
		return err
	}

	s.eventManager.Emit(&events.TradeExecutedData{
		TradeID:      trade.TradeID,
		OrderID:      trade.Order.OrderID,
		ClientID:     trade.Order.ClientID,
		InstrumentID: trade.Order.InstrumentID,
		Direction:    string(trade.Order.Direction),
		Quantity:     trade.Order.Quantity,
		CashValue:    trade.CashValue.String(),
	})

	return nil
}

// AddTrade persists a trade through the persistence gateway
func (s *Service) AddTrade(trade *domain.Trade) error {
	if trade == nil {
		err := fmt.Errorf("%w: trade must not be nil", domain.ErrValidation)
		s.log.Error().Err(err).Msg("Add trade rejected")
		return err
	}

	if err := s.trades.AddTrade(*trade); err != nil {
		s.log.Error().Err(err).Str("trade_id", trade.TradeID).Msg("Trade persistence failed")
		return err
	}
	return nil
}

// GetClientTradeHistory returns whatever the persistence gateway holds for
// the client, possibly empty.
func (s *Service) GetClientTradeHistory(clientID string) (*domain.TradeHistory, error) {
	if clientID == "" {
		err := fmt.Errorf("%w: client id must not be empty", domain.ErrValidation)
		s.log.Error().Err(err).Msg("Trade history rejected")
		return nil, err
	}

	history, err := s.trades.GetClientTradeHistory(clientID)
	if err != nil {
		s.log.Error().Err(err).Str("client_id", clientID).Msg("Failed to get trade history")
		return nil, err
	}
	return history, nil
}
