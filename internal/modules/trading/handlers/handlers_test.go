package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marshals/brokerage/internal/domain"
	"github.com/marshals/brokerage/internal/events"
	"github.com/marshals/brokerage/internal/modules/trading"
)

type stubCatalog struct {
	prices []domain.Price
}

func (s *stubCatalog) List() []domain.Price {
	return s.prices
}

type stubPortfolioGateway struct {
	portfolio *domain.ClientPortfolio
	getErr    error
}

func (s *stubPortfolioGateway) GetClientPortfolio(clientID string) (*domain.ClientPortfolio, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.portfolio, nil
}

func (s *stubPortfolioGateway) UpdateClientPortfolio(trade domain.Trade) error {
	return nil
}

type stubTradeStore struct {
	history *domain.TradeHistory
}

func (s *stubTradeStore) AddTrade(trade domain.Trade) error {
	return nil
}

func (s *stubTradeStore) GetClientTradeHistory(clientID string) (*domain.TradeHistory, error) {
	return s.history, nil
}

type stubTradeCreator struct{}

func (s *stubTradeCreator) GetLivePrices() ([]domain.Price, error) {
	return nil, nil
}

func (s *stubTradeCreator) CreateTrade(order domain.Order) (*domain.Trade, error) {
	return &domain.Trade{
		TradeID:    "trade-1",
		Order:      order,
		CashValue:  decimal.RequireFromString("104.75"),
		ExecutedAt: time.Now(),
	}, nil
}

func newTestRouter(portfolios *stubPortfolioGateway, trades *stubTradeStore) http.Handler {
	catalog := &stubCatalog{prices: []domain.Price{
		{
			Bid:        decimal.RequireFromString("104.75"),
			Ask:        decimal.RequireFromString("104.25"),
			Instrument: domain.Instrument{InstrumentID: "N123456"},
		},
	}}
	service := trading.NewService(
		catalog,
		portfolios,
		trades,
		&stubTradeCreator{},
		events.NewManager(zerolog.Nop()),
		zerolog.Nop(),
	)

	router := chi.NewRouter()
	NewTradingHandlers(service, zerolog.Nop()).RegisterRoutes(router)
	return router
}

func executeRequest(t *testing.T, router http.Handler, payload any) *httptest.ResponseRecorder {
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/trades/execute", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleExecuteTrade_Success(t *testing.T) {
	portfolios := &stubPortfolioGateway{portfolio: &domain.ClientPortfolio{
		ClientID: "client-1",
		Balance:  decimal.RequireFromString("200"),
	}}
	router := newTestRouter(portfolios, &stubTradeStore{})

	rec := executeRequest(t, router, domain.Order{
		OrderID:      "order-1",
		ClientID:     "client-1",
		InstrumentID: "N123456",
		Direction:    domain.DirectionBuy,
		Quantity:     1,
	})

	assert.Equal(t, http.StatusOK, rec.Code)

	var trade domain.Trade
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &trade))
	assert.Equal(t, "trade-1", trade.TradeID)
	assert.Equal(t, "order-1", trade.Order.OrderID)
}

func TestHandleExecuteTrade_MalformedPayload(t *testing.T) {
	router := newTestRouter(&stubPortfolioGateway{}, &stubTradeStore{})

	req := httptest.NewRequest(http.MethodPost, "/trades/execute", bytes.NewReader([]byte("not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotAcceptable, rec.Code)
}

func TestHandleExecuteTrade_MissingFields(t *testing.T) {
	router := newTestRouter(&stubPortfolioGateway{}, &stubTradeStore{})

	rec := executeRequest(t, router, domain.Order{
		ClientID:  "client-1",
		Direction: domain.DirectionBuy,
		Quantity:  0,
	})

	assert.Equal(t, http.StatusNotAcceptable, rec.Code)
}

func TestHandleExecuteTrade_InsufficientFundsMapsTo400(t *testing.T) {
	portfolios := &stubPortfolioGateway{portfolio: &domain.ClientPortfolio{
		ClientID: "client-1",
		Balance:  decimal.RequireFromString("50"),
	}}
	router := newTestRouter(portfolios, &stubTradeStore{})

	rec := executeRequest(t, router, domain.Order{
		OrderID:      "order-1",
		ClientID:     "client-1",
		InstrumentID: "N123456",
		Direction:    domain.DirectionBuy,
		Quantity:     1,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleExecuteTrade_UnknownInstrumentMapsTo404(t *testing.T) {
	portfolios := &stubPortfolioGateway{portfolio: &domain.ClientPortfolio{
		ClientID: "client-1",
		Balance:  decimal.RequireFromString("200"),
	}}
	router := newTestRouter(portfolios, &stubTradeStore{})

	rec := executeRequest(t, router, domain.Order{
		OrderID:      "order-1",
		ClientID:     "client-1",
		InstrumentID: "MISSING",
		Direction:    domain.DirectionBuy,
		Quantity:     1,
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleExecuteTrade_InvalidDirectionMapsTo406(t *testing.T) {
	portfolios := &stubPortfolioGateway{portfolio: &domain.ClientPortfolio{
		ClientID: "client-1",
		Balance:  decimal.RequireFromString("200"),
	}}
	router := newTestRouter(portfolios, &stubTradeStore{})

	rec := executeRequest(t, router, domain.Order{
		OrderID:      "order-1",
		ClientID:     "client-1",
		InstrumentID: "N123456",
		Direction:    "X",
		Quantity:     1,
	})

	assert.Equal(t, http.StatusNotAcceptable, rec.Code)
}

func TestHandleExecuteTrade_UnclassifiedErrorMapsTo500(t *testing.T) {
	portfolios := &stubPortfolioGateway{getErr: errors.New("disk corrupted")}
	router := newTestRouter(portfolios, &stubTradeStore{})

	rec := executeRequest(t, router, domain.Order{
		OrderID:      "order-1",
		ClientID:     "client-1",
		InstrumentID: "N123456",
		Direction:    domain.DirectionBuy,
		Quantity:     1,
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "disk corrupted")
}

func TestHandleGetTradeHistory(t *testing.T) {
	trades := &stubTradeStore{history: &domain.TradeHistory{
		ClientID: "client-1",
		Trades:   []domain.Trade{},
	}}
	router := newTestRouter(&stubPortfolioGateway{}, trades)

	req := httptest.NewRequest(http.MethodGet, "/trades/client-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var history domain.TradeHistory
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	assert.Equal(t, "client-1", history.ClientID)
	assert.Empty(t, history.Trades)
}
