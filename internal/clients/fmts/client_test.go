package fmts

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marshals/brokerage/internal/domain"
)

func TestGetLivePrices_Success(t *testing.T) {
	prices := []domain.Price{
		{
			Bid:        decimal.RequireFromString("104.75"),
			Ask:        decimal.RequireFromString("104.25"),
			AsOf:       "21-AUG-19 10.00.01.042000000 AM GMT",
			Instrument: domain.Instrument{InstrumentID: "N123456"},
		},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fmts/prices", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		json.NewEncoder(w).Encode(prices)
	}))
	defer server.Close()

	client := NewClient(server.URL, zerolog.Nop())

	got, err := client.GetLivePrices()

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "N123456", got[0].Instrument.InstrumentID)
	assert.True(t, decimal.RequireFromString("104.75").Equal(got[0].Bid))
}

func TestGetLivePrices_ServerErrorMapsToUpstreamUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, zerolog.Nop())

	_, err := client.GetLivePrices()

	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestGetLivePrices_ConnectionRefusedMapsToUpstreamUnavailable(t *testing.T) {
	// Server closed before the request is made
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, zerolog.Nop())

	_, err := client.GetLivePrices()

	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestGetLivePrices_MalformedBodyMapsToUpstreamUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClient(server.URL, zerolog.Nop())

	_, err := client.GetLivePrices()

	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestCreateTrade_Success(t *testing.T) {
	executedAt := time.Date(2026, 8, 21, 10, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fmts/trades", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var order domain.Order
		require.NoError(t, json.NewDecoder(r.Body).Decode(&order))
		assert.Equal(t, "N123456", order.InstrumentID)

		json.NewEncoder(w).Encode(domain.Trade{
			TradeID:    "fmts-trade-1",
			Order:      order,
			CashValue:  decimal.RequireFromString("104.75"),
			ExecutedAt: executedAt,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, zerolog.Nop())

	trade, err := client.CreateTrade(domain.Order{
		OrderID:      "order-1",
		ClientID:     "client-1",
		InstrumentID: "N123456",
		Direction:    domain.DirectionBuy,
		Quantity:     1,
	})

	require.NoError(t, err)
	assert.Equal(t, "fmts-trade-1", trade.TradeID)
	assert.True(t, decimal.RequireFromString("104.75").Equal(trade.CashValue))
	assert.True(t, executedAt.Equal(trade.ExecutedAt))
}

func TestCreateTrade_RejectionMapsToUpstreamUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer server.Close()

	client := NewClient(server.URL, zerolog.Nop())

	_, err := client.CreateTrade(domain.Order{OrderID: "order-1"})

	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}
