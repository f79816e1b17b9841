// Package fmts provides the client for the upstream pricing and execution
// service (FMTS). FMTS owns price discovery and trade pricing: it publishes
// the live price list and turns orders into priced trades.
package fmts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/marshals/brokerage/internal/domain"
)

// Client for the FMTS API
type Client struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

// NewClient creates a new FMTS client
func NewClient(baseURL string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		log:     log.With().Str("client", "fmts").Logger(),
	}
}

// GetLivePrices fetches the current live price list.
// Any transport failure or non-OK status maps to domain.ErrUpstreamUnavailable
// so the catalog can fall back to its seed dataset.
func (c *Client) GetLivePrices() ([]domain.Price, error) {
	url := c.baseURL + "/fmts/prices"
	c.log.Debug().Str("url", url).Msg("Fetching live prices")

	resp, err := c.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch live prices: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: live prices returned status %d", domain.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var prices []domain.Price
	if err := json.NewDecoder(resp.Body).Decode(&prices); err != nil {
		return nil, fmt.Errorf("%w: decode live prices: %v", domain.ErrUpstreamUnavailable, err)
	}

	c.log.Debug().Int("count", len(prices)).Msg("Fetched live prices")
	return prices, nil
}

// CreateTrade asks FMTS to price the order into a trade. The returned trade
// carries the settlement cash value and execution timestamp; the order
// identifier is stamped back on by the execution engine, not here.
func (c *Client) CreateTrade(order domain.Order) (*domain.Trade, error) {
	url := c.baseURL + "/fmts/trades"

	body, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("%w: encode order: %v", domain.ErrUpstreamUnavailable, err)
	}

	c.log.Debug().
		Str("url", url).
		Str("client_id", order.ClientID).
		Str("instrument_id", order.InstrumentID).
		Str("direction", string(order.Direction)).
		Msg("Creating trade")

	resp, err := c.client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: create trade: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("%w: create trade returned status %d", domain.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var trade domain.Trade
	if err := json.NewDecoder(resp.Body).Decode(&trade); err != nil {
		return nil, fmt.Errorf("%w: decode trade: %v", domain.ErrUpstreamUnavailable, err)
	}

	return &trade, nil
}
