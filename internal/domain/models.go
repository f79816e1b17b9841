// Package domain provides core domain models and types.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction represents the side of an order
type Direction string

const (
	// DirectionBuy buys an instrument from the catalog
	DirectionBuy Direction = "B"
	// DirectionSell sells an instrument out of the client's holdings
	DirectionSell Direction = "S"
)

// Instrument is immutable reference data for a tradable security
type Instrument struct {
	InstrumentID string `json:"instrument_id"`
	IDScheme     string `json:"id_scheme"` // "CUSIP" or "ISIN"
	ExternalID   string `json:"external_id"`
	AssetClass   string `json:"asset_class"` // STOCK, CD, GOVT
	Description  string `json:"description"`
	LotSize      int64  `json:"lot_size"`
	MinIncrement int64  `json:"min_increment"`
}

// Price is the current bid/ask quote for an instrument at a point in time.
// The as-of timestamp is carried verbatim as the upstream feed formats it.
type Price struct {
	Bid        decimal.Decimal `json:"bid"`
	Ask        decimal.Decimal `json:"ask"`
	AsOf       string          `json:"as_of"`
	Instrument Instrument      `json:"instrument"`
}

// Order is a client's request to buy or sell a quantity of an instrument
type Order struct {
	OrderID      string    `json:"order_id"`
	ClientID     string    `json:"client_id"`
	InstrumentID string    `json:"instrument_id"`
	Direction    Direction `json:"direction"`
	Quantity     int64     `json:"quantity"`
}

// Trade is the settled record of an executed order. Created exactly once per
// successful execution, immutable thereafter.
type Trade struct {
	TradeID    string          `json:"trade_id"`
	Order      Order           `json:"order"`
	CashValue  decimal.Decimal `json:"cash_value"`
	ExecutedAt time.Time       `json:"executed_at"`
}

// Holding is a client's owned quantity of an instrument
type Holding struct {
	InstrumentID string `json:"instrument_id"`
	Quantity     int64  `json:"quantity"`
}

// ClientPortfolio is a client's balance plus ordered holdings. It is owned and
// mutated exclusively by the portfolio gateway; the engine reads a snapshot and
// requests mutation via UpdateClientPortfolio.
type ClientPortfolio struct {
	ClientID string          `json:"client_id"`
	Balance  decimal.Decimal `json:"balance"`
	Holdings []Holding       `json:"holdings"`
}

// HoldingFor returns the first holding matching the instrument, or nil.
// First match wins; the scan does not look for a better entry further on.
func (p *ClientPortfolio) HoldingFor(instrumentID string) *Holding {
	for i := range p.Holdings {
		if p.Holdings[i].InstrumentID == instrumentID {
			return &p.Holdings[i]
		}
	}
	return nil
}

// ClientPreferences holds the robo-advisor preferences a client filled in.
// RiskTolerance is read by the preference aggregate but does not influence
// per-instrument scoring.
type ClientPreferences struct {
	ClientID           string `json:"client_id"`
	InvestmentPurpose  string `json:"investment_purpose"`
	IncomeCategory     string `json:"income_category"`
	LengthOfInvestment string `json:"length_of_investment"`
	PercentageOfSpend  string `json:"percentage_of_spend"`
	RiskTolerance      int    `json:"risk_tolerance"` // 1 (lowest) to 5 (highest)
	AcceptAdvisor      bool   `json:"accept_advisor"`
}

// TradeHistory is the ordered sequence of trades for a client
type TradeHistory struct {
	ClientID string  `json:"client_id"`
	Trades   []Trade `json:"trades"`
}
