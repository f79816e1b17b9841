// Package advisor derives per-instrument attractiveness scores and turns the
// catalog and the client's holdings into buy/sell suggestions.
package advisor

import (
	"github.com/shopspring/decimal"

	"github.com/marshals/brokerage/internal/domain"
)

var (
	one              = decimal.NewFromInt(1)
	thousand         = decimal.NewFromInt(1000)
	aggregateWeight  = decimal.NewFromInt(5)
	aggregateCeiling = decimal.NewFromInt(25)
)

// Score computes the attractiveness score of a price from its bid/ask spread.
//
// The spread (ask minus bid, which may be negative) is rounded half-up to 4
// fractional digits. A spread with absolute value above 1 is scaled down by
// 1000, keeping its sign; otherwise the absolute spread is the score.
//
// The preferences argument is accepted for interface parity but does not
// influence the result; risk tolerance only feeds the client-level aggregate.
func Score(price domain.Price, prefs domain.ClientPreferences) decimal.Decimal {
	spread := price.Ask.Sub(price.Bid).Round(4)

	if spread.Abs().GreaterThan(one) {
		return spread.Div(thousand)
	}
	return spread.Abs()
}

// ClientScore is the coarse, client-level preference aggregate: risk
// tolerance (1-5) scaled onto a 5-25 range. Divided by 25 it becomes the
// per-client inclusion threshold for buy recommendations.
func ClientScore(prefs domain.ClientPreferences) decimal.Decimal {
	return decimal.NewFromInt(int64(prefs.RiskTolerance)).Mul(aggregateWeight)
}

// BuyThreshold returns the inclusion threshold for buy recommendations
func BuyThreshold(prefs domain.ClientPreferences) decimal.Decimal {
	return ClientScore(prefs).Div(aggregateCeiling)
}
