package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/marshals/brokerage/internal/domain"
)

// SeedPrices returns the fixed fallback dataset installed when the live feed
// is unavailable at bootstrap. The values (including the as-of timestamp
// strings, carried verbatim from the upstream feed format) are deterministic
// so offline behavior is reproducible in tests.
func SeedPrices() []domain.Price {
	return []domain.Price{
		seedPrice("104.75", "104.25", "21-AUG-19 10.00.01.042000000 AM GMT",
			domain.Instrument{InstrumentID: "N123456", IDScheme: "CUSIP", ExternalID: "46625H100", AssetClass: "STOCK",
				Description: "JPMorgan Chase & Co. Capital Stock", LotSize: 1000, MinIncrement: 1}),
		seedPrice("312500", "312000", "21-AUG-19 05.00.00.040000000 AM -05:00",
			domain.Instrument{InstrumentID: "N123789", IDScheme: "ISIN", ExternalID: "US0846707026", AssetClass: "STOCK",
				Description: "Berkshire Hathaway Inc. Class A", LotSize: 10, MinIncrement: 1}),
		seedPrice("95.92", "95.42", "21-AUG-19 10.00.02.042000000 AM GMT",
			domain.Instrument{InstrumentID: "C100", IDScheme: "CUSIP", ExternalID: "48123Y5A0", AssetClass: "CD",
				Description: "JPMorgan Chase Bank, National Association 01/19", LotSize: 1000, MinIncrement: 100}),
		seedPrice("1.03375", "1.03390625", "21-AUG-19 10.00.02.000000000 AM GMT",
			domain.Instrument{InstrumentID: "T67890", IDScheme: "CUSIP", ExternalID: "9128285M8", AssetClass: "GOVT",
				Description: "USA, Note 3.125 15nov2028 10Y", LotSize: 10000, MinIncrement: 100}),
		seedPrice("0.998125", "0.99828125", "21-AUG-19 10.00.02.002000000 AM GMT",
			domain.Instrument{InstrumentID: "T67894", IDScheme: "CUSIP", ExternalID: "9128285Z9", AssetClass: "GOVT",
				Description: "USA, Note 2.5 31jan2024 5Y", LotSize: 10000, MinIncrement: 100}),
		seedPrice("1", "1.00015625", "21-AUG-19 10.00.02.002000000 AM GMT",
			domain.Instrument{InstrumentID: "T67895", IDScheme: "CUSIP", ExternalID: "9128286A3", AssetClass: "GOVT",
				Description: "USA, Note 2.625 31jan2026 7Y", LotSize: 10000, MinIncrement: 100}),
		seedPrice("0.999375", "0.999375", "21-AUG-19 10.00.02.002000000 AM GMT",
			domain.Instrument{InstrumentID: "T67897", IDScheme: "CUSIP", ExternalID: "9128285X4", AssetClass: "GOVT",
				Description: "USA, Note 2.5 31jan2021 2Y", LotSize: 10000, MinIncrement: 100}),
		seedPrice("0.999375", "0.999375", "21-AUG-19 10.00.02.002000000 AM GMT",
			domain.Instrument{InstrumentID: "T67899", IDScheme: "CUSIP", ExternalID: "9128285V8", AssetClass: "GOVT",
				Description: "USA, Notes 2.5% 15jan2022 3Y", LotSize: 10000, MinIncrement: 100}),
		seedPrice("1.00375", "1.00375", "21-AUG-19 10.00.02.002000000 AM GMT",
			domain.Instrument{InstrumentID: "T67880", IDScheme: "CUSIP", ExternalID: "9128285U0", AssetClass: "GOVT",
				Description: "USA, Note 1.5 31dec2023 5Y", LotSize: 10000, MinIncrement: 100}),
		seedPrice("1.0596875", "1.0596875", "21-AUG-19 10.00.02.002000000 AM GMT",
			domain.Instrument{InstrumentID: "T67883", IDScheme: "CUSIP", ExternalID: "912810SE9", AssetClass: "GOVT",
				Description: "USA, Bond 3.375 15nov2048 30Y", LotSize: 10000, MinIncrement: 100}),
		seedPrice("0.9853125", "0.98546875", "21-AUG-19 10.00.02.002000000 AM GMT",
			domain.Instrument{InstrumentID: "T67878", IDScheme: "CUSIP", ExternalID: "912810SD1", AssetClass: "GOVT",
				Description: "USA, Bond 3 15aug2048 30Y", LotSize: 10000, MinIncrement: 100}),
		seedPrice("1162.42", "1161.42", "21-AUG-19 06.52.20.350000000 PM AMERICA/NEW_YORK",
			domain.Instrument{InstrumentID: "Q123", IDScheme: "CUSIP", ExternalID: "02079K107", AssetClass: "STOCK",
				Description: "Alphabet Inc. Class C Capital Stock", LotSize: 1000, MinIncrement: 1}),
		seedPrice("323.39", "322.89", "21-AUG-19 06.52.20.356000000 PM AMERICA/NEW_YORK",
			domain.Instrument{InstrumentID: "Q456", IDScheme: "CUSIP", ExternalID: "88160R101", AssetClass: "STOCK",
				Description: "Tesla, Inc. Common Stock", LotSize: 1000, MinIncrement: 1}),
	}
}

func seedPrice(bid, ask, asOf string, instrument domain.Instrument) domain.Price {
	return domain.Price{
		Bid:        decimal.RequireFromString(bid),
		Ask:        decimal.RequireFromString(ask),
		AsOf:       asOf,
		Instrument: instrument,
	}
}
