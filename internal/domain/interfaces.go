package domain

// PortfolioGateway defines read/write access to a client's balance and holdings.
// The execution engine reads a snapshot and requests mutation; concurrency
// control over racing orders on the same client is the gateway's concern.
type PortfolioGateway interface {
	// GetClientPortfolio returns the client's current portfolio snapshot.
	// Fails for an unknown client; the engine surfaces that error unmasked.
	GetClientPortfolio(clientID string) (*ClientPortfolio, error)

	// UpdateClientPortfolio applies the trade's effect to balance and holdings
	UpdateClientPortfolio(trade Trade) error
}

// TradeStore defines durable storage for executed trades and trade history
type TradeStore interface {
	// AddTrade persists an executed trade
	AddTrade(trade Trade) error

	// GetClientTradeHistory returns the client's trade history, possibly empty
	GetClientTradeHistory(clientID string) (*TradeHistory, error)
}

// TradeCreator is the upstream pricing/execution service: it prices orders
// into trades and provides the authoritative live price feed.
type TradeCreator interface {
	// GetLivePrices returns the current live price list
	GetLivePrices() ([]Price, error)

	// CreateTrade produces a priced trade (cash value, execution timestamp) for the order
	CreateTrade(order Order) (*Trade, error)
}

// LivePriceFeed is the subset of the upstream service the price catalog needs
type LivePriceFeed interface {
	GetLivePrices() ([]Price, error)
}
