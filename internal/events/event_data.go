package events

// EventData is the interface that all event payload types implement.
// This keeps payloads type-safe while the manager stays generic.
type EventData interface {
	// EventType returns the event type this data is associated with
	EventType() EventType
}

// TradeExecutedData contains data for TradeExecuted events
type TradeExecutedData struct {
	TradeID      string `json:"trade_id"`
	OrderID      string `json:"order_id"`
	ClientID     string `json:"client_id"`
	InstrumentID string `json:"instrument_id"`
	Direction    string `json:"direction"`
	Quantity     int64  `json:"quantity"`
	CashValue    string `json:"cash_value"`
}

// EventType returns the event type for TradeExecutedData
func (d *TradeExecutedData) EventType() EventType {
	return TradeExecuted
}

// CatalogRefreshedData contains data for CatalogRefreshed events
type CatalogRefreshedData struct {
	Entries int  `json:"entries"`
	Seeded  bool `json:"seeded"` // true when the fallback dataset was installed
}

// EventType returns the event type for CatalogRefreshedData
func (d *CatalogRefreshedData) EventType() EventType {
	return CatalogRefreshed
}

// RecommendationsReadyData contains data for RecommendationsReady events
type RecommendationsReadyData struct {
	ClientID string `json:"client_id"`
	Side     string `json:"side"`
	Count    int    `json:"count"`
}

// EventType returns the event type for RecommendationsReadyData
func (d *RecommendationsReadyData) EventType() EventType {
	return RecommendationsReady
}
