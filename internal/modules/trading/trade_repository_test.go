package trading

import (
	"database/sql"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/marshals/brokerage/internal/domain"
)

// setupLedgerDB creates an in-memory ledger database matching the trades schema
func setupLedgerDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		CREATE TABLE trades (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			trade_id      TEXT NOT NULL UNIQUE,
			order_id      TEXT NOT NULL,
			client_id     TEXT NOT NULL,
			instrument_id TEXT NOT NULL,
			direction     TEXT NOT NULL CHECK (direction IN ('B', 'S')),
			quantity      INTEGER NOT NULL CHECK (quantity > 0),
			cash_value    TEXT NOT NULL,
			executed_at   INTEGER NOT NULL,
			created_at    INTEGER NOT NULL
		);
	`)
	require.NoError(t, err)

	return db
}

func testTrade(tradeID, clientID string, direction domain.Direction, executedAt time.Time) domain.Trade {
	return domain.Trade{
		TradeID: tradeID,
		Order: domain.Order{
			OrderID:      "order-" + tradeID,
			ClientID:     clientID,
			InstrumentID: "N123456",
			Direction:    direction,
			Quantity:     10,
		},
		CashValue:  decimal.RequireFromString("1047.50"),
		ExecutedAt: executedAt,
	}
}

func TestAddTrade_PersistsAndRoundTrips(t *testing.T) {
	repo := NewTradeRepository(setupLedgerDB(t), zerolog.Nop())
	executedAt := time.Date(2026, 8, 21, 10, 0, 0, 0, time.UTC)

	err := repo.AddTrade(testTrade("t1", "client-1", domain.DirectionBuy, executedAt))
	require.NoError(t, err)

	history, err := repo.GetClientTradeHistory("client-1")
	require.NoError(t, err)
	require.Len(t, history.Trades, 1)

	trade := history.Trades[0]
	assert.Equal(t, "t1", trade.TradeID)
	assert.Equal(t, "order-t1", trade.Order.OrderID)
	assert.Equal(t, "N123456", trade.Order.InstrumentID)
	assert.Equal(t, domain.DirectionBuy, trade.Order.Direction)
	assert.Equal(t, int64(10), trade.Order.Quantity)
	assert.True(t, decimal.RequireFromString("1047.50").Equal(trade.CashValue))
	assert.Equal(t, executedAt.Unix(), trade.ExecutedAt.Unix())
}

func TestAddTrade_DuplicateTradeIDFails(t *testing.T) {
	repo := NewTradeRepository(setupLedgerDB(t), zerolog.Nop())
	executedAt := time.Now()

	require.NoError(t, repo.AddTrade(testTrade("t1", "client-1", domain.DirectionBuy, executedAt)))

	err := repo.AddTrade(testTrade("t1", "client-1", domain.DirectionSell, executedAt))

	assert.ErrorIs(t, err, domain.ErrPersistence)
}

func TestGetClientTradeHistory_UnknownClientIsEmpty(t *testing.T) {
	repo := NewTradeRepository(setupLedgerDB(t), zerolog.Nop())

	history, err := repo.GetClientTradeHistory("nobody")

	require.NoError(t, err)
	assert.Equal(t, "nobody", history.ClientID)
	assert.Empty(t, history.Trades)
}

func TestGetClientTradeHistory_MostRecentFirst(t *testing.T) {
	repo := NewTradeRepository(setupLedgerDB(t), zerolog.Nop())
	base := time.Date(2026, 8, 21, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.AddTrade(testTrade("t1", "client-1", domain.DirectionBuy, base)))
	require.NoError(t, repo.AddTrade(testTrade("t2", "client-1", domain.DirectionSell, base.Add(time.Minute))))
	require.NoError(t, repo.AddTrade(testTrade("t3", "client-1", domain.DirectionBuy, base.Add(2*time.Minute))))

	history, err := repo.GetClientTradeHistory("client-1")

	require.NoError(t, err)
	require.Len(t, history.Trades, 3)
	assert.Equal(t, "t3", history.Trades[0].TradeID)
	assert.Equal(t, "t2", history.Trades[1].TradeID)
	assert.Equal(t, "t1", history.Trades[2].TradeID)
}

func TestGetClientTradeHistory_FiltersByClient(t *testing.T) {
	repo := NewTradeRepository(setupLedgerDB(t), zerolog.Nop())
	executedAt := time.Now()

	require.NoError(t, repo.AddTrade(testTrade("t1", "client-1", domain.DirectionBuy, executedAt)))
	require.NoError(t, repo.AddTrade(testTrade("t2", "client-2", domain.DirectionBuy, executedAt)))

	history, err := repo.GetClientTradeHistory("client-1")

	require.NoError(t, err)
	require.Len(t, history.Trades, 1)
	assert.Equal(t, "t1", history.Trades[0].TradeID)
}
