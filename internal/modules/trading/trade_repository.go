// Package trading contains the trade execution engine and the trade ledger.
package trading

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/marshals/brokerage/internal/domain"
)

// tradesColumns is the column list for the trades table.
// Kept explicit so schema changes cannot silently break scanning.
const tradesColumns = `trade_id, order_id, client_id, instrument_id, direction, quantity, cash_value, executed_at`

// TradeRepository handles trade ledger database operations.
// The ledger is append-only; rows are never updated or deleted.
type TradeRepository struct {
	ledgerDB *sql.DB
	log      zerolog.Logger
}

// Compile-time check that TradeRepository implements the persistence gateway
var _ domain.TradeStore = (*TradeRepository)(nil)

// NewTradeRepository creates a new trade repository
func NewTradeRepository(ledgerDB *sql.DB, log zerolog.Logger) *TradeRepository {
	return &TradeRepository{
		ledgerDB: ledgerDB,
		log:      log.With().Str("repo", "trade").Logger(),
	}
}

// AddTrade inserts an executed trade into the ledger.
// Failures carry domain.ErrPersistence so callers can classify them.
func (r *TradeRepository) AddTrade(trade domain.Trade) error {
	_, err := r.ledgerDB.Exec(`
		INSERT INTO trades
		(trade_id, order_id, client_id, instrument_id, direction, quantity, cash_value, executed_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		trade.TradeID,
		trade.Order.OrderID,
		trade.Order.ClientID,
		trade.Order.InstrumentID,
		string(trade.Order.Direction),
		trade.Order.Quantity,
		trade.CashValue.String(),
		trade.ExecutedAt.Unix(),
		time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("%w: insert trade %s: %v", domain.ErrPersistence, trade.TradeID, err)
	}

	r.log.Info().
		Str("trade_id", trade.TradeID).
		Str("client_id", trade.Order.ClientID).
		Str("instrument_id", trade.Order.InstrumentID).
		Str("direction", string(trade.Order.Direction)).
		Str("cash_value", trade.CashValue.String()).
		Msg("Trade persisted")

	return nil
}

// GetClientTradeHistory returns the client's trades, most recent first.
// An unknown client simply has an empty history.
func (r *TradeRepository) GetClientTradeHistory(clientID string) (*domain.TradeHistory, error) {
	query := "SELECT " + tradesColumns + " FROM trades WHERE client_id = ? ORDER BY executed_at DESC, id DESC"

	rows, err := r.ledgerDB.Query(query, clientID)
	if err != nil {
		return nil, fmt.Errorf("%w: query trade history for %s: %v", domain.ErrPersistence, clientID, err)
	}
	defer rows.Close()

	history := &domain.TradeHistory{ClientID: clientID, Trades: []domain.Trade{}}
	for rows.Next() {
		trade, err := scanTrade(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan trade: %v", domain.ErrPersistence, err)
		}
		history.Trades = append(history.Trades, trade)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate trade history: %v", domain.ErrPersistence, err)
	}

	return history, nil
}

func scanTrade(rows *sql.Rows) (domain.Trade, error) {
	var (
		trade      domain.Trade
		direction  string
		cashValue  string
		executedAt int64
	)

	err := rows.Scan(
		&trade.TradeID,
		&trade.Order.OrderID,
		&trade.Order.ClientID,
		&trade.Order.InstrumentID,
		&direction,
		&trade.Order.Quantity,
		&cashValue,
		&executedAt,
	)
	if err != nil {
		return domain.Trade{}, err
	}

	trade.Order.Direction = domain.Direction(direction)
	trade.CashValue, err = decimal.NewFromString(cashValue)
	if err != nil {
		return domain.Trade{}, fmt.Errorf("corrupt cash value for trade %s: %w", trade.TradeID, err)
	}
	trade.ExecutedAt = time.Unix(executedAt, 0).UTC()

	return trade, nil
}
