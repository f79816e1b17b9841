// Package portfolio implements the portfolio gateway over the clients database.
//
// The gateway owns balance and holdings state. The execution engine reads a
// snapshot through GetClientPortfolio and requests settlement through
// UpdateClientPortfolio; it never mutates the portfolio directly. Per-client
// write ordering is provided here by applying each update in one transaction.
package portfolio

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/marshals/brokerage/internal/domain"
)

// ErrClientNotFound is returned when no portfolio exists for a client id.
// The execution engine surfaces this error unmasked.
var ErrClientNotFound = errors.New("client not found")

// PortfolioRepository handles client portfolio database operations
type PortfolioRepository struct {
	clientsDB *sql.DB
	log       zerolog.Logger
}

// Compile-time check that PortfolioRepository implements the gateway
var _ domain.PortfolioGateway = (*PortfolioRepository)(nil)

// NewPortfolioRepository creates a new portfolio repository
func NewPortfolioRepository(clientsDB *sql.DB, log zerolog.Logger) *PortfolioRepository {
	return &PortfolioRepository{
		clientsDB: clientsDB,
		log:       log.With().Str("repo", "portfolio").Logger(),
	}
}

// GetClientPortfolio returns the client's balance and holdings snapshot.
// Holdings come back in insertion order, which is the natural scan order the
// sell path of the execution engine relies on.
func (r *PortfolioRepository) GetClientPortfolio(clientID string) (*domain.ClientPortfolio, error) {
	var balanceStr string
	err := r.clientsDB.QueryRow(
		"SELECT balance FROM client_portfolios WHERE client_id = ?", clientID,
	).Scan(&balanceStr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrClientNotFound, clientID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get portfolio for %s: %w", clientID, err)
	}

	balance, err := decimal.NewFromString(balanceStr)
	if err != nil {
		return nil, fmt.Errorf("corrupt balance for %s: %w", clientID, err)
	}

	rows, err := r.clientsDB.Query(
		"SELECT instrument_id, quantity FROM holdings WHERE client_id = ? ORDER BY id", clientID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get holdings for %s: %w", clientID, err)
	}
	defer rows.Close()

	var holdings []domain.Holding
	for rows.Next() {
		var h domain.Holding
		if err := rows.Scan(&h.InstrumentID, &h.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan holding: %w", err)
		}
		holdings = append(holdings, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate holdings: %w", err)
	}

	return &domain.ClientPortfolio{
		ClientID: clientID,
		Balance:  balance,
		Holdings: holdings,
	}, nil
}

// UpdateClientPortfolio applies the trade's effect to balance and holdings in
// a single transaction. A buy debits the balance by the cash value and adds
// the quantity to the holding; a sell credits the balance, decrements the
// holding and removes it when it reaches zero.
func (r *PortfolioRepository) UpdateClientPortfolio(trade domain.Trade) error {
	tx, err := r.clientsDB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin portfolio update: %w", err)
	}
	defer tx.Rollback()

	clientID := trade.Order.ClientID

	var balanceStr string
	err = tx.QueryRow(
		"SELECT balance FROM client_portfolios WHERE client_id = ?", clientID,
	).Scan(&balanceStr)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrClientNotFound, clientID)
	}
	if err != nil {
		return fmt.Errorf("failed to read balance for %s: %w", clientID, err)
	}

	balance, err := decimal.NewFromString(balanceStr)
	if err != nil {
		return fmt.Errorf("corrupt balance for %s: %w", clientID, err)
	}

	switch trade.Order.Direction {
	case domain.DirectionBuy:
		balance = balance.Sub(trade.CashValue)
		if err := r.addHolding(tx, clientID, trade.Order.InstrumentID, trade.Order.Quantity); err != nil {
			return err
		}
	case domain.DirectionSell:
		balance = balance.Add(trade.CashValue)
		if err := r.removeHolding(tx, clientID, trade.Order.InstrumentID, trade.Order.Quantity); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %q", domain.ErrInvalidDirection, trade.Order.Direction)
	}

	_, err = tx.Exec(
		"UPDATE client_portfolios SET balance = ?, updated_at = ? WHERE client_id = ?",
		balance.String(), time.Now().Unix(), clientID,
	)
	if err != nil {
		return fmt.Errorf("failed to update balance for %s: %w", clientID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit portfolio update: %w", err)
	}

	r.log.Info().
		Str("client_id", clientID).
		Str("instrument_id", trade.Order.InstrumentID).
		Str("direction", string(trade.Order.Direction)).
		Str("balance", balance.String()).
		Msg("Portfolio updated")

	return nil
}

// CreateClientPortfolio creates a portfolio with an opening balance.
// Used by the surrounding onboarding layer and by tests.
func (r *PortfolioRepository) CreateClientPortfolio(clientID string, balance decimal.Decimal) error {
	_, err := r.clientsDB.Exec(
		"INSERT INTO client_portfolios (client_id, balance, updated_at) VALUES (?, ?, ?)",
		clientID, balance.String(), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to create portfolio for %s: %w", clientID, err)
	}
	return nil
}

// SetHolding inserts or replaces a holding quantity directly.
// Used by the surrounding onboarding layer and by tests.
func (r *PortfolioRepository) SetHolding(clientID, instrumentID string, quantity int64) error {
	_, err := r.clientsDB.Exec(`
		INSERT INTO holdings (client_id, instrument_id, quantity)
		VALUES (?, ?, ?)
		ON CONFLICT (client_id, instrument_id) DO UPDATE SET quantity = excluded.quantity`,
		clientID, instrumentID, quantity,
	)
	if err != nil {
		return fmt.Errorf("failed to set holding %s for %s: %w", instrumentID, clientID, err)
	}
	return nil
}

func (r *PortfolioRepository) addHolding(tx *sql.Tx, clientID, instrumentID string, quantity int64) error {
	_, err := tx.Exec(`
		INSERT INTO holdings (client_id, instrument_id, quantity)
		VALUES (?, ?, ?)
		ON CONFLICT (client_id, instrument_id) DO UPDATE SET quantity = holdings.quantity + excluded.quantity`,
		clientID, instrumentID, quantity,
	)
	if err != nil {
		return fmt.Errorf("failed to add holding %s for %s: %w", instrumentID, clientID, err)
	}
	return nil
}

func (r *PortfolioRepository) removeHolding(tx *sql.Tx, clientID, instrumentID string, quantity int64) error {
	var held int64
	err := tx.QueryRow(
		"SELECT quantity FROM holdings WHERE client_id = ? AND instrument_id = ?",
		clientID, instrumentID,
	).Scan(&held)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", domain.ErrInstrumentNotHeld, instrumentID)
	}
	if err != nil {
		return fmt.Errorf("failed to read holding %s for %s: %w", instrumentID, clientID, err)
	}

	remaining := held - quantity
	if remaining < 0 {
		return fmt.Errorf("%w: have %d, selling %d", domain.ErrInsufficientHoldings, held, quantity)
	}

	if remaining == 0 {
		_, err = tx.Exec(
			"DELETE FROM holdings WHERE client_id = ? AND instrument_id = ?",
			clientID, instrumentID,
		)
	} else {
		_, err = tx.Exec(
			"UPDATE holdings SET quantity = ? WHERE client_id = ? AND instrument_id = ?",
			remaining, clientID, instrumentID,
		)
	}
	if err != nil {
		return fmt.Errorf("failed to update holding %s for %s: %w", instrumentID, clientID, err)
	}
	return nil
}
