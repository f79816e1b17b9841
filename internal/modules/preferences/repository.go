// Package preferences stores the robo-advisor preferences a client filled in.
package preferences

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/marshals/brokerage/internal/domain"
)

// ErrPreferencesNotFound is returned when a client has not filled in preferences yet
var ErrPreferencesNotFound = errors.New("client preferences not found")

// Repository handles client preference database operations
type Repository struct {
	clientsDB *sql.DB
	log       zerolog.Logger
}

// NewRepository creates a new preferences repository
func NewRepository(clientsDB *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		clientsDB: clientsDB,
		log:       log.With().Str("repo", "preferences").Logger(),
	}
}

// Get returns the stored preferences for a client
func (r *Repository) Get(clientID string) (*domain.ClientPreferences, error) {
	var (
		prefs         domain.ClientPreferences
		acceptAdvisor int
	)

	err := r.clientsDB.QueryRow(`
		SELECT client_id, investment_purpose, income_category, length_of_investment,
		       percentage_of_spend, risk_tolerance, accept_advisor
		FROM client_preferences WHERE client_id = ?`, clientID,
	).Scan(
		&prefs.ClientID,
		&prefs.InvestmentPurpose,
		&prefs.IncomeCategory,
		&prefs.LengthOfInvestment,
		&prefs.PercentageOfSpend,
		&prefs.RiskTolerance,
		&acceptAdvisor,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrPreferencesNotFound, clientID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get preferences for %s: %w", clientID, err)
	}

	prefs.AcceptAdvisor = acceptAdvisor != 0
	return &prefs, nil
}

// Upsert inserts or replaces a client's preferences
func (r *Repository) Upsert(prefs domain.ClientPreferences) error {
	if prefs.ClientID == "" {
		return fmt.Errorf("%w: client id is empty", domain.ErrValidation)
	}

	acceptAdvisor := 0
	if prefs.AcceptAdvisor {
		acceptAdvisor = 1
	}

	_, err := r.clientsDB.Exec(`
		INSERT INTO client_preferences
		(client_id, investment_purpose, income_category, length_of_investment,
		 percentage_of_spend, risk_tolerance, accept_advisor, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (client_id) DO UPDATE SET
			investment_purpose = excluded.investment_purpose,
			income_category = excluded.income_category,
			length_of_investment = excluded.length_of_investment,
			percentage_of_spend = excluded.percentage_of_spend,
			risk_tolerance = excluded.risk_tolerance,
			accept_advisor = excluded.accept_advisor,
			updated_at = excluded.updated_at`,
		prefs.ClientID,
		prefs.InvestmentPurpose,
		prefs.IncomeCategory,
		prefs.LengthOfInvestment,
		prefs.PercentageOfSpend,
		prefs.RiskTolerance,
		acceptAdvisor,
		time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert preferences for %s: %w", prefs.ClientID, err)
	}

	r.log.Info().Str("client_id", prefs.ClientID).Bool("accept_advisor", prefs.AcceptAdvisor).Msg("Preferences saved")
	return nil
}
