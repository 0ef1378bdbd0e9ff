package summary

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/networth-tracker/backend/internal/currency"
	"github.com/networth-tracker/backend/internal/domain"
)

// Service assembles the dashboard summary for one user. It fetches
// every input collection and hands them to the pure builder. Any fetch
// failure fails the whole request: the dashboard must never render
// zero-filled totals because data could not be loaded. Empty
// collections, by contrast, are perfectly valid input.
type Service struct {
	BankRepo        domain.BankAccountRepository
	SuperRepo       domain.SuperAccountRepository
	ETFRepo         domain.ETFHoldingRepository
	StockRepo       domain.StockHoldingRepository
	CryptoRepo      domain.CryptoHoldingRepository
	ETFTxRepo       domain.ETFTransactionRepository
	StockTxRepo     domain.StockTransactionRepository
	CryptoTxRepo    domain.CryptoTransactionRepository
	PreferencesRepo domain.PreferencesRepository
}

// NewService creates a new summary Service instance
func NewService(
	bankRepo domain.BankAccountRepository,
	superRepo domain.SuperAccountRepository,
	etfRepo domain.ETFHoldingRepository,
	stockRepo domain.StockHoldingRepository,
	cryptoRepo domain.CryptoHoldingRepository,
	etfTxRepo domain.ETFTransactionRepository,
	stockTxRepo domain.StockTransactionRepository,
	cryptoTxRepo domain.CryptoTransactionRepository,
	preferencesRepo domain.PreferencesRepository,
) *Service {
	return &Service{
		BankRepo:        bankRepo,
		SuperRepo:       superRepo,
		ETFRepo:         etfRepo,
		StockRepo:       stockRepo,
		CryptoRepo:      cryptoRepo,
		ETFTxRepo:       etfTxRepo,
		StockTxRepo:     stockTxRepo,
		CryptoTxRepo:    cryptoTxRepo,
		PreferencesRepo: preferencesRepo,
	}
}

// GetSummary fetches the user's current holdings, accounts and
// transactions and builds the net-worth summary.
func (s *Service) GetSummary(ctx context.Context, userID uuid.UUID) (*Summary, error) {
	in, err := s.Fetch(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := Build(*in)
	result.FormattedTotal = currency.Format(result.TotalNetWorth, result.Currency)
	return result, nil
}

// Fetch loads every collection the builder consumes. The snapshot
// capture service reuses it so a net-worth snapshot is always taken
// from exactly the same inputs the dashboard shows.
func (s *Service) Fetch(ctx context.Context, userID uuid.UUID) (*Input, error) {
	var in Input
	var err error

	if in.BankAccounts, err = s.BankRepo.List(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to list bank accounts: %w", err)
	}
	if in.SuperAccounts, err = s.SuperRepo.List(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to list superannuation accounts: %w", err)
	}
	if in.ETFHoldings, err = s.ETFRepo.List(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to list etf holdings: %w", err)
	}
	if in.StockHoldings, err = s.StockRepo.List(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to list stock holdings: %w", err)
	}
	if in.CryptoHoldings, err = s.CryptoRepo.List(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to list crypto holdings: %w", err)
	}
	if in.ETFTransactions, err = s.ETFTxRepo.List(ctx, userID, nil); err != nil {
		return nil, fmt.Errorf("failed to list etf transactions: %w", err)
	}
	if in.StockTransactions, err = s.StockTxRepo.List(ctx, userID, nil); err != nil {
		return nil, fmt.Errorf("failed to list stock transactions: %w", err)
	}
	if in.CryptoTransactions, err = s.CryptoTxRepo.List(ctx, userID, nil); err != nil {
		return nil, fmt.Errorf("failed to list crypto transactions: %w", err)
	}

	in.Currency = "AUD"
	prefs, err := s.PreferencesRepo.Get(ctx, userID)
	switch {
	case err == nil:
		in.Currency = prefs.Currency
	case errors.Is(err, domain.ErrNotFound):
		// Preferences are created lazily; the default currency stands.
	default:
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}

	return &in, nil
}
