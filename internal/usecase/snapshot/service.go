package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/networth-tracker/backend/internal/domain"
	"github.com/networth-tracker/backend/internal/usecase/summary"
)

// SummaryFetcher loads the live collections a capture is taken from.
// *summary.Service satisfies it.
type SummaryFetcher interface {
	Fetch(ctx context.Context, userID uuid.UUID) (*summary.Input, error)
}

// Service handles net-worth snapshot operations: listing them with
// deltas, producing chart series, and capturing new snapshots from the
// live portfolio state.
type Service struct {
	SnapshotRepo domain.NetWorthSnapshotRepository
	Summaries    SummaryFetcher
}

// NewService creates a new snapshot Service instance
func NewService(snapshotRepo domain.NetWorthSnapshotRepository, summaries SummaryFetcher) *Service {
	return &Service{SnapshotRepo: snapshotRepo, Summaries: summaries}
}

// List returns the user's snapshots newest-first, each decorated with
// its change against the next-older snapshot.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]WithDelta, error) {
	snapshots, err := s.SnapshotRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return ComputeDeltas(snapshots), nil
}

// Get returns one snapshot with its delta figures, which require the
// whole series to compute.
func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*WithDelta, error) {
	snapshots, err := s.SnapshotRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	for _, entry := range ComputeDeltas(snapshots) {
		if entry.ID == id {
			return &entry, nil
		}
	}
	return nil, domain.ErrNotFound
}

// ChartSeries returns the oldest-first net-worth series for charting.
func (s *Service) ChartSeries(ctx context.Context, userID uuid.UUID) ([]SeriesPoint, error) {
	snapshots, err := s.SnapshotRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return BuildChartSeries(snapshots), nil
}

// SavingsSeries returns the oldest-first liquid-savings series
// (superannuation excluded).
func (s *Service) SavingsSeries(ctx context.Context, userID uuid.UUID) ([]SavingsPoint, error) {
	snapshots, err := s.SnapshotRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return BuildSavingsSeries(snapshots), nil
}

// Capture takes a snapshot of the user's current portfolio on the given
// date: the per-class subtotals plus the per-item composition for
// drill-down. Capturing again on a date that already has a snapshot
// replaces that snapshot's figures rather than failing.
func (s *Service) Capture(ctx context.Context, userID uuid.UUID, date time.Time, notes string) (*domain.NetWorthSnapshot, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("%w: snapshot date is required", domain.ErrInvalidInput)
	}

	in, err := s.Summaries.Fetch(ctx, userID)
	if err != nil {
		return nil, err
	}
	sum := summary.Build(*in)

	snap := &domain.NetWorthSnapshot{
		ID:             uuid.New(),
		UserID:         userID,
		Date:           date,
		Notes:          notes,
		TotalAssets:    sum.TotalNetWorth,
		BankAccounts:   sum.Breakdown.BankAccounts.Total,
		Superannuation: sum.Breakdown.Superannuation.Total,
		ETFHoldings:    sum.Breakdown.ETF.MarketValue,
		StockHoldings:  sum.Breakdown.Stocks.MarketValue,
		CryptoHoldings: sum.Breakdown.Crypto.MarketValue,
		Assets:         captureAssets(in),
	}
	if err := snap.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.SnapshotRepo.GetByDate(ctx, userID, date)
	switch {
	case err == nil:
		snap.ID = existing.ID
		if err := s.SnapshotRepo.Replace(ctx, snap); err != nil {
			return nil, fmt.Errorf("failed to replace snapshot: %w", err)
		}
	case errors.Is(err, domain.ErrNotFound):
		if err := s.SnapshotRepo.Create(ctx, snap); err != nil {
			return nil, fmt.Errorf("failed to create snapshot: %w", err)
		}
	default:
		return nil, fmt.Errorf("failed to check for existing snapshot: %w", err)
	}

	return snap, nil
}

// Delete removes a snapshot and its asset composition.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.SnapshotRepo.Delete(ctx, userID, id)
}

// captureAssets records each live item's contribution at capture time.
func captureAssets(in *summary.Input) []domain.AssetSnapshot {
	var assets []domain.AssetSnapshot

	for _, a := range in.BankAccounts {
		assets = append(assets, domain.AssetSnapshot{
			ID:              uuid.New(),
			AssetType:       domain.AssetTypeBank,
			AssetName:       a.Name,
			AssetIdentifier: a.BankName,
			Value:           a.Balance,
		})
	}
	for _, a := range in.SuperAccounts {
		assets = append(assets, domain.AssetSnapshot{
			ID:              uuid.New(),
			AssetType:       domain.AssetTypeSuper,
			AssetName:       a.FundName,
			AssetIdentifier: a.MemberNumber,
			Value:           a.Balance,
		})
	}
	for _, h := range in.ETFHoldings {
		units, price := h.Units, h.CurrentPrice
		assets = append(assets, domain.AssetSnapshot{
			ID:              uuid.New(),
			AssetType:       domain.AssetTypeETF,
			AssetName:       h.Name,
			AssetIdentifier: h.Symbol,
			Quantity:        &units,
			PricePerUnit:    &price,
			Value:           h.Valuation().MarketValue,
		})
	}
	for _, h := range in.StockHoldings {
		units, price := h.Units, h.CurrentPrice
		assets = append(assets, domain.AssetSnapshot{
			ID:              uuid.New(),
			AssetType:       domain.AssetTypeStock,
			AssetName:       h.Name,
			AssetIdentifier: h.Symbol,
			Quantity:        &units,
			PricePerUnit:    &price,
			Value:           h.Valuation().MarketValue,
		})
	}
	for _, h := range in.CryptoHoldings {
		qty, price := h.Quantity, h.CurrentPrice
		assets = append(assets, domain.AssetSnapshot{
			ID:              uuid.New(),
			AssetType:       domain.AssetTypeCrypto,
			AssetName:       h.Name,
			AssetIdentifier: h.Symbol,
			Quantity:        &qty,
			PricePerUnit:    &price,
			Value:           h.Valuation().MarketValue,
		})
	}

	return assets
}
