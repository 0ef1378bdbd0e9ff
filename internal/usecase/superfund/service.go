// Package superfund manages superannuation snapshots and their derived
// per-period investment gain. Gain needs the immediately preceding
// snapshot of the same account, so the service owns the ordering and
// pairing; the arithmetic itself lives on the domain type.
package superfund

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/networth-tracker/backend/internal/domain"
)

// SnapshotWithGain decorates a super snapshot with its derived figures.
type SnapshotWithGain struct {
	*domain.SuperSnapshot
	TotalContributions decimal.Decimal
	InvestmentGain     decimal.Decimal
}

// Service handles superannuation snapshot operations
type Service struct {
	AccountRepo  domain.SuperAccountRepository
	SnapshotRepo domain.SuperSnapshotRepository
}

// NewService creates a new superfund Service instance
func NewService(accountRepo domain.SuperAccountRepository, snapshotRepo domain.SuperSnapshotRepository) *Service {
	return &Service{AccountRepo: accountRepo, SnapshotRepo: snapshotRepo}
}

// List returns snapshots newest-first, optionally filtered to one
// account, each decorated with total contributions and investment gain.
// Gain pairs each snapshot with its predecessor within the same
// account; the first snapshot of an account reports zero.
func (s *Service) List(ctx context.Context, userID uuid.UUID, accountID *uuid.UUID) ([]SnapshotWithGain, error) {
	snapshots, err := s.SnapshotRepo.List(ctx, userID, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list super snapshots: %w", err)
	}
	return decorate(snapshots), nil
}

// Get returns one snapshot with its derived figures.
func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*SnapshotWithGain, error) {
	snap, err := s.SnapshotRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	series, err := s.SnapshotRepo.ListForAccount(ctx, userID, snap.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list account snapshots: %w", err)
	}
	for _, entry := range decorate(series) {
		if entry.ID == id {
			return &entry, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Add records a new snapshot for an account the user owns. The
// (account, date) pair must be unique; a duplicate surfaces as
// domain.ErrDuplicateSnapshot from the repository.
func (s *Service) Add(ctx context.Context, userID uuid.UUID, snap *domain.SuperSnapshot) error {
	if err := snap.Validate(); err != nil {
		return err
	}
	// Verify the account exists and belongs to this user
	if _, err := s.AccountRepo.GetByID(ctx, userID, snap.AccountID); err != nil {
		return err
	}
	if snap.ID == uuid.Nil {
		snap.ID = uuid.New()
	}
	return s.SnapshotRepo.Create(ctx, userID, snap)
}

// Update modifies an existing snapshot's figures.
func (s *Service) Update(ctx context.Context, userID uuid.UUID, snap *domain.SuperSnapshot) error {
	if err := snap.Validate(); err != nil {
		return err
	}
	return s.SnapshotRepo.Update(ctx, userID, snap)
}

// Delete removes a snapshot.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.SnapshotRepo.Delete(ctx, userID, id)
}

// decorate computes derived figures for a set of snapshots that may
// span several accounts. Input order is preserved in the result.
func decorate(snapshots []*domain.SuperSnapshot) []SnapshotWithGain {
	// Build each account's date-ascending series to find predecessors
	byAccount := make(map[uuid.UUID][]*domain.SuperSnapshot)
	for _, s := range snapshots {
		byAccount[s.AccountID] = append(byAccount[s.AccountID], s)
	}
	previous := make(map[uuid.UUID]*domain.SuperSnapshot, len(snapshots))
	for _, series := range byAccount {
		sort.Slice(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })
		for i := 1; i < len(series); i++ {
			previous[series[i].ID] = series[i-1]
		}
	}

	result := make([]SnapshotWithGain, len(snapshots))
	for i, s := range snapshots {
		result[i] = SnapshotWithGain{
			SuperSnapshot:      s,
			TotalContributions: s.TotalContributions(),
			InvestmentGain:     s.InvestmentGain(previous[s.ID]),
		}
	}
	return result
}
