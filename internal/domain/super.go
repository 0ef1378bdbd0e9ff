package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SuperannuationAccount represents a superannuation (retirement fund)
// account. Balance and contribution figures are user-maintained;
// per-period gain tracking happens on snapshots.
type SuperannuationAccount struct {
	ID                   uuid.UUID
	UserID               uuid.UUID
	FundName             string
	AccountName          string
	MemberNumber         string
	Balance              decimal.Decimal
	EmployerContribution decimal.Decimal
	PersonalContribution decimal.Decimal
	InvestmentOption     string
	Notes                string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Validate ensures the superannuation account adheres to domain rules
func (a *SuperannuationAccount) Validate() error {
	if a.FundName == "" {
		return errors.New("fund name cannot be empty")
	}
	return nil
}

// SuperSnapshot is a periodic (typically monthly) capture of a
// superannuation account's balance and the contributions made during
// the period. Snapshots for one account are uniquely keyed by
// (account, date).
type SuperSnapshot struct {
	ID                   uuid.UUID
	AccountID            uuid.UUID
	Date                 time.Time
	Balance              decimal.Decimal
	EmployerContribution decimal.Decimal
	PersonalContribution decimal.Decimal
	Notes                string
	CreatedAt            time.Time
}

// TotalContributions returns the combined contributions for the period.
func (s *SuperSnapshot) TotalContributions() decimal.Decimal {
	return s.EmployerContribution.Add(s.PersonalContribution)
}

// InvestmentGain returns the market gain or loss since the previous
// snapshot: the balance change minus the contributions made this
// period. Gain is undefined for the first snapshot of an account, so a
// nil previous yields zero.
func (s *SuperSnapshot) InvestmentGain(previous *SuperSnapshot) decimal.Decimal {
	if previous == nil {
		return decimal.Zero
	}
	balanceChange := s.Balance.Sub(previous.Balance)
	return balanceChange.Sub(s.TotalContributions())
}

// Validate ensures the snapshot adheres to domain rules
func (s *SuperSnapshot) Validate() error {
	if s.AccountID == uuid.Nil {
		return errors.New("snapshot must reference an account")
	}
	if s.Date.IsZero() {
		return errors.New("snapshot date cannot be empty")
	}
	return nil
}
