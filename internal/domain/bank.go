package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BankAccountType represents the type of bank account
type BankAccountType string

const (
	BankAccountTypeSavings     BankAccountType = "savings"
	BankAccountTypeTransaction BankAccountType = "transaction"
	BankAccountTypeTermDeposit BankAccountType = "term_deposit"
	BankAccountTypeOffset      BankAccountType = "offset"
	BankAccountTypeOther       BankAccountType = "other"
)

// Valid reports whether the account type is one of the known values.
func (t BankAccountType) Valid() bool {
	switch t {
	case BankAccountTypeSavings, BankAccountTypeTransaction,
		BankAccountTypeTermDeposit, BankAccountTypeOffset, BankAccountTypeOther:
		return true
	}
	return false
}

// BankAccount represents a bank account entity in the domain layer.
// Balance is user-maintained; there are no derived fields. A negative
// balance is unconventional but not rejected (e.g. an overdrawn
// transaction account).
type BankAccount struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Name         string
	BankName     string
	AccountType  BankAccountType
	Balance      decimal.Decimal
	InterestRate *decimal.Decimal
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate ensures the bank account adheres to domain rules
// Returns an error if validation fails
func (a *BankAccount) Validate() error {
	if a.Name == "" {
		return errors.New("account name cannot be empty")
	}
	if a.BankName == "" {
		return errors.New("bank name cannot be empty")
	}
	if !a.AccountType.Valid() {
		return errors.New("account type must be savings, transaction, term_deposit, offset or other")
	}
	return nil
}
