package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository interfaces are defined here in the domain layer and
// implemented by the postgres adapter. Every query is scoped to a user:
// a lookup by id for the wrong user returns ErrNotFound.

// UserRepository defines the interface for user persistence operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

// PreferencesRepository defines the interface for user preferences
// persistence operations
type PreferencesRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (*UserPreferences, error)
	Upsert(ctx context.Context, prefs *UserPreferences) error
}

// SessionRepository defines the interface for refresh-token session
// persistence operations
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*Session, error)
	Revoke(ctx context.Context, id uuid.UUID) error
	RevokeAllForUser(ctx context.Context, userID uuid.UUID) error
	DeleteExpired(ctx context.Context) error
}

// BankAccountRepository defines the interface for bank account
// persistence operations
type BankAccountRepository interface {
	List(ctx context.Context, userID uuid.UUID) ([]*BankAccount, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*BankAccount, error)
	Create(ctx context.Context, account *BankAccount) error
	Update(ctx context.Context, account *BankAccount) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// SuperAccountRepository defines the interface for superannuation
// account persistence operations
type SuperAccountRepository interface {
	List(ctx context.Context, userID uuid.UUID) ([]*SuperannuationAccount, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*SuperannuationAccount, error)
	Create(ctx context.Context, account *SuperannuationAccount) error
	Update(ctx context.Context, account *SuperannuationAccount) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// SuperSnapshotRepository defines the interface for superannuation
// snapshot persistence operations. List returns snapshots ordered by
// date descending; ListForAccount by date ascending (the order gain
// computation consumes them in).
type SuperSnapshotRepository interface {
	List(ctx context.Context, userID uuid.UUID, accountID *uuid.UUID) ([]*SuperSnapshot, error)
	ListForAccount(ctx context.Context, userID, accountID uuid.UUID) ([]*SuperSnapshot, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*SuperSnapshot, error)
	Create(ctx context.Context, userID uuid.UUID, snapshot *SuperSnapshot) error
	Update(ctx context.Context, userID uuid.UUID, snapshot *SuperSnapshot) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// ETFHoldingRepository defines the interface for ETF holding
// persistence operations
type ETFHoldingRepository interface {
	List(ctx context.Context, userID uuid.UUID) ([]*ETFHolding, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*ETFHolding, error)
	Create(ctx context.Context, holding *ETFHolding) error
	Update(ctx context.Context, holding *ETFHolding) error
	UpdatePrice(ctx context.Context, userID, id uuid.UUID, price string) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// StockHoldingRepository defines the interface for stock holding
// persistence operations
type StockHoldingRepository interface {
	List(ctx context.Context, userID uuid.UUID) ([]*StockHolding, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*StockHolding, error)
	Create(ctx context.Context, holding *StockHolding) error
	Update(ctx context.Context, holding *StockHolding) error
	UpdatePrice(ctx context.Context, userID, id uuid.UUID, price string) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// CryptoHoldingRepository defines the interface for crypto holding
// persistence operations
type CryptoHoldingRepository interface {
	List(ctx context.Context, userID uuid.UUID) ([]*CryptoHolding, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*CryptoHolding, error)
	Create(ctx context.Context, holding *CryptoHolding) error
	Update(ctx context.Context, holding *CryptoHolding) error
	UpdatePrice(ctx context.Context, userID, id uuid.UUID, price string) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// ETFTransactionRepository defines the interface for ETF transaction
// persistence operations. Scoping is by the owning holding's user;
// Update and Delete never move a transaction to another user's holding.
type ETFTransactionRepository interface {
	List(ctx context.Context, userID uuid.UUID, holdingID *uuid.UUID) ([]*ETFTransaction, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*ETFTransaction, error)
	Create(ctx context.Context, userID uuid.UUID, tx *ETFTransaction) error
	Update(ctx context.Context, userID uuid.UUID, tx *ETFTransaction) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// StockTransactionRepository defines the interface for stock
// transaction persistence operations
type StockTransactionRepository interface {
	List(ctx context.Context, userID uuid.UUID, holdingID *uuid.UUID) ([]*StockTransaction, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*StockTransaction, error)
	Create(ctx context.Context, userID uuid.UUID, tx *StockTransaction) error
	Update(ctx context.Context, userID uuid.UUID, tx *StockTransaction) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// CryptoTransactionRepository defines the interface for crypto
// transaction persistence operations
type CryptoTransactionRepository interface {
	List(ctx context.Context, userID uuid.UUID, holdingID *uuid.UUID) ([]*CryptoTransaction, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*CryptoTransaction, error)
	Create(ctx context.Context, userID uuid.UUID, tx *CryptoTransaction) error
	Update(ctx context.Context, userID uuid.UUID, tx *CryptoTransaction) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// NetWorthSnapshotRepository defines the interface for net-worth
// snapshot persistence operations. List returns snapshots ordered by
// date descending (newest first), the order the delta engine consumes.
type NetWorthSnapshotRepository interface {
	List(ctx context.Context, userID uuid.UUID) ([]*NetWorthSnapshot, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*NetWorthSnapshot, error)
	GetByDate(ctx context.Context, userID uuid.UUID, date time.Time) (*NetWorthSnapshot, error)
	Create(ctx context.Context, snapshot *NetWorthSnapshot) error
	Replace(ctx context.Context, snapshot *NetWorthSnapshot) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
