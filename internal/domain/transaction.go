package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Each asset class carries its own transaction type set: the events
// that make sense for an ETF differ from those for crypto. The one
// piece of cross-class classification the aggregation core needs is
// "does this event count as income" (dividends, distributions,
// reinvested dividends, staking rewards), exposed uniformly via
// IsIncome so the rule lives in exactly one place per type.

// ETFTransactionType represents the type of an ETF transaction
type ETFTransactionType string

const (
	ETFTransactionBuy          ETFTransactionType = "buy"
	ETFTransactionSell         ETFTransactionType = "sell"
	ETFTransactionDividend     ETFTransactionType = "dividend"
	ETFTransactionDistribution ETFTransactionType = "distribution"
	ETFTransactionDRP          ETFTransactionType = "drp"
)

// Valid reports whether the type is one of the known values.
func (t ETFTransactionType) Valid() bool {
	switch t {
	case ETFTransactionBuy, ETFTransactionSell, ETFTransactionDividend,
		ETFTransactionDistribution, ETFTransactionDRP:
		return true
	}
	return false
}

// IsIncome reports whether the transaction type is a dividend-like
// income event.
func (t ETFTransactionType) IsIncome() bool {
	switch t {
	case ETFTransactionDividend, ETFTransactionDistribution, ETFTransactionDRP:
		return true
	}
	return false
}

// ETFTransaction is one entry in an ETF holding's transaction history.
// Units and PricePerUnit are nil for pure cash events such as a
// dividend payment. The history is an audit log: it never feeds back
// into the holding's units or average price.
type ETFTransaction struct {
	ID           uuid.UUID
	HoldingID    uuid.UUID
	Type         ETFTransactionType
	Date         time.Time
	Units        *decimal.Decimal
	PricePerUnit *decimal.Decimal
	TotalAmount  decimal.Decimal
	Brokerage    decimal.Decimal
	Notes        string
	CreatedAt    time.Time
}

// Validate ensures the transaction adheres to domain rules
func (t *ETFTransaction) Validate() error {
	if t.HoldingID == uuid.Nil {
		return errors.New("transaction must reference a holding")
	}
	if !t.Type.Valid() {
		return errors.New("transaction type must be buy, sell, dividend, distribution or drp")
	}
	if t.Date.IsZero() {
		return errors.New("transaction date cannot be empty")
	}
	return nil
}

// StockTransactionType represents the type of a stock transaction
type StockTransactionType string

const (
	StockTransactionBuy      StockTransactionType = "buy"
	StockTransactionSell     StockTransactionType = "sell"
	StockTransactionDividend StockTransactionType = "dividend"
	StockTransactionDRP      StockTransactionType = "drp"
)

// Valid reports whether the type is one of the known values.
func (t StockTransactionType) Valid() bool {
	switch t {
	case StockTransactionBuy, StockTransactionSell, StockTransactionDividend, StockTransactionDRP:
		return true
	}
	return false
}

// IsIncome reports whether the transaction type is a dividend-like
// income event.
func (t StockTransactionType) IsIncome() bool {
	switch t {
	case StockTransactionDividend, StockTransactionDRP:
		return true
	}
	return false
}

// StockTransaction is one entry in a stock holding's transaction history.
type StockTransaction struct {
	ID           uuid.UUID
	HoldingID    uuid.UUID
	Type         StockTransactionType
	Date         time.Time
	Units        *decimal.Decimal
	PricePerUnit *decimal.Decimal
	TotalAmount  decimal.Decimal
	Brokerage    decimal.Decimal
	Notes        string
	CreatedAt    time.Time
}

// Validate ensures the transaction adheres to domain rules
func (t *StockTransaction) Validate() error {
	if t.HoldingID == uuid.Nil {
		return errors.New("transaction must reference a holding")
	}
	if !t.Type.Valid() {
		return errors.New("transaction type must be buy, sell, dividend or drp")
	}
	if t.Date.IsZero() {
		return errors.New("transaction date cannot be empty")
	}
	return nil
}

// CryptoTransactionType represents the type of a crypto transaction
type CryptoTransactionType string

const (
	CryptoTransactionBuy           CryptoTransactionType = "buy"
	CryptoTransactionSell          CryptoTransactionType = "sell"
	CryptoTransactionTransferIn    CryptoTransactionType = "transfer_in"
	CryptoTransactionTransferOut   CryptoTransactionType = "transfer_out"
	CryptoTransactionStakingReward CryptoTransactionType = "staking_reward"
	CryptoTransactionAirdrop       CryptoTransactionType = "airdrop"
)

// Valid reports whether the type is one of the known values.
func (t CryptoTransactionType) Valid() bool {
	switch t {
	case CryptoTransactionBuy, CryptoTransactionSell, CryptoTransactionTransferIn,
		CryptoTransactionTransferOut, CryptoTransactionStakingReward, CryptoTransactionAirdrop:
		return true
	}
	return false
}

// IsIncome reports whether the transaction type is a dividend-like
// income event. Staking rewards count; airdrops do not (no income was
// earned against an invested position).
func (t CryptoTransactionType) IsIncome() bool {
	return t == CryptoTransactionStakingReward
}

// CryptoTransaction is one entry in a crypto holding's transaction
// history. TotalAmount is nil when the event has no fiat leg (e.g. a
// wallet transfer).
type CryptoTransaction struct {
	ID           uuid.UUID
	HoldingID    uuid.UUID
	Type         CryptoTransactionType
	Date         time.Time
	Quantity     decimal.Decimal
	PricePerUnit *decimal.Decimal
	TotalAmount  *decimal.Decimal
	Fee          decimal.Decimal
	Exchange     string
	Notes        string
	CreatedAt    time.Time
}

// Validate ensures the transaction adheres to domain rules
func (t *CryptoTransaction) Validate() error {
	if t.HoldingID == uuid.Nil {
		return errors.New("transaction must reference a holding")
	}
	if !t.Type.Valid() {
		return errors.New("transaction type must be buy, sell, transfer_in, transfer_out, staking_reward or airdrop")
	}
	if t.Date.IsZero() {
		return errors.New("transaction date cannot be empty")
	}
	return nil
}
