package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Valuation holds the derived figures for one investment position.
// The identity MarketValue - CostBasis == UnrealisedGain holds exactly.
type Valuation struct {
	MarketValue    decimal.Decimal
	CostBasis      decimal.Decimal
	UnrealisedGain decimal.Decimal
}

// Valuate computes the valuation of a position from its quantity and
// price fields:
//
//	market value    = quantity x current price
//	cost basis      = quantity x average price
//	unrealised gain = market value - cost basis
//
// Inputs are taken as-is: zero or negative quantities and prices are
// accepted without clamping, and the function never fails. Unparsable
// wire values must be rejected with ErrInvalidInput before this point.
func Valuate(quantity, averagePrice, currentPrice decimal.Decimal) Valuation {
	marketValue := quantity.Mul(currentPrice)
	costBasis := quantity.Mul(averagePrice)
	return Valuation{
		MarketValue:    marketValue,
		CostBasis:      costBasis,
		UnrealisedGain: marketValue.Sub(costBasis),
	}
}

// Valuated is any position that can report its derived valuation.
// The category aggregator consumes this rather than concrete holding
// types.
type Valuated interface {
	Valuation() Valuation
}

// ETFHolding represents a position in an exchange-traded fund.
// Units and AveragePrice are the user-maintained current state;
// transactions form an independent audit log and do not recompute them.
type ETFHolding struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Symbol       string
	Name         string
	Exchange     string
	Units        decimal.Decimal
	AveragePrice decimal.Decimal
	CurrentPrice decimal.Decimal
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Valuation returns the derived market value, cost basis and
// unrealised gain for this holding.
func (h *ETFHolding) Valuation() Valuation {
	return Valuate(h.Units, h.AveragePrice, h.CurrentPrice)
}

// Validate ensures the holding adheres to domain rules
func (h *ETFHolding) Validate() error {
	if h.Symbol == "" {
		return errors.New("symbol cannot be empty")
	}
	if h.Name == "" {
		return errors.New("name cannot be empty")
	}
	return nil
}

// StockHolding represents a position in an individual stock.
type StockHolding struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Symbol       string
	Name         string
	Exchange     string
	Units        decimal.Decimal
	AveragePrice decimal.Decimal
	CurrentPrice decimal.Decimal
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Valuation returns the derived market value, cost basis and
// unrealised gain for this holding.
func (h *StockHolding) Valuation() Valuation {
	return Valuate(h.Units, h.AveragePrice, h.CurrentPrice)
}

// Validate ensures the holding adheres to domain rules
func (h *StockHolding) Validate() error {
	if h.Symbol == "" {
		return errors.New("symbol cannot be empty")
	}
	if h.Name == "" {
		return errors.New("name cannot be empty")
	}
	return nil
}

// CryptoHolding represents a cryptocurrency position. CoinGeckoID is
// the identifier used by the price-refresh service.
type CryptoHolding struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Symbol        string
	Name          string
	CoinGeckoID   string
	Quantity      decimal.Decimal
	AveragePrice  decimal.Decimal
	CurrentPrice  decimal.Decimal
	WalletAddress string
	Exchange      string
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Valuation returns the derived market value, cost basis and
// unrealised gain for this holding.
func (h *CryptoHolding) Valuation() Valuation {
	return Valuate(h.Quantity, h.AveragePrice, h.CurrentPrice)
}

// Validate ensures the holding adheres to domain rules
func (h *CryptoHolding) Validate() error {
	if h.Symbol == "" {
		return errors.New("symbol cannot be empty")
	}
	if h.Name == "" {
		return errors.New("name cannot be empty")
	}
	return nil
}
