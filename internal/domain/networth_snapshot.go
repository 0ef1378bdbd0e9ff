package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssetType tags which asset class an asset snapshot entry belongs to
type AssetType string

const (
	AssetTypeBank   AssetType = "bank"
	AssetTypeSuper  AssetType = "super"
	AssetTypeETF    AssetType = "etf"
	AssetTypeStock  AssetType = "stock"
	AssetTypeCrypto AssetType = "crypto"
)

// Valid reports whether the asset type is one of the known values.
func (t AssetType) Valid() bool {
	switch t {
	case AssetTypeBank, AssetTypeSuper, AssetTypeETF, AssetTypeStock, AssetTypeCrypto:
		return true
	}
	return false
}

// NetWorthSnapshot is a point-in-time capture of total net worth and
// its per-class breakdown, uniquely keyed by (user, date). The subtotal
// fields are deliberately denormalized: they record what the totals
// were at capture time and are expected to diverge from live totals.
//
// ChangeFromPrevious and ChangePercentage are not stored; they are
// derived at read time from the adjacent snapshot ordered by date.
type NetWorthSnapshot struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Date           time.Time
	Notes          string
	TotalAssets    decimal.Decimal
	BankAccounts   decimal.Decimal
	Superannuation decimal.Decimal
	ETFHoldings    decimal.Decimal
	StockHoldings  decimal.Decimal
	CryptoHoldings decimal.Decimal
	Assets         []AssetSnapshot
	CreatedAt      time.Time
}

// Validate ensures the snapshot adheres to domain rules
func (s *NetWorthSnapshot) Validate() error {
	if s.Date.IsZero() {
		return errors.New("snapshot date cannot be empty")
	}
	for i := range s.Assets {
		if err := s.Assets[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// AssetSnapshot captures one asset's contribution to a net-worth
// snapshot for drill-down display: which item it was, how much of it
// was held and what it was worth on the snapshot date.
type AssetSnapshot struct {
	ID              uuid.UUID
	SnapshotID      uuid.UUID
	AssetType       AssetType
	AssetName       string
	AssetIdentifier string
	Quantity        *decimal.Decimal
	PricePerUnit    *decimal.Decimal
	Value           decimal.Decimal
	CreatedAt       time.Time
}

// Validate ensures the asset snapshot adheres to domain rules
func (a *AssetSnapshot) Validate() error {
	if !a.AssetType.Valid() {
		return errors.New("asset type must be bank, super, etf, stock or crypto")
	}
	if a.AssetName == "" {
		return errors.New("asset name cannot be empty")
	}
	return nil
}
