// Package snapshot computes historical net-worth trends: per-snapshot
// deltas against the adjacent older snapshot, and the chart series the
// dashboard plots. The delta engine is a pure transform over an
// ordered, immutable input sequence; it holds no state between calls.
package snapshot

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/networth-tracker/backend/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// WithDelta decorates a snapshot with its change against the previous
// (next-older) snapshot in the series.
type WithDelta struct {
	*domain.NetWorthSnapshot
	ChangeFromPrevious decimal.Decimal
	ChangePercentage   decimal.Decimal
}

// ComputeDeltas consumes snapshots newest-first (index 0 = most recent,
// matching the dashboard's "latest vs previous" display) and computes
// each snapshot's change against the next-older one.
//
// The oldest snapshot has nothing to compare against and reports zero.
// A previous total of zero would divide by zero, so the percentage is
// zero by policy, never NaN or infinity.
func ComputeDeltas(snapshots []*domain.NetWorthSnapshot) []WithDelta {
	result := make([]WithDelta, len(snapshots))
	for i, s := range snapshots {
		entry := WithDelta{
			NetWorthSnapshot:   s,
			ChangeFromPrevious: decimal.Zero,
			ChangePercentage:   decimal.Zero,
		}
		if i+1 < len(snapshots) {
			previous := snapshots[i+1]
			entry.ChangeFromPrevious = s.TotalAssets.Sub(previous.TotalAssets)
			if !previous.TotalAssets.IsZero() {
				entry.ChangePercentage = entry.ChangeFromPrevious.
					Div(previous.TotalAssets).
					Mul(hundred).
					Round(2)
			}
		}
		result[i] = entry
	}
	return result
}

// SeriesPoint is one charting data point: the snapshot's total and its
// per-class composition.
type SeriesPoint struct {
	Date           time.Time       `json:"date"`
	TotalAssets    decimal.Decimal `json:"total_assets"`
	BankAccounts   decimal.Decimal `json:"bank_accounts"`
	Superannuation decimal.Decimal `json:"superannuation"`
	ETFHoldings    decimal.Decimal `json:"etf_holdings"`
	StockHoldings  decimal.Decimal `json:"stock_holdings"`
	CryptoHoldings decimal.Decimal `json:"crypto_holdings"`
}

// BuildChartSeries reorders snapshots oldest-first for charting. The
// reversal is a deliberate transformation step here, distinct from the
// newest-first order the delta computation consumes.
func BuildChartSeries(snapshots []*domain.NetWorthSnapshot) []SeriesPoint {
	points := make([]SeriesPoint, len(snapshots))
	for i, s := range snapshots {
		points[len(snapshots)-1-i] = SeriesPoint{
			Date:           s.Date,
			TotalAssets:    s.TotalAssets,
			BankAccounts:   s.BankAccounts,
			Superannuation: s.Superannuation,
			ETFHoldings:    s.ETFHoldings,
			StockHoldings:  s.StockHoldings,
			CryptoHoldings: s.CryptoHoldings,
		}
	}
	return points
}

// SavingsPoint is one data point of the liquid-savings series.
type SavingsPoint struct {
	Date           time.Time       `json:"date"`
	BankAccounts   decimal.Decimal `json:"bank_accounts"`
	ETFHoldings    decimal.Decimal `json:"etf_holdings"`
	StockHoldings  decimal.Decimal `json:"stock_holdings"`
	CryptoHoldings decimal.Decimal `json:"crypto_holdings"`
	Total          decimal.Decimal `json:"total"`
}

// BuildSavingsSeries produces the "liquid savings" view, oldest-first.
// Superannuation is excluded by design: it is locked until preservation
// age, so it is not savings the user could draw on.
func BuildSavingsSeries(snapshots []*domain.NetWorthSnapshot) []SavingsPoint {
	points := make([]SavingsPoint, len(snapshots))
	for i, s := range snapshots {
		total := s.BankAccounts.
			Add(s.ETFHoldings).
			Add(s.StockHoldings).
			Add(s.CryptoHoldings)
		points[len(snapshots)-1-i] = SavingsPoint{
			Date:           s.Date,
			BankAccounts:   s.BankAccounts,
			ETFHoldings:    s.ETFHoldings,
			StockHoldings:  s.StockHoldings,
			CryptoHoldings: s.CryptoHoldings,
			Total:          total,
		}
	}
	return points
}
