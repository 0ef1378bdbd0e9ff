// Package valuation rolls individual positions up into per-asset-class
// totals. All functions are pure: they never touch a repository and
// never mutate their inputs. Summation is commutative, so input order
// does not matter, and empty input always yields zeroed totals rather
// than an error.
package valuation

import (
	"github.com/shopspring/decimal"

	"github.com/networth-tracker/backend/internal/domain"
)

// InvestmentTotals are the class-level totals for an investment asset
// class (ETF, stock or crypto).
type InvestmentTotals struct {
	Count          int
	MarketValue    decimal.Decimal
	CostBasis      decimal.Decimal
	UnrealisedGain decimal.Decimal
}

// AccountTotals are the class-level totals for an account asset class
// (bank or super). Accounts carry a balance but no gain concept; for
// super, gain lives on snapshots instead.
type AccountTotals struct {
	Count   int
	Balance decimal.Decimal
}

// AggregateInvestments sums a collection of valuated positions into
// class-level totals.
func AggregateInvestments(items []domain.Valuated) InvestmentTotals {
	totals := InvestmentTotals{
		Count:          len(items),
		MarketValue:    decimal.Zero,
		CostBasis:      decimal.Zero,
		UnrealisedGain: decimal.Zero,
	}
	for _, item := range items {
		v := item.Valuation()
		totals.MarketValue = totals.MarketValue.Add(v.MarketValue)
		totals.CostBasis = totals.CostBasis.Add(v.CostBasis)
		totals.UnrealisedGain = totals.UnrealisedGain.Add(v.UnrealisedGain)
	}
	return totals
}

// AggregateBalances sums a collection of account balances into
// class-level totals.
func AggregateBalances(balances []decimal.Decimal) AccountTotals {
	totals := AccountTotals{Count: len(balances), Balance: decimal.Zero}
	for _, b := range balances {
		totals.Balance = totals.Balance.Add(b)
	}
	return totals
}

// ETFValuated adapts a slice of ETF holdings to the Valuated interface.
func ETFValuated(holdings []*domain.ETFHolding) []domain.Valuated {
	items := make([]domain.Valuated, len(holdings))
	for i, h := range holdings {
		items[i] = h
	}
	return items
}

// StockValuated adapts a slice of stock holdings to the Valuated interface.
func StockValuated(holdings []*domain.StockHolding) []domain.Valuated {
	items := make([]domain.Valuated, len(holdings))
	for i, h := range holdings {
		items[i] = h
	}
	return items
}

// CryptoValuated adapts a slice of crypto holdings to the Valuated interface.
func CryptoValuated(holdings []*domain.CryptoHolding) []domain.Valuated {
	items := make([]domain.Valuated, len(holdings))
	for i, h := range holdings {
		items[i] = h
	}
	return items
}

// BankBalances extracts the balances of a slice of bank accounts.
func BankBalances(accounts []*domain.BankAccount) []decimal.Decimal {
	balances := make([]decimal.Decimal, len(accounts))
	for i, a := range accounts {
		balances[i] = a.Balance
	}
	return balances
}

// SuperBalances extracts the balances of a slice of super accounts.
func SuperBalances(accounts []*domain.SuperannuationAccount) []decimal.Decimal {
	balances := make([]decimal.Decimal, len(accounts))
	for i, a := range accounts {
		balances[i] = a.Balance
	}
	return balances
}
