package summary

import (
	"github.com/shopspring/decimal"

	"github.com/networth-tracker/backend/internal/domain"
	"github.com/networth-tracker/backend/internal/usecase/valuation"
)

// Input carries everything the summary builder needs, already fetched
// from the store. A nil slice means "the user has none of these", which
// is treated as empty; a failed fetch must never reach Build (the
// service fails the whole request instead, so an empty dashboard is
// never shown for missing data).
type Input struct {
	BankAccounts       []*domain.BankAccount
	SuperAccounts      []*domain.SuperannuationAccount
	ETFHoldings        []*domain.ETFHolding
	StockHoldings      []*domain.StockHolding
	CryptoHoldings     []*domain.CryptoHolding
	ETFTransactions    []*domain.ETFTransaction
	StockTransactions  []*domain.StockTransaction
	CryptoTransactions []*domain.CryptoTransaction
	Currency           string
}

// AccountBreakdown is the summary block for an account asset class.
type AccountBreakdown struct {
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// InvestmentBreakdown is the summary block for an investment asset class.
type InvestmentBreakdown struct {
	MarketValue       decimal.Decimal `json:"market_value"`
	CostBasis         decimal.Decimal `json:"cost_basis"`
	UnrealisedGain    decimal.Decimal `json:"unrealised_gain"`
	DividendsReceived decimal.Decimal `json:"dividends_received"`
	Count             int             `json:"count"`
}

// Breakdown holds the per-class summary blocks.
type Breakdown struct {
	BankAccounts   AccountBreakdown    `json:"bank_accounts"`
	Superannuation AccountBreakdown    `json:"superannuation"`
	ETF            InvestmentBreakdown `json:"etf"`
	Stocks         InvestmentBreakdown `json:"stocks"`
	Crypto         InvestmentBreakdown `json:"crypto"`
}

// InvestmentSummary aggregates across the three investment classes.
type InvestmentSummary struct {
	TotalInvested       decimal.Decimal `json:"total_invested"`
	TotalUnrealisedGain decimal.Decimal `json:"total_unrealised_gain"`
	TotalDividends      decimal.Decimal `json:"total_dividends"`
}

// Summary is the dashboard payload: total net worth, the per-class
// breakdown and the investment-wide summary.
type Summary struct {
	TotalNetWorth     decimal.Decimal   `json:"total_networth"`
	Breakdown         Breakdown         `json:"breakdown"`
	InvestmentSummary InvestmentSummary `json:"investment_summary"`
	Currency          string            `json:"currency"`
	FormattedTotal    string            `json:"formatted_total,omitempty"`
}

// Build computes the net-worth summary. It is a pure function of its
// input: no I/O, no mutation of source records.
//
// total_networth is the sum of the five class totals. The investment
// summary sums cost basis and unrealised gain across ETF, stock and
// crypto, and total_dividends sums the amounts of every income-like
// transaction (IsIncome on each class's transaction type is the single
// source of that classification).
func Build(in Input) *Summary {
	bank := valuation.AggregateBalances(valuation.BankBalances(in.BankAccounts))
	super := valuation.AggregateBalances(valuation.SuperBalances(in.SuperAccounts))
	etf := valuation.AggregateInvestments(valuation.ETFValuated(in.ETFHoldings))
	stocks := valuation.AggregateInvestments(valuation.StockValuated(in.StockHoldings))
	crypto := valuation.AggregateInvestments(valuation.CryptoValuated(in.CryptoHoldings))

	etfDividends := decimal.Zero
	for _, tx := range in.ETFTransactions {
		if tx.Type.IsIncome() {
			etfDividends = etfDividends.Add(tx.TotalAmount)
		}
	}

	stockDividends := decimal.Zero
	for _, tx := range in.StockTransactions {
		if tx.Type.IsIncome() {
			stockDividends = stockDividends.Add(tx.TotalAmount)
		}
	}

	cryptoIncome := decimal.Zero
	for _, tx := range in.CryptoTransactions {
		if tx.Type.IsIncome() && tx.TotalAmount != nil {
			cryptoIncome = cryptoIncome.Add(*tx.TotalAmount)
		}
	}

	totalNetWorth := bank.Balance.
		Add(super.Balance).
		Add(etf.MarketValue).
		Add(stocks.MarketValue).
		Add(crypto.MarketValue)

	return &Summary{
		TotalNetWorth: totalNetWorth,
		Breakdown: Breakdown{
			BankAccounts:   AccountBreakdown{Total: bank.Balance, Count: bank.Count},
			Superannuation: AccountBreakdown{Total: super.Balance, Count: super.Count},
			ETF: InvestmentBreakdown{
				MarketValue:       etf.MarketValue,
				CostBasis:         etf.CostBasis,
				UnrealisedGain:    etf.UnrealisedGain,
				DividendsReceived: etfDividends,
				Count:             etf.Count,
			},
			Stocks: InvestmentBreakdown{
				MarketValue:       stocks.MarketValue,
				CostBasis:         stocks.CostBasis,
				UnrealisedGain:    stocks.UnrealisedGain,
				DividendsReceived: stockDividends,
				Count:             stocks.Count,
			},
			Crypto: InvestmentBreakdown{
				MarketValue:       crypto.MarketValue,
				CostBasis:         crypto.CostBasis,
				UnrealisedGain:    crypto.UnrealisedGain,
				DividendsReceived: cryptoIncome,
				Count:             crypto.Count,
			},
		},
		InvestmentSummary: InvestmentSummary{
			TotalInvested:       etf.CostBasis.Add(stocks.CostBasis).Add(crypto.CostBasis),
			TotalUnrealisedGain: etf.UnrealisedGain.Add(stocks.UnrealisedGain).Add(crypto.UnrealisedGain),
			TotalDividends:      etfDividends.Add(stockDividends).Add(cryptoIncome),
		},
		Currency: in.Currency,
	}
}
