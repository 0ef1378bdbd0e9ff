package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValuate(t *testing.T) {
	tests := []struct {
		name         string
		quantity     string
		averagePrice string
		currentPrice string
		wantMarket   string
		wantCost     string
		wantGain     string
	}{
		{
			name:     "profit position",
			quantity: "10", averagePrice: "50", currentPrice: "65",
			wantMarket: "650", wantCost: "500", wantGain: "150",
		},
		{
			name:     "loss position",
			quantity: "8", averagePrice: "120.50", currentPrice: "99.25",
			wantMarket: "794", wantCost: "964", wantGain: "-170",
		},
		{
			name:     "fractional crypto quantity",
			quantity: "0.0375", averagePrice: "42000", currentPrice: "61000",
			wantMarket: "2287.5", wantCost: "1575", wantGain: "712.5",
		},
		{
			name:     "zero quantity",
			quantity: "0", averagePrice: "100", currentPrice: "200",
			wantMarket: "0", wantCost: "0", wantGain: "0",
		},
		{
			name:     "zero current price",
			quantity: "25", averagePrice: "4", currentPrice: "0",
			wantMarket: "0", wantCost: "100", wantGain: "-100",
		},
		{
			// Negative inputs are accepted as-is, no clamping
			name:     "negative quantity",
			quantity: "-5", averagePrice: "10", currentPrice: "12",
			wantMarket: "-60", wantCost: "-50", wantGain: "-10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Valuate(
				decimal.RequireFromString(tt.quantity),
				decimal.RequireFromString(tt.averagePrice),
				decimal.RequireFromString(tt.currentPrice),
			)

			assert.True(t, decimal.RequireFromString(tt.wantMarket).Equal(v.MarketValue),
				"market value: want %s got %s", tt.wantMarket, v.MarketValue)
			assert.True(t, decimal.RequireFromString(tt.wantCost).Equal(v.CostBasis),
				"cost basis: want %s got %s", tt.wantCost, v.CostBasis)
			assert.True(t, decimal.RequireFromString(tt.wantGain).Equal(v.UnrealisedGain),
				"unrealised gain: want %s got %s", tt.wantGain, v.UnrealisedGain)

			// The identity must hold exactly, no rounding drift
			assert.True(t, v.MarketValue.Sub(v.CostBasis).Equal(v.UnrealisedGain))
		})
	}
}

func TestHoldingValuation(t *testing.T) {
	etf := &ETFHolding{
		Symbol:       "VAS",
		Name:         "Vanguard Australian Shares",
		Units:        decimal.RequireFromString("120"),
		AveragePrice: decimal.RequireFromString("85.40"),
		CurrentPrice: decimal.RequireFromString("92.10"),
	}

	v := etf.Valuation()
	assert.True(t, decimal.RequireFromString("11052").Equal(v.MarketValue))
	assert.True(t, decimal.RequireFromString("10248").Equal(v.CostBasis))
	assert.True(t, decimal.RequireFromString("804").Equal(v.UnrealisedGain))

	crypto := &CryptoHolding{
		Symbol:       "BTC",
		Name:         "Bitcoin",
		Quantity:     decimal.RequireFromString("0.5"),
		AveragePrice: decimal.RequireFromString("60000"),
		CurrentPrice: decimal.RequireFromString("58000"),
	}

	v = crypto.Valuation()
	assert.True(t, decimal.RequireFromString("-1000").Equal(v.UnrealisedGain))
}

func TestHoldingValidate(t *testing.T) {
	tests := []struct {
		name    string
		holding interface{ Validate() error }
		wantErr bool
	}{
		{
			name:    "valid ETF holding",
			holding: &ETFHolding{Symbol: "VAS", Name: "Vanguard Australian Shares"},
		},
		{
			name:    "ETF holding without symbol should fail",
			holding: &ETFHolding{Name: "Vanguard Australian Shares"},
			wantErr: true,
		},
		{
			name:    "stock holding without name should fail",
			holding: &StockHolding{Symbol: "BHP"},
			wantErr: true,
		},
		{
			name:    "valid crypto holding",
			holding: &CryptoHolding{Symbol: "ETH", Name: "Ethereum"},
		},
		{
			name:    "crypto holding without symbol should fail",
			holding: &CryptoHolding{Name: "Ethereum"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.holding.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
