package prices

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const yahooBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"

// YahooClient fetches equity quotes from the Yahoo Finance chart
// endpoint. ETF and stock holdings share it.
type YahooClient struct {
	baseURL string
	client  *http.Client
	cache   *QuoteCache
}

// NewYahooClient creates a Yahoo quote client. cache may be nil.
func NewYahooClient(cache *QuoteCache) *YahooClient {
	return &YahooClient{
		baseURL: yahooBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		cache:   cache,
	}
}

// NormalizeSymbol maps a locally stored ticker to the symbol Yahoo
// expects. ASX tickers carry an .AX suffix on Yahoo but are stored
// bare (VAS, not VAS.AX).
func NormalizeSymbol(symbol, exchange string) string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if strings.EqualFold(exchange, "ASX") && !strings.Contains(symbol, ".") {
		return symbol + ".AX"
	}
	return symbol
}

type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice json.Number `json:"regularMarketPrice"`
				Currency           string      `json:"currency"`
			} `json:"meta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// Quote returns the latest market price for a Yahoo symbol.
func (c *YahooClient) Quote(ctx context.Context, symbol string) (decimal.Decimal, error) {
	if c.cache != nil {
		if price, ok := c.cache.Get(ctx, "yahoo", symbol, ""); ok {
			return price, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+symbol, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to build yahoo request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnknownSymbol, symbol)
	case resp.StatusCode != http.StatusOK:
		return decimal.Zero, fmt.Errorf("%w: yahoo returned status %d", ErrUnavailable, resp.StatusCode)
	}

	var body yahooChartResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Zero, fmt.Errorf("%w: failed to decode yahoo response: %v", ErrUnavailable, err)
	}
	if body.Chart.Error != nil || len(body.Chart.Result) == 0 {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnknownSymbol, symbol)
	}

	price, err := decimal.NewFromString(body.Chart.Result[0].Meta.RegularMarketPrice.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: bad price for %s", ErrUnavailable, symbol)
	}
	if c.cache != nil {
		c.cache.Set(ctx, "yahoo", symbol, "", price)
	}
	return price, nil
}
