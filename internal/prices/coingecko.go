package prices

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrUnavailable indicates the upstream price provider could not be
// reached or returned a non-success status.
var ErrUnavailable = errors.New("price provider unavailable")

// ErrUnknownSymbol indicates the provider has no quote for the
// requested symbol or coin id.
var ErrUnknownSymbol = errors.New("unknown symbol")

const coinGeckoBaseURL = "https://api.coingecko.com/api/v3"

// CoinGeckoClient fetches crypto spot prices from the CoinGecko
// simple/price endpoint.
type CoinGeckoClient struct {
	baseURL string
	client  *http.Client
	cache   *QuoteCache
}

// NewCoinGeckoClient creates a CoinGecko client. cache may be nil.
func NewCoinGeckoClient(cache *QuoteCache) *CoinGeckoClient {
	return &CoinGeckoClient{
		baseURL: coinGeckoBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		cache:   cache,
	}
}

// SimplePrices returns the current price of each coin id in the given
// currency. Ids absent from the response are omitted from the result,
// not errored: a batch refresh should not fail because one holding has
// a bad id.
func (c *CoinGeckoClient) SimplePrices(ctx context.Context, ids []string, currency string) (map[string]decimal.Decimal, error) {
	if len(ids) == 0 {
		return map[string]decimal.Decimal{}, nil
	}
	vs := strings.ToLower(currency)

	result := make(map[string]decimal.Decimal, len(ids))
	missing := make([]string, 0, len(ids))
	for _, id := range ids {
		if c.cache != nil {
			if price, ok := c.cache.Get(ctx, "coingecko", id, vs); ok {
				result[id] = price
				continue
			}
		}
		missing = append(missing, id)
	}
	if len(missing) == 0 {
		return result, nil
	}

	q := url.Values{}
	q.Set("ids", strings.Join(missing, ","))
	q.Set("vs_currencies", vs)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/simple/price?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build coingecko request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: coingecko returned status %d", ErrUnavailable, resp.StatusCode)
	}

	var body map[string]map[string]json.Number
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: failed to decode coingecko response: %v", ErrUnavailable, err)
	}

	for _, id := range missing {
		quotes, ok := body[id]
		if !ok {
			continue
		}
		raw, ok := quotes[vs]
		if !ok {
			continue
		}
		price, err := decimal.NewFromString(raw.String())
		if err != nil {
			continue
		}
		result[id] = price
		if c.cache != nil {
			c.cache.Set(ctx, "coingecko", id, vs, price)
		}
	}
	return result, nil
}

// Price returns the current price for a single coin id.
func (c *CoinGeckoClient) Price(ctx context.Context, id, currency string) (decimal.Decimal, error) {
	quotes, err := c.SimplePrices(ctx, []string{id}, currency)
	if err != nil {
		return decimal.Zero, err
	}
	price, ok := quotes[id]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnknownSymbol, id)
	}
	return price, nil
}
