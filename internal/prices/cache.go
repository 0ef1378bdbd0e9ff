package prices

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// QuoteCache caches quotes in Redis for a short TTL so a refresh of
// many holdings on the same symbol hits the provider once. Cache
// failures are logged and treated as misses; quotes still flow when
// Redis is down.
type QuoteCache struct {
	rdb *redis.Client
	ttl time.Duration
	log zerolog.Logger
}

// NewQuoteCache wraps a Redis client as a quote cache.
func NewQuoteCache(rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *QuoteCache {
	return &QuoteCache{rdb: rdb, ttl: ttl, log: log}
}

func cacheKey(provider, symbol, currency string) string {
	key := "quote:" + provider + ":" + symbol
	if currency != "" {
		key += ":" + currency
	}
	return key
}

// Get returns a cached quote and whether it was present.
func (c *QuoteCache) Get(ctx context.Context, provider, symbol, currency string) (decimal.Decimal, bool) {
	raw, err := c.rdb.Get(ctx, cacheKey(provider, symbol, currency)).Result()
	if err == redis.Nil {
		return decimal.Zero, false
	}
	if err != nil {
		c.log.Warn().Err(err).Str("symbol", symbol).Msg("quote cache read failed")
		return decimal.Zero, false
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}
	return price, true
}

// Set stores a quote under the cache TTL.
func (c *QuoteCache) Set(ctx context.Context, provider, symbol, currency string, price decimal.Decimal) {
	if err := c.rdb.Set(ctx, cacheKey(provider, symbol, currency), price.String(), c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("symbol", symbol).Msg("quote cache write failed")
	}
}
