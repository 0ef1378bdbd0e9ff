package prices

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/networth-tracker/backend/internal/domain"
	marketprices "github.com/networth-tracker/backend/internal/prices"
)

// CryptoQuoter fetches crypto spot prices by CoinGecko coin id.
type CryptoQuoter interface {
	SimplePrices(ctx context.Context, ids []string, currency string) (map[string]decimal.Decimal, error)
	Price(ctx context.Context, id, currency string) (decimal.Decimal, error)
}

// EquityQuoter fetches market quotes for ETF and stock tickers.
type EquityQuoter interface {
	Quote(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// RefreshResult reports the outcome of a bulk price refresh. Failed
// lists symbols that could not be priced; a partial refresh is not an
// error.
type RefreshResult struct {
	Updated int      `json:"updated"`
	Failed  []string `json:"failed,omitempty"`
}

// Service refreshes the current_price column of investment holdings
// from external market data providers.
type Service struct {
	ETFRepo    domain.ETFHoldingRepository
	StockRepo  domain.StockHoldingRepository
	CryptoRepo domain.CryptoHoldingRepository
	PrefsRepo  domain.PreferencesRepository
	Crypto     CryptoQuoter
	Equities   EquityQuoter
	Log        zerolog.Logger
}

// NewService creates a price refresh service.
func NewService(
	etfRepo domain.ETFHoldingRepository,
	stockRepo domain.StockHoldingRepository,
	cryptoRepo domain.CryptoHoldingRepository,
	prefsRepo domain.PreferencesRepository,
	crypto CryptoQuoter,
	equities EquityQuoter,
	log zerolog.Logger,
) *Service {
	return &Service{
		ETFRepo:    etfRepo,
		StockRepo:  stockRepo,
		CryptoRepo: cryptoRepo,
		PrefsRepo:  prefsRepo,
		Crypto:     crypto,
		Equities:   equities,
		Log:        log,
	}
}

// preferredCurrency returns the user's display currency, falling back
// to AUD when no preferences row exists.
func (s *Service) preferredCurrency(ctx context.Context, userID uuid.UUID) (string, error) {
	prefs, err := s.PrefsRepo.Get(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return "AUD", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load preferences: %w", err)
	}
	return prefs.Currency, nil
}

// RefreshCryptoPrices re-prices every crypto holding of the user in
// one provider call. Holdings whose coin id the provider does not
// recognise are reported in Failed.
func (s *Service) RefreshCryptoPrices(ctx context.Context, userID uuid.UUID) (*RefreshResult, error) {
	holdings, err := s.CryptoRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list crypto holdings: %w", err)
	}
	if len(holdings) == 0 {
		return &RefreshResult{}, nil
	}

	currency, err := s.preferredCurrency(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(holdings))
	for _, h := range holdings {
		ids = append(ids, h.CoinGeckoID)
	}
	quotes, err := s.Crypto.SimplePrices(ctx, ids, currency)
	if err != nil {
		return nil, err
	}

	result := &RefreshResult{}
	for _, h := range holdings {
		price, ok := quotes[h.CoinGeckoID]
		if !ok {
			result.Failed = append(result.Failed, h.Symbol)
			continue
		}
		if err := s.CryptoRepo.UpdatePrice(ctx, userID, h.ID, price.String()); err != nil {
			s.Log.Error().Err(err).Str("symbol", h.Symbol).Msg("failed to store crypto price")
			result.Failed = append(result.Failed, h.Symbol)
			continue
		}
		result.Updated++
	}
	return result, nil
}

// RefreshETFPrices re-prices every ETF holding of the user.
func (s *Service) RefreshETFPrices(ctx context.Context, userID uuid.UUID) (*RefreshResult, error) {
	holdings, err := s.ETFRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list etf holdings: %w", err)
	}

	result := &RefreshResult{}
	for _, h := range holdings {
		symbol := marketprices.NormalizeSymbol(h.Symbol, h.Exchange)
		price, err := s.Equities.Quote(ctx, symbol)
		if err != nil {
			if errors.Is(err, marketprices.ErrUnavailable) {
				return nil, err
			}
			s.Log.Warn().Err(err).Str("symbol", symbol).Msg("failed to quote etf")
			result.Failed = append(result.Failed, h.Symbol)
			continue
		}
		if err := s.ETFRepo.UpdatePrice(ctx, userID, h.ID, price.String()); err != nil {
			s.Log.Error().Err(err).Str("symbol", h.Symbol).Msg("failed to store etf price")
			result.Failed = append(result.Failed, h.Symbol)
			continue
		}
		result.Updated++
	}
	return result, nil
}

// RefreshStockPrices re-prices every stock holding of the user.
func (s *Service) RefreshStockPrices(ctx context.Context, userID uuid.UUID) (*RefreshResult, error) {
	holdings, err := s.StockRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock holdings: %w", err)
	}

	result := &RefreshResult{}
	for _, h := range holdings {
		symbol := marketprices.NormalizeSymbol(h.Symbol, h.Exchange)
		price, err := s.Equities.Quote(ctx, symbol)
		if err != nil {
			if errors.Is(err, marketprices.ErrUnavailable) {
				return nil, err
			}
			s.Log.Warn().Err(err).Str("symbol", symbol).Msg("failed to quote stock")
			result.Failed = append(result.Failed, h.Symbol)
			continue
		}
		if err := s.StockRepo.UpdatePrice(ctx, userID, h.ID, price.String()); err != nil {
			s.Log.Error().Err(err).Str("symbol", h.Symbol).Msg("failed to store stock price")
			result.Failed = append(result.Failed, h.Symbol)
			continue
		}
		result.Updated++
	}
	return result, nil
}

// CryptoPrice looks up a single coin's spot price in the user's
// preferred currency without touching any holding.
func (s *Service) CryptoPrice(ctx context.Context, userID uuid.UUID, coinID string) (decimal.Decimal, error) {
	currency, err := s.preferredCurrency(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	price, err := s.Crypto.Price(ctx, coinID, currency)
	if errors.Is(err, marketprices.ErrUnknownSymbol) {
		return decimal.Zero, fmt.Errorf("%w: %s", domain.ErrNotFound, coinID)
	}
	return price, err
}

// EquityPrice looks up a single ticker's market price.
func (s *Service) EquityPrice(ctx context.Context, symbol, exchange string) (decimal.Decimal, error) {
	price, err := s.Equities.Quote(ctx, marketprices.NormalizeSymbol(symbol, exchange))
	if errors.Is(err, marketprices.ErrUnknownSymbol) {
		return decimal.Zero, fmt.Errorf("%w: %s", domain.ErrNotFound, symbol)
	}
	return price, err
}
