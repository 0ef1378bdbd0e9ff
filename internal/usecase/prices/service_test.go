package prices

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/networth-tracker/backend/internal/domain"
	marketprices "github.com/networth-tracker/backend/internal/prices"
)

type MockETFHoldingRepo struct{ mock.Mock }

func (m *MockETFHoldingRepo) List(ctx context.Context, userID uuid.UUID) ([]*domain.ETFHolding, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ETFHolding), args.Error(1)
}
func (m *MockETFHoldingRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.ETFHolding, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ETFHolding), args.Error(1)
}
func (m *MockETFHoldingRepo) Create(ctx context.Context, holding *domain.ETFHolding) error {
	return m.Called(ctx, holding).Error(0)
}
func (m *MockETFHoldingRepo) Update(ctx context.Context, holding *domain.ETFHolding) error {
	return m.Called(ctx, holding).Error(0)
}
func (m *MockETFHoldingRepo) UpdatePrice(ctx context.Context, userID, id uuid.UUID, price string) error {
	return m.Called(ctx, userID, id, price).Error(0)
}
func (m *MockETFHoldingRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

type MockStockHoldingRepo struct{ mock.Mock }

func (m *MockStockHoldingRepo) List(ctx context.Context, userID uuid.UUID) ([]*domain.StockHolding, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.StockHolding), args.Error(1)
}
func (m *MockStockHoldingRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.StockHolding, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockHolding), args.Error(1)
}
func (m *MockStockHoldingRepo) Create(ctx context.Context, holding *domain.StockHolding) error {
	return m.Called(ctx, holding).Error(0)
}
func (m *MockStockHoldingRepo) Update(ctx context.Context, holding *domain.StockHolding) error {
	return m.Called(ctx, holding).Error(0)
}
func (m *MockStockHoldingRepo) UpdatePrice(ctx context.Context, userID, id uuid.UUID, price string) error {
	return m.Called(ctx, userID, id, price).Error(0)
}
func (m *MockStockHoldingRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

type MockCryptoHoldingRepo struct{ mock.Mock }

func (m *MockCryptoHoldingRepo) List(ctx context.Context, userID uuid.UUID) ([]*domain.CryptoHolding, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CryptoHolding), args.Error(1)
}
func (m *MockCryptoHoldingRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.CryptoHolding, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CryptoHolding), args.Error(1)
}
func (m *MockCryptoHoldingRepo) Create(ctx context.Context, holding *domain.CryptoHolding) error {
	return m.Called(ctx, holding).Error(0)
}
func (m *MockCryptoHoldingRepo) Update(ctx context.Context, holding *domain.CryptoHolding) error {
	return m.Called(ctx, holding).Error(0)
}
func (m *MockCryptoHoldingRepo) UpdatePrice(ctx context.Context, userID, id uuid.UUID, price string) error {
	return m.Called(ctx, userID, id, price).Error(0)
}
func (m *MockCryptoHoldingRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

type MockPrefsRepo struct{ mock.Mock }

func (m *MockPrefsRepo) Get(ctx context.Context, userID uuid.UUID) (*domain.UserPreferences, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserPreferences), args.Error(1)
}
func (m *MockPrefsRepo) Upsert(ctx context.Context, prefs *domain.UserPreferences) error {
	return m.Called(ctx, prefs).Error(0)
}

type MockCryptoQuoter struct{ mock.Mock }

func (m *MockCryptoQuoter) SimplePrices(ctx context.Context, ids []string, currency string) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, ids, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}
func (m *MockCryptoQuoter) Price(ctx context.Context, id, currency string) (decimal.Decimal, error) {
	args := m.Called(ctx, id, currency)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type MockEquityQuoter struct{ mock.Mock }

func (m *MockEquityQuoter) Quote(ctx context.Context, symbol string) (decimal.Decimal, error) {
	args := m.Called(ctx, symbol)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type serviceMocks struct {
	etf    *MockETFHoldingRepo
	stock  *MockStockHoldingRepo
	crypto *MockCryptoHoldingRepo
	prefs  *MockPrefsRepo
	coins  *MockCryptoQuoter
	equity *MockEquityQuoter
}

func newServiceWithMocks() (*Service, *serviceMocks) {
	m := &serviceMocks{
		etf:    new(MockETFHoldingRepo),
		stock:  new(MockStockHoldingRepo),
		crypto: new(MockCryptoHoldingRepo),
		prefs:  new(MockPrefsRepo),
		coins:  new(MockCryptoQuoter),
		equity: new(MockEquityQuoter),
	}
	svc := NewService(m.etf, m.stock, m.crypto, m.prefs, m.coins, m.equity, zerolog.Nop())
	return svc, m
}

func TestRefreshCryptoPrices(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	svc, m := newServiceWithMocks()

	btc := &domain.CryptoHolding{ID: uuid.New(), UserID: userID, Symbol: "BTC", Name: "Bitcoin", CoinGeckoID: "bitcoin"}
	doge := &domain.CryptoHolding{ID: uuid.New(), UserID: userID, Symbol: "DOGE", Name: "Dogecoin", CoinGeckoID: "dooge-typo"}

	m.crypto.On("List", ctx, userID).Return([]*domain.CryptoHolding{btc, doge}, nil)
	m.prefs.On("Get", ctx, userID).Return(&domain.UserPreferences{UserID: userID, Currency: "AUD"}, nil)
	m.coins.On("SimplePrices", ctx, []string{"bitcoin", "dooge-typo"}, "AUD").
		Return(map[string]decimal.Decimal{"bitcoin": decimal.RequireFromString("98123.45")}, nil)
	m.crypto.On("UpdatePrice", ctx, userID, btc.ID, "98123.45").Return(nil)

	result, err := svc.RefreshCryptoPrices(ctx, userID)

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, []string{"DOGE"}, result.Failed)
	m.crypto.AssertExpectations(t)
}

func TestRefreshCryptoPricesNoHoldings(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	svc, m := newServiceWithMocks()

	m.crypto.On("List", ctx, userID).Return([]*domain.CryptoHolding{}, nil)

	result, err := svc.RefreshCryptoPrices(ctx, userID)

	assert.NoError(t, err)
	assert.Equal(t, 0, result.Updated)
	m.coins.AssertNotCalled(t, "SimplePrices", mock.Anything, mock.Anything, mock.Anything)
}

func TestRefreshETFPricesNormalizesASXSymbol(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	svc, m := newServiceWithMocks()

	vas := &domain.ETFHolding{ID: uuid.New(), UserID: userID, Symbol: "VAS", Name: "Vanguard Australian Shares", Exchange: "ASX"}
	voo := &domain.ETFHolding{ID: uuid.New(), UserID: userID, Symbol: "VOO", Name: "Vanguard S&P 500", Exchange: "NYSE"}

	m.etf.On("List", ctx, userID).Return([]*domain.ETFHolding{vas, voo}, nil)
	m.equity.On("Quote", ctx, "VAS.AX").Return(decimal.RequireFromString("95.42"), nil)
	m.equity.On("Quote", ctx, "VOO").Return(decimal.RequireFromString("512.30"), nil)
	m.etf.On("UpdatePrice", ctx, userID, vas.ID, "95.42").Return(nil)
	m.etf.On("UpdatePrice", ctx, userID, voo.ID, "512.3").Return(nil)

	result, err := svc.RefreshETFPrices(ctx, userID)

	assert.NoError(t, err)
	assert.Equal(t, 2, result.Updated)
	assert.Empty(t, result.Failed)
	m.equity.AssertExpectations(t)
}

func TestRefreshStockPricesProviderDownAborts(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	svc, m := newServiceWithMocks()

	cba := &domain.StockHolding{ID: uuid.New(), UserID: userID, Symbol: "CBA", Name: "Commonwealth Bank", Exchange: "ASX"}

	m.stock.On("List", ctx, userID).Return([]*domain.StockHolding{cba}, nil)
	m.equity.On("Quote", ctx, "CBA.AX").Return(decimal.Zero, marketprices.ErrUnavailable)

	result, err := svc.RefreshStockPrices(ctx, userID)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, marketprices.ErrUnavailable)
	m.stock.AssertNotCalled(t, "UpdatePrice", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRefreshStockPricesUnknownSymbolContinues(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	svc, m := newServiceWithMocks()

	cba := &domain.StockHolding{ID: uuid.New(), UserID: userID, Symbol: "CBA", Name: "Commonwealth Bank", Exchange: "ASX"}
	bad := &domain.StockHolding{ID: uuid.New(), UserID: userID, Symbol: "ZZZQ", Name: "Delisted", Exchange: "ASX"}

	m.stock.On("List", ctx, userID).Return([]*domain.StockHolding{cba, bad}, nil)
	m.equity.On("Quote", ctx, "CBA.AX").Return(decimal.RequireFromString("164.80"), nil)
	m.equity.On("Quote", ctx, "ZZZQ.AX").Return(decimal.Zero, marketprices.ErrUnknownSymbol)
	m.stock.On("UpdatePrice", ctx, userID, cba.ID, "164.8").Return(nil)

	result, err := svc.RefreshStockPrices(ctx, userID)

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, []string{"ZZZQ"}, result.Failed)
}

func TestCryptoPriceUnknownCoinIsNotFound(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	svc, m := newServiceWithMocks()

	m.prefs.On("Get", ctx, userID).Return(nil, domain.ErrNotFound)
	m.coins.On("Price", ctx, "not-a-coin", "AUD").Return(decimal.Zero, marketprices.ErrUnknownSymbol)

	_, err := svc.CryptoPrice(ctx, userID, "not-a-coin")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
