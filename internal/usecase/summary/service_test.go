package summary

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/networth-tracker/backend/internal/domain"
)

// Repository mocks for service tests

type MockBankAccountRepo struct{ mock.Mock }

func (m *MockBankAccountRepo) List(ctx context.Context, userID uuid.UUID) ([]*domain.BankAccount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.BankAccount), args.Error(1)
}
func (m *MockBankAccountRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.BankAccount, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}
func (m *MockBankAccountRepo) Create(ctx context.Context, account *domain.BankAccount) error {
	return m.Called(ctx, account).Error(0)
}
func (m *MockBankAccountRepo) Update(ctx context.Context, account *domain.BankAccount) error {
	return m.Called(ctx, account).Error(0)
}
func (m *MockBankAccountRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

type MockSuperAccountRepo struct{ mock.Mock }

func (m *MockSuperAccountRepo) List(ctx context.Context, userID uuid.UUID) ([]*domain.SuperannuationAccount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.SuperannuationAccount), args.Error(1)
}
func (m *MockSuperAccountRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.SuperannuationAccount, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SuperannuationAccount), args.Error(1)
}
func (m *MockSuperAccountRepo) Create(ctx context.Context, account *domain.SuperannuationAccount) error {
	return m.Called(ctx, account).Error(0)
}
func (m *MockSuperAccountRepo) Update(ctx context.Context, account *domain.SuperannuationAccount) error {
	return m.Called(ctx, account).Error(0)
}
func (m *MockSuperAccountRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

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

type MockETFTransactionRepo struct{ mock.Mock }

func (m *MockETFTransactionRepo) List(ctx context.Context, userID uuid.UUID, holdingID *uuid.UUID) ([]*domain.ETFTransaction, error) {
	args := m.Called(ctx, userID, holdingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ETFTransaction), args.Error(1)
}
func (m *MockETFTransactionRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.ETFTransaction, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ETFTransaction), args.Error(1)
}
func (m *MockETFTransactionRepo) Create(ctx context.Context, userID uuid.UUID, tx *domain.ETFTransaction) error {
	return m.Called(ctx, userID, tx).Error(0)
}
func (m *MockETFTransactionRepo) Update(ctx context.Context, userID uuid.UUID, tx *domain.ETFTransaction) error {
	return m.Called(ctx, userID, tx).Error(0)
}
func (m *MockETFTransactionRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

type MockStockTransactionRepo struct{ mock.Mock }

func (m *MockStockTransactionRepo) List(ctx context.Context, userID uuid.UUID, holdingID *uuid.UUID) ([]*domain.StockTransaction, error) {
	args := m.Called(ctx, userID, holdingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.StockTransaction), args.Error(1)
}
func (m *MockStockTransactionRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.StockTransaction, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockTransaction), args.Error(1)
}
func (m *MockStockTransactionRepo) Create(ctx context.Context, userID uuid.UUID, tx *domain.StockTransaction) error {
	return m.Called(ctx, userID, tx).Error(0)
}
func (m *MockStockTransactionRepo) Update(ctx context.Context, userID uuid.UUID, tx *domain.StockTransaction) error {
	return m.Called(ctx, userID, tx).Error(0)
}
func (m *MockStockTransactionRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

type MockCryptoTransactionRepo struct{ mock.Mock }

func (m *MockCryptoTransactionRepo) List(ctx context.Context, userID uuid.UUID, holdingID *uuid.UUID) ([]*domain.CryptoTransaction, error) {
	args := m.Called(ctx, userID, holdingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CryptoTransaction), args.Error(1)
}
func (m *MockCryptoTransactionRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.CryptoTransaction, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CryptoTransaction), args.Error(1)
}
func (m *MockCryptoTransactionRepo) Create(ctx context.Context, userID uuid.UUID, tx *domain.CryptoTransaction) error {
	return m.Called(ctx, userID, tx).Error(0)
}
func (m *MockCryptoTransactionRepo) Update(ctx context.Context, userID uuid.UUID, tx *domain.CryptoTransaction) error {
	return m.Called(ctx, userID, tx).Error(0)
}
func (m *MockCryptoTransactionRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

type MockPreferencesRepo struct{ mock.Mock }

func (m *MockPreferencesRepo) Get(ctx context.Context, userID uuid.UUID) (*domain.UserPreferences, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserPreferences), args.Error(1)
}
func (m *MockPreferencesRepo) Upsert(ctx context.Context, prefs *domain.UserPreferences) error {
	return m.Called(ctx, prefs).Error(0)
}

type serviceMocks struct {
	bank     *MockBankAccountRepo
	super    *MockSuperAccountRepo
	etf      *MockETFHoldingRepo
	stock    *MockStockHoldingRepo
	crypto   *MockCryptoHoldingRepo
	etfTx    *MockETFTransactionRepo
	stockTx  *MockStockTransactionRepo
	cryptoTx *MockCryptoTransactionRepo
	prefs    *MockPreferencesRepo
}

func newServiceWithMocks() (*Service, *serviceMocks) {
	m := &serviceMocks{
		bank:     new(MockBankAccountRepo),
		super:    new(MockSuperAccountRepo),
		etf:      new(MockETFHoldingRepo),
		stock:    new(MockStockHoldingRepo),
		crypto:   new(MockCryptoHoldingRepo),
		etfTx:    new(MockETFTransactionRepo),
		stockTx:  new(MockStockTransactionRepo),
		cryptoTx: new(MockCryptoTransactionRepo),
		prefs:    new(MockPreferencesRepo),
	}
	svc := NewService(m.bank, m.super, m.etf, m.stock, m.crypto, m.etfTx, m.stockTx, m.cryptoTx, m.prefs)
	return svc, m
}

func TestGetSummary(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	svc, m := newServiceWithMocks()

	m.bank.On("List", ctx, userID).Return([]*domain.BankAccount{
		{Balance: decimal.RequireFromString("2500")},
	}, nil)
	m.super.On("List", ctx, userID).Return([]*domain.SuperannuationAccount{}, nil)
	m.etf.On("List", ctx, userID).Return([]*domain.ETFHolding{
		{Units: decimal.RequireFromString("10"), AveragePrice: decimal.RequireFromString("90"), CurrentPrice: decimal.RequireFromString("100")},
	}, nil)
	m.stock.On("List", ctx, userID).Return([]*domain.StockHolding{}, nil)
	m.crypto.On("List", ctx, userID).Return([]*domain.CryptoHolding{}, nil)
	m.etfTx.On("List", ctx, userID, (*uuid.UUID)(nil)).Return([]*domain.ETFTransaction{
		{Type: domain.ETFTransactionDividend, TotalAmount: decimal.RequireFromString("12.50"), Date: time.Now()},
	}, nil)
	m.stockTx.On("List", ctx, userID, (*uuid.UUID)(nil)).Return([]*domain.StockTransaction{}, nil)
	m.cryptoTx.On("List", ctx, userID, (*uuid.UUID)(nil)).Return([]*domain.CryptoTransaction{}, nil)
	m.prefs.On("Get", ctx, userID).Return(&domain.UserPreferences{Currency: "AUD"}, nil)

	got, err := svc.GetSummary(ctx, userID)

	assert.NoError(t, err)
	assert.True(t, decimal.RequireFromString("3500").Equal(got.TotalNetWorth))
	assert.True(t, decimal.RequireFromString("12.50").Equal(got.InvestmentSummary.TotalDividends))
	assert.Equal(t, "AUD", got.Currency)
	assert.Equal(t, "$3,500.00", got.FormattedTotal)

	m.bank.AssertExpectations(t)
	m.etf.AssertExpectations(t)
}

func TestGetSummaryFetchFailureFailsWholeRequest(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	svc, m := newServiceWithMocks()

	m.bank.On("List", ctx, userID).Return([]*domain.BankAccount{}, nil)
	m.super.On("List", ctx, userID).Return(nil, errors.New("connection reset"))

	got, err := svc.GetSummary(ctx, userID)

	// A failed fetch must fail the request, never produce a
	// zero-filled summary that looks like an empty portfolio
	assert.Nil(t, got)
	assert.ErrorContains(t, err, "superannuation")
}

func TestGetSummaryMissingPreferencesDefaultsCurrency(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	svc, m := newServiceWithMocks()

	m.bank.On("List", ctx, userID).Return([]*domain.BankAccount{}, nil)
	m.super.On("List", ctx, userID).Return([]*domain.SuperannuationAccount{}, nil)
	m.etf.On("List", ctx, userID).Return([]*domain.ETFHolding{}, nil)
	m.stock.On("List", ctx, userID).Return([]*domain.StockHolding{}, nil)
	m.crypto.On("List", ctx, userID).Return([]*domain.CryptoHolding{}, nil)
	m.etfTx.On("List", ctx, userID, (*uuid.UUID)(nil)).Return([]*domain.ETFTransaction{}, nil)
	m.stockTx.On("List", ctx, userID, (*uuid.UUID)(nil)).Return([]*domain.StockTransaction{}, nil)
	m.cryptoTx.On("List", ctx, userID, (*uuid.UUID)(nil)).Return([]*domain.CryptoTransaction{}, nil)
	m.prefs.On("Get", ctx, userID).Return(nil, domain.ErrNotFound)

	got, err := svc.GetSummary(ctx, userID)

	assert.NoError(t, err)
	assert.Equal(t, "AUD", got.Currency)
}
