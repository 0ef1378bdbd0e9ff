package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/networth-tracker/backend/internal/auth"
	"github.com/networth-tracker/backend/internal/domain"
	"github.com/networth-tracker/backend/internal/usecase/superfund"
	"github.com/rs/zerolog"
)

type MockBankAccountRepo struct {
	mock.Mock
}

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
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockBankAccountRepo) Update(ctx context.Context, account *domain.BankAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockBankAccountRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

type MockSuperAccountRepo struct {
	mock.Mock
}

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
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockSuperAccountRepo) Update(ctx context.Context, account *domain.SuperannuationAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockSuperAccountRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

type MockSuperSnapshotRepo struct {
	mock.Mock
}

func (m *MockSuperSnapshotRepo) List(ctx context.Context, userID uuid.UUID, accountID *uuid.UUID) ([]*domain.SuperSnapshot, error) {
	args := m.Called(ctx, userID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.SuperSnapshot), args.Error(1)
}

func (m *MockSuperSnapshotRepo) ListForAccount(ctx context.Context, userID, accountID uuid.UUID) ([]*domain.SuperSnapshot, error) {
	args := m.Called(ctx, userID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.SuperSnapshot), args.Error(1)
}

func (m *MockSuperSnapshotRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.SuperSnapshot, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SuperSnapshot), args.Error(1)
}

func (m *MockSuperSnapshotRepo) Create(ctx context.Context, userID uuid.UUID, snapshot *domain.SuperSnapshot) error {
	args := m.Called(ctx, userID, snapshot)
	return args.Error(0)
}

func (m *MockSuperSnapshotRepo) Update(ctx context.Context, userID uuid.UUID, snapshot *domain.SuperSnapshot) error {
	args := m.Called(ctx, userID, snapshot)
	return args.Error(0)
}

func (m *MockSuperSnapshotRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

type testHarness struct {
	server    *Server
	jwt       *auth.JWTManager
	userID    uuid.UUID
	bankRepo  *MockBankAccountRepo
	superRepo *MockSuperAccountRepo
	snapRepo  *MockSuperSnapshotRepo
}

func newTestHarness() *testHarness {
	bankRepo := new(MockBankAccountRepo)
	superRepo := new(MockSuperAccountRepo)
	snapRepo := new(MockSuperSnapshotRepo)
	jwtManager := auth.NewJWTManager("test-secret", 15*time.Minute, 7*24*time.Hour)

	server := NewServer(
		Config{Host: "127.0.0.1", Port: 8080, AllowedOrigins: []string{"http://localhost:3000"}},
		Deps{
			JWTManager:   jwtManager,
			SuperService: superfund.NewService(superRepo, snapRepo),
			BankRepo:     bankRepo,
		},
		zerolog.Nop(),
	)

	return &testHarness{
		server:    server,
		jwt:       jwtManager,
		userID:    uuid.New(),
		bankRepo:  bankRepo,
		superRepo: superRepo,
		snapRepo:  snapRepo,
	}
}

func (h *testHarness) request(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			panic(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	token, err := h.jwt.GenerateAccessToken(auth.UserClaims{UserID: h.userID.String(), Email: "test@example.com"})
	if err != nil {
		panic(err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	h.server.Router().ServeHTTP(rec, req)
	return rec
}
