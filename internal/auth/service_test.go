package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/networth-tracker/backend/internal/domain"
)

type MockUserRepo struct{ mock.Mock }

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
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

type MockSessionRepo struct{ mock.Mock }

func (m *MockSessionRepo) Create(ctx context.Context, session *domain.Session) error {
	return m.Called(ctx, session).Error(0)
}
func (m *MockSessionRepo) GetByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}
func (m *MockSessionRepo) Revoke(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockSessionRepo) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}
func (m *MockSessionRepo) DeleteExpired(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func newTestService() (*Service, *MockUserRepo, *MockPrefsRepo, *MockSessionRepo) {
	users := new(MockUserRepo)
	prefs := new(MockPrefsRepo)
	sessions := new(MockSessionRepo)
	// min bcrypt cost keeps the tests fast
	svc := NewService(
		users, prefs, sessions,
		NewJWTManager("test-secret", 15*time.Minute, time.Hour),
		NewPasswordManager(4, MinPasswordLength),
		zerolog.Nop(),
	)
	return svc, users, prefs, sessions
}

func TestRegisterCreatesUserWithDefaultPreferences(t *testing.T) {
	ctx := context.Background()
	svc, users, prefs, sessions := newTestService()

	users.On("EmailExists", ctx, "alice@example.com").Return(false, nil)
	users.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)
	prefs.On("Upsert", ctx, mock.MatchedBy(func(p *domain.UserPreferences) bool {
		return p.Currency == "AUD" && p.Timezone == "Australia/Sydney"
	})).Return(nil)
	sessions.On("Create", ctx, mock.AnythingOfType("*domain.Session")).Return(nil)

	resp, err := svc.Register(ctx, RegisterRequest{
		Email:     "alice@example.com",
		Password:  "Correct-Horse9",
		FirstName: "Alice",
	}, "test-agent", "127.0.0.1")

	assert.NoError(t, err)
	assert.Equal(t, "alice@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	users.AssertExpectations(t)
	prefs.AssertExpectations(t)
	sessions.AssertExpectations(t)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, users, _, _ := newTestService()

	users.On("EmailExists", ctx, "alice@example.com").Return(true, nil)

	_, err := svc.Register(ctx, RegisterRequest{
		Email:    "alice@example.com",
		Password: "Correct-Horse9",
	}, "", "")

	assert.Equal(t, ErrEmailExists, err)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterWeakPassword(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestService()

	_, err := svc.Register(ctx, RegisterRequest{
		Email:    "alice@example.com",
		Password: "aaaaaaaaaa",
	}, "", "")

	var authErr AuthError
	assert.ErrorAs(t, err, &authErr)
	assert.Equal(t, ErrWeakPassword.Code, authErr.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	svc, users, _, _ := newTestService()

	hash, _ := NewPasswordManager(4, MinPasswordLength).HashPassword("Correct-Horse9")
	users.On("GetByEmail", ctx, "alice@example.com").Return(&domain.User{
		ID: uuid.New(), Email: "alice@example.com", PasswordHash: hash,
	}, nil)

	_, err := svc.Login(ctx, LoginRequest{Email: "alice@example.com", Password: "wrong"}, "", "")

	assert.Equal(t, ErrInvalidCredentials, err)
}

func TestLoginUnknownEmailSameError(t *testing.T) {
	ctx := context.Background()
	svc, users, _, _ := newTestService()

	users.On("GetByEmail", ctx, "ghost@example.com").Return(nil, domain.ErrNotFound)

	_, err := svc.Login(ctx, LoginRequest{Email: "ghost@example.com", Password: "whatever"}, "", "")

	// unknown email and wrong password are indistinguishable
	assert.Equal(t, ErrInvalidCredentials, err)
}

func TestRefreshRotatesSession(t *testing.T) {
	ctx := context.Background()
	svc, users, _, sessions := newTestService()
	userID := uuid.New()
	sessionID := uuid.New()

	sessions.On("GetByTokenHash", ctx, HashRefreshToken("old-token")).Return(&domain.Session{
		ID:               sessionID,
		UserID:           userID,
		RefreshTokenHash: HashRefreshToken("old-token"),
		ExpiresAt:        time.Now().Add(time.Hour),
	}, nil)
	users.On("GetByID", ctx, userID).Return(&domain.User{ID: userID, Email: "alice@example.com", PasswordHash: "x"}, nil)
	sessions.On("Revoke", ctx, sessionID).Return(nil)
	sessions.On("Create", ctx, mock.AnythingOfType("*domain.Session")).Return(nil)

	pair, err := svc.RefreshTokens(ctx, "old-token", "test-agent", "127.0.0.1")

	assert.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEqual(t, "old-token", pair.RefreshToken)
	sessions.AssertExpectations(t)
}

func TestRefreshRevokedSession(t *testing.T) {
	ctx := context.Background()
	svc, _, _, sessions := newTestService()
	revokedAt := time.Now().Add(-time.Minute)

	sessions.On("GetByTokenHash", ctx, HashRefreshToken("stolen")).Return(&domain.Session{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		ExpiresAt: time.Now().Add(time.Hour),
		RevokedAt: &revokedAt,
	}, nil)

	_, err := svc.RefreshTokens(ctx, "stolen", "", "")

	assert.Equal(t, ErrSessionRevoked, err)
}

func TestRefreshUnknownToken(t *testing.T) {
	ctx := context.Background()
	svc, _, _, sessions := newTestService()

	sessions.On("GetByTokenHash", ctx, mock.Anything).Return(nil, domain.ErrNotFound)

	_, err := svc.RefreshTokens(ctx, "bogus", "", "")

	assert.Equal(t, ErrInvalidToken, err)
}

func TestLogoutIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, _, _, sessions := newTestService()

	sessions.On("GetByTokenHash", ctx, mock.Anything).Return(nil, domain.ErrNotFound)

	assert.NoError(t, svc.Logout(ctx, "already-gone"))
}

func TestChangePasswordRevokesAllSessions(t *testing.T) {
	ctx := context.Background()
	svc, users, _, sessions := newTestService()
	userID := uuid.New()

	hash, _ := NewPasswordManager(4, MinPasswordLength).HashPassword("Correct-Horse9")
	users.On("GetByID", ctx, userID).Return(&domain.User{ID: userID, Email: "a@b.c", PasswordHash: hash}, nil)
	users.On("UpdatePassword", ctx, userID, mock.AnythingOfType("string")).Return(nil)
	sessions.On("RevokeAllForUser", ctx, userID).Return(nil)

	err := svc.ChangePassword(ctx, userID, ChangePasswordRequest{
		CurrentPassword: "Correct-Horse9",
		NewPassword:     "Different-Horse7",
	})

	assert.NoError(t, err)
	sessions.AssertExpectations(t)
}
