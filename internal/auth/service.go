package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/networth-tracker/backend/internal/domain"
)

// Service implements registration, login and refresh-token session
// management on top of the domain repositories.
type Service struct {
	users     domain.UserRepository
	prefs     domain.PreferencesRepository
	sessions  domain.SessionRepository
	jwt       *JWTManager
	passwords *PasswordManager
	log       zerolog.Logger
}

// NewService creates an auth service.
func NewService(
	users domain.UserRepository,
	prefs domain.PreferencesRepository,
	sessions domain.SessionRepository,
	jwtManager *JWTManager,
	passwordManager *PasswordManager,
	log zerolog.Logger,
) *Service {
	return &Service{
		users:     users,
		prefs:     prefs,
		sessions:  sessions,
		jwt:       jwtManager,
		passwords: passwordManager,
		log:       log,
	}
}

// Register creates a new user with default preferences and logs them
// straight in.
func (s *Service) Register(ctx context.Context, req RegisterRequest, userAgent, ip string) (*LoginResponse, error) {
	if err := s.passwords.ValidatePasswordStrength(req.Password); err != nil {
		return nil, AuthError{Code: ErrWeakPassword.Code, Message: err.Error()}
	}

	exists, err := s.users.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, ErrEmailExists
	}

	hash, err := s.passwords.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	}
	if err := user.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	if err := s.prefs.Upsert(ctx, domain.DefaultPreferences(user.ID)); err != nil {
		// The account exists; preferences fall back to defaults at read
		// time, so a failure here is not fatal.
		s.log.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to seed default preferences")
	}

	s.log.Info().Str("user_id", user.ID.String()).Msg("user registered")
	return s.startSession(ctx, user, userAgent, ip)
}

// Login authenticates by email and password.
func (s *Service) Login(ctx context.Context, req LoginRequest, userAgent, ip string) (*LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !s.passwords.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return s.startSession(ctx, user, userAgent, ip)
}

// RefreshTokens rotates a refresh session: the presented token's
// session is revoked and a fresh pair is issued. A revoked or expired
// session never refreshes.
func (s *Service) RefreshTokens(ctx context.Context, refreshToken, userAgent, ip string) (*TokenPair, error) {
	session, err := s.sessions.GetByTokenHash(ctx, HashRefreshToken(refreshToken))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if !session.Active(time.Now()) {
		if session.RevokedAt != nil {
			return nil, ErrSessionRevoked
		}
		return nil, ErrTokenExpired
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := s.sessions.Revoke(ctx, session.ID); err != nil {
		return nil, fmt.Errorf("failed to revoke session: %w", err)
	}
	return s.issueTokens(ctx, user, userAgent, ip)
}

// Logout revokes the session behind a refresh token. Unknown tokens
// are ignored so logout is idempotent.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	session, err := s.sessions.GetByTokenHash(ctx, HashRefreshToken(refreshToken))
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	return s.sessions.Revoke(ctx, session.ID)
}

// LogoutAll revokes every session of the user.
func (s *Service) LogoutAll(ctx context.Context, userID uuid.UUID) error {
	return s.sessions.RevokeAllForUser(ctx, userID)
}

// ChangePassword verifies the current password, stores a new hash and
// revokes all sessions so every device has to log in again.
func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if !s.passwords.VerifyPassword(req.CurrentPassword, user.PasswordHash) {
		return ErrInvalidCredentials
	}
	if err := s.passwords.ValidatePasswordStrength(req.NewPassword); err != nil {
		return AuthError{Code: ErrWeakPassword.Code, Message: err.Error()}
	}
	hash, err := s.passwords.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return s.sessions.RevokeAllForUser(ctx, userID)
}

// UpdateProfile updates a user's name fields. Email changes are not
// supported; the address is the login identity.
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, firstName, lastName string) (*UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.FirstName = firstName
	user.LastName = lastName
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	resp := userResponse(user)
	return &resp, nil
}

// CurrentUser returns the profile of an authenticated user.
func (s *Service) CurrentUser(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := userResponse(user)
	return &resp, nil
}

func (s *Service) startSession(ctx context.Context, user *domain.User, userAgent, ip string) (*LoginResponse, error) {
	pair, err := s.issueTokens(ctx, user, userAgent, ip)
	if err != nil {
		return nil, err
	}
	return &LoginResponse{
		User:         userResponse(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}

func (s *Service) issueTokens(ctx context.Context, user *domain.User, userAgent, ip string) (*TokenPair, error) {
	pair, err := s.jwt.GenerateTokenPair(UserClaims{
		UserID: user.ID.String(),
		Email:  user.Email,
	})
	if err != nil {
		return nil, err
	}

	session := &domain.Session{
		ID:               uuid.New(),
		UserID:           user.ID,
		RefreshTokenHash: HashRefreshToken(pair.RefreshToken),
		UserAgent:        userAgent,
		IPAddress:        ip,
		ExpiresAt:        time.Now().Add(s.jwt.RefreshTokenDuration()),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return pair, nil
}

func userResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		CreatedAt: user.CreatedAt,
	}
}
