package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/networth-tracker/backend/internal/domain"
)

// userRepository implements domain.UserRepository
type userRepository struct {
	db *DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *DB) domain.UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, first_name, last_name)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by its ID
func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `
		SELECT id, email, password_hash, first_name, last_name, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var user domain.User
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, mapRowError(err, "user")
	}

	return &user, nil
}

// GetByEmail retrieves a user by email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, email, password_hash, first_name, last_name, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	var user domain.User
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, mapRowError(err, "user")
	}

	return &user, nil
}

// EmailExists reports whether a user with the email already exists
func (r *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return exists, nil
}

// Update updates a user's profile fields
func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET email = $2, first_name = $3, last_name = $4, updated_at = now()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, user.ID, user.Email, user.FirstName, user.LastName)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return requireRowAffected(result, "user")
}

// UpdatePassword replaces a user's password hash
func (r *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	query := `
		UPDATE users
		SET password_hash = $2, updated_at = now()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return requireRowAffected(result, "user")
}

// preferencesRepository implements domain.PreferencesRepository
type preferencesRepository struct {
	db *DB
}

// NewPreferencesRepository creates a new preferences repository
func NewPreferencesRepository(db *DB) domain.PreferencesRepository {
	return &preferencesRepository{db: db}
}

// Get retrieves a user's preferences
func (r *preferencesRepository) Get(ctx context.Context, userID uuid.UUID) (*domain.UserPreferences, error) {
	query := `
		SELECT user_id, currency, timezone, date_of_birth, address_line1, address_line2,
		       city, state, postcode, country, created_at, updated_at
		FROM user_preferences
		WHERE user_id = $1
	`

	var prefs domain.UserPreferences
	var dob sql.NullTime

	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&prefs.UserID,
		&prefs.Currency,
		&prefs.Timezone,
		&dob,
		&prefs.AddressLine1,
		&prefs.AddressLine2,
		&prefs.City,
		&prefs.State,
		&prefs.Postcode,
		&prefs.Country,
		&prefs.CreatedAt,
		&prefs.UpdatedAt,
	)
	if err != nil {
		return nil, mapRowError(err, "preferences")
	}

	if dob.Valid {
		d := dob.Time
		prefs.DateOfBirth = &d
	}

	return &prefs, nil
}

// Upsert creates or replaces a user's preferences
func (r *preferencesRepository) Upsert(ctx context.Context, prefs *domain.UserPreferences) error {
	query := `
		INSERT INTO user_preferences (user_id, currency, timezone, date_of_birth, address_line1,
		                              address_line2, city, state, postcode, country)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id) DO UPDATE SET
			currency = EXCLUDED.currency,
			timezone = EXCLUDED.timezone,
			date_of_birth = EXCLUDED.date_of_birth,
			address_line1 = EXCLUDED.address_line1,
			address_line2 = EXCLUDED.address_line2,
			city = EXCLUDED.city,
			state = EXCLUDED.state,
			postcode = EXCLUDED.postcode,
			country = EXCLUDED.country,
			updated_at = now()
	`

	var dob interface{}
	if prefs.DateOfBirth != nil {
		dob = *prefs.DateOfBirth
	}

	_, err := r.db.ExecContext(ctx, query,
		prefs.UserID,
		prefs.Currency,
		prefs.Timezone,
		dob,
		prefs.AddressLine1,
		prefs.AddressLine2,
		prefs.City,
		prefs.State,
		prefs.Postcode,
		prefs.Country,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert preferences: %w", err)
	}

	return nil
}

// sessionRepository implements domain.SessionRepository
type sessionRepository struct {
	db *DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *DB) domain.SessionRepository {
	return &sessionRepository{db: db}
}

// Create creates a new session
func (r *sessionRepository) Create(ctx context.Context, session *domain.Session) error {
	query := `
		INSERT INTO sessions (id, user_id, refresh_token_hash, user_agent, ip_address, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		session.ID,
		session.UserID,
		session.RefreshTokenHash,
		session.UserAgent,
		session.IPAddress,
		session.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

// GetByTokenHash retrieves a session by its refresh token hash
func (r *sessionRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error) {
	query := `
		SELECT id, user_id, refresh_token_hash, user_agent, ip_address, expires_at, revoked_at, created_at
		FROM sessions
		WHERE refresh_token_hash = $1
	`

	var session domain.Session
	var revokedAt sql.NullTime

	err := r.db.QueryRowContext(ctx, query, tokenHash).Scan(
		&session.ID,
		&session.UserID,
		&session.RefreshTokenHash,
		&session.UserAgent,
		&session.IPAddress,
		&session.ExpiresAt,
		&revokedAt,
		&session.CreatedAt,
	)
	if err != nil {
		return nil, mapRowError(err, "session")
	}

	if revokedAt.Valid {
		t := revokedAt.Time
		session.RevokedAt = &t
	}

	return &session, nil
}

// Revoke marks a session as revoked
func (r *sessionRepository) Revoke(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE sessions SET revoked_at = now() WHERE id = $1 AND revoked_at IS NULL`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// RevokeAllForUser revokes every active session of a user
func (r *sessionRepository) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	query := `UPDATE sessions SET revoked_at = now() WHERE user_id = $1 AND revoked_at IS NULL`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}
	return nil
}

// DeleteExpired removes sessions past their expiry
func (r *sessionRepository) DeleteExpired(ctx context.Context) error {
	query := `DELETE FROM sessions WHERE expires_at < $1`

	if _, err := r.db.ExecContext(ctx, query, time.Now()); err != nil {
		return fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return nil
}
