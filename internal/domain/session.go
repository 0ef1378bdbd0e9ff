package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session is a server-side refresh-token session. The refresh token
// itself is never stored; only its SHA-256 hash is. Refreshing rotates
// the session: the old one is revoked and a new one created.
type Session struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	RefreshTokenHash string
	UserAgent        string
	IPAddress        string
	ExpiresAt        time.Time
	RevokedAt        *time.Time
	CreatedAt        time.Time
}

// Active reports whether the session can still be used to refresh.
func (s *Session) Active(now time.Time) bool {
	return s.RevokedAt == nil && s.ExpiresAt.After(now)
}
