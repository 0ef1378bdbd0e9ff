package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents a registered account holder. Every other entity in
// the system is scoped to exactly one user.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate ensures the user adheres to domain rules
func (u *User) Validate() error {
	if strings.TrimSpace(u.Email) == "" {
		return errors.New("email cannot be empty")
	}
	if !strings.Contains(u.Email, "@") {
		return errors.New("email is not valid")
	}
	if u.PasswordHash == "" {
		return errors.New("password hash cannot be empty")
	}
	return nil
}

// UserPreferences holds per-user settings and profile fields. Pure
// configuration, not part of the valuation core.
type UserPreferences struct {
	UserID       uuid.UUID
	Currency     string // ISO 4217 code, validated against the supported set
	Timezone     string // IANA zone name
	DateOfBirth  *time.Time
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	Postcode     string
	Country      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DefaultPreferences returns the preferences assigned to a newly
// registered user.
func DefaultPreferences(userID uuid.UUID) *UserPreferences {
	return &UserPreferences{
		UserID:   userID,
		Currency: "AUD",
		Timezone: "Australia/Sydney",
		Country:  "Australia",
	}
}
