package domain

import (
	"errors"
	"net/mail"
	"strings"
	"time"
)

const MinPasswordLength = 6

var (
	ErrEmptyName    = errors.New("name is required")
	ErrInvalidEmail = errors.New("email is invalid")
	ErrWeakPassword = errors.New("password must be at least 6 characters")
)

// Address is a saved postal address on a user profile.
type Address struct {
	Type      string `json:"type"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Country   string `json:"country"`
	ZipCode   string `json:"zipCode"`
	Phone     string `json:"phone"`
	IsDefault bool   `json:"isDefault"`
}

// User represents a storefront account.
type User struct {
	ID              string
	Name            string
	Email           string
	PasswordHash    string
	Avatar          string
	Role            Role
	Addresses       []Address
	IsEmailVerified bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewUser builds a user ensuring required invariants. The password hash is set separately.
func NewUser(id, name, email string, role Role) (*User, error) {
	user := &User{ID: id, Role: role}
	if err := user.Rename(name); err != nil {
		return nil, err
	}
	if err := user.SetEmail(email); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	return user, nil
}

// Rename trims and validates the display name.
func (u *User) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	u.Name = name
	return nil
}

// SetEmail normalizes the email to lower case and validates its shape.
func (u *User) SetEmail(email string) error {
	email = NormalizeEmail(email)
	if email == "" {
		return ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrInvalidEmail
	}
	u.Email = email
	return nil
}

// Principal returns the credential view of the user.
func (u *User) Principal() Principal {
	return Principal{UserID: u.ID, Email: u.Email, Role: u.Role}
}

// ValidatePassword checks the plain-text password policy.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}

// NormalizeEmail lower-cases and trims an email for lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Session is a server-side record of an issued credential. Revoking it invalidates the token.
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session is past its expiry at now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
