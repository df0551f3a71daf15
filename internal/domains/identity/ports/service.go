package ports

import (
	"context"
	"time"

	"github.com/Apurer/go-gin-storefront/internal/domains/identity/domain"
)

// RegisterInput carries sign-up fields.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// AuthResult is returned after a successful login or registration.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// ProfileUpdate carries optional profile changes. Nil fields are left untouched.
type ProfileUpdate struct {
	Name      *string
	Avatar    *string
	Addresses []domain.Address
}

// Service exposes identity use cases to adapters.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Authenticate(ctx context.Context, token string) (domain.Principal, error)
	Logout(ctx context.Context, token string) error
	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*domain.User, error)
	EnsureUser(ctx context.Context, input RegisterInput, role domain.Role) (*domain.User, error)
	CountUsers(ctx context.Context) (int64, error)
}
