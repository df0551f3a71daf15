package ports

import (
	"errors"
	"time"

	"github.com/Apurer/go-gin-storefront/internal/domains/identity/domain"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// TokenClaims is the verified content of a bearer credential.
type TokenClaims struct {
	Principal domain.Principal
	SessionID string
	ExpiresAt time.Time
}

// TokenCodec signs and verifies bearer credentials.
type TokenCodec interface {
	Issue(claims TokenClaims, issuedAt time.Time) (string, error)
	Parse(token string) (TokenClaims, error)
}
