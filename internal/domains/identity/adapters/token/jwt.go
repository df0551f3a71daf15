package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Apurer/go-gin-storefront/internal/domains/identity/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/identity/ports"
)

const defaultIssuer = "storefront-api"

var _ ports.TokenCodec = (*JWT)(nil)

// claims is the wire shape of the bearer credential.
type claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// JWT signs credentials with HMAC-SHA256.
type JWT struct {
	secret []byte
	issuer string
}

// NewJWT builds a codec for the shared secret.
func NewJWT(secret string) (*JWT, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	return &JWT{secret: []byte(secret), issuer: defaultIssuer}, nil
}

// Issue signs the claims. SessionID becomes the token's jti.
func (j *JWT) Issue(c ports.TokenClaims, issuedAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UserID: c.Principal.UserID,
		Email:  c.Principal.Email,
		Role:   string(c.Principal.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        c.SessionID,
			Subject:   c.Principal.UserID,
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(c.ExpiresAt),
		},
	})
	signed, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies signature, algorithm, issuer, and expiry.
func (j *JWT) Parse(raw string) (ports.TokenClaims, error) {
	var parsed claims
	_, err := jwt.ParseWithClaims(raw, &parsed, func(*jwt.Token) (any, error) {
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(j.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return ports.TokenClaims{}, fmt.Errorf("%w: %w", ports.ErrInvalidToken, err)
	}
	role, err := domain.ParseRole(parsed.Role)
	if err != nil || parsed.UserID == "" || parsed.ID == "" {
		return ports.TokenClaims{}, ports.ErrInvalidToken
	}
	var expiresAt time.Time
	if parsed.ExpiresAt != nil {
		expiresAt = parsed.ExpiresAt.Time
	}
	return ports.TokenClaims{
		Principal: domain.Principal{UserID: parsed.UserID, Email: parsed.Email, Role: role},
		SessionID: parsed.ID,
		ExpiresAt: expiresAt,
	}, nil
}
