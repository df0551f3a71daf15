package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-storefront/internal/domains/identity/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/identity/ports"
)

func TestJWT_IssueAndParse(t *testing.T) {
	codec, err := NewJWT("test-secret")
	require.NoError(t, err)

	now := time.Now()
	in := ports.TokenClaims{
		Principal: domain.Principal{UserID: "u-1", Email: "a@example.com", Role: domain.RoleVendor},
		SessionID: "s-1",
		ExpiresAt: now.Add(time.Hour),
	}
	raw, err := codec.Issue(in, now)
	require.NoError(t, err)

	out, err := codec.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, in.Principal, out.Principal)
	require.Equal(t, "s-1", out.SessionID)
	require.WithinDuration(t, in.ExpiresAt, out.ExpiresAt, time.Second)
}

func TestJWT_RejectsExpiredAndForeignTokens(t *testing.T) {
	codec, err := NewJWT("test-secret")
	require.NoError(t, err)

	past := time.Now().Add(-2 * time.Hour)
	expired, err := codec.Issue(ports.TokenClaims{
		Principal: domain.Principal{UserID: "u-1", Role: domain.RoleUser},
		SessionID: "s-1",
		ExpiresAt: past.Add(time.Hour),
	}, past)
	require.NoError(t, err)
	_, err = codec.Parse(expired)
	require.ErrorIs(t, err, ports.ErrInvalidToken)

	other, err := NewJWT("other-secret")
	require.NoError(t, err)
	foreign, err := other.Issue(ports.TokenClaims{
		Principal: domain.Principal{UserID: "u-1", Role: domain.RoleUser},
		SessionID: "s-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}, time.Now())
	require.NoError(t, err)
	_, err = codec.Parse(foreign)
	require.ErrorIs(t, err, ports.ErrInvalidToken)
}

func TestJWT_RejectsNoneAlgorithm(t *testing.T) {
	codec, err := NewJWT("test-secret")
	require.NoError(t, err)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"userId": "u-1",
		"role":   "admin",
		"jti":    "s-1",
		"iss":    defaultIssuer,
		"exp":    time.Now().Add(time.Hour).Unix(),
	})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = codec.Parse(raw)
	require.ErrorIs(t, err, ports.ErrInvalidToken)
}

func TestNewJWT_RequiresSecret(t *testing.T) {
	_, err := NewJWT("  ")
	require.Error(t, err)
}
