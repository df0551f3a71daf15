package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Apurer/go-gin-storefront/internal/domains/identity/adapters/memory"
	"github.com/Apurer/go-gin-storefront/internal/domains/identity/adapters/token"
	"github.com/Apurer/go-gin-storefront/internal/domains/identity/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/identity/ports"
)

func newTestService(t *testing.T, opts ...Option) (*Service, *memory.SessionStore) {
	t.Helper()
	codec, err := token.NewJWT("unit-test-secret")
	require.NoError(t, err)
	sessions := memory.NewSessionStore()
	opts = append([]Option{WithBcryptCost(bcrypt.MinCost)}, opts...)
	return NewService(memory.NewRepository(), sessions, codec, opts...), sessions
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, ports.RegisterInput{Name: "Alice", Email: "Alice@Example.com", Password: "secret1"})
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	require.Equal(t, domain.RoleUser, result.User.Role)
	require.NotEqual(t, "secret1", result.User.PasswordHash)

	principal, err := svc.Authenticate(ctx, result.Token)
	require.NoError(t, err)
	require.Equal(t, result.User.ID, principal.UserID)
	require.Equal(t, "alice@example.com", principal.Email)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, ports.RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, ports.RegisterInput{Name: "Alice 2", Email: "ALICE@example.com", Password: "secret2"})
	require.ErrorIs(t, err, ports.ErrDuplicateEmail)
}

func TestRegister_WeakPassword(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(context.Background(), ports.RegisterInput{Name: "Bob", Email: "bob@example.com", Password: "123"})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrWeakPassword)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, ports.RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice@example.com", "wrong-pass")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "ghost@example.com", "secret1")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	result, err := svc.Login(ctx, " ALICE@example.com ", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
}

func TestLogout_RevokesToken(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, ports.RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, result.Token))
	_, err = svc.Authenticate(ctx, result.Token)
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthenticate_ExpiredSession(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	svc, _ := newTestService(t, WithClock(clock), WithTokenTTL(time.Hour))
	ctx := context.Background()

	result, err := svc.Register(ctx, ports.RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)
	_, err = svc.Authenticate(ctx, result.Token)
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, ports.RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)

	name := "Alice Cooper"
	avatar := "https://cdn.example.com/a.png"
	updated, err := svc.UpdateProfile(ctx, result.User.ID, ports.ProfileUpdate{
		Name:   &name,
		Avatar: &avatar,
		Addresses: []domain.Address{{
			Type: "home", Name: "Alice", Address: "1 Main St", City: "Springfield",
			State: "IL", Country: "US", ZipCode: "62701", Phone: "555-0100", IsDefault: true,
		}},
	})
	require.NoError(t, err)
	require.Equal(t, name, updated.Name)
	require.Equal(t, avatar, updated.Avatar)
	require.Len(t, updated.Addresses, 1)
	require.Equal(t, "alice@example.com", updated.Email)
}

func TestEnsureUser_IsIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	input := ports.RegisterInput{Name: "Admin", Email: "admin@example.com", Password: "admin-pass"}

	first, err := svc.EnsureUser(ctx, input, domain.RoleAdmin)
	require.NoError(t, err)
	second, err := svc.EnsureUser(ctx, input, domain.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, domain.RoleAdmin, second.Role)

	count, err := svc.CountUsers(ctx)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestPurgeExpiredSessions(t *testing.T) {
	svc, sessions := newTestService(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, ports.RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)
	require.NoError(t, sessions.Save(ctx, domain.Session{
		ID:        "stale",
		UserID:    result.User.ID,
		ExpiresAt: time.Now().Add(-time.Minute),
		CreatedAt: time.Now().Add(-time.Hour),
	}))

	removed, err := sessions.PurgeExpired(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, removed)

	_, err = sessions.Get(ctx, "stale")
	require.ErrorIs(t, err, ports.ErrSessionNotFound)
	_, err = svc.Authenticate(ctx, result.Token)
	require.NoError(t, err)
}
