package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Apurer/go-gin-storefront/internal/domains/identity/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/identity/ports"
)

const (
	// DefaultTokenTTL matches the credential lifetime handed to browsers.
	DefaultTokenTTL = 7 * 24 * time.Hour
	// DefaultBcryptCost is the work factor for stored password hashes.
	DefaultBcryptCost = 12
)

// Service orchestrates account, credential, and profile use cases.
type Service struct {
	repo       ports.Repository
	sessions   ports.SessionStore
	tokens     ports.TokenCodec
	tokenTTL   time.Duration
	bcryptCost int
	now        func() time.Time
}

// Option customizes the identity service.
type Option func(*Service)

// WithTokenTTL overrides the lifetime of issued credentials.
func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.tokenTTL = ttl
		}
	}
}

// WithBcryptCost overrides the password hashing cost. Tests use bcrypt.MinCost.
func WithBcryptCost(cost int) Option {
	return func(s *Service) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			s.bcryptCost = cost
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo ports.Repository, sessions ports.SessionStore, tokens ports.TokenCodec, opts ...Option) *Service {
	s := &Service{
		repo:       repo,
		sessions:   sessions,
		tokens:     tokens,
		tokenTTL:   DefaultTokenTTL,
		bcryptCost: DefaultBcryptCost,
		now:        time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	user, err := s.createUser(ctx, input, domain.RoleUser)
	if err != nil {
		return nil, err
	}
	return s.issue(ctx, user)
}

func (s *Service) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issue(ctx, user)
}

// Authenticate verifies the token signature and that its session has not been revoked.
func (s *Service) Authenticate(ctx context.Context, token string) (domain.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.Principal{}, ErrUnauthenticated
	}
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return domain.Principal{}, mapError(err)
	}
	session, err := s.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		return domain.Principal{}, mapError(err)
	}
	if session.Expired(s.now()) || session.UserID != claims.Principal.UserID {
		return domain.Principal{}, ErrUnauthenticated
	}
	return claims.Principal, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.Parse(strings.TrimSpace(token))
	if err != nil {
		return mapError(err)
	}
	if err := s.sessions.Delete(ctx, claims.SessionID); err != nil && !errors.Is(err, ports.ErrSessionNotFound) {
		return err
	}
	return nil
}

func (s *Service) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *Service) UpdateProfile(ctx context.Context, userID string, update ports.ProfileUpdate) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if update.Name != nil && strings.TrimSpace(*update.Name) != "" {
		if err := user.Rename(*update.Name); err != nil {
			return nil, mapError(err)
		}
	}
	if update.Avatar != nil {
		user.Avatar = strings.TrimSpace(*update.Avatar)
	}
	if update.Addresses != nil {
		user.Addresses = append([]domain.Address(nil), update.Addresses...)
	}
	user.UpdatedAt = s.now()
	return s.repo.Update(ctx, user)
}

// EnsureUser creates the account when the email is unknown and returns the stored user otherwise.
func (s *Service) EnsureUser(ctx context.Context, input ports.RegisterInput, role domain.Role) (*domain.User, error) {
	existing, err := s.repo.GetByEmail(ctx, domain.NormalizeEmail(input.Email))
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}
	return s.createUser(ctx, input, role)
}

// CountUsers returns the number of shopper accounts.
func (s *Service) CountUsers(ctx context.Context) (int64, error) {
	return s.repo.CountByRole(ctx, domain.RoleUser)
}

func (s *Service) createUser(ctx context.Context, input ports.RegisterInput, role domain.Role) (*domain.User, error) {
	user, err := domain.NewUser(uuid.NewString(), input.Name, input.Email, role)
	if err != nil {
		return nil, mapError(err)
	}
	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, mapError(err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = string(hash)
	now := s.now()
	user.CreatedAt = now
	user.UpdatedAt = now
	return s.repo.Create(ctx, user)
}

func (s *Service) issue(ctx context.Context, user *domain.User) (*ports.AuthResult, error) {
	now := s.now()
	session := domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: now.Add(s.tokenTTL),
		CreatedAt: now,
	}
	token, err := s.tokens.Issue(ports.TokenClaims{
		Principal: user.Principal(),
		SessionID: session.ID,
		ExpiresAt: session.ExpiresAt,
	}, now)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return &ports.AuthResult{Token: token, ExpiresAt: session.ExpiresAt, User: user}, nil
}

var _ ports.Service = (*Service)(nil)
