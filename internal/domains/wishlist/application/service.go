package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/Apurer/go-gin-storefront/internal/domains/wishlist/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/wishlist/ports"
)

// ErrInvalidInput signals a malformed wishlist request.
var ErrInvalidInput = errors.New("invalid wishlist input")

// Service manages saved products per user.
type Service struct {
	repo     ports.Repository
	products ports.ProductCatalog
	logger   *slog.Logger
	now      func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewService(repo ports.Repository, products ports.ProductCatalog, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		products: products,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) List(ctx context.Context, userID string) ([]domain.Item, error) {
	entries, err := s.repo.Entries(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]domain.Item, 0, len(entries))
	for _, entry := range entries {
		item, err := s.products.Item(ctx, entry.ProductID)
		if errors.Is(err, ports.ErrProductNotFound) {
			// Deleted products drop out of the list.
			continue
		}
		if err != nil {
			return nil, err
		}
		item.AddedAt = entry.CreatedAt
		items = append(items, item)
	}
	return items, nil
}

// Add saves a product. The product must exist and not already be saved.
func (s *Service) Add(ctx context.Context, userID, productID string) ([]domain.Item, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, domain.ErrMissingProduct)
	}
	if _, err := s.products.Item(ctx, productID); err != nil {
		return nil, err
	}
	if err := s.repo.Add(ctx, domain.Entry{UserID: userID, ProductID: productID, CreatedAt: s.now()}); err != nil {
		return nil, err
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "wishlist product added",
		slog.String("user.id", userID),
		slog.String("product.id", productID),
	)
	return s.List(ctx, userID)
}

// Remove drops a product. Removing a product that is not saved is not an error.
func (s *Service) Remove(ctx context.Context, userID, productID string) ([]domain.Item, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, domain.ErrMissingProduct)
	}
	if err := s.repo.Remove(ctx, userID, productID); err != nil {
		return nil, err
	}
	return s.List(ctx, userID)
}

var _ ports.Service = (*Service)(nil)
