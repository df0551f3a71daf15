package application

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-storefront/internal/domains/reviews/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/reviews/ports"
	"github.com/Apurer/go-gin-storefront/internal/shared/pagination"
)

const (
	DefaultReviewPageSize = 10
	MaxReviewPageSize     = 100
)

// Service accepts verified-purchase reviews and keeps product ratings current.
type Service struct {
	repo     ports.Repository
	verifier ports.PurchaseVerifier
	ratings  ports.RatingUpdater
	authors  ports.AuthorDirectory
	logger   *slog.Logger
	now      func() time.Time
	newID    func() string
}

type Option func(*Service)

// WithAuthors attaches reviewer names and avatars to returned reviews.
func WithAuthors(authors ports.AuthorDirectory) Option {
	return func(s *Service) {
		s.authors = authors
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo ports.Repository, verifier ports.PurchaseVerifier, ratings ports.RatingUpdater, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		verifier: verifier,
		ratings:  ratings,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// CreateReview stores the review and recomputes the product rating from every
// review on file.
func (s *Service) CreateReview(ctx context.Context, input ports.CreateInput) (*domain.Review, error) {
	review, err := domain.NewReview(s.newID(), input.UserID, input.ProductID, input.OrderID, input.Rating, input.Title, input.Comment, input.Images, s.now())
	if err != nil {
		return nil, mapError(err)
	}
	delivered, err := s.verifier.HasDeliveredOrder(ctx, input.UserID, review.OrderID, review.ProductID)
	if err != nil {
		return nil, err
	}
	if !delivered {
		return nil, ErrNotPurchased
	}
	review.IsVerified = true

	created, err := s.repo.Create(ctx, review)
	if err != nil {
		return nil, err
	}
	s.refreshRating(ctx, created.ProductID)
	s.attachAuthor(ctx, created)
	return created, nil
}

// ListReviews returns a product's reviews newest first.
func (s *Service) ListReviews(ctx context.Context, query ports.ListQuery) (pagination.Page[*domain.Review], error) {
	productID := strings.TrimSpace(query.ProductID)
	if productID == "" {
		return pagination.Page[*domain.Review]{}, mapError(domain.ErrMissingProduct)
	}
	if query.Rating != 0 && (query.Rating < domain.MinRating || query.Rating > domain.MaxRating) {
		return pagination.Page[*domain.Review]{}, mapError(domain.ErrInvalidRating)
	}
	page, err := s.repo.List(ctx, ports.ListFilter{
		ProductID: productID,
		Rating:    query.Rating,
		Page:      pagination.Normalize(query.Page.Page, query.Page.Limit, DefaultReviewPageSize, MaxReviewPageSize),
	})
	if err != nil {
		return page, err
	}
	for _, review := range page.Items {
		s.attachAuthor(ctx, review)
	}
	return page, nil
}

// refreshRating rescans all ratings for the product. The review is already
// stored, so a failure here is logged rather than returned.
func (s *Service) refreshRating(ctx context.Context, productID string) {
	ratings, err := s.repo.Ratings(ctx, productID)
	if err == nil {
		err = s.ratings.UpdateRating(ctx, productID, domain.AverageRating(ratings), len(ratings))
	}
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "failed to refresh product rating",
			slog.String("product.id", productID),
			slog.String("error", err.Error()),
		)
	}
}

func (s *Service) attachAuthor(ctx context.Context, review *domain.Review) {
	if s.authors == nil || review == nil {
		return
	}
	author, err := s.authors.Author(ctx, review.UserID)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelDebug, "review author unavailable",
			slog.String("user.id", review.UserID),
			slog.String("error", err.Error()),
		)
		return
	}
	review.Author = &author
}

var _ ports.Service = (*Service)(nil)
