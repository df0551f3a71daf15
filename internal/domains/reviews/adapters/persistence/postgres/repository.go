package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-storefront/internal/domains/reviews/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/reviews/ports"
	"github.com/Apurer/go-gin-storefront/internal/shared/pagination"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists reviews in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Models lists the records owned by this adapter for schema migration.
func Models() []any {
	return []any{&reviewRecord{}}
}

type reviewRecord struct {
	ID         string         `gorm:"primaryKey;column:id;type:uuid"`
	UserID     string         `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_reviews_user_product_order"`
	ProductID  string         `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_reviews_user_product_order;index:idx_reviews_product_rating"`
	OrderID    string         `gorm:"column:order_id;type:uuid;not null;uniqueIndex:idx_reviews_user_product_order"`
	Rating     int            `gorm:"column:rating;not null;index:idx_reviews_product_rating;check:chk_reviews_rating,rating BETWEEN 1 AND 5"`
	Title      string         `gorm:"column:title;size:100;not null"`
	Comment    string         `gorm:"column:comment;size:1000;not null"`
	Images     pq.StringArray `gorm:"column:images;type:text[]"`
	IsVerified bool           `gorm:"column:is_verified"`
	CreatedAt  time.Time      `gorm:"column:created_at;index"`
	UpdatedAt  time.Time      `gorm:"column:updated_at"`
}

func (reviewRecord) TableName() string { return "reviews" }

func (r *Repository) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if review == nil {
		return nil, errors.New("review is nil")
	}
	record := toRecord(review)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrDuplicateReview
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) List(ctx context.Context, filter ports.ListFilter) (pagination.Page[*domain.Review], error) {
	if err := r.ensureDB(); err != nil {
		return pagination.Page[*domain.Review]{}, err
	}
	query := r.db.WithContext(ctx).Model(&reviewRecord{}).Where("product_id = ?", filter.ProductID)
	if filter.Rating != 0 {
		query = query.Where("rating = ?", filter.Rating)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return pagination.Page[*domain.Review]{}, err
	}
	var records []reviewRecord
	err := query.Order("created_at DESC, id DESC").
		Offset(filter.Page.Offset()).
		Limit(filter.Page.Limit).
		Find(&records).Error
	if err != nil {
		return pagination.Page[*domain.Review]{}, err
	}
	items := make([]*domain.Review, 0, len(records))
	for i := range records {
		items = append(items, records[i].toDomain())
	}
	return pagination.Page[*domain.Review]{Items: items, Meta: pagination.NewMeta(filter.Page, total)}, nil
}

func (r *Repository) Ratings(ctx context.Context, productID string) ([]int, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var ratings []int
	err := r.db.WithContext(ctx).Model(&reviewRecord{}).
		Where("product_id = ?", productID).
		Pluck("rating", &ratings).Error
	return ratings, err
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres repository is not initialized")
	}
	return nil
}

func toRecord(review *domain.Review) reviewRecord {
	return reviewRecord{
		ID:         review.ID,
		UserID:     review.UserID,
		ProductID:  review.ProductID,
		OrderID:    review.OrderID,
		Rating:     review.Rating,
		Title:      review.Title,
		Comment:    review.Comment,
		Images:     pq.StringArray(review.Images),
		IsVerified: review.IsVerified,
		CreatedAt:  review.CreatedAt,
		UpdatedAt:  review.UpdatedAt,
	}
}

func (rec reviewRecord) toDomain() *domain.Review {
	return &domain.Review{
		ID:         rec.ID,
		UserID:     rec.UserID,
		ProductID:  rec.ProductID,
		OrderID:    rec.OrderID,
		Rating:     rec.Rating,
		Title:      rec.Title,
		Comment:    rec.Comment,
		Images:     append([]string(nil), rec.Images...),
		IsVerified: rec.IsVerified,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
	}
}
