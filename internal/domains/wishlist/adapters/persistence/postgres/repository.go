package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/go-gin-storefront/internal/domains/wishlist/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/wishlist/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists wishlist entries in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Models lists the records owned by this adapter for schema migration.
func Models() []any {
	return []any{&entryRecord{}}
}

type entryRecord struct {
	UserID    string    `gorm:"primaryKey;column:user_id;type:uuid"`
	ProductID string    `gorm:"primaryKey;column:product_id;type:uuid"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (entryRecord) TableName() string { return "wishlist_entries" }

func (r *Repository) Add(ctx context.Context, entry domain.Entry) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	record := entryRecord{UserID: entry.UserID, ProductID: entry.ProductID, CreatedAt: entry.CreatedAt}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ports.ErrDuplicateEntry
		}
		return err
	}
	return nil
}

func (r *Repository) Remove(ctx context.Context, userID, productID string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&entryRecord{}).Error
}

func (r *Repository) Entries(ctx context.Context, userID string) ([]domain.Entry, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []entryRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, product_id ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Entry, 0, len(records))
	for _, rec := range records {
		out = append(out, domain.Entry{UserID: rec.UserID, ProductID: rec.ProductID, CreatedAt: rec.CreatedAt})
	}
	return out, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres repository is not initialized")
	}
	return nil
}
