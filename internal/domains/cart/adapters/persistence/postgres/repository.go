package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists carts in PostgreSQL. Line items live in a JSON column.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Models lists the records owned by this adapter for schema migration.
func Models() []any {
	return []any{&cartRecord{}}
}

type cartRecord struct {
	UserID    string           `gorm:"primaryKey;column:user_id;type:uuid"`
	Items     []lineItemRecord `gorm:"column:items;serializer:json"`
	Total     decimal.Decimal  `gorm:"column:total;type:numeric;not null"`
	ItemCount int              `gorm:"column:item_count;not null"`
	CreatedAt time.Time        `gorm:"column:created_at"`
	UpdatedAt time.Time        `gorm:"column:updated_at"`
}

func (cartRecord) TableName() string { return "carts" }

type lineItemRecord struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name,omitempty"`
	Image     string          `json:"image,omitempty"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

func (r *Repository) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record cartRecord
	if err := r.db.WithContext(ctx).First(&record, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// Save upserts on user_id so one row exists per user.
func (r *Repository) Save(ctx context.Context, cart *domain.Cart) (*domain.Cart, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, errors.New("cart is nil")
	}
	record := toRecord(cart)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"items", "total", "item_count", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, cart.UserID)
}

// Clear resets items and the derived totals with one UPDATE.
func (r *Repository) Clear(ctx context.Context, userID string, at time.Time) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&cartRecord{}).Where("user_id = ?", userID).Updates(map[string]any{
		"items":      gorm.Expr("'[]'"),
		"total":      decimal.Zero,
		"item_count": 0,
		"updated_at": at,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres cart repository not configured")
	}
	return nil
}

func toRecord(cart *domain.Cart) cartRecord {
	items := make([]lineItemRecord, 0, len(cart.Items))
	for _, line := range cart.Items {
		items = append(items, lineItemRecord{
			ProductID: line.ProductID,
			Name:      line.Name,
			Image:     line.Image,
			Quantity:  line.Quantity,
			Price:     line.Price,
		})
	}
	return cartRecord{
		UserID:    cart.UserID,
		Items:     items,
		Total:     cart.Total,
		ItemCount: cart.ItemCount,
		CreatedAt: cart.CreatedAt,
		UpdatedAt: cart.UpdatedAt,
	}
}

func (r cartRecord) toDomain() *domain.Cart {
	items := make([]domain.LineItem, 0, len(r.Items))
	for _, line := range r.Items {
		items = append(items, domain.LineItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Image:     line.Image,
			Quantity:  line.Quantity,
			Price:     line.Price,
		})
	}
	return &domain.Cart{
		UserID:    r.UserID,
		Items:     items,
		Total:     r.Total,
		ItemCount: r.ItemCount,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
