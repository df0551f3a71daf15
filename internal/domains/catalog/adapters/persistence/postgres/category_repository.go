package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
)

var _ ports.CategoryRepository = (*CategoryRepository)(nil)

// CategoryRepository persists categories in PostgreSQL using GORM.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

type categoryRecord struct {
	ID          string    `gorm:"primaryKey;column:id;type:uuid"`
	Name        string    `gorm:"column:name;not null"`
	Slug        string    `gorm:"column:slug;uniqueIndex;not null"`
	Description string    `gorm:"column:description"`
	Image       string    `gorm:"column:image"`
	ParentID    *string   `gorm:"column:parent_id;type:uuid;index"`
	IsActive    bool      `gorm:"column:is_active"`
	SortOrder   int       `gorm:"column:sort_order"`
	Level       int       `gorm:"column:level;index"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (categoryRecord) TableName() string { return "categories" }

func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if category == nil {
		return nil, errors.New("category is nil")
	}
	record := toCategoryRecord(category)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrDuplicateSlug
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record categoryRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrCategoryNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *CategoryRepository) List(ctx context.Context, filter ports.CategoryFilter) ([]*domain.Category, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Where("is_active = ?", true)
	if filter.ParentID != "" {
		query = query.Where("parent_id = ?", filter.ParentID)
	}
	if filter.Level != nil {
		query = query.Where("level = ?", *filter.Level)
	}
	var records []categoryRecord
	if err := query.Order("sort_order ASC, name ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.Category, 0, len(records))
	for i := range records {
		out = append(out, records[i].toDomain())
	}
	return out, nil
}

func (r *CategoryRepository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres category repository not configured")
	}
	return nil
}

func toCategoryRecord(c *domain.Category) categoryRecord {
	var parent *string
	if c.ParentID != "" {
		p := c.ParentID
		parent = &p
	}
	return categoryRecord{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Image:       c.Image,
		ParentID:    parent,
		IsActive:    c.IsActive,
		SortOrder:   c.Order,
		Level:       c.Level,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (r categoryRecord) toDomain() *domain.Category {
	c := &domain.Category{
		ID:          r.ID,
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		Image:       r.Image,
		IsActive:    r.IsActive,
		Order:       r.SortOrder,
		Level:       r.Level,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.ParentID != nil {
		c.ParentID = *r.ParentID
	}
	return c
}
