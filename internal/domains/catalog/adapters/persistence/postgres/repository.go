package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
	"github.com/Apurer/go-gin-storefront/internal/shared/pagination"
)

var _ ports.ProductRepository = (*ProductRepository)(nil)

// ProductRepository persists products in PostgreSQL using GORM.
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Models lists the records owned by this adapter for schema migration.
func Models() []any {
	return []any{&productRecord{}, &categoryRecord{}}
}

type productRecord struct {
	ID              string           `gorm:"primaryKey;column:id;type:uuid"`
	Name            string           `gorm:"column:name;not null"`
	Description     string           `gorm:"column:description"`
	Price           decimal.Decimal  `gorm:"column:price;type:numeric;not null"`
	OriginalPrice   *decimal.Decimal `gorm:"column:original_price;type:numeric"`
	Images          pq.StringArray   `gorm:"column:images;type:text[]"`
	Category        string           `gorm:"column:category;index;not null"`
	Brand           string           `gorm:"column:brand;index"`
	VendorID        string           `gorm:"column:vendor_id;index"`
	Stock           int              `gorm:"column:stock;not null;check:chk_products_stock,stock >= 0"`
	SKU             *string          `gorm:"column:sku;uniqueIndex"`
	Tags            pq.StringArray   `gorm:"column:tags;type:text[]"`
	IsActive        bool             `gorm:"column:is_active;index"`
	IsFlashSale     bool             `gorm:"column:is_flash_sale"`
	FlashSalePrice  *decimal.Decimal `gorm:"column:flash_sale_price;type:numeric"`
	FlashSaleEndsAt *time.Time       `gorm:"column:flash_sale_ends_at"`
	Rating          float64          `gorm:"column:rating"`
	ReviewCount     int              `gorm:"column:review_count"`
	CreatedAt       time.Time        `gorm:"column:created_at;index"`
	UpdatedAt       time.Time        `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	record := toProductRecord(product)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrDuplicateSKU
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// Update overwrites the editable columns. Stock, rating and review count are
// owned by the atomic helpers below.
func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	record := toProductRecord(product)
	result := r.db.WithContext(ctx).Model(&productRecord{}).Where("id = ?", product.ID).
		Select("name", "description", "price", "original_price", "images", "category", "brand",
			"sku", "tags", "is_active", "is_flash_sale", "flash_sale_price", "flash_sale_ends_at", "updated_at").
		Updates(&record)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrDuplicateSKU
		}
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrProductNotFound
	}
	return r.GetByID(ctx, product.ID)
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record productRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrProductNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&productRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) Search(ctx context.Context, filter ports.ProductFilter) (pagination.Page[*domain.Product], error) {
	if err := r.ensureDB(); err != nil {
		return pagination.Page[*domain.Product]{}, err
	}
	query := r.db.WithContext(ctx).Model(&productRecord{})
	if !filter.IncludeDraft {
		query = query.Where("is_active = ?", true)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.VendorID != "" {
		query = query.Where("vendor_id = ?", filter.VendorID)
	}
	if filter.Brand != "" {
		query = query.Where("brand ILIKE ?", "%"+escapeLike(filter.Brand)+"%")
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.MinRating != nil {
		query = query.Where("rating >= ?", *filter.MinRating)
	}
	if filter.FlashSale {
		query = query.Where("is_flash_sale = ? AND flash_sale_ends_at > ?", true, filter.Now)
	}
	if filter.Search != "" {
		pattern := "%" + escapeLike(filter.Search) + "%"
		query = query.Where("(name ILIKE ? OR description ILIKE ? OR array_to_string(tags, ' ') ILIKE ?)", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return pagination.Page[*domain.Product]{}, err
	}

	var records []productRecord
	err := query.Order(orderClause(filter.SortBy, filter.Descending)).
		Offset(filter.Page.Offset()).
		Limit(filter.Page.Limit).
		Find(&records).Error
	if err != nil {
		return pagination.Page[*domain.Product]{}, err
	}
	items := make([]*domain.Product, 0, len(records))
	for i := range records {
		items = append(items, records[i].toDomain())
	}
	return pagination.Page[*domain.Product]{Items: items, Meta: pagination.NewMeta(filter.Page, total)}, nil
}

func (r *ProductRepository) CountActive(ctx context.Context) (int64, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	var n int64
	err := r.db.WithContext(ctx).Model(&productRecord{}).Where("is_active = ?", true).Count(&n).Error
	return n, err
}

// ReserveStock is a single guarded UPDATE so concurrent orders cannot oversell.
func (r *ProductRepository) ReserveStock(ctx context.Context, id string, quantity int) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&productRecord{}).
		Where("id = ? AND stock >= ?", id, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ports.ErrInsufficientStock
	}
	return nil
}

func (r *ProductRepository) SetStock(ctx context.Context, id string, stock int) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	if stock < 0 {
		return domain.ErrNegativeStock
	}
	result := r.db.WithContext(ctx).Model(&productRecord{}).Where("id = ?", id).Update("stock", stock)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) DecrementStock(ctx context.Context, id string, quantity int) error {
	return r.adjustStock(ctx, id, -quantity)
}

func (r *ProductRepository) RestockProduct(ctx context.Context, id string, quantity int) error {
	return r.adjustStock(ctx, id, quantity)
}

func (r *ProductRepository) UpdateRating(ctx context.Context, id string, rating float64, reviewCount int) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&productRecord{}).Where("id = ?", id).
		Updates(map[string]any{"rating": rating, "review_count": reviewCount})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) adjustStock(ctx context.Context, id string, delta int) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&productRecord{}).Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres product repository not configured")
	}
	return nil
}

func orderClause(field ports.SortField, desc bool) string {
	column := "created_at"
	switch field {
	case ports.SortByPrice:
		column = "price"
	case ports.SortByRating:
		column = "rating"
	case ports.SortByName:
		column = "name"
	}
	if desc {
		return column + " DESC, id"
	}
	return column + " ASC, id"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func toProductRecord(p *domain.Product) productRecord {
	var sku *string
	if p.SKU != "" {
		s := p.SKU
		sku = &s
	}
	return productRecord{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price,
		OriginalPrice:   p.OriginalPrice,
		Images:          pq.StringArray(p.Images),
		Category:        p.Category,
		Brand:           p.Brand,
		VendorID:        p.VendorID,
		Stock:           p.Stock,
		SKU:             sku,
		Tags:            pq.StringArray(p.Tags),
		IsActive:        p.IsActive,
		IsFlashSale:     p.IsFlashSale,
		FlashSalePrice:  p.FlashSalePrice,
		FlashSaleEndsAt: p.FlashSaleEndsAt,
		Rating:          p.Rating,
		ReviewCount:     p.ReviewCount,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func (r productRecord) toDomain() *domain.Product {
	sku := ""
	if r.SKU != nil {
		sku = *r.SKU
	}
	return &domain.Product{
		ID:              r.ID,
		Name:            r.Name,
		Description:     r.Description,
		Price:           r.Price,
		OriginalPrice:   r.OriginalPrice,
		Images:          []string(r.Images),
		Category:        r.Category,
		Brand:           r.Brand,
		VendorID:        r.VendorID,
		Stock:           r.Stock,
		SKU:             sku,
		Tags:            []string(r.Tags),
		IsActive:        r.IsActive,
		IsFlashSale:     r.IsFlashSale,
		FlashSalePrice:  r.FlashSalePrice,
		FlashSaleEndsAt: r.FlashSaleEndsAt,
		Rating:          r.Rating,
		ReviewCount:     r.ReviewCount,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
