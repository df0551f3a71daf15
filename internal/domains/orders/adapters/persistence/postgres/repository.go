package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-storefront/internal/shared/pagination"
)

var (
	_ ports.Repository      = (*Repository)(nil)
	_ ports.StatsRepository = (*Repository)(nil)
)

// Repository persists orders and their line items in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Models lists the records owned by this adapter for schema migration.
func Models() []any {
	return []any{&orderRecord{}, &orderItemRecord{}}
}

type orderRecord struct {
	ID                string            `gorm:"primaryKey;column:id;type:uuid"`
	OrderNumber       string            `gorm:"column:order_number;uniqueIndex;not null"`
	UserID            string            `gorm:"column:user_id;type:uuid;index;not null"`
	Items             []orderItemRecord `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	ShippingAddress   domain.Address    `gorm:"column:shipping_address;serializer:json"`
	BillingAddress    domain.Address    `gorm:"column:billing_address;serializer:json"`
	PaymentMethod     string            `gorm:"column:payment_method;type:varchar(16)"`
	PaymentStatus     string            `gorm:"column:payment_status;type:varchar(16);index"`
	Status            string            `gorm:"column:status;type:varchar(16);index"`
	Subtotal          decimal.Decimal   `gorm:"column:subtotal;type:numeric;not null"`
	ShippingCost      decimal.Decimal   `gorm:"column:shipping_cost;type:numeric;not null"`
	Tax               decimal.Decimal   `gorm:"column:tax;type:numeric;not null"`
	Total             decimal.Decimal   `gorm:"column:total;type:numeric;not null"`
	Notes             string            `gorm:"column:notes"`
	TrackingNumber    string            `gorm:"column:tracking_number"`
	EstimatedDelivery *time.Time        `gorm:"column:estimated_delivery"`
	CancelledAt       *time.Time        `gorm:"column:cancelled_at"`
	CancelledBy       string            `gorm:"column:cancelled_by"`
	CancelledReason   string            `gorm:"column:cancelled_reason"`
	CreatedAt         time.Time         `gorm:"column:created_at;index"`
	UpdatedAt         time.Time         `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

type orderItemRecord struct {
	ID        int64           `gorm:"primaryKey;column:id;autoIncrement"`
	OrderID   string          `gorm:"column:order_id;type:uuid;index;not null"`
	Position  int             `gorm:"column:position"`
	ProductID string          `gorm:"column:product_id;type:uuid;index;not null"`
	Name      string          `gorm:"column:name"`
	Image     string          `gorm:"column:image"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric;not null"`
	Quantity  int             `gorm:"column:quantity;not null"`
	Total     decimal.Decimal `gorm:"column:total;type:numeric;not null"`
}

func (orderItemRecord) TableName() string { return "order_items" }

// Create inserts the order and its items in one transaction.
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record := toRecord(order)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&record).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrDuplicateOrderNumber
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// Update writes the mutable fulfilment and cancellation columns. Items, pricing
// and addresses are never rewritten.
func (r *Repository) Update(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	result := r.db.WithContext(ctx).Model(&orderRecord{}).Where("id = ?", order.ID).Updates(map[string]any{
		"status":             string(order.Status),
		"payment_status":     string(order.PaymentStatus),
		"notes":              order.Notes,
		"tracking_number":    order.TrackingNumber,
		"estimated_delivery": order.EstimatedDelivery,
		"cancelled_at":       order.CancelledAt,
		"cancelled_by":       order.CancelledBy,
		"cancelled_reason":   order.CancelledReason,
		"updated_at":         order.UpdatedAt,
	})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, order.ID)
}

// MarkCancelled flips a cancellable order to cancelled with a single guarded
// UPDATE. Zero rows affected means another writer got there first.
func (r *Repository) MarkCancelled(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	blocked := make([]string, 0, 4)
	for _, status := range domain.NonCancellableStatuses() {
		blocked = append(blocked, string(status))
	}
	result := r.db.WithContext(ctx).Model(&orderRecord{}).
		Where("id = ? AND status NOT IN ?", order.ID, blocked).
		Updates(map[string]any{
			"status":           string(domain.StatusCancelled),
			"cancelled_at":     order.CancelledAt,
			"cancelled_by":     order.CancelledBy,
			"cancelled_reason": order.CancelledReason,
			"updated_at":       order.UpdatedAt,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 1 {
		return r.GetByID(ctx, order.ID)
	}
	current, err := r.GetByID(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	if err := current.CanCancel(); err != nil {
		return nil, err
	}
	return nil, &domain.NotCancellableError{Status: current.Status}
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	err := r.db.WithContext(ctx).Preload("Items", itemsInOrder).First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) List(ctx context.Context, filter ports.ListFilter) (pagination.Page[*domain.Order], error) {
	if err := r.ensureDB(); err != nil {
		return pagination.Page[*domain.Order]{}, err
	}
	query := r.db.WithContext(ctx).Model(&orderRecord{})
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return pagination.Page[*domain.Order]{}, err
	}
	var records []orderRecord
	err := query.Preload("Items", itemsInOrder).
		Order("created_at DESC, order_number DESC").
		Offset(filter.Page.Offset()).
		Limit(filter.Page.Limit).
		Find(&records).Error
	if err != nil {
		return pagination.Page[*domain.Order]{}, err
	}
	return pagination.Page[*domain.Order]{Items: toDomainList(records), Meta: pagination.NewMeta(filter.Page, total)}, nil
}

func (r *Repository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	var n int64
	err := r.db.WithContext(ctx).Model(&orderRecord{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&n).Error
	return n, err
}

func (r *Repository) HasDeliveredOrder(ctx context.Context, userID, orderID, productID string) (bool, error) {
	if err := r.ensureDB(); err != nil {
		return false, err
	}
	var n int64
	err := r.db.WithContext(ctx).Model(&orderRecord{}).
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Where("orders.id = ? AND orders.user_id = ? AND orders.status = ? AND order_items.product_id = ?",
			orderID, userID, string(domain.StatusDelivered), productID).
		Count(&n).Error
	return n > 0, err
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres repository is not initialized")
	}
	return nil
}

func itemsInOrder(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func toRecord(o *domain.Order) orderRecord {
	items := make([]orderItemRecord, 0, len(o.Items))
	for i, item := range o.Items {
		items = append(items, orderItemRecord{
			OrderID:   o.ID,
			Position:  i,
			ProductID: item.ProductID,
			Name:      item.Name,
			Image:     item.Image,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Total:     item.Total,
		})
	}
	return orderRecord{
		ID:                o.ID,
		OrderNumber:       o.OrderNumber,
		UserID:            o.UserID,
		Items:             items,
		ShippingAddress:   o.ShippingAddress,
		BillingAddress:    o.BillingAddress,
		PaymentMethod:     string(o.PaymentMethod),
		PaymentStatus:     string(o.PaymentStatus),
		Status:            string(o.Status),
		Subtotal:          o.Subtotal,
		ShippingCost:      o.ShippingCost,
		Tax:               o.Tax,
		Total:             o.Total,
		Notes:             o.Notes,
		TrackingNumber:    o.TrackingNumber,
		EstimatedDelivery: o.EstimatedDelivery,
		CancelledAt:       o.CancelledAt,
		CancelledBy:       o.CancelledBy,
		CancelledReason:   o.CancelledReason,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
}

func (r orderRecord) toDomain() *domain.Order {
	items := make([]domain.Item, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, domain.Item{
			ProductID: item.ProductID,
			Name:      item.Name,
			Image:     item.Image,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Total:     item.Total,
		})
	}
	return &domain.Order{
		ID:                r.ID,
		OrderNumber:       r.OrderNumber,
		UserID:            r.UserID,
		Items:             items,
		ShippingAddress:   r.ShippingAddress,
		BillingAddress:    r.BillingAddress,
		PaymentMethod:     domain.PaymentMethod(r.PaymentMethod),
		PaymentStatus:     domain.PaymentStatus(r.PaymentStatus),
		Status:            domain.Status(r.Status),
		Subtotal:          r.Subtotal,
		ShippingCost:      r.ShippingCost,
		Tax:               r.Tax,
		Total:             r.Total,
		Notes:             r.Notes,
		TrackingNumber:    r.TrackingNumber,
		EstimatedDelivery: r.EstimatedDelivery,
		CancelledAt:       r.CancelledAt,
		CancelledBy:       r.CancelledBy,
		CancelledReason:   r.CancelledReason,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

func toDomainList(records []orderRecord) []*domain.Order {
	out := make([]*domain.Order, 0, len(records))
	for i := range records {
		out = append(out, records[i].toDomain())
	}
	return out
}
