package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	identitydomain "github.com/Apurer/go-gin-storefront/internal/domains/identity/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-storefront/internal/shared/pagination"
)

const (
	DefaultOrderPageSize = 10
	MaxOrderPageSize     = 100
	// DefaultCancelReason is recorded when the caller gives none.
	DefaultCancelReason = "Cancelled by user"
)

// ReservationMode selects how stock is taken at checkout.
type ReservationMode string

const (
	// ReservationConditional decrements only while stock covers the line and
	// releases earlier reservations when a later one fails.
	ReservationConditional ReservationMode = "conditional"
	// ReservationLegacy checks stock, then decrements unconditionally. Two
	// concurrent checkouts can both pass the check.
	ReservationLegacy ReservationMode = "legacy"
)

// ParseReservationMode accepts conditional (default when blank) or legacy.
func ParseReservationMode(raw string) (ReservationMode, error) {
	switch mode := ReservationMode(strings.ToLower(strings.TrimSpace(raw))); mode {
	case "":
		return ReservationConditional, nil
	case ReservationConditional, ReservationLegacy:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown stock reservation mode %q", raw)
	}
}

// Service runs the order workflow.
type Service struct {
	repo      ports.Repository
	inventory ports.Inventory
	carts     ports.CartClearer
	mode      ReservationMode
	logger    *slog.Logger
	now       func() time.Time
	newID     func() string
}

type Option func(*Service)

func WithReservationMode(mode ReservationMode) Option {
	return func(s *Service) {
		if mode != "" {
			s.mode = mode
		}
	}
}

func WithCartClearer(carts ports.CartClearer) Option {
	return func(s *Service) {
		s.carts = carts
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

func NewService(repo ports.Repository, inventory ports.Inventory, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		inventory: inventory,
		mode:      ReservationConditional,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// PlaceOrder validates the request against live stock, reserves inventory,
// prices the order, persists it and clears the buyer's cart. No order is
// stored unless every line could be reserved.
func (s *Service) PlaceOrder(ctx context.Context, input ports.PlaceOrderInput) (*domain.Order, error) {
	if len(input.Items) == 0 {
		return nil, mapError(domain.ErrEmptyOrder)
	}
	if !input.ShippingAddress.Complete() || !input.BillingAddress.Complete() {
		return nil, mapError(domain.ErrMissingAddress)
	}
	if !input.PaymentMethod.Valid() {
		return nil, mapError(domain.ErrMissingPaymentMethod)
	}

	items := make([]domain.Item, 0, len(input.Items))
	for _, req := range input.Items {
		item, err := s.snapshot(ctx, req)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	reserved, err := s.reserve(ctx, items)
	if err != nil {
		return nil, err
	}

	now := s.now()
	order, err := domain.NewOrder(s.newID(), input.UserID, items, input.ShippingAddress, input.BillingAddress, input.PaymentMethod, input.Notes, now)
	if err != nil {
		s.release(ctx, reserved)
		return nil, mapError(err)
	}
	order.OrderNumber = s.nextOrderNumber(ctx, now)

	created, err := s.repo.Create(ctx, order)
	if err != nil {
		s.release(ctx, reserved)
		return nil, err
	}

	if s.carts != nil {
		if err := s.carts.ClearCart(ctx, input.UserID); err != nil {
			s.logger.LogAttrs(ctx, slog.LevelWarn, "failed to clear cart after order",
				slog.String("user.id", input.UserID),
				slog.String("order.id", created.ID),
				slog.String("error", err.Error()),
			)
		}
	}
	return created, nil
}

// ListOrders returns the actor's orders, or every order for admins.
func (s *Service) ListOrders(ctx context.Context, actor identitydomain.Principal, query ports.ListQuery) (pagination.Page[*domain.Order], error) {
	filter := ports.ListFilter{
		Page: pagination.Normalize(query.Page.Page, query.Page.Limit, DefaultOrderPageSize, MaxOrderPageSize),
	}
	if !actor.Can(identitydomain.CapActOnAnyOrder) {
		filter.UserID = actor.UserID
	}
	if strings.TrimSpace(query.Status) != "" {
		status, err := domain.ParseStatus(query.Status)
		if err != nil {
			return pagination.Page[*domain.Order]{}, mapError(err)
		}
		filter.Status = status
	}
	return s.repo.List(ctx, filter)
}

// GetOrder returns an order visible to the actor.
func (s *Service) GetOrder(ctx context.Context, actor identitydomain.Principal, id string) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(order.UserID) && !actor.Can(identitydomain.CapActOnAnyOrder) {
		return nil, ErrForbidden
	}
	return order, nil
}

// UpdateOrder changes fulfilment fields. Only admins and vendors may call it.
func (s *Service) UpdateOrder(ctx context.Context, actor identitydomain.Principal, id string, input ports.UpdateInput) (*domain.Order, error) {
	if !actor.Can(identitydomain.CapManageOrders) {
		return nil, ErrInsufficientPermissions
	}
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Status != nil && strings.TrimSpace(*input.Status) != "" {
		status, err := domain.ParseStatus(*input.Status)
		if err != nil {
			return nil, mapError(err)
		}
		order.Status = status
	}
	if input.PaymentStatus != nil && strings.TrimSpace(*input.PaymentStatus) != "" {
		paymentStatus, err := domain.ParsePaymentStatus(*input.PaymentStatus)
		if err != nil {
			return nil, mapError(err)
		}
		order.PaymentStatus = paymentStatus
	}
	if input.TrackingNumber != nil {
		order.TrackingNumber = strings.TrimSpace(*input.TrackingNumber)
	}
	if input.EstimatedDelivery != nil {
		eta := *input.EstimatedDelivery
		order.EstimatedDelivery = &eta
	}
	if input.Notes != nil {
		order.Notes = strings.TrimSpace(*input.Notes)
	}
	order.UpdatedAt = s.now()
	return s.repo.Update(ctx, order)
}

// CancelOrder marks the order cancelled and restocks every line. Only the
// caller whose guarded write lands restocks, so concurrent cancels return stock
// once. A line that fails to restock is logged and skipped.
func (s *Service) CancelOrder(ctx context.Context, actor identitydomain.Principal, id, reason string) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(order.UserID) && !actor.Can(identitydomain.CapActOnAnyOrder) {
		return nil, ErrForbidden
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = DefaultCancelReason
	}
	if err := order.Cancel(actor.UserID, reason, s.now()); err != nil {
		return nil, mapError(err)
	}
	cancelled, err := s.repo.MarkCancelled(ctx, order)
	if err != nil {
		return nil, mapError(err)
	}
	for _, item := range cancelled.Items {
		if err := s.inventory.Restock(ctx, item.ProductID, item.Quantity); err != nil {
			s.logger.LogAttrs(ctx, slog.LevelWarn, "failed to restock cancelled order item",
				slog.String("order.id", cancelled.ID),
				slog.String("product.id", item.ProductID),
				slog.Int("quantity", item.Quantity),
				slog.String("error", err.Error()),
			)
		}
	}
	return cancelled, nil
}

func (s *Service) snapshot(ctx context.Context, req ports.ItemRequest) (domain.Item, error) {
	productID := strings.TrimSpace(req.ProductID)
	if req.Quantity <= 0 {
		return domain.Item{}, mapError(domain.ErrInvalidQuantity)
	}
	product, err := s.inventory.Product(ctx, productID)
	if errors.Is(err, ports.ErrProductNotFound) {
		return domain.Item{}, &ProductUnavailableError{ProductID: productID}
	}
	if err != nil {
		return domain.Item{}, err
	}
	if !product.IsActive {
		return domain.Item{}, &ProductUnavailableError{ProductID: productID}
	}
	if product.Stock < req.Quantity {
		return domain.Item{}, &InsufficientStockError{ProductID: product.ID, ProductName: product.Name}
	}
	item, err := domain.NewItem(product.ID, product.Name, product.Image, product.Price, req.Quantity)
	if err != nil {
		return domain.Item{}, mapError(err)
	}
	return item, nil
}

// reserve takes stock for every line and returns what it took so a later
// failure can hand it back.
func (s *Service) reserve(ctx context.Context, items []domain.Item) ([]domain.Item, error) {
	reserved := make([]domain.Item, 0, len(items))
	for _, item := range items {
		var err error
		if s.mode == ReservationLegacy {
			err = s.inventory.Decrement(ctx, item.ProductID, item.Quantity)
		} else {
			err = s.inventory.Reserve(ctx, item.ProductID, item.Quantity)
		}
		if err != nil {
			s.release(ctx, reserved)
			if errors.Is(err, ports.ErrInsufficientStock) {
				return nil, &InsufficientStockError{ProductID: item.ProductID, ProductName: item.Name}
			}
			if errors.Is(err, ports.ErrProductNotFound) {
				return nil, &ProductUnavailableError{ProductID: item.ProductID}
			}
			return nil, err
		}
		reserved = append(reserved, item)
	}
	return reserved, nil
}

func (s *Service) release(ctx context.Context, reserved []domain.Item) {
	for _, item := range reserved {
		if err := s.inventory.Restock(ctx, item.ProductID, item.Quantity); err != nil {
			s.logger.LogAttrs(ctx, slog.LevelError, "failed to release reserved stock",
				slog.String("product.id", item.ProductID),
				slog.Int("quantity", item.Quantity),
				slog.String("error", err.Error()),
			)
		}
	}
}

func (s *Service) nextOrderNumber(ctx context.Context, now time.Time) string {
	start, end := domain.DayBounds(now)
	count, err := s.repo.CountCreatedBetween(ctx, start, end)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "order count unavailable, using random order number",
			slog.String("error", err.Error()),
		)
		return domain.RandomOrderNumber(now, nil)
	}
	return domain.OrderNumber(now, int(count)+1)
}

var _ ports.Service = (*Service)(nil)
