package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
)

// Service orchestrates cart use cases against live catalog data.
type Service struct {
	repo     ports.Repository
	products ports.ProductLookup
	now      func() time.Time
}

func NewService(repo ports.Repository, products ports.ProductLookup) *Service {
	return &Service{repo: repo, products: products, now: time.Now}
}

// GetCart returns the user's cart, creating an empty one on first access.
func (s *Service) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.repo.Get(ctx, userID)
	if errors.Is(err, ports.ErrNotFound) {
		if cart, err = domain.NewCart(userID, s.now()); err != nil {
			return nil, mapError(err)
		}
		return s.repo.Save(ctx, cart)
	}
	return cart, err
}

// AddItem checks stock for the added quantity only, then merges it into the cart.
func (s *Service) AddItem(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, mapError(domain.ErrMissingProduct)
	}
	if quantity < 1 {
		return nil, mapError(domain.ErrInvalidQuantity)
	}
	product, err := s.purchasable(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.Stock < quantity {
		return nil, ErrInsufficientStock
	}
	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := cart.Add(domain.LineItem{
		ProductID: product.ID,
		Name:      product.Name,
		Image:     product.Image,
		Quantity:  quantity,
		Price:     product.Price,
	}); err != nil {
		return nil, mapError(err)
	}
	return s.save(ctx, cart)
}

// UpdateItem sets an exact quantity on an existing line after re-checking stock.
func (s *Service) UpdateItem(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, mapError(domain.ErrMissingProduct)
	}
	if quantity < 1 {
		return nil, mapError(domain.ErrInvalidQuantity)
	}
	cart, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, ok := cart.Line(productID); !ok {
		return nil, domain.ErrItemNotFound
	}
	product, err := s.products.Product(ctx, productID)
	switch {
	case errors.Is(err, ports.ErrProductNotFound):
	case err != nil:
		return nil, err
	case product.Stock < quantity:
		return nil, ErrInsufficientStock
	}
	if err := cart.SetQuantity(productID, quantity); err != nil {
		return nil, mapError(err)
	}
	return s.save(ctx, cart)
}

// RemoveItem drops one line from an existing cart.
func (s *Service) RemoveItem(ctx context.Context, userID, productID string) (*domain.Cart, error) {
	cart, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart.Remove(strings.TrimSpace(productID))
	return s.save(ctx, cart)
}

// Clear empties an existing cart.
func (s *Service) Clear(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart.Clear()
	return s.save(ctx, cart)
}

func (s *Service) load(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.repo.Get(ctx, userID)
	if errors.Is(err, ports.ErrNotFound) {
		cart, err = domain.NewCart(userID, s.now())
		return cart, mapError(err)
	}
	return cart, err
}

func (s *Service) save(ctx context.Context, cart *domain.Cart) (*domain.Cart, error) {
	cart.Recalculate()
	cart.UpdatedAt = s.now()
	return s.repo.Save(ctx, cart)
}

func (s *Service) purchasable(ctx context.Context, productID string) (ports.Product, error) {
	product, err := s.products.Product(ctx, productID)
	if errors.Is(err, ports.ErrProductNotFound) {
		return ports.Product{}, ErrProductUnavailable
	}
	if err != nil {
		return ports.Product{}, err
	}
	if !product.IsActive {
		return ports.Product{}, ErrProductUnavailable
	}
	return product, nil
}

var _ ports.Service = (*Service)(nil)
