package orders

import (
	"context"

	ordersports "github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-storefront/internal/domains/reviews/ports"
)

var _ ports.PurchaseVerifier = (*Verifier)(nil)

// Verifier answers purchase checks from the order store.
type Verifier struct {
	orders ordersports.Repository
}

func NewVerifier(orders ordersports.Repository) *Verifier {
	return &Verifier{orders: orders}
}

func (v *Verifier) HasDeliveredOrder(ctx context.Context, userID, orderID, productID string) (bool, error) {
	return v.orders.HasDeliveredOrder(ctx, userID, orderID, productID)
}
