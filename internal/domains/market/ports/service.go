package ports

import (
	"context"

	userdomain "github.com/ecomarket/marketplace/internal/domains/users/domain"
)

// PlacedOrder pairs an order with its owning username for cross-user
// projections.
type PlacedOrder struct {
	Username string
	Order    userdomain.Order
}

// OrderRef identifies one order inside the directory.
type OrderRef struct {
	Username string
	OrderID  string
}

// Service exposes the cross-aggregate marketplace use cases. Each call is one
// load-mutate-save transaction over the affected aggregates.
type Service interface {
	Buy(ctx context.Context, username, productID string) (*userdomain.Order, error)
	PendingOrders(ctx context.Context) ([]PlacedOrder, error)
	AllOrders(ctx context.Context) ([]PlacedOrder, error)
	Approve(ctx context.Context, username, orderID string) (*userdomain.Order, error)
	ApproveAll(ctx context.Context, refs []OrderRef) ([]PlacedOrder, error)
}
