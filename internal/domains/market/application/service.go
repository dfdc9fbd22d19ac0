package application

import (
	"context"
	"errors"
	"fmt"

	catalogports "github.com/ecomarket/marketplace/internal/domains/catalog/ports"
	"github.com/ecomarket/marketplace/internal/domains/market/ports"
	userdomain "github.com/ecomarket/marketplace/internal/domains/users/domain"
	userports "github.com/ecomarket/marketplace/internal/domains/users/ports"
)

// Service orchestrates the cross-aggregate marketplace use cases: buying
// (catalog + directory mutated as one unit) and the admin approval workflow.
type Service struct {
	catalog catalogports.Repository
	users   userports.Repository
	ids     *userdomain.OrderIDGenerator
}

// NewService wires the marketplace orchestrator with both aggregate stores.
func NewService(catalog catalogports.Repository, users userports.Repository) *Service {
	return &Service{
		catalog: catalog,
		users:   users,
		ids:     userdomain.NewOrderIDGenerator(),
	}
}

// Buy reserves stock, records a pending order with a unique id, and queues a
// notification, persisted as one all-or-nothing unit. If the directory save
// fails after the catalog save succeeded, the prior catalog is restored so no
// sold-but-unrecorded state survives.
func (s *Service) Buy(ctx context.Context, username, productID string) (*userdomain.Order, error) {
	catalog, err := s.catalog.Load(ctx)
	if err != nil {
		return nil, err
	}
	directory, err := s.users.Load(ctx)
	if err != nil {
		return nil, err
	}
	user, err := directory.Get(username)
	if err != nil {
		return nil, err
	}

	restore := catalog.Clone()
	snapshot, err := catalog.Reserve(productID)
	if err != nil {
		return nil, err
	}

	orderID := s.ids.Next(directory.OrderIDTaken)
	order := user.PlaceOrder(orderID, snapshot)
	user.Notify(fmt.Sprintf("Order %s for %s is pending admin approval.", orderID, snapshot.Name))

	if err := s.catalog.Save(ctx, catalog); err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, directory); err != nil {
		if restoreErr := s.catalog.Save(ctx, restore); restoreErr != nil {
			return nil, errors.Join(err, fmt.Errorf("restore catalog after failed order save: %w", restoreErr))
		}
		return nil, err
	}
	clone := *order
	return &clone, nil
}

// PendingOrders projects every pending order, iterating users in directory
// insertion order and orders in placement order.
func (s *Service) PendingOrders(ctx context.Context) ([]ports.PlacedOrder, error) {
	return s.collectOrders(ctx, func(order *userdomain.Order) bool {
		return order.Status == userdomain.StatusPending
	})
}

// AllOrders projects every order across all users.
func (s *Service) AllOrders(ctx context.Context) ([]ports.PlacedOrder, error) {
	return s.collectOrders(ctx, func(*userdomain.Order) bool { return true })
}

func (s *Service) collectOrders(ctx context.Context, keep func(*userdomain.Order) bool) ([]ports.PlacedOrder, error) {
	directory, err := s.users.Load(ctx)
	if err != nil {
		return nil, err
	}
	var placed []ports.PlacedOrder
	for _, user := range directory.Users() {
		for _, order := range user.Orders {
			if keep(order) {
				placed = append(placed, ports.PlacedOrder{Username: user.Username, Order: *order})
			}
		}
	}
	return placed, nil
}

// Approve transitions one order to approved and notifies its owner,
// persisting the directory. Re-approving is a no-op without a duplicate
// notification.
func (s *Service) Approve(ctx context.Context, username, orderID string) (*userdomain.Order, error) {
	approved, err := s.ApproveAll(ctx, []ports.OrderRef{{Username: username, OrderID: orderID}})
	if err != nil {
		return nil, err
	}
	if len(approved) == 0 {
		// Already approved; report current state without re-notifying.
		return s.findOrder(ctx, username, orderID)
	}
	order := approved[0].Order
	return &order, nil
}

// ApproveAll applies a batch of approval decisions and persists the whole
// directory once, matching the interactive admin workflow. Orders already
// approved are skipped silently. Nothing is persisted when no status changed.
func (s *Service) ApproveAll(ctx context.Context, refs []ports.OrderRef) ([]ports.PlacedOrder, error) {
	directory, err := s.users.Load(ctx)
	if err != nil {
		return nil, err
	}
	var approved []ports.PlacedOrder
	for _, ref := range refs {
		user, err := directory.Get(ref.Username)
		if err != nil {
			return nil, err
		}
		order, err := user.FindOrder(ref.OrderID)
		if err != nil {
			return nil, err
		}
		if !order.Approve() {
			continue
		}
		user.Notify(fmt.Sprintf("Order %s for %s has been approved!", order.ID, order.Product.Name))
		approved = append(approved, ports.PlacedOrder{Username: ref.Username, Order: *order})
	}
	if len(approved) == 0 {
		return nil, nil
	}
	if err := s.users.Save(ctx, directory); err != nil {
		return nil, err
	}
	return approved, nil
}

func (s *Service) findOrder(ctx context.Context, username, orderID string) (*userdomain.Order, error) {
	directory, err := s.users.Load(ctx)
	if err != nil {
		return nil, err
	}
	user, err := directory.Get(username)
	if err != nil {
		return nil, err
	}
	order, err := user.FindOrder(orderID)
	if err != nil {
		return nil, err
	}
	clone := *order
	return &clone, nil
}

var _ ports.Service = (*Service)(nil)
