package ports

import (
	"context"

	"github.com/ecomarket/marketplace/internal/domains/catalog/domain"
)

// Service exposes catalog bounded context use cases to adapters.
type Service interface {
	List(ctx context.Context) (domain.Catalog, error)
	Search(ctx context.Context, term string) (domain.Catalog, error)
	Add(ctx context.Context, name string, price float64, description string) (*domain.Product, error)
	Edit(ctx context.Context, id string, name *string, price *float64, description *string) (*domain.Product, error)
}
