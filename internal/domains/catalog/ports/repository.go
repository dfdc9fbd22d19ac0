package ports

import (
	"context"

	"github.com/ecomarket/marketplace/internal/domains/catalog/domain"
)

// Repository round-trips the product catalog as a whole aggregate.
// Load returns an empty catalog when the underlying resource is absent.
type Repository interface {
	Load(ctx context.Context) (domain.Catalog, error)
	Save(ctx context.Context, catalog domain.Catalog) error
}
