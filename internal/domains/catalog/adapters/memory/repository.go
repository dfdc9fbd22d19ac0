package memory

import (
	"context"
	"sync"

	"github.com/ecomarket/marketplace/internal/domains/catalog/domain"
	"github.com/ecomarket/marketplace/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory catalog persistence adapter.
type Repository struct {
	mu      sync.RWMutex
	catalog domain.Catalog
}

func NewRepository() *Repository {
	return &Repository{}
}

// Seed replaces the stored aggregate, used to arrange test fixtures.
func (r *Repository) Seed(catalog domain.Catalog) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.catalog = catalog.Clone()
}

func (r *Repository) Load(_ context.Context) (domain.Catalog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.catalog == nil {
		return domain.Catalog{}, nil
	}
	return r.catalog.Clone(), nil
}

func (r *Repository) Save(_ context.Context, catalog domain.Catalog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.catalog = catalog.Clone()
	return nil
}
