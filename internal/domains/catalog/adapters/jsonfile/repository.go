// Package jsonfile persists the product catalog as a pretty-printed JSON
// array, compatible with the products.json file layout.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/ecomarket/marketplace/internal/domains/catalog/domain"
	"github.com/ecomarket/marketplace/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository stores the catalog aggregate in a single file. The mutex
// serializes writers within the process; cross-process locking is out of scope.
type Repository struct {
	mu   sync.Mutex
	path string
}

func NewRepository(path string) *Repository {
	return &Repository{path: path}
}

// Load reads the whole catalog, returning an empty aggregate when the file is
// absent or blank.
func (r *Repository) Load(_ context.Context) (domain.Catalog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Catalog{}, nil
		}
		return nil, fmt.Errorf("read catalog %s: %w", r.path, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return domain.Catalog{}, nil
	}
	var catalog domain.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", r.path, err)
	}
	return catalog, nil
}

// Save overwrites the file with the complete aggregate.
func (r *Repository) Save(_ context.Context, catalog domain.Catalog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if catalog == nil {
		catalog = domain.Catalog{}
	}
	data, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("write catalog %s: %w", r.path, err)
	}
	return nil
}
