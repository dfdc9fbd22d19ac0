package memory

import (
	"context"
	"sync"

	"github.com/ecomarket/marketplace/internal/domains/users/domain"
	"github.com/ecomarket/marketplace/internal/domains/users/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory user directory adapter.
type Repository struct {
	mu        sync.RWMutex
	directory *domain.Directory
}

func NewRepository() *Repository {
	return &Repository{directory: domain.NewDirectory()}
}

// Seed replaces the stored aggregate, used to arrange fixtures (including the
// out-of-band admin record).
func (r *Repository) Seed(directory *domain.Directory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.directory = directory.Clone()
}

func (r *Repository) Load(_ context.Context) (*domain.Directory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.directory.Clone(), nil
}

func (r *Repository) Save(_ context.Context, directory *domain.Directory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.directory = directory.Clone()
	return nil
}
