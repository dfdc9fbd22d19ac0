// Package jsonfile persists the user directory as a pretty-printed JSON
// object keyed by username, compatible with the users.json file layout.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/ecomarket/marketplace/internal/domains/users/domain"
	"github.com/ecomarket/marketplace/internal/domains/users/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository stores the directory aggregate in a single file. The mutex
// serializes writers within the process; cross-process locking is out of scope.
type Repository struct {
	mu   sync.Mutex
	path string
}

func NewRepository(path string) *Repository {
	return &Repository{path: path}
}

// Load reads the whole directory, returning an empty aggregate when the file
// is absent or blank.
func (r *Repository) Load(_ context.Context) (*domain.Directory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.NewDirectory(), nil
		}
		return nil, fmt.Errorf("read user directory %s: %w", r.path, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return domain.NewDirectory(), nil
	}
	directory := domain.NewDirectory()
	if err := json.Unmarshal(data, directory); err != nil {
		return nil, fmt.Errorf("decode user directory %s: %w", r.path, err)
	}
	return directory, nil
}

// Save overwrites the file with the complete aggregate.
func (r *Repository) Save(_ context.Context, directory *domain.Directory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if directory == nil {
		directory = domain.NewDirectory()
	}
	data, err := json.MarshalIndent(directory, "", "  ")
	if err != nil {
		return fmt.Errorf("encode user directory: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("write user directory %s: %w", r.path, err)
	}
	return nil
}
