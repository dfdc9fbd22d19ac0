package ports

import (
	"context"
	"errors"

	"github.com/ecomarket/marketplace/internal/domains/users/domain"
)

// ErrInvalidCredentials is deliberately constant-shape: unknown user and wrong
// password are indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Repository round-trips the user directory as a whole aggregate.
// Load returns an empty directory when the underlying resource is absent.
type Repository interface {
	Load(ctx context.Context) (*domain.Directory, error)
	Save(ctx context.Context, directory *domain.Directory) error
}
