package ports

import (
	"context"

	"github.com/ecomarket/marketplace/internal/domains/users/domain"
)

// RegistrationInput carries already-validated registration fields; field
// format rules are enforced at the CLI boundary before the core sees them.
type RegistrationInput struct {
	Username string
	Name     string
	Email    string
	Password string
}

// Service exposes user bounded context use cases to adapters.
type Service interface {
	Register(ctx context.Context, input RegistrationInput) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	DrainNotifications(ctx context.Context, username string) ([]string, error)
	Orders(ctx context.Context, username string) ([]*domain.Order, error)
	FindOrder(ctx context.Context, username, orderID string) (*domain.Order, error)
}
