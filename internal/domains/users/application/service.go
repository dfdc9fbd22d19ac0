package application

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/ecomarket/marketplace/internal/domains/users/domain"
	"github.com/ecomarket/marketplace/internal/domains/users/ports"
)

// Service exposes user bounded context use cases.
type Service struct {
	repo         ports.Repository
	loginLimiter *rate.Limiter
}

type Option func(*Service)

// WithLoginLimiter throttles authentication attempts process-wide. The
// limiter is disabled by default.
func WithLoginLimiter(limit rate.Limit, burst int) Option {
	return func(s *Service) { s.loginLimiter = rate.NewLimiter(limit, burst) }
}

func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Register inserts a new non-admin user, failing on a duplicate username.
// The directory grows by exactly one on success, by zero on rejection.
func (s *Service) Register(ctx context.Context, input ports.RegistrationInput) (*domain.User, error) {
	user, err := domain.NewUser(input.Username, input.Name, input.Email, input.Password)
	if err != nil {
		return nil, err
	}
	directory, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := directory.Insert(user); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, directory); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies credentials against the directory. Unknown user and
// wrong password produce the same error.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	if s.loginLimiter != nil && !s.loginLimiter.Allow() {
		return nil, ErrTooManyAttempts
	}
	directory, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	user, err := directory.Get(username)
	if err != nil {
		return nil, ports.ErrInvalidCredentials
	}
	if !user.CheckPassword(password) {
		return nil, ports.ErrInvalidCredentials
	}
	return user.Clone(), nil
}

// DrainNotifications empties the user's mailbox and persists the cleared
// state before the messages are considered delivered. A failed save leaves
// the stored mailbox exactly as it was.
func (s *Service) DrainNotifications(ctx context.Context, username string) ([]string, error) {
	directory, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	user, err := directory.Get(username)
	if err != nil {
		return nil, err
	}
	messages := user.TakeNotifications()
	if len(messages) == 0 {
		return nil, nil
	}
	if err := s.repo.Save(ctx, directory); err != nil {
		return nil, err
	}
	return messages, nil
}

// Orders lists the user's order history in insertion order.
func (s *Service) Orders(ctx context.Context, username string) ([]*domain.Order, error) {
	directory, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	user, err := directory.Get(username)
	if err != nil {
		return nil, err
	}
	return user.Clone().Orders, nil
}

// FindOrder locates one of the user's orders by id.
func (s *Service) FindOrder(ctx context.Context, username, orderID string) (*domain.Order, error) {
	directory, err := s.repo.Load(ctx)
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
