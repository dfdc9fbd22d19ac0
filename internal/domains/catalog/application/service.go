package application

import (
	"context"

	"golang.org/x/text/language"
	"golang.org/x/text/search"

	"github.com/ecomarket/marketplace/internal/domains/catalog/domain"
	"github.com/ecomarket/marketplace/internal/domains/catalog/ports"
)

// Service orchestrates catalog use cases over the whole-aggregate repository.
type Service struct {
	repo    ports.Repository
	matcher *search.Matcher
}

// NewService wires the catalog service with its dependencies.
func NewService(repo ports.Repository) *Service {
	return &Service{
		repo:    repo,
		matcher: search.New(language.Und, search.IgnoreCase),
	}
}

// List returns the current catalog.
func (s *Service) List(ctx context.Context) (domain.Catalog, error) {
	return s.repo.Load(ctx)
}

// Search returns products whose name contains the term, case-insensitively.
func (s *Service) Search(ctx context.Context, term string) (domain.Catalog, error) {
	catalog, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	var results domain.Catalog
	for _, product := range catalog {
		if start, _ := s.matcher.IndexString(product.Name, term); start >= 0 {
			results = append(results, product)
		}
	}
	return results, nil
}

// Add appends a product with a positional id and the default stocking quantity.
func (s *Service) Add(ctx context.Context, name string, price float64, description string) (*domain.Product, error) {
	catalog, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	product, err := catalog.Add(name, price, description)
	if err != nil {
		return nil, mapError(err)
	}
	if err := s.repo.Save(ctx, catalog); err != nil {
		return nil, err
	}
	return product, nil
}

// Edit overwrites only the supplied fields; omitted fields keep their prior
// value and quantity is never editable here, only through purchases.
func (s *Service) Edit(ctx context.Context, id string, name *string, price *float64, description *string) (*domain.Product, error) {
	catalog, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	product, err := catalog.Find(id)
	if err != nil {
		return nil, mapError(err)
	}
	if name != nil {
		if err := product.Rename(*name); err != nil {
			return nil, mapError(err)
		}
	}
	if price != nil {
		if err := product.Reprice(*price); err != nil {
			return nil, mapError(err)
		}
	}
	if description != nil {
		product.Describe(*description)
	}
	if err := s.repo.Save(ctx, catalog); err != nil {
		return nil, err
	}
	return product, nil
}

var _ ports.Service = (*Service)(nil)
