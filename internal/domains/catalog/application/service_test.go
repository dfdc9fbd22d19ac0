package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecomarket/marketplace/internal/domains/catalog/domain"
)

type fakeCatalogRepo struct {
	catalog domain.Catalog
	saveErr error
	saves   int
}

func (f *fakeCatalogRepo) Load(_ context.Context) (domain.Catalog, error) {
	return f.catalog.Clone(), nil
}

func (f *fakeCatalogRepo) Save(_ context.Context, catalog domain.Catalog) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.catalog = catalog.Clone()
	f.saves++
	return nil
}

func TestAdd_PersistsWithDefaultStock(t *testing.T) {
	repo := &fakeCatalogRepo{}
	svc := NewService(repo)

	product, err := svc.Add(context.Background(), "Pen", 1.5, "Blue ballpoint")
	require.NoError(t, err)
	assert.Equal(t, "1", product.ID)
	assert.Equal(t, domain.DefaultStock, product.Quantity)
	require.Len(t, repo.catalog, 1)
}

func TestAdd_InvalidPriceNotPersisted(t *testing.T) {
	repo := &fakeCatalogRepo{}
	svc := NewService(repo)

	_, err := svc.Add(context.Background(), "Pen", -2, "")
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrInvalidPrice)
	assert.Zero(t, repo.saves)
}

func TestEdit_OnlySuppliedFieldsChange(t *testing.T) {
	repo := &fakeCatalogRepo{catalog: domain.Catalog{
		{ID: "1", Name: "Pen", Price: 1.5, Description: "Blue", Quantity: 3},
	}}
	svc := NewService(repo)

	name := "Fountain Pen"
	product, err := svc.Edit(context.Background(), "1", &name, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "Fountain Pen", product.Name)
	assert.Equal(t, 1.5, product.Price)
	assert.Equal(t, "Blue", product.Description)
	assert.Equal(t, 3, product.Quantity)
	assert.Equal(t, "Fountain Pen", repo.catalog[0].Name)
}

func TestEdit_UnknownProductMutatesNothing(t *testing.T) {
	repo := &fakeCatalogRepo{catalog: domain.Catalog{
		{ID: "1", Name: "Pen", Price: 1.5, Quantity: 3},
	}}
	svc := NewService(repo)

	name := "Ghost"
	_, err := svc.Edit(context.Background(), "42", &name, nil, nil)
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, repo.saves)
	assert.Equal(t, "Pen", repo.catalog[0].Name)
}

func TestSearch_CaseInsensitiveSubstring(t *testing.T) {
	repo := &fakeCatalogRepo{catalog: domain.Catalog{
		{ID: "1", Name: "Fountain Pen"},
		{ID: "2", Name: "Notebook"},
		{ID: "3", Name: "PENCIL"},
	}}
	svc := NewService(repo)

	results, err := svc.Search(context.Background(), "pen")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "1", results[0].ID)
	assert.Equal(t, "3", results[1].ID)
}

func TestSearch_NoMatches(t *testing.T) {
	repo := &fakeCatalogRepo{catalog: domain.Catalog{{ID: "1", Name: "Pen"}}}
	svc := NewService(repo)

	results, err := svc.Search(context.Background(), "tablet")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestAdd_SaveFailureSurfaces(t *testing.T) {
	repo := &fakeCatalogRepo{saveErr: errors.New("disk full")}
	svc := NewService(repo)

	_, err := svc.Add(context.Background(), "Pen", 1.5, "")
	require.Error(t, err)
	assert.Empty(t, repo.catalog)
}
