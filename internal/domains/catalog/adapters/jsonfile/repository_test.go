package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecomarket/marketplace/internal/domains/catalog/domain"
)

func TestLoad_AbsentFileYieldsEmptyCatalog(t *testing.T) {
	repo := NewRepository(filepath.Join(t.TempDir(), "products.json"))

	catalog, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, catalog)
}

func TestLoad_BlankFileYieldsEmptyCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o644))

	catalog, err := NewRepository(path).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, catalog)
}

func TestSaveThenLoad_RoundTrips(t *testing.T) {
	repo := NewRepository(filepath.Join(t.TempDir(), "products.json"))
	catalog := domain.Catalog{
		{ID: "1", Name: "Pen", Price: 1.5, Description: "Blue", Quantity: 3},
		{ID: "2", Name: "Notebook", Price: 4, Quantity: 0},
	}

	require.NoError(t, repo.Save(context.Background(), catalog))

	loaded, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, *catalog[0], *loaded[0])
	assert.Equal(t, *catalog[1], *loaded[1])
}

func TestSave_WritesPrettyPrintedArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	repo := NewRepository(path)

	require.NoError(t, repo.Save(context.Background(), domain.Catalog{{ID: "1", Name: "Pen"}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  {")
	assert.Contains(t, string(data), `"id": "1"`)
}

func TestSave_NilCatalogWritesEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	repo := NewRepository(path)

	require.NoError(t, repo.Save(context.Background(), nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}
