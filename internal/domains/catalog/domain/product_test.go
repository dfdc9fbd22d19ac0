package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd_AssignsPositionalIDAndDefaultStock(t *testing.T) {
	catalog := Catalog{}

	pen, err := catalog.Add("Pen", 1.5, "Blue ballpoint")
	require.NoError(t, err)
	assert.Equal(t, "1", pen.ID)
	assert.Equal(t, DefaultStock, pen.Quantity)

	book, err := catalog.Add("Notebook", 4.0, "A5 ruled")
	require.NoError(t, err)
	assert.Equal(t, "2", book.ID)
	assert.Len(t, catalog, 2)
}

func TestAdd_RejectsInvalidPrice(t *testing.T) {
	catalog := Catalog{}

	_, err := catalog.Add("Pen", -1, "")
	require.ErrorIs(t, err, ErrInvalidPrice)

	_, err = catalog.Add("Pen", math.NaN(), "")
	require.ErrorIs(t, err, ErrInvalidPrice)

	assert.Empty(t, catalog)
}

func TestReserve_DecrementsByOneAndReturnsPriorSnapshot(t *testing.T) {
	catalog := Catalog{{ID: "1", Name: "Pen", Price: 1.5, Quantity: 2}}

	snapshot, err := catalog.Reserve("1")
	require.NoError(t, err)
	assert.Equal(t, 2, snapshot.Quantity, "snapshot must predate the decrement")
	assert.Equal(t, 1, catalog[0].Quantity)
}

func TestReserve_OutOfStockLeavesQuantityUnchanged(t *testing.T) {
	catalog := Catalog{{ID: "1", Name: "Pen", Quantity: 0}}

	_, err := catalog.Reserve("1")
	require.ErrorIs(t, err, ErrOutOfStock)
	assert.Equal(t, 0, catalog[0].Quantity)
}

func TestReserve_UnknownProduct(t *testing.T) {
	catalog := Catalog{{ID: "1", Name: "Pen", Quantity: 1}}

	_, err := catalog.Reserve("99")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSnapshot_IndependentOfLaterEdits(t *testing.T) {
	product := &Product{ID: "1", Name: "Pen", Price: 1.5, Quantity: 3}
	snapshot := product.Snapshot()

	require.NoError(t, product.Rename("Fountain Pen"))
	require.NoError(t, product.Reprice(9.99))

	assert.Equal(t, "Pen", snapshot.Name)
	assert.Equal(t, 1.5, snapshot.Price)
}

func TestClone_IsDeep(t *testing.T) {
	catalog := Catalog{{ID: "1", Name: "Pen", Quantity: 3}}
	clone := catalog.Clone()

	catalog[0].Quantity = 0
	assert.Equal(t, 3, clone[0].Quantity)
}
