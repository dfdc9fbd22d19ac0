package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/ecomarket/marketplace/internal/domains/catalog/domain"
)

func TestApprove_TransitionsOnceOnly(t *testing.T) {
	order := &Order{ID: "AB12", Status: StatusPending}

	assert.True(t, order.Approve())
	assert.Equal(t, StatusApproved, order.Status)

	assert.False(t, order.Approve(), "re-approving must be a no-op")
	assert.Equal(t, StatusApproved, order.Status)
}

func TestPlaceOrder_AppendsPendingWithSnapshot(t *testing.T) {
	user := &User{Username: "alice"}
	product := catalogdomain.Product{ID: "1", Name: "Pen", Price: 1.5, Quantity: 3}

	order := user.PlaceOrder("AB12", product)

	require.Len(t, user.Orders, 1)
	assert.Equal(t, StatusPending, order.Status)

	product.Name = "Pencil"
	assert.Equal(t, "Pen", order.Product.Name, "order holds a copy, not a live reference")
}

func TestTakeNotifications_ReturnsInOrderAndClears(t *testing.T) {
	user := &User{Username: "alice"}
	user.Notify("first")
	user.Notify("second")

	messages := user.TakeNotifications()
	assert.Equal(t, []string{"first", "second"}, messages)
	assert.Empty(t, user.Notifications)
	assert.NotNil(t, user.Notifications)
}

func TestOrderIDGenerator_FormatAndUniqueness(t *testing.T) {
	gen := NewOrderIDGenerator()
	seen := map[string]bool{}

	for i := 0; i < 500; i++ {
		id := gen.Next(func(candidate string) bool { return seen[candidate] })
		require.Len(t, id, 4)
		require.Equal(t, strings.ToUpper(id), id)
		for _, r := range id {
			require.Contains(t, orderIDAlphabet, string(r))
		}
		require.False(t, seen[id], "generator returned a taken id")
		seen[id] = true
	}
}

func TestOrderIDGenerator_WidensWhenSpaceExhausted(t *testing.T) {
	gen := NewOrderIDGenerator()

	id := gen.Next(func(candidate string) bool { return len(candidate) == 4 })
	assert.Len(t, id, 5)
}
