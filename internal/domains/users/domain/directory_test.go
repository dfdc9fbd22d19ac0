package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/ecomarket/marketplace/internal/domains/catalog/domain"
)

func mustUser(t *testing.T, username string) *User {
	t.Helper()
	user, err := NewUser(username, username, username+"@example.com", "secret")
	require.NoError(t, err)
	return user
}

func TestInsert_RejectsDuplicateUsername(t *testing.T) {
	dir := NewDirectory()
	require.NoError(t, dir.Insert(mustUser(t, "alice")))

	err := dir.Insert(mustUser(t, "alice"))
	require.ErrorIs(t, err, ErrDuplicateUsername)
	assert.Equal(t, 1, dir.Len())
}

func TestUsers_IterateInInsertionOrder(t *testing.T) {
	dir := NewDirectory()
	for _, name := range []string{"zoe", "alice", "mike"} {
		require.NoError(t, dir.Insert(mustUser(t, name)))
	}

	var got []string
	for _, user := range dir.Users() {
		got = append(got, user.Username)
	}
	assert.Equal(t, []string{"zoe", "alice", "mike"}, got)
}

func TestJSONRoundTrip_PreservesOrderAndRecords(t *testing.T) {
	dir := NewDirectory()
	zoe := mustUser(t, "zoe")
	zoe.PlaceOrder("AB12", catalogdomain.Product{ID: "1", Name: "Pen", Price: 1.5, Quantity: 3})
	zoe.Notify("Order AB12 for Pen is pending admin approval.")
	require.NoError(t, dir.Insert(zoe))
	require.NoError(t, dir.Insert(mustUser(t, "alice")))

	data, err := json.Marshal(dir)
	require.NoError(t, err)

	decoded := NewDirectory()
	require.NoError(t, json.Unmarshal(data, decoded))

	var usernames []string
	for _, user := range decoded.Users() {
		usernames = append(usernames, user.Username)
	}
	assert.Equal(t, []string{"zoe", "alice"}, usernames)

	restored, err := decoded.Get("zoe")
	require.NoError(t, err)
	require.Len(t, restored.Orders, 1)
	assert.Equal(t, "AB12", restored.Orders[0].ID)
	assert.Equal(t, StatusPending, restored.Orders[0].Status)
	assert.Equal(t, "Pen", restored.Orders[0].Product.Name)
	assert.Equal(t, []string{"Order AB12 for Pen is pending admin approval."}, restored.Notifications)
}

func TestMarshal_UsernameNotDuplicatedInsideRecord(t *testing.T) {
	dir := NewDirectory()
	require.NoError(t, dir.Insert(mustUser(t, "alice")))

	data, err := json.Marshal(dir)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"username"`)
	assert.Contains(t, string(data), `"alice":{`)
}

func TestUnmarshal_RejectsNonObject(t *testing.T) {
	dir := NewDirectory()
	err := json.Unmarshal([]byte(`[1,2]`), dir)
	require.Error(t, err)
}

func TestOrderIDTaken(t *testing.T) {
	dir := NewDirectory()
	alice := mustUser(t, "alice")
	alice.PlaceOrder("AB12", catalogdomain.Product{ID: "1", Name: "Pen"})
	require.NoError(t, dir.Insert(alice))

	assert.True(t, dir.OrderIDTaken("AB12"))
	assert.False(t, dir.OrderIDTaken("ZZ99"))
}

func TestClone_IsDeep(t *testing.T) {
	dir := NewDirectory()
	alice := mustUser(t, "alice")
	alice.Notify("hello")
	require.NoError(t, dir.Insert(alice))

	clone := dir.Clone()
	original, err := dir.Get("alice")
	require.NoError(t, err)
	original.TakeNotifications()

	copied, err := clone.Get("alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"hello"}, copied.Notifications)
}
