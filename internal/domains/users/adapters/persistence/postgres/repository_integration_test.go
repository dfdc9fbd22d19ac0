//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	catalogdomain "github.com/ecomarket/marketplace/internal/domains/catalog/domain"
	"github.com/ecomarket/marketplace/internal/domains/users/domain"
)

func setupUsersPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("marketplace_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func TestRepository_RoundTripsDirectoryWithOrders(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupUsersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	directory := domain.NewDirectory()
	alice, err := domain.NewUser("alice", "Alice", "alice@example.com", "1234")
	require.NoError(t, err)
	alice.PlaceOrder("AB12", catalogdomain.Product{ID: "1", Name: "Pen", Price: 1.5, Quantity: 3})
	alice.Notify("Order AB12 for Pen is pending admin approval.")
	require.NoError(t, directory.Insert(alice))

	bob, err := domain.NewUser("bob", "Bob", "bob@example.com", "5678")
	require.NoError(t, err)
	require.NoError(t, directory.Insert(bob))

	require.NoError(t, repo.Save(ctx, directory))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, loaded.Len())
	assert.Equal(t, "alice", loaded.Users()[0].Username)
	assert.Equal(t, "bob", loaded.Users()[1].Username)

	restored, err := loaded.Get("alice")
	require.NoError(t, err)
	require.Len(t, restored.Orders, 1)
	assert.Equal(t, domain.StatusPending, restored.Orders[0].Status)
	assert.Equal(t, "Pen", restored.Orders[0].Product.Name)
	assert.Len(t, restored.Notifications, 1)
}
