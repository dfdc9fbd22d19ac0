package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ecomarket/marketplace/internal/console"
	catalogjsonfile "github.com/ecomarket/marketplace/internal/domains/catalog/adapters/jsonfile"
	catalogobs "github.com/ecomarket/marketplace/internal/domains/catalog/adapters/observability"
	catalogpostgres "github.com/ecomarket/marketplace/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/ecomarket/marketplace/internal/domains/catalog/application"
	catalogports "github.com/ecomarket/marketplace/internal/domains/catalog/ports"
	marketobs "github.com/ecomarket/marketplace/internal/domains/market/adapters/observability"
	marketapp "github.com/ecomarket/marketplace/internal/domains/market/application"
	userjsonfile "github.com/ecomarket/marketplace/internal/domains/users/adapters/jsonfile"
	userobs "github.com/ecomarket/marketplace/internal/domains/users/adapters/observability"
	userpostgres "github.com/ecomarket/marketplace/internal/domains/users/adapters/persistence/postgres"
	userapp "github.com/ecomarket/marketplace/internal/domains/users/application"
	userports "github.com/ecomarket/marketplace/internal/domains/users/ports"
	platformobservability "github.com/ecomarket/marketplace/internal/platform/observability"
	platformpostgres "github.com/ecomarket/marketplace/internal/platform/postgres"
)

// Run boots the interactive marketplace with observability and repositories
// wired, then hands control to the session loop until the user exits.
func Run(ctx context.Context) error {
	const serviceName = "marketplace-cli"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg := LoadConfig()
	catalogRepo, userRepo, cleanupRepos := buildRepositories(ctx, cfg, logger)
	defer cleanupRepos()

	catalogService := catalogobs.New(
		catalogapp.NewService(catalogRepo),
		catalogobs.WithLogger(logger),
		catalogobs.WithTracer(instruments.Tracer("internal.catalog.application")),
		catalogobs.WithMeter(instruments.Meter("internal.catalog.application")),
	)
	userService := userobs.New(
		userapp.NewService(userRepo, userapp.WithLoginLimiter(5, 5)),
		userobs.WithLogger(logger),
		userobs.WithTracer(instruments.Tracer("internal.users.application")),
		userobs.WithMeter(instruments.Meter("internal.users.application")),
	)
	marketService := marketobs.New(
		marketapp.NewService(catalogRepo, userRepo),
		marketobs.WithLogger(logger),
		marketobs.WithTracer(instruments.Tracer("internal.market.application")),
		marketobs.WithMeter(instruments.Meter("internal.market.application")),
	)

	session := NewSession(console.New(), catalogService, userService, marketService)
	session.Run(ctx)
	return nil
}

// buildRepositories selects persistence for both aggregates: postgres when a
// DSN is configured and reachable, otherwise the JSON files next to the
// binary.
func buildRepositories(ctx context.Context, cfg Config, logger *slog.Logger) (catalogports.Repository, userports.Repository, func()) {
	if cfg.PostgresDSN == "" {
		logger.Info("using JSON file persistence",
			slog.String("users", cfg.UsersFile),
			slog.String("products", cfg.ProductsFile),
		)
		return catalogjsonfile.NewRepository(cfg.ProductsFile), userjsonfile.NewRepository(cfg.UsersFile), func() {}
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to JSON files", slog.String("error", err.Error()))
		return catalogjsonfile.NewRepository(cfg.ProductsFile), userjsonfile.NewRepository(cfg.UsersFile), func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to unwrap postgres connection, falling back to JSON files", slog.String("error", err.Error()))
		return catalogjsonfile.NewRepository(cfg.ProductsFile), userjsonfile.NewRepository(cfg.UsersFile), func() {}
	}
	logger.Info("repositories configured with postgres")
	return catalogpostgres.NewRepository(db), userpostgres.NewRepository(db), func() { _ = sqlDB.Close() }
}
