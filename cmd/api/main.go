package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/soft99/storefront-backend/api/controllers"
	"github.com/soft99/storefront-backend/api/routes"
	"github.com/soft99/storefront-backend/internal/cart"
	"github.com/soft99/storefront-backend/internal/catalog"
	"github.com/soft99/storefront-backend/internal/images"
	"github.com/soft99/storefront-backend/internal/orders"
	"github.com/soft99/storefront-backend/internal/providers"
	"github.com/soft99/storefront-backend/internal/providers/apistub"
	"github.com/soft99/storefront-backend/internal/providers/document"
	"github.com/soft99/storefront-backend/internal/providers/local"
	"github.com/soft99/storefront-backend/internal/snapshot"
	"github.com/soft99/storefront-backend/pkg/config"
	"github.com/soft99/storefront-backend/pkg/db"
	"github.com/soft99/storefront-backend/pkg/enums"
	"github.com/soft99/storefront-backend/pkg/logger"
	"github.com/soft99/storefront-backend/pkg/metrics"
	"github.com/soft99/storefront-backend/pkg/migrate"
	pkgmongo "github.com/soft99/storefront-backend/pkg/mongo"
	"github.com/soft99/storefront-backend/pkg/redis"
	"github.com/soft99/storefront-backend/pkg/storage/gcs"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	requireResource(context.Background(), logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	storeMetrics := metrics.NewStorefrontMetrics(reg)

	var (
		checks  []controllers.ReadinessCheck
		closers []func() error
		deps    snapshot.Deps
	)
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				logg.Error(context.Background(), "error closing client", err)
			}
		}
	}()

	if cfg.Redis.Enabled() {
		client, err := redis.New(ctx, cfg.Redis, logg)
		requireResource(ctx, logg, "redis", err)
		deps.Redis = client
		closers = append(closers, client.Close)
		checks = append(checks, controllers.ReadinessCheck{Name: "redis", Pinger: client})
	}

	driver, err := enums.ParseSnapshotDriver(cfg.Snapshot.Driver)
	requireResource(ctx, logg, "snapshot driver", err)
	if driver.IsSQL() {
		client, err := db.New(ctx, cfg.DB, logg)
		requireResource(ctx, logg, "database", err)
		deps.DB = client
		closers = append(closers, client.Close)
		checks = append(checks, controllers.ReadinessCheck{Name: "database", Pinger: client})
		requireResource(ctx, logg, "dev migrations", migrate.MaybeRunDev(ctx, cfg, logg, client))
	}

	var releaser images.Releaser = images.Noop{}
	if cfg.GCS.Enabled() {
		client, err := gcs.NewClient(ctx, cfg.GCS, cfg.GCP, logg)
		requireResource(ctx, logg, "gcs", err)
		closers = append(closers, client.Close)
		checks = append(checks, controllers.ReadinessCheck{Name: "gcs", Pinger: client})
		gcsReleaser, err := images.NewGCSReleaser(client)
		requireResource(ctx, logg, "image releaser", err)
		releaser = gcsReleaser
	}

	store, err := snapshot.Open(ctx, cfg.Snapshot, deps)
	requireResource(ctx, logg, "snapshot store", err)

	localProvider, err := local.New(local.Options{
		Store:    store,
		SeedDir:  cfg.Provider.SeedPath,
		Releaser: releaser,
		Logger:   logg,
		Metrics:  storeMetrics,
	})
	requireResource(ctx, logg, "local provider", err)

	factory, err := providers.NewFactory(localProvider, logg, storeMetrics)
	requireResource(ctx, logg, "provider factory", err)

	factory.Register(enums.ProviderSourceDocument, func(ctx context.Context) (providers.Provider, error) {
		if !cfg.Mongo.Enabled() {
			return nil, fmt.Errorf("mongo is not configured")
		}
		client, err := pkgmongo.New(ctx, cfg.Mongo, logg)
		if err != nil {
			return nil, err
		}
		p, err := document.New(document.Options{
			Client:   client,
			Releaser: releaser,
			Logger:   logg,
			Metrics:  storeMetrics,
		})
		if err == nil {
			err = p.EnsureIndexes(ctx)
		}
		if err != nil {
			_ = client.Close(context.Background())
			return nil, err
		}
		closers = append(closers, func() error { return client.Close(context.Background()) })
		checks = append(checks, controllers.ReadinessCheck{Name: "mongo", Pinger: client})
		return p, nil
	})
	factory.Register(enums.ProviderSourceAPI, func(context.Context) (providers.Provider, error) {
		return apistub.New(), nil
	})

	registry := factory.Initialize(ctx, cfg.Provider.Source)

	catalogSvc, err := catalog.NewService(registry, logg)
	requireResource(ctx, logg, "catalog service", err)
	adminSvc, err := catalog.NewAdminService(registry, logg)
	requireResource(ctx, logg, "admin catalog service", err)

	cartStore, err := openCartStore(deps, cfg.Cart)
	requireResource(ctx, logg, "cart store", err)
	cartSvc, err := cart.NewService(cartStore, registry, logg, storeMetrics)
	requireResource(ctx, logg, "cart service", err)

	orderSvc, err := orders.NewService(cartSvc, registry, orders.PricingFromConfig(cfg.Checkout), logg)
	requireResource(ctx, logg, "orders service", err)

	routerDeps := routes.Deps{
		Config:      cfg,
		Logger:      logg,
		Catalog:     catalogSvc,
		Admin:       adminSvc,
		Carts:       cartSvc,
		Orders:      orderSvc,
		HTTPMetrics: metrics.NewHTTPMetrics(reg),
		Gatherer:    reg,
		Readiness:   checks,
	}
	if deps.Redis != nil {
		routerDeps.Idempotency = deps.Redis
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	logCtx := logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
		"provider": registry.Get().Name(),
		"cart":     fmt.Sprintf("%T", cartStore),
	})
	logg.Info(logCtx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(routerDeps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logg.Error(logCtx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(logCtx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(logCtx, "graceful shutdown failed", err)
		}
	}
}

// openCartStore prefers redis, then the database, then process memory.
func openCartStore(deps snapshot.Deps, cfg config.CartConfig) (cart.Store, error) {
	switch {
	case deps.Redis != nil:
		return cart.NewRedisStore(deps.Redis, cfg.TTL)
	case deps.DB != nil:
		return cart.NewSQLStore(deps.DB, cfg.TTL)
	default:
		return cart.NewMemoryStore(), nil
	}
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
