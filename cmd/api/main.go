package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/prasetyoadi/umkm-storefront/api/routes"
	"github.com/prasetyoadi/umkm-storefront/internal/cart"
	"github.com/prasetyoadi/umkm-storefront/internal/catalog"
	"github.com/prasetyoadi/umkm-storefront/internal/checkout"
	"github.com/prasetyoadi/umkm-storefront/internal/shipping"
	"github.com/prasetyoadi/umkm-storefront/pkg/config"
	"github.com/prasetyoadi/umkm-storefront/pkg/db"
	"github.com/prasetyoadi/umkm-storefront/pkg/logger"
	"github.com/prasetyoadi/umkm-storefront/pkg/metrics"
	"github.com/prasetyoadi/umkm-storefront/pkg/migrate"
	"github.com/prasetyoadi/umkm-storefront/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRun(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run migrations", err)
		os.Exit(1)
	}

	cartStorage, cleanup, err := buildCartStorage(cfg, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap cart storage", err)
		os.Exit(1)
	}
	if cleanup != nil {
		defer cleanup()
	}

	registry := prometheus.NewRegistry()
	storefrontMetrics := metrics.NewStorefrontMetrics(registry)

	renderer, err := checkout.NewImageRenderer()
	if err != nil {
		logg.Error(context.Background(), "failed to load invoice fonts", err)
		os.Exit(1)
	}

	catalogRepo := catalog.NewRepository(dbClient.DB())
	carts := cart.NewManager(cartStorage, cfg.Cart.SessionTTL, logg)
	calc := shipping.NewCalculator(cfg.Shipping.BaseCost)
	checkoutService := checkout.NewService(cfg.Store, cfg.Checkout, renderer, storefrontMetrics, logg)

	go sweepIdleSessions(cfg.Cart.SessionTTL, carts, checkoutService, logg)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":          cfg.App.Env,
		"addr":         addr,
		"cart_storage": cfg.Cart.Storage,
	})
	logg.Info(ctx, "starting storefront api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			catalogRepo,
			carts,
			calc,
			checkoutService,
			storefrontMetrics,
			registry,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

// sweepIdleSessions periodically drops in-memory cart stores and checkout
// state for sessions past the idle TTL. Durable cart slots survive.
func sweepIdleSessions(idleTTL time.Duration, carts *cart.Manager, checkoutService *checkout.Service, logg *logger.Logger) {
	if idleTTL <= 0 {
		return
	}
	interval := idleTTL / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		evicted := carts.EvictIdle()
		for _, sessionID := range evicted {
			checkoutService.Dispose(sessionID)
		}
		// Checkout-only sessions never enter the cart manager, so they are
		// swept on their own clock as well.
		idleCheckouts := checkoutService.EvictIdle(idleTTL)
		if len(evicted) > 0 || idleCheckouts > 0 {
			ctx := logg.WithFields(context.Background(), map[string]any{
				"carts":     len(evicted),
				"checkouts": idleCheckouts,
			})
			logg.Info(ctx, "evicted idle sessions")
		}
	}
}

func buildCartStorage(cfg *config.Config, logg *logger.Logger) (cart.Storage, func(), error) {
	switch cfg.Cart.Storage {
	case config.CartStorageRedis:
		redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}
		storage, err := cart.NewRedisStorage(redisClient, cfg.Cart.SlotTTL)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		return storage, cleanup, nil
	default:
		storage, err := cart.NewFileStorage(cfg.Cart.FileDir)
		if err != nil {
			return nil, nil, err
		}
		return storage, nil, nil
	}
}
