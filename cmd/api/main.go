package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tahweela/tahweela-backend/api/routes"
	"github.com/tahweela/tahweela-backend/internal/auth"
	"github.com/tahweela/tahweela-backend/internal/cart"
	"github.com/tahweela/tahweela-backend/internal/catalog"
	"github.com/tahweela/tahweela-backend/internal/checkout"
	"github.com/tahweela/tahweela-backend/internal/orders"
	"github.com/tahweela/tahweela-backend/internal/payments"
	"github.com/tahweela/tahweela-backend/pkg/config"
	"github.com/tahweela/tahweela-backend/pkg/db"
	"github.com/tahweela/tahweela-backend/pkg/enums"
	"github.com/tahweela/tahweela-backend/pkg/logger"
	"github.com/tahweela/tahweela-backend/pkg/metrics"
	"github.com/tahweela/tahweela-backend/pkg/migrate"
	"github.com/tahweela/tahweela-backend/pkg/redis"
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
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, db.Options{UseSQLite: cfg.FeatureFlags.UseSQLite}, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.Redis.URL != "" || cfg.Redis.Address != "" {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	cartMetrics := metrics.NewCartMetrics(registry)

	var mirror cart.Mirror = cart.NewMemoryMirror()
	if cfg.Cart.MirrorKind == config.MirrorRedis {
		mirror = cart.NewRedisMirror(redisClient, cfg.Cart.MirrorTTL)
	}
	carts, err := cart.NewRegistry(cart.RegistryOptions{
		StorageKey: cfg.Cart.StorageKey,
		Mirror:     mirror,
		Logger:     logg,
		Metrics:    cartMetrics,
	})
	if err != nil {
		logg.Error(ctx, "failed to create cart registry", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{JWT: cfg.JWT, Logger: logg})
	if err != nil {
		logg.Error(ctx, "failed to create auth service", err)
		os.Exit(1)
	}
	authService.OnLogout(func(ctx context.Context, userID string) {
		if err := carts.Release(ctx, userID); err != nil {
			logg.Error(logg.WithUserID(ctx, userID), "failed to release cart on logout", err)
		}
	})

	catalogService, err := catalog.NewService(catalog.ServiceParams{
		Repo:         catalog.NewStaticRepository(nil),
		DefaultLimit: cfg.Catalog.DefaultLimit,
		MaxLimit:     cfg.Catalog.MaxLimit,
	})
	if err != nil {
		logg.Error(ctx, "failed to create catalog service", err)
		os.Exit(1)
	}

	orderService, err := orders.NewService(orders.ServiceParams{
		Repo:   orders.NewRepository(dbClient.DB()),
		Logger: logg,
	})
	if err != nil {
		logg.Error(ctx, "failed to create order service", err)
		os.Exit(1)
	}

	currency, err := enums.ParseCurrency(cfg.Checkout.Currency)
	if err != nil {
		logg.Error(ctx, "invalid checkout currency", err)
		os.Exit(1)
	}
	checkoutService, err := checkout.NewService(checkout.ServiceParams{
		Carts:    carts,
		Orders:   orderService,
		Payments: payments.NewStubGateway(),
		Currency: currency,
		Logger:   logg,
		Metrics:  cartMetrics,
	})
	if err != nil {
		logg.Error(ctx, "failed to create checkout service", err)
		os.Exit(1)
	}

	deps := routes.Dependencies{
		DB:          dbClient,
		Auth:        authService,
		Catalog:     catalogService,
		Carts:       carts,
		Checkout:    checkoutService,
		Orders:      orderService,
		HTTPMetrics: metrics.NewHTTPMetrics(registry),
		Metrics:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
	}
	if redisClient != nil {
		deps.Redis = redisClient
		deps.Idempotency = redisClient
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":    cfg.App.Env,
		"addr":   addr,
		"mirror": cfg.Cart.MirrorKind,
		"driver": dbClient.Driver(),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, deps),
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	logg.Info(shutdownCtx, "shutting down api server")
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(shutdownCtx, "graceful shutdown failed", err)
	}
	if err := carts.Teardown(shutdownCtx); err != nil {
		logg.Error(shutdownCtx, "failed to flush carts on shutdown", err)
	}
}
