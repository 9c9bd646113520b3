package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/checkout"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/handler"
	"storefront/internal/metrics"
	"storefront/internal/order"
	"storefront/internal/repository"
	"storefront/internal/router"
	"storefront/internal/service"
	"storefront/internal/state"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env file is fine; the environment wins either way.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().
		Str("order_store", cfg.Storage.OrderStore).
		Str("state_store", cfg.Storage.StateStore).
		Msg("starting storefront API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Metrics registry
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	// Order ledger
	var orderRepo repository.OrderRepository
	switch cfg.Storage.OrderStore {
	case config.DriverPostgres:
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer pool.Close()

		if err := database.Migrate(ctx, pool, logger); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		orderRepo = repository.NewOrderRepository(pool, logger)
	default:
		logger.Warn().Msg("using in-memory order store, orders are lost on restart")
		orderRepo = repository.NewMemoryOrderRepository(logger)
	}

	// Per-session cart and checkout state
	var (
		carts    state.Store[cart.Cart]
		sessions state.Store[checkout.Session]
	)
	switch cfg.Storage.StateStore {
	case config.DriverRedis:
		client, err := database.NewRedisClient(ctx, cfg.Redis, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize redis: %w", err)
		}
		defer client.Close()

		carts = state.NewRedisStore[cart.Cart](client, "cart", cfg.Storage.CartTTL)
		sessions = state.NewRedisStore[checkout.Session](client, "checkout", cfg.Storage.SessionTTL)
	default:
		logger.Warn().Msg("using in-memory session state")
		carts = state.NewMemoryStore[cart.Cart]()
		sessions = state.NewMemoryStore[checkout.Session]()
	}

	cat, err := loadCatalog(ctx, cfg.Catalog, logger)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	// Initialize services
	orderService := service.NewOrderService(orderRepo, order.NewNumberGenerator(), m, logger)
	cartService := service.NewCartService(carts, m, logger)
	checkoutService := service.NewCheckoutService(sessions, carts, cat, orderService, m, logger)

	// Initialize router
	mux := router.New(router.Handlers{
		Cart:     handler.NewCartHandler(cartService, logger),
		Checkout: handler.NewCheckoutHandler(checkoutService, logger),
		Catalog:  handler.NewCatalogHandler(cat, logger),
		Order:    handler.NewOrderHandler(orderService, logger),
	}, m, reg, cfg.Auth.APIKey, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// loadCatalog reads the shipping and payment catalog from S3 and/or a local
// file. With neither configured the built-in catalog is used. When S3 fails
// and no local path is set, the built-in catalog is used as well.
func loadCatalog(ctx context.Context, cfg config.CatalogConfig, logger zerolog.Logger) (*catalog.Catalog, error) {
	if !cfg.S3Enabled && cfg.Path == "" {
		logger.Info().Msg("using built-in catalog")
		return catalog.Default(), nil
	}

	fileLoader := catalog.NewFileLoader(logger)

	var s3Loader catalog.Loader
	if cfg.S3Enabled {
		l, err := catalog.NewS3Loader(ctx, cfg.S3Bucket, cfg.S3Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			s3Loader = l
		}
	}

	cat, err := catalog.NewFallbackLoader(s3Loader, fileLoader, cfg.S3Key, logger).Load(ctx, cfg.Path)
	if err != nil {
		if cfg.Path == "" {
			logger.Warn().Err(err).Msg("catalog unavailable, using built-in catalog")
			return catalog.Default(), nil
		}
		return nil, err
	}

	logger.Info().
		Int("shipping_methods", len(cat.Shipping)).
		Int("payment_methods", len(cat.Payment)).
		Msg("catalog loaded")
	return cat, nil
}
