package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopfront/internal/auth"
	"shopfront/internal/config"
	"shopfront/internal/coupon"
	"shopfront/internal/database"
	"shopfront/internal/handler"
	"shopfront/internal/metrics"
	"shopfront/internal/notify"
	"shopfront/internal/repository"
	"shopfront/internal/router"
	"shopfront/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting shopfront API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		return err
	}

	repos := newRepositories(pool, logger)

	if err := importCoupons(ctx, cfg, repos.Coupons, logger); err != nil {
		return err
	}

	// Initialize notification pipeline
	var notifier notify.Notifier
	if len(cfg.Kafka.Brokers) > 0 {
		notifier = notify.NewKafkaNotifier(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
		logger.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("publishing notifications to kafka")
	} else {
		notifier = notify.NewLogNotifier(logger)
		logger.Info().Msg("no kafka brokers configured, notifications are logged")
	}
	defer notifier.Close()

	dispatcher := notify.NewDispatcher(repos.Outbox, notifier, logger)
	if sent, err := dispatcher.FlushPending(ctx); err != nil {
		logger.Warn().Err(err).Int("sent", sent).Msg("failed to flush pending notifications")
	}
	defer dispatcher.Wait()

	m := metrics.New()

	// Initialize services
	productService := service.NewProductService(repos.Products, logger)
	cartService := service.NewCartService(repos.Carts, repos.Products, logger)
	addressService := service.NewAddressService(repos.Addresses, logger)
	reviewService := service.NewReviewService(repos.Orders, repos.Reviews, logger)
	orderService := service.NewOrderService(repos, coupon.NewValidator(logger), dispatcher, m, cfg.Kafka.Topic, logger)

	// Initialize HTTP handlers
	handlers := router.Handlers{
		Products:  handler.NewProductHandler(productService, logger),
		Cart:      handler.NewCartHandler(cartService, logger),
		Orders:    handler.NewOrderHandler(orderService, reviewService, logger),
		Addresses: handler.NewAddressHandler(addressService, logger),
	}

	// Initialize router
	issuer := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TTL())
	mux := router.New(handlers, issuer, m, logger)

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

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

func newRepositories(pool *pgxpool.Pool, logger zerolog.Logger) service.Repositories {
	return service.Repositories{
		Orders:    repository.NewOrderRepository(pool, logger),
		Carts:     repository.NewCartRepository(pool, logger),
		Products:  repository.NewProductRepository(pool, logger),
		Addresses: repository.NewAddressRepository(pool, logger),
		Rates:     repository.NewRateRepository(pool, logger),
		Coupons:   repository.NewCouponRepository(pool, logger),
		Reviews:   repository.NewReviewRepository(pool, logger),
		Users:     repository.NewUserRepository(pool, logger),
		Outbox:    repository.NewOutboxRepository(pool, logger),
	}
}

// importCoupons upserts the configured coupon files, reading from S3 first when enabled.
func importCoupons(ctx context.Context, cfg *config.Config, store coupon.Store, logger zerolog.Logger) error {
	if len(cfg.Coupons.Files) == 0 {
		logger.Info().Msg("no coupon files configured, skipping import")
		return nil
	}

	// Initialize coupon loader with S3 and local fallback
	fileLoader := coupon.NewFileLoader(logger)
	loader := fileLoader

	if cfg.S3.Enabled {
		s3Loader, err := coupon.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			loader = coupon.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, logger)
		}
	} else {
		logger.Info().Msg("using local file system for coupon files (S3 disabled)")
	}

	count, err := coupon.NewImporter(loader, store, logger).Import(ctx, cfg.Coupons.Files)
	if err != nil {
		return fmt.Errorf("failed to import coupons: %w", err)
	}

	logger.Info().Int("coupons", count).Msg("coupon import completed")
	return nil
}
