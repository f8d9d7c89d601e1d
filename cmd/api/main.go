package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopease/internal/cart"
	"shopease/internal/catalog"
	"shopease/internal/config"
	"shopease/internal/currency"
	"shopease/internal/database"
	"shopease/internal/handler"
	"shopease/internal/repository"
	"shopease/internal/router"
	"shopease/internal/service"

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
	logger.Info().Str("catalog_source", cfg.Catalog.Source).Msg("starting shopease API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	productRepo, closeRepo, err := newProductRepository(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize catalog source: %w", err)
	}
	defer closeRepo()

	ids, err := catalog.NewSnowflakeGenerator(cfg.Catalog.NodeID)
	if err != nil {
		return fmt.Errorf("failed to initialize product ID generator: %w", err)
	}

	// Initialize stores
	catalogStore := catalog.NewStore(productRepo, ids, logger)
	cartStore := cart.NewStore(logger)
	lookup := catalog.NewLookup(catalogStore, productRepo, logger)

	// Seed the catalogue in the background; the API serves authored
	// products and the cart while the remote load is in flight.
	go catalogStore.LoadInitial(ctx)

	// Initialize services
	converter := currency.NewConverter(cfg.Display.Rate, cfg.Display.Symbol)
	catalogService := service.NewCatalogService(catalogStore, lookup, logger)
	cartService := service.NewCartService(cartStore, lookup, converter, logger)

	// Initialize HTTP handlers
	catalogHandler := handler.NewCatalogHandler(catalogService, logger)
	cartHandler := handler.NewCartHandler(cartService, logger)

	// Initialize router
	mux := router.New(catalogHandler, cartHandler, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Catalog.Timeout() + 15*time.Second,
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

		// Abandon an in-flight catalogue seed
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		<-catalogStore.Done()
		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// newProductRepository builds the configured remote catalogue source. The
// returned func releases its resources.
func newProductRepository(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (repository.ProductRepository, func(), error) {
	noop := func() {}

	switch cfg.Catalog.Source {
	case config.SourceHTTP:
		return repository.NewHTTPRepository(cfg.Catalog.BaseURL, cfg.Catalog.Timeout(), logger), noop, nil

	case config.SourcePostgres:
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to initialize database: %w", err)
		}
		return repository.NewProductRepository(pool, logger), pool.Close, nil

	case config.SourceFile:
		source := repository.NewFileSource(cfg.Catalog.SnapshotPath)
		return repository.NewSnapshotRepository(source, logger), noop, nil

	case config.SourceS3:
		source, err := repository.NewS3Source(ctx, cfg.S3.Bucket, cfg.S3.Region, cfg.Catalog.SnapshotPath, logger)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to initialize S3 catalog source: %w", err)
		}
		return repository.NewSnapshotRepository(source, logger), noop, nil

	default:
		return nil, noop, fmt.Errorf("unsupported catalog source: %s", cfg.Catalog.Source)
	}
}
