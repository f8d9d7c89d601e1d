package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"shopease/internal/config"
	"shopease/internal/repository"
)

// Fetches the remote catalogue once and writes it as a snapshot for the
// file and s3 catalogue sources.
//
// Usage: snapshot [output path]   (default data/catalogue.json.gz)
func main() {
	output := "data/catalogue.json.gz"
	if len(os.Args) > 1 {
		output = os.Args[1]
	}

	if err := run(output); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(output string) error {
	cfg, err := config.LoadHTTPCatalog()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Catalog.Timeout())
	defer cancel()

	repo := repository.NewHTTPRepository(cfg.Catalog.BaseURL, cfg.Catalog.Timeout(), logger)
	products, err := repo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch catalogue from %s: %w", cfg.Catalog.BaseURL, err)
	}

	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := repository.WriteSnapshot(output, products); err != nil {
		return err
	}

	logger.Info().
		Str("path", output).
		Int("count", len(products)).
		Msg("catalogue snapshot written")

	return nil
}
