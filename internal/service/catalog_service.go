package service

import (
	"context"
	"errors"
	"fmt"

	"shopease/internal/catalog"
	"shopease/internal/model"

	"github.com/rs/zerolog"
)

// catalogService implements CatalogService.
type catalogService struct {
	store  *catalog.Store
	lookup *catalog.Lookup
	logger zerolog.Logger
}

// NewCatalogService creates a new catalogue service.
func NewCatalogService(store *catalog.Store, lookup *catalog.Lookup, logger zerolog.Logger) CatalogService {
	return &catalogService{
		store:  store,
		lookup: lookup,
		logger: logger.With().Str("service", "catalog").Logger(),
	}
}

// List returns the catalogue filtered and sorted by q.
func (s *catalogService) List(ctx context.Context, q catalog.Query) []model.Product {
	products := catalog.Apply(s.store.All(), q)

	s.logger.Debug().
		Str("search", q.Search).
		Str("category", q.Category).
		Str("sort", string(q.Sort)).
		Int("count", len(products)).
		Msg("listed products")

	return products
}

// Create validates a draft and adds it to the catalogue.
func (s *catalogService) Create(ctx context.Context, draft model.ProductDraft) (*model.Product, error) {
	if err := draft.Validate(); err != nil {
		var fields model.ValidationErrors
		if errors.As(err, &fields) {
			s.logger.Debug().Int("violations", len(fields)).Msg("product draft rejected")
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	product := s.store.AddProduct(draft)

	s.logger.Info().
		Str("product_id", product.ID.String()).
		Str("category", product.Category).
		Msg("product authored")

	return &product, nil
}

// Get resolves a single product, locally first and then remotely.
func (s *catalogService) Get(ctx context.Context, id model.ProductID) (*model.Product, error) {
	if id == "" {
		s.logger.Warn().Msg("product ID is empty")
		return nil, model.ErrProductNotFound
	}

	product, err := s.lookup.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}

	return product, nil
}

// Categories returns the distinct categories in first-seen order.
func (s *catalogService) Categories(ctx context.Context) []string {
	return catalog.Categories(s.store.All())
}

// Stats returns product count, category count and average price.
func (s *catalogService) Stats(ctx context.Context) catalog.Stats {
	return catalog.Statistics(s.store.All())
}

// Seeded reports whether the initial remote load has been applied.
func (s *catalogService) Seeded() bool {
	return s.store.Seeded()
}
