package catalog

import (
	"context"
	"sync"

	"shopease/internal/model"
	"shopease/internal/repository"

	"github.com/rs/zerolog"
)

// Store owns the product catalogue: the remote seed plus locally authored
// products, newest authored first.
type Store struct {
	mu       sync.RWMutex
	products []model.Product
	seeded   bool

	source repository.ProductRepository
	ids    IDGenerator
	logger zerolog.Logger

	seedOnce sync.Once
	done     chan struct{}
}

// NewStore creates an empty catalogue store seeded from source.
func NewStore(source repository.ProductRepository, ids IDGenerator, logger zerolog.Logger) *Store {
	return &Store{
		products: []model.Product{},
		source:   source,
		ids:      ids,
		logger:   logger.With().Str("component", "catalog-store").Logger(),
		done:     make(chan struct{}),
	}
}

// LoadInitial fetches the remote catalogue. Only the first call does any
// work. Products authored while the request was in flight stay in front of
// the seeded ones. A failed fetch is logged and leaves the store as it was.
func (s *Store) LoadInitial(ctx context.Context) {
	s.seedOnce.Do(func() {
		defer close(s.done)

		s.logger.Info().Msg("loading initial catalogue")

		remote, err := s.source.GetAll(ctx)
		if err != nil {
			s.logger.Error().
				Err(err).
				Str("code", model.ErrCodeCatalogLoad).
				Msg("initial catalogue load failed, continuing with local products only")
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		seen := make(map[model.ProductID]struct{}, len(s.products)+len(remote))
		for _, p := range s.products {
			seen[p.ID] = struct{}{}
		}

		merged := make([]model.Product, 0, len(s.products)+len(remote))
		merged = append(merged, s.products...)
		skipped := 0
		for _, p := range remote {
			if _, dup := seen[p.ID]; dup {
				skipped++
				continue
			}
			seen[p.ID] = struct{}{}
			merged = append(merged, p)
		}

		if skipped > 0 {
			s.logger.Warn().Int("skipped", skipped).Msg("dropped remote products with duplicate ids")
		}

		s.products = merged
		s.seeded = true

		s.logger.Info().
			Int("remote", len(remote)-skipped).
			Int("total", len(merged)).
			Msg("initial catalogue loaded")
	})
}

// Done is closed once the initial load has finished, successfully or not.
func (s *Store) Done() <-chan struct{} {
	return s.done
}

// Seeded reports whether the initial load succeeded.
func (s *Store) Seeded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seeded
}

// AddProduct builds a product from draft, assigns it a fresh ID and puts it
// at the front of the catalogue. The draft is not validated.
func (s *Store) AddProduct(draft model.ProductDraft) model.Product {
	p := model.Product{
		ID:          s.ids.NextID(),
		Title:       draft.Title,
		Price:       draft.Price,
		Description: draft.Description,
		Category:    draft.Category,
		Image:       draft.Image,
	}
	if draft.Rating != nil {
		p.Rating = model.NormaliseRating(*draft.Rating)
	}

	s.mu.Lock()
	products := make([]model.Product, 0, len(s.products)+1)
	products = append(products, p)
	s.products = append(products, s.products...)
	s.mu.Unlock()

	s.logger.Debug().Str("product_id", p.ID.String()).Str("title", p.Title).Msg("product added")

	return p
}

// All returns a snapshot of the catalogue.
func (s *Store) All() []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Find returns the product with the given ID, if present.
func (s *Store) Find(id model.ProductID) (model.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return model.Product{}, false
}
