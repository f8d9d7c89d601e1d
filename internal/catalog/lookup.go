package catalog

import (
	"context"

	"shopease/internal/model"
	"shopease/internal/repository"

	"github.com/rs/zerolog"
)

// Lookup resolves single products for detail views, preferring the local
// catalogue and falling back to the remote source.
type Lookup struct {
	store  *Store
	remote repository.ProductRepository
	logger zerolog.Logger
}

// NewLookup creates a product lookup over store and remote.
func NewLookup(store *Store, remote repository.ProductRepository, logger zerolog.Logger) *Lookup {
	return &Lookup{
		store:  store,
		remote: remote,
		logger: logger.With().Str("component", "product-lookup").Logger(),
	}
}

// Resolve returns the product with the given ID. A local hit returns
// without touching the network. Remote results are not cached in the store.
// Returns model.ErrProductNotFound when neither side has the product, or
// ctx.Err() if the caller went away while the remote request was pending.
func (l *Lookup) Resolve(ctx context.Context, id model.ProductID) (*model.Product, error) {
	if p, ok := l.store.Find(id); ok {
		return &p, nil
	}

	p, err := l.remote.GetByID(ctx, id)
	if ctxErr := ctx.Err(); ctxErr != nil {
		l.logger.Debug().Str("product_id", id.String()).Msg("lookup abandoned by caller")
		return nil, ctxErr
	}
	if err != nil {
		l.logger.Warn().Err(err).Str("product_id", id.String()).Msg("remote product lookup failed")
		return nil, model.ErrProductNotFound
	}
	if p == nil {
		l.logger.Debug().Str("product_id", id.String()).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	return p, nil
}
