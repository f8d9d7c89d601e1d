package repository

import (
	"context"

	"shopease/internal/model"
)

// ProductRepository defines read access to a remote product catalogue.
type ProductRepository interface {
	// GetAll retrieves the full product collection.
	GetAll(ctx context.Context) ([]model.Product, error)

	// GetByID retrieves a single product by its ID.
	// Returns nil, nil when the catalogue has no such product.
	GetByID(ctx context.Context, id model.ProductID) (*model.Product, error)
}
