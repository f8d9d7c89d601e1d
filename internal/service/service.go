package service

import (
	"context"

	"shopease/internal/catalog"
	"shopease/internal/model"
)

// CatalogService defines the catalogue operations exposed to clients.
type CatalogService interface {
	// List returns the catalogue filtered and sorted by q.
	List(ctx context.Context, q catalog.Query) []model.Product

	// Create validates a draft and adds it to the catalogue.
	Create(ctx context.Context, draft model.ProductDraft) (*model.Product, error)

	// Get resolves a single product, locally first and then remotely.
	Get(ctx context.Context, id model.ProductID) (*model.Product, error)

	// Categories returns the distinct categories in first-seen order.
	Categories(ctx context.Context) []string

	// Stats returns product count, category count and average price.
	Stats(ctx context.Context) catalog.Stats

	// Seeded reports whether the initial remote load has been applied.
	Seeded() bool
}

// CartService defines the cart operations exposed to clients.
// Every mutation returns the resulting cart.
type CartService interface {
	Get(ctx context.Context) model.CartSummary
	Add(ctx context.Context, id model.ProductID) (model.CartSummary, error)
	UpdateQuantity(ctx context.Context, id model.ProductID, quantity int) model.CartSummary
	Remove(ctx context.Context, id model.ProductID) model.CartSummary
	Clear(ctx context.Context) model.CartSummary
}
