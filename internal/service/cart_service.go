package service

import (
	"context"

	"shopease/internal/cart"
	"shopease/internal/currency"
	"shopease/internal/model"

	"github.com/rs/zerolog"
)

// ProductResolver finds a product by ID for adding it to the cart.
type ProductResolver interface {
	Resolve(ctx context.Context, id model.ProductID) (*model.Product, error)
}

// cartService implements CartService.
type cartService struct {
	store     *cart.Store
	products  ProductResolver
	converter currency.Converter
	logger    zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(store *cart.Store, products ProductResolver, converter currency.Converter, logger zerolog.Logger) CartService {
	return &cartService{
		store:     store,
		products:  products,
		converter: converter,
		logger:    logger.With().Str("service", "cart").Logger(),
	}
}

// Get returns the current cart.
func (s *cartService) Get(ctx context.Context) model.CartSummary {
	return s.summary()
}

// Add resolves the product and adds one unit of it to the cart.
func (s *cartService) Add(ctx context.Context, id model.ProductID) (model.CartSummary, error) {
	product, err := s.products.Resolve(ctx, id)
	if err != nil {
		s.logger.Debug().Err(err).Str("product_id", id.String()).Msg("cannot add product to cart")
		return model.CartSummary{}, err
	}

	s.store.AddToCart(*product)

	return s.summary(), nil
}

// UpdateQuantity sets a line's quantity; values below 1 are clamped to 1.
func (s *cartService) UpdateQuantity(ctx context.Context, id model.ProductID, quantity int) model.CartSummary {
	if quantity < 1 {
		s.logger.Debug().
			Str("product_id", id.String()).
			Int("requested", quantity).
			Msg("quantity clamped to 1")
	}

	s.store.UpdateQuantity(id, quantity)

	return s.summary()
}

// Remove deletes a line from the cart.
func (s *cartService) Remove(ctx context.Context, id model.ProductID) model.CartSummary {
	s.store.RemoveFromCart(id)
	return s.summary()
}

// Clear empties the cart.
func (s *cartService) Clear(ctx context.Context) model.CartSummary {
	s.store.ClearCart()
	s.logger.Info().Msg("cart cleared")
	return s.summary()
}

func (s *cartService) summary() model.CartSummary {
	items := s.store.LineItems()

	lines := make([]model.CartLine, 0, len(items))
	for _, item := range items {
		total := cart.LineTotal(item)
		lines = append(lines, model.CartLine{
			CartLineItem: item,
			LineTotal:    total,
			DisplayPrice: s.converter.Display(item.Price),
			DisplayTotal: s.converter.Display(total),
		})
	}

	subtotal := cart.Subtotal(items)

	return model.CartSummary{
		Items:           lines,
		ItemCount:       cart.ItemCount(items),
		Subtotal:        subtotal,
		DisplaySubtotal: s.converter.Display(subtotal),
		Currency:        s.converter.Symbol(),
	}
}
