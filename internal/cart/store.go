package cart

import (
	"sync"

	"shopease/internal/model"

	"github.com/rs/zerolog"
)

// Store owns the shopping cart line items, in the order products were
// first added. Every operation is total: unknown IDs are ignored.
type Store struct {
	mu     sync.RWMutex
	items  []model.CartLineItem
	logger zerolog.Logger
}

// NewStore creates an empty cart.
func NewStore(logger zerolog.Logger) *Store {
	return &Store{
		items:  []model.CartLineItem{},
		logger: logger.With().Str("component", "cart-store").Logger(),
	}
}

// AddToCart increments the quantity of the product's line, or appends a
// new line with quantity 1.
func (s *Store) AddToCart(p model.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(p.ID); i >= 0 {
		s.items[i].Quantity++
		s.logger.Debug().
			Str("product_id", p.ID.String()).
			Int("quantity", s.items[i].Quantity).
			Msg("cart line incremented")
		return
	}

	s.items = append(s.items, model.NewCartLineItem(p))
	s.logger.Debug().Str("product_id", p.ID.String()).Msg("cart line added")
}

// UpdateQuantity sets the quantity of an existing line, clamped to at least 1.
func (s *Store) UpdateQuantity(id model.ProductID, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return
	}
	if quantity < 1 {
		quantity = 1
	}
	s.items[i].Quantity = quantity
}

// RemoveFromCart deletes the line for id.
func (s *Store) RemoveFromCart(id model.ProductID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return
	}

	items := make([]model.CartLineItem, 0, len(s.items)-1)
	items = append(items, s.items[:i]...)
	s.items = append(items, s.items[i+1:]...)
	s.logger.Debug().Str("product_id", id.String()).Msg("cart line removed")
}

// ClearCart removes every line.
func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = []model.CartLineItem{}
}

// LineItems returns a snapshot of the cart.
func (s *Store) LineItems() []model.CartLineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.CartLineItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) indexOf(id model.ProductID) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}
