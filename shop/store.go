// Package shop holds the per-session shared storefront state: try-on
// mode, cart, tried-product history and the outfit selection set. It is
// the single source of truth the fitting controller and the assistant
// mutate; all mutations are synchronous and visible immediately.
package shop

import (
	"sync"

	"github.com/styleshop/fitting-room/models"
)

// Store is session-scoped shared state. It is not shared across users,
// but handlers may touch it from different goroutines, so mutations are
// mutex-guarded.
type Store struct {
	mu               sync.Mutex
	tryOnModeActive  bool
	cart             []models.CartEntry
	triedProducts    []models.Product
	selectedProducts []models.Product
}

// NewStore returns a store with try-on mode active, matching the
// storefront's default.
func NewStore() *Store {
	return &Store{tryOnModeActive: true}
}

// TryOnModeActive reports whether try-on mode is on.
func (s *Store) TryOnModeActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tryOnModeActive
}

// ToggleTryOnMode flips try-on mode and returns the new value.
func (s *Store) ToggleTryOnMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tryOnModeActive = !s.tryOnModeActive
	return s.tryOnModeActive
}

// SetTryOnMode sets try-on mode explicitly. The assistant's
// toggle_tryon action carries the requested value rather than a flip.
func (s *Store) SetTryOnMode(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tryOnModeActive = active
}

// AddToCart inserts the product with quantity 1, or increments the
// existing entry. There is deliberately no remove or decrement.
func (s *Store) AddToCart(p models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cart {
		if s.cart[i].Product.ID == p.ID {
			s.cart[i].Quantity++
			return
		}
	}
	s.cart = append(s.cart, models.CartEntry{Product: p, Quantity: 1})
}

// Cart returns a copy of the cart entries in insertion order.
func (s *Store) Cart() []models.CartEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CartEntry, len(s.cart))
	copy(out, s.cart)
	return out
}

// AddTriedProduct appends the product to the session history. It is a
// no-op when the product was already tried.
func (s *Store) AddTriedProduct(p models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.triedProducts {
		if t.ID == p.ID {
			return
		}
	}
	s.triedProducts = append(s.triedProducts, p)
}

// TriedProducts returns a copy of the tried-product history.
func (s *Store) TriedProducts() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, len(s.triedProducts))
	copy(out, s.triedProducts)
	return out
}

// ToggleProductSelection adds the product to the outfit selection if
// absent, removes it if present.
func (s *Store) ToggleProductSelection(p models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sel := range s.selectedProducts {
		if sel.ID == p.ID {
			s.selectedProducts = append(s.selectedProducts[:i], s.selectedProducts[i+1:]...)
			return
		}
	}
	s.selectedProducts = append(s.selectedProducts, p)
}

// SelectedProducts returns a copy of the outfit selection set.
func (s *Store) SelectedProducts() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, len(s.selectedProducts))
	copy(out, s.selectedProducts)
	return out
}

// ClearSelectedProducts empties the outfit selection set.
func (s *Store) ClearSelectedProducts() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedProducts = nil
}

// Snapshot builds the assistant context view of the store.
func (s *Store) Snapshot(availableProducts []string) models.AssistantContext {
	s.mu.Lock()
	defer s.mu.Unlock()

	tried := make([]string, len(s.triedProducts))
	for i, p := range s.triedProducts {
		tried[i] = p.Name
	}
	cart := make([]string, len(s.cart))
	for i, e := range s.cart {
		cart[i] = e.Product.Name
	}

	return models.AssistantContext{
		TryOnModeActive:   s.tryOnModeActive,
		TriedProducts:     tried,
		CartItems:         cart,
		AvailableProducts: availableProducts,
	}
}
