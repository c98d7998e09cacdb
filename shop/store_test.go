package shop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/styleshop/fitting-room/models"
)

var (
	tshirt = models.Product{ID: "1", Name: "Camiseta Básica", Price: "€29.95", Image: "https://cdn.example/1.jpg"}
	jacket = models.Product{ID: "2", Name: "Chaqueta de Cuero", Price: "€199.95", Image: "https://cdn.example/2.jpg"}
)

func TestAddToCartIncrementsExistingEntry(t *testing.T) {
	s := NewStore()

	s.AddToCart(jacket)
	s.AddToCart(jacket)

	cart := s.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, "2", cart[0].Product.ID)
	assert.Equal(t, 2, cart[0].Quantity)
}

func TestAddToCartKeepsDistinctProductsSeparate(t *testing.T) {
	s := NewStore()

	s.AddToCart(tshirt)
	s.AddToCart(jacket)
	s.AddToCart(tshirt)

	cart := s.Cart()
	require.Len(t, cart, 2)
	assert.Equal(t, 2, cart[0].Quantity)
	assert.Equal(t, 1, cart[1].Quantity)
}

func TestToggleProductSelectionIsItsOwnInverse(t *testing.T) {
	s := NewStore()
	s.ToggleProductSelection(tshirt)

	before := s.SelectedProducts()

	s.ToggleProductSelection(jacket)
	s.ToggleProductSelection(jacket)

	assert.Equal(t, before, s.SelectedProducts())
}

func TestToggleProductSelectionRemovesPresentProduct(t *testing.T) {
	s := NewStore()

	s.ToggleProductSelection(tshirt)
	s.ToggleProductSelection(jacket)
	s.ToggleProductSelection(tshirt)

	sel := s.SelectedProducts()
	require.Len(t, sel, 1)
	assert.Equal(t, "2", sel[0].ID)
}

func TestClearSelectedProducts(t *testing.T) {
	s := NewStore()
	s.ToggleProductSelection(tshirt)
	s.ToggleProductSelection(jacket)

	s.ClearSelectedProducts()

	assert.Empty(t, s.SelectedProducts())
}

func TestAddTriedProductIsIdempotent(t *testing.T) {
	s := NewStore()

	for i := 0; i < 5; i++ {
		s.AddTriedProduct(jacket)
	}

	tried := s.TriedProducts()
	require.Len(t, tried, 1)
	assert.Equal(t, "2", tried[0].ID)
}

func TestToggleTryOnMode(t *testing.T) {
	s := NewStore()
	assert.True(t, s.TryOnModeActive(), "try-on mode starts active")

	assert.False(t, s.ToggleTryOnMode())
	assert.True(t, s.ToggleTryOnMode())
}

func TestSetTryOnMode(t *testing.T) {
	s := NewStore()

	s.SetTryOnMode(false)
	assert.False(t, s.TryOnModeActive())

	s.SetTryOnMode(false)
	assert.False(t, s.TryOnModeActive())
}

func TestSnapshot(t *testing.T) {
	s := NewStore()
	s.AddTriedProduct(jacket)
	s.AddToCart(tshirt)

	snap := s.Snapshot([]string{"Camiseta Básica", "Chaqueta de Cuero"})

	assert.True(t, snap.TryOnModeActive)
	assert.Equal(t, []string{"Chaqueta de Cuero"}, snap.TriedProducts)
	assert.Equal(t, []string{"Camiseta Básica"}, snap.CartItems)
	assert.Len(t, snap.AvailableProducts, 2)
}
