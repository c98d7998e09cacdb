// Package catalog exposes the static garment list consumed read-only by
// the fitting controller, the assistant and the presentation layer.
package catalog

import (
	"strings"

	"github.com/styleshop/fitting-room/models"
)

var products = []models.Product{
	{
		ID:    "1",
		Name:  "Camiseta Básica",
		Price: "€29.95",
		Image: "https://cdn.styleshop.example/products/camiseta-basica.jpg",
	},
	{
		ID:    "2",
		Name:  "Chaqueta de Cuero",
		Price: "€199.95",
		Image: "https://cdn.styleshop.example/products/chaqueta-cuero.jpg",
	},
	{
		ID:    "3",
		Name:  "Abrigo Elegante",
		Price: "€149.95",
		Image: "https://cdn.styleshop.example/products/abrigo-elegante.jpg",
	},
}

// All returns the catalog in display order. Callers get a copy; the
// catalog itself is immutable.
func All() []models.Product {
	out := make([]models.Product, len(products))
	copy(out, products)
	return out
}

// FindByID looks a product up by its identifier.
func FindByID(id string) (models.Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// FindByName looks a product up by display name, case-insensitively.
// The assistant resolves add-to-cart product names through this.
func FindByName(name string) (models.Product, bool) {
	needle := strings.TrimSpace(strings.ToLower(name))
	for _, p := range products {
		if strings.ToLower(p.Name) == needle {
			return p, true
		}
	}
	return models.Product{}, false
}

// Names returns the display names in catalog order.
func Names() []string {
	names := make([]string, len(products))
	for i, p := range products {
		names[i] = p.Name
	}
	return names
}
