package models

// Product represents a garment in the storefront catalog.
// Products are immutable once listed and passed around by value.
type Product struct {
	ID    string `bson:"_id,omitempty" json:"id"`
	Name  string `bson:"name" json:"name"`
	Price string `bson:"price" json:"price"`
	Image string `bson:"image" json:"image"`
}

// CartEntry is a product in the cart with its accumulated quantity.
// Quantity starts at 1 and only ever grows; the demo has no remove
// or decrement operation.
type CartEntry struct {
	Product  Product `bson:"product" json:"product"`
	Quantity int     `bson:"quantity" json:"quantity"`
}
