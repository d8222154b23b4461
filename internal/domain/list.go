package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a single entry on a shopping list. Updates replace the
// whole record; there is no partial-field mutation.
type Product struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	ImageURL  string          `json:"image_url,omitempty"`
	Category  string          `json:"category,omitempty"`
	Checked   bool            `json:"checked"`
}

// Subtotal is quantity × unit price.
func (p Product) Subtotal() decimal.Decimal {
	return p.UnitPrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// ShoppingList holds one named list of products. Product order is
// insertion order. Budget zero means "no budget set".
type ShoppingList struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Products      []Product       `json:"products"`
	Budget        decimal.Decimal `json:"budget"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	SupermarketID string          `json:"supermarket_id,omitempty"`
}

// FindProduct returns the index of the product with the given id, or -1.
func (l *ShoppingList) FindProduct(productID string) int {
	for i := range l.Products {
		if l.Products[i].ID == productID {
			return i
		}
	}
	return -1
}

// Supermarket is a nearby store candidate. Immutable once fetched for
// a comparison session.
type Supermarket struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Distance  float64 `json:"distance"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Location is a user position in decimal degrees.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
