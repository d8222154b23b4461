// Package compare holds the price-comparison engine: given a list of
// products, a set of candidate supermarkets and a table of per-store
// prices, it computes the estimated total per store and picks the
// cheapest one.
package compare

import (
	"github.com/samirnagib/app-lista-compras/internal/domain"
	"github.com/shopspring/decimal"
)

// PriceTable maps product id → supermarket id → estimated unit price.
// A missing entry is distinct from a zero price and triggers the
// fallback to the product's own recorded unit price.
type PriceTable map[string]map[string]decimal.Decimal

// Set records a price for a (product, store) pair.
func (t PriceTable) Set(productID, storeID string, price decimal.Decimal) {
	stores, ok := t[productID]
	if !ok {
		stores = make(map[string]decimal.Decimal)
		t[productID] = stores
	}
	stores[storeID] = price
}

// Lookup returns the recorded price for a (product, store) pair and
// whether one exists.
func (t PriceTable) Lookup(productID, storeID string) (decimal.Decimal, bool) {
	price, ok := t[productID][storeID]
	return price, ok
}

// StoreTotal is one supermarket with its estimated total for the list.
type StoreTotal struct {
	Supermarket domain.Supermarket `json:"supermarket"`
	Total       decimal.Decimal    `json:"total"`
}

// Result ranks every candidate store, in input order, and flags the
// cheapest one. An empty Result (no candidates) is a legitimate
// terminal state, not an error.
type Result struct {
	Totals     []StoreTotal `json:"totals"`
	CheapestID string       `json:"cheapest_id"`
}

// Empty reports whether the comparison had no candidate stores.
func (r Result) Empty() bool {
	return len(r.Totals) == 0
}

// Compare computes the estimated list total per store and selects the
// cheapest. Missing (product, store) prices fall back to the product's
// unit price. Ties go to the earliest store in input order; since the
// upstream finder sorts by distance, nearer stores win ties.
func Compare(products []domain.Product, stores []domain.Supermarket, table PriceTable) Result {
	if len(stores) == 0 {
		return Result{}
	}

	totals := make([]StoreTotal, 0, len(stores))
	cheapest := 0
	for i, store := range stores {
		total := storeTotal(products, store.ID, table)
		totals = append(totals, StoreTotal{Supermarket: store, Total: total})
		if total.LessThan(totals[cheapest].Total) {
			cheapest = i
		}
	}

	return Result{
		Totals:     totals,
		CheapestID: totals[cheapest].Supermarket.ID,
	}
}

func storeTotal(products []domain.Product, storeID string, table PriceTable) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		price, ok := table.Lookup(p.ID, storeID)
		if !ok {
			price = p.UnitPrice
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(p.Quantity))))
	}
	return total.Round(2)
}
