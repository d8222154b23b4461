package service

import (
	"context"
	"sync"

	"github.com/samirnagib/app-lista-compras/internal/compare"
	"github.com/samirnagib/app-lista-compras/internal/domain"
	"github.com/samirnagib/app-lista-compras/internal/geo"
	"github.com/samirnagib/app-lista-compras/internal/pricing"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// maxConcurrentLookups caps in-flight price lookups per session.
const maxConcurrentLookups = 8

// CompareService runs one comparison session: resolve the user
// position, find nearby supermarkets, fetch per-store prices for every
// product concurrently and hand the completed snapshot to the engine.
type CompareService struct {
	location geo.LocationProvider
	finder   geo.Finder
	prices   pricing.Provider
	sfg      singleflight.Group // dedupes lookups for repeated product names
}

func NewCompareService(location geo.LocationProvider, finder geo.Finder, prices pricing.Provider) *CompareService {
	return &CompareService{
		location: location,
		finder:   finder,
		prices:   prices,
	}
}

// Compare estimates the list's total at each nearby supermarket and
// flags the cheapest. An empty result (no stores nearby) is a valid
// outcome; only an unresolvable location surfaces as an error.
func (s *CompareService) Compare(ctx context.Context, list *domain.ShoppingList) (compare.Result, error) {
	loc, err := s.location.UserLocation(ctx)
	if err != nil {
		return compare.Result{}, err
	}

	stores, err := s.finder.NearbySupermarkets(ctx, *loc)
	if err != nil {
		return compare.Result{}, err
	}
	if len(stores) == 0 {
		return compare.Result{}, nil
	}

	table, err := s.buildPriceTable(ctx, list.Products, stores)
	if err != nil {
		return compare.Result{}, err
	}

	return compare.Compare(list.Products, stores, table), nil
}

// buildPriceTable issues one lookup per product, concurrently. Lookup
// failures leave the product without entries, which the engine resolves
// by falling back to the recorded unit price. The table is complete
// before it is returned; the engine never sees a partial snapshot.
func (s *CompareService) buildPriceTable(ctx context.Context, products []domain.Product, stores []domain.Supermarket) (compare.PriceTable, error) {
	storeIDs := make([]string, 0, len(stores))
	for _, store := range stores {
		storeIDs = append(storeIDs, store.ID)
	}

	var mu sync.Mutex
	table := compare.PriceTable{}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)
	for _, product := range products {
		product := product
		g.Go(func() error {
			prices, err := s.lookup(ctx, product.Name, storeIDs)
			if err != nil {
				// Cancellation is the only lookup error that aborts the
				// session; provider failures degrade to fallback pricing.
				return ctx.Err()
			}
			mu.Lock()
			for storeID, price := range prices {
				table.Set(product.ID, storeID, price)
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return table, nil
}

func (s *CompareService) lookup(ctx context.Context, productName string, storeIDs []string) (map[string]decimal.Decimal, error) {
	v, err, _ := s.sfg.Do(productName, func() (interface{}, error) {
		return s.prices.FetchProductPrices(ctx, productName, storeIDs)
	})
	if err != nil {
		return nil, err
	}
	return v.(map[string]decimal.Decimal), nil
}
