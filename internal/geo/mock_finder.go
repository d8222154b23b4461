package geo

import (
	"context"
	"sort"

	"github.com/samirnagib/app-lista-compras/internal/domain"
)

// MockFinder simulates a store-locator API with a fixed set of
// supermarkets placed at small offsets from the user. A real Places
// integration would drop in behind the Finder interface.
type MockFinder struct{}

type mockStore struct {
	id, name, address string
	latOff, lonOff    float64
}

var mockStores = []mockStore{
	{"1", "Carrefour", "Av. Principal, 1000", 0.01, 0.01},
	{"2", "Pão de Açúcar", "Rua Comercial, 500", 0.02, -0.01},
	{"3", "Extra", "Av. Central, 2000", -0.01, 0.02},
	{"4", "Atacadão", "Rua do Comércio, 300", 0.03, 0.03},
}

func (MockFinder) NearbySupermarkets(_ context.Context, loc domain.Location) ([]domain.Supermarket, error) {
	markets := make([]domain.Supermarket, 0, len(mockStores))
	for _, s := range mockStores {
		lat := loc.Latitude + s.latOff
		lon := loc.Longitude + s.lonOff
		markets = append(markets, domain.Supermarket{
			ID:        s.id,
			Name:      s.name,
			Address:   s.address,
			Latitude:  lat,
			Longitude: lon,
			Distance:  Distance(loc.Latitude, loc.Longitude, lat, lon),
		})
	}

	sort.SliceStable(markets, func(i, j int) bool {
		return markets[i].Distance < markets[j].Distance
	})
	return markets, nil
}
