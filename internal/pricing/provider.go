// Package pricing provides per-store price estimation for products.
// There is no real supermarket API behind it; the simulated provider
// stands in for one behind the Provider interface.
package pricing

import (
	"context"
	"math"
	"math/rand"
	"sync"

	"github.com/shopspring/decimal"
)

// Provider returns an estimated unit price per store for a product.
// The returned map may omit any store; partial results are valid and
// never an error condition for callers.
type Provider interface {
	FetchProductPrices(ctx context.Context, productName string, storeIDs []string) (map[string]decimal.Decimal, error)
}

// SimulatedProvider generates pseudo-random store prices: a base
// between 5 and 25 with a ±2 variation, floored at 1.
type SimulatedProvider struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulatedProvider creates a provider with the given seed so tests
// can pin the generated prices.
func NewSimulatedProvider(seed int64) *SimulatedProvider {
	return &SimulatedProvider{rng: rand.New(rand.NewSource(seed))}
}

func (p *SimulatedProvider) FetchProductPrices(ctx context.Context, _ string, storeIDs []string) (map[string]decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	prices := make(map[string]decimal.Decimal, len(storeIDs))
	for _, id := range storeIDs {
		base := p.rng.Float64()*20 + 5
		variation := (p.rng.Float64() - 0.5) * 4
		price := math.Max(1, base+variation)
		prices[id] = decimal.NewFromFloat(price).Round(2)
	}
	return prices, nil
}
