package pricing

import (
	"context"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"
)

// BreakerProvider wraps a Provider with a circuit breaker. When the
// breaker is open, or the wrapped provider fails, it degrades to an
// empty price map so the comparison falls back to recorded unit
// prices instead of failing the whole session.
type BreakerProvider struct {
	inner Provider
	cb    *gobreaker.CircuitBreaker[map[string]decimal.Decimal]
}

func NewBreakerProvider(inner Provider) *BreakerProvider {
	settings := gobreaker.Settings{
		Name:    "price-provider",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("circuit breaker %s: %s -> %s", name, from, to)
		},
	}
	return &BreakerProvider{
		inner: inner,
		cb:    gobreaker.NewCircuitBreaker[map[string]decimal.Decimal](settings),
	}
}

func (b *BreakerProvider) FetchProductPrices(ctx context.Context, productName string, storeIDs []string) (map[string]decimal.Decimal, error) {
	prices, err := b.cb.Execute(func() (map[string]decimal.Decimal, error) {
		return b.inner.FetchProductPrices(ctx, productName, storeIDs)
	})
	if err != nil {
		log.Printf("price lookup for %q degraded: %v", productName, err)
		return map[string]decimal.Decimal{}, nil
	}
	return prices, nil
}
