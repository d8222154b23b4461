package pricing

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatedProvider_PriceBounds(t *testing.T) {
	provider := NewSimulatedProvider(42)
	ctx := context.Background()

	min := decimal.NewFromInt(1)
	max := decimal.NewFromInt(27)
	for i := 0; i < 50; i++ {
		prices, err := provider.FetchProductPrices(ctx, "Arroz", []string{"1", "2", "3"})
		require.NoError(t, err)
		require.Len(t, prices, 3)

		for id, price := range prices {
			assert.True(t, price.GreaterThanOrEqual(min), "store %s price %s below floor", id, price)
			assert.True(t, price.LessThanOrEqual(max), "store %s price %s above ceiling", id, price)
		}
	}
}

func TestSimulatedProvider_Deterministic(t *testing.T) {
	ctx := context.Background()

	a, err := NewSimulatedProvider(7).FetchProductPrices(ctx, "Leite", []string{"1"})
	require.NoError(t, err)
	b, err := NewSimulatedProvider(7).FetchProductPrices(ctx, "Leite", []string{"1"})
	require.NoError(t, err)

	assert.True(t, a["1"].Equal(b["1"]))
}

func TestSimulatedProvider_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSimulatedProvider(1).FetchProductPrices(ctx, "Leite", []string{"1"})
	assert.Error(t, err)
}

type failingProvider struct{}

func (failingProvider) FetchProductPrices(context.Context, string, []string) (map[string]decimal.Decimal, error) {
	return nil, errors.New("upstream down")
}

func TestBreakerProvider_DegradesToEmptyMap(t *testing.T) {
	provider := NewBreakerProvider(failingProvider{})

	// Past the trip threshold the breaker opens; either way the caller
	// sees an empty map, never an error.
	for i := 0; i < 10; i++ {
		prices, err := provider.FetchProductPrices(context.Background(), "Arroz", []string{"1", "2"})
		require.NoError(t, err)
		assert.Empty(t, prices)
	}
}

func TestBreakerProvider_PassesThroughSuccess(t *testing.T) {
	provider := NewBreakerProvider(NewSimulatedProvider(3))

	prices, err := provider.FetchProductPrices(context.Background(), "Arroz", []string{"1"})
	require.NoError(t, err)
	assert.Len(t, prices, 1)
}
