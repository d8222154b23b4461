package cache

import (
	"context"
	"errors"

	"github.com/samirnagib/app-lista-compras/internal/domain"
)

// ListCache is an optional read-through cache in front of the list
// repository.
type ListCache interface {
	Get(ctx context.Context, listID string) (*domain.ShoppingList, error)
	Set(ctx context.Context, listID string, list *domain.ShoppingList) error
	Delete(ctx context.Context, listID string) error
}

var ErrCacheMiss = errors.New("cache miss")
