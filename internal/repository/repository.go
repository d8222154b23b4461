package repository

import (
	"context"
	"errors"

	"github.com/samirnagib/app-lista-compras/internal/domain"
)

var (
	ErrListNotFound  = errors.New("shopping list not found")
	ErrNoCurrentList = errors.New("no current list set")
)

// ListRepository is the persistence boundary for shopping lists: a
// key-value store over list ids plus the current-list session pointer.
// SaveList upserts by id and stamps the update timestamp; in-memory
// edits carry stale timestamps until saved.
type ListRepository interface {
	GetAllLists(ctx context.Context) ([]*domain.ShoppingList, error)
	GetList(ctx context.Context, id string) (*domain.ShoppingList, error)
	SaveList(ctx context.Context, list *domain.ShoppingList) error
	DeleteList(ctx context.Context, id string) error
	GetCurrentListID(ctx context.Context) (string, error)
	SetCurrentListID(ctx context.Context, id string) error
}
