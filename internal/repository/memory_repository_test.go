package repository

import (
	"context"
	"testing"
	"time"

	"github.com/samirnagib/app-lista-compras/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_SaveAndGet(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	list := &domain.ShoppingList{
		ID:     "l1",
		Name:   "Compras do mês",
		Budget: decimal.NewFromInt(500),
		Products: []domain.Product{
			{ID: "p1", Name: "Arroz", Quantity: 2, UnitPrice: decimal.NewFromFloat(25.90)},
		},
	}
	require.NoError(t, repo.SaveList(ctx, list))

	got, err := repo.GetList(ctx, "l1")
	require.NoError(t, err)
	assert.Equal(t, "Compras do mês", got.Name)
	require.Len(t, got.Products, 1)
	assert.True(t, got.Products[0].UnitPrice.Equal(decimal.NewFromFloat(25.90)))
}

func TestMemoryRepository_GetList_NotFound(t *testing.T) {
	repo := NewMemoryRepository()

	_, err := repo.GetList(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrListNotFound)
}

func TestMemoryRepository_SaveStampsTimestamps(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	list := &domain.ShoppingList{ID: "l1", Name: "Feira"}
	require.NoError(t, repo.SaveList(ctx, list))
	assert.False(t, list.CreatedAt.IsZero())
	assert.False(t, list.UpdatedAt.IsZero())

	created := list.CreatedAt
	firstUpdate := list.UpdatedAt
	time.Sleep(5 * time.Millisecond)

	require.NoError(t, repo.SaveList(ctx, list))
	assert.Equal(t, created, list.CreatedAt)
	assert.True(t, list.UpdatedAt.After(firstUpdate))
}

func TestMemoryRepository_GetAllLists_SortedByCreation(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	older := &domain.ShoppingList{ID: "old", CreatedAt: time.Now().Add(-time.Hour)}
	newer := &domain.ShoppingList{ID: "new"}
	require.NoError(t, repo.SaveList(ctx, newer))
	require.NoError(t, repo.SaveList(ctx, older))

	lists, err := repo.GetAllLists(ctx)
	require.NoError(t, err)
	require.Len(t, lists, 2)
	assert.Equal(t, "old", lists[0].ID)
	assert.Equal(t, "new", lists[1].ID)
}

func TestMemoryRepository_Delete(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.SaveList(ctx, &domain.ShoppingList{ID: "l1"}))
	require.NoError(t, repo.SetCurrentListID(ctx, "l1"))

	require.NoError(t, repo.DeleteList(ctx, "l1"))
	assert.ErrorIs(t, repo.DeleteList(ctx, "l1"), ErrListNotFound)

	// Current pointer must not dangle after the delete.
	_, err := repo.GetCurrentListID(ctx)
	assert.ErrorIs(t, err, ErrNoCurrentList)
}

func TestMemoryRepository_CurrentListID(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	_, err := repo.GetCurrentListID(ctx)
	assert.ErrorIs(t, err, ErrNoCurrentList)

	require.NoError(t, repo.SetCurrentListID(ctx, "l1"))
	id, err := repo.GetCurrentListID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "l1", id)
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	list := &domain.ShoppingList{
		ID:       "l1",
		Products: []domain.Product{{ID: "p1", Name: "Arroz"}},
	}
	require.NoError(t, repo.SaveList(ctx, list))

	got, err := repo.GetList(ctx, "l1")
	require.NoError(t, err)
	got.Products[0].Name = "mutated"

	again, err := repo.GetList(ctx, "l1")
	require.NoError(t, err)
	assert.Equal(t, "Arroz", again.Products[0].Name)
}
