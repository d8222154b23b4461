package service

import (
	"context"
	"sync"
	"testing"

	"github.com/samirnagib/app-lista-compras/internal/cache"
	"github.com/samirnagib/app-lista-compras/internal/domain"
	"github.com/samirnagib/app-lista-compras/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCache struct {
	m    sync.RWMutex
	list *domain.ShoppingList
	err  error
}

func (m *mockCache) Get(context.Context, string) (*domain.ShoppingList, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	if m.list == nil {
		return nil, cache.ErrCacheMiss
	}
	return m.list, nil
}

func (m *mockCache) Set(_ context.Context, _ string, list *domain.ShoppingList) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.list = list
	return m.err
}

func (m *mockCache) Delete(context.Context, string) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.list = nil
	return m.err
}

func newTestService(t *testing.T) (*ListService, *repository.MemoryRepository, *mockCache) {
	t.Helper()
	repo := repository.NewMemoryRepository()
	mc := &mockCache{}
	return NewListService(repo, mc), repo, mc
}

func seedList(t *testing.T, s *ListService) *domain.ShoppingList {
	t.Helper()
	list, err := s.CreateList(context.Background(), "Feira")
	require.NoError(t, err)
	return list
}

func TestCreateList(t *testing.T) {
	s, repo, _ := newTestService(t)
	ctx := context.Background()

	list, err := s.CreateList(ctx, "Compras do mês")
	require.NoError(t, err)
	assert.NotEmpty(t, list.ID)
	assert.True(t, list.Budget.IsZero())
	assert.False(t, list.CreatedAt.IsZero())

	// The new list becomes the current one.
	current, err := repo.GetCurrentListID(ctx)
	require.NoError(t, err)
	assert.Equal(t, list.ID, current)
}

func TestCreateList_EmptyName(t *testing.T) {
	s, _, _ := newTestService(t)

	_, err := s.CreateList(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyListName)
}

func TestGetList_CacheHit(t *testing.T) {
	s, _, mc := newTestService(t)
	cached := &domain.ShoppingList{ID: "cached", Name: "do cache"}
	mc.list = cached

	got, err := s.GetList(context.Background(), "cached")
	require.NoError(t, err)
	assert.Equal(t, "do cache", got.Name)
}

func TestGetList_CacheMissFallsThrough(t *testing.T) {
	s, _, _ := newTestService(t)
	list := seedList(t, s)

	got, err := s.GetList(context.Background(), list.ID)
	require.NoError(t, err)
	assert.Equal(t, list.ID, got.ID)
}

func TestGetList_NotFound(t *testing.T) {
	s, _, _ := newTestService(t)

	_, err := s.GetList(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrListNotFound)
}

func TestAddProduct(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()
	list := seedList(t, s)

	updated, err := s.AddProduct(ctx, list.ID, domain.Product{
		Name:      "Leite Integral",
		Quantity:  2,
		UnitPrice: decimal.NewFromFloat(4.79),
	})
	require.NoError(t, err)
	require.Len(t, updated.Products, 1)
	assert.NotEmpty(t, updated.Products[0].ID)

	// Persisted, not only returned.
	got, err := s.GetList(ctx, list.ID)
	require.NoError(t, err)
	assert.Len(t, got.Products, 1)
}

func TestUpdateProduct_ReplacesWholeRecord(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()
	list := seedList(t, s)

	withProduct, err := s.AddProduct(ctx, list.ID, domain.Product{Name: "Arroz", Quantity: 1, UnitPrice: decimal.NewFromInt(20)})
	require.NoError(t, err)
	p := withProduct.Products[0]

	p.Name = "Arroz Integral"
	p.Quantity = 3
	updated, err := s.UpdateProduct(ctx, list.ID, p)
	require.NoError(t, err)
	assert.Equal(t, "Arroz Integral", updated.Products[0].Name)
	assert.Equal(t, 3, updated.Products[0].Quantity)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	s, _, _ := newTestService(t)
	list := seedList(t, s)

	_, err := s.UpdateProduct(context.Background(), list.ID, domain.Product{ID: "ghost"})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestRemoveProduct(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()
	list := seedList(t, s)

	withProduct, err := s.AddProduct(ctx, list.ID, domain.Product{Name: "Arroz"})
	require.NoError(t, err)

	updated, err := s.RemoveProduct(ctx, list.ID, withProduct.Products[0].ID)
	require.NoError(t, err)
	assert.Empty(t, updated.Products)

	_, err = s.RemoveProduct(ctx, list.ID, "ghost")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestToggleChecked(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()
	list := seedList(t, s)

	withProduct, err := s.AddProduct(ctx, list.ID, domain.Product{Name: "Arroz"})
	require.NoError(t, err)
	pid := withProduct.Products[0].ID

	updated, err := s.ToggleChecked(ctx, list.ID, pid)
	require.NoError(t, err)
	assert.True(t, updated.Products[0].Checked)

	updated, err = s.ToggleChecked(ctx, list.ID, pid)
	require.NoError(t, err)
	assert.False(t, updated.Products[0].Checked)
}

func TestSetBudgetAndSummary(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()
	list := seedList(t, s)

	_, err := s.AddProduct(ctx, list.ID, domain.Product{Name: "Arroz", Quantity: 2, UnitPrice: decimal.NewFromInt(30)})
	require.NoError(t, err)
	_, err = s.SetBudget(ctx, list.ID, decimal.NewFromInt(100))
	require.NoError(t, err)

	summary, err := s.BudgetSummary(ctx, list.ID)
	require.NoError(t, err)
	assert.True(t, summary.Spent.Equal(decimal.NewFromInt(60)))
	assert.True(t, summary.Remaining.Equal(decimal.NewFromInt(40)))
	assert.False(t, summary.OverBudget)
}

func TestSelectSupermarket(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()
	list := seedList(t, s)

	updated, err := s.SelectSupermarket(ctx, list.ID, "2")
	require.NoError(t, err)
	assert.Equal(t, "2", updated.SupermarketID)
}

func TestDuplicateList(t *testing.T) {
	s, repo, _ := newTestService(t)
	ctx := context.Background()
	list := seedList(t, s)

	_, err := s.SetBudget(ctx, list.ID, decimal.NewFromInt(300))
	require.NoError(t, err)
	withProduct, err := s.AddProduct(ctx, list.ID, domain.Product{Name: "Arroz", Quantity: 1, UnitPrice: decimal.NewFromInt(25)})
	require.NoError(t, err)
	_, err = s.ToggleChecked(ctx, list.ID, withProduct.Products[0].ID)
	require.NoError(t, err)

	clone, err := s.DuplicateList(ctx, list.ID)
	require.NoError(t, err)

	assert.NotEqual(t, list.ID, clone.ID)
	assert.Equal(t, "Feira (cópia)", clone.Name)
	assert.True(t, clone.Budget.Equal(decimal.NewFromInt(300)))
	require.Len(t, clone.Products, 1)
	assert.NotEqual(t, withProduct.Products[0].ID, clone.Products[0].ID)
	assert.False(t, clone.Products[0].Checked, "checked flags reset on duplicate")

	current, err := repo.GetCurrentListID(ctx)
	require.NoError(t, err)
	assert.Equal(t, clone.ID, current)
}

func TestDeleteList_InvalidatesCache(t *testing.T) {
	s, _, mc := newTestService(t)
	ctx := context.Background()
	list := seedList(t, s)
	mc.list = list

	require.NoError(t, s.DeleteList(ctx, list.ID))
	assert.Nil(t, mc.list)

	assert.ErrorIs(t, s.DeleteList(ctx, list.ID), repository.ErrListNotFound)
}

func TestSetCurrentListID_RequiresExistingList(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()
	list := seedList(t, s)

	assert.ErrorIs(t, s.SetCurrentListID(ctx, "ghost"), repository.ErrListNotFound)
	require.NoError(t, s.SetCurrentListID(ctx, list.ID))

	id, err := s.CurrentListID(ctx)
	require.NoError(t, err)
	assert.Equal(t, list.ID, id)
}

func TestNilCache_Works(t *testing.T) {
	repo := repository.NewMemoryRepository()
	s := NewListService(repo, nil)
	ctx := context.Background()

	list, err := s.CreateList(ctx, "sem cache")
	require.NoError(t, err)

	got, err := s.GetList(ctx, list.ID)
	require.NoError(t, err)
	assert.Equal(t, list.ID, got.ID)

	require.NoError(t, s.DeleteList(ctx, list.ID))
}
