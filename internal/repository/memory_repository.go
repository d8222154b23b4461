package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/samirnagib/app-lista-compras/internal/domain"
)

// MemoryRepository keeps lists in process memory. It is the default
// backend when no Mongo URI is configured and the repository used by
// unit tests.
type MemoryRepository struct {
	mu            sync.RWMutex
	lists         map[string]*domain.ShoppingList
	currentListID string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		lists: make(map[string]*domain.ShoppingList),
	}
}

func (m *MemoryRepository) GetAllLists(_ context.Context) ([]*domain.ShoppingList, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*domain.ShoppingList, 0, len(m.lists))
	for _, list := range m.lists {
		result = append(result, copyList(list))
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (m *MemoryRepository) GetList(_ context.Context, id string) (*domain.ShoppingList, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list, ok := m.lists[id]
	if !ok {
		return nil, ErrListNotFound
	}
	return copyList(list), nil
}

func (m *MemoryRepository) SaveList(_ context.Context, list *domain.ShoppingList) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	if list.CreatedAt.IsZero() {
		list.CreatedAt = now
	}
	list.UpdatedAt = now

	m.lists[list.ID] = copyList(list)
	return nil
}

func (m *MemoryRepository) DeleteList(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.lists[id]; !ok {
		return ErrListNotFound
	}
	delete(m.lists, id)
	if m.currentListID == id {
		m.currentListID = ""
	}
	return nil
}

func (m *MemoryRepository) GetCurrentListID(_ context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.currentListID == "" {
		return "", ErrNoCurrentList
	}
	return m.currentListID, nil
}

func (m *MemoryRepository) SetCurrentListID(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.currentListID = id
	return nil
}

// copyList returns a deep enough copy that callers can't alias the
// stored products slice.
func copyList(list *domain.ShoppingList) *domain.ShoppingList {
	clone := *list
	clone.Products = make([]domain.Product, len(list.Products))
	copy(clone.Products, list.Products)
	return &clone
}
