package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samirnagib/app-lista-compras/internal/cache"
	"github.com/samirnagib/app-lista-compras/internal/domain"
	"github.com/samirnagib/app-lista-compras/internal/repository"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

// ListService owns shopping-list CRUD and budget operations. The cache
// is optional; a nil cache degrades to repository-only reads.
type ListService struct {
	repo  repository.ListRepository
	cache cache.ListCache
	sfg   singleflight.Group // Prevents cache stampede
}

func NewListService(repo repository.ListRepository, cache cache.ListCache) *ListService {
	return &ListService{
		repo:  repo,
		cache: cache,
	}
}

func (s *ListService) GetList(ctx context.Context, listID string) (*domain.ShoppingList, error) {
	// Use singleflight to prevent multiple concurrent cache misses for same key
	v, err, _ := s.sfg.Do(listID, func() (interface{}, error) {
		if s.cache != nil {
			list, err := s.cache.Get(ctx, listID)
			if err == nil {
				return list, nil // list is in cache
			}
			if !errors.Is(err, cache.ErrCacheMiss) {
				log.Printf("cache get error: %v", err) // log cache error but continue
			}
		}

		list, errGet := s.repo.GetList(ctx, listID)
		if errGet != nil {
			return nil, errGet
		}

		if s.cache != nil {
			go func() {
				if errSet := s.cache.Set(context.Background(), listID, list); errSet != nil {
					log.Printf("cache set error: %v", errSet)
				}
			}()
		}

		return list, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.ShoppingList), nil
}

func (s *ListService) GetAllLists(ctx context.Context) ([]*domain.ShoppingList, error) {
	return s.repo.GetAllLists(ctx)
}

// CreateList makes a fresh empty list, persists it and makes it the
// current one.
func (s *ListService) CreateList(ctx context.Context, name string) (*domain.ShoppingList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyListName
	}

	list := &domain.ShoppingList{
		ID:     uuid.New().String(),
		Name:   name,
		Budget: decimal.Zero,
	}
	if err := s.repo.SaveList(ctx, list); err != nil {
		return nil, err
	}
	if err := s.repo.SetCurrentListID(ctx, list.ID); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *ListService) RenameList(ctx context.Context, listID, name string) (*domain.ShoppingList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyListName
	}
	return s.mutate(ctx, listID, func(list *domain.ShoppingList) error {
		list.Name = name
		return nil
	})
}

func (s *ListService) DeleteList(ctx context.Context, listID string) error {
	if err := s.repo.DeleteList(ctx, listID); err != nil {
		return err
	}
	s.invalidateCache(listID)
	return nil
}

// DuplicateList copies a list into a new one: fresh product ids,
// checked flags reset, budget carried over. The copy becomes current.
func (s *ListService) DuplicateList(ctx context.Context, listID string) (*domain.ShoppingList, error) {
	source, err := s.repo.GetList(ctx, listID)
	if err != nil {
		return nil, err
	}

	clone := &domain.ShoppingList{
		ID:       uuid.New().String(),
		Name:     source.Name + " (cópia)",
		Budget:   source.Budget,
		Products: make([]domain.Product, 0, len(source.Products)),
	}
	for _, p := range source.Products {
		p.ID = uuid.New().String()
		p.Checked = false
		clone.Products = append(clone.Products, p)
	}

	if err := s.repo.SaveList(ctx, clone); err != nil {
		return nil, err
	}
	if err := s.repo.SetCurrentListID(ctx, clone.ID); err != nil {
		return nil, err
	}
	return clone, nil
}

// AddProduct appends a product to the list, assigning it a fresh id.
func (s *ListService) AddProduct(ctx context.Context, listID string, product domain.Product) (*domain.ShoppingList, error) {
	product.ID = uuid.New().String()
	return s.mutate(ctx, listID, func(list *domain.ShoppingList) error {
		list.Products = append(list.Products, product)
		return nil
	})
}

// UpdateProduct replaces the whole product record in place. Callers
// supply every field; there is no partial update.
func (s *ListService) UpdateProduct(ctx context.Context, listID string, product domain.Product) (*domain.ShoppingList, error) {
	return s.mutate(ctx, listID, func(list *domain.ShoppingList) error {
		i := list.FindProduct(product.ID)
		if i < 0 {
			return ErrProductNotFound
		}
		list.Products[i] = product
		return nil
	})
}

func (s *ListService) RemoveProduct(ctx context.Context, listID, productID string) (*domain.ShoppingList, error) {
	return s.mutate(ctx, listID, func(list *domain.ShoppingList) error {
		i := list.FindProduct(productID)
		if i < 0 {
			return ErrProductNotFound
		}
		list.Products = append(list.Products[:i], list.Products[i+1:]...)
		return nil
	})
}

// ToggleChecked flips the purchase-completion marker of one product.
func (s *ListService) ToggleChecked(ctx context.Context, listID, productID string) (*domain.ShoppingList, error) {
	return s.mutate(ctx, listID, func(list *domain.ShoppingList) error {
		i := list.FindProduct(productID)
		if i < 0 {
			return ErrProductNotFound
		}
		list.Products[i].Checked = !list.Products[i].Checked
		return nil
	})
}

func (s *ListService) SetBudget(ctx context.Context, listID string, budget decimal.Decimal) (*domain.ShoppingList, error) {
	return s.mutate(ctx, listID, func(list *domain.ShoppingList) error {
		list.Budget = budget
		return nil
	})
}

// SelectSupermarket records the store chosen after a comparison.
func (s *ListService) SelectSupermarket(ctx context.Context, listID, supermarketID string) (*domain.ShoppingList, error) {
	return s.mutate(ctx, listID, func(list *domain.ShoppingList) error {
		list.SupermarketID = supermarketID
		return nil
	})
}

// BudgetSummary computes the current spend position of a list.
func (s *ListService) BudgetSummary(ctx context.Context, listID string) (*domain.BudgetSummary, error) {
	list, err := s.GetList(ctx, listID)
	if err != nil {
		return nil, err
	}
	summary := domain.SummarizeBudget(list.Budget, list.Products)
	return &summary, nil
}

func (s *ListService) CurrentListID(ctx context.Context) (string, error) {
	return s.repo.GetCurrentListID(ctx)
}

func (s *ListService) SetCurrentListID(ctx context.Context, listID string) error {
	if _, err := s.repo.GetList(ctx, listID); err != nil {
		return err
	}
	return s.repo.SetCurrentListID(ctx, listID)
}

// mutate loads a list from the repository, applies fn, persists the
// result and invalidates the cache entry.
func (s *ListService) mutate(ctx context.Context, listID string, fn func(*domain.ShoppingList) error) (*domain.ShoppingList, error) {
	list, err := s.repo.GetList(ctx, listID)
	if err != nil {
		return nil, err
	}
	if err := fn(list); err != nil {
		return nil, err
	}
	if err := s.repo.SaveList(ctx, list); err != nil {
		log.Printf("repo save list error: %v", err)
		return nil, err
	}
	s.invalidateCache(listID)
	return list, nil
}

func (s *ListService) invalidateCache(listID string) {
	if s.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, listID); err != nil {
		log.Printf("cache invalidate error: %v", err)
	}
}
