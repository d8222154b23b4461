package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samirnagib/app-lista-compras/internal/domain"
)

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client:  client,
		baseTTL: 15 * time.Minute,
	}
}

type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func (r RedisCache) Get(ctx context.Context, listID string) (*domain.ShoppingList, error) {
	key := cacheKey(listID)

	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var list domain.ShoppingList
	if err2 := json.Unmarshal(data, &list); err2 != nil {
		return nil, fmt.Errorf("unmarshal list failed: %w", err2)
	}

	return &list, nil
}

func (r RedisCache) Set(ctx context.Context, listID string, list *domain.ShoppingList) error {
	key := cacheKey(listID)
	jsonList, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("marshal list failed: %w", err)
	}

	// Jitter spreads expirations of lists cached at the same time.
	jitter := time.Duration(rand.Intn(5)) * time.Minute
	ttl := r.baseTTL + jitter
	if err := r.client.Set(ctx, key, string(jsonList), ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r RedisCache) Delete(ctx context.Context, listID string) error {
	key := cacheKey(listID)
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}

	return nil
}

func cacheKey(listID string) string {
	return fmt.Sprintf("list:%s", listID)
}
