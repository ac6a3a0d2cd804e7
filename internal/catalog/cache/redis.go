package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"slmarkets/internal/domain"
)

var ErrCacheMiss = errors.New("catalog cache miss")

// RedisCache holds catalog listings under a generation-versioned key prefix.
// Invalidation bumps the generation counter, orphaning every cached listing
// at once; the stale keys expire on their own TTL.
type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func NewRedisCache(client *redis.Client, baseTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:  client,
		baseTTL: baseTTL,
	}
}

const generationKey = "catalog:gen"

func (c *RedisCache) GetProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	key, err := c.productsKey(ctx, filter)
	if err != nil {
		return nil, err
	}

	var products []domain.Product
	if err := c.get(ctx, key, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *RedisCache) SetProducts(ctx context.Context, filter domain.ProductFilter, products []domain.Product) error {
	key, err := c.productsKey(ctx, filter)
	if err != nil {
		return err
	}
	return c.set(ctx, key, products)
}

func (c *RedisCache) GetCategories(ctx context.Context) ([]domain.Category, error) {
	key, err := c.versionedKey(ctx, "categories")
	if err != nil {
		return nil, err
	}

	var categories []domain.Category
	if err := c.get(ctx, key, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *RedisCache) SetCategories(ctx context.Context, categories []domain.Category) error {
	key, err := c.versionedKey(ctx, "categories")
	if err != nil {
		return err
	}
	return c.set(ctx, key, categories)
}

func (c *RedisCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		return fmt.Errorf("bumping catalog generation: %w", err)
	}
	return nil
}

func (c *RedisCache) get(ctx context.Context, key string, out interface{}) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("redis get failed: %w", err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("unmarshal cached listing failed: %w", err)
	}
	return nil
}

func (c *RedisCache) set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal listing failed: %w", err)
	}

	// Jitter spreads expiry so a busy catalog does not refill every key in
	// the same instant.
	ttl := c.baseTTL + time.Duration(rand.Intn(60))*time.Second
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *RedisCache) productsKey(ctx context.Context, filter domain.ProductFilter) (string, error) {
	return c.versionedKey(ctx, fmt.Sprintf("products:%d:%s:%s",
		filter.CategoryID, filter.Condition, filter.Search))
}

func (c *RedisCache) versionedKey(ctx context.Context, suffix string) (string, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("reading catalog generation: %w", err)
	}
	return fmt.Sprintf("catalog:v%d:%s", gen, suffix), nil
}
