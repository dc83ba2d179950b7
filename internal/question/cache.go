package question

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultCacheTTL  = 5 * time.Minute
	categoryCacheKey = "trivia:categories"
)

// CategoryCache stores the category list, which changes far less often than it is read.
type CategoryCache interface {
	Get(ctx context.Context) ([]Category, bool, error)
	Set(ctx context.Context, categories []Category) error
}

// Cache is the Redis-backed CategoryCache.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ CategoryCache = (*Cache)(nil)

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) Get(ctx context.Context) ([]Category, bool, error) {
	data, err := c.client.Get(ctx, categoryCacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var categories []Category
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, false, err
	}
	return categories, true, nil
}

func (c *Cache) Set(ctx context.Context, categories []Category) error {
	data, err := json.Marshal(categories)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, categoryCacheKey, data, c.ttl).Err()
}

type noCache struct{}

func (noCache) Get(context.Context) ([]Category, bool, error) { return nil, false, nil }
func (noCache) Set(context.Context, []Category) error          { return nil }
