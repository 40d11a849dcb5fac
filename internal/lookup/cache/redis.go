package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"rdapd/internal/rdap/models"
	"rdapd/pkg/platform/sentinel"
)

// DefaultKeyPrefix namespaces cached aggregates.
const DefaultKeyPrefix = "rdap:domain:"

// RedisCache stores assembled, unredacted domains as JSON with a TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisCache returns a cache with the given TTL. A zero TTL keeps entries
// until they are evicted by Redis.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl, prefix: DefaultKeyPrefix}
}

func (c *RedisCache) key(ldhName string) string {
	return c.prefix + strings.ToLower(ldhName)
}

// Get returns sentinel.ErrNotFound on a miss.
func (c *RedisCache) Get(ctx context.Context, ldhName string) (*models.Domain, error) {
	raw, err := c.client.Get(ctx, c.key(ldhName)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", ldhName, err)
	}
	var d models.Domain
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("decode cached domain %s: %w", ldhName, err)
	}
	return &d, nil
}

func (c *RedisCache) Set(ctx context.Context, ldhName string, domain *models.Domain) error {
	if domain == nil {
		return nil
	}
	raw, err := json.Marshal(domain)
	if err != nil {
		return fmt.Errorf("encode domain %s: %w", ldhName, err)
	}
	if err := c.client.Set(ctx, c.key(ldhName), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", ldhName, err)
	}
	return nil
}

// Invalidate drops a single cached name.
func (c *RedisCache) Invalidate(ctx context.Context, ldhName string) error {
	return c.client.Del(ctx, c.key(ldhName)).Err()
}
