// Package cache holds assembled domain aggregates between lookups. Entries
// are stored before redaction so a policy change applies to cached results
// on the next request.
package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"rdapd/internal/rdap/models"
	"rdapd/pkg/platform/sentinel"
	"rdapd/pkg/requestcontext"
)

type cachedDomain struct {
	domain   *models.Domain
	storedAt time.Time
}

// InMemoryCache is a process-local cache with TTL expiration.
type InMemoryCache struct {
	mu       sync.RWMutex
	domains  map[string]cachedDomain
	cacheTTL time.Duration
}

// NewInMemoryCache creates a cache with the specified TTL.
func NewInMemoryCache(cacheTTL time.Duration) *InMemoryCache {
	return &InMemoryCache{
		domains:  make(map[string]cachedDomain),
		cacheTTL: cacheTTL,
	}
}

// Get returns a copy of the cached domain, or sentinel.ErrNotFound if the
// entry is missing or older than the TTL.
func (c *InMemoryCache) Get(ctx context.Context, ldhName string) (*models.Domain, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if cached, ok := c.domains[strings.ToLower(ldhName)]; ok {
		if requestcontext.Now(ctx).Sub(cached.storedAt) < c.cacheTTL {
			return cached.domain.Clone(), nil
		}
	}
	return nil, sentinel.ErrNotFound
}

// Set stores a copy of domain. A nil domain is a no-op.
func (c *InMemoryCache) Set(ctx context.Context, ldhName string, domain *models.Domain) error {
	if domain == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.domains[strings.ToLower(ldhName)] = cachedDomain{domain: domain.Clone(), storedAt: requestcontext.Now(ctx)}
	return nil
}

func (c *InMemoryCache) Invalidate(_ context.Context, ldhName string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.domains, strings.ToLower(ldhName))
	return nil
}
