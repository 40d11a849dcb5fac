package cache

import (
	"context"
	"errors"
	"log/slog"

	"rdapd/internal/rdap/models"
	"rdapd/pkg/platform/circuit"
	"rdapd/pkg/platform/sentinel"
)

// Backend is the cache surface guarded by a breaker.
type Backend interface {
	Get(ctx context.Context, ldhName string) (*models.Domain, error)
	Set(ctx context.Context, ldhName string, domain *models.Domain) error
}

// GuardedCache stops calling a failing backend while its breaker is open.
// Rejected reads return sentinel.ErrUnavailable; rejected writes are dropped.
type GuardedCache struct {
	backend Backend
	breaker *circuit.Breaker
	logger  *slog.Logger
}

func NewGuardedCache(backend Backend, breaker *circuit.Breaker, logger *slog.Logger) *GuardedCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &GuardedCache{backend: backend, breaker: breaker, logger: logger}
}

func (c *GuardedCache) Get(ctx context.Context, ldhName string) (*models.Domain, error) {
	if !c.breaker.Allow() {
		return nil, sentinel.ErrUnavailable
	}
	d, err := c.backend.Get(ctx, ldhName)
	c.record(ctx, err)
	return d, err
}

func (c *GuardedCache) Set(ctx context.Context, ldhName string, domain *models.Domain) error {
	if !c.breaker.Allow() {
		return nil
	}
	err := c.backend.Set(ctx, ldhName, domain)
	c.record(ctx, err)
	return err
}

// A miss is a healthy answer.
func (c *GuardedCache) record(ctx context.Context, err error) {
	if err == nil || errors.Is(err, sentinel.ErrNotFound) {
		if _, change := c.breaker.RecordSuccess(); change.Closed {
			c.logger.InfoContext(ctx, "cache circuit closed", "breaker", c.breaker.Name())
		}
		return
	}
	if _, change := c.breaker.RecordFailure(); change.Opened {
		c.logger.WarnContext(ctx, "cache circuit opened", "breaker", c.breaker.Name(), "error", err)
	}
}
