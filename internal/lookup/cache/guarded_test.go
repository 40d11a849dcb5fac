package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rdapd/internal/lookup/cache"
	"rdapd/internal/rdap/models"
	"rdapd/pkg/platform/circuit"
	"rdapd/pkg/platform/sentinel"
	"rdapd/pkg/testutil"
)

type flakyBackend struct {
	err   error
	calls int
}

func (f *flakyBackend) Get(context.Context, string) (*models.Domain, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return nil, sentinel.ErrNotFound
}

func (f *flakyBackend) Set(context.Context, string, *models.Domain) error {
	f.calls++
	return f.err
}

func TestGuardedCache(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	backend := &flakyBackend{err: errors.New("connection refused")}
	breaker := circuit.New("domain-cache",
		circuit.WithFailureThreshold(2),
		circuit.WithSuccessThreshold(1),
		circuit.WithCooldown(time.Minute),
		circuit.WithClock(func() time.Time { return now }),
	)
	c := cache.NewGuardedCache(backend, breaker, nil)
	ctx := context.Background()

	testutil.Given(t, "a backend failing below the threshold", func(t *testing.T) {
		_, err := c.Get(ctx, "cnnic.cn")
		require.EqualError(t, err, "connection refused")
		assert.False(t, breaker.IsOpen())
	})

	testutil.When(t, "failures reach the threshold", func(t *testing.T) {
		_ = c.Set(ctx, "cnnic.cn", &models.Domain{})

		testutil.Then(t, "the backend is skipped", func(t *testing.T) {
			assert.True(t, breaker.IsOpen())
			calls := backend.calls

			_, err := c.Get(ctx, "cnnic.cn")
			assert.ErrorIs(t, err, sentinel.ErrUnavailable)
			assert.NoError(t, c.Set(ctx, "cnnic.cn", &models.Domain{}))
			assert.Equal(t, calls, backend.calls)
		})
	})

	testutil.When(t, "the backend recovers and the cooldown passes", func(t *testing.T) {
		backend.err = nil
		now = now.Add(time.Minute)

		testutil.Then(t, "a probe miss closes the circuit", func(t *testing.T) {
			_, err := c.Get(ctx, "cnnic.cn")
			assert.ErrorIs(t, err, sentinel.ErrNotFound)
			assert.False(t, breaker.IsOpen())
		})
	})
}
