//go:build integration

package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"rdapd/internal/ratelimit"
	"rdapd/pkg/requestcontext"
	"rdapd/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *ratelimit.RedisStore
	start time.Time
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.store = ratelimit.NewRedisStore(s.redis.Client)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
	s.start = time.Now().Truncate(time.Second)
}

func (s *RedisStoreSuite) at(offset time.Duration) context.Context {
	return requestcontext.WithTime(context.Background(), s.start.Add(offset))
}

func (s *RedisStoreSuite) TestAllowUpToLimit() {
	for i := range 3 {
		result, err := s.store.Allow(s.at(time.Duration(i)*time.Second), "ip:192.0.2.1", 3, time.Minute)
		s.Require().NoError(err)
		s.True(result.Allowed)
		s.Equal(2-i, result.Remaining)
	}

	result, err := s.store.Allow(s.at(10*time.Second), "ip:192.0.2.1", 3, time.Minute)
	s.Require().NoError(err)
	s.False(result.Allowed)
	s.Equal(50, result.RetryAfter)
	s.WithinDuration(s.start.Add(time.Minute), result.ResetAt, time.Millisecond)
}

func (s *RedisStoreSuite) TestDeniedRequestIsNotCounted() {
	for range 2 {
		_, err := s.store.Allow(s.at(0), "ip:192.0.2.2", 2, time.Minute)
		s.Require().NoError(err)
	}
	for range 3 {
		result, err := s.store.Allow(s.at(time.Second), "ip:192.0.2.2", 2, time.Minute)
		s.Require().NoError(err)
		s.False(result.Allowed)
	}

	key := ratelimit.DefaultKeyPrefix + "ip:192.0.2.2"
	keys, err := s.redis.Keys(context.Background(), ratelimit.DefaultKeyPrefix+"*")
	s.Require().NoError(err)
	s.Equal([]string{key}, keys)

	n, err := s.redis.Client.ZCard(context.Background(), key).Result()
	s.Require().NoError(err)
	s.EqualValues(2, n)
}

func (s *RedisStoreSuite) TestWindowSlides() {
	for range 2 {
		_, err := s.store.Allow(s.at(0), "ip:192.0.2.3", 2, time.Minute)
		s.Require().NoError(err)
	}

	result, err := s.store.Allow(s.at(time.Minute+time.Second), "ip:192.0.2.3", 2, time.Minute)
	s.Require().NoError(err)
	s.True(result.Allowed)
	s.Equal(1, result.Remaining)
}
