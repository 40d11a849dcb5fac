package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"rdapd/internal/lookup/cache"
	"rdapd/internal/lookup/service"
	"rdapd/internal/lookup/store"
	"rdapd/internal/platform/config"
	"rdapd/internal/platform/database"
	"rdapd/internal/platform/metrics"
	platformredis "rdapd/internal/platform/redis"
	"rdapd/internal/policy"
	policystore "rdapd/internal/policy/store"
	"rdapd/internal/ratelimit"
	"rdapd/internal/redact"
	"rdapd/pkg/platform/audit"
	auditmemory "rdapd/pkg/platform/audit/store/memory"
	auditpostgres "rdapd/pkg/platform/audit/store/postgres"
	"rdapd/pkg/platform/circuit"
)

// app holds the wired dependencies shared by serve and the one-shot commands.
type app struct {
	cfg         *config.Config
	logger      *slog.Logger
	registry    *prometheus.Registry
	metrics     *metrics.Metrics
	db          *sql.DB
	redis       *platformredis.Client
	policies    *policy.Registry
	broadcaster *policy.Broadcaster
	service     *service.Service
	rateLimits  ratelimit.Store
	auditor     *audit.Publisher
}

func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	a := &app{cfg: cfg, logger: logger, registry: prometheus.NewRegistry()}
	if err := a.wire(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

// wire builds every dependency, closing what was opened when a later step fails.
func (a *app) wire(ctx context.Context) (err error) {
	cfg, logger := a.cfg, a.logger
	defer func() {
		if err != nil {
			a.close()
		}
	}()

	a.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	a.metrics = metrics.New(a.registry)

	if a.db, err = database.New(ctx, cfg.Database); err != nil {
		return err
	}
	if a.db != nil && cfg.Database.Migrate {
		if err = database.Migrate(ctx, a.db, logger); err != nil {
			return err
		}
	}

	var auditStore audit.Store = auditmemory.NewInMemoryStore()
	if a.db != nil {
		auditStore = auditpostgres.New(a.db)
	}
	a.auditor = audit.NewPublisher(auditStore, audit.WithLogger(logger))

	domains, err := a.openStore(ctx)
	if err != nil {
		return err
	}

	if a.redis, err = platformredis.New(ctx, cfg.Redis); err != nil {
		return err
	}

	source, err := policySource(cfg, a.db)
	if err != nil {
		return err
	}
	if a.policies, err = policy.NewRegistry(source, policy.WithLogger(logger), policy.WithMetrics(a.metrics)); err != nil {
		return err
	}

	engine, err := redact.New(a.policies,
		redact.WithMaxDepth(cfg.Lookup.MaxRedactionDepth),
		redact.WithObserver(a.metrics),
	)
	if err != nil {
		return err
	}

	opts := []service.Option{
		service.WithLogger(logger),
		service.WithMetrics(a.metrics),
		service.WithQueryTimeout(cfg.Lookup.QueryTimeout),
	}
	a.rateLimits = ratelimit.NewInMemoryStore()
	switch {
	case a.redis != nil:
		a.rateLimits = ratelimit.NewRedisStore(a.redis.Client)
		a.broadcaster = policy.NewBroadcaster(a.redis.Client, cfg.Policy.Channel, logger)
		opts = append(opts, service.WithPublisher(a.broadcaster))
		if cfg.Lookup.CacheTTL > 0 {
			redisCache := cache.NewRedisCache(a.redis.Client, cfg.Lookup.CacheTTL)
			breaker := circuit.New("domain-cache", circuit.WithCooldown(30*time.Second))
			opts = append(opts, service.WithCache(cache.NewGuardedCache(redisCache, breaker, logger)))
		}
	case cfg.Lookup.CacheTTL > 0:
		opts = append(opts, service.WithCache(cache.NewInMemoryCache(cfg.Lookup.CacheTTL)))
	}

	a.service, err = service.New(domains, engine, a.policies, opts...)
	return err
}

func (a *app) openStore(ctx context.Context) (service.Store, error) {
	if a.cfg.Lookup.Store == config.StorePostgres {
		return store.NewPostgresStore(a.db), nil
	}
	mem := store.NewInMemoryStore()
	if err := store.SeedSamples(ctx, mem); err != nil {
		return nil, fmt.Errorf("seed in-memory store: %w", err)
	}
	a.logger.InfoContext(ctx, "serving sample registrations from memory")
	return mem, nil
}

func policySource(cfg *config.Config, db *sql.DB) (policy.Source, error) {
	switch cfg.Policy.Source {
	case config.PolicySourcePostgres:
		if db == nil {
			return nil, errors.New("policy source postgres requires a database")
		}
		return policystore.NewPostgresSource(db), nil
	case config.PolicySourceFile:
		return policystore.NewFileSource(cfg.Policy.File), nil
	default:
		return policystore.NewStaticSource(nil), nil
	}
}

// loadPolicyOnStart installs the configured policy. A failed load is fatal.
func (a *app) loadPolicyOnStart(ctx context.Context) error {
	if a.cfg.Policy.Source == config.PolicySourceNone || !a.cfg.Policy.LoadOnStart {
		a.logger.InfoContext(ctx, "no policy loaded at startup", "source", a.cfg.Policy.Source)
		return nil
	}
	return a.policies.Load(ctx)
}

func (a *app) close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("closing redis", "error", err)
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("closing database", "error", err)
		}
	}
}
