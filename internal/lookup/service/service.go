// Package service resolves domain names to assembled RDAP aggregates and
// exposes the privacy policy lifecycle to callers.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"rdapd/internal/domainname"
	"rdapd/internal/platform/metrics"
	"rdapd/internal/policy"
	"rdapd/internal/rdap/models"
	"rdapd/internal/redact"
	"rdapd/pkg/platform/sentinel"
)

var tracer = otel.Tracer("rdapd/internal/lookup/service")

// Redactor applies the current policy to a record graph.
type Redactor interface {
	Apply(ctx context.Context, root redact.Node) error
}

// PolicyRegistry is the lifecycle surface of the policy registry.
type PolicyRegistry interface {
	Load(ctx context.Context) error
	Clear()
	Current() *policy.Snapshot
}

// Service composes name normalization, record assembly and redaction.
type Service struct {
	store        Store
	cache        Cache
	redactor     Redactor
	policies     PolicyRegistry
	publisher    PolicyPublisher
	queryTimeout time.Duration
	logger       *slog.Logger
	metrics      *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithCache puts c in front of the store. Cache faults are logged and the
// store is consulted instead.
func WithCache(c Cache) Option {
	return func(s *Service) {
		s.cache = c
	}
}

// WithPublisher announces reloads and clears to other instances.
func WithPublisher(p PolicyPublisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

// WithQueryTimeout bounds the storage work of a single lookup.
func WithQueryTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.queryTimeout = d
	}
}

// New constructs a Service.
func New(store Store, redactor Redactor, policies PolicyRegistry, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if redactor == nil {
		return nil, fmt.Errorf("redactor is required")
	}
	if policies == nil {
		return nil, fmt.Errorf("policy registry is required")
	}
	s := &Service{
		store:    store,
		redactor: redactor,
		policies: policies,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// LookupDomain normalizes rawName and assembles its aggregate. The result is
// unredacted and owned by the caller.
//
// It returns an error wrapping domainname.ErrInvalidName for malformed input,
// sentinel.ErrNotFound when nothing matches (including reverse names with the
// wrong label count), and a *StorageError for store faults.
func (s *Service) LookupDomain(ctx context.Context, rawName string) (*models.Domain, error) {
	start := time.Now()
	ctx, span := tracer.Start(ctx, "lookup.LookupDomain")
	defer span.End()

	name, err := domainname.Normalize(rawName)
	if err != nil {
		s.metrics.ObserveLookup(metrics.OutcomeInvalidName, start)
		s.logger.DebugContext(ctx, "invalid domain name", "name", rawName, "error", err)
		return nil, err
	}
	span.SetAttributes(
		attribute.String("rdap.ldh_name", name.ASCII),
		attribute.String("rdap.classification", name.Class.String()),
	)

	if name.Class == domainname.Invalid {
		s.metrics.ObserveLookup(metrics.OutcomeNotFound, start)
		s.logger.DebugContext(ctx, "domain not found", "name", name.ASCII, "classification", name.Class.String())
		return nil, sentinel.ErrNotFound
	}

	domain, err := s.find(ctx, DomainQuery{
		LdhName:     name.ASCII,
		UnicodeName: name.Unicode,
		Reverse:     name.IsReverse(),
	})
	switch {
	case err == nil:
		s.metrics.ObserveLookup(metrics.OutcomeFound, start)
		return domain, nil
	case errors.Is(err, sentinel.ErrNotFound):
		s.metrics.ObserveLookup(metrics.OutcomeNotFound, start)
		s.logger.DebugContext(ctx, "domain not found", "name", name.ASCII)
		return nil, err
	default:
		s.metrics.ObserveLookup(metrics.OutcomeError, start)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.ErrorContext(ctx, "domain lookup failed", "name", name.ASCII, "error", err)
		return nil, err
	}
}

func (s *Service) find(ctx context.Context, q DomainQuery) (*models.Domain, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, q.LdhName)
		switch {
		case err == nil:
			s.metrics.RecordCache("hit")
			return cached, nil
		case errors.Is(err, sentinel.ErrNotFound):
			s.metrics.RecordCache("miss")
		case errors.Is(err, sentinel.ErrUnavailable):
			s.metrics.RecordCache("bypass")
		default:
			s.metrics.RecordCache("error")
			s.logger.WarnContext(ctx, "domain cache read failed", "name", q.LdhName, "error", err)
		}
	}

	domain, err := s.assemble(ctx, q)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, q.LdhName, domain); err != nil {
			s.logger.WarnContext(ctx, "domain cache write failed", "name", q.LdhName, "error", err)
		}
	}
	return domain, nil
}

// ApplyPolicy redacts record in place under the policy currently in force. It
// accepts any record kind, not only domains.
func (s *Service) ApplyPolicy(ctx context.Context, record redact.Node) error {
	if err := s.redactor.Apply(ctx, record); err != nil {
		s.metrics.IncrementRedactionFailures()
		s.logger.ErrorContext(ctx, "redaction failed", "error", err)
		return fmt.Errorf("apply policy: %w", err)
	}
	return nil
}

// ReloadPolicy replaces the policy with the one in storage and announces the
// reload. A failed load keeps the previous policy.
func (s *Service) ReloadPolicy(ctx context.Context) error {
	if err := s.policies.Load(ctx); err != nil {
		return err
	}
	s.announce(ctx, policy.ActionReload)
	return nil
}

// UnloadPolicy clears the policy; lookups are then returned unredacted.
func (s *Service) UnloadPolicy(ctx context.Context) {
	s.policies.Clear()
	s.announce(ctx, policy.ActionClear)
}

// CurrentPolicy returns the snapshot in force, or nil.
func (s *Service) CurrentPolicy() *policy.Snapshot {
	return s.policies.Current()
}

func (s *Service) announce(ctx context.Context, action policy.Action) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, action); err != nil {
		s.logger.WarnContext(ctx, "policy announcement failed", "action", action, "error", err)
	}
}
