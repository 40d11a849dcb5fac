// Package policy holds the process-wide field visibility policy.
//
// The policy is an immutable Snapshot behind an atomic pointer. Load builds a
// complete new Snapshot before installing it, so a concurrent reader observes
// either the old policy or the new one, never a mix.
package policy

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"rdapd/internal/platform/metrics"
)

// Source is the policy-storage collaborator. LoadAll returns every model type
// tag with the field names hidden for it.
type Source interface {
	LoadAll(ctx context.Context) (map[string][]string, error)
}

// Registry installs, serves and clears policy snapshots.
type Registry struct {
	source  Source
	current atomic.Pointer[Snapshot]
	// writeMu orders Load and Clear against each other; readers never take it.
	writeMu sync.Mutex
	logger  *slog.Logger
	metrics *metrics.Metrics
	clock   func() time.Time
}

type Option func(*Registry)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Registry) {
		r.metrics = m
	}
}

// WithClock sets the clock used to stamp snapshots.
func WithClock(clock func() time.Time) Option {
	return func(r *Registry) {
		if clock != nil {
			r.clock = clock
		}
	}
}

// NewRegistry constructs an unloaded Registry.
func NewRegistry(source Source, opts ...Option) (*Registry, error) {
	if source == nil {
		return nil, fmt.Errorf("policy source is required")
	}
	r := &Registry{
		source: source,
		logger: slog.Default(),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Load fetches the full policy and installs it, replacing any previous one.
// On failure the previously installed snapshot, if any, stays in force.
func (r *Registry) Load(ctx context.Context) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	raw, err := r.source.LoadAll(ctx)
	if err != nil {
		r.metrics.PolicyLoadFailed()
		r.logger.ErrorContext(ctx, "policy load failed", "error", err)
		return fmt.Errorf("load policy: %w", err)
	}

	snap := NewSnapshot(raw, r.clock())
	r.current.Store(snap)
	r.metrics.PolicyInstalled(snap.Len())
	r.logger.InfoContext(ctx, "policy loaded", "model_types", snap.Len())
	return nil
}

// Current returns the installed snapshot, or nil when none is loaded.
func (r *Registry) Current() *Snapshot {
	return r.current.Load()
}

// Loaded reports whether a snapshot is installed.
func (r *Registry) Loaded() bool {
	return r.current.Load() != nil
}

// Clear uninstalls the current snapshot. Clearing an unloaded registry is a no-op.
func (r *Registry) Clear() {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	if prev := r.current.Swap(nil); prev != nil {
		r.metrics.PolicyCleared()
		r.logger.Info("policy cleared", "model_types", prev.Len())
	}
}
