package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Lookup outcomes.
const (
	OutcomeFound       = "found"
	OutcomeNotFound    = "not_found"
	OutcomeInvalidName = "invalid_name"
	OutcomeError       = "error"
)

// Metrics holds all Prometheus metrics for the service. Every method is safe
// to call on a nil *Metrics so components can run without instrumentation.
type Metrics struct {
	Lookups           *prometheus.CounterVec
	LookupDuration    prometheus.Histogram
	FieldsRedacted    *prometheus.CounterVec
	RedactionFailures prometheus.Counter
	PolicyReloads     *prometheus.CounterVec
	PolicyLoaded      prometheus.Gauge
	PolicyModelTypes  prometheus.Gauge
	CacheRequests     *prometheus.CounterVec
	RateLimited       prometheus.Counter
}

// New creates and registers all metrics with reg. Pass
// prometheus.DefaultRegisterer in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Lookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rdap_domain_lookups_total",
			Help: "Domain lookups by outcome",
		}, []string{"outcome"}),
		LookupDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "rdap_domain_lookup_duration_seconds",
			Help:    "Duration of domain assembly including nested collection fetches",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		FieldsRedacted: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rdap_fields_redacted_total",
			Help: "Fields removed by the privacy policy, by model type",
		}, []string{"model_type"}),
		RedactionFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "rdap_redaction_failures_total",
			Help: "Redaction passes aborted by a depth or field fault",
		}),
		PolicyReloads: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rdap_policy_reloads_total",
			Help: "Policy load attempts by result",
		}, []string{"result"}),
		PolicyLoaded: f.NewGauge(prometheus.GaugeOpts{
			Name: "rdap_policy_loaded",
			Help: "1 when a policy snapshot is installed, 0 otherwise",
		}),
		PolicyModelTypes: f.NewGauge(prometheus.GaugeOpts{
			Name: "rdap_policy_model_types",
			Help: "Model types with at least one hidden field in the installed policy",
		}),
		CacheRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rdap_domain_cache_requests_total",
			Help: "Aggregate cache lookups by result",
		}, []string{"result"}),
		RateLimited: f.NewCounter(prometheus.CounterOpts{
			Name: "rdap_rate_limited_total",
			Help: "Lookups rejected because the client exceeded its rate limit",
		}),
	}
}

// ObserveLookup records the outcome and duration of a lookup.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveLookup(outcome string, start time.Time) {
	if m == nil {
		return
	}
	m.Lookups.WithLabelValues(outcome).Inc()
	m.LookupDuration.Observe(time.Since(start).Seconds())
}

// FieldRedacted implements redact.Observer.
func (m *Metrics) FieldRedacted(modelType, _ string) {
	if m == nil {
		return
	}
	m.FieldsRedacted.WithLabelValues(modelType).Inc()
}

func (m *Metrics) IncrementRedactionFailures() {
	if m == nil {
		return
	}
	m.RedactionFailures.Inc()
}

// PolicyInstalled records a successful load of a policy with modelTypes tags.
func (m *Metrics) PolicyInstalled(modelTypes int) {
	if m == nil {
		return
	}
	m.PolicyReloads.WithLabelValues("success").Inc()
	m.PolicyLoaded.Set(1)
	m.PolicyModelTypes.Set(float64(modelTypes))
}

func (m *Metrics) PolicyLoadFailed() {
	if m == nil {
		return
	}
	m.PolicyReloads.WithLabelValues("failure").Inc()
}

func (m *Metrics) PolicyCleared() {
	if m == nil {
		return
	}
	m.PolicyLoaded.Set(0)
	m.PolicyModelTypes.Set(0)
}

// RecordCache records a cache lookup; result is "hit", "miss" or "error".
func (m *Metrics) RecordCache(result string) {
	if m == nil {
		return
	}
	m.CacheRequests.WithLabelValues(result).Inc()
}

// RecordRateLimited implements ratelimit.Recorder.
func (m *Metrics) RecordRateLimited() {
	if m == nil {
		return
	}
	m.RateLimited.Inc()
}
