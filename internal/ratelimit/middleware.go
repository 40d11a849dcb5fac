package ratelimit

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"rdapd/pkg/platform/httputil"
	"rdapd/pkg/requestcontext"
)

// Recorder receives one call per rejected request.
type Recorder interface {
	RecordRateLimited()
}

// Middleware limits requests per client address.
type Middleware struct {
	store    Store
	limit    int
	window   time.Duration
	logger   *slog.Logger
	recorder Recorder
	reject   http.Handler
}

type Option func(*Middleware)

func WithRecorder(r Recorder) Option {
	return func(m *Middleware) {
		m.recorder = r
	}
}

// WithRejectHandler replaces the default 429 body. Rate limit headers and
// Retry-After are already set when the handler runs.
func WithRejectHandler(h http.Handler) Option {
	return func(m *Middleware) {
		m.reject = h
	}
}

// New returns a middleware admitting limit requests per window for each
// client. A non-positive limit disables limiting.
func New(store Store, limit int, window time.Duration, logger *slog.Logger, opts ...Option) *Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Middleware{
		store:  store,
		limit:  limit,
		window: window,
		logger: logger,
		reject: http.HandlerFunc(writeRateLimitExceeded),
	}
	for _, opt := range opts {
		opt(m)
	}
	if !m.Enabled() {
		logger.Info("rate limiting disabled")
	}
	return m
}

func (m *Middleware) Enabled() bool {
	return m.store != nil && m.limit > 0
}

// Limit keys the window by the client address recorded by the request
// middleware. A store failure lets the request through.
func (m *Middleware) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		ip := requestcontext.ClientIP(ctx)

		result, err := m.store.Allow(ctx, "ip:"+ip, m.limit, m.window)
		if err != nil {
			m.logger.ErrorContext(ctx, "failed to check rate limit",
				"request_id", requestcontext.RequestID(ctx),
				"error", err,
			)
			next.ServeHTTP(w, r)
			return
		}

		addRateLimitHeaders(w, result)
		if !result.Allowed {
			if m.recorder != nil {
				m.recorder.RecordRateLimited()
			}
			m.logger.DebugContext(ctx, "rate limit exceeded",
				"request_id", requestcontext.RequestID(ctx),
				"client_ip", ip,
			)
			w.Header().Set("Retry-After", strconv.Itoa(result.RetryAfter))
			m.reject.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func addRateLimitHeaders(w http.ResponseWriter, result *Result) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
}

func writeRateLimitExceeded(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusTooManyRequests, "", map[string]string{
		"error":             "rate_limit_exceeded",
		"error_description": "Too many requests from this address. Please try again later.",
	})
}
