package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rdapd/internal/lookup/handler"
	"rdapd/internal/platform/middleware"
	"rdapd/internal/ratelimit"
	"rdapd/pkg/platform/httputil"
	"rdapd/pkg/platform/middleware/request"
	"rdapd/pkg/platform/middleware/requesttime"
)

func newRouter(a *app) http.Handler {
	r := chi.NewRouter()
	r.Use(
		request.RequestID,
		request.ClientIP,
		requesttime.Middleware,
		request.Logger(a.logger),
		request.Recovery(a.logger),
		middleware.Trace,
	)

	r.Get("/healthz", a.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))

	h := handler.New(a.service, a.logger, a.cfg.Server.AdminToken, handler.WithAuditor(a.auditor))
	limiter := ratelimit.New(a.rateLimits, a.cfg.Lookup.RateLimit, a.cfg.Lookup.RateLimitWindow, a.logger,
		ratelimit.WithRecorder(a.metrics),
		ratelimit.WithRejectHandler(http.HandlerFunc(h.HandleRateLimited)),
	)
	h.Register(r, limiter.Limit)
	return r
}

type healthResponse struct {
	Status       string            `json:"status"`
	PolicyLoaded bool              `json:"policyLoaded"`
	Checks       map[string]string `json:"checks,omitempty"`
}

// handleHealth reports 503 when a configured backing service is unreachable.
func (a *app) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := healthResponse{Status: "ok", PolicyLoaded: a.policies.Loaded(), Checks: map[string]string{}}
	if a.db != nil {
		resp.Checks["database"] = checkResult(a.db.PingContext(ctx))
	}
	if a.redis != nil {
		resp.Checks["redis"] = checkResult(a.redis.Health(ctx))
	}

	status := http.StatusOK
	for _, result := range resp.Checks {
		if result != "ok" {
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
		}
	}
	httputil.WriteJSON(w, status, "", resp)
}

func checkResult(err error) string {
	if err != nil {
		return err.Error()
	}
	return "ok"
}
