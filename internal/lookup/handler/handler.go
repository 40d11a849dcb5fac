package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"rdapd/internal/domainname"
	"rdapd/internal/lookup/service"
	"rdapd/internal/policy"
	"rdapd/internal/rdap/models"
	"rdapd/internal/redact"
	dErrors "rdapd/pkg/domain-errors"
	"rdapd/pkg/platform/audit"
	"rdapd/pkg/platform/httputil"
	"rdapd/pkg/platform/middleware/admin"
	"rdapd/pkg/platform/sentinel"
	"rdapd/pkg/requestcontext"
)

// ContentTypeRDAP is the media type of every /domain response, errors included.
const ContentTypeRDAP = "application/rdap+json"

// Service defines the lookup operations the handler depends on.
type Service interface {
	LookupDomain(ctx context.Context, rawName string) (*models.Domain, error)
	ApplyPolicy(ctx context.Context, record redact.Node) error
	ReloadPolicy(ctx context.Context) error
	UnloadPolicy(ctx context.Context)
	CurrentPolicy() *policy.Snapshot
}

// Auditor records policy administration.
type Auditor interface {
	Emit(ctx context.Context, event audit.Event) error
	Recent(ctx context.Context, limit int) ([]audit.Event, error)
}

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 500
)

// Handler wires the RDAP query path and the policy admin endpoints to the
// lookup service.
type Handler struct {
	service    Service
	logger     *slog.Logger
	adminToken string
	auditor    Auditor
}

type Option func(*Handler)

func WithAuditor(a Auditor) Option {
	return func(h *Handler) {
		h.auditor = a
	}
}

// New constructs a handler. An empty adminToken rejects every admin call.
func New(service Service, logger *slog.Logger, adminToken string, opts ...Option) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{
		service:    service,
		logger:     logger,
		adminToken: adminToken,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the query and admin endpoints on the router. lookup
// middleware, such as a rate limiter, wraps only the query endpoint.
func (h *Handler) Register(r chi.Router, lookup ...func(http.Handler) http.Handler) {
	r.With(lookup...).Get("/domain/{name}", h.handleDomain)
	r.Route("/admin/policy", func(r chi.Router) {
		r.Use(admin.RequireAdminToken(h.adminToken, h.logger))
		r.Get("/", h.handleShowPolicy)
		r.Delete("/", h.handleUnloadPolicy)
		r.Post("/reload", h.handleReloadPolicy)
		r.Get("/audit", h.handleListAudit)
	})
}

func (h *Handler) handleDomain(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	name := chi.URLParam(r, "name")
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}

	domain, err := h.service.LookupDomain(ctx, name)
	if err != nil {
		h.writeLookupError(w, r, name, err)
		return
	}

	if err := h.service.ApplyPolicy(ctx, domain); err != nil {
		h.logger.ErrorContext(ctx, "domain redaction failed",
			"request_id", requestID,
			"name", name,
			"error", err,
		)
		h.writeErrorMessage(w, r, http.StatusInternalServerError)
		return
	}

	h.logger.DebugContext(ctx, "domain served",
		"request_id", requestID,
		"name", domain.LdhName,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, ContentTypeRDAP, domain)
}

// StorageError is checked before NotFound because a storage fault may wrap a
// not-found cause from a nested fetch.
func (h *Handler) writeLookupError(w http.ResponseWriter, r *http.Request, name string, err error) {
	var storageErr *service.StorageError
	switch {
	case errors.Is(err, domainname.ErrInvalidName):
		h.writeErrorMessage(w, r, http.StatusBadRequest)
	case errors.As(err, &storageErr):
		h.logger.ErrorContext(r.Context(), "domain lookup storage fault",
			"request_id", requestcontext.RequestID(r.Context()),
			"name", name,
			"op", storageErr.Op,
			"error", err,
		)
		h.writeErrorMessage(w, r, http.StatusInternalServerError)
	case errors.Is(err, sentinel.ErrNotFound):
		h.writeErrorMessage(w, r, http.StatusNotFound)
	default:
		h.logger.ErrorContext(r.Context(), "domain lookup failed",
			"request_id", requestcontext.RequestID(r.Context()),
			"name", name,
			"error", err,
		)
		h.writeErrorMessage(w, r, http.StatusInternalServerError)
	}
}

// writeErrorMessage renders an RDAP error body, redacted like any other
// record. When the error body itself cannot be redacted the plain internal
// error is written instead.
func (h *Handler) writeErrorMessage(w http.ResponseWriter, r *http.Request, status int) {
	msg := NewErrorMessage(status)
	if err := h.service.ApplyPolicy(r.Context(), msg); err != nil {
		h.logger.ErrorContext(r.Context(), "error message redaction failed",
			"request_id", requestcontext.RequestID(r.Context()),
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "redaction failed"))
		return
	}
	httputil.WriteJSON(w, status, ContentTypeRDAP, msg)
}

// HandleRateLimited writes the RDAP error body for a query rejected by the
// rate limiter.
func (h *Handler) HandleRateLimited(w http.ResponseWriter, r *http.Request) {
	h.writeErrorMessage(w, r, http.StatusTooManyRequests)
}

func (h *Handler) handleShowPolicy(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, "", FromSnapshot(h.service.CurrentPolicy()))
}

func (h *Handler) handleReloadPolicy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	if err := h.service.ReloadPolicy(ctx); err != nil {
		h.logger.ErrorContext(ctx, "policy reload failed",
			"request_id", requestID,
			"error", err,
		)
		h.recordAudit(ctx, audit.ActionPolicyReloadFailed, err.Error())
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeUnavailable, "policy store unavailable"))
		return
	}

	resp := FromSnapshot(h.service.CurrentPolicy())
	h.logger.InfoContext(ctx, "policy reloaded",
		"request_id", requestID,
		"model_types", len(resp.Policy),
	)
	h.recordAudit(ctx, audit.ActionPolicyReloaded, strconv.Itoa(len(resp.Policy))+" model types")
	httputil.WriteJSON(w, http.StatusOK, "", resp)
}

func (h *Handler) handleUnloadPolicy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.service.UnloadPolicy(ctx)
	h.logger.InfoContext(ctx, "policy unloaded", "request_id", requestcontext.RequestID(ctx))
	h.recordAudit(ctx, audit.ActionPolicyUnloaded, "")
	w.WriteHeader(http.StatusNoContent)
}

// handleListAudit returns the most recent policy administration events,
// newest first. ?limit= caps the count.
func (h *Handler) handleListAudit(w http.ResponseWriter, r *http.Request) {
	limit := defaultAuditLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxAuditLimit {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest,
				"limit must be between 1 and "+strconv.Itoa(maxAuditLimit)))
			return
		}
		limit = n
	}

	resp := AuditResponse{Events: []audit.Event{}}
	if h.auditor != nil {
		events, err := h.auditor.Recent(r.Context(), limit)
		if err != nil {
			h.logger.ErrorContext(r.Context(), "listing audit events failed",
				"request_id", requestcontext.RequestID(r.Context()),
				"error", err,
			)
			httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeUnavailable, "audit store unavailable"))
			return
		}
		if events != nil {
			resp.Events = events
		}
	}
	httputil.WriteJSON(w, http.StatusOK, "", resp)
}

// recordAudit records an admin action. The action has already taken effect,
// so a failed emit is logged and the response is unchanged.
func (h *Handler) recordAudit(ctx context.Context, action audit.Action, detail string) {
	if h.auditor == nil {
		return
	}
	if err := h.auditor.Emit(ctx, audit.Event{Action: action, Detail: detail}); err != nil {
		h.logger.DebugContext(ctx, "audit event not recorded",
			"request_id", requestcontext.RequestID(ctx),
			"action", action,
			"error", err,
		)
	}
}
