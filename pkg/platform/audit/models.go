// Package audit records administrative actions that change what the service
// discloses, so operators can tell when and by whom a privacy policy was
// changed.
package audit

import (
	"context"
	"time"
)

// Action names an audited operation.
type Action string

const (
	ActionPolicyReloaded     Action = "policy_reloaded"
	ActionPolicyReloadFailed Action = "policy_reload_failed"
	ActionPolicyUnloaded     Action = "policy_unloaded"
)

// Event is one audited action. Actor is the client address of the caller.
type Event struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Action    Action    `json:"action"`
	Actor     string    `json:"actor,omitempty"`
	RequestID string    `json:"requestId,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

// Store persists events and lists the most recent ones, newest first.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListRecent(ctx context.Context, limit int) ([]Event, error)
}
