package policy

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultChannel is the Redis channel policy changes are announced on.
const DefaultChannel = "rdap:policy"

// Action is a policy lifecycle change announced to other instances.
type Action string

const (
	ActionReload Action = "reload"
	ActionClear  Action = "clear"
)

type announcement struct {
	Action Action `json:"action"`
	Origin string `json:"origin"`
}

// Broadcaster announces reloads and clears so every instance sharing the
// Redis channel converges on the same policy. Messages carry the origin
// instance ID; an instance ignores its own announcements because it has
// already applied them locally.
type Broadcaster struct {
	client  *redis.Client
	channel string
	origin  string
	logger  *slog.Logger
}

// NewBroadcaster creates a Broadcaster with a fresh instance ID.
func NewBroadcaster(client *redis.Client, channel string, logger *slog.Logger) *Broadcaster {
	if channel == "" {
		channel = DefaultChannel
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Broadcaster{
		client:  client,
		channel: channel,
		origin:  uuid.NewString(),
		logger:  logger,
	}
}

// Origin is this instance's ID.
func (b *Broadcaster) Origin() string {
	return b.origin
}

// Publish announces action to the other instances.
func (b *Broadcaster) Publish(ctx context.Context, action Action) error {
	payload, err := json.Marshal(announcement{Action: action, Origin: b.origin})
	if err != nil {
		return fmt.Errorf("encode policy announcement: %w", err)
	}
	if err := b.client.Publish(ctx, b.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish policy announcement: %w", err)
	}
	return nil
}

// Listen applies announcements from other instances to registry until ctx
// is cancelled. A failed reload is logged; the registry keeps its previous
// snapshot.
func (b *Broadcaster) Listen(ctx context.Context, registry *Registry) error {
	sub := b.client.Subscribe(ctx, b.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", b.channel, err)
	}
	b.logger.InfoContext(ctx, "listening for policy announcements", "channel", b.channel, "origin", b.origin)

	msgs := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			b.handle(ctx, registry, msg.Payload)
		}
	}
}

func (b *Broadcaster) handle(ctx context.Context, registry *Registry, payload string) {
	var a announcement
	if err := json.Unmarshal([]byte(payload), &a); err != nil {
		b.logger.WarnContext(ctx, "ignoring malformed policy announcement", "error", err)
		return
	}
	if a.Origin == b.origin {
		return
	}
	switch a.Action {
	case ActionReload:
		if err := registry.Load(ctx); err != nil {
			b.logger.ErrorContext(ctx, "policy reload from announcement failed", "origin", a.Origin, "error", err)
		}
	case ActionClear:
		registry.Clear()
	default:
		b.logger.WarnContext(ctx, "ignoring unknown policy action", "action", a.Action, "origin", a.Origin)
	}
}
