// Package redact removes policy-restricted fields from a record graph.
//
// The engine walks any value implementing Node, depth first, in the order
// each node lists its fields. It knows nothing about concrete record types:
// a new record kind only needs to implement Node and carry its own tag.
package redact

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"rdapd/internal/policy"
)

// DefaultMaxDepth bounds recursion. Assembled aggregates are at most three
// levels deep.
const DefaultMaxDepth = 32

var (
	// ErrDepthExceeded is returned when a graph is deeper than the configured
	// bound, which usually means a producer introduced a cycle.
	ErrDepthExceeded = errors.New("redaction depth exceeded")
	// ErrInvalidField is returned when a node's declared fields do not match
	// the shape it reports. It is a programming error and must not be ignored.
	ErrInvalidField = errors.New("invalid redaction field")
)

var tracer = otel.Tracer("rdapd/internal/redact")

// SnapshotSource yields the policy currently in force, or nil when none is loaded.
type SnapshotSource interface {
	Current() *policy.Snapshot
}

// Observer is notified of every field the engine clears.
type Observer interface {
	FieldRedacted(modelType, field string)
}

// Engine applies the current policy to record graphs. It holds no per-call
// state and is safe for concurrent use.
type Engine struct {
	policies SnapshotSource
	maxDepth int
	observer Observer
}

type Option func(*Engine)

// WithMaxDepth overrides DefaultMaxDepth. Non-positive values are ignored.
func WithMaxDepth(depth int) Option {
	return func(e *Engine) {
		if depth > 0 {
			e.maxDepth = depth
		}
	}
}

func WithObserver(o Observer) Option {
	return func(e *Engine) {
		e.observer = o
	}
}

// New constructs an Engine reading policy from policies.
func New(policies SnapshotSource, opts ...Option) (*Engine, error) {
	if policies == nil {
		return nil, fmt.Errorf("policy source is required")
	}
	e := &Engine{policies: policies, maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Apply redacts root in place using a single policy snapshot for the whole
// walk. With no policy loaded it returns immediately without touching root.
func (e *Engine) Apply(ctx context.Context, root Node) error {
	if root == nil {
		return nil
	}
	snap := e.policies.Current()
	if snap == nil {
		return nil
	}

	_, span := tracer.Start(ctx, "redact.Apply")
	defer span.End()
	span.SetAttributes(attribute.String("rdap.model_type", string(root.ModelType())))

	if err := e.walk(snap, root, 0, string(root.ModelType())); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

func (e *Engine) walk(snap *policy.Snapshot, node Node, depth int, path string) error {
	if depth >= e.maxDepth {
		return fmt.Errorf("%w: limit %d reached at %s", ErrDepthExceeded, e.maxDepth, path)
	}
	modelType := string(node.ModelType())
	hidden := snap.Hidden(modelType)

	for _, f := range node.Fields() {
		if err := checkField(f); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		fieldPath := path + "." + f.Name

		// Elements are captured before a possible clear: hiding a sequence and
		// redacting its elements are independent.
		var children []Node
		if f.Shape == NestedList {
			children = f.Nodes()
		}

		if hidden.Contains(f.Name) {
			f.Clear()
			if e.observer != nil {
				e.observer.FieldRedacted(modelType, f.Name)
			}
		} else if f.Shape == Nested {
			if child := f.Node(); child != nil {
				if err := e.walk(snap, child, depth+1, fieldPath); err != nil {
					return err
				}
			}
		}

		for i, child := range children {
			if child == nil {
				continue
			}
			if err := e.walk(snap, child, depth+1, fieldPath+"["+strconv.Itoa(i)+"]"); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkField(f Field) error {
	if f.Name == "" {
		return fmt.Errorf("%w: unnamed field", ErrInvalidField)
	}
	if f.Get == nil || f.Clear == nil {
		return fmt.Errorf("%w: %s lacks an accessor", ErrInvalidField, f.Name)
	}
	switch f.Shape {
	case Scalar:
		if f.Node != nil || f.Nodes != nil {
			return fmt.Errorf("%w: scalar %s exposes child nodes", ErrInvalidField, f.Name)
		}
	case Nested:
		if f.Node == nil {
			return fmt.Errorf("%w: nested %s has no node accessor", ErrInvalidField, f.Name)
		}
	case NestedList:
		if f.Nodes == nil {
			return fmt.Errorf("%w: list %s has no nodes accessor", ErrInvalidField, f.Name)
		}
	default:
		return fmt.Errorf("%w: %s has unknown shape %d", ErrInvalidField, f.Name, f.Shape)
	}
	return nil
}
