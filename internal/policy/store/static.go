package store

import (
	"context"
	"maps"
	"slices"
)

// StaticSource serves a fixed policy. It backs the "none" policy mode and tests.
type StaticSource struct {
	policy map[string][]string
}

// NewStaticSource copies policy so later changes by the caller are not observed.
func NewStaticSource(policy map[string][]string) *StaticSource {
	cp := make(map[string][]string, len(policy))
	for k, v := range policy {
		cp[k] = slices.Clone(v)
	}
	return &StaticSource{policy: cp}
}

func (s *StaticSource) LoadAll(_ context.Context) (map[string][]string, error) {
	out := maps.Clone(s.policy)
	for k, v := range out {
		out[k] = slices.Clone(v)
	}
	return out, nil
}
