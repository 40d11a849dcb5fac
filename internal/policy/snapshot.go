package policy

import (
	"sort"
	"strings"
	"time"

	pstrings "rdapd/pkg/platform/strings"
)

// FieldSet is an immutable set of lower-cased field names.
type FieldSet map[string]struct{}

// Contains matches name case-insensitively.
func (s FieldSet) Contains(name string) bool {
	if len(s) == 0 {
		return false
	}
	_, ok := s[strings.ToLower(name)]
	return ok
}

// Snapshot is one complete, immutable policy. It is never modified after
// NewSnapshot returns; a reload installs a new Snapshot instead.
type Snapshot struct {
	hidden   map[string]FieldSet
	loadedAt time.Time
}

// NewSnapshot copies raw into a Snapshot. Model type tags are trimmed; field
// names are trimmed, lower-cased and de-duplicated. Tags with no fields are
// dropped.
func NewSnapshot(raw map[string][]string, loadedAt time.Time) *Snapshot {
	hidden := make(map[string]FieldSet, len(raw))
	for tag, fields := range raw {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		names := pstrings.FieldNames(fields)
		if len(names) == 0 {
			continue
		}
		set, ok := hidden[tag]
		if !ok {
			set = make(FieldSet, len(names))
			hidden[tag] = set
		}
		for _, n := range names {
			set[n] = struct{}{}
		}
	}
	return &Snapshot{hidden: hidden, loadedAt: loadedAt}
}

// Hidden returns the fields hidden for modelType; nil when the tag has no entry.
func (s *Snapshot) Hidden(modelType string) FieldSet {
	return s.hidden[modelType]
}

// Hides reports whether field is hidden for modelType.
func (s *Snapshot) Hides(modelType, field string) bool {
	return s.hidden[modelType].Contains(field)
}

// ModelTypes returns the tags with at least one hidden field, sorted.
func (s *Snapshot) ModelTypes() []string {
	out := make([]string, 0, len(s.hidden))
	for tag := range s.hidden {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// Fields returns the hidden fields of modelType, sorted.
func (s *Snapshot) Fields(modelType string) []string {
	set := s.hidden[modelType]
	out := make([]string, 0, len(set))
	for f := range set {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Len is the number of model types with hidden fields.
func (s *Snapshot) Len() int {
	return len(s.hidden)
}

func (s *Snapshot) LoadedAt() time.Time {
	return s.loadedAt
}

// Map returns a sorted copy of the snapshot, suitable for rendering.
func (s *Snapshot) Map() map[string][]string {
	out := make(map[string][]string, len(s.hidden))
	for tag := range s.hidden {
		out[tag] = s.Fields(tag)
	}
	return out
}
