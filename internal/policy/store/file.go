package store

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileSource reads the policy from a YAML document mapping each model type to
// the list of fields hidden for it:
//
//	domain:
//	  - lang
//	  - port43
//	link:
//	  - media
//
// The file is re-read on every load, so editing it and reloading is enough to
// change the policy.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) LoadAll(_ context.Context) (map[string][]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read policy file: %w", err)
	}
	out := make(map[string][]string)
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse policy file %s: %w", s.path, err)
	}
	return out, nil
}
