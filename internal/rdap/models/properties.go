package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Property is one registry-specific extension value.
type Property struct {
	Key   string
	Value string
}

// Properties is a string map that keeps first-seen key order. It renders as a
// JSON object with keys in that order.
type Properties struct {
	entries []Property
	index   map[string]int
}

// NewProperties builds Properties from entries in order. A repeated key keeps
// its first position and takes the later value.
func NewProperties(entries ...Property) *Properties {
	p := &Properties{}
	for _, e := range entries {
		p.Set(e.Key, e.Value)
	}
	return p
}

// Set stores value under key, appending the key if it is new.
func (p *Properties) Set(key, value string) {
	if p.index == nil {
		p.index = make(map[string]int)
	}
	if i, ok := p.index[key]; ok {
		p.entries[i].Value = value
		return
	}
	p.index[key] = len(p.entries)
	p.entries = append(p.entries, Property{Key: key, Value: value})
}

func (p *Properties) Get(key string) (string, bool) {
	if p == nil {
		return "", false
	}
	i, ok := p.index[key]
	if !ok {
		return "", false
	}
	return p.entries[i].Value, true
}

func (p *Properties) Len() int {
	if p == nil {
		return 0
	}
	return len(p.entries)
}

// Entries returns a copy of the entries in insertion order.
func (p *Properties) Entries() []Property {
	if p == nil {
		return nil
	}
	out := make([]Property, len(p.entries))
	copy(out, p.entries)
	return out
}

// Clone returns an independent copy; nil stays nil.
func (p *Properties) Clone() *Properties {
	if p == nil {
		return nil
	}
	return NewProperties(p.entries...)
}

func (p Properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range p.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (p *Properties) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("custom properties: expected object, got %v", tok)
	}
	*p = Properties{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("custom properties: expected key, got %v", keyTok)
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("custom properties: value of %q: %w", key, err)
		}
		p.Set(key, value)
	}
	_, err = dec.Token()
	return err
}
