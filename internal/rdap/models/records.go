package models

import (
	"time"

	"rdapd/internal/redact"
)

// Event is a dated action on a registration object.
type Event struct {
	Action string     `json:"eventAction,omitempty"`
	Actor  string     `json:"eventActor,omitempty"`
	Date   *time.Time `json:"eventDate,omitempty"`
}

func (e *Event) ModelType() redact.ModelType { return TypeEvent }

func (e *Event) Fields() []redact.Field {
	return []redact.Field{
		redact.ScalarField("eventAction", func() any { return e.Action }, func() { e.Action = "" }),
		redact.ScalarField("eventActor", func() any { return e.Actor }, func() { e.Actor = "" }),
		redact.ScalarField("eventDate", func() any { return e.Date }, func() { e.Date = nil }),
	}
}

// Link is an RFC 8288 style link.
type Link struct {
	Value    string   `json:"value,omitempty"`
	Rel      string   `json:"rel,omitempty"`
	Href     string   `json:"href,omitempty"`
	HrefLang []string `json:"hreflang,omitempty"`
	Title    string   `json:"title,omitempty"`
	Media    string   `json:"media,omitempty"`
	Type     string   `json:"type,omitempty"`
}

func (l *Link) ModelType() redact.ModelType { return TypeLink }

func (l *Link) Fields() []redact.Field {
	return []redact.Field{
		redact.ScalarField("value", func() any { return l.Value }, func() { l.Value = "" }),
		redact.ScalarField("rel", func() any { return l.Rel }, func() { l.Rel = "" }),
		redact.ScalarField("href", func() any { return l.Href }, func() { l.Href = "" }),
		redact.ScalarField("hreflang", func() any { return l.HrefLang }, func() { l.HrefLang = nil }),
		redact.ScalarField("title", func() any { return l.Title }, func() { l.Title = "" }),
		redact.ScalarField("media", func() any { return l.Media }, func() { l.Media = "" }),
		redact.ScalarField("type", func() any { return l.Type }, func() { l.Type = "" }),
	}
}

// PublicID maps a public identifier to an object class.
type PublicID struct {
	Type       string `json:"type,omitempty"`
	Identifier string `json:"identifier,omitempty"`
}

func (p *PublicID) ModelType() redact.ModelType { return TypePublicID }

func (p *PublicID) Fields() []redact.Field {
	return []redact.Field{
		redact.ScalarField("type", func() any { return p.Type }, func() { p.Type = "" }),
		redact.ScalarField("identifier", func() any { return p.Identifier }, func() { p.Identifier = "" }),
	}
}

// Variant is one name in a variant group.
type Variant struct {
	LdhName     string `json:"ldhName,omitempty"`
	UnicodeName string `json:"unicodeName,omitempty"`
}

func (v *Variant) ModelType() redact.ModelType { return TypeVariant }

func (v *Variant) Fields() []redact.Field {
	return []redact.Field{
		redact.ScalarField("ldhName", func() any { return v.LdhName }, func() { v.LdhName = "" }),
		redact.ScalarField("unicodeName", func() any { return v.UnicodeName }, func() { v.UnicodeName = "" }),
	}
}
