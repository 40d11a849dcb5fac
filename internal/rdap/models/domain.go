package models

import (
	"encoding/json"

	"rdapd/internal/redact"
)

// Domain is the assembled domain aggregate.
//
// Status is nil when the registry has no status rows for the domain; it is
// never an empty slice. Events, Links, Variants, PublicIDs, Remarks and
// CustomProperties are always present after assembly, possibly empty. Any of
// them becomes nil when the privacy policy hides it.
type Domain struct {
	ID               int64
	Handle           string
	LdhName          string
	UnicodeName      string
	Port43           string
	Lang             string
	Status           []string
	Events           []Event
	Links            []Link
	Variants         []Variants
	PublicIDs        []PublicID
	Remarks          []Remark
	SecureDNS        *SecureDNS
	CustomProperties *Properties
}

type domainJSON struct {
	ObjectClassName  string      `json:"objectClassName"`
	Handle           string      `json:"handle,omitempty"`
	LdhName          string      `json:"ldhName,omitempty"`
	UnicodeName      string      `json:"unicodeName,omitempty"`
	Port43           string      `json:"port43,omitempty"`
	Lang             string      `json:"lang,omitempty"`
	Status           []string    `json:"status,omitempty"`
	Events           *[]Event    `json:"events,omitempty"`
	Links            *[]Link     `json:"links,omitempty"`
	Variants         *[]Variants `json:"variants,omitempty"`
	PublicIDs        *[]PublicID `json:"publicIds,omitempty"`
	Remarks          *[]Remark   `json:"remarks,omitempty"`
	SecureDNS        *SecureDNS  `json:"secureDNS,omitempty"`
	CustomProperties *Properties `json:"customProperties,omitempty"`
}

func (d Domain) MarshalJSON() ([]byte, error) {
	return json.Marshal(domainJSON{
		ObjectClassName:  "domain",
		Handle:           d.Handle,
		LdhName:          d.LdhName,
		UnicodeName:      d.UnicodeName,
		Port43:           d.Port43,
		Lang:             d.Lang,
		Status:           d.Status,
		Events:           present(d.Events),
		Links:            present(d.Links),
		Variants:         present(d.Variants),
		PublicIDs:        present(d.PublicIDs),
		Remarks:          present(d.Remarks),
		SecureDNS:        d.SecureDNS,
		CustomProperties: d.CustomProperties,
	})
}

func (d *Domain) UnmarshalJSON(data []byte) error {
	var w domainJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	status := w.Status
	if len(status) == 0 {
		status = nil
	}
	*d = Domain{
		Handle:           w.Handle,
		LdhName:          w.LdhName,
		UnicodeName:      w.UnicodeName,
		Port43:           w.Port43,
		Lang:             w.Lang,
		Status:           status,
		Events:           fromPresent(w.Events),
		Links:            fromPresent(w.Links),
		Variants:         fromPresent(w.Variants),
		PublicIDs:        fromPresent(w.PublicIDs),
		Remarks:          fromPresent(w.Remarks),
		SecureDNS:        w.SecureDNS,
		CustomProperties: w.CustomProperties,
	}
	return nil
}

func (d *Domain) ModelType() redact.ModelType { return TypeDomain }

func (d *Domain) Fields() []redact.Field {
	return []redact.Field{
		redact.ScalarField("handle", func() any { return d.Handle }, func() { d.Handle = "" }),
		redact.ScalarField("ldhName", func() any { return d.LdhName }, func() { d.LdhName = "" }),
		redact.ScalarField("unicodeName", func() any { return d.UnicodeName }, func() { d.UnicodeName = "" }),
		redact.ScalarField("port43", func() any { return d.Port43 }, func() { d.Port43 = "" }),
		redact.ScalarField("lang", func() any { return d.Lang }, func() { d.Lang = "" }),
		redact.ScalarField("status", func() any { return d.Status }, func() { d.Status = nil }),
		redact.ListField("events",
			func() []redact.Node { return nodesOf(d.Events) },
			func() { d.Events = nil }),
		redact.ListField("links",
			func() []redact.Node { return nodesOf(d.Links) },
			func() { d.Links = nil }),
		redact.ListField("variants",
			func() []redact.Node { return nodesOf(d.Variants) },
			func() { d.Variants = nil }),
		redact.ListField("publicIds",
			func() []redact.Node { return nodesOf(d.PublicIDs) },
			func() { d.PublicIDs = nil }),
		redact.ListField("remarks",
			func() []redact.Node { return nodesOf(d.Remarks) },
			func() { d.Remarks = nil }),
		redact.NestedField("secureDns",
			func() redact.Node {
				if d.SecureDNS == nil {
					return nil
				}
				return d.SecureDNS
			},
			func() { d.SecureDNS = nil }),
		redact.ScalarField("customProperties", func() any { return d.CustomProperties }, func() { d.CustomProperties = nil }),
	}
}

// ErrorMessage is the body returned for failed queries. It is redacted under
// its own tag like any other record.
type ErrorMessage struct {
	ErrorCode   int      `json:"errorCode,omitempty"`
	Title       string   `json:"title,omitempty"`
	Description []string `json:"description,omitempty"`
	Lang        string   `json:"lang,omitempty"`
}

func (e *ErrorMessage) ModelType() redact.ModelType { return TypeErrorMessage }

func (e *ErrorMessage) Fields() []redact.Field {
	return []redact.Field{
		redact.ScalarField("errorCode", func() any { return e.ErrorCode }, func() { e.ErrorCode = 0 }),
		redact.ScalarField("title", func() any { return e.Title }, func() { e.Title = "" }),
		redact.ScalarField("description", func() any { return e.Description }, func() { e.Description = nil }),
		redact.ScalarField("lang", func() any { return e.Lang }, func() { e.Lang = "" }),
	}
}
