package models

import (
	"encoding/json"

	"rdapd/internal/redact"
)

// Variants is a group of variant names sharing a relation.
type Variants struct {
	Relation     []string
	IDNTable     string
	VariantNames []Variant
}

type variantsJSON struct {
	Relation     []string   `json:"relation,omitempty"`
	IDNTable     string     `json:"idnTable,omitempty"`
	VariantNames *[]Variant `json:"variantNames,omitempty"`
}

func (v Variants) MarshalJSON() ([]byte, error) {
	return json.Marshal(variantsJSON{
		Relation:     v.Relation,
		IDNTable:     v.IDNTable,
		VariantNames: present(v.VariantNames),
	})
}

func (v *Variants) UnmarshalJSON(data []byte) error {
	var w variantsJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*v = Variants{Relation: w.Relation, IDNTable: w.IDNTable, VariantNames: fromPresent(w.VariantNames)}
	return nil
}

func (v *Variants) ModelType() redact.ModelType { return TypeVariants }

func (v *Variants) Fields() []redact.Field {
	return []redact.Field{
		redact.ScalarField("relation", func() any { return v.Relation }, func() { v.Relation = nil }),
		redact.ScalarField("idnTable", func() any { return v.IDNTable }, func() { v.IDNTable = "" }),
		redact.ListField("variantNames",
			func() []redact.Node { return nodesOf(v.VariantNames) },
			func() { v.VariantNames = nil }),
	}
}

// Remark is a titled block of free text with optional links.
type Remark struct {
	Title       string
	Type        string
	Description []string
	Links       []Link
}

type remarkJSON struct {
	Title       string   `json:"title,omitempty"`
	Type        string   `json:"type,omitempty"`
	Description []string `json:"description,omitempty"`
	Links       *[]Link  `json:"links,omitempty"`
}

func (r Remark) MarshalJSON() ([]byte, error) {
	return json.Marshal(remarkJSON{
		Title:       r.Title,
		Type:        r.Type,
		Description: r.Description,
		Links:       present(r.Links),
	})
}

func (r *Remark) UnmarshalJSON(data []byte) error {
	var w remarkJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*r = Remark{Title: w.Title, Type: w.Type, Description: w.Description, Links: fromPresent(w.Links)}
	return nil
}

func (r *Remark) ModelType() redact.ModelType { return TypeRemark }

func (r *Remark) Fields() []redact.Field {
	return []redact.Field{
		redact.ScalarField("title", func() any { return r.Title }, func() { r.Title = "" }),
		redact.ScalarField("type", func() any { return r.Type }, func() { r.Type = "" }),
		redact.ScalarField("description", func() any { return r.Description }, func() { r.Description = nil }),
		redact.ListField("links",
			func() []redact.Node { return nodesOf(r.Links) },
			func() { r.Links = nil }),
	}
}

// SecureDNS describes the DNSSEC state of a domain.
type SecureDNS struct {
	ID               int64
	ZoneSigned       *bool
	DelegationSigned *bool
	MaxSigLife       *int
	DsData           []DsData
	KeyData          []KeyData
}

type secureDNSJSON struct {
	ZoneSigned       *bool      `json:"zoneSigned,omitempty"`
	DelegationSigned *bool      `json:"delegationSigned,omitempty"`
	MaxSigLife       *int       `json:"maxSigLife,omitempty"`
	DsData           *[]DsData  `json:"dsData,omitempty"`
	KeyData          *[]KeyData `json:"keyData,omitempty"`
}

func (s SecureDNS) MarshalJSON() ([]byte, error) {
	return json.Marshal(secureDNSJSON{
		ZoneSigned:       s.ZoneSigned,
		DelegationSigned: s.DelegationSigned,
		MaxSigLife:       s.MaxSigLife,
		DsData:           present(s.DsData),
		KeyData:          present(s.KeyData),
	})
}

func (s *SecureDNS) UnmarshalJSON(data []byte) error {
	var w secureDNSJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*s = SecureDNS{
		ZoneSigned:       w.ZoneSigned,
		DelegationSigned: w.DelegationSigned,
		MaxSigLife:       w.MaxSigLife,
		DsData:           fromPresent(w.DsData),
		KeyData:          fromPresent(w.KeyData),
	}
	return nil
}

func (s *SecureDNS) ModelType() redact.ModelType { return TypeSecureDNS }

func (s *SecureDNS) Fields() []redact.Field {
	return []redact.Field{
		redact.ScalarField("zoneSigned", func() any { return s.ZoneSigned }, func() { s.ZoneSigned = nil }),
		redact.ScalarField("delegationSigned", func() any { return s.DelegationSigned }, func() { s.DelegationSigned = nil }),
		redact.ScalarField("maxSigLife", func() any { return s.MaxSigLife }, func() { s.MaxSigLife = nil }),
		redact.ListField("dsData",
			func() []redact.Node { return nodesOf(s.DsData) },
			func() { s.DsData = nil }),
		redact.ListField("keyData",
			func() []redact.Node { return nodesOf(s.KeyData) },
			func() { s.KeyData = nil }),
	}
}

// DsData is a delegation signer record.
type DsData struct {
	KeyTag     *int   `json:"keyTag,omitempty"`
	Algorithm  *int   `json:"algorithm,omitempty"`
	Digest     string `json:"digest,omitempty"`
	DigestType *int   `json:"digestType,omitempty"`
}

func (d *DsData) ModelType() redact.ModelType { return TypeDsData }

func (d *DsData) Fields() []redact.Field {
	return []redact.Field{
		redact.ScalarField("keyTag", func() any { return d.KeyTag }, func() { d.KeyTag = nil }),
		redact.ScalarField("algorithm", func() any { return d.Algorithm }, func() { d.Algorithm = nil }),
		redact.ScalarField("digest", func() any { return d.Digest }, func() { d.Digest = "" }),
		redact.ScalarField("digestType", func() any { return d.DigestType }, func() { d.DigestType = nil }),
	}
}

// KeyData is a DNSKEY record.
type KeyData struct {
	Flags     *int   `json:"flags,omitempty"`
	Protocol  *int   `json:"protocol,omitempty"`
	PublicKey string `json:"publicKey,omitempty"`
	Algorithm *int   `json:"algorithm,omitempty"`
}

func (k *KeyData) ModelType() redact.ModelType { return TypeKeyData }

func (k *KeyData) Fields() []redact.Field {
	return []redact.Field{
		redact.ScalarField("flags", func() any { return k.Flags }, func() { k.Flags = nil }),
		redact.ScalarField("protocol", func() any { return k.Protocol }, func() { k.Protocol = nil }),
		redact.ScalarField("publicKey", func() any { return k.PublicKey }, func() { k.PublicKey = "" }),
		redact.ScalarField("algorithm", func() any { return k.Algorithm }, func() { k.Algorithm = nil }),
	}
}
