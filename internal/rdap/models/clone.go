package models

import "slices"

// Clone returns a deep copy of d. Redaction mutates in place, so anything
// that hands out a shared aggregate must hand out a clone.
func (d *Domain) Clone() *Domain {
	if d == nil {
		return nil
	}
	out := *d
	out.Status = slices.Clone(d.Status)
	out.Events = cloneEach(d.Events, (*Event).clone)
	out.Links = cloneEach(d.Links, (*Link).clone)
	out.Variants = cloneEach(d.Variants, (*Variants).clone)
	out.PublicIDs = slices.Clone(d.PublicIDs)
	out.Remarks = cloneEach(d.Remarks, (*Remark).clone)
	out.SecureDNS = d.SecureDNS.Clone()
	out.CustomProperties = d.CustomProperties.Clone()
	return &out
}

// Clone returns a deep copy of s; nil stays nil.
func (s *SecureDNS) Clone() *SecureDNS {
	if s == nil {
		return nil
	}
	out := *s
	out.ZoneSigned = clonePtr(s.ZoneSigned)
	out.DelegationSigned = clonePtr(s.DelegationSigned)
	out.MaxSigLife = clonePtr(s.MaxSigLife)
	out.DsData = cloneEach(s.DsData, (*DsData).clone)
	out.KeyData = cloneEach(s.KeyData, (*KeyData).clone)
	return &out
}

func (e *Event) clone() Event {
	out := *e
	out.Date = clonePtr(e.Date)
	return out
}

func (l *Link) clone() Link {
	out := *l
	out.HrefLang = slices.Clone(l.HrefLang)
	return out
}

func (v *Variants) clone() Variants {
	out := *v
	out.Relation = slices.Clone(v.Relation)
	out.VariantNames = slices.Clone(v.VariantNames)
	return out
}

func (r *Remark) clone() Remark {
	out := *r
	out.Description = slices.Clone(r.Description)
	out.Links = cloneEach(r.Links, (*Link).clone)
	return out
}

func (d *DsData) clone() DsData {
	out := *d
	out.KeyTag = clonePtr(d.KeyTag)
	out.Algorithm = clonePtr(d.Algorithm)
	out.DigestType = clonePtr(d.DigestType)
	return out
}

func (k *KeyData) clone() KeyData {
	out := *k
	out.Flags = clonePtr(k.Flags)
	out.Protocol = clonePtr(k.Protocol)
	out.Algorithm = clonePtr(k.Algorithm)
	return out
}

// cloneEach copies items element by element, keeping nil as nil and empty as empty.
func cloneEach[T any](items []T, clone func(*T) T) []T {
	if items == nil {
		return nil
	}
	out := make([]T, len(items))
	for i := range items {
		out[i] = clone(&items[i])
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
