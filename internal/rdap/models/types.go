// Package models defines the RDAP records assembled by the lookup service.
//
// Every record implements redact.Node with an explicit model type tag and an
// explicit field list, so the privacy policy can be applied without reflection.
package models

import "rdapd/internal/redact"

// Model type tags, as they appear in the policy.
const (
	TypeDomain       redact.ModelType = "domain"
	TypeEvent        redact.ModelType = "event"
	TypeLink         redact.ModelType = "link"
	TypeVariants     redact.ModelType = "variants"
	TypeVariant      redact.ModelType = "variant"
	TypePublicID     redact.ModelType = "publicId"
	TypeRemark       redact.ModelType = "remark"
	TypeSecureDNS    redact.ModelType = "secureDns"
	TypeDsData       redact.ModelType = "dsData"
	TypeKeyData      redact.ModelType = "keyData"
	TypeErrorMessage redact.ModelType = "errorMessage"
)

// nodesOf exposes each element of items as a node, addressing the element in
// place so redaction mutates the slice.
func nodesOf[T any, P interface {
	*T
	redact.Node
}](items []T) []redact.Node {
	out := make([]redact.Node, len(items))
	for i := range items {
		out[i] = P(&items[i])
	}
	return out
}

// present returns a pointer to s for JSON encoding: nil stays absent, an empty
// slice is kept and renders as [].
func present[T any](s []T) *[]T {
	if s == nil {
		return nil
	}
	return &s
}

// fromPresent reverses present.
func fromPresent[T any](p *[]T) []T {
	if p == nil {
		return nil
	}
	if *p == nil {
		return []T{}
	}
	return *p
}
