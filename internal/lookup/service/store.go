package service

import (
	"context"

	"rdapd/internal/policy"
	"rdapd/internal/rdap/models"
)

// DomainQuery identifies the root record. LdhName is the A-label form for
// ordinary names and the literal lower-cased name for reverse zones.
type DomainQuery struct {
	LdhName     string
	UnicodeName string
	Reverse     bool
}

// Store is the registration-data collaborator. FindDomain and FindSecureDNS
// return sentinel.ErrNotFound on a miss; the List methods return an empty
// slice when there are no rows. Rows come back in storage order.
//
// Remarks are returned with their links attached and variants with their
// variant names attached.
type Store interface {
	FindDomain(ctx context.Context, q DomainQuery) (*models.Domain, error)
	ListStatus(ctx context.Context, domainID int64) ([]string, error)
	ListEvents(ctx context.Context, domainID int64) ([]models.Event, error)
	ListLinks(ctx context.Context, domainID int64) ([]models.Link, error)
	ListVariants(ctx context.Context, domainID int64) ([]models.Variants, error)
	ListPublicIDs(ctx context.Context, domainID int64) ([]models.PublicID, error)
	ListRemarks(ctx context.Context, domainID int64) ([]models.Remark, error)
	FindSecureDNS(ctx context.Context, domainID int64) (*models.SecureDNS, error)
	ListDsData(ctx context.Context, secureDNSID int64) ([]models.DsData, error)
	ListKeyData(ctx context.Context, secureDNSID int64) ([]models.KeyData, error)
	ListCustomProperties(ctx context.Context, domainID int64) ([]models.Property, error)
}

// Cache holds assembled, unredacted aggregates keyed by LDH name. Get returns
// sentinel.ErrNotFound on a miss.
type Cache interface {
	Get(ctx context.Context, ldhName string) (*models.Domain, error)
	Set(ctx context.Context, ldhName string, domain *models.Domain) error
}

// PolicyPublisher fans policy lifecycle changes out to other instances.
type PolicyPublisher interface {
	Publish(ctx context.Context, action policy.Action) error
}
