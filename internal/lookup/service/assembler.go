package service

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"rdapd/internal/rdap/models"
	"rdapd/pkg/platform/sentinel"
	pstrings "rdapd/pkg/platform/strings"
)

// assemble builds the full aggregate for q. It returns sentinel.ErrNotFound
// when no root record matches and a *StorageError for any store fault.
//
// Nested collections are fetched concurrently; each lands in its own slot and
// the slots are merged in a fixed order, so the result does not depend on
// completion order.
func (s *Service) assemble(ctx context.Context, q DomainQuery) (*models.Domain, error) {
	ctx, span := tracer.Start(ctx, "lookup.assemble")
	defer span.End()
	span.SetAttributes(
		attribute.String("rdap.ldh_name", q.LdhName),
		attribute.Bool("rdap.reverse", q.Reverse),
	)

	if s.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.queryTimeout)
		defer cancel()
	}

	domain, err := s.store.FindDomain(ctx, q)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, sentinel.ErrNotFound
		}
		return nil, storageErr("find domain", err)
	}

	var (
		status     []string
		events     []models.Event
		links      []models.Link
		variants   []models.Variants
		publicIDs  []models.PublicID
		remarks    []models.Remark
		secureDNS  *models.SecureDNS
		properties []models.Property
	)

	id := domain.ID
	g, gctx := errgroup.WithContext(ctx)
	collect(g, gctx, "list status", s.store.ListStatus, id, &status)
	collect(g, gctx, "list events", s.store.ListEvents, id, &events)
	collect(g, gctx, "list links", s.store.ListLinks, id, &links)
	collect(g, gctx, "list variants", s.store.ListVariants, id, &variants)
	collect(g, gctx, "list public ids", s.store.ListPublicIDs, id, &publicIDs)
	collect(g, gctx, "list remarks", s.store.ListRemarks, id, &remarks)
	collect(g, gctx, "list custom properties", s.store.ListCustomProperties, id, &properties)
	g.Go(func() (err error) {
		secureDNS, err = s.fetchSecureDNS(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	domain.Status = pstrings.Dedupe(status)
	domain.Events = nonNil(events)
	domain.Links = nonNil(links)
	domain.Variants = nonNil(variants)
	domain.PublicIDs = nonNil(publicIDs)
	domain.Remarks = nonNil(remarks)
	domain.SecureDNS = secureDNS
	domain.CustomProperties = models.NewProperties(properties...)
	return domain, nil
}

// fetchSecureDNS returns nil when the domain has no secure DNS block. DS and
// key data inside a present block are always non-nil.
func (s *Service) fetchSecureDNS(ctx context.Context, domainID int64) (*models.SecureDNS, error) {
	sdns, err := s.store.FindSecureDNS(ctx, domainID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil
		}
		return nil, storageErr("find secure dns", err)
	}

	var (
		dsData  []models.DsData
		keyData []models.KeyData
	)
	g, gctx := errgroup.WithContext(ctx)
	collect(g, gctx, "list ds data", s.store.ListDsData, sdns.ID, &dsData)
	collect(g, gctx, "list key data", s.store.ListKeyData, sdns.ID, &keyData)
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sdns.DsData = nonNil(dsData)
	sdns.KeyData = nonNil(keyData)
	return sdns, nil
}

// collect schedules one list fetch on g, writing the rows to dst.
func collect[T any](g *errgroup.Group, ctx context.Context, op string, fetch func(context.Context, int64) ([]T, error), id int64, dst *[]T) {
	g.Go(func() error {
		items, err := fetch(ctx, id)
		if err != nil {
			return storageErr(op, err)
		}
		*dst = items
		return nil
	})
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

