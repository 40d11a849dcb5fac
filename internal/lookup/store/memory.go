// Package store holds the registration-data storage collaborators used by the
// lookup service.
package store

import (
	"context"
	"strings"
	"sync"

	"rdapd/internal/lookup/service"
	"rdapd/internal/rdap/models"
	"rdapd/pkg/platform/sentinel"
)

// InMemoryStore keeps complete domain aggregates in memory. Every read returns
// a deep copy, so callers may redact results in place.
type InMemoryStore struct {
	mu       sync.RWMutex
	nextID   int64
	byName   map[string]*models.Domain
	byID     map[int64]*models.Domain
	bySecure map[int64]*models.Domain
	reverse  map[int64]bool
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		byName:   make(map[string]*models.Domain),
		byID:     make(map[int64]*models.Domain),
		bySecure: make(map[int64]*models.Domain),
		reverse:  make(map[int64]bool),
	}
}

// Save stores a copy of d keyed by its lower-cased LDH name, replacing any
// record with the same name, and returns the assigned domain ID. reverse
// marks arpa zone names.
func (s *InMemoryStore) Save(_ context.Context, d *models.Domain, reverse bool) (int64, error) {
	if d == nil {
		return 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := d.Clone()
	rec.LdhName = strings.ToLower(rec.LdhName)
	if prev, ok := s.byName[rec.LdhName]; ok {
		delete(s.byID, prev.ID)
		delete(s.reverse, prev.ID)
		if prev.SecureDNS != nil {
			delete(s.bySecure, prev.SecureDNS.ID)
		}
	}

	s.nextID++
	rec.ID = s.nextID
	if rec.SecureDNS != nil {
		s.nextID++
		rec.SecureDNS.ID = s.nextID
		s.bySecure[rec.SecureDNS.ID] = rec
	}
	s.byName[rec.LdhName] = rec
	s.byID[rec.ID] = rec
	s.reverse[rec.ID] = reverse
	return rec.ID, nil
}

func (s *InMemoryStore) FindDomain(_ context.Context, q service.DomainQuery) (*models.Domain, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.byName[strings.ToLower(q.LdhName)]
	if !ok || s.reverse[rec.ID] != q.Reverse {
		return nil, sentinel.ErrNotFound
	}
	return &models.Domain{
		ID:          rec.ID,
		Handle:      rec.Handle,
		LdhName:     rec.LdhName,
		UnicodeName: rec.UnicodeName,
		Port43:      rec.Port43,
		Lang:        rec.Lang,
	}, nil
}

// domain returns a deep copy of the record with id, or nil.
func (s *InMemoryStore) domain(id int64) *models.Domain {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byID[id].Clone()
}

func (s *InMemoryStore) secure(id int64) *models.SecureDNS {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if rec, ok := s.bySecure[id]; ok {
		return rec.SecureDNS.Clone()
	}
	return nil
}

func (s *InMemoryStore) ListStatus(_ context.Context, domainID int64) ([]string, error) {
	if d := s.domain(domainID); d != nil {
		return d.Status, nil
	}
	return nil, nil
}

func (s *InMemoryStore) ListEvents(_ context.Context, domainID int64) ([]models.Event, error) {
	if d := s.domain(domainID); d != nil {
		return d.Events, nil
	}
	return nil, nil
}

func (s *InMemoryStore) ListLinks(_ context.Context, domainID int64) ([]models.Link, error) {
	if d := s.domain(domainID); d != nil {
		return d.Links, nil
	}
	return nil, nil
}

func (s *InMemoryStore) ListVariants(_ context.Context, domainID int64) ([]models.Variants, error) {
	if d := s.domain(domainID); d != nil {
		return d.Variants, nil
	}
	return nil, nil
}

func (s *InMemoryStore) ListPublicIDs(_ context.Context, domainID int64) ([]models.PublicID, error) {
	if d := s.domain(domainID); d != nil {
		return d.PublicIDs, nil
	}
	return nil, nil
}

func (s *InMemoryStore) ListRemarks(_ context.Context, domainID int64) ([]models.Remark, error) {
	if d := s.domain(domainID); d != nil {
		return d.Remarks, nil
	}
	return nil, nil
}

// FindSecureDNS returns the block without its DS and key data, which are
// listed separately.
func (s *InMemoryStore) FindSecureDNS(_ context.Context, domainID int64) (*models.SecureDNS, error) {
	d := s.domain(domainID)
	if d == nil || d.SecureDNS == nil {
		return nil, sentinel.ErrNotFound
	}
	sdns := d.SecureDNS
	sdns.DsData = nil
	sdns.KeyData = nil
	return sdns, nil
}

func (s *InMemoryStore) ListDsData(_ context.Context, secureDNSID int64) ([]models.DsData, error) {
	if sdns := s.secure(secureDNSID); sdns != nil {
		return sdns.DsData, nil
	}
	return nil, nil
}

func (s *InMemoryStore) ListKeyData(_ context.Context, secureDNSID int64) ([]models.KeyData, error) {
	if sdns := s.secure(secureDNSID); sdns != nil {
		return sdns.KeyData, nil
	}
	return nil, nil
}

func (s *InMemoryStore) ListCustomProperties(_ context.Context, domainID int64) ([]models.Property, error) {
	if d := s.domain(domainID); d != nil {
		return d.CustomProperties.Entries(), nil
	}
	return nil, nil
}
