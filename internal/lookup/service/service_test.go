package service_test

//go:generate mockgen -source=store.go -destination=mocks/mocks.go -package=mocks Store,Cache,PolicyPublisher

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"rdapd/internal/domainname"
	"rdapd/internal/lookup/service"
	"rdapd/internal/lookup/service/mocks"
	"rdapd/internal/platform/metrics"
	"rdapd/internal/policy"
	policystore "rdapd/internal/policy/store"
	"rdapd/internal/rdap/models"
	"rdapd/internal/redact"
	"rdapd/pkg/platform/sentinel"
)

const cnnicDigest = "D4B7D520E7BB5F0F67674A0CCEB1E3E0614B93C4F9E99B8383F6A1E4469DA50A"

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

type failingRedactor struct{ err error }

func (f failingRedactor) Apply(context.Context, redact.Node) error { return f.err }

type ServiceSuite struct {
	suite.Suite
	ctx      context.Context
	ctrl     *gomock.Controller
	store    *mocks.MockStore
	cache    *mocks.MockCache
	metrics  *metrics.Metrics
	policies *policy.Registry
	engine   *redact.Engine
	service  *service.Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.store = mocks.NewMockStore(s.ctrl)
	s.cache = mocks.NewMockCache(s.ctrl)
	s.metrics = metrics.New(prometheus.NewRegistry())

	s.policies = s.newRegistry(map[string][]string{"domain": {"lang"}})
	engine, err := redact.New(s.policies, redact.WithObserver(s.metrics))
	s.Require().NoError(err)
	s.engine = engine
	s.service = s.newService()
}

func (s *ServiceSuite) newRegistry(raw map[string][]string) *policy.Registry {
	reg, err := policy.NewRegistry(policystore.NewStaticSource(raw))
	s.Require().NoError(err)
	return reg
}

func (s *ServiceSuite) newService(opts ...service.Option) *service.Service {
	opts = append([]service.Option{service.WithMetrics(s.metrics), service.WithQueryTimeout(time.Second)}, opts...)
	svc, err := service.New(s.store, s.engine, s.policies, opts...)
	s.Require().NoError(err)
	return svc
}

// expectCnnic wires the store for the cnnic.cn registration.
func (s *ServiceSuite) expectCnnic() {
	eventDate := time.Date(2014, 1, 1, 0, 1, 1, 0, time.UTC)
	s.store.EXPECT().FindDomain(gomock.Any(), service.DomainQuery{LdhName: "cnnic.cn", UnicodeName: "cnnic.cn"}).
		Return(&models.Domain{ID: 1, Handle: "1", LdhName: "cnnic.cn", UnicodeName: "cnnic.cn", Port43: "port43", Lang: "zh"}, nil)
	s.store.EXPECT().ListStatus(gomock.Any(), int64(1)).Return([]string{"validated", "update prohibited"}, nil)
	s.store.EXPECT().ListEvents(gomock.Any(), int64(1)).
		Return([]models.Event{{Action: "action1", Actor: "jiashuo", Date: &eventDate}}, nil)
	s.store.EXPECT().ListLinks(gomock.Any(), int64(1)).Return([]models.Link{
		{Value: "http://domainlink", Href: "http://domainlink"},
		{Value: "http://domainlink2", Href: "http://domainlink2"},
	}, nil)
	s.store.EXPECT().ListVariants(gomock.Any(), int64(1)).Return([]models.Variants{{
		VariantNames: []models.Variant{{LdhName: "variant1", UnicodeName: "unicodeName1"}},
	}}, nil)
	s.store.EXPECT().ListPublicIDs(gomock.Any(), int64(1)).
		Return([]models.PublicID{{Type: "type", Identifier: "identifier"}}, nil)
	s.store.EXPECT().ListRemarks(gomock.Any(), int64(1)).Return([]models.Remark{{
		Title:       "Terms of Use",
		Description: []string{"description1", "description2"},
		Links:       []models.Link{{Value: "http://example.com/context_uri"}},
	}}, nil)
	s.store.EXPECT().FindSecureDNS(gomock.Any(), int64(1)).Return(&models.SecureDNS{
		ID: 7, ZoneSigned: boolPtr(true), DelegationSigned: boolPtr(true), MaxSigLife: intPtr(1),
	}, nil)
	s.store.EXPECT().ListDsData(gomock.Any(), int64(7)).Return([]models.DsData{{
		KeyTag: intPtr(1), Algorithm: intPtr(1), Digest: cnnicDigest, DigestType: intPtr(1),
	}}, nil)
	s.store.EXPECT().ListKeyData(gomock.Any(), int64(7)).Return([]models.KeyData{{
		Flags: intPtr(1), Protocol: intPtr(1), PublicKey: cnnicDigest, Algorithm: intPtr(1),
	}}, nil)
	s.store.EXPECT().ListCustomProperties(gomock.Any(), int64(1)).Return([]models.Property{
		{Key: "customKey1", Value: "customValue1"},
		{Key: "customKey2", Value: "customValue2"},
	}, nil)
}

// expectBare wires a root record with no nested rows at all.
func (s *ServiceSuite) expectBare(q service.DomainQuery, id int64) {
	s.store.EXPECT().FindDomain(gomock.Any(), q).
		Return(&models.Domain{ID: id, Handle: "h", LdhName: q.LdhName, UnicodeName: q.UnicodeName}, nil)
	s.store.EXPECT().ListStatus(gomock.Any(), id).Return(nil, nil)
	s.store.EXPECT().ListEvents(gomock.Any(), id).Return(nil, nil)
	s.store.EXPECT().ListLinks(gomock.Any(), id).Return([]models.Link{}, nil)
	s.store.EXPECT().ListVariants(gomock.Any(), id).Return(nil, nil)
	s.store.EXPECT().ListPublicIDs(gomock.Any(), id).Return(nil, nil)
	s.store.EXPECT().ListRemarks(gomock.Any(), id).Return(nil, nil)
	s.store.EXPECT().FindSecureDNS(gomock.Any(), id).Return(nil, sentinel.ErrNotFound)
	s.store.EXPECT().ListCustomProperties(gomock.Any(), id).Return(nil, nil)
}

// =============================================================================
// Construction
// =============================================================================

func (s *ServiceSuite) TestNewRequiresCollaborators() {
	_, err := service.New(nil, s.engine, s.policies)
	s.ErrorContains(err, "store is required")
	_, err = service.New(s.store, nil, s.policies)
	s.ErrorContains(err, "redactor is required")
	_, err = service.New(s.store, s.engine, nil)
	s.ErrorContains(err, "policy registry is required")
}

// =============================================================================
// LookupDomain
// =============================================================================

func (s *ServiceSuite) TestLookupAssemblesFullAggregate() {
	s.expectCnnic()

	d, err := s.service.LookupDomain(s.ctx, "cnnic.cn")
	s.Require().NoError(err)

	s.Equal("1", d.Handle)
	s.Equal("cnnic.cn", d.LdhName)
	s.Equal("cnnic.cn", d.UnicodeName)
	s.Equal("port43", d.Port43)
	s.Equal("zh", d.Lang)
	s.Equal([]string{"validated", "update prohibited"}, d.Status)

	s.Require().Len(d.Events, 1)
	s.Equal("action1", d.Events[0].Action)
	s.Equal("jiashuo", d.Events[0].Actor)
	s.Equal("2014-01-01T00:01:01Z", d.Events[0].Date.Format(time.RFC3339))

	s.Require().Len(d.Links, 2)
	s.Equal("http://domainlink", d.Links[0].Value)
	s.Equal("http://domainlink", d.Links[0].Href)

	s.Require().Len(d.Variants, 1)
	s.Equal([]models.Variant{{LdhName: "variant1", UnicodeName: "unicodeName1"}}, d.Variants[0].VariantNames)
	s.Equal([]models.PublicID{{Type: "type", Identifier: "identifier"}}, d.PublicIDs)

	s.Require().Len(d.Remarks, 1)
	s.Equal("Terms of Use", d.Remarks[0].Title)
	s.Equal([]string{"description1", "description2"}, d.Remarks[0].Description)
	s.Require().Len(d.Remarks[0].Links, 1)
	s.Equal("http://example.com/context_uri", d.Remarks[0].Links[0].Value)

	s.Require().NotNil(d.SecureDNS)
	s.Equal(1, *d.SecureDNS.MaxSigLife)
	s.True(*d.SecureDNS.ZoneSigned)
	s.True(*d.SecureDNS.DelegationSigned)
	s.Require().Len(d.SecureDNS.DsData, 1)
	s.Equal(cnnicDigest, d.SecureDNS.DsData[0].Digest)
	s.Require().Len(d.SecureDNS.KeyData, 1)
	s.Equal(1, *d.SecureDNS.KeyData[0].Flags)

	s.Require().NotNil(d.CustomProperties)
	s.Equal([]models.Property{
		{Key: "customKey1", Value: "customValue1"},
		{Key: "customKey2", Value: "customValue2"},
	}, d.CustomProperties.Entries())

	s.Equal(float64(1), promtestutil.ToFloat64(s.metrics.Lookups.WithLabelValues(metrics.OutcomeFound)))
}

func (s *ServiceSuite) TestLookupNormalizesInput() {
	s.expectBare(service.DomainQuery{LdhName: "example.com", UnicodeName: "example.com"}, 3)

	d, err := s.service.LookupDomain(s.ctx, "  Example.COM. ")
	s.Require().NoError(err)
	s.Equal("example.com", d.LdhName)
}

func (s *ServiceSuite) TestLookupUnicodeNameQueriesALabel() {
	q := service.DomainQuery{LdhName: "xn--xkry9kk1bz66a.xn--fiqs8s", UnicodeName: "清华大学.中国"}
	s.expectBare(q, 2)

	d, err := s.service.LookupDomain(s.ctx, "清华大学.中国")
	s.Require().NoError(err)
	s.Equal("xn--xkry9kk1bz66a.xn--fiqs8s", d.LdhName)
	s.Equal("清华大学.中国", d.UnicodeName)
}

func (s *ServiceSuite) TestStatusAbsentWhenNoRows() {
	s.expectBare(service.DomainQuery{LdhName: "1.0.0.in-addr.arpa", UnicodeName: "1.0.0.in-addr.arpa", Reverse: true}, 4)

	d, err := s.service.LookupDomain(s.ctx, "1.0.0.in-addr.arpa")
	s.Require().NoError(err)
	s.Nil(d.Status)
}

func (s *ServiceSuite) TestAlwaysPresentSequencesAreEmptyNotNil() {
	s.expectBare(service.DomainQuery{LdhName: "bare.cn", UnicodeName: "bare.cn"}, 5)

	d, err := s.service.LookupDomain(s.ctx, "bare.cn")
	s.Require().NoError(err)

	s.NotNil(d.Events)
	s.Empty(d.Events)
	s.NotNil(d.Links)
	s.NotNil(d.Variants)
	s.NotNil(d.PublicIDs)
	s.NotNil(d.Remarks)
	s.Require().NotNil(d.CustomProperties)
	s.Zero(d.CustomProperties.Len())
	s.Nil(d.SecureDNS)
}

func (s *ServiceSuite) TestDuplicateStatusRowsCollapse() {
	s.store.EXPECT().FindDomain(gomock.Any(), gomock.Any()).Return(&models.Domain{ID: 9}, nil)
	s.store.EXPECT().ListStatus(gomock.Any(), int64(9)).Return([]string{"active", "locked", "active"}, nil)
	s.store.EXPECT().ListEvents(gomock.Any(), int64(9)).Return(nil, nil)
	s.store.EXPECT().ListLinks(gomock.Any(), int64(9)).Return(nil, nil)
	s.store.EXPECT().ListVariants(gomock.Any(), int64(9)).Return(nil, nil)
	s.store.EXPECT().ListPublicIDs(gomock.Any(), int64(9)).Return(nil, nil)
	s.store.EXPECT().ListRemarks(gomock.Any(), int64(9)).Return(nil, nil)
	s.store.EXPECT().FindSecureDNS(gomock.Any(), int64(9)).Return(&models.SecureDNS{ID: 10}, nil)
	s.store.EXPECT().ListDsData(gomock.Any(), int64(10)).Return(nil, nil)
	s.store.EXPECT().ListKeyData(gomock.Any(), int64(10)).Return(nil, nil)
	s.store.EXPECT().ListCustomProperties(gomock.Any(), int64(9)).Return(nil, nil)

	d, err := s.service.LookupDomain(s.ctx, "dup.cn")
	s.Require().NoError(err)
	s.Equal([]string{"active", "locked"}, d.Status)
	s.Require().NotNil(d.SecureDNS)
	s.NotNil(d.SecureDNS.DsData)
	s.NotNil(d.SecureDNS.KeyData)
}

func (s *ServiceSuite) TestUnknownNameIsNotFound() {
	s.store.EXPECT().FindDomain(gomock.Any(), service.DomainQuery{LdhName: "cnnic", UnicodeName: "cnnic"}).
		Return(nil, sentinel.ErrNotFound)

	d, err := s.service.LookupDomain(s.ctx, "cnnic")
	s.Nil(d)
	s.ErrorIs(err, sentinel.ErrNotFound)
	s.Equal(float64(1), promtestutil.ToFloat64(s.metrics.Lookups.WithLabelValues(metrics.OutcomeNotFound)))
}

func (s *ServiceSuite) TestInvalidNameNeverReachesStorage() {
	for _, raw := range []string{"", "   ", "a..b", strings.Repeat("a", 64) + ".cn", "bad name.cn"} {
		_, err := s.service.LookupDomain(s.ctx, raw)
		s.ErrorIs(err, domainname.ErrInvalidName, "input %q", raw)
	}
}

func (s *ServiceSuite) TestReverseV6NibbleCount() {
	nibbles := func(n int) string {
		return strings.Repeat("0.", n) + "ip6.arpa"
	}

	s.Run("31 or 33 nibbles are not found without a store call", func() {
		for _, n := range []int{31, 33} {
			_, err := s.service.LookupDomain(s.ctx, nibbles(n))
			s.ErrorIs(err, sentinel.ErrNotFound)
		}
	})

	s.Run("f.f.f.ip6.arpa is not found", func() {
		_, err := s.service.LookupDomain(s.ctx, "f.f.f.ip6.arpa")
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("32 nibbles are queried literally", func() {
		name := nibbles(32)
		s.expectBare(service.DomainQuery{LdhName: name, UnicodeName: name, Reverse: true}, 6)
		d, err := s.service.LookupDomain(s.ctx, strings.ToUpper(name))
		s.Require().NoError(err)
		s.Equal(name, d.LdhName)
	})
}

func (s *ServiceSuite) TestStorageFaultIsNotDowngraded() {
	s.Run("root query fault", func() {
		s.store.EXPECT().FindDomain(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset"))

		_, err := s.service.LookupDomain(s.ctx, "cnnic.cn")

		var storageErr *service.StorageError
		s.Require().ErrorAs(err, &storageErr)
		s.Equal("find domain", storageErr.Op)
		s.NotErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("nested collection fault", func() {
		s.store.EXPECT().FindDomain(gomock.Any(), gomock.Any()).Return(&models.Domain{ID: 1}, nil)
		s.store.EXPECT().ListStatus(gomock.Any(), int64(1)).Return(nil, nil).AnyTimes()
		s.store.EXPECT().ListEvents(gomock.Any(), int64(1)).Return(nil, nil).AnyTimes()
		s.store.EXPECT().ListLinks(gomock.Any(), int64(1)).Return(nil, errors.New("disk on fire"))
		s.store.EXPECT().ListVariants(gomock.Any(), int64(1)).Return(nil, nil).AnyTimes()
		s.store.EXPECT().ListPublicIDs(gomock.Any(), int64(1)).Return(nil, nil).AnyTimes()
		s.store.EXPECT().ListRemarks(gomock.Any(), int64(1)).Return(nil, nil).AnyTimes()
		s.store.EXPECT().FindSecureDNS(gomock.Any(), int64(1)).Return(nil, sentinel.ErrNotFound).AnyTimes()
		s.store.EXPECT().ListCustomProperties(gomock.Any(), int64(1)).Return(nil, nil).AnyTimes()
		errorsBefore := promtestutil.ToFloat64(s.metrics.Lookups.WithLabelValues(metrics.OutcomeError))

		_, err := s.service.LookupDomain(s.ctx, "cnnic.cn")

		var storageErr *service.StorageError
		s.Require().ErrorAs(err, &storageErr)
		s.Equal("list links", storageErr.Op)
		s.Equal(errorsBefore+1, promtestutil.ToFloat64(s.metrics.Lookups.WithLabelValues(metrics.OutcomeError)))
	})

	s.Run("secure dns fault", func() {
		s.store.EXPECT().FindDomain(gomock.Any(), gomock.Any()).Return(&models.Domain{ID: 2}, nil)
		s.store.EXPECT().ListStatus(gomock.Any(), int64(2)).Return(nil, nil).AnyTimes()
		s.store.EXPECT().ListEvents(gomock.Any(), int64(2)).Return(nil, nil).AnyTimes()
		s.store.EXPECT().ListLinks(gomock.Any(), int64(2)).Return(nil, nil).AnyTimes()
		s.store.EXPECT().ListVariants(gomock.Any(), int64(2)).Return(nil, nil).AnyTimes()
		s.store.EXPECT().ListPublicIDs(gomock.Any(), int64(2)).Return(nil, nil).AnyTimes()
		s.store.EXPECT().ListRemarks(gomock.Any(), int64(2)).Return(nil, nil).AnyTimes()
		s.store.EXPECT().FindSecureDNS(gomock.Any(), int64(2)).Return(&models.SecureDNS{ID: 3}, nil)
		s.store.EXPECT().ListDsData(gomock.Any(), int64(3)).Return(nil, sentinel.ErrNotFound)
		s.store.EXPECT().ListKeyData(gomock.Any(), int64(3)).Return(nil, nil).AnyTimes()
		s.store.EXPECT().ListCustomProperties(gomock.Any(), int64(2)).Return(nil, nil).AnyTimes()

		_, err := s.service.LookupDomain(s.ctx, "cnnic.cn")

		var storageErr *service.StorageError
		s.Require().ErrorAs(err, &storageErr)
		s.Equal("list ds data", storageErr.Op)
	})
}

// =============================================================================
// Cache
// =============================================================================

func (s *ServiceSuite) TestCacheHitSkipsStore() {
	svc := s.newService(service.WithCache(s.cache))
	cached := &models.Domain{Handle: "cached", LdhName: "cnnic.cn"}
	s.cache.EXPECT().Get(gomock.Any(), "cnnic.cn").Return(cached, nil)

	d, err := svc.LookupDomain(s.ctx, "cnnic.cn")
	s.Require().NoError(err)
	s.Same(cached, d)
	s.Equal(float64(1), promtestutil.ToFloat64(s.metrics.CacheRequests.WithLabelValues("hit")))
}

func (s *ServiceSuite) TestCacheMissPopulatesCache() {
	svc := s.newService(service.WithCache(s.cache))
	s.cache.EXPECT().Get(gomock.Any(), "cnnic.cn").Return(nil, sentinel.ErrNotFound)
	s.expectCnnic()
	s.cache.EXPECT().Set(gomock.Any(), "cnnic.cn", gomock.Any()).Return(nil)

	d, err := svc.LookupDomain(s.ctx, "cnnic.cn")
	s.Require().NoError(err)
	s.Equal("1", d.Handle)
}

func (s *ServiceSuite) TestCacheFaultsAreBypassed() {
	svc := s.newService(service.WithCache(s.cache))
	s.cache.EXPECT().Get(gomock.Any(), "cnnic.cn").Return(nil, errors.New("redis down"))
	s.expectCnnic()
	s.cache.EXPECT().Set(gomock.Any(), "cnnic.cn", gomock.Any()).Return(errors.New("redis down"))

	d, err := svc.LookupDomain(s.ctx, "cnnic.cn")
	s.Require().NoError(err)
	s.Equal("1", d.Handle)
	s.Equal(float64(1), promtestutil.ToFloat64(s.metrics.CacheRequests.WithLabelValues("error")))
}

func (s *ServiceSuite) TestOpenCacheCircuitIsBypassedQuietly() {
	svc := s.newService(service.WithCache(s.cache))
	s.cache.EXPECT().Get(gomock.Any(), "cnnic.cn").Return(nil, sentinel.ErrUnavailable)
	s.expectCnnic()
	s.cache.EXPECT().Set(gomock.Any(), "cnnic.cn", gomock.Any()).Return(nil)

	_, err := svc.LookupDomain(s.ctx, "cnnic.cn")
	s.Require().NoError(err)
	s.Equal(float64(1), promtestutil.ToFloat64(s.metrics.CacheRequests.WithLabelValues("bypass")))
	s.Equal(float64(0), promtestutil.ToFloat64(s.metrics.CacheRequests.WithLabelValues("error")))
}

func (s *ServiceSuite) TestNotFoundIsNotCached() {
	svc := s.newService(service.WithCache(s.cache))
	s.cache.EXPECT().Get(gomock.Any(), "cnnic").Return(nil, sentinel.ErrNotFound)
	s.store.EXPECT().FindDomain(gomock.Any(), gomock.Any()).Return(nil, sentinel.ErrNotFound)

	_, err := svc.LookupDomain(s.ctx, "cnnic")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

// =============================================================================
// Policy
// =============================================================================

func (s *ServiceSuite) TestApplyPolicyRedactsLookupResult() {
	s.Require().NoError(s.service.ReloadPolicy(s.ctx))
	s.expectCnnic()

	d, err := s.service.LookupDomain(s.ctx, "cnnic.cn")
	s.Require().NoError(err)
	s.Require().NoError(s.service.ApplyPolicy(s.ctx, d))

	s.Empty(d.Lang)
	s.Equal("1", d.Handle)
	s.Equal("port43", d.Port43)
	s.Len(d.Links, 2)
	s.Equal(float64(1), promtestutil.ToFloat64(s.metrics.FieldsRedacted.WithLabelValues("domain")))
}

func (s *ServiceSuite) TestApplyPolicyWithoutPolicyIsNoOp() {
	s.expectCnnic()
	d, err := s.service.LookupDomain(s.ctx, "cnnic.cn")
	s.Require().NoError(err)
	want := d.Clone()

	s.Require().NoError(s.service.ApplyPolicy(s.ctx, d))
	s.Equal(want, d)
}

func (s *ServiceSuite) TestApplyPolicyToOtherRecordKinds() {
	s.policies = s.newRegistry(map[string][]string{"errorMessage": {"description"}})
	engine, err := redact.New(s.policies)
	s.Require().NoError(err)
	svc, err := service.New(s.store, engine, s.policies)
	s.Require().NoError(err)
	s.Require().NoError(svc.ReloadPolicy(s.ctx))

	msg := &models.ErrorMessage{ErrorCode: 404, Title: "Not Found", Description: []string{"no such domain"}}
	s.Require().NoError(svc.ApplyPolicy(s.ctx, msg))
	s.Nil(msg.Description)
	s.Equal("Not Found", msg.Title)
}

func (s *ServiceSuite) TestApplyPolicyFailureIsCounted() {
	svc, err := service.New(s.store, failingRedactor{err: redact.ErrDepthExceeded}, s.policies, service.WithMetrics(s.metrics))
	s.Require().NoError(err)

	err = svc.ApplyPolicy(s.ctx, &models.Domain{})
	s.ErrorIs(err, redact.ErrDepthExceeded)
	s.Equal(float64(1), promtestutil.ToFloat64(s.metrics.RedactionFailures))
}

func (s *ServiceSuite) TestReloadAndUnloadAnnounce() {
	publisher := mocks.NewMockPolicyPublisher(s.ctrl)
	svc := s.newService(service.WithPublisher(publisher))

	gomock.InOrder(
		publisher.EXPECT().Publish(gomock.Any(), policy.ActionReload).Return(nil),
		publisher.EXPECT().Publish(gomock.Any(), policy.ActionClear).Return(errors.New("redis down")),
	)

	s.Require().NoError(svc.ReloadPolicy(s.ctx))
	s.NotNil(svc.CurrentPolicy())

	svc.UnloadPolicy(s.ctx)
	s.Nil(svc.CurrentPolicy())
}

func (s *ServiceSuite) TestFailedReloadIsNotAnnounced() {
	publisher := mocks.NewMockPolicyPublisher(s.ctrl)
	reg, err := policy.NewRegistry(policystore.NewFileSource("/nonexistent/policy.yaml"))
	s.Require().NoError(err)
	svc, err := service.New(s.store, s.engine, reg, service.WithPublisher(publisher))
	s.Require().NoError(err)

	s.Error(svc.ReloadPolicy(s.ctx))
	s.Nil(svc.CurrentPolicy())
}
