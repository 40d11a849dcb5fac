package redact_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"rdapd/internal/policy"
	"rdapd/internal/rdap/models"
	"rdapd/internal/redact"
)

type staticSource struct {
	snap  *policy.Snapshot
	calls atomic.Int32
}

func (s *staticSource) Current() *policy.Snapshot {
	s.calls.Add(1)
	return s.snap
}

func sourceFor(raw map[string][]string) *staticSource {
	if raw == nil {
		return &staticSource{}
	}
	return &staticSource{snap: policy.NewSnapshot(raw, time.Now())}
}

type recordingObserver struct {
	cleared []string
}

func (o *recordingObserver) FieldRedacted(modelType, field string) {
	o.cleared = append(o.cleared, modelType+"."+field)
}

// cyclicNode points at itself through a nested field.
type cyclicNode struct {
	next *cyclicNode
}

func (c *cyclicNode) ModelType() redact.ModelType { return "cycle" }

func (c *cyclicNode) Fields() []redact.Field {
	return []redact.Field{
		redact.NestedField("next", func() redact.Node {
			if c.next == nil {
				return nil
			}
			return c.next
		}, func() { c.next = nil }),
	}
}

// brokenNode declares a nested field without a node accessor.
type brokenNode struct{}

func (brokenNode) ModelType() redact.ModelType { return "broken" }

func (brokenNode) Fields() []redact.Field {
	return []redact.Field{{Name: "child", Shape: redact.Nested, Get: func() any { return nil }, Clear: func() {}}}
}

// contact is a record kind the engine has never seen.
type contact struct {
	Name  string
	Email string
}

func (c *contact) ModelType() redact.ModelType { return "entity" }

func (c *contact) Fields() []redact.Field {
	return []redact.Field{
		redact.ScalarField("name", func() any { return c.Name }, func() { c.Name = "" }),
		redact.ScalarField("email", func() any { return c.Email }, func() { c.Email = "" }),
	}
}

func ptr[T any](v T) *T { return &v }

func fixture() *models.Domain {
	date := time.Date(2014, 1, 1, 0, 1, 1, 0, time.UTC)
	return &models.Domain{
		Handle:      "1",
		LdhName:     "cnnic.cn",
		UnicodeName: "cnnic.cn",
		Port43:      "port43",
		Lang:        "zh",
		Status:      []string{"validated"},
		Events:      []models.Event{{Action: "action1", Actor: "jiashuo", Date: &date}},
		Links: []models.Link{
			{Value: "http://domainlink", Href: "http://domainlink", Media: "screen"},
			{Value: "http://domainlink2", Href: "http://domainlink2", Media: "print"},
		},
		Variants:  []models.Variants{{VariantNames: []models.Variant{{LdhName: "variant1", UnicodeName: "unicodeName1"}}}},
		PublicIDs: []models.PublicID{{Identifier: "identifier", Type: "type"}},
		Remarks: []models.Remark{{
			Title:       "Terms of Use",
			Description: []string{"description1"},
			Links:       []models.Link{{Value: "http://example.com/context_uri", Media: "screen"}},
		}},
		SecureDNS: &models.SecureDNS{
			ZoneSigned:       ptr(true),
			DelegationSigned: ptr(true),
			MaxSigLife:       ptr(1),
			DsData:           []models.DsData{{KeyTag: ptr(1), Algorithm: ptr(1), DigestType: ptr(1), Digest: "D4B7"}},
			KeyData:          []models.KeyData{{Flags: ptr(1), Protocol: ptr(1), Algorithm: ptr(1), PublicKey: "D4B7"}},
		},
		CustomProperties: models.NewProperties(models.Property{Key: "customKey1", Value: "customValue1"}),
	}
}

// =============================================================================
// Redaction Engine Test Suite
// =============================================================================

type EngineSuite struct {
	suite.Suite
	ctx context.Context
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func (s *EngineSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *EngineSuite) newEngine(src redact.SnapshotSource, opts ...redact.Option) *redact.Engine {
	e, err := redact.New(src, opts...)
	s.Require().NoError(err)
	return e
}

func (s *EngineSuite) TestNew() {
	s.Run("nil source returns error", func() {
		_, err := redact.New(nil)
		s.Error(err)
		s.Contains(err.Error(), "policy source is required")
	})
}

func (s *EngineSuite) TestNoPolicyLeavesInputUntouched() {
	d := fixture()
	want := d.Clone()

	err := s.newEngine(sourceFor(nil)).Apply(s.ctx, d)
	s.NoError(err)
	s.Equal(want, d)
}

func (s *EngineSuite) TestNilRootIsNoOp() {
	s.NoError(s.newEngine(sourceFor(map[string][]string{"domain": {"lang"}})).Apply(s.ctx, nil))
}

func (s *EngineSuite) TestHidesLangAndKeepsEverythingElse() {
	d := fixture()
	want := d.Clone()
	want.Lang = ""

	err := s.newEngine(sourceFor(map[string][]string{"domain": {"lang"}})).Apply(s.ctx, d)
	s.NoError(err)
	s.Empty(d.Lang)
	s.Equal(want, d)
}

func (s *EngineSuite) TestNestedRecordsAreRedactedUnderTheirOwnTag() {
	d := fixture()
	err := s.newEngine(sourceFor(map[string][]string{
		"domain":    {"lang"},
		"link":      {"media"},
		"dsData":    {"digest"},
		"variant":   {"unicodeName"},
		"secureDns": {"maxSigLife"},
	})).Apply(s.ctx, d)
	s.Require().NoError(err)

	s.Empty(d.Lang)
	s.Require().Len(d.Links, 2)
	s.Empty(d.Links[0].Media)
	s.Empty(d.Links[1].Media)
	s.Equal("http://domainlink", d.Links[0].Href)
	s.Require().Len(d.Remarks, 1)
	s.Equal("Terms of Use", d.Remarks[0].Title)
	s.Empty(d.Remarks[0].Links[0].Media)
	s.Equal("http://example.com/context_uri", d.Remarks[0].Links[0].Value)
	s.Empty(d.SecureDNS.DsData[0].Digest)
	s.Equal(1, *d.SecureDNS.DsData[0].KeyTag)
	s.Nil(d.SecureDNS.MaxSigLife)
	s.Equal("variant1", d.Variants[0].VariantNames[0].LdhName)
	s.Empty(d.Variants[0].VariantNames[0].UnicodeName)
}

func (s *EngineSuite) TestFieldNamesMatchCaseInsensitively() {
	d := fixture()
	err := s.newEngine(sourceFor(map[string][]string{"domain": {"LANG", "Port43", "SECUREDNS"}})).Apply(s.ctx, d)
	s.NoError(err)
	s.Empty(d.Lang)
	s.Empty(d.Port43)
	s.Nil(d.SecureDNS)
}

func (s *EngineSuite) TestModelTypeTagsAreExact() {
	d := fixture()
	err := s.newEngine(sourceFor(map[string][]string{"Domain": {"lang"}})).Apply(s.ctx, d)
	s.NoError(err)
	s.Equal("zh", d.Lang)
}

func (s *EngineSuite) TestHiddenNestedRecordIsRemoved() {
	d := fixture()
	obs := &recordingObserver{}
	err := s.newEngine(sourceFor(map[string][]string{
		"domain": {"secureDns"},
		"dsData": {"digest"},
	}), redact.WithObserver(obs)).Apply(s.ctx, d)
	s.NoError(err)
	s.Nil(d.SecureDNS)
	s.Equal([]string{"domain.secureDns"}, obs.cleared)
}

func (s *EngineSuite) TestHiddenListStillWalksItsElements() {
	d := fixture()
	links := d.Links
	obs := &recordingObserver{}

	err := s.newEngine(sourceFor(map[string][]string{
		"domain": {"links"},
		"link":   {"media"},
	}), redact.WithObserver(obs)).Apply(s.ctx, d)
	s.NoError(err)

	s.Nil(d.Links)
	s.Empty(links[0].Media)
	s.Empty(links[1].Media)
	s.Equal([]string{
		"domain.links",
		"link.media",
		"link.media",
		"link.media",
	}, obs.cleared)
}

func (s *EngineSuite) TestRedactionIsIdempotent() {
	raw := map[string][]string{
		"domain":  {"lang", "status", "customProperties"},
		"link":    {"href"},
		"keyData": {"publicKey"},
	}
	once := fixture()
	twice := fixture()
	engine := s.newEngine(sourceFor(raw))

	s.Require().NoError(engine.Apply(s.ctx, once))
	s.Require().NoError(engine.Apply(s.ctx, twice))
	s.Require().NoError(engine.Apply(s.ctx, twice))
	s.Equal(once, twice)
	s.Nil(once.Status)
	s.Nil(once.CustomProperties)
}

func (s *EngineSuite) TestFieldsAreVisitedInDeclaredOrder() {
	raw := map[string][]string{"domain": {"port43", "handle", "lang"}}
	first := &recordingObserver{}
	second := &recordingObserver{}

	s.Require().NoError(s.newEngine(sourceFor(raw), redact.WithObserver(first)).Apply(s.ctx, fixture()))
	s.Require().NoError(s.newEngine(sourceFor(raw), redact.WithObserver(second)).Apply(s.ctx, fixture()))
	s.Equal([]string{"domain.handle", "domain.port43", "domain.lang"}, first.cleared)
	s.Equal(first.cleared, second.cleared)
}

func (s *EngineSuite) TestReadsPolicyOncePerPass() {
	src := sourceFor(map[string][]string{"link": {"media"}})
	s.Require().NoError(s.newEngine(src).Apply(s.ctx, fixture()))
	s.Equal(int32(1), src.calls.Load())
}

func (s *EngineSuite) TestUnknownRecordKindsNeedOnlyTheCapability() {
	c := &contact{Name: "Jane", Email: "jane@example.com"}
	err := s.newEngine(sourceFor(map[string][]string{"entity": {"email"}})).Apply(s.ctx, c)
	s.NoError(err)
	s.Equal("Jane", c.Name)
	s.Empty(c.Email)
}

func (s *EngineSuite) TestErrorMessageIsRedactedUnderItsOwnTag() {
	m := &models.ErrorMessage{ErrorCode: 404, Title: "Not Found", Lang: "en"}
	err := s.newEngine(sourceFor(map[string][]string{"errorMessage": {"lang"}})).Apply(s.ctx, m)
	s.NoError(err)
	s.Empty(m.Lang)
	s.Equal(404, m.ErrorCode)
}

func (s *EngineSuite) TestCycleFailsWithDepthExceeded() {
	c := &cyclicNode{}
	c.next = c

	err := s.newEngine(sourceFor(map[string][]string{"other": {"x"}}), redact.WithMaxDepth(8)).Apply(s.ctx, c)
	s.ErrorIs(err, redact.ErrDepthExceeded)
}

func (s *EngineSuite) TestShapeMismatchPropagates() {
	err := s.newEngine(sourceFor(map[string][]string{"broken": {"child"}})).Apply(s.ctx, brokenNode{})
	s.ErrorIs(err, redact.ErrInvalidField)
}

func (s *EngineSuite) TestDefaultDepthAllowsAssembledAggregates() {
	deep := &cyclicNode{}
	cur := deep
	for i := 0; i < redact.DefaultMaxDepth-2; i++ {
		cur.next = &cyclicNode{}
		cur = cur.next
	}
	s.NoError(s.newEngine(sourceFor(map[string][]string{"cycle": {"missing"}})).Apply(s.ctx, deep))
}
