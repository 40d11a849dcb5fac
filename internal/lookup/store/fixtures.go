package store

import (
	"context"
	"strings"
	"time"

	"rdapd/internal/rdap/models"
)

// SampleDigest is the DS digest and DNSKEY public key used by the sample data.
const SampleDigest = "D4B7D520E7BB5F0F67674A0CCEB1E3E0614B93C4F9E99B8383F6A1E4469DA50A"

// SampleV6Reverse is a well-formed 32-nibble reverse name present in the
// sample data.
var SampleV6Reverse = "1.1." + strings.Repeat("0.", 30) + "ip6.arpa"

func ptr[T any](v T) *T { return &v }

// SampleDomains returns the registrations served in demo mode: an ASCII
// domain with every collection populated, an internationalized domain, and
// one IPv4 and one IPv6 reverse zone.
func SampleDomains() []*models.Domain {
	eventDate := time.Date(2014, 1, 1, 0, 1, 1, 0, time.UTC)
	return []*models.Domain{
		{
			Handle:      "1",
			LdhName:     "cnnic.cn",
			UnicodeName: "cnnic.cn",
			Port43:      "port43",
			Lang:        "zh",
			Status:      []string{"validated", "update prohibited"},
			Events:      []models.Event{{Action: "action1", Actor: "jiashuo", Date: &eventDate}},
			Links: []models.Link{
				{Value: "http://domainlink", Rel: "self", Href: "http://domainlink", Type: "application/rdap+json"},
				{Value: "http://domainlink2", Rel: "related", Href: "http://domainlink2", HrefLang: []string{"en", "zh"}},
			},
			Variants: []models.Variants{{
				Relation:     []string{"registered"},
				IDNTable:     "zh-cn",
				VariantNames: []models.Variant{{LdhName: "variant1", UnicodeName: "unicodeName1"}},
			}},
			PublicIDs: []models.PublicID{{Type: "type", Identifier: "identifier"}},
			Remarks: []models.Remark{{
				Title:       "Terms of Use",
				Description: []string{"description1", "description2"},
				Links:       []models.Link{{Value: "http://example.com/context_uri", Rel: "terms-of-service", Href: "http://example.com/terms"}},
			}},
			SecureDNS: &models.SecureDNS{
				ZoneSigned:       ptr(true),
				DelegationSigned: ptr(true),
				MaxSigLife:       ptr(1),
				DsData:           []models.DsData{{KeyTag: ptr(1), Algorithm: ptr(1), Digest: SampleDigest, DigestType: ptr(1)}},
				KeyData:          []models.KeyData{{Flags: ptr(1), Protocol: ptr(1), PublicKey: SampleDigest, Algorithm: ptr(1)}},
			},
			CustomProperties: models.NewProperties(
				models.Property{Key: "customKey1", Value: "customValue1"},
				models.Property{Key: "customKey2", Value: "customValue2"},
			),
		},
		{
			Handle:           "2",
			LdhName:          "xn--xkry9kk1bz66a.xn--fiqs8s",
			UnicodeName:      "清华大学.中国",
			Port43:           "port43",
			Lang:             "zh",
			Status:           []string{"validated"},
			CustomProperties: models.NewProperties(),
		},
		{
			Handle:           "3",
			LdhName:          "1.0.0.in-addr.arpa",
			UnicodeName:      "1.0.0.in-addr.arpa",
			Port43:           "port43",
			Lang:             "en",
			CustomProperties: models.NewProperties(),
		},
		{
			Handle:           "4",
			LdhName:          SampleV6Reverse,
			UnicodeName:      SampleV6Reverse,
			Lang:             "en",
			Status:           []string{"active"},
			CustomProperties: models.NewProperties(),
		},
	}
}

// Saver persists a complete aggregate.
type Saver interface {
	Save(ctx context.Context, d *models.Domain, reverse bool) (int64, error)
}

// SeedSamples saves SampleDomains into s.
func SeedSamples(ctx context.Context, s Saver) error {
	for _, d := range SampleDomains() {
		reverse := strings.HasSuffix(d.LdhName, ".arpa")
		if _, err := s.Save(ctx, d, reverse); err != nil {
			return err
		}
	}
	return nil
}
