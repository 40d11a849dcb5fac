// Package domainname turns a user-supplied domain name into its canonical
// ASCII and Unicode forms and classifies it as an ordinary name or a reverse
// (arpa) zone name.
package domainname

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/miekg/dns"
	"golang.org/x/net/idna"
)

// ErrInvalidName marks malformed input. It is a client error and never retried.
var ErrInvalidName = errors.New("invalid domain name")

const (
	maxNameLength  = 253
	maxLabelLength = 63

	reverseV4Suffix  = "in-addr.arpa"
	reverseV6Suffix  = "ip6.arpa"
	maxV4Octets      = 4
	ipv6NibbleLabels = 32
)

// Classification says what kind of name was supplied.
type Classification int

const (
	// Invalid is a reverse zone name whose address labels are malformed.
	// Callers treat it as "not found".
	Invalid Classification = iota
	Ordinary
	ReverseV4
	ReverseV6
)

func (c Classification) String() string {
	switch c {
	case Ordinary:
		return "ordinary"
	case ReverseV4:
		return "reverse_v4"
	case ReverseV6:
		return "reverse_v6"
	default:
		return "invalid"
	}
}

// Name is a normalized domain name.
type Name struct {
	Unicode string
	ASCII   string
	Class   Classification
}

// IsReverse reports whether the name lives in a reverse zone. Reverse names
// are matched on their literal form rather than an IDNA conversion.
func (n Name) IsReverse() bool {
	return n.Class == ReverseV4 || n.Class == ReverseV6
}

// Normalize canonicalizes raw. It is pure and safe for concurrent use.
//
// A malformed name returns ErrInvalidName. A well-formed name under
// in-addr.arpa or ip6.arpa whose address labels break the reverse zone rules
// is returned with Class Invalid and a nil error.
func Normalize(raw string) (Name, error) {
	name := strings.TrimSuffix(strings.TrimSpace(raw), ".")
	if name == "" {
		return Name{}, fmt.Errorf("%w: empty name", ErrInvalidName)
	}

	ascii, err := toASCII(name)
	if err != nil {
		return Name{}, err
	}
	labels, err := checkStructure(ascii)
	if err != nil {
		return Name{}, err
	}

	class := classify(labels)
	if class != Ordinary {
		return Name{Unicode: ascii, ASCII: ascii, Class: class}, nil
	}
	if err := checkHostLabels(labels); err != nil {
		return Name{}, err
	}
	return Name{Unicode: toUnicode(ascii), ASCII: ascii, Class: Ordinary}, nil
}

func toASCII(name string) (string, error) {
	if isASCII(name) {
		return strings.ToLower(name), nil
	}
	ascii, err := idna.Lookup.ToASCII(name)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidName, err)
	}
	return strings.ToLower(ascii), nil
}

func toUnicode(ascii string) string {
	if !strings.Contains(ascii, "xn--") {
		return ascii
	}
	u, err := idna.Display.ToUnicode(ascii)
	if err != nil {
		return ascii
	}
	return u
}

func checkStructure(ascii string) ([]string, error) {
	if len(ascii) > maxNameLength {
		return nil, fmt.Errorf("%w: name exceeds %d octets", ErrInvalidName, maxNameLength)
	}
	if strings.ContainsAny(ascii, `\ `) {
		return nil, fmt.Errorf("%w: illegal character", ErrInvalidName)
	}
	if _, ok := dns.IsDomainName(ascii); !ok {
		return nil, fmt.Errorf("%w: malformed labels", ErrInvalidName)
	}
	labels := dns.SplitDomainName(ascii)
	if len(labels) == 0 {
		return nil, fmt.Errorf("%w: no labels", ErrInvalidName)
	}
	for _, l := range labels {
		if l == "" {
			return nil, fmt.Errorf("%w: empty label", ErrInvalidName)
		}
		if len(l) > maxLabelLength {
			return nil, fmt.Errorf("%w: label exceeds %d octets", ErrInvalidName, maxLabelLength)
		}
	}
	return labels, nil
}

// checkHostLabels applies the letters-digits-hyphen rule to an ordinary name,
// matching what IDNA lookup enforces on non-ASCII input.
func checkHostLabels(labels []string) error {
	for _, l := range labels {
		if l[0] == '-' || l[len(l)-1] == '-' {
			return fmt.Errorf("%w: label %q starts or ends with a hyphen", ErrInvalidName, l)
		}
		for i := 0; i < len(l); i++ {
			if !isLDH(l[i]) {
				return fmt.Errorf("%w: label %q contains %q", ErrInvalidName, l, l[i])
			}
		}
	}
	return nil
}

func classify(labels []string) Classification {
	if prefix, ok := cutSuffix(labels, reverseV4Suffix); ok {
		if validV4Octets(prefix) {
			return ReverseV4
		}
		return Invalid
	}
	if prefix, ok := cutSuffix(labels, reverseV6Suffix); ok {
		if validV6Nibbles(prefix) {
			return ReverseV6
		}
		return Invalid
	}
	return Ordinary
}

// cutSuffix reports whether labels end with the labels of suffix and returns
// the labels that precede it.
func cutSuffix(labels []string, suffix string) ([]string, bool) {
	want := strings.Split(suffix, ".")
	if len(labels) < len(want) {
		return nil, false
	}
	tail := labels[len(labels)-len(want):]
	for i := range want {
		if tail[i] != want[i] {
			return nil, false
		}
	}
	return labels[:len(labels)-len(want)], true
}

// validV4Octets accepts one to four octet labels. The leftmost label may be
// an RFC 2317 classless delegation such as "0-25" or "0/25".
func validV4Octets(labels []string) bool {
	if len(labels) == 0 || len(labels) > maxV4Octets {
		return false
	}
	for i, l := range labels {
		if sep := strings.IndexAny(l, "-/"); i == 0 && sep >= 0 {
			if !validOctet(l[:sep]) || !validOctet(l[sep+1:]) {
				return false
			}
			continue
		}
		if !validOctet(l) {
			return false
		}
	}
	return true
}

func validOctet(l string) bool {
	if len(l) == 0 || len(l) > 3 || (len(l) > 1 && l[0] == '0') {
		return false
	}
	for i := 0; i < len(l); i++ {
		if l[i] < '0' || l[i] > '9' {
			return false
		}
	}
	n, _ := strconv.Atoi(l)
	return n <= 255
}

func validV6Nibbles(labels []string) bool {
	if len(labels) != ipv6NibbleLabels {
		return false
	}
	for _, l := range labels {
		if len(l) != 1 || !isHexDigit(l[0]) {
			return false
		}
	}
	return true
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f')
}

func isLDH(c byte) bool {
	return ('a' <= c && c <= 'z') || ('0' <= c && c <= '9') || c == '-'
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
