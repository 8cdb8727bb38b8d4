// Package subdomain represents the DNS-label-safe identifier assigned to a
// tenant and the rules for deriving one from a company name.
package subdomain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Length bounds for a subdomain label.
const (
	MinLength = 3
	MaxLength = 50
)

// MaxNumberedVariants bounds the numbered-variant sequence. Once a request
// has burned through this many candidates the caller must switch to a
// fallback candidate.
const MaxNumberedVariants = 100

// defaultBase is used when a company name sanitizes down to nothing.
const defaultBase = "company"

// padSuffix is appended when a sanitized name is shorter than MinLength.
const padSuffix = "-co"

// subdomainRegEx validates a complete subdomain label.
var subdomainRegEx = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

// Subdomain represents a validated subdomain label in the system.
type Subdomain struct {
	value string
}

// String returns the value of the subdomain.
func (s Subdomain) String() string {
	return s.value
}

// Equal provides support for the go-cmp package and testing.
func (s Subdomain) Equal(s2 Subdomain) bool {
	return s.value == s2.value
}

// MarshalText provides support for logging and any marshal needs.
func (s Subdomain) MarshalText() ([]byte, error) {
	return []byte(s.value), nil
}

// =============================================================================

// Parse parses the string value and returns a subdomain if the value
// complies with the rules for a subdomain.
func Parse(value string) (Subdomain, error) {
	if len(value) < MinLength || len(value) > MaxLength {
		return Subdomain{}, fmt.Errorf("subdomain %q must be between %d and %d characters", value, MinLength, MaxLength)
	}

	if !subdomainRegEx.MatchString(value) {
		return Subdomain{}, fmt.Errorf("invalid subdomain %q", value)
	}

	return Subdomain{value}, nil
}

// MustParse parses the string value and returns a subdomain if the value
// complies with the rules for a subdomain. If an error occurs the function panics.
func MustParse(value string) Subdomain {
	s, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return s
}

// =============================================================================

// Derive sanitizes a company name into a base subdomain candidate. The result
// is always a valid subdomain: lower-cased, restricted to [a-z0-9-], hyphen
// runs collapsed, leading/trailing hyphens trimmed, padded when too short and
// clamped when too long. An empty or whitespace-only company name derives the
// literal "company".
func Derive(companyName string) Subdomain {
	var b strings.Builder

	for _, r := range strings.ToLower(strings.TrimSpace(companyName)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}

	v := collapseHyphens(b.String())
	v = strings.Trim(v, "-")

	if v == "" {
		return Subdomain{defaultBase}
	}

	if len(v) > MaxLength {
		v = strings.TrimRight(v[:MaxLength], "-")
	}

	if len(v) < MinLength {
		v += padSuffix
	}

	return Subdomain{v}
}

// Variant derives the numbered fallback candidate for a collision on the
// base candidate, keeping the result inside the length bound.
func (s Subdomain) Variant(n int) Subdomain {
	suffix := "-" + strconv.Itoa(n)

	base := s.value
	if len(base)+len(suffix) > MaxLength {
		base = strings.TrimRight(base[:MaxLength-len(suffix)], "-")
	}

	return Subdomain{base + suffix}
}

// Fallback derives the last-resort candidate used once the numbered variants
// are exhausted. The caller provides the clock so the result is testable.
func Fallback(t time.Time) Subdomain {
	return Subdomain{fmt.Sprintf("%s-%d", defaultBase, t.Unix()%10000)}
}

func collapseHyphens(value string) string {
	for strings.Contains(value, "--") {
		value = strings.ReplaceAll(value, "--", "-")
	}

	return value
}
