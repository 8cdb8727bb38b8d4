package subdomain_test

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/subdomain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var labelRegEx = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

func Test_Derive(t *testing.T) {
	tests := []struct {
		name    string
		company string
		want    string
	}{
		{"simple", "Acme Co", "acme-co"},
		{"punctuation", "Acme, Inc!!", "acme-inc"},
		{"empty", "", "company"},
		{"whitespace", "   \t ", "company"},
		{"symbols only", "!!!", "company"},
		{"hyphen runs", "a  --  b", "a-b"},
		{"leading trailing", "--Acme--", "acme"},
		{"unicode", "Café Münster", "caf-m-nster"},
		{"short padded", "A", "a-co"},
		{"two chars padded", "4K", "4k-co"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := subdomain.Derive(tt.company)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func Test_Derive_Properties(t *testing.T) {
	inputs := []string{
		"Acme, Inc!!",
		"  The Very Long Company Name That Goes On And On And On And On Forever LLC  ",
		"-a-",
		"1234",
		"ACME",
		"名前のない会社",
	}

	for _, in := range inputs {
		got := subdomain.Derive(in).String()

		require.GreaterOrEqual(t, len(got), subdomain.MinLength, "input %q", in)
		require.LessOrEqual(t, len(got), subdomain.MaxLength, "input %q", in)
		require.True(t, labelRegEx.MatchString(got), "input %q derived %q", in, got)
	}
}

func Test_Variant(t *testing.T) {
	base := subdomain.Derive("Acme Co")

	assert.Equal(t, "acme-co-1", base.Variant(1).String())
	assert.Equal(t, "acme-co-99", base.Variant(99).String())
}

func Test_Variant_LengthBound(t *testing.T) {
	long := subdomain.Derive(strings.Repeat("a", 60))
	require.Len(t, long.String(), subdomain.MaxLength)

	v := long.Variant(12)
	assert.LessOrEqual(t, len(v.String()), subdomain.MaxLength)
	assert.True(t, strings.HasSuffix(v.String(), "-12"))
	assert.True(t, labelRegEx.MatchString(v.String()))
}

func Test_Fallback(t *testing.T) {
	at := time.Unix(1700004242, 0)

	got := subdomain.Fallback(at)
	assert.Equal(t, "company-4242", got.String())
}

func Test_Parse(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"valid", "acme-co", false},
		{"digits", "4k-media", false},
		{"too short", "ab", true},
		{"too long", strings.Repeat("a", 51), true},
		{"uppercase", "Acme", true},
		{"leading hyphen", "-acme", true},
		{"trailing hyphen", "acme-", true},
		{"bad chars", "acme_co", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := subdomain.Parse(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
