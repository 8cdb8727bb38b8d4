// Package password represents a plaintext password in transit through the
// system. The value is consumed once by the credential store and never
// persisted or logged.
package password

import "fmt"

// Length bounds for a password. The upper bound matches what bcrypt will
// actually hash.
const (
	MinLength = 8
	MaxLength = 72
)

// Password represents a password in the system.
type Password struct {
	value string
}

// String returns the value of the password.
func (p Password) String() string {
	return p.value
}

// Equal provides support for the go-cmp package and testing.
func (p Password) Equal(p2 Password) bool {
	return p.value == p2.value
}

// MarshalText keeps the password out of logs and marshaled output.
func (p Password) MarshalText() ([]byte, error) {
	return []byte("[REDACTED]"), nil
}

// =============================================================================

// Parse parses the string value and returns a password if the value complies
// with the rules for a password.
func Parse(value string) (Password, error) {
	if len(value) < MinLength || len(value) > MaxLength {
		return Password{}, fmt.Errorf("password must be between %d and %d characters", MinLength, MaxLength)
	}

	return Password{value}, nil
}

// MustParse parses the string value and returns a password if the value
// complies with the rules for a password. If an error occurs the function panics.
func MustParse(value string) Password {
	p, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return p
}
