// Package username represents the unique login identity in the system.
package username

import (
	"fmt"
	"regexp"
	"strings"
)

// usernameRegEx allows lowercase letters, digits, dots, underscores and
// hyphens, starting with a letter or digit.
var usernameRegEx = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]{2,29}$`)

// Username represents a username in the system.
type Username struct {
	value string
}

// String returns the value of the username.
func (u Username) String() string {
	return u.value
}

// Equal provides support for the go-cmp package and testing.
func (u Username) Equal(u2 Username) bool {
	return u.value == u2.value
}

// MarshalText provides support for logging and any marshal needs.
func (u Username) MarshalText() ([]byte, error) {
	return []byte(u.value), nil
}

// =============================================================================

// Parse parses the string value and returns a username if the value complies
// with the rules for a username. Input is normalized to lowercase first.
func Parse(value string) (Username, error) {
	value = strings.ToLower(strings.TrimSpace(value))

	if !usernameRegEx.MatchString(value) {
		return Username{}, fmt.Errorf("invalid username %q", value)
	}

	return Username{value}, nil
}

// MustParse parses the string value and returns a username if the value
// complies with the rules for a username. If an error occurs the function panics.
func MustParse(value string) Username {
	usr, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return usr
}
