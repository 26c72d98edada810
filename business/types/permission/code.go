// Package permission represents the permission vocabulary of the system:
// codes in the form "resource.action", the scopes a grant can carry, and the
// registry of codes the platform recognises.
package permission

import (
	"fmt"
	"strings"

	"github.com/planora/planora/business/types/actions"
	"github.com/planora/planora/business/types/resource"
)

// Code represents a permission code in the form "resource.action". A code
// is only syntax. Whether the platform recognises it is the registry's call.
type Code struct {
	value string
}

// NewCode constructs a code from typed resource and action values.
func NewCode(res resource.Resource, act actions.Action) Code {
	return Code{value: res.String() + "." + act.String()}
}

// String returns the text form of the code.
func (c Code) String() string {
	return c.value
}

// IsZero reports whether the code carries no value.
func (c Code) IsZero() bool {
	return c.value == ""
}

// Equal provides support for the go-cmp package and testing.
func (c Code) Equal(c2 Code) bool {
	return c.value == c2.value
}

// MarshalText provides support for logging and any marshal needs.
func (c Code) MarshalText() ([]byte, error) {
	return []byte(c.value), nil
}

// =============================================================================

// ParseCode parses the string value and returns a code when the value is
// well formed. The parts are not checked against the registry so codes
// persisted before a resource was retired still round-trip.
func ParseCode(value string) (Code, error) {
	res, act, found := strings.Cut(value, ".")
	if !found || res == "" || act == "" {
		return Code{}, fmt.Errorf("invalid permission code %q", value)
	}

	return Code{value: value}, nil
}

// MustParseCode parses the string value and returns a code. If an error
// occurs the function panics.
func MustParseCode(value string) Code {
	code, err := ParseCode(value)
	if err != nil {
		panic(err)
	}

	return code
}
