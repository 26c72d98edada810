package permission

import "fmt"

// The set of scopes a grant can carry. All reaches every record in the
// workspace, Own only reaches records the caller owns.
var (
	Own = newScope("own")
	All = newScope("all")
)

// =============================================================================

// Set of known scopes.
var scopes = make(map[string]Scope)

// Scope represents the reach of a permission grant.
type Scope struct {
	value string
}

func newScope(scope string) Scope {
	s := Scope{scope}
	scopes[scope] = s
	return s
}

// String returns the name of the scope.
func (s Scope) String() string {
	return s.value
}

// Equal provides support for the go-cmp package and testing.
func (s Scope) Equal(s2 Scope) bool {
	return s.value == s2.value
}

// MarshalText provides support for logging and any marshal needs.
func (s Scope) MarshalText() ([]byte, error) {
	return []byte(s.value), nil
}

// Covers reports whether a grant at this scope satisfies the other scope.
// All covers both scopes, Own covers only itself.
func (s Scope) Covers(s2 Scope) bool {
	if s == All {
		return true
	}
	return s == s2
}

// =============================================================================

// ParseScope parses the string value and returns a scope if one exists.
func ParseScope(value string) (Scope, error) {
	scope, exists := scopes[value]
	if !exists {
		return Scope{}, fmt.Errorf("invalid scope %q", value)
	}

	return scope, nil
}

// MustParseScope parses the string value and returns a scope if one exists.
// If an error occurs the function panics.
func MustParseScope(value string) Scope {
	scope, err := ParseScope(value)
	if err != nil {
		panic(err)
	}

	return scope
}
