// Package role represents the role type in the system.
package role

import (
	"fmt"
	"strings"
)

// The set of roles that can be used.
var (
	Admin  = newRole("admin")
	Editor = newRole("editor")
	Viewer = newRole("viewer")
)

// =============================================================================

// Set of known roles, and the same set in declaration order.
var (
	roles   = make(map[string]Role)
	ordered []Role
)

// Role represents a role in the system.
type Role struct {
	value string
}

func newRole(role string) Role {
	r := Role{role}
	roles[role] = r
	ordered = append(ordered, r)
	return r
}

// All returns every role, highest privilege first.
func All() []Role {
	return append([]Role(nil), ordered...)
}

// String returns the name of the role.
func (r Role) String() string {
	return r.value
}

// Equal provides support for the go-cmp package and testing.
func (r Role) Equal(r2 Role) bool {
	return r.value == r2.value
}

// MarshalText provides support for logging and any marshal needs.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.value), nil
}

// =============================================================================

// Parse parses the string value and returns a role if one exists. Matching
// is case-insensitive.
func Parse(value string) (Role, error) {
	role, exists := roles[strings.ToLower(strings.TrimSpace(value))]
	if !exists {
		return Role{}, fmt.Errorf("invalid role %q", value)
	}

	return role, nil
}

// MustParse parses the string value and returns a role if one exists. If
// an error occurs the function panics.
func MustParse(value string) Role {
	role, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return role
}

// Names returns the role names in the order given, joined for messages.
func Names(rs ...Role) string {
	names := make([]string, len(rs))
	for i, r := range rs {
		names[i] = r.value
	}

	return strings.Join(names, ", ")
}
