// Package slug represents the lowercase keys tenants and content types are
// addressed by.
package slug

import (
	"fmt"
	"regexp"
	"strings"
)

var slugRegEx = regexp.MustCompile(`^[a-z0-9-]+$`)

// Slug represents a lowercase, URL-safe identifier.
type Slug struct {
	value string
}

// String returns the value of the slug.
func (s Slug) String() string {
	return s.value
}

// Equal provides support for the go-cmp package and testing.
func (s Slug) Equal(s2 Slug) bool {
	return s.value == s2.value
}

// MarshalText provides support for logging and any marshal needs.
func (s Slug) MarshalText() ([]byte, error) {
	return []byte(s.value), nil
}

// =============================================================================

// Parse lowercases and trims the value and checks it only carries letters,
// digits and hyphens.
func Parse(value string) (Slug, error) {
	value = strings.ToLower(strings.TrimSpace(value))

	if !slugRegEx.MatchString(value) {
		return Slug{}, fmt.Errorf("invalid slug %q: only lowercase letters, numbers and hyphens are allowed", value)
	}

	return Slug{value}, nil
}

// MustParse parses the string value and returns a slug if one exists. If
// an error occurs the function panics.
func MustParse(value string) Slug {
	s, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return s
}

// ParseLoose lowercases and trims the value. Any character is kept except
// the path separator, since the slug travels as a single path segment.
// Content type keys use this form, tenants use Parse.
func ParseLoose(value string) (Slug, error) {
	value = strings.ToLower(strings.TrimSpace(value))

	switch {
	case value == "":
		return Slug{}, fmt.Errorf("slug is required")
	case strings.Contains(value, "/"):
		return Slug{}, fmt.Errorf("invalid slug %q: must not contain '/'", value)
	}

	return Slug{value}, nil
}

// MustParseLoose is ParseLoose that panics on error.
func MustParseLoose(value string) Slug {
	s, err := ParseLoose(value)
	if err != nil {
		panic(err)
	}

	return s
}
