// Package fieldtype represents the type of a content type field.
package fieldtype

import "fmt"

// The set of field types that can be used.
var (
	String    = newFieldType("string")
	Number    = newFieldType("number")
	Boolean   = newFieldType("boolean")
	Date      = newFieldType("date")
	RichText  = newFieldType("richtext")
	Array     = newFieldType("array")
	Reference = newFieldType("reference")
)

// =============================================================================

// Set of known field types.
var fieldTypes = make(map[string]FieldType)

// FieldType represents the declared type of a schema field.
type FieldType struct {
	value string
}

func newFieldType(ft string) FieldType {
	f := FieldType{ft}
	fieldTypes[ft] = f
	return f
}

// String returns the name of the field type.
func (f FieldType) String() string {
	return f.value
}

// Equal provides support for the go-cmp package and testing.
func (f FieldType) Equal(f2 FieldType) bool {
	return f.value == f2.value
}

// MarshalText provides support for logging and any marshal needs.
func (f FieldType) MarshalText() ([]byte, error) {
	return []byte(f.value), nil
}

// UnmarshalText parses the text form of a field type.
func (f *FieldType) UnmarshalText(data []byte) error {
	ft, err := Parse(string(data))
	if err != nil {
		return err
	}

	*f = ft
	return nil
}

// =============================================================================

// Parse parses the string value and returns a field type if one exists.
func Parse(value string) (FieldType, error) {
	ft, exists := fieldTypes[value]
	if !exists {
		return FieldType{}, fmt.Errorf("invalid field type %q", value)
	}

	return ft, nil
}

// MustParse parses the string value and returns a field type if one exists.
// If an error occurs the function panics.
func MustParse(value string) FieldType {
	ft, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return ft
}
