package schemabus

import (
	"errors"
	"fmt"

	"github.com/jcpaschoal/headless-cms/business/types/fieldtype"
)

// ErrInvalidData is returned by Check when content data does not satisfy
// the content type.
var ErrInvalidData = errors.New("data does not match content type")

// Check validates content data against the field list. Required fields
// must be present and non-null, and present values must match the
// declared primitive type. Unknown keys are allowed.
func (ct ContentType) Check(data map[string]any) error {
	var errs []error

	for _, f := range ct.Fields {
		v, exists := data[f.Name]
		if !exists || v == nil {
			if f.Required {
				errs = append(errs, fmt.Errorf("%s: is required", f.Name))
			}
			continue
		}

		if !matches(f.Type, v) {
			errs = append(errs, fmt.Errorf("%s: expected %s", f.Name, f.Type))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidData, errors.Join(errs...))
	}

	return nil
}

func matches(ft fieldtype.FieldType, v any) bool {
	switch ft {
	case fieldtype.String, fieldtype.RichText, fieldtype.Date, fieldtype.Reference:
		_, ok := v.(string)
		return ok

	case fieldtype.Number:
		switch v.(type) {
		case float64, float32, int, int32, int64:
			return true
		}
		return false

	case fieldtype.Boolean:
		_, ok := v.(bool)
		return ok

	case fieldtype.Array:
		_, ok := v.([]any)
		return ok
	}

	return true
}
