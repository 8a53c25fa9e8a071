package schemaapp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/headless-cms/app/sdk/errs"
	"github.com/jcpaschoal/headless-cms/business/domain/schemabus"
	"github.com/jcpaschoal/headless-cms/business/types/fieldtype"
	"github.com/jcpaschoal/headless-cms/business/types/name"
	"github.com/jcpaschoal/headless-cms/business/types/slug"
)

// Field represents one field definition of a content type.
type Field struct {
	Name          string `json:"name" validate:"required"`
	Type          string `json:"type" validate:"required"`
	Required      bool   `json:"required"`
	DefaultValue  any    `json:"defaultValue,omitempty"`
	Description   string `json:"description,omitempty"`
	ReferenceType string `json:"referenceType,omitempty"`
	ArrayItemType string `json:"arrayItemType,omitempty"`
}

// ContentType represents the public view of a content type.
type ContentType struct {
	ID          string  `json:"id"`
	TenantID    string  `json:"tenantId"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description string  `json:"description,omitempty"`
	Fields      []Field `json:"fields"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

func toAppContentType(bus schemabus.ContentType) ContentType {
	fields := make([]Field, len(bus.Fields))
	for i, f := range bus.Fields {
		fields[i] = Field{
			Name:          f.Name,
			Type:          f.Type.String(),
			Required:      f.Required,
			DefaultValue:  f.DefaultValue,
			Description:   f.Description,
			ReferenceType: f.ReferenceType,
			ArrayItemType: f.ArrayItemType,
		}
	}

	return ContentType{
		ID:          bus.ID.String(),
		TenantID:    bus.TenantID.String(),
		Name:        bus.Name.String(),
		Slug:        bus.Slug.String(),
		Description: bus.Description,
		Fields:      fields,
		CreatedAt:   bus.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   bus.UpdatedAt.Format(time.RFC3339),
	}
}

func toAppContentTypes(cts []schemabus.ContentType) []ContentType {
	app := make([]ContentType, len(cts))
	for i, ct := range cts {
		app[i] = toAppContentType(ct)
	}
	return app
}

// =============================================================================

// NewContentType defines the data needed to register a content type. Fields
// is kept raw so a non array value can be told apart from an empty one.
type NewContentType struct {
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Fields      json.RawMessage `json:"fields"`
}

// Decode implements the web.Decoder interface.
func (app *NewContentType) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewContentType) Validate() error {
	if strings.TrimSpace(app.Name) == "" || strings.TrimSpace(app.Slug) == "" {
		return errs.Errorf(errs.InvalidArgument, "Name and slug are required")
	}

	if !isArray(app.Fields) {
		return errs.Errorf(errs.InvalidArgument, "Fields must be an array")
	}

	return nil
}

func toBusNewContentType(app NewContentType, tenantID uuid.UUID) (schemabus.NewContentType, error) {
	nme, err := name.Parse(app.Name)
	if err != nil {
		return schemabus.NewContentType{}, errs.NewFieldErrors("name", err)
	}

	slg, err := slug.ParseLoose(app.Slug)
	if err != nil {
		return schemabus.NewContentType{}, errs.NewFieldErrors("slug", err)
	}

	fields, err := toBusFields(app.Fields)
	if err != nil {
		return schemabus.NewContentType{}, err
	}

	bus := schemabus.NewContentType{
		TenantID:    tenantID,
		Name:        nme,
		Slug:        slg,
		Description: app.Description,
		Fields:      fields,
	}

	return bus, nil
}

// =============================================================================

// UpdateContentType defines the data that can change on a content type.
// The slug is immutable.
type UpdateContentType struct {
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
	Fields      json.RawMessage `json:"fields"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateContentType) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateContentType) Validate() error {
	if !isArrayOrAbsent(app.Fields) {
		return errs.Errorf(errs.InvalidArgument, "Fields must be an array")
	}
	return nil
}

func toBusUpdateContentType(app UpdateContentType) (schemabus.UpdateContentType, error) {
	var nme *name.Name
	if app.Name != nil {
		nm, err := name.Parse(*app.Name)
		if err != nil {
			return schemabus.UpdateContentType{}, errs.NewFieldErrors("name", err)
		}
		nme = &nm
	}

	var fields *[]schemabus.Field
	if present(app.Fields) {
		fs, err := toBusFields(app.Fields)
		if err != nil {
			return schemabus.UpdateContentType{}, err
		}
		fields = &fs
	}

	bus := schemabus.UpdateContentType{
		Name:        nme,
		Description: app.Description,
		Fields:      fields,
	}

	return bus, nil
}

// =============================================================================

func present(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

func isArray(raw json.RawMessage) bool {
	return present(raw) && bytes.TrimSpace(raw)[0] == '['
}

func isArrayOrAbsent(raw json.RawMessage) bool {
	return !present(raw) || isArray(raw)
}

func toBusFields(raw json.RawMessage) ([]schemabus.Field, error) {
	if !present(raw) {
		return []schemabus.Field{}, nil
	}

	var appFields []Field
	if err := json.Unmarshal(raw, &appFields); err != nil {
		return nil, errs.NewFieldErrors("fields", err)
	}

	var fieldErrors errs.FieldErrors
	fields := make([]schemabus.Field, len(appFields))

	for i, f := range appFields {
		if err := errs.Check(f); err != nil {
			fieldErrors = append(fieldErrors, errs.GetFieldErrors(err)...)
			continue
		}

		ft, err := fieldtype.Parse(f.Type)
		if err != nil {
			fieldErrors.Add(fmt.Sprintf("fields[%d].type", i), err)
			continue
		}

		fields[i] = schemabus.Field{
			Name:          strings.TrimSpace(f.Name),
			Type:          ft,
			Required:      f.Required,
			DefaultValue:  f.DefaultValue,
			Description:   f.Description,
			ReferenceType: f.ReferenceType,
			ArrayItemType: f.ArrayItemType,
		}
	}

	if fieldErrors != nil {
		return nil, fieldErrors
	}

	return fields, nil
}
