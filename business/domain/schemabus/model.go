package schemabus

import (
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/headless-cms/business/types/fieldtype"
	"github.com/jcpaschoal/headless-cms/business/types/name"
	"github.com/jcpaschoal/headless-cms/business/types/slug"
)

// Field describes one entry of a content type. Fields are descriptive
// metadata and are not enforced when content is written unless enforcement
// is turned on by the caller.
type Field struct {
	Name          string
	Type          fieldtype.FieldType
	Required      bool
	DefaultValue  any
	Description   string
	ReferenceType string
	ArrayItemType string
}

// ContentType represents a tenant defined schema for a class of content.
type ContentType struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	Name        name.Name
	Slug        slug.Slug
	Description string
	Fields      []Field
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewContentType contains information needed to create a new content type.
type NewContentType struct {
	TenantID    uuid.UUID
	Name        name.Name
	Slug        slug.Slug
	Description string
	Fields      []Field
}

// UpdateContentType contains information needed to update a content type.
// The slug cannot be changed.
type UpdateContentType struct {
	Name        *name.Name
	Description *string
	Fields      *[]Field
}
