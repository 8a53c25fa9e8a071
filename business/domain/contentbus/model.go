package contentbus

import (
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/headless-cms/business/types/slug"
)

// Data is the free form payload of a content instance.
type Data map[string]any

// Content represents a single content instance. ContentTypeSlug is copied
// from the content type at creation and is never re-synchronized.
type Content struct {
	ID              uuid.UUID
	TenantID        uuid.UUID
	ContentTypeID   uuid.UUID
	ContentTypeSlug slug.Slug
	Data            Data
	IsDraft         bool
	PublishedAt     *time.Time
	CreatedBy       uuid.UUID
	UpdatedBy       uuid.UUID
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewContent contains information needed to create a new content instance.
// A nil IsDraft creates a draft.
type NewContent struct {
	TenantID        uuid.UUID
	ContentTypeSlug slug.Slug
	Data            Data
	IsDraft         *bool
	CreatedBy       uuid.UUID
}

// UpdateContent contains information needed to update a content instance.
type UpdateContent struct {
	Data    *Data
	IsDraft *bool
}

// QueryFilter holds the available fields a query can be filtered on.
type QueryFilter struct {
	TenantID        uuid.UUID
	ContentTypeSlug slug.Slug
	IsDraft         *bool
}
