package tenantbus

import (
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/headless-cms/business/types/name"
	"github.com/jcpaschoal/headless-cms/business/types/slug"
)

// Tenant represents an isolated customer organization. Users, content types
// and content all belong to exactly one tenant.
type Tenant struct {
	ID          uuid.UUID
	Name        name.Name
	Slug        slug.Slug
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTenant contains information needed to create a new tenant.
type NewTenant struct {
	Name        name.Name
	Slug        slug.Slug
	Description string
}

// UpdateTenant contains information needed to update a tenant.
type UpdateTenant struct {
	Name        *name.Name
	Description *string
}
