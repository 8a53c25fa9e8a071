package userbus

import (
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/headless-cms/business/types/name"
	"github.com/jcpaschoal/headless-cms/business/types/role"
)

// QueryFilter holds the available fields a query can be filtered on.
// TenantID is always set by the app layer.
type QueryFilter struct {
	ID             *uuid.UUID
	TenantID       *uuid.UUID
	Name           *name.Name
	Email          *mail.Address
	Role           *role.Role
	Active         *bool
	StartCreatedAt *time.Time
	EndCreatedAt   *time.Time
}
