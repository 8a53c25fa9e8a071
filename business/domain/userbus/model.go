package userbus

import (
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/headless-cms/business/types/name"
	"github.com/jcpaschoal/headless-cms/business/types/password"
	"github.com/jcpaschoal/headless-cms/business/types/role"
)

// User represents a principal. A user belongs to exactly one tenant while
// the email is unique across every tenant.
type User struct {
	ID           uuid.UUID
	TenantID     uuid.UUID
	Name         name.Name
	Email        mail.Address
	Role         role.Role
	PasswordHash []byte
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser contains information needed to create a new user.
type NewUser struct {
	TenantID uuid.UUID
	Name     name.Name
	Email    mail.Address
	Role     role.Role
	Password password.Password
	Active   *bool
}

// UpdateUser contains information needed to update a user. A nil Password
// keeps the stored hash untouched.
type UpdateUser struct {
	Name     *name.Name
	Email    *mail.Address
	Role     *role.Role
	Password *password.Password
	Active   *bool
}
