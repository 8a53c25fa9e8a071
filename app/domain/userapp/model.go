package userapp

import (
	"encoding/json"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/headless-cms/app/sdk/errs"
	"github.com/jcpaschoal/headless-cms/business/domain/userbus"
	"github.com/jcpaschoal/headless-cms/business/types/name"
	"github.com/jcpaschoal/headless-cms/business/types/password"
	"github.com/jcpaschoal/headless-cms/business/types/role"
)

// User represents information about an individual user. The password hash
// never leaves the business layer.
type User struct {
	ID        string `json:"id"`
	TenantID  string `json:"tenantId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	IsActive  bool   `json:"isActive"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToAppUser converts a business user into its public representation.
func ToAppUser(bus userbus.User) User {
	return User{
		ID:        bus.ID.String(),
		TenantID:  bus.TenantID.String(),
		Name:      bus.Name.String(),
		Email:     bus.Email.Address,
		Role:      bus.Role.String(),
		IsActive:  bus.Active,
		CreatedAt: bus.CreatedAt.Format(time.RFC3339),
		UpdatedAt: bus.UpdatedAt.Format(time.RFC3339),
	}
}

func toAppUsers(users []userbus.User) []User {
	app := make([]User, len(users))
	for i, usr := range users {
		app[i] = ToAppUser(usr)
	}
	return app
}

// =============================================================================

// NewUser defines the data needed to add a new user to the tenant.
type NewUser struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"`
	IsActive *bool  `json:"isActive"`
}

// Decode implements the web.Decoder interface.
func (app *NewUser) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewUser) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

// toBusNewUser builds the user for the tenant. The role defaults to editor.
func toBusNewUser(app NewUser, tenantID uuid.UUID) (userbus.NewUser, error) {
	rl := role.Editor
	if app.Role != "" {
		var err error
		rl, err = role.Parse(app.Role)
		if err != nil {
			return userbus.NewUser{}, fmt.Errorf("parse role: %w", err)
		}
	}

	addr, err := mail.ParseAddress(app.Email)
	if err != nil {
		return userbus.NewUser{}, fmt.Errorf("parse email: %w", err)
	}

	nme, err := name.Parse(app.Name)
	if err != nil {
		return userbus.NewUser{}, fmt.Errorf("parse name: %w", err)
	}

	pass, err := password.Parse(app.Password)
	if err != nil {
		return userbus.NewUser{}, fmt.Errorf("parse password: %w", err)
	}

	bus := userbus.NewUser{
		TenantID: tenantID,
		Name:     nme,
		Email:    *addr,
		Role:     rl,
		Password: pass,
		Active:   app.IsActive,
	}

	return bus, nil
}

// =============================================================================

// UpdateUser defines the data an admin can change on a user.
type UpdateUser struct {
	Name     *string `json:"name"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"isActive"`
	Password *string `json:"password"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateUser) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateUser) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusUpdateUser(app UpdateUser) (userbus.UpdateUser, error) {
	var nme *name.Name
	if app.Name != nil {
		nm, err := name.Parse(*app.Name)
		if err != nil {
			return userbus.UpdateUser{}, fmt.Errorf("parse name: %w", err)
		}
		nme = &nm
	}

	var rl *role.Role
	if app.Role != nil {
		r, err := role.Parse(*app.Role)
		if err != nil {
			return userbus.UpdateUser{}, fmt.Errorf("parse role: %w", err)
		}
		rl = &r
	}

	var pass *password.Password
	if app.Password != nil {
		p, err := password.Parse(*app.Password)
		if err != nil {
			return userbus.UpdateUser{}, fmt.Errorf("parse password: %w", err)
		}
		pass = &p
	}

	bus := userbus.UpdateUser{
		Name:     nme,
		Role:     rl,
		Password: pass,
		Active:   app.IsActive,
	}

	return bus, nil
}
