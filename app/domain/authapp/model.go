package authapp

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jcpaschoal/headless-cms/app/sdk/errs"
	"github.com/jcpaschoal/headless-cms/business/domain/userbus"
)

// User is the principal returned alongside a token.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	TenantID string `json:"tenantId"`
}

func toAppUser(bus userbus.User) User {
	return User{
		ID:       bus.ID.String(),
		Email:    bus.Email.Address,
		Name:     bus.Name.String(),
		Role:     bus.Role.String(),
		TenantID: bus.TenantID.String(),
	}
}

// Session is the payload of a successful register or login.
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// =============================================================================

// Register defines the data needed to sign up under a tenant slug.
type Register struct {
	Email      string `json:"email" validate:"email"`
	Password   string `json:"password"`
	Name       string `json:"name"`
	TenantSlug string `json:"tenantSlug"`
}

// Decode implements the web.Decoder interface.
func (app *Register) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app Register) Validate() error {
	if blank(app.Email) || app.Password == "" || blank(app.Name) || blank(app.TenantSlug) {
		return errs.Errorf(errs.InvalidArgument, "Email, password, name, and tenantSlug are required")
	}

	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}

	return nil
}

// Login defines the credentials of a login request.
type Login struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Decode implements the web.Decoder interface.
func (app *Login) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app Login) Validate() error {
	if blank(app.Email) || app.Password == "" {
		return errs.Errorf(errs.InvalidArgument, "Email and password are required")
	}
	return nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
