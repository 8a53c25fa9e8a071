package tenantapp

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jcpaschoal/headless-cms/app/sdk/errs"
	"github.com/jcpaschoal/headless-cms/business/domain/tenantbus"
	"github.com/jcpaschoal/headless-cms/business/types/name"
	"github.com/jcpaschoal/headless-cms/business/types/slug"
)

// Tenant represents the public view of a tenant.
type Tenant struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

func toAppTenant(bus tenantbus.Tenant) Tenant {
	return Tenant{
		ID:          bus.ID.String(),
		Name:        bus.Name.String(),
		Slug:        bus.Slug.String(),
		Description: bus.Description,
		CreatedAt:   bus.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   bus.UpdatedAt.Format(time.RFC3339),
	}
}

// =============================================================================

// NewTenant defines the data needed to add a tenant.
type NewTenant struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// Decode implements the web.Decoder interface.
func (app *NewTenant) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewTenant) Validate() error {
	if strings.TrimSpace(app.Name) == "" || strings.TrimSpace(app.Slug) == "" {
		return errs.Errorf(errs.InvalidArgument, "Name and slug are required")
	}
	return nil
}

func toBusNewTenant(app NewTenant) (tenantbus.NewTenant, error) {
	nme, err := name.Parse(app.Name)
	if err != nil {
		return tenantbus.NewTenant{}, errs.NewFieldErrors("name", err)
	}

	slg, err := slug.Parse(app.Slug)
	if err != nil {
		return tenantbus.NewTenant{}, errs.NewFieldErrors("slug", err)
	}

	bus := tenantbus.NewTenant{
		Name:        nme,
		Slug:        slg,
		Description: strings.TrimSpace(app.Description),
	}

	return bus, nil
}

// =============================================================================

// UpdateTenant defines the data an admin can change on a tenant.
type UpdateTenant struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateTenant) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

func toBusUpdateTenant(app UpdateTenant) (tenantbus.UpdateTenant, error) {
	var nme *name.Name
	if app.Name != nil {
		nm, err := name.Parse(*app.Name)
		if err != nil {
			return tenantbus.UpdateTenant{}, fmt.Errorf("parse name: %w", errs.NewFieldErrors("name", err))
		}
		nme = &nm
	}

	bus := tenantbus.UpdateTenant{
		Name:        nme,
		Description: app.Description,
	}

	return bus, nil
}
