// Package tenantapp maintains the app layer api for the tenant domain.
package tenantapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jcpaschoal/headless-cms/app/sdk/envelope"
	"github.com/jcpaschoal/headless-cms/app/sdk/errs"
	"github.com/jcpaschoal/headless-cms/app/sdk/mid"
	"github.com/jcpaschoal/headless-cms/business/domain/tenantbus"
	"github.com/jcpaschoal/headless-cms/business/sdk/web"
)

type app struct {
	tenantBus *tenantbus.Core
}

func newApp(tenantBus *tenantbus.Core) *app {
	return &app{
		tenantBus: tenantBus,
	}
}

// mine returns the tenant of the authenticated principal.
func (a *app) mine(ctx context.Context, r *http.Request) web.Encoder {
	tenantID, err := mid.GetClaims(ctx).TenantUUID()
	if err != nil {
		return errs.Errorf(errs.Unauthenticated, "Not authenticated")
	}

	return a.respondTenant(ctx, tenantID)
}

// queryByID returns the tenant bound to the request.
func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	tenantID, err := mid.GetTenantID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	return a.respondTenant(ctx, tenantID)
}

func (a *app) respondTenant(ctx context.Context, tenantID uuid.UUID) web.Encoder {
	tnt, appErr := a.tenant(ctx, tenantID)
	if appErr != nil {
		return appErr
	}

	return envelope.Data(toAppTenant(tnt))
}

// create adds a new tenant.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewTenant
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	nt, err := toBusNewTenant(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	tnt, err := a.tenantBus.Create(ctx, nt)
	if err != nil {
		switch {
		case errors.Is(err, tenantbus.ErrUniqueSlug):
			return errs.Errorf(errs.AlreadyExists, "Tenant slug already exists")
		case errors.Is(err, tenantbus.ErrUniqueName):
			return errs.Errorf(errs.AlreadyExists, "Tenant name already exists")
		}
		return errs.Errorf(errs.InternalOnlyLog, "create: slug[%s]: %s", nt.Slug, err)
	}

	return envelope.Created(toAppTenant(tnt))
}

// update changes the name or description of the tenant.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateTenant
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	ut, err := toBusUpdateTenant(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	tenantID, err := mid.GetTenantID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	tnt, appErr := a.tenant(ctx, tenantID)
	if appErr != nil {
		return appErr
	}

	tnt, err = a.tenantBus.Update(ctx, tnt, ut)
	if err != nil {
		if errors.Is(err, tenantbus.ErrUniqueName) {
			return errs.Errorf(errs.AlreadyExists, "Tenant name already exists")
		}
		return errs.Errorf(errs.InternalOnlyLog, "update: tenantID[%s]: %s", tnt.ID, err)
	}

	return envelope.Data(toAppTenant(tnt))
}

func (a *app) tenant(ctx context.Context, tenantID uuid.UUID) (tenantbus.Tenant, *errs.Error) {
	tnt, err := a.tenantBus.QueryByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, tenantbus.ErrNotFound) {
			return tenantbus.Tenant{}, errs.Errorf(errs.NotFound, "Tenant not found")
		}
		return tenantbus.Tenant{}, errs.Errorf(errs.InternalOnlyLog, "query: tenantID[%s]: %s", tenantID, err)
	}

	return tnt, nil
}
