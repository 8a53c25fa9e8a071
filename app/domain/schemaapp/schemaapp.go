// Package schemaapp maintains the app layer api for the content type
// registry.
package schemaapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jcpaschoal/headless-cms/app/sdk/envelope"
	"github.com/jcpaschoal/headless-cms/app/sdk/errs"
	"github.com/jcpaschoal/headless-cms/app/sdk/mid"
	"github.com/jcpaschoal/headless-cms/business/domain/schemabus"
	"github.com/jcpaschoal/headless-cms/business/sdk/web"
	"github.com/jcpaschoal/headless-cms/business/types/slug"
)

type app struct {
	schemaBus *schemabus.Core
}

func newApp(schemaBus *schemabus.Core) *app {
	return &app{
		schemaBus: schemaBus,
	}
}

// query lists the content types of the tenant.
func (a *app) query(ctx context.Context, r *http.Request) web.Encoder {
	tenantID, err := mid.GetTenantID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	cts, err := a.schemaBus.Query(ctx, tenantID)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: tenantID[%s]: %s", tenantID, err)
	}

	return envelope.Data(toAppContentTypes(cts))
}

// queryBySlug returns a content type of the tenant by its slug.
func (a *app) queryBySlug(ctx context.Context, r *http.Request) web.Encoder {
	tenantID, err := mid.GetTenantID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	slg, err := slug.ParseLoose(web.Param(r, "slug"))
	if err != nil {
		return errs.Errorf(errs.NotFound, "Content type not found")
	}

	ct, err := a.schemaBus.QueryBySlug(ctx, tenantID, slg)
	if err != nil {
		if errors.Is(err, schemabus.ErrNotFound) {
			return errs.Errorf(errs.NotFound, "Content type not found")
		}
		return errs.Errorf(errs.InternalOnlyLog, "query: slug[%s]: %s", slg, err)
	}

	return envelope.Data(toAppContentType(ct))
}

// create registers a content type for the tenant.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewContentType
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	tenantID, err := mid.GetTenantID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	nct, err := toBusNewContentType(app, tenantID)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	ct, err := a.schemaBus.Create(ctx, nct)
	if err != nil {
		if errors.Is(err, schemabus.ErrUniqueSlug) {
			return errs.Errorf(errs.AlreadyExists, "Content type slug already exists for this tenant")
		}
		return errs.Errorf(errs.InternalOnlyLog, "create: slug[%s]: %s", nct.Slug, err)
	}

	return envelope.Created(toAppContentType(ct))
}

// update changes the name, description or fields of a content type.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateContentType
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	uct, err := toBusUpdateContentType(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	ct, appErr := a.contentType(ctx, r)
	if appErr != nil {
		return appErr
	}

	ct, err = a.schemaBus.Update(ctx, ct, uct)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "update: contentTypeID[%s]: %s", ct.ID, err)
	}

	return envelope.Data(toAppContentType(ct))
}

// delete removes a content type. Existing content is left in place.
func (a *app) delete(ctx context.Context, r *http.Request) web.Encoder {
	ct, appErr := a.contentType(ctx, r)
	if appErr != nil {
		return appErr
	}

	if err := a.schemaBus.Delete(ctx, ct); err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "delete: contentTypeID[%s]: %s", ct.ID, err)
	}

	return envelope.Message("Content type deleted successfully")
}

func (a *app) contentType(ctx context.Context, r *http.Request) (schemabus.ContentType, *errs.Error) {
	tenantID, err := mid.GetTenantID(ctx)
	if err != nil {
		return schemabus.ContentType{}, errs.New(errs.Internal, err)
	}

	ctID, err := uuid.Parse(web.Param(r, "content_type_id"))
	if err != nil {
		return schemabus.ContentType{}, errs.Errorf(errs.NotFound, "Content type not found")
	}

	ct, err := a.schemaBus.QueryByID(ctx, tenantID, ctID)
	if err != nil {
		if errors.Is(err, schemabus.ErrNotFound) {
			return schemabus.ContentType{}, errs.Errorf(errs.NotFound, "Content type not found")
		}
		return schemabus.ContentType{}, errs.Errorf(errs.InternalOnlyLog, "query: contentTypeID[%s]: %s", ctID, err)
	}

	return ct, nil
}
