// Package contentapp maintains the app layer api for content instances.
package contentapp

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jcpaschoal/headless-cms/app/sdk/envelope"
	"github.com/jcpaschoal/headless-cms/app/sdk/errs"
	"github.com/jcpaschoal/headless-cms/app/sdk/mid"
	"github.com/jcpaschoal/headless-cms/business/domain/contentbus"
	"github.com/jcpaschoal/headless-cms/business/domain/schemabus"
	"github.com/jcpaschoal/headless-cms/business/domain/userbus"
	"github.com/jcpaschoal/headless-cms/business/sdk/web"
	"github.com/jcpaschoal/headless-cms/business/types/slug"
	"github.com/jcpaschoal/headless-cms/foundation/logger"
)

type app struct {
	log        *logger.Logger
	contentBus *contentbus.Core
	userBus    *userbus.Core
}

func newApp(log *logger.Logger, contentBus *contentbus.Core, userBus *userbus.Core) *app {
	return &app{
		log:        log,
		contentBus: contentBus,
		userBus:    userBus,
	}
}

// query lists the content of a content type, newest first, optionally
// filtered on the draft flag.
func (a *app) query(ctx context.Context, r *http.Request) web.Encoder {
	tenantID, slg, appErr := scope(ctx, r)
	if appErr != nil {
		return appErr
	}

	filter := contentbus.QueryFilter{
		TenantID:        tenantID,
		ContentTypeSlug: slg,
	}

	// Only the literal "true" selects drafts. Any other value selects
	// published content.
	if v := r.URL.Query().Get("isDraft"); v != "" {
		isDraft := v == "true"
		filter.IsDraft = &isDraft
	}

	cnts, err := a.contentBus.Query(ctx, filter)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: slug[%s]: %s", slg, err)
	}

	return envelope.Data(a.toAppContents(ctx, cnts))
}

// queryByID returns a single content instance.
func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	cnt, appErr := a.content(ctx, r)
	if appErr != nil {
		return appErr
	}

	return envelope.Data(a.toAppContent(ctx, cnt))
}

// create adds a content instance under the content type named by the path.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewContent
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	tenantID, slg, appErr := scope(ctx, r)
	if appErr != nil {
		return appErr
	}

	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	data, err := parseData(app.Data)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	cnt, err := a.contentBus.Create(ctx, contentbus.NewContent{
		TenantID:        tenantID,
		ContentTypeSlug: slg,
		Data:            data,
		IsDraft:         app.IsDraft,
		CreatedBy:       userID,
	})
	if err != nil {
		return busError(err, "create: slug[%s]", slg)
	}

	return envelope.Created(a.toAppContent(ctx, cnt))
}

// update changes the data or draft flag and records the editor.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateContent
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	uc, err := toBusUpdateContent(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	cnt, appErr := a.content(ctx, r)
	if appErr != nil {
		return appErr
	}

	cnt, err = a.contentBus.Update(ctx, cnt, uc, userID)
	if err != nil {
		return busError(err, "update: contentID[%s]", cnt.ID)
	}

	return envelope.Data(a.toAppContent(ctx, cnt))
}

// publish marks the content as published. Publishing again re-stamps the
// publish time.
func (a *app) publish(ctx context.Context, r *http.Request) web.Encoder {
	cnt, appErr := a.content(ctx, r)
	if appErr != nil {
		return appErr
	}

	cnt, err := a.contentBus.Publish(ctx, cnt)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "publish: contentID[%s]: %s", cnt.ID, err)
	}

	return envelope.Data(a.toAppContent(ctx, cnt)).WithMessage("Content published successfully")
}

// delete removes a content instance.
func (a *app) delete(ctx context.Context, r *http.Request) web.Encoder {
	cnt, appErr := a.content(ctx, r)
	if appErr != nil {
		return appErr
	}

	if err := a.contentBus.Delete(ctx, cnt); err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "delete: contentID[%s]: %s", cnt.ID, err)
	}

	return envelope.Message("Content deleted successfully")
}

// =============================================================================

// scope returns the tenant and content type slug every content call is
// bound to.
func scope(ctx context.Context, r *http.Request) (uuid.UUID, slug.Slug, *errs.Error) {
	tenantID, err := mid.GetTenantID(ctx)
	if err != nil {
		return uuid.Nil, slug.Slug{}, errs.New(errs.Internal, err)
	}

	slg, err := slug.ParseLoose(web.Param(r, "slug"))
	if err != nil {
		return uuid.Nil, slug.Slug{}, errs.Errorf(errs.NotFound, "Content type not found")
	}

	return tenantID, slg, nil
}

func (a *app) content(ctx context.Context, r *http.Request) (contentbus.Content, *errs.Error) {
	tenantID, slg, appErr := scope(ctx, r)
	if appErr != nil {
		return contentbus.Content{}, appErr
	}

	contentID, err := uuid.Parse(web.Param(r, "content_id"))
	if err != nil {
		return contentbus.Content{}, errs.Errorf(errs.NotFound, "Content not found")
	}

	cnt, err := a.contentBus.QueryByID(ctx, tenantID, slg, contentID)
	if err != nil {
		if errors.Is(err, contentbus.ErrNotFound) {
			return contentbus.Content{}, errs.Errorf(errs.NotFound, "Content not found")
		}
		return contentbus.Content{}, errs.Errorf(errs.InternalOnlyLog, "query: contentID[%s]: %s", contentID, err)
	}

	return cnt, nil
}

func busError(err error, format string, args ...any) *errs.Error {
	switch {
	case errors.Is(err, contentbus.ErrContentTypeNotFound):
		return errs.Errorf(errs.NotFound, "Content type not found")

	case errors.Is(err, schemabus.ErrInvalidData):
		msg := strings.ReplaceAll(err.Error(), "\n", ", ")
		if _, detail, ok := strings.Cut(msg, schemabus.ErrInvalidData.Error()+": "); ok {
			msg = detail
		}
		return errs.Errorf(errs.InvalidArgument, "Validation error: %s", msg)
	}

	args = append(args, err)
	return errs.Errorf(errs.InternalOnlyLog, format+": %s", args...)
}

// =============================================================================

func (a *app) toAppContent(ctx context.Context, cnt contentbus.Content) Content {
	return toAppContent(cnt, a.authors(ctx, []contentbus.Content{cnt}))
}

func (a *app) toAppContents(ctx context.Context, cnts []contentbus.Content) []Content {
	authors := a.authors(ctx, cnts)

	app := make([]Content, len(cnts))
	for i, cnt := range cnts {
		app[i] = toAppContent(cnt, authors)
	}

	return app
}

// authors resolves the creators and editors of the content. Users that no
// longer exist are left out and render as null.
func (a *app) authors(ctx context.Context, cnts []contentbus.Content) map[string]*Author {
	authors := make(map[string]*Author)

	lookup := func(id uuid.UUID) {
		key := id.String()
		if _, done := authors[key]; done {
			return
		}

		usr, err := a.userBus.QueryByID(ctx, id)
		if err != nil {
			if !errors.Is(err, userbus.ErrNotFound) {
				a.log.Error(ctx, "content: author lookup", "userID", key, "ERROR", err)
			}
			authors[key] = nil
			return
		}

		authors[key] = &Author{
			ID:    usr.ID.String(),
			Name:  usr.Name.String(),
			Email: usr.Email.Address,
		}
	}

	for _, cnt := range cnts {
		lookup(cnt.CreatedBy)
		lookup(cnt.UpdatedBy)
	}

	return authors
}
