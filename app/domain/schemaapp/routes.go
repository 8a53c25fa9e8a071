package schemaapp

import (
	"net/http"

	"github.com/jcpaschoal/headless-cms/app/sdk/auth"
	"github.com/jcpaschoal/headless-cms/app/sdk/mid"
	"github.com/jcpaschoal/headless-cms/business/domain/schemabus"
	"github.com/jcpaschoal/headless-cms/business/sdk/web"
	"github.com/jcpaschoal/headless-cms/business/types/actions"
	"github.com/jcpaschoal/headless-cms/business/types/resource"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth      *auth.Auth
	SchemaBus *schemabus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, group string, cfg Config) {
	authen := mid.Authenticate(cfg.Auth)
	tenant := mid.Tenant()
	canCreate := mid.Authorize(cfg.Auth, resource.ContentType, actions.Create)
	canUpdate := mid.Authorize(cfg.Auth, resource.ContentType, actions.Update)
	canDelete := mid.Authorize(cfg.Auth, resource.ContentType, actions.Delete)

	api := newApp(cfg.SchemaBus)

	app.HandlerFunc(http.MethodGet, group, "/schemas/{tenant_id}", api.query, authen, tenant)
	app.HandlerFunc(http.MethodGet, group, "/schemas/{tenant_id}/{slug}", api.queryBySlug, authen, tenant)
	app.HandlerFunc(http.MethodPost, group, "/schemas/{tenant_id}", api.create, authen, tenant, canCreate)
	app.HandlerFunc(http.MethodPatch, group, "/schemas/{tenant_id}/{content_type_id}", api.update, authen, tenant, canUpdate)
	app.HandlerFunc(http.MethodDelete, group, "/schemas/{tenant_id}/{content_type_id}", api.delete, authen, tenant, canDelete)
}
