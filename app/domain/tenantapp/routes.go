package tenantapp

import (
	"net/http"

	"github.com/jcpaschoal/headless-cms/app/sdk/auth"
	"github.com/jcpaschoal/headless-cms/app/sdk/mid"
	"github.com/jcpaschoal/headless-cms/business/domain/tenantbus"
	"github.com/jcpaschoal/headless-cms/business/sdk/web"
	"github.com/jcpaschoal/headless-cms/business/types/actions"
	"github.com/jcpaschoal/headless-cms/business/types/resource"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth      *auth.Auth
	TenantBus *tenantbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, group string, cfg Config) {
	authen := mid.Authenticate(cfg.Auth)
	tenant := mid.Tenant()
	canCreate := mid.Authorize(cfg.Auth, resource.Tenant, actions.Create)
	canUpdate := mid.Authorize(cfg.Auth, resource.Tenant, actions.Update)

	api := newApp(cfg.TenantBus)

	app.HandlerFunc(http.MethodGet, group, "/tenants", api.mine, authen)
	app.HandlerFunc(http.MethodPost, group, "/tenants", api.create, authen, canCreate)
	app.HandlerFunc(http.MethodGet, group, "/tenants/{tenant_id}", api.queryByID, authen, tenant)
	app.HandlerFunc(http.MethodPatch, group, "/tenants/{tenant_id}", api.update, authen, tenant, canUpdate)
}
