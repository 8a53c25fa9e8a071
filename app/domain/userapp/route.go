package userapp

import (
	"net/http"

	"github.com/jcpaschoal/headless-cms/app/sdk/auth"
	"github.com/jcpaschoal/headless-cms/app/sdk/mid"
	"github.com/jcpaschoal/headless-cms/business/domain/userbus"
	"github.com/jcpaschoal/headless-cms/business/sdk/web"
	"github.com/jcpaschoal/headless-cms/business/types/resource"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth    *auth.Auth
	UserBus *userbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, group string, cfg Config) {
	authen := mid.Authenticate(cfg.Auth)
	tenant := mid.Tenant()

	admin := func(method string) web.MidFunc {
		return mid.AuthorizeMethod(cfg.Auth, resource.User, method)
	}

	api := newApp(cfg.UserBus)

	app.HandlerFunc(http.MethodGet, group, "/users/{tenant_id}", api.query, authen, tenant, admin(http.MethodGet))
	app.HandlerFunc(http.MethodGet, group, "/users/{tenant_id}/{user_id}", api.queryByID, authen, tenant, admin(http.MethodGet))
	app.HandlerFunc(http.MethodPost, group, "/users/{tenant_id}", api.create, authen, tenant, admin(http.MethodPost))
	app.HandlerFunc(http.MethodPatch, group, "/users/{tenant_id}/{user_id}", api.update, authen, tenant, admin(http.MethodPatch))
	app.HandlerFunc(http.MethodDelete, group, "/users/{tenant_id}/{user_id}", api.delete, authen, tenant, notSelf, admin(http.MethodDelete))
}
