package contentapp

import (
	"net/http"

	"github.com/jcpaschoal/headless-cms/app/sdk/auth"
	"github.com/jcpaschoal/headless-cms/app/sdk/mid"
	"github.com/jcpaschoal/headless-cms/business/domain/contentbus"
	"github.com/jcpaschoal/headless-cms/business/domain/userbus"
	"github.com/jcpaschoal/headless-cms/business/sdk/web"
	"github.com/jcpaschoal/headless-cms/business/types/actions"
	"github.com/jcpaschoal/headless-cms/business/types/resource"
	"github.com/jcpaschoal/headless-cms/foundation/logger"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log        *logger.Logger
	Auth       *auth.Auth
	ContentBus *contentbus.Core
	UserBus    *userbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, group string, cfg Config) {
	authen := mid.Authenticate(cfg.Auth)
	tenant := mid.Tenant()
	canCreate := mid.Authorize(cfg.Auth, resource.Content, actions.Create)
	canUpdate := mid.Authorize(cfg.Auth, resource.Content, actions.Update)
	canPublish := mid.Authorize(cfg.Auth, resource.Content, actions.Publish)
	canDelete := mid.Authorize(cfg.Auth, resource.Content, actions.Delete)

	api := newApp(cfg.Log, cfg.ContentBus, cfg.UserBus)

	app.HandlerFunc(http.MethodGet, group, "/content/{tenant_id}/{slug}", api.query, authen, tenant)
	app.HandlerFunc(http.MethodGet, group, "/content/{tenant_id}/{slug}/{content_id}", api.queryByID, authen, tenant)
	app.HandlerFunc(http.MethodPost, group, "/content/{tenant_id}/{slug}", api.create, authen, tenant, canCreate)
	app.HandlerFunc(http.MethodPatch, group, "/content/{tenant_id}/{slug}/{content_id}", api.update, authen, tenant, canUpdate)
	app.HandlerFunc(http.MethodPost, group, "/content/{tenant_id}/{slug}/{content_id}/publish", api.publish, authen, tenant, canPublish)
	app.HandlerFunc(http.MethodDelete, group, "/content/{tenant_id}/{slug}/{content_id}", api.delete, authen, tenant, canDelete)
}
