package authapp

import (
	"net/http"

	"github.com/jcpaschoal/headless-cms/app/sdk/auth"
	"github.com/jcpaschoal/headless-cms/app/sdk/mid"
	"github.com/jcpaschoal/headless-cms/business/domain/tenantbus"
	"github.com/jcpaschoal/headless-cms/business/domain/userbus"
	"github.com/jcpaschoal/headless-cms/business/sdk/sqldb"
	"github.com/jcpaschoal/headless-cms/business/sdk/web"
	"github.com/jcpaschoal/headless-cms/foundation/logger"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log       *logger.Logger
	Auth      *auth.Auth
	DB        sqldb.Beginner
	UserBus   *userbus.Core
	TenantBus *tenantbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, group string, cfg Config) {
	authen := mid.Authenticate(cfg.Auth)
	transaction := mid.BeginCommitRollback(cfg.Log, cfg.DB)

	api := newApp(cfg.Auth, cfg.UserBus, cfg.TenantBus)

	app.HandlerFunc(http.MethodPost, group, "/auth/register", api.register, transaction)
	app.HandlerFunc(http.MethodPost, group, "/auth/login", api.login)
	app.HandlerFunc(http.MethodGet, group, "/auth/me", api.me, authen)
}
