package checkapp

import (
	"net/http"

	"github.com/jcpaschoal/headless-cms/business/sdk/web"
	"github.com/jcpaschoal/headless-cms/foundation/logger"
	"github.com/jmoiron/sqlx"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Build string
	Log   *logger.Logger
	DB    *sqlx.DB
}

// Routes adds specific routes for this group.
func Routes(app *web.App, group string, cfg Config) {
	api := newApp(cfg.Build, cfg.Log, cfg.DB)

	app.HandlerFuncNoMid(http.MethodGet, group, "/health", api.health)
	app.HandlerFuncNoMid(http.MethodGet, group, "/readiness", api.readiness)
}
