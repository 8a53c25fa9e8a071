// Package all binds all the routes into the specified app.
package all

import (
	"github.com/jcpaschoal/headless-cms/app/domain/authapp"
	"github.com/jcpaschoal/headless-cms/app/domain/checkapp"
	"github.com/jcpaschoal/headless-cms/app/domain/contentapp"
	"github.com/jcpaschoal/headless-cms/app/domain/schemaapp"
	"github.com/jcpaschoal/headless-cms/app/domain/tenantapp"
	"github.com/jcpaschoal/headless-cms/app/domain/userapp"
	"github.com/jcpaschoal/headless-cms/app/sdk/mux"
	"github.com/jcpaschoal/headless-cms/business/sdk/web"
)

// Routes constructs the add value which provides the implementation of
// of RouteAdder for specifying what routes to bind to this instance.
func Routes() add {
	return add{}
}

type add struct{}

// Add implements the RouterAdder interface.
func (add) Add(app *web.App, cfg mux.Config) {
	bus := cfg.BusConfig
	ath := cfg.AuthConfig.Auth

	checkapp.Routes(app, mux.Group, checkapp.Config{
		Build: cfg.Build,
		Log:   cfg.Log,
		DB:    cfg.DB,
	})

	authapp.Routes(app, mux.Group, authapp.Config{
		Log:       cfg.Log,
		Auth:      ath,
		DB:        cfg.Beginner,
		UserBus:   bus.UserBus,
		TenantBus: bus.TenantBus,
	})

	tenantapp.Routes(app, mux.Group, tenantapp.Config{
		Auth:      ath,
		TenantBus: bus.TenantBus,
	})

	userapp.Routes(app, mux.Group, userapp.Config{
		Auth:    ath,
		UserBus: bus.UserBus,
	})

	schemaapp.Routes(app, mux.Group, schemaapp.Config{
		Auth:      ath,
		SchemaBus: bus.SchemaBus,
	})

	contentapp.Routes(app, mux.Group, contentapp.Config{
		Log:        cfg.Log,
		Auth:       ath,
		ContentBus: bus.ContentBus,
		UserBus:    bus.UserBus,
	})
}
