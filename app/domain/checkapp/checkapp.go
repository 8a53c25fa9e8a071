// Package checkapp maintains the app layer api for the check domain.
package checkapp

import (
	"context"
	"net/http"
	"time"

	"github.com/jcpaschoal/headless-cms/app/sdk/envelope"
	"github.com/jcpaschoal/headless-cms/app/sdk/errs"
	"github.com/jcpaschoal/headless-cms/business/sdk/sqldb"
	"github.com/jcpaschoal/headless-cms/business/sdk/web"
	"github.com/jcpaschoal/headless-cms/foundation/logger"
	"github.com/jmoiron/sqlx"
)

type app struct {
	build string
	log   *logger.Logger
	db    *sqlx.DB
}

func newApp(build string, log *logger.Logger, db *sqlx.DB) *app {
	return &app{
		build: build,
		log:   log,
		db:    db,
	}
}

// health reports the process is up. It never touches the database.
func (a *app) health(ctx context.Context, r *http.Request) web.Encoder {
	return envelope.Message("CMS API is running")
}

// readiness checks if the database is ready and if not will return a 500.
func (a *app) readiness(ctx context.Context, r *http.Request) web.Encoder {
	if a.db == nil {
		return envelope.Data(Info{Build: a.build, Status: "no database configured"})
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	if err := sqldb.StatusCheck(ctx, a.db); err != nil {
		a.log.Info(ctx, "readiness failure", "ERROR", err)
		return errs.Errorf(errs.Internal, "database not ready")
	}

	return envelope.Data(Info{Build: a.build, Status: "ok"})
}

// Info represents information about the service.
type Info struct {
	Build  string `json:"build"`
	Status string `json:"status"`
}
