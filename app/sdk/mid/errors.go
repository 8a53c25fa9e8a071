package mid

import (
	"context"
	"errors"
	"net/http"
	"path"

	"github.com/jcpaschoal/headless-cms/app/sdk/errs"
	"github.com/jcpaschoal/headless-cms/business/sdk/web"
	"github.com/jcpaschoal/headless-cms/foundation/logger"
)

const internalMessage = "Internal server error"

// Errors handles errors coming out of the call chain. Internal failures are
// logged with their origin and hidden from the client unless devMode is set,
// in which case the response also carries the source location.
func Errors(log *logger.Logger, devMode bool) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			resp := next(ctx, r)
			err := checkIsError(resp)
			if err == nil {
				return resp
			}

			var appErr *errs.Error
			if !errors.As(err, &appErr) {
				appErr = errs.New(errs.Internal, err)
			}

			log.Error(ctx, "handled error during request",
				"err", err,
				"source_err_file", path.Base(appErr.FileName),
				"source_err_func", path.Base(appErr.FuncName))

			out := *appErr

			switch out.Code {
			case errs.Internal, errs.InternalOnlyLog:
				out.Code = errs.Internal
				if !devMode {
					out.Message = internalMessage
				}
			}

			if devMode {
				out.Stack = appErr.Location() + ": " + appErr.Message
			}

			return &out
		}

		return h
	}

	return m
}
