package mid

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/jcpaschoal/headless-cms/app/sdk/metrics"
	"github.com/jcpaschoal/headless-cms/business/sdk/web"
)

// Metrics updates program counters.
func Metrics() web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			start := time.Now()

			resp := next(ctx, r)

			if checkIsError(resp) != nil {
				metrics.AddErrors()
			}

			metrics.ObserveRequest(r.Method, r.Pattern, strconv.Itoa(statusCode(resp)), time.Since(start))

			return resp
		}

		return h
	}

	return m
}
