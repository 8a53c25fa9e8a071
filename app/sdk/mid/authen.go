package mid

import (
	"context"
	"errors"
	"net/http"

	"github.com/jcpaschoal/headless-cms/app/sdk/auth"
	"github.com/jcpaschoal/headless-cms/app/sdk/errs"
	"github.com/jcpaschoal/headless-cms/app/sdk/metrics"
	"github.com/jcpaschoal/headless-cms/business/sdk/web"
)

// Authenticate validates the bearer token in the Authorization header and
// places the claims and the user id in the context.
func Authenticate(ath *auth.Auth) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			claims, err := ath.Authenticate(ctx, r.Header.Get("Authorization"))
			if err != nil {
				metrics.AddGuardDenial(metrics.GuardAuthenticate)

				if errors.Is(err, auth.ErrMissingHeader) {
					return errs.Errorf(errs.Unauthenticated, "Missing or invalid authorization header")
				}
				return errs.Errorf(errs.Unauthenticated, "Invalid or expired token")
			}

			userID, err := claims.UserUUID()
			if err != nil {
				return errs.Errorf(errs.Unauthenticated, "Invalid or expired token")
			}

			ctx = setUserID(ctx, userID)
			ctx = setClaims(ctx, claims)

			return next(ctx, r)
		}

		return h
	}

	return m
}
