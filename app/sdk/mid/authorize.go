package mid

import (
	"context"
	"errors"
	"net/http"

	"github.com/jcpaschoal/headless-cms/app/sdk/auth"
	"github.com/jcpaschoal/headless-cms/app/sdk/errs"
	"github.com/jcpaschoal/headless-cms/app/sdk/metrics"
	"github.com/jcpaschoal/headless-cms/business/sdk/web"
	"github.com/jcpaschoal/headless-cms/business/types/actions"
	"github.com/jcpaschoal/headless-cms/business/types/resource"
	"github.com/jcpaschoal/headless-cms/business/types/role"
)

// Authorize validates the authenticated principal's role is granted the
// action on the resource.
func Authorize(ath *auth.Auth, res resource.Resource, act actions.Action) web.MidFunc {
	allowed := role.Names(ath.AllowedRoles(res, act)...)

	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			claims, ok := getClaims(ctx)
			if !ok {
				return errs.Errorf(errs.Unauthenticated, "Not authenticated")
			}

			if err := ath.Authorize(claims, res, act); err != nil {
				if !errors.Is(err, auth.ErrForbidden) {
					return errs.New(errs.Internal, err)
				}

				metrics.AddGuardDenial(metrics.GuardAuthorize)
				return errs.Errorf(errs.PermissionDenied, "Access denied: requires one of roles: %s", allowed)
			}

			return next(ctx, r)
		}

		return h
	}

	return m
}

// AuthorizeMethod is Authorize with the action taken from the request
// method.
func AuthorizeMethod(ath *auth.Auth, res resource.Resource, method string) web.MidFunc {
	act, err := actions.FromMethod(method)
	if err != nil {
		panic(err)
	}

	return Authorize(ath, res, act)
}
