package mid

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/jcpaschoal/headless-cms/app/sdk/errs"
	"github.com/jcpaschoal/headless-cms/app/sdk/metrics"
	"github.com/jcpaschoal/headless-cms/business/sdk/web"
)

// TenantParam is the path value carrying the requested tenant.
const TenantParam = "tenant_id"

// Tenant binds the request to the principal's tenant. The requested tenant
// is read from the tenant_id path value, or from the tenantId field of a JSON
// body when the route has no such value. A request naming another tenant is
// rejected before any handler runs.
func Tenant() web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			claims, ok := getClaims(ctx)
			if !ok {
				return errs.Errorf(errs.Unauthenticated, "Not authenticated")
			}

			principal, err := claims.TenantUUID()
			if err != nil {
				return errs.Errorf(errs.Unauthenticated, "Invalid or expired token")
			}

			requested, named, err := requestedTenant(r)
			if err != nil {
				return errs.New(errs.InvalidArgument, err)
			}

			if named {
				id, err := uuid.Parse(requested)
				if err != nil || id != principal {
					metrics.AddGuardDenial(metrics.GuardTenant)
					return errs.Errorf(errs.PermissionDenied, "Access denied: you do not have permission to access this tenant")
				}
			}

			ctx = setTenantID(ctx, principal)

			return next(ctx, r)
		}

		return h
	}

	return m
}

// requestedTenant returns the tenant the request names and whether it names
// one at all. A tenantId body field that is not a string is returned as
// named with an empty value, which never matches a principal.
func requestedTenant(r *http.Request) (string, bool, error) {
	if v := web.Param(r, TenantParam); v != "" {
		return v, true, nil
	}

	data, err := web.PeekBody(r)
	if err != nil {
		return "", false, err
	}

	if len(data) == 0 {
		return "", false, nil
	}

	var body struct {
		TenantID json.RawMessage `json:"tenantId"`
	}

	// Malformed bodies are reported by the handler's decoder.
	if err := json.Unmarshal(data, &body); err != nil {
		return "", false, nil
	}

	raw := bytes.TrimSpace(body.TenantID)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", false, nil
	}

	var id string
	if err := json.Unmarshal(raw, &id); err != nil {
		return "", true, nil
	}

	return id, id != "", nil
}
