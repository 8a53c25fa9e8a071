package userapp

import (
	"net/http"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/headless-cms/app/sdk/errs"
	"github.com/jcpaschoal/headless-cms/business/domain/userbus"
	"github.com/jcpaschoal/headless-cms/business/types/name"
	"github.com/jcpaschoal/headless-cms/business/types/role"
)

type queryParams struct {
	Page             string
	Rows             string
	OrderBy          string
	ID               string
	Name             string
	Email            string
	Role             string
	IsActive         string
	CreatedAfter     string
	CreatedBefore    string
}

func parseQueryParams(r *http.Request) queryParams {
	values := r.URL.Query()

	return queryParams{
		Page:             values.Get("page"),
		Rows:             values.Get("rows"),
		OrderBy:          values.Get("orderBy"),
		ID:               values.Get("id"),
		Name:             values.Get("name"),
		Email:            values.Get("email"),
		Role:             values.Get("role"),
		IsActive:         values.Get("isActive"),
		CreatedAfter:     values.Get("createdAfter"),
		CreatedBefore:    values.Get("createdBefore"),
	}
}

// parseFilter converts the raw parameters into a filter bound to the
// tenant. Every invalid parameter is reported at once.
func parseFilter(qp queryParams, tenantID uuid.UUID) (userbus.QueryFilter, *errs.Error) {
	var fieldErrors errs.FieldErrors
	filter := userbus.QueryFilter{
		TenantID: &tenantID,
	}

	if qp.ID != "" {
		id, err := uuid.Parse(qp.ID)
		switch err {
		case nil:
			filter.ID = &id
		default:
			fieldErrors.Add("id", err)
		}
	}

	if qp.Name != "" {
		nme, err := name.Parse(qp.Name)
		switch err {
		case nil:
			filter.Name = &nme
		default:
			fieldErrors.Add("name", err)
		}
	}

	if qp.Email != "" {
		addr, err := mail.ParseAddress(strings.ToLower(qp.Email))
		switch err {
		case nil:
			filter.Email = addr
		default:
			fieldErrors.Add("email", err)
		}
	}

	if qp.Role != "" {
		rl, err := role.Parse(qp.Role)
		switch err {
		case nil:
			filter.Role = &rl
		default:
			fieldErrors.Add("role", err)
		}
	}

	if qp.IsActive != "" {
		active, err := strconv.ParseBool(qp.IsActive)
		switch err {
		case nil:
			filter.Active = &active
		default:
			fieldErrors.Add("isActive", err)
		}
	}

	if qp.CreatedAfter != "" {
		t, err := time.Parse(time.RFC3339, qp.CreatedAfter)
		switch err {
		case nil:
			filter.StartCreatedAt = &t
		default:
			fieldErrors.Add("createdAfter", err)
		}
	}

	if qp.CreatedBefore != "" {
		t, err := time.Parse(time.RFC3339, qp.CreatedBefore)
		switch err {
		case nil:
			filter.EndCreatedAt = &t
		default:
			fieldErrors.Add("createdBefore", err)
		}
	}

	if fieldErrors != nil {
		return userbus.QueryFilter{}, fieldErrors.ToError()
	}

	return filter, nil
}
