// Package userapp maintains the app layer api for the user domain.
package userapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jcpaschoal/headless-cms/app/sdk/envelope"
	"github.com/jcpaschoal/headless-cms/app/sdk/errs"
	"github.com/jcpaschoal/headless-cms/app/sdk/mid"
	"github.com/jcpaschoal/headless-cms/app/sdk/query"
	"github.com/jcpaschoal/headless-cms/business/domain/userbus"
	"github.com/jcpaschoal/headless-cms/business/sdk/order"
	"github.com/jcpaschoal/headless-cms/business/sdk/page"
	"github.com/jcpaschoal/headless-cms/business/sdk/web"
)

type app struct {
	userBus *userbus.Core
}

func newApp(userBus *userbus.Core) *app {
	return &app{
		userBus: userBus,
	}
}

// create adds a new user to the caller's tenant.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewUser
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	tenantID, err := mid.GetTenantID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	nu, err := toBusNewUser(app, tenantID)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	usr, err := a.userBus.Create(ctx, nu)
	if err != nil {
		if errors.Is(err, userbus.ErrUniqueEmail) {
			return errs.Errorf(errs.AlreadyExists, "User already exists")
		}
		return errs.Errorf(errs.InternalOnlyLog, "create: email[%s]: %s", nu.Email.Address, err)
	}

	return envelope.Created(ToAppUser(usr))
}

// update changes the name, role, status or password of a user.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateUser
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	uu, err := toBusUpdateUser(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	usr, appErr := a.userInTenant(ctx, r)
	if appErr != nil {
		return appErr
	}

	updUsr, err := a.userBus.Update(ctx, usr, uu)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "update: userID[%s]: %s", usr.ID, err)
	}

	return envelope.Data(ToAppUser(updUsr))
}

// delete removes a user. Self removal is turned away earlier by notSelf.
func (a *app) delete(ctx context.Context, r *http.Request) web.Encoder {
	usr, appErr := a.userInTenant(ctx, r)
	if appErr != nil {
		return appErr
	}

	if err := a.userBus.Delete(ctx, usr); err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "delete: userID[%s]: %s", usr.ID, err)
	}

	return envelope.Message("User deleted successfully")
}

// query returns the users of the tenant with paging.
func (a *app) query(ctx context.Context, r *http.Request) web.Encoder {
	qp := parseQueryParams(r)

	pg, err := page.Parse(qp.Page, qp.Rows)
	if err != nil {
		return errs.New(errs.InvalidArgument, errs.NewFieldErrors("page", err))
	}

	tenantID, err := mid.GetTenantID(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	filter, appErr := parseFilter(qp, tenantID)
	if appErr != nil {
		return appErr
	}

	orderBy, err := order.Parse(orderByFields, qp.OrderBy, userbus.DefaultOrderBy)
	if err != nil {
		return errs.New(errs.InvalidArgument, errs.NewFieldErrors("order", err))
	}

	usrs, err := a.userBus.Query(ctx, filter, orderBy, pg)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: %s", err)
	}

	total, err := a.userBus.Count(ctx, filter)
	if err != nil {
		return errs.Errorf(errs.Internal, "count: %s", err)
	}

	return envelope.Data(query.NewResult(toAppUsers(usrs), total, pg))
}

// queryByID returns a user of the tenant by its ID.
func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	usr, appErr := a.userInTenant(ctx, r)
	if appErr != nil {
		return appErr
	}

	return envelope.Data(ToAppUser(usr))
}

// userInTenant loads the user named by the path. Users of other tenants are
// reported as not found.
func (a *app) userInTenant(ctx context.Context, r *http.Request) (userbus.User, *errs.Error) {
	userID, err := uuid.Parse(web.Param(r, "user_id"))
	if err != nil {
		return userbus.User{}, errs.New(errs.InvalidArgument, errs.NewFieldErrors("user_id", err))
	}

	tenantID, err := mid.GetTenantID(ctx)
	if err != nil {
		return userbus.User{}, errs.New(errs.Internal, err)
	}

	usr, err := a.userBus.QueryInTenant(ctx, tenantID, userID)
	if err != nil {
		if errors.Is(err, userbus.ErrNotFound) {
			return userbus.User{}, errs.Errorf(errs.NotFound, "User not found")
		}
		return userbus.User{}, errs.Errorf(errs.InternalOnlyLog, "query: userID[%s]: %s", userID, err)
	}

	return usr, nil
}

// notSelf rejects a request whose user_id names the caller. It runs ahead of
// the role guard so the answer is the same for every role.
func notSelf(next web.HandlerFunc) web.HandlerFunc {
	h := func(ctx context.Context, r *http.Request) web.Encoder {
		callerID, err := mid.GetUserID(ctx)
		if err != nil {
			return errs.New(errs.Internal, err)
		}

		if userID, err := uuid.Parse(web.Param(r, "user_id")); err == nil && userID == callerID {
			return errs.Errorf(errs.FailedPrecondition, "You cannot delete your own account")
		}

		return next(ctx, r)
	}

	return h
}
