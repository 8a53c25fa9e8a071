// Package authapp maintains the app layer api for registration and login.
package authapp

import (
	"context"
	"errors"
	"net/http"
	"net/mail"

	"github.com/jcpaschoal/headless-cms/app/sdk/auth"
	"github.com/jcpaschoal/headless-cms/app/sdk/envelope"
	"github.com/jcpaschoal/headless-cms/app/sdk/errs"
	"github.com/jcpaschoal/headless-cms/app/sdk/mid"
	"github.com/jcpaschoal/headless-cms/business/domain/tenantbus"
	"github.com/jcpaschoal/headless-cms/business/domain/userbus"
	"github.com/jcpaschoal/headless-cms/business/sdk/web"
	"github.com/jcpaschoal/headless-cms/business/types/name"
	"github.com/jcpaschoal/headless-cms/business/types/password"
	"github.com/jcpaschoal/headless-cms/business/types/role"
	"github.com/jcpaschoal/headless-cms/business/types/slug"
)

type app struct {
	auth      *auth.Auth
	userBus   *userbus.Core
	tenantBus *tenantbus.Core
}

func newApp(ath *auth.Auth, userBus *userbus.Core, tenantBus *tenantbus.Core) *app {
	return &app{
		auth:      ath,
		userBus:   userBus,
		tenantBus: tenantBus,
	}
}

// newWithTx binds the buses to the request transaction.
func (a *app) newWithTx(ctx context.Context) (*app, error) {
	tx, err := mid.GetTran(ctx)
	if err != nil {
		return nil, err
	}

	userBus, err := a.userBus.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	tenantBus, err := a.tenantBus.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	return &app{
		auth:      a.auth,
		userBus:   userBus,
		tenantBus: tenantBus,
	}, nil
}

// register signs a user up under a tenant slug. The tenant is created when
// the slug is new and its first user becomes the admin. Later sign ups join
// the existing tenant as viewers.
func (a *app) register(ctx context.Context, r *http.Request) web.Encoder {
	var app Register
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	slg, err := slug.Parse(app.TenantSlug)
	if err != nil {
		return errs.New(errs.InvalidArgument, errs.NewFieldErrors("tenantSlug", err))
	}

	nme, err := name.Parse(app.Name)
	if err != nil {
		return errs.New(errs.InvalidArgument, errs.NewFieldErrors("name", err))
	}

	pass, err := password.Parse(app.Password)
	if err != nil {
		return errs.New(errs.InvalidArgument, errs.NewFieldErrors("password", err))
	}

	addr, err := mail.ParseAddress(app.Email)
	if err != nil {
		return errs.New(errs.InvalidArgument, errs.NewFieldErrors("email", err))
	}

	txApp, err := a.newWithTx(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	tnt, created, err := txApp.tenantBus.FindOrCreate(ctx, slg)
	if err != nil {
		switch {
		case errors.Is(err, tenantbus.ErrUniqueName):
			return errs.Errorf(errs.AlreadyExists, "Tenant name already exists")
		case errors.Is(err, tenantbus.ErrUniqueSlug):
			return errs.Errorf(errs.AlreadyExists, "Tenant slug already exists")
		}
		return errs.Errorf(errs.InternalOnlyLog, "tenant: slug[%s]: %s", slg, err)
	}

	rl := role.Viewer
	if created {
		rl = role.Admin
	}

	usr, err := txApp.userBus.Create(ctx, userbus.NewUser{
		TenantID: tnt.ID,
		Name:     nme,
		Email:    *addr,
		Role:     rl,
		Password: pass,
	})
	if err != nil {
		if errors.Is(err, userbus.ErrUniqueEmail) {
			return errs.Errorf(errs.AlreadyExists, "User already exists")
		}
		return errs.Errorf(errs.InternalOnlyLog, "create: email[%s]: %s", addr.Address, err)
	}

	token, err := a.auth.GenerateToken(auth.NewClaims(usr))
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	return envelope.Created(Session{
		User:  toAppUser(usr),
		Token: token,
	})
}

// login exchanges credentials for a token.
func (a *app) login(ctx context.Context, r *http.Request) web.Encoder {
	var app Login
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	addr, err := mail.ParseAddress(app.Email)
	if err != nil {
		return errs.Errorf(errs.Unauthenticated, "Invalid credentials")
	}

	usr, err := a.auth.Login(ctx, *addr, app.Password)
	if err != nil {
		if errors.Is(err, userbus.ErrAuthenticationFailure) {
			return errs.Errorf(errs.Unauthenticated, "Invalid credentials")
		}
		return errs.Errorf(errs.InternalOnlyLog, "login: email[%s]: %s", addr.Address, err)
	}

	token, err := a.auth.GenerateToken(auth.NewClaims(usr))
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	return envelope.Data(Session{
		User:  toAppUser(usr),
		Token: token,
	})
}

// me returns the claims of the authenticated principal.
func (a *app) me(ctx context.Context, r *http.Request) web.Encoder {
	return envelope.Data(mid.GetClaims(ctx))
}
