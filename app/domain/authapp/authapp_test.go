package authapp_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/jcpaschoal/headless-cms/app/domain/authapp"
	"github.com/jcpaschoal/headless-cms/app/sdk/apitest"
	"github.com/jcpaschoal/headless-cms/app/sdk/auth"
	"github.com/jcpaschoal/headless-cms/business/domain/tenantbus"
	"github.com/jcpaschoal/headless-cms/business/types/slug"
)

func register(email string, tenantSlug string) map[string]string {
	return map[string]string{
		"email":      email,
		"password":   "secret1",
		"name":       "Ada",
		"tenantSlug": tenantSlug,
	}
}

func Test_Register(t *testing.T) {
	at := apitest.New(t, "Test_Register")

	w := at.Do(t, http.MethodPost, "/api/auth/register", "", register("Ada@X.com", "Acme"))
	if w.Code != http.StatusCreated {
		t.Fatalf("first: status %d: %s", w.Code, w.Body.String())
	}

	var first authapp.Session
	apitest.Decode(t, w, &first)

	if first.User.Role != "admin" {
		t.Errorf("first user role: got %q, want admin", first.User.Role)
	}

	if first.User.Email != "ada@x.com" {
		t.Errorf("email should be lowercased, got %q", first.User.Email)
	}

	claims, err := at.Auth.VerifyToken(first.Token)
	if err != nil {
		t.Fatalf("token: %s", err)
	}

	if claims.TenantID != first.User.TenantID || claims.UserID != first.User.ID {
		t.Errorf("claims do not match the user: %+v", claims)
	}

	w = at.Do(t, http.MethodPost, "/api/auth/register", "", register("bob@x.com", "acme"))
	if w.Code != http.StatusCreated {
		t.Fatalf("second: status %d: %s", w.Code, w.Body.String())
	}

	var second authapp.Session
	apitest.Decode(t, w, &second)

	if second.User.TenantID != first.User.TenantID {
		t.Errorf("same slug should join the tenant: got %s, want %s", second.User.TenantID, first.User.TenantID)
	}

	if second.User.Role != "viewer" {
		t.Errorf("joining user role: got %q, want viewer", second.User.Role)
	}
}

func Test_RegisterDuplicateEmailRollsBack(t *testing.T) {
	at := apitest.New(t, "Test_RegisterDuplicateEmailRollsBack")

	if w := at.Do(t, http.MethodPost, "/api/auth/register", "", register("ada@x.com", "acme")); w.Code != http.StatusCreated {
		t.Fatalf("seed: status %d: %s", w.Code, w.Body.String())
	}

	before := at.DB.DB.Mutations()

	w := at.Do(t, http.MethodPost, "/api/auth/register", "", register("ada@x.com", "globex"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}

	if resp := apitest.Decode(t, w, nil); resp.Error != "User already exists" {
		t.Errorf("error: got %q", resp.Error)
	}

	if got := at.DB.DB.Mutations(); got != before {
		t.Errorf("mutations: got %d, want %d", got, before)
	}

	_, err := at.DB.BusDomain.Tenant.QueryBySlug(context.Background(), slug.MustParse("globex"))
	if !errors.Is(err, tenantbus.ErrNotFound) {
		t.Errorf("tenant should have been rolled back: got %v", err)
	}
}

func Test_AuthRoutes(t *testing.T) {
	at := apitest.New(t, "Test_AuthRoutes")

	w := at.Do(t, http.MethodPost, "/api/auth/register", "", register("ada@x.com", "acme"))
	if w.Code != http.StatusCreated {
		t.Fatalf("seed: status %d: %s", w.Code, w.Body.String())
	}

	var sess authapp.Session
	apitest.Decode(t, w, &sess)

	table := []apitest.Table{
		{
			Name:       "register-missing-fields",
			URL:        "/api/auth/register",
			Method:     http.MethodPost,
			StatusCode: http.StatusBadRequest,
			Input:      map[string]string{"email": "x@x.com"},
			ExpResp:    apitest.Response{Error: "Email, password, name, and tenantSlug are required"},
		},
		{
			Name:       "register-short-password",
			URL:        "/api/auth/register",
			Method:     http.MethodPost,
			StatusCode: http.StatusBadRequest,
			Input:      map[string]string{"email": "x@x.com", "password": "12345", "name": "X", "tenantSlug": "acme"},
			ExpResp: apitest.Response{
				Error:  "Validation error: password must be at least 6 characters",
				Fields: []apitest.Field{{Field: "password", Error: "password must be at least 6 characters"}},
			},
		},
		{
			Name:       "register-bad-slug",
			URL:        "/api/auth/register",
			Method:     http.MethodPost,
			StatusCode: http.StatusBadRequest,
			Input:      map[string]string{"email": "x@x.com", "password": "secret1", "name": "X", "tenantSlug": "bad slug!"},
			CmpFunc: func(got apitest.Response, exp apitest.Response) string {
				if len(got.Fields) != 1 || got.Fields[0].Field != "tenantSlug" {
					return "expected a tenantSlug field error"
				}
				return ""
			},
		},
		{
			Name:       "login-missing-fields",
			URL:        "/api/auth/login",
			Method:     http.MethodPost,
			StatusCode: http.StatusBadRequest,
			Input:      map[string]string{"email": "ada@x.com"},
			ExpResp:    apitest.Response{Error: "Email and password are required"},
		},
		{
			Name:       "login-wrong-password",
			URL:        "/api/auth/login",
			Method:     http.MethodPost,
			StatusCode: http.StatusUnauthorized,
			Input:      map[string]string{"email": "ada@x.com", "password": "wrong-one"},
			ExpResp:    apitest.Response{Error: "Invalid credentials"},
		},
		{
			Name:       "login-unknown-email",
			URL:        "/api/auth/login",
			Method:     http.MethodPost,
			StatusCode: http.StatusUnauthorized,
			Input:      map[string]string{"email": "nobody@x.com", "password": "secret1"},
			ExpResp:    apitest.Response{Error: "Invalid credentials"},
		},
		{
			Name:       "login",
			URL:        "/api/auth/login",
			Method:     http.MethodPost,
			StatusCode: http.StatusOK,
			Input:      map[string]string{"email": "ADA@x.com", "password": "secret1"},
			ExpResp:    apitest.Response{Success: true},
		},
		{
			Name:       "me-no-token",
			URL:        "/api/auth/me",
			Method:     http.MethodGet,
			StatusCode: http.StatusUnauthorized,
			ExpResp:    apitest.Response{Error: "Missing or invalid authorization header"},
		},
		{
			Name:       "me-bad-token",
			URL:        "/api/auth/me",
			Token:      "not-a-token",
			Method:     http.MethodGet,
			StatusCode: http.StatusUnauthorized,
			ExpResp:    apitest.Response{Error: "Invalid or expired token"},
		},
		{
			Name:       "me",
			URL:        "/api/auth/me",
			Token:      sess.Token,
			Method:     http.MethodGet,
			StatusCode: http.StatusOK,
			ExpResp:    apitest.Response{Success: true},
		},
	}

	at.Run(t, table, "auth")
}

func Test_Me(t *testing.T) {
	at := apitest.New(t, "Test_Me")

	w := at.Do(t, http.MethodPost, "/api/auth/register", "", register("ada@x.com", "acme"))

	var sess authapp.Session
	apitest.Decode(t, w, &sess)

	w = at.Do(t, http.MethodGet, "/api/auth/me", sess.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}

	var claims auth.Claims
	apitest.Decode(t, w, &claims)

	if claims.UserID != sess.User.ID || claims.TenantID != sess.User.TenantID || claims.Role != "admin" || claims.Email != "ada@x.com" {
		t.Errorf("claims mismatch: %+v", claims)
	}
}
