package userapp_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/jcpaschoal/headless-cms/app/domain/userapp"
	"github.com/jcpaschoal/headless-cms/app/sdk/apitest"
	"github.com/jcpaschoal/headless-cms/app/sdk/query"
	"github.com/jcpaschoal/headless-cms/business/domain/userbus"
	"github.com/jcpaschoal/headless-cms/business/types/role"
)

type fixture struct {
	at       *apitest.Test
	tenantID string
	admin    userbus.User
	editor   userbus.User
	viewer   userbus.User
	other    userbus.User
}

func newFixture(t *testing.T, testName string) fixture {
	at := apitest.New(t, testName)

	acme := at.DB.SeedTenant(t, "acme")
	globex := at.DB.SeedTenant(t, "globex")

	return fixture{
		at:       at,
		tenantID: acme.ID.String(),
		admin:    at.DB.SeedUser(t, acme.ID, "admin@acme.io", role.Admin),
		editor:   at.DB.SeedUser(t, acme.ID, "editor@acme.io", role.Editor),
		viewer:   at.DB.SeedUser(t, acme.ID, "viewer@acme.io", role.Viewer),
		other:    at.DB.SeedUser(t, globex.ID, "admin@globex.io", role.Admin),
	}
}

func Test_UserRoutes(t *testing.T) {
	f := newFixture(t, "Test_UserRoutes")

	adminToken := f.at.Token(t, f.admin)
	base := "/api/users/" + f.tenantID

	table := []apitest.Table{
		{
			Name:       "editor-cannot-list",
			URL:        base,
			Token:      f.at.Token(t, f.editor),
			Method:     http.MethodGet,
			StatusCode: http.StatusForbidden,
			ExpResp:    apitest.Response{Error: "Access denied: requires one of roles: admin"},
		},
		{
			Name:       "other-tenant-admin",
			URL:        base,
			Token:      f.at.Token(t, f.other),
			Method:     http.MethodGet,
			StatusCode: http.StatusForbidden,
			ExpResp:    apitest.Response{Error: "Access denied: you do not have permission to access this tenant"},
		},
		{
			Name:       "self-delete",
			URL:        base + "/" + f.admin.ID.String(),
			Token:      adminToken,
			Method:     http.MethodDelete,
			StatusCode: http.StatusBadRequest,
			ExpResp:    apitest.Response{Error: "You cannot delete your own account"},
		},
		{
			Name:       "self-delete-editor",
			URL:        base + "/" + f.editor.ID.String(),
			Token:      f.at.Token(t, f.editor),
			Method:     http.MethodDelete,
			StatusCode: http.StatusBadRequest,
			ExpResp:    apitest.Response{Error: "You cannot delete your own account"},
		},
		{
			Name:       "self-delete-viewer",
			URL:        base + "/" + f.viewer.ID.String(),
			Token:      f.at.Token(t, f.viewer),
			Method:     http.MethodDelete,
			StatusCode: http.StatusBadRequest,
			ExpResp:    apitest.Response{Error: "You cannot delete your own account"},
		},
		{
			Name:       "editor-deletes-other",
			URL:        base + "/" + f.viewer.ID.String(),
			Token:      f.at.Token(t, f.editor),
			Method:     http.MethodDelete,
			StatusCode: http.StatusForbidden,
			ExpResp:    apitest.Response{Error: "Access denied: requires one of roles: admin"},
		},
		{
			Name:       "user-of-other-tenant",
			URL:        base + "/" + f.other.ID.String(),
			Token:      adminToken,
			Method:     http.MethodGet,
			StatusCode: http.StatusNotFound,
			ExpResp:    apitest.Response{Error: "User not found"},
		},
		{
			Name:       "duplicate-email",
			URL:        base,
			Token:      adminToken,
			Method:     http.MethodPost,
			StatusCode: http.StatusBadRequest,
			Input:      map[string]any{"name": "Dup", "email": "ADMIN@globex.io", "password": "secret1"},
			ExpResp:    apitest.Response{Error: "User already exists"},
		},
		{
			Name:       "invalid-email",
			URL:        base,
			Token:      adminToken,
			Method:     http.MethodPost,
			StatusCode: http.StatusBadRequest,
			Input:      map[string]any{"name": "Bad", "email": "not-an-email", "password": "secret1"},
			CmpFunc: func(got apitest.Response, exp apitest.Response) string {
				if len(got.Fields) != 1 || got.Fields[0].Field != "email" {
					return fmt.Sprintf("expected an email field error, got %+v", got)
				}
				return ""
			},
		},
		{
			Name:       "delete-editor",
			URL:        base + "/" + f.editor.ID.String(),
			Token:      adminToken,
			Method:     http.MethodDelete,
			StatusCode: http.StatusOK,
			ExpResp:    apitest.Response{Success: true, Message: "User deleted successfully"},
		},
	}

	f.at.Run(t, table, "users")
}

func Test_CreateDefaults(t *testing.T) {
	f := newFixture(t, "Test_CreateDefaults")

	w := f.at.Do(t, http.MethodPost, "/api/users/"+f.tenantID, f.at.Token(t, f.admin), map[string]any{
		"name":     "  Carol  ",
		"email":    "Carol@Acme.io",
		"password": "secret1",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}

	var got userapp.User
	apitest.Decode(t, w, &got)

	if got.Role != "editor" || !got.IsActive {
		t.Errorf("defaults: role %q active %t", got.Role, got.IsActive)
	}

	if got.Name != "Carol" || got.Email != "carol@acme.io" || got.TenantID != f.tenantID {
		t.Errorf("normalization: %+v", got)
	}
}

func Test_UpdateRole(t *testing.T) {
	f := newFixture(t, "Test_UpdateRole")

	w := f.at.Do(t, http.MethodPatch, "/api/users/"+f.tenantID+"/"+f.editor.ID.String(), f.at.Token(t, f.admin), map[string]any{
		"role":     "viewer",
		"isActive": false,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}

	var got userapp.User
	apitest.Decode(t, w, &got)

	if got.Role != "viewer" || got.IsActive {
		t.Errorf("got role %q active %t", got.Role, got.IsActive)
	}

	// A deactivated user's token stops working.
	w = f.at.Do(t, http.MethodGet, "/api/auth/me", f.at.Token(t, f.editor), nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("deactivated token: status %d", w.Code)
	}
}

func Test_QueryPaging(t *testing.T) {
	f := newFixture(t, "Test_QueryPaging")

	w := f.at.Do(t, http.MethodGet, "/api/users/"+f.tenantID+"?page=1&rows=1&orderBy=email,ASC", f.at.Token(t, f.admin), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}

	var got query.Result[userapp.User]
	apitest.Decode(t, w, &got)

	if got.Total != 3 || got.Pages != 3 || got.Page != 1 || got.Limit != 1 {
		t.Errorf("paging: %+v", got)
	}

	if len(got.Items) != 1 || got.Items[0].Email != "admin@acme.io" {
		t.Errorf("items: %+v", got.Items)
	}
}
