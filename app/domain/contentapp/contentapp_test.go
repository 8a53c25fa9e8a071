package contentapp_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/jcpaschoal/headless-cms/app/domain/contentapp"
	"github.com/jcpaschoal/headless-cms/app/sdk/apitest"
	"github.com/jcpaschoal/headless-cms/business/domain/schemabus"
	"github.com/jcpaschoal/headless-cms/business/domain/userbus"
	"github.com/jcpaschoal/headless-cms/business/sdk/dbtest"
	"github.com/jcpaschoal/headless-cms/business/types/fieldtype"
	"github.com/jcpaschoal/headless-cms/business/types/role"
)

type session struct {
	User struct {
		ID       string `json:"id"`
		Role     string `json:"role"`
		TenantID string `json:"tenantId"`
	} `json:"user"`
	Token string `json:"token"`
}

func Test_PublishFlow(t *testing.T) {
	at := apitest.New(t, "Test_PublishFlow")

	// Register opens the tenant and makes the caller its admin.
	w := at.Do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":      "a@x.com",
		"password":   "secret1",
		"name":       "A",
		"tenantSlug": "acme",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register: status %d: %s", w.Code, w.Body.String())
	}

	var reg session
	apitest.Decode(t, w, &reg)

	if reg.User.Role != "admin" {
		t.Fatalf("register: role %q, want admin", reg.User.Role)
	}

	w = at.Do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "a@x.com",
		"password": "secret1",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login: status %d: %s", w.Code, w.Body.String())
	}

	var login session
	apitest.Decode(t, w, &login)
	token := login.Token
	tenantID := login.User.TenantID

	w = at.Do(t, http.MethodPost, "/api/schemas/"+tenantID, token, map[string]any{
		"name": "Article",
		"slug": "article",
		"fields": []map[string]any{
			{"name": "title", "type": "string", "required": true},
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create schema: status %d: %s", w.Code, w.Body.String())
	}

	w = at.Do(t, http.MethodPost, "/api/content/"+tenantID+"/article", token, map[string]any{
		"data": map[string]any{"title": "Hi"},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create content: status %d: %s", w.Code, w.Body.String())
	}

	var created contentapp.Content
	apitest.Decode(t, w, &created)

	if !created.IsDraft || created.PublishedAt != nil {
		t.Fatalf("new content should be an unpublished draft: %+v", created)
	}

	if created.CreatedBy == nil || created.CreatedBy.Email != "a@x.com" {
		t.Fatalf("created by: got %+v", created.CreatedBy)
	}

	w = at.Do(t, http.MethodPost, fmt.Sprintf("/api/content/%s/article/%s/publish", tenantID, created.ID), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("publish: status %d: %s", w.Code, w.Body.String())
	}

	var published contentapp.Content
	resp := apitest.Decode(t, w, &published)

	if resp.Message != "Content published successfully" {
		t.Errorf("publish message: got %q", resp.Message)
	}

	if published.IsDraft || published.PublishedAt == nil {
		t.Errorf("publish: got isDraft %t publishedAt %v", published.IsDraft, published.PublishedAt)
	}

	w = at.Do(t, http.MethodGet, "/api/content/"+tenantID+"/article?isDraft=false", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: status %d: %s", w.Code, w.Body.String())
	}

	var list []contentapp.Content
	apitest.Decode(t, w, &list)

	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("list: got %d items, want only %s", len(list), created.ID)
	}

	if diff := cmp.Diff(map[string]any{"title": "Hi"}, map[string]any(list[0].Data)); diff != "" {
		t.Errorf("data mismatch (-want +got):\n%s", diff)
	}

	w = at.Do(t, http.MethodGet, "/api/content/"+tenantID+"/article?isDraft=true", token, nil)

	var drafts []contentapp.Content
	apitest.Decode(t, w, &drafts)

	if len(drafts) != 0 {
		t.Errorf("drafts: got %d items, want 0", len(drafts))
	}
}

// =============================================================================

type fixture struct {
	at       *apitest.Test
	tenantID string
	admin    userbus.User
	editor   userbus.User
	viewer   userbus.User
}

func newFixture(t *testing.T, testName string, opts ...dbtest.Option) fixture {
	at := apitest.New(t, testName, opts...)

	tnt := at.DB.SeedTenant(t, "acme")

	at.DB.SeedContentType(t, tnt.ID, "article", schemabus.Field{
		Name:     "title",
		Type:     fieldtype.String,
		Required: true,
	})

	return fixture{
		at:       at,
		tenantID: tnt.ID.String(),
		admin:    at.DB.SeedUser(t, tnt.ID, "admin@acme.io", role.Admin),
		editor:   at.DB.SeedUser(t, tnt.ID, "editor@acme.io", role.Editor),
		viewer:   at.DB.SeedUser(t, tnt.ID, "viewer@acme.io", role.Viewer),
	}
}

func (f fixture) create(t *testing.T, usr userbus.User, body any) contentapp.Content {
	t.Helper()

	w := f.at.Do(t, http.MethodPost, "/api/content/"+f.tenantID+"/article", f.at.Token(t, usr), body)
	if w.Code != http.StatusCreated {
		t.Fatalf("create content: status %d: %s", w.Code, w.Body.String())
	}

	var cnt contentapp.Content
	apitest.Decode(t, w, &cnt)

	return cnt
}

func Test_ContentRoutes(t *testing.T) {
	f := newFixture(t, "Test_ContentRoutes")

	cnt := f.create(t, f.editor, map[string]any{"data": map[string]any{"title": "Hi"}})
	base := "/api/content/" + f.tenantID + "/article"
	item := base + "/" + cnt.ID

	table := []apitest.Table{
		{
			Name:       "viewer-reads",
			URL:        item,
			Token:      f.at.Token(t, f.viewer),
			Method:     http.MethodGet,
			StatusCode: http.StatusOK,
			ExpResp:    apitest.Response{Success: true},
		},
		{
			Name:       "viewer-cannot-create",
			URL:        base,
			Token:      f.at.Token(t, f.viewer),
			Method:     http.MethodPost,
			StatusCode: http.StatusForbidden,
			Input:      map[string]any{"data": map[string]any{"title": "x"}},
			ExpResp:    apitest.Response{Error: "Access denied: requires one of roles: admin, editor"},
		},
		{
			Name:       "editor-cannot-delete",
			URL:        item,
			Token:      f.at.Token(t, f.editor),
			Method:     http.MethodDelete,
			StatusCode: http.StatusForbidden,
			ExpResp:    apitest.Response{Error: "Access denied: requires one of roles: admin"},
		},
		{
			Name:       "unknown-content-type",
			URL:        "/api/content/" + f.tenantID + "/missing",
			Token:      f.at.Token(t, f.editor),
			Method:     http.MethodPost,
			StatusCode: http.StatusNotFound,
			Input:      map[string]any{"data": map[string]any{}},
			ExpResp:    apitest.Response{Error: "Content type not found"},
		},
		{
			Name:       "unknown-content",
			URL:        base + "/00000000-0000-0000-0000-000000000000",
			Token:      f.at.Token(t, f.viewer),
			Method:     http.MethodGet,
			StatusCode: http.StatusNotFound,
			ExpResp:    apitest.Response{Error: "Content not found"},
		},
		{
			Name:       "data-not-an-object",
			URL:        base,
			Token:      f.at.Token(t, f.editor),
			Method:     http.MethodPost,
			StatusCode: http.StatusBadRequest,
			Input:      map[string]any{"data": []string{"a"}},
			CmpFunc: func(got apitest.Response, exp apitest.Response) string {
				if got.Success || got.Error == "" {
					return fmt.Sprintf("expected an error response, got %+v", got)
				}
				return ""
			},
		},
		{
			Name:       "admin-deletes",
			URL:        item,
			Token:      f.at.Token(t, f.admin),
			Method:     http.MethodDelete,
			StatusCode: http.StatusOK,
			ExpResp:    apitest.Response{Success: true, Message: "Content deleted successfully"},
		},
		{
			Name:       "deleted-is-gone",
			URL:        item,
			Token:      f.at.Token(t, f.admin),
			Method:     http.MethodGet,
			StatusCode: http.StatusNotFound,
			ExpResp:    apitest.Response{Error: "Content not found"},
		},
	}

	f.at.Run(t, table, "content")
}

func Test_UpdateTracksEditor(t *testing.T) {
	f := newFixture(t, "Test_UpdateTracksEditor")

	cnt := f.create(t, f.editor, map[string]any{"data": map[string]any{"title": "Hi"}})

	w := f.at.Do(t, http.MethodPatch, "/api/content/"+f.tenantID+"/article/"+cnt.ID, f.at.Token(t, f.admin), map[string]any{
		"data": map[string]any{"title": "Hello"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update: status %d: %s", w.Code, w.Body.String())
	}

	var got contentapp.Content
	apitest.Decode(t, w, &got)

	if got.CreatedBy == nil || got.CreatedBy.ID != f.editor.ID.String() {
		t.Errorf("created by: got %+v", got.CreatedBy)
	}

	if got.UpdatedBy == nil || got.UpdatedBy.ID != f.admin.ID.String() {
		t.Errorf("updated by: got %+v", got.UpdatedBy)
	}

	if !got.IsDraft {
		t.Error("update without isDraft should keep the draft flag")
	}

	if got.Data["title"] != "Hello" {
		t.Errorf("data: got %v", got.Data)
	}
}

func Test_PublishTwice(t *testing.T) {
	f := newFixture(t, "Test_PublishTwice")

	cnt := f.create(t, f.editor, map[string]any{"data": map[string]any{"title": "Hi"}})
	url := "/api/content/" + f.tenantID + "/article/" + cnt.ID + "/publish"

	for i := range 2 {
		w := f.at.Do(t, http.MethodPost, url, f.at.Token(t, f.editor), nil)
		if w.Code != http.StatusOK {
			t.Fatalf("publish %d: status %d: %s", i, w.Code, w.Body.String())
		}

		var got contentapp.Content
		apitest.Decode(t, w, &got)

		if got.IsDraft || got.PublishedAt == nil {
			t.Errorf("publish %d: got isDraft %t publishedAt %v", i, got.IsDraft, got.PublishedAt)
		}
	}
}

func Test_DeletedAuthorRendersNull(t *testing.T) {
	f := newFixture(t, "Test_DeletedAuthorRendersNull")

	cnt := f.create(t, f.editor, map[string]any{"data": map[string]any{"title": "Hi"}})

	w := f.at.Do(t, http.MethodDelete, "/api/users/"+f.tenantID+"/"+f.editor.ID.String(), f.at.Token(t, f.admin), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete user: status %d: %s", w.Code, w.Body.String())
	}

	w = f.at.Do(t, http.MethodGet, "/api/content/"+f.tenantID+"/article/"+cnt.ID, f.at.Token(t, f.admin), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get: status %d: %s", w.Code, w.Body.String())
	}

	var got contentapp.Content
	apitest.Decode(t, w, &got)

	if got.CreatedBy != nil || got.UpdatedBy != nil {
		t.Errorf("deleted author should render as null, got %+v %+v", got.CreatedBy, got.UpdatedBy)
	}
}

func Test_SchemaEnforcement(t *testing.T) {
	f := newFixture(t, "Test_SchemaEnforcement", dbtest.WithSchemaEnforcement())

	before := f.at.DB.DB.Mutations()

	w := f.at.Do(t, http.MethodPost, "/api/content/"+f.tenantID+"/article", f.at.Token(t, f.editor), map[string]any{
		"data": map[string]any{"title": 7},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}

	resp := apitest.Decode(t, w, nil)

	if diff := cmp.Diff("Validation error: title: expected string", resp.Error); diff != "" {
		t.Errorf("message mismatch (-want +got):\n%s", diff)
	}

	if got := f.at.DB.DB.Mutations(); got != before {
		t.Errorf("store was written: mutations %d, want %d", got, before)
	}
}

func Test_DraftFilter(t *testing.T) {
	f := newFixture(t, "Test_DraftFilter")

	f.create(t, f.editor, map[string]any{"data": map[string]any{"title": "Draft"}})
	f.create(t, f.editor, map[string]any{"data": map[string]any{"title": "Live"}, "isDraft": false})

	tests := []struct {
		query string
		want  string
	}{
		{"true", "Draft"},
		{"false", "Live"},
		{"1", "Live"},
		{"TRUE", "Live"},
		{"yes", "Live"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := f.at.Do(t, http.MethodGet, "/api/content/"+f.tenantID+"/article?isDraft="+tt.query, f.at.Token(t, f.viewer), nil)
			if w.Code != http.StatusOK {
				t.Fatalf("status %d: %s", w.Code, w.Body.String())
			}

			var list []contentapp.Content
			apitest.Decode(t, w, &list)

			if len(list) != 1 || list[0].Data["title"] != tt.want {
				t.Errorf("got %+v, want only %q", list, tt.want)
			}
		})
	}

	w := f.at.Do(t, http.MethodGet, "/api/content/"+f.tenantID+"/article", f.at.Token(t, f.viewer), nil)

	var all []contentapp.Content
	apitest.Decode(t, w, &all)

	if len(all) != 2 {
		t.Errorf("unfiltered: got %d items, want 2", len(all))
	}
}

func Test_LooseContentTypeSlug(t *testing.T) {
	f := newFixture(t, "Test_LooseContentTypeSlug")

	tnt, err := uuid.Parse(f.tenantID)
	if err != nil {
		t.Fatalf("tenant id: %s", err)
	}
	f.at.DB.SeedContentType(t, tnt, "blog_post")

	token := f.at.Token(t, f.editor)
	base := "/api/content/" + f.tenantID + "/blog_post"

	w := f.at.Do(t, http.MethodPost, base, token, map[string]any{"data": map[string]any{"title": "Hi"}})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status %d: %s", w.Code, w.Body.String())
	}

	var created contentapp.Content
	apitest.Decode(t, w, &created)

	if created.ContentTypeSlug != "blog_post" {
		t.Errorf("slug: got %q, want blog_post", created.ContentTypeSlug)
	}

	w = f.at.Do(t, http.MethodGet, base+"/"+created.ID, token, nil)
	if w.Code != http.StatusOK {
		t.Errorf("get: status %d: %s", w.Code, w.Body.String())
	}
}
