package schemaapp_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/jcpaschoal/headless-cms/app/domain/schemaapp"
	"github.com/jcpaschoal/headless-cms/app/sdk/apitest"
	"github.com/jcpaschoal/headless-cms/business/types/role"
)

func Test_SchemaRoutes(t *testing.T) {
	at := apitest.New(t, "Test_SchemaRoutes")

	acme := at.DB.SeedTenant(t, "acme")
	ct := at.DB.SeedContentType(t, acme.ID, "page")

	admin := at.Token(t, at.DB.SeedUser(t, acme.ID, "admin@acme.io", role.Admin))
	editor := at.Token(t, at.DB.SeedUser(t, acme.ID, "editor@acme.io", role.Editor))
	viewer := at.Token(t, at.DB.SeedUser(t, acme.ID, "viewer@acme.io", role.Viewer))

	base := "/api/schemas/" + acme.ID.String()
	article := map[string]any{
		"name": "Article",
		"slug": "article",
		"fields": []map[string]any{
			{"name": "title", "type": "string", "required": true},
			{"name": "body", "type": "richtext"},
		},
	}

	table := []apitest.Table{
		{
			Name:       "viewer-cannot-create",
			URL:        base,
			Token:      viewer,
			Method:     http.MethodPost,
			StatusCode: http.StatusForbidden,
			Input:      article,
			ExpResp:    apitest.Response{Error: "Access denied: requires one of roles: admin, editor"},
		},
		{
			Name:       "editor-creates",
			URL:        base,
			Token:      editor,
			Method:     http.MethodPost,
			StatusCode: http.StatusCreated,
			Input:      article,
			ExpResp:    apitest.Response{Success: true},
		},
		{
			Name:       "duplicate-slug",
			URL:        base,
			Token:      editor,
			Method:     http.MethodPost,
			StatusCode: http.StatusBadRequest,
			Input:      article,
			ExpResp:    apitest.Response{Error: "Content type slug already exists for this tenant"},
		},
		{
			Name:       "fields-not-array",
			URL:        base,
			Token:      editor,
			Method:     http.MethodPost,
			StatusCode: http.StatusBadRequest,
			Input:      map[string]any{"name": "Blog", "slug": "blog", "fields": "title"},
			ExpResp:    apitest.Response{Error: "Fields must be an array"},
		},
		{
			Name:       "missing-fields",
			URL:        base,
			Token:      editor,
			Method:     http.MethodPost,
			StatusCode: http.StatusBadRequest,
			Input:      map[string]any{"name": "Blog", "slug": "blog"},
			ExpResp:    apitest.Response{Error: "Fields must be an array"},
		},
		{
			Name:       "null-fields",
			URL:        base,
			Token:      editor,
			Method:     http.MethodPost,
			StatusCode: http.StatusBadRequest,
			Input:      map[string]any{"name": "Blog", "slug": "blog", "fields": nil},
			ExpResp:    apitest.Response{Error: "Fields must be an array"},
		},
		{
			Name:       "underscore-slug",
			URL:        base,
			Token:      editor,
			Method:     http.MethodPost,
			StatusCode: http.StatusCreated,
			Input:      map[string]any{"name": "Blog Post", "slug": "Blog_Post", "fields": []any{}},
			ExpResp:    apitest.Response{Success: true},
		},
		{
			Name:       "read-underscore-slug",
			URL:        base + "/blog_post",
			Token:      viewer,
			Method:     http.MethodGet,
			StatusCode: http.StatusOK,
			ExpResp:    apitest.Response{Success: true},
		},
		{
			Name:       "missing-name",
			URL:        base,
			Token:      editor,
			Method:     http.MethodPost,
			StatusCode: http.StatusBadRequest,
			Input:      map[string]any{"slug": "blog"},
			ExpResp:    apitest.Response{Error: "Name and slug are required"},
		},
		{
			Name:       "unknown-field-type",
			URL:        base,
			Token:      editor,
			Method:     http.MethodPost,
			StatusCode: http.StatusBadRequest,
			Input: map[string]any{
				"name":   "Blog",
				"slug":   "blog",
				"fields": []map[string]any{{"name": "title", "type": "text"}},
			},
			CmpFunc: func(got apitest.Response, exp apitest.Response) string {
				if len(got.Fields) != 1 || got.Fields[0].Field != "fields[0].type" {
					return fmt.Sprintf("expected a fields[0].type error, got %+v", got)
				}
				return ""
			},
		},
		{
			Name:       "viewer-reads-by-slug",
			URL:        base + "/article",
			Token:      viewer,
			Method:     http.MethodGet,
			StatusCode: http.StatusOK,
			ExpResp:    apitest.Response{Success: true},
		},
		{
			Name:       "unknown-slug",
			URL:        base + "/missing",
			Token:      viewer,
			Method:     http.MethodGet,
			StatusCode: http.StatusNotFound,
			ExpResp:    apitest.Response{Error: "Content type not found"},
		},
		{
			Name:       "editor-cannot-delete",
			URL:        base + "/" + ct.ID.String(),
			Token:      editor,
			Method:     http.MethodDelete,
			StatusCode: http.StatusForbidden,
			ExpResp:    apitest.Response{Error: "Access denied: requires one of roles: admin"},
		},
		{
			Name:       "admin-deletes",
			URL:        base + "/" + ct.ID.String(),
			Token:      admin,
			Method:     http.MethodDelete,
			StatusCode: http.StatusOK,
			ExpResp:    apitest.Response{Success: true, Message: "Content type deleted successfully"},
		},
	}

	at.Run(t, table, "schemas")

	w := at.Do(t, http.MethodGet, base, viewer, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: status %d: %s", w.Code, w.Body.String())
	}

	var cts []schemaapp.ContentType
	apitest.Decode(t, w, &cts)

	slugs := make(map[string]schemaapp.ContentType)
	for _, ct := range cts {
		slugs[ct.Slug] = ct
	}

	if len(cts) != 2 || len(slugs["article"].Fields) != 2 || slugs["blog_post"].Slug == "" {
		t.Errorf("list: %+v", cts)
	}
}

func Test_UpdateKeepsSlug(t *testing.T) {
	at := apitest.New(t, "Test_UpdateKeepsSlug")

	acme := at.DB.SeedTenant(t, "acme")
	ct := at.DB.SeedContentType(t, acme.ID, "article")
	editor := at.Token(t, at.DB.SeedUser(t, acme.ID, "editor@acme.io", role.Editor))

	w := at.Do(t, http.MethodPatch, "/api/schemas/"+acme.ID.String()+"/"+ct.ID.String(), editor, map[string]any{
		"name":   "Blog Post",
		"slug":   "ignored",
		"fields": []map[string]any{{"name": "title", "type": "string", "required": true}},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}

	var got schemaapp.ContentType
	apitest.Decode(t, w, &got)

	if got.Name != "Blog Post" || got.Slug != "article" || len(got.Fields) != 1 || !got.Fields[0].Required {
		t.Errorf("got %+v", got)
	}
}
