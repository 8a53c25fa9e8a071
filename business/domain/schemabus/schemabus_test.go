package schemabus_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jcpaschoal/headless-cms/business/domain/schemabus"
	"github.com/jcpaschoal/headless-cms/business/sdk/dbtest"
	"github.com/jcpaschoal/headless-cms/business/types/fieldtype"
	"github.com/jcpaschoal/headless-cms/business/types/name"
	"github.com/jcpaschoal/headless-cms/business/types/slug"
)

func Test_SlugUniquePerTenant(t *testing.T) {
	db := dbtest.New(t, "Test_SlugUniquePerTenant")
	ctx := context.Background()

	acme := db.SeedTenant(t, "acme")
	globex := db.SeedTenant(t, "globex")

	db.SeedContentType(t, acme.ID, "article")

	_, err := db.BusDomain.Schema.Create(ctx, schemabus.NewContentType{
		TenantID: acme.ID,
		Name:     name.MustParse("Article Again"),
		Slug:     slug.MustParse("article"),
	})
	if !errors.Is(err, schemabus.ErrUniqueSlug) {
		t.Fatalf("same tenant: got %v, want %v", err, schemabus.ErrUniqueSlug)
	}

	if _, err := db.BusDomain.Schema.Create(ctx, schemabus.NewContentType{
		TenantID: globex.ID,
		Name:     name.MustParse("Article"),
		Slug:     slug.MustParse("article"),
	}); err != nil {
		t.Fatalf("other tenant should reuse the slug: %s", err)
	}
}

func Test_CreateDefaultsFields(t *testing.T) {
	db := dbtest.New(t, "Test_CreateDefaultsFields")
	acme := db.SeedTenant(t, "acme")

	ct := db.SeedContentType(t, acme.ID, "page")

	if ct.Fields == nil || len(ct.Fields) != 0 {
		t.Errorf("fields should default to an empty list, got %#v", ct.Fields)
	}
}

func Test_UpdateKeepsSlug(t *testing.T) {
	db := dbtest.New(t, "Test_UpdateKeepsSlug")
	ctx := context.Background()

	acme := db.SeedTenant(t, "acme")
	ct := db.SeedContentType(t, acme.ID, "article")

	nme := name.MustParse("Blog Post")
	fields := []schemabus.Field{{Name: "title", Type: fieldtype.String, Required: true}}

	upd, err := db.BusDomain.Schema.Update(ctx, ct, schemabus.UpdateContentType{
		Name:   &nme,
		Fields: &fields,
	})
	if err != nil {
		t.Fatalf("update: %s", err)
	}

	got, err := db.BusDomain.Schema.QueryBySlug(ctx, acme.ID, slug.MustParse("article"))
	if err != nil {
		t.Fatalf("queryBySlug: %s", err)
	}

	if diff := cmp.Diff(upd, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	if got.Name.String() != "Blog Post" {
		t.Errorf("name: got %q", got.Name)
	}
}

func Test_QueryScopedToTenant(t *testing.T) {
	db := dbtest.New(t, "Test_QueryScopedToTenant")
	ctx := context.Background()

	acme := db.SeedTenant(t, "acme")
	globex := db.SeedTenant(t, "globex")

	ct := db.SeedContentType(t, acme.ID, "article")
	db.SeedContentType(t, globex.ID, "product")

	cts, err := db.BusDomain.Schema.Query(ctx, acme.ID)
	if err != nil {
		t.Fatalf("query: %s", err)
	}

	if len(cts) != 1 || cts[0].ID != ct.ID {
		t.Fatalf("got %d content types, want only %s", len(cts), ct.ID)
	}

	if _, err := db.BusDomain.Schema.QueryByID(ctx, globex.ID, ct.ID); !errors.Is(err, schemabus.ErrNotFound) {
		t.Errorf("cross tenant lookup: got %v, want %v", err, schemabus.ErrNotFound)
	}
}

func Test_Delete(t *testing.T) {
	db := dbtest.New(t, "Test_Delete")
	ctx := context.Background()

	acme := db.SeedTenant(t, "acme")
	ct := db.SeedContentType(t, acme.ID, "article")

	if err := db.BusDomain.Schema.Delete(ctx, ct); err != nil {
		t.Fatalf("delete: %s", err)
	}

	if _, err := db.BusDomain.Schema.QueryBySlug(ctx, acme.ID, ct.Slug); !errors.Is(err, schemabus.ErrNotFound) {
		t.Errorf("got %v, want %v", err, schemabus.ErrNotFound)
	}
}
