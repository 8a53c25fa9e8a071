package contentbus_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/jcpaschoal/headless-cms/business/domain/contentbus"
	"github.com/jcpaschoal/headless-cms/business/domain/schemabus"
	"github.com/jcpaschoal/headless-cms/business/sdk/dbtest"
	"github.com/jcpaschoal/headless-cms/business/types/fieldtype"
	"github.com/jcpaschoal/headless-cms/business/types/role"
	"github.com/jcpaschoal/headless-cms/business/types/slug"
)

var article = slug.MustParse("article")

type seed struct {
	tenantID uuid.UUID
	authorID uuid.UUID
	editorID uuid.UUID
}

func seedArticle(t *testing.T, db *dbtest.Database) seed {
	t.Helper()

	tnt := db.SeedTenant(t, "acme")
	author := db.SeedUser(t, tnt.ID, "author@acme.io", role.Editor)
	editor := db.SeedUser(t, tnt.ID, "editor@acme.io", role.Editor)

	db.SeedContentType(t, tnt.ID, "article", schemabus.Field{
		Name:     "title",
		Type:     fieldtype.String,
		Required: true,
	})

	return seed{
		tenantID: tnt.ID,
		authorID: author.ID,
		editorID: editor.ID,
	}
}

func Test_Create(t *testing.T) {
	db := dbtest.New(t, "Test_Create")
	sd := seedArticle(t, db)
	ctx := context.Background()

	cnt, err := db.BusDomain.Content.Create(ctx, contentbus.NewContent{
		TenantID:        sd.tenantID,
		ContentTypeSlug: article,
		Data:            contentbus.Data{"title": "Hi"},
		CreatedBy:       sd.authorID,
	})
	if err != nil {
		t.Fatalf("create: %s", err)
	}

	if !cnt.IsDraft {
		t.Error("content should default to draft")
	}

	if cnt.PublishedAt != nil {
		t.Error("draft content should not carry a publish time")
	}

	if cnt.CreatedBy != sd.authorID || cnt.UpdatedBy != sd.authorID {
		t.Errorf("authors: got created %s updated %s, want %s", cnt.CreatedBy, cnt.UpdatedBy, sd.authorID)
	}

	got, err := db.BusDomain.Content.QueryByID(ctx, sd.tenantID, article, cnt.ID)
	if err != nil {
		t.Fatalf("queryByID: %s", err)
	}

	if diff := cmp.Diff(cnt.Data, got.Data); diff != "" {
		t.Errorf("data mismatch (-want +got):\n%s", diff)
	}
}

func Test_CreateExplicitPublished(t *testing.T) {
	db := dbtest.New(t, "Test_CreateExplicitPublished")
	sd := seedArticle(t, db)

	isDraft := false

	cnt, err := db.BusDomain.Content.Create(context.Background(), contentbus.NewContent{
		TenantID:        sd.tenantID,
		ContentTypeSlug: article,
		IsDraft:         &isDraft,
		CreatedBy:       sd.authorID,
	})
	if err != nil {
		t.Fatalf("create: %s", err)
	}

	if cnt.IsDraft {
		t.Error("content should not be a draft")
	}

	if cnt.Data == nil {
		t.Error("missing data should default to an empty object")
	}
}

func Test_CreateUnknownContentType(t *testing.T) {
	db := dbtest.New(t, "Test_CreateUnknownContentType")
	sd := seedArticle(t, db)

	before := db.DB.Mutations()

	_, err := db.BusDomain.Content.Create(context.Background(), contentbus.NewContent{
		TenantID:        sd.tenantID,
		ContentTypeSlug: slug.MustParse("missing"),
		CreatedBy:       sd.authorID,
	})
	if !errors.Is(err, contentbus.ErrContentTypeNotFound) {
		t.Fatalf("got %v, want %v", err, contentbus.ErrContentTypeNotFound)
	}

	if got := db.DB.Mutations(); got != before {
		t.Errorf("store was written: mutations %d, want %d", got, before)
	}
}

func Test_CreateOtherTenantContentType(t *testing.T) {
	db := dbtest.New(t, "Test_CreateOtherTenantContentType")
	seedArticle(t, db)

	other := db.SeedTenant(t, "globex")
	usr := db.SeedUser(t, other.ID, "admin@globex.io", role.Admin)

	_, err := db.BusDomain.Content.Create(context.Background(), contentbus.NewContent{
		TenantID:        other.ID,
		ContentTypeSlug: article,
		CreatedBy:       usr.ID,
	})
	if !errors.Is(err, contentbus.ErrContentTypeNotFound) {
		t.Fatalf("got %v, want %v", err, contentbus.ErrContentTypeNotFound)
	}
}

func Test_SchemaEnforcement(t *testing.T) {
	tests := []struct {
		name    string
		enforce bool
		data    contentbus.Data
		wantErr bool
	}{
		{"off-missing-required", false, contentbus.Data{}, false},
		{"on-missing-required", true, contentbus.Data{}, true},
		{"on-wrong-type", true, contentbus.Data{"title": 42.0}, true},
		{"on-valid", true, contentbus.Data{"title": "Hi", "extra": true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts []dbtest.Option
			if tt.enforce {
				opts = append(opts, dbtest.WithSchemaEnforcement())
			}

			db := dbtest.New(t, "Test_SchemaEnforcement", opts...)
			sd := seedArticle(t, db)

			_, err := db.BusDomain.Content.Create(context.Background(), contentbus.NewContent{
				TenantID:        sd.tenantID,
				ContentTypeSlug: article,
				Data:            tt.data,
				CreatedBy:       sd.authorID,
			})

			if tt.wantErr {
				if !errors.Is(err, schemabus.ErrInvalidData) {
					t.Fatalf("got %v, want %v", err, schemabus.ErrInvalidData)
				}
				return
			}

			if err != nil {
				t.Fatalf("create: %s", err)
			}
		})
	}
}

func Test_UpdateRecordsEditor(t *testing.T) {
	db := dbtest.New(t, "Test_UpdateRecordsEditor")
	sd := seedArticle(t, db)
	ctx := context.Background()

	cnt, err := db.BusDomain.Content.Create(ctx, contentbus.NewContent{
		TenantID:        sd.tenantID,
		ContentTypeSlug: article,
		Data:            contentbus.Data{"title": "Hi"},
		CreatedBy:       sd.authorID,
	})
	if err != nil {
		t.Fatalf("create: %s", err)
	}

	data := contentbus.Data{"title": "Hello"}

	cnt, err = db.BusDomain.Content.Update(ctx, cnt, contentbus.UpdateContent{Data: &data}, sd.editorID)
	if err != nil {
		t.Fatalf("update: %s", err)
	}

	got, err := db.BusDomain.Content.QueryByID(ctx, sd.tenantID, article, cnt.ID)
	if err != nil {
		t.Fatalf("queryByID: %s", err)
	}

	if got.CreatedBy != sd.authorID {
		t.Errorf("created by changed: got %s, want %s", got.CreatedBy, sd.authorID)
	}

	if got.UpdatedBy != sd.editorID {
		t.Errorf("updated by: got %s, want %s", got.UpdatedBy, sd.editorID)
	}

	if diff := cmp.Diff(data, got.Data); diff != "" {
		t.Errorf("data mismatch (-want +got):\n%s", diff)
	}
}

func Test_PublishTwice(t *testing.T) {
	db := dbtest.New(t, "Test_PublishTwice")
	sd := seedArticle(t, db)
	ctx := context.Background()

	cnt, err := db.BusDomain.Content.Create(ctx, contentbus.NewContent{
		TenantID:        sd.tenantID,
		ContentTypeSlug: article,
		Data:            contentbus.Data{"title": "Hi"},
		CreatedBy:       sd.authorID,
	})
	if err != nil {
		t.Fatalf("create: %s", err)
	}

	first, err := db.BusDomain.Content.Publish(ctx, cnt)
	if err != nil {
		t.Fatalf("publish: %s", err)
	}

	if first.IsDraft || first.PublishedAt == nil {
		t.Fatalf("publish: got isDraft %t publishedAt %v", first.IsDraft, first.PublishedAt)
	}

	time.Sleep(time.Millisecond)

	second, err := db.BusDomain.Content.Publish(ctx, first)
	if err != nil {
		t.Fatalf("publish again: %s", err)
	}

	if second.IsDraft {
		t.Error("content should stay published")
	}

	if !second.PublishedAt.After(*first.PublishedAt) {
		t.Errorf("publish time should move forward: first %v second %v", first.PublishedAt, second.PublishedAt)
	}

	if second.UpdatedBy != sd.authorID {
		t.Errorf("publish should not change the editor: got %s", second.UpdatedBy)
	}
}

func Test_QueryFilters(t *testing.T) {
	db := dbtest.New(t, "Test_QueryFilters")
	sd := seedArticle(t, db)
	ctx := context.Background()

	var ids []uuid.UUID
	for _, title := range []string{"one", "two", "three"} {
		cnt, err := db.BusDomain.Content.Create(ctx, contentbus.NewContent{
			TenantID:        sd.tenantID,
			ContentTypeSlug: article,
			Data:            contentbus.Data{"title": title},
			CreatedBy:       sd.authorID,
		})
		if err != nil {
			t.Fatalf("create %q: %s", title, err)
		}
		ids = append(ids, cnt.ID)
		time.Sleep(time.Millisecond)
	}

	published, err := db.BusDomain.Content.QueryByID(ctx, sd.tenantID, article, ids[1])
	if err != nil {
		t.Fatalf("queryByID: %s", err)
	}

	if _, err := db.BusDomain.Content.Publish(ctx, published); err != nil {
		t.Fatalf("publish: %s", err)
	}

	draft := true
	live := false

	tests := []struct {
		name    string
		isDraft *bool
		want    []uuid.UUID
	}{
		{"all-newest-first", nil, []uuid.UUID{ids[2], ids[1], ids[0]}},
		{"drafts", &draft, []uuid.UUID{ids[2], ids[0]}},
		{"published", &live, []uuid.UUID{ids[1]}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cnts, err := db.BusDomain.Content.Query(ctx, contentbus.QueryFilter{
				TenantID:        sd.tenantID,
				ContentTypeSlug: article,
				IsDraft:         tt.isDraft,
			})
			if err != nil {
				t.Fatalf("query: %s", err)
			}

			got := make([]uuid.UUID, len(cnts))
			for i, c := range cnts {
				got[i] = c.ID
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func Test_TenantScoping(t *testing.T) {
	db := dbtest.New(t, "Test_TenantScoping")
	sd := seedArticle(t, db)
	ctx := context.Background()

	cnt, err := db.BusDomain.Content.Create(ctx, contentbus.NewContent{
		TenantID:        sd.tenantID,
		ContentTypeSlug: article,
		CreatedBy:       sd.authorID,
	})
	if err != nil {
		t.Fatalf("create: %s", err)
	}

	other := db.SeedTenant(t, "globex")

	if _, err := db.BusDomain.Content.QueryByID(ctx, other.ID, article, cnt.ID); !errors.Is(err, contentbus.ErrNotFound) {
		t.Errorf("cross tenant lookup: got %v, want %v", err, contentbus.ErrNotFound)
	}

	cnts, err := db.BusDomain.Content.Query(ctx, contentbus.QueryFilter{TenantID: other.ID, ContentTypeSlug: article})
	if err != nil {
		t.Fatalf("query: %s", err)
	}

	if len(cnts) != 0 {
		t.Errorf("cross tenant query returned %d items", len(cnts))
	}
}

func Test_Delete(t *testing.T) {
	db := dbtest.New(t, "Test_Delete")
	sd := seedArticle(t, db)
	ctx := context.Background()

	cnt, err := db.BusDomain.Content.Create(ctx, contentbus.NewContent{
		TenantID:        sd.tenantID,
		ContentTypeSlug: article,
		CreatedBy:       sd.authorID,
	})
	if err != nil {
		t.Fatalf("create: %s", err)
	}

	if err := db.BusDomain.Content.Delete(ctx, cnt); err != nil {
		t.Fatalf("delete: %s", err)
	}

	if _, err := db.BusDomain.Content.QueryByID(ctx, sd.tenantID, article, cnt.ID); !errors.Is(err, contentbus.ErrNotFound) {
		t.Errorf("got %v, want %v", err, contentbus.ErrNotFound)
	}
}

func Test_WritesScopedBySlug(t *testing.T) {
	db := dbtest.New(t, "Test_WritesScopedBySlug")
	sd := seedArticle(t, db)
	ctx := context.Background()

	cnt, err := db.BusDomain.Content.Create(ctx, contentbus.NewContent{
		TenantID:        sd.tenantID,
		ContentTypeSlug: article,
		CreatedBy:       sd.authorID,
	})
	if err != nil {
		t.Fatalf("create: %s", err)
	}

	misplaced := cnt
	misplaced.ContentTypeSlug = slug.MustParseLoose("page")

	before := db.DB.Mutations()

	if _, err := db.BusDomain.Content.Publish(ctx, misplaced); err != nil {
		t.Fatalf("publish: %s", err)
	}

	if err := db.BusDomain.Content.Delete(ctx, misplaced); err != nil {
		t.Fatalf("delete: %s", err)
	}

	if got := db.DB.Mutations(); got != before {
		t.Errorf("mutations: got %d, want %d", got, before)
	}

	got, err := db.BusDomain.Content.QueryByID(ctx, sd.tenantID, article, cnt.ID)
	if err != nil {
		t.Fatalf("query: %s", err)
	}

	if !got.IsDraft {
		t.Error("content under another slug was published")
	}
}
