package usercache_test

import (
	"bytes"
	"context"
	"errors"
	"net/mail"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/jcpaschoal/headless-cms/business/domain/userbus"
	"github.com/jcpaschoal/headless-cms/business/domain/userbus/stores/usercache"
	"github.com/jcpaschoal/headless-cms/business/sdk/dbtest"
	"github.com/jcpaschoal/headless-cms/business/types/name"
	"github.com/jcpaschoal/headless-cms/business/types/role"
	"github.com/jcpaschoal/headless-cms/foundation/logger"
)

// countingStorer records how many lookups reach the underlying store.
type countingStorer struct {
	userbus.Storer
	byID    int
	byEmail int
}

func (s *countingStorer) QueryByID(ctx context.Context, userID uuid.UUID) (userbus.User, error) {
	s.byID++
	return s.Storer.QueryByID(ctx, userID)
}

func (s *countingStorer) QueryByEmail(ctx context.Context, email mail.Address) (userbus.User, error) {
	s.byEmail++
	return s.Storer.QueryByEmail(ctx, email)
}

func newStore(t *testing.T) (*usercache.Store, *countingStorer, userbus.User) {
	t.Helper()

	var buf bytes.Buffer
	log := logger.New(&buf, logger.LevelInfo, "usercache", func(context.Context) string { return "" })

	inner := countingStorer{Storer: dbtest.NewUserStore(dbtest.NewDB())}
	store := usercache.NewStore(log, &inner, time.Minute)

	now := time.Now()
	usr := userbus.User{
		ID:           uuid.New(),
		TenantID:     uuid.New(),
		Name:         name.MustParse("Ada Lovelace"),
		Email:        mail.Address{Address: "ada@acme.io"},
		Role:         role.Editor,
		PasswordHash: []byte("hash"),
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := store.Create(context.Background(), usr); err != nil {
		t.Fatalf("create: %s", err)
	}

	return store, &inner, usr
}

func Test_ReadsFillBothKeys(t *testing.T) {
	store, inner, usr := newStore(t)
	ctx := context.Background()

	got, err := store.QueryByID(ctx, usr.ID)
	if err != nil {
		t.Fatalf("query by id: %s", err)
	}

	if diff := cmp.Diff(usr.Email.Address, got.Email.Address); diff != "" {
		t.Errorf("email mismatch (-want +got):\n%s", diff)
	}

	if _, err := store.QueryByID(ctx, usr.ID); err != nil {
		t.Fatalf("query by id again: %s", err)
	}

	if _, err := store.QueryByEmail(ctx, usr.Email); err != nil {
		t.Fatalf("query by email: %s", err)
	}

	if inner.byID != 1 || inner.byEmail != 0 {
		t.Errorf("store lookups: byID %d byEmail %d, want 1 and 0", inner.byID, inner.byEmail)
	}
}

func Test_EmailKeyIgnoresCase(t *testing.T) {
	store, inner, usr := newStore(t)
	ctx := context.Background()

	if _, err := store.QueryByEmail(ctx, mail.Address{Address: "ADA@Acme.io"}); err != nil {
		t.Fatalf("query by email: %s", err)
	}

	got, err := store.QueryByEmail(ctx, mail.Address{Address: "ada@acme.io"})
	if err != nil {
		t.Fatalf("query by email again: %s", err)
	}

	if got.ID != usr.ID {
		t.Errorf("got user %s, want %s", got.ID, usr.ID)
	}

	if inner.byEmail != 1 {
		t.Errorf("store lookups by email: got %d, want 1", inner.byEmail)
	}
}

func Test_UpdateEvicts(t *testing.T) {
	store, inner, usr := newStore(t)
	ctx := context.Background()

	if _, err := store.QueryByID(ctx, usr.ID); err != nil {
		t.Fatalf("query by id: %s", err)
	}

	disabled := usr
	disabled.Active = false
	disabled.Email = mail.Address{Address: "ada.l@acme.io"}

	if err := store.Update(ctx, disabled); err != nil {
		t.Fatalf("update: %s", err)
	}

	got, err := store.QueryByID(ctx, usr.ID)
	if err != nil {
		t.Fatalf("query by id after update: %s", err)
	}

	if got.Active {
		t.Error("deactivation not visible through the cache")
	}

	if inner.byID != 2 {
		t.Errorf("store lookups by id: got %d, want 2", inner.byID)
	}

	if _, err := store.QueryByEmail(ctx, usr.Email); !errors.Is(err, userbus.ErrNotFound) {
		t.Errorf("old email: got %v, want %v", err, userbus.ErrNotFound)
	}
}

func Test_DeleteEvicts(t *testing.T) {
	store, _, usr := newStore(t)
	ctx := context.Background()

	if _, err := store.QueryByID(ctx, usr.ID); err != nil {
		t.Fatalf("query by id: %s", err)
	}

	if _, err := store.QueryByEmail(ctx, usr.Email); err != nil {
		t.Fatalf("query by email: %s", err)
	}

	if err := store.Delete(ctx, usr); err != nil {
		t.Fatalf("delete: %s", err)
	}

	if _, err := store.QueryByID(ctx, usr.ID); !errors.Is(err, userbus.ErrNotFound) {
		t.Errorf("by id: got %v, want %v", err, userbus.ErrNotFound)
	}

	if _, err := store.QueryByEmail(ctx, usr.Email); !errors.Is(err, userbus.ErrNotFound) {
		t.Errorf("by email: got %v, want %v", err, userbus.ErrNotFound)
	}
}
