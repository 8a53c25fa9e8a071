package dbtest

import (
	"context"
	"net/mail"
	"testing"

	"github.com/google/uuid"
	"github.com/jcpaschoal/headless-cms/business/domain/schemabus"
	"github.com/jcpaschoal/headless-cms/business/domain/tenantbus"
	"github.com/jcpaschoal/headless-cms/business/domain/userbus"
	"github.com/jcpaschoal/headless-cms/business/types/name"
	"github.com/jcpaschoal/headless-cms/business/types/password"
	"github.com/jcpaschoal/headless-cms/business/types/role"
	"github.com/jcpaschoal/headless-cms/business/types/slug"
)

// SeedPassword is the password every seeded user is created with.
const SeedPassword = "gophers"

// SeedTenant creates a tenant named after its slug.
func (db *Database) SeedTenant(t *testing.T, slg string) tenantbus.Tenant {
	t.Helper()

	tnt, err := db.BusDomain.Tenant.Create(context.Background(), tenantbus.NewTenant{
		Name: name.MustParse(slg),
		Slug: slug.MustParse(slg),
	})
	if err != nil {
		t.Fatalf("seeding tenant %q: %s", slg, err)
	}

	return tnt
}

// SeedUser creates an active user with SeedPassword.
func (db *Database) SeedUser(t *testing.T, tenantID uuid.UUID, email string, r role.Role) userbus.User {
	t.Helper()

	usr, err := db.BusDomain.User.Create(context.Background(), userbus.NewUser{
		TenantID: tenantID,
		Name:     name.MustParse("User " + r.String()),
		Email:    mail.Address{Address: email},
		Role:     r,
		Password: password.MustParse(SeedPassword),
	})
	if err != nil {
		t.Fatalf("seeding user %q: %s", email, err)
	}

	return usr
}

// SeedContentType creates a content type with the given fields.
func (db *Database) SeedContentType(t *testing.T, tenantID uuid.UUID, slg string, fields ...schemabus.Field) schemabus.ContentType {
	t.Helper()

	ct, err := db.BusDomain.Schema.Create(context.Background(), schemabus.NewContentType{
		TenantID: tenantID,
		Name:     name.MustParse(slg),
		Slug:     slug.MustParseLoose(slg),
		Fields:   fields,
	})
	if err != nil {
		t.Fatalf("seeding content type %q: %s", slg, err)
	}

	return ct
}
