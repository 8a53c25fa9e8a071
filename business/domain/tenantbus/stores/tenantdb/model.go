package tenantdb

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/headless-cms/business/domain/tenantbus"
	"github.com/jcpaschoal/headless-cms/business/types/name"
	"github.com/jcpaschoal/headless-cms/business/types/slug"
)

type tenantDB struct {
	ID          uuid.UUID      `db:"tenant_id"`
	Name        string         `db:"name"`
	Slug        string         `db:"slug"`
	Description sql.NullString `db:"description"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func toDBTenant(bus tenantbus.Tenant) tenantDB {
	return tenantDB{
		ID:   bus.ID,
		Name: bus.Name.String(),
		Slug: bus.Slug.String(),
		Description: sql.NullString{
			String: bus.Description,
			Valid:  bus.Description != "",
		},
		CreatedAt: bus.CreatedAt.UTC(),
		UpdatedAt: bus.UpdatedAt.UTC(),
	}
}

func toBusTenant(db tenantDB) (tenantbus.Tenant, error) {
	nme, err := name.Parse(db.Name)
	if err != nil {
		return tenantbus.Tenant{}, fmt.Errorf("parse name: %w", err)
	}

	slg, err := slug.Parse(db.Slug)
	if err != nil {
		return tenantbus.Tenant{}, fmt.Errorf("parse slug: %w", err)
	}

	bus := tenantbus.Tenant{
		ID:          db.ID,
		Name:        nme,
		Slug:        slg,
		Description: db.Description.String,
		CreatedAt:   db.CreatedAt.In(time.Local),
		UpdatedAt:   db.UpdatedAt.In(time.Local),
	}

	return bus, nil
}
