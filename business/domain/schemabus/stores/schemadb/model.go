package schemadb

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/headless-cms/business/domain/schemabus"
	"github.com/jcpaschoal/headless-cms/business/types/fieldtype"
	"github.com/jcpaschoal/headless-cms/business/types/name"
	"github.com/jcpaschoal/headless-cms/business/types/slug"
)

type contentTypeDB struct {
	ID          uuid.UUID      `db:"content_type_id"`
	TenantID    uuid.UUID      `db:"tenant_id"`
	Name        string         `db:"name"`
	Slug        string         `db:"slug"`
	Description sql.NullString `db:"description"`
	Fields      []byte         `db:"fields"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

// fieldDB is the JSONB shape of a single field definition.
type fieldDB struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	Required      bool   `json:"required"`
	DefaultValue  any    `json:"defaultValue,omitempty"`
	Description   string `json:"description,omitempty"`
	ReferenceType string `json:"referenceType,omitempty"`
	ArrayItemType string `json:"arrayItemType,omitempty"`
}

func toDBContentType(bus schemabus.ContentType) (contentTypeDB, error) {
	fields := make([]fieldDB, len(bus.Fields))
	for i, f := range bus.Fields {
		fields[i] = fieldDB{
			Name:          f.Name,
			Type:          f.Type.String(),
			Required:      f.Required,
			DefaultValue:  f.DefaultValue,
			Description:   f.Description,
			ReferenceType: f.ReferenceType,
			ArrayItemType: f.ArrayItemType,
		}
	}

	data, err := json.Marshal(fields)
	if err != nil {
		return contentTypeDB{}, fmt.Errorf("marshal fields: %w", err)
	}

	db := contentTypeDB{
		ID:       bus.ID,
		TenantID: bus.TenantID,
		Name:     bus.Name.String(),
		Slug:     bus.Slug.String(),
		Description: sql.NullString{
			String: bus.Description,
			Valid:  bus.Description != "",
		},
		Fields:    data,
		CreatedAt: bus.CreatedAt.UTC(),
		UpdatedAt: bus.UpdatedAt.UTC(),
	}

	return db, nil
}

func toBusContentType(db contentTypeDB) (schemabus.ContentType, error) {
	nme, err := name.Parse(db.Name)
	if err != nil {
		return schemabus.ContentType{}, fmt.Errorf("parse name: %w", err)
	}

	slg, err := slug.ParseLoose(db.Slug)
	if err != nil {
		return schemabus.ContentType{}, fmt.Errorf("parse slug: %w", err)
	}

	var dbFields []fieldDB
	if len(db.Fields) > 0 {
		if err := json.Unmarshal(db.Fields, &dbFields); err != nil {
			return schemabus.ContentType{}, fmt.Errorf("unmarshal fields: %w", err)
		}
	}

	fields := make([]schemabus.Field, len(dbFields))
	for i, f := range dbFields {
		ft, err := fieldtype.Parse(f.Type)
		if err != nil {
			return schemabus.ContentType{}, fmt.Errorf("parse field[%s]: %w", f.Name, err)
		}

		fields[i] = schemabus.Field{
			Name:          f.Name,
			Type:          ft,
			Required:      f.Required,
			DefaultValue:  f.DefaultValue,
			Description:   f.Description,
			ReferenceType: f.ReferenceType,
			ArrayItemType: f.ArrayItemType,
		}
	}

	bus := schemabus.ContentType{
		ID:          db.ID,
		TenantID:    db.TenantID,
		Name:        nme,
		Slug:        slg,
		Description: db.Description.String,
		Fields:      fields,
		CreatedAt:   db.CreatedAt.In(time.Local),
		UpdatedAt:   db.UpdatedAt.In(time.Local),
	}

	return bus, nil
}

func toBusContentTypes(dbs []contentTypeDB) ([]schemabus.ContentType, error) {
	bus := make([]schemabus.ContentType, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusContentType(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
