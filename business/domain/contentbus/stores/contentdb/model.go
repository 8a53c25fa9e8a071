package contentdb

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/headless-cms/business/domain/contentbus"
	"github.com/jcpaschoal/headless-cms/business/types/slug"
)

type contentDB struct {
	ID              uuid.UUID    `db:"content_id"`
	TenantID        uuid.UUID    `db:"tenant_id"`
	ContentTypeID   uuid.UUID    `db:"content_type_id"`
	ContentTypeSlug string       `db:"content_type_slug"`
	Data            []byte       `db:"data"`
	IsDraft         bool         `db:"is_draft"`
	PublishedAt     sql.NullTime `db:"published_at"`
	CreatedBy       uuid.UUID    `db:"created_by"`
	UpdatedBy       uuid.UUID    `db:"updated_by"`
	CreatedAt       time.Time    `db:"created_at"`
	UpdatedAt       time.Time    `db:"updated_at"`
}

func toDBContent(bus contentbus.Content) (contentDB, error) {
	data := bus.Data
	if data == nil {
		data = contentbus.Data{}
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return contentDB{}, fmt.Errorf("marshal data: %w", err)
	}

	db := contentDB{
		ID:              bus.ID,
		TenantID:        bus.TenantID,
		ContentTypeID:   bus.ContentTypeID,
		ContentTypeSlug: bus.ContentTypeSlug.String(),
		Data:            raw,
		IsDraft:         bus.IsDraft,
		CreatedBy:       bus.CreatedBy,
		UpdatedBy:       bus.UpdatedBy,
		CreatedAt:       bus.CreatedAt.UTC(),
		UpdatedAt:       bus.UpdatedAt.UTC(),
	}

	if bus.PublishedAt != nil {
		db.PublishedAt = sql.NullTime{
			Time:  bus.PublishedAt.UTC(),
			Valid: true,
		}
	}

	return db, nil
}

func toBusContent(db contentDB) (contentbus.Content, error) {
	slg, err := slug.ParseLoose(db.ContentTypeSlug)
	if err != nil {
		return contentbus.Content{}, fmt.Errorf("parse slug: %w", err)
	}

	data := contentbus.Data{}
	if len(db.Data) > 0 {
		if err := json.Unmarshal(db.Data, &data); err != nil {
			return contentbus.Content{}, fmt.Errorf("unmarshal data: %w", err)
		}
	}

	bus := contentbus.Content{
		ID:              db.ID,
		TenantID:        db.TenantID,
		ContentTypeID:   db.ContentTypeID,
		ContentTypeSlug: slg,
		Data:            data,
		IsDraft:         db.IsDraft,
		CreatedBy:       db.CreatedBy,
		UpdatedBy:       db.UpdatedBy,
		CreatedAt:       db.CreatedAt.In(time.Local),
		UpdatedAt:       db.UpdatedAt.In(time.Local),
	}

	if db.PublishedAt.Valid {
		t := db.PublishedAt.Time.In(time.Local)
		bus.PublishedAt = &t
	}

	return bus, nil
}

func toBusContents(dbs []contentDB) ([]contentbus.Content, error) {
	bus := make([]contentbus.Content, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusContent(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
