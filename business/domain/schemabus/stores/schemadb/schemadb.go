// Package schemadb contains content type related CRUD functionality.
package schemadb

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jcpaschoal/headless-cms/business/domain/schemabus"
	"github.com/jcpaschoal/headless-cms/business/sdk/sqldb"
	"github.com/jcpaschoal/headless-cms/business/types/slug"
	"github.com/jcpaschoal/headless-cms/foundation/logger"
	"github.com/jmoiron/sqlx"
)

// Store manages the set of APIs for content type database access.
type Store struct {
	log *logger.Logger
	db  sqlx.ExtContext
}

// NewStore constructs the api for data access.
func NewStore(log *logger.Logger, db *sqlx.DB) *Store {
	return &Store{
		log: log,
		db:  db,
	}
}

// NewWithTx constructs a new Store value replacing the sqlx DB
// value with a sqlx DB value that is currently inside a transaction.
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (schemabus.Storer, error) {
	ec, err := sqldb.GetExtContext(tx)
	if err != nil {
		return nil, err
	}

	store := Store{
		log: s.log,
		db:  ec,
	}

	return &store, nil
}

// Create inserts a new content type into the database.
func (s *Store) Create(ctx context.Context, ct schemabus.ContentType) error {
	const q = `
	INSERT INTO content_types
		(content_type_id, tenant_id, name, slug, description, fields, created_at, updated_at)
	VALUES
		(:content_type_id, :tenant_id, :name, :slug, :description, :fields, :created_at, :updated_at)`

	dbCT, err := toDBContentType(ct)
	if err != nil {
		return err
	}

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, dbCT); err != nil {
		var dupErr sqldb.ErrDBDuplicatedEntry
		if errors.As(err, &dupErr) {
			return fmt.Errorf("namedexeccontext: %w", schemabus.ErrUniqueSlug)
		}
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Update replaces a content type row in the database.
func (s *Store) Update(ctx context.Context, ct schemabus.ContentType) error {
	const q = `
	UPDATE
		content_types
	SET
		name = :name,
		description = :description,
		fields = :fields,
		updated_at = :updated_at
	WHERE
		content_type_id = :content_type_id AND tenant_id = :tenant_id`

	dbCT, err := toDBContentType(ct)
	if err != nil {
		return err
	}

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, dbCT); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Delete removes a content type from the database.
func (s *Store) Delete(ctx context.Context, ct schemabus.ContentType) error {
	data := struct {
		ID       string `db:"content_type_id"`
		TenantID string `db:"tenant_id"`
	}{
		ID:       ct.ID.String(),
		TenantID: ct.TenantID.String(),
	}

	const q = `
	DELETE FROM
		content_types
	WHERE
		content_type_id = :content_type_id AND tenant_id = :tenant_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, data); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Query retrieves every content type of the tenant.
func (s *Store) Query(ctx context.Context, tenantID uuid.UUID) ([]schemabus.ContentType, error) {
	data := struct {
		TenantID string `db:"tenant_id"`
	}{
		TenantID: tenantID.String(),
	}

	const q = `
	SELECT
		content_type_id, tenant_id, name, slug, description, fields, created_at, updated_at
	FROM
		content_types
	WHERE
		tenant_id = :tenant_id
	ORDER BY
		created_at ASC`

	var dbCTs []contentTypeDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &dbCTs); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusContentTypes(dbCTs)
}

// QueryByID gets the specified content type from the database.
func (s *Store) QueryByID(ctx context.Context, tenantID uuid.UUID, contentTypeID uuid.UUID) (schemabus.ContentType, error) {
	data := struct {
		ID       string `db:"content_type_id"`
		TenantID string `db:"tenant_id"`
	}{
		ID:       contentTypeID.String(),
		TenantID: tenantID.String(),
	}

	const q = `
	SELECT
		content_type_id, tenant_id, name, slug, description, fields, created_at, updated_at
	FROM
		content_types
	WHERE
		content_type_id = :content_type_id AND tenant_id = :tenant_id`

	return s.queryOne(ctx, q, data)
}

// QueryBySlug gets the specified content type from the database.
func (s *Store) QueryBySlug(ctx context.Context, tenantID uuid.UUID, slg slug.Slug) (schemabus.ContentType, error) {
	data := struct {
		Slug     string `db:"slug"`
		TenantID string `db:"tenant_id"`
	}{
		Slug:     slg.String(),
		TenantID: tenantID.String(),
	}

	const q = `
	SELECT
		content_type_id, tenant_id, name, slug, description, fields, created_at, updated_at
	FROM
		content_types
	WHERE
		slug = :slug AND tenant_id = :tenant_id`

	return s.queryOne(ctx, q, data)
}

func (s *Store) queryOne(ctx context.Context, q string, data any) (schemabus.ContentType, error) {
	var dbCT contentTypeDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbCT); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return schemabus.ContentType{}, fmt.Errorf("db: %w", schemabus.ErrNotFound)
		}
		return schemabus.ContentType{}, fmt.Errorf("db: %w", err)
	}

	return toBusContentType(dbCT)
}
