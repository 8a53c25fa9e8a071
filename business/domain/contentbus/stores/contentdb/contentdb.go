// Package contentdb contains content related CRUD functionality.
package contentdb

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jcpaschoal/headless-cms/business/domain/contentbus"
	"github.com/jcpaschoal/headless-cms/business/sdk/sqldb"
	"github.com/jcpaschoal/headless-cms/business/types/slug"
	"github.com/jcpaschoal/headless-cms/foundation/logger"
	"github.com/jmoiron/sqlx"
)

// Store manages the set of APIs for content database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (contentbus.Storer, error) {
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

// Create inserts a new content instance into the database.
func (s *Store) Create(ctx context.Context, cnt contentbus.Content) error {
	const q = `
	INSERT INTO content
		(content_id, tenant_id, content_type_id, content_type_slug, data, is_draft, published_at, created_by, updated_by, created_at, updated_at)
	VALUES
		(:content_id, :tenant_id, :content_type_id, :content_type_slug, :data, :is_draft, :published_at, :created_by, :updated_by, :created_at, :updated_at)`

	dbCnt, err := toDBContent(cnt)
	if err != nil {
		return err
	}

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, dbCnt); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Update replaces a content row in the database.
func (s *Store) Update(ctx context.Context, cnt contentbus.Content) error {
	const q = `
	UPDATE
		content
	SET
		data = :data,
		is_draft = :is_draft,
		published_at = :published_at,
		updated_by = :updated_by,
		updated_at = :updated_at
	WHERE
		content_id = :content_id AND tenant_id = :tenant_id AND content_type_slug = :content_type_slug`

	dbCnt, err := toDBContent(cnt)
	if err != nil {
		return err
	}

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, dbCnt); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Delete removes a content instance from the database.
func (s *Store) Delete(ctx context.Context, cnt contentbus.Content) error {
	data := struct {
		ID       string `db:"content_id"`
		TenantID string `db:"tenant_id"`
		Slug     string `db:"content_type_slug"`
	}{
		ID:       cnt.ID.String(),
		TenantID: cnt.TenantID.String(),
		Slug:     cnt.ContentTypeSlug.String(),
	}

	const q = `
	DELETE FROM
		content
	WHERE
		content_id = :content_id AND tenant_id = :tenant_id AND content_type_slug = :content_type_slug`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, data); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Query retrieves the content of a content type, newest first.
func (s *Store) Query(ctx context.Context, filter contentbus.QueryFilter) ([]contentbus.Content, error) {
	data := map[string]any{}

	const q = `
	SELECT
		content_id, tenant_id, content_type_id, content_type_slug, data, is_draft, published_at, created_by, updated_by, created_at, updated_at
	FROM
		content`

	buf := bytes.NewBufferString(q)
	applyFilter(filter, data, buf)
	buf.WriteString(" ORDER BY created_at DESC")

	var dbCnts []contentDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, buf.String(), data, &dbCnts); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusContents(dbCnts)
}

// QueryByID gets the specified content instance from the database.
func (s *Store) QueryByID(ctx context.Context, tenantID uuid.UUID, slg slug.Slug, contentID uuid.UUID) (contentbus.Content, error) {
	data := struct {
		ID       string `db:"content_id"`
		TenantID string `db:"tenant_id"`
		Slug     string `db:"content_type_slug"`
	}{
		ID:       contentID.String(),
		TenantID: tenantID.String(),
		Slug:     slg.String(),
	}

	const q = `
	SELECT
		content_id, tenant_id, content_type_id, content_type_slug, data, is_draft, published_at, created_by, updated_by, created_at, updated_at
	FROM
		content
	WHERE
		content_id = :content_id AND tenant_id = :tenant_id AND content_type_slug = :content_type_slug`

	var dbCnt contentDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbCnt); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return contentbus.Content{}, fmt.Errorf("db: %w", contentbus.ErrNotFound)
		}
		return contentbus.Content{}, fmt.Errorf("db: %w", err)
	}

	return toBusContent(dbCnt)
}
