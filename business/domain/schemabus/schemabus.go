// Package schemabus provides business access to the content type registry.
package schemabus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/headless-cms/business/sdk/sqldb"
	"github.com/jcpaschoal/headless-cms/business/types/slug"
	"github.com/jcpaschoal/headless-cms/foundation/logger"
	"github.com/jcpaschoal/headless-cms/foundation/otel"
)

// Set of error variables for CRUD operations.
var (
	ErrNotFound   = errors.New("content type not found")
	ErrUniqueSlug = errors.New("content type slug already exists for this tenant")
)

// Storer interface declares the behavior this package needs to persist and
// retrieve data. Every lookup is scoped by tenant.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, ct ContentType) error
	Update(ctx context.Context, ct ContentType) error
	Delete(ctx context.Context, ct ContentType) error
	Query(ctx context.Context, tenantID uuid.UUID) ([]ContentType, error)
	QueryByID(ctx context.Context, tenantID uuid.UUID, contentTypeID uuid.UUID) (ContentType, error)
	QueryBySlug(ctx context.Context, tenantID uuid.UUID, slg slug.Slug) (ContentType, error)
}

// Core manages the set of APIs for content type access.
type Core struct {
	log    *logger.Logger
	storer Storer
}

// NewCore constructs a content type core API for use.
func NewCore(log *logger.Logger, storer Storer) *Core {
	return &Core{
		log:    log,
		storer: storer,
	}
}

// NewWithTx constructs a new Core value that will use the
// specified transaction in any store related calls.
func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	return NewCore(c.log, storer), nil
}

// Create adds a new content type to the tenant.
func (c *Core) Create(ctx context.Context, nct NewContentType) (ContentType, error) {
	ctx, span := otel.AddSpan(ctx, "business.schemabus.create")
	defer span.End()

	fields := nct.Fields
	if fields == nil {
		fields = []Field{}
	}

	now := time.Now()

	ct := ContentType{
		ID:          uuid.New(),
		TenantID:    nct.TenantID,
		Name:        nct.Name,
		Slug:        nct.Slug,
		Description: nct.Description,
		Fields:      fields,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := c.storer.Create(ctx, ct); err != nil {
		return ContentType{}, fmt.Errorf("create: %w", err)
	}

	return ct, nil
}

// Update modifies the name, description or field list of a content type.
func (c *Core) Update(ctx context.Context, ct ContentType, uct UpdateContentType) (ContentType, error) {
	ctx, span := otel.AddSpan(ctx, "business.schemabus.update")
	defer span.End()

	if uct.Name != nil {
		ct.Name = *uct.Name
	}

	if uct.Description != nil {
		ct.Description = *uct.Description
	}

	if uct.Fields != nil {
		ct.Fields = *uct.Fields
		if ct.Fields == nil {
			ct.Fields = []Field{}
		}
	}

	ct.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, ct); err != nil {
		return ContentType{}, fmt.Errorf("update: %w", err)
	}

	return ct, nil
}

// Delete removes the content type. Existing content is left in place.
func (c *Core) Delete(ctx context.Context, ct ContentType) error {
	ctx, span := otel.AddSpan(ctx, "business.schemabus.delete")
	defer span.End()

	if err := c.storer.Delete(ctx, ct); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	return nil
}

// Query returns every content type of the tenant.
func (c *Core) Query(ctx context.Context, tenantID uuid.UUID) ([]ContentType, error) {
	ctx, span := otel.AddSpan(ctx, "business.schemabus.query")
	defer span.End()

	cts, err := c.storer.Query(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("query: tenantID[%s]: %w", tenantID, err)
	}

	return cts, nil
}

// QueryByID finds the content type by the specified ID within the tenant.
func (c *Core) QueryByID(ctx context.Context, tenantID uuid.UUID, contentTypeID uuid.UUID) (ContentType, error) {
	ctx, span := otel.AddSpan(ctx, "business.schemabus.queryByID")
	defer span.End()

	ct, err := c.storer.QueryByID(ctx, tenantID, contentTypeID)
	if err != nil {
		return ContentType{}, fmt.Errorf("query: contentTypeID[%s]: %w", contentTypeID, err)
	}

	return ct, nil
}

// QueryBySlug finds the content type by the specified slug within the tenant.
func (c *Core) QueryBySlug(ctx context.Context, tenantID uuid.UUID, slg slug.Slug) (ContentType, error) {
	ctx, span := otel.AddSpan(ctx, "business.schemabus.queryBySlug")
	defer span.End()

	ct, err := c.storer.QueryBySlug(ctx, tenantID, slg)
	if err != nil {
		return ContentType{}, fmt.Errorf("query: slug[%s]: %w", slg, err)
	}

	return ct, nil
}
