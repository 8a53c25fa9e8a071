// Package contentbus provides business access to content instances.
package contentbus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/headless-cms/business/domain/schemabus"
	"github.com/jcpaschoal/headless-cms/business/sdk/sqldb"
	"github.com/jcpaschoal/headless-cms/business/types/slug"
	"github.com/jcpaschoal/headless-cms/foundation/logger"
	"github.com/jcpaschoal/headless-cms/foundation/otel"
)

// Set of error variables for CRUD operations.
var (
	ErrNotFound            = errors.New("content not found")
	ErrContentTypeNotFound = errors.New("content type not found")
)

// Storer interface declares the behavior this package needs to persist and
// retrieve data. Every lookup is scoped by tenant and content type slug.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, c Content) error
	Update(ctx context.Context, c Content) error
	Delete(ctx context.Context, c Content) error
	Query(ctx context.Context, filter QueryFilter) ([]Content, error)
	QueryByID(ctx context.Context, tenantID uuid.UUID, slg slug.Slug, contentID uuid.UUID) (Content, error)
}

// Option configures optional Core behavior.
type Option func(c *Core)

// WithSchemaEnforcement makes Create and Update validate data against the
// content type's field list.
func WithSchemaEnforcement(enforce bool) Option {
	return func(c *Core) {
		c.enforce = enforce
	}
}

// Core manages the set of APIs for content access.
type Core struct {
	log       *logger.Logger
	storer    Storer
	schemaBus *schemabus.Core
	enforce   bool
}

// NewCore constructs a content core API for use.
func NewCore(log *logger.Logger, schemaBus *schemabus.Core, storer Storer, opts ...Option) *Core {
	c := Core{
		log:       log,
		storer:    storer,
		schemaBus: schemaBus,
	}

	for _, opt := range opts {
		opt(&c)
	}

	return &c
}

// NewWithTx constructs a new Core value that will use the
// specified transaction in any store related calls.
func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	schemaBus, err := c.schemaBus.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	return &Core{
		log:       c.log,
		storer:    storer,
		schemaBus: schemaBus,
		enforce:   c.enforce,
	}, nil
}

// Create adds a new content instance. The content type must exist in the
// tenant. The existence check and the insert are separate statements.
func (c *Core) Create(ctx context.Context, nc NewContent) (Content, error) {
	ctx, span := otel.AddSpan(ctx, "business.contentbus.create")
	defer span.End()

	ct, err := c.contentType(ctx, nc.TenantID, nc.ContentTypeSlug)
	if err != nil {
		return Content{}, err
	}

	data := nc.Data
	if data == nil {
		data = Data{}
	}

	if c.enforce {
		if err := ct.Check(data); err != nil {
			return Content{}, fmt.Errorf("check: %w", err)
		}
	}

	isDraft := true
	if nc.IsDraft != nil {
		isDraft = *nc.IsDraft
	}

	now := time.Now()

	cnt := Content{
		ID:              uuid.New(),
		TenantID:        nc.TenantID,
		ContentTypeID:   ct.ID,
		ContentTypeSlug: ct.Slug,
		Data:            data,
		IsDraft:         isDraft,
		CreatedBy:       nc.CreatedBy,
		UpdatedBy:       nc.CreatedBy,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := c.storer.Create(ctx, cnt); err != nil {
		return Content{}, fmt.Errorf("create: %w", err)
	}

	return cnt, nil
}

// Update modifies the data or draft flag of a content instance and records
// the editor.
func (c *Core) Update(ctx context.Context, cnt Content, uc UpdateContent, editorID uuid.UUID) (Content, error) {
	ctx, span := otel.AddSpan(ctx, "business.contentbus.update")
	defer span.End()

	if uc.Data != nil {
		cnt.Data = *uc.Data
		if cnt.Data == nil {
			cnt.Data = Data{}
		}

		if c.enforce {
			ct, err := c.contentType(ctx, cnt.TenantID, cnt.ContentTypeSlug)
			if err != nil {
				return Content{}, err
			}

			if err := ct.Check(cnt.Data); err != nil {
				return Content{}, fmt.Errorf("check: %w", err)
			}
		}
	}

	if uc.IsDraft != nil {
		cnt.IsDraft = *uc.IsDraft
	}

	cnt.UpdatedBy = editorID
	cnt.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, cnt); err != nil {
		return Content{}, fmt.Errorf("update: %w", err)
	}

	return cnt, nil
}

// Publish marks the content as published and stamps the publish time. It
// can be called any number of times.
func (c *Core) Publish(ctx context.Context, cnt Content) (Content, error) {
	ctx, span := otel.AddSpan(ctx, "business.contentbus.publish")
	defer span.End()

	now := time.Now()

	cnt.IsDraft = false
	cnt.PublishedAt = &now
	cnt.UpdatedAt = now

	if err := c.storer.Update(ctx, cnt); err != nil {
		return Content{}, fmt.Errorf("publish: %w", err)
	}

	return cnt, nil
}

// Delete removes the content instance.
func (c *Core) Delete(ctx context.Context, cnt Content) error {
	ctx, span := otel.AddSpan(ctx, "business.contentbus.delete")
	defer span.End()

	if err := c.storer.Delete(ctx, cnt); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	return nil
}

// Query returns the content of a content type, newest first.
func (c *Core) Query(ctx context.Context, filter QueryFilter) ([]Content, error) {
	ctx, span := otel.AddSpan(ctx, "business.contentbus.query")
	defer span.End()

	cnts, err := c.storer.Query(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return cnts, nil
}

// QueryByID finds the content by ID within the tenant and content type.
func (c *Core) QueryByID(ctx context.Context, tenantID uuid.UUID, slg slug.Slug, contentID uuid.UUID) (Content, error) {
	ctx, span := otel.AddSpan(ctx, "business.contentbus.queryByID")
	defer span.End()

	cnt, err := c.storer.QueryByID(ctx, tenantID, slg, contentID)
	if err != nil {
		return Content{}, fmt.Errorf("query: contentID[%s]: %w", contentID, err)
	}

	return cnt, nil
}

func (c *Core) contentType(ctx context.Context, tenantID uuid.UUID, slg slug.Slug) (schemabus.ContentType, error) {
	ct, err := c.schemaBus.QueryBySlug(ctx, tenantID, slg)
	if err != nil {
		if errors.Is(err, schemabus.ErrNotFound) {
			return schemabus.ContentType{}, fmt.Errorf("slug[%s]: %w", slg, ErrContentTypeNotFound)
		}
		return schemabus.ContentType{}, fmt.Errorf("content type: %w", err)
	}

	return ct, nil
}
