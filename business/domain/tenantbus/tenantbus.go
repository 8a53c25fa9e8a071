// Package tenantbus provides business access to the tenant domain.
package tenantbus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/headless-cms/business/sdk/sqldb"
	"github.com/jcpaschoal/headless-cms/business/types/name"
	"github.com/jcpaschoal/headless-cms/business/types/slug"
	"github.com/jcpaschoal/headless-cms/foundation/logger"
	"github.com/jcpaschoal/headless-cms/foundation/otel"
)

// Set of error variables for CRUD operations.
var (
	ErrNotFound   = errors.New("tenant not found")
	ErrUniqueSlug = errors.New("tenant slug already exists")
	ErrUniqueName = errors.New("tenant name already exists")
)

// Storer defines the behavior required by the tenantbus to interact with the database.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, t Tenant) error
	Update(ctx context.Context, t Tenant) error
	Delete(ctx context.Context, t Tenant) error
	QueryByID(ctx context.Context, tenantID uuid.UUID) (Tenant, error)
	QueryBySlug(ctx context.Context, slg slug.Slug) (Tenant, error)
}

// Core manages the set of APIs for tenant access.
type Core struct {
	storer Storer
	log    *logger.Logger
}

// NewCore constructs a core for tenant api access.
func NewCore(log *logger.Logger, storer Storer) *Core {
	return &Core{
		storer: storer,
		log:    log,
	}
}

// NewWithTx constructs a new Core value replacing the Storer
// value with a Storer value that is currently inside a transaction.
func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, fmt.Errorf("newWithTx: %w", err)
	}

	return NewCore(c.log, storer), nil
}

// Create adds a new tenant to the system.
func (c *Core) Create(ctx context.Context, nt NewTenant) (Tenant, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.create")
	defer span.End()

	now := time.Now()

	t := Tenant{
		ID:          uuid.New(),
		Name:        nt.Name,
		Slug:        nt.Slug,
		Description: nt.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := c.storer.Create(ctx, t); err != nil {
		return Tenant{}, fmt.Errorf("create: %w", err)
	}

	return t, nil
}

// FindOrCreate returns the tenant registered under the slug, creating it
// with the slug as its name when it does not exist yet. The boolean reports
// whether a new tenant was created.
func (c *Core) FindOrCreate(ctx context.Context, slg slug.Slug) (Tenant, bool, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.findOrCreate")
	defer span.End()

	t, err := c.storer.QueryBySlug(ctx, slg)
	switch {
	case err == nil:
		return t, false, nil

	case !errors.Is(err, ErrNotFound):
		return Tenant{}, false, fmt.Errorf("query: slug[%s]: %w", slg, err)
	}

	nme, err := name.Parse(slg.String())
	if err != nil {
		return Tenant{}, false, fmt.Errorf("parse name: %w", err)
	}

	t, err = c.Create(ctx, NewTenant{Name: nme, Slug: slg})
	if err != nil {
		return Tenant{}, false, err
	}

	return t, true, nil
}

// Update modifies data about a tenant.
func (c *Core) Update(ctx context.Context, t Tenant, ut UpdateTenant) (Tenant, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.update")
	defer span.End()

	if ut.Name != nil {
		t.Name = *ut.Name
	}

	if ut.Description != nil {
		t.Description = *ut.Description
	}

	t.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, t); err != nil {
		return Tenant{}, fmt.Errorf("update: %w", err)
	}

	return t, nil
}

// Delete removes the specified tenant from the system.
func (c *Core) Delete(ctx context.Context, t Tenant) error {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.delete")
	defer span.End()

	if err := c.storer.Delete(ctx, t); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	return nil
}

// QueryByID finds the tenant by the specified ID.
func (c *Core) QueryByID(ctx context.Context, tenantID uuid.UUID) (Tenant, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.queryByID")
	defer span.End()

	tenant, err := c.storer.QueryByID(ctx, tenantID)
	if err != nil {
		return Tenant{}, fmt.Errorf("query: tenantID[%s]: %w", tenantID, err)
	}

	return tenant, nil
}

// QueryBySlug finds the tenant registered under the specified slug.
func (c *Core) QueryBySlug(ctx context.Context, slg slug.Slug) (Tenant, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.queryBySlug")
	defer span.End()

	tenant, err := c.storer.QueryBySlug(ctx, slg)
	if err != nil {
		return Tenant{}, fmt.Errorf("query: slug[%s]: %w", slg, err)
	}

	return tenant, nil
}
