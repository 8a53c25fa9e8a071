package dbtest

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jcpaschoal/headless-cms/business/domain/tenantbus"
	"github.com/jcpaschoal/headless-cms/business/sdk/sqldb"
	"github.com/jcpaschoal/headless-cms/business/types/slug"
)

// TenantStore implements tenantbus.Storer in memory.
type TenantStore struct {
	db *DB
}

// NewTenantStore constructs a tenant storer on the database.
func NewTenantStore(db *DB) *TenantStore {
	return &TenantStore{db: db}
}

// NewWithTx returns the same store; transactions act on the whole DB.
func (s *TenantStore) NewWithTx(tx sqldb.CommitRollbacker) (tenantbus.Storer, error) {
	return s, nil
}

func (s *TenantStore) Create(ctx context.Context, t tenantbus.Tenant) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, cur := range s.db.tenants {
		if cur.Slug.Equal(t.Slug) {
			return fmt.Errorf("create: %w", tenantbus.ErrUniqueSlug)
		}
		if cur.Name.Equal(t.Name) {
			return fmt.Errorf("create: %w", tenantbus.ErrUniqueName)
		}
	}

	s.db.tenants[t.ID] = t
	s.db.mutations++

	return nil
}

func (s *TenantStore) Update(ctx context.Context, t tenantbus.Tenant) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for id, cur := range s.db.tenants {
		if id != t.ID && cur.Name.Equal(t.Name) {
			return fmt.Errorf("update: %w", tenantbus.ErrUniqueName)
		}
	}

	if _, ok := s.db.tenants[t.ID]; ok {
		s.db.tenants[t.ID] = t
		s.db.mutations++
	}

	return nil
}

func (s *TenantStore) Delete(ctx context.Context, t tenantbus.Tenant) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	delete(s.db.tenants, t.ID)
	s.db.mutations++

	return nil
}

func (s *TenantStore) QueryByID(ctx context.Context, tenantID uuid.UUID) (tenantbus.Tenant, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	t, ok := s.db.tenants[tenantID]
	if !ok {
		return tenantbus.Tenant{}, fmt.Errorf("db: %w", tenantbus.ErrNotFound)
	}

	return t, nil
}

func (s *TenantStore) QueryBySlug(ctx context.Context, slg slug.Slug) (tenantbus.Tenant, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, t := range s.db.tenants {
		if t.Slug.Equal(slg) {
			return t, nil
		}
	}

	return tenantbus.Tenant{}, fmt.Errorf("db: %w", tenantbus.ErrNotFound)
}
